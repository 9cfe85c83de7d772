package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/sbenli10/denetron-saha-uygulamasi-sub001/internal/analyses"
	googleauth "github.com/sbenli10/denetron-saha-uygulamasi-sub001/internal/auth"
	"github.com/sbenli10/denetron-saha-uygulamasi-sub001/internal/executions"
	"github.com/sbenli10/denetron-saha-uygulamasi-sub001/internal/extract"
	"github.com/sbenli10/denetron-saha-uygulamasi-sub001/internal/llm"
	"github.com/sbenli10/denetron-saha-uygulamasi-sub001/internal/llm/gemini"
	"github.com/sbenli10/denetron-saha-uygulamasi-sub001/internal/llm/openai"
	"github.com/sbenli10/denetron-saha-uygulamasi-sub001/internal/members"
	"github.com/sbenli10/denetron-saha-uygulamasi-sub001/internal/ocr"
	"github.com/sbenli10/denetron-saha-uygulamasi-sub001/internal/shared/config"
	"github.com/sbenli10/denetron-saha-uygulamasi-sub001/internal/shared/storage/db"
)

// App holds every wired dependency the router mounts.
type App struct {
	DB        *sql.DB
	Analyses  *analyses.Handler
	Execution *executions.Handler
	Google    *googleauth.GoogleService
}

// Build wires the full dependency graph from configuration. Without a
// reachable database everything falls back to in-memory repositories so the
// service stays usable in development.
func Build(ctx context.Context, cfg config.Config) (*App, error) {
	sqlDB := connect(ctx, cfg)

	var analysisRepo analyses.Repo
	var executionRepo executions.Repo
	var memberRepo members.Repo
	if sqlDB != nil {
		analysisRepo = &analyses.PGRepo{DB: sqlDB}
		executionRepo = &executions.PGRepo{DB: sqlDB}
		memberRepo = &members.PGRepo{DB: sqlDB}
	} else {
		analysisRepo = analyses.NewMemoryRepo()
		executionRepo = executions.NewMemoryRepo()
		memberRepo = members.NewMemoryRepo()
	}

	fast, robust, err := buildModels(ctx, cfg)
	if err != nil {
		return nil, err
	}
	invoker := &llm.Invoker{Fast: fast, Robust: robust}

	dispatcher := &extract.Dispatcher{OCR: buildOCR(ctx, cfg)}
	seeder := analyses.NewSeeder(executionRepo)
	analysisSvc := analyses.NewService(dispatcher, invoker, analysisRepo, seeder)
	executionSvc := executions.NewService(executionRepo)
	memberSvc := members.NewService(memberRepo, cfg.DefaultOrgID)

	return &App{
		DB:        sqlDB,
		Analyses:  analyses.NewHandler(analysisSvc),
		Execution: executions.NewHandler(executionSvc),
		Google: googleauth.NewGoogleService(
			cfg.GoogleClientID,
			cfg.GoogleClientSecret,
			cfg.GoogleRedirectURL,
			cfg.UIRedirectURL,
			memberSvc,
		),
	}, nil
}

// connect opens the database and applies migrations. Failures fall back to
// memory instead of refusing to start.
func connect(ctx context.Context, cfg config.Config) *sql.DB {
	if cfg.DatabaseURL == "" {
		return nil
	}
	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	conn, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		log.Printf("failed to connect database, falling back to memory: %v", err)
		return nil
	}
	if err := db.RunMigrations(ctx, conn); err != nil {
		log.Printf("failed to run migrations, falling back to memory: %v", err)
		conn.Close()
		return nil
	}
	return conn
}

func buildModels(ctx context.Context, cfg config.Config) (llm.Client, llm.Client, error) {
	switch cfg.LLMProvider {
	case "openai":
		fast, err := openai.NewClient(cfg.OpenAIAPIKey, cfg.FastModel)
		if err != nil {
			return nil, nil, fmt.Errorf("fast model: %w", err)
		}
		robust, err := openai.NewClient(cfg.OpenAIAPIKey, cfg.RobustModel)
		if err != nil {
			return nil, nil, fmt.Errorf("robust model: %w", err)
		}
		return fast, robust, nil
	default:
		fast, err := gemini.NewClient(ctx, cfg.GeminiAPIKey, cfg.FastModel)
		if err != nil {
			return nil, nil, fmt.Errorf("fast model: %w", err)
		}
		robust, err := gemini.NewClient(ctx, cfg.GeminiAPIKey, cfg.RobustModel)
		if err != nil {
			return nil, nil, fmt.Errorf("robust model: %w", err)
		}
		return fast, robust, nil
	}
}

// buildOCR is best-effort: without an engine image uploads degrade to
// placeholders instead of failing the whole service.
func buildOCR(ctx context.Context, cfg config.Config) ocr.Engine {
	engine, err := ocr.NewGeminiEngine(ctx, cfg.GeminiAPIKey, cfg.OCRModel)
	if err != nil {
		log.Printf("OCR engine unavailable, image uploads will degrade: %v", err)
		return nil
	}
	return engine
}
