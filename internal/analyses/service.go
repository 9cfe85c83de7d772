package analyses

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sbenli10/denetron-saha-uygulamasi-sub001/internal/corpus"
	"github.com/sbenli10/denetron-saha-uygulamasi-sub001/internal/extract"
	"github.com/sbenli10/denetron-saha-uygulamasi-sub001/internal/llm"
	"github.com/sbenli10/denetron-saha-uygulamasi-sub001/internal/shared/metrics"
	"github.com/sbenli10/denetron-saha-uygulamasi-sub001/internal/shared/telemetry"
)

// FlowPolicy captures how one route uses the shared pipeline.
type FlowPolicy struct {
	ReviewType string
	// AllowDegrade lets model exhaustion resolve via the deterministic
	// generator instead of failing the request.
	AllowDegrade bool
	Persist      bool
	Seed         bool
	// InlineImages attaches uploaded image bytes to the model request so a
	// multimodal model can read them directly.
	InlineImages bool
}

// PlanFlow analyzes annual audit plans: degradable, persisted, and seeds
// execution tracking.
func PlanFlow() FlowPolicy {
	return FlowPolicy{ReviewType: ReviewPlan, AllowDegrade: true, Persist: true, Seed: true}
}

// TrainingFlow analyzes training plans: persisted, but model exhaustion is
// surfaced to the caller rather than papered over.
func TrainingFlow() FlowPolicy {
	return FlowPolicy{ReviewType: ReviewTraining, Persist: true}
}

// PhotoFlow analyzes photographed documents: ephemeral, with the images
// passed to the model inline.
func PhotoFlow() FlowPolicy {
	return FlowPolicy{ReviewType: ReviewPhoto, InlineImages: true}
}

// AnalyzeInput is one analysis request after upload decoding.
type AnalyzeInput struct {
	OrgID   string
	ActorID string
	Year    int
	Files   []extract.Document
}

// Service orchestrates extraction, corpus assembly, model invocation,
// normalization, persistence and seeding.
type Service struct {
	Extractor *extract.Dispatcher
	Invoker   *llm.Invoker
	Repo      Repo
	Seeder    *Seeder
	Now       func() time.Time
	NewID     func() string
}

// NewService constructs a Service.
func NewService(extractor *extract.Dispatcher, invoker *llm.Invoker, repo Repo, seeder *Seeder) *Service {
	return &Service{
		Extractor: extractor,
		Invoker:   invoker,
		Repo:      repo,
		Seeder:    seeder,
		Now:       time.Now,
		NewID:     func() string { return uuid.NewString() },
	}
}

// Analyze runs the full pipeline for one request under the given policy.
func (s *Service) Analyze(ctx context.Context, policy FlowPolicy, in AnalyzeInput) (Outcome, error) {
	if len(in.Files) == 0 {
		return Outcome{}, ErrNoFiles
	}
	metrics.IncAnalysisStarted()

	extracted := s.Extractor.ExtractAll(ctx, in.Files)
	if allPlaceholders(extracted) {
		metrics.IncAnalysisFailed()
		return Outcome{}, ErrUnreadableInput
	}

	docs := classifyAll(extracted)
	corpusText := corpus.Assemble(docs)
	if len(corpusText) < corpus.MinChars {
		metrics.IncAnalysisFailed()
		return Outcome{}, ErrInsufficientContent
	}

	ocrWarning, warnings := collectWarnings(extracted)

	prompt, err := BuildPrompt(policy.ReviewType, in.Year, corpusText)
	if err != nil {
		metrics.IncAnalysisFailed()
		return Outcome{}, fmt.Errorf("build prompt: %w", err)
	}

	req := llm.Request{Prompt: prompt}
	if policy.InlineImages {
		req.Parts = imageParts(in.Files)
	}

	var fallback func() string
	if policy.AllowDegrade {
		fallback = func() string { return FallbackRaw(docs, in.Year) }
	}

	invocation, err := s.Invoker.Invoke(ctx, req, fallback)
	if err != nil {
		metrics.IncAnalysisFailed()
		return Outcome{}, err
	}
	metrics.AddModelRetries(invocation.Attempts - 1)

	// Output that cannot be recovered as JSON resolves to the deterministic
	// result regardless of the degrade policy: at this point the model was
	// reachable, it just misbehaved.
	var result Result
	if raw := ExtractJSON(invocation.RawText); raw != nil {
		result = Normalize(raw, in.Year)
	} else {
		result = FallbackResult(docs, in.Year)
		invocation.ModelUsed = llm.ModelFallback
	}
	if invocation.ModelUsed == llm.ModelFallback {
		metrics.IncAnalysisDegraded()
	}

	outcome := Outcome{
		Result: result,
		Meta: Meta{
			AIUsed:     invocation.ModelUsed != llm.ModelFallback,
			ModelUsed:  string(invocation.ModelUsed),
			Attempts:   invocation.Attempts,
			OCRWarning: ocrWarning,
			AnalyzedAt: s.Now().UTC(),
			Warnings:   warnings,
		},
		Invocation: invocation,
	}

	if policy.Persist {
		outcome.Persisted = s.persist(ctx, policy, in, outcome)
	}

	metrics.IncAnalysisCompleted()
	return outcome, nil
}

// GetPlan returns the stored plan analysis for a year.
func (s *Service) GetPlan(ctx context.Context, orgID string, year int) (Record, error) {
	return s.Repo.FindByOrgAndYear(ctx, orgID, year, ReviewPlan)
}

// persist stores the result and seeds execution tracking on first write.
// Storage failures degrade the response to persisted=false instead of
// failing an analysis that already succeeded.
func (s *Service) persist(ctx context.Context, policy FlowPolicy, in AnalyzeInput, outcome Outcome) bool {
	record := Record{
		ID:             s.NewID(),
		OrganizationID: in.OrgID,
		PeriodYear:     in.Year,
		ReviewType:     policy.ReviewType,
		Result:         outcome.Result,
		ModelUsed:      outcome.Meta.ModelUsed,
		CreatedBy:      in.ActorID,
		CreatedAt:      s.Now().UTC(),
	}
	inserted, err := s.Repo.Insert(ctx, record)
	if err != nil {
		telemetry.Warn("analysis.persist.failed", map[string]any{
			"org_id": in.OrgID,
			"year":   in.Year,
			"type":   policy.ReviewType,
			"err":    err.Error(),
		})
		return false
	}
	if !inserted {
		telemetry.Info("analysis.persist.duplicate", map[string]any{
			"org_id": in.OrgID,
			"year":   in.Year,
			"type":   policy.ReviewType,
		})
		return false
	}

	if policy.Seed && s.Seeder != nil {
		if _, err := s.Seeder.Seed(ctx, in.OrgID, in.Year, outcome.Result.Items); err != nil {
			telemetry.Warn("executions.seed.failed", map[string]any{
				"org_id": in.OrgID,
				"year":   in.Year,
				"err":    err.Error(),
			})
		}
	}
	return true
}

func allPlaceholders(results []extract.Result) bool {
	for _, res := range results {
		if !res.Placeholder {
			return false
		}
	}
	return true
}

func classifyAll(results []extract.Result) []corpus.Document {
	docs := make([]corpus.Document, 0, len(results))
	for _, res := range results {
		docs = append(docs, corpus.Document{
			Name: res.Name,
			Kind: corpus.Classify(res.Text),
			Text: res.Text,
		})
	}
	return docs
}

func collectWarnings(results []extract.Result) (bool, []string) {
	var ocrWarning bool
	var warnings []string
	for _, res := range results {
		if res.OCR != nil && res.OCR.Degraded() {
			ocrWarning = true
		}
		warnings = append(warnings, res.Warnings...)
	}
	return ocrWarning, warnings
}

func imageParts(files []extract.Document) []llm.Part {
	var parts []llm.Part
	for _, file := range files {
		if strings.HasPrefix(strings.ToLower(file.MimeType), "image/") {
			parts = append(parts, llm.Part{MimeType: file.MimeType, Data: file.Data})
		}
	}
	return parts
}
