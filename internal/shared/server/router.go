package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sbenli10/denetron-saha-uygulamasi-sub001/internal/bootstrap"
	"github.com/sbenli10/denetron-saha-uygulamasi-sub001/internal/shared/config"
	"github.com/sbenli10/denetron-saha-uygulamasi-sub001/internal/shared/metrics"
	"github.com/sbenli10/denetron-saha-uygulamasi-sub001/internal/shared/server/middleware"
	"github.com/sbenli10/denetron-saha-uygulamasi-sub001/internal/shared/server/respond"
)

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(cfg config.Config, app *bootstrap.App) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORSAllowOrigin),
		middleware.Auth(),
	)

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	api.GET("/metrics", metrics.Handler())

	app.Google.Register(api)
	app.Analyses.Register(api)
	app.Execution.Register(api)

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
