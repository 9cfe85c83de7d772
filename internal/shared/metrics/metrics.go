package metrics

import (
	"bytes"
	"fmt"
	"net/http"
	"sync/atomic"

	"github.com/gin-gonic/gin"
)

var (
	analysisStartedTotal   atomic.Uint64
	analysisCompletedTotal atomic.Uint64
	analysisFailedTotal    atomic.Uint64
	analysisDegradedTotal  atomic.Uint64
	modelRetriesTotal      atomic.Uint64
	recordsSeededTotal     atomic.Uint64
)

// IncAnalysisStarted increments the started counter.
func IncAnalysisStarted() { analysisStartedTotal.Add(1) }

// IncAnalysisCompleted increments the completed counter.
func IncAnalysisCompleted() { analysisCompletedTotal.Add(1) }

// IncAnalysisFailed increments the failed counter.
func IncAnalysisFailed() { analysisFailedTotal.Add(1) }

// IncAnalysisDegraded counts analyses that fell back to the deterministic generator.
func IncAnalysisDegraded() { analysisDegradedTotal.Add(1) }

// AddModelRetries records extra model attempts beyond the first.
func AddModelRetries(n int) {
	if n > 0 {
		modelRetriesTotal.Add(uint64(n))
	}
}

// AddRecordsSeeded counts derived execution records written by the seeder.
func AddRecordsSeeded(n int) {
	if n > 0 {
		recordsSeededTotal.Add(uint64(n))
	}
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/plain; version=0.0.4")
		c.String(http.StatusOK, Render())
	}
}

// Render renders metrics in Prometheus text format.
func Render() string {
	var buf bytes.Buffer
	writeCounter(&buf, "plan_analysis_started_total", "Total analyses started", analysisStartedTotal.Load())
	writeCounter(&buf, "plan_analysis_completed_total", "Total analyses completed", analysisCompletedTotal.Load())
	writeCounter(&buf, "plan_analysis_failed_total", "Total analyses failed", analysisFailedTotal.Load())
	writeCounter(&buf, "plan_analysis_degraded_total", "Total analyses resolved by the deterministic fallback", analysisDegradedTotal.Load())
	writeCounter(&buf, "model_retries_total", "Total model attempts beyond the first", modelRetriesTotal.Load())
	writeCounter(&buf, "execution_records_seeded_total", "Total execution records seeded", recordsSeededTotal.Load())
	return buf.String()
}

func writeCounter(buf *bytes.Buffer, name, help string, value uint64) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s counter\n", name)
	fmt.Fprintf(buf, "%s %d\n", name, value)
}
