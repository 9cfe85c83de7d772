package ocr

import "context"

// confidenceFloor is the per-block threshold under which a text block
// counts toward the low-confidence ratio.
const confidenceFloor = 0.6

// Metrics describes recognition quality for one image.
type Metrics struct {
	AvgConfidence      float64  `json:"avgConfidence"`
	LowConfidenceRatio float64  `json:"lowConfidenceRatio"`
	Warnings           []string `json:"warnings"`
}

// Degraded reports whether recognition quality is poor enough that the
// caller should flag the result to the user.
func (m Metrics) Degraded() bool {
	return m.AvgConfidence < confidenceFloor || m.LowConfidenceRatio > 0.3
}

// Result is the outcome of recognizing one image.
type Result struct {
	Text    string
	Metrics Metrics
}

// Engine recognizes text in an image. Implementations must honor ctx
// cancellation; per-image failures are reported as errors and handled
// upstream by the extractor dispatch.
type Engine interface {
	Recognize(ctx context.Context, data []byte, mimeType string) (Result, error)
}

// Block is one recognized region of text with a model-reported confidence.
type Block struct {
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
}

// ComputeMetrics derives aggregate quality metrics from recognized blocks.
func ComputeMetrics(blocks []Block) Metrics {
	m := Metrics{Warnings: []string{}}
	if len(blocks) == 0 {
		m.Warnings = append(m.Warnings, "no text blocks detected")
		return m
	}
	var sum float64
	var low int
	for _, b := range blocks {
		sum += b.Confidence
		if b.Confidence < confidenceFloor {
			low++
		}
	}
	m.AvgConfidence = sum / float64(len(blocks))
	m.LowConfidenceRatio = float64(low) / float64(len(blocks))
	if m.LowConfidenceRatio > 0.3 {
		m.Warnings = append(m.Warnings, "high share of low-confidence text blocks")
	}
	return m
}
