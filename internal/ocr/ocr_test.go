package ocr

import (
	"math"
	"testing"
)

func TestComputeMetricsEmptyBlocks(t *testing.T) {
	m := ComputeMetrics(nil)
	if m.AvgConfidence != 0 || m.LowConfidenceRatio != 0 {
		t.Fatalf("expected zero metrics for no blocks, got %#v", m)
	}
	if len(m.Warnings) != 1 || m.Warnings[0] != "no text blocks detected" {
		t.Fatalf("expected no-blocks warning, got %#v", m.Warnings)
	}
	if !m.Degraded() {
		t.Fatalf("expected empty recognition to count as degraded")
	}
}

func TestComputeMetricsAveragesAndCountsLowBlocks(t *testing.T) {
	m := ComputeMetrics([]Block{
		{Text: "Denetim planı", Confidence: 1.0},
		{Text: "Ocak", Confidence: 0.5},
	})
	if math.Abs(m.AvgConfidence-0.75) > 1e-9 {
		t.Fatalf("expected avg 0.75, got %v", m.AvgConfidence)
	}
	if m.LowConfidenceRatio != 0.5 {
		t.Fatalf("expected ratio 0.5, got %v", m.LowConfidenceRatio)
	}
	if len(m.Warnings) != 1 {
		t.Fatalf("expected low-confidence warning, got %#v", m.Warnings)
	}
	if !m.Degraded() {
		t.Fatalf("expected degraded with half the blocks below the floor")
	}
}

func TestComputeMetricsCleanBlocks(t *testing.T) {
	m := ComputeMetrics([]Block{
		{Text: "Şube denetimi", Confidence: 0.9},
		{Text: "Mart", Confidence: 0.8},
		{Text: "Nisan", Confidence: 0.7},
	})
	if m.LowConfidenceRatio != 0 {
		t.Fatalf("expected no low blocks, got ratio %v", m.LowConfidenceRatio)
	}
	if len(m.Warnings) != 0 {
		t.Fatalf("expected no warnings, got %#v", m.Warnings)
	}
	if m.Degraded() {
		t.Fatalf("expected clean recognition not degraded: %#v", m)
	}
}

func TestDegradedThresholds(t *testing.T) {
	tests := []struct {
		name     string
		metrics  Metrics
		degraded bool
	}{
		{"low average", Metrics{AvgConfidence: 0.59, LowConfidenceRatio: 0}, true},
		{"high low-block share", Metrics{AvgConfidence: 0.9, LowConfidenceRatio: 0.31}, true},
		{"both boundaries held", Metrics{AvgConfidence: 0.6, LowConfidenceRatio: 0.3}, false},
		{"clean", Metrics{AvgConfidence: 0.95, LowConfidenceRatio: 0}, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.metrics.Degraded(); got != tc.degraded {
				t.Fatalf("Degraded() = %v, want %v for %#v", got, tc.degraded, tc.metrics)
			}
		})
	}
}
