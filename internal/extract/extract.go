package extract

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/gabriel-vasile/mimetype"
	"github.com/ledongthuc/pdf"
	"golang.org/x/sync/errgroup"

	"github.com/sbenli10/denetron-saha-uygulamasi-sub001/internal/ocr"
	"github.com/sbenli10/denetron-saha-uygulamasi-sub001/internal/shared/telemetry"
)

const (
	mimePDF  = "application/pdf"
	mimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	mimeCSV  = "text/csv"

	maxParallelExtractions = 4
)

// Document is one uploaded file, request-scoped and discarded after extraction.
type Document struct {
	Name     string
	MimeType string
	Data     []byte
}

// Result is the extracted text for one document. Text is always present;
// when extraction is impossible it holds a diagnostic placeholder and
// Placeholder is set.
type Result struct {
	Name        string
	MimeType    string
	Text        string
	OCR         *ocr.Metrics
	Placeholder bool
	Warnings    []string
}

// Dispatcher routes each uploaded document to a type-specific extractor.
type Dispatcher struct {
	OCR ocr.Engine
}

// ExtractAll extracts every document. Extraction runs in parallel but the
// returned slice matches the upload order, keeping the assembled corpus
// deterministic. It never fails: per-file errors degrade to placeholders.
func (d *Dispatcher) ExtractAll(ctx context.Context, docs []Document) []Result {
	results := make([]Result, len(docs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelExtractions)
	for i, doc := range docs {
		g.Go(func() error {
			results[i] = d.Extract(gctx, doc)
			return nil
		})
	}
	_ = g.Wait()
	return results
}

// Extract extracts text from a single document. Never returns an absent text.
func (d *Dispatcher) Extract(ctx context.Context, doc Document) Result {
	res := Result{Name: doc.Name, MimeType: doc.MimeType, Warnings: []string{}}

	text, metrics, placeholder, err := d.extractByType(ctx, doc)
	if err != nil {
		telemetry.Warn("extract.failed", map[string]any{
			"file": doc.Name,
			"mime": doc.MimeType,
			"err":  err.Error(),
		})
		res.Text = fmt.Sprintf("[%s: extraction failed: %v]", doc.Name, err)
		res.Placeholder = true
		res.Warnings = append(res.Warnings, fmt.Sprintf("could not extract %s", doc.Name))
		return res
	}

	res.Text = text
	res.OCR = metrics
	res.Placeholder = placeholder
	if metrics != nil {
		res.Warnings = append(res.Warnings, metrics.Warnings...)
	}
	return res
}

func (d *Dispatcher) extractByType(ctx context.Context, doc Document) (string, *ocr.Metrics, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", nil, false, err
	}

	switch mime := resolveMimeType(doc); {
	case strings.HasPrefix(mime, "image/"):
		text, metrics, err := d.extractImage(ctx, doc, mime)
		return text, metrics, false, err
	case mime == mimeXLSX || hasExt(doc.Name, ".xlsx"):
		text, metrics, err := extractXLSX(doc.Data)
		return text, metrics, false, err
	case mime == mimeCSV || hasExt(doc.Name, ".csv"):
		text, metrics, err := extractCSV(doc.Data)
		return text, metrics, false, err
	case mime == mimePDF:
		text, err := extractPDF(doc.Data)
		return text, nil, false, err
	case strings.HasPrefix(mime, "text/"):
		text, metrics, err := decodePlainText(doc.Data)
		return text, metrics, false, err
	default:
		// Formats without a real parser keep an explicit "not supported"
		// placeholder instead of silently pretending to read them.
		return fmt.Sprintf("[%s: structured extraction is not available for type %s]", doc.Name, mime), nil, true, nil
	}
}

func (d *Dispatcher) extractImage(ctx context.Context, doc Document, mime string) (string, *ocr.Metrics, error) {
	if d.OCR == nil {
		return "", nil, fmt.Errorf("no OCR engine configured")
	}
	result, err := d.OCR.Recognize(ctx, doc.Data, mime)
	if err != nil {
		return "", nil, err
	}
	metrics := result.Metrics
	return result.Text, &metrics, nil
}

// resolveMimeType prefers the declared type and falls back to content
// sniffing when the client sent nothing usable.
func resolveMimeType(doc Document) string {
	clean := strings.ToLower(strings.TrimSpace(strings.Split(doc.MimeType, ";")[0]))
	if clean != "" && clean != "application/octet-stream" {
		return clean
	}
	return mimetype.Detect(doc.Data).String()
}

func hasExt(name, ext string) bool {
	return strings.EqualFold(filepath.Ext(name), ext)
}

func extractPDF(data []byte) (string, error) {
	reader := bytes.NewReader(data)
	pdfReader, err := pdf.NewReader(reader, int64(len(data)))
	if err != nil {
		return "", err
	}
	plain, err := pdfReader.GetPlainText()
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func decodePlainText(data []byte) (string, *ocr.Metrics, error) {
	data = bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})
	if !utf8.Valid(data) {
		return "", nil, fmt.Errorf("not valid UTF-8 text")
	}
	return strings.TrimSpace(string(data)), nil, nil
}
