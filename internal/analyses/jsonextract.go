package analyses

import (
	"encoding/json"
	"strings"

	"github.com/sbenli10/denetron-saha-uygulamasi-sub001/internal/shared/telemetry"
)

const rawPreviewLimit = 300

// ExtractJSON recovers a JSON value embedded in free-form model text. It
// tolerates code fences, leading/trailing prose and stray control
// characters. Returns nil when no parseable value can be recovered; never
// panics or returns an error past this boundary.
//
// When the embedded value is already valid it is returned byte-for-byte.
func ExtractJSON(raw string) json.RawMessage {
	candidate := sliceToValue(stripFences(raw))
	if candidate == "" {
		logUnrecoverable(raw)
		return nil
	}

	if json.Valid([]byte(candidate)) {
		return json.RawMessage(candidate)
	}

	sanitized := stripControlChars(candidate)
	if json.Valid([]byte(sanitized)) {
		return json.RawMessage(sanitized)
	}

	logUnrecoverable(raw)
	return nil
}

// stripFences removes markdown code-fence lines (``` and ```json).
func stripFences(raw string) string {
	if !strings.Contains(raw, "```") {
		return raw
	}
	lines := strings.Split(raw, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

// sliceToValue cuts from the first opening brace/bracket to the last
// matching closing one.
func sliceToValue(raw string) string {
	objStart := strings.IndexByte(raw, '{')
	arrStart := strings.IndexByte(raw, '[')

	start, closer := objStart, byte('}')
	if start < 0 || (arrStart >= 0 && arrStart < start) {
		start, closer = arrStart, ']'
	}
	if start < 0 {
		return ""
	}

	end := strings.LastIndexByte(raw, closer)
	if end <= start {
		return ""
	}
	return raw[start : end+1]
}

// stripControlChars drops non-printable control characters except the JSON
// whitespace set.
func stripControlChars(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if r < 0x20 && r != '\n' && r != '\r' && r != '\t' {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func logUnrecoverable(raw string) {
	preview := raw
	if len(preview) > rawPreviewLimit {
		preview = preview[:rawPreviewLimit]
	}
	telemetry.Warn("analysis.output.unrecoverable", map[string]any{
		"raw_len":     len(raw),
		"raw_preview": preview,
	})
}
