package corpus

import (
	"strings"
	"unicode/utf8"

	"github.com/sbenli10/denetron-saha-uygulamasi-sub001/internal/shared/telemetry"
)

const (
	// MaxChars is the hard corpus ceiling; exceeding it truncates with a
	// warning rather than failing. Protects the model quota, not the user.
	MaxChars = 18000

	// MinChars is the smallest corpus worth analyzing.
	MinChars = 120
)

// Document is one classified, extracted text contributing to the corpus.
type Document struct {
	Name string
	Kind Kind
	Text string
}

// Assemble groups documents by kind in the fixed kind ordering, preserving
// upload order within a kind, and renders one labeled section per kind with
// file-delimited blocks. The result is truncated to MaxChars.
func Assemble(docs []Document) string {
	var b strings.Builder
	for _, kind := range kindOrder {
		var section []Document
		for _, doc := range docs {
			if doc.Kind == kind {
				section = append(section, doc)
			}
		}
		if len(section) == 0 {
			continue
		}
		b.WriteString("### SECTION: ")
		b.WriteString(kind.Label())
		b.WriteString("\n\n")
		for _, doc := range section {
			b.WriteString("--- FILE: ")
			b.WriteString(doc.Name)
			b.WriteString(" ---\n")
			b.WriteString(strings.TrimSpace(doc.Text))
			b.WriteString("\n\n")
		}
	}
	return truncate(strings.TrimSpace(b.String()))
}

func truncate(assembled string) string {
	if len(assembled) <= MaxChars {
		return assembled
	}
	// Back the cut off to a rune boundary so a multibyte character (ğ, ş, İ
	// in the documents we see) is never split into invalid UTF-8.
	cut := MaxChars
	for cut > 0 && !utf8.RuneStart(assembled[cut]) {
		cut--
	}
	telemetry.Warn("corpus.truncated", map[string]any{
		"before_chars": len(assembled),
		"after_chars":  cut,
	})
	return assembled[:cut]
}
