package analyses

import "testing"

func TestExtractJSONPassesValidThrough(t *testing.T) {
	raw := `{"year":2026,"items":[]}`
	got := ExtractJSON(raw)
	if string(got) != raw {
		t.Fatalf("expected byte-for-byte passthrough, got %q", got)
	}
}

func TestExtractJSONStripsCodeFences(t *testing.T) {
	raw := "```json\n{\"year\": 2026}\n```"
	got := ExtractJSON(raw)
	if string(got) != `{"year": 2026}` {
		t.Fatalf("expected fenced JSON recovered, got %q", got)
	}
}

func TestExtractJSONSlicesOutSurroundingProse(t *testing.T) {
	raw := "Sure! Here is the analysis:\n{\"year\": 2026}\nLet me know if you need anything else."
	got := ExtractJSON(raw)
	if string(got) != `{"year": 2026}` {
		t.Fatalf("expected embedded object recovered, got %q", got)
	}
}

func TestExtractJSONRecoversArrays(t *testing.T) {
	raw := "here you go [1, 2, 3] thanks"
	got := ExtractJSON(raw)
	if string(got) != `[1, 2, 3]` {
		t.Fatalf("expected embedded array recovered, got %q", got)
	}
}

func TestExtractJSONStripsControlCharacters(t *testing.T) {
	raw := "{\"opinion\": \"fine\x01\x02\"}"
	got := ExtractJSON(raw)
	if string(got) != `{"opinion": "fine"}` {
		t.Fatalf("expected control characters stripped, got %q", got)
	}
}

func TestExtractJSONReturnsNilForProse(t *testing.T) {
	if got := ExtractJSON("I could not process the documents, sorry."); got != nil {
		t.Fatalf("expected nil for non-JSON text, got %q", got)
	}
}

func TestExtractJSONReturnsNilForBrokenValue(t *testing.T) {
	if got := ExtractJSON(`{"year": 2026, "items": [`); got != nil {
		t.Fatalf("expected nil for unclosed JSON, got %q", got)
	}
}
