package jsonfmt

import (
	"bytes"
	"strings"
	"testing"
)

func TestParseSingleObject(t *testing.T) {
	f := &Format{}
	input := `{"code": "IJMA-2025-101", "title": "Outcomes", "authors": [{"name": "Ahmed Hassan"}]}`
	records, err := f.Parse(strings.NewReader(input), nil)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("len(records) = %d, want 1", len(records))
	}
	if records[0].Code != "IJMA-2025-101" || len(records[0].Authors) != 1 {
		t.Errorf("record = %+v", records[0])
	}
}

func TestParseArray(t *testing.T) {
	f := &Format{}
	input := `[{"title": "First"}, {"title": "Second"}]`
	records, err := f.Parse(strings.NewReader(input), nil)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if len(records) != 2 || records[1].Title != "Second" {
		t.Errorf("records = %+v", records)
	}
}

func TestParseEmpty(t *testing.T) {
	f := &Format{}
	if _, err := f.Parse(strings.NewReader("  "), nil); err == nil {
		t.Error("Parse() of empty input expected error")
	}
}

func TestSerializeRoundTrip(t *testing.T) {
	f := &Format{}
	records, err := f.Parse(strings.NewReader(`{"title": "Outcomes", "keywords": "hernia"}`), nil)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	var buf bytes.Buffer
	if err := f.Serialize(&buf, records, nil); err != nil {
		t.Fatalf("Serialize() error: %v", err)
	}

	again, err := f.Parse(&buf, nil)
	if err != nil {
		t.Fatalf("Parse() of serialized output error: %v", err)
	}
	if len(again) != 1 || again[0].Title != "Outcomes" {
		t.Errorf("round trip changed record: %+v", again)
	}
}

func TestCanParse(t *testing.T) {
	f := &Format{}
	if !f.CanParse([]byte(`{"title": "x"}`)) {
		t.Error("CanParse() = false for JSON object")
	}
	if f.CanParse([]byte("title: x")) {
		t.Error("CanParse() = true for YAML")
	}
}
