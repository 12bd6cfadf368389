package yamlfmt

import (
	"bytes"
	"strings"
	"testing"
)

const yamlRecord = `code: IJMA-2025-101
title: Outcomes of Laparoscopic Repair in Adults
research_type: Original Article
date_received: 24-08-2025
date_accepted: 21-09-2025
authors:
  - name: Ahmed Mohamed Hassan
    email: ahmed@example.org
    affiliation: Psychology department, Damietta, alazhar
keywords: hernia; laparoscopy
`

func TestParse(t *testing.T) {
	f := &Format{}
	records, err := f.Parse(strings.NewReader(yamlRecord), nil)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("len(records) = %d, want 1", len(records))
	}
	m := records[0]
	if m.Code != "IJMA-2025-101" {
		t.Errorf("Code = %q", m.Code)
	}
	if len(m.Authors) != 1 || m.Authors[0].Email != "ahmed@example.org" {
		t.Errorf("Authors = %+v", m.Authors)
	}
}

func TestParseMultiDocument(t *testing.T) {
	f := &Format{}
	input := "title: First\n---\ntitle: Second\n"
	records, err := f.Parse(strings.NewReader(input), nil)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if len(records) != 2 || records[0].Title != "First" || records[1].Title != "Second" {
		t.Errorf("records = %+v", records)
	}
}

func TestSerializeRoundTrip(t *testing.T) {
	f := &Format{}
	records, err := f.Parse(strings.NewReader(yamlRecord), nil)
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
	if len(again) != 1 || again[0].Title != records[0].Title {
		t.Errorf("round trip changed record: %+v", again)
	}
}

func TestCanParse(t *testing.T) {
	f := &Format{}
	if !f.CanParse([]byte("title: x\n")) {
		t.Error("CanParse() = false for YAML mapping")
	}
	if f.CanParse([]byte(`{"title": "x"}`)) {
		t.Error("CanParse() = true for JSON")
	}
}
