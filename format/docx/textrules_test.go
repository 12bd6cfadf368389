package docx

import (
	"testing"

	"github.com/beevik/etree"
)

func TestDecimalPercents(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"response rate was 15%", "response rate was 15.0%"},
		{"12.5% of cases", "12.5% of cases"},
		{"10% and 20%", "10.0% and 20.0%"},
		{"no percentages", "no percentages"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := decimalPercents(tt.in); got != tt.want {
			t.Errorf("decimalPercents(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSpaceSymbols(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"p=0.05", "p = 0.05"},
		{"p  =  0.05", "p = 0.05"},
		{"12±3", "12 ± 3"},
		{"a = b ± c", "a = b ± c"},
	}
	for _, tt := range tests {
		if got := spaceSymbols(tt.in); got != tt.want {
			t.Errorf("spaceSymbols(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSpaceSymbolsKeepLines(t *testing.T) {
	got := spaceSymbolsKeepLines("p=0.05\n12±3")
	want := "p = 0.05\n12 ± 3"
	if got != want {
		t.Errorf("spaceSymbolsKeepLines() = %q, want %q", got, want)
	}
}

func TestApplyTextRules(t *testing.T) {
	got := applyTextRules("mean (SD) was 12±3 in 15% of cases")
	want := "mean [SD] was 12 ± 3 in 15.0% of cases"
	if got != want {
		t.Errorf("applyTextRules() = %q, want %q", got, want)
	}
}

func runTexts(p *etree.Element) []string {
	var out []string
	for _, r := range p.SelectElements("w:r") {
		text := ""
		for _, tEl := range r.SelectElements("w:t") {
			text += tEl.Text()
		}
		out = append(out, text)
	}
	return out
}

func TestAddRichTextCitationSuperscript(t *testing.T) {
	p := etree.NewElement("w:p")
	addRichText(p, "as reported (3)", 20)

	runs := p.SelectElements("w:r")
	if len(runs) != 2 {
		t.Fatalf("len(runs) = %d, want 2", len(runs))
	}
	cite := runs[1]
	if got := cite.SelectElement("w:t").Text(); got != "[3]" {
		t.Errorf("citation run text = %q, want %q", got, "[3]")
	}
	rPr := cite.SelectElement("w:rPr")
	if rPr.SelectElement("w:vertAlign") == nil {
		t.Error("citation run missing superscript")
	}
	if rPr.SelectElement("w:b") == nil {
		t.Error("citation run missing bold")
	}
}

func TestAddRichTextEtAl(t *testing.T) {
	p := etree.NewElement("w:p")
	addRichText(p, "Hassan et al reported improvement", 20)

	texts := runTexts(p)
	want := []string{"Hassan", " ", "et al", " reported improvement"}
	if len(texts) != len(want) {
		t.Fatalf("run texts = %v, want %v", texts, want)
	}
	for i := range want {
		if texts[i] != want[i] {
			t.Fatalf("run texts = %v, want %v", texts, want)
		}
	}

	runs := p.SelectElements("w:r")
	if runs[0].SelectElement("w:rPr").SelectElement("w:b") == nil {
		t.Error("author run before et al should be bold")
	}
	etAl := runs[2].SelectElement("w:rPr")
	if etAl.SelectElement("w:b") == nil || etAl.SelectElement("w:i") == nil {
		t.Error("et al run should be bold italic")
	}
}

func TestAddRunLineBreaks(t *testing.T) {
	p := etree.NewElement("w:p")
	addRun(p, "first\nsecond", bodyStyle(20))

	r := p.SelectElement("w:r")
	if r.SelectElement("w:br") == nil {
		t.Error("run missing line break")
	}
	texts := r.SelectElements("w:t")
	if len(texts) != 2 || texts[0].Text() != "first" || texts[1].Text() != "second" {
		t.Errorf("run texts wrong: %v", texts)
	}
}
