package manuscript

import (
	"reflect"
	"testing"
)

func TestFormatTitle(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{
			"outcomes of laparoscopic repair in adults, a prospective study.",
			"Outcomes of Laparoscopic Repair in Adults, a Prospective Study",
		},
		{
			"THE ROLE OF MRI IN DIAGNOSIS",
			"The Role of Mri in Diagnosis",
		},
		{"effect  of  vitamin d", "Effect of Vitamin D"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := FormatTitle(tt.in); got != tt.want {
			t.Errorf("FormatTitle(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatKeywords(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"hernia; laparoscopy; mesh repair", "Hernia; Laparoscopy; Mesh Repair;"},
		{"hernia, laparoscopy", "Hernia; Laparoscopy;"},
		{"hernia.", "Hernia;"},
		{"", ";"},
	}
	for _, tt := range tests {
		if got := FormatKeywords(tt.in); got != tt.want {
			t.Errorf("FormatKeywords(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatResearchType(t *testing.T) {
	if got, want := FormatResearchType("Original Article"), "Main Subject: [Original Article]"; got != want {
		t.Errorf("FormatResearchType() = %q, want %q", got, want)
	}
}

func TestFormatCitation(t *testing.T) {
	got := FormatCitation("Outcomes of Repair", []string{"Hassan AM", "Ibrahim S"}, "2025")
	want := "Hassan AM, Ibrahim S. Outcomes of Repair. IJMA 2025; XX-XX [Article in Press]."
	if got != want {
		t.Errorf("FormatCitation() = %q, want %q", got, want)
	}

	got = FormatCitation("Outcomes of Repair", nil, "2025")
	want = "Outcomes of Repair. IJMA 2025; XX-XX [Article in Press]."
	if got != want {
		t.Errorf("FormatCitation() with no authors = %q, want %q", got, want)
	}
}

func TestSplitAbstract(t *testing.T) {
	abstract := "Background: Hernia repair is common.\n\nMethods: A prospective study.\nConclusion\n"
	got := SplitAbstract(abstract)
	want := []AbstractSection{
		{Label: "Background:", Content: "Hernia repair is common."},
		{Label: "Methods:", Content: "A prospective study."},
		{Label: "Conclusion"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SplitAbstract() = %+v, want %+v", got, want)
	}
}

func TestJoinParagraphs(t *testing.T) {
	got := JoinParagraphs("First paragraph.\n\n  Second paragraph.  \n")
	want := "First paragraph.\n\nSecond paragraph."
	if got != want {
		t.Errorf("JoinParagraphs() = %q, want %q", got, want)
	}
}

func TestShortAuthors(t *testing.T) {
	got := ShortAuthors([]string{"Ahmed Mohamed Hassan", "Sara Ibrahim"})
	want := []string{"Hassan AM", "Ibrahim S"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ShortAuthors() = %v, want %v", got, want)
	}
}
