package affiliation

import "testing"

func TestSmartTitle(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{".", "."},
		{"department of psychology, faculty of medicine.", "Department of Psychology, Faculty of Medicine."},
		{"al-azhar university, damietta, egypt.", "Al-Azhar University, Damietta, Egypt."},
		// The first word of a clause is capitalized even when it is a
		// stopword.
		{"of mice, and men.", "Of Mice, And Men."},
		{"THE FACULTY OF ENGINEERING.", "The Faculty of Engineering."},
	}
	for _, tt := range tests {
		if got := SmartTitle(tt.in); got != tt.want {
			t.Errorf("SmartTitle(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTitleWords(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"cairo university", "Cairo University"},
		{"al-azhar", "Al-Azhar"},
		{"KAFR EL SHEIKH", "Kafr El Sheikh"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := titleWords(tt.in); got != tt.want {
			t.Errorf("titleWords(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestClean(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  a   b\n\tc  ", "a b c"},
		{"", ""},
		{"already clean", "already clean"},
	}
	for _, tt := range tests {
		if got := Clean(tt.in); got != tt.want {
			t.Errorf("Clean(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSplitClauses(t *testing.T) {
	got := splitClauses("a, b ,, c\nd")
	want := []string{"a", "b", "c", "d"}
	if len(got) != len(want) {
		t.Fatalf("splitClauses: got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("splitClauses[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	if out := splitClauses(""); out != nil {
		t.Errorf("splitClauses(\"\") = %v, want nil", out)
	}
}
