package affiliation

import (
	"strings"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "department first with alias-only university",
			in:   "Psychology department, Damietta, alazhar",
			want: "Department of Psychology, Faculty of Medicine, Al-Azhar University, Damietta, Egypt.",
		},
		{
			name: "abbreviated university expanded",
			in:   "Dept of Comp Sci, Faculty of Engineering, Cairo Univ, Egypt",
			want: "Department of Comp Sci, Faculty of Engineering, Cairo University, Cairo, Egypt.",
		},
		{
			name: "school keyword as faculty",
			in:   "School of Medicine, Tanta, Egypt",
			want: "School of Medicine, Tanta, Egypt.",
		},
		{
			name: "misspelled city corrected",
			in:   "Orthopedic surgery , faculty of medicine,al-azhar university damitta",
			want: "Department of Orthopedic Surgery, Faculty of Medicine, Al-Azhar University, Damietta, Egypt.",
		},
		{
			name: "fully formed input",
			in:   "Orthopedic Surgery Department, Damietta Faculty of Medicine, Al-Azhar University, Egypt.",
			want: "Department of Orthopedic Surgery, Faculty of Medicine, Al-Azhar University, Damietta, Egypt.",
		},
		{
			name: "heavily misspelled single clause",
			in:   "Orthopedic depridement facality of medicine domitta Al azher",
			want: "Department of Orthopedic Surgery, Faculty of Medicine, Al-Azhar University, Damietta, Egypt.",
		},
		{
			name: "center clause as institution",
			in:   "Kafr El Sheikh Ophthalmology Center",
			want: "Department of Ophthalmology, Kafr El Sheikh Ophthalmology Center, Kafr El Sheikh, Egypt.",
		},
		{
			name: "no department present",
			in:   "Faculty of Medicine, Al-Azhar university, Cairo",
			want: "Faculty of Medicine, Al-Azhar University, Cairo, Egypt.",
		},
		{
			name: "complete five field input",
			in:   "Department of Otorhinolaryngology, Damietta Faculty of Medicine, Al-Azhar University, Damietta, Egypt.",
			want: "Department of Otorhinolaryngology, Faculty of Medicine, Al-Azhar University, Damietta, Egypt.",
		},
		{
			name: "misspelled department keyword",
			in:   "Deparmtent of Clinical Pathology, Damietta Faculty of Medicine, Al-Azhar University, Damietta, Egypt",
			want: "Department of Clinical Pathology, Faculty of Medicine, Al-Azhar University, Damietta, Egypt.",
		},
		{
			name: "role phrase with misspelled city",
			in:   "lecturer of otorhinolaryngolgy,al azhar faculty of medicine new dameitta",
			want: "Department of Otorhinolaryngolgy, Faculty of Medicine, Al-Azhar University, Damietta, Egypt.",
		},
		{
			name: "parenthetical city retained",
			in:   "Pediatric Department, Al-Azhar Faculty of Medicine (Damietta)",
			want: "Department of Pediatric, Faculty of Medicine, Al-Azhar University, Damietta, Egypt.",
		},
		{
			name: "department only with inferred faculty",
			in:   "Department of Radiology",
			want: "Department of Radiology, Faculty of Medicine.",
		},
		{
			name: "role phrase with hospitals clause",
			in:   "Resident of Neurosurgery, Al-Azhar University Hospitals, Damietta, Egypt",
			want: "Department of Neurosurgery, Faculty of Medicine, Al-Azhar University, Damietta, Egypt.",
		},
		{
			name: "department and faculty in one clause",
			in:   "Department of Neurosurgery Damietta Faculty of Medicine, Al-Azhar University",
			want: "Department of Neurosurgery, Faculty of Medicine, Al-Azhar University, Damietta, Egypt.",
		},
		{
			name: "city only inside university clause",
			in:   "Department of Audiovestibular Medicine,Faculty of Medicine Mansoura University, Mansoura, Egypt",
			want: "Department of Audiovestibular Medicine, Faculty of Medicine, Mansoura University, Mansoura, Egypt.",
		},
		{
			name: "empty input",
			in:   "",
			want: ".",
		},
		{
			name: "whitespace only input",
			in:   "   \n\t ",
			want: ".",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.in)
			if got != tt.want {
				t.Errorf("Normalize(%q):\n got %q\nwant %q", tt.in, got, tt.want)
			}
		})
	}
}

// The engine is a pure function: repeated calls on the same input must
// agree. Round-tripping the output is NOT a supported property; the
// normalized sentence is prose, not a re-parseable affiliation.
func TestNormalizeStable(t *testing.T) {
	inputs := []string{
		"Psychology department, Damietta, alazhar",
		"Kafr El Sheikh Ophthalmology Center",
		"Department of Radiology",
		"",
	}
	for _, in := range inputs {
		first := Normalize(in)
		for i := 0; i < 3; i++ {
			if got := Normalize(in); got != first {
				t.Errorf("Normalize(%q) unstable: %q then %q", in, first, got)
			}
		}
	}
}

// Every city key, presented as a lone clause in any case, must come back
// in corrected spelling and carry its country.
func TestNormalizeCityTable(t *testing.T) {
	v := DefaultVocabulary()
	n := NewNormalizer(v)

	for _, city := range v.cityKeys {
		want := v.CityCorrections[city]
		if want == "" {
			want = titleWords(city)
		}
		wantCountry := v.CityToCountry[city]

		for _, in := range []string{city, strings.ToUpper(city), titleWords(city)} {
			res := n.NormalizeDetailed(in)
			if res.City.Value != want {
				t.Errorf("city %q as %q: got city %q, want %q", city, in, res.City.Value, want)
			}
			if res.Country.Value != wantCountry {
				t.Errorf("city %q as %q: got country %q, want %q", city, in, res.Country.Value, wantCountry)
			}
			if res.Country.Provenance != Inferred {
				t.Errorf("city %q: country provenance = %v, want inferred", city, res.Country.Provenance)
			}
		}
	}
}

func TestNormalizeMisspelledCityAnywhere(t *testing.T) {
	inputs := []string{
		"domitta",
		"Faculty of Medicine, domitta",
		"Surgery Department, Al-Azhar University, Domitta",
	}
	for _, in := range inputs {
		res := NewNormalizer(nil).NormalizeDetailed(in)
		if res.City.Value != "Damietta" {
			t.Errorf("NormalizeDetailed(%q).City = %q, want Damietta", in, res.City.Value)
		}
		if strings.Contains(strings.ToLower(res.Normalized), "domitta") {
			t.Errorf("NormalizeDetailed(%q) output %q still contains the misspelling", in, res.Normalized)
		}
	}
}

// Once a clause is attributed to the university, the same clause text
// must never be selected as the city, regardless of case or padding.
func TestNormalizeNoDuplicateFields(t *testing.T) {
	inputs := []string{
		"Al-Azhar University, Cairo",
		"al-azhar university, cairo",
		"  Cairo University  , Egypt",
	}
	for _, in := range inputs {
		res := NewNormalizer(nil).NormalizeDetailed(in)
		if res.University.Value == "" {
			t.Fatalf("NormalizeDetailed(%q): no university extracted", in)
		}
		if strings.EqualFold(res.City.Value, res.University.Value) {
			t.Errorf("NormalizeDetailed(%q): city %q duplicates university", in, res.City.Value)
		}
	}
}

func TestNormalizeDetailedProvenance(t *testing.T) {
	n := NewNormalizer(nil)

	res := n.NormalizeDetailed("Psychology department, Damietta, alazhar")
	if res.Department.Provenance != Extracted {
		t.Errorf("department provenance = %v, want extracted", res.Department.Provenance)
	}
	if res.Faculty.Provenance != Inferred {
		t.Errorf("faculty provenance = %v, want inferred", res.Faculty.Provenance)
	}
	if res.Country.Provenance != Inferred {
		t.Errorf("country provenance = %v, want inferred", res.Country.Provenance)
	}

	// First-clause heuristic marks the department as inferred.
	res = n.NormalizeDetailed("Orthopedic surgery , faculty of medicine,al-azhar university damitta")
	if res.Department.Value != "Orthopedic Surgery" || res.Department.Provenance != Inferred {
		t.Errorf("first-clause department = %+v, want inferred Orthopedic Surgery", res.Department)
	}

	res = n.NormalizeDetailed("")
	for name, f := range map[string]Field{
		"department": res.Department,
		"faculty":    res.Faculty,
		"university": res.University,
		"city":       res.City,
		"country":    res.Country,
	} {
		if f.Provenance != Absent || f.Value != "" {
			t.Errorf("empty input: %s = %+v, want absent", name, f)
		}
	}
}

func TestNormalizeConcurrent(t *testing.T) {
	n := NewNormalizer(nil)
	in := "Department of Pediatrics,Faculty of Medicine, Al-Azhar University, Damitta, Egypt"
	want := n.Normalize(in)

	done := make(chan string, 16)
	for i := 0; i < 16; i++ {
		go func() { done <- n.Normalize(in) }()
	}
	for i := 0; i < 16; i++ {
		if got := <-done; got != want {
			t.Errorf("concurrent Normalize: got %q, want %q", got, want)
		}
	}
}
