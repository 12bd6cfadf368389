package manuscript

import "strconv"

// AuthorMark is one author line entry: the display name plus the
// superscript marker rendered before it. The marker is "*" or "*N" for
// the corresponding (first) author, a bare number for the others, and
// empty when every author shares the single affiliation.
type AuthorMark struct {
	Name   string
	Marker string
}

// NumberedAffiliation is one entry of the affiliation list.
type NumberedAffiliation struct {
	Number int
	Text   string
}

// NumberAffiliations pairs authors with their affiliations positionally
// and assigns numbers to unique affiliation strings in first-seen order.
// Input order is preserved 1:1: the Nth author always receives the
// marker of the Nth affiliation. Affiliation strings are compared
// exactly; normalize them first so equivalent affiliations collapse.
func NumberAffiliations(authors, affiliations []string) ([]AuthorMark, []NumberedAffiliation) {
	marks := make([]AuthorMark, 0, len(authors))
	var list []NumberedAffiliation

	numbers := make(map[string]int)
	unique := 0
	for _, aff := range affiliations {
		if _, seen := numbers[aff]; !seen {
			unique++
			numbers[aff] = unique
		}
	}
	allSame := unique == 1

	assigned := make(map[string]bool)
	for i, name := range authors {
		var marker string
		var number int
		if i < len(affiliations) {
			aff := affiliations[i]
			number = numbers[aff]
			if !assigned[aff] {
				assigned[aff] = true
				list = append(list, NumberedAffiliation{Number: number, Text: aff})
			}
		}

		switch {
		case allSame && i == 0:
			marker = "*"
		case allSame:
			marker = ""
		case i == 0 && number > 0:
			marker = "*" + strconv.Itoa(number)
		case number > 0:
			marker = strconv.Itoa(number)
		}
		marks = append(marks, AuthorMark{Name: name, Marker: marker})
	}

	return marks, list
}
