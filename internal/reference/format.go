package reference

import (
	"fmt"
	"strings"
)

// Style selects a citation rendering.
type Style int

const (
	// StyleColon renders "Genesis 1:1-5", the form Parse accepts.
	StyleColon Style = iota
	// StyleDot renders "Genesis.1.1-5", the Sefaria URL path form.
	StyleDot
)

// Format renders a ParsedReference as a citation string. It is the
// inverse of Parse for the colon style: Parse(Format(ref, StyleColon))
// yields ref back for any reference Parse can produce.
func Format(ref ParsedReference, style Style) string {
	switch style {
	case StyleDot:
		book := strings.ReplaceAll(ref.Book, " ", "_")
		s := fmt.Sprintf("%s.%d.%d", book, ref.Chapter, ref.VerseStart)
		if ref.VerseEnd > 0 {
			s += fmt.Sprintf("-%d", ref.VerseEnd)
		}
		return s
	default:
		s := fmt.Sprintf("%s %d:%d", ref.Book, ref.Chapter, ref.VerseStart)
		if ref.VerseEnd > 0 {
			s += fmt.Sprintf("-%d", ref.VerseEnd)
		}
		return s
	}
}
