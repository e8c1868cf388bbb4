// Package reference parses Sefaria-style citation strings and resolves
// them into validated reader locators.
//
// Parsing never fails with an error on malformed user input; every
// function returns nil for anything it cannot make sense of. Only the
// optional verse-bound validation touches the network, and a failure
// there degrades to skipping the check.
package reference

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/joodsetexten/tanach-api/internal/tanach"
)

// ParsedReference is the raw result of parsing a citation string. The book
// name has not yet been validated against the book tables.
type ParsedReference struct {
	Book       string `json:"book"`
	Chapter    int    `json:"chapter"`
	VerseStart int    `json:"verseStart"`
	VerseEnd   int    `json:"verseEnd,omitempty"` // 0 when the citation has no end verse
}

// Citation grammar, tried in precedence order by Parse.
var (
	// Digits, colons, dashes, and spaces only: no book name present.
	noBookPattern = regexp.MustCompile(`^[\d\s:\-]+$`)

	// "Judges 4:4-5:31" (cross-chapter range)
	crossChapterPattern = regexp.MustCompile(`^(.+?)\s+(\d+):(\d+)-(\d+):(\d+)$`)

	// "Genesis 1:1" or "Exodus 12:1-10" (same chapter)
	sameChapterPattern = regexp.MustCompile(`^(.+?)\s+(\d+):(\d+)(?:-(\d+))?$`)

	// "Kings Seder 30" (combined-book daily-study cycle)
	sederPattern = regexp.MustCompile(`^(?i:(.+?)\s+seder\s+(\d+))$`)

	// "Exodus 5", optionally "Exodus 5 (12)" with a trailing page count
	bareChapterPattern = regexp.MustCompile(`^(.+?)\s+(\d+)(?:\s+\(\d+\))?$`)

	// Letters, apostrophes, and spaces only: possibly a bare book name
	bareBookPattern = regexp.MustCompile(`^[\p{L}' ]+$`)
)

// Parse turns a citation string into a ParsedReference, or nil when the
// input matches no known citation form.
//
// For a cross-chapter range only the start coordinate survives in the
// result: chapter and verseStart anchor the range, verseEnd holds the
// final verse number, and the end chapter is dropped. This mirrors how
// the reader navigates (a locator points at a single start position).
func Parse(text string) *ParsedReference {
	cleaned := tanach.Clean(text)
	if cleaned == "" || noBookPattern.MatchString(cleaned) {
		return nil
	}

	if m := crossChapterPattern.FindStringSubmatch(cleaned); m != nil {
		c1, v1 := atoi(m[2]), atoi(m[3])
		c2, v2 := atoi(m[4]), atoi(m[5])
		if c1 < 1 || v1 < 1 || c2 < 1 || v2 < 1 {
			return nil
		}
		if c2 < c1 || (c2 == c1 && v2 < v1) {
			return nil
		}
		return &ParsedReference{Book: m[1], Chapter: c1, VerseStart: v1, VerseEnd: v2}
	}

	if m := sameChapterPattern.FindStringSubmatch(cleaned); m != nil {
		chapter, start := atoi(m[2]), atoi(m[3])
		if chapter < 1 || start < 1 {
			return nil
		}
		ref := &ParsedReference{Book: m[1], Chapter: chapter, VerseStart: start}
		if m[4] != "" {
			end := atoi(m[4])
			if end < 1 || end < start {
				return nil
			}
			ref.VerseEnd = end
		}
		return ref
	}

	if m := sederPattern.FindStringSubmatch(cleaned); m != nil {
		return parseSeder(m[1], atoi(m[2]))
	}

	if m := bareChapterPattern.FindStringSubmatch(cleaned); m != nil {
		chapter := atoi(m[2])
		if chapter < 1 {
			return nil
		}
		return &ParsedReference{Book: m[1], Chapter: chapter, VerseStart: 1}
	}

	// A bare book name is only accepted when the book tables know it.
	if bareBookPattern.MatchString(cleaned) && tanach.GetBook(cleaned) != nil {
		return &ParsedReference{Book: cleaned, Chapter: 1, VerseStart: 1}
	}

	return nil
}

// parseSeder translates "Book Seder N" notation. Combined books (Kings,
// Samuel, Chronicles) number their Seder across both internal volumes, so
// N is mapped onto the correct half using the fixed chapter counts.
func parseSeder(book string, n int) *ParsedReference {
	if n < 1 {
		return nil
	}
	name := tanach.Clean(book)
	if tanach.IsCombinedBook(name) {
		sub, chapter, ok := tanach.SplitSeder(name, n)
		if !ok {
			return nil
		}
		return &ParsedReference{Book: sub, Chapter: chapter, VerseStart: 1}
	}
	if b := tanach.GetBook(name); b != nil && n > b.Chapters {
		return nil
	}
	return &ParsedReference{Book: name, Chapter: n, VerseStart: 1}
}

// atoi is strconv.Atoi with a -1 sentinel for anything unparseable, which
// the bound checks above then reject.
func atoi(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return -1
	}
	return n
}

// ExtractBookName scans free-form text for a book name. Strict citations
// are parsed first; otherwise any known canonical or alternate name found
// as a substring wins (alternates resolve to their canonical form).
// Returns "" when nothing matches. Used to label liturgical titles like
// "Parashat Vayeitzei" that are not strict citations.
func ExtractBookName(text string) string {
	cleaned := tanach.Clean(text)
	if cleaned == "" {
		return ""
	}

	if ref := Parse(cleaned); ref != nil {
		return ref.Book
	}

	for _, name := range tanach.CanonicalNames() {
		if strings.Contains(cleaned, name) {
			return name
		}
	}
	alternates := tanach.AlternateNames()
	names := make([]string, 0, len(alternates))
	for alt := range alternates {
		names = append(names, alt)
	}
	sort.Strings(names)
	for _, alt := range names {
		if strings.Contains(cleaned, alt) {
			return alternates[alt]
		}
	}
	return ""
}
