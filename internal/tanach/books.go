// Package tanach holds the canonical book tables for the Tanach corpus:
// book identifiers, categories, chapter counts, alternate (transliterated)
// names, and the weekly Torah portion index.
//
// The tables here are the single source of truth for "book known to this
// system". Everything that validates or resolves a citation goes through
// this package.
package tanach

import (
	"regexp"
	"strings"
)

// Category groups the books of the Tanach.
type Category string

const (
	CategoryTorah    Category = "torah"
	CategoryNeviim   Category = "neviim"
	CategoryTreiAsar Category = "trei_asara"
	CategoryKetuvim  Category = "ketuvim"
)

// Categories lists all categories in canonical order.
func Categories() []Category {
	return []Category{CategoryTorah, CategoryNeviim, CategoryTreiAsar, CategoryKetuvim}
}

// IsValid reports whether c is a known category.
func (c Category) IsValid() bool {
	switch c {
	case CategoryTorah, CategoryNeviim, CategoryTreiAsar, CategoryKetuvim:
		return true
	}
	return false
}

// Book describes one canonical book.
type Book struct {
	ID       string   // internal identifier, e.g. "bereshit"
	Name     string   // canonical English name, e.g. "Genesis"
	Category Category
	Chapters int // chapter count in the Hebrew (Masoretic) versification
}

// books lists every book in canonical order. Chapter counts follow the
// Masoretic versification used by the Sefaria corpus (Joel has 4 chapters,
// Malachi 3).
var books = []Book{
	// Torah
	{"bereshit", "Genesis", CategoryTorah, 50},
	{"shemot", "Exodus", CategoryTorah, 40},
	{"vayikra", "Leviticus", CategoryTorah, 27},
	{"bamidbar", "Numbers", CategoryTorah, 36},
	{"devarim", "Deuteronomy", CategoryTorah, 34},

	// Neviim
	{"yehoshua", "Joshua", CategoryNeviim, 24},
	{"shoftim", "Judges", CategoryNeviim, 21},
	{"shmuel1", "I Samuel", CategoryNeviim, 31},
	{"shmuel2", "II Samuel", CategoryNeviim, 24},
	{"melachim1", "I Kings", CategoryNeviim, 22},
	{"melachim2", "II Kings", CategoryNeviim, 25},
	{"yeshayahu", "Isaiah", CategoryNeviim, 66},
	{"yirmeyahu", "Jeremiah", CategoryNeviim, 52},
	{"yechezkel", "Ezekiel", CategoryNeviim, 48},

	// Trei Asar
	{"hoshea", "Hosea", CategoryTreiAsar, 14},
	{"yoel", "Joel", CategoryTreiAsar, 4},
	{"amos", "Amos", CategoryTreiAsar, 9},
	{"ovadya", "Obadiah", CategoryTreiAsar, 1},
	{"yona", "Jonah", CategoryTreiAsar, 4},
	{"michah", "Micah", CategoryTreiAsar, 7},
	{"nachum", "Nahum", CategoryTreiAsar, 3},
	{"chavakuk", "Habakkuk", CategoryTreiAsar, 3},
	{"tzefanya", "Zephaniah", CategoryTreiAsar, 3},
	{"chagai", "Haggai", CategoryTreiAsar, 2},
	{"zecharya", "Zechariah", CategoryTreiAsar, 14},
	{"malachi", "Malachi", CategoryTreiAsar, 3},

	// Ketuvim
	{"tehillim", "Psalms", CategoryKetuvim, 150},
	{"mishlei", "Proverbs", CategoryKetuvim, 31},
	{"iyov", "Job", CategoryKetuvim, 42},
	{"shir_hashirim", "Song of Songs", CategoryKetuvim, 8},
	{"rut", "Ruth", CategoryKetuvim, 4},
	{"eicha", "Lamentations", CategoryKetuvim, 5},
	{"kohelet", "Ecclesiastes", CategoryKetuvim, 12},
	{"esther", "Esther", CategoryKetuvim, 10},
	{"daniel", "Daniel", CategoryKetuvim, 12},
	{"ezra", "Ezra", CategoryKetuvim, 10},
	{"nechemya", "Nehemiah", CategoryKetuvim, 13},
	{"divrei_hayamim1", "I Chronicles", CategoryKetuvim, 29},
	{"divrei_hayamim2", "II Chronicles", CategoryKetuvim, 36},
}

// byName indexes books by canonical English name.
var byName = func() map[string]*Book {
	m := make(map[string]*Book, len(books))
	for i := range books {
		m[books[i].Name] = &books[i]
	}
	return m
}()

// byID indexes books by internal identifier.
var byID = func() map[string]*Book {
	m := make(map[string]*Book, len(books))
	for i := range books {
		m[books[i].ID] = &books[i]
	}
	return m
}()

// alternates maps transliterated Hebrew names and spelling variants to the
// canonical English name.
var alternates = map[string]string{
	"Bereshit":         "Genesis",
	"Bereishit":        "Genesis",
	"Shemot":           "Exodus",
	"Shmot":            "Exodus",
	"Vayikra":          "Leviticus",
	"Bamidbar":         "Numbers",
	"Devarim":          "Deuteronomy",
	"Yehoshua":         "Joshua",
	"Shoftim":          "Judges",
	"Shmuel I":         "I Samuel",
	"Shmuel II":        "II Samuel",
	"Melachim I":       "I Kings",
	"Melachim II":      "II Kings",
	"Yeshayahu":        "Isaiah",
	"Yirmeyahu":        "Jeremiah",
	"Yechezkel":        "Ezekiel",
	"Hoshea":           "Hosea",
	"Yoel":             "Joel",
	"Ovadya":           "Obadiah",
	"Yona":             "Jonah",
	"Michah":           "Micah",
	"Nachum":           "Nahum",
	"Chavakuk":         "Habakkuk",
	"Tzefanya":         "Zephaniah",
	"Chagai":           "Haggai",
	"Zecharya":         "Zechariah",
	"Tehillim":         "Psalms",
	"Mishlei":          "Proverbs",
	"Iyov":             "Job",
	"Shir HaShirim":    "Song of Songs",
	"Rut":              "Ruth",
	"Eicha":            "Lamentations",
	"Kohelet":          "Ecclesiastes",
	"Divrei HaYamim I": "I Chronicles",
	"Divrei HaYamim II": "II Chronicles",
	"Nechemya":         "Nehemiah",
}

// wsRun matches runs of whitespace, control characters, and non-breaking
// spaces, including the HTML entity form that leaks out of scraped titles.
var wsRun = regexp.MustCompile(`(?:&nbsp;|[\s\p{Cc}\x{00a0}])+`)

// Clean trims s and collapses internal whitespace, control characters, and
// non-breaking-space entities to single spaces.
func Clean(s string) string {
	return strings.TrimSpace(wsRun.ReplaceAllString(s, " "))
}

// Canonicalize cleans a book name and maps alternate spellings to the
// canonical English name. Unrecognized names pass through cleaned; empty
// input yields "".
func Canonicalize(name string) string {
	cleaned := Clean(name)
	if cleaned == "" {
		return ""
	}
	if canonical, ok := alternates[cleaned]; ok {
		return canonical
	}
	return cleaned
}

// GetBook looks up a book by canonical or alternate name.
// Returns nil for any name not in the tables.
func GetBook(name string) *Book {
	canonical := Canonicalize(name)
	if canonical == "" {
		return nil
	}
	return byName[canonical]
}

// GetBookByID looks up a book by internal identifier, e.g. "bereshit".
func GetBookByID(id string) *Book {
	return byID[id]
}

// AllBooks returns every book in canonical order.
func AllBooks() []Book {
	out := make([]Book, len(books))
	copy(out, books)
	return out
}

// BooksByCategory returns the books of one category in canonical order.
func BooksByCategory(c Category) []Book {
	var out []Book
	for _, b := range books {
		if b.Category == c {
			out = append(out, b)
		}
	}
	return out
}

// CanonicalNames returns every canonical English book name in order.
func CanonicalNames() []string {
	out := make([]string, len(books))
	for i, b := range books {
		out[i] = b.Name
	}
	return out
}

// AlternateNames returns the alternate-name table (alternate to canonical).
func AlternateNames() map[string]string {
	out := make(map[string]string, len(alternates))
	for k, v := range alternates {
		out[k] = v
	}
	return out
}

// sederSplit describes a combined book whose daily-study Seder numbering
// runs across two internal volumes.
type sederSplit struct {
	first         string
	second        string
	firstChapters int
}

// sederSplits is keyed by the combined name used in reading-cycle
// citations. The chapter counts must stay in sync with the books table.
var sederSplits = map[string]sederSplit{
	"Kings":      {"I Kings", "II Kings", 22},
	"Samuel":     {"I Samuel", "II Samuel", 31},
	"Chronicles": {"I Chronicles", "II Chronicles", 29},
}

// SplitSeder translates a combined-book Seder index to a (sub-book, chapter)
// pair, e.g. ("Kings", 30) -> ("II Kings", 8). The second result is the
// chapter within that sub-book. Returns ok=false when the book is not a
// combined book or n is outside the combined chapter range.
func SplitSeder(book string, n int) (string, int, bool) {
	split, found := sederSplits[Clean(book)]
	if !found || n < 1 {
		return "", 0, false
	}
	if n <= split.firstChapters {
		return split.first, n, true
	}
	second := byName[split.second]
	if second == nil || n > split.firstChapters+second.Chapters {
		return "", 0, false
	}
	return split.second, n - split.firstChapters, true
}

// IsCombinedBook reports whether name is a combined reading-cycle book
// ("Kings", "Samuel", "Chronicles").
func IsCombinedBook(name string) bool {
	_, ok := sederSplits[Clean(name)]
	return ok
}
