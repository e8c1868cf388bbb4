package tanach

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClean(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "Genesis", "Genesis"},
		{"surrounding space", "  Genesis  ", "Genesis"},
		{"internal runs", "I   Kings", "I Kings"},
		{"nbsp entity", "I&nbsp;Kings", "I Kings"},
		{"nbsp rune", "I Kings", "I Kings"},
		{"tabs and newlines", "Song\tof\nSongs", "Song of Songs"},
		{"empty", "", ""},
		{"only whitespace", " \t\n ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Clean(tt.in))
		})
	}
}

func TestCanonicalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Bereshit", "Genesis"},
		{"Shoftim", "Judges"},
		{"Divrei HaYamim II", "II Chronicles"},
		{"Genesis", "Genesis"},     // canonical names pass through
		{"Not A Book", "Not A Book"}, // unknown names pass through cleaned
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Canonicalize(tt.in))
		})
	}
}

func TestCanonicalize_Idempotent(t *testing.T) {
	// Canonicalizing a canonical result must be a fixed point
	for alt, canonical := range AlternateNames() {
		assert.Equal(t, canonical, Canonicalize(alt))
		assert.Equal(t, canonical, Canonicalize(Canonicalize(alt)))
	}
}

func TestGetBook(t *testing.T) {
	b := GetBook("Genesis")
	require.NotNil(t, b)
	assert.Equal(t, "bereshit", b.ID)
	assert.Equal(t, CategoryTorah, b.Category)
	assert.Equal(t, 50, b.Chapters)

	// Alternate name resolves to the same book
	assert.Equal(t, b, GetBook("Bereshit"))

	assert.Nil(t, GetBook("Maccabees"))
	assert.Nil(t, GetBook(""))
}

func TestGetBookByID(t *testing.T) {
	b := GetBookByID("melachim2")
	require.NotNil(t, b)
	assert.Equal(t, "II Kings", b.Name)

	assert.Nil(t, GetBookByID("bogus"))
}

func TestCanonShape(t *testing.T) {
	all := AllBooks()
	assert.Len(t, all, 39)

	assert.Len(t, BooksByCategory(CategoryTorah), 5)
	assert.Len(t, BooksByCategory(CategoryNeviim), 9)
	assert.Len(t, BooksByCategory(CategoryTreiAsar), 12)
	assert.Len(t, BooksByCategory(CategoryKetuvim), 13)

	// Every alternate points at a real book
	for alt, canonical := range AlternateNames() {
		assert.NotNil(t, GetBook(canonical), "alternate %q points at unknown book %q", alt, canonical)
	}
}

func TestMasoreticChapterCounts(t *testing.T) {
	// Spot checks where Masoretic and common English versification differ
	tests := []struct {
		book string
		want int
	}{
		{"Joel", 4},
		{"Malachi", 3},
		{"I Kings", 22},
		{"II Kings", 25},
		{"Psalms", 150},
	}

	for _, tt := range tests {
		b := GetBook(tt.book)
		require.NotNil(t, b, tt.book)
		assert.Equal(t, tt.want, b.Chapters, tt.book)
	}
}

func TestCategory_IsValid(t *testing.T) {
	for _, c := range Categories() {
		assert.True(t, c.IsValid())
	}
	assert.False(t, Category("apocrypha").IsValid())
	assert.False(t, Category("").IsValid())
}

func TestSplitSeder(t *testing.T) {
	tests := []struct {
		book     string
		n        int
		wantBook string
		wantCh   int
		wantOK   bool
	}{
		{"Kings", 1, "I Kings", 1, true},
		{"Kings", 22, "I Kings", 22, true},
		{"Kings", 23, "II Kings", 1, true},
		{"Kings", 30, "II Kings", 8, true},
		{"Kings", 47, "II Kings", 25, true},
		{"Kings", 48, "", 0, false}, // past the combined range
		{"Samuel", 31, "I Samuel", 31, true},
		{"Samuel", 32, "II Samuel", 1, true},
		{"Chronicles", 29, "I Chronicles", 29, true},
		{"Chronicles", 30, "II Chronicles", 1, true},
		{"Chronicles", 65, "II Chronicles", 36, true},
		{"Genesis", 5, "", 0, false}, // not a combined book
		{"Kings", 0, "", 0, false},
	}

	for _, tt := range tests {
		book, ch, ok := SplitSeder(tt.book, tt.n)
		assert.Equal(t, tt.wantOK, ok, "%s %d", tt.book, tt.n)
		assert.Equal(t, tt.wantBook, book, "%s %d", tt.book, tt.n)
		assert.Equal(t, tt.wantCh, ch, "%s %d", tt.book, tt.n)
	}
}

func TestIsCombinedBook(t *testing.T) {
	assert.True(t, IsCombinedBook("Kings"))
	assert.True(t, IsCombinedBook(" Samuel "))
	assert.False(t, IsCombinedBook("I Kings"))
	assert.False(t, IsCombinedBook("Genesis"))
}
