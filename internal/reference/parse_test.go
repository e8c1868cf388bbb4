package reference

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want *ParsedReference
	}{
		{
			name: "single verse",
			in:   "Genesis 1:1",
			want: &ParsedReference{Book: "Genesis", Chapter: 1, VerseStart: 1},
		},
		{
			name: "verse range",
			in:   "Exodus 12:1-10",
			want: &ParsedReference{Book: "Exodus", Chapter: 12, VerseStart: 1, VerseEnd: 10},
		},
		{
			name: "cross-chapter range keeps start anchor",
			in:   "Judges 4:4-5:31",
			want: &ParsedReference{Book: "Judges", Chapter: 4, VerseStart: 4, VerseEnd: 31},
		},
		{
			name: "bare chapter",
			in:   "Exodus 5",
			want: &ParsedReference{Book: "Exodus", Chapter: 5, VerseStart: 1},
		},
		{
			name: "bare chapter with page count",
			in:   "Exodus 5 (12)",
			want: &ParsedReference{Book: "Exodus", Chapter: 5, VerseStart: 1},
		},
		{
			name: "bare book",
			in:   "Obadiah",
			want: &ParsedReference{Book: "Obadiah", Chapter: 1, VerseStart: 1},
		},
		{
			name: "multi-word book",
			in:   "Song of Songs 2:3",
			want: &ParsedReference{Book: "Song of Songs", Chapter: 2, VerseStart: 3},
		},
		{
			name: "numbered book",
			in:   "II Kings 8:1",
			want: &ParsedReference{Book: "II Kings", Chapter: 8, VerseStart: 1},
		},
		{
			name: "seder in plain chapter numbering",
			in:   "Isaiah Seder 12",
			want: &ParsedReference{Book: "Isaiah", Chapter: 12, VerseStart: 1},
		},
		{
			name: "seder crossing into second volume",
			in:   "Kings Seder 30",
			want: &ParsedReference{Book: "II Kings", Chapter: 8, VerseStart: 1},
		},
		{
			name: "seder in first volume",
			in:   "Kings Seder 5",
			want: &ParsedReference{Book: "I Kings", Chapter: 5, VerseStart: 1},
		},
		{
			name: "seder case-insensitive",
			in:   "Kings SEDER 30",
			want: &ParsedReference{Book: "II Kings", Chapter: 8, VerseStart: 1},
		},
		{
			name: "messy whitespace",
			in:   "  Genesis   1:1 ",
			want: &ParsedReference{Book: "Genesis", Chapter: 1, VerseStart: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.in)
			require.NotNil(t, got, "Parse(%q)", tt.in)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse_Rejects(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"empty", ""},
		{"whitespace only", "  \t "},
		{"no book name", "5:3"},
		{"no book range", "4:4-5:31"},
		{"bare numbers", "12"},
		{"descending verse range", "Genesis 1:10-5"},
		{"descending chapter range", "Judges 5:1-4:31"},
		{"zero chapter", "Genesis 0:1"},
		{"zero verse", "Genesis 1:0"},
		{"unknown bare book", "Fictional"},
		{"seder past combined range", "Kings Seder 48"},
		{"seder past book range", "Obadiah Seder 2"},
		{"seder zero", "Kings Seder 0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Nil(t, Parse(tt.in), "Parse(%q)", tt.in)
		})
	}
}

func TestParse_FormatRoundTrip(t *testing.T) {
	refs := []ParsedReference{
		{Book: "Genesis", Chapter: 1, VerseStart: 1},
		{Book: "Exodus", Chapter: 12, VerseStart: 1, VerseEnd: 10},
		{Book: "Song of Songs", Chapter: 2, VerseStart: 3},
		{Book: "II Kings", Chapter: 8, VerseStart: 1},
	}

	for _, ref := range refs {
		got := Parse(Format(ref, StyleColon))
		require.NotNil(t, got, "round-trip of %+v", ref)
		assert.Equal(t, ref, *got)
	}
}

func TestFormat_Dot(t *testing.T) {
	assert.Equal(t, "Genesis.1.1", Format(ParsedReference{Book: "Genesis", Chapter: 1, VerseStart: 1}, StyleDot))
	assert.Equal(t, "Song_of_Songs.2.3-5", Format(ParsedReference{Book: "Song of Songs", Chapter: 2, VerseStart: 3, VerseEnd: 5}, StyleDot))
}

func TestExtractBookName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Genesis 1:1", "Genesis"},
		{"Reading from Isaiah this week", "Isaiah"},
		{"Parashat Shoftim", "Judges"}, // alternate resolves to canonical
		{"nothing biblical here", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractBookName(tt.in))
		})
	}
}
