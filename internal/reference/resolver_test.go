package reference

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joodsetexten/tanach-api/internal/tanach"
)

// fakeOracle serves scripted verse counts keyed by "book/chapter".
type fakeOracle struct {
	counts map[string]int
	err    error
	calls  int
}

func (f *fakeOracle) VerseCount(ctx context.Context, book string, chapter int) (int, error) {
	f.calls++
	if f.err != nil {
		return 0, f.err
	}
	return f.counts[key(book, chapter)], nil
}

func key(book string, chapter int) string {
	return fmt.Sprintf("%s/%d", book, chapter)
}

func TestReaderLink(t *testing.T) {
	r := NewResolver(nil)
	ctx := context.Background()

	loc := r.ReaderLink(ctx, "Genesis 1:1")
	require.NotNil(t, loc)
	assert.Equal(t, "bereshit", loc.BookID)
	assert.Equal(t, tanach.CategoryTorah, loc.Category)
	assert.Equal(t, 1, loc.Chapter)
	assert.Equal(t, 1, loc.VerseStart)
}

func TestReaderLink_AlternateName(t *testing.T) {
	r := NewResolver(nil)

	loc := r.ReaderLink(context.Background(), "Bereshit 2:4")
	require.NotNil(t, loc)
	assert.Equal(t, "bereshit", loc.BookID)
	assert.Equal(t, 2, loc.Chapter)
}

func TestReaderLink_Seder(t *testing.T) {
	r := NewResolver(nil)

	loc := r.ReaderLink(context.Background(), "Kings Seder 30")
	require.NotNil(t, loc)
	assert.Equal(t, "melachim2", loc.BookID)
	assert.Equal(t, 8, loc.Chapter)
}

func TestReaderLink_Rejects(t *testing.T) {
	r := NewResolver(nil)
	ctx := context.Background()

	tests := []struct {
		name string
		in   string
	}{
		{"unparseable", "5:3"},
		{"unknown book", "Enoch 1:1"},
		{"chapter past range", "Genesis 51:1"},
		{"chapter zero", "Genesis 0:1"},
		{"empty", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Nil(t, r.ReaderLink(ctx, tt.in))
		})
	}
}

func TestReaderLink_VerseOracle(t *testing.T) {
	oracle := &fakeOracle{counts: map[string]int{key("Genesis", 1): 31}}
	r := NewResolver(oracle)
	ctx := context.Background()

	// Within range
	assert.NotNil(t, r.ReaderLink(ctx, "Genesis 1:2-31"))

	// Start verse past the chapter
	assert.Nil(t, r.ReaderLink(ctx, "Genesis 1:32"))

	// End verse past the chapter
	assert.Nil(t, r.ReaderLink(ctx, "Genesis 1:1-40"))
}

func TestReaderLink_OracleSkippedForPlainStart(t *testing.T) {
	oracle := &fakeOracle{counts: map[string]int{}}
	r := NewResolver(oracle)

	// Verse 1 with no range never needs the oracle
	loc := r.ReaderLink(context.Background(), "Genesis 1:1")
	assert.NotNil(t, loc)
	assert.Zero(t, oracle.calls)
}

func TestReaderLink_OracleFailureIsNonFatal(t *testing.T) {
	oracle := &fakeOracle{err: errors.New("store offline")}
	r := NewResolver(oracle)

	// The verse check degrades to chapter-bound validation only
	loc := r.ReaderLink(context.Background(), "Genesis 1:2-999")
	assert.NotNil(t, loc)
}

func TestReaderLink_CrossChapterEndNotChecked(t *testing.T) {
	oracle := &fakeOracle{counts: map[string]int{key("Judges", 4): 24}}
	r := NewResolver(oracle)

	// End verse 31 belongs to chapter 5; it must not be rejected against
	// chapter 4's count of 24
	loc := r.ReaderLink(context.Background(), "Judges 4:4-5:31")
	require.NotNil(t, loc)
	assert.Equal(t, 4, loc.Chapter)
	assert.Equal(t, 4, loc.VerseStart)
}

func TestConvertSefariaURL(t *testing.T) {
	r := NewResolver(nil)
	ctx := context.Background()

	tests := []struct {
		name    string
		url     string
		wantID  string
		wantCh  int
		wantVer int
	}{
		{"full URL", "https://www.sefaria.org/Genesis.1.1", "bereshit", 1, 1},
		{"path only", "/Genesis.3.4", "bereshit", 3, 4},
		{"underscored book", "https://www.sefaria.org/Song_of_Songs.2.3", "shir_hashirim", 2, 3},
		{"verse range", "https://www.sefaria.org/Exodus.12.1-10", "shemot", 12, 1},
		{"chapter only", "https://www.sefaria.org/Obadiah.1", "ovadya", 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc := r.ConvertSefariaURL(ctx, tt.url)
			require.NotNil(t, loc, tt.url)
			assert.Equal(t, tt.wantID, loc.BookID)
			assert.Equal(t, tt.wantCh, loc.Chapter)
			assert.Equal(t, tt.wantVer, loc.VerseStart)
		})
	}
}

func TestConvertSefariaURL_Rejects(t *testing.T) {
	r := NewResolver(nil)
	ctx := context.Background()

	assert.Nil(t, r.ConvertSefariaURL(ctx, "https://www.sefaria.org/texts"))
	assert.Nil(t, r.ConvertSefariaURL(ctx, "https://www.sefaria.org/Enoch.1.1"))
	assert.Nil(t, r.ConvertSefariaURL(ctx, ""))
}
