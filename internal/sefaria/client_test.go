package sefaria

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL, nil)
}

func TestFetchBook(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/Obadiah", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"ref": "Obadiah",
			"he": [["חזון עבדיה", "הנה קטן"]],
			"text": [["The vision of Obadiah.", "Behold, small"]]
		}`))
	})

	book, err := c.FetchBook(context.Background(), "Obadiah")
	require.NoError(t, err)

	require.Len(t, book.Hebrew, 1)
	assert.Len(t, book.Hebrew[0], 2)
	require.Len(t, book.English, 1)
	assert.Equal(t, "The vision of Obadiah.", book.English[0][0])
}

func TestFetchBook_FlatShape(t *testing.T) {
	// Single-chapter books come back as []string, not [][]string
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"ref": "Obadiah",
			"he": ["חזון עבדיה"],
			"text": ["The vision of Obadiah."]
		}`))
	})

	book, err := c.FetchBook(context.Background(), "Obadiah")
	require.NoError(t, err)

	require.Len(t, book.Hebrew, 1)
	assert.Equal(t, "חזון עבדיה", book.Hebrew[0][0])
}

func TestFetchChapter_PathEncoding(t *testing.T) {
	var gotPath string
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`{"ref": "I Kings 3", "he": ["א", "ב"], "text": ["one", "two"]}`))
	})

	hebrew, english, err := c.FetchChapter(context.Background(), "I Kings", 3)
	require.NoError(t, err)

	// Spaces become underscores in the path
	assert.Equal(t, "/I_Kings.3", gotPath)
	assert.Len(t, hebrew, 2)
	assert.Len(t, english, 2)
}

func TestVerseCount(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"ref": "Genesis 1", "he": ["א", "ב", "ג"], "text": ["1", "2", "3"]}`))
	})

	count, err := c.VerseCount(context.Background(), "Genesis", 1)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestFetch_NotFound(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := c.FetchBook(context.Background(), "Nonexistent")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestFetch_APIError(t *testing.T) {
	// Sefaria reports unknown refs with 200 + an error field
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error": "Could not find title in reference: Bogus"}`))
	})

	_, err := c.FetchBook(context.Background(), "Bogus")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestFetch_ServerError(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := c.FetchBook(context.Background(), "Genesis")
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrNotFound))
}
