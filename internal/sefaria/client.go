// Package sefaria is a minimal client for the Sefaria texts API.
//
// It feeds the importer and, optionally, verse-count validation when
// the local corpus has no text for a chapter yet.
package sefaria

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ErrNotFound is returned when Sefaria has no text for the request.
var ErrNotFound = errors.New("text not found")

// Client talks to the Sefaria texts API.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger
}

// New creates a client for the given base URL,
// e.g. "https://www.sefaria.org/api/texts".
func New(baseURL string, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}
}

// BookText holds the full text of a book, chapter by chapter.
// Chapter and verse indices are zero-based.
type BookText struct {
	Name    string
	Hebrew  [][]string
	English [][]string
}

// textResponse mirrors the wire format. The "text" and "he" fields are
// [][]string for a whole book but []string for a single chapter, so
// they decode lazily.
type textResponse struct {
	Ref     string          `json:"ref"`
	Text    json.RawMessage `json:"text"`
	Hebrew  json.RawMessage `json:"he"`
	Error   string          `json:"error"`
	Lengths []int           `json:"lengths"`
}

// FetchBook retrieves the complete text of a book.
func (c *Client) FetchBook(ctx context.Context, name string) (*BookText, error) {
	resp, err := c.get(ctx, name)
	if err != nil {
		return nil, err
	}

	hebrew, err := decodeChapters(resp.Hebrew)
	if err != nil {
		return nil, fmt.Errorf("decode hebrew text for %q: %w", name, err)
	}
	english, err := decodeChapters(resp.Text)
	if err != nil {
		return nil, fmt.Errorf("decode english text for %q: %w", name, err)
	}

	return &BookText{
		Name:    name,
		Hebrew:  hebrew,
		English: english,
	}, nil
}

// FetchChapter retrieves one chapter's verses (Hebrew, English).
func (c *Client) FetchChapter(ctx context.Context, book string, chapter int) ([]string, []string, error) {
	resp, err := c.get(ctx, fmt.Sprintf("%s.%d", book, chapter))
	if err != nil {
		return nil, nil, err
	}

	hebrew, err := decodeVerses(resp.Hebrew)
	if err != nil {
		return nil, nil, fmt.Errorf("decode hebrew chapter %s %d: %w", book, chapter, err)
	}
	english, err := decodeVerses(resp.Text)
	if err != nil {
		return nil, nil, fmt.Errorf("decode english chapter %s %d: %w", book, chapter, err)
	}

	return hebrew, english, nil
}

// VerseCount reports how many verses a chapter has, per the Hebrew text.
// Satisfies the resolver's verse oracle.
func (c *Client) VerseCount(ctx context.Context, book string, chapter int) (int, error) {
	hebrew, _, err := c.FetchChapter(ctx, book, chapter)
	if err != nil {
		return 0, err
	}
	return len(hebrew), nil
}

// get performs one API request for a reference like "Genesis" or "Genesis.3".
func (c *Client) get(ctx context.Context, ref string) (*textResponse, error) {
	// Sefaria uses underscores for spaces in URL paths
	path := url.PathEscape(strings.ReplaceAll(ref, " ", "_"))
	reqURL := fmt.Sprintf("%s/%s?context=0", c.baseURL, path)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	c.logger.Debug("sefaria request", slog.String("ref", ref))

	res, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %q: %w", ref, err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%q: %w", ref, ErrNotFound)
	}
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %q: unexpected status %d", ref, res.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(res.Body, 32<<20))
	if err != nil {
		return nil, fmt.Errorf("read response for %q: %w", ref, err)
	}

	var resp textResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode response for %q: %w", ref, err)
	}
	if resp.Error != "" {
		return nil, fmt.Errorf("fetch %q: %s: %w", ref, resp.Error, ErrNotFound)
	}

	return &resp, nil
}

// decodeChapters accepts either [][]string (whole book) or []string
// (single-chapter book like Obadiah) and normalizes to [][]string.
func decodeChapters(raw json.RawMessage) ([][]string, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}

	var chapters [][]string
	if err := json.Unmarshal(raw, &chapters); err == nil {
		return chapters, nil
	}

	var verses []string
	if err := json.Unmarshal(raw, &verses); err != nil {
		return nil, fmt.Errorf("unexpected text shape: %s", truncate(raw))
	}
	return [][]string{verses}, nil
}

// decodeVerses accepts either []string (one chapter) or a single string
// (one verse) and normalizes to []string.
func decodeVerses(raw json.RawMessage) ([]string, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}

	var verses []string
	if err := json.Unmarshal(raw, &verses); err == nil {
		return verses, nil
	}

	var verse string
	if err := json.Unmarshal(raw, &verse); err != nil {
		return nil, fmt.Errorf("unexpected text shape: %s", truncate(raw))
	}
	return []string{verse}, nil
}

func truncate(raw json.RawMessage) string {
	s := string(raw)
	if len(s) > 80 {
		return s[:80] + "..."
	}
	return s
}
