package store

// Book is a row in the books table.
type Book struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	HebrewName string `json:"hebrewName,omitempty"`
	Category   string `json:"category"`
	Chapters   int    `json:"chapters"`
	SortOrder  int    `json:"-"`
}

// Verse is a row in the verses table.
type Verse struct {
	ID      int64  `json:"-"`
	BookID  int64  `json:"-"`
	Chapter int    `json:"chapter"`
	Verse   int    `json:"verse"`
	Hebrew  string `json:"hebrew"`
	English string `json:"english,omitempty"`
}

// Chapter bundles a book's chapter with its verses, for the chapter endpoint.
type Chapter struct {
	Book    string  `json:"book"`
	Chapter int     `json:"chapter"`
	Verses  []Verse `json:"verses"`
}

// SearchResult is a verse hit with enough context to cite it.
type SearchResult struct {
	Book    string `json:"book"`
	Chapter int    `json:"chapter"`
	Verse   int    `json:"verse"`
	Hebrew  string `json:"hebrew"`
	English string `json:"english,omitempty"`
}

// Stats summarizes corpus coverage, for the health endpoint and the checker.
type Stats struct {
	Books  int `json:"books"`
	Verses int `json:"verses"`
}
