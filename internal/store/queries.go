package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// =============================================================================
// Book Queries
// =============================================================================

// UpsertBook inserts or updates a book by canonical name.
// Idempotent; used by the importer to seed the canon.
func (tx *Tx) UpsertBook(ctx context.Context, book *Book) error {
	query := `
		INSERT INTO books (name, hebrew_name, category, chapters, sort_order, updated_at)
		VALUES (?, ?, ?, ?, ?, datetime('now'))
		ON CONFLICT(name) DO UPDATE SET
			hebrew_name = excluded.hebrew_name,
			category = excluded.category,
			chapters = excluded.chapters,
			sort_order = excluded.sort_order,
			updated_at = datetime('now')
	`

	if _, err := tx.ExecContext(ctx, query,
		book.Name, book.HebrewName, book.Category, book.Chapters, book.SortOrder,
	); err != nil {
		return fmt.Errorf("upsert book %q: %w", book.Name, err)
	}

	// Re-read the id: ON CONFLICT updates don't report LastInsertId reliably.
	err := tx.QueryRowContext(ctx,
		"SELECT id FROM books WHERE name = ?", book.Name,
	).Scan(&book.ID)
	if err != nil {
		return fmt.Errorf("read back book id for %q: %w", book.Name, err)
	}

	return nil
}

// GetBook retrieves a book by canonical name.
// Returns ErrNotFound if the book doesn't exist.
func (s *Store) GetBook(ctx context.Context, name string) (*Book, error) {
	query := `
		SELECT id, name, hebrew_name, category, chapters, sort_order
		FROM books
		WHERE name = ?
	`

	var book Book
	err := s.QueryRowContext(ctx, query, name).Scan(
		&book.ID, &book.Name, &book.HebrewName, &book.Category, &book.Chapters, &book.SortOrder,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("query book by name: %w", err)
	}

	return &book, nil
}

// ListBooks returns all books in canon order.
func (s *Store) ListBooks(ctx context.Context) ([]Book, error) {
	return s.listBooks(ctx, `
		SELECT id, name, hebrew_name, category, chapters, sort_order
		FROM books
		ORDER BY sort_order ASC
	`)
}

// ListBooksByCategory returns the books of one canon section in order.
func (s *Store) ListBooksByCategory(ctx context.Context, category string) ([]Book, error) {
	return s.listBooks(ctx, `
		SELECT id, name, hebrew_name, category, chapters, sort_order
		FROM books
		WHERE category = ?
		ORDER BY sort_order ASC
	`, category)
}

func (s *Store) listBooks(ctx context.Context, query string, args ...any) ([]Book, error) {
	rows, err := s.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query books: %w", err)
	}
	defer rows.Close()

	var books []Book
	for rows.Next() {
		var book Book
		if err := rows.Scan(
			&book.ID, &book.Name, &book.HebrewName, &book.Category, &book.Chapters, &book.SortOrder,
		); err != nil {
			return nil, fmt.Errorf("scan book row: %w", err)
		}
		books = append(books, book)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate book rows: %w", err)
	}

	return books, nil
}

// =============================================================================
// Verse Queries
// =============================================================================

// InsertVerse inserts or updates one verse.
// Idempotent on (book, chapter, verse); used by the importer.
func (tx *Tx) InsertVerse(ctx context.Context, v *Verse) error {
	query := `
		INSERT INTO verses (book_id, chapter, verse, hebrew, english, updated_at)
		VALUES (?, ?, ?, ?, ?, datetime('now'))
		ON CONFLICT(book_id, chapter, verse) DO UPDATE SET
			hebrew = excluded.hebrew,
			english = excluded.english,
			updated_at = datetime('now')
	`

	if _, err := tx.ExecContext(ctx, query,
		v.BookID, v.Chapter, v.Verse, v.Hebrew, v.English,
	); err != nil {
		return fmt.Errorf("upsert verse %d:%d: %w", v.Chapter, v.Verse, err)
	}

	return nil
}

// GetChapter retrieves all verses of a chapter in verse order.
// Returns ErrNotFound if the book doesn't exist or holds no text
// for the chapter.
func (s *Store) GetChapter(ctx context.Context, bookName string, chapter int) (*Chapter, error) {
	book, err := s.GetBook(ctx, bookName)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT id, book_id, chapter, verse, hebrew, english
		FROM verses
		WHERE book_id = ? AND chapter = ?
		ORDER BY verse ASC
	`

	rows, err := s.QueryContext(ctx, query, book.ID, chapter)
	if err != nil {
		return nil, fmt.Errorf("query chapter: %w", err)
	}
	defer rows.Close()

	var verses []Verse
	for rows.Next() {
		var v Verse
		if err := rows.Scan(&v.ID, &v.BookID, &v.Chapter, &v.Verse, &v.Hebrew, &v.English); err != nil {
			return nil, fmt.Errorf("scan verse row: %w", err)
		}
		verses = append(verses, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate verse rows: %w", err)
	}

	if len(verses) == 0 {
		return nil, ErrNotFound
	}

	return &Chapter{
		Book:    book.Name,
		Chapter: chapter,
		Verses:  verses,
	}, nil
}

// VerseCount returns the number of verses stored for a chapter.
// Returns 0 with no error when the chapter holds no text, so callers
// can distinguish "unknown" from a hard failure.
func (s *Store) VerseCount(ctx context.Context, bookName string, chapter int) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM verses v
		JOIN books b ON b.id = v.book_id
		WHERE b.name = ? AND v.chapter = ?
	`

	var count int
	if err := s.QueryRowContext(ctx, query, bookName, chapter).Scan(&count); err != nil {
		return 0, fmt.Errorf("count verses: %w", err)
	}

	return count, nil
}

// ChapterCoverage returns, per chapter of a book, how many verses are stored.
// Chapters with no text at all are absent from the map. Used by the checker.
func (s *Store) ChapterCoverage(ctx context.Context, bookName string) (map[int]int, error) {
	query := `
		SELECT v.chapter, COUNT(*)
		FROM verses v
		JOIN books b ON b.id = v.book_id
		WHERE b.name = ?
		GROUP BY v.chapter
	`

	rows, err := s.QueryContext(ctx, query, bookName)
	if err != nil {
		return nil, fmt.Errorf("query chapter coverage: %w", err)
	}
	defer rows.Close()

	coverage := make(map[int]int)
	for rows.Next() {
		var chapter, count int
		if err := rows.Scan(&chapter, &count); err != nil {
			return nil, fmt.Errorf("scan coverage row: %w", err)
		}
		coverage[chapter] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate coverage rows: %w", err)
	}

	return coverage, nil
}

// Search finds verses whose English or Hebrew text contains the query string.
// Results come back in canon order, capped at limit.
func (s *Store) Search(ctx context.Context, q string, limit int) ([]SearchResult, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT b.name, v.chapter, v.verse, v.hebrew, v.english
		FROM verses v
		JOIN books b ON b.id = v.book_id
		WHERE v.english LIKE '%' || ? || '%' OR v.hebrew LIKE '%' || ? || '%'
		ORDER BY b.sort_order, v.chapter, v.verse
		LIMIT ?
	`

	rows, err := s.QueryContext(ctx, query, q, q, limit)
	if err != nil {
		return nil, fmt.Errorf("search verses: %w", err)
	}
	defer rows.Close()

	var results []SearchResult
	for rows.Next() {
		var r SearchResult
		if err := rows.Scan(&r.Book, &r.Chapter, &r.Verse, &r.Hebrew, &r.English); err != nil {
			return nil, fmt.Errorf("scan search row: %w", err)
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate search rows: %w", err)
	}

	return results, nil
}

// GetStats returns corpus totals for the health endpoint.
func (s *Store) GetStats(ctx context.Context) (*Stats, error) {
	var stats Stats

	if err := s.QueryRowContext(ctx, "SELECT COUNT(*) FROM books").Scan(&stats.Books); err != nil {
		return nil, fmt.Errorf("count books: %w", err)
	}
	if err := s.QueryRowContext(ctx, "SELECT COUNT(*) FROM verses").Scan(&stats.Verses); err != nil {
		return nil, fmt.Errorf("count verses: %w", err)
	}

	return &stats, nil
}
