// Command import fetches Tanach text from the Sefaria API and loads it
// into the SQLite corpus.
//
// Usage:
//
//	go run ./cmd/import -db data/tanach.db
//	go run ./cmd/import -db data/tanach.db -books "Genesis,Obadiah"
//
// This tool:
// 1. Creates/opens the SQLite database
// 2. Runs migrations to ensure schema is current
// 3. Seeds the canonical book table
// 4. Fetches each book from Sefaria and upserts its verses
//
// The import is idempotent - rerunning it refreshes existing text in
// place. A delay between book fetches keeps the load on Sefaria polite.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joodsetexten/tanach-api/internal/sefaria"
	"github.com/joodsetexten/tanach-api/internal/store"
	"github.com/joodsetexten/tanach-api/internal/tanach"
)

func main() {
	// Parse command line flags
	dbPath := flag.String("db", "data/tanach.db", "Path to SQLite database")
	baseURL := flag.String("url", "https://www.sefaria.org/api/texts", "Sefaria texts API base URL")
	books := flag.String("books", "", "Comma-separated book names to import (default: whole canon)")
	delay := flag.Duration("delay", time.Second, "Delay between book fetches")
	verbose := flag.Bool("v", false, "Verbose output")
	flag.Parse()

	// Setup logger
	logLevel := slog.LevelInfo
	if *verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))

	if err := run(*dbPath, *baseURL, *books, *delay, logger); err != nil {
		logger.Error("import failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("import complete")
}

func run(dbPath, baseURL, bookList string, delay time.Duration, logger *slog.Logger) error {
	ctx := context.Background()
	startTime := time.Now()

	// =========================================================================
	// Step 1: Decide what to import
	// =========================================================================
	var selected []tanach.Book
	if bookList == "" {
		selected = tanach.AllBooks()
	} else {
		for _, name := range strings.Split(bookList, ",") {
			book := tanach.GetBook(tanach.Canonicalize(name))
			if book == nil {
				return fmt.Errorf("unknown book: %q", strings.TrimSpace(name))
			}
			selected = append(selected, *book)
		}
	}

	logger.Info("importing books", slog.Int("count", len(selected)))

	// =========================================================================
	// Step 2: Open database and run migrations
	// =========================================================================
	logger.Info("opening database", slog.String("path", dbPath))

	s, err := store.Open(store.DefaultConfig(dbPath), logger)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer s.Close()

	migrated, err := s.Migrate(ctx)
	if err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	logger.Info("migrations complete", slog.Int("applied", migrated))

	// =========================================================================
	// Step 3: Fetch and import each book
	// =========================================================================
	client := sefaria.New(baseURL, logger)

	var stats importStats
	for i, book := range selected {
		if i > 0 {
			time.Sleep(delay)
		}

		logger.Info("fetching book",
			slog.String("book", book.Name),
			slog.Int("n", i+1),
			slog.Int("of", len(selected)),
		)

		text, err := client.FetchBook(ctx, book.Name)
		if err != nil {
			// Keep going; the summary reports what is missing
			logger.Warn("fetch failed",
				slog.String("book", book.Name),
				slog.Any("error", err),
			)
			stats.Failed++
			continue
		}

		if err := importBook(ctx, s, book, text, &stats); err != nil {
			return fmt.Errorf("import %s: %w", book.Name, err)
		}
		stats.Books++
	}

	// =========================================================================
	// Step 4: Verify import
	// =========================================================================
	totals, err := s.GetStats(ctx)
	if err != nil {
		return fmt.Errorf("corpus stats: %w", err)
	}

	elapsed := time.Since(startTime)

	logger.Info("import verified",
		slog.Int("books_in_store", totals.Books),
		slog.Int("verses_in_store", totals.Verses),
		slog.Duration("elapsed", elapsed),
	)

	// Print summary
	fmt.Println()
	fmt.Println("=== Import Summary ===")
	fmt.Printf("Books imported:   %d\n", stats.Books)
	fmt.Printf("Books failed:     %d\n", stats.Failed)
	fmt.Printf("Verses written:   %d\n", stats.Verses)
	fmt.Printf("Empty verses:     %d\n", stats.EmptyVerses)
	fmt.Printf("Time elapsed:     %v\n", elapsed.Round(time.Millisecond))

	return nil
}

// importStats tracks import statistics.
type importStats struct {
	Books       int
	Failed      int
	Verses      int
	EmptyVerses int
}

// canonOrder maps book names onto their position in the canon.
var canonOrder = func() map[string]int {
	m := make(map[string]int)
	for i, name := range tanach.CanonicalNames() {
		m[name] = i + 1
	}
	return m
}()

// importBook writes one fetched book inside a single transaction.
func importBook(ctx context.Context, s *store.Store, meta tanach.Book, text *sefaria.BookText, stats *importStats) error {
	return s.WithTx(ctx, func(tx *store.Tx) error {
		book := &store.Book{
			Name:      meta.Name,
			Category:  string(meta.Category),
			Chapters:  meta.Chapters,
			SortOrder: canonOrder[meta.Name],
		}
		if err := tx.UpsertBook(ctx, book); err != nil {
			return err
		}

		for ci, chapter := range text.Hebrew {
			for vi, hebrew := range chapter {
				var english string
				if ci < len(text.English) && vi < len(text.English[ci]) {
					english = text.English[ci][vi]
				}
				if hebrew == "" && english == "" {
					stats.EmptyVerses++
					continue
				}

				v := &store.Verse{
					BookID:  book.ID,
					Chapter: ci + 1,
					Verse:   vi + 1,
					Hebrew:  hebrew,
					English: english,
				}
				if err := tx.InsertVerse(ctx, v); err != nil {
					return err
				}
				stats.Verses++
			}
		}
		return nil
	})
}
