// Command check audits the local corpus against the canon: which books
// are missing entirely, which chapters hold no text, and which look
// suspiciously short.
//
// Usage:
//
//	go run ./cmd/check -db data/tanach.db
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/joodsetexten/tanach-api/internal/store"
	"github.com/joodsetexten/tanach-api/internal/tanach"
)

// shortChapterThreshold flags chapters with implausibly few verses.
// The shortest real chapter in the canon (Psalm 117) has 2 verses.
const shortChapterThreshold = 2

func main() {
	dbPath := flag.String("db", "data/tanach.db", "Path to SQLite database")
	verbose := flag.Bool("v", false, "List every missing chapter, not just counts")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))

	if err := run(*dbPath, *verbose, logger); err != nil {
		fmt.Fprintf(os.Stderr, "check failed: %v\n", err)
		os.Exit(1)
	}
}

func run(dbPath string, verbose bool, logger *slog.Logger) error {
	ctx := context.Background()

	s, err := store.Open(store.DefaultConfig(dbPath), logger)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer s.Close()

	fmt.Println("================================================================")
	fmt.Println("Tanach corpus coverage check")
	fmt.Println("================================================================")
	fmt.Printf("Database: %s\n\n", dbPath)

	var missingBooks, missingChapters, shortChapters, completeBooks int

	for _, book := range tanach.AllBooks() {
		if _, err := s.GetBook(ctx, book.Name); err != nil {
			if store.IsNotFound(err) {
				fmt.Printf("MISSING BOOK     %s (%d chapters)\n", book.Name, book.Chapters)
				missingBooks++
				continue
			}
			return fmt.Errorf("get book %s: %w", book.Name, err)
		}

		coverage, err := s.ChapterCoverage(ctx, book.Name)
		if err != nil {
			return fmt.Errorf("coverage for %s: %w", book.Name, err)
		}

		bookComplete := true
		for ch := 1; ch <= book.Chapters; ch++ {
			count, ok := coverage[ch]
			switch {
			case !ok:
				if verbose {
					fmt.Printf("MISSING CHAPTER  %s %d\n", book.Name, ch)
				}
				missingChapters++
				bookComplete = false
			case count < shortChapterThreshold:
				fmt.Printf("SHORT CHAPTER    %s %d (%d verses)\n", book.Name, ch, count)
				shortChapters++
				bookComplete = false
			}
		}
		if bookComplete {
			completeBooks++
		}
	}

	total := len(tanach.AllBooks())
	fmt.Println()
	fmt.Println("=== Coverage Summary ===")
	fmt.Printf("Complete books:    %d / %d\n", completeBooks, total)
	fmt.Printf("Missing books:     %d\n", missingBooks)
	fmt.Printf("Missing chapters:  %d\n", missingChapters)
	fmt.Printf("Short chapters:    %d\n", shortChapters)

	if missingBooks > 0 || missingChapters > 0 {
		fmt.Println("\nRun ./cmd/import to fill the gaps.")
	}

	return nil
}
