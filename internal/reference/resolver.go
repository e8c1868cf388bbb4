package reference

import (
	"context"
	"regexp"
	"strings"

	"github.com/joodsetexten/tanach-api/internal/tanach"
)

// Locator is a validated deep-link target inside the reader. It is only
// ever constructed after book-existence and chapter-bound validation.
type Locator struct {
	BookID     string          `json:"book"`
	Category   tanach.Category `json:"category"`
	Chapter    int             `json:"chapter"`
	VerseStart int             `json:"verse"`
}

// VerseOracle reports the number of verses in a chapter, keyed by
// canonical English book name. Implementations may hit the network or a
// local store; errors mean "could not determine", not "out of range".
type VerseOracle interface {
	VerseCount(ctx context.Context, book string, chapter int) (int, error)
}

// Resolver turns citation strings into reader locators.
type Resolver struct {
	oracle VerseOracle // nil disables verse-bound validation
}

// NewResolver creates a resolver. Pass a nil oracle to validate chapter
// bounds only.
func NewResolver(oracle VerseOracle) *Resolver {
	return &Resolver{oracle: oracle}
}

// ReaderLink resolves a citation string to a Locator, or nil when the
// citation is unparseable, names an unknown book, or points outside the
// book's chapter range.
//
// When a verse oracle is configured and the citation carries verse
// numbers, those are additionally checked against the chapter's actual
// verse count. Oracle failures are non-fatal: the verse check is skipped
// rather than the whole resolution rejected.
func (r *Resolver) ReaderLink(ctx context.Context, citation string) *Locator {
	ref := Parse(citation)
	if ref == nil {
		return nil
	}

	book := tanach.GetBook(ref.Book)
	if book == nil {
		return nil
	}
	if ref.Chapter < 1 || ref.Chapter > book.Chapters {
		return nil
	}

	if r.oracle != nil && (ref.VerseStart > 1 || ref.VerseEnd > 0) {
		if count, err := r.oracle.VerseCount(ctx, book.Name, ref.Chapter); err == nil && count > 0 {
			if ref.VerseStart > count {
				return nil
			}
			if ref.VerseEnd > count && !crossesChapter(citation) {
				return nil
			}
		}
	}

	return &Locator{
		BookID:     book.ID,
		Category:   book.Category,
		Chapter:    ref.Chapter,
		VerseStart: ref.VerseStart,
	}
}

// crossesChapter reports whether the original citation was a cross-chapter
// range, in which case the end verse belongs to a later chapter and must
// not be checked against the start chapter's verse count.
func crossesChapter(citation string) bool {
	return crossChapterPattern.MatchString(tanach.Clean(citation))
}

// sefariaPathPattern extracts the trailing reference segment of a Sefaria
// URL, e.g. "Genesis.1.1" from "https://www.sefaria.org/Genesis.1.1".
var sefariaPathPattern = regexp.MustCompile(`/([^/]+\.\d+(?:\.\d+)?(?:-\d+)?)$`)

// ConvertSefariaURL resolves a Sefaria URL ("https://www.sefaria.org/Genesis.1.1"
// or "/Genesis.1.1") to a reader locator. Returns nil when the URL does
// not end in a recognizable reference.
func (r *Resolver) ConvertSefariaURL(ctx context.Context, url string) *Locator {
	m := sefariaPathPattern.FindStringSubmatch(strings.TrimSpace(url))
	if m == nil {
		return nil
	}

	// "Genesis.1.1-5" -> "Genesis 1:1-5": dots separate book, chapter,
	// and verse in Sefaria URL notation.
	parts := strings.Split(m[1], ".")
	citation := strings.Join(parts, " ")
	if len(parts) == 3 {
		citation = parts[0] + " " + parts[1] + ":" + parts[2]
	}
	citation = strings.ReplaceAll(citation, "_", " ")

	return r.ReaderLink(ctx, citation)
}
