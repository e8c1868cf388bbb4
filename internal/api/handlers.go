package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/joodsetexten/tanach-api/internal/calendar"
	"github.com/joodsetexten/tanach-api/internal/reference"
	"github.com/joodsetexten/tanach-api/internal/store"
	"github.com/joodsetexten/tanach-api/internal/tanach"
)

// Handlers contains all HTTP handlers and their dependencies.
type Handlers struct {
	store    *store.Store
	engine   *calendar.Engine
	resolver *reference.Resolver
	logger   *slog.Logger
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(s *store.Store, engine *calendar.Engine, resolver *reference.Resolver, logger *slog.Logger) *Handlers {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handlers{
		store:    s,
		engine:   engine,
		resolver: resolver,
		logger:   logger,
	}
}

// HealthCheck handles GET /health
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.store.Health(ctx); err != nil {
		h.logger.Warn("health check failed", slog.Any("error", err))
		WriteError(w, http.StatusServiceUnavailable, "Database unhealthy", "HEALTH_CHECK_FAILED")
		return
	}

	stats, err := h.store.GetStats(ctx)
	if err != nil {
		h.logger.Warn("stats unavailable", slog.Any("error", err))
		WriteSuccess(w, map[string]string{"status": "healthy"})
		return
	}

	WriteSuccess(w, map[string]interface{}{
		"status": "healthy",
		"corpus": stats,
	})
}

// =============================================================================
// Text endpoints
// =============================================================================

// ListBooks handles GET /api/v1/books
func (h *Handlers) ListBooks(w http.ResponseWriter, r *http.Request) {
	books, err := h.store.ListBooks(r.Context())
	if err != nil {
		h.logger.Error("failed to list books", slog.Any("error", err))
		WriteInternalError(w, "Failed to retrieve books")
		return
	}

	WriteSuccess(w, map[string]interface{}{"books": books})
}

// ListBooksByCategory handles GET /api/v1/books/{category}
func (h *Handlers) ListBooksByCategory(w http.ResponseWriter, r *http.Request) {
	category := tanach.Category(chi.URLParam(r, "category"))
	if !category.IsValid() {
		WriteBadRequest(w, fmt.Sprintf("Unknown category: %s", category))
		return
	}

	books, err := h.store.ListBooksByCategory(r.Context(), string(category))
	if err != nil {
		h.logger.Error("failed to list books by category",
			slog.String("category", string(category)),
			slog.Any("error", err))
		WriteInternalError(w, "Failed to retrieve books")
		return
	}

	WriteSuccess(w, map[string]interface{}{
		"category": category,
		"books":    books,
	})
}

// GetBook handles GET /api/v1/books/{category}/{book}
//
// The book segment accepts alternate names ("Bereshit", "Shoftim").
func (h *Handlers) GetBook(w http.ResponseWriter, r *http.Request) {
	category := tanach.Category(chi.URLParam(r, "category"))
	if !category.IsValid() {
		WriteBadRequest(w, fmt.Sprintf("Unknown category: %s", chi.URLParam(r, "category")))
		return
	}

	name := tanach.Canonicalize(chi.URLParam(r, "book"))
	meta := tanach.GetBook(name)
	if meta == nil || meta.Category != category {
		WriteNotFound(w, fmt.Sprintf("Book not found in %s: %s", category, chi.URLParam(r, "book")))
		return
	}

	book, err := h.store.GetBook(r.Context(), meta.Name)
	if err != nil {
		if store.IsNotFound(err) {
			// Known book, no imported text yet. Serve canonical metadata.
			WriteSuccess(w, map[string]interface{}{
				"name":     meta.Name,
				"category": meta.Category,
				"chapters": meta.Chapters,
			})
			return
		}
		h.logger.Error("failed to get book", slog.Any("error", err))
		WriteInternalError(w, "Failed to retrieve book")
		return
	}

	WriteSuccess(w, book)
}

// GetChapter handles GET /api/v1/books/{category}/{book}/{chapter}
func (h *Handlers) GetChapter(w http.ResponseWriter, r *http.Request) {
	category := tanach.Category(chi.URLParam(r, "category"))
	if !category.IsValid() {
		WriteBadRequest(w, fmt.Sprintf("Unknown category: %s", chi.URLParam(r, "category")))
		return
	}

	name := tanach.Canonicalize(chi.URLParam(r, "book"))
	meta := tanach.GetBook(name)
	if meta == nil || meta.Category != category {
		WriteNotFound(w, fmt.Sprintf("Book not found in %s: %s", category, chi.URLParam(r, "book")))
		return
	}

	chapter, err := strconv.Atoi(chi.URLParam(r, "chapter"))
	if err != nil || chapter < 1 || chapter > meta.Chapters {
		WriteBadRequest(w, fmt.Sprintf("%s has chapters 1-%d", meta.Name, meta.Chapters))
		return
	}

	text, err := h.store.GetChapter(r.Context(), meta.Name, chapter)
	if err != nil {
		if store.IsNotFound(err) {
			WriteNotFound(w, fmt.Sprintf("No text stored for %s %d", meta.Name, chapter))
			return
		}
		h.logger.Error("failed to get chapter",
			slog.String("book", meta.Name),
			slog.Int("chapter", chapter),
			slog.Any("error", err))
		WriteInternalError(w, "Failed to retrieve chapter")
		return
	}

	WriteSuccess(w, text)
}

// Search handles GET /api/v1/search?q=&limit=
func (h *Handlers) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		WriteBadRequest(w, "Query parameter q is required")
		return
	}

	limit := 50
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l <= 200 {
			limit = l
		}
	}

	results, err := h.store.Search(r.Context(), q, limit)
	if err != nil {
		h.logger.Error("search failed", slog.String("q", q), slog.Any("error", err))
		WriteInternalError(w, "Search failed")
		return
	}

	WriteSuccess(w, map[string]interface{}{
		"query":   q,
		"results": results,
		"count":   len(results),
	})
}

// Resolve handles GET /api/v1/resolve?ref= or ?url=
//
// Unresolvable citations are a 404, never a 500: bad user input is
// expected here.
func (h *Handlers) Resolve(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if rawURL := r.URL.Query().Get("url"); rawURL != "" {
		loc := h.resolver.ConvertSefariaURL(ctx, rawURL)
		if loc == nil {
			WriteNotFound(w, "Could not resolve Sefaria URL")
			return
		}
		WriteSuccess(w, loc)
		return
	}

	ref := r.URL.Query().Get("ref")
	if ref == "" {
		WriteBadRequest(w, "Query parameter ref or url is required")
		return
	}

	loc := h.resolver.ReaderLink(ctx, ref)
	if loc == nil {
		WriteNotFound(w, fmt.Sprintf("Could not resolve reference: %s", ref))
		return
	}

	WriteSuccess(w, map[string]interface{}{
		"reference": reference.Parse(ref),
		"locator":   loc,
	})
}

// =============================================================================
// Calendar endpoints
// =============================================================================

// GetWeeklyReading handles GET /api/v1/calendar/weekly?date=YYYY-MM-DD
func (h *Handlers) GetWeeklyReading(w http.ResponseWriter, r *http.Request) {
	date, ok := h.dateParam(w, r)
	if !ok {
		return
	}

	WriteSuccess(w, h.engine.GetWeeklyReading(date))
}

// GetTimes handles GET /api/v1/calendar/times?date=YYYY-MM-DD
func (h *Handlers) GetTimes(w http.ResponseWriter, r *http.Request) {
	date, ok := h.dateParam(w, r)
	if !ok {
		return
	}

	WriteSuccess(w, h.engine.GetTimes(date))
}

// GetHebrewDate handles GET /api/v1/calendar/hebrew-date?date=YYYY-MM-DD
func (h *Handlers) GetHebrewDate(w http.ResponseWriter, r *http.Request) {
	date, ok := h.dateParam(w, r)
	if !ok {
		return
	}

	WriteSuccess(w, h.engine.ToHebrewDate(date))
}

// GetCalendarMonth handles GET /api/v1/calendar/{year}/{month}
func (h *Handlers) GetCalendarMonth(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil || year < 1 || year > 9999 {
		WriteBadRequest(w, "Invalid year")
		return
	}

	month, err := strconv.Atoi(chi.URLParam(r, "month"))
	if err != nil || month < 1 || month > 12 {
		WriteBadRequest(w, "Month must be between 1 and 12")
		return
	}

	WriteSuccess(w, h.engine.GetCalendarMonth(year, time.Month(month)))
}

// dateParam reads the optional date query parameter, defaulting to today.
// Writes a 400 and returns false when the format is invalid.
func (h *Handlers) dateParam(w http.ResponseWriter, r *http.Request) (time.Time, bool) {
	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		return time.Now(), true
	}

	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		WriteBadRequest(w, fmt.Sprintf("Invalid date format: %s. Use YYYY-MM-DD", dateStr))
		return time.Time{}, false
	}
	return date, true
}
