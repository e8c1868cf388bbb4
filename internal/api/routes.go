package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// SetupRoutes configures all HTTP routes and returns the router.
//
// Route structure:
//
//	GET /health
//	GET /api/v1/books
//	GET /api/v1/books/{category}
//	GET /api/v1/books/{category}/{book}
//	GET /api/v1/books/{category}/{book}/{chapter}
//	GET /api/v1/search?q=
//	GET /api/v1/resolve?ref= | ?url=
//	GET /api/v1/calendar/{year}/{month}
//	GET /api/v1/calendar/weekly?date=
//	GET /api/v1/calendar/times?date=
//	GET /api/v1/calendar/hebrew-date?date=
func SetupRoutes(handlers *Handlers, log *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(RecoveryMiddleware(log))
	r.Use(RequestIDMiddleware())
	r.Use(LoggingMiddleware(log))
	r.Use(CORSMiddleware())

	r.Get("/health", handlers.HealthCheck)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/books", handlers.ListBooks)
		r.Get("/books/{category}", handlers.ListBooksByCategory)
		r.Get("/books/{category}/{book}", handlers.GetBook)
		r.Get("/books/{category}/{book}/{chapter}", handlers.GetChapter)

		r.Get("/search", handlers.Search)
		r.Get("/resolve", handlers.Resolve)

		r.Route("/calendar", func(r chi.Router) {
			r.Get("/weekly", handlers.GetWeeklyReading)
			r.Get("/times", handlers.GetTimes)
			r.Get("/hebrew-date", handlers.GetHebrewDate)
			r.Get("/{year}/{month}", handlers.GetCalendarMonth)
		})
	})

	return r
}
