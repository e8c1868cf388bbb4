package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

// =============================================================================
// Response Types - Match the actual API response structure
// =============================================================================

type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ErrorInfo  `json:"error,omitempty"`
}

type ErrorInfo struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// BookResponse is the response for /books/{category}/{book}
type BookResponse struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Chapters int    `json:"chapters"`
}

// ResolveResponse is the response for /resolve?ref=. The reference
// echo is a structured object; this tool only inspects the locator.
type ResolveResponse struct {
	Reference json.RawMessage `json:"reference"`
	Locator   Locator         `json:"locator"`
}

type Locator struct {
	Book     string `json:"book"`
	Category string `json:"category"`
	Chapter  int    `json:"chapter"`
	Verse    int    `json:"verse"`
}

// WeeklyResponse is the response for /calendar/weekly
type WeeklyResponse struct {
	Parashat    string `json:"parashat"`
	Haftarah    string `json:"haftarah"`
	RoshChodesh string `json:"roshChodesh,omitempty"`
}

// TimesResponse is the response for /calendar/times
type TimesResponse struct {
	CandleLighting string `json:"candleLighting"`
	Havdalah       string `json:"havdalah"`
	Sunrise        string `json:"sunrise"`
	Sunset         string `json:"sunset"`
}

// HebrewDateResponse is the response for /calendar/hebrew-date
type HebrewDateResponse struct {
	Day     int    `json:"day"`
	Month   string `json:"month"`
	Year    int    `json:"year"`
	Display string `json:"display"`
}

// MonthResponse is the response for /calendar/{year}/{month}
type MonthResponse struct {
	Year  int        `json:"year"`
	Month int        `json:"month"`
	Days  []MonthDay `json:"days"`
}

type MonthDay struct {
	Day       int        `json:"day"`
	Date      string     `json:"date"`
	IsShabbat bool       `json:"isShabbat"`
	Events    []DayEvent `json:"events"`
}

type DayEvent struct {
	Name string `json:"name"`
	Kind string `json:"type"`
	Time string `json:"time,omitempty"`
}

// HealthResponse is the response for /health
type HealthResponse struct {
	Status string `json:"status"`
}

// =============================================================================
// Test Runner
// =============================================================================

type TestRunner struct {
	baseURL      string
	client       *http.Client
	verbose      bool
	successCount int
	errorCount   int
	errors       []string
}

func NewTestRunner(baseURL string, verbose bool) *TestRunner {
	return &TestRunner{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		verbose: verbose,
	}
}

func (tr *TestRunner) Run() {
	fmt.Println("==============================================")
	fmt.Println("Tanach API Test Suite")
	fmt.Println("==============================================")
	fmt.Printf("Base URL: %s\n", tr.baseURL)
	fmt.Println()

	// Run test groups
	tr.testHealth()
	tr.testBooks()
	tr.testResolve()
	tr.testCalendar()
	tr.testEdgeCases()

	// Print summary
	tr.printSummary()
}

// =============================================================================
// Test Groups
// =============================================================================

func (tr *TestRunner) testHealth() {
	tr.printSection("Health Check")

	resp, err := tr.get("/health")
	if err != nil {
		tr.recordError("Health", err.Error())
		return
	}

	var health HealthResponse
	if err := tr.parseDataAs(resp, &health); err != nil {
		tr.recordError("Health", err.Error())
		return
	}

	if health.Status == "healthy" {
		tr.recordSuccess("Health check passed")
	} else {
		tr.recordError("Health", fmt.Sprintf("Unexpected status: %s", health.Status))
	}
}

func (tr *TestRunner) testBooks() {
	tr.printSection("Book Lookups")

	testCases := []struct {
		path        string
		name        string
		chapters    int
		description string
	}{
		{"/api/v1/books/torah/Genesis", "Genesis", 50, "canonical name"},
		{"/api/v1/books/torah/Bereshit", "Genesis", 50, "Hebrew alternate name"},
		{"/api/v1/books/neviim/II%20Kings", "II Kings", 25, "ordinal prefix"},
		{"/api/v1/books/trei_asara/Obadiah", "Obadiah", 1, "single-chapter book"},
		{"/api/v1/books/ketuvim/Song%20of%20Songs", "Song of Songs", 8, "multi-word name"},
	}

	for _, tc := range testCases {
		resp, err := tr.get(tc.path)
		if err != nil {
			tr.recordError(tc.path, err.Error())
			continue
		}

		var book BookResponse
		if err := tr.parseDataAs(resp, &book); err != nil {
			tr.recordError(tc.path, err.Error())
			continue
		}

		if book.Name == tc.name && book.Chapters == tc.chapters {
			tr.recordSuccess(fmt.Sprintf("%s: %s, %d chapters (%s)",
				tc.path, book.Name, book.Chapters, tc.description))
		} else {
			tr.recordError(tc.path, fmt.Sprintf("Expected %s/%d, got %s/%d",
				tc.name, tc.chapters, book.Name, book.Chapters))
		}
	}
}

func (tr *TestRunner) testResolve() {
	tr.printSection("Reference Resolution")

	testCases := []struct {
		ref         string
		book        string
		chapter     int
		description string
	}{
		{"Genesis 1:1", "bereshit", 1, "plain citation"},
		{"Exodus 12:1-10", "shemot", 12, "verse range"},
		{"Judges 4:4-5:31", "shoftim", 4, "cross-chapter range"},
		{"Obadiah", "ovadya", 1, "bare single-chapter book"},
		{"Kings Seder 30", "melachim2", 8, "combined-book seder"},
		{"Shir HaShirim 2:3", "shir_hashirim", 2, "alternate name"},
	}

	for _, tc := range testCases {
		path := "/api/v1/resolve?ref=" + url.QueryEscape(tc.ref)
		resp, err := tr.get(path)
		if err != nil {
			tr.recordError(tc.ref, err.Error())
			continue
		}

		var resolved ResolveResponse
		if err := tr.parseDataAs(resp, &resolved); err != nil {
			tr.recordError(tc.ref, err.Error())
			continue
		}

		if resolved.Locator.Book == tc.book && resolved.Locator.Chapter == tc.chapter {
			tr.recordSuccess(fmt.Sprintf("%q -> %s %d (%s)",
				tc.ref, resolved.Locator.Book, resolved.Locator.Chapter, tc.description))
		} else {
			tr.recordError(tc.ref, fmt.Sprintf("Expected %s %d, got %s %d",
				tc.book, tc.chapter, resolved.Locator.Book, resolved.Locator.Chapter))
		}
	}

	// Sefaria URL conversion responds with the bare locator
	resp, err := tr.get("/api/v1/resolve?url=" + url.QueryEscape("https://www.sefaria.org/Genesis.1.1"))
	if err != nil {
		tr.recordError("Resolve URL", err.Error())
		return
	}
	var loc Locator
	if err := tr.parseDataAs(resp, &loc); err != nil {
		tr.recordError("Resolve URL", err.Error())
		return
	}
	if loc.Book == "bereshit" {
		tr.recordSuccess("Sefaria URL converted to reader link")
	} else {
		tr.recordError("Resolve URL", fmt.Sprintf("Unexpected book %s", loc.Book))
	}
}

func (tr *TestRunner) testCalendar() {
	tr.printSection("Calendar")

	// Weekly reading: a Parashat name plus a Haftarah citation
	resp, err := tr.get("/api/v1/calendar/weekly")
	if err != nil {
		tr.recordError("Weekly", err.Error())
	} else {
		var weekly WeeklyResponse
		if err := tr.parseDataAs(resp, &weekly); err != nil {
			tr.recordError("Weekly", err.Error())
		} else if strings.HasPrefix(weekly.Parashat, "Parashat ") {
			tr.recordSuccess(fmt.Sprintf("Weekly: %s / Haftarah %s", weekly.Parashat, weekly.Haftarah))
		} else {
			// Festival weeks have no regular portion; "N/A" is the
			// documented degradation, not a failure
			tr.recordSuccess(fmt.Sprintf("Weekly (no regular portion): %s", weekly.Parashat))
		}
	}

	// Shabbat and solar times
	resp, err = tr.get("/api/v1/calendar/times")
	if err != nil {
		tr.recordError("Times", err.Error())
	} else {
		var times TimesResponse
		if err := tr.parseDataAs(resp, &times); err != nil {
			tr.recordError("Times", err.Error())
		} else if times.Sunrise != "N/A" && times.Sunset != "N/A" {
			tr.recordSuccess(fmt.Sprintf("Times: candles %s, havdalah %s, sun %s-%s",
				times.CandleLighting, times.Havdalah, times.Sunrise, times.Sunset))
		} else {
			tr.recordError("Times", "Solar times unavailable")
		}
	}

	// Known Hebrew date conversion
	resp, err = tr.get("/api/v1/calendar/hebrew-date?date=2024-10-03")
	if err != nil {
		tr.recordError("Hebrew date", err.Error())
	} else {
		var hd HebrewDateResponse
		if err := tr.parseDataAs(resp, &hd); err != nil {
			tr.recordError("Hebrew date", err.Error())
		} else if hd.Display == "1 Tishrei 5785" {
			tr.recordSuccess("2024-10-03 -> 1 Tishrei 5785 (Rosh Hashanah)")
		} else {
			tr.recordError("Hebrew date", fmt.Sprintf("Expected 1 Tishrei 5785, got %s", hd.Display))
		}
	}

	// Month grid: day count and Shabbat markers
	resp, err = tr.get("/api/v1/calendar/2025/10")
	if err != nil {
		tr.recordError("Month", err.Error())
		return
	}
	var month MonthResponse
	if err := tr.parseDataAs(resp, &month); err != nil {
		tr.recordError("Month", err.Error())
		return
	}
	if len(month.Days) != 31 {
		tr.recordError("Month", fmt.Sprintf("Expected 31 days, got %d", len(month.Days)))
		return
	}
	bareSaturdays := 0
	for _, d := range month.Days {
		if d.IsShabbat && len(d.Events) == 0 {
			bareSaturdays++
		}
		if tr.verbose && len(d.Events) > 0 {
			fmt.Printf("    %s:\n", d.Date)
			for _, ev := range d.Events {
				fmt.Printf("      - [%s] %s %s\n", ev.Kind, ev.Name, ev.Time)
			}
		}
	}
	if bareSaturdays == 0 {
		tr.recordSuccess("October 2025 grid: 31 days, every Saturday marked")
	} else {
		tr.recordError("Month", fmt.Sprintf("%d Saturdays without events", bareSaturdays))
	}
}

func (tr *TestRunner) testEdgeCases() {
	tr.printSection("Edge Cases")

	// Unknown category
	resp, _ := tr.getRaw("/api/v1/books/apocrypha")
	if resp != nil && resp.StatusCode == 400 {
		tr.recordSuccess("Unknown category rejected")
	} else {
		tr.recordError("Category", "Should return 400 for unknown category")
	}

	// Book in the wrong category
	resp2, _ := tr.getRaw("/api/v1/books/torah/Isaiah")
	if resp2 != nil && resp2.StatusCode == 404 {
		tr.recordSuccess("Book in wrong category rejected")
	} else {
		tr.recordError("Wrong category", "Should return 404 for Isaiah under torah")
	}

	// Chapter out of bounds
	resp3, _ := tr.getRaw("/api/v1/books/torah/Genesis/51")
	if resp3 != nil && resp3.StatusCode == 400 {
		tr.recordSuccess("Out-of-bounds chapter rejected (Genesis 51)")
	} else {
		tr.recordError("Chapter bounds", "Should reject Genesis 51")
	}

	// Unresolvable reference degrades to 404, never 500
	resp4, _ := tr.getRaw("/api/v1/resolve?ref=" + url.QueryEscape("5:3"))
	if resp4 != nil && resp4.StatusCode == 404 {
		tr.recordSuccess("Bookless reference resolves to 404")
	} else {
		tr.recordError("Resolve", "Should return 404 for \"5:3\"")
	}

	// Seder past the combined span
	resp5, _ := tr.getRaw("/api/v1/resolve?ref=" + url.QueryEscape("Kings Seder 48"))
	if resp5 != nil && resp5.StatusCode == 404 {
		tr.recordSuccess("Seder past combined span rejected")
	} else {
		tr.recordError("Seder", "Should return 404 for Kings Seder 48")
	}

	// Invalid date format
	resp6, _ := tr.getRaw("/api/v1/calendar/hebrew-date?date=03-10-2024")
	if resp6 != nil && resp6.StatusCode == 400 {
		tr.recordSuccess("Invalid date format rejected")
	} else {
		tr.recordError("Date format", "Should reject 03-10-2024")
	}

	// Invalid month
	resp7, _ := tr.getRaw("/api/v1/calendar/2025/13")
	if resp7 != nil && resp7.StatusCode == 400 {
		tr.recordSuccess("Invalid month rejected")
	} else {
		tr.recordError("Month bounds", "Should reject month 13")
	}

	// Leap day
	if _, err := tr.get("/api/v1/calendar/hebrew-date?date=2024-02-29"); err != nil {
		tr.recordError("Leap day", err.Error())
	} else {
		tr.recordSuccess("Leap day (2024-02-29) handled")
	}
}

// =============================================================================
// Helper Methods
// =============================================================================

func (tr *TestRunner) get(path string) (*APIResponse, error) {
	resp, err := tr.getRaw(path)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read error: %w", err)
	}

	var apiResp APIResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}

	if !apiResp.Success {
		errMsg := "unknown error"
		if apiResp.Error != nil {
			errMsg = apiResp.Error.Message
		}
		return nil, fmt.Errorf("API error: %s", errMsg)
	}

	return &apiResp, nil
}

func (tr *TestRunner) getRaw(path string) (*http.Response, error) {
	url := tr.baseURL + path
	return tr.client.Get(url)
}

func (tr *TestRunner) parseDataAs(resp *APIResponse, target interface{}) error {
	// Re-marshal and unmarshal to convert map to struct
	dataBytes, err := json.Marshal(resp.Data)
	if err != nil {
		return fmt.Errorf("marshal error: %w", err)
	}
	return json.Unmarshal(dataBytes, target)
}

func (tr *TestRunner) printSection(name string) {
	fmt.Println()
	fmt.Printf("--- %s ---\n", name)
	fmt.Println()
}

func (tr *TestRunner) recordSuccess(msg string) {
	tr.successCount++
	fmt.Printf("  ✓ %s\n", msg)
}

func (tr *TestRunner) recordError(context, msg string) {
	tr.errorCount++
	errStr := fmt.Sprintf("%s: %s", context, msg)
	tr.errors = append(tr.errors, errStr)
	fmt.Printf("  ✗ %s\n", errStr)
}

func (tr *TestRunner) printSummary() {
	fmt.Println()
	fmt.Println("==============================================")
	fmt.Println("Summary")
	fmt.Println("==============================================")
	fmt.Printf("  Passed: %d\n", tr.successCount)
	fmt.Printf("  Failed: %d\n", tr.errorCount)
	fmt.Println()

	if tr.errorCount > 0 {
		fmt.Println("Failures:")
		for _, err := range tr.errors {
			fmt.Printf("  • %s\n", err)
		}
		fmt.Println()
	}

	if tr.errorCount == 0 {
		fmt.Println("All tests passed! ✓")
	} else {
		fmt.Printf("Tests completed with %d failure(s)\n", tr.errorCount)
	}
}

// =============================================================================
// Main
// =============================================================================

func main() {
	baseURL := flag.String("url", "http://localhost:8080", "Base URL of the API")
	verbose := flag.Bool("v", false, "Verbose output (show month grid events)")
	flag.Parse()

	// Check if server is reachable
	client := &http.Client{Timeout: 2 * time.Second}
	_, err := client.Get(*baseURL + "/health")
	if err != nil {
		fmt.Printf("Error: Cannot connect to %s\n", *baseURL)
		fmt.Println("Make sure the API server is running.")
		os.Exit(1)
	}

	runner := NewTestRunner(*baseURL, *verbose)
	runner.Run()

	// Exit with error code if tests failed
	if runner.errorCount > 0 {
		os.Exit(1)
	}
}
