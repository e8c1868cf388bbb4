package calendar

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/hebcal/hebcal-go/event"
	"github.com/hebcal/hdate"

	"github.com/joodsetexten/tanach-api/internal/leyning"
)

// notAvailable is the placeholder for any value the engine could not
// determine. Rendering layers show it verbatim.
const notAvailable = "N/A"

// roshChodeshWindow is how far ahead WeeklyReading scans for the next
// Rosh Chodesh.
const roshChodeshWindow = 30 * 24 * time.Hour

// Engine computes Hebrew-calendar facts for a fixed observer location.
// It holds no mutable state; every method is an independent computation
// and safe for concurrent use.
type Engine struct {
	prim   Primitive
	tz     *time.Location
	logger *slog.Logger
}

// New creates an engine on top of a calendrical primitive. The timezone
// is used for rendering clock times; pass the observer's local zone.
func New(prim Primitive, tz *time.Location, logger *slog.Logger) *Engine {
	if tz == nil {
		tz = time.UTC
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{prim: prim, tz: tz, logger: logger}
}

// monthNames maps hebcal's month renderings to the transliterations the
// site displays. Months not in the map pass through unchanged.
var monthNames = map[string]string{
	"Sh'vat":  "Shevat",
	"Iyyar":   "Iyar",
	"Tamuz":   "Tammuz",
	"Adar I":  "Adar Alef",
	"Adar II": "Adar Bet",
}

// ToHebrewDate converts a Gregorian date to its Hebrew calendar date.
// Month lengths and leap years come from the calendrical primitive's date
// type; no Hebrew-calendar arithmetic happens here. Dates before the
// Gregorian epoch yield the sentinel value.
func (e *Engine) ToHebrewDate(date time.Time) HebrewDate {
	if date.Year() < 1 {
		return HebrewDate{Display: notAvailable}
	}
	y, m, d := date.Date()
	hd := hdate.FromGregorian(y, m, d)

	month := hd.MonthName("en")
	if t, ok := monthNames[month]; ok {
		month = t
	}
	return HebrewDate{
		Day:     hd.Day(),
		Month:   month,
		Year:    hd.Year(),
		Display: fmt.Sprintf("%d %s %d", hd.Day(), month, hd.Year()),
		hd:      hd,
	}
}

// NextShabbat returns the Gregorian date of the Saturday on or after
// date (date itself when it already is a Saturday).
func (e *Engine) NextShabbat(date time.Time) time.Time {
	y, m, d := date.Date()
	return hdate.FromGregorian(y, m, d).OnOrAfter(time.Saturday).Gregorian()
}

// GetWeeklyReading computes the upcoming Shabbat's Torah portion,
// Haftarah, and the next Rosh Chodesh within the coming 30 days. Each
// field degrades independently: a failing event query yields "N/A"
// readings, a failing Rosh Chodesh scan just omits that field.
func (e *Engine) GetWeeklyReading(date time.Time) WeeklyReading {
	reading := WeeklyReading{Parashat: notAvailable, Haftarah: notAvailable}
	shabbat := e.NextShabbat(date)

	events, err := e.prim.Events(EventQuery{Start: shabbat, End: shabbat, Sedrot: true})
	if err != nil {
		e.logger.Warn("weekly reading lookup failed", slog.Any("error", err))
	} else {
		for _, ev := range events {
			if !isParashat(ev) {
				continue
			}
			reading.Parashat = ev.Name
			if citation := leyning.Citation(ev.Name); citation != "" {
				reading.Haftarah = citation
			}
			break
		}
	}

	reading.RoshChodesh = e.nextRoshChodesh(date)
	return reading
}

// nextRoshChodesh scans the forward window for the first Rosh Chodesh
// event and formats it as "<name> - <date>". Returns "" when none is
// found or the scan fails.
func (e *Engine) nextRoshChodesh(date time.Time) string {
	events, err := e.prim.Events(EventQuery{Start: date, End: date.Add(roshChodeshWindow)})
	if err != nil {
		e.logger.Warn("rosh chodesh scan failed", slog.Any("error", err))
		return ""
	}
	for _, ev := range events {
		if ev.Flags&event.ROSH_CHODESH == 0 {
			continue
		}
		return fmt.Sprintf("%s - %s", ev.Name, ev.Date.Format("2-1-2006"))
	}
	return ""
}

// GetTimes returns candle-lighting and Havdalah for the Shabbat on or
// after date, plus sunrise and sunset for date itself. All four fields
// default to "N/A" independently.
func (e *Engine) GetTimes(date time.Time) Times {
	times := Times{
		CandleLighting: notAvailable,
		Havdalah:       notAvailable,
		Sunrise:        notAvailable,
		Sunset:         notAvailable,
	}

	// Candle lighting falls on erev Shabbat, so the query starts a day
	// before the Saturday it targets.
	shabbat := e.NextShabbat(date)
	events, err := e.prim.Events(EventQuery{
		Start:          shabbat.AddDate(0, 0, -1),
		End:            shabbat,
		CandleLighting: true,
		Havdalah:       true,
	})
	if err != nil {
		e.logger.Warn("shabbat times lookup failed", slog.Any("error", err))
	} else {
		for _, ev := range events {
			if !ev.HasTime {
				continue
			}
			switch {
			case strings.HasPrefix(ev.Name, "Candle lighting"):
				times.CandleLighting = e.clock(ev.Time)
			case strings.HasPrefix(ev.Name, "Havdalah"):
				times.Havdalah = e.clock(ev.Time)
			}
		}
	}

	sunrise, sunset, err := e.prim.SunTimes(date)
	if err != nil {
		e.logger.Warn("solar times lookup failed", slog.Any("error", err))
		return times
	}
	if !sunrise.IsZero() {
		times.Sunrise = e.clock(sunrise)
	}
	if !sunset.IsZero() {
		times.Sunset = e.clock(sunset)
	}
	return times
}

// GetCalendarMonth assembles the month grid for a Gregorian month. The
// primitive is queried once for the whole month; per-day work is pure
// filtering and classification. When the batch query fails, the grid
// still carries Hebrew dates and the Shabbat fallback markers.
func (e *Engine) GetCalendarMonth(year int, month time.Month) Month {
	first := time.Date(year, month, 1, 0, 0, 0, 0, e.tz)
	daysInMonth := time.Date(year, month+1, 0, 0, 0, 0, 0, e.tz).Day()
	last := time.Date(year, month, daysInMonth, 0, 0, 0, 0, e.tz)

	batch, err := e.prim.Events(EventQuery{
		Start:          first,
		End:            last,
		CandleLighting: true,
		Havdalah:       true,
		Sedrot:         true,
	})
	if err != nil {
		e.logger.Warn("month event query failed",
			slog.Int("year", year),
			slog.Int("month", int(month)),
			slog.Any("error", err))
		batch = nil
	}

	grid := Month{Year: year, Month: int(month)}
	for day := 1; day <= daysInMonth; day++ {
		date := time.Date(year, month, day, 0, 0, 0, 0, e.tz)
		isShabbat := date.Weekday() == time.Saturday

		entry := Day{
			Day:        day,
			Date:       date.Format("2006-01-02"),
			HebrewDate: e.ToHebrewDate(date),
			IsShabbat:  isShabbat,
		}
		for _, ev := range batch {
			if !sameDay(ev.Date, date) {
				continue
			}
			entry.Events = append(entry.Events, e.classify(ev, isShabbat))
		}

		// Every Saturday shows at least a Shabbat marker, even near the
		// edges of the event data.
		if isShabbat && !hasKind(entry.Events, KindShabbat) {
			entry.Events = append(entry.Events, DayEvent{Name: "Sjabbat", Kind: KindShabbat})
		}
		grid.Days = append(grid.Days, entry)
	}
	return grid
}

// classify maps a raw event onto the small render vocabulary. The
// precedence mirrors the primitive's description conventions: exact
// matches for the timed events and the weekly portion, substring match
// for Rosh Chodesh, then the holiday bitmask.
func (e *Engine) classify(ev RawEvent, isShabbat bool) DayEvent {
	out := DayEvent{Name: ev.Name, Kind: KindOther}
	if ev.HasTime {
		out.Time = e.clock(ev.Time)
	}

	switch {
	case strings.HasPrefix(ev.Name, "Candle lighting"):
		out.Kind = KindCandleLighting
	case strings.HasPrefix(ev.Name, "Havdalah"):
		out.Kind = KindHavdalah
	case isParashat(ev):
		out.Kind = KindParashat
	case strings.Contains(ev.Name, "Rosh Chodesh"):
		out.Kind = KindRoshChodesh
	case isShabbat && ev.Name == "Shabbat":
		out.Kind = KindShabbat
	case ev.Flags&(event.CHAG|event.MINOR_HOLIDAY|event.MINOR_FAST|event.MAJOR_FAST) != 0:
		out.Kind = KindHoliday
	}
	return out
}

// isParashat recognizes the weekly Torah portion event.
func isParashat(ev RawEvent) bool {
	return ev.Flags&event.PARSHA_HASHAVUA != 0 || strings.HasPrefix(ev.Name, "Parashat ")
}

// clock renders a timestamp as local wall-clock time.
func (e *Engine) clock(t time.Time) string {
	return t.In(e.tz).Format("15:04")
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func hasKind(events []DayEvent, kind EventKind) bool {
	for _, ev := range events {
		if ev.Kind == kind {
			return true
		}
	}
	return false
}
