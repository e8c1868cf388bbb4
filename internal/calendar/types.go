// Package calendar derives Hebrew-calendar facts for Gregorian dates: the
// Hebrew date itself, the upcoming Shabbat's Torah and Haftarah reading,
// Rosh Chodesh, candle-lighting and Havdalah times, and a full month grid
// of liturgical events.
//
// All calendrical arithmetic (lunisolar conversion, molad, year length,
// holiday generation) is delegated to the hebcal library; this package
// layers citation formatting, transliteration, and day-grid assembly on
// top. The diaspora reading cycle is a fixed configuration choice.
package calendar

import (
	"time"

	"github.com/hebcal/hebcal-go/event"
	"github.com/hebcal/hdate"
)

// HebrewDate is the rendered Hebrew calendar date for one Gregorian day.
// A zero Day with Display "N/A" is the sentinel for a failed conversion;
// callers must render it distinctly rather than fall back to the
// Gregorian date.
type HebrewDate struct {
	Day     int    `json:"day"`
	Month   string `json:"month"` // transliterated month name, e.g. "Tishrei"
	Year    int    `json:"year"`
	Display string `json:"display"` // "15 Tishrei 5786"

	hd hdate.HDate
}

// IsValid reports whether the conversion produced a real date.
func (h HebrewDate) IsValid() bool { return h.Day > 0 }

// EventKind classifies a liturgical event for rendering.
type EventKind string

const (
	KindCandleLighting EventKind = "candleLighting"
	KindHavdalah       EventKind = "havdalah"
	KindParashat       EventKind = "parashat"
	KindRoshChodesh    EventKind = "roshChodesh"
	KindShabbat        EventKind = "shabbat"
	KindHoliday        EventKind = "holiday"
	KindOther          EventKind = "other"
)

// DayEvent is one classified event on a calendar day.
type DayEvent struct {
	Name string    `json:"name"`
	Kind EventKind `json:"type"`
	Time string    `json:"time,omitempty"` // "16:43" local time, when applicable
}

// Day is one entry of the month grid. Request-scoped; never persisted.
type Day struct {
	Day        int        `json:"day"`
	Date       string     `json:"date"` // YYYY-MM-DD
	HebrewDate HebrewDate `json:"hebrewDate"`
	IsShabbat  bool       `json:"isShabbat"`
	Events     []DayEvent `json:"events"`
}

// Month is the assembled month view. Days are in ascending day order and
// cover exactly the Gregorian month; grid padding with adjacent-month days
// is the caller's concern.
type Month struct {
	Year  int   `json:"year"`
	Month int   `json:"month"`
	Days  []Day `json:"days"`
}

// WeeklyReading describes the next Shabbat's readings. Failed lookups
// degrade per field: "N/A" for the readings, "" for Rosh Chodesh.
type WeeklyReading struct {
	Parashat    string `json:"parashat"`
	Haftarah    string `json:"haftarah"`
	RoshChodesh string `json:"roshChodesh,omitempty"` // "<name> - <date>"
}

// Times bundles the liturgical times for the next Shabbat plus solar
// times for the queried date itself. Each field degrades to "N/A"
// independently.
type Times struct {
	CandleLighting string `json:"candleLighting"`
	Havdalah       string `json:"havdalah"`
	Sunrise        string `json:"sunrise"`
	Sunset         string `json:"sunset"`
}

// EventQuery selects which event classes the calendrical primitive should
// emit for a date range.
type EventQuery struct {
	Start          time.Time
	End            time.Time
	CandleLighting bool
	Havdalah       bool
	Sedrot         bool
}

// RawEvent is a single event as delivered by the calendrical primitive,
// before classification.
type RawEvent struct {
	Date    time.Time          // Gregorian civil date the event falls on
	Name    string             // localized rendering, e.g. "Parashat Noach"
	Flags   event.HolidayFlags // holiday classification bitmask
	Time    time.Time          // clock time, when HasTime
	HasTime bool
}

// Primitive is the calendrical computation backend. The production
// implementation wraps hebcal; tests inject failing or scripted fakes.
type Primitive interface {
	Events(q EventQuery) ([]RawEvent, error)
	SunTimes(date time.Time) (sunrise, sunset time.Time, err error)
}
