package calendar

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/hebcal/hdate"
	"github.com/hebcal/hebcal-go/hebcal"
	"github.com/hebcal/hebcal-go/zmanim"
)

// Location describes the observer for candle-lighting and solar times.
type Location struct {
	Name        string
	CountryCode string
	Latitude    float64
	Longitude   float64
	TimeZone    string
}

// NewHebcalEngine wires an Engine to the hebcal library for the given
// observer location. Known city names use hebcal's city database; other
// locations are built from the coordinates.
func NewHebcalEngine(loc Location, logger *slog.Logger) (*Engine, error) {
	tz, err := time.LoadLocation(loc.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", loc.TimeZone, err)
	}

	city := zmanim.LookupCity(loc.Name)
	if city == nil {
		l := zmanim.NewLocation(loc.Name, loc.CountryCode, loc.Latitude, loc.Longitude, loc.TimeZone)
		city = &l
	}

	return New(&hebcalPrimitive{loc: city}, tz, logger), nil
}

// hebcalPrimitive adapts hebcal's calendar and zmanim APIs to the
// Primitive interface. It is stateless beyond the fixed location.
type hebcalPrimitive struct {
	loc *zmanim.Location
}

func (p *hebcalPrimitive) Events(q EventQuery) ([]RawEvent, error) {
	opts := hebcal.CalOptions{
		Start:          fromTime(q.Start),
		End:            fromTime(q.End),
		Sedrot:         q.Sedrot,
		CandleLighting: q.CandleLighting || q.Havdalah,
		IL:             false, // diaspora cycle, fixed
	}
	if opts.CandleLighting {
		opts.Location = p.loc
	}

	events, err := hebcal.HebrewCalendar(&opts)
	if err != nil {
		return nil, fmt.Errorf("hebcal calendar: %w", err)
	}

	out := make([]RawEvent, 0, len(events))
	for _, ev := range events {
		raw := RawEvent{
			Date:  ev.GetDate().Gregorian(),
			Name:  ev.Render("en"),
			Flags: ev.GetFlags(),
		}
		if timed, ok := ev.(hebcal.TimedEvent); ok {
			raw.Time = timed.EventTime
			raw.HasTime = true
		}
		out = append(out, raw)
	}
	return out, nil
}

func (p *hebcalPrimitive) SunTimes(date time.Time) (time.Time, time.Time, error) {
	z := zmanim.New(p.loc, date)
	sunrise := z.Sunrise()
	sunset := z.Sunset()
	if sunrise.IsZero() && sunset.IsZero() {
		return time.Time{}, time.Time{}, fmt.Errorf("no solar events for %s at %s",
			date.Format("2006-01-02"), p.loc.Name)
	}
	return sunrise, sunset, nil
}

func fromTime(t time.Time) hdate.HDate {
	y, m, d := t.Date()
	return hdate.FromGregorian(y, m, d)
}
