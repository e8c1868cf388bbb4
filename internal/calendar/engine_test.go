package calendar

import (
	"errors"
	"testing"
	"time"

	"github.com/hebcal/hebcal-go/event"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedPrimitive replays a fixed event list filtered to the query
// range, with independently togglable failures.
type scriptedPrimitive struct {
	events  []RawEvent
	failAll bool
	failSun bool
	sunrise time.Time
	sunset  time.Time
}

func (p *scriptedPrimitive) Events(q EventQuery) ([]RawEvent, error) {
	if p.failAll {
		return nil, errors.New("calendrical backend unavailable")
	}
	var out []RawEvent
	for _, ev := range p.events {
		if ev.Date.Before(q.Start) || ev.Date.After(q.End.AddDate(0, 0, 1)) {
			continue
		}
		out = append(out, ev)
	}
	return out, nil
}

func (p *scriptedPrimitive) SunTimes(date time.Time) (time.Time, time.Time, error) {
	if p.failAll || p.failSun {
		return time.Time{}, time.Time{}, errors.New("solar backend unavailable")
	}
	return p.sunrise, p.sunset, nil
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func clock(y int, m time.Month, d, hh, mm int) time.Time {
	return time.Date(y, m, d, hh, mm, 0, 0, time.UTC)
}

func TestToHebrewDate(t *testing.T) {
	e := New(&scriptedPrimitive{}, time.UTC, nil)

	// Rosh Hashanah 5785 fell on 3 October 2024
	hd := e.ToHebrewDate(day(2024, time.October, 3))
	require.True(t, hd.IsValid())
	assert.Equal(t, 1, hd.Day)
	assert.Equal(t, "Tishrei", hd.Month)
	assert.Equal(t, 5785, hd.Year)
	assert.Equal(t, "1 Tishrei 5785", hd.Display)
}

func TestToHebrewDate_Transliteration(t *testing.T) {
	e := New(&scriptedPrimitive{}, time.UTC, nil)

	// Mid-May falls in Iyar; the display must use the site spelling,
	// not hebcal's "Iyyar"
	hd := e.ToHebrewDate(day(2025, time.May, 15))
	require.True(t, hd.IsValid())
	assert.NotContains(t, hd.Display, "Iyyar")
}

func TestToHebrewDate_Sentinel(t *testing.T) {
	e := New(&scriptedPrimitive{}, time.UTC, nil)

	hd := e.ToHebrewDate(time.Date(0, time.January, 1, 0, 0, 0, 0, time.UTC))
	assert.False(t, hd.IsValid())
	assert.Equal(t, "N/A", hd.Display)
}

func TestToHebrewDate_DaysAdvance(t *testing.T) {
	e := New(&scriptedPrimitive{}, time.UTC, nil)

	// Consecutive Gregorian days either advance the Hebrew day by one or
	// wrap to the first of the next month
	prev := e.ToHebrewDate(day(2025, time.March, 1))
	for d := 2; d <= 31; d++ {
		cur := e.ToHebrewDate(day(2025, time.March, d))
		require.True(t, cur.IsValid())
		if cur.Day != prev.Day+1 {
			assert.Equal(t, 1, cur.Day, "day %d", d)
		}
		prev = cur
	}
}

func TestNextShabbat(t *testing.T) {
	e := New(&scriptedPrimitive{}, time.UTC, nil)

	// Monday 13 October 2025 -> Saturday the 18th
	got := e.NextShabbat(day(2025, time.October, 13))
	assert.Equal(t, time.Saturday, got.Weekday())
	assert.Equal(t, 18, got.Day())

	// A Saturday maps to itself
	sat := day(2025, time.October, 18)
	assert.Equal(t, sat.Day(), e.NextShabbat(sat).Day())
}

func TestGetWeeklyReading(t *testing.T) {
	prim := &scriptedPrimitive{
		events: []RawEvent{
			{Date: day(2025, time.October, 18), Name: "Parashat Bereshit", Flags: event.PARSHA_HASHAVUA},
			{Date: day(2025, time.October, 23), Name: "Rosh Chodesh Cheshvan", Flags: event.ROSH_CHODESH},
		},
	}
	e := New(prim, time.UTC, nil)

	reading := e.GetWeeklyReading(day(2025, time.October, 13))
	assert.Equal(t, "Parashat Bereshit", reading.Parashat)
	assert.Equal(t, "Isaiah 42:5-43:10", reading.Haftarah)
	assert.Equal(t, "Rosh Chodesh Cheshvan - 23-10-2025", reading.RoshChodesh)
}

func TestGetWeeklyReading_TotalFailure(t *testing.T) {
	e := New(&scriptedPrimitive{failAll: true}, time.UTC, nil)

	reading := e.GetWeeklyReading(day(2025, time.October, 13))
	assert.Equal(t, "N/A", reading.Parashat)
	assert.Equal(t, "N/A", reading.Haftarah)
	assert.Empty(t, reading.RoshChodesh)
}

func TestGetWeeklyReading_NoRoshChodeshInWindow(t *testing.T) {
	prim := &scriptedPrimitive{
		events: []RawEvent{
			{Date: day(2025, time.October, 18), Name: "Parashat Bereshit", Flags: event.PARSHA_HASHAVUA},
		},
	}
	e := New(prim, time.UTC, nil)

	reading := e.GetWeeklyReading(day(2025, time.October, 13))
	assert.Equal(t, "Parashat Bereshit", reading.Parashat)
	assert.Empty(t, reading.RoshChodesh)
}

func TestGetTimes(t *testing.T) {
	prim := &scriptedPrimitive{
		events: []RawEvent{
			{
				Date:    day(2025, time.October, 17),
				Name:    "Candle lighting: 18:23",
				Time:    clock(2025, time.October, 17, 18, 23),
				HasTime: true,
			},
			{
				Date:    day(2025, time.October, 18),
				Name:    "Havdalah: 19:29",
				Time:    clock(2025, time.October, 18, 19, 29),
				HasTime: true,
			},
		},
		sunrise: clock(2025, time.October, 13, 8, 2),
		sunset:  clock(2025, time.October, 13, 18, 48),
	}
	e := New(prim, time.UTC, nil)

	times := e.GetTimes(day(2025, time.October, 13))
	assert.Equal(t, "18:23", times.CandleLighting)
	assert.Equal(t, "19:29", times.Havdalah)
	assert.Equal(t, "08:02", times.Sunrise)
	assert.Equal(t, "18:48", times.Sunset)
}

func TestGetTimes_EventFailureKeepsSolar(t *testing.T) {
	prim := &scriptedPrimitive{
		failAll: false,
		sunrise: clock(2025, time.October, 13, 8, 2),
		sunset:  clock(2025, time.October, 13, 18, 48),
	}
	// No candle events scripted at all
	e := New(prim, time.UTC, nil)

	times := e.GetTimes(day(2025, time.October, 13))
	assert.Equal(t, "N/A", times.CandleLighting)
	assert.Equal(t, "N/A", times.Havdalah)
	assert.Equal(t, "08:02", times.Sunrise)
	assert.Equal(t, "18:48", times.Sunset)
}

func TestGetTimes_TotalFailure(t *testing.T) {
	e := New(&scriptedPrimitive{failAll: true}, time.UTC, nil)

	times := e.GetTimes(day(2025, time.October, 13))
	assert.Equal(t, "N/A", times.CandleLighting)
	assert.Equal(t, "N/A", times.Havdalah)
	assert.Equal(t, "N/A", times.Sunrise)
	assert.Equal(t, "N/A", times.Sunset)
}

func TestGetCalendarMonth(t *testing.T) {
	prim := &scriptedPrimitive{
		events: []RawEvent{
			{Date: day(2025, time.October, 18), Name: "Parashat Bereshit", Flags: event.PARSHA_HASHAVUA},
			{Date: day(2025, time.October, 23), Name: "Rosh Chodesh Cheshvan", Flags: event.ROSH_CHODESH},
			{
				Date:    day(2025, time.October, 17),
				Name:    "Candle lighting: 18:23",
				Time:    clock(2025, time.October, 17, 18, 23),
				HasTime: true,
			},
		},
	}
	e := New(prim, time.UTC, nil)

	month := e.GetCalendarMonth(2025, time.October)
	require.Len(t, month.Days, 31)
	assert.Equal(t, 2025, month.Year)
	assert.Equal(t, 10, month.Month)

	for _, d := range month.Days {
		date, err := time.Parse("2006-01-02", d.Date)
		require.NoError(t, err)

		assert.True(t, d.HebrewDate.IsValid(), d.Date)
		assert.Equal(t, date.Weekday() == time.Saturday, d.IsShabbat, d.Date)

		// Every Saturday carries a shabbat-kind event
		if d.IsShabbat {
			assert.True(t, hasKind(d.Events, KindShabbat) || hasKind(d.Events, KindParashat),
				"%s has no shabbat marker", d.Date)
		}
	}

	// Classification spot checks
	oct17 := month.Days[16]
	require.Len(t, oct17.Events, 1)
	assert.Equal(t, KindCandleLighting, oct17.Events[0].Kind)
	assert.Equal(t, "18:23", oct17.Events[0].Time)

	oct18 := month.Days[17]
	assert.True(t, hasKind(oct18.Events, KindParashat))

	oct23 := month.Days[22]
	assert.True(t, hasKind(oct23.Events, KindRoshChodesh))
}

func TestGetCalendarMonth_FebruaryLeap(t *testing.T) {
	e := New(&scriptedPrimitive{}, time.UTC, nil)

	assert.Len(t, e.GetCalendarMonth(2024, time.February).Days, 29)
	assert.Len(t, e.GetCalendarMonth(2025, time.February).Days, 28)
}

func TestGetCalendarMonth_FailureStillBuildsGrid(t *testing.T) {
	e := New(&scriptedPrimitive{failAll: true}, time.UTC, nil)

	month := e.GetCalendarMonth(2025, time.October)
	require.Len(t, month.Days, 31)

	for _, d := range month.Days {
		// Hebrew dates come from the date type, not the event query
		assert.True(t, d.HebrewDate.IsValid(), d.Date)
		// Saturdays still marked via the fallback
		if d.IsShabbat {
			assert.True(t, hasKind(d.Events, KindShabbat), d.Date)
			assert.Equal(t, "Sjabbat", d.Events[0].Name, d.Date)
		}
	}
}

func TestClassifyPrecedence(t *testing.T) {
	e := New(&scriptedPrimitive{}, time.UTC, nil)

	tests := []struct {
		name string
		ev   RawEvent
		want EventKind
	}{
		{"candle", RawEvent{Name: "Candle lighting: 18:23"}, KindCandleLighting},
		{"havdalah", RawEvent{Name: "Havdalah: 19:29"}, KindHavdalah},
		{"parashat by flag", RawEvent{Name: "Parashat Noach", Flags: event.PARSHA_HASHAVUA}, KindParashat},
		{"parashat by prefix", RawEvent{Name: "Parashat Noach"}, KindParashat},
		{"rosh chodesh", RawEvent{Name: "Rosh Chodesh Kislev", Flags: event.ROSH_CHODESH}, KindRoshChodesh},
		{"holiday", RawEvent{Name: "Chanukah: 1 Candle", Flags: event.MINOR_HOLIDAY}, KindHoliday},
		{"fast", RawEvent{Name: "Yom Kippur", Flags: event.CHAG | event.MAJOR_FAST}, KindHoliday},
		{"other", RawEvent{Name: "Shabbat Mevarchim Chodesh"}, KindOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.classify(tt.ev, false)
			assert.Equal(t, tt.want, got.Kind)
		})
	}
}
