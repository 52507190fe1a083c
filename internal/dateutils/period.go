package dateutils

import (
	"strings"
	"time"
)

// PeriodRange is a resolved date range for scoping analytics queries.
// Invariant: Start is never after End.
type PeriodRange struct {
	Start time.Time
	End   time.Time
}

// ResolvePeriod turns a period expression into a concrete date range relative
// to now. Recognized keywords: "today", "yesterday", "this week", "last week",
// "this month", "last month", "this year", "last year". Anything else is tried
// as "<date> to <date>". Input that parses as neither falls back to the
// current month-to-date; this leniency is deliberate, since period strings
// arrive from a language model and a hard error would turn a recoverable
// misphrasing into a tool failure.
func ResolvePeriod(period string, now time.Time) PeriodRange {
	today := StartOfDay(now)

	switch strings.ToLower(strings.TrimSpace(period)) {
	case "today":
		return PeriodRange{Start: today, End: today}
	case "yesterday":
		yesterday := today.AddDate(0, 0, -1)
		return PeriodRange{Start: yesterday, End: yesterday}
	case "this week":
		return PeriodRange{Start: StartOfWeek(today), End: today}
	case "last week":
		lastWeek := today.AddDate(0, 0, -7)
		return PeriodRange{Start: StartOfWeek(lastWeek), End: EndOfWeek(lastWeek)}
	case "this month":
		return PeriodRange{Start: StartOfMonth(today), End: today}
	case "last month":
		lastMonth := StartOfMonth(today).AddDate(0, -1, 0)
		return PeriodRange{Start: lastMonth, End: EndOfMonth(lastMonth)}
	case "this year":
		return PeriodRange{Start: StartOfYear(today), End: today}
	case "last year":
		lastYear := today.AddDate(-1, 0, 0)
		return PeriodRange{Start: StartOfYear(lastYear), End: EndOfYear(lastYear)}
	}

	if r, ok := parseExplicitRange(period); ok {
		return r
	}

	log.WithField("period", period).Warn("Unrecognized period expression, defaulting to current month-to-date")
	return PeriodRange{Start: StartOfMonth(today), End: today}
}

// parseExplicitRange handles the "<date> to <date>" form.
func parseExplicitRange(period string) (PeriodRange, bool) {
	parts := strings.SplitN(period, " to ", 2)
	if len(parts) != 2 {
		return PeriodRange{}, false
	}

	start, err := ParseDate(parts[0])
	if err != nil {
		return PeriodRange{}, false
	}
	end, err := ParseDate(parts[1])
	if err != nil {
		return PeriodRange{}, false
	}
	if end.Before(start) {
		start, end = end, start
	}
	return PeriodRange{Start: start, End: end}, true
}

// Contains reports whether a date falls inside the range, inclusive on both ends.
func (r PeriodRange) Contains(date time.Time) bool {
	d := StartOfDay(date)
	return !d.Before(StartOfDay(r.Start)) && !d.After(StartOfDay(r.End))
}
