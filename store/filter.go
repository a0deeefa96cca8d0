package store

import (
	"strings"
	"time"

	"github.com/danielbiegler/timebox/internal/timeutil"
)

// filterKind discriminates the ListFilter variants.
type filterKind int

const (
	filterNone filterKind = iota
	filterToday
	filterYesterday
	filterThisWeek
	filterLastWeek
	filterThisMonth
	filterLastMonth
	filterDate
	filterRange
)

const dateLayout = "2006-01-02"

// ListFilter restricts a listing to finished boxes whose start instant falls
// within a calendar window. The zero value matches everything.
type ListFilter struct {
	kind filterKind
	// from and to carry the parsed calendar dates of the Date and Range
	// variants; only their year, month, and day are meaningful.
	from time.Time
	to   time.Time
}

// FilterNone matches all finished boxes.
func FilterNone() ListFilter { return ListFilter{} }

// FilterToday matches boxes started on the current day.
func FilterToday() ListFilter { return ListFilter{kind: filterToday} }

// FilterYesterday matches boxes started on the previous day.
func FilterYesterday() ListFilter { return ListFilter{kind: filterYesterday} }

// FilterThisWeek matches boxes started in the current Monday-aligned week.
func FilterThisWeek() ListFilter { return ListFilter{kind: filterThisWeek} }

// FilterLastWeek matches boxes started in the previous Monday-aligned week.
func FilterLastWeek() ListFilter { return ListFilter{kind: filterLastWeek} }

// FilterThisMonth matches boxes started in the current calendar month.
func FilterThisMonth() ListFilter { return ListFilter{kind: filterThisMonth} }

// FilterLastMonth matches boxes started in the previous calendar month.
func FilterLastMonth() ListFilter { return ListFilter{kind: filterLastMonth} }

// FilterDate matches boxes started on the given calendar date.
func FilterDate(d time.Time) ListFilter {
	return ListFilter{kind: filterDate, from: d}
}

// FilterRange matches boxes started between the two dates, inclusive.
func FilterRange(from, to time.Time) (ListFilter, error) {
	if midnight(from, from.Location()).After(midnight(to, to.Location())) {
		return ListFilter{}, ErrInvalidRange
	}

	return ListFilter{kind: filterRange, from: from, to: to}, nil
}

// IsNone reports whether the filter matches everything.
func (f ListFilter) IsNone() bool {
	return f.kind == filterNone
}

// ParseFilter turns a date filter token into a ListFilter. Accepted forms
// are the symbolic tokens (today, yesterday, this-week, last-week,
// this-month, last-month), a literal date (YYYY-MM-DD), or a date range
// (YYYY-MM-DD..YYYY-MM-DD). An empty token yields FilterNone.
func ParseFilter(token string) (ListFilter, error) {
	s := strings.ToLower(strings.TrimSpace(token))

	switch s {
	case "":
		return FilterNone(), nil
	case "today":
		return FilterToday(), nil
	case "yesterday":
		return FilterYesterday(), nil
	case "this-week":
		return FilterThisWeek(), nil
	case "last-week":
		return FilterLastWeek(), nil
	case "this-month":
		return FilterThisMonth(), nil
	case "last-month":
		return FilterLastMonth(), nil
	}

	if from, to, ok := strings.Cut(s, ".."); ok {
		fromDate, err := time.Parse(dateLayout, from)
		if err != nil {
			return ListFilter{}, ErrInvalidDateSpec.Fmt(from)
		}

		toDate, err := time.Parse(dateLayout, to)
		if err != nil {
			return ListFilter{}, ErrInvalidDateSpec.Fmt(to)
		}

		return FilterRange(fromDate, toDate)
	}

	date, err := time.Parse(dateLayout, s)
	if err != nil {
		return ListFilter{}, ErrInvalidDateSpec.Fmt(s)
	}

	return FilterDate(date), nil
}

// Resolve computes the half-open instant interval [start, end) the filter
// denotes, relative to now. Calendar boundaries (day, Monday-aligned week,
// month) are taken in now's location. Resolve is pure: it performs no I/O
// and never reads the wall clock.
func (f ListFilter) Resolve(now time.Time) (start, end time.Time, err error) {
	loc := now.Location()

	switch f.kind {
	case filterNone:
		// unbounded
		return time.Time{}, time.Time{}, nil
	case filterToday:
		start = timeutil.RoundToStart(now)
		return start, start.AddDate(0, 0, 1), nil
	case filterYesterday:
		start = timeutil.RoundToStart(now.AddDate(0, 0, -1))
		return start, start.AddDate(0, 0, 1), nil
	case filterThisWeek:
		start = timeutil.StartOfWeek(now)
		return start, start.AddDate(0, 0, 7), nil
	case filterLastWeek:
		start = timeutil.StartOfWeek(now).AddDate(0, 0, -7)
		return start, start.AddDate(0, 0, 7), nil
	case filterThisMonth:
		start = timeutil.StartOfMonth(now)
		return start, start.AddDate(0, 1, 0), nil
	case filterLastMonth:
		end = timeutil.StartOfMonth(now)
		return end.AddDate(0, -1, 0), end, nil
	case filterDate:
		start = midnight(f.from, loc)
		return start, start.AddDate(0, 0, 1), nil
	case filterRange:
		start = midnight(f.from, loc)
		end = midnight(f.to, loc).AddDate(0, 0, 1)

		if start.After(end) {
			return time.Time{}, time.Time{}, ErrInvalidRange
		}

		return start, end, nil
	}

	return time.Time{}, time.Time{}, errUnknownFilterKind.Fmt(int(f.kind))
}

// midnight rebuilds the calendar date of t at the start of day in loc.
func midnight(t time.Time, loc *time.Location) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}
