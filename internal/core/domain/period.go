package domain

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"
)

// PeriodID identifies one voting cycle as "<year>-<week>", week unpadded.
type PeriodID string

// NewPeriodID builds the canonical identifier for year and week.
func NewPeriodID(year, week int) PeriodID {
	return PeriodID(fmt.Sprintf("%d-%d", year, week))
}

// ParsePeriodID validates s and returns it in canonical form, so "2025-07"
// and "2025-7" address the same period.
func ParsePeriodID(s string) (PeriodID, error) {
	year, week, err := splitPeriod(s)
	if err != nil {
		return "", err
	}
	return NewPeriodID(year, week), nil
}

func splitPeriod(s string) (int, int, error) {
	y, w, ok := strings.Cut(strings.TrimSpace(s), "-")
	if !ok {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidPeriod, s)
	}
	year, err := strconv.Atoi(y)
	if err != nil || year < 1 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidPeriod, s)
	}
	week, err := strconv.Atoi(w)
	if err != nil || week < 1 || week > 54 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidPeriod, s)
	}
	return year, week, nil
}

// Year returns the year component, or 0 for a malformed id.
func (p PeriodID) Year() int {
	year, _, _ := splitPeriod(string(p))
	return year
}

// Week returns the week component, or 0 for a malformed id.
func (p PeriodID) Week() int {
	_, week, _ := splitPeriod(string(p))
	return week
}

func (p PeriodID) String() string {
	return string(p)
}

// Compare orders periods chronologically. Malformed ids sort first.
func (p PeriodID) Compare(other PeriodID) int {
	py, pw, _ := splitPeriod(string(p))
	oy, ow, _ := splitPeriod(string(other))
	if py != oy {
		return py - oy
	}
	return pw - ow
}

// SortPeriodsDescending sorts newest first, in place.
func SortPeriodsDescending(periods []PeriodID) {
	slices.SortFunc(periods, func(a, b PeriodID) int {
		return b.Compare(a)
	})
}

// WeekPolicy selects how an instant maps to a voting period.
type WeekPolicy string

const (
	// PolicyCalendar counts weeks from January 1st, rolling over at Sunday 00:00.
	PolicyCalendar WeekPolicy = "calendar"
	// PolicyRollover closes a week on Friday at the rollover hour; the
	// weekend already belongs to the following ISO week.
	PolicyRollover WeekPolicy = "rollover"
)

// ParseWeekPolicy accepts "calendar" or "rollover", case-insensitive.
func ParseWeekPolicy(s string) (WeekPolicy, error) {
	switch WeekPolicy(strings.ToLower(strings.TrimSpace(s))) {
	case PolicyCalendar:
		return PolicyCalendar, nil
	case PolicyRollover:
		return PolicyRollover, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownPolicy, s)
}

// DefaultRolloverHour is the local hour on Friday at which voting for the
// week closes.
const DefaultRolloverHour = 20

// Resolver maps instants to period identifiers.
type Resolver struct {
	Policy       WeekPolicy
	Location     *time.Location
	RolloverHour int
}

// NewResolver returns a resolver evaluating local time in loc. A nil loc
// means UTC.
func NewResolver(policy WeekPolicy, loc *time.Location) Resolver {
	if loc == nil {
		loc = time.UTC
	}
	return Resolver{Policy: policy, Location: loc, RolloverHour: DefaultRolloverHour}
}

// Current returns the period that now belongs to.
func (r Resolver) Current(now time.Time) PeriodID {
	now = now.In(r.location())
	if r.Policy == PolicyCalendar {
		return calendarPeriod(now)
	}
	return r.rolloverPeriod(now)
}

// Resolve returns the period addressed by override, or the current period
// when override is empty.
func (r Resolver) Resolve(now time.Time, override string) (PeriodID, error) {
	if strings.TrimSpace(override) == "" {
		return r.Current(now), nil
	}
	return ParsePeriodID(override)
}

// IsCurrent reports whether p is the period in progress at now.
func (r Resolver) IsCurrent(now time.Time, p PeriodID) bool {
	return r.Current(now) == p
}

// DisplayDate returns a local instant inside the week that Current(now)
// tallies. Under the rollover policy Friday evening and the weekend already
// point into the following week.
func (r Resolver) DisplayDate(now time.Time) time.Time {
	now = now.In(r.location())
	if r.Policy == PolicyCalendar {
		return now
	}
	return r.rolloverRef(now)
}

// rolloverRef moves closed-week instants to the Monday that opens the next week.
func (r Resolver) rolloverRef(now time.Time) time.Time {
	switch now.Weekday() {
	case time.Saturday:
		return now.AddDate(0, 0, 2)
	case time.Sunday:
		return now.AddDate(0, 0, 1)
	case time.Friday:
		if now.Hour() >= r.RolloverHour {
			return now.AddDate(0, 0, 3)
		}
	}
	return now
}

func (r Resolver) location() *time.Location {
	if r.Location == nil {
		return time.UTC
	}
	return r.Location
}

const weekDuration = 7 * 24 * time.Hour

func calendarPeriod(now time.Time) PeriodID {
	start := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
	elapsed := now.Sub(start) + time.Duration(start.Weekday())*24*time.Hour
	n := int(elapsed / weekDuration)
	if elapsed%weekDuration != 0 {
		n++
	}
	if n < 1 {
		n = 1
	}
	return NewPeriodID(now.Year(), n)
}

func (r Resolver) rolloverPeriod(now time.Time) PeriodID {
	ref := r.rolloverRef(now)
	// ISOWeek anchors on the Thursday of the week, so the year can differ
	// from now's calendar year around New Year.
	year, n := ref.ISOWeek()
	return NewPeriodID(year, n)
}
