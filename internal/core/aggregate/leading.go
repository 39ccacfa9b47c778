package aggregate

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/vncsmyrnk/boulder/internal/core/domain"
)

// NoVotesSummary is the compact summary of a period nobody voted in.
const NoVotesSummary = "No votes yet"

// DefaultDayCodes are the short codes used when a Formatter has none.
var DefaultDayCodes = map[string]string{
	"Monday":    "MON",
	"Tuesday":   "TUE",
	"Wednesday": "WED",
	"Thursday":  "THU",
	"Friday":    "FRI",
	"Saturday":  "SAT",
	"Sunday":    "SUN",
}

var weekdayByName = map[string]time.Weekday{
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
	"sunday":    time.Sunday,
}

type LeadingDay struct {
	Day    string   `json:"day"`
	Short  string   `json:"short"`
	Date   string   `json:"date"`
	Voters []string `json:"voters"`
	Count  int      `json:"count"`
}

type LeadingLocation struct {
	Location string   `json:"location"`
	Short    string   `json:"short"`
	Voters   []string `json:"voters"`
	Count    int      `json:"count"`
}

// LeadingView is the current standing of a period.
type LeadingView struct {
	Period    domain.PeriodID
	Days      []LeadingDay
	Locations []LeadingLocation
	Going     []string
	Compact   string
}

// Formatter renders tallies for display.
type Formatter struct {
	DayCodes            map[string]string
	LocationPattern     *regexp.Regexp
	LocationReplacement string
	MeetingTime         string
}

// NewFormatter builds a Formatter that replaces every case-insensitive
// occurrence of pattern in location names with replacement. An empty pattern
// leaves names untouched.
func NewFormatter(pattern, replacement, meetingTime string) Formatter {
	f := Formatter{
		DayCodes:            DefaultDayCodes,
		LocationReplacement: replacement,
		MeetingTime:         meetingTime,
	}
	if pattern != "" {
		f.LocationPattern = regexp.MustCompile("(?i)" + regexp.QuoteMeta(pattern))
	}
	return f
}

// ShortDay returns the display code for day.
func (f Formatter) ShortDay(day string) string {
	if code, ok := f.DayCodes[day]; ok {
		return code
	}
	r := []rune(strings.ToUpper(day))
	if len(r) > 3 {
		r = r[:3]
	}
	return string(r)
}

// ShortLocation compacts a location name.
func (f Formatter) ShortLocation(name string) string {
	if f.LocationPattern == nil {
		return name
	}
	return f.LocationPattern.ReplaceAllLiteralString(name, f.LocationReplacement)
}

// WeekDates assigns a "d.m." date to each day of the displayed week. On
// Monday to Friday that is the running week, on weekends the next one.
// Names that are not weekdays get no entry.
func WeekDates(today time.Time, days []string) map[string]string {
	monday := DisplayedMonday(today)
	dates := make(map[string]string, len(days))
	for _, day := range days {
		wd, ok := weekdayByName[strings.ToLower(day)]
		if !ok {
			continue
		}
		offset := (int(wd) + 6) % 7
		d := monday.AddDate(0, 0, offset)
		dates[day] = fmt.Sprintf("%d.%d.", d.Day(), int(d.Month()))
	}
	return dates
}

// DisplayedMonday returns midnight of the Monday of the displayed week.
func DisplayedMonday(today time.Time) time.Time {
	midnight := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())
	switch wd := today.Weekday(); wd {
	case time.Saturday:
		return midnight.AddDate(0, 0, 2)
	case time.Sunday:
		return midnight.AddDate(0, 0, 1)
	default:
		return midnight.AddDate(0, 0, 1-int(wd))
	}
}

// BuildLeading tallies votes and joins the leading sets with dates and short
// codes.
func (f Formatter) BuildLeading(period domain.PeriodID, votes []domain.Vote, days, locations []string, today time.Time) LeadingView {
	t := TallyVotes(votes, days, locations)
	dates := WeekDates(today, Keys(t.Days))

	view := LeadingView{
		Period:    period,
		Days:      []LeadingDay{},
		Locations: []LeadingLocation{},
		Going:     []string{},
	}

	seen := make(map[string]struct{})
	for _, b := range t.LeadingDays() {
		view.Days = append(view.Days, LeadingDay{
			Day:    b.Key,
			Short:  f.ShortDay(b.Key),
			Date:   dates[b.Key],
			Voters: b.Voters,
			Count:  b.Count(),
		})
		for _, voter := range b.Voters {
			if _, ok := seen[voter]; ok {
				continue
			}
			seen[voter] = struct{}{}
			view.Going = append(view.Going, voter)
		}
	}

	for _, b := range t.LeadingLocations() {
		view.Locations = append(view.Locations, LeadingLocation{
			Location: b.Key,
			Short:    f.ShortLocation(b.Key),
			Voters:   b.Voters,
			Count:    b.Count(),
		})
	}

	view.Compact = f.compact(view)
	return view
}

func (f Formatter) compact(view LeadingView) string {
	if len(view.Days) == 0 {
		return NoVotesSummary
	}

	days := make([]string, 0, len(view.Days))
	for _, d := range view.Days {
		days = append(days, strings.TrimSpace(d.Short+" "+d.Date))
	}

	var sb strings.Builder
	sb.WriteString("🧗 ")
	sb.WriteString(strings.Join(days, "/"))
	if f.MeetingTime != "" {
		sb.WriteString(" " + f.MeetingTime)
	}
	if len(view.Locations) > 0 {
		locs := make([]string, 0, len(view.Locations))
		for _, l := range view.Locations {
			locs = append(locs, l.Short)
		}
		sb.WriteString(" @ " + strings.Join(locs, "/"))
	}
	sb.WriteString("\n👥 ")
	sb.WriteString(strings.Join(view.Going, ", "))
	return sb.String()
}
