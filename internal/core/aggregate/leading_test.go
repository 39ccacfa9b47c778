package aggregate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vncsmyrnk/boulder/internal/core/domain"
)

func testFormatter() Formatter {
	return NewFormatter("boulderbar", "BB", "18:30")
}

func TestWeekDates(t *testing.T) {
	tests := []struct {
		name   string
		today  time.Time
		monday string
		friday string
	}{
		{"monday", time.Date(2025, 3, 3, 8, 0, 0, 0, time.UTC), "3.3.", "7.3."},
		{"wednesday", time.Date(2025, 3, 5, 23, 0, 0, 0, time.UTC), "3.3.", "7.3."},
		{"friday", time.Date(2025, 3, 7, 21, 0, 0, 0, time.UTC), "3.3.", "7.3."},
		{"saturday", time.Date(2025, 3, 8, 8, 0, 0, 0, time.UTC), "10.3.", "14.3."},
		{"sunday", time.Date(2025, 3, 9, 8, 0, 0, 0, time.UTC), "10.3.", "14.3."},
		{"across month end", time.Date(2025, 5, 31, 8, 0, 0, 0, time.UTC), "2.6.", "6.6."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dates := WeekDates(tt.today, weekdays)
			assert.Equal(t, tt.monday, dates["Monday"])
			assert.Equal(t, tt.friday, dates["Friday"])
		})
	}
}

func TestShortCodes(t *testing.T) {
	f := testFormatter()

	assert.Equal(t, "WED", f.ShortDay("Wednesday"))
	assert.Equal(t, "MIT", f.ShortDay("Mittwoch"))
	assert.Equal(t, "BB Seestadt", f.ShortLocation("boulderbar Seestadt"))
	assert.Equal(t, "BB Wienerberg", f.ShortLocation("BoulderBar Wienerberg"))
	assert.Equal(t, "Blockfabrik", f.ShortLocation("Blockfabrik"))
	assert.Equal(t, "boulderbar", NewFormatter("", "", "").ShortLocation("boulderbar"))
}

func TestBuildLeadingTie(t *testing.T) {
	votes := []domain.Vote{
		vote("A", []string{"Monday"}, "boulderbar Seestadt"),
		vote("B", []string{"Monday", "Tuesday"}, "Blockfabrik"),
		vote("C", []string{"Tuesday"}, "boulderbar Seestadt"),
	}
	today := time.Date(2025, 3, 4, 12, 0, 0, 0, time.UTC)

	view := testFormatter().BuildLeading("2025-10", votes, weekdays, nil, today)

	require.Len(t, view.Days, 2)
	assert.Equal(t, LeadingDay{Day: "Monday", Short: "MON", Date: "3.3.", Voters: []string{"A", "B"}, Count: 2}, view.Days[0])
	assert.Equal(t, LeadingDay{Day: "Tuesday", Short: "TUE", Date: "4.3.", Voters: []string{"B", "C"}, Count: 2}, view.Days[1])
	require.Len(t, view.Locations, 1)
	assert.Equal(t, LeadingLocation{Location: "boulderbar Seestadt", Short: "BB Seestadt", Voters: []string{"A", "C"}, Count: 2}, view.Locations[0])
	assert.Equal(t, []string{"A", "B", "C"}, view.Going)
	assert.Equal(t, "🧗 MON 3.3./TUE 4.3. 18:30 @ BB Seestadt\n👥 A, B, C", view.Compact)
}

func TestBuildLeadingWithoutVotes(t *testing.T) {
	view := testFormatter().BuildLeading("2025-10", nil, weekdays, []string{"Blockfabrik"}, time.Now())

	assert.Empty(t, view.Days)
	assert.Empty(t, view.Locations)
	assert.NotNil(t, view.Going)
	assert.Equal(t, NoVotesSummary, view.Compact)
}

func TestBuildLeadingWithoutLocations(t *testing.T) {
	votes := []domain.Vote{vote("A", []string{"Thursday"})}
	today := time.Date(2025, 3, 8, 12, 0, 0, 0, time.UTC)

	view := testFormatter().BuildLeading("2025-11", votes, weekdays, nil, today)

	assert.Equal(t, "🧗 THU 13.3. 18:30\n👥 A", view.Compact)
}

func TestBuildLeadingDatesDaysOutsideCandidates(t *testing.T) {
	votes := []domain.Vote{
		vote("A", []string{"Saturday"}),
		vote("B", []string{"Saturday", "Someday"}),
		vote("C", []string{"Someday"}),
	}
	today := time.Date(2025, 3, 4, 12, 0, 0, 0, time.UTC)

	view := testFormatter().BuildLeading("2025-10", votes, weekdays, nil, today)
	require.Len(t, view.Days, 2)
	assert.Equal(t, "Saturday", view.Days[0].Day)
	assert.Equal(t, "8.3.", view.Days[0].Date)
	assert.Equal(t, "Someday", view.Days[1].Day)
	assert.Empty(t, view.Days[1].Date)
	assert.Equal(t, "🧗 SAT 8.3./SOM 18:30\n👥 A, B, C", view.Compact)
}
