package http

import (
	"net/http"

	"github.com/vncsmyrnk/boulder/internal/core/aggregate"
	"github.com/vncsmyrnk/boulder/internal/core/domain"
	"github.com/vncsmyrnk/boulder/internal/core/ports"
)

type VoteHandler struct {
	service ports.VoteService
	metrics *Metrics
}

// NewVoteHandler accepts a nil metrics.
func NewVoteHandler(service ports.VoteService, metrics *Metrics) *VoteHandler {
	return &VoteHandler{
		service: service,
		metrics: metrics,
	}
}

type voteEntry struct {
	Name      string   `json:"name"`
	Weekdays  []string `json:"weekdays"`
	Locations []string `json:"locations"`
}

type votesResponse struct {
	Success           bool            `json:"success"`
	Data              []voteEntry     `json:"data"`
	WeekNumber        int             `json:"weekNumber"`
	Year              int             `json:"year"`
	IsCurrentWeek     bool            `json:"isCurrentWeek"`
	CurrentWeekNumber domain.PeriodID `json:"currentWeekNumber"`
}

// ListVotes godoc
// @Summary      Lists the votes of a week
// @Description  Defaults to the current week when `week` is omitted.
// @Tags         votes
// @Produce      json
// @Param        week  query  string  false  "week id, e.g. 2025-10"
// @Success      200
// @Failure      400
// @Router       /api/votes [get]
func (h *VoteHandler) ListVotes(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ListVotes(r.Context(), r.URL.Query().Get("week"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	data := make([]voteEntry, 0, len(result.Votes))
	for _, v := range result.Votes {
		data = append(data, voteEntry{Name: v.Member, Weekdays: v.Weekdays, Locations: v.Locations})
	}

	writeJSON(w, http.StatusOK, votesResponse{
		Success:           true,
		Data:              data,
		WeekNumber:        result.Period.Week(),
		Year:              result.Period.Year(),
		IsCurrentWeek:     result.IsCurrentWeek,
		CurrentWeekNumber: result.Current,
	})
}

type weeksResponse struct {
	Success     bool              `json:"success"`
	Weeks       []domain.PeriodID `json:"weeks"`
	CurrentWeek domain.PeriodID   `json:"currentWeek"`
}

// ListWeeks godoc
// @Summary      Lists every week that has votes, newest first
// @Tags         votes
// @Produce      json
// @Success      200
// @Router       /api/weeks [get]
func (h *VoteHandler) ListWeeks(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ListWeeks(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, weeksResponse{Success: true, Weeks: result.Weeks, CurrentWeek: result.Current})
}

type voteRequest struct {
	Name      string   `json:"name"`
	Weekdays  []string `json:"weekdays"`
	Locations []string `json:"locations"`
	Week      string   `json:"week"`
}

// Vote godoc
// @Summary      Stores a member's selection for a week
// @Description  Replaces any previous selection. Empty weekdays and locations remove the vote.
// @Tags         votes
// @Accept       json
// @Produce      json
// @Success      200
// @Failure      400
// @Router       /api/vote [post]
func (h *VoteHandler) Vote(w http.ResponseWriter, r *http.Request) {
	var req voteRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	input := ports.VoteInput{
		Name:      req.Name,
		Weekdays:  req.Weekdays,
		Locations: req.Locations,
		Week:      req.Week,
	}
	if err := h.service.Vote(r.Context(), input); err != nil {
		writeError(w, r, err)
		return
	}

	// An empty selection withdraws the vote and is not counted.
	if !input.IsWithdrawal() {
		h.metrics.voteSubmitted()
	}
	writeJSON(w, http.StatusOK, successResponse{Success: true})
}

type removeVoteRequest struct {
	Name string `json:"name"`
	Week string `json:"week"`
}

// RemoveVote godoc
// @Summary      Removes a member's vote for a week
// @Tags         votes
// @Accept       json
// @Produce      json
// @Success      200
// @Failure      400
// @Router       /api/removeVote [post]
func (h *VoteHandler) RemoveVote(w http.ResponseWriter, r *http.Request) {
	var req removeVoteRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.service.RemoveVote(r.Context(), req.Name, req.Week); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, successResponse{Success: true})
}

type leadingResponse struct {
	Success          bool                        `json:"success"`
	WeekNumber       int                         `json:"weekNumber"`
	LeadingDays      []aggregate.LeadingDay      `json:"leadingDays"`
	LeadingLocations []aggregate.LeadingLocation `json:"leadingLocations"`
	Going            []string                    `json:"going"`
	Compact          string                      `json:"compact"`
}

// Leading godoc
// @Summary      Shows the leading days and locations of the current week
// @Tags         votes
// @Produce      json
// @Success      200
// @Router       /api/leading [get]
func (h *VoteHandler) Leading(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.Leading(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, leadingResponse{
		Success:          true,
		WeekNumber:       view.Period.Week(),
		LeadingDays:      view.Days,
		LeadingLocations: view.Locations,
		Going:            view.Going,
		Compact:          view.Compact,
	})
}

type statsResponse struct {
	Success bool             `json:"success"`
	Data    *aggregate.Stats `json:"data"`
}

// Stats godoc
// @Summary      Points per member and location over all closed weeks
// @Tags         stats
// @Produce      json
// @Success      200
// @Router       /api/stats [get]
func (h *VoteHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Stats(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, statsResponse{Success: true, Data: stats})
}
