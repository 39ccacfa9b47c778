package http

import (
	"context"
	"net/http"

	"github.com/vncsmyrnk/boulder/internal/core/ports"
)

type RosterHandler struct {
	service ports.RosterService
}

func NewRosterHandler(service ports.RosterService) *RosterHandler {
	return &RosterHandler{
		service: service,
	}
}

type configResponse struct {
	Success   bool     `json:"success"`
	Members   []string `json:"members"`
	Locations []string `json:"locations"`
	Weekdays  []string `json:"weekdays"`
}

// Config godoc
// @Summary      Lists the active members, locations and the votable weekdays
// @Tags         roster
// @Produce      json
// @Success      200
// @Router       /api/config [get]
func (h *RosterHandler) Config(w http.ResponseWriter, r *http.Request) {
	roster, err := h.service.Config(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, configResponse{
		Success:   true,
		Members:   roster.Members,
		Locations: roster.Locations,
		Weekdays:  roster.Weekdays,
	})
}

type nameRequest struct {
	Name string `json:"name"`
}

type renameRequest struct {
	OldName string `json:"oldName"`
	NewName string `json:"newName"`
}

type membersResponse struct {
	Success bool     `json:"success"`
	Members []string `json:"members"`
}

type locationsResponse struct {
	Success   bool     `json:"success"`
	Locations []string `json:"locations"`
}

func (h *RosterHandler) AddMember(w http.ResponseWriter, r *http.Request) {
	h.byName(w, r, h.service.AddMember, membersBody)
}

// RemoveMember godoc
// @Summary      Removes a member together with all of their votes
// @Tags         roster
// @Accept       json
// @Produce      json
// @Success      200
// @Failure      400
// @Router       /api/removeMember [post]
func (h *RosterHandler) RemoveMember(w http.ResponseWriter, r *http.Request) {
	h.byName(w, r, h.service.RemoveMember, membersBody)
}

// RenameMember godoc
// @Summary      Renames a member; their votes follow the new name
// @Tags         roster
// @Accept       json
// @Produce      json
// @Success      200
// @Failure      400
// @Router       /api/renameMember [post]
func (h *RosterHandler) RenameMember(w http.ResponseWriter, r *http.Request) {
	h.rename(w, r, h.service.RenameMember, membersBody)
}

func (h *RosterHandler) AddLocation(w http.ResponseWriter, r *http.Request) {
	h.byName(w, r, h.service.AddLocation, locationsBody)
}

// RemoveLocation godoc
// @Summary      Removes a location and drops it from every vote
// @Tags         roster
// @Accept       json
// @Produce      json
// @Success      200
// @Failure      400
// @Router       /api/removeLocation [post]
func (h *RosterHandler) RemoveLocation(w http.ResponseWriter, r *http.Request) {
	h.byName(w, r, h.service.RemoveLocation, locationsBody)
}

func (h *RosterHandler) RenameLocation(w http.ResponseWriter, r *http.Request) {
	h.rename(w, r, h.service.RenameLocation, locationsBody)
}

func membersBody(names []string) any {
	return membersResponse{Success: true, Members: names}
}

func locationsBody(names []string) any {
	return locationsResponse{Success: true, Locations: names}
}

func (h *RosterHandler) byName(w http.ResponseWriter, r *http.Request,
	op func(ctx context.Context, name string) ([]string, error), body func([]string) any) {
	var req nameRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	names, err := op(r.Context(), req.Name)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, body(names))
}

func (h *RosterHandler) rename(w http.ResponseWriter, r *http.Request,
	op func(ctx context.Context, oldName, newName string) ([]string, error), body func([]string) any) {
	var req renameRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	names, err := op(r.Context(), req.OldName, req.NewName)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, body(names))
}
