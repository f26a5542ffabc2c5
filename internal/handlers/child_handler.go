package handlers

import (
	"net/http"
	"strconv"

	"mealpick/internal/models"
	"mealpick/internal/service"
)

// ChildHandler handles roster endpoints
type ChildHandler struct {
	rosterService *service.RosterService
}

// NewChildHandler creates a new child handler
func NewChildHandler(rosterService *service.RosterService) *ChildHandler {
	return &ChildHandler{rosterService: rosterService}
}

type createChildRequest struct {
	Name        string `json:"name"`
	AvatarEmoji string `json:"avatar_emoji"`
	Color       string `json:"color"`
}

// List handles GET /children
func (h *ChildHandler) List(w http.ResponseWriter, r *http.Request) {
	family := GetFamilyFromContext(r.Context())

	children, err := h.rosterService.ListChildren(family.ID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, children)
}

// Create handles POST /children
func (h *ChildHandler) Create(w http.ResponseWriter, r *http.Request) {
	family := GetFamilyFromContext(r.Context())

	var req createChildRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	child, err := h.rosterService.AddChild(family.ID, req.Name, req.AvatarEmoji, req.Color)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, child)
}

// Get handles GET /children/{id}
func (h *ChildHandler) Get(w http.ResponseWriter, r *http.Request) {
	family := GetFamilyFromContext(r.Context())
	childID, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid child id")
		return
	}

	child, err := h.rosterService.GetChild(family.ID, childID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, child)
}

// Update handles PATCH /children/{id}
func (h *ChildHandler) Update(w http.ResponseWriter, r *http.Request) {
	family := GetFamilyFromContext(r.Context())
	childID, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid child id")
		return
	}

	var update models.ChildUpdate
	if err := decodeJSON(r, &update); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	child, err := h.rosterService.UpdateChild(family.ID, childID, update)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, child)
}

// Delete handles DELETE /children/{id}
func (h *ChildHandler) Delete(w http.ResponseWriter, r *http.Request) {
	family := GetFamilyFromContext(r.Context())
	childID, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid child id")
		return
	}

	if err := h.rosterService.RemoveChild(family.ID, childID); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

// pathID parses a numeric path value
func pathID(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(r.PathValue(name), 10, 64)
}
