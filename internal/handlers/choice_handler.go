package handlers

import (
	"net/http"

	"mealpick/internal/models"
	"mealpick/internal/service"
)

// ChoiceHandler handles the daily selection endpoints
type ChoiceHandler struct {
	choiceService *service.ChoiceService
}

// NewChoiceHandler creates a new choice handler
func NewChoiceHandler(choiceService *service.ChoiceService) *ChoiceHandler {
	return &ChoiceHandler{choiceService: choiceService}
}

type submitChoiceRequest struct {
	FoodItemIDs []int64 `json:"food_item_ids"`
}

type dashboardResponse struct {
	ChoiceDate string                   `json:"choice_date"`
	Children   []models.ChildWithChoice `json:"children"`
}

// Dashboard handles GET /choices/today: every child in roster order paired
// with today's choice or null.
func (h *ChoiceHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	family := GetFamilyFromContext(r.Context())
	today := h.choiceService.Today()

	children, err := h.choiceService.GetDashboard(family.ID, today)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, dashboardResponse{
		ChoiceDate: today,
		Children:   children,
	})
}

// Get handles GET /children/{id}/choice, returning today's choice for one
// child or null.
func (h *ChoiceHandler) Get(w http.ResponseWriter, r *http.Request) {
	family := GetFamilyFromContext(r.Context())
	childID, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid child id")
		return
	}

	choice, err := h.choiceService.GetChoice(family.ID, childID, h.choiceService.Today())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, choice)
}

// Submit handles PUT /children/{id}/choice. The submitted list replaces any
// earlier submission for today; an empty list is a valid submission.
func (h *ChoiceHandler) Submit(w http.ResponseWriter, r *http.Request) {
	family := GetFamilyFromContext(r.Context())
	childID, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid child id")
		return
	}

	var req submitChoiceRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	choice, err := h.choiceService.Submit(family.ID, childID, h.choiceService.Today(), req.FoodItemIDs)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, choice)
}
