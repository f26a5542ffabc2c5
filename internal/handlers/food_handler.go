package handlers

import (
	"net/http"

	"mealpick/internal/models"
	"mealpick/internal/service"
)

// FoodHandler handles food catalog endpoints
type FoodHandler struct {
	catalogService *service.CatalogService
}

// NewFoodHandler creates a new food handler
func NewFoodHandler(catalogService *service.CatalogService) *FoodHandler {
	return &FoodHandler{catalogService: catalogService}
}

type createFoodRequest struct {
	Name     string          `json:"name"`
	Emoji    string          `json:"emoji"`
	Category models.Category `json:"category"`
}

// List handles GET /food-items with an optional ?category= filter
func (h *FoodHandler) List(w http.ResponseWriter, r *http.Request) {
	family := GetFamilyFromContext(r.Context())

	var category *models.Category
	if value := r.URL.Query().Get("category"); value != "" {
		c := models.Category(value)
		category = &c
	}

	items, err := h.catalogService.ListFoodItems(family.ID, category)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, items)
}

// Create handles POST /food-items
func (h *FoodHandler) Create(w http.ResponseWriter, r *http.Request) {
	family := GetFamilyFromContext(r.Context())

	var req createFoodRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	food, err := h.catalogService.AddFoodItem(family.ID, req.Name, req.Emoji, req.Category)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, food)
}

// Get handles GET /food-items/{id}
func (h *FoodHandler) Get(w http.ResponseWriter, r *http.Request) {
	family := GetFamilyFromContext(r.Context())
	foodID, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid food item id")
		return
	}

	food, err := h.catalogService.GetFoodItem(family.ID, foodID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, food)
}

// Update handles PATCH /food-items/{id}
func (h *FoodHandler) Update(w http.ResponseWriter, r *http.Request) {
	family := GetFamilyFromContext(r.Context())
	foodID, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid food item id")
		return
	}

	var update models.FoodItemUpdate
	if err := decodeJSON(r, &update); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	food, err := h.catalogService.UpdateFoodItem(family.ID, foodID, update)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, food)
}

// Delete handles DELETE /food-items/{id}. The item is deactivated, not
// removed, so existing choices keep their history.
func (h *FoodHandler) Delete(w http.ResponseWriter, r *http.Request) {
	family := GetFamilyFromContext(r.Context())
	foodID, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid food item id")
		return
	}

	if err := h.catalogService.RemoveFoodItem(family.ID, foodID); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}
