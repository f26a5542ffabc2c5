package handlers

import (
	"net/http"
)

// FamilyHandler handles family endpoints
type FamilyHandler struct{}

// NewFamilyHandler creates a new family handler
func NewFamilyHandler() *FamilyHandler {
	return &FamilyHandler{}
}

// Get handles GET /family, returning the caller's family
func (h *FamilyHandler) Get(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, GetFamilyFromContext(r.Context()))
}
