package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"mealpick/internal/service"
	"mealpick/internal/validation"
)

func TestRespondServiceErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"validation error", validation.ValidationError{Field: "name", Message: "name is required"}, http.StatusBadRequest},
		{"invalid category", service.ErrInvalidCategory, http.StatusBadRequest},
		{"email taken", service.ErrEmailTaken, http.StatusConflict},
		{"bad credentials", service.ErrInvalidCredentials, http.StatusUnauthorized},
		{"session expired", service.ErrSessionExpired, http.StatusUnauthorized},
		{"child not found", service.ErrChildNotFound, http.StatusNotFound},
		{"food not found", service.ErrFoodItemNotFound, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			respondServiceError(recorder, tt.err)
			if recorder.Code != tt.status {
				t.Errorf("status = %d, want %d", recorder.Code, tt.status)
			}
			var body errorResponse
			if err := json.Unmarshal(recorder.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid error body: %v", err)
			}
			if body.Error == "" {
				t.Error("error body should carry a message")
			}
		})
	}
}

func TestRespondServiceErrorHidesInternals(t *testing.T) {
	recorder := httptest.NewRecorder()
	respondServiceError(recorder, json.Unmarshal([]byte("{"), &struct{}{}))

	if recorder.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", recorder.Code)
	}
	var body errorResponse
	if err := json.Unmarshal(recorder.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid error body: %v", err)
	}
	if body.Error != "internal server error" {
		t.Errorf("body = %q, internals must not leak", body.Error)
	}
}
