package handlers

import (
	"net/http"

	"mealpick/internal/models"
	"mealpick/internal/security"
	"mealpick/internal/service"
)

// AuthHandler handles registration, login, and session endpoints
type AuthHandler struct {
	authService  *service.AuthService
	emailService *service.EmailService
	familyRepo   familyLookup
}

type familyLookup interface {
	GetFamilyByOwner(ownerID int64) (*models.Family, error)
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService, emailService *service.EmailService, familyRepo familyLookup) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		emailService: emailService,
		familyRepo:   familyRepo,
	}
}

type registerRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	Name       string `json:"name"`
	FamilyName string `json:"family_name"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sessionResponse struct {
	SessionID string         `json:"session_id"`
	User      *models.User   `json:"user"`
	Family    *models.Family `json:"family,omitempty"`
}

// Register handles POST /auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, family, err := h.authService.Register(r.Context(), h.emailService, req.Email, req.Password, req.Name, req.FamilyName)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	session, user, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	http.SetCookie(w, security.CreateSessionCookie(r, SessionCookieName, session.ID, session.ExpiresAt))
	respondJSON(w, http.StatusCreated, sessionResponse{
		SessionID: session.ID,
		User:      user,
		Family:    family,
	})
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	session, user, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	family, err := h.familyRepo.GetFamilyByOwner(user.ID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	http.SetCookie(w, security.CreateSessionCookie(r, SessionCookieName, session.ID, session.ExpiresAt))
	respondJSON(w, http.StatusOK, sessionResponse{
		SessionID: session.ID,
		User:      user,
		Family:    family,
	})
}

// Logout handles POST /auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if sessionID := sessionIDFromRequest(r); sessionID != "" {
		if err := h.authService.Logout(sessionID); err != nil {
			respondServiceError(w, err)
			return
		}
	}
	http.SetCookie(w, security.CreateDeleteCookie(r, SessionCookieName))
	respondJSON(w, http.StatusNoContent, nil)
}

// Session handles GET /auth/session, returning the authenticated user and
// family.
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, sessionResponse{
		SessionID: sessionIDFromRequest(r),
		User:      GetUserFromContext(r.Context()),
		Family:    GetFamilyFromContext(r.Context()),
	})
}
