package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"mealpick/internal/models"
	"mealpick/internal/repository"
	"mealpick/internal/security"
	"mealpick/internal/service"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const (
	UserContextKey   ContextKey = "user"
	FamilyContextKey ContextKey = "family"
)

// SessionCookieName is the cookie carrying the session ID for browser clients.
// Non-browser clients send the same ID as a bearer token instead.
const SessionCookieName = "session_id"

// Middleware holds dependencies for middleware functions
type Middleware struct {
	authService *service.AuthService
	familyRepo  *repository.FamilyRepository
}

// NewMiddleware creates a new middleware instance
func NewMiddleware(authService *service.AuthService, familyRepo *repository.FamilyRepository) *Middleware {
	return &Middleware{
		authService: authService,
		familyRepo:  familyRepo,
	}
}

// RequireAuth validates the session and resolves the caller's family. Every
// request downstream is scoped to that one family; cross-family access is
// impossible because handlers only ever see the family from context.
func (m *Middleware) RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := sessionIDFromRequest(r)
		if sessionID == "" {
			respondError(w, http.StatusUnauthorized, "not authenticated")
			return
		}

		user, err := m.authService.ValidateSession(sessionID)
		if err != nil {
			http.SetCookie(w, security.CreateDeleteCookie(r, SessionCookieName))
			respondError(w, http.StatusUnauthorized, "not authenticated")
			return
		}

		family, err := m.familyRepo.GetFamilyByOwner(user.ID)
		if err != nil {
			respondServiceError(w, err)
			return
		}
		if family == nil {
			respondError(w, http.StatusForbidden, "account has no family")
			return
		}

		ctx := context.WithValue(r.Context(), UserContextKey, user)
		ctx = context.WithValue(ctx, FamilyContextKey, family)
		next(w, r.WithContext(ctx))
	}
}

// sessionIDFromRequest extracts the session ID from the cookie or, failing
// that, from an Authorization bearer token.
func sessionIDFromRequest(r *http.Request) string {
	if cookie, err := r.Cookie(SessionCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	auth := r.Header.Get("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	return ""
}

// Logging middleware logs HTTP requests
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s %s", r.Method, r.URL.Path, time.Since(start))
	})
}

// RateLimit rejects requests over the limiter's per-IP budget. Applied to
// the auth endpoints only; authenticated traffic is not limited.
func RateLimit(limiter *security.RateLimiter, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !limiter.Allow(security.GetClientIP(r)) {
			respondError(w, http.StatusTooManyRequests, "too many requests")
			return
		}
		next(w, r)
	}
}

// GetUserFromContext retrieves the user from the request context
func GetUserFromContext(ctx context.Context) *models.User {
	user, ok := ctx.Value(UserContextKey).(*models.User)
	if !ok {
		return nil
	}
	return user
}

// GetFamilyFromContext retrieves the family from the request context
func GetFamilyFromContext(ctx context.Context) *models.Family {
	family, ok := ctx.Value(FamilyContextKey).(*models.Family)
	if !ok {
		return nil
	}
	return family
}
