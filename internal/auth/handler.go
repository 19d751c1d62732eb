package auth

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/taskdeck/taskdeck/internal/user/entity"
)

// Handler exposes the auth endpoints: register, signin, logout, me.
type Handler struct {
	svc    *Service
	logger *zap.SugaredLogger
}

func NewHandler(svc *Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

// CredentialsRequest is the request body for register and signin.
type CredentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse carries the issued token and the public user view.
type AuthResponse struct {
	Token string       `json:"token"`
	User  *entity.User `json:"user"`
}

const minPasswordLength = 8

// validate applies the API-layer shape checks; the directory itself does not
// validate email format.
func (c CredentialsRequest) validate(forRegister bool) string {
	email := strings.TrimSpace(c.Email)
	if email == "" || !strings.Contains(email, "@") {
		return "invalid email address"
	}
	if c.Password == "" {
		return "password is required"
	}
	if forRegister && len(c.Password) < minPasswordLength {
		return "password must be at least 8 characters"
	}
	return ""
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req CredentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Debugw("invalid register payload", "err", err)
		writeJSON(w, http.StatusUnprocessableEntity, errorBody("invalid payload"))
		return
	}
	if msg := req.validate(true); msg != "" {
		writeJSON(w, http.StatusUnprocessableEntity, errorBody(msg))
		return
	}

	u, token, err := h.svc.Register(r.Context(), strings.TrimSpace(req.Email), req.Password)
	if err != nil {
		if errors.Is(err, ErrEmailTaken) {
			writeJSON(w, http.StatusConflict, errorBody("email already registered"))
			return
		}
		h.logger.Errorw("register failed", "err", err)
		writeJSON(w, http.StatusInternalServerError, errorBody("registration failed"))
		return
	}
	writeJSON(w, http.StatusCreated, AuthResponse{Token: token, User: u})
}

func (h *Handler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req CredentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Debugw("invalid signin payload", "err", err)
		writeJSON(w, http.StatusUnprocessableEntity, errorBody("invalid payload"))
		return
	}
	if msg := req.validate(false); msg != "" {
		writeJSON(w, http.StatusUnprocessableEntity, errorBody(msg))
		return
	}

	u, token, err := h.svc.SignIn(r.Context(), strings.TrimSpace(req.Email), req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			writeJSON(w, http.StatusUnauthorized, errorBody("invalid email or password"))
			return
		}
		h.logger.Errorw("signin failed", "err", err)
		writeJSON(w, http.StatusInternalServerError, errorBody("signin failed"))
		return
	}
	writeJSON(w, http.StatusOK, AuthResponse{Token: token, User: u})
}

// Me returns the authenticated user's public record.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		unauthorized(w)
		return
	}
	u, err := h.svc.CurrentUser(r.Context(), userID)
	if err != nil {
		h.logger.Errorw("current user lookup failed", "err", err)
		writeJSON(w, http.StatusInternalServerError, errorBody("lookup failed"))
		return
	}
	writeJSON(w, http.StatusOK, u)
}

// Logout is a stateless no-op: tokens stay valid until expiry and the client
// discards its copy. Kept as an endpoint so clients have a uniform flow.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func errorBody(msg string) map[string]string {
	return map[string]string{"detail": msg}
}
