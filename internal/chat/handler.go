package chat

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

// Handler exposes the chat completion endpoint. Mounted behind the auth
// middleware like the task routes.
type Handler struct {
	svc    *Service
	logger *zap.SugaredLogger
}

func NewHandler(svc *Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

// ChatRequest is the request body for a completion.
type ChatRequest struct {
	Messages    []Message `json:"messages"`
	Model       string    `json:"model,omitempty"`
	Temperature *float64  `json:"temperature,omitempty"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
}

// ChatResponse carries the assistant's reply and the model that produced it.
type ChatResponse struct {
	Response string `json:"response"`
	Model    string `json:"model"`
}

const defaultTemperature = 0.7

func (c ChatRequest) validate() string {
	if len(c.Messages) == 0 {
		return "at least one message is required"
	}
	for _, m := range c.Messages {
		if strings.TrimSpace(m.Role) == "" || strings.TrimSpace(m.Content) == "" {
			return "every message needs a role and content"
		}
	}
	return ""
}

func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	if !h.svc.Configured() {
		writeJSON(w, http.StatusServiceUnavailable, errorBody("chat backend is not configured"))
		return
	}

	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, errorBody("invalid payload"))
		return
	}
	if msg := req.validate(); msg != "" {
		writeJSON(w, http.StatusUnprocessableEntity, errorBody(msg))
		return
	}

	temperature := defaultTemperature
	if req.Temperature != nil {
		temperature = *req.Temperature
	}

	reply, err := h.svc.Complete(r.Context(), req.Messages, req.Model, temperature, req.MaxTokens)
	if err != nil {
		if errors.Is(err, ErrNotConfigured) {
			writeJSON(w, http.StatusServiceUnavailable, errorBody("chat backend is not configured"))
			return
		}
		h.logger.Errorw("chat completion failed", "err", err)
		writeJSON(w, http.StatusInternalServerError, errorBody("chat request failed"))
		return
	}
	writeJSON(w, http.StatusOK, ChatResponse{Response: reply, Model: h.svc.Model(req.Model)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func errorBody(msg string) map[string]string {
	return map[string]string{"detail": msg}
}
