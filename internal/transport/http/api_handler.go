package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"github.com/KokserM/kazoot-quiz/internal/app"
	"github.com/KokserM/kazoot-quiz/internal/quiz"
)

// APIHandler serves the REST endpoints around the realtime flow: session
// creation, demo topic discovery, and health.
type APIHandler struct {
	supplier         quiz.Supplier
	service          *app.GameService
	demoTopics       []string
	generatorEnabled bool
}

func NewAPIHandler(supplier quiz.Supplier, service *app.GameService, demoTopics []string, generatorEnabled bool) *APIHandler {
	return &APIHandler{
		supplier:         supplier,
		service:          service,
		demoTopics:       demoTopics,
		generatorEnabled: generatorEnabled,
	}
}

// Routes registers the REST endpoints on the router.
func (h *APIHandler) Routes(r *mux.Router) {
	r.HandleFunc("/api/create-session", h.CreateSession).Methods(http.MethodPost)
	r.HandleFunc("/api/demo-topics", h.DemoTopics).Methods(http.MethodGet)
	r.HandleFunc("/health", h.Health).Methods(http.MethodGet)
}

type createSessionRequest struct {
	Topic    string `json:"topic"`
	Language string `json:"language"`
}

type createSessionResponse struct {
	SessionID     string `json:"sessionId"`
	Topic         string `json:"topic"`
	Language      string `json:"language"`
	QuestionCount int    `json:"questionCount"`
}

func (h *APIHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Topic == "" {
		writeError(w, http.StatusBadRequest, "topic is required")
		return
	}
	if req.Language == "" {
		req.Language = "English"
	}

	q, err := h.supplier.GetQuiz(r.Context(), req.Topic, req.Language)
	if err != nil {
		log.Error().Err(err).Str("topic", req.Topic).Msg("quiz supply failed")
		writeError(w, http.StatusInternalServerError, "failed to generate quiz questions")
		return
	}

	code, err := h.service.CreateSession(r.Context(), q)
	if err != nil {
		log.Error().Err(err).Msg("session creation failed")
		writeError(w, http.StatusInternalServerError, "failed to create game session")
		return
	}

	writeJSON(w, http.StatusOK, createSessionResponse{
		SessionID:     code,
		Topic:         req.Topic,
		Language:      req.Language,
		QuestionCount: len(q.Questions),
	})
}

func (h *APIHandler) DemoTopics(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"topics":    h.demoTopics,
		"hasOpenAI": h.generatorEnabled,
	})
}

func (h *APIHandler) Health(w http.ResponseWriter, _ *http.Request) {
	sessions, players := h.service.Stats()
	writeJSON(w, http.StatusOK, map[string]any{
		"status":         "healthy",
		"timestamp":      time.Now().UTC().Format(time.RFC3339),
		"activeSessions": sessions,
		"totalPlayers":   players,
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
