package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/jonboulle/clockwork"

	"github.com/KokserM/kazoot-quiz/internal/app"
	"github.com/KokserM/kazoot-quiz/internal/infra/memory"
	"github.com/KokserM/kazoot-quiz/internal/quiz"
)

func newAPIServer(t *testing.T) *httptest.Server {
	t.Helper()

	hub := NewHub()
	service := app.NewGameService(hub, nil, clockwork.NewRealClock(), 20*time.Second)
	bank := memory.NewQuestionBank(memory.DemoQuizzes())
	supplier := quiz.NewLoaderSupplier(bank)
	api := NewAPIHandler(supplier, service, bank.Topics(), false)

	router := mux.NewRouter()
	api.Routes(router)
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server
}

func TestCreateSessionEndpoint(t *testing.T) {
	server := newAPIServer(t)

	body, _ := json.Marshal(map[string]string{"topic": "Video Games"})
	resp, err := http.Post(server.URL+"/api/create-session", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var created createSessionResponse
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(created.SessionID) != 6 || created.QuestionCount != 10 {
		t.Fatalf("unexpected response: %+v", created)
	}
}

func TestCreateSessionRequiresTopic(t *testing.T) {
	server := newAPIServer(t)

	resp, err := http.Post(server.URL+"/api/create-session", "application/json", bytes.NewReader([]byte(`{}`)))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestDemoTopicsAndHealth(t *testing.T) {
	server := newAPIServer(t)

	resp, err := http.Get(server.URL + "/api/demo-topics")
	if err != nil {
		t.Fatalf("get topics: %v", err)
	}
	defer resp.Body.Close()
	var topics struct {
		Topics    []string `json:"topics"`
		HasOpenAI bool     `json:"hasOpenAI"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&topics); err != nil {
		t.Fatalf("decode topics: %v", err)
	}
	if len(topics.Topics) != 3 || topics.HasOpenAI {
		t.Fatalf("unexpected topics payload: %+v", topics)
	}

	health, err := http.Get(server.URL + "/health")
	if err != nil {
		t.Fatalf("get health: %v", err)
	}
	defer health.Body.Close()
	if health.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 health, got %d", health.StatusCode)
	}
}
