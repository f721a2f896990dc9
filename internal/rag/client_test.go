package rag

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	apperrors "aryabot/internal/errors"
)

func TestNewClientWithoutURL(t *testing.T) {
	if c := NewClient("", time.Second); c != nil {
		t.Error("empty base URL should yield a nil client")
	}
}

func TestAnswer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/chat" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("bad request body: %v", err)
		}
		if req.Question != "when is dinner served" {
			t.Errorf("question = %q", req.Question)
		}
		json.NewEncoder(w).Encode(chatResponse{Response: "Dinner starts at 7 PM."})
	}))
	defer server.Close()

	c := NewClient(server.URL, 5*time.Second)
	answer, err := c.Answer(context.Background(), "when is dinner served")
	if err != nil {
		t.Fatal(err)
	}
	if answer != "Dinner starts at 7 PM." {
		t.Errorf("answer = %q", answer)
	}
}

func TestAnswerNon200(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	c := NewClient(server.URL, 5*time.Second)
	_, err := c.Answer(context.Background(), "hello")
	if err == nil {
		t.Fatal("expected error for non-200 status")
	}
	if !apperrors.IsUpstream(err) {
		t.Errorf("expected an upstream error, got %T", err)
	}
}

func TestAnswerUnreachableBackend(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close() // immediately, so the address refuses connections

	c := NewClient(server.URL, time.Second)
	_, err := c.Answer(context.Background(), "hello")
	if err == nil {
		t.Fatal("expected error for unreachable backend")
	}
	if !apperrors.IsUpstream(err) {
		t.Errorf("expected an upstream error, got %T", err)
	}
}

func TestAnswerBadJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer server.Close()

	c := NewClient(server.URL, 5*time.Second)
	_, err := c.Answer(context.Background(), "hello")
	if !apperrors.IsUpstream(err) {
		t.Errorf("expected an upstream error, got %v", err)
	}
}
