// Package rag provides the client for the external retrieval-augmented
// answer backend.
//
// The backend owns the vector store, embeddings, and LLM; this side only
// speaks its narrow contract: POST a question, get back natural-language
// text. Failures surface as UpstreamError so the dispatcher can convert
// them to a single user-facing apology.
//
// Graceful degradation: if no backend URL is configured, NewClient returns
// nil and informational questions get a static fallback.
package rag

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	apperrors "aryabot/internal/errors"
)

// Answerer is the capability the dispatcher depends on: given a question,
// return natural-language text.
type Answerer interface {
	Answer(ctx context.Context, question string) (string, error)
}

// Client talks to the chat backend over HTTP.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient creates a backend client.
//
// Returns nil if baseURL is empty (graceful degradation).
func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		log.Println("⚠️  CHAT_BACKEND_URL not set. Informational questions get a static reply.")
		return nil
	}

	log.Println("✓ Chat backend configured:", baseURL)

	return &Client{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				IdleConnTimeout:     90 * time.Second,
				MaxIdleConnsPerHost: 5,
			},
		},
	}
}

// chatRequest / chatResponse mirror the backend's /chat JSON contract.
type chatRequest struct {
	Question string `json:"question"`
}

type chatResponse struct {
	Response string `json:"response"`
}

// Answer sends the question to the backend and returns its reply text.
func (c *Client) Answer(ctx context.Context, question string) (string, error) {
	payload, err := json.Marshal(chatRequest{Question: question})
	if err != nil {
		return "", apperrors.NewUpstreamError("chat backend", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat", bytes.NewReader(payload))
	if err != nil {
		return "", apperrors.NewUpstreamError("chat backend", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", apperrors.NewUpstreamError("chat backend", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", apperrors.NewUpstreamError("chat backend", fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", apperrors.NewUpstreamError("chat backend", err)
	}

	return parsed.Response, nil
}
