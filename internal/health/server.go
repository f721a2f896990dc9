// Package health provides the HTTP surface of the assistant:
//   - GET /health: status for monitoring tools
//   - POST /chat: the web chat contract, feeding the dispatcher
package health

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"
)

// Status is returned by the /health endpoint.
type Status struct {
	Status          string `json:"status"`
	Uptime          string `json:"uptime"`
	MessagesHandled int64  `json:"messages_handled"`
	ActiveIntakes   int    `json:"active_intakes"`
	LastMessageTime string `json:"last_message_time"`
}

// Monitor tracks application health metrics.
//
// Thread-safety: all fields are protected by RWMutex; safe for concurrent
// updates from the Telegram loop and HTTP handlers.
type Monitor struct {
	mu              sync.RWMutex
	startTime       time.Time
	lastMessageTime time.Time
	messagesHandled int64
	activeIntakes   func() int
}

// NewMonitor creates a health monitor. activeIntakes reports the number of
// in-progress complaint intakes; nil means the gauge reads zero.
func NewMonitor(activeIntakes func() int) *Monitor {
	if activeIntakes == nil {
		activeIntakes = func() int { return 0 }
	}
	return &Monitor{
		startTime:     time.Now(),
		activeIntakes: activeIntakes,
	}
}

// RecordMessage notes that one inbound message was handled.
func (m *Monitor) RecordMessage() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastMessageTime = time.Now()
	m.messagesHandled++
}

// GetStatus returns the current health status.
func (m *Monitor) GetStatus() Status {
	m.mu.RLock()
	defer m.mu.RUnlock()

	last := ""
	if !m.lastMessageTime.IsZero() {
		last = m.lastMessageTime.Format("2006-01-02 15:04:05")
	}

	return Status{
		Status:          "healthy",
		Uptime:          time.Since(m.startTime).String(),
		MessagesHandled: m.messagesHandled,
		ActiveIntakes:   m.activeIntakes(),
		LastMessageTime: last,
	}
}

// ChatHandler is the dispatcher capability the /chat endpoint needs.
type ChatHandler interface {
	HandleChat(ctx context.Context, sessionID, message string) ChatReply
}

// ChatReply is the JSON body returned by /chat.
type ChatReply struct {
	Response     string   `json:"response"`
	Photos       []string `json:"photos,omitempty"`
	ComplaintURL string   `json:"complaint_url,omitempty"`
}

// chatRequest is the JSON body accepted by /chat.
type chatRequest struct {
	Question  string `json:"question"`
	SessionID string `json:"session_id"`
}

// NewMux builds the HTTP handler serving /health and /chat. A nil chat
// handler disables the /chat endpoint.
func NewMux(monitor *Monitor, chat ChatHandler) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(monitor.GetStatus())
	})

	if chat != nil {
		mux.HandleFunc("/chat", func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				http.Error(w, "POST only", http.StatusMethodNotAllowed)
				return
			}

			var req chatRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				http.Error(w, "invalid JSON body", http.StatusBadRequest)
				return
			}
			if req.SessionID == "" {
				req.SessionID = "web"
			}

			monitor.RecordMessage()
			reply := chat.HandleChat(r.Context(), req.SessionID, req.Question)

			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(reply)
		})
	}

	return mux
}

// StartServer starts the HTTP server in a background goroutine.
//
// Parameters:
//   - monitor: Health monitor to query for status
//   - chat: Chat handler; nil disables the /chat endpoint
//   - port: Port to listen on (e.g., "8080")
func StartServer(monitor *Monitor, chat ChatHandler, port string) {
	mux := NewMux(monitor, chat)
	go func() {
		log.Printf("✓ HTTP server started on :%s", port)
		if err := http.ListenAndServe(":"+port, mux); err != nil {
			log.Printf("⚠️  HTTP server error: %v", err)
		}
	}()
}
