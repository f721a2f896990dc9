// Package dispatcher routes each inbound message to the complaint intake
// engine, the menu resolver, the photo catalog, or the external answer
// backend.
//
// Routing priority, in order:
//  1. An active intake session consumes every message for its identifier,
//     including complaint-looking text — a user cannot escape a flow
//     mid-intake by typing something that merely looks like another query.
//  2. A message that reads like a complaint opens a new intake.
//  3. Menu-shaped queries go to the resolver.
//  4. Photo-shaped queries go to the catalog.
//  5. Everything else goes to the answer backend; its failures are caught
//     here, logged, and converted to one generic apology.
package dispatcher

import (
	"context"
	"log"
	"strings"
	"time"

	"aryabot/internal/complaint"
	"aryabot/internal/menu"
	"aryabot/internal/photos"
	"aryabot/internal/rag"
)

// User-facing fixed replies. The dispatcher is the only place upstream
// failures get rendered; nothing below it exposes raw error text.
const (
	apologyReply = "Sorry, I'm having trouble answering that right now. Please try again in a moment."
	emptyReply   = "Please type a question, or describe a problem you'd like to report."
	staticReply  = "I can help with the mess menu, hostel photos, and registering maintenance complaints. " +
		"Try \"what's on the menu today\" or describe an issue in your room."
	cancelledReply = "Complaint registration cancelled. How else can I help you?"
	noCancelReply  = "No active complaint registration to cancel."
	photosReply    = "Here are some photos:"
)

// Response is one turn's reply to the presentation layer.
type Response struct {
	Text          string
	Photos        []string          // File paths for the caller to render
	PortalURL     string            // Set when an intake just completed
	Fields        map[string]string // Raw collected fields for manual fallback
	ComplaintText string            // Original complaint, for form pre-fill
	IntakeDone    bool
}

// Dispatcher wires the core components together. It owns no state of its
// own; all mutable state lives in the engine's session store.
type Dispatcher struct {
	engine   *complaint.Engine
	menus    *menu.Resolver
	catalog  *photos.Catalog
	answerer rag.Answerer
	now      func() time.Time
}

// New creates a dispatcher. catalog and answerer may be nil; the matching
// routes then degrade to the static reply.
func New(engine *complaint.Engine, menus *menu.Resolver, catalog *photos.Catalog, answerer rag.Answerer) *Dispatcher {
	return &Dispatcher{
		engine:   engine,
		menus:    menus,
		catalog:  catalog,
		answerer: answerer,
		now:      time.Now,
	}
}

// Handle processes one inbound message for a session identifier.
func (d *Dispatcher) Handle(ctx context.Context, sessionID, message string) Response {
	trimmed := strings.TrimSpace(message)
	if trimmed == "" {
		return Response{Text: emptyReply}
	}

	// An active intake always wins, cancel command included.
	if d.engine.InFlow(sessionID) {
		if isCancelCommand(trimmed) {
			return Response{Text: d.Cancel(sessionID)}
		}
		res, err := d.engine.ProcessStep(sessionID, trimmed)
		if err != nil {
			// Session vanished between the check and the step; treat as a
			// fresh start prompt rather than an error.
			return Response{Text: "Please start by describing your complaint."}
		}
		return fromResult(res)
	}

	if isCancelCommand(trimmed) {
		return Response{Text: d.Cancel(sessionID)}
	}

	if complaint.Detect(trimmed) {
		return fromResult(d.engine.Start(sessionID, trimmed))
	}

	if dayArg, ok := menuQuery(trimmed); ok {
		return Response{Text: d.menus.Resolve(dayArg, d.now())}
	}

	if d.catalog != nil {
		if paths := d.catalog.HandleQuery(trimmed); len(paths) > 0 {
			return Response{Text: photosReply, Photos: paths}
		}
	}

	if d.answerer == nil {
		return Response{Text: staticReply}
	}

	answer, err := d.answerer.Answer(ctx, trimmed)
	if err != nil {
		log.Println("⚠️  Answer backend error:", err)
		return Response{Text: apologyReply}
	}
	return Response{Text: answer}
}

// Cancel cancels any active intake for the identifier and returns the
// user-facing confirmation. Safe to call repeatedly.
func (d *Dispatcher) Cancel(sessionID string) string {
	if d.engine.Cancel(sessionID) {
		return cancelledReply
	}
	return noCancelReply
}

// Menu renders a menu request directly, bypassing routing. Used by command
// surfaces like /menu and /week.
func (d *Dispatcher) Menu(dayArg string) string {
	return d.menus.Resolve(dayArg, d.now())
}

// WeekRows exposes the Sunday-first week schedule for card rendering.
func (d *Dispatcher) WeekRows() []menu.Row {
	return d.menus.FullWeekMenu()
}

// fromResult converts an engine result into a dispatcher response.
func fromResult(res complaint.Result) Response {
	return Response{
		Text:          res.Message,
		PortalURL:     res.PortalURL,
		Fields:        res.Fields,
		ComplaintText: res.ComplaintText,
		IntakeDone:    res.Done,
	}
}

// isCancelCommand matches a whole-message cancel, with or without the
// leading slash. A mid-sentence "cancel" stays an ordinary answer.
func isCancelCommand(message string) bool {
	lower := strings.ToLower(strings.TrimSpace(message))
	return lower == "cancel" || lower == "/cancel"
}

// menuQuery detects menu-shaped messages and extracts the day argument:
// a weekday name if one appears, "week" for whole-week requests, otherwise
// "today".
func menuQuery(message string) (string, bool) {
	lower := strings.ToLower(message)
	if !strings.Contains(lower, "menu") {
		return "", false
	}

	for _, day := range []string{"sunday", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday"} {
		if strings.Contains(lower, day) {
			return day, true
		}
	}
	if strings.Contains(lower, "week") {
		return "week", true
	}
	return "today", true
}
