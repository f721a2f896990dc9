package complaint

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	apperrors "aryabot/internal/errors"
)

// subjectMaxLen caps the portal's subject/summary fields. The portal's own
// field names are guessed from common osTicket conventions, and its length
// limits are unknown; 100 characters is the safe cap the pre-fill relies on.
const subjectMaxLen = 100

var (
	emailPattern = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	nonDigits    = regexp.MustCompile(`\D`)
)

// Result is what one engine operation hands back to the dispatcher.
//
// While the intake is mid-flight only Message/NeedsInput/Step are set. On
// completion Done is true and PortalURL plus the raw collected Fields are
// included so a caller can offer manual copy-paste fallback.
type Result struct {
	Message       string
	NeedsInput    bool
	Step          State
	Done          bool
	Category      Category
	ComplaintText string
	PortalURL     string
	Fields        map[string]string
}

// Engine drives exactly one finite-state machine per session identifier.
//
// Every operation takes the store lock for its full duration, so the
// read-validate-write sequence for one identifier is a single atomic unit
// and a session is never observable in a half-completed state.
type Engine struct {
	store         *Store
	portalBaseURL string
}

// NewEngine creates an intake engine over a session store.
func NewEngine(store *Store, portalBaseURL string) *Engine {
	return &Engine{store: store, portalBaseURL: portalBaseURL}
}

// InFlow reports whether the identifier has an active intake session.
func (e *Engine) InFlow(sessionID string) bool {
	e.store.mu.Lock()
	defer e.store.mu.Unlock()
	_, ok := e.store.sessions[sessionID]
	return ok
}

// Start opens a new intake session for a detected complaint.
//
// The category is computed here, from the triggering message only, and
// never recomputed. If a session already exists for the identifier the
// message is consumed as the next answer instead — a user cannot restart
// an intake by typing something complaint-shaped mid-flow.
func (e *Engine) Start(sessionID, complaintText string) Result {
	e.store.mu.Lock()
	defer e.store.mu.Unlock()

	if sess, ok := e.store.sessions[sessionID]; ok {
		return e.step(sess, complaintText)
	}

	category := Categorize(complaintText)
	e.store.sessions[sessionID] = &Session{
		ID:            sessionID,
		State:         StateAwaitingName,
		ComplaintText: complaintText,
		Category:      category,
		Fields:        make(map[string]string),
	}

	return Result{
		Message: fmt.Sprintf("I'm sorry to hear about this %s issue. I'll help you register a complaint. "+
			"Let me collect some basic information first.\n\nPlease provide your full name:",
			strings.ToLower(string(category))),
		NeedsInput: true,
		Step:       StateAwaitingName,
		Category:   category,
	}
}

// ProcessStep consumes one message as the answer for the field currently
// being collected.
//
// An invalid input re-prompts and leaves both the state and the collected
// fields untouched. Accepting the final field (room number) builds the
// summary and portal URL, deletes the session, and returns everything in
// one step.
//
// Returns a NoSessionError when no intake is active for the identifier;
// only the dispatch boundary decides how to render that to the user.
func (e *Engine) ProcessStep(sessionID, input string) (Result, error) {
	e.store.mu.Lock()
	defer e.store.mu.Unlock()

	sess, ok := e.store.sessions[sessionID]
	if !ok {
		return Result{}, apperrors.NewNoSessionError(sessionID)
	}

	return e.step(sess, input), nil
}

// step advances one session by one message. Caller must hold the store lock.
func (e *Engine) step(sess *Session, input string) Result {
	trimmed := strings.TrimSpace(input)

	switch sess.State {
	case StateAwaitingName:
		if trimmed == "" {
			return reprompt(sess, "Please provide your full name:")
		}
		sess.Fields[FieldName] = trimmed
		sess.State = StateAwaitingEmail
		return Result{
			Message:    fmt.Sprintf("Thank you, %s. Now please provide your college email address:", trimmed),
			NeedsInput: true,
			Step:       StateAwaitingEmail,
			Category:   sess.Category,
		}

	case StateAwaitingEmail:
		if !ValidEmail(trimmed) {
			return reprompt(sess, "Please provide a valid email address (preferably your college email):")
		}
		sess.Fields[FieldEmail] = trimmed
		sess.State = StateAwaitingPhone
		return Result{
			Message:    "Great! Now please provide your phone number:",
			NeedsInput: true,
			Step:       StateAwaitingPhone,
			Category:   sess.Category,
		}

	case StateAwaitingPhone:
		if !ValidPhone(trimmed) {
			return reprompt(sess, "Please provide a valid 10-digit phone number:")
		}
		sess.Fields[FieldPhone] = trimmed
		sess.State = StateAwaitingRoom
		return Result{
			Message:    "Thank you! Please provide your room number:",
			NeedsInput: true,
			Step:       StateAwaitingRoom,
			Category:   sess.Category,
		}

	default: // StateAwaitingRoom
		if trimmed == "" {
			return reprompt(sess, "Please provide your room number:")
		}
		sess.Fields[FieldRoom] = trimmed
		return e.complete(sess)
	}
}

// reprompt re-asks for the current field without consuming any state.
func reprompt(sess *Session, message string) Result {
	return Result{
		Message:    message,
		NeedsInput: true,
		Step:       sess.State,
		Category:   sess.Category,
	}
}

// complete finishes the intake in one logical step: summary, portal URL,
// session deletion. Caller must hold the store lock. No completed record is
// kept; the only outputs are what the caller receives here.
func (e *Engine) complete(sess *Session) Result {
	fields := make(map[string]string, len(sess.Fields))
	for k, v := range sess.Fields {
		fields[k] = v
	}

	portalURL := e.buildPortalURL(sess)
	summary := buildSummary(sess, portalURL)

	delete(e.store.sessions, sess.ID)

	return Result{
		Message:       summary,
		Done:          true,
		Category:      sess.Category,
		ComplaintText: sess.ComplaintText,
		PortalURL:     portalURL,
		Fields:        fields,
	}
}

// Cancel deletes the session for an identifier if one exists and reports
// whether it did. Calling it again is safe; the second call just reports
// that nothing was active.
func (e *Engine) Cancel(sessionID string) bool {
	e.store.mu.Lock()
	defer e.store.mu.Unlock()

	if _, ok := e.store.sessions[sessionID]; !ok {
		return false
	}
	delete(e.store.sessions, sessionID)
	return true
}

// ValidEmail checks the standard local@domain.tld shape. No DNS or MX
// lookups; the portal does its own verification.
func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// ValidPhone accepts a number whose digit count, after stripping everything
// else, is between 10 and 12 inclusive. That covers a bare 10-digit local
// number and a country-code-prefixed variant; no checksum or carrier
// validation is attempted.
func ValidPhone(phone string) bool {
	digits := nonDigits.ReplaceAllString(phone, "")
	return len(digits) >= 10 && len(digits) <= 12
}

// buildPortalURL constructs the pre-filled portal URL as a plain GET query
// string. Field names follow common osTicket conventions since the portal's
// real names are unknown; several synonyms are filled so at least one set
// lands. A known fragility, not a correctness concern.
func (e *Engine) buildPortalURL(sess *Session) string {
	subject := truncateRunes(fmt.Sprintf("Room %s - %s", sess.Fields[FieldRoom], sess.ComplaintText), subjectMaxLen)
	location := fmt.Sprintf("Room %s", sess.Fields[FieldRoom])

	params := url.Values{}
	params.Set("email", sess.Fields[FieldEmail])
	params.Set("name", sess.Fields[FieldName])
	params.Set("fullname", sess.Fields[FieldName])
	params.Set("phone", sess.Fields[FieldPhone])
	params.Set("mobile", sess.Fields[FieldPhone])
	params.Set("subject", subject)
	params.Set("summary", subject)
	params.Set("message", sess.ComplaintText)
	params.Set("issue", sess.ComplaintText)
	params.Set("location", location)
	params.Set("room", sess.Fields[FieldRoom])

	return e.portalBaseURL + "?" + params.Encode()
}

// buildSummary renders the human-readable completion message: category,
// original complaint text, all four collected fields, and manual-entry
// instructions in case the pre-fill does not take.
func buildSummary(sess *Session, portalURL string) string {
	f := sess.Fields
	return fmt.Sprintf(`📋 Complaint Summary

Issue Category: %s
Description: %s

Your Details:
- Name: %s
- Email: %s
- Phone: %s
- Room Number: %s

✅ Next Steps:
1. Open the complaint portal link below
2. The form will try to auto-fill your basic information
3. If anything is missing, enter it manually:
   - Problem Summary: Room %s - %s
   - Location: Room %s
4. Add any extra details in the description field
5. Submit the complaint to receive a reference number

🔗 %s

💡 Tip: Keep this chat open for reference while filling the form!`,
		sess.Category, sess.ComplaintText,
		f[FieldName], f[FieldEmail], f[FieldPhone], f[FieldRoom],
		f[FieldRoom], sess.ComplaintText, f[FieldRoom],
		portalURL)
}

// truncateRunes caps a string at max runes.
func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
