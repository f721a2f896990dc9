package complaint

import "sync"

// State identifies which field the intake is currently collecting. There is
// no stored "complete" state: accepting the final field deletes the session.
type State int

const (
	StateAwaitingName State = iota
	StateAwaitingEmail
	StateAwaitingPhone
	StateAwaitingRoom
)

// String returns the state name for logs and tests.
func (s State) String() string {
	switch s {
	case StateAwaitingName:
		return "awaiting_name"
	case StateAwaitingEmail:
		return "awaiting_email"
	case StateAwaitingPhone:
		return "awaiting_phone"
	case StateAwaitingRoom:
		return "awaiting_room"
	default:
		return "unknown"
	}
}

// Field keys for collected complaint details.
const (
	FieldName  = "name"
	FieldEmail = "email"
	FieldPhone = "phone"
	FieldRoom  = "room_number"
)

// Session is one conversation's in-progress complaint intake.
//
// A session exists in the store if and only if intake is incomplete for its
// identifier. The state determines exactly which field is still missing;
// fields are filled strictly in order name → email → phone → room.
type Session struct {
	ID            string
	State         State
	ComplaintText string // First message that triggered detection, verbatim
	Category      Category
	Fields        map[string]string
}

// Store owns all active intake sessions, keyed by the caller-supplied
// session identifier. No other component reads or writes sessions directly;
// all access goes through the Engine's operations.
//
// Thread-safety:
//   - One mutex guards the whole map. Load is a handful of conversations,
//     so per-key locking buys nothing here.
//   - The Engine holds the lock for a full read-validate-write step, so two
//     concurrent messages for the same id cannot race past validation or
//     double-complete a flow.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

// NewStore creates an empty session store.
func NewStore() *Store {
	return &Store{sessions: make(map[string]*Session)}
}

// Count returns the number of active intake sessions.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
