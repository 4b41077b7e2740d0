package bot

import (
	"sync"
	"time"
)

// Conversation menus.
const (
	MenuMain     = "main"
	MenuLeadForm = "lead_form"
)

// LeadDraft accumulates answers across the quote form. One field is
// filled per completed step; all fields are optional until step 5
// commits the draft as a lead.
type LeadDraft struct {
	ProjectType string `json:"project_type,omitempty"`
	Budget      string `json:"budget,omitempty"`
	Timeline    string `json:"timeline,omitempty"`
	Description string `json:"description,omitempty"`
	Name        string `json:"name,omitempty"`
}

// Session is the live conversation state for one counterparty. Losing
// it is safe: the counterparty just restarts an in-flight form.
type Session struct {
	Identity     string    `json:"identity"`
	CurrentMenu  string    `json:"current_menu"`
	LeadFormStep int       `json:"lead_form_step"` // 0 = not in the form
	Draft        LeadDraft `json:"draft"`
	LastActivity time.Time `json:"last_activity"`
}

// NewSession returns a fresh session sitting at the main menu.
func NewSession(identity string) *Session {
	return &Session{
		Identity:    identity,
		CurrentMenu: MenuMain,
	}
}

// Reset puts the session back at the main menu and drops any form
// progress.
func (s *Session) Reset() {
	s.CurrentMenu = MenuMain
	s.LeadFormStep = 0
	s.Draft = LeadDraft{}
}

// SessionStore holds live sessions keyed by identity. The engine is the
// only writer; the janitor worker prunes concurrently, so
// implementations must be safe for concurrent use.
type SessionStore interface {
	// Get returns nil when no session exists for the identity.
	Get(identity string) (*Session, error)
	Put(session *Session) error
	// PruneIdle drops sessions whose last activity is older than maxIdle
	// and returns the identities that were dropped. Stores with native
	// expiry may always return nothing.
	PruneIdle(maxIdle time.Duration) ([]string, error)
}

// MemorySessionStore is the default process-local store.
type MemorySessionStore struct {
	mu       sync.Mutex
	sessions map[string]Session
}

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{sessions: make(map[string]Session)}
}

func (ms *MemorySessionStore) Get(identity string) (*Session, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	session, ok := ms.sessions[identity]
	if !ok {
		return nil, nil
	}
	return &session, nil
}

func (ms *MemorySessionStore) Put(session *Session) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.sessions[session.Identity] = *session
	return nil
}

func (ms *MemorySessionStore) PruneIdle(maxIdle time.Duration) ([]string, error) {
	cutoff := time.Now().Add(-maxIdle)
	ms.mu.Lock()
	defer ms.mu.Unlock()
	var pruned []string
	for identity, session := range ms.sessions {
		if session.LastActivity.Before(cutoff) {
			delete(ms.sessions, identity)
			pruned = append(pruned, identity)
		}
	}
	return pruned, nil
}
