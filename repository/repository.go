package repository

import (
	"quotabot/models"
)

// DefaultMessageLimit is applied when a message listing asks for no
// explicit limit.
const DefaultMessageLimit = 50

// UserRepository tracks the counterparties the bot has seen.
type UserRepository interface {
	// UpsertUser creates the user on first contact and refreshes the
	// push name and last-seen timestamp afterwards.
	UpsertUser(identity, pushName string) (*models.User, error)
	GetUsers() ([]models.User, error)
}

// LeadRepository persists captured quote requests.
type LeadRepository interface {
	CreateLead(lead *models.Lead) error
	// GetLeads returns all leads, newest first. An empty status means
	// no status filter.
	GetLeads(status string) ([]models.Lead, error)
	GetLeadsByIdentity(identity string) ([]models.Lead, error)
	// UpdateLeadStatus is the only mutation a lead supports after
	// creation. Returns nil when the lead does not exist.
	UpdateLeadStatus(id uint, status string) (*models.Lead, error)
}

// MessageRepository is the append-only conversation log.
type MessageRepository interface {
	CreateMessage(msg *models.BotMessage) error
	// GetMessages returns up to limit messages for one identity,
	// newest first. limit <= 0 falls back to DefaultMessageLimit.
	GetMessages(identity string, limit int) ([]models.BotMessage, error)
}

// SessionRepository records conversation positions for the dashboard.
type SessionRepository interface {
	// CreateSession ensures a row exists for the identity, returning
	// the existing row unchanged when one is already there.
	CreateSession(identity string) (*models.UserSession, error)
	// GetSession returns nil when no session row exists.
	GetSession(identity string) (*models.UserSession, error)
	UpdateSession(identity, currentMenu string, leadFormStep int) error
	DeactivateSession(identity string) error
}
