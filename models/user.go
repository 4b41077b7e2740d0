package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents a WhatsApp counterparty the bot has talked to
type User struct {
	gorm.Model
	Identity   string    `gorm:"uniqueIndex;not null" json:"identity"` // WhatsApp number without the server suffix
	PushName   string    `json:"push_name"`
	LastSeenAt time.Time `json:"last_seen_at"`
}
