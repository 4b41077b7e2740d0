package models

import (
	"gorm.io/gorm"
)

// Message directions relative to the bot account.
const (
	DirectionSent     = "sent"
	DirectionReceived = "received"
)

// BotMessage is one entry in the append-only conversation log.
// Rows are never updated or deleted.
type BotMessage struct {
	gorm.Model
	Identity  string `gorm:"not null;index" json:"identity"`
	Direction string `gorm:"not null" json:"direction"` // sent, received
	Content   string `gorm:"type:text" json:"content"`
	IsBot     bool   `gorm:"default:false" json:"is_bot"` // false for inbound and for manual admin sends
}
