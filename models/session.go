package models

import (
	"time"

	"gorm.io/gorm"
)

// UserSession mirrors a counterparty's conversation position for the
// dashboard. The engine's live state lives in its session store; losing
// this row only loses reporting, not conversation progress.
type UserSession struct {
	gorm.Model
	Identity     string    `gorm:"uniqueIndex;not null" json:"identity"`
	CurrentMenu  string    `gorm:"default:'main'" json:"current_menu"`
	LeadFormStep int       `gorm:"default:0" json:"lead_form_step"`
	IsActive     bool      `gorm:"default:true" json:"is_active"`
	LastActivity time.Time `json:"last_activity"`
}
