package models

import (
	"gorm.io/gorm"
)

// Lead statuses. A lead is created as "new" by the bot and only the
// status (plus updated_at) may change afterwards.
const (
	LeadStatusNew       = "new"
	LeadStatusContacted = "contacted"
	LeadStatusQualified = "qualified"
	LeadStatusClosed    = "closed"
	LeadStatusRejected  = "rejected"
)

// Lead represents a captured quote request
type Lead struct {
	gorm.Model
	Identity    string `gorm:"not null;index" json:"identity"`
	Name        string `json:"name"`
	ProjectType string `json:"project_type"`
	Budget      string `json:"budget"`
	Timeline    string `json:"timeline"`
	Description string `gorm:"type:text" json:"description"`
	Status      string `gorm:"not null;default:'new';index" json:"status"`
}

// ValidLeadStatus reports whether s is one of the known lead statuses.
func ValidLeadStatus(s string) bool {
	switch s {
	case LeadStatusNew, LeadStatusContacted, LeadStatusQualified, LeadStatusClosed, LeadStatusRejected:
		return true
	}
	return false
}
