package models

import "time"

// Caller is keyed by phone number and never deleted.
type Caller struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Phone string `gorm:"size:32;uniqueIndex;not null" json:"phone"`
	Name  string `gorm:"size:100" json:"name"`

	VisitCount  int       `gorm:"not null;default:1" json:"visit_count"`
	FirstSeenAt time.Time `json:"first_seen_at"`
	LastSeenAt  time.Time `json:"last_seen_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
