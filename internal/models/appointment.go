package models

import "time"

// Appointment times are wall-clock values in the business timezone:
// Date is YYYY-MM-DD, StartTime and EndTime are zero-padded HH:MM so they
// order correctly as strings.
type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CallerPhone string `gorm:"size:32;not null;index" json:"caller_phone"`
	CallerName  string `gorm:"size:100;not null" json:"caller_name"`
	ServiceName string `gorm:"size:100;not null" json:"service_name"`

	Date        string `gorm:"column:appointment_date;size:10;not null;index:idx_appointments_slot,priority:1" json:"date"`
	StartTime   string `gorm:"size:5;not null;index:idx_appointments_slot,priority:2" json:"start_time"`
	EndTime     string `gorm:"size:5;not null" json:"end_time"`
	DurationMin int    `gorm:"not null" json:"duration_minutes"`

	Status string `gorm:"size:20;not null;default:'pending';index" json:"status"`
	Notes  string `gorm:"size:500" json:"notes"`

	ConfirmedAt *time.Time `json:"confirmed_at,omitempty"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`

	CreatedAt time.Time `gorm:"<-:create" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
