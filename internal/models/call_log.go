package models

import "time"

type CallLog struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	CallSID     string `gorm:"column:call_sid;size:64;uniqueIndex;not null" json:"call_sid"`
	CallerPhone string `gorm:"size:32;index" json:"caller_phone"`
	Status      string `gorm:"size:20;not null;default:'in_progress'" json:"status"`
	Transcript  string `gorm:"type:text" json:"transcript"`

	AppointmentCreated bool  `gorm:"not null;default:false" json:"appointment_created"`
	AppointmentID      *uint `json:"appointment_id,omitempty"`

	StartedAt time.Time  `json:"started_at"`
	EndedAt   *time.Time `json:"ended_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
