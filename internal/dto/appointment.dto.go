package dto

import (
	"time"

	"github.com/BruksfildServices01/receptionist/internal/calendar"
	"github.com/BruksfildServices01/receptionist/internal/models"
)

// ======================================================
// Requests
// ======================================================

type BookAppointmentRequest struct {
	CallerPhone string `json:"caller_phone" binding:"required,phone"`
	CallerName  string `json:"caller_name" binding:"required,max=100"`
	Service     string `json:"service" binding:"required,max=100"`
	Date        string `json:"date" binding:"required,isodate"`
	Time        string `json:"time" binding:"required,clock"`
	Notes       string `json:"notes" binding:"max=500"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending confirmed cancelled completed no_show"`
}

type AvailabilityQuery struct {
	Date    string `form:"date" binding:"required,isodate"`
	Service string `form:"service"`
}

type ListAppointmentsQuery struct {
	Date        string `form:"date" binding:"omitempty,isodate"`
	Status      string `form:"status"`
	CallerPhone string `form:"caller_phone"`
	Page        int    `form:"page"`
	Limit       int    `form:"limit"`
}

type StartCallRequest struct {
	CallSID     string `json:"call_sid" binding:"required,max=64"`
	CallerPhone string `json:"caller_phone"`
}

type UpdateCallRequest struct {
	Status             *string `json:"status"`
	Transcript         *string `json:"transcript"`
	AppointmentCreated *bool   `json:"appointment_created"`
	AppointmentID      *uint   `json:"appointment_id"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// ======================================================
// Responses
// ======================================================

type AppointmentDTO struct {
	ID          uint       `json:"id"`
	CallerPhone string     `json:"caller_phone"`
	CallerName  string     `json:"caller_name"`
	Service     string     `json:"service"`
	Date        string     `json:"date"`
	StartTime   string     `json:"start_time"`
	EndTime     string     `json:"end_time"`
	Duration    int        `json:"duration_minutes"`
	Status      string     `json:"status"`
	Notes       string     `json:"notes,omitempty"`
	ConfirmedAt *time.Time `json:"confirmed_at,omitempty"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

func Appointment(ap *models.Appointment) AppointmentDTO {
	return AppointmentDTO{
		ID:          ap.ID,
		CallerPhone: ap.CallerPhone,
		CallerName:  ap.CallerName,
		Service:     ap.ServiceName,
		Date:        ap.Date,
		StartTime:   ap.StartTime,
		EndTime:     ap.EndTime,
		Duration:    ap.DurationMin,
		Status:      ap.Status,
		Notes:       ap.Notes,
		ConfirmedAt: ap.ConfirmedAt,
		CancelledAt: ap.CancelledAt,
		CompletedAt: ap.CompletedAt,
		CreatedAt:   ap.CreatedAt,
	}
}

func Appointments(apps []models.Appointment) []AppointmentDTO {
	out := make([]AppointmentDTO, 0, len(apps))
	for i := range apps {
		out = append(out, Appointment(&apps[i]))
	}
	return out
}

type ServiceDTO struct {
	Name     string `json:"name"`
	Duration int    `json:"duration_minutes"`
	Price    string `json:"price"`
}

type BusinessConfigDTO struct {
	BusinessName string            `json:"business_name"`
	Timezone     string            `json:"timezone"`
	SlotStep     int               `json:"slot_step_minutes"`
	WorkingHours map[string]string `json:"working_hours"`
	Services     []ServiceDTO      `json:"services"`
	Contact      calendar.Contact  `json:"contact_info"`
}

func Services(cal *calendar.Calendar) []ServiceDTO {
	out := make([]ServiceDTO, 0, len(cal.Services))
	for _, s := range cal.Services {
		out = append(out, ServiceDTO{
			Name:     s.Name,
			Duration: s.DurationMinutes,
			Price:    s.Price.StringFixed(2),
		})
	}
	return out
}

func BusinessConfig(cal *calendar.Calendar) BusinessConfigDTO {
	hours := make(map[string]string, len(cal.Hours))
	for day, h := range cal.Hours {
		name := time.Weekday(day).String()
		if h == nil {
			hours[name] = "Closed"
			continue
		}
		hours[name] = h.String()
	}

	return BusinessConfigDTO{
		BusinessName: cal.BusinessName,
		Timezone:     cal.Timezone,
		SlotStep:     cal.SlotStep,
		WorkingHours: hours,
		Services:     Services(cal),
		Contact:      cal.Contact,
	}
}
