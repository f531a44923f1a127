package appointment

import (
	"time"

	"github.com/BruksfildServices01/receptionist/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// ApplyStatus moves ap to next if the state machine allows it and stamps
// the matching timestamp. ap is left untouched on error.
func ApplyStatus(ap *models.Appointment, next Status, now time.Time) error {
	if err := CanTransition(Status(ap.Status), next); err != nil {
		return err
	}

	ap.Status = string(next)
	switch next {
	case StatusConfirmed:
		ap.ConfirmedAt = &now
	case StatusCancelled:
		ap.CancelledAt = &now
	case StatusCompleted, StatusNoShow:
		ap.CompletedAt = &now
	}
	return nil
}

// NewAppointment builds the record for a booking of svcName on date at
// start. It is not persisted.
func NewAppointment(
	phone, name, svcName string,
	date time.Time,
	iv Interval,
	status Status,
	notes string,
	now time.Time,
) *models.Appointment {

	ap := &models.Appointment{
		CallerPhone: phone,
		CallerName:  name,
		ServiceName: svcName,
		Date:        date.Format(DateLayout),
		StartTime:   iv.Start.String(),
		EndTime:     iv.End.String(),
		DurationMin: int(iv.End - iv.Start),
		Status:      string(status),
		Notes:       notes,
	}
	if status == StatusConfirmed {
		ap.ConfirmedAt = &now
	}
	return ap
}
