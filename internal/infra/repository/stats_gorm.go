package repository

import (
	"context"

	domain "github.com/BruksfildServices01/receptionist/internal/domain/appointment"
	"github.com/BruksfildServices01/receptionist/internal/domain/call"
	"github.com/BruksfildServices01/receptionist/internal/models"
)

// --------------------------------------------------
// Stats
// --------------------------------------------------

func (r *AppointmentGormRepository) Stats(ctx context.Context, today string) (*domain.Stats, error) {
	db := r.db.WithContext(ctx)

	var rows []struct {
		Status string
		Total  int64
	}
	if err := db.Model(&models.Appointment{}).
		Select("status, COUNT(*) AS total").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, &domain.StorageError{Op: "stats appointments", Err: err}
	}

	out := &domain.Stats{ByStatus: make(map[string]int64, len(domain.AllStatuses))}
	for _, s := range domain.AllStatuses {
		out.ByStatus[string(s)] = 0
	}
	for _, row := range rows {
		out.ByStatus[row.Status] = row.Total
		out.TotalAppointments += row.Total
	}

	if err := db.Model(&models.Appointment{}).
		Where("appointment_date = ?", today).
		Count(&out.TodayAppointments).Error; err != nil {
		return nil, &domain.StorageError{Op: "stats appointments", Err: err}
	}

	if err := db.Model(&models.Caller{}).Count(&out.TotalCallers).Error; err != nil {
		return nil, &domain.StorageError{Op: "stats callers", Err: err}
	}
	if err := db.Model(&models.CallLog{}).Count(&out.TotalCalls).Error; err != nil {
		return nil, &domain.StorageError{Op: "stats calls", Err: err}
	}
	if err := db.Model(&models.CallLog{}).
		Where("status = ?", string(call.StatusCompleted)).
		Count(&out.CompletedCalls).Error; err != nil {
		return nil, &domain.StorageError{Op: "stats calls", Err: err}
	}

	return out, nil
}
