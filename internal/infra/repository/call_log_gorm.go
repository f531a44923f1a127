package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/receptionist/internal/domain/appointment"
	"github.com/BruksfildServices01/receptionist/internal/domain/call"
	"github.com/BruksfildServices01/receptionist/internal/models"
)

// --------------------------------------------------
// Call log
// --------------------------------------------------

func (r *AppointmentGormRepository) StartCall(
	ctx context.Context,
	c *models.CallLog,
) error {

	if c.Status == "" {
		c.Status = string(call.StatusInProgress)
	}
	if c.StartedAt.IsZero() {
		c.StartedAt = r.now()
	}

	if err := r.db.WithContext(ctx).Create(c).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.Invalid("duplicate_call", "call %s already recorded", c.CallSID)
		}
		return &domain.StorageError{Op: "start call", Err: err}
	}
	return nil
}

func (r *AppointmentGormRepository) UpdateCall(
	ctx context.Context,
	sid string,
	upd domain.CallUpdate,
) (*models.CallLog, error) {

	var c models.CallLog
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := forUpdate(tx).Where("call_sid = ?", sid).First(&c).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.NotFound("call", sid)
			}
			return err
		}

		if upd.Status != nil {
			c.Status = *upd.Status
			if call.Status(c.Status).Ended() && c.EndedAt == nil {
				now := r.now()
				c.EndedAt = &now
			}
		}
		if upd.Transcript != nil {
			c.Transcript = *upd.Transcript
		}
		if upd.AppointmentCreated != nil {
			c.AppointmentCreated = *upd.AppointmentCreated
		}
		if upd.AppointmentID != nil {
			c.AppointmentID = upd.AppointmentID
			c.AppointmentCreated = true
		}

		return tx.Save(&c).Error
	})

	if err != nil {
		if domain.IsNotFound(err) {
			return nil, err
		}
		return nil, &domain.StorageError{Op: "update call", Err: err}
	}
	return &c, nil
}

func (r *AppointmentGormRepository) ListCalls(
	ctx context.Context,
	limit int,
) ([]models.CallLog, error) {

	if limit <= 0 || limit > 500 {
		limit = 50
	}

	var calls []models.CallLog
	if err := r.db.WithContext(ctx).
		Order("started_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&calls).Error; err != nil {
		return nil, &domain.StorageError{Op: "list calls", Err: err}
	}
	return calls, nil
}
