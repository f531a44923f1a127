package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/receptionist/internal/domain/appointment"
	"github.com/BruksfildServices01/receptionist/internal/models"
)

// --------------------------------------------------
// Caller
// --------------------------------------------------

// UpsertCaller records a visit by phone. A blank name keeps the stored one.
func (r *AppointmentGormRepository) UpsertCaller(
	ctx context.Context,
	phone string,
	name string,
) (*models.Caller, error) {

	now := r.now()
	updates := map[string]any{
		"visit_count":  gorm.Expr("callers.visit_count + 1"),
		"last_seen_at": now,
		"updated_at":   now,
	}
	if name != "" {
		updates["name"] = name
	}

	caller := models.Caller{
		Phone:       phone,
		Name:        name,
		VisitCount:  1,
		FirstSeenAt: now,
		LastSeenAt:  now,
	}

	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "phone"}},
			DoUpdates: clause.Assignments(updates),
		}).
		Create(&caller).Error; err != nil {
		return nil, &domain.StorageError{Op: "upsert caller", Err: err}
	}

	return r.GetCaller(ctx, phone)
}

func (r *AppointmentGormRepository) GetCaller(
	ctx context.Context,
	phone string,
) (*models.Caller, error) {

	var caller models.Caller
	if err := r.db.WithContext(ctx).
		Where("phone = ?", phone).
		First(&caller).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NotFound("caller", phone)
		}
		return nil, &domain.StorageError{Op: "get caller", Err: err}
	}
	return &caller, nil
}
