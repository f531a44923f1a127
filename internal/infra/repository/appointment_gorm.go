package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/receptionist/internal/domain/appointment"
	"github.com/BruksfildServices01/receptionist/internal/lock"
	"github.com/BruksfildServices01/receptionist/internal/models"
)

type AppointmentGormRepository struct {
	db     *gorm.DB
	locker lock.Locker
	now    func() time.Time
}

type Option func(*AppointmentGormRepository)

// WithNow replaces the clock used for status timestamps.
func WithNow(now func() time.Time) Option {
	return func(r *AppointmentGormRepository) { r.now = now }
}

func NewAppointmentGormRepository(
	db *gorm.DB,
	locker lock.Locker,
	opts ...Option,
) *AppointmentGormRepository {

	r := &AppointmentGormRepository{db: db, locker: locker, now: time.Now}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// --------------------------------------------------
// Appointment (create / conflict)
// --------------------------------------------------

// Create holds the per-date lock for the whole check-then-insert. On
// postgres a transaction-scoped advisory lock on the same key also covers
// writers that are not sharing our locker.
func (r *AppointmentGormRepository) Create(
	ctx context.Context,
	ap *models.Appointment,
) error {

	unlock, err := r.locker.Lock(ctx, lock.DateKey(ap.Date))
	if err != nil {
		return &domain.StorageError{Op: "lock date", Err: err}
	}
	defer unlock()

	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := advisoryLock(tx, lock.DateKey(ap.Date)); err != nil {
			return err
		}

		var count int64
		if err := tx.
			Model(&models.Appointment{}).
			Where(
				"appointment_date = ? AND status IN ? AND start_time < ? AND end_time > ?",
				ap.Date,
				domain.ActiveStatusValues(),
				ap.EndTime,
				ap.StartTime,
			).
			Count(&count).Error; err != nil {
			return err
		}

		if count > 0 {
			return domain.ErrConflict
		}

		return tx.Create(ap).Error
	})

	switch {
	case err == nil:
		return nil
	case errors.Is(err, domain.ErrConflict):
		return domain.ErrConflict
	default:
		return &domain.StorageError{Op: "create appointment", Err: err}
	}
}

// --------------------------------------------------
// Appointment (state change)
// --------------------------------------------------

func (r *AppointmentGormRepository) UpdateStatus(
	ctx context.Context,
	id uint,
	next domain.Status,
) (*models.Appointment, domain.Status, error) {

	current, err := r.Get(ctx, id)
	if err != nil {
		return nil, "", err
	}

	unlock, err := r.locker.Lock(ctx, lock.DateKey(current.Date))
	if err != nil {
		return nil, "", &domain.StorageError{Op: "lock date", Err: err}
	}
	defer unlock()

	var (
		ap   models.Appointment
		prev domain.Status
	)
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := advisoryLock(tx, lock.DateKey(current.Date)); err != nil {
			return err
		}

		if err := forUpdate(tx).First(&ap, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.NotFound("appointment", id)
			}
			return err
		}

		prev = domain.Status(ap.Status)
		if err := domain.ApplyStatus(&ap, next, r.now()); err != nil {
			return err
		}

		return tx.Save(&ap).Error
	})

	if err != nil {
		var (
			terr *domain.InvalidTransitionError
			nf   *domain.NotFoundError
		)
		if errors.As(err, &terr) || errors.As(err, &nf) {
			return nil, "", err
		}
		return nil, "", &domain.StorageError{Op: "update status", Err: err}
	}

	return &ap, prev, nil
}

// --------------------------------------------------
// Appointment (read)
// --------------------------------------------------

func (r *AppointmentGormRepository) Get(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).First(&ap, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NotFound("appointment", id)
		}
		return nil, &domain.StorageError{Op: "get appointment", Err: err}
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) List(
	ctx context.Context,
	f domain.ListFilter,
) ([]models.Appointment, int64, error) {

	q := r.db.WithContext(ctx).Model(&models.Appointment{})
	if f.Date != "" {
		q = q.Where("appointment_date = ?", f.Date)
	}
	if f.Status != "" {
		q = q.Where("status = ?", string(f.Status))
	}
	if f.CallerPhone != "" {
		q = q.Where("caller_phone = ?", f.CallerPhone)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, &domain.StorageError{Op: "count appointments", Err: err}
	}

	q = q.Order("appointment_date ASC").Order("start_time ASC").Order("id ASC")
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}
	if f.Offset > 0 {
		q = q.Offset(f.Offset)
	}

	var apps []models.Appointment
	if err := q.Find(&apps).Error; err != nil {
		return nil, 0, &domain.StorageError{Op: "list appointments", Err: err}
	}

	return apps, total, nil
}

func (r *AppointmentGormRepository) ListActiveOn(
	ctx context.Context,
	date string,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Where("appointment_date = ? AND status IN ?", date, domain.ActiveStatusValues()).
		Order("start_time ASC").
		Find(&apps).Error; err != nil {
		return nil, &domain.StorageError{Op: "list day", Err: err}
	}

	return apps, nil
}

// --------------------------------------------------
// Dialect helpers
// --------------------------------------------------

func isPostgres(tx *gorm.DB) bool {
	return tx.Dialector.Name() == "postgres"
}

func advisoryLock(tx *gorm.DB, key string) error {
	if !isPostgres(tx) {
		return nil
	}
	return tx.Exec("SELECT pg_advisory_xact_lock(hashtext(?))", key).Error
}

func forUpdate(tx *gorm.DB) *gorm.DB {
	if !isPostgres(tx) {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
