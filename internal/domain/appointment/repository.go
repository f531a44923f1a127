package appointment

import (
	"context"

	"github.com/BruksfildServices01/receptionist/internal/models"
)

// ListFilter narrows List. Zero values match everything.
type ListFilter struct {
	Date        string
	Status      Status
	CallerPhone string
	Limit       int
	Offset      int
}

type Stats struct {
	TotalAppointments int64            `json:"total_appointments"`
	TodayAppointments int64            `json:"today_appointments"`
	ByStatus          map[string]int64 `json:"by_status"`
	TotalCallers      int64            `json:"total_callers"`
	TotalCalls        int64            `json:"total_calls"`
	CompletedCalls    int64            `json:"completed_calls"`
}

// CallUpdate carries the optional fields of a call log update.
type CallUpdate struct {
	Status             *string
	Transcript         *string
	AppointmentCreated *bool
	AppointmentID      *uint
}

type Repository interface {
	// -------- Appointment (create / conflict) --------

	// Create re-checks for overlap against active appointments and inserts
	// as one atomic step. It returns ErrConflict when the interval is taken.
	Create(ctx context.Context, ap *models.Appointment) error

	// -------- Appointment (state change) --------
	// UpdateStatus applies one state machine step and returns the updated
	// record along with the status it left.
	UpdateStatus(
		ctx context.Context,
		id uint,
		next Status,
	) (*models.Appointment, Status, error)

	// -------- Appointment (read) --------
	Get(ctx context.Context, id uint) (*models.Appointment, error)
	List(ctx context.Context, f ListFilter) ([]models.Appointment, int64, error)
	ListActiveOn(ctx context.Context, date string) ([]models.Appointment, error)

	// -------- Caller --------
	UpsertCaller(ctx context.Context, phone, name string) (*models.Caller, error)
	GetCaller(ctx context.Context, phone string) (*models.Caller, error)

	// -------- Call log --------
	StartCall(ctx context.Context, call *models.CallLog) error
	UpdateCall(ctx context.Context, sid string, upd CallUpdate) (*models.CallLog, error)
	ListCalls(ctx context.Context, limit int) ([]models.CallLog, error)

	// -------- Stats --------
	// Stats counts everything; today is the business-local date counted
	// as TodayAppointments.
	Stats(ctx context.Context, today string) (*Stats, error)
}
