package appointment

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/BruksfildServices01/receptionist/internal/audit"
	"github.com/BruksfildServices01/receptionist/internal/calendar"
	domain "github.com/BruksfildServices01/receptionist/internal/domain/appointment"
	"github.com/BruksfildServices01/receptionist/internal/metrics"
	"github.com/BruksfildServices01/receptionist/internal/models"
	"github.com/BruksfildServices01/receptionist/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type BookAppointmentInput struct {
	CallerPhone string
	CallerName  string

	Service string
	Date    string
	Time    string
	Notes   string

	Actor string
}

type BookingOptions struct {
	AutoConfirm  bool
	Alternatives int
	Now          timezone.NowFunc
	Metrics      *metrics.SchedulingMetrics
	Cache        Invalidator
}

// ======================================================
// USE CASE
// ======================================================

type BookAppointment struct {
	repo  domain.Repository
	cal   CalendarProvider
	audit AuditSink
	opts  BookingOptions
}

func NewBookAppointment(
	repo domain.Repository,
	cal CalendarProvider,
	audit AuditSink,
	opts BookingOptions,
) *BookAppointment {
	if opts.Alternatives <= 0 {
		opts.Alternatives = 3
	}
	opts.Now = nowOrDefault(opts.Now)

	return &BookAppointment{
		repo:  repo,
		cal:   cal,
		audit: audit,
		opts:  opts,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *BookAppointment) Execute(
	ctx context.Context,
	in BookAppointmentInput,
) (ap *models.Appointment, err error) {

	started := time.Now()
	defer func() {
		uc.opts.Metrics.ObserveBooking(outcomeOf(err), time.Since(started).Seconds())
	}()

	// --------------------------------------------------
	// 1. Input
	// --------------------------------------------------
	phone := strings.TrimSpace(in.CallerPhone)
	name := strings.TrimSpace(in.CallerName)
	if phone == "" {
		return nil, domain.Invalid("caller_phone_required", "caller phone is required")
	}
	if name == "" {
		return nil, domain.Invalid("caller_name_required", "caller name is required")
	}

	cal := uc.cal.Current()

	svc, ok := cal.FindService(in.Service)
	if !ok {
		return nil, domain.Invalid("unknown_service", "service %q is not offered", in.Service)
	}

	date, err := domain.ParseDate(cal, in.Date)
	if err != nil {
		return nil, err
	}
	start, err := domain.ParseTime(in.Time)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 2. Business hours, past dates
	// --------------------------------------------------
	checker := domain.NewChecker(cal, uc.opts.Now())
	if err := checker.CheckBookable(date, start, svc); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 3. Caller (get or create)
	// --------------------------------------------------
	if _, err := uc.repo.UpsertCaller(ctx, phone, name); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 4. Fail fast on a visible conflict
	// --------------------------------------------------
	iv := domain.NewInterval(start, svc.DurationMinutes)

	existing, err := uc.repo.ListActiveOn(ctx, date.Format(domain.DateLayout))
	if err != nil {
		return nil, err
	}
	if domain.HasConflict(iv, existing) {
		return nil, uc.unavailable(ctx, checker, date, start, svc, in.Actor, existing)
	}

	// --------------------------------------------------
	// 5. Atomic create (authoritative conflict check)
	// --------------------------------------------------
	ap = domain.NewAppointment(
		phone,
		name,
		svc.Name,
		date,
		iv,
		domain.InitialStatus(uc.opts.AutoConfirm),
		strings.TrimSpace(in.Notes),
		uc.opts.Now(),
	)

	if err := uc.repo.Create(ctx, ap); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, uc.unavailable(ctx, checker, date, start, svc, in.Actor, nil)
		}
		return nil, err
	}

	// --------------------------------------------------
	// 6. Audit
	// --------------------------------------------------
	invalidate(uc.opts.Cache)
	dispatch(uc.audit, audit.Event{
		Actor:    in.Actor,
		Action:   audit.ActionAppointmentCreated,
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]string{
			"service": ap.ServiceName,
			"date":    ap.Date,
			"time":    ap.StartTime,
			"status":  ap.Status,
		},
	})

	return ap, nil
}

// unavailable builds the caller-facing error for a taken slot. existing may
// be nil, in which case the day is re-read so the alternatives reflect the
// booking that just won.
func (uc *BookAppointment) unavailable(
	ctx context.Context,
	checker domain.Checker,
	date time.Time,
	start calendar.Clock,
	svc calendar.Service,
	actor string,
	existing []models.Appointment,
) error {

	day := date.Format(domain.DateLayout)
	out := &domain.SlotUnavailableError{
		Date:    day,
		Time:    start.String(),
		Service: svc.Name,
	}

	loaded := existing != nil
	if !loaded {
		var err error
		existing, err = uc.repo.ListActiveOn(ctx, day)
		if err != nil {
			log.Warn().Err(err).Str("date", day).Msg("could not load alternatives")
		} else {
			loaded = true
		}
	}

	if loaded {
		if slots, err := checker.AvailableSlots(date, svc, existing); err == nil {
			out.Alternatives = domain.FormatClocks(
				domain.NearestAlternatives(slots, start, uc.opts.Alternatives),
			)
		}
	}

	dispatch(uc.audit, audit.Event{
		Actor:  actor,
		Action: audit.ActionAppointmentConflict,
		Entity: "appointment",
		Metadata: map[string]any{
			"service":      svc.Name,
			"date":         day,
			"time":         start.String(),
			"alternatives": out.Alternatives,
		},
	})

	return out
}

func outcomeOf(err error) string {
	if err == nil {
		return metrics.OutcomeBooked
	}

	var (
		su *domain.SlotUnavailableError
		oh *domain.OutOfHoursError
		se *domain.StorageError
	)
	switch {
	case errors.As(err, &su):
		return metrics.OutcomeConflict
	case errors.As(err, &oh):
		return metrics.OutcomeOutOfHours
	case errors.As(err, &se):
		return metrics.OutcomeStorageFail
	default:
		return metrics.OutcomeInvalid
	}
}
