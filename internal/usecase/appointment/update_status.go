package appointment

import (
	"context"

	"github.com/BruksfildServices01/receptionist/internal/audit"
	domain "github.com/BruksfildServices01/receptionist/internal/domain/appointment"
	"github.com/BruksfildServices01/receptionist/internal/metrics"
	"github.com/BruksfildServices01/receptionist/internal/models"
)

type UpdateStatusInput struct {
	ID     uint
	Status string
	Actor  string
}

type UpdateStatus struct {
	repo    domain.Repository
	audit   AuditSink
	metrics *metrics.SchedulingMetrics
	cache   Invalidator
}

func NewUpdateStatus(
	repo domain.Repository,
	audit AuditSink,
	m *metrics.SchedulingMetrics,
	cache Invalidator,
) *UpdateStatus {
	return &UpdateStatus{
		repo:    repo,
		audit:   audit,
		metrics: m,
		cache:   cache,
	}
}

func (uc *UpdateStatus) Execute(
	ctx context.Context,
	in UpdateStatusInput,
) (*models.Appointment, error) {

	next, ok := domain.ParseStatus(in.Status)
	if !ok {
		return nil, domain.Invalid("invalid_status", "unknown status %q", in.Status)
	}

	ap, prev, err := uc.repo.UpdateStatus(ctx, in.ID, next)
	if err != nil {
		return nil, err
	}

	uc.metrics.ObserveTransition(string(prev), string(next))
	invalidate(uc.cache)
	dispatch(uc.audit, audit.Event{
		Actor:    in.Actor,
		Action:   audit.ActionAppointmentStatusChanged,
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]string{
			"from": string(prev),
			"to":   string(next),
		},
	})

	return ap, nil
}
