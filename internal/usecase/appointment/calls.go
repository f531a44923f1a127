package appointment

import (
	"context"
	"strings"

	domain "github.com/BruksfildServices01/receptionist/internal/domain/appointment"
	"github.com/BruksfildServices01/receptionist/internal/domain/call"
	"github.com/BruksfildServices01/receptionist/internal/models"
)

type StartCallInput struct {
	CallSID     string
	CallerPhone string
}

type UpdateCallInput struct {
	CallSID            string
	Status             *string
	Transcript         *string
	AppointmentCreated *bool
	AppointmentID      *uint
}

// CallLog records voice-agent calls and links them to bookings.
type CallLog struct {
	repo  domain.Repository
	cache Invalidator
}

func NewCallLog(repo domain.Repository, cache Invalidator) *CallLog {
	return &CallLog{repo: repo, cache: cache}
}

func (uc *CallLog) Start(ctx context.Context, in StartCallInput) (*models.CallLog, error) {
	sid := strings.TrimSpace(in.CallSID)
	if sid == "" {
		return nil, domain.Invalid("call_sid_required", "call sid is required")
	}

	c := &models.CallLog{
		CallSID:     sid,
		CallerPhone: strings.TrimSpace(in.CallerPhone),
	}
	if err := uc.repo.StartCall(ctx, c); err != nil {
		return nil, err
	}

	invalidate(uc.cache)
	return c, nil
}

// Update applies provider status callbacks. Provider states are folded onto
// in_progress, completed, missed or failed.
func (uc *CallLog) Update(ctx context.Context, in UpdateCallInput) (*models.CallLog, error) {
	upd := domain.CallUpdate{
		Transcript:         in.Transcript,
		AppointmentCreated: in.AppointmentCreated,
		AppointmentID:      in.AppointmentID,
	}

	if in.Status != nil {
		st, ok := call.Normalize(*in.Status)
		if !ok {
			return nil, domain.Invalid("invalid_call_status", "unknown call status %q", *in.Status)
		}
		s := string(st)
		upd.Status = &s
	}

	c, err := uc.repo.UpdateCall(ctx, in.CallSID, upd)
	if err != nil {
		return nil, err
	}

	invalidate(uc.cache)
	return c, nil
}

func (uc *CallLog) List(ctx context.Context, limit int) ([]models.CallLog, error) {
	calls, err := uc.repo.ListCalls(ctx, limit)
	if err != nil {
		return nil, err
	}
	if calls == nil {
		calls = []models.CallLog{}
	}
	return calls, nil
}
