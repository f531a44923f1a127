package appointment

import (
	"context"
	"strings"

	domain "github.com/BruksfildServices01/receptionist/internal/domain/appointment"
	"github.com/BruksfildServices01/receptionist/internal/models"
)

type CallerHistory struct {
	Caller       *models.Caller       `json:"caller"`
	Appointments []models.Appointment `json:"appointments"`
}

type GetCaller struct {
	repo domain.Repository
}

func NewGetCaller(repo domain.Repository) *GetCaller {
	return &GetCaller{repo: repo}
}

// Execute returns a known caller with their bookings, oldest first.
func (uc *GetCaller) Execute(ctx context.Context, phone string) (*CallerHistory, error) {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return nil, domain.Invalid("caller_phone_required", "caller phone is required")
	}

	caller, err := uc.repo.GetCaller(ctx, phone)
	if err != nil {
		return nil, err
	}

	apps, _, err := uc.repo.List(ctx, domain.ListFilter{CallerPhone: phone, Limit: maxPageSize})
	if err != nil {
		return nil, err
	}
	if apps == nil {
		apps = []models.Appointment{}
	}

	return &CallerHistory{Caller: caller, Appointments: apps}, nil
}
