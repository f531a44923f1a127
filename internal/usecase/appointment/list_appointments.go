package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/receptionist/internal/domain/appointment"
	"github.com/BruksfildServices01/receptionist/internal/models"
)

const (
	defaultPageSize = 50
	maxPageSize     = 200
)

type ListAppointmentsInput struct {
	Date        string
	Status      string
	CallerPhone string
	Page        int
	Limit       int
}

type AppointmentPage struct {
	Data  []models.Appointment
	Total int64
	Page  int
	Limit int
}

type ListAppointments struct {
	repo domain.Repository
}

func NewListAppointments(repo domain.Repository) *ListAppointments {
	return &ListAppointments{repo: repo}
}

func (uc *ListAppointments) Execute(
	ctx context.Context,
	in ListAppointmentsInput,
) (*AppointmentPage, error) {

	f := domain.ListFilter{CallerPhone: in.CallerPhone}

	if in.Date != "" {
		if _, err := time.Parse(domain.DateLayout, in.Date); err != nil {
			return nil, domain.Invalid("invalid_date", "date %q must be YYYY-MM-DD", in.Date)
		}
		f.Date = in.Date
	}

	if in.Status != "" {
		st, ok := domain.ParseStatus(in.Status)
		if !ok {
			return nil, domain.Invalid("invalid_status", "unknown status %q", in.Status)
		}
		f.Status = st
	}

	page := in.Page
	if page <= 0 {
		page = 1
	}
	limit := in.Limit
	if limit <= 0 || limit > maxPageSize {
		limit = defaultPageSize
	}
	f.Limit = limit
	f.Offset = (page - 1) * limit

	apps, total, err := uc.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	if apps == nil {
		apps = []models.Appointment{}
	}

	return &AppointmentPage{Data: apps, Total: total, Page: page, Limit: limit}, nil
}

type GetAppointment struct {
	repo domain.Repository
}

func NewGetAppointment(repo domain.Repository) *GetAppointment {
	return &GetAppointment{repo: repo}
}

func (uc *GetAppointment) Execute(ctx context.Context, id uint) (*models.Appointment, error) {
	return uc.repo.Get(ctx, id)
}
