package appointment

import (
	"context"
	"strings"

	"github.com/BruksfildServices01/receptionist/internal/calendar"
	domain "github.com/BruksfildServices01/receptionist/internal/domain/appointment"
	"github.com/BruksfildServices01/receptionist/internal/metrics"
	"github.com/BruksfildServices01/receptionist/internal/timezone"
)

type GetAvailabilityInput struct {
	Date    string
	Service string
}

type Availability struct {
	Date     string   `json:"date"`
	Weekday  string   `json:"weekday"`
	Service  string   `json:"service,omitempty"`
	Duration int      `json:"duration_minutes"`
	Closed   bool     `json:"closed"`
	Open     string   `json:"open,omitempty"`
	Close    string   `json:"close,omitempty"`
	Slots    []string `json:"slots"`
}

type GetAvailability struct {
	repo            domain.Repository
	cal             CalendarProvider
	defaultDuration int
	now             timezone.NowFunc
	metrics         *metrics.SchedulingMetrics
}

func NewGetAvailability(
	repo domain.Repository,
	cal CalendarProvider,
	defaultDuration int,
	now timezone.NowFunc,
	m *metrics.SchedulingMetrics,
) *GetAvailability {
	if defaultDuration <= 0 {
		defaultDuration = 30
	}
	return &GetAvailability{
		repo:            repo,
		cal:             cal,
		defaultDuration: defaultDuration,
		now:             nowOrDefault(now),
		metrics:         m,
	}
}

// Execute lists the free start times for a day. Without a service the
// default duration is assumed.
func (uc *GetAvailability) Execute(
	ctx context.Context,
	in GetAvailabilityInput,
) (*Availability, error) {

	cal := uc.cal.Current()

	svc := calendar.Service{DurationMinutes: uc.defaultDuration}
	if name := strings.TrimSpace(in.Service); name != "" {
		found, ok := cal.FindService(name)
		if !ok {
			return nil, domain.Invalid("unknown_service", "service %q is not offered", name)
		}
		svc = found
	}

	date, err := domain.ParseDate(cal, in.Date)
	if err != nil {
		return nil, err
	}

	out := &Availability{
		Date:     date.Format(domain.DateLayout),
		Weekday:  date.Weekday().String(),
		Service:  svc.Name,
		Duration: svc.DurationMinutes,
		Slots:    []string{},
	}

	hours, open := cal.HoursOn(date)
	if !open {
		out.Closed = true
		if err := domain.NewChecker(cal, uc.now()).ValidateDate(date); err != nil {
			return nil, err
		}
		return out, nil
	}
	out.Open = hours.Open.String()
	out.Close = hours.Close.String()

	existing, err := uc.repo.ListActiveOn(ctx, out.Date)
	if err != nil {
		return nil, err
	}

	slots, err := domain.NewChecker(cal, uc.now()).AvailableSlots(date, svc, existing)
	if err != nil {
		return nil, err
	}

	out.Slots = domain.FormatClocks(slots)
	uc.metrics.ObserveSlotsOffered(svc.Name, len(slots))

	return out, nil
}
