package appointment

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/receptionist/internal/audit"
	"github.com/BruksfildServices01/receptionist/internal/calendar"
	dbpkg "github.com/BruksfildServices01/receptionist/internal/db"
	"github.com/BruksfildServices01/receptionist/internal/infra/repository"
	"github.com/BruksfildServices01/receptionist/internal/lock"
	"github.com/BruksfildServices01/receptionist/internal/metrics"
	"github.com/BruksfildServices01/receptionist/internal/timezone"
)

const monday = "2026-10-19"

type recordedAudit struct {
	mu     sync.Mutex
	events []audit.Event
}

func (r *recordedAudit) Dispatch(ev audit.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func (r *recordedAudit) actions() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, ev := range r.events {
		out = append(out, ev.Action)
	}
	return out
}

type env struct {
	repo   *repository.AppointmentGormRepository
	holder *calendar.Holder
	audit  *recordedAudit
	stats  *GetStats

	book   *BookAppointment
	avail  *GetAvailability
	update *UpdateStatus
	list   *ListAppointments
}

func testCalendar() *calendar.Calendar {
	weekday := &calendar.DayHours{Open: calendar.MustClock("09:00"), Close: calendar.MustClock("18:00")}
	cal := &calendar.Calendar{
		BusinessName: "Glow Clinic",
		Timezone:     "Asia/Karachi",
		Location:     timezone.Location("Asia/Karachi"),
		SlotStep:     30,
		Services: []calendar.Service{
			{Name: "Consultation", DurationMinutes: 30, Price: decimal.NewFromInt(50)},
			{Name: "Facial", DurationMinutes: 60, Price: decimal.RequireFromString("75.50")},
		},
	}
	for d := time.Monday; d <= time.Friday; d++ {
		cal.Hours[d] = weekday
	}
	return cal
}

func newEnv(t *testing.T, opts BookingOptions) *env {
	t.Helper()

	gdb, err := dbpkg.Open(dbpkg.DriverSQLite, "file:"+uuid.NewString()+"?mode=memory&cache=shared")
	require.NoError(t, err)
	require.NoError(t, dbpkg.Migrate(gdb))
	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	cal := testCalendar()
	now := func() time.Time { return time.Date(2026, 10, 15, 10, 0, 0, 0, cal.Location) }

	repo := repository.NewAppointmentGormRepository(gdb, lock.NewLocal(), repository.WithNow(now))
	holder := calendar.NewHolder(cal, "")
	stats := NewGetStats(repo, holder, now, time.Minute)
	rec := &recordedAudit{}
	m := metrics.NewSchedulingMetrics(prometheus.NewRegistry())

	opts.Now = now
	opts.Metrics = m
	opts.Cache = stats

	return &env{
		repo:   repo,
		holder: holder,
		audit:  rec,
		stats:  stats,
		book:   NewBookAppointment(repo, holder, rec, opts),
		avail:  NewGetAvailability(repo, holder, 30, now, m),
		update: NewUpdateStatus(repo, rec, m, stats),
		list:   NewListAppointments(repo),
	}
}

func bookInput(service, date, at string) BookAppointmentInput {
	return BookAppointmentInput{
		CallerPhone: "+15551234567",
		CallerName:  "Ahmad",
		Service:     service,
		Date:        date,
		Time:        at,
		Actor:       "voice-agent",
	}
}

func (e *env) mustBook(t *testing.T, service, date, at string) uint {
	t.Helper()
	ap, err := e.book.Execute(context.Background(), bookInput(service, date, at))
	require.NoError(t, err)
	return ap.ID
}
