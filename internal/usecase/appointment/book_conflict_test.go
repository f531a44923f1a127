package appointment

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/receptionist/internal/audit"
	domain "github.com/BruksfildServices01/receptionist/internal/domain/appointment"
	"github.com/BruksfildServices01/receptionist/internal/models"
)

// lostRaceRepo reports an empty day on the first read, then lets a
// competing booking commit inside Create and rejects the caller's insert.
type lostRaceRepo struct {
	domain.Repository

	reads   atomic.Int32
	creates atomic.Int32
}

func (r *lostRaceRepo) ListActiveOn(ctx context.Context, date string) ([]models.Appointment, error) {
	if r.reads.Add(1) == 1 {
		return nil, nil
	}
	return r.Repository.ListActiveOn(ctx, date)
}

func (r *lostRaceRepo) Create(ctx context.Context, ap *models.Appointment) error {
	r.creates.Add(1)

	winner := *ap
	winner.CallerPhone = "+15559990000"
	winner.CallerName = "Winner"
	if err := r.Repository.Create(ctx, &winner); err != nil {
		return err
	}
	return domain.ErrConflict
}

func TestBookLosingCommitRaceOffersAlternatives(t *testing.T) {
	e := newEnv(t, BookingOptions{})
	repo := &lostRaceRepo{Repository: e.repo}

	now := func() time.Time {
		return time.Date(2026, 10, 15, 10, 0, 0, 0, e.holder.Current().Location)
	}
	book := NewBookAppointment(repo, e.holder, e.audit, BookingOptions{Now: now})

	_, err := book.Execute(context.Background(), bookInput("Consultation", monday, "15:00"))

	var su *domain.SlotUnavailableError
	require.ErrorAs(t, err, &su)
	assert.Equal(t, monday, su.Date)
	assert.Equal(t, "15:00", su.Time)
	assert.Equal(t, []string{"14:00", "14:30", "15:30"}, su.Alternatives)

	assert.EqualValues(t, 1, repo.creates.Load())
	assert.EqualValues(t, 2, repo.reads.Load())
	assert.Equal(t, []string{audit.ActionAppointmentConflict}, e.audit.actions())

	list, total, err := e.repo.List(context.Background(), domain.ListFilter{Date: monday})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, "Winner", list[0].CallerName)
}
