package appointment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/receptionist/internal/audit"
	domain "github.com/BruksfildServices01/receptionist/internal/domain/appointment"
)

func TestCancelFreesSlot(t *testing.T) {
	e := newEnv(t, BookingOptions{})
	id := e.mustBook(t, "Consultation", monday, "15:00")

	ap, err := e.update.Execute(context.Background(), UpdateStatusInput{ID: id, Status: "cancelled", Actor: "admin"})
	require.NoError(t, err)
	assert.Equal(t, "cancelled", ap.Status)
	assert.NotNil(t, ap.CancelledAt)

	got, err := e.avail.Execute(context.Background(), GetAvailabilityInput{Date: monday, Service: "Consultation"})
	require.NoError(t, err)
	assert.Contains(t, got.Slots, "15:00")

	assert.Contains(t, e.audit.actions(), audit.ActionAppointmentStatusChanged)
}

func TestCompletePendingIsRejected(t *testing.T) {
	e := newEnv(t, BookingOptions{})
	id := e.mustBook(t, "Consultation", monday, "15:00")

	_, err := e.update.Execute(context.Background(), UpdateStatusInput{ID: id, Status: "completed"})

	var terr *domain.InvalidTransitionError
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, domain.StatusPending, terr.From)
	assert.Equal(t, domain.StatusCompleted, terr.To)

	ap, err := e.repo.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "pending", ap.Status)
}

func TestUpdateStatusLifecycle(t *testing.T) {
	e := newEnv(t, BookingOptions{})
	id := e.mustBook(t, "Consultation", monday, "15:00")

	for _, next := range []string{"confirmed", "no_show"} {
		ap, err := e.update.Execute(context.Background(), UpdateStatusInput{ID: id, Status: next})
		require.NoError(t, err)
		assert.Equal(t, next, ap.Status)
	}

	_, err := e.update.Execute(context.Background(), UpdateStatusInput{ID: id, Status: "confirmed"})
	var terr *domain.InvalidTransitionError
	assert.ErrorAs(t, err, &terr)
}

func TestUpdateStatusInputErrors(t *testing.T) {
	e := newEnv(t, BookingOptions{})

	_, err := e.update.Execute(context.Background(), UpdateStatusInput{ID: 1, Status: "archived"})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "invalid_status", verr.Code)

	_, err = e.update.Execute(context.Background(), UpdateStatusInput{ID: 404, Status: "confirmed"})
	assert.True(t, domain.IsNotFound(err))
}

func TestStatsCacheInvalidatedOnWrite(t *testing.T) {
	e := newEnv(t, BookingOptions{})
	ctx := context.Background()

	stats, err := e.stats.Execute(ctx)
	require.NoError(t, err)
	assert.Zero(t, stats.TotalAppointments)
	assert.Zero(t, stats.TodayAppointments)

	id := e.mustBook(t, "Consultation", monday, "15:00")

	stats, err = e.stats.Execute(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, stats.TotalAppointments)
	assert.Zero(t, stats.TodayAppointments)
	assert.EqualValues(t, 1, stats.ByStatus["pending"])

	e.mustBook(t, "Consultation", "2026-10-15", "15:00")

	stats, err = e.stats.Execute(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, stats.TotalAppointments)
	assert.EqualValues(t, 1, stats.TodayAppointments)

	_, err = e.update.Execute(ctx, UpdateStatusInput{ID: id, Status: "cancelled"})
	require.NoError(t, err)

	stats, err = e.stats.Execute(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, stats.ByStatus["cancelled"])
	assert.EqualValues(t, 1, stats.TodayAppointments)
	assert.EqualValues(t, 1, stats.TotalCallers)
}
