package booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medsched/outpatient-api/internal/clock"
	domain "github.com/medsched/outpatient-api/internal/domain/appointment"
	"github.com/medsched/outpatient-api/internal/httperr"
)

func bookOne(t *testing.T, uc *BookAppointment) uint {
	t.Helper()

	ap, err := book(uc, 1, 1, 1, testNow.Add(time.Hour))
	require.NoError(t, err)
	return ap.ID
}

func TestConfirmVisitUseCase(t *testing.T) {
	store, repo, bookUC := newFixture()
	id := bookOne(t, bookUC)

	confirmUC := NewConfirmVisit(repo, clock.Fixed(testNow), nil)

	ap, err := confirmUC.Execute(context.Background(), "", id)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCompleted), ap.Status)
	require.NotNil(t, ap.CompletedAt)

	stored := store.appointments[id]
	assert.Equal(t, string(domain.StatusCompleted), stored.Status)

	// Confirming twice is an illegal transition.
	_, err = confirmUC.Execute(context.Background(), "", id)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidStatus))
}

func TestConfirmVisitCancelled(t *testing.T) {
	_, repo, bookUC := newFixture()
	id := bookOne(t, bookUC)

	cancelUC := NewCancelAppointment(repo, clock.Fixed(testNow), nil)
	_, err := cancelUC.Execute(context.Background(), "", id)
	require.NoError(t, err)

	confirmUC := NewConfirmVisit(repo, clock.Fixed(testNow), nil)
	_, err = confirmUC.Execute(context.Background(), "", id)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidStatus))
}

func TestConfirmVisitNotFound(t *testing.T) {
	_, repo, _ := newFixture()

	confirmUC := NewConfirmVisit(repo, clock.Fixed(testNow), nil)
	_, err := confirmUC.Execute(context.Background(), "", 42)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeAppointmentNotFound))
}

func TestCancelUseCaseIsIdempotent(t *testing.T) {
	store, repo, bookUC := newFixture()
	id := bookOne(t, bookUC)

	cancelUC := NewCancelAppointment(repo, clock.Fixed(testNow), nil)

	ap, err := cancelUC.Execute(context.Background(), "", id)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelled), ap.Status)

	// Second cancel succeeds and leaves the record cancelled.
	ap, err = cancelUC.Execute(context.Background(), "", id)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelled), ap.Status)

	stored := store.appointments[id]
	assert.Equal(t, string(domain.StatusCancelled), stored.Status)
}

func TestCancelCompletedAppointment(t *testing.T) {
	store, repo, bookUC := newFixture()
	id := bookOne(t, bookUC)

	confirmUC := NewConfirmVisit(repo, clock.Fixed(testNow), nil)
	_, err := confirmUC.Execute(context.Background(), "", id)
	require.NoError(t, err)

	// Cancelling a completed visit succeeds but changes nothing.
	cancelUC := NewCancelAppointment(repo, clock.Fixed(testNow), nil)
	ap, err := cancelUC.Execute(context.Background(), "", id)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCompleted), ap.Status)
	assert.Nil(t, ap.CancelledAt)

	stored := store.appointments[id]
	assert.Equal(t, string(domain.StatusCompleted), stored.Status)

	// The completed visit keeps blocking its slot.
	_, err = book(bookUC, 1, 2, 1, stored.VisitTime)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeSlotConflict))
}

func TestCancelNotFound(t *testing.T) {
	_, repo, _ := newFixture()

	cancelUC := NewCancelAppointment(repo, clock.Fixed(testNow), nil)
	_, err := cancelUC.Execute(context.Background(), "", 42)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeAppointmentNotFound))
}

func TestDeleteUseCase(t *testing.T) {
	store, repo, bookUC := newFixture()
	id := bookOne(t, bookUC)

	deleteUC := NewDeleteAppointment(repo, nil)

	require.NoError(t, deleteUC.Execute(context.Background(), "", id))
	assert.Empty(t, store.appointments)

	err := deleteUC.Execute(context.Background(), "", id)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeAppointmentNotFound))
}
