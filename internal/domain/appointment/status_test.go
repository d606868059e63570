package appointment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medsched/outpatient-api/internal/httperr"
	"github.com/medsched/outpatient-api/internal/models"
)

func TestNext(t *testing.T) {
	tests := []struct {
		name    string
		from    Status
		action  Action
		want    Status
		wantErr bool
	}{
		{"confirm scheduled", StatusScheduled, ActionConfirmVisit, StatusCompleted, false},
		{"cancel scheduled", StatusScheduled, ActionCancel, StatusCancelled, false},
		{"cancel completed", StatusCompleted, ActionCancel, StatusCompleted, false},
		{"cancel cancelled", StatusCancelled, ActionCancel, StatusCancelled, false},
		{"confirm completed", StatusCompleted, ActionConfirmVisit, StatusCompleted, true},
		{"confirm cancelled", StatusCancelled, ActionConfirmVisit, StatusCancelled, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Next(tt.from, tt.action)
			if tt.wantErr {
				assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidStatus))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIsValid(t *testing.T) {
	assert.True(t, IsValid(StatusScheduled))
	assert.True(t, IsValid(StatusCompleted))
	assert.True(t, IsValid(StatusCancelled))
	assert.False(t, IsValid(Status("pending")))
	assert.False(t, IsValid(Status("")))
}

func TestConfirmVisit(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	ap := &models.Appointment{Status: string(StatusScheduled)}
	require.NoError(t, ConfirmVisit(ap, now))
	assert.Equal(t, string(StatusCompleted), ap.Status)
	require.NotNil(t, ap.CompletedAt)
	assert.Equal(t, now, *ap.CompletedAt)

	err := ConfirmVisit(ap, now)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidStatus))
}

func TestCancelIsIdempotent(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	ap := &models.Appointment{Status: string(StatusScheduled)}
	require.NoError(t, Cancel(ap, now))
	assert.Equal(t, string(StatusCancelled), ap.Status)
	require.NotNil(t, ap.CancelledAt)

	first := *ap.CancelledAt

	// Second cancel succeeds and keeps the original timestamp.
	require.NoError(t, Cancel(ap, now.Add(time.Hour)))
	assert.Equal(t, string(StatusCancelled), ap.Status)
	assert.Equal(t, first, *ap.CancelledAt)
}

func TestCancelCompleted(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	// A completed visit stays completed; no cancellation timestamp.
	ap := &models.Appointment{Status: string(StatusCompleted)}
	require.NoError(t, Cancel(ap, now))
	assert.Equal(t, string(StatusCompleted), ap.Status)
	assert.Nil(t, ap.CancelledAt)
}
