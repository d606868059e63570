package appointment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/medsched/outpatient-api/internal/models"
)

func TestConflicts(t *testing.T) {
	base := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		a, b time.Time
		want bool
	}{
		{"same instant", base, base, true},
		{"one minute apart", base, base.Add(time.Minute), true},
		{"just inside the window", base, base.Add(14*time.Minute + 59*time.Second), true},
		{"exactly the window apart", base, base.Add(15 * time.Minute), false},
		{"well outside", base, base.Add(time.Hour), false},
		{"symmetric below", base, base.Add(-10 * time.Minute), true},
		{"symmetric at the boundary", base, base.Add(-15 * time.Minute), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Conflicts(tt.a, tt.b))
			assert.Equal(t, tt.want, Conflicts(tt.b, tt.a))
		})
	}
}

func TestWindowBounds(t *testing.T) {
	visit := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	lo, hi := WindowBounds(visit)

	assert.Equal(t, visit.Add(-15*time.Minute), lo)
	assert.Equal(t, visit.Add(15*time.Minute), hi)
}

func TestFirstConflict(t *testing.T) {
	visit := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	cancelled := models.Appointment{
		ID:        1,
		VisitTime: visit,
		Status:    string(StatusCancelled),
	}
	scheduled := models.Appointment{
		ID:        2,
		VisitTime: visit.Add(10 * time.Minute),
		Status:    string(StatusScheduled),
	}
	farAway := models.Appointment{
		ID:        3,
		VisitTime: visit.Add(2 * time.Hour),
		Status:    string(StatusScheduled),
	}

	// A cancelled row at the exact time never blocks.
	assert.Nil(t, FirstConflict([]models.Appointment{cancelled, farAway}, visit))

	got := FirstConflict([]models.Appointment{cancelled, scheduled}, visit)
	if assert.NotNil(t, got) {
		assert.Equal(t, uint(2), got.ID)
	}
}
