package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"meeting-optimizer-api/modules/availability/entity"
)

func TestDecodeAvailabilityView(t *testing.T) {
	viewStart := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name          string
		view          string
		wantIntervals int
		wantDominant  entity.FreeBusyStatus
	}{
		{
			name:          "all free",
			view:          "0000",
			wantIntervals: 0,
			wantDominant:  entity.StatusFree,
		},
		{
			name:          "single busy block",
			view:          "0002000",
			wantIntervals: 1,
			wantDominant:  entity.StatusFree,
		},
		{
			name:          "all busy",
			view:          "2222",
			wantIntervals: 4,
			wantDominant:  entity.StatusBusy,
		},
		{
			name:          "mixed statuses",
			view:          "012340",
			wantIntervals: 4,
			wantDominant:  entity.StatusFree,
		},
		{
			name:          "unrecognized code counts as non-free",
			view:          "0x0",
			wantIntervals: 1,
			wantDominant:  entity.StatusFree,
		},
		{
			name:          "tie resolves to earliest status to reach the count",
			view:          "2020",
			wantIntervals: 2,
			wantDominant:  entity.StatusBusy,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			intervals, dominant := DecodeAvailabilityView(tt.view, viewStart, 30)
			assert.Len(t, intervals, tt.wantIntervals)
			assert.Equal(t, tt.wantDominant, dominant)
		})
	}
}

func TestDecodeAvailabilityView_EmptyView(t *testing.T) {
	intervals, dominant := DecodeAvailabilityView("", time.Now(), 30)
	assert.Nil(t, intervals)
	assert.Equal(t, entity.StatusUnknown, dominant)
}

func TestDecodeAvailabilityView_IntervalPlacement(t *testing.T) {
	viewStart := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)

	intervals, _ := DecodeAvailabilityView("0002000", viewStart, 30)
	require.Len(t, intervals, 1)

	assert.Equal(t, viewStart.Add(90*time.Minute), intervals[0].Start)
	assert.Equal(t, viewStart.Add(120*time.Minute), intervals[0].End)
}

// Every non-free character must map to exactly one interval at its own
// offset with the interval length, regardless of the surrounding codes.
func TestDecodeAvailabilityView_RoundTrip(t *testing.T) {
	viewStart := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	view := "020310422000140"
	interval := 15

	intervals, _ := DecodeAvailabilityView(view, viewStart, interval)

	unit := time.Duration(interval) * time.Minute
	idx := 0
	for i := 0; i < len(view); i++ {
		if entity.ParseStatusCode(view[i]).IsFree() {
			continue
		}
		require.Less(t, idx, len(intervals), "missing interval for position %d", i)
		assert.Equal(t, viewStart.Add(time.Duration(i)*unit), intervals[idx].Start)
		assert.Equal(t, unit, intervals[idx].End.Sub(intervals[idx].Start))
		idx++
	}
	assert.Equal(t, idx, len(intervals), "extra intervals emitted")
}

func TestDecodeAvailabilityView_Deterministic(t *testing.T) {
	viewStart := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	view := "0123401234"

	_, first := DecodeAvailabilityView(view, viewStart, 30)
	for i := 0; i < 50; i++ {
		_, dominant := DecodeAvailabilityView(view, viewStart, 30)
		require.Equal(t, first, dominant)
	}
}
