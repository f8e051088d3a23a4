package timerange

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustRange(t *testing.T, startHour, endHour int) TimeRange {
	t.Helper()
	day := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	r, err := New(day.Add(time.Duration(startHour)*time.Hour), day.Add(time.Duration(endHour)*time.Hour))
	require.NoError(t, err)
	return r
}

func TestNew(t *testing.T) {
	now := time.Now()

	_, err := New(now, now.Add(time.Hour))
	assert.NoError(t, err)

	_, err = New(now, now)
	assert.ErrorIs(t, err, ErrInvalidRange)

	_, err = New(now.Add(time.Hour), now)
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name string
		a, b TimeRange
		want bool
	}{
		{"identical", mustRange(t, 10, 11), mustRange(t, 10, 11), true},
		{"partial overlap", mustRange(t, 10, 12), mustRange(t, 11, 13), true},
		{"contained", mustRange(t, 9, 17), mustRange(t, 10, 11), true},
		{"back to back", mustRange(t, 10, 11), mustRange(t, 11, 12), false},
		{"disjoint", mustRange(t, 8, 9), mustRange(t, 14, 15), false},
		{"one minute overlap", mustRange(t, 10, 12), TimeRange{
			Start: time.Date(2025, 6, 2, 11, 59, 0, 0, time.UTC),
			End:   time.Date(2025, 6, 2, 13, 0, 0, 0, time.UTC),
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Overlaps(tt.a, tt.b))
			// overlap is symmetric
			assert.Equal(t, tt.want, Overlaps(tt.b, tt.a))
		})
	}
}

func TestContains(t *testing.T) {
	window := mustRange(t, 9, 17)

	tests := []struct {
		name    string
		request TimeRange
		want    bool
	}{
		{"inside", mustRange(t, 10, 11), true},
		{"exact match", mustRange(t, 9, 17), true},
		{"starts at window start", mustRange(t, 9, 10), true},
		{"ends at window end", mustRange(t, 16, 17), true},
		{"starts before window", mustRange(t, 8, 10), false},
		{"runs past window end", mustRange(t, 16, 18), false},
		{"fully outside", mustRange(t, 18, 19), false},
		{"spills over by a minute", TimeRange{
			Start: time.Date(2025, 6, 2, 16, 59, 0, 0, time.UTC),
			End:   time.Date(2025, 6, 2, 17, 1, 0, 0, time.UTC),
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Contains(window, tt.request))
		})
	}
}
