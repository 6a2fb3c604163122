package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ekarahan/LCR-ReservationService/pkg/types"
)

var testDate = time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

func mustInterval(t *testing.T, date time.Time, start, end string) TimeInterval {
	t.Helper()
	interval, err := NewTimeInterval(date, types.TimeString(start), types.TimeString(end))
	require.NoError(t, err)
	return interval
}

func TestNewTimeInterval(t *testing.T) {
	tests := []struct {
		name       string
		date       time.Time
		start, end string
		wantErr    bool
	}{
		{"valid interval", testDate, "10:00", "11:30", false},
		{"one minute", testDate, "10:00", "10:01", false},
		{"zero length rejected", testDate, "10:00", "10:00", true},
		{"end before start rejected", testDate, "11:00", "10:00", true},
		{"zero date rejected", time.Time{}, "10:00", "11:00", true},
		{"malformed start rejected", testDate, "10-00", "11:00", true},
		{"empty end rejected", testDate, "10:00", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTimeInterval(tt.date, types.TimeString(tt.start), types.TimeString(tt.end))

			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidInterval)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNewTimeInterval_TruncatesDateToMidnight(t *testing.T) {
	noisy := time.Date(2026, 9, 1, 15, 42, 7, 123, time.UTC)

	interval := mustInterval(t, noisy, "10:00", "11:00")

	assert.Equal(t, testDate, interval.Date)
}

func TestTimeInterval_Overlaps(t *testing.T) {
	otherDate := time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		a, b TimeInterval
		want bool
	}{
		{
			"identical intervals overlap",
			mustInterval(t, testDate, "10:00", "11:00"),
			mustInterval(t, testDate, "10:00", "11:00"),
			true,
		},
		{
			"partial overlap",
			mustInterval(t, testDate, "10:00", "11:00"),
			mustInterval(t, testDate, "10:30", "11:30"),
			true,
		},
		{
			"containment",
			mustInterval(t, testDate, "09:00", "12:00"),
			mustInterval(t, testDate, "10:00", "11:00"),
			true,
		},
		{
			"touching endpoints do not overlap",
			mustInterval(t, testDate, "09:00", "10:00"),
			mustInterval(t, testDate, "10:00", "11:00"),
			false,
		},
		{
			"disjoint",
			mustInterval(t, testDate, "08:00", "09:00"),
			mustInterval(t, testDate, "10:00", "11:00"),
			false,
		},
		{
			"same times on different dates",
			mustInterval(t, testDate, "10:00", "11:00"),
			mustInterval(t, otherDate, "10:00", "11:00"),
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Overlaps симметричен
			assert.Equal(t, tt.want, tt.a.Overlaps(tt.b))
			assert.Equal(t, tt.want, tt.b.Overlaps(tt.a))
		})
	}
}

func TestTimeInterval_DurationMinutes(t *testing.T) {
	assert.Equal(t, 90, mustInterval(t, testDate, "10:00", "11:30").DurationMinutes())
	assert.Equal(t, 1, mustInterval(t, testDate, "23:58", "23:59").DurationMinutes())
}

func TestReservationStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from, to ReservationStatus
		want     bool
	}{
		{StatusPending, StatusApproved, true},
		{StatusPending, StatusRejected, true},
		{StatusApproved, StatusRejected, true},
		{StatusApproved, StatusPending, false},
		{StatusRejected, StatusApproved, false},
		{StatusRejected, StatusPending, false},
		{StatusPending, StatusPending, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"_to_"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestIsBlockingStatus(t *testing.T) {
	assert.True(t, IsBlockingStatus(StatusPending))
	assert.True(t, IsBlockingStatus(StatusApproved))
	assert.False(t, IsBlockingStatus(StatusRejected))
}
