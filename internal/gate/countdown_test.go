package gate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRemainingAt(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		end     time.Time
		want    Countdown
		display string
	}{
		{
			name:    "hours minutes seconds",
			end:     now.Add(2*time.Hour + 30*time.Minute + 15*time.Second),
			want:    Countdown{Hours: 2, Minutes: 30, Seconds: 15},
			display: "2h 30m 15s",
		},
		{
			name:    "units floor instead of round",
			end:     now.Add(59*time.Minute + 59*time.Second + 900*time.Millisecond),
			want:    Countdown{Hours: 0, Minutes: 59, Seconds: 59},
			display: "0h 59m 59s",
		},
		{
			name:    "more than a day stays in hours",
			end:     now.Add(26*time.Hour + 5*time.Second),
			want:    Countdown{Hours: 26, Minutes: 0, Seconds: 5},
			display: "26h 0m 5s",
		},
		{
			name:    "one second left",
			end:     now.Add(time.Second),
			want:    Countdown{Hours: 0, Minutes: 0, Seconds: 1},
			display: "0h 0m 1s",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RemainingAt(tt.end, now)
			assert.Equal(t, tt.want.Hours, got.Hours)
			assert.Equal(t, tt.want.Minutes, got.Minutes)
			assert.Equal(t, tt.want.Seconds, got.Seconds)
			assert.False(t, got.Terminal)
			assert.Equal(t, tt.display, got.Display)
		})
	}
}

func TestRemainingAt_TerminalAtZero(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	got := RemainingAt(now, now)
	assert.True(t, got.Terminal)
	assert.Equal(t, EndingSoonMessage, got.Display)
	assert.Zero(t, got.Hours)
	assert.Zero(t, got.Minutes)
	assert.Zero(t, got.Seconds)
}

func TestRemainingAt_NeverNegative(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	// End already passed, including windows whose end precedes their start.
	for _, end := range []time.Time{
		now.Add(-time.Second),
		now.Add(-3 * time.Hour),
		now.Add(-48 * time.Hour),
	} {
		got := RemainingAt(end, now)
		assert.True(t, got.Terminal)
		assert.Equal(t, EndingSoonMessage, got.Display)
		assert.GreaterOrEqual(t, got.Hours, 0)
		assert.GreaterOrEqual(t, got.Minutes, 0)
		assert.GreaterOrEqual(t, got.Seconds, 0)
	}
}

func TestGateRemaining_UsesInjectedClock(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	g := NewWithClock(&stubWindowStore{}, fixedClock(now))

	got := g.Remaining(now.Add(90 * time.Minute))
	assert.Equal(t, 1, got.Hours)
	assert.Equal(t, 30, got.Minutes)
	assert.Equal(t, 0, got.Seconds)
	assert.Equal(t, "1h 30m 0s", got.Display)
}
