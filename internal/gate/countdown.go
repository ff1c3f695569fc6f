package gate

import (
	"fmt"
	"time"
)

// EndingSoonMessage replaces the countdown once the window end has passed.
// The caller schedules a one-time reload after the configured grace delay
// instead of counting below zero.
const EndingSoonMessage = "maintenance is ending soon"

// Countdown is the remaining time of a maintenance window broken into whole
// units for display
type Countdown struct {
	Hours    int    `json:"hours"`
	Minutes  int    `json:"minutes"`
	Seconds  int    `json:"seconds"`
	Terminal bool   `json:"terminal"`
	Display  string `json:"display"`
}

// RemainingAt computes the countdown for a window ending at end, as seen at
// now. Each unit is floored; a non-positive difference (including malformed
// windows whose end precedes their start) clamps to the terminal state and
// never renders negative units.
func RemainingAt(end, now time.Time) Countdown {
	diff := end.Sub(now)
	if diff <= 0 {
		return Countdown{Terminal: true, Display: EndingSoonMessage}
	}

	h := int(diff / time.Hour)
	m := int(diff % time.Hour / time.Minute)
	s := int(diff % time.Minute / time.Second)

	return Countdown{
		Hours:   h,
		Minutes: m,
		Seconds: s,
		Display: fmt.Sprintf("%dh %dm %ds", h, m, s),
	}
}

// Remaining computes the countdown for the window against the gate's clock
func (g *Gate) Remaining(end time.Time) Countdown {
	return RemainingAt(end, g.clock())
}
