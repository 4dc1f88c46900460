// Package debounce implements the admission gate that sits between keystrokes
// and outbound search requests.
//
// A Gate combines two windows. The quiet window delays a dispatch until input
// has stopped changing. The spacing window caps dispatches to one per window
// no matter how fast input arrives. The gate never sleeps or starts timers;
// callers schedule a wake-up for the delay it returns (tea.Tick in the UI) and
// ask again when it fires, passing the current time.
package debounce

import "time"

// Token identifies one arming of the gate. Only the most recent token can fire.
type Token uint64

// Verdict is the gate's answer when a scheduled wake-up comes due.
type Verdict int

const (
	// Stale means a newer keystroke re-armed the gate; drop the wake-up.
	Stale Verdict = iota
	// Wait means the spacing window is still open; re-check after the returned delay.
	Wait
	// Fire means the caller should dispatch now.
	Fire
)

func (v Verdict) String() string {
	switch v {
	case Stale:
		return "stale"
	case Wait:
		return "wait"
	case Fire:
		return "fire"
	}
	return "unknown"
}

// Gate is a debounce window composed with a throttle window.
// The zero value fires immediately on every Due call for the latest token.
type Gate struct {
	Quiet   time.Duration
	Spacing time.Duration

	latest       Token
	lastDispatch time.Time
	dispatched   bool
}

// New returns a gate with the given quiet and spacing windows.
func New(quiet, spacing time.Duration) Gate {
	return Gate{Quiet: quiet, Spacing: spacing}
}

// Arm records new input and returns its token plus the delay after which the
// caller should call Due. Every Arm invalidates all earlier tokens.
func (g *Gate) Arm() (Token, time.Duration) {
	g.latest++
	return g.latest, g.Quiet
}

// Cancel invalidates the outstanding token without arming a new one.
func (g *Gate) Cancel() {
	g.latest++
}

// Latest returns the most recently issued token.
func (g Gate) Latest() Token {
	return g.latest
}

// Due reports what to do with a wake-up for token at time now. On Fire the
// gate records now as the dispatch time.
func (g *Gate) Due(token Token, now time.Time) (Verdict, time.Duration) {
	if token != g.latest {
		return Stale, 0
	}
	if g.dispatched && g.Spacing > 0 {
		if elapsed := now.Sub(g.lastDispatch); elapsed < g.Spacing {
			return Wait, g.Spacing - elapsed
		}
	}
	g.lastDispatch = now
	g.dispatched = true
	return Fire, 0
}
