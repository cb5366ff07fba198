package domain

import "github.com/jonboulle/clockwork"

// clock stamps reports; tests freeze it through SetClock.
var clock = clockwork.NewRealClock()

// SetClock swaps the time source used by NewReport. Pass nil to reset to real time.
func SetClock(c clockwork.Clock) {
	if c == nil {
		clock = clockwork.NewRealClock()
		return
	}
	clock = c
}
