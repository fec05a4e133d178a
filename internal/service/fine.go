package service

import "time"

// lateFine is the flat penalty applied after the grace window
const lateFine int64 = 50

// graceDay is the last day of the month a payment can be made without a fine
const graceDay = 10

// ComputeFine returns the late fee for a payment made at the given time.
// The fee is captured once, at submission or admin entry, and is never
// recomputed when a pending payment is later approved.
func ComputeFine(at time.Time) int64 {
	if at.Day() > graceDay {
		return lateFine
	}
	return 0
}
