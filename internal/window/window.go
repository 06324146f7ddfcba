// Package window maps wall-clock time onto calendar-month validity windows.
// One corpus word is the expected key plaintext for each window; issuer and
// validator both derive the window from the same epoch constant, so no clock
// coordination beyond the local time source is needed.
package window

import "time"

// Ordinal returns the absolute month ordinal of t: years since year zero
// times twelve plus the zero-based month. Two times in the same calendar
// month always share an ordinal, regardless of day or timezone offset within
// the month.
func Ordinal(t time.Time) int {
	return t.Year()*12 + int(t.Month()) - 1
}

// Index returns the number of whole calendar months elapsed between the
// epoch ordinal and now. Negative when now precedes the epoch. Monotonic in
// now: advancing the clock never decreases the index.
func Index(now time.Time, epochOrdinal int) int {
	return Ordinal(now) - epochOrdinal
}

// OrdinalOf returns the month ordinal for a given year and month, for
// issuer-side tooling that addresses windows directly.
func OrdinalOf(year int, month time.Month) int {
	return year*12 + int(month) - 1
}
