package workout

import (
	"fmt"
	"strconv"
)

// TrackingMode says whether a session was measured in reps or in time.
type TrackingMode string

const (
	TrackingModeReps TrackingMode = "reps"
	TrackingModeTime TrackingMode = "time"
)

// TrackingModeOf returns TrackingModeTime when the session has a duration.
func TrackingModeOf(s Session) TrackingMode {
	if s.Duration != nil {
		return TrackingModeTime
	}
	return TrackingModeReps
}

// FormatDuration renders seconds as "1m 30s", "2m" or "45s".
func FormatDuration(totalSeconds int) string {
	mins := totalSeconds / 60
	secs := totalSeconds % 60
	switch {
	case mins > 0 && secs > 0:
		return fmt.Sprintf("%dm %ds", mins, secs)
	case mins > 0:
		return fmt.Sprintf("%dm", mins)
	default:
		return fmt.Sprintf("%ds", secs)
	}
}

// FormatWeight renders kilograms without trailing zeros.
func FormatWeight(kg float64) string {
	return strconv.FormatFloat(kg, 'f', -1, 64) + "kg"
}

// Summary renders the one-line summary of a session.
func Summary(s Session) string {
	if TrackingModeOf(s) == TrackingModeTime {
		return fmt.Sprintf("%s × %d sets", FormatDuration(*s.Duration), s.Sets())
	}
	if s.IsBodyweight || s.Weight == nil {
		return fmt.Sprintf("%d reps × %d sets", s.RepsPerSet(), s.Sets())
	}
	return fmt.Sprintf("%s × %d reps × %d sets", FormatWeight(*s.Weight), s.RepsPerSet(), s.Sets())
}
