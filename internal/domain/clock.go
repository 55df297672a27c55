package domain

import "fmt"

// TimeOfDay renders minutes elapsed since opening as a 12-hour clock, e.g. "5:00 AM".
func TimeOfDay(minutesElapsed, startHour int) string {
	total := startHour*60 + minutesElapsed
	hours := (total / 60) % 24
	minutes := total % 60

	period := "AM"
	if hours >= 12 {
		period = "PM"
	}
	display := hours % 12
	if display == 0 {
		display = 12
	}
	return fmt.Sprintf("%d:%02d %s", display, minutes, period)
}
