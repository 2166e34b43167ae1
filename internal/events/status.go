package events

import "time"

type Status string

const (
	StatusUpcoming Status = "UPCOMING"
	StatusActive   Status = "ACTIVE"
	StatusEnded    Status = "ENDED"
)

// StatusAt derives the lifecycle status of e at now.
func StatusAt(e *Event, now time.Time) Status {
	switch {
	case now.Before(e.TimeStart):
		return StatusUpcoming
	case now.Before(e.TimeEnd):
		return StatusActive
	default:
		return StatusEnded
	}
}
