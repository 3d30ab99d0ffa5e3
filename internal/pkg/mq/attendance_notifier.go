package mq

import (
	"context"

	"github.com/cfcpretoriaeast/churchhub/internal/app/models"
)

// Routing keys for attendance messages
const (
	KeyAttendancePresent    = "attendance.present"
	KeyAttendanceAbsent     = "attendance.absent"
	KeyAttendanceFirstTimer = "attendance.first_timer"
)

// JSONPublisher is what the notifier needs from a broker connection
type JSONPublisher interface {
	PublishJSON(ctx context.Context, key string, v any) error
}

// AttendanceNotifier publishes attendance changes for follow-up workers
type AttendanceNotifier struct {
	pub JSONPublisher
}

// NewAttendanceNotifier creates a notifier on top of pub
func NewAttendanceNotifier(pub JSONPublisher) *AttendanceNotifier {
	return &AttendanceNotifier{pub: pub}
}

// RoutingKey picks the topic for an attendance change
func RoutingKey(evt models.AttendanceMarked) string {
	switch {
	case evt.Present && evt.IsFirstTimer:
		return KeyAttendanceFirstTimer
	case evt.Present:
		return KeyAttendancePresent
	default:
		return KeyAttendanceAbsent
	}
}

// AttendanceMarked publishes evt under its routing key
func (n *AttendanceNotifier) AttendanceMarked(ctx context.Context, evt models.AttendanceMarked) error {
	return n.pub.PublishJSON(ctx, RoutingKey(evt), evt)
}

// NopNotifier drops every message; used when no broker is configured
type NopNotifier struct{}

// AttendanceMarked does nothing
func (NopNotifier) AttendanceMarked(context.Context, models.AttendanceMarked) error { return nil }
