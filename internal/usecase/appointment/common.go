package appointment

import (
	"time"

	"github.com/BruksfildServices01/receptionist/internal/audit"
	"github.com/BruksfildServices01/receptionist/internal/calendar"
	"github.com/BruksfildServices01/receptionist/internal/timezone"
)

// CalendarProvider hands out the active business calendar. *calendar.Holder
// satisfies it.
type CalendarProvider interface {
	Current() *calendar.Calendar
}

// AuditSink receives audit events. *audit.Dispatcher satisfies it.
type AuditSink interface {
	Dispatch(ev audit.Event)
}

// Invalidator drops cached reads after a write.
type Invalidator interface {
	Invalidate()
}

func nowOrDefault(now timezone.NowFunc) timezone.NowFunc {
	if now == nil {
		return time.Now
	}
	return now
}

func dispatch(sink AuditSink, ev audit.Event) {
	if sink != nil {
		sink.Dispatch(ev)
	}
}

func invalidate(inv Invalidator) {
	if inv != nil {
		inv.Invalidate()
	}
}
