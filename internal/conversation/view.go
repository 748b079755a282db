package conversation

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/wolfman30/clinic-assistant/internal/clinic"
)

// statusMarkers render a compact indicator per appointment status.
var statusMarkers = map[clinic.AppointmentStatus]string{
	clinic.StatusScheduled:   "[scheduled]",
	clinic.StatusConfirmed:   "[confirmed]",
	clinic.StatusInProgress:  "[in progress]",
	clinic.StatusCompleted:   "[done]",
	clinic.StatusCancelled:   "[cancelled]",
	clinic.StatusNoShow:      "[no-show]",
	clinic.StatusRescheduled: "[moved]",
}

// enterView starts the view flow.
func (e *Engine) enterView(s *Session) string {
	s.State = StateViewStart
	return "[VIEW] Let's check your appointments.\n\n" +
		"Please provide your name or phone number:"
}

// handleViewSearch lists all of the user's appointments sorted by date-time.
func (e *Engine) handleViewSearch(ctx context.Context, s *Session, input string) string {
	appointments := e.gateway.FindAppointmentsByPatient(ctx, strings.TrimSpace(input))
	if len(appointments) == 0 {
		s.State = StateStart
		return fmt.Sprintf("[INFO] No appointments found for '%s'.\n\n"+
			"If you'd like to book an appointment, just let me know!", input)
	}

	s.State = StateViewResults

	sort.Slice(appointments, func(i, j int) bool {
		return appointments[i].DateTime().Before(appointments[j].DateTime())
	})

	var b strings.Builder
	b.WriteString("[APPOINTMENTS] Here are your appointments:\n\n")
	for _, a := range appointments {
		marker, ok := statusMarkers[a.Status]
		if !ok {
			marker = "[?]"
		}
		fmt.Fprintf(&b, "%s %s at %s - Dr. %s\n", marker, a.Date, a.Time, a.DoctorName)
		fmt.Fprintf(&b, "   Service: %s | Status: %s\n", a.ServiceType, a.Status)
		if a.Notes != "" {
			fmt.Fprintf(&b, "   Notes: %s\n", a.Notes)
		}
		b.WriteString("\n")
	}
	b.WriteString("Would you like to book a new appointment, cancel, or reschedule any of these? (book/cancel/reschedule/no)")
	return b.String()
}

// handleViewFollowup routes the follow-up choice into the matching flow.
// The cancel choice is reachable via the global command, which lands the
// session back at the start; typing "cancellation" enters the flow directly.
func (e *Engine) handleViewFollowup(_ context.Context, s *Session, input string) string {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "book", "booking", "new", "schedule":
		return e.enterGreeting(s)
	case "cancellation":
		return e.enterCancel(s)
	case "reschedule", "change":
		return e.enterReschedule(s)
	case "no", "nothing", "thanks", "bye":
		s.State = StateStart
		return "[END] You're welcome! Have a great day and take care of your smile!"
	default:
		return "[INFO] What would you like to do next?\n" +
			"Type 'book' for new appointment, 'cancel' to cancel, 'reschedule' to change, or 'no' to exit."
	}
}
