package conversation

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// enterCancel starts the cancellation flow.
func (e *Engine) enterCancel(s *Session) string {
	s.State = StateCancelStart
	return "[CANCEL] Let's cancel your appointment.\n\n" +
		"Please provide your name or phone number to find your appointments:"
}

// handleCancelSearch looks up the user's appointments by the raw search key.
// Nothing cancellable sends the session back to the start.
func (e *Engine) handleCancelSearch(ctx context.Context, s *Session, input string) string {
	found, cancellable := e.mutableAppointments(ctx, input)
	if len(found) == 0 {
		s.State = StateStart
		return fmt.Sprintf("[ERROR] No appointments found for '%s'.\n\n"+
			"Please check your name or phone number and try again.", input)
	}
	if len(cancellable) == 0 {
		s.State = StateStart
		return "[INFO] You don't have any upcoming appointments that can be cancelled.\n\n" +
			"All your appointments are either completed or already cancelled."
	}

	s.Draft.Candidates = cancellable
	s.State = StateCancelConfirmation

	return "[APPOINTMENTS] Here are your upcoming appointments:\n\n" +
		renderChoices(cancellable) +
		"\nWhich appointment would you like to cancel? (Enter the number)"
}

// handleCancelSelection cancels the 1-indexed choice. Bad selections
// re-prompt with the valid range and do not advance state.
func (e *Engine) handleCancelSelection(ctx context.Context, s *Session, input string) string {
	idx, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		return "[ERROR] Please enter a valid number."
	}
	if idx < 1 || idx > len(s.Draft.Candidates) {
		return fmt.Sprintf("[ERROR] Invalid selection. Please enter a number between 1 and %d", len(s.Draft.Candidates))
	}

	appt := s.Draft.Candidates[idx-1]
	if !e.gateway.CancelAppointment(ctx, appt.ID, "Cancelled via assistant") {
		s.State = StateStart
		return "[ERROR] Failed to cancel appointment. Please try again or contact support."
	}

	s.State = StateStart
	return fmt.Sprintf("[SUCCESS] Appointment cancelled successfully!\n\n"+
		"Cancelled: %s at %s with Dr. %s\n\n"+
		"If you need to book a new appointment, just let me know!",
		appt.Date, appt.Time, appt.DoctorName)
}
