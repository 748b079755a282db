package conversation

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// enterReschedule starts the reschedule flow.
func (e *Engine) enterReschedule(s *Session) string {
	s.State = StateRescheduleStart
	return "[RESCHEDULE] Let's reschedule your appointment.\n\n" +
		"Please provide your name or phone number to find your appointments:"
}

// handleRescheduleSearch finds movable appointments for the search key.
func (e *Engine) handleRescheduleSearch(ctx context.Context, s *Session, input string) string {
	found, movable := e.mutableAppointments(ctx, input)
	if len(found) == 0 {
		s.State = StateStart
		return fmt.Sprintf("[ERROR] No appointments found for '%s'.\n\n"+
			"Please check your name or phone number and try again.", input)
	}
	if len(movable) == 0 {
		s.State = StateStart
		return "[INFO] You don't have any upcoming appointments that can be rescheduled.\n\n" +
			"All your appointments are either completed or cancelled."
	}

	s.Draft.Candidates = movable
	s.State = StateRescheduleAppointmentSelection

	return "[APPOINTMENTS] Here are your upcoming appointments:\n\n" +
		renderChoices(movable) +
		"\nWhich appointment would you like to reschedule? (Enter the number)"
}

// handleRescheduleSelection picks the appointment to move.
func (e *Engine) handleRescheduleSelection(_ context.Context, s *Session, input string) string {
	idx, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		return "[ERROR] Please enter a valid number."
	}
	if idx < 1 || idx > len(s.Draft.Candidates) {
		return fmt.Sprintf("[ERROR] Invalid selection. Please enter a number between 1 and %d", len(s.Draft.Candidates))
	}

	appt := s.Draft.Candidates[idx-1]
	s.Draft.Selected = &appt
	s.State = StateRescheduleDateSelection

	return fmt.Sprintf("[OK] Selected appointment: %s at %s with Dr. %s\n\n"+
		"[NEW DATE] What is your new preferred date?\n"+
		"Please provide date in YYYY-MM-DD format:",
		appt.Date, appt.Time, appt.DoctorName)
}

// handleRescheduleDate validates the new date against the engine clock.
func (e *Engine) handleRescheduleDate(_ context.Context, s *Session, input string) string {
	if err := validateDateAt(input, e.now()); err != nil {
		return fmt.Sprintf("[ERROR] %s\n\nPlease try again (YYYY-MM-DD)", err)
	}

	s.Draft.NewDate = strings.TrimSpace(input)
	s.State = StateRescheduleTimeSelection

	return fmt.Sprintf("[OK] New date confirmed: %s\n\n"+
		"[NEW TIME] What time works for you?\n"+
		"Please provide time in HH:MM format (e.g., 14:30)\n"+
		"Available: 08:00 - 20:00 (30-minute intervals)", s.Draft.NewDate)
}

// handleRescheduleTime validates the new time and asks for confirmation.
func (e *Engine) handleRescheduleTime(_ context.Context, s *Session, input string) string {
	if err := ValidateTime(input); err != nil {
		return fmt.Sprintf("[ERROR] %s\n\nPlease try again (HH:MM)", err)
	}

	s.Draft.NewTime = strings.TrimSpace(input)
	s.State = StateRescheduleConfirmation

	appt := s.Draft.Selected
	return fmt.Sprintf("[REVIEW] Please confirm the rescheduling:\n\n"+
		"Current: %s at %s with Dr. %s\n"+
		"New: %s at %s with Dr. %s\n\n"+
		"Is this correct? (yes/no)",
		appt.Date, appt.Time, appt.DoctorName,
		s.Draft.NewDate, s.Draft.NewTime, appt.DoctorName)
}

// handleRescheduleConfirmation commits or aborts the move.
func (e *Engine) handleRescheduleConfirmation(ctx context.Context, s *Session, input string) string {
	switch lower := strings.ToLower(strings.TrimSpace(input)); {
	case affirmatives[lower]:
		appt := s.Draft.Selected
		newDate, newTime := s.Draft.NewDate, s.Draft.NewTime
		s.State = StateStart
		if !e.gateway.RescheduleAppointment(ctx, appt.ID, newDate, newTime) {
			return "[ERROR] Failed to reschedule appointment. Please try again or contact support."
		}
		return fmt.Sprintf("[SUCCESS] Appointment rescheduled successfully!\n\n"+
			"New appointment: %s at %s with Dr. %s\n"+
			"Service: %s\n\n"+
			"Thank you!",
			newDate, newTime, appt.DoctorName, appt.ServiceType)
	case negatives[lower]:
		s.State = StateStart
		return "[CANCEL] Rescheduling cancelled.\n\nType anything to start over."
	default:
		return "[ERROR] Please answer with 'yes' or 'no'"
	}
}
