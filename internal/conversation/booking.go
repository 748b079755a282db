package conversation

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/wolfman30/clinic-assistant/internal/clinic"
)

// bookingRequest composes the persistence request from the accumulated draft.
func bookingRequest(d Draft) clinic.BookingRequest {
	return clinic.BookingRequest{
		PatientName:  d.PatientName,
		PatientPhone: d.Phone,
		DoctorName:   d.DoctorName,
		Date:         d.Date,
		Time:         d.Time,
		ServiceType:  d.ServiceType,
		Notes:        "Patient reported: " + d.Problem,
	}
}

// problemBuckets maps keywords in the patient's description to an empathetic
// acknowledgement. Checked in order; first bucket with a hit wins.
var problemBuckets = []struct {
	keywords []string
	reply    string
}{
	{[]string{"emergency", "urgent", "severe", "pain"},
		"[URGENT] I understand this is urgent! We have emergency slots available.\n\n"},
	{[]string{"clean", "routine", "checkup"},
		"[ROUTINE] Great! Routine maintenance is important for healthy teeth.\n\n"},
	{[]string{"cosmetic", "whiten", "brighten"},
		"[COSMETIC] We offer cosmetic services! Let's get your smile perfect.\n\n"},
}

// handleProblemAssessment records the patient's problem and presents the
// service menu.
func (e *Engine) handleProblemAssessment(_ context.Context, s *Session, input string) string {
	s.Draft.Problem = input
	s.State = StateServiceSelection

	lower := strings.ToLower(input)
	reply := "[INFO] Thank you for sharing that. I'm here to help.\n\n"
	for _, bucket := range problemBuckets {
		if containsAny(lower, bucket.keywords) {
			reply = bucket.reply
			break
		}
	}

	var b strings.Builder
	b.WriteString(reply)
	b.WriteString("What service would you like?\n")
	for i, svc := range e.services {
		if i >= 6 {
			break
		}
		fmt.Fprintf(&b, "  %d. %s\n", i+1, svc)
	}
	fmt.Fprintf(&b, "  ... (%d services available)\n", len(e.services))
	b.WriteString("\nOr type the service name directly:")
	return b.String()
}

// handleServiceSelection accepts a 1-based menu index or a case-insensitive
// substring of a service name. No match re-prompts without advancing.
func (e *Engine) handleServiceSelection(_ context.Context, s *Session, input string) string {
	selected := ""
	if idx, err := strconv.Atoi(strings.TrimSpace(input)); err == nil {
		if idx >= 1 && idx <= len(e.services) {
			selected = e.services[idx-1]
		}
	}
	if selected == "" {
		lower := strings.ToLower(strings.TrimSpace(input))
		if lower != "" {
			for _, svc := range e.services {
				if strings.Contains(strings.ToLower(svc), lower) {
					selected = svc
					break
				}
			}
		}
	}
	if selected == "" {
		var b strings.Builder
		fmt.Fprintf(&b, "[ERROR] I don't recognize '%s'.\n\nAvailable services:\n", input)
		for _, svc := range e.services {
			fmt.Fprintf(&b, "  - %s\n", svc)
		}
		return strings.TrimRight(b.String(), "\n")
	}

	s.Draft.ServiceType = selected
	s.State = StateDateSelection

	example := e.now().AddDate(0, 0, 5).Format("2006-01-02")
	return fmt.Sprintf("[OK] Great! You selected: %s\n\n"+
		"[DATE] When would you like to come in?\n"+
		"Please provide a date (YYYY-MM-DD)\n"+
		"Example: %s", selected, example)
}

// handleDateSelection validates the requested date against the engine clock.
func (e *Engine) handleDateSelection(_ context.Context, s *Session, input string) string {
	if err := validateDateAt(input, e.now()); err != nil {
		if isAllDigits(strings.TrimSpace(input)) {
			return fmt.Sprintf("[ERROR] That looks like a service number. If you meant to select a different service, type 'restart' to start over.\n\n%s\n\nPlease try again (YYYY-MM-DD)", err)
		}
		return fmt.Sprintf("[ERROR] %s\n\nPlease try again (YYYY-MM-DD)", err)
	}

	s.Draft.Date = strings.TrimSpace(input)
	s.State = StateTimeSelection

	return fmt.Sprintf("[OK] Date confirmed: %s\n\n"+
		"[TIME] What time works for you?\n"+
		"Please provide time in HH:MM format (e.g., 14:30)\n"+
		"Available: 08:00 - 20:00 (30-minute intervals)", s.Draft.Date)
}

// handleTimeSelection validates the requested time.
func (e *Engine) handleTimeSelection(_ context.Context, s *Session, input string) string {
	if err := ValidateTime(input); err != nil {
		return fmt.Sprintf("[ERROR] %s\n\nPlease try again (HH:MM)", err)
	}

	s.Draft.Time = strings.TrimSpace(input)
	s.State = StatePhoneCollection

	return fmt.Sprintf("[OK] Time confirmed: %s\n\n"+
		"[PHONE] What's your phone number?\n"+
		"We need this to confirm your appointment and send reminders.", s.Draft.Time)
}

// handlePhoneCollection validates the phone number and presents doctors.
func (e *Engine) handlePhoneCollection(ctx context.Context, s *Session, input string) string {
	if !ValidPhone(input) {
		return "[ERROR] Please provide a valid phone number (7-20 digits)\n\nExample: +1-555-123-4567"
	}

	s.Draft.Phone = strings.TrimSpace(input)
	s.State = StateDoctorSelection

	doctors := e.gateway.ListDoctors(ctx)
	var doctorsText strings.Builder
	if len(doctors) == 0 {
		doctorsText.WriteString("  - Any available doctor (automatic assignment)")
	} else {
		for i, d := range doctors {
			if i >= 5 {
				break
			}
			if i > 0 {
				doctorsText.WriteString("\n")
			}
			fmt.Fprintf(&doctorsText, "  - Dr. %s (%s) - Rating: %.1f/5", d.FullName(), d.Specialty, d.PatientRating)
		}
		if len(doctors) > 5 {
			fmt.Fprintf(&doctorsText, "\n  ... and %d more doctors", len(doctors)-5)
		}
	}

	return fmt.Sprintf("[OK] Phone confirmed: %s\n\n"+
		"[DOCTOR] Which doctor would you prefer?\n"+
		"%s\n\n"+
		"Or type 'any' for next available doctor", s.Draft.Phone, doctorsText.String())
}

// handleDoctorSelection resolves the doctor choice and shows the summary.
func (e *Engine) handleDoctorSelection(ctx context.Context, s *Session, input string) string {
	if strings.EqualFold(strings.TrimSpace(input), "any") {
		s.Draft.DoctorName = "Any"
	} else {
		doctor, found := e.gateway.FindDoctorByName(ctx, input)
		if !found {
			return fmt.Sprintf("[ERROR] Doctor '%s' not found. Please try:\n"+
				"  - 'any' for automatic assignment\n"+
				"  - Full doctor name (e.g., 'John Smith')", input)
		}
		s.Draft.DoctorName = doctor.FullName()
	}

	s.State = StateConfirmation
	d := s.Draft
	return fmt.Sprintf("[REVIEW] Please review your appointment details:\n\n"+
		"Name: %s\n"+
		"Phone: %s\n"+
		"Service: %s\n"+
		"Date: %s\n"+
		"Time: %s\n"+
		"Doctor: %s\n\n"+
		"Is this correct? (yes/no)",
		d.PatientName, d.Phone, d.ServiceType, d.Date, d.Time, d.DoctorName)
}

// handleBookingConfirmation commits or aborts the booking.
func (e *Engine) handleBookingConfirmation(ctx context.Context, s *Session, input string) string {
	switch lower := strings.ToLower(strings.TrimSpace(input)); {
	case affirmatives[lower]:
		return e.commitBooking(ctx, s)
	case negatives[lower]:
		s.State = StateStart
		return "[CANCEL] Appointment cancelled.\n\nType anything to start over."
	default:
		return "[ERROR] Please answer with 'yes' or 'no'"
	}
}

// commitBooking hands the draft to the gateway. A panic anywhere below the
// flow boundary must surface as a retry message, never crash the loop, and
// must leave the session in its pre-commit state.
func (e *Engine) commitBooking(ctx context.Context, s *Session) (reply string) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("booking commit panicked", "user", s.UserName, "panic", r)
			e.metrics.ObserveBooking("failure")
			reply = "[ERROR] Something went wrong while booking your appointment.\n\nPlease try again later."
		}
	}()

	d := s.Draft
	ok, message := e.gateway.CreateAppointment(ctx, bookingRequest(d))
	if !ok {
		e.metrics.ObserveBooking("failure")
		return fmt.Sprintf("[ERROR] Booking failed: %s\n\nPlease try again or contact support.", message)
	}

	s.State = StateBookingComplete
	e.metrics.ObserveBooking("success")
	return fmt.Sprintf("[SUCCESS] Appointment booked successfully!\n\n"+
		"Confirmation Details:\n"+
		"Appointment ID: %s\n"+
		"Date: %s at %s\n"+
		"Doctor: Dr. %s\n"+
		"Service: %s\n\n"+
		"Confirmation sent to %s\n"+
		"Please call 30 minutes before your appointment.\n\n"+
		"Thank you!",
		message, d.Date, d.Time, d.DoctorName, d.ServiceType, d.Phone)
}

// handleFollowup covers post-booking small talk.
func (e *Engine) handleFollowup(_ context.Context, s *Session, input string) string {
	lower := strings.ToLower(input)
	switch {
	case strings.Contains(lower, "restart"):
		fresh := e.sessions.Reset(s.UserName)
		return "[RESTART] Starting new appointment booking...\n" + e.enterGreeting(fresh)
	case containsAny(lower, []string{"thank", "thanks", "bye", "goodbye"}):
		return "[END] You're welcome! Have a great day and take care of your smile!"
	default:
		return "[INFO] Is there anything else I can help you with?\n" +
			"Type 'restart' to book another appointment or 'bye' to exit."
	}
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
