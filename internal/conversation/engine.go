// Package conversation implements the appointment assistant's dialogue
// engine: a per-user session state machine that collects booking details,
// validates them, and drives the clinic gateway.
package conversation

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/wolfman30/clinic-assistant/internal/clinic"
	"github.com/wolfman30/clinic-assistant/internal/observability/metrics"
	"github.com/wolfman30/clinic-assistant/pkg/logging"
)

// Gateway is the clinic collaborator the engine drives. clinic.Service
// implements it; tests supply fakes.
type Gateway interface {
	FindAppointmentsByPatient(ctx context.Context, key string) []clinic.Appointment
	CreateAppointment(ctx context.Context, req clinic.BookingRequest) (ok bool, message string)
	CancelAppointment(ctx context.Context, id, reason string) bool
	RescheduleAppointment(ctx context.Context, id, newDate, newTime string) bool
	ListDoctors(ctx context.Context) []clinic.Doctor
	FindDoctorByName(ctx context.Context, name string) (clinic.Doctor, bool)
}

// handlerFunc processes one input for a session in a given state and returns
// the reply, advancing the session as a side effect.
type handlerFunc func(ctx context.Context, s *Session, input string) string

const (
	defaultSweepEvery = 10
	defaultSessionTTL = time.Hour
	defaultClinicName = "DentalClinic Pro"
)

// Confirmation vocabularies shared by the booking and reschedule flows.
var (
	affirmatives = map[string]bool{"yes": true, "y": true, "ok": true, "correct": true, "sure": true}
	negatives    = map[string]bool{"no": true, "n": true, "cancel": true, "edit": true}
)

// Options configures an Engine. Zero values fall back to defaults.
type Options struct {
	ClinicName string
	SessionTTL time.Duration
	SweepEvery int
	Logger     *logging.Logger
	Metrics    *metrics.ConversationMetrics
	Now        func() time.Time
}

// Engine is the conversation state machine.
type Engine struct {
	gateway    Gateway
	sessions   *SessionStore
	services   []string
	clinicName string
	ttl        time.Duration
	sweepEvery uint64
	turns      atomic.Uint64
	logger     *logging.Logger
	metrics    *metrics.ConversationMetrics
	now        func() time.Time
	handlers   map[State]handlerFunc
}

// NewEngine wires the state machine against a clinic gateway.
func NewEngine(gateway Gateway, opts Options) *Engine {
	e := &Engine{
		gateway:    gateway,
		sessions:   NewSessionStore(),
		services:   clinic.ServiceNames(),
		clinicName: opts.ClinicName,
		ttl:        opts.SessionTTL,
		logger:     opts.Logger,
		metrics:    opts.Metrics,
		now:        opts.Now,
	}
	if e.clinicName == "" {
		e.clinicName = defaultClinicName
	}
	if e.ttl <= 0 {
		e.ttl = defaultSessionTTL
	}
	// Non-positive cadence would wrap to a huge uint64 and never sweep.
	if opts.SweepEvery > 0 {
		e.sweepEvery = uint64(opts.SweepEvery)
	} else {
		e.sweepEvery = defaultSweepEvery
	}
	if e.logger == nil {
		e.logger = logging.Default()
	}
	e.logger = e.logger.Component("engine")
	if e.now == nil {
		e.now = time.Now
	}
	e.sessions.now = e.now

	// One handler per state; transitions happen inside the handlers.
	e.handlers = map[State]handlerFunc{
		StateIntentDetection:                e.handleIntentChoice,
		StateGreeting:                       e.handleProblemAssessment,
		StateProblemAssessment:              e.handleServiceSelection,
		StateServiceSelection:               e.handleServiceSelection,
		StateDateSelection:                  e.handleDateSelection,
		StateTimeSelection:                  e.handleTimeSelection,
		StatePhoneCollection:                e.handlePhoneCollection,
		StateDoctorSelection:                e.handleDoctorSelection,
		StateConfirmation:                   e.handleBookingConfirmation,
		StateBookingComplete:                e.handleFollowup,
		StateCancelStart:                    e.handleCancelSearch,
		StateCancelConfirmation:             e.handleCancelSelection,
		StateRescheduleStart:                e.handleRescheduleSearch,
		StateRescheduleAppointmentSelection: e.handleRescheduleSelection,
		StateRescheduleDateSelection:        e.handleRescheduleDate,
		StateRescheduleTimeSelection:        e.handleRescheduleTime,
		StateRescheduleConfirmation:         e.handleRescheduleConfirmation,
		StateViewStart:                      e.handleViewSearch,
		StateViewResults:                    e.handleViewFollowup,
	}
	return e
}

// Process handles one user input and returns the assistant's reply. All
// state changes are internal to the engine.
func (e *Engine) Process(ctx context.Context, userName, input string) string {
	if strings.TrimSpace(userName) == "" {
		userName = "Guest"
	}
	e.maybeSweep()

	input = strings.TrimSpace(input)
	sess := e.sessions.GetOrCreate(userName)
	lower := strings.ToLower(input)

	// Global commands win over any state.
	switch lower {
	case "cancel", "exit", "quit":
		sess.State = StateStart
		return "Conversation cancelled. Type anything to start over!"
	case "restart":
		sess = e.sessions.Reset(userName)
		return e.enterGreeting(sess)
	}

	if sess.State == StateStart {
		intent := Classify(input)
		e.metrics.ObserveTurn(string(intent))
		e.logger.Debug("intent detected", "user", userName, "intent", intent)
		switch intent {
		case IntentBook:
			return e.enterGreeting(sess)
		case IntentCancel:
			return e.enterCancel(sess)
		case IntentReschedule:
			return e.enterReschedule(sess)
		case IntentView:
			return e.enterView(sess)
		default:
			return e.enterIntentMenu(sess)
		}
	}

	e.metrics.ObserveTurn("in_flow")
	handler, ok := e.handlers[sess.State]
	if !ok {
		return "I'm not sure what to do. Type 'restart' to begin again."
	}
	return handler(ctx, sess, input)
}

// maybeSweep evicts idle sessions at a fixed call-count cadence instead of
// running a background timer.
func (e *Engine) maybeSweep() {
	if e.turns.Add(1)%e.sweepEvery != 0 {
		e.metrics.SetActiveSessions(e.sessions.Len())
		return
	}
	removed := e.sessions.SweepExpired(e.now(), e.ttl)
	remaining := e.sessions.Len()
	e.metrics.ObserveSweep(removed, remaining)
	if removed > 0 {
		e.logger.Info("sessions swept", "removed", removed, "remaining", remaining)
	}
}

// enterGreeting starts the booking flow with a time-of-day greeting.
func (e *Engine) enterGreeting(s *Session) string {
	s.State = StateGreeting
	var greeting string
	switch hour := e.now().Hour(); {
	case hour < 12:
		greeting = "Good morning"
	case hour < 18:
		greeting = "Good afternoon"
	default:
		greeting = "Good evening"
	}
	return fmt.Sprintf("%s, %s!\n\n"+
		"Welcome to %s - Your appointment assistant.\n"+
		"I'm here to help you book an appointment quickly and easily.\n"+
		"(Type 'cancel' anytime to exit)",
		greeting, s.UserName, e.clinicName)
}

// enterIntentMenu asks the user to clarify what they want.
func (e *Engine) enterIntentMenu(s *Session) string {
	s.State = StateIntentDetection
	return "Hello! I'm your clinic assistant.\n\n" +
		"What would you like to do?\n\n" +
		"1. Book a new appointment\n" +
		"2. Cancel an existing appointment\n" +
		"3. Reschedule an appointment\n" +
		"4. View my appointments\n\n" +
		"Please type the number or describe what you need:"
}

// handleIntentChoice resolves the user's answer to the intent menu.
func (e *Engine) handleIntentChoice(_ context.Context, s *Session, input string) string {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "1", "book", "booking", "schedule", "appointment":
		return e.enterGreeting(s)
	case "2", "cancellation":
		return e.enterCancel(s)
	case "3", "reschedule", "change":
		return e.enterReschedule(s)
	case "4", "view", "see", "show":
		return e.enterView(s)
	default:
		return "[ERROR] I didn't understand that option.\n\n" +
			"Please choose:\n" +
			"1. Book appointment\n" +
			"2. Cancel appointment\n" +
			"3. Reschedule appointment\n" +
			"4. View appointments"
	}
}

// mutableAppointments queries the gateway by the raw search key and keeps
// only appointments that can still be cancelled or moved.
func (e *Engine) mutableAppointments(ctx context.Context, key string) (found, mutable []clinic.Appointment) {
	found = e.gateway.FindAppointmentsByPatient(ctx, strings.TrimSpace(key))
	for _, a := range found {
		if a.Status.Mutable() {
			mutable = append(mutable, a)
		}
	}
	return found, mutable
}

// renderChoices lists appointments 1-indexed for selection.
func renderChoices(appointments []clinic.Appointment) string {
	var b strings.Builder
	for i, a := range appointments {
		fmt.Fprintf(&b, "%d. %s at %s - Dr. %s (%s)\n", i+1, a.Date, a.Time, a.DoctorName, a.ServiceType)
	}
	return b.String()
}
