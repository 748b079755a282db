package conversation

// State identifies where a session sits in the conversation.
type State int

const (
	StateStart State = iota
	StateIntentDetection
	StateGreeting
	StateProblemAssessment
	StateServiceSelection
	StateDateSelection
	StateTimeSelection
	StatePhoneCollection
	StateDoctorSelection
	StateConfirmation
	StateBookingComplete
	StateCancelStart
	StateCancelConfirmation
	StateRescheduleStart
	StateRescheduleAppointmentSelection
	StateRescheduleDateSelection
	StateRescheduleTimeSelection
	StateRescheduleConfirmation
	StateViewStart
	StateViewResults
)

var stateNames = map[State]string{
	StateStart:                          "start",
	StateIntentDetection:                "intent_detection",
	StateGreeting:                       "greeting",
	StateProblemAssessment:              "problem_assessment",
	StateServiceSelection:               "service_selection",
	StateDateSelection:                  "date_selection",
	StateTimeSelection:                  "time_selection",
	StatePhoneCollection:                "phone_collection",
	StateDoctorSelection:                "doctor_selection",
	StateConfirmation:                   "confirmation",
	StateBookingComplete:                "booking_complete",
	StateCancelStart:                    "cancel_start",
	StateCancelConfirmation:             "cancel_confirmation",
	StateRescheduleStart:                "reschedule_start",
	StateRescheduleAppointmentSelection: "reschedule_appointment_selection",
	StateRescheduleDateSelection:        "reschedule_date_selection",
	StateRescheduleTimeSelection:        "reschedule_time_selection",
	StateRescheduleConfirmation:         "reschedule_confirmation",
	StateViewStart:                      "view_start",
	StateViewResults:                    "view_results",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "unknown"
}
