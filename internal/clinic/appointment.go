package clinic

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// AppointmentStatus tracks where an appointment sits in its lifecycle.
type AppointmentStatus string

const (
	StatusScheduled   AppointmentStatus = "Scheduled"
	StatusConfirmed   AppointmentStatus = "Confirmed"
	StatusInProgress  AppointmentStatus = "In Progress"
	StatusCompleted   AppointmentStatus = "Completed"
	StatusCancelled   AppointmentStatus = "Cancelled"
	StatusNoShow      AppointmentStatus = "No Show"
	StatusRescheduled AppointmentStatus = "Rescheduled"
)

// Mutable reports whether the appointment can still be cancelled or moved.
func (s AppointmentStatus) Mutable() bool {
	return s == StatusScheduled || s == StatusConfirmed
}

// ServiceType is a dental service offered by the clinic.
type ServiceType string

const (
	ServiceConsultation ServiceType = "Consultation"
	ServiceCleaning     ServiceType = "Cleaning"
	ServiceFilling      ServiceType = "Filling"
	ServiceRootCanal    ServiceType = "Root Canal"
	ServiceExtraction   ServiceType = "Extraction"
	ServiceOrthodontics ServiceType = "Orthodontics"
	ServiceWhitening    ServiceType = "Whitening"
	ServiceImplant      ServiceType = "Implant"
	ServiceCrown        ServiceType = "Crown"
	ServiceEmergency    ServiceType = "Emergency"
	ServiceOther        ServiceType = "Other"
)

// ServiceTypes returns every offered service in menu order.
func ServiceTypes() []ServiceType {
	return []ServiceType{
		ServiceConsultation,
		ServiceCleaning,
		ServiceFilling,
		ServiceRootCanal,
		ServiceExtraction,
		ServiceOrthodontics,
		ServiceWhitening,
		ServiceImplant,
		ServiceCrown,
		ServiceEmergency,
		ServiceOther,
	}
}

// ServiceNames returns the service menu as display strings.
func ServiceNames() []string {
	types := ServiceTypes()
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = string(t)
	}
	return names
}

const (
	// DefaultDurationMinutes is the slot length assigned to new appointments.
	DefaultDurationMinutes = 30
	minDurationMinutes     = 15
	maxDurationMinutes     = 180
	maxNotesLen            = 500
	maxReasonLen           = 200
	maxNameLen             = 100
	minPhoneLen            = 7
	maxPhoneLen            = 20
)

// Appointment is a scheduled clinic visit.
type Appointment struct {
	ID                 string
	PatientName        string
	PatientPhone       string
	DoctorName         string
	Date               string // YYYY-MM-DD
	Time               string // HH:MM
	ServiceType        ServiceType
	Status             AppointmentStatus
	Notes              string
	CreatedAt          time.Time
	ReminderSent       bool
	DurationMinutes    int
	CancellationReason string
}

// NewID returns a short 8-character identifier, the format used across all
// clinic records.
func NewID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}

// NewAppointment builds a Scheduled appointment with defaults applied.
func NewAppointment(patientName, patientPhone, doctorName, date, timeStr string, service ServiceType, notes string) Appointment {
	return Appointment{
		ID:              NewID(),
		PatientName:     patientName,
		PatientPhone:    patientPhone,
		DoctorName:      doctorName,
		Date:            date,
		Time:            timeStr,
		ServiceType:     service,
		Status:          StatusScheduled,
		Notes:           notes,
		CreatedAt:       time.Now(),
		DurationMinutes: DefaultDurationMinutes,
	}
}

// Validate checks field constraints before the appointment is persisted.
func (a *Appointment) Validate() error {
	if l := len(strings.TrimSpace(a.PatientName)); l < 1 || l > maxNameLen {
		return fmt.Errorf("clinic: patient name must be 1-%d characters", maxNameLen)
	}
	if l := len(strings.TrimSpace(a.PatientPhone)); l < minPhoneLen || l > maxPhoneLen {
		return fmt.Errorf("clinic: patient phone must be %d-%d characters", minPhoneLen, maxPhoneLen)
	}
	if l := len(strings.TrimSpace(a.DoctorName)); l < 1 || l > maxNameLen {
		return fmt.Errorf("clinic: doctor name must be 1-%d characters", maxNameLen)
	}
	if _, err := time.Parse("2006-01-02", a.Date); err != nil {
		return fmt.Errorf("clinic: date must be in YYYY-MM-DD format")
	}
	parsed, err := time.Parse("15:04", a.Time)
	if err != nil {
		return fmt.Errorf("clinic: time must be in HH:MM format")
	}
	if h := parsed.Hour(); h < 8 || h >= 20 {
		return fmt.Errorf("clinic: appointments must be scheduled between 08:00 and 20:00")
	}
	if len(a.Notes) > maxNotesLen {
		return fmt.Errorf("clinic: notes must not exceed %d characters", maxNotesLen)
	}
	if a.DurationMinutes < minDurationMinutes || a.DurationMinutes > maxDurationMinutes {
		return fmt.Errorf("clinic: duration must be %d-%d minutes", minDurationMinutes, maxDurationMinutes)
	}
	return nil
}

// DateTime combines the date and time fields into a single timestamp.
// A zero time means the fields are malformed.
func (a *Appointment) DateTime() time.Time {
	t, err := time.ParseInLocation("2006-01-02 15:04", a.Date+" "+a.Time, time.Local)
	if err != nil {
		return time.Time{}
	}
	return t
}

// IsUpcoming reports whether the appointment is in the future.
func (a *Appointment) IsUpcoming() bool {
	return a.DateTime().After(time.Now())
}

// IsOverdue reports whether the appointment time passed without completion.
func (a *Appointment) IsOverdue() bool {
	if a.Status == StatusCompleted {
		return false
	}
	dt := a.DateTime()
	return !dt.IsZero() && dt.Before(time.Now())
}

// RemindSoon reports whether the appointment starts within the next 24 hours.
func (a *Appointment) RemindSoon() bool {
	until := time.Until(a.DateTime())
	return until > 0 && until <= 24*time.Hour
}

// Confirm moves a scheduled appointment to Confirmed.
func (a *Appointment) Confirm() {
	if a.Status == StatusScheduled {
		a.Status = StatusConfirmed
	}
}

// Cancel marks the appointment cancelled unless it already finished.
func (a *Appointment) Cancel(reason string) {
	if a.Status == StatusCompleted || a.Status == StatusCancelled {
		return
	}
	if reason == "" {
		reason = "No reason provided"
	}
	if len(reason) > maxReasonLen {
		reason = reason[:maxReasonLen]
	}
	a.Status = StatusCancelled
	a.CancellationReason = reason
}

// MarkCompleted completes an appointment whose time has passed.
func (a *Appointment) MarkCompleted() {
	if a.IsOverdue() {
		a.Status = StatusCompleted
	}
}

func (a *Appointment) String() string {
	return fmt.Sprintf("Appointment: %s with Dr. %s on %s at %s (%s)",
		a.PatientName, a.DoctorName, a.Date, a.Time, a.Status)
}
