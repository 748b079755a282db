package clinic

import (
	"strings"
	"testing"
	"time"
)

func futureDate(days int) string {
	return time.Now().AddDate(0, 0, days).Format("2006-01-02")
}

func validAppointment() Appointment {
	return NewAppointment("Alice Brown", "+1-555-0100", "John Smith", futureDate(5), "14:00", ServiceCleaning, "")
}

func TestNewAppointmentDefaults(t *testing.T) {
	a := validAppointment()
	if a.Status != StatusScheduled {
		t.Errorf("status = %s, want Scheduled", a.Status)
	}
	if a.DurationMinutes != DefaultDurationMinutes {
		t.Errorf("duration = %d, want %d", a.DurationMinutes, DefaultDurationMinutes)
	}
	if len(a.ID) != 8 {
		t.Errorf("id = %q, want 8 characters", a.ID)
	}
}

func TestAppointmentValidate(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*Appointment)
		wantErr string
	}{
		{"valid", func(a *Appointment) {}, ""},
		{"empty patient", func(a *Appointment) { a.PatientName = " " }, "patient name"},
		{"long patient", func(a *Appointment) { a.PatientName = strings.Repeat("x", 101) }, "patient name"},
		{"short phone", func(a *Appointment) { a.PatientPhone = "123" }, "phone"},
		{"empty doctor", func(a *Appointment) { a.DoctorName = "" }, "doctor name"},
		{"bad date", func(a *Appointment) { a.Date = "12/25/2026" }, "YYYY-MM-DD"},
		{"bad time", func(a *Appointment) { a.Time = "2pm" }, "HH:MM"},
		{"before hours", func(a *Appointment) { a.Time = "07:00" }, "between 08:00 and 20:00"},
		{"after hours", func(a *Appointment) { a.Time = "20:00" }, "between 08:00 and 20:00"},
		{"long notes", func(a *Appointment) { a.Notes = strings.Repeat("n", 501) }, "notes"},
		{"short duration", func(a *Appointment) { a.DurationMinutes = 10 }, "duration"},
		{"long duration", func(a *Appointment) { a.DurationMinutes = 200 }, "duration"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			a := validAppointment()
			tc.mutate(&a)
			err := a.Validate()
			if tc.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("error = %v, want containing %q", err, tc.wantErr)
			}
		})
	}
}

func TestAppointmentLifecycle(t *testing.T) {
	a := validAppointment()

	a.Confirm()
	if a.Status != StatusConfirmed {
		t.Fatalf("status after confirm = %s, want Confirmed", a.Status)
	}

	a.Cancel("patient request")
	if a.Status != StatusCancelled {
		t.Fatalf("status after cancel = %s, want Cancelled", a.Status)
	}
	if a.CancellationReason != "patient request" {
		t.Errorf("reason = %q", a.CancellationReason)
	}

	// Cancelling again must not clobber the reason.
	a.Cancel("second attempt")
	if a.CancellationReason != "patient request" {
		t.Errorf("reason overwritten: %q", a.CancellationReason)
	}
}

func TestCancelCompletedIsNoOp(t *testing.T) {
	a := validAppointment()
	a.Status = StatusCompleted
	a.Cancel("too late")
	if a.Status != StatusCompleted {
		t.Fatalf("completed appointment was cancelled")
	}
}

func TestCancelDefaultReason(t *testing.T) {
	a := validAppointment()
	a.Cancel("")
	if a.CancellationReason != "No reason provided" {
		t.Errorf("reason = %q", a.CancellationReason)
	}
}

func TestRemindSoon(t *testing.T) {
	soon := time.Now().Add(3 * time.Hour)
	a := validAppointment()
	a.Date = soon.Format("2006-01-02")
	a.Time = soon.Format("15:04")
	if !a.RemindSoon() {
		t.Errorf("appointment in 3h should be in the reminder window")
	}

	far := validAppointment()
	far.Date = futureDate(10)
	if far.RemindSoon() {
		t.Errorf("appointment in 10 days should not be in the reminder window")
	}
}

func TestDateTimeAndUpcoming(t *testing.T) {
	a := validAppointment()
	dt := a.DateTime()
	if dt.IsZero() {
		t.Fatalf("DateTime returned zero for valid fields")
	}
	if !a.IsUpcoming() {
		t.Errorf("future appointment reported as not upcoming")
	}

	a.Date = "not-a-date"
	if !a.DateTime().IsZero() {
		t.Errorf("DateTime should be zero for malformed fields")
	}
}

func TestStatusMutable(t *testing.T) {
	mutable := []AppointmentStatus{StatusScheduled, StatusConfirmed}
	frozen := []AppointmentStatus{StatusInProgress, StatusCompleted, StatusCancelled, StatusNoShow, StatusRescheduled}
	for _, s := range mutable {
		if !s.Mutable() {
			t.Errorf("%s should be mutable", s)
		}
	}
	for _, s := range frozen {
		if s.Mutable() {
			t.Errorf("%s should not be mutable", s)
		}
	}
}
