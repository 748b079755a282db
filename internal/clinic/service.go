package clinic

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/wolfman30/clinic-assistant/pkg/logging"
)

// BookingRequest carries the fields collected by the conversation engine.
type BookingRequest struct {
	PatientName  string
	PatientPhone string
	DoctorName   string
	Date         string
	Time         string
	ServiceType  string
	Notes        string
}

// Service is the clinic's appointment, doctor, patient, and review registry.
// It implements the gateway interface the conversation engine depends on.
type Service struct {
	mu       sync.RWMutex
	doctors  []Doctor
	patients []Patient
	store    Store
	logger   *logging.Logger
}

// NewService creates a clinic service on top of the given store.
func NewService(store Store, logger *logging.Logger) *Service {
	if store == nil {
		store = NewMemoryStore()
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{store: store, logger: logger.Component("clinic")}
}

// ---- Doctors ----

// AddDoctor registers a doctor. License numbers are unique.
func (s *Service) AddDoctor(d Doctor) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.doctors {
		if existing.LicenseNumber == d.LicenseNumber {
			return fmt.Errorf("clinic: duplicate license number %s", d.LicenseNumber)
		}
	}
	if d.ID == "" {
		d.ID = NewID()
	}
	if d.CreatedAt.IsZero() {
		d.CreatedAt = time.Now()
	}
	if d.PatientRating == 0 {
		d.PatientRating = 5.0
	}
	s.doctors = append(s.doctors, d)
	s.logger.Info("doctor added", "name", d.FullName(), "specialty", d.Specialty)
	return nil
}

// ListDoctors returns all registered doctors.
func (s *Service) ListDoctors(_ context.Context) []Doctor {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Doctor, len(s.doctors))
	copy(out, s.doctors)
	return out
}

// FindDoctors matches doctors by name or license substring.
func (s *Service) FindDoctors(term string) []Doctor {
	term = strings.ToLower(strings.TrimSpace(term))
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Doctor
	for _, d := range s.doctors {
		if strings.Contains(strings.ToLower(d.FirstName), term) ||
			strings.Contains(strings.ToLower(d.LastName), term) ||
			strings.Contains(strings.ToLower(d.LicenseNumber), term) {
			out = append(out, d)
		}
	}
	return out
}

// FindDoctorByName resolves a patient-typed doctor name to a registered
// doctor. Full-name and single-name matches are accepted, case-insensitive.
func (s *Service) FindDoctorByName(_ context.Context, name string) (Doctor, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	name = strings.TrimSpace(strings.TrimPrefix(name, "dr. "))
	if name == "" {
		return Doctor{}, false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, d := range s.doctors {
		full := strings.ToLower(d.FullName())
		if full == name ||
			strings.ToLower(d.FirstName) == name ||
			strings.ToLower(d.LastName) == name ||
			strings.Contains(full, name) {
			return d, true
		}
	}
	return Doctor{}, false
}

// ---- Patients ----

// AddPatient registers a patient. The same name and age pair is rejected.
func (s *Service) AddPatient(p Patient) error {
	if err := p.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.patients {
		if existing.FullName() == p.FullName() && existing.Age == p.Age {
			return fmt.Errorf("clinic: patient %s already registered", p.FullName())
		}
	}
	if p.ID == "" {
		p.ID = NewID()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	s.patients = append(s.patients, p)
	s.logger.Info("patient registered", "name", p.FullName())
	return nil
}

// ListPatients returns all registered patients.
func (s *Service) ListPatients() []Patient {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Patient, len(s.patients))
	copy(out, s.patients)
	return out
}

// FindPatients matches patients by name or phone substring.
func (s *Service) FindPatients(term string) []Patient {
	term = strings.ToLower(strings.TrimSpace(term))
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Patient
	for _, p := range s.patients {
		if strings.Contains(strings.ToLower(p.FirstName), term) ||
			strings.Contains(strings.ToLower(p.LastName), term) ||
			strings.Contains(strings.ToLower(p.Phone), term) {
			out = append(out, p)
		}
	}
	return out
}

// ---- Appointments (the conversation engine's gateway operations) ----

// FindAppointmentsByPatient matches appointments whose patient name or phone
// contains the search key.
func (s *Service) FindAppointmentsByPatient(ctx context.Context, key string) []Appointment {
	key = strings.ToLower(strings.TrimSpace(key))
	if key == "" {
		return nil
	}
	all, err := s.store.ListAppointments(ctx)
	if err != nil {
		s.logger.Error("appointment lookup failed", "error", err)
		return nil
	}
	var out []Appointment
	for _, a := range all {
		if strings.Contains(strings.ToLower(a.PatientName), key) ||
			strings.Contains(strings.ToLower(a.PatientPhone), key) {
			out = append(out, a)
		}
	}
	return out
}

// CreateAppointment validates and persists a new appointment. On success the
// returned message is the appointment ID; on failure it explains the problem.
func (s *Service) CreateAppointment(ctx context.Context, req BookingRequest) (bool, string) {
	appt := NewAppointment(
		strings.TrimSpace(req.PatientName),
		strings.TrimSpace(req.PatientPhone),
		strings.TrimSpace(req.DoctorName),
		strings.TrimSpace(req.Date),
		strings.TrimSpace(req.Time),
		ServiceType(req.ServiceType),
		req.Notes,
	)
	if err := appt.Validate(); err != nil {
		return false, err.Error()
	}
	if appt.DoctorName != "Any" && s.doctorBooked(ctx, appt.DoctorName, appt.Date, appt.Time) {
		return false, fmt.Sprintf("Dr. %s is already booked on %s at %s", appt.DoctorName, appt.Date, appt.Time)
	}
	if err := s.store.SaveAppointment(ctx, appt); err != nil {
		s.logger.Error("appointment save failed", "error", err)
		return false, "could not save the appointment"
	}
	s.logger.Info("appointment booked",
		"id", appt.ID, "patient", appt.PatientName, "doctor", appt.DoctorName,
		"date", appt.Date, "time", appt.Time, "service", appt.ServiceType)
	return true, appt.ID
}

// doctorBooked reports whether the doctor already has a live appointment in
// the same slot.
func (s *Service) doctorBooked(ctx context.Context, doctor, date, timeStr string) bool {
	all, err := s.store.ListAppointments(ctx)
	if err != nil {
		return false
	}
	for _, a := range all {
		if a.DoctorName == doctor && a.Date == date && a.Time == timeStr && a.Status.Mutable() {
			return true
		}
	}
	return false
}

// CancelAppointment cancels a live appointment by ID.
func (s *Service) CancelAppointment(ctx context.Context, id, reason string) bool {
	appt, found, err := s.store.GetAppointment(ctx, id)
	if err != nil || !found {
		return false
	}
	if !appt.Status.Mutable() {
		return false
	}
	appt.Cancel(reason)
	if err := s.store.UpdateAppointment(ctx, appt); err != nil {
		s.logger.Error("appointment cancel failed", "id", id, "error", err)
		return false
	}
	s.logger.Info("appointment cancelled", "id", id, "reason", reason)
	return true
}

// RescheduleAppointment moves a live appointment to a new date and time.
func (s *Service) RescheduleAppointment(ctx context.Context, id, newDate, newTime string) bool {
	appt, found, err := s.store.GetAppointment(ctx, id)
	if err != nil || !found {
		return false
	}
	if !appt.Status.Mutable() {
		return false
	}
	appt.Date = newDate
	appt.Time = newTime
	if err := appt.Validate(); err != nil {
		return false
	}
	if err := s.store.UpdateAppointment(ctx, appt); err != nil {
		s.logger.Error("appointment reschedule failed", "id", id, "error", err)
		return false
	}
	s.logger.Info("appointment rescheduled", "id", id, "date", newDate, "time", newTime)
	return true
}

// ---- Reviews ----

// AddReview stores a validated review and refreshes the doctor's rating.
func (s *Service) AddReview(ctx context.Context, r Review) error {
	if err := r.Validate(); err != nil {
		return err
	}
	if err := s.store.SaveReview(ctx, r); err != nil {
		return fmt.Errorf("clinic: save review: %w", err)
	}
	s.refreshRating(ctx, r.DoctorName)
	return nil
}

// ReviewsForDoctor returns all reviews for the named doctor.
func (s *Service) ReviewsForDoctor(ctx context.Context, doctorName string) []Review {
	all, err := s.store.ListReviews(ctx)
	if err != nil {
		s.logger.Error("review lookup failed", "error", err)
		return nil
	}
	var out []Review
	for _, r := range all {
		if strings.EqualFold(r.DoctorName, doctorName) {
			out = append(out, r)
		}
	}
	return out
}

// refreshRating recomputes a doctor's average rating from stored reviews.
func (s *Service) refreshRating(ctx context.Context, doctorName string) {
	reviews := s.ReviewsForDoctor(ctx, doctorName)
	if len(reviews) == 0 {
		return
	}
	var sum int
	for _, r := range reviews {
		sum += r.Rating
	}
	avg := float64(sum) / float64(len(reviews))
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.doctors {
		if strings.EqualFold(s.doctors[i].FullName(), doctorName) {
			s.doctors[i].PatientRating = avg
			return
		}
	}
}

// ---- Stats ----

// Stats is a summary of clinic volume.
type Stats struct {
	TotalDoctors      int `json:"total_doctors"`
	TotalPatients     int `json:"total_patients"`
	TotalAppointments int `json:"total_appointments"`
	TotalReviews      int `json:"total_reviews"`
}

// GetStats returns registry and store counts.
func (s *Service) GetStats(ctx context.Context) Stats {
	appointments, _ := s.store.ListAppointments(ctx)
	reviews, _ := s.store.ListReviews(ctx)
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Stats{
		TotalDoctors:      len(s.doctors),
		TotalPatients:     len(s.patients),
		TotalAppointments: len(appointments),
		TotalReviews:      len(reviews),
	}
}
