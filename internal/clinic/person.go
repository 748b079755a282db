package clinic

import (
	"fmt"
	"strings"
	"time"
)

// Specialty is a doctor's area of practice.
type Specialty string

const (
	SpecialtyGeneral      Specialty = "General"
	SpecialtyOrthodontist Specialty = "Orthodontist"
	SpecialtyPediatric    Specialty = "Pediatric"
	SpecialtySurgeon      Specialty = "Oral Surgeon"
)

// Specialties returns all doctor specialties in menu order.
func Specialties() []Specialty {
	return []Specialty{SpecialtyGeneral, SpecialtyOrthodontist, SpecialtyPediatric, SpecialtySurgeon}
}

// Gender of a patient record.
type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
	GenderOther  Gender = "Other"
)

// Genders returns the patient gender options in menu order.
func Genders() []Gender {
	return []Gender{GenderMale, GenderFemale, GenderOther}
}

// Doctor is a clinic practitioner. Person fields are flattened into the
// record; doctors are read-mostly references consumed by the engine.
type Doctor struct {
	ID            string
	FirstName     string
	LastName      string
	Phone         string
	Email         string
	LicenseNumber string
	Specialty     Specialty
	PatientRating float64
	CreatedAt     time.Time
}

// FullName joins first and last name for display.
func (d Doctor) FullName() string {
	return strings.TrimSpace(d.FirstName + " " + d.LastName)
}

// EmergencyContact is who the clinic calls when a patient cannot be reached.
type EmergencyContact struct {
	FirstName    string
	LastName     string
	Phone        string
	Email        string
	Relationship string
}

// Patient is a registered clinic patient.
type Patient struct {
	ID               string
	FirstName        string
	LastName         string
	Phone            string
	Email            string
	Age              int
	Gender           Gender
	BloodType        string
	MedicalHistory   []string
	EmergencyContact *EmergencyContact
	CreatedAt        time.Time
}

// FullName joins first and last name for display.
func (p Patient) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

// Validate checks patient field constraints.
func (p *Patient) Validate() error {
	if strings.TrimSpace(p.FirstName) == "" || strings.TrimSpace(p.LastName) == "" {
		return fmt.Errorf("clinic: patient name is required")
	}
	if p.Age <= 0 || p.Age >= 150 {
		return fmt.Errorf("clinic: age must be between 1 and 149")
	}
	switch p.Gender {
	case GenderMale, GenderFemale, GenderOther:
	default:
		return fmt.Errorf("clinic: unknown gender %q", p.Gender)
	}
	return nil
}
