package clinic

// SeedDoctors loads a sample roster so the assistant has doctors to offer
// out of the box. Duplicate licenses are skipped, so seeding is idempotent
// within a process.
func SeedDoctors(s *Service) {
	roster := []Doctor{
		{FirstName: "John", LastName: "Smith", LicenseNumber: "DDS-1001", Phone: "+1-555-0201", Specialty: SpecialtyGeneral, PatientRating: 4.8},
		{FirstName: "Maria", LastName: "Garcia", LicenseNumber: "DDS-1002", Phone: "+1-555-0202", Specialty: SpecialtyOrthodontist, PatientRating: 4.9},
		{FirstName: "David", LastName: "Chen", LicenseNumber: "DDS-1003", Phone: "+1-555-0203", Specialty: SpecialtyPediatric, PatientRating: 4.7},
		{FirstName: "Sarah", LastName: "Johnson", LicenseNumber: "DDS-1004", Phone: "+1-555-0204", Specialty: SpecialtySurgeon, PatientRating: 4.6},
		{FirstName: "Ahmed", LastName: "Hassan", LicenseNumber: "DDS-1005", Phone: "+1-555-0205", Specialty: SpecialtyGeneral, PatientRating: 4.9},
	}
	for _, d := range roster {
		_ = s.AddDoctor(d)
	}
}
