// Package storage provides the SQLite-backed clinic store.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/wolfman30/clinic-assistant/internal/clinic"
)

// CurrentSchemaVersion is the latest schema version.
// Bump this when adding migrations.
const CurrentSchemaVersion = 1

// Store persists appointments and reviews in a single SQLite file.
// It implements clinic.Store.
type Store struct {
	db *sql.DB
}

// Open initializes the SQLite database at path, creating parent directories
// and applying migrations as needed.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("storage: create directory: %w", err)
		}
	}

	// Pragmas in the DSN apply to every pooled connection.
	dsn := path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("storage: open database: %w", err)
	}
	if err := migrate(db); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate applies schema migrations based on user_version.
func migrate(db *sql.DB) error {
	var version int
	if err := db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("storage: read user_version: %w", err)
	}

	if version < 1 {
		schema := `
		CREATE TABLE IF NOT EXISTS appointments (
		  id              TEXT PRIMARY KEY,
		  patient_name    TEXT NOT NULL,
		  patient_phone   TEXT NOT NULL,
		  doctor_name     TEXT NOT NULL,
		  date            TEXT NOT NULL,
		  time            TEXT NOT NULL,
		  service_type    TEXT NOT NULL,
		  status          TEXT NOT NULL,
		  notes           TEXT,
		  created_at      INTEGER NOT NULL,
		  reminder_sent   INTEGER NOT NULL DEFAULT 0,
		  duration_mins   INTEGER NOT NULL DEFAULT 30,
		  cancel_reason   TEXT
		);
		CREATE INDEX IF NOT EXISTS idx_appointments_patient ON appointments(patient_name);
		CREATE TABLE IF NOT EXISTS reviews (
		  id             TEXT PRIMARY KEY,
		  patient_name   TEXT NOT NULL,
		  doctor_name    TEXT NOT NULL,
		  rating         INTEGER NOT NULL,
		  comment        TEXT NOT NULL,
		  is_anonymous   INTEGER NOT NULL DEFAULT 0,
		  created_at     INTEGER NOT NULL,
		  helpful_count  INTEGER NOT NULL DEFAULT 0
		);
		PRAGMA user_version = 1;`
		if _, err := db.Exec(schema); err != nil {
			return fmt.Errorf("storage: apply schema v1: %w", err)
		}
	}
	return nil
}

// SaveAppointment inserts a new appointment row.
func (s *Store) SaveAppointment(ctx context.Context, a clinic.Appointment) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO appointments (
			id, patient_name, patient_phone, doctor_name, date, time,
			service_type, status, notes, created_at, reminder_sent,
			duration_mins, cancel_reason
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, a.ID, a.PatientName, a.PatientPhone, a.DoctorName, a.Date, a.Time,
		string(a.ServiceType), string(a.Status), a.Notes, a.CreatedAt.Unix(),
		boolToInt(a.ReminderSent), a.DurationMinutes, a.CancellationReason)
	if err != nil {
		return fmt.Errorf("storage: insert appointment: %w", err)
	}
	return nil
}

// GetAppointment loads one appointment by ID.
func (s *Store) GetAppointment(ctx context.Context, id string) (clinic.Appointment, bool, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, patient_name, patient_phone, doctor_name, date, time,
		       service_type, status, COALESCE(notes, ''), created_at,
		       reminder_sent, duration_mins, COALESCE(cancel_reason, '')
		FROM appointments WHERE id = ?
	`, id)
	a, err := scanAppointment(row)
	if err == sql.ErrNoRows {
		return clinic.Appointment{}, false, nil
	}
	if err != nil {
		return clinic.Appointment{}, false, fmt.Errorf("storage: get appointment: %w", err)
	}
	return a, true, nil
}

// UpdateAppointment rewrites the mutable appointment columns.
func (s *Store) UpdateAppointment(ctx context.Context, a clinic.Appointment) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE appointments SET
			date = ?, time = ?, status = ?, notes = ?,
			reminder_sent = ?, cancel_reason = ?
		WHERE id = ?
	`, a.Date, a.Time, string(a.Status), a.Notes,
		boolToInt(a.ReminderSent), a.CancellationReason, a.ID)
	if err != nil {
		return fmt.Errorf("storage: update appointment: %w", err)
	}
	return nil
}

// ListAppointments returns every appointment ordered by creation.
func (s *Store) ListAppointments(ctx context.Context) ([]clinic.Appointment, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, patient_name, patient_phone, doctor_name, date, time,
		       service_type, status, COALESCE(notes, ''), created_at,
		       reminder_sent, duration_mins, COALESCE(cancel_reason, '')
		FROM appointments ORDER BY created_at ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("storage: list appointments: %w", err)
	}
	defer rows.Close()

	var out []clinic.Appointment
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: scan appointment: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// SaveReview inserts a new review row.
func (s *Store) SaveReview(ctx context.Context, r clinic.Review) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO reviews (
			id, patient_name, doctor_name, rating, comment,
			is_anonymous, created_at, helpful_count
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, r.ID, r.PatientName, r.DoctorName, r.Rating, r.Comment,
		boolToInt(r.IsAnonymous), r.CreatedAt.Unix(), r.HelpfulCount)
	if err != nil {
		return fmt.Errorf("storage: insert review: %w", err)
	}
	return nil
}

// ListReviews returns every review ordered by creation.
func (s *Store) ListReviews(ctx context.Context) ([]clinic.Review, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, patient_name, doctor_name, rating, comment,
		       is_anonymous, created_at, helpful_count
		FROM reviews ORDER BY created_at ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("storage: list reviews: %w", err)
	}
	defer rows.Close()

	var out []clinic.Review
	for rows.Next() {
		var r clinic.Review
		var anonymous int
		var createdAt int64
		if err := rows.Scan(&r.ID, &r.PatientName, &r.DoctorName, &r.Rating,
			&r.Comment, &anonymous, &createdAt, &r.HelpfulCount); err != nil {
			return nil, fmt.Errorf("storage: scan review: %w", err)
		}
		r.IsAnonymous = anonymous != 0
		r.CreatedAt = time.Unix(createdAt, 0)
		out = append(out, r)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAppointment(row rowScanner) (clinic.Appointment, error) {
	var a clinic.Appointment
	var service, status string
	var createdAt int64
	var reminderSent int
	err := row.Scan(&a.ID, &a.PatientName, &a.PatientPhone, &a.DoctorName,
		&a.Date, &a.Time, &service, &status, &a.Notes, &createdAt,
		&reminderSent, &a.DurationMinutes, &a.CancellationReason)
	if err != nil {
		return clinic.Appointment{}, err
	}
	a.ServiceType = clinic.ServiceType(service)
	a.Status = clinic.AppointmentStatus(status)
	a.CreatedAt = time.Unix(createdAt, 0)
	a.ReminderSent = reminderSent != 0
	return a, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
