package clinic

import (
	"context"
	"sync"
)

// Store persists appointments and reviews. internal/storage provides the
// SQLite implementation; MemoryStore backs tests and DB-less deployments.
type Store interface {
	SaveAppointment(ctx context.Context, a Appointment) error
	GetAppointment(ctx context.Context, id string) (Appointment, bool, error)
	UpdateAppointment(ctx context.Context, a Appointment) error
	ListAppointments(ctx context.Context) ([]Appointment, error)

	SaveReview(ctx context.Context, r Review) error
	ListReviews(ctx context.Context) ([]Review, error)
}

// MemoryStore keeps all records in process memory.
type MemoryStore struct {
	mu           sync.RWMutex
	appointments []Appointment
	reviews      []Review
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) SaveAppointment(_ context.Context, a Appointment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.appointments = append(m.appointments, a)
	return nil
}

func (m *MemoryStore) GetAppointment(_ context.Context, id string) (Appointment, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, a := range m.appointments {
		if a.ID == id {
			return a, true, nil
		}
	}
	return Appointment{}, false, nil
}

func (m *MemoryStore) UpdateAppointment(_ context.Context, a Appointment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.appointments {
		if m.appointments[i].ID == a.ID {
			m.appointments[i] = a
			return nil
		}
	}
	return nil
}

func (m *MemoryStore) ListAppointments(_ context.Context) ([]Appointment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Appointment, len(m.appointments))
	copy(out, m.appointments)
	return out, nil
}

func (m *MemoryStore) SaveReview(_ context.Context, r Review) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reviews = append(m.reviews, r)
	return nil
}

func (m *MemoryStore) ListReviews(_ context.Context) ([]Review, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Review, len(m.reviews))
	copy(out, m.reviews)
	return out, nil
}
