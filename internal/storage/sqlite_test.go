package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wolfman30/clinic-assistant/internal/clinic"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "clinic.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleAppointment() clinic.Appointment {
	date := time.Now().AddDate(0, 0, 5).Format("2006-01-02")
	return clinic.NewAppointment("Alice Brown", "+1-555-0100", "John Smith", date, "14:00", clinic.ServiceCleaning, "Patient reported: tooth pain")
}

func TestAppointmentRoundTrip(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	want := sampleAppointment()
	require.NoError(t, store.SaveAppointment(ctx, want))

	got, found, err := store.GetAppointment(ctx, want.ID)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, want.ID, got.ID)
	assert.Equal(t, want.PatientName, got.PatientName)
	assert.Equal(t, want.PatientPhone, got.PatientPhone)
	assert.Equal(t, want.Date, got.Date)
	assert.Equal(t, want.Time, got.Time)
	assert.Equal(t, want.ServiceType, got.ServiceType)
	assert.Equal(t, clinic.StatusScheduled, got.Status)
	assert.Equal(t, want.Notes, got.Notes)
	assert.Equal(t, clinic.DefaultDurationMinutes, got.DurationMinutes)
}

func TestGetAppointmentMissing(t *testing.T) {
	store := openTestStore(t)
	_, found, err := store.GetAppointment(context.Background(), "nope1234")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestUpdateAppointment(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	appt := sampleAppointment()
	require.NoError(t, store.SaveAppointment(ctx, appt))

	appt.Cancel("patient request")
	require.NoError(t, store.UpdateAppointment(ctx, appt))

	got, found, err := store.GetAppointment(ctx, appt.ID)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, clinic.StatusCancelled, got.Status)
	assert.Equal(t, "patient request", got.CancellationReason)
}

func TestListAppointmentsOrder(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	first := sampleAppointment()
	first.CreatedAt = time.Now().Add(-time.Hour)
	second := sampleAppointment()
	second.PatientName = "Bob Stone"
	require.NoError(t, store.SaveAppointment(ctx, first))
	require.NoError(t, store.SaveAppointment(ctx, second))

	all, err := store.ListAppointments(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Alice Brown", all[0].PatientName)
	assert.Equal(t, "Bob Stone", all[1].PatientName)
}

func TestReviewRoundTrip(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	want := clinic.NewReview("Alice Brown", "John Smith", 4, "Very gentle and thorough.", true)
	require.NoError(t, store.SaveReview(ctx, want))

	all, err := store.ListReviews(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, want.ID, all[0].ID)
	assert.Equal(t, 4, all[0].Rating)
	assert.True(t, all[0].IsAnonymous)
	assert.Equal(t, "Very gentle and thorough.", all[0].Comment)
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clinic.db")
	store, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, store.SaveAppointment(context.Background(), sampleAppointment()))
	require.NoError(t, store.Close())

	// Reopening must keep existing data and not re-run migrations destructively.
	store, err = Open(path)
	require.NoError(t, err)
	defer store.Close()
	all, err := store.ListAppointments(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
