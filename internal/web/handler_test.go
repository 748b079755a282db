package web

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wolfman30/clinic-assistant/internal/clinic"
)

type fakeAssistant struct {
	lastUser    string
	lastMessage string
	reply       string
}

func (f *fakeAssistant) Process(_ context.Context, userName, input string) string {
	f.lastUser = userName
	f.lastMessage = input
	return f.reply
}

type fakeDirectory struct {
	appointments []clinic.Appointment
	doctors      []clinic.Doctor
	stats        clinic.Stats
}

func (f *fakeDirectory) FindAppointmentsByPatient(_ context.Context, key string) []clinic.Appointment {
	var out []clinic.Appointment
	for _, a := range f.appointments {
		if strings.EqualFold(a.PatientName, key) {
			out = append(out, a)
		}
	}
	return out
}

func (f *fakeDirectory) ListDoctors(_ context.Context) []clinic.Doctor { return f.doctors }

func (f *fakeDirectory) GetStats(_ context.Context) clinic.Stats { return f.stats }

func newTestServer(assistant *fakeAssistant, directory *fakeDirectory) http.Handler {
	return NewRouter(RouterConfig{
		Handler: NewHandler(assistant, directory, nil),
	})
}

func TestChat(t *testing.T) {
	assistant := &fakeAssistant{reply: "Good morning, Alice!"}
	srv := newTestServer(assistant, &fakeDirectory{})

	body := strings.NewReader(`{"user": "Alice", "message": "book an appointment"}`)
	req := httptest.NewRequest(http.MethodPost, "/chat", body)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp ChatResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "Alice", resp.User)
	assert.Equal(t, "Good morning, Alice!", resp.Reply)
	assert.Equal(t, "Alice", assistant.lastUser)
	assert.Equal(t, "book an appointment", assistant.lastMessage)
}

func TestChatAnonymousUserBecomesGuest(t *testing.T) {
	assistant := &fakeAssistant{reply: "Hello!"}
	srv := newTestServer(assistant, &fakeDirectory{})

	req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(`{"message": "hi"}`))
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp ChatResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "Guest", resp.User)
}

func TestChatBadRequests(t *testing.T) {
	srv := newTestServer(&fakeAssistant{}, &fakeDirectory{})

	cases := []struct {
		name string
		body string
	}{
		{"invalid json", `{"user": `},
		{"empty message", `{"user": "Alice", "message": "  "}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(tc.body))
			rec := httptest.NewRecorder()
			srv.ServeHTTP(rec, req)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestHealth(t *testing.T) {
	srv := newTestServer(&fakeAssistant{}, &fakeDirectory{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status": "ok"}`, rec.Body.String())
}

func TestListAppointments(t *testing.T) {
	directory := &fakeDirectory{appointments: []clinic.Appointment{
		{ID: "a1b2c3d4", PatientName: "Alice", DoctorName: "John Smith", Date: "2026-07-01", Time: "10:00",
			ServiceType: clinic.ServiceCleaning, Status: clinic.StatusScheduled},
	}}
	srv := newTestServer(&fakeAssistant{}, directory)

	req := httptest.NewRequest(http.MethodGet, "/appointments?patient=alice", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var got []clinic.Appointment
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	require.Len(t, got, 1)
	assert.Equal(t, "a1b2c3d4", got[0].ID)
}

func TestListAppointmentsRequiresPatient(t *testing.T) {
	srv := newTestServer(&fakeAssistant{}, &fakeDirectory{})

	req := httptest.NewRequest(http.MethodGet, "/appointments", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListAppointmentsEmptyIsArray(t *testing.T) {
	srv := newTestServer(&fakeAssistant{}, &fakeDirectory{})

	req := httptest.NewRequest(http.MethodGet, "/appointments?patient=nobody", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]\n", rec.Body.String())
}

func TestListDoctors(t *testing.T) {
	directory := &fakeDirectory{doctors: []clinic.Doctor{
		{FirstName: "John", LastName: "Smith", Specialty: clinic.SpecialtyGeneral, PatientRating: 4.8},
	}}
	srv := newTestServer(&fakeAssistant{}, directory)

	req := httptest.NewRequest(http.MethodGet, "/doctors", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var got []clinic.Doctor
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	require.Len(t, got, 1)
	assert.Equal(t, "John Smith", got[0].FullName())
}

func TestStats(t *testing.T) {
	directory := &fakeDirectory{stats: clinic.Stats{
		TotalDoctors:      5,
		TotalPatients:     2,
		TotalAppointments: 7,
		TotalReviews:      3,
	}}
	srv := newTestServer(&fakeAssistant{}, directory)

	req := httptest.NewRequest(http.MethodGet, "/stats", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var got clinic.Stats
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, directory.stats, got)
}
