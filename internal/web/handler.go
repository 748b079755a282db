// Package web exposes the assistant over HTTP: a chat endpoint driving the
// conversation engine plus read-only clinic lookups.
package web

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/wolfman30/clinic-assistant/internal/clinic"
	"github.com/wolfman30/clinic-assistant/pkg/logging"
)

// Assistant is the conversational collaborator behind the chat endpoint.
type Assistant interface {
	Process(ctx context.Context, userName, input string) string
}

// Directory serves the read-only clinic lookups.
type Directory interface {
	FindAppointmentsByPatient(ctx context.Context, key string) []clinic.Appointment
	ListDoctors(ctx context.Context) []clinic.Doctor
	GetStats(ctx context.Context) clinic.Stats
}

// Handler provides the assistant's HTTP endpoints.
type Handler struct {
	assistant Assistant
	directory Directory
	logger    *logging.Logger
}

// NewHandler creates the HTTP handler around the engine and clinic service.
func NewHandler(assistant Assistant, directory Directory, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		assistant: assistant,
		directory: directory,
		logger:    logger.Component("web"),
	}
}

// ChatRequest is one user turn.
type ChatRequest struct {
	User    string `json:"user"`
	Message string `json:"message"`
}

// ChatResponse carries the assistant's reply.
type ChatResponse struct {
	User  string `json:"user"`
	Reply string `json:"reply"`
}

// Chat handles one conversational turn.
// POST /chat
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error": "invalid JSON body"}`, http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		http.Error(w, `{"error": "message required"}`, http.StatusBadRequest)
		return
	}

	reply := h.assistant.Process(r.Context(), req.User, req.Message)
	if strings.TrimSpace(req.User) == "" {
		req.User = "Guest"
	}

	writeJSON(w, h.logger, ChatResponse{User: req.User, Reply: reply})
}

// Health reports liveness.
// GET /health
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, h.logger, map[string]string{"status": "ok"})
}

// ListAppointments returns a patient's appointments.
// GET /appointments?patient=<name or phone>
func (h *Handler) ListAppointments(w http.ResponseWriter, r *http.Request) {
	patient := strings.TrimSpace(r.URL.Query().Get("patient"))
	if patient == "" {
		http.Error(w, `{"error": "patient query parameter required"}`, http.StatusBadRequest)
		return
	}

	appointments := h.directory.FindAppointmentsByPatient(r.Context(), patient)
	if appointments == nil {
		appointments = []clinic.Appointment{}
	}
	writeJSON(w, h.logger, appointments)
}

// ListDoctors returns the clinic's doctors.
// GET /doctors
func (h *Handler) ListDoctors(w http.ResponseWriter, r *http.Request) {
	doctors := h.directory.ListDoctors(r.Context())
	if doctors == nil {
		doctors = []clinic.Doctor{}
	}
	writeJSON(w, h.logger, doctors)
}

// Stats returns aggregate clinic counters.
// GET /stats
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.logger, h.directory.GetStats(r.Context()))
}

func writeJSON(w http.ResponseWriter, logger *logging.Logger, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("failed to encode response", "error", err)
	}
}
