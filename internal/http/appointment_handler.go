package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/example/client-scheduler/internal/application"
	"github.com/example/client-scheduler/internal/scheduling"
)

type appointmentService interface {
	CreateAppointment(ctx context.Context, form application.AppointmentForm) (application.Appointment, error)
	UpdateAppointment(ctx context.Context, id string, form application.AppointmentForm) (application.Appointment, error)
	DeleteAppointment(ctx context.Context, id string) error
	ListAppointments(ctx context.Context, filter application.AppointmentFilter) ([]application.Appointment, error)
	TimeSlots(reference time.Time) ([]scheduling.TimeOfDay, error)
}

// AppointmentHandler serves the appointment management endpoints.
type AppointmentHandler struct {
	service   appointmentService
	responder responder
}

// NewAppointmentHandler constructs an AppointmentHandler.
func NewAppointmentHandler(service appointmentService, logger *slog.Logger) *AppointmentHandler {
	return &AppointmentHandler{service: service, responder: newResponder(logger)}
}

func (h *AppointmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var req appointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	appointment, err := h.service.CreateAppointment(r.Context(), req.toForm())
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusCreated, appointmentResponse{Appointment: toAppointmentDTO(appointment)})
}

func (h *AppointmentHandler) Update(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	id, ok := AppointmentIDFromContext(r.Context())
	if !ok || strings.TrimSpace(id) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidAppointmentID)
		return
	}

	var req appointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	appointment, err := h.service.UpdateAppointment(r.Context(), id, req.toForm())
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, appointmentResponse{Appointment: toAppointmentDTO(appointment)})
}

func (h *AppointmentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	id, ok := AppointmentIDFromContext(r.Context())
	if !ok || strings.TrimSpace(id) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidAppointmentID)
		return
	}

	if err := h.service.DeleteAppointment(r.Context(), id); err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusNoContent, nil)
}

func (h *AppointmentHandler) List(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	filter := application.FilterAll
	switch value := strings.TrimSpace(r.URL.Query().Get("filter")); value {
	case "", "all":
	case "month":
		filter = application.FilterByMonth
	case "week":
		filter = application.FilterByWeek
	default:
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidFilterParam)
		return
	}

	appointments, err := h.service.ListAppointments(r.Context(), filter)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, listAppointmentsResponse{
		Appointments: toAppointmentDTOs(appointments),
	})
}

func (h *AppointmentHandler) Slots(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	value := strings.TrimSpace(r.URL.Query().Get("date"))
	if value == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidDateParam)
		return
	}
	date, err := time.Parse("2006-01-02", value)
	if err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidDateParam)
		return
	}

	slots, err := h.service.TimeSlots(date)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	values := make([]string, 0, len(slots))
	for _, slot := range slots {
		values = append(values, slot.String())
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, slotsResponse{Slots: values})
}

type appointmentRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Location    string `json:"location"`
	Type        string `json:"type"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	CustomerID  string `json:"customer_id"`
	UserID      string `json:"user_id"`
	ContactID   string `json:"contact_id"`
}

// toForm leaves date and time pointers nil when the field is absent or
// unparseable so the form validation reports the field-specific message.
func (r appointmentRequest) toForm() application.AppointmentForm {
	return application.AppointmentForm{
		Title:       r.Title,
		Description: r.Description,
		Location:    r.Location,
		Type:        r.Type,
		StartDate:   parseDateField(r.StartDate),
		EndDate:     parseDateField(r.EndDate),
		StartTime:   parseTimeField(r.StartTime),
		EndTime:     parseTimeField(r.EndTime),
		CustomerID:  strings.TrimSpace(r.CustomerID),
		UserID:      strings.TrimSpace(r.UserID),
		ContactID:   strings.TrimSpace(r.ContactID),
	}
}

func parseDateField(value string) *time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	date, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil
	}
	return &date
}

func parseTimeField(value string) *scheduling.TimeOfDay {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	slot, err := scheduling.ParseTimeOfDay(value)
	if err != nil {
		return nil
	}
	return &slot
}

type appointmentResponse struct {
	Appointment appointmentDTO `json:"appointment"`
}

type listAppointmentsResponse struct {
	Appointments []appointmentDTO `json:"appointments"`
}

type slotsResponse struct {
	Slots []string `json:"slots"`
}

type appointmentDTO struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Location    string `json:"location"`
	Type        string `json:"type"`
	Start       string `json:"start"`
	End         string `json:"end"`
	CustomerID  string `json:"customer_id"`
	UserID      string `json:"user_id"`
	ContactID   string `json:"contact_id"`
}

func toAppointmentDTO(appointment application.Appointment) appointmentDTO {
	return appointmentDTO{
		ID:          appointment.ID,
		Title:       appointment.Title,
		Description: appointment.Description,
		Location:    appointment.Location,
		Type:        appointment.Type,
		Start:       appointment.Start.UTC().Format(time.RFC3339),
		End:         appointment.End.UTC().Format(time.RFC3339),
		CustomerID:  appointment.CustomerID,
		UserID:      appointment.UserID,
		ContactID:   appointment.ContactID,
	}
}

func toAppointmentDTOs(appointments []application.Appointment) []appointmentDTO {
	if len(appointments) == 0 {
		return nil
	}
	out := make([]appointmentDTO, 0, len(appointments))
	for _, appointment := range appointments {
		out = append(out, toAppointmentDTO(appointment))
	}
	return out
}
