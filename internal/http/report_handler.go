package http

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/example/client-scheduler/internal/application"
)

type reportService interface {
	AppointmentsByContact(ctx context.Context, contactID string) ([]application.Appointment, error)
	TypesByMonth(ctx context.Context, month time.Month) ([]string, error)
	CountByMonthAndType(ctx context.Context, month time.Month, appointmentType string) (int, error)
	Countries(ctx context.Context) ([]application.Country, error)
	DivisionsByCountry(ctx context.Context, countryID string) ([]application.Division, error)
	Contacts(ctx context.Context) ([]application.Contact, error)
	LoginActivity(ctx context.Context) ([]application.LoginAttempt, error)
}

// ReportHandler serves the read-only reporting and reference endpoints.
type ReportHandler struct {
	service   reportService
	responder responder
}

// NewReportHandler constructs a ReportHandler.
func NewReportHandler(service reportService, logger *slog.Logger) *ReportHandler {
	return &ReportHandler{service: service, responder: newResponder(logger)}
}

func (h *ReportHandler) ContactSchedule(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	contactID := strings.TrimSpace(r.URL.Query().Get("contact_id"))
	if contactID == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errMissingContactID)
		return
	}

	appointments, err := h.service.AppointmentsByContact(r.Context(), contactID)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, listAppointmentsResponse{
		Appointments: toAppointmentDTOs(appointments),
	})
}

func (h *ReportHandler) TypesByMonth(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	month, ok := parseMonthParam(r.URL.Query().Get("month"))
	if !ok {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidMonth)
		return
	}

	types, err := h.service.TypesByMonth(r.Context(), month)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, typesByMonthResponse{
		Month: month.String(),
		Types: types,
	})
}

func (h *ReportHandler) AppointmentCount(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	month, ok := parseMonthParam(r.URL.Query().Get("month"))
	if !ok {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidMonth)
		return
	}
	appointmentType := strings.TrimSpace(r.URL.Query().Get("type"))
	if appointmentType == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errMissingTypeParam)
		return
	}

	count, err := h.service.CountByMonthAndType(r.Context(), month, appointmentType)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, appointmentCountResponse{
		Month: month.String(),
		Type:  appointmentType,
		Count: count,
	})
}

func (h *ReportHandler) Countries(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	countries, err := h.service.Countries(r.Context())
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	out := make([]countryDTO, 0, len(countries))
	for _, country := range countries {
		out = append(out, countryDTO{ID: country.ID, Name: country.Name})
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, listCountriesResponse{Countries: out})
}

func (h *ReportHandler) Divisions(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	countryID, ok := CountryIDFromContext(r.Context())
	if !ok || strings.TrimSpace(countryID) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidCountryID)
		return
	}

	divisions, err := h.service.DivisionsByCountry(r.Context(), countryID)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	out := make([]divisionDTO, 0, len(divisions))
	for _, division := range divisions {
		out = append(out, divisionDTO{ID: division.ID, Name: division.Name, CountryID: division.CountryID})
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, listDivisionsResponse{Divisions: out})
}

func (h *ReportHandler) Contacts(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	contacts, err := h.service.Contacts(r.Context())
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	out := make([]contactDTO, 0, len(contacts))
	for _, contact := range contacts {
		out = append(out, contactDTO{ID: contact.ID, Name: contact.Name, Email: contact.Email})
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, listContactsResponse{Contacts: out})
}

func (h *ReportHandler) LoginActivity(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	attempts, err := h.service.LoginActivity(r.Context())
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	out := make([]loginAttemptDTO, 0, len(attempts))
	for _, attempt := range attempts {
		out = append(out, loginAttemptDTO{
			Username:   attempt.Username,
			At:         attempt.At.UTC().Format(time.RFC3339),
			Successful: attempt.Successful,
		})
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, loginActivityResponse{Attempts: out})
}

// parseMonthParam accepts a month number (1-12) or an English month name.
func parseMonthParam(value string) (time.Month, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, false
	}
	if n, err := strconv.Atoi(value); err == nil {
		if n >= 1 && n <= 12 {
			return time.Month(n), true
		}
		return 0, false
	}
	for month := time.January; month <= time.December; month++ {
		if strings.EqualFold(month.String(), value) {
			return month, true
		}
	}
	return 0, false
}

type typesByMonthResponse struct {
	Month string   `json:"month"`
	Types []string `json:"types"`
}

type appointmentCountResponse struct {
	Month string `json:"month"`
	Type  string `json:"type"`
	Count int    `json:"count"`
}

type countryDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type divisionDTO struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CountryID string `json:"country_id"`
}

type contactDTO struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type loginAttemptDTO struct {
	Username   string `json:"username"`
	At         string `json:"at"`
	Successful bool   `json:"successful"`
}

type listCountriesResponse struct {
	Countries []countryDTO `json:"countries"`
}

type listDivisionsResponse struct {
	Divisions []divisionDTO `json:"divisions"`
}

type listContactsResponse struct {
	Contacts []contactDTO `json:"contacts"`
}

type loginActivityResponse struct {
	Attempts []loginAttemptDTO `json:"attempts"`
}
