package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/text/language"

	"github.com/example/client-scheduler/internal/application"
	"github.com/example/client-scheduler/internal/locale"
)

type authService interface {
	Authenticate(ctx context.Context, username, password string) (application.User, error)
}

type upcomingNotifier interface {
	CheckUpcoming(ctx context.Context, now time.Time, tag language.Tag) (application.Notification, error)
}

// AuthHandler serves the login endpoint. A successful login immediately runs
// the upcoming-appointment check so the client can show the alert that
// follows sign-in.
type AuthHandler struct {
	service   authService
	notifier  upcomingNotifier
	now       func() time.Time
	responder responder
}

// NewAuthHandler constructs an AuthHandler. The notifier may be nil, in which
// case login responses omit the notification.
func NewAuthHandler(service authService, notifier upcomingNotifier, now func() time.Time, logger *slog.Logger) *AuthHandler {
	if now == nil {
		now = time.Now
	}
	return &AuthHandler{service: service, notifier: notifier, now: now, responder: newResponder(logger)}
}

// Login validates the submitted credentials.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	tag := parseLocale(req.Locale)

	user, err := h.service.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, application.ErrInvalidCredentials) {
			messages := locale.For(tag)
			h.responder.writeJSON(r.Context(), w, http.StatusUnauthorized, errorResponse{
				Message: messages.InvalidCredentials,
			})
			return
		}
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	response := loginResponse{User: userDTO{ID: user.ID, Username: user.Username}}

	if h.notifier != nil {
		notification, err := h.notifier.CheckUpcoming(r.Context(), h.now(), tag)
		if err != nil {
			handlerLogger(r.Context(), h.responder.logger, "AuthHandler", "Login").
				ErrorContext(r.Context(), "upcoming appointment check failed", "error", err)
		} else {
			response.Notification = toNotificationDTO(notification)
		}
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, response)
}

func parseLocale(value string) language.Tag {
	value = strings.TrimSpace(value)
	if value == "" {
		return language.English
	}
	tag, err := language.Parse(value)
	if err != nil {
		return language.English
	}
	return tag
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Locale   string `json:"locale"`
}

type loginResponse struct {
	User         userDTO          `json:"user"`
	Notification *notificationDTO `json:"notification,omitempty"`
}

type userDTO struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

type notificationDTO struct {
	Message       string `json:"message"`
	AppointmentID string `json:"appointment_id,omitempty"`
	Start         string `json:"start,omitempty"`
}

func toNotificationDTO(notification application.Notification) *notificationDTO {
	dto := &notificationDTO{Message: notification.Message}
	if notification.Appointment != nil {
		dto.AppointmentID = notification.Appointment.ID
		dto.Start = notification.Appointment.Start.UTC().Format(time.RFC3339)
	}
	return dto
}
