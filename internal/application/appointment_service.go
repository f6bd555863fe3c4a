package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/example/client-scheduler/internal/scheduling"
)

// Rejection reasons rendered verbatim to the user. The order of the checks
// that produce them is fixed: the first failing check wins.
const (
	msgStartTimeRequired = "Please select a valid Start Time."
	msgEndTimeRequired   = "Please select a valid End Time."
	msgStartDateRequired = "Please select a valid Start Date."
	msgEndDateRequired   = "Please select a valid End Date."
	msgTitleRequired     = "Please enter a valid Title."
	msgDescRequired      = "Please enter a valid Description."
	msgLocationRequired  = "Please enter a valid Location."
	msgTypeRequired      = "Please enter a valid Type."
	msgUserRequired      = "Please select a User ID."
	msgContactRequired   = "Please select a Contact ID."
	msgCustomerRequired  = "Please select a Customer ID."
	msgEndBeforeStart    = "Start date and time must occur before end date and time."
	msgOverlap           = "Overlapping appointment times detected."
)

// AppointmentRepository captures the persistence interactions needed by the
// appointment service.
type AppointmentRepository interface {
	GetAppointment(ctx context.Context, id string) (Appointment, error)
	ListAppointments(ctx context.Context) ([]Appointment, error)
	ListAppointmentsByCustomer(ctx context.Context, customerID string) ([]Appointment, error)
	InsertAppointment(ctx context.Context, appointment Appointment) (int64, error)
	UpdateAppointment(ctx context.Context, appointment Appointment) (int64, error)
	DeleteAppointment(ctx context.Context, id string) (int64, error)
}

// AppointmentService validates raw form input and turns it into persisted
// appointments. Validation runs on the caller's goroutine and either returns
// a fully populated appointment or the first applicable rejection reason.
type AppointmentService struct {
	appointments AppointmentRepository
	hours        scheduling.BusinessHours
	zone         *time.Location
	idGenerator  func() string
	now          func() time.Time
	logger       *slog.Logger
}

// NewAppointmentService wires dependencies for appointment operations. The
// zone is the viewer's local timezone used to anchor form dates and times and
// to convert slot values; nil selects the process-local zone.
func NewAppointmentService(appointments AppointmentRepository, hours scheduling.BusinessHours, zone *time.Location, idGenerator func() string, now func() time.Time, logger *slog.Logger) *AppointmentService {
	if zone == nil {
		zone = time.Local
	}
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	return &AppointmentService{
		appointments: appointments,
		hours:        hours,
		zone:         zone,
		idGenerator:  idGenerator,
		now:          now,
		logger:       defaultLogger(logger),
	}
}

func (s *AppointmentService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "AppointmentService", operation, attrs...)
}

// TimeSlots returns the bookable time-of-day values for the reference date in
// the service's viewing zone. Two calls with the same inputs yield identical
// sequences.
func (s *AppointmentService) TimeSlots(reference time.Time) ([]scheduling.TimeOfDay, error) {
	return s.hours.Slots(reference, s.zone)
}

// CreateAppointment validates the form and persists a new appointment.
func (s *AppointmentService) CreateAppointment(ctx context.Context, form AppointmentForm) (appointment Appointment, err error) {
	logger := s.loggerWith(ctx, "CreateAppointment", "customer_id", form.CustomerID)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "appointment creation rejected", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "appointment created", "appointment_id", appointment.ID)
	}()

	interval, err := s.validateForm(ctx, form, "")
	if err != nil {
		return Appointment{}, err
	}

	now := s.now()
	appointment = Appointment{
		ID:          s.idGenerator(),
		Title:       form.Title,
		Description: form.Description,
		Location:    form.Location,
		Type:        form.Type,
		Start:       interval.Start,
		End:         interval.End,
		CustomerID:  form.CustomerID,
		UserID:      form.UserID,
		ContactID:   form.ContactID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	affected, err := s.appointments.InsertAppointment(ctx, appointment)
	if err != nil {
		return Appointment{}, wrapStore("insert appointment", err)
	}
	if affected == 0 {
		return Appointment{}, &StoreError{Op: "insert appointment", Err: fmt.Errorf("no rows affected")}
	}
	return appointment, nil
}

// UpdateAppointment re-validates the form against the stored appointment and
// persists the modification. The appointment being edited is excluded from
// the overlap comparison.
func (s *AppointmentService) UpdateAppointment(ctx context.Context, id string, form AppointmentForm) (appointment Appointment, err error) {
	logger := s.loggerWith(ctx, "UpdateAppointment", "appointment_id", id)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "appointment modification rejected", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "appointment modified")
	}()

	existing, err := s.appointments.GetAppointment(ctx, id)
	if err != nil {
		return Appointment{}, wrapStore("get appointment", err)
	}

	interval, err := s.validateForm(ctx, form, id)
	if err != nil {
		return Appointment{}, err
	}

	appointment = existing
	appointment.Title = form.Title
	appointment.Description = form.Description
	appointment.Location = form.Location
	appointment.Type = form.Type
	appointment.Start = interval.Start
	appointment.End = interval.End
	appointment.CustomerID = form.CustomerID
	appointment.UserID = form.UserID
	appointment.ContactID = form.ContactID
	appointment.UpdatedAt = s.now()

	affected, err := s.appointments.UpdateAppointment(ctx, appointment)
	if err != nil {
		return Appointment{}, wrapStore("update appointment", err)
	}
	if affected == 0 {
		return Appointment{}, ErrNotFound
	}
	return appointment, nil
}

// DeleteAppointment removes an appointment by id.
func (s *AppointmentService) DeleteAppointment(ctx context.Context, id string) error {
	logger := s.loggerWith(ctx, "DeleteAppointment", "appointment_id", id)

	affected, err := s.appointments.DeleteAppointment(ctx, id)
	if err != nil {
		wrapped := wrapStore("delete appointment", err)
		logger.ErrorContext(ctx, "appointment deletion failed", "error", wrapped, "error_kind", ErrorKind(wrapped))
		return wrapped
	}
	if affected == 0 {
		return ErrNotFound
	}
	logger.InfoContext(ctx, "appointment deleted")
	return nil
}

// ListAppointments enumerates appointments, optionally narrowed to the
// current month or current week relative to the service clock.
func (s *AppointmentService) ListAppointments(ctx context.Context, filter AppointmentFilter) ([]Appointment, error) {
	appointments, err := s.appointments.ListAppointments(ctx)
	if err != nil {
		return nil, wrapStore("list appointments", err)
	}

	switch filter {
	case FilterByMonth:
		return filterAppointments(appointments, s.now(), sameMonth), nil
	case FilterByWeek:
		return filterAppointments(appointments, s.now(), sameWeek), nil
	default:
		return appointments, nil
	}
}

// ListAppointmentsByCustomer returns the appointments owned by customerID.
func (s *AppointmentService) ListAppointmentsByCustomer(ctx context.Context, customerID string) ([]Appointment, error) {
	appointments, err := s.appointments.ListAppointmentsByCustomer(ctx, customerID)
	if err != nil {
		return nil, wrapStore("list appointments by customer", err)
	}
	return appointments, nil
}

// validateForm runs the ordered fail-fast checks and, when every field check
// passes, the overlap check against the customer's other appointments.
// excludeID identifies the appointment being edited; empty means a new
// appointment and nothing is excluded.
func (s *AppointmentService) validateForm(ctx context.Context, form AppointmentForm, excludeID string) (scheduling.Interval, error) {
	switch {
	case form.StartTime == nil:
		return scheduling.Interval{}, newValidationError("start_time", msgStartTimeRequired)
	case form.EndTime == nil:
		return scheduling.Interval{}, newValidationError("end_time", msgEndTimeRequired)
	case form.StartDate == nil:
		return scheduling.Interval{}, newValidationError("start_date", msgStartDateRequired)
	case form.EndDate == nil:
		return scheduling.Interval{}, newValidationError("end_date", msgEndDateRequired)
	case strings.TrimSpace(form.Title) == "":
		return scheduling.Interval{}, newValidationError("title", msgTitleRequired)
	case strings.TrimSpace(form.Description) == "":
		return scheduling.Interval{}, newValidationError("description", msgDescRequired)
	case strings.TrimSpace(form.Location) == "":
		return scheduling.Interval{}, newValidationError("location", msgLocationRequired)
	case strings.TrimSpace(form.Type) == "":
		return scheduling.Interval{}, newValidationError("type", msgTypeRequired)
	case form.UserID == "":
		return scheduling.Interval{}, newValidationError("user_id", msgUserRequired)
	case form.ContactID == "":
		return scheduling.Interval{}, newValidationError("contact_id", msgContactRequired)
	case form.CustomerID == "":
		return scheduling.Interval{}, newValidationError("customer_id", msgCustomerRequired)
	}

	interval := scheduling.Interval{
		Start: form.StartTime.At(*form.StartDate, s.zone),
		End:   form.EndTime.At(*form.EndDate, s.zone),
	}

	// Only a strictly earlier end is rejected here; an equal start and end
	// passes this check, matching the historical behaviour of the form.
	if interval.End.Before(interval.Start) {
		return scheduling.Interval{}, newValidationError("time", msgEndBeforeStart)
	}

	existing, err := s.appointments.ListAppointmentsByCustomer(ctx, form.CustomerID)
	if err != nil {
		// A failed fetch is never treated as "no conflict".
		return scheduling.Interval{}, wrapStore("list appointments by customer", err)
	}

	booked := make([]scheduling.BookedInterval, 0, len(existing))
	for _, other := range existing {
		booked = append(booked, scheduling.BookedInterval{AppointmentID: other.ID, Interval: other.Interval()})
	}

	if _, conflict := scheduling.FindConflict(interval, excludeID, booked); conflict {
		return scheduling.Interval{}, newValidationError("time", msgOverlap)
	}

	return interval, nil
}

func filterAppointments(appointments []Appointment, reference time.Time, keep func(start, reference time.Time) bool) []Appointment {
	var filtered []Appointment
	for _, appointment := range appointments {
		if keep(appointment.Start, reference) {
			filtered = append(filtered, appointment)
		}
	}
	return filtered
}

func sameMonth(start, reference time.Time) bool {
	return start.Year() == reference.Year() && start.Month() == reference.Month()
}

func sameWeek(start, reference time.Time) bool {
	startYear, startWeek := start.ISOWeek()
	refYear, refWeek := reference.ISOWeek()
	return startYear == refYear && startWeek == refWeek
}
