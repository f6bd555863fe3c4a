package application

import (
	"context"
	"log/slog"
	"time"
)

// ReportSource exposes the aggregate appointment queries behind the reports.
type ReportSource interface {
	ListAppointmentsByContact(ctx context.Context, contactID string) ([]Appointment, error)
	ListAppointmentTypesByMonth(ctx context.Context, month time.Month) ([]string, error)
	CountAppointmentsByMonthAndType(ctx context.Context, month time.Month, appointmentType string) (int, error)
}

// ReferenceSource exposes the country and division reference data.
type ReferenceSource interface {
	ListCountries(ctx context.Context) ([]Country, error)
	ListDivisionsByCountry(ctx context.Context, countryID string) ([]Division, error)
	ListContacts(ctx context.Context) ([]Contact, error)
}

// ReportService answers the read-only reporting queries: per-contact
// schedules, month and type aggregates, reference lookups, and the login
// audit trail.
type ReportService struct {
	reports    ReportSource
	references ReferenceSource
	activity   ActivityLog
	logger     *slog.Logger
}

// NewReportService wires dependencies for reporting queries.
func NewReportService(reports ReportSource, references ReferenceSource, activity ActivityLog, logger *slog.Logger) *ReportService {
	return &ReportService{
		reports:    reports,
		references: references,
		activity:   activity,
		logger:     defaultLogger(logger),
	}
}

// AppointmentsByContact returns the schedule of a single contact.
func (s *ReportService) AppointmentsByContact(ctx context.Context, contactID string) ([]Appointment, error) {
	appointments, err := s.reports.ListAppointmentsByContact(ctx, contactID)
	if err != nil {
		return nil, wrapStore("list appointments by contact", err)
	}
	return appointments, nil
}

// TypesByMonth returns the distinct appointment types seen in the month.
func (s *ReportService) TypesByMonth(ctx context.Context, month time.Month) ([]string, error) {
	types, err := s.reports.ListAppointmentTypesByMonth(ctx, month)
	if err != nil {
		return nil, wrapStore("list appointment types by month", err)
	}
	return types, nil
}

// CountByMonthAndType returns how many appointments of the given type start
// in the month.
func (s *ReportService) CountByMonthAndType(ctx context.Context, month time.Month, appointmentType string) (int, error) {
	count, err := s.reports.CountAppointmentsByMonthAndType(ctx, month, appointmentType)
	if err != nil {
		return 0, wrapStore("count appointments by month and type", err)
	}
	return count, nil
}

// Countries returns the country reference list.
func (s *ReportService) Countries(ctx context.Context) ([]Country, error) {
	countries, err := s.references.ListCountries(ctx)
	if err != nil {
		return nil, wrapStore("list countries", err)
	}
	return countries, nil
}

// DivisionsByCountry returns the first-level divisions of a country.
func (s *ReportService) DivisionsByCountry(ctx context.Context, countryID string) ([]Division, error) {
	divisions, err := s.references.ListDivisionsByCountry(ctx, countryID)
	if err != nil {
		return nil, wrapStore("list divisions by country", err)
	}
	return divisions, nil
}

// Contacts returns every company contact.
func (s *ReportService) Contacts(ctx context.Context) ([]Contact, error) {
	contacts, err := s.references.ListContacts(ctx)
	if err != nil {
		return nil, wrapStore("list contacts", err)
	}
	return contacts, nil
}

// LoginActivity returns the recorded login attempts in file order.
func (s *ReportService) LoginActivity(ctx context.Context) ([]LoginAttempt, error) {
	if s.activity == nil {
		return nil, nil
	}
	attempts, err := s.activity.ListLoginAttempts(ctx)
	if err != nil {
		return nil, wrapStore("list login attempts", err)
	}
	return attempts, nil
}
