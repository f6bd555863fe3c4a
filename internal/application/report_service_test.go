package application

import (
	"context"
	"errors"
	"testing"
	"time"
)

type stubReportSource struct {
	byContact map[string][]Appointment
	types     map[time.Month][]string
	counts    map[string]int
	err       error
}

func (s *stubReportSource) ListAppointmentsByContact(_ context.Context, contactID string) ([]Appointment, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.byContact[contactID], nil
}

func (s *stubReportSource) ListAppointmentTypesByMonth(_ context.Context, month time.Month) ([]string, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.types[month], nil
}

func (s *stubReportSource) CountAppointmentsByMonthAndType(_ context.Context, month time.Month, appointmentType string) (int, error) {
	if s.err != nil {
		return 0, s.err
	}
	return s.counts[month.String()+"/"+appointmentType], nil
}

type stubReferenceSource struct {
	countries []Country
	divisions map[string][]Division
	contacts  []Contact
}

func (s *stubReferenceSource) ListCountries(_ context.Context) ([]Country, error) {
	return s.countries, nil
}

func (s *stubReferenceSource) ListDivisionsByCountry(_ context.Context, countryID string) ([]Division, error) {
	return s.divisions[countryID], nil
}

func (s *stubReferenceSource) ListContacts(_ context.Context) ([]Contact, error) {
	return s.contacts, nil
}

func TestAppointmentsByContact(t *testing.T) {
	t.Parallel()

	reports := &stubReportSource{byContact: map[string][]Appointment{
		"contact-1": {{ID: "appointment-1", ContactID: "contact-1"}},
	}}
	service := NewReportService(reports, &stubReferenceSource{}, nil, nil)

	appointments, err := service.AppointmentsByContact(context.Background(), "contact-1")
	if err != nil {
		t.Fatalf("AppointmentsByContact: %v", err)
	}
	if len(appointments) != 1 || appointments[0].ID != "appointment-1" {
		t.Errorf("appointments = %+v, want the contact's single appointment", appointments)
	}
}

func TestTypeAndCountReports(t *testing.T) {
	t.Parallel()

	reports := &stubReportSource{
		types:  map[time.Month][]string{time.March: {"Planning", "Review"}},
		counts: map[string]int{"March/Planning": 2},
	}
	service := NewReportService(reports, &stubReferenceSource{}, nil, nil)

	types, err := service.TypesByMonth(context.Background(), time.March)
	if err != nil {
		t.Fatalf("TypesByMonth: %v", err)
	}
	if len(types) != 2 {
		t.Errorf("types = %v, want 2 entries", types)
	}

	count, err := service.CountByMonthAndType(context.Background(), time.March, "Planning")
	if err != nil {
		t.Fatalf("CountByMonthAndType: %v", err)
	}
	if count != 2 {
		t.Errorf("count = %d, want 2", count)
	}
}

func TestDivisionsByCountry(t *testing.T) {
	t.Parallel()

	references := &stubReferenceSource{
		countries: []Country{{ID: "country-1", Name: "Canada"}},
		divisions: map[string][]Division{
			"country-1": {{ID: "division-1", Name: "Ontario", CountryID: "country-1"}},
		},
	}
	service := NewReportService(&stubReportSource{}, references, nil, nil)

	divisions, err := service.DivisionsByCountry(context.Background(), "country-1")
	if err != nil {
		t.Fatalf("DivisionsByCountry: %v", err)
	}
	if len(divisions) != 1 || divisions[0].Name != "Ontario" {
		t.Errorf("divisions = %+v, want Ontario", divisions)
	}
}

func TestLoginActivityReport(t *testing.T) {
	t.Parallel()

	activity := &recordingActivityLog{attempts: []LoginAttempt{
		{Username: "jellis", Successful: true},
	}}
	service := NewReportService(&stubReportSource{}, &stubReferenceSource{}, activity, nil)

	attempts, err := service.LoginActivity(context.Background())
	if err != nil {
		t.Fatalf("LoginActivity: %v", err)
	}
	if len(attempts) != 1 || attempts[0].Username != "jellis" {
		t.Errorf("attempts = %+v, want jellis entry", attempts)
	}
}

func TestReportsSurfaceStoreFailure(t *testing.T) {
	t.Parallel()

	reports := &stubReportSource{err: errors.New("connection lost")}
	service := NewReportService(reports, &stubReferenceSource{}, nil, nil)

	_, err := service.TypesByMonth(context.Background(), time.March)

	var storeErr *StoreError
	if !errors.As(err, &storeErr) {
		t.Fatalf("expected StoreError, got %v", err)
	}
}
