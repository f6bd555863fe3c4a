package application

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
)

type stubCustomerRepository struct {
	customers map[string]Customer
	deleteErr error
	deleted   []string
}

func newStubCustomerRepository() *stubCustomerRepository {
	return &stubCustomerRepository{customers: map[string]Customer{}}
}

func (s *stubCustomerRepository) GetCustomer(_ context.Context, id string) (Customer, error) {
	customer, ok := s.customers[id]
	if !ok {
		return Customer{}, ErrNotFound
	}
	return customer, nil
}

func (s *stubCustomerRepository) ListCustomers(_ context.Context) ([]Customer, error) {
	var all []Customer
	for _, customer := range s.customers {
		all = append(all, customer)
	}
	return all, nil
}

func (s *stubCustomerRepository) InsertCustomer(_ context.Context, customer Customer) (int64, error) {
	s.customers[customer.ID] = customer
	return 1, nil
}

func (s *stubCustomerRepository) UpdateCustomer(_ context.Context, customer Customer) (int64, error) {
	if _, ok := s.customers[customer.ID]; !ok {
		return 0, nil
	}
	s.customers[customer.ID] = customer
	return 1, nil
}

func (s *stubCustomerRepository) DeleteCustomer(_ context.Context, id string) (int64, error) {
	if s.deleteErr != nil {
		return 0, s.deleteErr
	}
	s.deleted = append(s.deleted, id)
	if _, ok := s.customers[id]; !ok {
		return 0, nil
	}
	delete(s.customers, id)
	return 1, nil
}

// scriptedPrompter answers the two confirmation prompts with canned values
// and records that each prompt was asked.
type scriptedPrompter struct {
	purgeAnswer    bool
	deletionAnswer bool
	purgeAsked     bool
	purgeCount     int
	deletionAsked  bool
}

func (p *scriptedPrompter) ConfirmAppointmentPurge(count int) bool {
	p.purgeAsked = true
	p.purgeCount = count
	return p.purgeAnswer
}

func (p *scriptedPrompter) ConfirmCustomerDeletion() bool {
	p.deletionAsked = true
	return p.deletionAnswer
}

func newTestCustomerService(customers *stubCustomerRepository, appointments *stubAppointmentRepository) *CustomerService {
	sequence := 0
	return NewCustomerService(
		customers,
		appointments,
		func() string {
			sequence++
			return fmt.Sprintf("customer-%d", sequence)
		},
		func() time.Time { return time.Date(2026, time.March, 9, 12, 0, 0, 0, time.UTC) },
		nil,
	)
}

func validCustomerForm() CustomerForm {
	return CustomerForm{
		FirstName:  "Jordan",
		LastName:   "Ellis",
		Address:    "12 Harbour Street",
		PostalCode: "10001",
		Phone:      "555-0100",
		CountryID:  "country-1",
		DivisionID: "division-1",
	}
}

func TestCreateCustomerRejectsMissingFields(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		mutate     func(form *CustomerForm)
		wantReason string
	}{
		{
			name:       "blank first name",
			mutate:     func(form *CustomerForm) { form.FirstName = " " },
			wantReason: "Please enter a valid first name.",
		},
		{
			name:       "blank last name",
			mutate:     func(form *CustomerForm) { form.LastName = "" },
			wantReason: "Please enter a valid last name.",
		},
		{
			name:       "blank address",
			mutate:     func(form *CustomerForm) { form.Address = "" },
			wantReason: "Please enter a valid address.",
		},
		{
			name:       "blank postal code",
			mutate:     func(form *CustomerForm) { form.PostalCode = "" },
			wantReason: "Please enter a valid postal code.",
		},
		{
			name:       "blank phone",
			mutate:     func(form *CustomerForm) { form.Phone = "" },
			wantReason: "Please enter a valid phone number.",
		},
		{
			name:       "missing country",
			mutate:     func(form *CustomerForm) { form.CountryID = "" },
			wantReason: "Please select a country.",
		},
		{
			name:       "missing division",
			mutate:     func(form *CustomerForm) { form.DivisionID = "" },
			wantReason: "Please select a first-level division.",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			service := newTestCustomerService(newStubCustomerRepository(), newStubAppointmentRepository())
			form := validCustomerForm()
			tt.mutate(&form)

			_, err := service.CreateCustomer(context.Background(), form)

			var validationErr *ValidationError
			if !errors.As(err, &validationErr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if validationErr.Reason != tt.wantReason {
				t.Errorf("reason = %q, want %q", validationErr.Reason, tt.wantReason)
			}
		})
	}
}

func TestCreateCustomerJoinsName(t *testing.T) {
	t.Parallel()

	service := newTestCustomerService(newStubCustomerRepository(), newStubAppointmentRepository())

	customer, err := service.CreateCustomer(context.Background(), validCustomerForm())
	if err != nil {
		t.Fatalf("CreateCustomer: %v", err)
	}
	if customer.Name != "Jordan Ellis" {
		t.Errorf("name = %q, want %q", customer.Name, "Jordan Ellis")
	}
	if customer.ID == "" {
		t.Error("expected generated customer id")
	}
}

func TestUpdateCustomerReturnsNotFound(t *testing.T) {
	t.Parallel()

	service := newTestCustomerService(newStubCustomerRepository(), newStubAppointmentRepository())

	_, err := service.UpdateCustomer(context.Background(), "missing", validCustomerForm())
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteCustomerCascadingRemovesAppointmentsFirst(t *testing.T) {
	t.Parallel()

	customers := newStubCustomerRepository()
	customers.customers["customer-1"] = Customer{ID: "customer-1"}
	appointments := newStubAppointmentRepository()
	owned := []Appointment{
		{ID: "appointment-1", CustomerID: "customer-1"},
		{ID: "appointment-2", CustomerID: "customer-1"},
	}
	for _, appointment := range owned {
		appointments.appointments[appointment.ID] = appointment
	}
	appointments.byCustomer["customer-1"] = owned
	service := newTestCustomerService(customers, appointments)
	prompter := &scriptedPrompter{purgeAnswer: true, deletionAnswer: true}

	outcome, err := service.DeleteCustomerCascading(context.Background(), "customer-1", prompter)
	if err != nil {
		t.Fatalf("DeleteCustomerCascading: %v", err)
	}
	if !outcome.Deleted {
		t.Error("expected customer deleted")
	}
	if outcome.AppointmentsRemoved != 2 {
		t.Errorf("appointments removed = %d, want 2", outcome.AppointmentsRemoved)
	}
	if prompter.purgeCount != 2 {
		t.Errorf("purge prompt count = %d, want 2", prompter.purgeCount)
	}
	if len(appointments.deleted) != 2 {
		t.Errorf("deleted appointment ids = %v, want 2 entries", appointments.deleted)
	}
	if len(customers.deleted) != 1 || customers.deleted[0] != "customer-1" {
		t.Errorf("deleted customer ids = %v, want [customer-1]", customers.deleted)
	}
}

func TestDeleteCustomerCascadingDeclinedPurgeRemovesNothing(t *testing.T) {
	t.Parallel()

	customers := newStubCustomerRepository()
	customers.customers["customer-1"] = Customer{ID: "customer-1"}
	appointments := newStubAppointmentRepository()
	appointments.appointments["appointment-1"] = Appointment{ID: "appointment-1", CustomerID: "customer-1"}
	appointments.byCustomer["customer-1"] = []Appointment{{ID: "appointment-1", CustomerID: "customer-1"}}
	service := newTestCustomerService(customers, appointments)
	prompter := &scriptedPrompter{purgeAnswer: false, deletionAnswer: true}

	outcome, err := service.DeleteCustomerCascading(context.Background(), "customer-1", prompter)
	if err != nil {
		t.Fatalf("DeleteCustomerCascading: %v", err)
	}
	if !outcome.Aborted {
		t.Error("expected aborted outcome")
	}
	if outcome.Deleted || outcome.AppointmentsRemoved != 0 {
		t.Errorf("outcome = %+v, want nothing removed", outcome)
	}
	if prompter.deletionAsked {
		t.Error("customer prompt must not be asked after declined purge")
	}
	if len(appointments.deleted) != 0 || len(customers.deleted) != 0 {
		t.Error("nothing may be deleted after declined purge")
	}
}

func TestDeleteCustomerCascadingDeclinedSecondPromptKeepsAppointmentsRemoved(t *testing.T) {
	t.Parallel()

	customers := newStubCustomerRepository()
	customers.customers["customer-1"] = Customer{ID: "customer-1"}
	appointments := newStubAppointmentRepository()
	appointments.appointments["appointment-1"] = Appointment{ID: "appointment-1", CustomerID: "customer-1"}
	appointments.byCustomer["customer-1"] = []Appointment{{ID: "appointment-1", CustomerID: "customer-1"}}
	service := newTestCustomerService(customers, appointments)
	prompter := &scriptedPrompter{purgeAnswer: true, deletionAnswer: false}

	outcome, err := service.DeleteCustomerCascading(context.Background(), "customer-1", prompter)
	if err != nil {
		t.Fatalf("DeleteCustomerCascading: %v", err)
	}
	if !outcome.Aborted {
		t.Error("expected aborted outcome")
	}
	// The purge is not undone when the second prompt declines.
	if outcome.AppointmentsRemoved != 1 {
		t.Errorf("appointments removed = %d, want 1", outcome.AppointmentsRemoved)
	}
	if outcome.Deleted {
		t.Error("customer must not be deleted")
	}
	if len(customers.deleted) != 0 {
		t.Errorf("deleted customer ids = %v, want none", customers.deleted)
	}
}

func TestDeleteCustomerCascadingContinuesPastFailures(t *testing.T) {
	t.Parallel()

	customers := newStubCustomerRepository()
	customers.customers["customer-1"] = Customer{ID: "customer-1"}
	appointments := newStubAppointmentRepository()
	owned := []Appointment{
		{ID: "appointment-1", CustomerID: "customer-1"},
		{ID: "appointment-2", CustomerID: "customer-1"},
		{ID: "appointment-3", CustomerID: "customer-1"},
	}
	// appointment-2 is absent from the store, so its delete affects no rows.
	appointments.appointments["appointment-1"] = owned[0]
	appointments.appointments["appointment-3"] = owned[2]
	appointments.byCustomer["customer-1"] = owned
	service := newTestCustomerService(customers, appointments)
	prompter := &scriptedPrompter{purgeAnswer: true, deletionAnswer: true}

	outcome, err := service.DeleteCustomerCascading(context.Background(), "customer-1", prompter)

	var cascadeErr *PartialCascadeError
	if !errors.As(err, &cascadeErr) {
		t.Fatalf("expected PartialCascadeError, got %v", err)
	}
	if len(cascadeErr.FailedIDs) != 1 || cascadeErr.FailedIDs[0] != "appointment-2" {
		t.Errorf("failed ids = %v, want [appointment-2]", cascadeErr.FailedIDs)
	}
	// The remaining appointments were still attempted and removed.
	if outcome.AppointmentsRemoved != 2 {
		t.Errorf("appointments removed = %d, want 2", outcome.AppointmentsRemoved)
	}
	if outcome.Deleted {
		t.Error("customer must not be deleted while dependents remain")
	}
	if len(customers.deleted) != 0 {
		t.Errorf("deleted customer ids = %v, want none", customers.deleted)
	}
}

func TestDeleteCustomerCascadingWithoutAppointmentsSkipsPurgePrompt(t *testing.T) {
	t.Parallel()

	customers := newStubCustomerRepository()
	customers.customers["customer-1"] = Customer{ID: "customer-1"}
	service := newTestCustomerService(customers, newStubAppointmentRepository())
	prompter := &scriptedPrompter{deletionAnswer: true}

	outcome, err := service.DeleteCustomerCascading(context.Background(), "customer-1", prompter)
	if err != nil {
		t.Fatalf("DeleteCustomerCascading: %v", err)
	}
	if prompter.purgeAsked {
		t.Error("purge prompt must not be asked when no appointments exist")
	}
	if !outcome.Deleted {
		t.Error("expected customer deleted")
	}
}

func TestDeleteCustomerCascadingReportsMissingCustomer(t *testing.T) {
	t.Parallel()

	service := newTestCustomerService(newStubCustomerRepository(), newStubAppointmentRepository())
	prompter := &scriptedPrompter{deletionAnswer: true}

	outcome, err := service.DeleteCustomerCascading(context.Background(), "missing", prompter)
	if err != nil {
		t.Fatalf("DeleteCustomerCascading: %v", err)
	}
	if outcome.Deleted {
		t.Error("Deleted must be false when no customer row was removed")
	}
}
