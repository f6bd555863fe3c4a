package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

const (
	msgFirstNameRequired = "Please enter a valid first name."
	msgLastNameRequired  = "Please enter a valid last name."
	msgAddressRequired   = "Please enter a valid address."
	msgPostalRequired    = "Please enter a valid postal code."
	msgPhoneRequired     = "Please enter a valid phone number."
	msgCountryRequired   = "Please select a country."
	msgDivisionRequired  = "Please select a first-level division."
)

// CustomerRepository captures the persistence interactions needed by the
// customer service.
type CustomerRepository interface {
	GetCustomer(ctx context.Context, id string) (Customer, error)
	ListCustomers(ctx context.Context) ([]Customer, error)
	InsertCustomer(ctx context.Context, customer Customer) (int64, error)
	UpdateCustomer(ctx context.Context, customer Customer) (int64, error)
	DeleteCustomer(ctx context.Context, id string) (int64, error)
}

// CustomerService manages customer records and coordinates the cascading
// delete protocol for customers with dependent appointments.
type CustomerService struct {
	customers    CustomerRepository
	appointments AppointmentRepository
	idGenerator  func() string
	now          func() time.Time
	logger       *slog.Logger
}

// NewCustomerService wires dependencies for customer operations.
func NewCustomerService(customers CustomerRepository, appointments AppointmentRepository, idGenerator func() string, now func() time.Time, logger *slog.Logger) *CustomerService {
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	return &CustomerService{
		customers:    customers,
		appointments: appointments,
		idGenerator:  idGenerator,
		now:          now,
		logger:       defaultLogger(logger),
	}
}

func (s *CustomerService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "CustomerService", operation, attrs...)
}

func validateCustomerForm(form CustomerForm) error {
	switch {
	case strings.TrimSpace(form.FirstName) == "":
		return newValidationError("first_name", msgFirstNameRequired)
	case strings.TrimSpace(form.LastName) == "":
		return newValidationError("last_name", msgLastNameRequired)
	case strings.TrimSpace(form.Address) == "":
		return newValidationError("address", msgAddressRequired)
	case strings.TrimSpace(form.PostalCode) == "":
		return newValidationError("postal_code", msgPostalRequired)
	case strings.TrimSpace(form.Phone) == "":
		return newValidationError("phone", msgPhoneRequired)
	case form.CountryID == "":
		return newValidationError("country_id", msgCountryRequired)
	case form.DivisionID == "":
		return newValidationError("division_id", msgDivisionRequired)
	}
	return nil
}

// CreateCustomer validates the form and persists a new customer. The stored
// name is the first and last names joined with a single space.
func (s *CustomerService) CreateCustomer(ctx context.Context, form CustomerForm) (Customer, error) {
	logger := s.loggerWith(ctx, "CreateCustomer")

	if err := validateCustomerForm(form); err != nil {
		logger.ErrorContext(ctx, "customer creation rejected", "error", err, "error_kind", ErrorKind(err))
		return Customer{}, err
	}

	now := s.now()
	customer := Customer{
		ID:         s.idGenerator(),
		Name:       form.FirstName + " " + form.LastName,
		Address:    form.Address,
		PostalCode: form.PostalCode,
		Phone:      form.Phone,
		DivisionID: form.DivisionID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	affected, err := s.customers.InsertCustomer(ctx, customer)
	if err != nil {
		wrapped := wrapStore("insert customer", err)
		logger.ErrorContext(ctx, "customer creation failed", "error", wrapped, "error_kind", ErrorKind(wrapped))
		return Customer{}, wrapped
	}
	if affected == 0 {
		return Customer{}, &StoreError{Op: "insert customer", Err: fmt.Errorf("no rows affected")}
	}
	logger.InfoContext(ctx, "customer created", "customer_id", customer.ID)
	return customer, nil
}

// UpdateCustomer validates the form and persists the modified customer.
func (s *CustomerService) UpdateCustomer(ctx context.Context, id string, form CustomerForm) (Customer, error) {
	logger := s.loggerWith(ctx, "UpdateCustomer", "customer_id", id)

	if err := validateCustomerForm(form); err != nil {
		logger.ErrorContext(ctx, "customer modification rejected", "error", err, "error_kind", ErrorKind(err))
		return Customer{}, err
	}

	existing, err := s.customers.GetCustomer(ctx, id)
	if err != nil {
		return Customer{}, wrapStore("get customer", err)
	}

	existing.Name = form.FirstName + " " + form.LastName
	existing.Address = form.Address
	existing.PostalCode = form.PostalCode
	existing.Phone = form.Phone
	existing.DivisionID = form.DivisionID
	existing.UpdatedAt = s.now()

	affected, err := s.customers.UpdateCustomer(ctx, existing)
	if err != nil {
		return Customer{}, wrapStore("update customer", err)
	}
	if affected == 0 {
		return Customer{}, ErrNotFound
	}
	logger.InfoContext(ctx, "customer modified")
	return existing, nil
}

// GetCustomer fetches a single customer by id.
func (s *CustomerService) GetCustomer(ctx context.Context, id string) (Customer, error) {
	customer, err := s.customers.GetCustomer(ctx, id)
	if err != nil {
		return Customer{}, wrapStore("get customer", err)
	}
	return customer, nil
}

// ListCustomers enumerates all customers.
func (s *CustomerService) ListCustomers(ctx context.Context) ([]Customer, error) {
	customers, err := s.customers.ListCustomers(ctx)
	if err != nil {
		return nil, wrapStore("list customers", err)
	}
	return customers, nil
}

// DeleteCustomerCascading removes a customer after first removing the
// customer's appointments, gated by two independent confirmation prompts.
//
// When appointments exist, the prompter is asked once for the whole batch;
// declining aborts with nothing removed. Appointment deletions are issued one
// by one without a surrounding transaction, and a failure does not stop the
// remaining deletions. Successfully removed appointments stay removed even
// when a later prompt declines or a later deletion fails. The customer row is
// deleted only when every dependent appointment was removed and the second
// prompt confirms.
func (s *CustomerService) DeleteCustomerCascading(ctx context.Context, id string, prompter DeletionPrompter) (CascadeOutcome, error) {
	logger := s.loggerWith(ctx, "DeleteCustomerCascading", "customer_id", id)

	appointments, err := s.appointments.ListAppointmentsByCustomer(ctx, id)
	if err != nil {
		return CascadeOutcome{}, wrapStore("list appointments by customer", err)
	}

	outcome := CascadeOutcome{}

	if len(appointments) > 0 {
		if !prompter.ConfirmAppointmentPurge(len(appointments)) {
			logger.InfoContext(ctx, "cascading delete aborted at appointment prompt", "appointment_count", len(appointments))
			outcome.Aborted = true
			return outcome, nil
		}

		var failedIDs []string
		for _, appointment := range appointments {
			affected, err := s.appointments.DeleteAppointment(ctx, appointment.ID)
			if err != nil || affected == 0 {
				logger.ErrorContext(ctx, "dependent appointment deletion failed",
					"appointment_id", appointment.ID, "error", err)
				failedIDs = append(failedIDs, appointment.ID)
				continue
			}
			outcome.AppointmentsRemoved++
		}

		if len(failedIDs) > 0 {
			return outcome, &PartialCascadeError{CustomerID: id, FailedIDs: failedIDs}
		}
	}

	if !prompter.ConfirmCustomerDeletion() {
		logger.InfoContext(ctx, "cascading delete aborted at customer prompt",
			"appointments_removed", outcome.AppointmentsRemoved)
		outcome.Aborted = true
		return outcome, nil
	}

	affected, err := s.customers.DeleteCustomer(ctx, id)
	if err != nil {
		return outcome, wrapStore("delete customer", err)
	}
	outcome.Deleted = affected > 0
	if outcome.Deleted {
		logger.InfoContext(ctx, "customer deleted", "appointments_removed", outcome.AppointmentsRemoved)
	}
	return outcome, nil
}
