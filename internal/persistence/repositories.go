package persistence

import (
	"context"
	"time"
)

// AppointmentRepository exposes the appointment queries and mutations the
// application layer depends on. Mutations report the number of rows affected
// so callers can distinguish a no-op from a successful write.
type AppointmentRepository interface {
	GetAppointment(ctx context.Context, id string) (Appointment, error)
	ListAppointments(ctx context.Context) ([]Appointment, error)
	ListAppointmentsByCustomer(ctx context.Context, customerID string) ([]Appointment, error)
	ListAppointmentsByContact(ctx context.Context, contactID string) ([]Appointment, error)
	// ListAppointmentsInWindow returns appointments whose start falls within
	// [start, end], both boundaries inclusive, ordered by start ascending.
	ListAppointmentsInWindow(ctx context.Context, start, end time.Time) ([]Appointment, error)
	InsertAppointment(ctx context.Context, appointment Appointment) (int64, error)
	UpdateAppointment(ctx context.Context, appointment Appointment) (int64, error)
	DeleteAppointment(ctx context.Context, id string) (int64, error)
	// ListAppointmentTypesByMonth returns the distinct appointment types
	// whose start falls in the named month, any year.
	ListAppointmentTypesByMonth(ctx context.Context, month time.Month) ([]string, error)
	CountAppointmentsByMonthAndType(ctx context.Context, month time.Month, appointmentType string) (int, error)
}

// CustomerRepository exposes CRUD operations for customers.
type CustomerRepository interface {
	GetCustomer(ctx context.Context, id string) (Customer, error)
	ListCustomers(ctx context.Context) ([]Customer, error)
	InsertCustomer(ctx context.Context, customer Customer) (int64, error)
	UpdateCustomer(ctx context.Context, customer Customer) (int64, error)
	DeleteCustomer(ctx context.Context, id string) (int64, error)
}

// ContactRepository exposes lookup operations for contacts.
type ContactRepository interface {
	GetContact(ctx context.Context, id string) (Contact, error)
	ListContacts(ctx context.Context) ([]Contact, error)
}

// UserRepository exposes user lookup operations used by authentication and
// appointment ownership.
type UserRepository interface {
	GetUser(ctx context.Context, id string) (User, error)
	GetUserByUsername(ctx context.Context, username string) (User, error)
	ListUsers(ctx context.Context) ([]User, error)
	InsertUser(ctx context.Context, user User) (int64, error)
}

// ReferenceRepository exposes the country and division reference data used by
// customer forms and reports.
type ReferenceRepository interface {
	ListCountries(ctx context.Context) ([]Country, error)
	ListDivisionsByCountry(ctx context.Context, countryID string) ([]Division, error)
	GetDivision(ctx context.Context, id string) (Division, error)
}
