package application

import (
	"time"

	"github.com/example/client-scheduler/internal/scheduling"
)

// Appointment represents a validated, persistable appointment.
type Appointment struct {
	ID          string
	Title       string
	Description string
	Location    string
	Type        string
	Start       time.Time
	End         time.Time
	CustomerID  string
	UserID      string
	ContactID   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Interval returns the appointment's time range.
func (a Appointment) Interval() scheduling.Interval {
	return scheduling.Interval{Start: a.Start, End: a.End}
}

// AppointmentForm carries the raw field values collected by an appointment
// form. Nil pointers and empty identifier strings model unselected inputs.
type AppointmentForm struct {
	Title       string
	Description string
	Location    string
	Type        string
	StartDate   *time.Time
	EndDate     *time.Time
	StartTime   *scheduling.TimeOfDay
	EndTime     *scheduling.TimeOfDay
	CustomerID  string
	UserID      string
	ContactID   string
}

// Customer represents a customer record exposed by the application services.
type Customer struct {
	ID         string
	Name       string
	Address    string
	PostalCode string
	Phone      string
	DivisionID string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// CustomerForm carries the raw field values collected by a customer form.
type CustomerForm struct {
	FirstName  string
	LastName   string
	Address    string
	PostalCode string
	Phone      string
	CountryID  string
	DivisionID string
}

// Contact represents a company contact assignable to appointments.
type Contact struct {
	ID    string
	Name  string
	Email string
}

// User represents an operator account.
type User struct {
	ID       string
	Username string
}

// Country is a reference entry for customer forms and reports.
type Country struct {
	ID   string
	Name string
}

// Division is a first-level country division.
type Division struct {
	ID        string
	Name      string
	CountryID string
}

// AppointmentFilter narrows appointment listings.
type AppointmentFilter string

const (
	// FilterAll lists every appointment.
	FilterAll AppointmentFilter = "all"
	// FilterByMonth lists appointments starting in the current month.
	FilterByMonth AppointmentFilter = "month"
	// FilterByWeek lists appointments starting in the current ISO week.
	FilterByWeek AppointmentFilter = "week"
)

// CascadeOutcome reports the result of a cascading customer deletion.
type CascadeOutcome struct {
	Deleted             bool
	AppointmentsRemoved int
	Aborted             bool
}

// DeletionPrompter answers the two confirmation prompts of the cascading
// delete protocol. Implementations typically forward to the UI.
type DeletionPrompter interface {
	// ConfirmAppointmentPurge is asked once when the customer still has
	// dependent appointments; count is the number that would be removed.
	ConfirmAppointmentPurge(count int) bool
	// ConfirmCustomerDeletion is asked independently before the customer row
	// itself is removed.
	ConfirmCustomerDeletion() bool
}

// Notification is the login-time upcoming appointment status.
type Notification struct {
	Message     string
	Appointment *Appointment
}
