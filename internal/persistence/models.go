package persistence

import "time"

// Appointment represents a booked appointment row.
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

// Customer represents a customer record. Appointments reference customers by
// CustomerID; the relation is discovered by query, never stored on the
// customer itself.
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

// Contact represents a company contact assignable to appointments.
type Contact struct {
	ID    string
	Name  string
	Email string
}

// User represents an operator account able to log in and own appointments.
type User struct {
	ID           string
	Username     string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Country is a reference row used when selecting customer divisions.
type Country struct {
	ID   string
	Name string
}

// Division is a first-level country division referenced by customers.
type Division struct {
	ID        string
	Name      string
	CountryID string
}
