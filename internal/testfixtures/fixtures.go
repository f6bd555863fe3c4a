// Package testfixtures gathers deterministic clocks, identifier sequences,
// entity builders, and a migrated SQLite harness shared by the persistence
// and service tests.
package testfixtures

import (
	"time"

	"github.com/example/client-scheduler/internal/application"
	"github.com/example/client-scheduler/internal/persistence"
	"github.com/example/client-scheduler/internal/scheduling"
)

// ReferenceTime is the shared anchor instant for deterministic tests: a
// Monday at noon UTC.
func ReferenceTime() time.Time {
	return time.Date(2026, time.March, 9, 12, 0, 0, 0, time.UTC)
}

// CountryFixture returns a minimal country row.
func CountryFixture(id, name string) persistence.Country {
	return persistence.Country{ID: id, Name: name}
}

// DivisionFixture returns a minimal division row tied to a country.
func DivisionFixture(id, name, countryID string) persistence.Division {
	return persistence.Division{ID: id, Name: name, CountryID: countryID}
}

// ContactFixture returns a contact row with a derived email address.
func ContactFixture(id, name string) persistence.Contact {
	return persistence.Contact{ID: id, Name: name, Email: name + "@example.com"}
}

// UserFixture returns a user row with the supplied credential hash.
func UserFixture(id, username, passwordHash string) persistence.User {
	return persistence.User{
		ID:           id,
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    ReferenceTime(),
		UpdatedAt:    ReferenceTime(),
	}
}

// CustomerFixture returns a customer row referencing the given division.
func CustomerFixture(id, name, divisionID string) persistence.Customer {
	return persistence.Customer{
		ID:         id,
		Name:       name,
		Address:    "12 Harbour Street",
		PostalCode: "10001",
		Phone:      "555-0100",
		DivisionID: divisionID,
		CreatedAt:  ReferenceTime(),
		UpdatedAt:  ReferenceTime(),
	}
}

// AppointmentFixture returns a one-hour appointment starting at start.
func AppointmentFixture(id string, start time.Time, customerID, userID, contactID string) persistence.Appointment {
	return persistence.Appointment{
		ID:          id,
		Title:       "Planning session",
		Description: "Quarterly planning",
		Location:    "Main office",
		Type:        "Planning",
		Start:       start,
		End:         start.Add(time.Hour),
		CustomerID:  customerID,
		UserID:      userID,
		ContactID:   contactID,
		CreatedAt:   ReferenceTime(),
		UpdatedAt:   ReferenceTime(),
	}
}

// AppointmentFormFixture returns a complete, valid appointment form for the
// given day and hour range in UTC.
func AppointmentFormFixture(day time.Time, startHour, endHour int, customerID, userID, contactID string) application.AppointmentForm {
	date := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	start := scheduling.TimeOfDay{Hour: startHour}
	end := scheduling.TimeOfDay{Hour: endHour}
	return application.AppointmentForm{
		Title:       "Planning session",
		Description: "Quarterly planning",
		Location:    "Main office",
		Type:        "Planning",
		StartDate:   &date,
		EndDate:     &date,
		StartTime:   &start,
		EndTime:     &end,
		CustomerID:  customerID,
		UserID:      userID,
		ContactID:   contactID,
	}
}

// CustomerFormFixture returns a complete, valid customer form.
func CustomerFormFixture(countryID, divisionID string) application.CustomerForm {
	return application.CustomerForm{
		FirstName:  "Jordan",
		LastName:   "Ellis",
		Address:    "12 Harbour Street",
		PostalCode: "10001",
		Phone:      "555-0100",
		CountryID:  countryID,
		DivisionID: divisionID,
	}
}
