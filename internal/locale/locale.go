// Package locale holds the bilingual message catalog used for login and
// notification text. English is the default; French is selected when the
// caller's locale resolves to the "fr" language.
package locale

import (
	"fmt"

	"golang.org/x/text/language"
)

// Messages groups the localized strings for one language.
type Messages struct {
	WarningTitle            string
	InvalidCredentials      string
	PendingAppointmentTitle string
	upcomingIntro           string
	appointmentIDLabel      string
	dateTimeLabel           string
	noPending               string
}

var english = Messages{
	WarningTitle:            "Warning Dialog",
	InvalidCredentials:      "Invalid Username and / or Password",
	PendingAppointmentTitle: "Pending Appointment",
	upcomingIntro:           "There is an appointment starting soon",
	appointmentIDLabel:      "Appointment ID",
	dateTimeLabel:           "Date & Time",
	noPending:               "There are no pending appointments",
}

var french = Messages{
	WarningTitle:            "Avertissement",
	InvalidCredentials:      "Nom d'utilisateur et/ou mot de passe invalide",
	PendingAppointmentTitle: "Rendez-vous en attente",
	upcomingIntro:           "Il y a un rendez-vous qui commence bientôt",
	appointmentIDLabel:      "ID du rendez-vous",
	dateTimeLabel:           "Date et heure",
	noPending:               "Il n'y a pas de rendez-vous en attente",
}

var matcher = language.NewMatcher([]language.Tag{
	language.English, // first entry is the fallback
	language.French,
})

// For returns the message set for the given locale tag. Any language other
// than French falls back to English.
func For(tag language.Tag) Messages {
	_, index, _ := matcher.Match(tag)
	if index == 1 {
		return french
	}
	return english
}

// UpcomingAppointment formats the login-time alert naming the appointment id
// and its start time.
func (m Messages) UpcomingAppointment(appointmentID, start string) string {
	return fmt.Sprintf("%s:\n%s: %s\n%s: %s",
		m.upcomingIntro, m.appointmentIDLabel, appointmentID, m.dateTimeLabel, start)
}

// NoPendingAppointments returns the quiet-state message.
func (m Messages) NoPendingAppointments() string {
	return m.noPending
}
