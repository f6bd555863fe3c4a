package application

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"golang.org/x/text/language"

	"github.com/example/client-scheduler/internal/locale"
)

// upcomingWindow is how far ahead of the reference instant the notifier
// looks for a pending appointment.
const upcomingWindow = 15 * time.Minute

// notificationTimeLayout renders start times inside notification messages.
const notificationTimeLayout = "2006-01-02 15:04"

// UpcomingAppointmentSource lists appointments whose start falls inside a
// closed time window.
type UpcomingAppointmentSource interface {
	ListAppointmentsInWindow(ctx context.Context, from, to time.Time) ([]Appointment, error)
}

// UpcomingNotifier produces the localized login-time status about
// appointments starting within the next fifteen minutes.
type UpcomingNotifier struct {
	source UpcomingAppointmentSource
	logger *slog.Logger
}

// NewUpcomingNotifier wires dependencies for the login-time check.
func NewUpcomingNotifier(source UpcomingAppointmentSource, logger *slog.Logger) *UpcomingNotifier {
	return &UpcomingNotifier{source: source, logger: defaultLogger(logger)}
}

// CheckUpcoming reports the earliest appointment starting within fifteen
// minutes of now, both boundaries included, with the message rendered in the
// viewer's language. When nothing is pending the no-appointments message is
// returned with a nil Appointment.
func (n *UpcomingNotifier) CheckUpcoming(ctx context.Context, now time.Time, tag language.Tag) (Notification, error) {
	logger := serviceLogger(ctx, n.logger, "UpcomingNotifier", "CheckUpcoming")

	messages := locale.For(tag)

	upcoming, err := n.source.ListAppointmentsInWindow(ctx, now, now.Add(upcomingWindow))
	if err != nil {
		wrapped := wrapStore("list appointments in window", err)
		logger.ErrorContext(ctx, "upcoming appointment check failed", "error", wrapped, "error_kind", ErrorKind(wrapped))
		return Notification{}, wrapped
	}

	if len(upcoming) == 0 {
		return Notification{Message: messages.NoPendingAppointments()}, nil
	}

	sort.Slice(upcoming, func(i, j int) bool {
		return upcoming[i].Start.Before(upcoming[j].Start)
	})
	first := upcoming[0]
	logger.InfoContext(ctx, "upcoming appointment pending", "appointment_id", first.ID, "start", first.Start)
	return Notification{
		Message:     messages.UpcomingAppointment(first.ID, first.Start.Format(notificationTimeLayout)),
		Appointment: &first,
	}, nil
}
