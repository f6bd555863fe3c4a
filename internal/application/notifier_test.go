package application

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"golang.org/x/text/language"
)

type stubWindowSource struct {
	appointments []Appointment
	err          error
	gotFrom      time.Time
	gotTo        time.Time
}

func (s *stubWindowSource) ListAppointmentsInWindow(_ context.Context, from, to time.Time) ([]Appointment, error) {
	s.gotFrom = from
	s.gotTo = to
	if s.err != nil {
		return nil, s.err
	}
	return s.appointments, nil
}

func TestCheckUpcomingUsesFifteenMinuteWindow(t *testing.T) {
	t.Parallel()

	source := &stubWindowSource{}
	notifier := NewUpcomingNotifier(source, nil)
	now := time.Date(2026, time.March, 9, 12, 0, 0, 0, time.UTC)

	if _, err := notifier.CheckUpcoming(context.Background(), now, language.English); err != nil {
		t.Fatalf("CheckUpcoming: %v", err)
	}
	if !source.gotFrom.Equal(now) {
		t.Errorf("window start = %v, want %v", source.gotFrom, now)
	}
	if want := now.Add(15 * time.Minute); !source.gotTo.Equal(want) {
		t.Errorf("window end = %v, want %v", source.gotTo, want)
	}
}

func TestCheckUpcomingReportsEarliestAppointment(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, time.March, 9, 12, 0, 0, 0, time.UTC)
	source := &stubWindowSource{
		appointments: []Appointment{
			{ID: "appointment-2", Start: now.Add(10 * time.Minute)},
			{ID: "appointment-1", Start: now.Add(5 * time.Minute)},
		},
	}
	notifier := NewUpcomingNotifier(source, nil)

	notification, err := notifier.CheckUpcoming(context.Background(), now, language.English)
	if err != nil {
		t.Fatalf("CheckUpcoming: %v", err)
	}
	if notification.Appointment == nil {
		t.Fatal("expected a pending appointment")
	}
	if notification.Appointment.ID != "appointment-1" {
		t.Errorf("appointment id = %q, want %q", notification.Appointment.ID, "appointment-1")
	}
	if !strings.Contains(notification.Message, "appointment-1") {
		t.Errorf("message %q does not name the appointment id", notification.Message)
	}
	if !strings.Contains(notification.Message, "2026-03-09 12:05") {
		t.Errorf("message %q does not name the start time", notification.Message)
	}
}

func TestCheckUpcomingQuietState(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		tag         language.Tag
		wantMessage string
	}{
		{
			name:        "english",
			tag:         language.English,
			wantMessage: "There are no pending appointments",
		},
		{
			name:        "french",
			tag:         language.French,
			wantMessage: "Il n'y a pas de rendez-vous en attente",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			notifier := NewUpcomingNotifier(&stubWindowSource{}, nil)
			now := time.Date(2026, time.March, 9, 12, 0, 0, 0, time.UTC)

			notification, err := notifier.CheckUpcoming(context.Background(), now, tt.tag)
			if err != nil {
				t.Fatalf("CheckUpcoming: %v", err)
			}
			if notification.Appointment != nil {
				t.Error("expected no pending appointment")
			}
			if notification.Message != tt.wantMessage {
				t.Errorf("message = %q, want %q", notification.Message, tt.wantMessage)
			}
		})
	}
}

func TestCheckUpcomingFrenchAlert(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, time.March, 9, 12, 0, 0, 0, time.UTC)
	source := &stubWindowSource{
		appointments: []Appointment{{ID: "appointment-1", Start: now.Add(5 * time.Minute)}},
	}
	notifier := NewUpcomingNotifier(source, nil)

	notification, err := notifier.CheckUpcoming(context.Background(), now, language.MustParse("fr-CA"))
	if err != nil {
		t.Fatalf("CheckUpcoming: %v", err)
	}
	if !strings.Contains(notification.Message, "rendez-vous") {
		t.Errorf("message %q is not in French", notification.Message)
	}
}

func TestCheckUpcomingSurfacesSourceFailure(t *testing.T) {
	t.Parallel()

	source := &stubWindowSource{err: errors.New("connection lost")}
	notifier := NewUpcomingNotifier(source, nil)
	now := time.Date(2026, time.March, 9, 12, 0, 0, 0, time.UTC)

	_, err := notifier.CheckUpcoming(context.Background(), now, language.English)

	var storeErr *StoreError
	if !errors.As(err, &storeErr) {
		t.Fatalf("expected StoreError, got %v", err)
	}
}
