package main

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/example/client-scheduler/internal/application"
	"github.com/example/client-scheduler/internal/persistence"
	"github.com/example/client-scheduler/internal/testfixtures"
)

func TestAppointmentAdapterRoundTrip(t *testing.T) {
	t.Parallel()

	harness := testfixtures.NewSQLiteHarness(t)
	harness.SeedReferenceData(t)
	ctx := context.Background()

	if _, err := harness.Customers.InsertCustomer(ctx, testfixtures.CustomerFixture("customer-1", "Jordan Ellis", "division-1")); err != nil {
		t.Fatalf("failed to seed customer: %v", err)
	}

	adapter := newAppointmentRepositoryAdapter(harness.Appointments)
	start := time.Date(2026, time.March, 10, 14, 0, 0, 0, time.UTC)
	appointment := toApplicationAppointment(testfixtures.AppointmentFixture("appointment-1", start, "customer-1", "user-1", "contact-1"))

	affected, err := adapter.InsertAppointment(ctx, appointment)
	if err != nil {
		t.Fatalf("InsertAppointment: %v", err)
	}
	if affected != 1 {
		t.Fatalf("rows affected = %d, want 1", affected)
	}

	stored, err := adapter.GetAppointment(ctx, "appointment-1")
	if err != nil {
		t.Fatalf("GetAppointment: %v", err)
	}
	if !stored.Start.Equal(start) {
		t.Errorf("start = %v, want %v", stored.Start, start)
	}

	inWindow, err := adapter.ListAppointmentsInWindow(ctx, start, start.Add(15*time.Minute))
	if err != nil {
		t.Fatalf("ListAppointmentsInWindow: %v", err)
	}
	if len(inWindow) != 1 {
		t.Errorf("appointments in window = %d, want 1", len(inWindow))
	}
}

func TestCredentialStoreAdapterMapsNotFound(t *testing.T) {
	t.Parallel()

	harness := testfixtures.NewSQLiteHarness(t)
	adapter := newCredentialStoreAdapter(harness.Users)

	_, err := adapter.GetUserCredentialsByUsername(context.Background(), "stranger")
	if !errors.Is(err, application.ErrNotFound) {
		t.Fatalf("expected application.ErrNotFound, got %v", err)
	}
}

func TestActivityLogAdapterRoundTrip(t *testing.T) {
	t.Parallel()

	log := persistence.NewFileActivityLog(filepath.Join(t.TempDir(), "login_activity.txt"))
	adapter := newActivityLogAdapter(log)
	ctx := context.Background()

	attempt := application.LoginAttempt{
		Username:   "jellis",
		At:         testfixtures.ReferenceTime(),
		Successful: true,
	}
	if err := adapter.RecordLoginAttempt(ctx, attempt); err != nil {
		t.Fatalf("RecordLoginAttempt: %v", err)
	}

	attempts, err := adapter.ListLoginAttempts(ctx)
	if err != nil {
		t.Fatalf("ListLoginAttempts: %v", err)
	}
	if len(attempts) != 1 || attempts[0].Username != "jellis" || !attempts[0].Successful {
		t.Errorf("attempts = %+v, want the recorded entry", attempts)
	}
}
