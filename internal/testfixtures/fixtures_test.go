package testfixtures

import (
	"testing"
	"time"
)

func TestClockAdvance(t *testing.T) {
	t.Parallel()

	clock := NewClock(time.Time{})
	start := clock.Now()

	updated := clock.Advance(30 * time.Minute)
	if want := start.Add(30 * time.Minute); !updated.Equal(want) {
		t.Errorf("Advance returned %v, want %v", updated, want)
	}
	if !clock.Now().Equal(updated) {
		t.Errorf("Now = %v, want %v", clock.Now(), updated)
	}
}

func TestClockSet(t *testing.T) {
	t.Parallel()

	clock := NewClock(time.Time{})
	target := time.Date(2026, time.July, 1, 9, 0, 0, 0, time.UTC)

	clock.Set(target)
	if !clock.Now().Equal(target) {
		t.Errorf("Now = %v, want %v", clock.Now(), target)
	}
}

func TestIDGeneratorSequence(t *testing.T) {
	t.Parallel()

	generator := NewIDGenerator("appointment")
	if got := generator.Next(); got != "appointment-1" {
		t.Errorf("first id = %q, want %q", got, "appointment-1")
	}
	if got := generator.Next(); got != "appointment-2" {
		t.Errorf("second id = %q, want %q", got, "appointment-2")
	}
}

func TestServiceFactoryDefaults(t *testing.T) {
	t.Parallel()

	factory := NewServiceFactory()
	if factory.Clock == nil || factory.IDGenerator == nil {
		t.Fatal("factory must initialise clock and id generator")
	}
	if !factory.Clock.Now().Equal(ReferenceTime()) {
		t.Errorf("factory clock = %v, want %v", factory.Clock.Now(), ReferenceTime())
	}
}
