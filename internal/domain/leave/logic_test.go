package leave

import (
	"testing"
	"time"
)

func TestCalculateDaysInclusive(t *testing.T) {
	from := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 4, 3, 0, 0, 0, 0, time.UTC)
	days, err := CalculateDays(from, to)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if days != 3 {
		t.Fatalf("expected 3 inclusive days, got %d", days)
	}
}

func TestCalculateDaysSingleDay(t *testing.T) {
	day := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	days, err := CalculateDays(day, day)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if days != 1 {
		t.Fatalf("expected a single-day leave to count as 1, got %d", days)
	}
}

func TestCalculateDaysRejectsInvertedRange(t *testing.T) {
	from := time.Date(2026, 4, 3, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	if _, err := CalculateDays(from, to); err != ErrInvalidDates {
		t.Fatalf("expected ErrInvalidDates, got %v", err)
	}
}

func TestCalculateDaysIgnoresTimeOfDay(t *testing.T) {
	from := time.Date(2026, 4, 1, 23, 0, 0, 0, time.UTC)
	to := time.Date(2026, 4, 2, 1, 0, 0, 0, time.UTC)
	days, err := CalculateDays(from, to)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if days != 2 {
		t.Fatalf("expected 2 days across midnight, got %d", days)
	}
}
