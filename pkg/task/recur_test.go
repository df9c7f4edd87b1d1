package task

import (
	"testing"
	"time"
)

func TestNextOccurrence_Deadline(t *testing.T) {
	deadline := time.Date(2024, time.January, 31, 10, 0, 0, 0, time.UTC)
	tests := []struct {
		name      string
		recurring Recurring
		want      time.Time
	}{
		{"daily", Daily, time.Date(2024, time.February, 1, 10, 0, 0, 0, time.UTC)},
		{"weekly", Weekly, time.Date(2024, time.February, 7, 10, 0, 0, 0, time.UTC)},
		// Jan 31 + 1 month overflows February; AddDate normalises instead of
		// clamping, and 2024 is a leap year
		{"monthly", Monthly, time.Date(2024, time.March, 2, 10, 0, 0, 0, time.UTC)},
		{"yearly", Yearly, time.Date(2025, time.January, 31, 10, 0, 0, 0, time.UTC)},
		{"unknown value keeps deadline", Recurring("fortnightly"), deadline},
	}
	now := time.Date(2024, time.February, 2, 9, 0, 0, 0, time.UTC)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := deadline
			done := now
			orig := Task{
				Title:       "water plants",
				Completed:   true,
				CompletedAt: &done,
				Deadline:    &d,
				Reminder:    &d,
				Recurring:   tt.recurring,
				CreatedAt:   deadline.AddDate(0, 0, -3),
			}
			next := NextOccurrence(orig, now)
			if next.Completed || next.CompletedAt != nil {
				t.Errorf("successor still completed: %+v", next)
			}
			if next.Reminder != nil {
				t.Error("reminder not cleared")
			}
			if !next.CreatedAt.Equal(now) {
				t.Errorf("CreatedAt = %v, want %v", next.CreatedAt, now)
			}
			if next.Deadline == nil || !next.Deadline.Equal(tt.want) {
				t.Errorf("Deadline = %v, want %v", next.Deadline, tt.want)
			}
		})
	}
}

func TestNextOccurrence_NoDeadline(t *testing.T) {
	now := time.Now()
	next := NextOccurrence(Task{Title: "review inbox", Recurring: Daily}, now)
	if next.Deadline != nil {
		t.Errorf("Deadline = %v, want nil", next.Deadline)
	}
}
