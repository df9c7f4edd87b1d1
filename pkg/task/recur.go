package task

import "time"

// NextOccurrence clones a recurring task into its next instance: completion
// and reminder cleared, creation time reset, deadline advanced by one
// recurrence unit. AddDate handles month and year arithmetic, so overflow
// normalises (Jan 31 + 1 month rolls past the end of February) rather than
// clamping. A task with no deadline clones without one; an unrecognised
// recurring value leaves the deadline as is.
//
// The store assigns identity and order before the clone enters the active
// set.
func NextOccurrence(t Task, now time.Time) Task {
	t.Completed = false
	t.CompletedAt = nil
	t.Reminder = nil
	t.CreatedAt = now
	if t.Deadline != nil {
		d := *t.Deadline
		switch t.Recurring {
		case Daily:
			d = d.AddDate(0, 0, 1)
		case Weekly:
			d = d.AddDate(0, 0, 7)
		case Monthly:
			d = d.AddDate(0, 1, 0)
		case Yearly:
			d = d.AddDate(1, 0, 0)
		}
		t.Deadline = &d
	}
	return t
}
