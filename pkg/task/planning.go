package task

import (
	"time"

	"go.uber.org/zap"
)

// SchemaVersion marks export bundles.
const SchemaVersion = "2.0.0"

// ShouldPlan reports whether the daily planning prompt is due: there is
// something left to do and planning has not happened on this calendar day.
func ShouldPlan(last *time.Time, now time.Time, hasIncomplete bool) bool {
	if !hasIncomplete {
		return false
	}
	return last == nil || !sameDay(*last, now)
}

func (s *Store) HasIncomplete() bool {
	for _, t := range s.Tasks {
		if !t.Completed {
			return true
		}
	}
	return false
}

func (s *Store) NeedsPlanning(now time.Time) bool {
	return ShouldPlan(s.LastPlanned, now, s.HasIncomplete())
}

// CompletePlanning moves the selected tasks into the today bucket and
// records the planning date. At least one task must be selected; an unknown
// id aborts the whole update.
func (s *Store) CompletePlanning(ids []ID, now time.Time) error {
	if len(ids) == 0 {
		return ErrValidation
	}
	for _, id := range ids {
		if _, err := s.Get(id); err != nil {
			return err
		}
	}
	for _, id := range ids {
		s.update(id, func(t *Task) { t.When = WhenToday })
	}
	s.LastPlanned = &now
	s.log.Info("daily planning completed", zap.Int("tasks", len(ids)))
	return nil
}

// Export is the full-state bundle handed to the exporting collaborator.
type Export struct {
	Tasks      []Task    `json:"tasks"`
	Projects   []Project `json:"projects"`
	Tags       []Tag     `json:"tags"`
	Version    string    `json:"version"`
	ExportDate time.Time `json:"exportDate"`
}

// Snapshot produces the export bundle; writing it anywhere is the caller's
// business.
func (s *Store) Snapshot(now time.Time) Export {
	return Export{
		Tasks:      s.Tasks,
		Projects:   s.Projects,
		Tags:       s.Tags,
		Version:    SchemaVersion,
		ExportDate: now,
	}
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
