package task

import (
	"errors"
	"math/rand"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/td0m/stuff/pkg/dates"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation failed")
	ErrFocusFull  = errors.New("focus set is full")
)

// MaxFocus caps the number of tasks marked for focused work.
const MaxFocus = 3

// Store owns the canonical task, project and tag collections. The exported
// fields are what gets snapshotted; engines only ever see them read-only.
// A single caller drives the store at a time, so there is no locking.
type Store struct {
	Tasks       []Task
	Projects    []Project
	Tags        []Tag
	Focus       []ID
	LastPlanned *time.Time

	// completions staged by ToggleComplete, waiting for Settle
	pending map[ID]time.Time

	lastID ID
	rng    *rand.Rand
	log    *zap.Logger
}

func NewStore(log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{
		pending: map[ID]time.Time{},
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
		log:     log,
	}
}

// Seed makes the tag palette pick reproducible.
func (s *Store) Seed(seed int64) {
	s.rng = rand.New(rand.NewSource(seed))
}

// Reindex restores the ID high-water mark after a snapshot load.
func (s *Store) Reindex() {
	for _, t := range s.Tasks {
		if t.ID > s.lastID {
			s.lastID = t.ID
		}
	}
	for _, p := range s.Projects {
		if p.ID > s.lastID {
			s.lastID = p.ID
		}
	}
	for _, t := range s.Tags {
		if t.ID > s.lastID {
			s.lastID = t.ID
		}
	}
}

func (s *Store) nextID(now time.Time) ID {
	id := ID(now.UnixMilli())
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return id
}

// Fields are the caller-supplied parts of a new task. A nil Deadline lets a
// scheduling phrase in the title resolve one.
type Fields struct {
	Title     string
	Notes     string
	Priority  Priority
	When      When
	ProjectID *ID
	Tags      []string
	Checklist []ChecklistItem
	Deadline  *time.Time
	Reminder  *time.Time
	Recurring Recurring
	Estimate  Duration
}

// CreateTask appends a new task. Without an explicit deadline the title is
// run through the date parser; on a match the phrase is stripped from the
// title and the resolved date becomes the deadline. No match is a normal
// outcome, not an error.
func (s *Store) CreateTask(f Fields, now time.Time) (Task, error) {
	title := strings.TrimSpace(f.Title)
	deadline := f.Deadline
	if deadline == nil {
		if m := dates.Parse(title, now); m != nil {
			title = dates.Strip(title, m.Text)
			d := m.Date
			deadline = &d
		}
	}
	if title == "" {
		return Task{}, ErrValidation
	}

	t := Task{
		ID:        s.nextID(now),
		Title:     title,
		Notes:     f.Notes,
		Priority:  f.Priority,
		When:      f.When,
		ProjectID: f.ProjectID,
		Tags:      f.Tags,
		Checklist: f.Checklist,
		Deadline:  deadline,
		Reminder:  f.Reminder,
		Recurring: f.Recurring,
		Estimate:  f.Estimate,
		// append-at-end; colliding orders are fine, the view sort is stable
		Order:     len(s.Tasks),
		CreatedAt: now,
	}
	s.Tasks = append(s.Tasks, t)
	s.log.Debug("task created", zap.Int64("id", int64(t.ID)), zap.String("title", t.Title))
	return t, nil
}

func (s *Store) Get(id ID) (Task, error) {
	for _, t := range s.Tasks {
		if t.ID == id {
			return t, nil
		}
	}
	return Task{}, ErrNotFound
}

func (s *Store) update(id ID, fn func(*Task)) (Task, error) {
	for i := range s.Tasks {
		if s.Tasks[i].ID == id {
			fn(&s.Tasks[i])
			return s.Tasks[i], nil
		}
	}
	return Task{}, ErrNotFound
}

func (s *Store) Rename(id ID, title string) (Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return Task{}, ErrValidation
	}
	return s.update(id, func(t *Task) { t.Title = title })
}

func (s *Store) SetNotes(id ID, notes string) (Task, error) {
	return s.update(id, func(t *Task) { t.Notes = notes })
}

func (s *Store) SetPriority(id ID, p Priority) (Task, error) {
	return s.update(id, func(t *Task) { t.Priority = p })
}

func (s *Store) SetWhen(id ID, w When) (Task, error) {
	return s.update(id, func(t *Task) { t.When = w })
}

func (s *Store) SetProject(id ID, project *ID) (Task, error) {
	return s.update(id, func(t *Task) { t.ProjectID = project })
}

func (s *Store) SetTags(id ID, tags []string) (Task, error) {
	return s.update(id, func(t *Task) { t.Tags = tags })
}

func (s *Store) SetChecklist(id ID, items []ChecklistItem) (Task, error) {
	return s.update(id, func(t *Task) { t.Checklist = items })
}

func (s *Store) SetDeadline(id ID, deadline *time.Time) (Task, error) {
	return s.update(id, func(t *Task) { t.Deadline = deadline })
}

func (s *Store) SetReminder(id ID, reminder *time.Time) (Task, error) {
	return s.update(id, func(t *Task) { t.Reminder = reminder })
}

func (s *Store) SetRecurring(id ID, r Recurring) (Task, error) {
	return s.update(id, func(t *Task) { t.Recurring = r })
}

func (s *Store) SetEstimate(id ID, d Duration) (Task, error) {
	return s.update(id, func(t *Task) { t.Estimate = d })
}

func (s *Store) SetOrder(id ID, order int) (Task, error) {
	return s.update(id, func(t *Task) { t.Order = order })
}

// DeleteTask removes the task and prunes its focus membership and any staged
// completion.
func (s *Store) DeleteTask(id ID) error {
	for i := range s.Tasks {
		if s.Tasks[i].ID == id {
			s.Tasks = append(s.Tasks[:i], s.Tasks[i+1:]...)
			s.RemoveFocus(id)
			delete(s.pending, id)
			s.log.Debug("task deleted", zap.Int64("id", int64(id)))
			return nil
		}
	}
	return ErrNotFound
}

// ToggleComplete stages completion of an incomplete task; the change commits
// when Settle runs after the settle delay, and a second toggle before then
// cancels it instead. Toggling a completed task back clears completion
// immediately and never touches recurrence.
func (s *Store) ToggleComplete(id ID, now time.Time) (Task, error) {
	t, err := s.Get(id)
	if err != nil {
		return Task{}, err
	}
	if t.Completed {
		return s.update(id, func(t *Task) {
			t.Completed = false
			t.CompletedAt = nil
		})
	}
	if _, staged := s.pending[id]; staged {
		delete(s.pending, id)
		s.log.Debug("completion cancelled", zap.Int64("id", int64(id)))
		return t, nil
	}
	s.pending[id] = now
	return t, nil
}

// PendingCompletion reports whether a completion is staged but not settled.
func (s *Store) PendingCompletion(id ID) bool {
	_, ok := s.pending[id]
	return ok
}

// Settle commits a staged completion. A recurring task's successor enters
// the active set in the same step, so the completion and the new instance
// are never observable apart. Settling a task with nothing staged is a
// no-op.
func (s *Store) Settle(id ID) (Task, error) {
	at, staged := s.pending[id]
	if !staged {
		return s.Get(id)
	}
	delete(s.pending, id)
	done, err := s.update(id, func(t *Task) {
		t.Completed = true
		t.CompletedAt = &at
	})
	if err != nil {
		return Task{}, err
	}
	if done.Recurring != "" {
		next := NextOccurrence(done, at)
		next.ID = s.nextID(at)
		next.Order = len(s.Tasks)
		s.Tasks = append(s.Tasks, next)
		s.log.Debug("recurring task rescheduled",
			zap.Int64("id", int64(done.ID)), zap.Int64("next", int64(next.ID)))
	}
	return done, nil
}

// CreateProject adds a project with the default look.
func (s *Store) CreateProject(name string, now time.Time) (Project, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Project{}, ErrValidation
	}
	p := Project{ID: s.nextID(now), Name: name, Color: defaultProjectColor}
	s.Projects = append(s.Projects, p)
	s.log.Debug("project created", zap.Int64("id", int64(p.ID)), zap.String("name", p.Name))
	return p, nil
}

func (s *Store) GetProject(id ID) (Project, error) {
	for _, p := range s.Projects {
		if p.ID == id {
			return p, nil
		}
	}
	return Project{}, ErrNotFound
}

func (s *Store) updateProject(id ID, fn func(*Project)) (Project, error) {
	for i := range s.Projects {
		if s.Projects[i].ID == id {
			fn(&s.Projects[i])
			return s.Projects[i], nil
		}
	}
	return Project{}, ErrNotFound
}

func (s *Store) RenameProject(id ID, name string) (Project, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Project{}, ErrValidation
	}
	return s.updateProject(id, func(p *Project) { p.Name = name })
}

func (s *Store) SetProjectColor(id ID, color string) (Project, error) {
	return s.updateProject(id, func(p *Project) { p.Color = color })
}

func (s *Store) SetProjectEmoji(id ID, emoji *string) (Project, error) {
	return s.updateProject(id, func(p *Project) { p.Emoji = emoji })
}

// DeleteProject removes the project and orphans its tasks: every reference
// is nulled, nothing cascades to the tasks themselves. The caller resets its
// view if the project was on screen.
func (s *Store) DeleteProject(id ID) error {
	found := false
	for i := range s.Projects {
		if s.Projects[i].ID == id {
			s.Projects = append(s.Projects[:i], s.Projects[i+1:]...)
			found = true
			break
		}
	}
	if !found {
		return ErrNotFound
	}
	for i := range s.Tasks {
		if s.Tasks[i].ProjectID != nil && *s.Tasks[i].ProjectID == id {
			s.Tasks[i].ProjectID = nil
		}
	}
	s.log.Debug("project deleted", zap.Int64("id", int64(id)))
	return nil
}

// CreateTag adds a tag with a color picked from the palette at random.
// An existing name (ignoring case) is returned as is rather than duplicated.
func (s *Store) CreateTag(name string, now time.Time) (Tag, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Tag{}, ErrValidation
	}
	for _, t := range s.Tags {
		if strings.EqualFold(t.Name, name) {
			return t, nil
		}
	}
	tag := Tag{ID: s.nextID(now), Name: name, Color: Palette[s.rng.Intn(len(Palette))]}
	s.Tags = append(s.Tags, tag)
	s.log.Debug("tag created", zap.Int64("id", int64(tag.ID)), zap.String("name", tag.Name))
	return tag, nil
}

// DeleteTag removes the tag and its name from every task's tag set.
func (s *Store) DeleteTag(id ID) error {
	var name string
	found := false
	for i := range s.Tags {
		if s.Tags[i].ID == id {
			name = s.Tags[i].Name
			s.Tags = append(s.Tags[:i], s.Tags[i+1:]...)
			found = true
			break
		}
	}
	if !found {
		return ErrNotFound
	}
	for i := range s.Tasks {
		tags := s.Tasks[i].Tags
		kept := tags[:0:0]
		for _, t := range tags {
			if t != name {
				kept = append(kept, t)
			}
		}
		s.Tasks[i].Tags = kept
	}
	s.log.Debug("tag deleted", zap.Int64("id", int64(id)), zap.String("name", name))
	return nil
}

// AddFocus marks a task for focused work; at most MaxFocus tasks at a time.
func (s *Store) AddFocus(id ID) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	for _, f := range s.Focus {
		if f == id {
			return nil
		}
	}
	if len(s.Focus) >= MaxFocus {
		return ErrFocusFull
	}
	s.Focus = append(s.Focus, id)
	return nil
}

func (s *Store) RemoveFocus(id ID) {
	for i, f := range s.Focus {
		if f == id {
			s.Focus = append(s.Focus[:i], s.Focus[i+1:]...)
			return
		}
	}
}
