package task

import (
	"testing"
	"time"

	"github.com/matryer/is"
)

// a wednesday morning
var now = time.Date(2024, time.March, 6, 10, 30, 0, 0, time.UTC)

func TestStore_CreateTask(t *testing.T) {
	t.Run("parses a scheduling phrase out of the title", func(t *testing.T) {
		is := is.New(t)
		s := NewStore(nil)
		created, err := s.CreateTask(Fields{Title: "Buy milk tomorrow"}, now)
		is.NoErr(err)
		is.Equal(created.Title, "Buy milk")
		is.True(created.Deadline != nil)
		is.True(created.Deadline.Equal(time.Date(2024, time.March, 7, 9, 0, 0, 0, time.UTC)))
	})

	t.Run("no phrase is not an error", func(t *testing.T) {
		is := is.New(t)
		s := NewStore(nil)
		created, err := s.CreateTask(Fields{Title: "Buy milk"}, now)
		is.NoErr(err)
		is.Equal(created.Title, "Buy milk")
		is.Equal(created.Deadline, nil)
	})

	t.Run("an explicit deadline wins over the phrase", func(t *testing.T) {
		is := is.New(t)
		s := NewStore(nil)
		deadline := now.AddDate(0, 0, 5)
		created, err := s.CreateTask(Fields{Title: "Buy milk tomorrow", Deadline: &deadline}, now)
		is.NoErr(err)
		is.Equal(created.Title, "Buy milk tomorrow")
		is.True(created.Deadline.Equal(deadline))
	})

	t.Run("blank title fails", func(t *testing.T) {
		is := is.New(t)
		s := NewStore(nil)
		_, err := s.CreateTask(Fields{Title: "   "}, now)
		is.Equal(err, ErrValidation)
		is.Equal(len(s.Tasks), 0)
	})

	t.Run("order appends at the end", func(t *testing.T) {
		is := is.New(t)
		s := NewStore(nil)
		a, _ := s.CreateTask(Fields{Title: "a"}, now)
		b, _ := s.CreateTask(Fields{Title: "b"}, now)
		is.Equal(a.Order, 0)
		is.Equal(b.Order, 1)
		is.True(b.ID > a.ID) // ids sort by creation
	})
}

func TestStore_Setters(t *testing.T) {
	is := is.New(t)
	s := NewStore(nil)
	created, err := s.CreateTask(Fields{Title: "write report"}, now)
	is.NoErr(err)

	got, err := s.SetWhen(created.ID, WhenAnytime)
	is.NoErr(err)
	is.Equal(got.When, WhenAnytime)

	got, err = s.SetPriority(created.ID, PriorityHigh)
	is.NoErr(err)
	is.Equal(got.Priority, PriorityHigh)

	_, err = s.Rename(created.ID, " ")
	is.Equal(err, ErrValidation)

	_, err = s.SetWhen(ID(999), WhenToday)
	is.Equal(err, ErrNotFound)
}

func TestStore_ToggleComplete(t *testing.T) {
	t.Run("stages, then settles", func(t *testing.T) {
		is := is.New(t)
		s := NewStore(nil)
		created, _ := s.CreateTask(Fields{Title: "a"}, now)

		got, err := s.ToggleComplete(created.ID, now)
		is.NoErr(err)
		is.Equal(got.Completed, false) // nothing committed yet
		is.True(s.PendingCompletion(created.ID))

		done, err := s.Settle(created.ID)
		is.NoErr(err)
		is.Equal(done.Completed, true)
		is.True(done.CompletedAt != nil)
		is.Equal(s.PendingCompletion(created.ID), false)
	})

	t.Run("a second toggle inside the settle window cancels", func(t *testing.T) {
		is := is.New(t)
		s := NewStore(nil)
		created, _ := s.CreateTask(Fields{Title: "a", Recurring: Daily}, now)

		_, err := s.ToggleComplete(created.ID, now)
		is.NoErr(err)
		_, err = s.ToggleComplete(created.ID, now)
		is.NoErr(err)

		got, err := s.Settle(created.ID) // nothing staged, no-op
		is.NoErr(err)
		is.Equal(got.Completed, false)
		is.Equal(len(s.Tasks), 1) // no successor was created
	})

	t.Run("recurring settle inserts the successor in the same step", func(t *testing.T) {
		is := is.New(t)
		s := NewStore(nil)
		deadline := time.Date(2024, time.March, 8, 17, 0, 0, 0, time.UTC)
		created, _ := s.CreateTask(Fields{Title: "water plants", Recurring: Daily, Deadline: &deadline}, now)

		_, err := s.ToggleComplete(created.ID, now)
		is.NoErr(err)
		done, err := s.Settle(created.ID)
		is.NoErr(err)

		is.Equal(len(s.Tasks), 2)
		is.Equal(done.Completed, true)
		next := s.Tasks[1]
		is.Equal(next.Completed, false)
		is.Equal(next.Title, "water plants")
		is.True(next.ID != done.ID)
		is.True(next.Deadline.Equal(deadline.AddDate(0, 0, 1)))
	})

	t.Run("toggling back to incomplete never touches recurrence", func(t *testing.T) {
		is := is.New(t)
		s := NewStore(nil)
		created, _ := s.CreateTask(Fields{Title: "water plants", Recurring: Daily}, now)
		s.ToggleComplete(created.ID, now)
		s.Settle(created.ID)
		is.Equal(len(s.Tasks), 2)

		got, err := s.ToggleComplete(created.ID, now)
		is.NoErr(err)
		is.Equal(got.Completed, false)
		is.Equal(got.CompletedAt, nil)
		is.Equal(len(s.Tasks), 2) // no third instance
	})

	t.Run("unknown id", func(t *testing.T) {
		is := is.New(t)
		s := NewStore(nil)
		_, err := s.ToggleComplete(ID(1), now)
		is.Equal(err, ErrNotFound)
	})
}

func TestStore_DeleteTask(t *testing.T) {
	is := is.New(t)
	s := NewStore(nil)
	created, _ := s.CreateTask(Fields{Title: "a"}, now)
	is.NoErr(s.AddFocus(created.ID))

	is.NoErr(s.DeleteTask(created.ID))
	is.Equal(len(s.Tasks), 0)
	is.Equal(len(s.Focus), 0) // focus membership pruned
	is.Equal(s.DeleteTask(created.ID), ErrNotFound)
}

func TestStore_Projects(t *testing.T) {
	is := is.New(t)
	s := NewStore(nil)

	_, err := s.CreateProject("", now)
	is.Equal(err, ErrValidation)

	p, err := s.CreateProject("Home", now)
	is.NoErr(err)
	created, _ := s.CreateTask(Fields{Title: "fix door", ProjectID: &p.ID}, now)

	// deleting a project orphans its tasks, it does not delete them
	is.NoErr(s.DeleteProject(p.ID))
	got, _ := s.Get(created.ID)
	is.Equal(got.ProjectID, nil)
	is.Equal(s.DeleteProject(p.ID), ErrNotFound)
}

func TestStore_Tags(t *testing.T) {
	is := is.New(t)
	s := NewStore(nil)
	s.Seed(1)

	tag, err := s.CreateTag("errands", now)
	is.NoErr(err)
	found := false
	for _, c := range Palette {
		if c == tag.Color {
			found = true
		}
	}
	is.True(found) // color comes from the palette

	// same name ignoring case is a no-op
	again, err := s.CreateTag("Errands", now)
	is.NoErr(err)
	is.Equal(again.ID, tag.ID)
	is.Equal(len(s.Tags), 1)

	created, _ := s.CreateTask(Fields{Title: "post letter", Tags: []string{"errands", "urgent"}}, now)

	is.NoErr(s.DeleteTag(tag.ID))
	got, _ := s.Get(created.ID)
	is.Equal(got.Tags, []string{"urgent"}) // cascaded out of the task

	// second delete reports not found and repeats nothing
	is.Equal(s.DeleteTag(tag.ID), ErrNotFound)
	got, _ = s.Get(created.ID)
	is.Equal(got.Tags, []string{"urgent"})
}

func TestStore_SeededTagColors(t *testing.T) {
	is := is.New(t)
	a := NewStore(nil)
	b := NewStore(nil)
	a.Seed(42)
	b.Seed(42)
	for i, name := range []string{"one", "two", "three"} {
		ta, _ := a.CreateTag(name, now.Add(time.Duration(i)*time.Second))
		tb, _ := b.CreateTag(name, now.Add(time.Duration(i)*time.Second))
		is.Equal(ta.Color, tb.Color)
	}
}

func TestStore_Focus(t *testing.T) {
	is := is.New(t)
	s := NewStore(nil)
	var ids []ID
	for _, title := range []string{"a", "b", "c", "d"} {
		created, _ := s.CreateTask(Fields{Title: title}, now)
		ids = append(ids, created.ID)
	}

	is.NoErr(s.AddFocus(ids[0]))
	is.NoErr(s.AddFocus(ids[0])) // already a member, still fine
	is.NoErr(s.AddFocus(ids[1]))
	is.NoErr(s.AddFocus(ids[2]))
	is.Equal(s.AddFocus(ids[3]), ErrFocusFull)
	is.Equal(s.AddFocus(ID(999)), ErrNotFound)

	s.RemoveFocus(ids[1])
	is.NoErr(s.AddFocus(ids[3]))
	is.Equal(s.Focus, []ID{ids[0], ids[2], ids[3]})
}

func TestStore_Planning(t *testing.T) {
	is := is.New(t)
	s := NewStore(nil)

	is.Equal(s.NeedsPlanning(now), false) // nothing to plan yet

	a, _ := s.CreateTask(Fields{Title: "a"}, now)
	b, _ := s.CreateTask(Fields{Title: "b"}, now)
	is.Equal(s.NeedsPlanning(now), true)

	is.Equal(s.CompletePlanning(nil, now), ErrValidation)
	is.Equal(s.CompletePlanning([]ID{a.ID, ID(999)}, now), ErrNotFound)
	got, _ := s.Get(a.ID)
	is.Equal(got.When, WhenUnset) // rejected planning changed nothing

	is.NoErr(s.CompletePlanning([]ID{a.ID, b.ID}, now))
	got, _ = s.Get(a.ID)
	is.Equal(got.When, WhenToday)
	is.Equal(s.NeedsPlanning(now), false)
	is.Equal(s.NeedsPlanning(now.AddDate(0, 0, 1)), true) // due again next day
}

func TestShouldPlan(t *testing.T) {
	is := is.New(t)
	yesterday := now.AddDate(0, 0, -1)
	sameDayLater := now.Add(2 * time.Hour)

	is.Equal(ShouldPlan(nil, now, true), true)
	is.Equal(ShouldPlan(nil, now, false), false)
	is.Equal(ShouldPlan(&yesterday, now, true), true)
	is.Equal(ShouldPlan(&sameDayLater, now, true), false)
}

func TestStore_Snapshot(t *testing.T) {
	is := is.New(t)
	s := NewStore(nil)
	s.CreateTask(Fields{Title: "a"}, now)
	s.CreateProject("Home", now)
	s.CreateTag("errands", now)

	bundle := s.Snapshot(now)
	is.Equal(bundle.Version, SchemaVersion)
	is.True(bundle.ExportDate.Equal(now))
	is.Equal(len(bundle.Tasks), 1)
	is.Equal(len(bundle.Projects), 1)
	is.Equal(len(bundle.Tags), 1)
}
