package view

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/td0m/stuff/pkg/task"
)

// View identifies a derived task list.
type View string

const (
	Inbox     View = "inbox"
	Today     View = "today"
	Upcoming  View = "upcoming"
	Anytime   View = "anytime"
	Focus     View = "focus"
	Project   View = "project"
	Dashboard View = "dashboard"
)

// Selection is the transient on-screen choice: a view plus, for project
// views, the project it shows.
type Selection struct {
	View      View
	ProjectID task.ID
}

// Filter derives the ordered task list for a selection. Every input comes in
// as an argument; nothing is read from ambient state. Completed tasks are
// excluded everywhere except project views, which show full history. The
// dashboard is not a task list and always comes back empty.
func Filter(tasks []task.Task, sel Selection, focus []task.ID, now time.Time) []task.Task {
	var keep func(task.Task) bool
	switch sel.View {
	case Inbox:
		keep = func(t task.Task) bool {
			return !t.Completed && t.When == task.WhenUnset && t.ProjectID == nil
		}
	case Today:
		keep = func(t task.Task) bool {
			return !t.Completed && dueToday(t, now)
		}
	case Upcoming:
		keep = func(t task.Task) bool {
			return !t.Completed &&
				(t.When == task.WhenUpcoming || (t.Deadline != nil && t.Deadline.After(now)))
		}
	case Anytime:
		keep = func(t task.Task) bool {
			return !t.Completed && t.When == task.WhenAnytime
		}
	case Focus:
		in := map[task.ID]bool{}
		for _, id := range focus {
			in[id] = true
		}
		keep = func(t task.Task) bool {
			return !t.Completed && in[t.ID]
		}
	case Project:
		keep = func(t task.Task) bool {
			return t.ProjectID != nil && *t.ProjectID == sel.ProjectID
		}
	default:
		return nil
	}

	out := []task.Task{}
	for _, t := range tasks {
		if keep(t) {
			out = append(out, t)
		}
	}
	// stable: equal orders keep their input position
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out
}

func dueToday(t task.Task, now time.Time) bool {
	if t.When == task.WhenToday {
		return true
	}
	return t.Deadline != nil && sameDay(*t.Deadline, now)
}

// TodayMinutes sums the effort estimates of everything due today. Tasks
// without an estimate contribute nothing.
func TodayMinutes(tasks []task.Task, now time.Time) int {
	total := 0
	for _, t := range tasks {
		if !t.Completed && dueToday(t, now) {
			total += t.Estimate.Minutes()
		}
	}
	return total
}

// Stale lists anytime-bucket tasks older than three days.
func Stale(tasks []task.Task, now time.Time) []task.Task {
	return agedAnytime(tasks, now, 3)
}

// Abandoned lists anytime-bucket tasks older than a week.
func Abandoned(tasks []task.Task, now time.Time) []task.Task {
	return agedAnytime(tasks, now, 7)
}

func agedAnytime(tasks []task.Task, now time.Time, days int) []task.Task {
	cutoff := now.AddDate(0, 0, -days)
	out := []task.Task{}
	for _, t := range tasks {
		if !t.Completed && t.When == task.WhenAnytime && t.CreatedAt.Before(cutoff) {
			out = append(out, t)
		}
	}
	return out
}

// Stats are the dashboard aggregates.
type Stats struct {
	CompletedThisWeek int
	CompletionRate    int // percent
	Active            int
	TopProjects       []ProjectCount
}

type ProjectCount struct {
	Project task.Project
	Tasks   int
}

// Collect computes the dashboard numbers over the full task set.
func Collect(tasks []task.Task, projects []task.Project, now time.Time) Stats {
	weekAgo := now.AddDate(0, 0, -7)
	var st Stats
	open := map[task.ID]int{}
	for _, t := range tasks {
		if t.Completed {
			if t.CompletedAt != nil && !t.CompletedAt.Before(weekAgo) {
				st.CompletedThisWeek++
			}
			continue
		}
		st.Active++
		if t.ProjectID != nil {
			open[*t.ProjectID]++
		}
	}
	if st.Active > 0 {
		st.CompletionRate = int(math.Round(
			float64(st.CompletedThisWeek) / float64(st.CompletedThisWeek+st.Active) * 100))
	}
	for _, p := range projects {
		if n := open[p.ID]; n > 0 {
			st.TopProjects = append(st.TopProjects, ProjectCount{Project: p, Tasks: n})
		}
	}
	sort.SliceStable(st.TopProjects, func(i, j int) bool {
		return st.TopProjects[i].Tasks > st.TopProjects[j].Tasks
	})
	if len(st.TopProjects) > 3 {
		st.TopProjects = st.TopProjects[:3]
	}
	return st
}

// Search is the quick-find lookup: case-insensitive substring over titles,
// first ten hits in input order.
func Search(tasks []task.Task, query string) []task.Task {
	query = strings.ToLower(query)
	out := []task.Task{}
	for _, t := range tasks {
		if strings.Contains(strings.ToLower(t.Title), query) {
			out = append(out, t)
			if len(out) == 10 {
				break
			}
		}
	}
	return out
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
