package task

import "time"

// ID is assigned at creation from the unix-millisecond clock, bumped past the
// previous ID on collision, so sorting by ID is sorting by creation.
type ID int64

// When is the coarse scheduling bucket, independent of any deadline.
type When string

const (
	WhenUnset    When = ""
	WhenToday    When = "today"
	WhenUpcoming When = "upcoming"
	WhenAnytime  When = "anytime"
)

type Priority string

const (
	PriorityNone   Priority = ""
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Recurring names the unit a deadline advances by when the task completes.
type Recurring string

const (
	Daily   Recurring = "daily"
	Weekly  Recurring = "weekly"
	Monthly Recurring = "monthly"
	Yearly  Recurring = "yearly"
)

// Duration is a coarse effort estimate from a fixed table.
type Duration string

const (
	Dur15m Duration = "15m"
	Dur30m Duration = "30m"
	Dur1h  Duration = "1h"
	Dur2h  Duration = "2h"
	Dur4h  Duration = "4h"
	Dur8h  Duration = "8h"
)

var durationMinutes = map[Duration]int{
	Dur15m: 15,
	Dur30m: 30,
	Dur1h:  60,
	Dur2h:  120,
	Dur4h:  240,
	Dur8h:  480,
}

// Minutes looks the duration up in the fixed table; unknown or unset values
// count as zero.
func (d Duration) Minutes() int {
	return durationMinutes[d]
}

type ChecklistItem struct {
	Text string `json:"text"`
	Done bool   `json:"done"`
}

type Task struct {
	ID        ID     `json:"id"`
	Title     string `json:"title"`
	Notes     string `json:"notes"`
	Completed bool   `json:"completed"`
	// CompletedAt is non-nil iff Completed
	CompletedAt *time.Time      `json:"completedAt"`
	Priority    Priority        `json:"priority"`
	When        When            `json:"when"`
	ProjectID   *ID             `json:"projectId"`
	Tags        []string        `json:"tags"`
	Checklist   []ChecklistItem `json:"checklist"`
	Deadline    *time.Time      `json:"deadline"`
	Reminder    *time.Time      `json:"reminder"`
	Recurring   Recurring       `json:"recurring"`
	Estimate    Duration        `json:"estimatedDuration"`
	Order       int             `json:"order"`
	CreatedAt   time.Time       `json:"createdAt"`
}

type Project struct {
	ID    ID      `json:"id"`
	Name  string  `json:"name"`
	Color string  `json:"color"`
	Emoji *string `json:"emoji"`
}

// Tag names are unique ignoring case; tasks reference tags by name.
type Tag struct {
	ID    ID     `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

const defaultProjectColor = "#007AFF"

// Palette is the fixed set of colors a new tag picks from at random.
var Palette = []string{
	"#FF3B30", "#FF9500", "#FFCC00", "#34C759", "#00C7BE",
	"#30B0C7", "#007AFF", "#5856D6", "#AF52DE", "#FF2D55",
}
