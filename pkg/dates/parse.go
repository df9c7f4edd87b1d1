package dates

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Match is a recognised scheduling phrase and the moment it resolves to.
// Text is the phrase as it matched the lower-cased input; callers strip it
// from the raw title with Strip.
type Match struct {
	Text string
	Date time.Time
}

type dayPattern struct {
	re      *regexp.Regexp
	resolve func(m []string, now time.Time) time.Time
}

type timePattern struct {
	re      *regexp.Regexp
	resolve func(m []string) (hour, minute int)
}

const weekdayNames = `monday|tuesday|wednesday|thursday|friday|saturday|sunday`

// defaultHour is used when a day phrase matches but no time phrase does.
const defaultHour = 9

var hourWords = map[string]int{
	"morning":   9,
	"afternoon": 14,
	"evening":   18,
	"night":     20,
}

// day patterns, tried in order; the first match wins.
// "this x" / "next x" / "next week" come before the bare weekday names,
// otherwise the bare name would steal the match and "next friday" could
// never resolve a week further out.
var dayPatterns = []dayPattern{
	{regexp.MustCompile(`\btomorrow\b`), func(_ []string, now time.Time) time.Time {
		return now.AddDate(0, 0, 1)
	}},
	{regexp.MustCompile(`\btoday\b`), func(_ []string, now time.Time) time.Time {
		return now
	}},
	{regexp.MustCompile(`\bin (\d+) days?\b`), func(m []string, now time.Time) time.Time {
		n, _ := strconv.Atoi(m[1])
		return now.AddDate(0, 0, n)
	}},
	{regexp.MustCompile(`\bthis (` + weekdayNames + `)\b`), func(m []string, now time.Time) time.Time {
		return nextWeekday(now, weekday(m[1]))
	}},
	{regexp.MustCompile(`\bnext (` + weekdayNames + `)\b`), func(m []string, now time.Time) time.Time {
		return nextWeekday(now, weekday(m[1])).AddDate(0, 0, 7)
	}},
	{regexp.MustCompile(`\bnext week\b`), func(_ []string, now time.Time) time.Time {
		return now.AddDate(0, 0, 7)
	}},
}

func init() {
	// bare weekday names, monday first
	for i := 0; i < 7; i++ {
		day := time.Weekday((i + 1) % 7)
		re := regexp.MustCompile(`\b` + strings.ToLower(day.String()) + `\b`)
		dayPatterns = append(dayPatterns, dayPattern{re, func(_ []string, now time.Time) time.Time {
			return nextWeekday(now, day)
		}})
	}
}

// time patterns, tried in order against the same input; the first match wins.
var timePatterns = []timePattern{
	{regexp.MustCompile(`\bat (\d{1,2}):(\d{2})\s*(am|pm)?\b`), func(m []string) (int, int) {
		return clock(m[1], m[3]), atoi(m[2])
	}},
	{regexp.MustCompile(`\bat (\d{1,2})\s*(am|pm)\b`), func(m []string) (int, int) {
		return clock(m[1], m[2]), 0
	}},
	{regexp.MustCompile(`\b(\d{1,2}):(\d{2})\s*(am|pm)\b`), func(m []string) (int, int) {
		return clock(m[1], m[3]), atoi(m[2])
	}},
	{regexp.MustCompile(`\b(\d{1,2})\s*(am|pm)\b`), func(m []string) (int, int) {
		return clock(m[1], m[2]), 0
	}},
	{regexp.MustCompile(`\bin the (morning|afternoon|evening|night)\b`), func(m []string) (int, int) {
		return hourWords[m[1]], 0
	}},
}

// Parse recognises a scheduling phrase anywhere in s and resolves it against
// now. It returns nil when no day phrase matches; a time phrase on its own is
// never enough.
func Parse(s string, now time.Time) *Match {
	s = strings.ToLower(s)

	var (
		day     time.Time
		matched string
		found   bool
	)
	for _, p := range dayPatterns {
		if m := p.re.FindStringSubmatch(s); m != nil {
			day = p.resolve(m, now)
			matched = m[0]
			found = true
			break
		}
	}
	if !found {
		return nil
	}

	hour, minute := defaultHour, 0
	for _, p := range timePatterns {
		if m := p.re.FindStringSubmatch(s); m != nil {
			hour, minute = p.resolve(m)
			matched += " " + m[0]
			break
		}
	}

	return &Match{
		Text: matched,
		Date: time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, day.Location()),
	}
}

// Strip removes the first occurrence of a matched phrase from the raw input,
// ignoring case, and trims the ends.
func Strip(input, matched string) string {
	i := strings.Index(strings.ToLower(input), strings.ToLower(matched))
	if i < 0 {
		return strings.TrimSpace(input)
	}
	return strings.TrimSpace(input[:i] + input[i+len(matched):])
}

// nextWeekday is the next occurrence of d strictly after t, so a phrase
// naming today's weekday lands a full week out.
func nextWeekday(t time.Time, d time.Weekday) time.Time {
	days := int(d - t.Weekday())
	if days <= 0 {
		days += 7
	}
	return t.AddDate(0, 0, days)
}

func weekday(name string) time.Weekday {
	for i := time.Sunday; i <= time.Saturday; i++ {
		if strings.ToLower(i.String()) == name {
			return i
		}
	}
	return time.Sunday
}

// clock normalises a 12-hour value: "12am" is midnight, "pm" adds 12.
func clock(h, meridiem string) int {
	n := atoi(h)
	if meridiem == "pm" && n != 12 {
		n += 12
	}
	if meridiem == "am" && n == 12 {
		n = 0
	}
	return n
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
