package todo

import "time"

// Todo is the core domain entity representing a single daily task.
type Todo struct {
	ID          string
	Title       string
	Description string
	Completed   bool
	CreatedAt   time.Time
	CompletedAt *time.Time
}

// Clone returns a copy of t that shares no memory with it.
func (t Todo) Clone() Todo {
	c := t
	if t.CompletedAt != nil {
		at := *t.CompletedAt
		c.CompletedAt = &at
	}
	return c
}

// CloneTodos deep-copies a list of todos. A nil list yields an empty, non-nil list.
func CloneTodos(todos []Todo) []Todo {
	out := make([]Todo, 0, len(todos))
	for _, t := range todos {
		out = append(out, t.Clone())
	}
	return out
}

// DailyTodos is the snapshot of the whole todo list as it stood on a calendar date.
type DailyTodos struct {
	Date  string `json:"date"`
	Todos []Todo `json:"todos"`
}

// DailyStats summarizes a snapshot for history display.
type DailyStats struct {
	Completed      int     `json:"completed"`
	Total          int     `json:"total"`
	CompletionRate float64 `json:"completion_rate"`
}

// Stats counts completed todos in the snapshot. CompletionRate is a percentage.
func (d DailyTodos) Stats() DailyStats {
	stats := DailyStats{Total: len(d.Todos)}
	for _, t := range d.Todos {
		if t.Completed {
			stats.Completed++
		}
	}
	if stats.Total > 0 {
		stats.CompletionRate = float64(stats.Completed) / float64(stats.Total) * 100
	}
	return stats
}

// Clone deep-copies the snapshot.
func (d DailyTodos) Clone() DailyTodos {
	return DailyTodos{Date: d.Date, Todos: CloneTodos(d.Todos)}
}

// DateLayout is the calendar date format used as the archive key.
const DateLayout = "2006-01-02"

// DateKey returns the archive key for the calendar day containing t in loc.
func DateKey(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format(DateLayout)
}

// Partition splits todos into active and completed lists, preserving order.
func Partition(todos []Todo) (active, completed []Todo) {
	active = make([]Todo, 0, len(todos))
	completed = make([]Todo, 0, len(todos))
	for _, t := range todos {
		if t.Completed {
			completed = append(completed, t)
		} else {
			active = append(active, t)
		}
	}
	return active, completed
}
