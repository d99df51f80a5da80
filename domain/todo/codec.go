package todo

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// TimestampLayout is the canonical string form of persisted timestamps:
// ISO-8601 in UTC with millisecond precision.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// FormatTimestamp encodes t in the canonical persisted form.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// ParseTimestamp decodes a persisted timestamp. Any RFC 3339 value is accepted;
// the result is normalized to UTC.
func ParseTimestamp(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q: %w", s, err)
	}
	return t.UTC(), nil
}

// Now returns the current time truncated to the persisted precision, so a
// freshly stamped value survives an encode/decode round trip unchanged.
func Now(clock func() time.Time) time.Time {
	if clock == nil {
		clock = time.Now
	}
	return clock().UTC().Truncate(time.Millisecond)
}

// wireTodo is the persisted JSON shape of a Todo.
type wireTodo struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	Completed   bool    `json:"completed"`
	CreatedAt   string  `json:"createdAt"`
	CompletedAt *string `json:"completedAt,omitempty"`
}

// MarshalJSON encodes timestamps through FormatTimestamp.
func (t Todo) MarshalJSON() ([]byte, error) {
	w := wireTodo{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Completed:   t.Completed,
		CreatedAt:   FormatTimestamp(t.CreatedAt),
	}
	if t.CompletedAt != nil {
		s := FormatTimestamp(*t.CompletedAt)
		w.CompletedAt = &s
	}
	return json.Marshal(w)
}

// UnmarshalJSON reconstructs timestamps through ParseTimestamp.
func (t *Todo) UnmarshalJSON(data []byte) error {
	var w wireTodo
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	createdAt, err := ParseTimestamp(w.CreatedAt)
	if err != nil {
		return fmt.Errorf("todo %s createdAt: %w", w.ID, err)
	}

	var completedAt *time.Time
	if w.CompletedAt != nil && *w.CompletedAt != "" {
		at, err := ParseTimestamp(*w.CompletedAt)
		if err != nil {
			return fmt.Errorf("todo %s completedAt: %w", w.ID, err)
		}
		completedAt = &at
	}

	*t = Todo{
		ID:          w.ID,
		Title:       w.Title,
		Description: w.Description,
		Completed:   w.Completed,
		CreatedAt:   createdAt,
		CompletedAt: completedAt,
	}
	return nil
}

// EncodeTodos serializes a todo list. A nil list encodes as an empty array.
func EncodeTodos(todos []Todo) ([]byte, error) {
	if todos == nil {
		todos = []Todo{}
	}
	data, err := json.Marshal(todos)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal todos: %w", err)
	}
	return data, nil
}

// DecodeTodos parses a persisted todo list. Empty input and JSON null decode to
// an empty list.
func DecodeTodos(data []byte) ([]Todo, error) {
	todos := []Todo{}
	if isEmptyPayload(data) {
		return todos, nil
	}
	if err := json.Unmarshal(data, &todos); err != nil {
		return []Todo{}, fmt.Errorf("failed to unmarshal todos: %w", err)
	}
	if todos == nil {
		todos = []Todo{}
	}
	return todos, nil
}

// EncodeHistory serializes the archive.
func EncodeHistory(history []DailyTodos) ([]byte, error) {
	if history == nil {
		history = []DailyTodos{}
	}
	data, err := json.Marshal(history)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal history: %w", err)
	}
	return data, nil
}

// DecodeHistory parses a persisted archive, including nested todo timestamps.
func DecodeHistory(data []byte) ([]DailyTodos, error) {
	history := []DailyTodos{}
	if isEmptyPayload(data) {
		return history, nil
	}
	if err := json.Unmarshal(data, &history); err != nil {
		return []DailyTodos{}, fmt.Errorf("failed to unmarshal history: %w", err)
	}
	if history == nil {
		history = []DailyTodos{}
	}
	for i := range history {
		if history[i].Date == "" {
			return []DailyTodos{}, fmt.Errorf("history entry %d has no date", i)
		}
		if history[i].Todos == nil {
			history[i].Todos = []Todo{}
		}
	}
	return history, nil
}

func isEmptyPayload(data []byte) bool {
	trimmed := bytes.TrimSpace(data)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}
