package events

import (
	"time"

	"github.com/go-monolith/mono/pkg/helper"
)

// TodoAddedEvent is emitted after a todo is created and persisted.
type TodoAddedEvent struct {
	TodoID    string    `json:"todo_id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
}

// TodoAddedV1 is the typed event definition for todo creation.
// Subject: events.todo.v1.todo-added
var TodoAddedV1 = helper.EventDefinition[TodoAddedEvent](
	"todo", "TodoAdded", "v1",
)

// TodoToggledEvent is emitted when a todo's completion state flips.
type TodoToggledEvent struct {
	TodoID      string     `json:"todo_id"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// TodoToggledV1 is the typed event definition for completion toggles.
// Subject: events.todo.v1.todo-toggled
var TodoToggledV1 = helper.EventDefinition[TodoToggledEvent](
	"todo", "TodoToggled", "v1",
)

// TodoRemovedEvent is emitted when a todo is deleted.
type TodoRemovedEvent struct {
	TodoID    string    `json:"todo_id"`
	RemovedAt time.Time `json:"removed_at"`
}

// TodoRemovedV1 is the typed event definition for todo deletion.
// Subject: events.todo.v1.todo-removed
var TodoRemovedV1 = helper.EventDefinition[TodoRemovedEvent](
	"todo", "TodoRemoved", "v1",
)
