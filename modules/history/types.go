package history

import (
	"context"

	"github.com/example/daily-todos/domain/todo"
)

// UpsertHistoryRequest is the request for snapshotting today's list.
type UpsertHistoryRequest struct {
	Todos []todo.Todo `json:"todos"`
}

// UpsertHistoryResponse is the response for an upsert.
type UpsertHistoryResponse struct {
	Date string `json:"date"`
}

// ListHistoryRequest is the request for reading the archive.
type ListHistoryRequest struct {
	Limit int `json:"limit,omitempty"`
}

// DayResponse is one archived day with its summary.
type DayResponse struct {
	Date  string          `json:"date"`
	Todos []todo.Todo     `json:"todos"`
	Stats todo.DailyStats `json:"stats"`
}

// ListHistoryResponse is the response for listing the archive.
type ListHistoryResponse struct {
	Days  []DayResponse `json:"days"`
	Total int           `json:"total"`
}

// HistoryPort defines the history operations other modules use.
type HistoryPort interface {
	Upsert(ctx context.Context, todos []todo.Todo) error
	List(ctx context.Context, limit int) (*ListHistoryResponse, error)
}

func toDayResponse(day todo.DailyTodos) DayResponse {
	return DayResponse{
		Date:  day.Date,
		Todos: day.Todos,
		Stats: day.Stats(),
	}
}
