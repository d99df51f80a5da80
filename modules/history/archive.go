package history

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/example/daily-todos/domain/todo"
	"github.com/example/daily-todos/modules/storage"
	"github.com/sirupsen/logrus"
)

// StorageKey is the key the archive is persisted under.
const StorageKey = "todos_history"

// DefaultRetention is the number of calendar days kept.
const DefaultRetention = 30

// Config tunes an Archive.
type Config struct {
	// Retention caps the number of dated snapshots. Zero means DefaultRetention.
	Retention int
	// Location decides which calendar day "today" is. Nil means UTC.
	Location *time.Location
	// Quarantine copies unreadable payloads aside before they are overwritten.
	Quarantine bool
	// Clock defaults to time.Now.
	Clock func() time.Time
}

// Archive maintains the bounded, date-keyed log of daily snapshots.
type Archive struct {
	kv  storage.KVStore
	log logrus.FieldLogger
	cfg Config

	mu sync.Mutex
}

// NewArchive creates an Archive persisting through kv.
func NewArchive(kv storage.KVStore, log logrus.FieldLogger, cfg Config) *Archive {
	if cfg.Retention <= 0 {
		cfg.Retention = DefaultRetention
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	return &Archive{kv: kv, log: log, cfg: cfg}
}

// Today returns the archive key for the current calendar day.
func (a *Archive) Today() string {
	return todo.DateKey(a.cfg.Clock(), a.cfg.Location)
}

// Retention returns the configured number of days kept.
func (a *Archive) Retention() int {
	return a.cfg.Retention
}

// Upsert replaces today's snapshot with a deep copy of todos. An empty list
// removes today's entry. Today's snapshot is always kept at the head; older
// entries follow newest first, truncated so the total stays within the
// retention bound.
func (a *Archive) Upsert(ctx context.Context, todos []todo.Todo) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	today := a.Today()
	existing := a.read(ctx)

	older := make([]todo.DailyTodos, 0, len(existing))
	for _, day := range existing {
		if day.Date != today {
			older = append(older, day)
		}
	}
	sortNewestFirst(older)

	keep := a.cfg.Retention
	updated := make([]todo.DailyTodos, 0, len(older)+1)
	if len(todos) > 0 {
		updated = append(updated, todo.DailyTodos{Date: today, Todos: todo.CloneTodos(todos)})
		keep--
	}
	if len(older) > keep {
		older = older[:keep]
	}
	updated = append(updated, older...)

	data, err := todo.EncodeHistory(updated)
	if err != nil {
		a.log.WithError(err).Error("Failed to encode history")
		return err
	}
	if err := a.kv.Set(ctx, StorageKey, data); err != nil {
		a.log.WithError(err).WithField("date", today).Error("Failed to save history")
		return fmt.Errorf("failed to save history: %w", err)
	}

	a.log.WithFields(logrus.Fields{
		"date":    today,
		"todos":   len(todos),
		"entries": len(updated),
	}).Debug("History upserted")
	return nil
}

// Load returns the archive newest first. Missing or unreadable data yields an
// empty archive.
func (a *Archive) Load(ctx context.Context) []todo.DailyTodos {
	a.mu.Lock()
	defer a.mu.Unlock()

	history := a.read(ctx)
	sortNewestFirst(history)
	return history
}

// read fetches and decodes the persisted archive, failing soft.
func (a *Archive) read(ctx context.Context) []todo.DailyTodos {
	data, err := a.kv.Get(ctx, StorageKey)
	if err != nil {
		if errors.Is(err, storage.ErrKeyNotFound) {
			a.log.Debug("No history stored yet")
		} else {
			a.log.WithError(err).Error("Failed to load history")
		}
		return []todo.DailyTodos{}
	}

	history, err := todo.DecodeHistory(data)
	if err != nil {
		a.log.WithError(err).Error("Stored history is unreadable, starting empty")
		if a.cfg.Quarantine {
			if qerr := storage.Quarantine(ctx, a.kv, StorageKey, data); qerr != nil {
				a.log.WithError(qerr).Warn("Failed to quarantine history")
			}
		}
		return []todo.DailyTodos{}
	}
	return history
}

// sortNewestFirst orders snapshots by date descending. ISO dates sort
// lexically.
func sortNewestFirst(history []todo.DailyTodos) {
	sort.SliceStable(history, func(i, j int) bool {
		return history[i].Date > history[j].Date
	})
}
