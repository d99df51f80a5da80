package todo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	domain "github.com/example/daily-todos/domain/todo"
	"github.com/example/daily-todos/modules/storage"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// StorageKey is the key the live list is persisted under.
const StorageKey = "todos"

// Archiver receives a snapshot of the list after every mutation.
type Archiver interface {
	Upsert(ctx context.Context, todos []domain.Todo) error
}

// StoreConfig tunes a Store.
type StoreConfig struct {
	// Clock defaults to time.Now.
	Clock func() time.Time
	// NewID defaults to random UUIDs.
	NewID func() string
	// Quarantine copies unreadable payloads aside before they are overwritten.
	Quarantine bool
}

// Store owns the live todo list. Every mutation persists the whole list and
// then asks the archiver to upsert today's snapshot. Mutation sequences are
// serialized.
type Store struct {
	kv       storage.KVStore
	archiver Archiver
	log      logrus.FieldLogger
	cfg      StoreConfig

	mu    sync.Mutex
	todos []domain.Todo
}

// NewStore creates an empty Store. Call Load to read the persisted list.
func NewStore(kv storage.KVStore, archiver Archiver, log logrus.FieldLogger, cfg StoreConfig) *Store {
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	if cfg.NewID == nil {
		cfg.NewID = func() string { return uuid.New().String() }
	}
	return &Store{
		kv:       kv,
		archiver: archiver,
		log:      log,
		cfg:      cfg,
		todos:    []domain.Todo{},
	}
}

// SetArchiver replaces the archiver. Used when the archive is only reachable
// after dependency wiring.
func (s *Store) SetArchiver(archiver Archiver) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.archiver = archiver
}

// Load reads the persisted list and makes it the live list. A missing key or
// unreadable payload yields an empty list; the failure is logged, not returned.
func (s *Store) Load(ctx context.Context) []domain.Todo {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.todos = s.read(ctx)
	activeItems.Set(float64(countActive(s.todos)))
	s.log.WithField("count", len(s.todos)).Debug("Todos loaded")
	return domain.CloneTodos(s.todos)
}

// Reload re-reads the persisted list, discarding the in-memory one.
func (s *Store) Reload(ctx context.Context) []domain.Todo {
	return s.Load(ctx)
}

// Add creates a todo at the head of the list. Blank titles are rejected with
// ErrEmptyTitle and leave the list untouched.
func (s *Store) Add(ctx context.Context, title, description string) (domain.Todo, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		s.log.Warn("Rejected todo with empty title")
		mutationsTotal.WithLabelValues("add", "rejected").Inc()
		return domain.Todo{}, domain.ErrEmptyTitle
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	created := domain.Todo{
		ID:          s.cfg.NewID(),
		Title:       title,
		Description: strings.TrimSpace(description),
		Completed:   false,
		CreatedAt:   domain.Now(s.cfg.Clock),
	}

	next := make([]domain.Todo, 0, len(s.todos)+1)
	next = append(next, created)
	next = append(next, s.todos...)
	s.todos = next

	s.commit(ctx, "add")
	s.log.WithField("id", created.ID).Info("Todo added")
	return created.Clone(), nil
}

// Toggle flips a todo's completion. CompletedAt is stamped on completion and
// cleared on reopening. Unknown ids return ErrTodoNotFound.
func (s *Store) Toggle(ctx context.Context, id string) (domain.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		s.log.WithField("id", id).Warn("Toggle of unknown todo")
		mutationsTotal.WithLabelValues("toggle", "rejected").Inc()
		return domain.Todo{}, fmt.Errorf("%w: %s", domain.ErrTodoNotFound, id)
	}

	next := domain.CloneTodos(s.todos)
	t := &next[i]
	t.Completed = !t.Completed
	if t.Completed {
		now := domain.Now(s.cfg.Clock)
		t.CompletedAt = &now
	} else {
		t.CompletedAt = nil
	}
	s.todos = next

	s.commit(ctx, "toggle")
	s.log.WithFields(logrus.Fields{"id": id, "completed": t.Completed}).Info("Todo toggled")
	return t.Clone(), nil
}

// Remove deletes a todo. Unknown ids return ErrTodoNotFound and leave the
// list untouched.
func (s *Store) Remove(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		s.log.WithField("id", id).Warn("Remove of unknown todo")
		mutationsTotal.WithLabelValues("remove", "rejected").Inc()
		return fmt.Errorf("%w: %s", domain.ErrTodoNotFound, id)
	}

	next := make([]domain.Todo, 0, len(s.todos)-1)
	next = append(next, s.todos[:i]...)
	next = append(next, s.todos[i+1:]...)
	s.todos = next

	s.commit(ctx, "remove")
	s.log.WithField("id", id).Info("Todo removed")
	return nil
}

// Save serializes list and writes it under StorageKey. The in-memory list is
// never modified by Save.
func (s *Store) Save(ctx context.Context, list []domain.Todo) error {
	data, err := domain.EncodeTodos(list)
	if err != nil {
		s.log.WithError(err).Error("Failed to encode todos")
		return err
	}
	if err := s.kv.Set(ctx, StorageKey, data); err != nil {
		s.log.WithError(err).Error("Failed to save todos")
		return fmt.Errorf("failed to save todos: %w", err)
	}
	return nil
}

// List returns a copy of the live list, most recent first.
func (s *Store) List() []domain.Todo {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.CloneTodos(s.todos)
}

// Active returns the todos not yet completed.
func (s *Store) Active() []domain.Todo {
	active, _ := domain.Partition(s.List())
	return active
}

// Completed returns the completed todos.
func (s *Store) Completed() []domain.Todo {
	_, completed := domain.Partition(s.List())
	return completed
}

// commit persists the live list and upserts the archive. Failures are logged
// and counted; the in-memory list stays authoritative. Caller holds s.mu.
func (s *Store) commit(ctx context.Context, op string) {
	activeItems.Set(float64(countActive(s.todos)))

	result := "ok"
	if err := s.Save(ctx, s.todos); err != nil {
		result = "unpersisted"
	}
	if s.archiver != nil {
		if err := s.archiver.Upsert(ctx, domain.CloneTodos(s.todos)); err != nil {
			s.log.WithError(err).WithField("op", op).Error("Failed to archive todos")
			if result == "ok" {
				result = "unarchived"
			}
		}
	}
	mutationsTotal.WithLabelValues(op, result).Inc()
}

func (s *Store) read(ctx context.Context) []domain.Todo {
	data, err := s.kv.Get(ctx, StorageKey)
	if err != nil {
		if errors.Is(err, storage.ErrKeyNotFound) {
			s.log.Debug("No todos stored yet")
		} else {
			s.log.WithError(err).Error("Failed to load todos")
		}
		return []domain.Todo{}
	}

	todos, err := domain.DecodeTodos(data)
	if err != nil {
		s.log.WithError(err).Error("Stored todos are unreadable, starting empty")
		if s.cfg.Quarantine {
			if qerr := storage.Quarantine(ctx, s.kv, StorageKey, data); qerr != nil {
				s.log.WithError(qerr).Warn("Failed to quarantine todos")
			}
		}
		return []domain.Todo{}
	}
	return todos
}

func (s *Store) indexOf(id string) int {
	for i := range s.todos {
		if s.todos[i].ID == id {
			return i
		}
	}
	return -1
}

func countActive(todos []domain.Todo) int {
	n := 0
	for _, t := range todos {
		if !t.Completed {
			n++
		}
	}
	return n
}
