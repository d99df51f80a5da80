package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/example/daily-todos/config"
	domain "github.com/example/daily-todos/domain/todo"
	"github.com/example/daily-todos/logging"
	"github.com/example/daily-todos/modules/history"
	"github.com/example/daily-todos/modules/storage"
	"github.com/example/daily-todos/modules/theme"
	"github.com/example/daily-todos/modules/todo"
)

// opener connects a storage backend; storage.Open in production.
type opener func(ctx context.Context, cfg storage.Config) (storage.Backend, error)

// session wires the store, archive and preferences over one backend for the
// duration of a single command.
type session struct {
	backend storage.Backend
	archive *history.Archive
	store   *todo.Store
	prefs   *theme.Preferences
}

func openSession(ctx context.Context, configPath string, open opener, stderr io.Writer) (*session, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	log, err := logging.New(logging.Options{
		Service: "todoctl",
		Level:   "warn",
		Format:  logging.FormatText,
		Output:  stderr,
	})
	if err != nil {
		return nil, err
	}

	loc, err := cfg.History.Location()
	if err != nil {
		return nil, err
	}

	backend, err := open(ctx, cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s storage: %w", cfg.Storage.Backend, err)
	}
	kv := storage.Instrument(backend)

	archive := history.NewArchive(kv, log.WithField("module", "history"), history.Config{
		Retention:  cfg.History.RetentionDays,
		Location:   loc,
		Quarantine: cfg.Storage.QuarantineCorrupt,
	})
	store := todo.NewStore(kv, archive, log.WithField("module", "todo"), todo.StoreConfig{
		Quarantine: cfg.Storage.QuarantineCorrupt,
	})
	store.Load(ctx)

	prefs := theme.NewPreferences(kv, log.WithField("module", "theme"))
	prefs.Load(ctx)

	return &session{
		backend: backend,
		archive: archive,
		store:   store,
		prefs:   prefs,
	}, nil
}

func (s *session) Close() error {
	return s.backend.Close()
}

// resolveID matches an exact id or a unique id prefix.
func (s *session) resolveID(ref string) (string, error) {
	var matches []string
	for _, t := range s.store.List() {
		if t.ID == ref {
			return t.ID, nil
		}
		if strings.HasPrefix(t.ID, ref) {
			matches = append(matches, t.ID)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%w: %s", domain.ErrTodoNotFound, ref)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("id prefix %q is ambiguous (%d matches)", ref, len(matches))
	}
}
