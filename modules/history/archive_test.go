package history

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/example/daily-todos/domain/todo"
	"github.com/example/daily-todos/modules/storage"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockKV is an in-memory KVStore with injectable failures.
type mockKV struct {
	data   map[string][]byte
	getErr error
	setErr error
	sets   int
}

func newMockKV() *mockKV {
	return &mockKV{data: make(map[string][]byte)}
}

func (m *mockKV) Get(_ context.Context, key string) ([]byte, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	v, ok := m.data[key]
	if !ok {
		return nil, storage.ErrKeyNotFound
	}
	return v, nil
}

func (m *mockKV) Set(_ context.Context, key string, value []byte) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.sets++
	m.data[key] = append([]byte(nil), value...)
	return nil
}

// fakeClock returns a settable time.
type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) advanceDays(n int) { c.now = c.now.AddDate(0, 0, n) }

func newTestArchive(t *testing.T, kv storage.KVStore, clock *fakeClock) (*Archive, *test.Hook) {
	t.Helper()
	log, hook := test.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)
	return NewArchive(kv, log, Config{Clock: clock.Now, Quarantine: true}), hook
}

func sampleTodo(id, title string, completed bool, created time.Time) todo.Todo {
	t := todo.Todo{ID: id, Title: title, Completed: completed, CreatedAt: created}
	if completed {
		done := created.Add(time.Hour)
		t.CompletedAt = &done
	}
	return t
}

func errorEntries(hook *test.Hook) int {
	n := 0
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.ErrorLevel {
			n++
		}
	}
	return n
}

func TestArchive_UpsertCreatesTodayEntry(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{now: time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC)}
	kv := newMockKV()
	a, _ := newTestArchive(t, kv, clock)

	todos := []todo.Todo{sampleTodo("1", "Buy milk", true, clock.now)}
	require.NoError(t, a.Upsert(ctx, todos))

	history := a.Load(ctx)
	require.Len(t, history, 1)
	assert.Equal(t, "2024-05-10", history[0].Date)
	require.Len(t, history[0].Todos, 1)
	assert.Equal(t, "Buy milk", history[0].Todos[0].Title)
	assert.True(t, history[0].Todos[0].Completed)
	require.NotNil(t, history[0].Todos[0].CompletedAt)
	assert.True(t, history[0].Todos[0].CompletedAt.Equal(*todos[0].CompletedAt))
}

func TestArchive_SameDayReplaces(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{now: time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC)}
	a, _ := newTestArchive(t, newMockKV(), clock)

	first := []todo.Todo{sampleTodo("1", "A", false, clock.now)}
	second := []todo.Todo{sampleTodo("1", "A", true, clock.now), sampleTodo("2", "B", false, clock.now)}

	require.NoError(t, a.Upsert(ctx, first))
	require.NoError(t, a.Upsert(ctx, second))
	require.NoError(t, a.Upsert(ctx, second))

	history := a.Load(ctx)
	require.Len(t, history, 1)
	assert.Len(t, history[0].Todos, 2)
	assert.True(t, history[0].Todos[0].Completed)
}

func TestArchive_EmptyListRemovesToday(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{now: time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC)}
	a, _ := newTestArchive(t, newMockKV(), clock)

	require.NoError(t, a.Upsert(ctx, []todo.Todo{sampleTodo("1", "A", false, clock.now)}))
	clock.advanceDays(1)
	require.NoError(t, a.Upsert(ctx, []todo.Todo{sampleTodo("2", "B", false, clock.now)}))
	require.NoError(t, a.Upsert(ctx, nil))

	history := a.Load(ctx)
	require.Len(t, history, 1)
	assert.Equal(t, "2024-05-10", history[0].Date)
}

func TestArchive_BoundedToRetention(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	clock := &fakeClock{now: start}
	a, _ := newTestArchive(t, newMockKV(), clock)

	const days = 45
	for i := 0; i < days; i++ {
		require.NoError(t, a.Upsert(ctx, []todo.Todo{sampleTodo("id", "daily", i%2 == 0, clock.now)}))
		clock.advanceDays(1)
	}

	history := a.Load(ctx)
	require.Len(t, history, DefaultRetention)
	assert.Equal(t, start.AddDate(0, 0, days-1).Format(todo.DateLayout), history[0].Date)
	assert.Equal(t, start.AddDate(0, 0, days-DefaultRetention).Format(todo.DateLayout), history[len(history)-1].Date)

	for i := 1; i < len(history); i++ {
		assert.Greater(t, history[i-1].Date, history[i].Date, "dates must be strictly descending")
	}
}

func TestArchive_ClockBehindFullArchiveKeepsToday(t *testing.T) {
	ctx := context.Background()
	kv := newMockKV()
	clock := &fakeClock{now: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}
	a, _ := newTestArchive(t, kv, clock)

	for i := 0; i < DefaultRetention; i++ {
		require.NoError(t, a.Upsert(ctx, []todo.Todo{sampleTodo("id", "june", false, clock.now)}))
		clock.advanceDays(1)
	}

	clock.now = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, a.Upsert(ctx, []todo.Todo{sampleTodo("may", "May", false, clock.now)}))

	stored, err := todo.DecodeHistory(kv.data[StorageKey])
	require.NoError(t, err)
	require.Len(t, stored, DefaultRetention)
	assert.Equal(t, "2024-05-01", stored[0].Date)
	assert.Equal(t, "2024-06-30", stored[1].Date)
	assert.Equal(t, "2024-06-02", stored[len(stored)-1].Date)

	history := a.Load(ctx)
	dates := make([]string, 0, len(history))
	for _, day := range history {
		dates = append(dates, day.Date)
	}
	assert.Contains(t, dates, "2024-05-01")
}

func TestArchive_SnapshotDoesNotAlias(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{now: time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC)}
	a, _ := newTestArchive(t, newMockKV(), clock)

	todos := []todo.Todo{sampleTodo("1", "Before", false, clock.now)}
	require.NoError(t, a.Upsert(ctx, todos))

	todos[0].Title = "Mutated"
	todos[0].Completed = true

	history := a.Load(ctx)
	require.Len(t, history, 1)
	assert.Equal(t, "Before", history[0].Todos[0].Title)
	assert.False(t, history[0].Todos[0].Completed)
}

func TestArchive_CorruptHistoryIsQuarantined(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{now: time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC)}
	kv := newMockKV()
	kv.data[StorageKey] = []byte("{not json")
	a, hook := newTestArchive(t, kv, clock)

	assert.Empty(t, a.Load(ctx))
	assert.GreaterOrEqual(t, errorEntries(hook), 1)
	assert.Equal(t, "{not json", string(kv.data[StorageKey+storage.CorruptSuffix]))

	require.NoError(t, a.Upsert(ctx, []todo.Todo{sampleTodo("1", "A", false, clock.now)}))
	assert.Len(t, a.Load(ctx), 1)
}

func TestArchive_MissingKeyIsNotAnError(t *testing.T) {
	clock := &fakeClock{now: time.Now()}
	a, hook := newTestArchive(t, newMockKV(), clock)

	history := a.Load(context.Background())
	assert.NotNil(t, history)
	assert.Empty(t, history)
	assert.Equal(t, 0, errorEntries(hook))
}

func TestArchive_ReadFailureFailsSoft(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{now: time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC)}
	kv := newMockKV()
	kv.getErr = errors.New("connection reset")
	a, hook := newTestArchive(t, kv, clock)

	require.NoError(t, a.Upsert(ctx, []todo.Todo{sampleTodo("1", "A", false, clock.now)}))
	assert.Equal(t, 1, errorEntries(hook))
	assert.Contains(t, kv.data, StorageKey)
}

func TestArchive_WriteFailureIsReturned(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{now: time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC)}
	kv := newMockKV()
	kv.setErr = errors.New("disk full")
	a, hook := newTestArchive(t, kv, clock)

	err := a.Upsert(ctx, []todo.Todo{sampleTodo("1", "A", false, clock.now)})
	require.Error(t, err)
	assert.ErrorIs(t, err, kv.setErr)
	assert.Equal(t, 1, errorEntries(hook))
}

func TestArchive_TodayUsesLocation(t *testing.T) {
	clock := &fakeClock{now: time.Date(2024, 3, 1, 23, 30, 0, 0, time.UTC)}
	log, _ := test.NewNullLogger()

	utc := NewArchive(newMockKV(), log, Config{Clock: clock.Now})
	assert.Equal(t, "2024-03-01", utc.Today())

	east := NewArchive(newMockKV(), log, Config{Clock: clock.Now, Location: time.FixedZone("UTC+2", 2*3600)})
	assert.Equal(t, "2024-03-02", east.Today())
}

func TestArchive_LoadSortsUnorderedData(t *testing.T) {
	ctx := context.Background()
	kv := newMockKV()
	data, err := todo.EncodeHistory([]todo.DailyTodos{
		{Date: "2024-05-01", Todos: []todo.Todo{}},
		{Date: "2024-05-03", Todos: []todo.Todo{}},
		{Date: "2024-05-02", Todos: []todo.Todo{}},
	})
	require.NoError(t, err)
	kv.data[StorageKey] = data

	a, _ := newTestArchive(t, kv, &fakeClock{now: time.Now()})
	history := a.Load(ctx)
	require.Len(t, history, 3)
	assert.Equal(t, []string{"2024-05-03", "2024-05-02", "2024-05-01"},
		[]string{history[0].Date, history[1].Date, history[2].Date})
}
