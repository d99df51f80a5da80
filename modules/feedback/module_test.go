package feedback

import (
	"context"
	"fmt"
	"testing"

	"github.com/example/daily-todos/events"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModule_MapsEventsToIntensity(t *testing.T) {
	ctx := context.Background()
	log, _ := test.NewNullLogger()
	m := NewModule(log, 0)
	assert.Equal(t, "feedback", m.Name())

	require.NoError(t, m.handleTodoAdded(ctx, events.TodoAddedEvent{TodoID: "1"}, nil))
	require.NoError(t, m.handleTodoToggled(ctx, events.TodoToggledEvent{TodoID: "1", Completed: true}, nil))
	require.NoError(t, m.handleTodoRemoved(ctx, events.TodoRemovedEvent{TodoID: "1"}, nil))

	pulses := m.Pulses()
	require.Len(t, pulses, 3)
	assert.Equal(t, Light, pulses[0].Intensity)
	assert.Equal(t, Medium, pulses[1].Intensity)
	assert.Equal(t, Heavy, pulses[2].Intensity)
	assert.Equal(t, "todo_removed", pulses[2].Event)

	status := m.Health(ctx)
	assert.True(t, status.Healthy)
	assert.Equal(t, 1, status.Details["light"])
	assert.Equal(t, 1, status.Details["medium"])
	assert.Equal(t, 1, status.Details["heavy"])
}

func TestModule_LogIsBounded(t *testing.T) {
	ctx := context.Background()
	log, _ := test.NewNullLogger()
	m := NewModule(log, 5)

	for i := 0; i < 12; i++ {
		require.NoError(t, m.handleTodoAdded(ctx, events.TodoAddedEvent{TodoID: fmt.Sprint(i)}, nil))
	}

	pulses := m.Pulses()
	require.Len(t, pulses, 5)
	assert.Equal(t, "7", pulses[0].TodoID)
	assert.Equal(t, "11", pulses[4].TodoID)
	assert.Equal(t, 12, m.Health(ctx).Details["light"])
}

func TestModule_PulsesReturnsCopy(t *testing.T) {
	log, _ := test.NewNullLogger()
	m := NewModule(log, 0)
	require.NoError(t, m.handleTodoAdded(context.Background(), events.TodoAddedEvent{TodoID: "a"}, nil))

	pulses := m.Pulses()
	pulses[0].TodoID = "changed"
	assert.Equal(t, "a", m.Pulses()[0].TodoID)
}
