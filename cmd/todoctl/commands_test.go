package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/example/daily-todos/config"
	"github.com/example/daily-todos/modules/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sharedBackend keeps one MemoryStore alive across command invocations.
type sharedBackend struct {
	*storage.MemoryStore
}

func (sharedBackend) Close() error { return nil }

func newTestCLI(t *testing.T) func(args ...string) (string, error) {
	t.Helper()
	t.Setenv(config.ConfigFileEnv, "")

	mem := sharedBackend{storage.NewMemoryStore()}
	open := func(context.Context, storage.Config) (storage.Backend, error) {
		return mem, nil
	}

	return func(args ...string) (string, error) {
		var out, errOut bytes.Buffer
		cmd := newRootCmd(open)
		cmd.SetOut(&out)
		cmd.SetErr(&errOut)
		cmd.SetArgs(args)
		err := cmd.Execute()
		return out.String(), err
	}
}

func firstID(t *testing.T, listing string) string {
	t.Helper()
	for _, line := range strings.Split(listing, "\n") {
		fields := strings.Fields(line)
		switch {
		case len(fields) >= 3 && fields[0] == "[" && fields[1] == "]":
			return fields[2]
		case len(fields) >= 2 && fields[0] == "[x]":
			return fields[1]
		}
	}
	t.Fatalf("no todo in listing:\n%s", listing)
	return ""
}

func TestCLI_AddListToggleRemove(t *testing.T) {
	run := newTestCLI(t)

	out, err := run("list")
	require.NoError(t, err)
	assert.Contains(t, out, "No todos yet")

	out, err = run("add", "Buy", "milk", "-d", "2 litres")
	require.NoError(t, err)
	assert.Contains(t, out, "Buy milk")

	out, err = run("list")
	require.NoError(t, err)
	assert.Contains(t, out, "Active (1)")
	assert.Contains(t, out, "2 litres")

	id := firstID(t, out)

	out, err = run("toggle", id)
	require.NoError(t, err)
	assert.Contains(t, out, "is now completed")

	out, err = run("list")
	require.NoError(t, err)
	assert.Contains(t, out, "Completed (1)")
	assert.Contains(t, out, "[x]")

	out, err = run("history")
	require.NoError(t, err)
	assert.Contains(t, out, "1/1 completed  100%")

	_, err = run("rm", id)
	require.NoError(t, err)

	out, err = run("list")
	require.NoError(t, err)
	assert.Contains(t, out, "No todos yet")

	out, err = run("history")
	require.NoError(t, err)
	assert.Contains(t, out, "No history yet")
}

func TestCLI_Errors(t *testing.T) {
	run := newTestCLI(t)

	_, err := run("add", "   ")
	assert.Error(t, err)

	_, err = run("toggle", "nope")
	assert.Error(t, err)

	_, err = run("theme", "neon")
	assert.Error(t, err)
}

func TestCLI_Theme(t *testing.T) {
	run := newTestCLI(t)

	out, err := run("theme")
	require.NoError(t, err)
	assert.Equal(t, "theme: system\n", out)

	_, err = run("theme", "dark")
	require.NoError(t, err)

	out, err = run("theme")
	require.NoError(t, err)
	assert.Equal(t, "theme: dark\n", out)
}
