package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func TestConfigCommand(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("ZECW_TEXT_WIDTH", "100")

	out := &bytes.Buffer{}
	app := newApp()
	app.Writer = out

	err := app.RunContext(context.Background(), []string{"zecw", "--dir", dir, "config"})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Contains(t, lines, "DATADIR = "+dir)
	require.Contains(t, lines, "TEXT_WIDTH = 100")
	require.Contains(t, lines, "BIRTHDAY_ROUNDING = 0")
}

func TestTaskNames(t *testing.T) {
	first := nextTaskName()
	second := nextTaskName()
	require.True(t, strings.HasPrefix(first, "zecw-task-"))
	require.NotEqual(t, first, second)

	entry := log.NewEntry(log.New())
	require.NoError(t, taskHook{"zecw-task-7"}.Fire(entry))
	require.Equal(t, "zecw-task-7", entry.Data["task"])
}

func TestBalanceInvalidUsage(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"invalid_uuid", []string{"balance", "not-a-uuid"}},
		{"too_many_args", []string{"balance", "a", "b"}},
		{"invalid_currency", []string{"balance", "--convert", "ZZZZ"}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			app := newApp()
			app.Writer = &bytes.Buffer{}
			args := append([]string{"zecw", "--dir", t.TempDir()}, tt.args...)

			err := app.RunContext(context.Background(), args)
			var e *invalidUsageError
			require.ErrorAs(t, err, &e)
			require.Equal(t, "balance", e.command)
		})
	}
}

func TestInitInvalidUsage(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown_network", []string{"--network", "regtest"}},
		{"birthday_out_of_range", []string{"--birthday", "4294967296"}},
		{"invalid_recipient", []string{"--recipient", "age1nope"}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			app := newApp()
			app.Writer = &bytes.Buffer{}
			args := append([]string{
				"zecw", "--dir", dir, "init", "--name", "main", "--identity", dir + "/id.txt",
			}, tt.args...)

			err := app.RunContext(context.Background(), args)
			var e *invalidUsageError
			require.ErrorAs(t, err, &e)
			require.Equal(t, "init", e.command)
		})
	}
}
