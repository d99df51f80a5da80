package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	domaintheme "github.com/example/daily-todos/domain/theme"
	domain "github.com/example/daily-todos/domain/todo"
	"github.com/example/daily-todos/modules/storage"
	"github.com/spf13/cobra"
)

func newRootCmd(open opener) *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:           "todoctl",
		Short:         "todoctl - manage today's todo list",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to a YAML config file")

	// withSession opens storage, runs fn and closes storage again.
	withSession := func(fn func(ctx context.Context, s *session, out io.Writer, args []string) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), storage.DefaultTimeout)
			defer cancel()

			s, err := openSession(ctx, configPath, open, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer s.Close()
			return fn(ctx, s, cmd.OutOrStdout(), args)
		}
	}

	rootCmd.AddCommand(addCmd(withSession))
	rootCmd.AddCommand(toggleCmd(withSession))
	rootCmd.AddCommand(rmCmd(withSession))
	rootCmd.AddCommand(listCmd(withSession))
	rootCmd.AddCommand(historyCmd(withSession))
	rootCmd.AddCommand(themeCmd(withSession))

	return rootCmd
}

type sessionRunner func(fn func(ctx context.Context, s *session, out io.Writer, args []string) error) func(*cobra.Command, []string) error

func addCmd(run sessionRunner) *cobra.Command {
	var description string

	cmd := &cobra.Command{
		Use:   "add [title]",
		Short: "Add a todo to the top of the list",
		Args:  cobra.MinimumNArgs(1),
		RunE: run(func(ctx context.Context, s *session, out io.Writer, args []string) error {
			created, err := s.store.Add(ctx, strings.Join(args, " "), description)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Added %s  %s\n", shortID(created.ID), created.Title)
			return nil
		}),
	}

	cmd.Flags().StringVarP(&description, "description", "d", "", "optional description")
	return cmd
}

func toggleCmd(run sessionRunner) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle [id]",
		Short: "Mark a todo done, or not done again",
		Args:  cobra.ExactArgs(1),
		RunE: run(func(ctx context.Context, s *session, out io.Writer, args []string) error {
			id, err := s.resolveID(args[0])
			if err != nil {
				return err
			}
			toggled, err := s.store.Toggle(ctx, id)
			if err != nil {
				return err
			}
			state := "active"
			if toggled.Completed {
				state = "completed"
			}
			fmt.Fprintf(out, "%s  %s is now %s\n", shortID(toggled.ID), toggled.Title, state)
			return nil
		}),
	}
}

func rmCmd(run sessionRunner) *cobra.Command {
	return &cobra.Command{
		Use:     "rm [id]",
		Aliases: []string{"remove", "delete"},
		Short:   "Delete a todo",
		Args:    cobra.ExactArgs(1),
		RunE: run(func(ctx context.Context, s *session, out io.Writer, args []string) error {
			id, err := s.resolveID(args[0])
			if err != nil {
				return err
			}
			if err := s.store.Remove(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(out, "Removed %s\n", shortID(id))
			return nil
		}),
	}
}

func listCmd(run sessionRunner) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Show active todos, then completed ones",
		Args:    cobra.NoArgs,
		RunE: run(func(_ context.Context, s *session, out io.Writer, _ []string) error {
			active := s.store.Active()
			completed := s.store.Completed()

			if len(active)+len(completed) == 0 {
				fmt.Fprintln(out, "No todos yet")
				return nil
			}

			fmt.Fprintf(out, "Active (%d)\n", len(active))
			for _, t := range active {
				printTodo(out, t)
			}
			fmt.Fprintf(out, "Completed (%d)\n", len(completed))
			for _, t := range completed {
				printTodo(out, t)
			}
			return nil
		}),
	}
}

func historyCmd(run sessionRunner) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show completion per day, newest first",
		Args:  cobra.NoArgs,
		RunE: run(func(ctx context.Context, s *session, out io.Writer, _ []string) error {
			days := s.archive.Load(ctx)
			if limit > 0 && len(days) > limit {
				days = days[:limit]
			}
			if len(days) == 0 {
				fmt.Fprintln(out, "No history yet")
				return nil
			}
			for _, day := range days {
				stats := day.Stats()
				fmt.Fprintf(out, "%s  %d/%d completed  %.0f%%\n",
					day.Date, stats.Completed, stats.Total, stats.CompletionRate)
			}
			return nil
		}),
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "maximum number of days to show")
	return cmd
}

func themeCmd(run sessionRunner) *cobra.Command {
	return &cobra.Command{
		Use:       "theme [light|dark|system]",
		Short:     "Show or set the theme preference",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{string(domaintheme.Light), string(domaintheme.Dark), string(domaintheme.System)},
		RunE: run(func(ctx context.Context, s *session, out io.Writer, args []string) error {
			if len(args) == 1 {
				t, err := domaintheme.Parse(args[0])
				if err != nil {
					return err
				}
				if err := s.prefs.SetTheme(ctx, t); err != nil {
					return err
				}
			}
			fmt.Fprintf(out, "theme: %s\n", s.prefs.Theme())
			return nil
		}),
	}
}

func printTodo(out io.Writer, t domain.Todo) {
	mark := "[ ]"
	if t.Completed {
		mark = "[x]"
	}
	fmt.Fprintf(out, "  %s %s  %s\n", mark, shortID(t.ID), t.Title)
	if t.Description != "" {
		fmt.Fprintf(out, "        %s\n", t.Description)
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
