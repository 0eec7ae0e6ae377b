package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"taskpad/internal/api"
	"taskpad/internal/tasklist"
)

func newListCmd(app *App) *cobra.Command {
	var filter string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List your tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := app.requireLogin()
			if err != nil {
				return err
			}
			tasks, err := app.client.ListTasks(cmd.Context(), userID)
			if err != nil {
				if api.IsAuth(err) {
					app.auth.Invalidate(err)
				}
				return err
			}

			if filter == "" {
				filter = app.cfg.DefaultFilter
			}
			list := tasklist.New(tasklist.ParseFilter(filter))
			list.RenderAll(tasks)

			out := cmd.OutOrStdout()
			if list.Empty() {
				fmt.Fprintln(out, "No tasks.")
				return nil
			}
			for _, r := range list.Records() {
				box := "[ ]"
				if r.Completed {
					box = "[x]"
				}
				fmt.Fprintf(out, "%s %s  %s\n", box, r.ID, r.Text)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&filter, "filter", "", "all, completed or pending (default: default_filter from config)")
	return cmd
}

func newAddCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add <text...>",
		Short: "Add a task",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := app.requireLogin()
			if err != nil {
				return err
			}
			t, err := app.client.CreateTask(cmd.Context(), strings.Join(args, " "), userID)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s: %s\n", t.ID, t.Text)
			return nil
		},
	}
}

// newDoneCmd builds `done` when completed is true and `undone` otherwise.
func newDoneCmd(app *App, completed bool) *cobra.Command {
	use, short, verb := "done <id>", "Mark a task completed", "completed"
	if !completed {
		use, short, verb = "undone <id>", "Mark a task pending", "pending"
	}
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := app.requireLogin(); err != nil {
				return err
			}
			c := completed
			if err := app.client.UpdateTask(cmd.Context(), args[0], api.TaskPatch{Completed: &c}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Task %s marked %s\n", args[0], verb)
			return nil
		},
	}
}

func newEditCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "edit <id> <text...>",
		Short: "Replace a task's text",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := app.requireLogin(); err != nil {
				return err
			}
			text := strings.TrimSpace(strings.Join(args[1:], " "))
			if text == "" {
				return &api.ValidationError{Msg: tasklist.MsgEmptyEdit}
			}
			if err := app.client.UpdateTask(cmd.Context(), args[0], api.TaskPatch{Text: &text}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Task %s updated\n", args[0])
			return nil
		},
	}
}

func newRmCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := app.requireLogin(); err != nil {
				return err
			}
			if err := app.client.DeleteTask(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Task %s deleted\n", args[0])
			return nil
		},
	}
}
