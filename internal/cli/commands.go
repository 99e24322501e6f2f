package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/BuzzLyutic/task-tracker-cli/internal/model"
	"github.com/BuzzLyutic/task-tracker-cli/internal/service"
	"github.com/BuzzLyutic/task-tracker-cli/pkg/render"
)

func (a *App) addCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <description>",
		Short: "Add a new task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := a.service.Add(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Task added successfully (ID: %d)\n", t.ID)
			return nil
		},
	}
}

func (a *App) updateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "update <id> <description>",
		Short: "Replace a task's description",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			t, err := a.service.Update(cmd.Context(), id, args[1])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Task %d updated\n", t.ID)
			return nil
		},
	}
}

func (a *App) deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := a.service.Delete(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Task %d deleted\n", id)
			return nil
		},
	}
}

func (a *App) markCmd(name, status string) *cobra.Command {
	return &cobra.Command{
		Use:   name + " <id>",
		Short: "Mark a task as " + status,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			t, err := a.service.Mark(cmd.Context(), id, status)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Task %d marked %s\n", t.ID, t.Status)
			return nil
		},
	}
}

func (a *App) listCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list [status]",
		Short: "List tasks, optionally filtered by status",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var filter model.TaskFilter
			if len(args) > 0 {
				st, ok := model.ParseStatus(args[0])
				if !ok {
					return fmt.Errorf("%w: unknown status %q", service.ErrValidation, args[0])
				}
				filter.Status = &st
			}

			tasks, err := a.service.List(cmd.Context(), filter)
			if err != nil {
				return err
			}
			if a.flagJSON {
				return render.JSON(cmd.OutOrStdout(), tasks)
			}
			return render.Table(cmd.OutOrStdout(), tasks)
		},
	}
	cmd.Flags().BoolVar(&a.flagJSON, "json", false, "output tasks as JSON")
	return cmd
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid task id %q", service.ErrValidation, arg)
	}
	return id, nil
}
