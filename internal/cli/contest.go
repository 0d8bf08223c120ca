package cmd

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/rohmanhakim/atcoder-cli/internal/atcoder"
	"github.com/spf13/cobra"
)

var contestsCmd = &cobra.Command{
	Use:   "contests",
	Short: "List the ids of every known contest.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWithAtCoder(cmd, func(a app) error {
			ids, err := a.atcoder.Contests(a.ctx)
			if err != nil {
				return err
			}
			rows := make([]table.Row, 0, len(ids))
			for _, id := range ids {
				rows = append(rows, table.Row{id})
			}
			return render(a.out, listing{value: ids, header: table.Row{"Contest"}, rows: rows})
		})
	},
}

var contestCmd = &cobra.Command{
	Use:   "contest <contest-id>",
	Short: "Show a contest's name and task list.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWithAtCoder(cmd, func(a app) error {
			contest := a.atcoder.Contest(args[0])
			name, err := contest.Name(a.ctx)
			if err != nil {
				return err
			}
			tasks, err := contest.Tasks(a.ctx)
			if err != nil {
				return err
			}

			if outputFormat == formatJSON {
				return writeJSON(a.out, struct {
					ID    string             `json:"id"`
					Name  string             `json:"name"`
					Tasks []atcoder.TaskInfo `json:"tasks"`
				}{contest.ID(), name, tasks})
			}
			if _, err := fmt.Fprintln(a.out, name); err != nil {
				return err
			}
			return render(a.out, taskListing(tasks))
		})
	},
}

func taskListing(tasks []atcoder.TaskInfo) listing {
	rows := make([]table.Row, 0, len(tasks))
	for _, t := range tasks {
		rows = append(rows, table.Row{t.ID, t.Name, t.TimeLimit.String(), t.MemoryLimit.String()})
	}
	return listing{
		value:  tasks,
		header: table.Row{"ID", "Name", "Time Limit", "Memory Limit"},
		rows:   rows,
	}
}
