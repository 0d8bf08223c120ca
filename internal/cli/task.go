package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/rohmanhakim/atcoder-cli/internal/atcoder"
	"github.com/rohmanhakim/atcoder-cli/internal/mdconvert"
	"github.com/spf13/cobra"
)

var taskCmd = &cobra.Command{
	Use:   "task <contest-id> <task-id>",
	Short: "Print a task statement.",
	Long: `Print a task's limits, statement, constraints, input and output format
and samples. Text and table output render the statement as Markdown; json
output carries the HTML fragments as found on the page.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWithAtCoder(cmd, func(a app) error {
			task := a.atcoder.Contest(args[0]).Task(args[1])
			detail, err := fetchTaskDetail(a, task)
			if err != nil {
				return err
			}
			if outputFormat == formatJSON {
				return writeJSON(a.out, detail)
			}
			statement, err := task.ProblemStatementMarkdown(a.ctx)
			if err != nil {
				return err
			}
			return writeTaskMarkdown(a.out, mdconvert.NewRule(a.sink), detail, statement)
		})
	},
}

type taskDetail struct {
	Info             atcoder.TaskInfo  `json:"info"`
	Score            float64           `json:"score"`
	Language         atcoder.Language  `json:"language,omitempty"`
	ProblemStatement string            `json:"problemStatement"`
	Constraints      string            `json:"constraints"`
	Format           atcoder.Format    `json:"format"`
	Examples         []atcoder.Example `json:"examples"`
}

func fetchTaskDetail(a app, task *atcoder.Task) (taskDetail, error) {
	var d taskDetail
	var err error
	if d.Info, err = task.Info(a.ctx); err != nil {
		return d, err
	}
	if d.Score, err = task.Score(a.ctx); err != nil {
		return d, err
	}
	if d.Language, _, err = task.Language(a.ctx); err != nil {
		return d, err
	}
	if d.ProblemStatement, err = task.ProblemStatement(a.ctx); err != nil {
		return d, err
	}
	if d.Constraints, err = task.Constraints(a.ctx); err != nil {
		return d, err
	}
	if d.Format, err = task.Format(a.ctx); err != nil {
		return d, err
	}
	if d.Examples, err = task.Examples(a.ctx); err != nil {
		return d, err
	}
	return d, nil
}

// writeTaskMarkdown prints d as one Markdown document. Empty sections are
// left out.
func writeTaskMarkdown(w io.Writer, rule mdconvert.ConvertRule, d taskDetail, statement string) error {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", d.Info.Name)
	fmt.Fprintf(&b, "Time Limit: %s / Memory Limit: %s", d.Info.TimeLimit, d.Info.MemoryLimit)
	if d.Score != 0 {
		fmt.Fprintf(&b, " / Score: %v", d.Score)
	}
	b.WriteString("\n")

	sections := []struct {
		title string
		html  string
	}{
		{"Constraints", d.Constraints},
		{"Input", d.Format.Input},
		{"Output", d.Format.Output},
	}
	if statement != "" {
		fmt.Fprintf(&b, "\n## Problem Statement\n\n%s\n", statement)
	}
	for _, s := range sections {
		if err := writeSection(&b, rule, s.title, s.html); err != nil {
			return err
		}
	}
	for i, e := range d.Examples {
		n := i + 1
		if err := writeSection(&b, rule, fmt.Sprintf("Sample Input %d", n), e.Input); err != nil {
			return err
		}
		if err := writeSection(&b, rule, fmt.Sprintf("Sample Output %d", n), e.Output); err != nil {
			return err
		}
		if err := writeSection(&b, rule, fmt.Sprintf("Notes %d", n), e.Notes); err != nil {
			return err
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func writeSection(b *strings.Builder, rule mdconvert.ConvertRule, title string, fragment string) error {
	md, err := rule.Convert(fragment)
	if err != nil {
		return err
	}
	if md == "" {
		return nil
	}
	fmt.Fprintf(b, "\n## %s\n\n%s\n", title, md)
	return nil
}
