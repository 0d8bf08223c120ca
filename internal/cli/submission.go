package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/rohmanhakim/atcoder-cli/internal/atcoder"
	"github.com/spf13/cobra"
)

var (
	mine           bool
	filterTask     string
	filterLanguage string
	filterStatus   string
	filterUser     string
	page           int
	sourceOnly     bool
)

var submissionsCmd = &cobra.Command{
	Use:   "submissions <contest-id>",
	Short: "List a contest's submissions.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query, err := submissionQuery()
		if err != nil {
			return err
		}
		return runWithAtCoder(cmd, func(a app) error {
			contest := a.atcoder.Contest(args[0])
			list := contest.Submissions
			if mine {
				list = contest.MySubmissions
			}
			result, err := list(a.ctx, query)
			if err != nil {
				return err
			}
			if outputFormat == formatJSON {
				return writeJSON(a.out, result)
			}
			if err := render(a.out, submissionListing(result.Submissions)); err != nil {
				return err
			}
			if outputFormat == formatTable {
				_, err = fmt.Fprintf(a.out, "page %d of %d\n", max(query.Page, 1), result.NumberOfPages)
			}
			return err
		})
	},
}

var submissionCmd = &cobra.Command{
	Use:   "submission <contest-id> <submission-id>",
	Short: "Show a submission's verdict, per-case results or source code.",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWithAtCoder(cmd, func(a app) error {
			sub := a.atcoder.Contest(args[0]).Submission(args[1])
			if sourceOnly {
				code, err := sub.SourceCode(a.ctx)
				if err != nil {
					return err
				}
				_, err = io.WriteString(a.out, code)
				return err
			}

			detail, err := fetchSubmissionDetail(a, sub)
			if err != nil {
				return err
			}
			if outputFormat == formatJSON {
				return writeJSON(a.out, detail)
			}
			return writeSubmissionDetail(a.out, detail)
		})
	},
}

func submissionQuery() (atcoder.SubmissionQuery, error) {
	status := atcoder.ToStatus(filterStatus)
	if filterStatus != "" && status == atcoder.StatusUnknown {
		return atcoder.SubmissionQuery{}, fmt.Errorf("unknown status %q", filterStatus)
	}
	return atcoder.SubmissionQuery{
		Task:     filterTask,
		Language: filterLanguage,
		Status:   status,
		User:     filterUser,
		Page:     page,
	}, nil
}

func submissionListing(subs []atcoder.SubmissionSummary) listing {
	rows := make([]table.Row, 0, len(subs))
	for _, s := range subs {
		rows = append(rows, table.Row{
			s.ID,
			formatTime(s.SubmissionTime),
			s.Task,
			s.User,
			s.Language,
			s.CodeSize.String(),
			string(s.Status),
			optional(s.ExecTime),
			optional(s.Memory),
		})
	}
	return listing{
		value:  subs,
		header: table.Row{"ID", "Time", "Task", "User", "Language", "Size", "Status", "Exec Time", "Memory"},
		rows:   rows,
	}
}

type submissionDetail struct {
	Info         atcoder.SubmissionSummary `json:"info"`
	TestCaseSets []atcoder.TestCaseSet     `json:"testCaseSets"`
	Results      []atcoder.TestCaseResult  `json:"results"`
	CompileError *string                   `json:"compileError"`
}

func fetchSubmissionDetail(a app, sub *atcoder.Submission) (submissionDetail, error) {
	var d submissionDetail
	var err error
	if d.Info, err = sub.Info(a.ctx); err != nil {
		return d, err
	}
	if d.TestCaseSets, err = sub.TestCaseSets(a.ctx); err != nil {
		return d, err
	}
	if d.Results, err = sub.Results(a.ctx); err != nil {
		return d, err
	}
	if d.CompileError, err = sub.CompileError(a.ctx); err != nil {
		return d, err
	}
	return d, nil
}

func writeSubmissionDetail(w io.Writer, d submissionDetail) error {
	if err := render(w, submissionListing([]atcoder.SubmissionSummary{d.Info})); err != nil {
		return err
	}
	if d.CompileError != nil {
		if _, err := fmt.Fprintf(w, "\nCompile Error\n%s\n", *d.CompileError); err != nil {
			return err
		}
	}
	if len(d.TestCaseSets) != 0 {
		rows := make([]table.Row, 0, len(d.TestCaseSets))
		for _, s := range d.TestCaseSets {
			rows = append(rows, table.Row{s.Name, fmt.Sprintf("%v / %v", s.Score, s.MaxScore), len(s.TestCases)})
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
		if err := render(w, listing{header: table.Row{"Set", "Score", "Cases"}, rows: rows}); err != nil {
			return err
		}
	}
	if len(d.Results) != 0 {
		rows := make([]table.Row, 0, len(d.Results))
		for _, r := range d.Results {
			rows = append(rows, table.Row{r.Name, string(r.Status), r.ExecTime.String(), r.Memory.String()})
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
		if err := render(w, listing{header: table.Row{"Case", "Status", "Exec Time", "Memory"}, rows: rows}); err != nil {
			return err
		}
	}
	return nil
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02 15:04:05-0700")
}

func optional(n *atcoder.NumberWithUnits) string {
	if n == nil {
		return ""
	}
	return n.String()
}

func init() {
	submissionsCmd.Flags().BoolVar(&mine, "me", false, "list only the session user's submissions")
	submissionsCmd.Flags().StringVar(&filterTask, "task", "", "filter by task id (e.g., abc001_a)")
	submissionsCmd.Flags().StringVar(&filterLanguage, "lang", "", "filter by language id")
	submissionsCmd.Flags().StringVar(&filterStatus, "status", "", "filter by verdict (AC, WA, TLE, ...)")
	submissionsCmd.Flags().StringVar(&filterUser, "user", "", "filter by user name")
	submissionsCmd.Flags().IntVar(&page, "page", 1, "page of the listing")

	submissionCmd.Flags().BoolVar(&sourceOnly, "source", false, "print only the source code")
}
