package atcoder

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rohmanhakim/atcoder-cli/pkg/timeutil"
	"github.com/rohmanhakim/atcoder-cli/pkg/urlutil"
)

/*
Contest reads one contest's task list and submission listings.

Responsibilities
- Fetch the task list page once per instance
- Parse task rows and the contest title
- Build Task and Submission fetchers sharing the same client and session
- Query submission listings (never memoized, the HTTP cache still applies)
*/
type Contest struct {
	id     string
	params params
	tasks  pageMemo
}

func newContest(id string, p params) *Contest {
	return &Contest{id: id, params: p}
}

func (c *Contest) ID() string {
	return c.id
}

// Name returns the text of the contest title link.
func (c *Contest) Name(ctx context.Context) (string, error) {
	doc, err := c.tasksPage(ctx)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(doc.Find("a.contest-title").Text()), nil
}

// Tasks parses every row of the task table.
func (c *Contest) Tasks(ctx context.Context) ([]TaskInfo, error) {
	doc, err := c.tasksPage(ctx)
	if err != nil {
		return nil, err
	}

	var tasks []TaskInfo
	doc.Find("table tbody tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Children()
		if cells.Length() < 4 {
			return
		}
		first := cells.Eq(0)
		tasks = append(tasks, TaskInfo{
			ID:          hrefID(first),
			Name:        fmt.Sprintf("%s - %s", strings.TrimSpace(first.Text()), strings.TrimSpace(cells.Eq(1).Text())),
			TimeLimit:   parseNumberWithUnits(cells.Eq(2).Text()),
			MemoryLimit: parseNumberWithUnits(cells.Eq(3).Text()),
		})
	})
	return tasks, nil
}

func (c *Contest) Task(id string) *Task {
	return newTask(c.id, id, c.params)
}

func (c *Contest) Submission(id string) *Submission {
	return newSubmission(c.id, id, c.params)
}

// Submissions lists every submission of the contest matching query.
func (c *Contest) Submissions(ctx context.Context, query SubmissionQuery) (SubmissionPage, error) {
	return c.listSubmissions(ctx, "submissions", query)
}

// MySubmissions lists the session user's submissions matching query.
func (c *Contest) MySubmissions(ctx context.Context, query SubmissionQuery) (SubmissionPage, error) {
	return c.listSubmissions(ctx, "submissions/me", query)
}

func (c *Contest) listSubmissions(ctx context.Context, path string, query SubmissionQuery) (SubmissionPage, error) {
	rawURL := urlutil.Join(c.params.atcoderURL, "contests", c.id, path) + "?" + query.encode()
	doc, err := c.params.getDocument(ctx, rawURL)
	if err != nil {
		return SubmissionPage{}, err
	}
	return parseSubmissions(doc), nil
}

func (c *Contest) tasksPage(ctx context.Context) (*goquery.Document, error) {
	return c.tasks.load(ctx, func(ctx context.Context) (*goquery.Document, error) {
		return c.params.getDocument(ctx, urlutil.Join(c.params.atcoderURL, "contests", c.id, "tasks")+"?lang=en")
	})
}

// encode renders the filters in the fixed order the site expects. Every
// parameter is present even when empty.
func (q SubmissionQuery) encode() string {
	page := q.Page
	if page <= 0 {
		page = 1
	}
	var b strings.Builder
	b.WriteString("f.Task=" + url.QueryEscape(q.Task))
	b.WriteString("&f.Language=" + url.QueryEscape(q.Language))
	b.WriteString("&f.Status=" + url.QueryEscape(string(q.Status)))
	b.WriteString("&f.User=" + url.QueryEscape(q.User))
	b.WriteString("&page=" + strconv.Itoa(page))
	b.WriteString("&lang=en")
	return b.String()
}

// parseSubmissions reads a submission listing. Rows with ten cells were
// judged with timing; shorter rows (compile errors) carry no exec time or
// memory and keep the detail link in cell 7.
func parseSubmissions(doc *goquery.Document) SubmissionPage {
	page := SubmissionPage{Submissions: []SubmissionSummary{}}

	doc.Find("table tbody tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Children()
		if cells.Length() < 8 {
			return
		}
		summary := SubmissionSummary{
			SubmissionTime: timeutil.ParseSubmissionTime(cells.Eq(0).Text()),
			Task:           hrefID(cells.Eq(1)),
			User:           strings.TrimSpace(cells.Eq(2).Text()),
			Language:       strings.TrimSpace(cells.Eq(3).Text()),
			CodeSize:       parseNumberWithUnits(cells.Eq(5).Text()),
			Status:         ToStatus(cells.Eq(6).Text()),
		}
		if cells.Length() == 10 {
			execTime := parseNumberWithUnits(cells.Eq(7).Text())
			memory := parseNumberWithUnits(cells.Eq(8).Text())
			summary.ExecTime = &execTime
			summary.Memory = &memory
			summary.ID = hrefID(cells.Eq(9))
		} else {
			summary.ID = hrefID(cells.Eq(7))
		}
		page.Submissions = append(page.Submissions, summary)
	})

	last := doc.Find(".pagination").First().Children().Last()
	if n, err := strconv.Atoi(strings.TrimSpace(last.Find("a").Text())); err == nil {
		page.NumberOfPages = n
	}
	return page
}
