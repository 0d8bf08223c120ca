package atcoder

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rohmanhakim/atcoder-cli/pkg/timeutil"
	"github.com/rohmanhakim/atcoder-cli/pkg/urlutil"
)

/*
Submission reads one submission detail page.

The page carries up to three tables in order: the summary, the per-set
scores and the per-case results. The last two exist only once judged.
*/
type Submission struct {
	contestID string
	id        string
	params    params
	page      pageMemo
}

func newSubmission(contestID string, id string, p params) *Submission {
	return &Submission{contestID: contestID, id: id, params: p}
}

func (s *Submission) ID() string {
	return s.id
}

func (s *Submission) SourceCode(ctx context.Context) (string, error) {
	doc, err := s.document(ctx)
	if err != nil {
		return "", err
	}
	return doc.Find("#submission-code").Text(), nil
}

// Info reads the summary table. Nine value cells include exec time and
// memory; fewer means the submission was not run.
func (s *Submission) Info(ctx context.Context) (SubmissionSummary, error) {
	doc, err := s.document(ctx)
	if err != nil {
		return SubmissionSummary{}, err
	}

	cells := doc.Find("table").First().Find("tr td:nth-child(2)")
	text := func(i int) string {
		return strings.TrimSpace(cells.Eq(i).Text())
	}
	info := SubmissionSummary{
		ID:             s.id,
		SubmissionTime: timeutil.ParseSubmissionTime(text(0)),
		Task:           hrefID(cells.Eq(1)),
		User:           text(2),
		Language:       text(3),
		CodeSize:       parseNumberWithUnits(text(5)),
		Status:         ToStatus(text(6)),
	}
	if cells.Length() == 9 {
		execTime := parseNumberWithUnits(text(7))
		memory := parseNumberWithUnits(text(8))
		info.ExecTime = &execTime
		info.Memory = &memory
	}
	return info, nil
}

// TestCaseSets reads the score table; nil when the page has none.
func (s *Submission) TestCaseSets(ctx context.Context) ([]TestCaseSet, error) {
	doc, err := s.document(ctx)
	if err != nil {
		return nil, err
	}

	table := doc.Find("table").Eq(1)
	if table.Children().Length() == 0 {
		return nil, nil
	}
	sets := []TestCaseSet{}
	table.Find("tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Children()
		if cells.Length() < 3 || cells.Eq(0).Is("th") {
			return
		}
		score, maxScore, _ := strings.Cut(cells.Eq(1).Text(), "/")
		var testCases []string
		for _, tc := range strings.Split(cells.Eq(2).Text(), ",") {
			testCases = append(testCases, strings.ReplaceAll(strings.TrimSpace(tc), " ", ""))
		}
		sets = append(sets, TestCaseSet{
			Name:      strings.TrimSpace(cells.Eq(0).Text()),
			Score:     parseNumber(score),
			MaxScore:  parseNumber(maxScore),
			TestCases: testCases,
		})
	})
	return sets, nil
}

// Results reads the per-case table; nil when the page has none.
func (s *Submission) Results(ctx context.Context) ([]TestCaseResult, error) {
	doc, err := s.document(ctx)
	if err != nil {
		return nil, err
	}

	table := doc.Find("table").Eq(2)
	if table.Children().Length() == 0 {
		return nil, nil
	}
	results := []TestCaseResult{}
	table.Find("tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Children()
		if cells.Length() < 4 || cells.Eq(0).Is("th") {
			return
		}
		results = append(results, TestCaseResult{
			Name:     strings.TrimSpace(cells.Eq(0).Text()),
			Status:   ToStatus(cells.Eq(1).Text()),
			ExecTime: parseNumberWithUnits(cells.Eq(2).Text()),
			Memory:   parseNumberWithUnits(cells.Eq(3).Text()),
		})
	})
	return results, nil
}

// CompileError returns the compiler output shown after the "Compile Error"
// heading, or nil when there is none.
func (s *Submission) CompileError(ctx context.Context) (*string, error) {
	doc, err := s.document(ctx)
	if err != nil {
		return nil, err
	}

	var message *string
	doc.Find("div.col-sm-12").Children().EachWithBreak(func(_ int, el *goquery.Selection) bool {
		if strings.TrimSpace(el.Text()) != "Compile Error" {
			return true
		}
		text := el.Next().Text()
		message = &text
		return false
	})
	return message, nil
}

func (s *Submission) document(ctx context.Context) (*goquery.Document, error) {
	return s.page.load(ctx, func(ctx context.Context) (*goquery.Document, error) {
		return s.params.getDocument(ctx, urlutil.Join(s.params.atcoderURL, "contests", s.contestID, "submissions", s.id)+"?lang=en")
	})
}
