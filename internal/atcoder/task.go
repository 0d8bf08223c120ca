package atcoder

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rohmanhakim/atcoder-cli/internal/mdconvert"
	"github.com/rohmanhakim/atcoder-cli/pkg/urlutil"
)

/*
Task reads one task page.

Responsibilities
- Fetch the task page once per instance
- Pick the statement language: the first configured one present on the page
- Locate statement parts by their localized heading
- Return parts as HTML fragments, verbatim from the page

A page without any configured language yields empty results, not errors.
*/
type Task struct {
	contestID string
	id        string
	params    params
	page      pageMemo
}

const (
	partSelector       = "div.part"
	ioPartSelector     = "div.io-style>div.part"
	defaultBodyPattern = "section>:not(h3)"
	sampleBodyPattern  = "section>pre:nth-child(2)"
	sampleNotePattern  = "section>:nth-child(n+3)"
)

func newTask(contestID string, id string, p params) *Task {
	return &Task{contestID: contestID, id: id, params: p}
}

func (t *Task) ID() string {
	return t.id
}

// Info reads the task title and the "Time Limit: X / Memory Limit: Y" line.
// Missing pieces degrade to zero values.
func (t *Task) Info(ctx context.Context) (TaskInfo, error) {
	doc, err := t.document(ctx)
	if err != nil {
		return TaskInfo{}, err
	}

	info := TaskInfo{
		ID:   t.id,
		Name: strings.TrimSpace(doc.Find("span.h2").First().Contents().Not("a").Text()),
	}
	limits := strings.Split(doc.Find("div.col-sm-12>p").First().Text(), " / ")
	if len(limits) > 0 {
		info.TimeLimit = parseNumberWithUnits(afterColon(limits[0]))
	}
	if len(limits) > 1 {
		info.MemoryLimit = parseNumberWithUnits(afterColon(limits[1]))
	}
	return info, nil
}

// Score reads the first variable of the English statement as a number.
func (t *Task) Score(ctx context.Context) (float64, error) {
	doc, err := t.document(ctx)
	if err != nil {
		return 0, err
	}
	return parseNumber(doc.Find("div#task-statement span.lang-en>p var").First().Text()), nil
}

func (t *Task) ProblemStatement(ctx context.Context) (string, error) {
	return t.fixedSection(ctx, partSelector, sectionProblemStatement)
}

// ProblemStatementMarkdown renders ProblemStatement for a terminal.
func (t *Task) ProblemStatementMarkdown(ctx context.Context) (string, error) {
	statement, err := t.ProblemStatement(ctx)
	if err != nil {
		return "", err
	}
	md, convErr := mdconvert.NewRule(t.params.metadataSink).Convert(statement)
	if convErr != nil {
		return "", convErr
	}
	return md, nil
}

func (t *Task) Constraints(ctx context.Context) (string, error) {
	return t.fixedSection(ctx, partSelector, sectionConstraints)
}

func (t *Task) Format(ctx context.Context) (Format, error) {
	input, err := t.fixedSection(ctx, ioPartSelector, sectionInput)
	if err != nil {
		return Format{}, err
	}
	output, err := t.fixedSection(ctx, ioPartSelector, sectionOutput)
	if err != nil {
		return Format{}, err
	}
	return Format{Input: input, Output: output}, nil
}

// Examples probes "Sample Input n" / "Sample Output n" from n = 1 and stops
// the first time both extracted blocks are empty.
func (t *Task) Examples(ctx context.Context) ([]Example, error) {
	doc, err := t.document(ctx)
	if err != nil {
		return nil, err
	}

	examples := []Example{}
	lang, ok := t.language(doc)
	if !ok {
		return examples, nil
	}
	selector := statementSelector(lang, partSelector)
	for n := 1; ; n++ {
		input := findSection(doc, selector, sampleTitle(sectionTitles[sectionSampleInput][lang], n))
		output := findSection(doc, selector, sampleTitle(sectionTitles[sectionSampleOutput][lang], n))
		example := Example{
			Input:  toHTML(input, sampleBodyPattern),
			Output: toHTML(output, sampleBodyPattern),
			Notes:  toHTML(input, sampleNotePattern) + toHTML(output, sampleNotePattern),
		}
		if example.Input == "" && example.Output == "" {
			break
		}
		examples = append(examples, example)
	}
	return examples, nil
}

// Language reports the statement language in use, if any.
func (t *Task) Language(ctx context.Context) (Language, bool, error) {
	doc, err := t.document(ctx)
	if err != nil {
		return "", false, err
	}
	lang, ok := t.language(doc)
	return lang, ok, nil
}

func (t *Task) fixedSection(ctx context.Context, part string, sec section) (string, error) {
	doc, err := t.document(ctx)
	if err != nil {
		return "", err
	}
	lang, ok := t.language(doc)
	if !ok {
		return "", nil
	}
	title := regexp.MustCompile("^" + regexp.QuoteMeta(sectionTitles[sec][lang]) + "$")
	return toHTML(findSection(doc, statementSelector(lang, part), title), defaultBodyPattern), nil
}

func (t *Task) language(doc *goquery.Document) (Language, bool) {
	for _, lang := range t.params.languages {
		class, ok := spanClasses[lang]
		if !ok {
			continue
		}
		if doc.Find("div#task-statement span." + class).Length() != 0 {
			return lang, true
		}
	}
	return "", false
}

func (t *Task) document(ctx context.Context) (*goquery.Document, error) {
	return t.page.load(ctx, func(ctx context.Context) (*goquery.Document, error) {
		return t.params.getDocument(ctx, urlutil.Join(t.params.atcoderURL, "contests", t.contestID, "tasks", t.id)+"?lang=en")
	})
}

func statementSelector(lang Language, part string) string {
	return fmt.Sprintf("div#task-statement span.%s>%s", spanClasses[lang], part)
}

// sampleTitle matches "{prefix} {n}" followed by a non-digit or the end, so
// a trailing "Copy" label is accepted and n = 1 never matches "10".
func sampleTitle(prefix string, n int) *regexp.Regexp {
	return regexp.MustCompile(fmt.Sprintf(`^%s\s*%d(\D|$)`, regexp.QuoteMeta(prefix), n))
}

// findSection keeps the parts whose section heading matches title.
func findSection(doc *goquery.Document, selector string, title *regexp.Regexp) *goquery.Selection {
	return doc.Find(selector).FilterFunction(func(_ int, s *goquery.Selection) bool {
		return title.MatchString(strings.TrimSpace(s.Children().Find("section>h3").Text()))
	})
}

// toHTML serializes the nodes matching pattern inside each part, one part
// per line.
func toHTML(parts *goquery.Selection, pattern string) string {
	var out []string
	parts.Each(func(_ int, s *goquery.Selection) {
		out = append(out, outerHTML(s.Children().Find(pattern)))
	})
	return strings.Join(out, "\n")
}

func afterColon(s string) string {
	_, after, found := strings.Cut(s, ": ")
	if !found {
		return ""
	}
	return after
}
