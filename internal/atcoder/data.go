package atcoder

import (
	"strconv"
	"strings"
	"time"
)

// NumberWithUnits is a quantity such as "2 sec" or "1024 MB".
type NumberWithUnits struct {
	Value float64 `json:"value"`
	Unit  string  `json:"unit"`
}

func (n NumberWithUnits) String() string {
	if n.Unit == "" {
		return strconv.FormatFloat(n.Value, 'f', -1, 64)
	}
	return strconv.FormatFloat(n.Value, 'f', -1, 64) + " " + n.Unit
}

// parseNumberWithUnits splits on the first space. An unparsable number is 0.
func parseNumberWithUnits(raw string) NumberWithUnits {
	raw = strings.TrimSpace(raw)
	value, unit, _ := strings.Cut(raw, " ")
	if i := strings.IndexByte(unit, ' '); i >= 0 {
		unit = unit[:i]
	}
	return NumberWithUnits{Value: parseNumber(value), Unit: unit}
}

func parseNumber(raw string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0
	}
	return v
}

type TaskInfo struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	TimeLimit   NumberWithUnits `json:"timeLimit"`
	MemoryLimit NumberWithUnits `json:"memoryLimit"`
}

// Status is a judge verdict.
type Status string

const (
	StatusUnknown Status = ""
	StatusWJ      Status = "WJ"
	StatusAC      Status = "AC"
	StatusWA      Status = "WA"
	StatusIE      Status = "IE"
	StatusOLE     Status = "OLE"
	StatusRE      Status = "RE"
	StatusTLE     Status = "TLE"
	StatusMLE     Status = "MLE"
	StatusCE      Status = "CE"
)

var knownStatuses = map[Status]struct{}{
	StatusWJ: {}, StatusAC: {}, StatusWA: {}, StatusIE: {}, StatusOLE: {},
	StatusRE: {}, StatusTLE: {}, StatusMLE: {}, StatusCE: {},
}

// ToStatus maps verdict text to a Status; anything else is StatusUnknown.
func ToStatus(raw string) Status {
	s := Status(strings.TrimSpace(raw))
	if _, ok := knownStatuses[s]; ok {
		return s
	}
	return StatusUnknown
}

type SubmissionSummary struct {
	ID             string           `json:"id"`
	SubmissionTime time.Time        `json:"submissionTime"`
	Task           string           `json:"task"`
	User           string           `json:"user"`
	Language       string           `json:"language"`
	CodeSize       NumberWithUnits  `json:"codeSize"`
	Status         Status           `json:"status"`
	ExecTime       *NumberWithUnits `json:"execTime,omitempty"`
	Memory         *NumberWithUnits `json:"memory,omitempty"`
}

type SubmissionPage struct {
	NumberOfPages int                 `json:"numberOfPages"`
	Submissions   []SubmissionSummary `json:"submissions"`
}

// SubmissionQuery filters a submission listing. Zero fields mean "any";
// a zero Page means page 1.
type SubmissionQuery struct {
	Task     string
	Language string
	Status   Status
	User     string
	Page     int
}

type Format struct {
	Input  string `json:"input"`
	Output string `json:"output"`
}

type Example struct {
	Input  string `json:"input"`
	Output string `json:"output"`
	Notes  string `json:"notes"`
}

type TestCaseSet struct {
	Name      string   `json:"name"`
	Score     float64  `json:"score"`
	MaxScore  float64  `json:"maxScore"`
	TestCases []string `json:"testCases"`
}

type TestCaseResult struct {
	Name     string          `json:"name"`
	Status   Status          `json:"status"`
	ExecTime NumberWithUnits `json:"execTime"`
	Memory   NumberWithUnits `json:"memory"`
}
