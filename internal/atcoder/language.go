package atcoder

import "fmt"

// Language is a statement language of a task page.
type Language string

const (
	English  Language = "en"
	Japanese Language = "ja"
)

// ParseLanguage accepts the tags used in configuration.
func ParseLanguage(tag string) (Language, error) {
	switch Language(tag) {
	case English, Japanese:
		return Language(tag), nil
	default:
		return "", fmt.Errorf("unsupported language %q", tag)
	}
}

// section names a logical part of a task statement.
type section int

const (
	sectionProblemStatement section = iota
	sectionConstraints
	sectionInput
	sectionOutput
	sectionSampleInput
	sectionSampleOutput
)

var spanClasses = map[Language]string{
	English:  "lang-en",
	Japanese: "lang-ja",
}

var sectionTitles = map[section]map[Language]string{
	sectionProblemStatement: {English: "Problem Statement", Japanese: "問題文"},
	sectionConstraints:      {English: "Constraints", Japanese: "制約"},
	sectionInput:            {English: "Input", Japanese: "入力"},
	sectionOutput:           {English: "Output", Japanese: "出力"},
	sectionSampleInput:      {English: "Sample Input", Japanese: "入力例"},
	sectionSampleOutput:     {English: "Sample Output", Japanese: "出力例"},
}
