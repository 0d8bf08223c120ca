package mdconvert

import (
	"strings"
	"time"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/rohmanhakim/atcoder-cli/internal/metadata"
	"github.com/rohmanhakim/atcoder-cli/pkg/failure"
)

/*
Conversion Rules
- Task statement fragments are rendered for a terminal
- Headings, lists, emphasis and links map to CommonMark
- Sample blocks (<pre>) become fenced code blocks, content verbatim
- Tables converted structurally (GFM)
- <var> becomes inline math ($N$), the notation the statements are written in
- DOM order preserved
*/

// ConvertRule turns an HTML fragment into Markdown.
type ConvertRule interface {
	Convert(fragment string) (string, failure.ClassifiedError)
}

var _ ConvertRule = (*StrictConversionRule)(nil)

type StrictConversionRule struct {
	metadataSink metadata.MetadataSink
	conv         *converter.Converter
}

func NewRule(metadataSink metadata.MetadataSink) *StrictConversionRule {
	if metadataSink == nil {
		metadataSink = &metadata.NoopSink{}
	}
	return &StrictConversionRule{
		metadataSink: metadataSink,
		conv: converter.NewConverter(
			converter.WithPlugins(
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(),
				table.NewTablePlugin(),
				newMathPlugin(),
			),
		),
	}
}

// Convert renders fragment. An empty or blank fragment yields "".
func (s *StrictConversionRule) Convert(fragment string) (string, failure.ClassifiedError) {
	if strings.TrimSpace(fragment) == "" {
		return "", nil
	}

	markdown, err := s.conv.ConvertString(fragment)
	if err != nil {
		conversionError := &ConversionError{
			Message:   err.Error(),
			Retryable: false,
			Cause:     ErrCauseConversionFailure,
		}
		s.metadataSink.RecordError(
			time.Now(),
			"mdconvert",
			"StrictConversionRule.Convert",
			mapConversionErrorToMetadataCause(*conversionError),
			conversionError.Error(),
			[]metadata.Attribute{},
		)
		return "", conversionError
	}
	return strings.TrimSpace(markdown), nil
}
