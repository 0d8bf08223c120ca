package timeutil

import (
	"strings"
	"time"
)

// JST is the zone the contest site renders timestamps in when no offset is shown.
var JST = time.FixedZone("JST", 9*60*60)

var layoutsWithOffset = []string{
	"2006-01-02 15:04:05-0700",
	"2006-01-02 15:04:05-07:00",
	time.RFC3339,
}

var layoutsWithoutOffset = []string{
	"2006-01-02 15:04:05",
	"2006/01/02 15:04:05",
}

// ParseSubmissionTime parses a submission timestamp as shown in submission
// tables. Timestamps without an offset are read as JST.
// Unparsable input yields the zero time.
func ParseSubmissionTime(raw string) time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}
	}
	for _, layout := range layoutsWithOffset {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}
	for _, layout := range layoutsWithoutOffset {
		if t, err := time.ParseInLocation(layout, raw, JST); err == nil {
			return t
		}
	}
	return time.Time{}
}
