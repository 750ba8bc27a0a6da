package cleaning

import (
	"strings"
	"time"

	"salespulse/pkg/contracts/domain"
)

// dateLayouts are tried in order when parsing free-form date text.
// ISO comes first so already-clean data takes the fast path; ambiguous
// numeric forms are treated month-first, matching the upstream data.
var dateLayouts = []string{
	domain.DateFormat,
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
	"01-02-2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
	"02 Jan 2006",
	"2 January 2006",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
}

// ParseDate parses free-form date text. The boolean result reports
// whether any known layout matched.
func ParseDate(text string) (time.Time, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, text); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
