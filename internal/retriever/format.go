package retriever

import (
	"strings"
	"unicode/utf8"
)

// FormatContext renders scored results into a bullet list for prompt
// injection, accepting lines in rank order only while the running total
// (joining newlines included) stays within charLimit. The first line that
// would exceed the budget stops iteration, so a lower-ranked result never
// displaces a higher-ranked one. Empty input yields an empty string.
func FormatContext(results []SearchResult, charLimit int) string {
	var lines []string
	total := 0
	for _, res := range results {
		line := "• [" + res.Section + "] " + res.Text
		cost := utf8.RuneCountInString(line)
		if len(lines) > 0 {
			cost++
		}
		if total+cost > charLimit {
			break
		}
		lines = append(lines, line)
		total += cost
	}
	return strings.Join(lines, "\n")
}
