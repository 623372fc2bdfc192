package report

import "strings"

// Record maps a report column header to its raw string value.
type Record map[string]string

// ParseReport parses a tab-separated seller report. The first line names the
// columns; every following line is mapped positionally onto those names.
// Trailing blank lines are dropped. A row with fewer fields than headers
// leaves the missing columns unset rather than empty.
func ParseReport(text string) []Record {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	lines := strings.Split(text, "\n")
	headers := strings.Split(strings.TrimRight(lines[0], "\r"), "\t")

	records := make([]Record, 0, len(lines)-1)
	for _, line := range lines[1:] {
		line = strings.TrimRight(line, "\r")
		if line == "" {
			continue
		}

		values := strings.Split(line, "\t")
		record := Record{}
		for i, header := range headers {
			if i < len(values) {
				record[header] = values[i]
			}
		}
		records = append(records, record)
	}

	return records
}
