package domain

import "strings"

// fieldsPerRecord is the only accepted field count for a data line.
const fieldsPerRecord = 3

// ParseRecords splits raw text into records. The first line is a header and
// is discarded; lines that do not split into exactly three comma-separated
// fields are dropped silently. Fields that are not numbers become NaN.
func ParseRecords(text string) []Record {
	lines := dataLines(text)
	records := make([]Record, 0, len(lines))
	for _, line := range lines {
		cols := strings.Split(line, ",")
		if len(cols) != fieldsPerRecord {
			continue
		}
		records = append(records, Record{
			Year:   ParseNumber(cols[0]).Float(),
			Total:  ParseNumber(cols[1]).Float(),
			Median: ParseNumber(cols[2]).Float(),
		})
	}
	return records
}

// dataLines returns every line after the header with a trailing "\r" removed.
func dataLines(text string) []string {
	lines := strings.Split(text, "\n")
	if len(lines) <= 1 {
		return nil
	}
	lines = lines[1:]
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}
