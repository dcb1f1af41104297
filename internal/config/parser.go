package config

import "strings"

// assignment is one KEY = "VALUE" line after cleanup. Produced per line and
// consumed immediately by the resolver scan.
type assignment struct {
	key   string
	value string
}

// parseAssignment extracts an assignment from one config line. Comment and
// blank lines, and lines without an equals sign, yield ok == false.
//
// The key is the token before the first equals sign, so SONG_DIR never
// false-positives against a hypothetical SONG_DIR_LAYOUT line. The value keeps
// everything after the equals sign with at most one leading space and every
// single or double quote character removed.
func parseAssignment(line string) (assignment, bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return assignment{}, false
	}

	idx := strings.Index(line, "=")
	if idx < 0 {
		return assignment{}, false
	}

	value := strings.TrimPrefix(line[idx+1:], " ")
	value = strings.TrimSuffix(value, "\n")
	value = strings.ReplaceAll(value, `"`, "")
	value = strings.ReplaceAll(value, "'", "")

	return assignment{key: strings.TrimSpace(line[:idx]), value: value}, true
}
