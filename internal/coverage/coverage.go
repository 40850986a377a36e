// Package coverage extracts the aggregate percentage from go tool cover -func
// output.
package coverage

import (
	"bufio"
	"io"
	"strconv"
	"strings"
)

// ParseFuncSummary scans go tool cover -func output for the total line and
// returns the covered percentage. ok is false when no total line was found.
func ParseFuncSummary(r io.Reader) (percent float64, ok bool) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, "total:") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		last := fields[len(fields)-1]
		if !strings.HasSuffix(last, "%") {
			continue
		}
		v, err := strconv.ParseFloat(strings.TrimSuffix(last, "%"), 64)
		if err != nil {
			continue
		}
		return v, true
	}
	return 0, false
}
