// Package testparser extracts result counts from go test -json output.
package testparser

import (
	"bufio"
	"encoding/json"
	"io"
	"strings"
)

// FailedTest holds information about a single failed test.
type FailedTest struct {
	Name   string // Test name (e.g., "TestFoo/subtest")
	Reason string // Failure reason/error message
}

// Counts holds parsed test result counts.
type Counts struct {
	Passed      int
	Failed      int
	Skipped     int
	Total       int
	Parsed      bool         // true if counts were successfully extracted
	FailedTests []FailedTest // details of failed tests
}

// event is a single record from go test -json output.
type event struct {
	Action  string `json:"Action"`
	Package string `json:"Package"`
	Test    string `json:"Test"`
	Output  string `json:"Output"`
}

// Parse reads go test -json output and returns test counts. Lines that are
// not valid JSON (build errors, race reports printed raw) are ignored.
func Parse(r io.Reader) Counts {
	counts := Counts{}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	failedOutput := make(map[string][]string) // test name -> output lines
	currentOutput := make(map[string][]string)

	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}

		var ev event
		if err := json.Unmarshal([]byte(line), &ev); err != nil {
			continue
		}

		// Package-level events carry no test name.
		if ev.Test == "" {
			continue
		}

		switch ev.Action {
		case "output":
			if ev.Output != "" {
				currentOutput[ev.Test] = append(currentOutput[ev.Test], ev.Output)
			}
		case "pass":
			counts.Passed++
			delete(currentOutput, ev.Test)
		case "fail":
			counts.Failed++
			failedOutput[ev.Test] = currentOutput[ev.Test]
			delete(currentOutput, ev.Test)
		case "skip":
			counts.Skipped++
			delete(currentOutput, ev.Test)
		}
	}

	for name, lines := range failedOutput {
		counts.FailedTests = append(counts.FailedTests, FailedTest{
			Name:   name,
			Reason: extractFailureReason(lines),
		})
	}

	if counts.Passed > 0 || counts.Failed > 0 || counts.Skipped > 0 {
		counts.Parsed = true
		counts.Total = counts.Passed + counts.Failed + counts.Skipped
	}

	return counts
}

// extractFailureReason extracts the most relevant failure message from test output.
func extractFailureReason(outputLines []string) string {
	const maxLen = 100

	// Prefer lines with the file.go:123: message shape.
	for _, line := range outputLines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "=== RUN") ||
			strings.HasPrefix(trimmed, "--- FAIL") {
			continue
		}
		if strings.Contains(trimmed, ".go:") && strings.Contains(trimmed, ": ") {
			idx := strings.Index(trimmed, ".go:")
			afterFile := trimmed[idx+4:]
			if colonIdx := strings.Index(afterFile, ": "); colonIdx != -1 {
				reason := strings.TrimSpace(afterFile[colonIdx+2:])
				if len(reason) > maxLen {
					reason = reason[:maxLen-3] + "..."
				}
				return reason
			}
		}
	}

	// Fallback: first non-boilerplate line.
	for _, line := range outputLines {
		trimmed := strings.TrimSpace(line)
		if trimmed != "" && !strings.HasPrefix(trimmed, "=== RUN") &&
			!strings.HasPrefix(trimmed, "--- FAIL") && !strings.HasPrefix(trimmed, "--- PASS") {
			if len(trimmed) > maxLen {
				trimmed = trimmed[:maxLen-3] + "..."
			}
			return trimmed
		}
	}

	return ""
}
