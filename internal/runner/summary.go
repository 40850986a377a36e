package runner

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"goqa/internal/artifact"
	"goqa/internal/output"
	"goqa/internal/stage"
)

var stageTitle = cases.Title(language.English)

// PrintSummary prints the per-stage breakdown and the overall verdict.
func PrintSummary(result *RunResult, out *output.Writer, artifactDir string) {
	out.SummaryHeader("QA Summary")

	for _, res := range result.Results {
		name := stageTitle.String(res.Stage)
		switch res.Status {
		case stage.StatusSkipped:
			out.SummarySkipped(name, res.Note)
		default:
			note := res.Note
			if note == "" && res.Err != nil {
				note = res.Err.Error()
			}
			out.SummaryAction(name, res.Status == stage.StatusPassed, FormatDuration(res.Duration), note)
		}
	}
	out.Println("")

	var passedStages, failedStages []string
	for _, res := range result.Results {
		switch res.Status {
		case stage.StatusPassed:
			passedStages = append(passedStages, res.Stage)
		case stage.StatusFailed:
			failedStages = append(failedStages, res.Stage)
		}
	}
	if len(passedStages) > 0 {
		out.SummaryPassed("Passed", strings.Join(passedStages, ", "))
	}
	if len(failedStages) > 0 {
		out.SummaryFailed("Failed", strings.Join(failedStages, ", "))
	}

	out.SummaryItem("Duration", FormatDuration(result.Duration))

	// The artifact layout is fixed; every location is listed whether or not
	// the run produced the file.
	out.SummaryItem("Artifacts", artifactDir)
	for _, name := range artifact.Layout {
		out.Println("    %s", filepath.Join(artifactDir, name))
	}

	if result.Success {
		out.FinalSuccess("All QA stages passed.")
	} else {
		out.FinalFailure("QA run failed.")
	}
}

// FormatDuration renders d the way the summary expects: milliseconds below a
// second, one decimal of seconds below a minute, m/s above.
func FormatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	m := int(d.Minutes())
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%dm%ds", m, s)
}
