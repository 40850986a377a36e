package stage

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"goqa/internal/artifact"
)

// largeFileThreshold is the size above which a file is reported.
const largeFileThreshold = 1 << 20 // 1 MB

// todoMarkers are the text markers signaling incomplete work.
var todoMarkers = []string{"TODO", "FIXME"}

// sourceExtensions limits the marker scan to text files worth reporting on.
var sourceExtensions = map[string]bool{
	".go":   true,
	".md":   true,
	".txt":  true,
	".yml":  true,
	".yaml": true,
	".json": true,
	".sh":   true,
	".mod":  true,
	".sql":  true,
}

// Housekeeping scans the working tree for oversized files and TODO/FIXME
// markers and writes both reports into the artifacts directory. Findings are
// advisory; the stage never fails the aggregate.
func Housekeeping(ctx context.Context, env *Env) Result {
	env.Out.StageStart(NameHousekeeping, "")
	start := time.Now()

	var largeFiles, todos []string

	root := env.WorkDir
	if root == "" {
		root = "."
	}
	skipDir := filepath.Base(env.Artifacts.Dir())

	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // unreadable entries are not findings
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		name := d.Name()
		if d.IsDir() {
			if path == root {
				return nil
			}
			// Hidden, dependency, and artifact directories are noise.
			if strings.HasPrefix(name, ".") || name == "vendor" || name == "node_modules" || name == skipDir {
				return filepath.SkipDir
			}
			return nil
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			rel = path
		}

		info, err := d.Info()
		if err == nil && info.Size() > largeFileThreshold {
			largeFiles = append(largeFiles, fmt.Sprintf("%s\t%d bytes", rel, info.Size()))
		}

		if sourceExtensions[filepath.Ext(name)] {
			todos = append(todos, scanMarkers(path, rel)...)
		}
		return nil
	})
	if walkErr != nil {
		env.Out.Warning("housekeeping walk interrupted: %v", walkErr)
	}

	writeReport(env, artifact.LargeFiles, largeFiles, fmt.Sprintf("Files larger than %d bytes", largeFileThreshold))
	writeReport(env, artifact.Todos, todos, "Incomplete-work markers")

	env.Out.Info("housekeeping: %d large file(s), %d marker(s)", len(largeFiles), len(todos))

	res := passed(NameHousekeeping, env.Artifacts.Path(artifact.Todos), time.Since(start))
	res.Note = fmt.Sprintf("%d large, %d markers", len(largeFiles), len(todos))
	return res
}

// scanMarkers reports lines in a file containing incomplete-work markers.
func scanMarkers(path, rel string) []string {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer func() { _ = f.Close() }()

	var findings []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		for _, marker := range todoMarkers {
			if strings.Contains(line, marker) {
				findings = append(findings, fmt.Sprintf("%s:%d: %s", rel, lineNo, strings.TrimSpace(line)))
				break
			}
		}
	}
	return findings
}

// writeReport overwrites a housekeeping report. Write problems are warnings:
// housekeeping never fails the run.
func writeReport(env *Env, name string, lines []string, header string) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "# %s\n", header)
	if len(lines) == 0 {
		buf.WriteString("none\n")
	}
	for _, line := range lines {
		buf.WriteString(line)
		buf.WriteByte('\n')
	}
	if err := env.Artifacts.WriteReport(name, buf.Bytes()); err != nil {
		env.Out.Warning("cannot write %s: %v", name, err)
	}
}
