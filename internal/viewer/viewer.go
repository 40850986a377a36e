// Package viewer supervises the interactive pprof exploration server. The
// server runs detached in the background; the orchestrator only keeps its
// handle to guarantee termination on every exit path.
package viewer

import (
	"fmt"
	"os/exec"
	"sync"
)

// Viewer is a handle to a running pprof HTTP server.
type Viewer struct {
	mu   sync.Mutex
	cmd  *exec.Cmd
	addr string
}

// Start launches go tool pprof -http on the given profile as a background
// process. It does not block waiting for the server.
func Start(addr, profilePath string) (*Viewer, error) {
	cmd := exec.Command("go", "tool", "pprof", "-http="+addr, profilePath)
	configureProcess(cmd)

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start pprof viewer: %w", err)
	}

	v := &Viewer{cmd: cmd, addr: addr}

	// Reap the child when it exits on its own so Stop on an already-dead
	// viewer stays harmless.
	go func() {
		_ = cmd.Wait()
	}()

	return v, nil
}

// Addr returns the listen address the viewer was started with.
func (v *Viewer) Addr() string {
	return v.addr
}

// Stop terminates the viewer and any children it spawned. Safe to call more
// than once and on an already-exited viewer.
func (v *Viewer) Stop() {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.cmd == nil {
		return
	}
	terminateProcess(v.cmd)
	v.cmd = nil
}
