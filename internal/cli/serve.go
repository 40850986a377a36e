package cli

import (
	"fmt"
	"os"
	"strings"

	"goqa/internal/artifact"
	"goqa/internal/report"
)

// DefaultServeAddr is where goqa serve listens unless --addr overrides it.
const DefaultServeAddr = "localhost:8080"

// cmdServe serves the artifact directory over HTTP.
func cmdServe(args []string) int {
	addr, err := parseServeFlags(args)
	if err != nil {
		out.ErrorPrefix("%v", err)
		out.Hint("usage: goqa serve [--addr=host:port]")
		return 1
	}

	artifacts := artifact.New(artifact.DefaultDir)
	if _, err := os.Stat(artifacts.Dir()); err != nil {
		out.ErrorPrefix("artifact directory %s does not exist, run 'goqa' first", artifacts.Dir())
		return 1
	}

	out.Info("serving %s on http://%s", artifacts.Dir(), addr)
	if err := report.Serve(addr, artifacts); err != nil {
		out.ErrorPrefix("server failed: %v", err)
		return 1
	}
	return 0
}

func parseServeFlags(args []string) (string, error) {
	addr := DefaultServeAddr

	i := 0
	for i < len(args) {
		arg := args[i]
		switch {
		case arg == "--addr" || strings.HasPrefix(arg, "--addr="):
			v, n, err := flagValue(args, i, "--addr")
			if err != nil {
				return "", err
			}
			addr = v
			i = n
		default:
			return "", fmt.Errorf("unknown flag %q", arg)
		}
	}

	return addr, nil
}
