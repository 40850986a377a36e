// Package main is the entry point for the goqa CLI.
package main

import (
	"os"

	"goqa/internal/cli"
)

func main() {
	os.Exit(cli.Run(os.Args[1:]))
}
