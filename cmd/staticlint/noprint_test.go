package main

import (
	"testing"

	"golang.org/x/tools/go/analysis/analysistest"
)

func TestNoPrintAnalyzer(t *testing.T) {
	analysistest.Run(t, analysistest.TestData(), NoPrintAnalyzer, "a")
}
