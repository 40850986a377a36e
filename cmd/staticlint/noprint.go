package main

import (
	"go/ast"
	"go/types"
	"strings"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"
)

// NoPrintAnalyzer flags direct fmt.Print/Printf/Println calls. All console
// output goes through the output package so that quiet mode and CI mode stay
// consistent; raw prints bypass both. Test files and the output package
// itself are exempt.
var NoPrintAnalyzer = &analysis.Analyzer{
	Name:     "noprint",
	Doc:      "flag direct fmt print calls that bypass the output package",
	Run:      runNoPrint,
	Requires: []*analysis.Analyzer{inspect.Analyzer},
}

func runNoPrint(pass *analysis.Pass) (interface{}, error) {
	if pass.Pkg.Name() == "output" {
		return nil, nil
	}

	insp := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector)

	nodeFilter := []ast.Node{
		(*ast.CallExpr)(nil),
	}

	insp.Preorder(nodeFilter, func(n ast.Node) {
		call := n.(*ast.CallExpr)

		sel, ok := call.Fun.(*ast.SelectorExpr)
		if !ok {
			return
		}
		switch sel.Sel.Name {
		case "Print", "Printf", "Println":
		default:
			return
		}

		ident, ok := sel.X.(*ast.Ident)
		if !ok {
			return
		}
		obj := pass.TypesInfo.ObjectOf(ident)
		pkg, ok := obj.(*types.PkgName)
		if !ok || pkg.Imported().Path() != "fmt" {
			return
		}

		if strings.HasSuffix(pass.Fset.Position(call.Pos()).Filename, "_test.go") {
			return
		}

		pass.Reportf(call.Pos(), "console output must go through the output package, not fmt.%s", sel.Sel.Name)
	})

	return nil, nil
}
