package internalcheck

import (
	"go/parser"
	"go/token"
	"strconv"
	"strings"
	"testing"

	"golang.org/x/tools/go/packages"
)

const cgoPackage = "github.com/coinbase/cb-wallet-go/pkg/cbwallet/abi/cabi"

// Files excluded by build tags are checked too, so the cgo build of every
// package is covered without a C toolchain.
func TestCgoConfinedToCabi(t *testing.T) {
	pkgs := load(t, packages.NeedName|packages.NeedFiles)

	var findings []string
	sawCgo := false
	fset := token.NewFileSet()
	for _, pkg := range pkgs {
		files := append(append([]string(nil), pkg.GoFiles...), pkg.IgnoredFiles...)
		for _, path := range files {
			if !strings.HasSuffix(path, ".go") {
				continue
			}
			f, err := parser.ParseFile(fset, path, nil, parser.ImportsOnly)
			if err != nil {
				t.Fatalf("parse %s: %v", path, err)
			}
			for _, imp := range f.Imports {
				p, err := strconv.Unquote(imp.Path.Value)
				if err != nil || p != "C" {
					continue
				}
				if pkg.PkgPath == cgoPackage {
					sawCgo = true
					continue
				}
				findings = append(findings, fset.Position(imp.Pos()).String())
			}
		}
	}

	if len(findings) > 0 {
		t.Fatalf(`import "C" outside %s:\n%s`, cgoPackage, strings.Join(findings, "\n"))
	}
	if !sawCgo {
		t.Fatalf("no cgo file found in %s", cgoPackage)
	}
}
