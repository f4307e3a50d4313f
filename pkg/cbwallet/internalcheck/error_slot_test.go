package internalcheck

import (
	"fmt"
	"go/ast"
	"strings"
	"testing"

	"golang.org/x/tools/go/packages"
)

const abiPackage = "github.com/coinbase/cb-wallet-go/pkg/cbwallet/abi"

// Only these packages may create an error slot. Everyone else goes through
// internal/bridge.
var slotOwners = map[string]bool{
	"github.com/coinbase/cb-wallet-go/pkg/cbwallet/abi":             true,
	"github.com/coinbase/cb-wallet-go/pkg/cbwallet/abi/cabi":        true,
	"github.com/coinbase/cb-wallet-go/pkg/cbwallet/internal/bridge": true,
	"github.com/coinbase/cb-wallet-go/pkg/cbwallet/fakeengine":      true,
}

func TestErrorSlotsOnlyInBridge(t *testing.T) {
	pkgs := load(t, packages.NeedSyntax|packages.NeedTypes|packages.NeedTypesInfo|packages.NeedFiles|packages.NeedName)

	var findings []string
	for _, pkg := range pkgs {
		if slotOwners[pkg.PkgPath] {
			continue
		}
		for _, file := range pkg.Syntax {
			ast.Inspect(file, func(n ast.Node) bool {
				sel, ok := n.(*ast.SelectorExpr)
				if !ok {
					return true
				}
				obj := pkg.TypesInfo.Uses[sel.Sel]
				if obj == nil || obj.Pkg() == nil || obj.Pkg().Path() != abiPackage {
					return true
				}
				if obj.Name() == "CodeNotSet" {
					findings = append(findings, fmt.Sprintf("%s: error slot created outside the bridge", pkg.Fset.Position(sel.Pos())))
				}
				return true
			})
		}
	}

	if len(findings) > 0 {
		t.Fatalf("error slot policy violation:\n%s", strings.Join(findings, "\n"))
	}
}
