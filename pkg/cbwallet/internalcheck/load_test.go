package internalcheck

import (
	"testing"

	"golang.org/x/tools/go/packages"
)

const modulePattern = "github.com/coinbase/cb-wallet-go/pkg/cbwallet/..."

func load(t *testing.T, mode packages.LoadMode) []*packages.Package {
	t.Helper()
	pkgs, err := packages.Load(&packages.Config{Mode: mode}, modulePattern)
	if err != nil {
		t.Fatalf("load packages: %v", err)
	}
	if packages.PrintErrors(pkgs) > 0 {
		t.Fatalf("packages contain errors")
	}
	if len(pkgs) == 0 {
		t.Fatalf("no packages matched %s", modulePattern)
	}
	return pkgs
}
