//go:build !cgo || !walletffi || windows

package cabi

import "github.com/coinbase/cb-wallet-go/pkg/cbwallet/abi"

// New reports ErrNotBuilt; the native engine is not linked into this build.
func New() (abi.Engine, error) {
	return nil, ErrNotBuilt
}

// Version returns "" when the native engine is not linked.
func Version() string { return "" }
