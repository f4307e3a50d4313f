package cbwallet

import "github.com/coinbase/cb-wallet-go/pkg/cbwallet/abi/cabi"

var (
	Version        = "v0.0.0-in-progress"
	UpstreamTag    = "unknown"
	UpstreamHeader = "wallet_ffi.h"
)

// WrapperVersion returns the semantic version populated at build time via
// ldflags. In development it defaults to v0.0.0-in-progress.
func WrapperVersion() string {
	return Version
}

// UpstreamVersion returns the version reported by the linked native engine,
// falling back to the pinned upstream tag.
func UpstreamVersion() string {
	if v := cabi.Version(); v != "" {
		return v
	}
	return UpstreamTag
}
