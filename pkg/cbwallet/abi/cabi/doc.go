// Package cabi links abi.Engine to the native wallet_ffi library through cgo.
//
// The cgo implementation is compiled only with cgo enabled and the walletffi
// build tag on a non-Windows platform:
//
//	CGO_ENABLED=1 go build -tags walletffi ./...
//
// libwallet_ffi must be on the linker search path (set CGO_LDFLAGS=-L<dir> when
// it is not installed system-wide). Every other build gets a stub whose New
// returns ErrNotBuilt, so the rest of the module compiles and tests against the
// fake engine without a C toolchain.
//
// This is the only package in the module that imports "C".
package cabi
