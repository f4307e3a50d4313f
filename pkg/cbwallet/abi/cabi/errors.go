package cabi

import "errors"

// ErrNotBuilt reports that the native engine was not linked into the binary.
// Build with cgo enabled and the walletffi tag to link libwallet_ffi.
var ErrNotBuilt = errors.New("cbwallet/abi/cabi: native engine not built")
