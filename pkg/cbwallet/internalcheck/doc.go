// Package internalcheck holds static policy checks over the wallet bindings.
//
// The checks load the cbwallet packages with golang.org/x/tools/go/packages
// and fail when a package:
//
//   - formats values with %x, which is how secrets end up in logs
//   - imports "C" outside pkg/cbwallet/abi/cabi
//   - creates a native error slot outside the bridge, the fake engine or the
//     cgo layer
//   - compares byte arrays with == or !=
//
// It exports nothing and is not meant to be imported.
package internalcheck
