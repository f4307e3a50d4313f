// Package bridge is the only place the binding reads a native error slot.
//
// Every fallible native call goes through Call: the slot starts at
// abi.CodeNotSet, exactly abi.CodeSuccess trusts the primary result, anything
// else discards it. Callers never see a raw code, only a typed error.
package bridge

import (
	"context"

	"github.com/coinbase/cb-wallet-go/pkg/cbwallet"
	"github.com/coinbase/cb-wallet-go/pkg/cbwallet/abi"
	"github.com/coinbase/cb-wallet-go/pkg/cbwallet/logging"
)

// Call runs one fallible native call. fn is the C function name and is only
// used to tag errors, logs and metrics.
func Call[T any](lib *cbwallet.Library, fn string, call func(errOut *int32) T) (T, error) {
	var zero T
	if err := lib.Ready(); err != nil {
		return zero, err
	}

	code := abi.CodeNotSet
	result := call(&code)

	switch code {
	case abi.CodeSuccess:
		lib.Metrics().NativeCall(fn, code, "")
		return result, nil
	case abi.CodeNotSet:
		lib.Metrics().NativeCall(fn, code, "not written")
		lib.Logger().Debug(context.Background(), "native call left its error slot unwritten", logging.Function(fn))
		return zero, &cbwallet.ContractError{Op: fn, Err: cbwallet.ErrOutParamNotWritten}
	default:
		e := cbwallet.NewError(code)
		e.Op = fn
		lib.Metrics().NativeCall(fn, code, e.Kind().String())
		lib.Logger().Debug(context.Background(), "native call failed",
			logging.Function(fn), logging.Code(code), logging.ErrorKind(e.Kind().String()))
		return zero, e
	}
}

// Handle runs a native call whose primary result is a new handle. A success
// that carries abi.Null is a contract violation.
func Handle(lib *cbwallet.Library, fn string, call func(errOut *int32) abi.Handle) (abi.Handle, error) {
	h, err := Call(lib, fn, call)
	if err != nil {
		return abi.Null, err
	}
	if h == abi.Null {
		return abi.Null, &cbwallet.ContractError{Op: fn, Err: cbwallet.ErrNullHandle}
	}
	return h, nil
}

// String runs a native call returning an engine-owned C string, copies it and
// hands the original back to the engine.
func String(lib *cbwallet.Library, fn string, call func(errOut *int32) abi.Handle) (string, error) {
	h, err := Handle(lib, fn, call)
	if err != nil {
		return "", err
	}
	engine := lib.Engine()
	defer engine.StringDestroy(h)
	return engine.CopyString(h), nil
}
