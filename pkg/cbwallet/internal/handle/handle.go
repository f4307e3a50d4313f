// Package handle implements the ownership primitive every wrapper is built on.
//
// An Owner holds exactly one native handle. Native calls borrow the handle for
// their duration; Close marks the owner released and the destructor runs once
// the last borrow returns. The counter scheme follows the FfiObject pattern:
//
//	calls >= 0   live, value is the number of in-flight borrows
//	calls == -1  destroyed
package handle

import (
	"context"
	"runtime"
	"sync/atomic"

	"github.com/coinbase/cb-wallet-go/pkg/cbwallet"
	"github.com/coinbase/cb-wallet-go/pkg/cbwallet/abi"
	"github.com/coinbase/cb-wallet-go/pkg/cbwallet/internal/bridge"
	"github.com/coinbase/cb-wallet-go/pkg/cbwallet/logging"
)

// Kind names a native entity and its destructor.
type Kind struct {
	Name    string
	Destroy func(abi.Engine, abi.Handle)
}

// Owner exclusively owns one native handle.
type Owner struct {
	lib  *cbwallet.Library
	kind *Kind
	raw  abi.Handle

	calls    atomic.Int64
	released atomic.Bool
}

// New consumes raw. The caller must not use raw again except through the
// returned Owner.
func New(lib *cbwallet.Library, kind *Kind, raw abi.Handle) *Owner {
	o := &Owner{lib: lib, kind: kind, raw: raw}
	lib.NoteHandle(1)
	lib.Metrics().HandleCreated(kind.Name)
	runtime.SetFinalizer(o, (*Owner).finalize)
	return o
}

// Library returns the library the handle belongs to.
func (o *Owner) Library() *cbwallet.Library { return o.lib }

// Kind returns the entity name.
func (o *Owner) Kind() string { return o.kind.Name }

// Borrow pins the handle for one native call. release must be called exactly
// once when the call returns.
func (o *Owner) Borrow() (abi.Handle, func(), error) {
	if o == nil {
		return abi.Null, nil, &cbwallet.ContractError{Op: "borrow", Err: cbwallet.ErrReleased}
	}
	for {
		if o.released.Load() {
			return abi.Null, nil, o.releasedErr()
		}
		n := o.calls.Load()
		if n < 0 {
			return abi.Null, nil, o.releasedErr()
		}
		if o.calls.CompareAndSwap(n, n+1) {
			break
		}
	}
	return o.raw, o.release, nil
}

func (o *Owner) release() {
	if o.calls.Add(-1) == -1 {
		o.destroy()
	}
	runtime.KeepAlive(o)
}

// Close releases the handle. It is idempotent; the destructor runs exactly
// once, after every in-flight borrow has returned.
func (o *Owner) Close() error {
	if o == nil {
		return nil
	}
	if !o.released.CompareAndSwap(false, true) {
		return nil
	}
	runtime.SetFinalizer(o, nil)
	if o.calls.Add(-1) == -1 {
		o.destroy()
	}
	return nil
}

// Released reports whether Close has been called.
func (o *Owner) Released() bool {
	return o == nil || o.released.Load()
}

func (o *Owner) destroy() {
	o.kind.Destroy(o.lib.Engine(), o.raw)
	o.lib.NoteHandle(-1)
	o.lib.Metrics().HandleDestroyed(o.kind.Name)
}

func (o *Owner) finalize() {
	if o.released.Load() {
		return
	}
	o.lib.Logger().Warn(context.Background(), "native handle released by finalizer, Close was never called", logging.HandleKind(o.kind.Name))
	o.lib.Metrics().HandleFinalized(o.kind.Name)
	_ = o.Close()
}

func (o *Owner) releasedErr() error {
	return &cbwallet.ContractError{Op: o.kind.Name, Err: cbwallet.ErrReleased}
}

// Call borrows o's handle and runs one fallible native call with it. m has the
// shape of an abi.Engine accessor method expression, e.g.
// abi.Engine.PublicKeyGetBytes.
func Call[T any](o *Owner, fn string, m func(e abi.Engine, h abi.Handle, errOut *int32) T) (T, error) {
	var zero T
	h, release, err := o.Borrow()
	if err != nil {
		return zero, err
	}
	defer release()
	engine := o.lib.Engine()
	return bridge.Call(o.lib, fn, func(errOut *int32) T {
		return m(engine, h, errOut)
	})
}

// CallHandle is Call for accessors returning a new handle.
func CallHandle(o *Owner, fn string, m func(e abi.Engine, h abi.Handle, errOut *int32) abi.Handle) (abi.Handle, error) {
	h, release, err := o.Borrow()
	if err != nil {
		return abi.Null, err
	}
	defer release()
	engine := o.lib.Engine()
	return bridge.Handle(o.lib, fn, func(errOut *int32) abi.Handle {
		return m(engine, h, errOut)
	})
}

// CallString is Call for accessors returning an engine-owned string.
func CallString(o *Owner, fn string, m func(e abi.Engine, h abi.Handle, errOut *int32) abi.Handle) (string, error) {
	h, release, err := o.Borrow()
	if err != nil {
		return "", err
	}
	defer release()
	engine := o.lib.Engine()
	return bridge.String(o.lib, fn, func(errOut *int32) abi.Handle {
		return m(engine, h, errOut)
	})
}

// Create runs a native constructor and adopts the handle it returns. On
// failure no handle exists and nothing needs destroying.
func Create(lib *cbwallet.Library, kind *Kind, fn string, ctor func(e abi.Engine, errOut *int32) abi.Handle) (*Owner, error) {
	if err := lib.Ready(); err != nil {
		return nil, err
	}
	engine := lib.Engine()
	raw, err := bridge.Handle(lib, fn, func(errOut *int32) abi.Handle {
		return ctor(engine, errOut)
	})
	if err != nil {
		return nil, err
	}
	return New(lib, kind, raw), nil
}

// Adopt runs an accessor on o that returns a new handle and wraps the result
// in its own Owner of kind.
func Adopt(o *Owner, kind *Kind, fn string, m func(e abi.Engine, h abi.Handle, errOut *int32) abi.Handle) (*Owner, error) {
	raw, err := CallHandle(o, fn, m)
	if err != nil {
		return nil, err
	}
	return New(o.lib, kind, raw), nil
}

// FromRaw adopts a handle obtained outside this package. abi.Null is
// rejected.
func FromRaw(lib *cbwallet.Library, kind *Kind, raw abi.Handle) (*Owner, error) {
	if err := lib.Ready(); err != nil {
		return nil, err
	}
	if raw == abi.Null {
		return nil, &cbwallet.ContractError{Op: kind.Name, Err: cbwallet.ErrNullHandle}
	}
	return New(lib, kind, raw), nil
}

// CallWith borrows both o and arg and runs a native call that takes arg's
// handle as its second argument.
func CallWith[T any](o, arg *Owner, fn string, m func(e abi.Engine, h, a abi.Handle, errOut *int32) T) (T, error) {
	a, release, err := arg.Borrow()
	if err != nil {
		var zero T
		return zero, err
	}
	defer release()
	return Call(o, fn, func(e abi.Engine, h abi.Handle, errOut *int32) T {
		return m(e, h, a, errOut)
	})
}
