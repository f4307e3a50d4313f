// Package collection adapts native array handles, reachable only through a
// length accessor and an index accessor, to Go slices and iterators.
//
// A List owns its collection handle. Elements it produces are independent
// wrappers that own their own handles and outlive the List if the caller
// keeps them.
package collection

import (
	"fmt"
	"iter"

	"github.com/coinbase/cb-wallet-go/pkg/cbwallet"
	"github.com/coinbase/cb-wallet-go/pkg/cbwallet/abi"
	"github.com/coinbase/cb-wallet-go/pkg/cbwallet/internal/handle"
)

// Accessors binds a List to the native length and get_at functions of one
// collection entity.
type Accessors[T any] struct {
	// Name is the C prefix of the collection, e.g. "contacts".
	Name string
	// Length calls <Name>_get_length.
	Length func(o *handle.Owner) (uint32, error)
	// At calls <Name>_get_at and wraps the element.
	At func(o *handle.Owner, index uint32) (T, error)
	// Release closes an element produced by At. nil for value elements.
	Release func(T)
}

// List is a read-only snapshot over a native collection handle.
type List[T any] struct {
	owner *handle.Owner
	acc   Accessors[T]
}

// New returns a List owning o.
func New[T any](o *handle.Owner, acc Accessors[T]) *List[T] {
	return &List[T]{owner: o, acc: acc}
}

// Len fetches the native length.
func (l *List[T]) Len() (int, error) {
	n, err := l.acc.Length(l.owner)
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

// At returns element i. The bound is the native length fetched for this call;
// an index outside it fails without calling the native element accessor.
func (l *List[T]) At(i int) (T, error) {
	var zero T
	n, err := l.Len()
	if err != nil {
		return zero, err
	}
	if i < 0 || i >= n {
		return zero, &cbwallet.ContractError{
			Op:  l.acc.Name + "_get_at",
			Err: fmt.Errorf("index %d, length %d: %w", i, n, cbwallet.ErrIndexOutOfRange),
		}
	}
	return l.acc.At(l.owner, uint32(i))
}

// All fetches the length once and then every element in index order. The
// first failure stops the walk; elements already produced are released and
// the failure is returned.
func (l *List[T]) All() ([]T, error) {
	n, err := l.Len()
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, n)
	for i := 0; i < n; i++ {
		v, err := l.acc.At(l.owner, uint32(i))
		if err != nil {
			l.releaseAll(out)
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// Seq walks the collection lazily. The length is fetched once when iteration
// starts. A failure is yielded once with the zero element and ends the walk.
// Elements yielded belong to the consumer, including those it stops early on.
func (l *List[T]) Seq() iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		var zero T
		n, err := l.Len()
		if err != nil {
			yield(zero, err)
			return
		}
		for i := 0; i < n; i++ {
			v, err := l.acc.At(l.owner, uint32(i))
			if err != nil {
				yield(zero, err)
				return
			}
			if !yield(v, nil) {
				return
			}
		}
	}
}

// Close releases the collection handle. Elements already produced are not
// affected.
func (l *List[T]) Close() error {
	if l == nil {
		return nil
	}
	return l.owner.Close()
}

func (l *List[T]) releaseAll(items []T) {
	if l.acc.Release == nil {
		return
	}
	for _, v := range items {
		l.acc.Release(v)
	}
}

// CloseAll closes every element of items and returns the first failure.
func CloseAll[T interface{ Close() error }](items []T) error {
	var first error
	for _, v := range items {
		if err := v.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// Handles builds Accessors for a collection whose elements are entity
// handles. Each element is adopted into its own Owner of kind elem and
// wrapped by wrap.
func Handles[T interface{ Close() error }](
	name string,
	elem *handle.Kind,
	length func(e abi.Engine, h abi.Handle, errOut *int32) uint32,
	at func(e abi.Engine, h abi.Handle, index uint32, errOut *int32) abi.Handle,
	wrap func(*handle.Owner) T,
) Accessors[T] {
	return Accessors[T]{
		Name: name,
		Length: func(o *handle.Owner) (uint32, error) {
			return handle.Call(o, name+"_get_length", length)
		},
		At: func(o *handle.Owner, i uint32) (T, error) {
			eo, err := handle.Adopt(o, elem, name+"_get_at", func(e abi.Engine, h abi.Handle, errOut *int32) abi.Handle {
				return at(e, h, i, errOut)
			})
			if err != nil {
				var zero T
				return zero, err
			}
			return wrap(eo), nil
		},
		Release: func(v T) { _ = v.Close() },
	}
}
