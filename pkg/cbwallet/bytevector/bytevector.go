// Package bytevector binds the engine's byte_vector entity.
package bytevector

import (
	"github.com/coinbase/cb-wallet-go/pkg/cbwallet"
	"github.com/coinbase/cb-wallet-go/pkg/cbwallet/abi"
	"github.com/coinbase/cb-wallet-go/pkg/cbwallet/collection"
	"github.com/coinbase/cb-wallet-go/pkg/cbwallet/internal/handle"
)

// Kind is the byte_vector entity.
var Kind = &handle.Kind{Name: "byte_vector", Destroy: abi.Engine.ByteVectorDestroy}

var accessors = collection.Accessors[byte]{
	Name: "byte_vector",
	Length: func(o *handle.Owner) (uint32, error) {
		return handle.Call(o, "byte_vector_get_length", abi.Engine.ByteVectorGetLength)
	},
	At: func(o *handle.Owner, i uint32) (byte, error) {
		return handle.Call(o, "byte_vector_get_at", func(e abi.Engine, h abi.Handle, errOut *int32) uint8 {
			return e.ByteVectorGetAt(h, i, errOut)
		})
	},
}

// ByteVector is an engine-owned byte buffer. Len, At, All and Seq read it
// through byte_vector_get_length and byte_vector_get_at.
type ByteVector struct {
	*collection.List[byte]
	owner *handle.Owner
}

// New copies data into a new engine byte vector.
func New(lib *cbwallet.Library, data []byte) (*ByteVector, error) {
	o, err := handle.Create(lib, Kind, "byte_vector_create", func(e abi.Engine, errOut *int32) abi.Handle {
		return e.ByteVectorCreate(data, errOut)
	})
	if err != nil {
		return nil, err
	}
	return wrap(o), nil
}

// FromHandle adopts a byte_vector handle returned by another call.
func FromHandle(lib *cbwallet.Library, raw abi.Handle) (*ByteVector, error) {
	o, err := handle.FromRaw(lib, Kind, raw)
	if err != nil {
		return nil, err
	}
	return wrap(o), nil
}

// Adopt wraps an already owned byte_vector handle.
func Adopt(o *handle.Owner) *ByteVector {
	return wrap(o)
}

func wrap(o *handle.Owner) *ByteVector {
	return &ByteVector{List: collection.New(o, accessors), owner: o}
}

// Bytes copies the whole vector into Go memory.
func (b *ByteVector) Bytes() ([]byte, error) {
	return b.All()
}

// Owner exposes the handle owner so other bindings can pass the vector to
// native calls.
func (b *ByteVector) Owner() *handle.Owner {
	return b.owner
}
