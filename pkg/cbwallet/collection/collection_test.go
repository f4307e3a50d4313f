package collection_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coinbase/cb-wallet-go/pkg/cbwallet"
	"github.com/coinbase/cb-wallet-go/pkg/cbwallet/abi"
	"github.com/coinbase/cb-wallet-go/pkg/cbwallet/collection"
	"github.com/coinbase/cb-wallet-go/pkg/cbwallet/fakeengine"
	"github.com/coinbase/cb-wallet-go/pkg/cbwallet/internal/handle"
	"github.com/coinbase/cb-wallet-go/pkg/cbwallet/internal/wallettest"
)

var (
	vectorKind   = &handle.Kind{Name: "byte_vector", Destroy: abi.Engine.ByteVectorDestroy}
	contactKind  = &handle.Kind{Name: "contact", Destroy: abi.Engine.ContactDestroy}
	contactsKind = &handle.Kind{Name: "contacts", Destroy: abi.Engine.ContactsDestroy}
)

var byteAccessors = collection.Accessors[byte]{
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

type contact struct{ owner *handle.Owner }

func (c *contact) Close() error { return c.owner.Close() }

var contactAccessors = collection.Handles("contacts", contactKind,
	abi.Engine.ContactsGetLength, abi.Engine.ContactsGetAt,
	func(o *handle.Owner) *contact { return &contact{owner: o} })

func byteList(t *testing.T, lib *cbwallet.Library, data []byte) *collection.List[byte] {
	t.Helper()
	o, err := handle.Create(lib, vectorKind, "byte_vector_create", func(e abi.Engine, errOut *int32) abi.Handle {
		return e.ByteVectorCreate(data, errOut)
	})
	require.NoError(t, err)
	l := collection.New(o, byteAccessors)
	t.Cleanup(func() { _ = l.Close() })
	return l
}

func raw[T any](t *testing.T, call func(errOut *int32) T) T {
	t.Helper()
	code := abi.CodeNotSet
	v := call(&code)
	require.Equal(t, abi.CodeSuccess, code)
	return v
}

// contactList stores n contacts in a fresh fake wallet and returns an owned
// snapshot of them. Everything but the snapshot is destroyed before return.
func contactList(t *testing.T, lib *cbwallet.Library, fake *fakeengine.Engine, n int) *collection.List[*contact] {
	t.Helper()
	w := raw(t, func(errOut *int32) abi.Handle {
		return fake.WalletCreate(t.Name(), "localnet", "", abi.Null, errOut)
	})
	defer fake.WalletDestroy(w)

	for i := 0; i < n; i++ {
		pk := raw(t, func(errOut *int32) abi.Handle {
			return fake.PublicKeyFromHex(wallettest.PublicKeyHex(byte(i+1)), errOut)
		})
		c := raw(t, func(errOut *int32) abi.Handle {
			return fake.ContactCreate("peer", pk, false, errOut)
		})
		raw(t, func(errOut *int32) bool { return fake.WalletUpsertContact(w, c, errOut) })
		fake.ContactDestroy(c)
		fake.PublicKeyDestroy(pk)
	}

	cs := raw(t, func(errOut *int32) abi.Handle { return fake.WalletGetContacts(w, errOut) })
	o, err := handle.FromRaw(lib, contactsKind, cs)
	require.NoError(t, err)
	l := collection.New(o, contactAccessors)
	t.Cleanup(func() { _ = l.Close() })
	return l
}

func TestAllReturnsElementsInOrder(t *testing.T) {
	lib, fake := wallettest.Open(t)
	data := []byte{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}
	l := byteList(t, lib, data)

	got, err := l.All()
	require.NoError(t, err)
	assert.Equal(t, data, got)
	assert.Equal(t, 1, fake.Calls("byte_vector_get_length"))
	assert.Equal(t, len(data), fake.Calls("byte_vector_get_at"))
}

func TestEmptyCollection(t *testing.T) {
	lib, fake := wallettest.Open(t)
	l := byteList(t, lib, nil)

	got, err := l.All()
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Zero(t, fake.Calls("byte_vector_get_at"))
}

func TestAtChecksFreshLength(t *testing.T) {
	lib, fake := wallettest.Open(t)
	l := byteList(t, lib, []byte{10, 20, 30})

	v, err := l.At(2)
	require.NoError(t, err)
	assert.Equal(t, byte(30), v)

	for _, i := range []int{3, -1, 100} {
		_, err = l.At(i)
		assert.ErrorIs(t, err, cbwallet.ErrIndexOutOfRange, "index %d", i)
		var ce *cbwallet.ContractError
		require.ErrorAs(t, err, &ce)
		assert.Equal(t, "byte_vector_get_at", ce.Op)
	}
	assert.Equal(t, 1, fake.Calls("byte_vector_get_at"))
	assert.Equal(t, 4, fake.Calls("byte_vector_get_length"))
}

func TestLengthFailureStopsBeforeElements(t *testing.T) {
	lib, fake := wallettest.Open(t)
	l := byteList(t, lib, []byte{1, 2, 3})
	fake.Fail("byte_vector_get_length", fakeengine.Fault{Code: cbwallet.CodeNullPointer, Garbage: true})

	_, err := l.All()
	code, ok := cbwallet.CodeOf(err)
	require.True(t, ok)
	assert.Equal(t, cbwallet.CodeNullPointer, code)

	_, err = l.At(0)
	require.Error(t, err)
	assert.Zero(t, fake.Calls("byte_vector_get_at"))
}

func TestElementFailureReleasesProducedElements(t *testing.T) {
	lib, fake := wallettest.Open(t)
	l := contactList(t, lib, fake, 3)
	before := fake.Destroyed(fakeengine.KindContact)

	fake.Fail("contacts_get_at", fakeengine.Fault{Code: cbwallet.CodeAllocation, Garbage: true, Skip: 2, Times: 1})
	got, err := l.All()
	require.Error(t, err)
	assert.Nil(t, got)
	assert.Equal(t, 3, fake.Calls("contacts_get_at"))
	assert.Equal(t, before+2, fake.Destroyed(fakeengine.KindContact))
}

func TestHandleElementsOutliveList(t *testing.T) {
	lib, fake := wallettest.Open(t)
	l := contactList(t, lib, fake, 2)

	items, err := l.All()
	require.NoError(t, err)
	require.Len(t, items, 2)
	require.NoError(t, l.Close())

	alias := raw(t, func(errOut *int32) abi.Handle {
		h, release, err := items[1].owner.Borrow()
		require.NoError(t, err)
		defer release()
		return fake.ContactGetAlias(h, errOut)
	})
	assert.Equal(t, "peer", fake.CopyString(alias))
	fake.StringDestroy(alias)

	require.NoError(t, collection.CloseAll(items))
}

func TestSeqStopsEarly(t *testing.T) {
	lib, fake := wallettest.Open(t)
	l := contactList(t, lib, fake, 3)

	var taken []*contact
	for c, err := range l.Seq() {
		require.NoError(t, err)
		taken = append(taken, c)
		if len(taken) == 2 {
			break
		}
	}
	assert.Equal(t, 2, fake.Calls("contacts_get_at"))
	require.NoError(t, collection.CloseAll(taken))
}

func TestSeqYieldsFailureOnce(t *testing.T) {
	lib, fake := wallettest.Open(t)
	l := byteList(t, lib, []byte{1, 2, 3})
	fake.Fail("byte_vector_get_at", fakeengine.Fault{Code: cbwallet.CodePositionInvalid, Skip: 1})

	var vals []byte
	var errs []error
	for v, err := range l.Seq() {
		if err != nil {
			errs = append(errs, err)
			continue
		}
		vals = append(vals, v)
	}
	assert.Equal(t, []byte{1}, vals)
	require.Len(t, errs, 1)
	assert.ErrorIs(t, errs[0], cbwallet.ErrPositionInvalid)
}

func TestLen(t *testing.T) {
	lib, _ := wallettest.Open(t)
	l := byteList(t, lib, []byte{1, 2})
	n, err := l.Len()
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}
