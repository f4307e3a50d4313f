package handle_test

import (
	"runtime"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coinbase/cb-wallet-go/pkg/cbwallet"
	"github.com/coinbase/cb-wallet-go/pkg/cbwallet/abi"
	"github.com/coinbase/cb-wallet-go/pkg/cbwallet/fakeengine"
	"github.com/coinbase/cb-wallet-go/pkg/cbwallet/internal/handle"
	"github.com/coinbase/cb-wallet-go/pkg/cbwallet/internal/wallettest"
)

var vectorKind = &handle.Kind{Name: "byte_vector", Destroy: abi.Engine.ByteVectorDestroy}

func newVector(t *testing.T, lib *cbwallet.Library, data ...byte) *handle.Owner {
	t.Helper()
	o, err := handle.Create(lib, vectorKind, "byte_vector_create", func(e abi.Engine, errOut *int32) abi.Handle {
		return e.ByteVectorCreate(data, errOut)
	})
	require.NoError(t, err)
	return o
}

func vectorLen(o *handle.Owner) (uint32, error) {
	return handle.Call(o, "byte_vector_get_length", abi.Engine.ByteVectorGetLength)
}

func TestCloseDestroysExactlyOnce(t *testing.T) {
	lib, fake := wallettest.Open(t)
	o := newVector(t, lib, 1, 2, 3)
	assert.Equal(t, int64(1), lib.LiveHandles())
	assert.Equal(t, "byte_vector", o.Kind())

	n, err := vectorLen(o)
	require.NoError(t, err)
	assert.Equal(t, uint32(3), n)

	require.NoError(t, o.Close())
	require.NoError(t, o.Close())
	assert.True(t, o.Released())
	assert.Equal(t, 1, fake.Destroyed(fakeengine.KindByteVector))
	assert.Zero(t, lib.LiveHandles())
}

func TestUseAfterClose(t *testing.T) {
	lib, fake := wallettest.Open(t)
	o := newVector(t, lib, 1)
	require.NoError(t, o.Close())

	_, err := vectorLen(o)
	assert.ErrorIs(t, err, cbwallet.ErrReleased)

	var ce *cbwallet.ContractError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "byte_vector", ce.Op)
	assert.Zero(t, fake.Calls("byte_vector_get_length"))
}

func TestNilOwner(t *testing.T) {
	var o *handle.Owner
	_, _, err := o.Borrow()
	assert.ErrorIs(t, err, cbwallet.ErrReleased)
	assert.NoError(t, o.Close())
	assert.True(t, o.Released())
}

func TestCreateRejectsNilLibrary(t *testing.T) {
	called := false
	o, err := handle.Create(nil, vectorKind, "byte_vector_create", func(abi.Engine, *int32) abi.Handle {
		called = true
		return abi.Null
	})
	assert.ErrorIs(t, err, cbwallet.ErrNilLibrary)
	assert.Nil(t, o)
	assert.False(t, called)
}

func TestCloseWaitsForInFlightBorrow(t *testing.T) {
	lib, fake := wallettest.Open(t)
	o := newVector(t, lib, 9)

	raw, release, err := o.Borrow()
	require.NoError(t, err)
	assert.NotEqual(t, abi.Null, raw)

	require.NoError(t, o.Close())
	assert.Zero(t, fake.Destroyed(fakeengine.KindByteVector), "destroyed while borrowed")

	_, _, err = o.Borrow()
	assert.ErrorIs(t, err, cbwallet.ErrReleased)

	release()
	assert.Equal(t, 1, fake.Destroyed(fakeengine.KindByteVector))
}

func TestConcurrentCallsAndClose(t *testing.T) {
	lib, fake := wallettest.Open(t)

	for round := 0; round < 20; round++ {
		o := newVector(t, lib, 1, 2)

		var wg sync.WaitGroup
		start := make(chan struct{})
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				<-start
				for j := 0; j < 50; j++ {
					n, err := vectorLen(o)
					if err != nil {
						assert.ErrorIs(t, err, cbwallet.ErrReleased)
						return
					}
					assert.Equal(t, uint32(2), n)
				}
			}()
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			_ = o.Close()
		}()
		close(start)
		wg.Wait()
	}

	assert.Equal(t, 20, fake.Destroyed(fakeengine.KindByteVector))
	assert.Empty(t, fake.Violations())
}

func TestCreateFailureLeavesNothingToDestroy(t *testing.T) {
	lib, fake := wallettest.Open(t)
	fake.Fail("byte_vector_create", fakeengine.Fault{Code: cbwallet.CodeAllocation, Garbage: true})

	_, err := handle.Create(lib, vectorKind, "byte_vector_create", func(e abi.Engine, errOut *int32) abi.Handle {
		return e.ByteVectorCreate([]byte{1}, errOut)
	})
	code, ok := cbwallet.CodeOf(err)
	require.True(t, ok)
	assert.Equal(t, cbwallet.CodeAllocation, code)
	assert.Zero(t, lib.LiveHandles())
	assert.Zero(t, fake.Calls("byte_vector_destroy"))
}

func TestFromRaw(t *testing.T) {
	lib, fake := wallettest.Open(t)

	_, err := handle.FromRaw(lib, vectorKind, abi.Null)
	assert.ErrorIs(t, err, cbwallet.ErrNullHandle)

	code := abi.CodeNotSet
	raw := fake.ByteVectorCreate([]byte{4, 5}, &code)
	require.Equal(t, abi.CodeSuccess, code)

	o, err := handle.FromRaw(lib, vectorKind, raw)
	require.NoError(t, err)
	n, err := vectorLen(o)
	require.NoError(t, err)
	assert.Equal(t, uint32(2), n)
	require.NoError(t, o.Close())
}

func TestCallWithReleasedArgument(t *testing.T) {
	lib, fake := wallettest.Open(t)
	a := newVector(t, lib, 1)
	defer a.Close()
	b := newVector(t, lib, 2)
	require.NoError(t, b.Close())

	_, err := handle.CallWith(a, b, "test_call", func(e abi.Engine, h, arg abi.Handle, errOut *int32) bool {
		*errOut = 0
		return true
	})
	assert.ErrorIs(t, err, cbwallet.ErrReleased)
	assert.Equal(t, 1, fake.Destroyed(fakeengine.KindByteVector))
}

func TestHandlesOutliveLibraryClose(t *testing.T) {
	lib, fake := wallettest.Open(t)
	o := newVector(t, lib, 1)
	require.NoError(t, lib.Close())

	_, err := vectorLen(o)
	assert.ErrorIs(t, err, cbwallet.ErrLibraryClosed)

	require.NoError(t, o.Close())
	assert.Equal(t, 1, fake.Destroyed(fakeengine.KindByteVector))
}

func abandon(t *testing.T, lib *cbwallet.Library) {
	_ = newVector(t, lib, 7)
}

func TestFinalizerReleasesAbandonedHandle(t *testing.T) {
	lib, fake := wallettest.Open(t)
	abandon(t, lib)

	require.Eventually(t, func() bool {
		runtime.GC()
		return fake.Destroyed(fakeengine.KindByteVector) == 1
	}, 5*time.Second, 10*time.Millisecond)
	assert.Zero(t, lib.LiveHandles())
}
