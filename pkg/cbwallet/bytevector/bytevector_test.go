package bytevector_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coinbase/cb-wallet-go/pkg/cbwallet"
	"github.com/coinbase/cb-wallet-go/pkg/cbwallet/abi"
	"github.com/coinbase/cb-wallet-go/pkg/cbwallet/bytevector"
	"github.com/coinbase/cb-wallet-go/pkg/cbwallet/fakeengine"
	"github.com/coinbase/cb-wallet-go/pkg/cbwallet/internal/wallettest"
)

func TestRoundTrip(t *testing.T) {
	lib, fake := wallettest.Open(t)
	data := []byte("the quick brown fox")

	bv, err := bytevector.New(lib, data)
	require.NoError(t, err)
	defer bv.Close()

	data[0] = 'T'
	got, err := bv.Bytes()
	require.NoError(t, err)
	assert.Equal(t, []byte("the quick brown fox"), got, "engine keeps its own copy")

	n, err := bv.Len()
	require.NoError(t, err)
	assert.Equal(t, len(got), n)

	b, err := bv.At(4)
	require.NoError(t, err)
	assert.Equal(t, byte('q'), b)
	assert.Equal(t, 1, fake.Created(fakeengine.KindByteVector))
}

func TestEmpty(t *testing.T) {
	lib, _ := wallettest.Open(t)
	bv, err := bytevector.New(lib, nil)
	require.NoError(t, err)
	defer bv.Close()

	got, err := bv.Bytes()
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = bv.At(0)
	assert.ErrorIs(t, err, cbwallet.ErrIndexOutOfRange)
}

func TestFromHandle(t *testing.T) {
	lib, fake := wallettest.Open(t)

	code := abi.CodeNotSet
	raw := fake.ByteVectorCreate([]byte{0xca, 0xfe}, &code)
	require.Equal(t, abi.CodeSuccess, code)

	bv, err := bytevector.FromHandle(lib, raw)
	require.NoError(t, err)
	got, err := bv.Bytes()
	require.NoError(t, err)
	assert.Equal(t, []byte{0xca, 0xfe}, got)
	require.NoError(t, bv.Close())
	assert.Equal(t, 1, fake.Destroyed(fakeengine.KindByteVector))

	_, err = bytevector.FromHandle(lib, abi.Null)
	assert.ErrorIs(t, err, cbwallet.ErrNullHandle)
}

func TestReadAfterClose(t *testing.T) {
	lib, fake := wallettest.Open(t)
	bv, err := bytevector.New(lib, []byte{1})
	require.NoError(t, err)
	require.NoError(t, bv.Close())

	_, err = bv.Bytes()
	assert.ErrorIs(t, err, cbwallet.ErrReleased)
	assert.Zero(t, fake.Calls("byte_vector_get_length"))
}
