package fakeengine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coinbase/cb-wallet-go/pkg/cbwallet/abi"
	"github.com/coinbase/cb-wallet-go/pkg/cbwallet/fakeengine"
)

func newVector(t *testing.T, e *fakeengine.Engine, data ...byte) abi.Handle {
	t.Helper()
	code := abi.CodeNotSet
	h := e.ByteVectorCreate(data, &code)
	require.Equal(t, abi.CodeSuccess, code)
	require.NotEqual(t, abi.Null, h)
	return h
}

func TestCheckReportsLeaks(t *testing.T) {
	e := fakeengine.New()
	h := newVector(t, e, 1)
	require.Error(t, e.Check())
	assert.Equal(t, map[string]int{fakeengine.KindByteVector: 1}, e.Live())

	e.ByteVectorDestroy(h)
	require.NoError(t, e.Check())
	assert.Zero(t, e.LiveCount())
}

func TestDoubleDestroyIsAViolation(t *testing.T) {
	e := fakeengine.New()
	h := newVector(t, e)
	e.ByteVectorDestroy(h)
	e.ByteVectorDestroy(h)

	v := e.Violations()
	require.Len(t, v, 1)
	assert.Equal(t, fakeengine.DoubleDestroy, v[0].Kind)
	assert.Equal(t, "byte_vector_destroy", v[0].Function)
	assert.Equal(t, 1, e.Destroyed(fakeengine.KindByteVector))
}

func TestDestroyNullIsNoop(t *testing.T) {
	e := fakeengine.New()
	e.PublicKeyDestroy(abi.Null)
	assert.Empty(t, e.Violations())
}

func TestMisuseIsRecorded(t *testing.T) {
	e := fakeengine.New()
	h := newVector(t, e, 1)

	code := abi.CodeNotSet
	e.PublicKeyGetBytes(h, &code)
	assert.Equal(t, int32(1), code)

	code = abi.CodeNotSet
	e.ByteVectorGetLength(fakeengine.GarbageHandle, &code)
	assert.Equal(t, int32(1), code)

	e.BalanceDestroy(h)

	code = 0
	e.ByteVectorGetLength(h, &code)

	e.ByteVectorGetLength(h, nil)

	e.ByteVectorDestroy(h)
	code = abi.CodeNotSet
	e.ByteVectorGetLength(h, &code)

	var kinds []fakeengine.ViolationKind
	for _, v := range e.Violations() {
		kinds = append(kinds, v.Kind)
	}
	assert.Equal(t, []fakeengine.ViolationKind{
		fakeengine.WrongKind,
		fakeengine.UnknownHandle,
		fakeengine.WrongKind,
		fakeengine.SlotNotSentinel,
		fakeengine.NilSlot,
		fakeengine.UseAfterDestroy,
	}, kinds)
	require.Error(t, e.Check())
}

func TestFaultSkipAndTimes(t *testing.T) {
	e := fakeengine.New()
	e.Fail("byte_vector_create", fakeengine.Fault{Code: 2, Skip: 1, Times: 2})

	var codes []int32
	for i := 0; i < 4; i++ {
		code := abi.CodeNotSet
		h := e.ByteVectorCreate(nil, &code)
		codes = append(codes, code)
		if code == 0 {
			e.ByteVectorDestroy(h)
		} else {
			assert.Equal(t, abi.Null, h)
		}
	}
	assert.Equal(t, []int32{0, 2, 2, 0}, codes)
	assert.Equal(t, 4, e.Calls("byte_vector_create"))

	e.Heal()
	code := abi.CodeNotSet
	e.ByteVectorDestroy(e.ByteVectorCreate(nil, &code))
	assert.Equal(t, abi.CodeSuccess, code)
	require.NoError(t, e.Check())
}

func TestFaultGarbageAndSkipWrite(t *testing.T) {
	e := fakeengine.New()
	h := newVector(t, e, 1, 2, 3)
	defer e.ByteVectorDestroy(h)

	e.Fail("byte_vector_get_length", fakeengine.Fault{Code: 7, Garbage: true})
	code := abi.CodeNotSet
	n := e.ByteVectorGetLength(h, &code)
	assert.Equal(t, int32(7), code)
	assert.NotEqual(t, uint32(3), n)

	e.Fail("byte_vector_get_length", fakeengine.Fault{SkipWrite: true})
	code = abi.CodeNotSet
	e.ByteVectorGetLength(h, &code)
	assert.Equal(t, abi.CodeNotSet, code)
}

func TestPositionInvalid(t *testing.T) {
	e := fakeengine.New()
	h := newVector(t, e, 9)
	defer e.ByteVectorDestroy(h)

	code := abi.CodeNotSet
	e.ByteVectorGetAt(h, 1, &code)
	assert.Equal(t, int32(3), code)
}

func TestEmojiIDFormat(t *testing.T) {
	pk := make([]byte, fakeengine.KeySize)
	id := fakeengine.EmojiID(pk)
	assert.Len(t, []rune(id), fakeengine.EmojiIDSize)
	for _, r := range id {
		assert.GreaterOrEqual(t, r, rune(0x1F300))
		assert.LessOrEqual(t, r, rune(0x1F3FF))
	}
}

func TestSeedPhraseFormat(t *testing.T) {
	secret := make([]byte, fakeengine.KeySize)
	for i := range secret {
		secret[i] = byte(i + 1)
	}
	phrase := fakeengine.SeedPhrase(secret)
	require.Len(t, phrase, fakeengine.SeedPhraseLen)
	assert.Equal(t, fakeengine.Word(fakeengine.SeedVersion), phrase[0])
	assert.Equal(t, fakeengine.Word(1), phrase[1])
	assert.Equal(t, "bacen", fakeengine.Word(1))
}

func TestFee(t *testing.T) {
	assert.Equal(t, uint64(0), fakeengine.Fee(0, 1, 1, 2))
	assert.Equal(t, uint64(10*(3+2+26)), fakeengine.Fee(10, 1, 2, 2))
}

func TestHelpersNeedAWallet(t *testing.T) {
	e := fakeengine.New()
	require.Error(t, e.Fund("nowhere", 1))
	require.Error(t, e.Mine("nowhere", 1))
	_, err := e.Secret("nowhere")
	require.Error(t, err)
}
