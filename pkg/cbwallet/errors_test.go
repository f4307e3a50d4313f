package cbwallet_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coinbase/cb-wallet-go/pkg/cbwallet"
)

func TestTranslate(t *testing.T) {
	require.NoError(t, cbwallet.Translate(0))

	err := cbwallet.Translate(cbwallet.CodeNotEnoughFunds)
	require.Error(t, err)
	assert.ErrorIs(t, err, cbwallet.ErrNotEnoughFunds)
	assert.NotErrorIs(t, err, cbwallet.ErrFundsPending)

	var e *cbwallet.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, cbwallet.KindNotEnoughFunds, e.Kind())
}

func TestUnknownCodeKeepsInteger(t *testing.T) {
	err := cbwallet.Translate(9999)
	code, ok := cbwallet.CodeOf(err)
	require.True(t, ok)
	assert.Equal(t, int32(9999), code)
	assert.Equal(t, cbwallet.KindUnknown, cbwallet.KindOf(9999))
	assert.Contains(t, err.Error(), "code 9999")
}

func TestNegativeCodesAreErrors(t *testing.T) {
	err := cbwallet.Translate(-7)
	require.Error(t, err)
	code, ok := cbwallet.CodeOf(err)
	require.True(t, ok)
	assert.Equal(t, int32(-7), code)
}

func TestErrorIdentityIgnoresOp(t *testing.T) {
	a := cbwallet.NewError(cbwallet.CodeTransactionNotFound)
	a.Op = "wallet_cancel_pending_transaction"
	b := cbwallet.NewError(cbwallet.CodeTransactionNotFound)
	b.Op = "wallet_get_completed_transaction_by_id"

	assert.True(t, a.Equal(b))
	assert.ErrorIs(t, a, b)
	assert.ErrorIs(t, fmt.Errorf("lookup: %w", a), cbwallet.ErrTransactionNotFound)
	assert.False(t, a.Equal(cbwallet.ErrContactNotFound))
	assert.Contains(t, a.Error(), "wallet_cancel_pending_transaction")
}

func TestNilErrorEquality(t *testing.T) {
	var a, b *cbwallet.Error
	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(cbwallet.ErrValueNotFound))
	assert.Equal(t, cbwallet.KindUnknown, a.Kind())
}

func TestKindNames(t *testing.T) {
	cases := map[int32]string{
		cbwallet.CodeNullPointer:              "null pointer",
		cbwallet.CodeInvalidArgument:          "invalid argument",
		cbwallet.CodeFundsPending:             "funds pending",
		cbwallet.CodeInvalidPassphrase:        "invalid passphrase",
		cbwallet.CodeSeedWordsVersionMismatch: "seed words version mismatch",
	}
	for code, name := range cases {
		assert.Equal(t, name, cbwallet.KindOf(code).String(), "code %d", code)
	}
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, cbwallet.IsRetryable(cbwallet.ErrFundsPending))
	assert.True(t, cbwallet.IsRetryable(fmt.Errorf("send: %w", cbwallet.ErrDatabaseDataError)))
	assert.False(t, cbwallet.IsRetryable(cbwallet.ErrNotEnoughFunds))
	assert.False(t, cbwallet.IsRetryable(errors.New("plain")))
}

func TestValidationErrorMatchesInvalidInput(t *testing.T) {
	err := fmt.Errorf("parse: %w", &cbwallet.ValidationError{Field: "hex", Reason: "too short"})
	assert.ErrorIs(t, err, cbwallet.ErrInvalidInput)
	assert.EqualError(t, errors.Unwrap(err), "invalid hex: too short")
	_, ok := cbwallet.CodeOf(err)
	assert.False(t, ok)
}

func TestContractErrorUnwraps(t *testing.T) {
	err := &cbwallet.ContractError{Op: "contacts_get_at", Err: cbwallet.ErrIndexOutOfRange}
	assert.ErrorIs(t, err, cbwallet.ErrIndexOutOfRange)
	assert.Contains(t, err.Error(), "contacts_get_at")
}
