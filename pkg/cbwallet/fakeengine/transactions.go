package fakeengine

import (
	"bytes"

	"github.com/coinbase/cb-wallet-go/pkg/cbwallet/abi"
)

// Transaction status values as reported by the engine.
const (
	StatusCompleted        int32 = 0
	StatusBroadcast        int32 = 1
	StatusMinedUnconfirmed int32 = 2
	StatusImported         int32 = 3
	StatusPending          int32 = 4
	StatusCoinbase         int32 = 5
	StatusMinedConfirmed   int32 = 6
	StatusRejected         int32 = 7
)

// Cancellation reasons. NotCancelled is reported for live transactions.
const (
	NotCancelled        int32 = -1
	CancelUnknown       int32 = 0
	CancelUserCancelled int32 = 1
	CancelTimeout       int32 = 2
	CancelDoubleSpend   int32 = 3
)

type outboundTx struct {
	id        uint64
	dest      []byte
	amount    uint64
	fee       uint64
	timestamp uint64
	message   string
	status    int32
	inputs    []output
	change    uint64
}

type inboundTx struct {
	id        uint64
	source    []byte
	amount    uint64
	timestamp uint64
	message   string
	status    int32
}

type completedTx struct {
	id            uint64
	dest          []byte
	source        []byte
	amount        uint64
	fee           uint64
	timestamp     uint64
	message       string
	status        int32
	outbound      bool
	confirmations uint64
	cancelReason  int32
}

// scalar implements a fallible accessor returning a plain value of the
// element stored behind h.
func scalar[V, R any](e *Engine, fn string, h abi.Handle, kind string, errOut *int32, field func(V) R) R {
	return run(e, fn, errOut, func() (R, int32) {
		var zero R
		v, code := get[V](e, fn, h, kind)
		if code != 0 {
			return zero, code
		}
		return field(v), 0
	})
}

func stringField[V any](e *Engine, fn string, h abi.Handle, kind string, errOut *int32, field func(V) string) abi.Handle {
	return run(e, fn, errOut, func() (abi.Handle, int32) {
		v, code := get[V](e, fn, h, kind)
		if code != 0 {
			return abi.Null, code
		}
		return e.newString(field(v)), 0
	})
}

func keyField[V any](e *Engine, fn string, h abi.Handle, kind string, errOut *int32, field func(V) []byte) abi.Handle {
	return run(e, fn, errOut, func() (abi.Handle, int32) {
		v, code := get[V](e, fn, h, kind)
		if code != 0 {
			return abi.Null, code
		}
		return e.alloc(KindPublicKey, bytes.Clone(field(v))), 0
	})
}

// ===== pending_outbound_transaction =====

func (e *Engine) PendingOutboundTransactionGetTransactionID(tx abi.Handle, errOut *int32) uint64 {
	return scalar(e, "pending_outbound_transaction_get_transaction_id", tx, KindPendingOutbound, errOut,
		func(t outboundTx) uint64 { return t.id })
}

func (e *Engine) PendingOutboundTransactionGetDestinationPublicKey(tx abi.Handle, errOut *int32) abi.Handle {
	return keyField(e, "pending_outbound_transaction_get_destination_public_key", tx, KindPendingOutbound, errOut,
		func(t outboundTx) []byte { return t.dest })
}

func (e *Engine) PendingOutboundTransactionGetAmount(tx abi.Handle, errOut *int32) uint64 {
	return scalar(e, "pending_outbound_transaction_get_amount", tx, KindPendingOutbound, errOut,
		func(t outboundTx) uint64 { return t.amount })
}

func (e *Engine) PendingOutboundTransactionGetFee(tx abi.Handle, errOut *int32) uint64 {
	return scalar(e, "pending_outbound_transaction_get_fee", tx, KindPendingOutbound, errOut,
		func(t outboundTx) uint64 { return t.fee })
}

func (e *Engine) PendingOutboundTransactionGetTimestamp(tx abi.Handle, errOut *int32) uint64 {
	return scalar(e, "pending_outbound_transaction_get_timestamp", tx, KindPendingOutbound, errOut,
		func(t outboundTx) uint64 { return t.timestamp })
}

func (e *Engine) PendingOutboundTransactionGetMessage(tx abi.Handle, errOut *int32) abi.Handle {
	return stringField(e, "pending_outbound_transaction_get_message", tx, KindPendingOutbound, errOut,
		func(t outboundTx) string { return t.message })
}

func (e *Engine) PendingOutboundTransactionGetStatus(tx abi.Handle, errOut *int32) int32 {
	return scalar(e, "pending_outbound_transaction_get_status", tx, KindPendingOutbound, errOut,
		func(t outboundTx) int32 { return t.status })
}

func (e *Engine) PendingOutboundTransactionDestroy(tx abi.Handle) {
	e.destroy("pending_outbound_transaction_destroy", tx, KindPendingOutbound)
}

func (e *Engine) PendingOutboundTransactionsGetLength(txs abi.Handle, errOut *int32) uint32 {
	return length[outboundTx](e, "pending_outbound_transactions_get_length", txs, KindPendingOutbounds, errOut)
}

func (e *Engine) PendingOutboundTransactionsGetAt(txs abi.Handle, index uint32, errOut *int32) abi.Handle {
	return at[outboundTx](e, "pending_outbound_transactions_get_at", txs, KindPendingOutbounds, KindPendingOutbound, index, errOut)
}

func (e *Engine) PendingOutboundTransactionsDestroy(txs abi.Handle) {
	e.destroy("pending_outbound_transactions_destroy", txs, KindPendingOutbounds)
}

// ===== pending_inbound_transaction =====

func (e *Engine) PendingInboundTransactionGetTransactionID(tx abi.Handle, errOut *int32) uint64 {
	return scalar(e, "pending_inbound_transaction_get_transaction_id", tx, KindPendingInbound, errOut,
		func(t inboundTx) uint64 { return t.id })
}

func (e *Engine) PendingInboundTransactionGetSourcePublicKey(tx abi.Handle, errOut *int32) abi.Handle {
	return keyField(e, "pending_inbound_transaction_get_source_public_key", tx, KindPendingInbound, errOut,
		func(t inboundTx) []byte { return t.source })
}

func (e *Engine) PendingInboundTransactionGetAmount(tx abi.Handle, errOut *int32) uint64 {
	return scalar(e, "pending_inbound_transaction_get_amount", tx, KindPendingInbound, errOut,
		func(t inboundTx) uint64 { return t.amount })
}

func (e *Engine) PendingInboundTransactionGetTimestamp(tx abi.Handle, errOut *int32) uint64 {
	return scalar(e, "pending_inbound_transaction_get_timestamp", tx, KindPendingInbound, errOut,
		func(t inboundTx) uint64 { return t.timestamp })
}

func (e *Engine) PendingInboundTransactionGetMessage(tx abi.Handle, errOut *int32) abi.Handle {
	return stringField(e, "pending_inbound_transaction_get_message", tx, KindPendingInbound, errOut,
		func(t inboundTx) string { return t.message })
}

func (e *Engine) PendingInboundTransactionGetStatus(tx abi.Handle, errOut *int32) int32 {
	return scalar(e, "pending_inbound_transaction_get_status", tx, KindPendingInbound, errOut,
		func(t inboundTx) int32 { return t.status })
}

func (e *Engine) PendingInboundTransactionDestroy(tx abi.Handle) {
	e.destroy("pending_inbound_transaction_destroy", tx, KindPendingInbound)
}

func (e *Engine) PendingInboundTransactionsGetLength(txs abi.Handle, errOut *int32) uint32 {
	return length[inboundTx](e, "pending_inbound_transactions_get_length", txs, KindPendingInbounds, errOut)
}

func (e *Engine) PendingInboundTransactionsGetAt(txs abi.Handle, index uint32, errOut *int32) abi.Handle {
	return at[inboundTx](e, "pending_inbound_transactions_get_at", txs, KindPendingInbounds, KindPendingInbound, index, errOut)
}

func (e *Engine) PendingInboundTransactionsDestroy(txs abi.Handle) {
	e.destroy("pending_inbound_transactions_destroy", txs, KindPendingInbounds)
}

// ===== completed_transaction =====

func (e *Engine) CompletedTransactionGetTransactionID(tx abi.Handle, errOut *int32) uint64 {
	return scalar(e, "completed_transaction_get_transaction_id", tx, KindCompleted, errOut,
		func(t completedTx) uint64 { return t.id })
}

func (e *Engine) CompletedTransactionGetDestinationPublicKey(tx abi.Handle, errOut *int32) abi.Handle {
	return keyField(e, "completed_transaction_get_destination_public_key", tx, KindCompleted, errOut,
		func(t completedTx) []byte { return t.dest })
}

func (e *Engine) CompletedTransactionGetSourcePublicKey(tx abi.Handle, errOut *int32) abi.Handle {
	return keyField(e, "completed_transaction_get_source_public_key", tx, KindCompleted, errOut,
		func(t completedTx) []byte { return t.source })
}

func (e *Engine) CompletedTransactionGetAmount(tx abi.Handle, errOut *int32) uint64 {
	return scalar(e, "completed_transaction_get_amount", tx, KindCompleted, errOut,
		func(t completedTx) uint64 { return t.amount })
}

func (e *Engine) CompletedTransactionGetFee(tx abi.Handle, errOut *int32) uint64 {
	return scalar(e, "completed_transaction_get_fee", tx, KindCompleted, errOut,
		func(t completedTx) uint64 { return t.fee })
}

func (e *Engine) CompletedTransactionGetTimestamp(tx abi.Handle, errOut *int32) uint64 {
	return scalar(e, "completed_transaction_get_timestamp", tx, KindCompleted, errOut,
		func(t completedTx) uint64 { return t.timestamp })
}

func (e *Engine) CompletedTransactionGetMessage(tx abi.Handle, errOut *int32) abi.Handle {
	return stringField(e, "completed_transaction_get_message", tx, KindCompleted, errOut,
		func(t completedTx) string { return t.message })
}

func (e *Engine) CompletedTransactionGetStatus(tx abi.Handle, errOut *int32) int32 {
	return scalar(e, "completed_transaction_get_status", tx, KindCompleted, errOut,
		func(t completedTx) int32 { return t.status })
}

func (e *Engine) CompletedTransactionIsOutbound(tx abi.Handle, errOut *int32) bool {
	return scalar(e, "completed_transaction_is_outbound", tx, KindCompleted, errOut,
		func(t completedTx) bool { return t.outbound })
}

func (e *Engine) CompletedTransactionGetConfirmations(tx abi.Handle, errOut *int32) uint64 {
	return scalar(e, "completed_transaction_get_confirmations", tx, KindCompleted, errOut,
		func(t completedTx) uint64 { return t.confirmations })
}

func (e *Engine) CompletedTransactionGetCancellationReason(tx abi.Handle, errOut *int32) int32 {
	return scalar(e, "completed_transaction_get_cancellation_reason", tx, KindCompleted, errOut,
		func(t completedTx) int32 { return t.cancelReason })
}

func (e *Engine) CompletedTransactionDestroy(tx abi.Handle) {
	e.destroy("completed_transaction_destroy", tx, KindCompleted)
}

func (e *Engine) CompletedTransactionsGetLength(txs abi.Handle, errOut *int32) uint32 {
	return length[completedTx](e, "completed_transactions_get_length", txs, KindCompleteds, errOut)
}

func (e *Engine) CompletedTransactionsGetAt(txs abi.Handle, index uint32, errOut *int32) abi.Handle {
	return at[completedTx](e, "completed_transactions_get_at", txs, KindCompleteds, KindCompleted, index, errOut)
}

func (e *Engine) CompletedTransactionsDestroy(txs abi.Handle) {
	e.destroy("completed_transactions_destroy", txs, KindCompleteds)
}
