// Package transactions binds pending outbound, pending inbound and completed
// transactions and their collections. Cancelled transactions are completed
// transactions with a cancellation reason.
package transactions

import (
	"time"

	"github.com/coinbase/cb-wallet-go/pkg/cbwallet"
	"github.com/coinbase/cb-wallet-go/pkg/cbwallet/abi"
	"github.com/coinbase/cb-wallet-go/pkg/cbwallet/collection"
	"github.com/coinbase/cb-wallet-go/pkg/cbwallet/internal/handle"
	"github.com/coinbase/cb-wallet-go/pkg/cbwallet/keys"
)

var (
	PendingOutboundKind     = &handle.Kind{Name: "pending_outbound_transaction", Destroy: abi.Engine.PendingOutboundTransactionDestroy}
	PendingOutboundListKind = &handle.Kind{Name: "pending_outbound_transactions", Destroy: abi.Engine.PendingOutboundTransactionsDestroy}
	PendingInboundKind      = &handle.Kind{Name: "pending_inbound_transaction", Destroy: abi.Engine.PendingInboundTransactionDestroy}
	PendingInboundListKind  = &handle.Kind{Name: "pending_inbound_transactions", Destroy: abi.Engine.PendingInboundTransactionsDestroy}
	CompletedKind           = &handle.Kind{Name: "completed_transaction", Destroy: abi.Engine.CompletedTransactionDestroy}
	CompletedListKind       = &handle.Kind{Name: "completed_transactions", Destroy: abi.Engine.CompletedTransactionsDestroy}
)

func key(o *handle.Owner, fn string, m func(abi.Engine, abi.Handle, *int32) abi.Handle) (*keys.PublicKey, error) {
	ko, err := handle.Adopt(o, keys.PublicKeyKind, fn, m)
	if err != nil {
		return nil, err
	}
	return keys.AdoptPublicKey(ko), nil
}

func timestamp(o *handle.Owner, fn string, m func(abi.Engine, abi.Handle, *int32) uint64) (time.Time, error) {
	ts, err := handle.Call(o, fn, m)
	if err != nil {
		return time.Time{}, err
	}
	return time.Unix(int64(ts), 0).UTC(), nil
}

// ===== pending outbound =====

// PendingOutbound is a transaction this wallet sent that is not yet mined.
type PendingOutbound struct {
	owner *handle.Owner
}

// PendingOutboundFromHandle adopts a pending_outbound_transaction handle.
func PendingOutboundFromHandle(lib *cbwallet.Library, raw abi.Handle) (*PendingOutbound, error) {
	o, err := handle.FromRaw(lib, PendingOutboundKind, raw)
	if err != nil {
		return nil, err
	}
	return &PendingOutbound{owner: o}, nil
}

func (t *PendingOutbound) ID() (uint64, error) {
	return handle.Call(t.owner, "pending_outbound_transaction_get_transaction_id", abi.Engine.PendingOutboundTransactionGetTransactionID)
}

// Destination returns a new, independently owned copy of the recipient key.
func (t *PendingOutbound) Destination() (*keys.PublicKey, error) {
	return key(t.owner, "pending_outbound_transaction_get_destination_public_key", abi.Engine.PendingOutboundTransactionGetDestinationPublicKey)
}

func (t *PendingOutbound) Amount() (uint64, error) {
	return handle.Call(t.owner, "pending_outbound_transaction_get_amount", abi.Engine.PendingOutboundTransactionGetAmount)
}

func (t *PendingOutbound) Fee() (uint64, error) {
	return handle.Call(t.owner, "pending_outbound_transaction_get_fee", abi.Engine.PendingOutboundTransactionGetFee)
}

func (t *PendingOutbound) Timestamp() (time.Time, error) {
	return timestamp(t.owner, "pending_outbound_transaction_get_timestamp", abi.Engine.PendingOutboundTransactionGetTimestamp)
}

func (t *PendingOutbound) Message() (string, error) {
	return handle.CallString(t.owner, "pending_outbound_transaction_get_message", abi.Engine.PendingOutboundTransactionGetMessage)
}

func (t *PendingOutbound) Status() (Status, error) {
	s, err := handle.Call(t.owner, "pending_outbound_transaction_get_status", abi.Engine.PendingOutboundTransactionGetStatus)
	return Status(s), err
}

func (t *PendingOutbound) Close() error {
	if t == nil {
		return nil
	}
	return t.owner.Close()
}

// PendingOutboundList is a snapshot of pending outbound transactions.
type PendingOutboundList = collection.List[*PendingOutbound]

var pendingOutboundAccessors = collection.Handles("pending_outbound_transactions", PendingOutboundKind,
	abi.Engine.PendingOutboundTransactionsGetLength, abi.Engine.PendingOutboundTransactionsGetAt,
	func(o *handle.Owner) *PendingOutbound { return &PendingOutbound{owner: o} })

// AdoptPendingOutboundList wraps an owner of kind PendingOutboundListKind.
func AdoptPendingOutboundList(o *handle.Owner) *PendingOutboundList {
	return collection.New(o, pendingOutboundAccessors)
}

// ===== pending inbound =====

// PendingInbound is a transaction sent to this wallet that is not yet mined.
type PendingInbound struct {
	owner *handle.Owner
}

// PendingInboundFromHandle adopts a pending_inbound_transaction handle.
func PendingInboundFromHandle(lib *cbwallet.Library, raw abi.Handle) (*PendingInbound, error) {
	o, err := handle.FromRaw(lib, PendingInboundKind, raw)
	if err != nil {
		return nil, err
	}
	return &PendingInbound{owner: o}, nil
}

func (t *PendingInbound) ID() (uint64, error) {
	return handle.Call(t.owner, "pending_inbound_transaction_get_transaction_id", abi.Engine.PendingInboundTransactionGetTransactionID)
}

// Source returns a new, independently owned copy of the sender key.
func (t *PendingInbound) Source() (*keys.PublicKey, error) {
	return key(t.owner, "pending_inbound_transaction_get_source_public_key", abi.Engine.PendingInboundTransactionGetSourcePublicKey)
}

func (t *PendingInbound) Amount() (uint64, error) {
	return handle.Call(t.owner, "pending_inbound_transaction_get_amount", abi.Engine.PendingInboundTransactionGetAmount)
}

func (t *PendingInbound) Timestamp() (time.Time, error) {
	return timestamp(t.owner, "pending_inbound_transaction_get_timestamp", abi.Engine.PendingInboundTransactionGetTimestamp)
}

func (t *PendingInbound) Message() (string, error) {
	return handle.CallString(t.owner, "pending_inbound_transaction_get_message", abi.Engine.PendingInboundTransactionGetMessage)
}

func (t *PendingInbound) Status() (Status, error) {
	s, err := handle.Call(t.owner, "pending_inbound_transaction_get_status", abi.Engine.PendingInboundTransactionGetStatus)
	return Status(s), err
}

func (t *PendingInbound) Close() error {
	if t == nil {
		return nil
	}
	return t.owner.Close()
}

// PendingInboundList is a snapshot of pending inbound transactions.
type PendingInboundList = collection.List[*PendingInbound]

var pendingInboundAccessors = collection.Handles("pending_inbound_transactions", PendingInboundKind,
	abi.Engine.PendingInboundTransactionsGetLength, abi.Engine.PendingInboundTransactionsGetAt,
	func(o *handle.Owner) *PendingInbound { return &PendingInbound{owner: o} })

// AdoptPendingInboundList wraps an owner of kind PendingInboundListKind.
func AdoptPendingInboundList(o *handle.Owner) *PendingInboundList {
	return collection.New(o, pendingInboundAccessors)
}

// ===== completed =====

// Completed is a finished or cancelled transaction in either direction.
type Completed struct {
	owner *handle.Owner
}

// CompletedFromHandle adopts a completed_transaction handle.
func CompletedFromHandle(lib *cbwallet.Library, raw abi.Handle) (*Completed, error) {
	o, err := handle.FromRaw(lib, CompletedKind, raw)
	if err != nil {
		return nil, err
	}
	return &Completed{owner: o}, nil
}

// AdoptCompleted wraps an owner of kind CompletedKind.
func AdoptCompleted(o *handle.Owner) *Completed {
	return &Completed{owner: o}
}

func (t *Completed) ID() (uint64, error) {
	return handle.Call(t.owner, "completed_transaction_get_transaction_id", abi.Engine.CompletedTransactionGetTransactionID)
}

func (t *Completed) Destination() (*keys.PublicKey, error) {
	return key(t.owner, "completed_transaction_get_destination_public_key", abi.Engine.CompletedTransactionGetDestinationPublicKey)
}

func (t *Completed) Source() (*keys.PublicKey, error) {
	return key(t.owner, "completed_transaction_get_source_public_key", abi.Engine.CompletedTransactionGetSourcePublicKey)
}

func (t *Completed) Amount() (uint64, error) {
	return handle.Call(t.owner, "completed_transaction_get_amount", abi.Engine.CompletedTransactionGetAmount)
}

func (t *Completed) Fee() (uint64, error) {
	return handle.Call(t.owner, "completed_transaction_get_fee", abi.Engine.CompletedTransactionGetFee)
}

func (t *Completed) Timestamp() (time.Time, error) {
	return timestamp(t.owner, "completed_transaction_get_timestamp", abi.Engine.CompletedTransactionGetTimestamp)
}

func (t *Completed) Message() (string, error) {
	return handle.CallString(t.owner, "completed_transaction_get_message", abi.Engine.CompletedTransactionGetMessage)
}

func (t *Completed) Status() (Status, error) {
	s, err := handle.Call(t.owner, "completed_transaction_get_status", abi.Engine.CompletedTransactionGetStatus)
	return Status(s), err
}

// IsOutbound reports whether this wallet sent the transaction.
func (t *Completed) IsOutbound() (bool, error) {
	return handle.Call(t.owner, "completed_transaction_is_outbound", abi.Engine.CompletedTransactionIsOutbound)
}

func (t *Completed) Confirmations() (uint64, error) {
	return handle.Call(t.owner, "completed_transaction_get_confirmations", abi.Engine.CompletedTransactionGetConfirmations)
}

// CancellationReason returns NotCancelled for transactions that were not
// cancelled.
func (t *Completed) CancellationReason() (CancellationReason, error) {
	r, err := handle.Call(t.owner, "completed_transaction_get_cancellation_reason", abi.Engine.CompletedTransactionGetCancellationReason)
	return CancellationReason(r), err
}

func (t *Completed) Close() error {
	if t == nil {
		return nil
	}
	return t.owner.Close()
}

// CompletedList is a snapshot of completed or cancelled transactions.
type CompletedList = collection.List[*Completed]

var completedAccessors = collection.Handles("completed_transactions", CompletedKind,
	abi.Engine.CompletedTransactionsGetLength, abi.Engine.CompletedTransactionsGetAt,
	AdoptCompleted)

// AdoptCompletedList wraps an owner of kind CompletedListKind.
func AdoptCompletedList(o *handle.Owner) *CompletedList {
	return collection.New(o, completedAccessors)
}
