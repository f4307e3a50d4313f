package transactions

import "fmt"

// Status is the engine's transaction status. Values the binding has no name
// for are preserved as is.
type Status int32

const (
	StatusCompleted        Status = 0
	StatusBroadcast        Status = 1
	StatusMinedUnconfirmed Status = 2
	StatusImported         Status = 3
	StatusPending          Status = 4
	StatusCoinbase         Status = 5
	StatusMinedConfirmed   Status = 6
	StatusRejected         Status = 7
	StatusFauxUnconfirmed  Status = 8
	StatusFauxConfirmed    Status = 9
	StatusQueued           Status = 10
)

func (s Status) String() string {
	switch s {
	case StatusCompleted:
		return "completed"
	case StatusBroadcast:
		return "broadcast"
	case StatusMinedUnconfirmed:
		return "mined unconfirmed"
	case StatusImported:
		return "imported"
	case StatusPending:
		return "pending"
	case StatusCoinbase:
		return "coinbase"
	case StatusMinedConfirmed:
		return "mined confirmed"
	case StatusRejected:
		return "rejected"
	case StatusFauxUnconfirmed:
		return "faux unconfirmed"
	case StatusFauxConfirmed:
		return "faux confirmed"
	case StatusQueued:
		return "queued"
	default:
		return fmt.Sprintf("status(%d)", int32(s))
	}
}

// Final reports whether the status can no longer change.
func (s Status) Final() bool {
	switch s {
	case StatusMinedConfirmed, StatusRejected, StatusFauxConfirmed:
		return true
	default:
		return false
	}
}

// CancellationReason says why a transaction was cancelled.
type CancellationReason int32

const (
	NotCancelled            CancellationReason = -1
	CancelUnknown           CancellationReason = 0
	CancelUserCancelled     CancellationReason = 1
	CancelTimeout           CancellationReason = 2
	CancelDoubleSpend       CancellationReason = 3
	CancelOrphan            CancellationReason = 4
	CancelTimeLocked        CancellationReason = 5
	CancelInvalid           CancellationReason = 6
	CancelAbandonedCoinbase CancellationReason = 7
)

func (r CancellationReason) String() string {
	switch r {
	case NotCancelled:
		return "not cancelled"
	case CancelUnknown:
		return "unknown"
	case CancelUserCancelled:
		return "user cancelled"
	case CancelTimeout:
		return "timeout"
	case CancelDoubleSpend:
		return "double spend"
	case CancelOrphan:
		return "orphan"
	case CancelTimeLocked:
		return "time locked"
	case CancelInvalid:
		return "invalid transaction"
	case CancelAbandonedCoinbase:
		return "abandoned coinbase"
	default:
		return fmt.Sprintf("reason(%d)", int32(r))
	}
}

// Cancelled reports whether r names an actual cancellation.
func (r CancellationReason) Cancelled() bool { return r != NotCancelled }
