// Package balance binds the engine's balance entity.
package balance

import (
	"github.com/coinbase/cb-wallet-go/pkg/cbwallet"
	"github.com/coinbase/cb-wallet-go/pkg/cbwallet/abi"
	"github.com/coinbase/cb-wallet-go/pkg/cbwallet/internal/handle"
)

var Kind = &handle.Kind{Name: "balance", Destroy: abi.Engine.BalanceDestroy}

// Balance is a wallet balance as of the call that produced it.
type Balance struct {
	owner *handle.Owner
}

// FromHandle adopts a balance handle.
func FromHandle(lib *cbwallet.Library, raw abi.Handle) (*Balance, error) {
	o, err := handle.FromRaw(lib, Kind, raw)
	if err != nil {
		return nil, err
	}
	return &Balance{owner: o}, nil
}

// Adopt wraps an owner of kind Kind.
func Adopt(o *handle.Owner) *Balance { return &Balance{owner: o} }

func (b *Balance) Available() (uint64, error) {
	return handle.Call(b.owner, "balance_get_available", abi.Engine.BalanceGetAvailable)
}

func (b *Balance) PendingIncoming() (uint64, error) {
	return handle.Call(b.owner, "balance_get_pending_incoming", abi.Engine.BalanceGetPendingIncoming)
}

func (b *Balance) PendingOutgoing() (uint64, error) {
	return handle.Call(b.owner, "balance_get_pending_outgoing", abi.Engine.BalanceGetPendingOutgoing)
}

func (b *Balance) TimeLocked() (uint64, error) {
	return handle.Call(b.owner, "balance_get_time_locked", abi.Engine.BalanceGetTimeLocked)
}

// Snapshot is a balance copied into Go memory.
type Snapshot struct {
	Available       uint64
	PendingIncoming uint64
	PendingOutgoing uint64
	TimeLocked      uint64
}

// Total is everything the wallet will control once pending and time locked
// funds settle.
func (s Snapshot) Total() uint64 {
	return s.Available + s.PendingIncoming + s.TimeLocked
}

// Snapshot reads every field. It stops at the first failure.
func (b *Balance) Snapshot() (Snapshot, error) {
	var s Snapshot
	var err error
	if s.Available, err = b.Available(); err != nil {
		return Snapshot{}, err
	}
	if s.PendingIncoming, err = b.PendingIncoming(); err != nil {
		return Snapshot{}, err
	}
	if s.PendingOutgoing, err = b.PendingOutgoing(); err != nil {
		return Snapshot{}, err
	}
	if s.TimeLocked, err = b.TimeLocked(); err != nil {
		return Snapshot{}, err
	}
	return s, nil
}

func (b *Balance) Close() error {
	if b == nil {
		return nil
	}
	return b.owner.Close()
}
