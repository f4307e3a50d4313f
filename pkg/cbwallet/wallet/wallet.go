// Package wallet binds the engine's wallet entity: the root object from which
// keys, balances, contacts, transactions and outputs are read.
package wallet

import (
	"errors"

	"github.com/coinbase/cb-wallet-go/pkg/cbwallet"
	"github.com/coinbase/cb-wallet-go/pkg/cbwallet/abi"
	"github.com/coinbase/cb-wallet-go/pkg/cbwallet/balance"
	"github.com/coinbase/cb-wallet-go/pkg/cbwallet/contacts"
	"github.com/coinbase/cb-wallet-go/pkg/cbwallet/internal/handle"
	"github.com/coinbase/cb-wallet-go/pkg/cbwallet/keys"
	"github.com/coinbase/cb-wallet-go/pkg/cbwallet/outputs"
	"github.com/coinbase/cb-wallet-go/pkg/cbwallet/seedwords"
	"github.com/coinbase/cb-wallet-go/pkg/cbwallet/transactions"
)

var Kind = &handle.Kind{Name: "wallet", Destroy: abi.Engine.WalletDestroy}

// ErrNotApplied is returned when the engine reports success for a mutation
// but says it changed nothing.
var ErrNotApplied = errors.New("wallet: engine did not apply the change")

// Params selects the wallet to open or create.
type Params struct {
	// DataDir and Network default to the library Config.
	DataDir string
	Network string
	// Passphrase encrypts the wallet database. A wrong passphrase for an
	// existing wallet fails with cbwallet.ErrInvalidPassphrase.
	Passphrase string
	// SeedWords recovers a wallet from a backup phrase. nil creates a new key.
	// The caller keeps ownership.
	SeedWords *seedwords.SeedWords
}

// Wallet is an open wallet.
type Wallet struct {
	owner *handle.Owner
}

// Create opens the wallet at p.DataDir, creating it when it does not exist.
func Create(lib *cbwallet.Library, p Params) (*Wallet, error) {
	if err := lib.Ready(); err != nil {
		return nil, err
	}
	cfg := lib.Config()
	if p.DataDir == "" {
		p.DataDir = cfg.DataDir
	}
	if p.Network == "" {
		p.Network = cfg.Network
	}
	if p.DataDir == "" {
		return nil, &cbwallet.ValidationError{Field: "data dir", Reason: "empty"}
	}
	if p.Network == "" {
		return nil, &cbwallet.ValidationError{Field: "network", Reason: "empty"}
	}

	seed := abi.Null
	if p.SeedWords != nil {
		raw, release, err := p.SeedWords.Owner().Borrow()
		if err != nil {
			return nil, err
		}
		defer release()
		seed = raw
	}

	o, err := handle.Create(lib, Kind, "wallet_create", func(e abi.Engine, errOut *int32) abi.Handle {
		return e.WalletCreate(p.DataDir, p.Network, p.Passphrase, seed, errOut)
	})
	if err != nil {
		return nil, err
	}
	return &Wallet{owner: o}, nil
}

// PublicKey returns the wallet's identity key.
func (w *Wallet) PublicKey() (*keys.PublicKey, error) {
	o, err := handle.Adopt(w.owner, keys.PublicKeyKind, "wallet_get_public_key", abi.Engine.WalletGetPublicKey)
	if err != nil {
		return nil, err
	}
	return keys.AdoptPublicKey(o), nil
}

// Balance returns the current balance.
func (w *Wallet) Balance() (*balance.Balance, error) {
	o, err := handle.Adopt(w.owner, balance.Kind, "wallet_get_balance", abi.Engine.WalletGetBalance)
	if err != nil {
		return nil, err
	}
	return balance.Adopt(o), nil
}

// SeedWords returns the backup phrase of the wallet key.
func (w *Wallet) SeedWords() (*seedwords.SeedWords, error) {
	o, err := handle.Adopt(w.owner, seedwords.Kind, "wallet_get_seed_words", abi.Engine.WalletGetSeedWords)
	if err != nil {
		return nil, err
	}
	return seedwords.Adopt(o), nil
}

// Contacts returns a snapshot of the address book.
func (w *Wallet) Contacts() (*contacts.List, error) {
	o, err := handle.Adopt(w.owner, contacts.ListKind, "wallet_get_contacts", abi.Engine.WalletGetContacts)
	if err != nil {
		return nil, err
	}
	return contacts.AdoptList(o), nil
}

// UpsertContact stores c, replacing a contact with the same public key.
func (w *Wallet) UpsertContact(c *contacts.Contact) error {
	ok, err := handle.CallWith(w.owner, c.Owner(), "wallet_upsert_contact", abi.Engine.WalletUpsertContact)
	return applied(ok, err)
}

// RemoveContact deletes the contact with c's public key. A missing contact
// fails with cbwallet.ErrContactNotFound.
func (w *Wallet) RemoveContact(c *contacts.Contact) error {
	ok, err := handle.CallWith(w.owner, c.Owner(), "wallet_remove_contact", abi.Engine.WalletRemoveContact)
	return applied(ok, err)
}

// PendingOutbound returns a snapshot of sent, unmined transactions.
func (w *Wallet) PendingOutbound() (*transactions.PendingOutboundList, error) {
	o, err := handle.Adopt(w.owner, transactions.PendingOutboundListKind, "wallet_get_pending_outbound_transactions",
		abi.Engine.WalletGetPendingOutboundTransactions)
	if err != nil {
		return nil, err
	}
	return transactions.AdoptPendingOutboundList(o), nil
}

// PendingInbound returns a snapshot of received, unmined transactions.
func (w *Wallet) PendingInbound() (*transactions.PendingInboundList, error) {
	o, err := handle.Adopt(w.owner, transactions.PendingInboundListKind, "wallet_get_pending_inbound_transactions",
		abi.Engine.WalletGetPendingInboundTransactions)
	if err != nil {
		return nil, err
	}
	return transactions.AdoptPendingInboundList(o), nil
}

// Completed returns a snapshot of completed transactions.
func (w *Wallet) Completed() (*transactions.CompletedList, error) {
	o, err := handle.Adopt(w.owner, transactions.CompletedListKind, "wallet_get_completed_transactions",
		abi.Engine.WalletGetCompletedTransactions)
	if err != nil {
		return nil, err
	}
	return transactions.AdoptCompletedList(o), nil
}

// Cancelled returns a snapshot of cancelled transactions.
func (w *Wallet) Cancelled() (*transactions.CompletedList, error) {
	o, err := handle.Adopt(w.owner, transactions.CompletedListKind, "wallet_get_cancelled_transactions",
		abi.Engine.WalletGetCancelledTransactions)
	if err != nil {
		return nil, err
	}
	return transactions.AdoptCompletedList(o), nil
}

// CompletedByID looks up one completed transaction. A missing id fails with
// cbwallet.ErrTransactionNotFound.
func (w *Wallet) CompletedByID(id uint64) (*transactions.Completed, error) {
	o, err := handle.Adopt(w.owner, transactions.CompletedKind, "wallet_get_completed_transaction_by_id",
		func(e abi.Engine, h abi.Handle, errOut *int32) abi.Handle {
			return e.WalletGetCompletedTransactionByID(h, id, errOut)
		})
	if err != nil {
		return nil, err
	}
	return transactions.AdoptCompleted(o), nil
}

// UnspentOutputs returns a snapshot of the wallet's unspent outputs.
func (w *Wallet) UnspentOutputs() (*outputs.List, error) {
	o, err := handle.Adopt(w.owner, outputs.ListKind, "wallet_get_unspent_outputs", abi.Engine.WalletGetUnspentOutputs)
	if err != nil {
		return nil, err
	}
	return outputs.AdoptList(o), nil
}

// FeeEstimate returns the fee for sending amount at feePerGram with the given
// transaction shape.
func (w *Wallet) FeeEstimate(amount, feePerGram uint64, kernels, outputs uint32) (uint64, error) {
	if amount == 0 {
		return 0, &cbwallet.ValidationError{Field: "amount", Reason: "zero"}
	}
	return handle.Call(w.owner, "wallet_get_fee_estimate", func(e abi.Engine, h abi.Handle, errOut *int32) uint64 {
		return e.WalletGetFeeEstimate(h, amount, feePerGram, kernels, outputs, errOut)
	})
}

// Payment describes an outgoing transaction.
type Payment struct {
	Destination *keys.PublicKey
	Amount      uint64
	FeePerGram  uint64
	Message     string
	// OneSided sends without the recipient's participation.
	OneSided bool
}

// Send submits p and returns the new transaction id. Insufficient funds fail
// with cbwallet.ErrNotEnoughFunds, or cbwallet.ErrFundsPending when pending
// funds would cover the payment.
func (w *Wallet) Send(p Payment) (uint64, error) {
	if p.Destination == nil {
		return 0, &cbwallet.ValidationError{Field: "destination", Reason: "missing"}
	}
	if p.Amount == 0 {
		return 0, &cbwallet.ValidationError{Field: "amount", Reason: "zero"}
	}
	return handle.CallWith(w.owner, p.Destination.Owner(), "wallet_send_transaction",
		func(e abi.Engine, h, dest abi.Handle, errOut *int32) uint64 {
			return e.WalletSendTransaction(h, dest, p.Amount, p.FeePerGram, p.Message, p.OneSided, errOut)
		})
}

// CancelPending cancels a pending transaction. A missing id fails with
// cbwallet.ErrTransactionNotFound.
func (w *Wallet) CancelPending(id uint64) error {
	ok, err := handle.Call(w.owner, "wallet_cancel_pending_transaction", func(e abi.Engine, h abi.Handle, errOut *int32) bool {
		return e.WalletCancelPendingTransaction(h, id, errOut)
	})
	return applied(ok, err)
}

// SetValue stores value under key in the wallet database.
func (w *Wallet) SetValue(key, value string) error {
	if key == "" {
		return &cbwallet.ValidationError{Field: "key", Reason: "empty"}
	}
	ok, err := handle.Call(w.owner, "wallet_set_key_value", func(e abi.Engine, h abi.Handle, errOut *int32) bool {
		return e.WalletSetKeyValue(h, key, value, errOut)
	})
	return applied(ok, err)
}

// Value reads key from the wallet database. A missing key fails with
// cbwallet.ErrValueNotFound.
func (w *Wallet) Value(key string) (string, error) {
	if key == "" {
		return "", &cbwallet.ValidationError{Field: "key", Reason: "empty"}
	}
	return handle.CallString(w.owner, "wallet_get_key_value", func(e abi.Engine, h abi.Handle, errOut *int32) abi.Handle {
		return e.WalletGetKeyValue(h, key, errOut)
	})
}

// AddBaseNodePeer registers the base node the wallet syncs against. address
// is a multiaddr such as /ip4/127.0.0.1/tcp/18189.
func (w *Wallet) AddBaseNodePeer(pk *keys.PublicKey, address string) error {
	if address == "" {
		return &cbwallet.ValidationError{Field: "address", Reason: "empty"}
	}
	if pk == nil {
		return &cbwallet.ValidationError{Field: "peer public key", Reason: "missing"}
	}
	ok, err := handle.CallWith(w.owner, pk.Owner(), "wallet_add_base_node_peer",
		func(e abi.Engine, h, peer abi.Handle, errOut *int32) bool {
			return e.WalletAddBaseNodePeer(h, peer, address, errOut)
		})
	return applied(ok, err)
}

// Close releases the native wallet.
func (w *Wallet) Close() error {
	if w == nil {
		return nil
	}
	return w.owner.Close()
}

func applied(ok bool, err error) error {
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotApplied
	}
	return nil
}

