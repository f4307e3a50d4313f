package fakeengine

import (
	"bytes"
	"crypto/rand"
	"errors"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcec/v2"

	"github.com/coinbase/cb-wallet-go/pkg/cbwallet/abi"
)

// Transaction weights used by the fee model, in grams.
const (
	KernelWeight = 3
	InputWeight  = 1
	OutputWeight = 13
)

// walletState is the persistent state behind a data directory. It survives
// wallet_destroy so a wallet can be reopened.
type walletState struct {
	dataDir    string
	network    string
	passphrase string
	secret     *btcec.PrivateKey

	tip        uint64
	contacts   []contactValue
	kv         map[string]string
	peers      map[string]string
	outputs    []output
	pendingOut []outboundTx
	pendingIn  []inboundTx
	completed  []completedTx
	cancelled  []completedTx
}

func (w *walletState) public() []byte { return publicOf(w.secret) }

func (w *walletState) spendable(o output) bool { return o.maturity <= w.tip }

func (w *walletState) balance() balanceValue {
	var b balanceValue
	for _, o := range w.outputs {
		if w.spendable(o) {
			b.available += o.value
		} else {
			b.timeLocked += o.value
		}
	}
	for _, tx := range w.pendingOut {
		for _, in := range tx.inputs {
			b.pendingOutgoing += in.value
		}
		b.pendingIncoming += tx.change
	}
	for _, tx := range w.pendingIn {
		b.pendingIncoming += tx.amount
	}
	return b
}

// Fee returns the fee for a transaction of the given shape.
func Fee(feePerGram uint64, kernels, inputs, outputs uint32) uint64 {
	return feePerGram * uint64(kernels*KernelWeight+inputs*InputWeight+outputs*OutputWeight)
}

// selectInputs picks spendable outputs, largest first, until amount plus fee
// is covered. It returns the indices into w.outputs, the input total and the
// fee, or the engine code explaining the shortfall.
func (w *walletState) selectInputs(amount, feePerGram uint64, kernels, outputs uint32) ([]int, uint64, uint64, int32) {
	order := make([]int, 0, len(w.outputs))
	for i, o := range w.outputs {
		if w.spendable(o) {
			order = append(order, i)
		}
	}
	// insertion sort keeps equal values in funding order
	for i := 1; i < len(order); i++ {
		for j := i; j > 0 && w.outputs[order[j]].value > w.outputs[order[j-1]].value; j-- {
			order[j], order[j-1] = order[j-1], order[j]
		}
	}

	var total, fee uint64
	for n, idx := range order {
		total += w.outputs[idx].value
		fee = Fee(feePerGram, kernels, uint32(n+1), outputs)
		if total >= amount+fee {
			return order[:n+1], total, fee, 0
		}
	}

	if fee == 0 {
		fee = Fee(feePerGram, kernels, 1, outputs)
	}
	if b := w.balance(); b.available+b.pendingIncoming+b.timeLocked >= amount+fee {
		return nil, 0, 0, codeFundsPending
	}
	return nil, 0, 0, codeNotEnoughFunds
}

func (w *walletState) take(indices []int) []output {
	drop := make(map[int]bool, len(indices))
	taken := make([]output, 0, len(indices))
	for _, i := range indices {
		drop[i] = true
		taken = append(taken, w.outputs[i])
	}
	kept := w.outputs[:0:0]
	for i, o := range w.outputs {
		if !drop[i] {
			kept = append(kept, o)
		}
	}
	w.outputs = kept
	return taken
}

func newOutput(value, maturity uint64, outputType string) output {
	commitment := make([]byte, 32)
	_, _ = rand.Read(commitment)
	return output{value: value, maturity: maturity, outputType: outputType, commitment: commitment}
}

func (e *Engine) wallet(fn string, h abi.Handle) (*walletState, int32) {
	return get[*walletState](e, fn, h, KindWallet)
}

func (e *Engine) WalletCreate(dataDir, network, passphrase string, seedWords abi.Handle, errOut *int32) abi.Handle {
	return run(e, "wallet_create", errOut, func() (abi.Handle, int32) {
		if dataDir == "" || network == "" {
			return abi.Null, codeInvalidArgument
		}
		if w, ok := e.wallets[dataDir]; ok {
			if w.passphrase != passphrase {
				return abi.Null, codeInvalidPassphrase
			}
			return e.alloc(KindWallet, w), 0
		}

		var secret *btcec.PrivateKey
		if seedWords != abi.Null {
			s, code := get[*seedState](e, "wallet_create", seedWords, KindSeedWords)
			if code != 0 {
				return abi.Null, code
			}
			key, code := decodeSeed(s.words)
			if code != 0 {
				return abi.Null, code
			}
			secret, _ = parsePrivateKey(key)
		} else {
			sk, err := btcec.NewPrivateKey()
			if err != nil {
				return abi.Null, codeInvalidArgument
			}
			secret = sk
		}

		w := &walletState{
			dataDir:    dataDir,
			network:    network,
			passphrase: passphrase,
			secret:     secret,
			kv:         make(map[string]string),
			peers:      make(map[string]string),
		}
		e.wallets[dataDir] = w
		return e.alloc(KindWallet, w), 0
	})
}

func (e *Engine) WalletGetPublicKey(h abi.Handle, errOut *int32) abi.Handle {
	return run(e, "wallet_get_public_key", errOut, func() (abi.Handle, int32) {
		w, code := e.wallet("wallet_get_public_key", h)
		if code != 0 {
			return abi.Null, code
		}
		return e.alloc(KindPublicKey, w.public()), 0
	})
}

func (e *Engine) WalletGetBalance(h abi.Handle, errOut *int32) abi.Handle {
	return run(e, "wallet_get_balance", errOut, func() (abi.Handle, int32) {
		w, code := e.wallet("wallet_get_balance", h)
		if code != 0 {
			return abi.Null, code
		}
		return e.alloc(KindBalance, w.balance()), 0
	})
}

func (e *Engine) WalletGetSeedWords(h abi.Handle, errOut *int32) abi.Handle {
	return run(e, "wallet_get_seed_words", errOut, func() (abi.Handle, int32) {
		w, code := e.wallet("wallet_get_seed_words", h)
		if code != 0 {
			return abi.Null, code
		}
		return e.alloc(KindSeedWords, &seedState{words: SeedPhrase(w.secret.Serialize())}), 0
	})
}

func (e *Engine) WalletGetContacts(h abi.Handle, errOut *int32) abi.Handle {
	return run(e, "wallet_get_contacts", errOut, func() (abi.Handle, int32) {
		w, code := e.wallet("wallet_get_contacts", h)
		if code != 0 {
			return abi.Null, code
		}
		return e.alloc(KindContacts, append([]contactValue(nil), w.contacts...)), 0
	})
}

func (e *Engine) WalletUpsertContact(h abi.Handle, c abi.Handle, errOut *int32) bool {
	return run(e, "wallet_upsert_contact", errOut, func() (bool, int32) {
		w, code := e.wallet("wallet_upsert_contact", h)
		if code != 0 {
			return false, code
		}
		contact, code := get[contactValue](e, "wallet_upsert_contact", c, KindContact)
		if code != 0 {
			return false, code
		}
		for i := range w.contacts {
			if bytes.Equal(w.contacts[i].pub, contact.pub) {
				w.contacts[i] = contact
				return true, 0
			}
		}
		w.contacts = append(w.contacts, contact)
		return true, 0
	})
}

func (e *Engine) WalletRemoveContact(h abi.Handle, c abi.Handle, errOut *int32) bool {
	return run(e, "wallet_remove_contact", errOut, func() (bool, int32) {
		w, code := e.wallet("wallet_remove_contact", h)
		if code != 0 {
			return false, code
		}
		contact, code := get[contactValue](e, "wallet_remove_contact", c, KindContact)
		if code != 0 {
			return false, code
		}
		for i := range w.contacts {
			if bytes.Equal(w.contacts[i].pub, contact.pub) {
				w.contacts = append(w.contacts[:i], w.contacts[i+1:]...)
				return true, 0
			}
		}
		return false, codeContactNotFound
	})
}

func (e *Engine) WalletGetPendingOutboundTransactions(h abi.Handle, errOut *int32) abi.Handle {
	return run(e, "wallet_get_pending_outbound_transactions", errOut, func() (abi.Handle, int32) {
		w, code := e.wallet("wallet_get_pending_outbound_transactions", h)
		if code != 0 {
			return abi.Null, code
		}
		return e.alloc(KindPendingOutbounds, append([]outboundTx(nil), w.pendingOut...)), 0
	})
}

func (e *Engine) WalletGetPendingInboundTransactions(h abi.Handle, errOut *int32) abi.Handle {
	return run(e, "wallet_get_pending_inbound_transactions", errOut, func() (abi.Handle, int32) {
		w, code := e.wallet("wallet_get_pending_inbound_transactions", h)
		if code != 0 {
			return abi.Null, code
		}
		return e.alloc(KindPendingInbounds, append([]inboundTx(nil), w.pendingIn...)), 0
	})
}

func (e *Engine) WalletGetCompletedTransactions(h abi.Handle, errOut *int32) abi.Handle {
	return run(e, "wallet_get_completed_transactions", errOut, func() (abi.Handle, int32) {
		w, code := e.wallet("wallet_get_completed_transactions", h)
		if code != 0 {
			return abi.Null, code
		}
		return e.alloc(KindCompleteds, append([]completedTx(nil), w.completed...)), 0
	})
}

func (e *Engine) WalletGetCancelledTransactions(h abi.Handle, errOut *int32) abi.Handle {
	return run(e, "wallet_get_cancelled_transactions", errOut, func() (abi.Handle, int32) {
		w, code := e.wallet("wallet_get_cancelled_transactions", h)
		if code != 0 {
			return abi.Null, code
		}
		return e.alloc(KindCompleteds, append([]completedTx(nil), w.cancelled...)), 0
	})
}

func (e *Engine) WalletGetCompletedTransactionByID(h abi.Handle, txID uint64, errOut *int32) abi.Handle {
	return run(e, "wallet_get_completed_transaction_by_id", errOut, func() (abi.Handle, int32) {
		w, code := e.wallet("wallet_get_completed_transaction_by_id", h)
		if code != 0 {
			return abi.Null, code
		}
		for _, tx := range w.completed {
			if tx.id == txID {
				return e.alloc(KindCompleted, tx), 0
			}
		}
		return abi.Null, codeTransactionNotFound
	})
}

func (e *Engine) WalletGetUnspentOutputs(h abi.Handle, errOut *int32) abi.Handle {
	return run(e, "wallet_get_unspent_outputs", errOut, func() (abi.Handle, int32) {
		w, code := e.wallet("wallet_get_unspent_outputs", h)
		if code != 0 {
			return abi.Null, code
		}
		return e.alloc(KindUnblindedOutputs, append([]output(nil), w.outputs...)), 0
	})
}

func (e *Engine) WalletGetFeeEstimate(h abi.Handle, amount, feePerGram uint64, kernelCount, outputCount uint32, errOut *int32) uint64 {
	return run(e, "wallet_get_fee_estimate", errOut, func() (uint64, int32) {
		w, code := e.wallet("wallet_get_fee_estimate", h)
		if code != 0 {
			return 0, code
		}
		if amount == 0 || kernelCount == 0 || outputCount == 0 {
			return 0, codeInvalidArgument
		}
		_, _, fee, code := w.selectInputs(amount, feePerGram, kernelCount, outputCount)
		return fee, code
	})
}

func (e *Engine) WalletSendTransaction(h abi.Handle, dest abi.Handle, amount, feePerGram uint64, message string, oneSided bool, errOut *int32) uint64 {
	return run(e, "wallet_send_transaction", errOut, func() (uint64, int32) {
		w, code := e.wallet("wallet_send_transaction", h)
		if code != 0 {
			return 0, code
		}
		to, code := get[[]byte](e, "wallet_send_transaction", dest, KindPublicKey)
		if code != 0 {
			return 0, code
		}
		if amount == 0 {
			return 0, codeInvalidArgument
		}

		indices, total, fee, code := w.selectInputs(amount, feePerGram, 1, 2)
		if code != 0 {
			return 0, code
		}
		inputs := w.take(indices)
		change := total - amount - fee

		id := e.nextTxID
		e.nextTxID++
		ts := uint64(e.now().Unix())

		if oneSided {
			w.completed = append(w.completed, completedTx{
				id:           id,
				dest:         bytes.Clone(to),
				source:       w.public(),
				amount:       amount,
				fee:          fee,
				timestamp:    ts,
				message:      message,
				status:       StatusBroadcast,
				outbound:     true,
				cancelReason: NotCancelled,
			})
			if change > 0 {
				w.outputs = append(w.outputs, newOutput(change, 0, OutputStandard))
			}
			return id, 0
		}

		w.pendingOut = append(w.pendingOut, outboundTx{
			id:        id,
			dest:      bytes.Clone(to),
			amount:    amount,
			fee:       fee,
			timestamp: ts,
			message:   message,
			status:    StatusPending,
			inputs:    inputs,
			change:    change,
		})
		return id, 0
	})
}

func (e *Engine) WalletCancelPendingTransaction(h abi.Handle, txID uint64, errOut *int32) bool {
	return run(e, "wallet_cancel_pending_transaction", errOut, func() (bool, int32) {
		w, code := e.wallet("wallet_cancel_pending_transaction", h)
		if code != 0 {
			return false, code
		}
		for i, tx := range w.pendingOut {
			if tx.id != txID {
				continue
			}
			w.pendingOut = append(w.pendingOut[:i], w.pendingOut[i+1:]...)
			w.outputs = append(w.outputs, tx.inputs...)
			w.cancelled = append(w.cancelled, completedTx{
				id:           tx.id,
				dest:         tx.dest,
				source:       w.public(),
				amount:       tx.amount,
				fee:          tx.fee,
				timestamp:    tx.timestamp,
				message:      tx.message,
				status:       tx.status,
				outbound:     true,
				cancelReason: CancelUserCancelled,
			})
			return true, 0
		}
		for i, tx := range w.pendingIn {
			if tx.id != txID {
				continue
			}
			w.pendingIn = append(w.pendingIn[:i], w.pendingIn[i+1:]...)
			w.cancelled = append(w.cancelled, completedTx{
				id:           tx.id,
				dest:         w.public(),
				source:       tx.source,
				amount:       tx.amount,
				timestamp:    tx.timestamp,
				message:      tx.message,
				status:       tx.status,
				cancelReason: CancelUserCancelled,
			})
			return true, 0
		}
		return false, codeTransactionNotFound
	})
}

func (e *Engine) WalletSetKeyValue(h abi.Handle, key, value string, errOut *int32) bool {
	return run(e, "wallet_set_key_value", errOut, func() (bool, int32) {
		w, code := e.wallet("wallet_set_key_value", h)
		if code != 0 {
			return false, code
		}
		if key == "" {
			return false, codeInvalidArgument
		}
		w.kv[key] = value
		return true, 0
	})
}

func (e *Engine) WalletGetKeyValue(h abi.Handle, key string, errOut *int32) abi.Handle {
	return run(e, "wallet_get_key_value", errOut, func() (abi.Handle, int32) {
		w, code := e.wallet("wallet_get_key_value", h)
		if code != 0 {
			return abi.Null, code
		}
		v, ok := w.kv[key]
		if !ok {
			return abi.Null, codeValueNotFound
		}
		return e.newString(v), 0
	})
}

func (e *Engine) WalletAddBaseNodePeer(h abi.Handle, pk abi.Handle, address string, errOut *int32) bool {
	return run(e, "wallet_add_base_node_peer", errOut, func() (bool, int32) {
		w, code := e.wallet("wallet_add_base_node_peer", h)
		if code != 0 {
			return false, code
		}
		pub, code := get[[]byte](e, "wallet_add_base_node_peer", pk, KindPublicKey)
		if code != 0 {
			return false, code
		}
		if !strings.HasPrefix(address, "/") {
			return false, codeInvalidArgument
		}
		w.peers[string(pub)] = address
		return true, 0
	})
}

func (e *Engine) WalletDestroy(h abi.Handle) {
	e.destroy("wallet_destroy", h, KindWallet)
}

// ===== test helpers =====

func (e *Engine) state(dataDir string) (*walletState, error) {
	w, ok := e.wallets[dataDir]
	if !ok {
		return nil, fmt.Errorf("fakeengine: no wallet at %q", dataDir)
	}
	return w, nil
}

// Fund adds spendable outputs with the given values to the wallet at dataDir.
func (e *Engine) Fund(dataDir string, values ...uint64) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	w, err := e.state(dataDir)
	if err != nil {
		return err
	}
	for _, v := range values {
		w.outputs = append(w.outputs, newOutput(v, 0, OutputStandard))
	}
	return nil
}

// FundLocked adds an output that becomes spendable once the wallet's tip
// reaches maturity.
func (e *Engine) FundLocked(dataDir string, value, maturity uint64) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	w, err := e.state(dataDir)
	if err != nil {
		return err
	}
	w.outputs = append(w.outputs, newOutput(value, maturity, OutputCoinbase))
	return nil
}

// Mine advances the wallet's chain tip by blocks.
func (e *Engine) Mine(dataDir string, blocks uint64) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	w, err := e.state(dataDir)
	if err != nil {
		return err
	}
	w.tip += blocks
	return nil
}

// Receive records a pending inbound transaction and returns its id.
func (e *Engine) Receive(dataDir string, source []byte, amount uint64, message string) (uint64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	w, err := e.state(dataDir)
	if err != nil {
		return 0, err
	}
	if _, ok := parsePublicKey(source); !ok {
		return 0, errors.New("fakeengine: invalid source key")
	}
	id := e.nextTxID
	e.nextTxID++
	w.pendingIn = append(w.pendingIn, inboundTx{
		id:        id,
		source:    bytes.Clone(source),
		amount:    amount,
		timestamp: uint64(e.now().Unix()),
		message:   message,
		status:    StatusPending,
	})
	return id, nil
}

// Confirm mines the pending transaction txID: inputs are spent, change and
// received amounts become spendable and the transaction moves to completed.
func (e *Engine) Confirm(dataDir string, txID uint64, confirmations uint64) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	w, err := e.state(dataDir)
	if err != nil {
		return err
	}
	for i, tx := range w.pendingOut {
		if tx.id != txID {
			continue
		}
		w.pendingOut = append(w.pendingOut[:i], w.pendingOut[i+1:]...)
		if tx.change > 0 {
			w.outputs = append(w.outputs, newOutput(tx.change, 0, OutputStandard))
		}
		w.completed = append(w.completed, completedTx{
			id:            tx.id,
			dest:          tx.dest,
			source:        w.public(),
			amount:        tx.amount,
			fee:           tx.fee,
			timestamp:     tx.timestamp,
			message:       tx.message,
			status:        StatusMinedConfirmed,
			outbound:      true,
			confirmations: confirmations,
			cancelReason:  NotCancelled,
		})
		return nil
	}
	for i, tx := range w.pendingIn {
		if tx.id != txID {
			continue
		}
		w.pendingIn = append(w.pendingIn[:i], w.pendingIn[i+1:]...)
		w.outputs = append(w.outputs, newOutput(tx.amount, 0, OutputStandard))
		w.completed = append(w.completed, completedTx{
			id:            tx.id,
			dest:          w.public(),
			source:        tx.source,
			amount:        tx.amount,
			timestamp:     tx.timestamp,
			message:       tx.message,
			status:        StatusMinedConfirmed,
			confirmations: confirmations,
			cancelReason:  NotCancelled,
		})
		return nil
	}
	return fmt.Errorf("fakeengine: no pending transaction %d", txID)
}

// Secret returns the serialized secret key of the wallet at dataDir.
func (e *Engine) Secret(dataDir string) ([]byte, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	w, err := e.state(dataDir)
	if err != nil {
		return nil, err
	}
	return w.secret.Serialize(), nil
}
