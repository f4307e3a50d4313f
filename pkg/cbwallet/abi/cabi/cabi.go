//go:build cgo && walletffi && !windows

package cabi

/*
#cgo CFLAGS: -I${SRCDIR}
#cgo LDFLAGS: -lwallet_ffi
#cgo linux LDFLAGS: -ldl -lm -lpthread
#cgo darwin LDFLAGS: -framework Security -framework SystemConfiguration

#include <stdlib.h>
#include <string.h>
#include "wallet_ffi.h"
*/
import "C"

import (
	"unsafe"

	"github.com/coinbase/cb-wallet-go/pkg/cbwallet/abi"
)

// Engine forwards every abi.Engine method to the linked wallet_ffi library.
// It holds no state; all state lives behind the handles.
type Engine struct{}

var _ abi.Engine = (*Engine)(nil)

// New returns the native engine.
func New() (abi.Engine, error) {
	return &Engine{}, nil
}

// Version returns the version string reported by the native library.
func Version() string {
	v := C.wallet_ffi_version()
	if v == nil {
		return ""
	}
	return C.GoString(v)
}

// ptr converts a handle back into the C pointer it was created from. Handles
// only ever hold engine-allocated memory, never Go memory.
func ptr[T any](h abi.Handle) *T {
	return (*T)(unsafe.Pointer(h))
}

func handleOf[T any](p *T) abi.Handle {
	return abi.Handle(uintptr(unsafe.Pointer(p)))
}

// slot hands the caller's error slot to C. The slot is Go memory without Go
// pointers, which cgo allows for the duration of the call. An engine that does
// not write it leaves the caller's sentinel in place.
func slot(errOut *int32) *C.int {
	return (*C.int)(unsafe.Pointer(errOut))
}

func withCString[T any](s string, fn func(*C.char) T) T {
	cs := C.CString(s)
	defer C.free(unsafe.Pointer(cs))
	return fn(cs)
}

// ===== strings =====

func (*Engine) CopyString(s abi.Handle) string {
	if s == abi.Null {
		return ""
	}
	return C.GoString(ptr[C.char](s))
}

func (*Engine) StringDestroy(s abi.Handle) {
	C.string_destroy(ptr[C.char](s))
}

// ===== byte_vector =====

func (*Engine) ByteVectorCreate(data []byte, errOut *int32) abi.Handle {
	var p *C.uchar
	if len(data) > 0 {
		p = (*C.uchar)(unsafe.Pointer(&data[0]))
	}
	return handleOf(C.byte_vector_create(p, C.uint(len(data)), slot(errOut)))
}

func (*Engine) ByteVectorGetLength(bv abi.Handle, errOut *int32) uint32 {
	return uint32(C.byte_vector_get_length(ptr[C.struct_ByteVector](bv), slot(errOut)))
}

func (*Engine) ByteVectorGetAt(bv abi.Handle, index uint32, errOut *int32) uint8 {
	return uint8(C.byte_vector_get_at(ptr[C.struct_ByteVector](bv), C.uint(index), slot(errOut)))
}

func (*Engine) ByteVectorDestroy(bv abi.Handle) {
	C.byte_vector_destroy(ptr[C.struct_ByteVector](bv))
}

// ===== public_key =====

func (*Engine) PublicKeyCreate(bytes abi.Handle, errOut *int32) abi.Handle {
	return handleOf(C.public_key_create(ptr[C.struct_ByteVector](bytes), slot(errOut)))
}

func (*Engine) PublicKeyFromHex(hex string, errOut *int32) abi.Handle {
	return withCString(hex, func(cs *C.char) abi.Handle {
		return handleOf(C.public_key_from_hex(cs, slot(errOut)))
	})
}

func (*Engine) PublicKeyFromPrivateKey(secret abi.Handle, errOut *int32) abi.Handle {
	return handleOf(C.public_key_from_private_key(ptr[C.struct_PrivateKey](secret), slot(errOut)))
}

func (*Engine) PublicKeyGetBytes(pk abi.Handle, errOut *int32) abi.Handle {
	return handleOf(C.public_key_get_bytes(ptr[C.struct_PublicKey](pk), slot(errOut)))
}

func (*Engine) PublicKeyToEmojiID(pk abi.Handle, errOut *int32) abi.Handle {
	return handleOf(C.public_key_to_emoji_id(ptr[C.struct_PublicKey](pk), slot(errOut)))
}

func (*Engine) EmojiIDToPublicKey(emoji string, errOut *int32) abi.Handle {
	return withCString(emoji, func(cs *C.char) abi.Handle {
		return handleOf(C.emoji_id_to_public_key(cs, slot(errOut)))
	})
}

func (*Engine) PublicKeyDestroy(pk abi.Handle) {
	C.public_key_destroy(ptr[C.struct_PublicKey](pk))
}

// ===== private_key =====

func (*Engine) PrivateKeyCreate(bytes abi.Handle, errOut *int32) abi.Handle {
	return handleOf(C.private_key_create(ptr[C.struct_ByteVector](bytes), slot(errOut)))
}

func (*Engine) PrivateKeyGenerate(errOut *int32) abi.Handle {
	return handleOf(C.private_key_generate(slot(errOut)))
}

func (*Engine) PrivateKeyFromHex(hex string, errOut *int32) abi.Handle {
	return withCString(hex, func(cs *C.char) abi.Handle {
		return handleOf(C.private_key_from_hex(cs, slot(errOut)))
	})
}

func (*Engine) PrivateKeyGetBytes(sk abi.Handle, errOut *int32) abi.Handle {
	return handleOf(C.private_key_get_bytes(ptr[C.struct_PrivateKey](sk), slot(errOut)))
}

func (*Engine) PrivateKeyDestroy(sk abi.Handle) {
	C.private_key_destroy(ptr[C.struct_PrivateKey](sk))
}

// ===== contact =====

func (*Engine) ContactCreate(alias string, pk abi.Handle, favourite bool, errOut *int32) abi.Handle {
	return withCString(alias, func(cs *C.char) abi.Handle {
		return handleOf(C.contact_create(cs, ptr[C.struct_PublicKey](pk), C.bool(favourite), slot(errOut)))
	})
}

func (*Engine) ContactGetAlias(c abi.Handle, errOut *int32) abi.Handle {
	return handleOf(C.contact_get_alias(ptr[C.struct_Contact](c), slot(errOut)))
}

func (*Engine) ContactGetPublicKey(c abi.Handle, errOut *int32) abi.Handle {
	return handleOf(C.contact_get_public_key(ptr[C.struct_Contact](c), slot(errOut)))
}

func (*Engine) ContactGetFavourite(c abi.Handle, errOut *int32) bool {
	return bool(C.contact_get_favourite(ptr[C.struct_Contact](c), slot(errOut)))
}

func (*Engine) ContactDestroy(c abi.Handle) {
	C.contact_destroy(ptr[C.struct_Contact](c))
}

func (*Engine) ContactsGetLength(cs abi.Handle, errOut *int32) uint32 {
	return uint32(C.contacts_get_length(ptr[C.struct_Contacts](cs), slot(errOut)))
}

func (*Engine) ContactsGetAt(cs abi.Handle, index uint32, errOut *int32) abi.Handle {
	return handleOf(C.contacts_get_at(ptr[C.struct_Contacts](cs), C.uint(index), slot(errOut)))
}

func (*Engine) ContactsDestroy(cs abi.Handle) {
	C.contacts_destroy(ptr[C.struct_Contacts](cs))
}

// ===== pending_outbound_transaction =====

func (*Engine) PendingOutboundTransactionGetTransactionID(tx abi.Handle, errOut *int32) uint64 {
	return uint64(C.pending_outbound_transaction_get_transaction_id(ptr[C.struct_PendingOutboundTransaction](tx), slot(errOut)))
}

func (*Engine) PendingOutboundTransactionGetDestinationPublicKey(tx abi.Handle, errOut *int32) abi.Handle {
	return handleOf(C.pending_outbound_transaction_get_destination_public_key(ptr[C.struct_PendingOutboundTransaction](tx), slot(errOut)))
}

func (*Engine) PendingOutboundTransactionGetAmount(tx abi.Handle, errOut *int32) uint64 {
	return uint64(C.pending_outbound_transaction_get_amount(ptr[C.struct_PendingOutboundTransaction](tx), slot(errOut)))
}

func (*Engine) PendingOutboundTransactionGetFee(tx abi.Handle, errOut *int32) uint64 {
	return uint64(C.pending_outbound_transaction_get_fee(ptr[C.struct_PendingOutboundTransaction](tx), slot(errOut)))
}

func (*Engine) PendingOutboundTransactionGetTimestamp(tx abi.Handle, errOut *int32) uint64 {
	return uint64(C.pending_outbound_transaction_get_timestamp(ptr[C.struct_PendingOutboundTransaction](tx), slot(errOut)))
}

func (*Engine) PendingOutboundTransactionGetMessage(tx abi.Handle, errOut *int32) abi.Handle {
	return handleOf(C.pending_outbound_transaction_get_message(ptr[C.struct_PendingOutboundTransaction](tx), slot(errOut)))
}

func (*Engine) PendingOutboundTransactionGetStatus(tx abi.Handle, errOut *int32) int32 {
	return int32(C.pending_outbound_transaction_get_status(ptr[C.struct_PendingOutboundTransaction](tx), slot(errOut)))
}

func (*Engine) PendingOutboundTransactionDestroy(tx abi.Handle) {
	C.pending_outbound_transaction_destroy(ptr[C.struct_PendingOutboundTransaction](tx))
}

func (*Engine) PendingOutboundTransactionsGetLength(txs abi.Handle, errOut *int32) uint32 {
	return uint32(C.pending_outbound_transactions_get_length(ptr[C.struct_PendingOutboundTransactions](txs), slot(errOut)))
}

func (*Engine) PendingOutboundTransactionsGetAt(txs abi.Handle, index uint32, errOut *int32) abi.Handle {
	return handleOf(C.pending_outbound_transactions_get_at(ptr[C.struct_PendingOutboundTransactions](txs), C.uint(index), slot(errOut)))
}

func (*Engine) PendingOutboundTransactionsDestroy(txs abi.Handle) {
	C.pending_outbound_transactions_destroy(ptr[C.struct_PendingOutboundTransactions](txs))
}

// ===== pending_inbound_transaction =====

func (*Engine) PendingInboundTransactionGetTransactionID(tx abi.Handle, errOut *int32) uint64 {
	return uint64(C.pending_inbound_transaction_get_transaction_id(ptr[C.struct_PendingInboundTransaction](tx), slot(errOut)))
}

func (*Engine) PendingInboundTransactionGetSourcePublicKey(tx abi.Handle, errOut *int32) abi.Handle {
	return handleOf(C.pending_inbound_transaction_get_source_public_key(ptr[C.struct_PendingInboundTransaction](tx), slot(errOut)))
}

func (*Engine) PendingInboundTransactionGetAmount(tx abi.Handle, errOut *int32) uint64 {
	return uint64(C.pending_inbound_transaction_get_amount(ptr[C.struct_PendingInboundTransaction](tx), slot(errOut)))
}

func (*Engine) PendingInboundTransactionGetTimestamp(tx abi.Handle, errOut *int32) uint64 {
	return uint64(C.pending_inbound_transaction_get_timestamp(ptr[C.struct_PendingInboundTransaction](tx), slot(errOut)))
}

func (*Engine) PendingInboundTransactionGetMessage(tx abi.Handle, errOut *int32) abi.Handle {
	return handleOf(C.pending_inbound_transaction_get_message(ptr[C.struct_PendingInboundTransaction](tx), slot(errOut)))
}

func (*Engine) PendingInboundTransactionGetStatus(tx abi.Handle, errOut *int32) int32 {
	return int32(C.pending_inbound_transaction_get_status(ptr[C.struct_PendingInboundTransaction](tx), slot(errOut)))
}

func (*Engine) PendingInboundTransactionDestroy(tx abi.Handle) {
	C.pending_inbound_transaction_destroy(ptr[C.struct_PendingInboundTransaction](tx))
}

func (*Engine) PendingInboundTransactionsGetLength(txs abi.Handle, errOut *int32) uint32 {
	return uint32(C.pending_inbound_transactions_get_length(ptr[C.struct_PendingInboundTransactions](txs), slot(errOut)))
}

func (*Engine) PendingInboundTransactionsGetAt(txs abi.Handle, index uint32, errOut *int32) abi.Handle {
	return handleOf(C.pending_inbound_transactions_get_at(ptr[C.struct_PendingInboundTransactions](txs), C.uint(index), slot(errOut)))
}

func (*Engine) PendingInboundTransactionsDestroy(txs abi.Handle) {
	C.pending_inbound_transactions_destroy(ptr[C.struct_PendingInboundTransactions](txs))
}

// ===== completed_transaction =====

func (*Engine) CompletedTransactionGetTransactionID(tx abi.Handle, errOut *int32) uint64 {
	return uint64(C.completed_transaction_get_transaction_id(ptr[C.struct_CompletedTransaction](tx), slot(errOut)))
}

func (*Engine) CompletedTransactionGetDestinationPublicKey(tx abi.Handle, errOut *int32) abi.Handle {
	return handleOf(C.completed_transaction_get_destination_public_key(ptr[C.struct_CompletedTransaction](tx), slot(errOut)))
}

func (*Engine) CompletedTransactionGetSourcePublicKey(tx abi.Handle, errOut *int32) abi.Handle {
	return handleOf(C.completed_transaction_get_source_public_key(ptr[C.struct_CompletedTransaction](tx), slot(errOut)))
}

func (*Engine) CompletedTransactionGetAmount(tx abi.Handle, errOut *int32) uint64 {
	return uint64(C.completed_transaction_get_amount(ptr[C.struct_CompletedTransaction](tx), slot(errOut)))
}

func (*Engine) CompletedTransactionGetFee(tx abi.Handle, errOut *int32) uint64 {
	return uint64(C.completed_transaction_get_fee(ptr[C.struct_CompletedTransaction](tx), slot(errOut)))
}

func (*Engine) CompletedTransactionGetTimestamp(tx abi.Handle, errOut *int32) uint64 {
	return uint64(C.completed_transaction_get_timestamp(ptr[C.struct_CompletedTransaction](tx), slot(errOut)))
}

func (*Engine) CompletedTransactionGetMessage(tx abi.Handle, errOut *int32) abi.Handle {
	return handleOf(C.completed_transaction_get_message(ptr[C.struct_CompletedTransaction](tx), slot(errOut)))
}

func (*Engine) CompletedTransactionGetStatus(tx abi.Handle, errOut *int32) int32 {
	return int32(C.completed_transaction_get_status(ptr[C.struct_CompletedTransaction](tx), slot(errOut)))
}

func (*Engine) CompletedTransactionIsOutbound(tx abi.Handle, errOut *int32) bool {
	return bool(C.completed_transaction_is_outbound(ptr[C.struct_CompletedTransaction](tx), slot(errOut)))
}

func (*Engine) CompletedTransactionGetConfirmations(tx abi.Handle, errOut *int32) uint64 {
	return uint64(C.completed_transaction_get_confirmations(ptr[C.struct_CompletedTransaction](tx), slot(errOut)))
}

func (*Engine) CompletedTransactionGetCancellationReason(tx abi.Handle, errOut *int32) int32 {
	return int32(C.completed_transaction_get_cancellation_reason(ptr[C.struct_CompletedTransaction](tx), slot(errOut)))
}

func (*Engine) CompletedTransactionDestroy(tx abi.Handle) {
	C.completed_transaction_destroy(ptr[C.struct_CompletedTransaction](tx))
}

func (*Engine) CompletedTransactionsGetLength(txs abi.Handle, errOut *int32) uint32 {
	return uint32(C.completed_transactions_get_length(ptr[C.struct_CompletedTransactions](txs), slot(errOut)))
}

func (*Engine) CompletedTransactionsGetAt(txs abi.Handle, index uint32, errOut *int32) abi.Handle {
	return handleOf(C.completed_transactions_get_at(ptr[C.struct_CompletedTransactions](txs), C.uint(index), slot(errOut)))
}

func (*Engine) CompletedTransactionsDestroy(txs abi.Handle) {
	C.completed_transactions_destroy(ptr[C.struct_CompletedTransactions](txs))
}

// ===== unblinded_output =====

func (*Engine) UnblindedOutputGetValue(out abi.Handle, errOut *int32) uint64 {
	return uint64(C.unblinded_output_get_value(ptr[C.struct_UnblindedOutput](out), slot(errOut)))
}

func (*Engine) UnblindedOutputToJSON(out abi.Handle, errOut *int32) abi.Handle {
	return handleOf(C.unblinded_output_to_json(ptr[C.struct_UnblindedOutput](out), slot(errOut)))
}

func (*Engine) UnblindedOutputDestroy(out abi.Handle) {
	C.unblinded_output_destroy(ptr[C.struct_UnblindedOutput](out))
}

func (*Engine) UnblindedOutputsGetLength(outs abi.Handle, errOut *int32) uint32 {
	return uint32(C.unblinded_outputs_get_length(ptr[C.struct_UnblindedOutputs](outs), slot(errOut)))
}

func (*Engine) UnblindedOutputsGetAt(outs abi.Handle, index uint32, errOut *int32) abi.Handle {
	return handleOf(C.unblinded_outputs_get_at(ptr[C.struct_UnblindedOutputs](outs), C.uint(index), slot(errOut)))
}

func (*Engine) UnblindedOutputsDestroy(outs abi.Handle) {
	C.unblinded_outputs_destroy(ptr[C.struct_UnblindedOutputs](outs))
}

// ===== balance =====

func (*Engine) BalanceGetAvailable(b abi.Handle, errOut *int32) uint64 {
	return uint64(C.balance_get_available(ptr[C.struct_Balance](b), slot(errOut)))
}

func (*Engine) BalanceGetPendingIncoming(b abi.Handle, errOut *int32) uint64 {
	return uint64(C.balance_get_pending_incoming(ptr[C.struct_Balance](b), slot(errOut)))
}

func (*Engine) BalanceGetPendingOutgoing(b abi.Handle, errOut *int32) uint64 {
	return uint64(C.balance_get_pending_outgoing(ptr[C.struct_Balance](b), slot(errOut)))
}

func (*Engine) BalanceGetTimeLocked(b abi.Handle, errOut *int32) uint64 {
	return uint64(C.balance_get_time_locked(ptr[C.struct_Balance](b), slot(errOut)))
}

func (*Engine) BalanceDestroy(b abi.Handle) {
	C.balance_destroy(ptr[C.struct_Balance](b))
}

// ===== seed_words =====

func (*Engine) SeedWordsCreate(errOut *int32) abi.Handle {
	return handleOf(C.seed_words_create(slot(errOut)))
}

func (*Engine) SeedWordsGetLength(sw abi.Handle, errOut *int32) uint32 {
	return uint32(C.seed_words_get_length(ptr[C.struct_SeedWords](sw), slot(errOut)))
}

func (*Engine) SeedWordsGetAt(sw abi.Handle, index uint32, errOut *int32) abi.Handle {
	return handleOf(C.seed_words_get_at(ptr[C.struct_SeedWords](sw), C.uint(index), slot(errOut)))
}

func (*Engine) SeedWordsPushWord(sw abi.Handle, word string, errOut *int32) uint8 {
	return withCString(word, func(cs *C.char) uint8 {
		return uint8(C.seed_words_push_word(ptr[C.struct_SeedWords](sw), cs, slot(errOut)))
	})
}

func (*Engine) SeedWordsDestroy(sw abi.Handle) {
	C.seed_words_destroy(ptr[C.struct_SeedWords](sw))
}

// ===== wallet =====

func (*Engine) WalletCreate(dataDir, network, passphrase string, seedWords abi.Handle, errOut *int32) abi.Handle {
	cDir := C.CString(dataDir)
	defer C.free(unsafe.Pointer(cDir))
	cNet := C.CString(network)
	defer C.free(unsafe.Pointer(cNet))
	cPass := C.CString(passphrase)
	defer func() {
		// The passphrase buffer is ours; wipe it before returning it to libc.
		C.memset(unsafe.Pointer(cPass), 0, C.size_t(len(passphrase)))
		C.free(unsafe.Pointer(cPass))
	}()
	return handleOf(C.wallet_create(cDir, cNet, cPass, ptr[C.struct_SeedWords](seedWords), slot(errOut)))
}

func (*Engine) WalletGetPublicKey(w abi.Handle, errOut *int32) abi.Handle {
	return handleOf(C.wallet_get_public_key(ptr[C.struct_Wallet](w), slot(errOut)))
}

func (*Engine) WalletGetBalance(w abi.Handle, errOut *int32) abi.Handle {
	return handleOf(C.wallet_get_balance(ptr[C.struct_Wallet](w), slot(errOut)))
}

func (*Engine) WalletGetSeedWords(w abi.Handle, errOut *int32) abi.Handle {
	return handleOf(C.wallet_get_seed_words(ptr[C.struct_Wallet](w), slot(errOut)))
}

func (*Engine) WalletGetContacts(w abi.Handle, errOut *int32) abi.Handle {
	return handleOf(C.wallet_get_contacts(ptr[C.struct_Wallet](w), slot(errOut)))
}

func (*Engine) WalletUpsertContact(w abi.Handle, c abi.Handle, errOut *int32) bool {
	return bool(C.wallet_upsert_contact(ptr[C.struct_Wallet](w), ptr[C.struct_Contact](c), slot(errOut)))
}

func (*Engine) WalletRemoveContact(w abi.Handle, c abi.Handle, errOut *int32) bool {
	return bool(C.wallet_remove_contact(ptr[C.struct_Wallet](w), ptr[C.struct_Contact](c), slot(errOut)))
}

func (*Engine) WalletGetPendingOutboundTransactions(w abi.Handle, errOut *int32) abi.Handle {
	return handleOf(C.wallet_get_pending_outbound_transactions(ptr[C.struct_Wallet](w), slot(errOut)))
}

func (*Engine) WalletGetPendingInboundTransactions(w abi.Handle, errOut *int32) abi.Handle {
	return handleOf(C.wallet_get_pending_inbound_transactions(ptr[C.struct_Wallet](w), slot(errOut)))
}

func (*Engine) WalletGetCompletedTransactions(w abi.Handle, errOut *int32) abi.Handle {
	return handleOf(C.wallet_get_completed_transactions(ptr[C.struct_Wallet](w), slot(errOut)))
}

func (*Engine) WalletGetCancelledTransactions(w abi.Handle, errOut *int32) abi.Handle {
	return handleOf(C.wallet_get_cancelled_transactions(ptr[C.struct_Wallet](w), slot(errOut)))
}

func (*Engine) WalletGetCompletedTransactionByID(w abi.Handle, txID uint64, errOut *int32) abi.Handle {
	return handleOf(C.wallet_get_completed_transaction_by_id(ptr[C.struct_Wallet](w), C.ulonglong(txID), slot(errOut)))
}

func (*Engine) WalletGetUnspentOutputs(w abi.Handle, errOut *int32) abi.Handle {
	return handleOf(C.wallet_get_unspent_outputs(ptr[C.struct_Wallet](w), slot(errOut)))
}

func (*Engine) WalletGetFeeEstimate(w abi.Handle, amount, feePerGram uint64, kernelCount, outputCount uint32, errOut *int32) uint64 {
	return uint64(C.wallet_get_fee_estimate(ptr[C.struct_Wallet](w), C.ulonglong(amount), C.ulonglong(feePerGram),
		C.uint(kernelCount), C.uint(outputCount), slot(errOut)))
}

func (*Engine) WalletSendTransaction(w abi.Handle, dest abi.Handle, amount, feePerGram uint64, message string, oneSided bool, errOut *int32) uint64 {
	return withCString(message, func(cs *C.char) uint64 {
		return uint64(C.wallet_send_transaction(ptr[C.struct_Wallet](w), ptr[C.struct_PublicKey](dest),
			C.ulonglong(amount), C.ulonglong(feePerGram), cs, C.bool(oneSided), slot(errOut)))
	})
}

func (*Engine) WalletCancelPendingTransaction(w abi.Handle, txID uint64, errOut *int32) bool {
	return bool(C.wallet_cancel_pending_transaction(ptr[C.struct_Wallet](w), C.ulonglong(txID), slot(errOut)))
}

func (*Engine) WalletSetKeyValue(w abi.Handle, key, value string, errOut *int32) bool {
	cKey := C.CString(key)
	defer C.free(unsafe.Pointer(cKey))
	cValue := C.CString(value)
	defer C.free(unsafe.Pointer(cValue))
	return bool(C.wallet_set_key_value(ptr[C.struct_Wallet](w), cKey, cValue, slot(errOut)))
}

func (*Engine) WalletGetKeyValue(w abi.Handle, key string, errOut *int32) abi.Handle {
	return withCString(key, func(cs *C.char) abi.Handle {
		return handleOf(C.wallet_get_key_value(ptr[C.struct_Wallet](w), cs, slot(errOut)))
	})
}

func (*Engine) WalletAddBaseNodePeer(w abi.Handle, pk abi.Handle, address string, errOut *int32) bool {
	return withCString(address, func(cs *C.char) bool {
		return bool(C.wallet_add_base_node_peer(ptr[C.struct_Wallet](w), ptr[C.struct_PublicKey](pk), cs, slot(errOut)))
	})
}

func (*Engine) WalletDestroy(w abi.Handle) {
	C.wallet_destroy(ptr[C.struct_Wallet](w))
}
