package abi

// Handle is an opaque reference to engine-resident memory. It is never
// dereferenced on the Go side; equality between two handles says nothing about
// the values behind them.
type Handle uintptr

// Null is the handle value the engine returns when it produced nothing.
const Null Handle = 0

// Error slot values. Every fallible C function receives an int32 slot that it
// overwrites with CodeSuccess or an engine error code.
const (
	CodeSuccess int32 = 0
	CodeNotSet  int32 = -1
)

// Engine is the complete C ABI of the native wallet engine, one method per C
// function. Fallible functions take the error slot as their last argument and
// return their primary result; destructors return nothing and never fail.
type Engine interface {
	StringABI
	ByteVectorABI
	PublicKeyABI
	PrivateKeyABI
	ContactABI
	PendingOutboundABI
	PendingInboundABI
	CompletedABI
	UnblindedOutputABI
	BalanceABI
	SeedWordsABI
	WalletABI
}

// StringABI covers engine-owned C strings returned by accessors.
type StringABI interface {
	// CopyString copies the engine string into Go memory. The engine keeps
	// ownership of s; it must still be released with StringDestroy.
	CopyString(s Handle) string
	// string_destroy
	StringDestroy(s Handle)
}

// ByteVectorABI covers byte_vector_*.
type ByteVectorABI interface {
	ByteVectorCreate(data []byte, errOut *int32) Handle
	ByteVectorGetLength(bv Handle, errOut *int32) uint32
	ByteVectorGetAt(bv Handle, index uint32, errOut *int32) uint8
	ByteVectorDestroy(bv Handle)
}

// PublicKeyABI covers public_key_* and the emoji id conversions.
type PublicKeyABI interface {
	PublicKeyCreate(bytes Handle, errOut *int32) Handle
	PublicKeyFromHex(hex string, errOut *int32) Handle
	PublicKeyFromPrivateKey(secret Handle, errOut *int32) Handle
	PublicKeyGetBytes(pk Handle, errOut *int32) Handle
	PublicKeyToEmojiID(pk Handle, errOut *int32) Handle
	EmojiIDToPublicKey(emoji string, errOut *int32) Handle
	PublicKeyDestroy(pk Handle)
}

// PrivateKeyABI covers private_key_*.
type PrivateKeyABI interface {
	PrivateKeyCreate(bytes Handle, errOut *int32) Handle
	PrivateKeyGenerate(errOut *int32) Handle
	PrivateKeyFromHex(hex string, errOut *int32) Handle
	PrivateKeyGetBytes(sk Handle, errOut *int32) Handle
	PrivateKeyDestroy(sk Handle)
}

// ContactABI covers contact_* and contacts_*.
type ContactABI interface {
	ContactCreate(alias string, pk Handle, favourite bool, errOut *int32) Handle
	ContactGetAlias(c Handle, errOut *int32) Handle
	ContactGetPublicKey(c Handle, errOut *int32) Handle
	ContactGetFavourite(c Handle, errOut *int32) bool
	ContactDestroy(c Handle)

	ContactsGetLength(cs Handle, errOut *int32) uint32
	ContactsGetAt(cs Handle, index uint32, errOut *int32) Handle
	ContactsDestroy(cs Handle)
}

// PendingOutboundABI covers pending_outbound_transaction(s)_*.
type PendingOutboundABI interface {
	PendingOutboundTransactionGetTransactionID(tx Handle, errOut *int32) uint64
	PendingOutboundTransactionGetDestinationPublicKey(tx Handle, errOut *int32) Handle
	PendingOutboundTransactionGetAmount(tx Handle, errOut *int32) uint64
	PendingOutboundTransactionGetFee(tx Handle, errOut *int32) uint64
	PendingOutboundTransactionGetTimestamp(tx Handle, errOut *int32) uint64
	PendingOutboundTransactionGetMessage(tx Handle, errOut *int32) Handle
	PendingOutboundTransactionGetStatus(tx Handle, errOut *int32) int32
	PendingOutboundTransactionDestroy(tx Handle)

	PendingOutboundTransactionsGetLength(txs Handle, errOut *int32) uint32
	PendingOutboundTransactionsGetAt(txs Handle, index uint32, errOut *int32) Handle
	PendingOutboundTransactionsDestroy(txs Handle)
}

// PendingInboundABI covers pending_inbound_transaction(s)_*.
type PendingInboundABI interface {
	PendingInboundTransactionGetTransactionID(tx Handle, errOut *int32) uint64
	PendingInboundTransactionGetSourcePublicKey(tx Handle, errOut *int32) Handle
	PendingInboundTransactionGetAmount(tx Handle, errOut *int32) uint64
	PendingInboundTransactionGetTimestamp(tx Handle, errOut *int32) uint64
	PendingInboundTransactionGetMessage(tx Handle, errOut *int32) Handle
	PendingInboundTransactionGetStatus(tx Handle, errOut *int32) int32
	PendingInboundTransactionDestroy(tx Handle)

	PendingInboundTransactionsGetLength(txs Handle, errOut *int32) uint32
	PendingInboundTransactionsGetAt(txs Handle, index uint32, errOut *int32) Handle
	PendingInboundTransactionsDestroy(txs Handle)
}

// CompletedABI covers completed_transaction(s)_*. Cancelled transactions use
// the same entity with a cancellation reason set.
type CompletedABI interface {
	CompletedTransactionGetTransactionID(tx Handle, errOut *int32) uint64
	CompletedTransactionGetDestinationPublicKey(tx Handle, errOut *int32) Handle
	CompletedTransactionGetSourcePublicKey(tx Handle, errOut *int32) Handle
	CompletedTransactionGetAmount(tx Handle, errOut *int32) uint64
	CompletedTransactionGetFee(tx Handle, errOut *int32) uint64
	CompletedTransactionGetTimestamp(tx Handle, errOut *int32) uint64
	CompletedTransactionGetMessage(tx Handle, errOut *int32) Handle
	CompletedTransactionGetStatus(tx Handle, errOut *int32) int32
	CompletedTransactionIsOutbound(tx Handle, errOut *int32) bool
	CompletedTransactionGetConfirmations(tx Handle, errOut *int32) uint64
	CompletedTransactionGetCancellationReason(tx Handle, errOut *int32) int32
	CompletedTransactionDestroy(tx Handle)

	CompletedTransactionsGetLength(txs Handle, errOut *int32) uint32
	CompletedTransactionsGetAt(txs Handle, index uint32, errOut *int32) Handle
	CompletedTransactionsDestroy(txs Handle)
}

// UnblindedOutputABI covers unblinded_output(s)_*.
type UnblindedOutputABI interface {
	UnblindedOutputGetValue(out Handle, errOut *int32) uint64
	UnblindedOutputToJSON(out Handle, errOut *int32) Handle
	UnblindedOutputDestroy(out Handle)

	UnblindedOutputsGetLength(outs Handle, errOut *int32) uint32
	UnblindedOutputsGetAt(outs Handle, index uint32, errOut *int32) Handle
	UnblindedOutputsDestroy(outs Handle)
}

// BalanceABI covers balance_*.
type BalanceABI interface {
	BalanceGetAvailable(b Handle, errOut *int32) uint64
	BalanceGetPendingIncoming(b Handle, errOut *int32) uint64
	BalanceGetPendingOutgoing(b Handle, errOut *int32) uint64
	BalanceGetTimeLocked(b Handle, errOut *int32) uint64
	BalanceDestroy(b Handle)
}

// SeedWordsABI covers seed_words_*.
type SeedWordsABI interface {
	SeedWordsCreate(errOut *int32) Handle
	SeedWordsGetLength(sw Handle, errOut *int32) uint32
	SeedWordsGetAt(sw Handle, index uint32, errOut *int32) Handle
	SeedWordsPushWord(sw Handle, word string, errOut *int32) uint8
	SeedWordsDestroy(sw Handle)
}

// WalletABI covers wallet_*.
type WalletABI interface {
	// WalletCreate opens or creates the wallet stored in dataDir. seedWords may
	// be Null; when set, the wallet is recovered from it. The engine does not
	// take ownership of seedWords.
	WalletCreate(dataDir, network, passphrase string, seedWords Handle, errOut *int32) Handle
	WalletGetPublicKey(w Handle, errOut *int32) Handle
	WalletGetBalance(w Handle, errOut *int32) Handle
	WalletGetSeedWords(w Handle, errOut *int32) Handle
	WalletGetContacts(w Handle, errOut *int32) Handle
	WalletUpsertContact(w Handle, c Handle, errOut *int32) bool
	WalletRemoveContact(w Handle, c Handle, errOut *int32) bool
	WalletGetPendingOutboundTransactions(w Handle, errOut *int32) Handle
	WalletGetPendingInboundTransactions(w Handle, errOut *int32) Handle
	WalletGetCompletedTransactions(w Handle, errOut *int32) Handle
	WalletGetCancelledTransactions(w Handle, errOut *int32) Handle
	WalletGetCompletedTransactionByID(w Handle, txID uint64, errOut *int32) Handle
	WalletGetUnspentOutputs(w Handle, errOut *int32) Handle
	WalletGetFeeEstimate(w Handle, amount, feePerGram uint64, kernelCount, outputCount uint32, errOut *int32) uint64
	WalletSendTransaction(w Handle, dest Handle, amount, feePerGram uint64, message string, oneSided bool, errOut *int32) uint64
	WalletCancelPendingTransaction(w Handle, txID uint64, errOut *int32) bool
	WalletSetKeyValue(w Handle, key, value string, errOut *int32) bool
	WalletGetKeyValue(w Handle, key string, errOut *int32) Handle
	WalletAddBaseNodePeer(w Handle, pk Handle, address string, errOut *int32) bool
	WalletDestroy(w Handle)
}
