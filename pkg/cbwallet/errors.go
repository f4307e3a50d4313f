package cbwallet

import (
	"errors"
	"fmt"
)

// DomainEngine tags errors reported by the native engine.
const DomainEngine = "native engine"

// Kind is the symbolic meaning of an engine error code. The engine's code
// table is append-only and may grow faster than this list; codes without a
// name report KindUnknown and keep their integer.
type Kind int

const (
	KindUnknown Kind = iota
	KindNullPointer
	KindAllocation
	KindPositionInvalid
	KindInvalidEmojiID
	KindInvalidArgument
	KindNotEnoughFunds
	KindValueNotFound
	KindDatabaseDataError
	KindFundsPending
	KindTransactionNotFound
	KindContactNotFound
	KindValuesNotFound
	KindInvalidPassphrase
	KindSeedWordsInvalidData
	KindSeedWordsVersionMismatch
)

// Engine error codes with a known meaning.
const (
	CodeNullPointer              int32 = 1
	CodeAllocation               int32 = 2
	CodePositionInvalid          int32 = 3
	CodeInvalidEmojiID           int32 = 6
	CodeInvalidArgument          int32 = 7
	CodeNotEnoughFunds           int32 = 101
	CodeValueNotFound            int32 = 108
	CodeDatabaseDataError        int32 = 114
	CodeFundsPending             int32 = 115
	CodeTransactionNotFound      int32 = 204
	CodeContactNotFound          int32 = 401
	CodeValuesNotFound           int32 = 424
	CodeInvalidPassphrase        int32 = 428
	CodeSeedWordsInvalidData     int32 = 429
	CodeSeedWordsVersionMismatch int32 = 430
)

var kindByCode = map[int32]Kind{
	CodeNullPointer:              KindNullPointer,
	CodeAllocation:               KindAllocation,
	CodePositionInvalid:          KindPositionInvalid,
	CodeInvalidEmojiID:           KindInvalidEmojiID,
	CodeInvalidArgument:          KindInvalidArgument,
	CodeNotEnoughFunds:           KindNotEnoughFunds,
	CodeValueNotFound:            KindValueNotFound,
	CodeDatabaseDataError:        KindDatabaseDataError,
	CodeFundsPending:             KindFundsPending,
	CodeTransactionNotFound:      KindTransactionNotFound,
	CodeContactNotFound:          KindContactNotFound,
	CodeValuesNotFound:           KindValuesNotFound,
	CodeInvalidPassphrase:        KindInvalidPassphrase,
	CodeSeedWordsInvalidData:     KindSeedWordsInvalidData,
	CodeSeedWordsVersionMismatch: KindSeedWordsVersionMismatch,
}

// KindOf returns the symbolic kind for an engine code.
func KindOf(code int32) Kind {
	if k, ok := kindByCode[code]; ok {
		return k
	}
	return KindUnknown
}

func (k Kind) String() string {
	switch k {
	case KindNullPointer:
		return "null pointer"
	case KindAllocation:
		return "allocation failed"
	case KindPositionInvalid:
		return "position invalid"
	case KindInvalidEmojiID:
		return "invalid emoji id"
	case KindInvalidArgument:
		return "invalid argument"
	case KindNotEnoughFunds:
		return "not enough funds"
	case KindValueNotFound:
		return "value not found"
	case KindDatabaseDataError:
		return "database data error"
	case KindFundsPending:
		return "funds pending"
	case KindTransactionNotFound:
		return "transaction not found"
	case KindContactNotFound:
		return "contact not found"
	case KindValuesNotFound:
		return "values not found"
	case KindInvalidPassphrase:
		return "invalid passphrase"
	case KindSeedWordsInvalidData:
		return "seed words invalid data"
	case KindSeedWordsVersionMismatch:
		return "seed words version mismatch"
	default:
		return "unknown"
	}
}

// Error is a failure reported by the native engine through its error slot.
//
// Two Errors are the same failure when their codes match; Domain and Op are
// diagnostics only. This lets call sites write
//
//	if errors.Is(err, cbwallet.ErrNotEnoughFunds) { ... }
//
// regardless of which native call produced err.
type Error struct {
	Code   int32
	Domain string
	// Op is the C function that reported the code, when known.
	Op string
}

// NewError builds an engine error for code.
func NewError(code int32) *Error {
	return &Error{Code: code, Domain: DomainEngine}
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	domain := e.Domain
	if domain == "" {
		domain = DomainEngine
	}
	if e.Op != "" {
		return fmt.Sprintf("%s: %s: %s (code %d)", domain, e.Op, e.Kind(), e.Code)
	}
	return fmt.Sprintf("%s: %s (code %d)", domain, e.Kind(), e.Code)
}

// Kind returns the symbolic meaning of the code.
func (e *Error) Kind() Kind {
	if e == nil {
		return KindUnknown
	}
	return KindOf(e.Code)
}

// Is reports whether target is an engine error with the same code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || e == nil || t == nil {
		return false
	}
	return e.Code == t.Code
}

// Equal reports whether e and other carry the same engine code.
func (e *Error) Equal(other *Error) bool {
	if e == nil || other == nil {
		return e == other
	}
	return e.Code == other.Code
}

// Well-known engine failures.
var (
	ErrNotEnoughFunds           = NewError(CodeNotEnoughFunds)
	ErrValueNotFound            = NewError(CodeValueNotFound)
	ErrDatabaseDataError        = NewError(CodeDatabaseDataError)
	ErrFundsPending             = NewError(CodeFundsPending)
	ErrTransactionNotFound      = NewError(CodeTransactionNotFound)
	ErrContactNotFound          = NewError(CodeContactNotFound)
	ErrValuesNotFound           = NewError(CodeValuesNotFound)
	ErrInvalidPassphrase        = NewError(CodeInvalidPassphrase)
	ErrSeedWordsInvalidData     = NewError(CodeSeedWordsInvalidData)
	ErrSeedWordsVersionMismatch = NewError(CodeSeedWordsVersionMismatch)
	ErrInvalidEmojiID           = NewError(CodeInvalidEmojiID)
	ErrPositionInvalid          = NewError(CodePositionInvalid)
)

// Translate maps an error slot value to an error. Zero is success and yields
// nil; every other value, named or not, yields an *Error carrying it.
func Translate(code int32) error {
	if code == 0 {
		return nil
	}
	return NewError(code)
}

// CodeOf returns the engine code carried by err, if any.
func CodeOf(err error) (int32, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Code, true
	}
	return 0, false
}

// IsRetryable reports whether err is an engine failure that can succeed when
// the same operation is attempted later. The binding itself never retries.
func IsRetryable(err error) bool {
	code, ok := CodeOf(err)
	if !ok {
		return false
	}
	switch code {
	case CodeFundsPending, CodeDatabaseDataError:
		return true
	default:
		return false
	}
}

// ErrInvalidInput matches every ValidationError.
var ErrInvalidInput = errors.New("invalid input")

// ValidationError reports malformed input rejected before any native call.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// Contract violations. These indicate a defect in the binding or in the way a
// wrapper is used, not an engine or user state.
var (
	// ErrOutParamNotWritten means a native call returned without writing its
	// error slot.
	ErrOutParamNotWritten = errors.New("error slot not written by native call")
	// ErrIndexOutOfRange means a collection index was not below the freshly
	// fetched native length.
	ErrIndexOutOfRange = errors.New("collection index out of range")
	// ErrNullHandle means the engine reported success but returned no handle.
	ErrNullHandle = errors.New("native call succeeded with a null handle")
	// ErrReleased means a wrapper was used after Close.
	ErrReleased = errors.New("native handle already released")
)

// ContractError wraps a contract violation with the operation that hit it.
type ContractError struct {
	Op  string
	Err error
}

func (e *ContractError) Error() string {
	return fmt.Sprintf("contract violation in %s: %v", e.Op, e.Err)
}

func (e *ContractError) Unwrap() error {
	return e.Err
}

// Library lifecycle errors.
var (
	ErrLibraryClosed = errors.New("cbwallet: library has been closed")
	ErrNilLibrary    = errors.New("cbwallet: nil library")
)
