package fakeengine

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/coinbase/cb-wallet-go/pkg/cbwallet/abi"
)

// Entity kinds tracked by the handle table.
const (
	KindString           = "string"
	KindByteVector       = "byte_vector"
	KindPublicKey        = "public_key"
	KindPrivateKey       = "private_key"
	KindContact          = "contact"
	KindContacts         = "contacts"
	KindPendingOutbound  = "pending_outbound_transaction"
	KindPendingOutbounds = "pending_outbound_transactions"
	KindPendingInbound   = "pending_inbound_transaction"
	KindPendingInbounds  = "pending_inbound_transactions"
	KindCompleted        = "completed_transaction"
	KindCompleteds       = "completed_transactions"
	KindUnblindedOutput  = "unblinded_output"
	KindUnblindedOutputs = "unblinded_outputs"
	KindBalance          = "balance"
	KindSeedWords        = "seed_words"
	KindWallet           = "wallet"
)

// Engine error codes produced by the fake. They mirror the native table.
const (
	codeNullPointer              int32 = 1
	codePositionInvalid          int32 = 3
	codeInvalidEmojiID           int32 = 6
	codeInvalidArgument          int32 = 7
	codeNotEnoughFunds           int32 = 101
	codeValueNotFound            int32 = 108
	codeFundsPending             int32 = 115
	codeTransactionNotFound      int32 = 204
	codeContactNotFound          int32 = 401
	codeInvalidPassphrase        int32 = 428
	codeSeedWordsInvalidData     int32 = 429
	codeSeedWordsVersionMismatch int32 = 430
)

// GarbageHandle is what a fault with Garbage set returns in place of a
// handle. It is never allocated, so destroying or reading it is recorded as
// a violation.
const GarbageHandle abi.Handle = 0xdead0000

const firstHandle abi.Handle = 0x1000

// Fault makes a C function misbehave.
type Fault struct {
	// Code is written into the error slot.
	Code int32
	// Garbage returns a non-null-looking result alongside Code.
	Garbage bool
	// SkipWrite leaves the error slot untouched and returns garbage.
	SkipWrite bool
	// Skip lets the first Skip calls through before the fault fires.
	Skip int
	// Times limits how often the fault fires. Zero means every call.
	Times int
}

// ViolationKind classifies a misuse of the ABI observed by the fake.
type ViolationKind string

const (
	DoubleDestroy   ViolationKind = "double destroy"
	UnknownHandle   ViolationKind = "unknown handle"
	WrongKind       ViolationKind = "wrong kind"
	UseAfterDestroy ViolationKind = "use after destroy"
	SlotNotSentinel ViolationKind = "error slot not initialised to -1"
	NilSlot         ViolationKind = "nil error slot"
)

// Violation is one ABI misuse.
type Violation struct {
	Kind     ViolationKind
	Function string
	Handle   abi.Handle
	Detail   string
}

func (v Violation) String() string {
	if v.Detail != "" {
		return fmt.Sprintf("%s: %s on handle %d (%s)", v.Function, v.Kind, uint64(v.Handle), v.Detail)
	}
	return fmt.Sprintf("%s: %s on handle %d", v.Function, v.Kind, uint64(v.Handle))
}

type object struct {
	kind      string
	value     any
	destroyed bool
}

type armedFault struct {
	Fault
	seen  int
	fired int
}

// Engine is an in-memory abi.Engine that accounts for every handle it hands
// out. It is safe for concurrent use.
type Engine struct {
	mu sync.Mutex

	next      abi.Handle
	objects   map[abi.Handle]*object
	created   map[string]int
	destroyed map[string]int
	calls     map[string]int
	faults    map[string]*armedFault

	violations []Violation

	wallets  map[string]*walletState
	nextTxID uint64
	now      func() time.Time
}

var _ abi.Engine = (*Engine)(nil)

// Option configures New.
type Option func(*Engine)

// WithClock sets the time source used for transaction timestamps.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// New returns an empty fake engine.
func New(opts ...Option) *Engine {
	e := &Engine{
		next:      firstHandle,
		objects:   make(map[abi.Handle]*object),
		created:   make(map[string]int),
		destroyed: make(map[string]int),
		calls:     make(map[string]int),
		faults:    make(map[string]*armedFault),
		wallets:   make(map[string]*walletState),
		nextTxID:  1000,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Fail arms f on the C function fn, replacing any fault already armed there.
func (e *Engine) Fail(fn string, f Fault) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.faults[fn] = &armedFault{Fault: f}
}

// Heal disarms every fault.
func (e *Engine) Heal() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.faults = make(map[string]*armedFault)
}

// Calls returns how often the C function fn was called.
func (e *Engine) Calls(fn string) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.calls[fn]
}

// Created returns how many handles of kind were allocated.
func (e *Engine) Created(kind string) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.created[kind]
}

// Destroyed returns how many handles of kind were destroyed.
func (e *Engine) Destroyed(kind string) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.destroyed[kind]
}

// Live returns the handles allocated and not yet destroyed, by kind.
func (e *Engine) Live() map[string]int {
	e.mu.Lock()
	defer e.mu.Unlock()
	live := make(map[string]int)
	for _, o := range e.objects {
		if !o.destroyed {
			live[o.kind]++
		}
	}
	return live
}

// LiveCount returns the number of handles not yet destroyed.
func (e *Engine) LiveCount() int {
	n := 0
	for _, c := range e.Live() {
		n += c
	}
	return n
}

// Violations returns every ABI misuse recorded so far.
func (e *Engine) Violations() []Violation {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]Violation(nil), e.violations...)
}

// Check reports leaked handles and violations. It returns nil when every
// handle was destroyed exactly once and nothing was misused.
func (e *Engine) Check() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	var errs []error
	handles := make([]abi.Handle, 0, len(e.objects))
	for h, o := range e.objects {
		if !o.destroyed {
			handles = append(handles, h)
		}
	}
	sort.Slice(handles, func(i, j int) bool { return handles[i] < handles[j] })
	for _, h := range handles {
		errs = append(errs, fmt.Errorf("leaked %s handle %d", e.objects[h].kind, uint64(h)))
	}
	for _, v := range e.violations {
		errs = append(errs, errors.New(v.String()))
	}
	return errors.Join(errs...)
}

// ===== internals, all called with e.mu held =====

func (e *Engine) alloc(kind string, value any) abi.Handle {
	h := e.next
	e.next += 0x10
	e.objects[h] = &object{kind: kind, value: value}
	e.created[kind]++
	return h
}

func (e *Engine) violate(kind ViolationKind, fn string, h abi.Handle, detail string) {
	e.violations = append(e.violations, Violation{Kind: kind, Function: fn, Handle: h, Detail: detail})
}

// lookup resolves h as an argument of fn. Any problem is recorded and turned
// into the null pointer code, which is what the native engine reports for a
// pointer it cannot use.
func (e *Engine) lookup(fn string, h abi.Handle, kind string) (*object, int32) {
	if h == abi.Null {
		return nil, codeNullPointer
	}
	o, ok := e.objects[h]
	if !ok {
		e.violate(UnknownHandle, fn, h, "")
		return nil, codeNullPointer
	}
	if o.destroyed {
		e.violate(UseAfterDestroy, fn, h, o.kind)
		return nil, codeNullPointer
	}
	if o.kind != kind {
		e.violate(WrongKind, fn, h, fmt.Sprintf("want %s, got %s", kind, o.kind))
		return nil, codeNullPointer
	}
	return o, 0
}

func get[V any](e *Engine, fn string, h abi.Handle, kind string) (V, int32) {
	var zero V
	o, code := e.lookup(fn, h, kind)
	if code != 0 {
		return zero, code
	}
	return o.value.(V), 0
}

func (e *Engine) fault(fn string) *armedFault {
	f, ok := e.faults[fn]
	if !ok {
		return nil
	}
	f.seen++
	if f.seen <= f.Skip {
		return nil
	}
	if f.Times > 0 && f.fired >= f.Times {
		return nil
	}
	f.fired++
	return f
}

// run executes one fallible C function: records the call, checks the slot
// discipline, applies an armed fault and otherwise writes body's code.
func run[T any](e *Engine, fn string, errOut *int32, body func() (T, int32)) T {
	e.mu.Lock()
	defer e.mu.Unlock()

	var zero T
	e.calls[fn]++
	if errOut == nil {
		e.violate(NilSlot, fn, abi.Null, "")
		return zero
	}
	if *errOut != abi.CodeNotSet {
		e.violate(SlotNotSentinel, fn, abi.Null, fmt.Sprintf("slot was %d", *errOut))
	}

	if f := e.fault(fn); f != nil {
		if f.SkipWrite {
			return garbage[T]()
		}
		*errOut = f.Code
		if f.Garbage {
			return garbage[T]()
		}
		return zero
	}

	v, code := body()
	*errOut = code
	if code != 0 {
		return zero
	}
	return v
}

func (e *Engine) destroy(fn string, h abi.Handle, kind string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.calls[fn]++
	if h == abi.Null {
		return
	}
	o, ok := e.objects[h]
	switch {
	case !ok:
		e.violate(UnknownHandle, fn, h, "")
	case o.destroyed:
		e.violate(DoubleDestroy, fn, h, o.kind)
	case o.kind != kind:
		e.violate(WrongKind, fn, h, fmt.Sprintf("want %s, got %s", kind, o.kind))
	default:
		o.destroyed = true
		e.destroyed[kind]++
	}
}

func garbage[T any]() T {
	var v T
	switch p := any(&v).(type) {
	case *abi.Handle:
		*p = GarbageHandle
	case *uint64:
		*p = math.MaxUint64
	case *uint32:
		*p = math.MaxUint32
	case *uint8:
		*p = math.MaxUint8
	case *int32:
		*p = math.MaxInt32
	case *bool:
		*p = true
	}
	return v
}

// ===== strings =====

func (e *Engine) newString(s string) abi.Handle {
	return e.alloc(KindString, s)
}

func (e *Engine) CopyString(s abi.Handle) string {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.calls["copy_string"]++
	v, code := get[string](e, "copy_string", s, KindString)
	if code != 0 {
		return ""
	}
	return v
}

func (e *Engine) StringDestroy(s abi.Handle) {
	e.destroy("string_destroy", s, KindString)
}
