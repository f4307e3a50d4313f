package fakeengine

import (
	"encoding/hex"
	"encoding/json"

	"github.com/coinbase/cb-wallet-go/pkg/cbwallet/abi"
)

// Output types reported in the output JSON.
const (
	OutputStandard = "Standard"
	OutputCoinbase = "Coinbase"
)

type output struct {
	value      uint64
	maturity   uint64
	outputType string
	commitment []byte
}

type outputJSON struct {
	Value      uint64         `json:"value"`
	Features   outputFeatures `json:"features"`
	Commitment string         `json:"commitment"`
	Script     string         `json:"script"`
}

type outputFeatures struct {
	Version    uint8  `json:"version"`
	OutputType string `json:"output_type"`
	Maturity   uint64 `json:"maturity"`
}

func (o output) json() string {
	b, err := json.Marshal(outputJSON{
		Value: o.value,
		Features: outputFeatures{
			OutputType: o.outputType,
			Maturity:   o.maturity,
		},
		Commitment: hex.EncodeToString(o.commitment),
		Script:     "Nop",
	})
	if err != nil {
		return "{}"
	}
	return string(b)
}

type balanceValue struct {
	available       uint64
	pendingIncoming uint64
	pendingOutgoing uint64
	timeLocked      uint64
}

// ===== unblinded_output =====

func (e *Engine) UnblindedOutputGetValue(out abi.Handle, errOut *int32) uint64 {
	return scalar(e, "unblinded_output_get_value", out, KindUnblindedOutput, errOut,
		func(o output) uint64 { return o.value })
}

func (e *Engine) UnblindedOutputToJSON(out abi.Handle, errOut *int32) abi.Handle {
	return stringField(e, "unblinded_output_to_json", out, KindUnblindedOutput, errOut,
		func(o output) string { return o.json() })
}

func (e *Engine) UnblindedOutputDestroy(out abi.Handle) {
	e.destroy("unblinded_output_destroy", out, KindUnblindedOutput)
}

func (e *Engine) UnblindedOutputsGetLength(outs abi.Handle, errOut *int32) uint32 {
	return length[output](e, "unblinded_outputs_get_length", outs, KindUnblindedOutputs, errOut)
}

func (e *Engine) UnblindedOutputsGetAt(outs abi.Handle, index uint32, errOut *int32) abi.Handle {
	return at[output](e, "unblinded_outputs_get_at", outs, KindUnblindedOutputs, KindUnblindedOutput, index, errOut)
}

func (e *Engine) UnblindedOutputsDestroy(outs abi.Handle) {
	e.destroy("unblinded_outputs_destroy", outs, KindUnblindedOutputs)
}

// ===== balance =====

func (e *Engine) BalanceGetAvailable(b abi.Handle, errOut *int32) uint64 {
	return scalar(e, "balance_get_available", b, KindBalance, errOut,
		func(v balanceValue) uint64 { return v.available })
}

func (e *Engine) BalanceGetPendingIncoming(b abi.Handle, errOut *int32) uint64 {
	return scalar(e, "balance_get_pending_incoming", b, KindBalance, errOut,
		func(v balanceValue) uint64 { return v.pendingIncoming })
}

func (e *Engine) BalanceGetPendingOutgoing(b abi.Handle, errOut *int32) uint64 {
	return scalar(e, "balance_get_pending_outgoing", b, KindBalance, errOut,
		func(v balanceValue) uint64 { return v.pendingOutgoing })
}

func (e *Engine) BalanceGetTimeLocked(b abi.Handle, errOut *int32) uint64 {
	return scalar(e, "balance_get_time_locked", b, KindBalance, errOut,
		func(v balanceValue) uint64 { return v.timeLocked })
}

func (e *Engine) BalanceDestroy(b abi.Handle) {
	e.destroy("balance_destroy", b, KindBalance)
}
