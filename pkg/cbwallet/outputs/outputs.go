// Package outputs binds the engine's unblinded_output entities.
package outputs

import (
	"errors"

	"github.com/tidwall/gjson"

	"github.com/coinbase/cb-wallet-go/pkg/cbwallet"
	"github.com/coinbase/cb-wallet-go/pkg/cbwallet/abi"
	"github.com/coinbase/cb-wallet-go/pkg/cbwallet/collection"
	"github.com/coinbase/cb-wallet-go/pkg/cbwallet/internal/handle"
)

var (
	Kind     = &handle.Kind{Name: "unblinded_output", Destroy: abi.Engine.UnblindedOutputDestroy}
	ListKind = &handle.Kind{Name: "unblinded_outputs", Destroy: abi.Engine.UnblindedOutputsDestroy}
)

// UnblindedOutput is a spendable output whose value and blinding factor the
// wallet knows.
type UnblindedOutput struct {
	owner *handle.Owner
}

// FromHandle adopts an unblinded_output handle.
func FromHandle(lib *cbwallet.Library, raw abi.Handle) (*UnblindedOutput, error) {
	o, err := handle.FromRaw(lib, Kind, raw)
	if err != nil {
		return nil, err
	}
	return &UnblindedOutput{owner: o}, nil
}

// Value returns the output amount.
func (u *UnblindedOutput) Value() (uint64, error) {
	return handle.Call(u.owner, "unblinded_output_get_value", abi.Engine.UnblindedOutputGetValue)
}

// JSON returns the engine's JSON rendering of the output.
func (u *UnblindedOutput) JSON() (string, error) {
	return handle.CallString(u.owner, "unblinded_output_to_json", abi.Engine.UnblindedOutputToJSON)
}

// Details are the output fields carried only in the JSON rendering.
type Details struct {
	Value      uint64
	Maturity   uint64
	OutputType string
	Commitment string
}

// Details parses the fields of JSON the binding exposes.
func (u *UnblindedOutput) Details() (Details, error) {
	raw, err := u.JSON()
	if err != nil {
		return Details{}, err
	}
	return ParseDetails(raw)
}

// ParseDetails extracts Details from an output JSON document.
func ParseDetails(raw string) (Details, error) {
	if !gjson.Valid(raw) {
		return Details{}, errors.New("outputs: engine returned malformed output JSON")
	}
	doc := gjson.Parse(raw)
	value := doc.Get("value")
	if !value.Exists() {
		return Details{}, errors.New("outputs: output JSON has no value")
	}
	return Details{
		Value:      value.Uint(),
		Maturity:   doc.Get("features.maturity").Uint(),
		OutputType: doc.Get("features.output_type").String(),
		Commitment: doc.Get("commitment").String(),
	}, nil
}

// Close releases the native output.
func (u *UnblindedOutput) Close() error {
	if u == nil {
		return nil
	}
	return u.owner.Close()
}

// List is a snapshot of unblinded outputs.
type List = collection.List[*UnblindedOutput]

var accessors = collection.Handles("unblinded_outputs", Kind,
	abi.Engine.UnblindedOutputsGetLength, abi.Engine.UnblindedOutputsGetAt,
	func(o *handle.Owner) *UnblindedOutput { return &UnblindedOutput{owner: o} })

// AdoptList wraps an owner of kind ListKind.
func AdoptList(o *handle.Owner) *List {
	return collection.New(o, accessors)
}

// Total sums the values of every output in l.
func Total(l *List) (uint64, error) {
	var total uint64
	for out, err := range l.Seq() {
		if err != nil {
			return 0, err
		}
		v, err := out.Value()
		_ = out.Close()
		if err != nil {
			return 0, err
		}
		total += v
	}
	return total, nil
}
