// Package cbwallet binds the native wallet engine's handle-based C ABI.
//
// Every engine object crosses the boundary as an opaque handle. The binding
// wraps each handle in exactly one owner that destroys it once, reads every
// error slot before trusting a result and turns engine codes into typed
// errors:
//
//	lib, err := cbwallet.Open(cfg)
//	if err != nil { ... }
//	defer lib.Close()
//
//	pk, err := keys.PublicKeyFromHex(lib, hexKey)
//	if err != nil { ... }
//	defer pk.Close()
//
//	if _, err := w.Send(wallet.Payment{Destination: pk, Amount: 1000}); errors.Is(err, cbwallet.ErrNotEnoughFunds) {
//		...
//	}
//
// Without cgo and the walletffi build tag, Open fails with ErrNotBuilt unless
// an engine is supplied through WithEngine (see package fakeengine).
package cbwallet
