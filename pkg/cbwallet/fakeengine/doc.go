// Package fakeengine is an instrumented in-memory implementation of
// abi.Engine.
//
// It models enough of the native wallet engine for the bindings to be
// exercised end to end without cgo: secp256k1 keys (btcec), emoji ids, seed
// phrases, contacts, a key/value store and a small UTXO ledger with fees,
// pending and completed transactions.
//
// Every handle it returns is tracked. Tests assert the lifetime invariants
// with Check:
//
//	fake := fakeengine.New()
//	lib, _ := cbwallet.Open(cbwallet.Config{}, cbwallet.WithEngine(fake))
//	... exercise bindings, Close everything ...
//	require.NoError(t, fake.Check()) // no leaks, no double destroy, no use after destroy
//
// Fail arms a fault on one C function to drive error paths:
//
//	fake.Fail("public_key_get_bytes", fakeengine.Fault{Code: 101, Garbage: true})
package fakeengine
