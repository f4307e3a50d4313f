// Package wallettest opens libraries backed by the fake engine for tests and
// asserts handle accounting when the test ends.
package wallettest

import (
	"encoding/hex"
	"testing"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/schnorr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coinbase/cb-wallet-go/pkg/cbwallet"
	"github.com/coinbase/cb-wallet-go/pkg/cbwallet/fakeengine"
	"github.com/coinbase/cb-wallet-go/pkg/cbwallet/logging"
	"github.com/coinbase/cb-wallet-go/pkg/cbwallet/metrics"
)

// Open returns a library on a fresh fake engine. See OpenEngine.
func Open(t testing.TB, opts ...cbwallet.Option) (*cbwallet.Library, *fakeengine.Engine) {
	t.Helper()
	fake := fakeengine.New()
	return OpenEngine(t, fake, opts...), fake
}

// OpenEngine returns a library on fake. See OpenConfig.
func OpenEngine(t testing.TB, fake *fakeengine.Engine, opts ...cbwallet.Option) *cbwallet.Library {
	t.Helper()
	return OpenConfig(t, fake, Config(), opts...)
}

// Config is the configuration Open and OpenEngine use.
func Config() cbwallet.Config {
	return cbwallet.Config{DataDir: "wallet", Network: "localnet"}
}

// OpenConfig returns a library on fake opened with cfg. When the test
// finishes the fake must report no leaked handles and no ABI violations, so
// tests close every wrapper they create before returning.
func OpenConfig(t testing.TB, fake *fakeengine.Engine, cfg cbwallet.Config, opts ...cbwallet.Option) *cbwallet.Library {
	t.Helper()
	all := []cbwallet.Option{
		cbwallet.WithEngine(fake),
		cbwallet.WithLogger(logging.Nop()),
		cbwallet.WithMetrics(metrics.NewCollector("test")),
	}
	lib, err := cbwallet.Open(cfg, append(all, opts...)...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = lib.Close() })
	t.Cleanup(func() {
		assert.NoError(t, fake.Check(), "native handle accounting")
	})
	return lib
}

// Secret returns a deterministic 32 byte secret derived from seed.
func Secret(seed byte) []byte {
	b := make([]byte, 32)
	for i := range b {
		b[i] = seed + byte(i)
	}
	if b[0] == 0 {
		b[0] = 1
	}
	return b
}

// PublicKey returns the serialized public key of Secret(seed), computed
// independently of any engine.
func PublicKey(seed byte) []byte {
	sk, _ := btcec.PrivKeyFromBytes(Secret(seed))
	return schnorr.SerializePubKey(sk.PubKey())
}

// PublicKeyHex is PublicKey in lowercase hex.
func PublicKeyHex(seed byte) string {
	return hex.EncodeToString(PublicKey(seed))
}
