package cbwallet_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coinbase/cb-wallet-go/pkg/cbwallet"
)

func TestParseConfig(t *testing.T) {
	cfg, err := cbwallet.ParseConfig([]byte(`
engine: fake
data_dir: /var/lib/wallet
network: esmeralda
log:
  level: debug
  development: true
metrics:
  enabled: true
  namespace: wallet
enable_zeroization: true
`))
	require.NoError(t, err)
	assert.Equal(t, cbwallet.Config{
		Engine:            cbwallet.EngineFake,
		DataDir:           "/var/lib/wallet",
		Network:           "esmeralda",
		Log:               cbwallet.LogConfig{Level: "debug", Development: true},
		Metrics:           cbwallet.MetricsConfig{Enabled: true, Namespace: "wallet"},
		EnableZeroization: true,
	}, cfg)
}

func TestParseEmptyConfig(t *testing.T) {
	cfg, err := cbwallet.ParseConfig(nil)
	require.NoError(t, err)
	assert.Equal(t, cbwallet.Config{}, cfg)
	assert.Equal(t, cbwallet.EngineNative, cfg.EngineName())
}

func TestParseConfigRejects(t *testing.T) {
	cases := map[string]string{
		"unknown key":     "enigne: fake\n",
		"unknown engine":  "engine: remote\n",
		"unknown network": "network: testnet\n",
		"bad yaml":        "engine: [\n",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := cbwallet.ParseConfig([]byte(doc))
			require.Error(t, err)
		})
	}

	_, err := cbwallet.ParseConfig([]byte("network: testnet\n"))
	assert.ErrorIs(t, err, cbwallet.ErrInvalidInput)
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wallet.yaml")
	require.NoError(t, os.WriteFile(path, []byte("network: localnet\n"), 0o600))

	cfg, err := cbwallet.LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "localnet", cfg.Network)

	_, err = cbwallet.LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
