package cbwallet_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coinbase/cb-wallet-go/pkg/cbwallet"
	"github.com/coinbase/cb-wallet-go/pkg/cbwallet/fakeengine"
	"github.com/coinbase/cb-wallet-go/pkg/cbwallet/logging"
)

func TestOpenNative(t *testing.T) {
	lib, err := cbwallet.Open(cbwallet.Config{})
	if errors.Is(err, cbwallet.ErrNotBuilt) {
		t.Skip("native engine not linked")
	}
	require.NoError(t, err)
	require.NoError(t, lib.Close())
}

func TestOpenRejectsInvalidConfig(t *testing.T) {
	_, err := cbwallet.Open(cbwallet.Config{Network: "nowhere"}, cbwallet.WithEngine(fakeengine.New()))
	assert.ErrorIs(t, err, cbwallet.ErrInvalidInput)
}

func TestOpenFakeEngineRequiresInjection(t *testing.T) {
	_, err := cbwallet.Open(cbwallet.Config{Engine: cbwallet.EngineFake})
	assert.ErrorIs(t, err, cbwallet.ErrInvalidInput)
	var ve *cbwallet.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "engine", ve.Field)

	lib, err := cbwallet.Open(cbwallet.Config{Engine: cbwallet.EngineFake}, cbwallet.WithEngine(fakeengine.New()))
	require.NoError(t, err)
	require.NoError(t, lib.Close())
}

func TestZeroizeFollowsConfig(t *testing.T) {
	off, err := cbwallet.Open(cbwallet.Config{}, cbwallet.WithEngine(fakeengine.New()), cbwallet.WithLogger(logging.Nop()))
	require.NoError(t, err)
	defer off.Close()
	buf := []byte{1, 2, 3}
	off.Zeroize(buf)
	assert.Equal(t, []byte{1, 2, 3}, buf)

	on, err := cbwallet.Open(cbwallet.Config{EnableZeroization: true}, cbwallet.WithEngine(fakeengine.New()), cbwallet.WithLogger(logging.Nop()))
	require.NoError(t, err)
	defer on.Close()
	on.Zeroize(buf)
	assert.Equal(t, []byte{0, 0, 0}, buf)

	var none *cbwallet.Library
	none.Zeroize(buf)
}

func TestOpenRejectsInvalidLogLevel(t *testing.T) {
	_, err := cbwallet.Open(cbwallet.Config{Log: cbwallet.LogConfig{Level: "loud"}}, cbwallet.WithEngine(fakeengine.New()))
	require.Error(t, err)
}

func TestOpenBuildsMetricsFromConfig(t *testing.T) {
	lib, err := cbwallet.Open(cbwallet.Config{Metrics: cbwallet.MetricsConfig{Enabled: true}},
		cbwallet.WithEngine(fakeengine.New()), cbwallet.WithLogger(logging.Nop()))
	require.NoError(t, err)
	defer lib.Close()
	assert.NotNil(t, lib.Metrics())

	lib2, err := cbwallet.Open(cbwallet.Config{}, cbwallet.WithEngine(fakeengine.New()))
	require.NoError(t, err)
	defer lib2.Close()
	assert.Nil(t, lib2.Metrics())
	assert.NotNil(t, lib2.Logger())
}

func TestLibraryClose(t *testing.T) {
	lib, err := cbwallet.Open(cbwallet.Config{}, cbwallet.WithEngine(fakeengine.New()), cbwallet.WithLogger(logging.Nop()))
	require.NoError(t, err)
	require.NoError(t, lib.Ready())

	require.NoError(t, lib.Close())
	assert.ErrorIs(t, lib.Ready(), cbwallet.ErrLibraryClosed)
	assert.ErrorIs(t, lib.Close(), cbwallet.ErrLibraryClosed)
}

func TestNilLibrary(t *testing.T) {
	var lib *cbwallet.Library
	assert.ErrorIs(t, lib.Ready(), cbwallet.ErrNilLibrary)
	assert.Zero(t, lib.LiveHandles())
	assert.NoError(t, lib.Close())
}

func TestVersion(t *testing.T) {
	assert.Equal(t, cbwallet.Version, cbwallet.WrapperVersion())
	assert.NotEmpty(t, cbwallet.UpstreamVersion())
}

func TestZeroizeBytes(t *testing.T) {
	buf := []byte{1, 2, 3, 4}
	cbwallet.ZeroizeBytes(buf)
	assert.Equal(t, []byte{0, 0, 0, 0}, buf)
	cbwallet.ZeroizeBytes(nil)
}
