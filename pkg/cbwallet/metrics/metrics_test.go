package metrics_test

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coinbase/cb-wallet-go/pkg/cbwallet/metrics"
)

func TestHandleLifecycleCounters(t *testing.T) {
	c := metrics.NewCollector("test")

	c.HandleCreated("public_key")
	c.HandleCreated("public_key")
	c.HandleDestroyed("public_key")
	c.HandleFinalized("public_key")

	n, err := testutil.GatherAndCount(c.Registry(), "test_handle_created_total")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	expected := `
# HELP test_handle_live Native handles currently owned by a wrapper
# TYPE test_handle_live gauge
test_handle_live{kind="public_key"} 1
`
	require.NoError(t, testutil.GatherAndCompare(c.Registry(), strings.NewReader(expected), "test_handle_live"))
}

func TestNativeErrorsOnlyCountFailures(t *testing.T) {
	c := metrics.NewCollector("test")

	c.NativeCall("wallet_send_transaction", 0, "")
	c.NativeCall("wallet_send_transaction", 101, "not enough funds")

	expected := `
# HELP test_native_errors_total Native calls that reported a non-zero error code
# TYPE test_native_errors_total counter
test_native_errors_total{code="101",function="wallet_send_transaction",kind="not enough funds"} 1
`
	require.NoError(t, testutil.GatherAndCompare(c.Registry(), strings.NewReader(expected), "test_native_errors_total"))
}

func TestNilCollectorIsNoop(t *testing.T) {
	var c *metrics.Collector
	c.HandleCreated("x")
	c.HandleDestroyed("x")
	c.HandleFinalized("x")
	c.NativeCall("f", 1, "k")
	assert.Nil(t, c.Registry())
}

func TestHandlerServesExposition(t *testing.T) {
	c := metrics.NewCollector("")
	c.HandleCreated("contact")

	srv := httptest.NewServer(c.Handler())
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `cbwallet_handle_live{kind="contact"} 1`)
}
