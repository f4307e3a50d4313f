package logging_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/coinbase/cb-wallet-go/pkg/cbwallet/logging"
)

func TestSlogRedaction(t *testing.T) {
	var buf bytes.Buffer
	l := logging.New(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))

	l.With("component", "wallet").Info(context.Background(), "wallet recovered", logging.Redacted("seed_words"))
	out := buf.String()
	assert.Contains(t, out, "component=wallet")
	assert.Contains(t, out, `seed_words=`+logging.Placeholder())
}

func TestZapFields(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	l := logging.NewZap(zap.New(core)).With("kind", "public_key")

	l.Debug(context.Background(), "native call failed", "function", "public_key_from_hex", "code", int32(7))
	l.Warn(context.Background(), "secret", logging.Redacted("private_key"))

	entries := logs.AllUntimed()
	require.Len(t, entries, 2)
	fields := entries[0].ContextMap()
	assert.Equal(t, "public_key", fields["kind"])
	assert.Equal(t, "public_key_from_hex", fields["function"])
	assert.Equal(t, logging.Placeholder(), entries[1].ContextMap()["private_key"])
}

func TestFromConfig(t *testing.T) {
	l, err := logging.FromConfig("warn", true)
	require.NoError(t, err)
	require.NotNil(t, l)

	_, err = logging.FromConfig("chatty", false)
	require.Error(t, err)
}

func TestNop(t *testing.T) {
	l := logging.Nop()
	l.Error(context.Background(), "dropped")
	assert.NotNil(t, l.With("a", 1))
}

func TestSlogScrubsSecretKeys(t *testing.T) {
	var buf bytes.Buffer
	l := logging.New(slog.New(slog.NewTextHandler(&buf, nil)))

	l.With("passphrase", "hunter2").Info(context.Background(), "imported key",
		"private_key", "deadbeef",
		slog.String("seed_words", "abandon ability able"),
		"network", "localnet",
	)
	out := buf.String()
	assert.NotContains(t, out, "hunter2")
	assert.NotContains(t, out, "deadbeef")
	assert.NotContains(t, out, "abandon")
	assert.Contains(t, out, "private_key="+logging.Placeholder())
	assert.Contains(t, out, "network=localnet")
}

func TestZapScrubsSecretKeys(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	l := logging.NewZap(zap.New(core))

	args := []any{"secret_key", "deadbeef", slog.String("seed_words", "abandon ability able")}
	l.Info(context.Background(), "imported key", args...)
	assert.Equal(t, "deadbeef", args[1], "caller args must not be modified")

	entries := logs.AllUntimed()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, logging.Placeholder(), fields["secret_key"])
	assert.Equal(t, logging.Placeholder(), fields["seed_words"])
}

func TestDomainAttributes(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	l := logging.NewZap(zap.New(core))

	l.Warn(context.Background(), "native call failed",
		logging.Function("public_key_from_hex"),
		logging.Code(105),
		logging.ErrorKind("invalid argument"),
		logging.HandleKind("public_key"),
		logging.Live(3),
		logging.RedactedBytes("private_key", make([]byte, 32)),
	)

	entries := logs.AllUntimed()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "public_key_from_hex", fields[logging.KeyFunction])
	assert.EqualValues(t, 105, fields[logging.KeyCode])
	assert.Equal(t, "invalid argument", fields[logging.KeyErrorKind])
	assert.Equal(t, "public_key", fields[logging.KeyHandleKind])
	assert.EqualValues(t, 3, fields[logging.KeyLive])
	assert.Equal(t, logging.Placeholder()+" (32 bytes)", fields["private_key"])
}
