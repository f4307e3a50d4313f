package cbwallet

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Engine selectors accepted in Config.Engine.
const (
	EngineNative = "native"
	EngineFake   = "fake"
)

var knownNetworks = map[string]bool{
	"mainnet":   true,
	"stagenet":  true,
	"nextnet":   true,
	"esmeralda": true,
	"localnet":  true,
}

// Config holds the knobs for opening the bindings. The zero value is usable:
// it selects the native engine, slog logging and no metrics.
type Config struct {
	// Engine selects the abi.Engine implementation. Open links the native
	// engine itself; "fake" requires the caller to supply one with WithEngine.
	Engine string `yaml:"engine"`

	// DataDir is the default wallet data directory.
	DataDir string `yaml:"data_dir"`

	// Network is the default network wallets are created on.
	Network string `yaml:"network"`

	Log     LogConfig     `yaml:"log"`
	Metrics MetricsConfig `yaml:"metrics"`

	// EnableZeroization makes constructors that take secret key bytes wipe
	// the caller's slice once the engine has been handed its own copy.
	EnableZeroization bool `yaml:"enable_zeroization"`
}

// LogConfig selects the zap logger built by Open. An empty Level keeps the
// slog default logger.
type LogConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

// MetricsConfig enables the Prometheus collector.
type MetricsConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Namespace string `yaml:"namespace"`
}

// LoadConfig reads a YAML config file.
func LoadConfig(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("cbwallet: open config: %w", err)
	}
	defer f.Close()
	return DecodeConfig(f)
}

// ParseConfig decodes YAML config bytes.
func ParseConfig(data []byte) (Config, error) {
	return DecodeConfig(bytes.NewReader(data))
}

// DecodeConfig decodes YAML from r. Unknown keys are rejected and an empty
// document yields the zero Config.
func DecodeConfig(r io.Reader) (Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("cbwallet: decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks field values that can be checked without the engine.
func (c Config) Validate() error {
	switch c.Engine {
	case "", EngineNative, EngineFake:
	default:
		return &ValidationError{Field: "engine", Reason: fmt.Sprintf("unknown engine %q", c.Engine)}
	}
	if c.Network != "" && !knownNetworks[c.Network] {
		return &ValidationError{Field: "network", Reason: fmt.Sprintf("unknown network %q", c.Network)}
	}
	return nil
}

// EngineName returns the selected engine, defaulting to native.
func (c Config) EngineName() string {
	if c.Engine == "" {
		return EngineNative
	}
	return c.Engine
}
