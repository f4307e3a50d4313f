package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/coinbase/cb-wallet-go/pkg/cbwallet"
	"github.com/coinbase/cb-wallet-go/pkg/cbwallet/fakeengine"
)

var (
	configPath string
	engineName string
	network    string
)

var rootCmd = &cobra.Command{
	Use:           "cbwallet-go",
	Short:         "Inspect keys and wallets through the native wallet engine",
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML config file")
	rootCmd.PersistentFlags().StringVar(&engineName, "engine", "", "engine to use: native or fake (overrides config)")
	rootCmd.PersistentFlags().StringVar(&network, "network", "", "network (overrides config)")
}

func loadConfig() (cbwallet.Config, error) {
	var cfg cbwallet.Config
	if configPath != "" {
		c, err := cbwallet.LoadConfig(configPath)
		if err != nil {
			return cbwallet.Config{}, err
		}
		cfg = c
	}
	if engineName != "" {
		cfg.Engine = engineName
	}
	if network != "" {
		cfg.Network = network
	}
	if cfg.Network == "" {
		cfg.Network = "localnet"
	}
	if cfg.DataDir == "" {
		cfg.DataDir = "wallet"
	}
	return cfg, cfg.Validate()
}

// openLibrary opens the bindings on the engine cfg selects. The fake engine
// keeps all state in process memory.
func openLibrary(opts ...cbwallet.Option) (*cbwallet.Library, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if cfg.EngineName() == cbwallet.EngineFake {
		opts = append([]cbwallet.Option{cbwallet.WithEngine(fakeengine.New())}, opts...)
	}
	lib, err := cbwallet.Open(cfg, opts...)
	if errors.Is(err, cbwallet.ErrNotBuilt) {
		return nil, fmt.Errorf("%w (rebuild with -tags walletffi or pass --engine fake)", err)
	}
	return lib, err
}

func closeLibrary(cmd *cobra.Command, lib *cbwallet.Library) {
	if err := lib.Close(); err != nil {
		cmd.PrintErrf("close: %v\n", err)
	}
}
