package main

import (
	"errors"
	"net/http"

	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"

	"github.com/coinbase/cb-wallet-go/pkg/cbwallet"
	"github.com/coinbase/cb-wallet-go/pkg/cbwallet/keys"
	"github.com/coinbase/cb-wallet-go/pkg/cbwallet/metrics"
)

var (
	statsRounds int
	statsListen string
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Exercise the engine and print binding metrics",
	Long: "stats runs key generation round trips through the engine and prints the handle and native call " +
		"metrics in the Prometheus text format. With --listen it serves them instead.",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		collector := metrics.NewCollector("")
		lib, err := openLibrary(cbwallet.WithMetrics(collector))
		if err != nil {
			return err
		}
		defer closeLibrary(cmd, lib)

		for i := 0; i < statsRounds; i++ {
			sk, err := keys.GeneratePrivateKey(lib)
			if err != nil {
				return err
			}
			pk, err := sk.PublicKey()
			if err == nil {
				_, err = pk.EmojiID()
				_ = pk.Close()
			}
			_ = sk.Close()
			if err != nil {
				return err
			}
		}
		// one failing call so the error series is populated
		if _, err := keys.PublicKeyFromEmojiID(lib, "not an emoji id"); err == nil {
			return errors.New("engine accepted a malformed emoji id")
		}

		if statsListen != "" {
			cmd.Printf("serving metrics on %s\n", statsListen)
			return http.ListenAndServe(statsListen, collector.Handler())
		}

		families, err := collector.Registry().Gather()
		if err != nil {
			return err
		}
		enc := expfmt.NewEncoder(cmd.OutOrStdout(), expfmt.NewFormat(expfmt.TypeTextPlain))
		for _, mf := range families {
			if err := enc.Encode(mf); err != nil {
				return err
			}
		}
		return nil
	},
}

func init() {
	statsCmd.Flags().IntVar(&statsRounds, "rounds", 10, "key generation rounds")
	statsCmd.Flags().StringVar(&statsListen, "listen", "", "serve /metrics on this address instead of printing")
	rootCmd.AddCommand(statsCmd)
}
