package main

import (
	"github.com/spf13/cobra"

	"github.com/coinbase/cb-wallet-go/pkg/cbwallet"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print wrapper and engine versions",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("cb-wallet-go %s\n", cbwallet.WrapperVersion())
		cmd.Printf("wallet engine %s (%s)\n", cbwallet.UpstreamVersion(), cbwallet.UpstreamHeader)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
