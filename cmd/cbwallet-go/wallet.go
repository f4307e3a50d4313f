package main

import (
	"github.com/spf13/cobra"

	"github.com/coinbase/cb-wallet-go/pkg/cbwallet/wallet"
)

var (
	dataDir    string
	passphrase string
)

var walletCmd = &cobra.Command{
	Use:   "wallet",
	Short: "Open a wallet and print its summary",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		lib, err := openLibrary()
		if err != nil {
			return err
		}
		defer closeLibrary(cmd, lib)

		w, err := wallet.Create(lib, wallet.Params{DataDir: dataDir, Passphrase: passphrase})
		if err != nil {
			return err
		}
		defer w.Close()

		pk, err := w.PublicKey()
		if err != nil {
			return err
		}
		defer pk.Close()
		if err := printPublicKey(cmd, pk); err != nil {
			return err
		}

		b, err := w.Balance()
		if err != nil {
			return err
		}
		defer b.Close()
		s, err := b.Snapshot()
		if err != nil {
			return err
		}
		cmd.Printf("available:  %d\n", s.Available)
		cmd.Printf("incoming:   %d\n", s.PendingIncoming)
		cmd.Printf("outgoing:   %d\n", s.PendingOutgoing)
		cmd.Printf("time lock:  %d\n", s.TimeLocked)

		list, err := w.Contacts()
		if err != nil {
			return err
		}
		defer list.Close()
		n, err := list.Len()
		if err != nil {
			return err
		}
		cmd.Printf("contacts:   %d\n", n)
		return nil
	},
}

func init() {
	walletCmd.Flags().StringVar(&dataDir, "data-dir", "", "wallet data directory (overrides config)")
	walletCmd.Flags().StringVar(&passphrase, "passphrase", "", "database passphrase")
	rootCmd.AddCommand(walletCmd)
}
