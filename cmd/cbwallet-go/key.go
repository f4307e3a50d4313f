package main

import (
	"github.com/spf13/cobra"

	"github.com/coinbase/cb-wallet-go/pkg/cbwallet"
	"github.com/coinbase/cb-wallet-go/pkg/cbwallet/keys"
)

var showSecret bool

var keyCmd = &cobra.Command{
	Use:   "key",
	Short: "Generate and inspect keys",
}

var keyGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a private key and print its public key",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		lib, err := openLibrary()
		if err != nil {
			return err
		}
		defer closeLibrary(cmd, lib)

		sk, err := keys.GeneratePrivateKey(lib)
		if err != nil {
			return err
		}
		defer sk.Close()

		pk, err := sk.PublicKey()
		if err != nil {
			return err
		}
		defer pk.Close()
		if err := printPublicKey(cmd, pk); err != nil {
			return err
		}

		if showSecret {
			secret, err := sk.Hex()
			if err != nil {
				return err
			}
			cmd.Printf("secret:     %s\n", secret)
		}
		return nil
	},
}

var keyInspectCmd = &cobra.Command{
	Use:   "inspect <hex|emoji-id>",
	Short: "Parse a public key given as hex or emoji id",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		lib, err := openLibrary()
		if err != nil {
			return err
		}
		defer closeLibrary(cmd, lib)

		pk, err := parsePublicKey(lib, args[0])
		if err != nil {
			return err
		}
		defer pk.Close()
		return printPublicKey(cmd, pk)
	},
}

func init() {
	keyGenerateCmd.Flags().BoolVar(&showSecret, "show-secret", false, "also print the secret key")
	keyCmd.AddCommand(keyGenerateCmd, keyInspectCmd)
	rootCmd.AddCommand(keyCmd)
}

func parsePublicKey(lib *cbwallet.Library, s string) (*keys.PublicKey, error) {
	if len(s) == keys.HexLen {
		return keys.PublicKeyFromHex(lib, s)
	}
	return keys.PublicKeyFromEmojiID(lib, s)
}

func printPublicKey(cmd *cobra.Command, pk *keys.PublicKey) error {
	h, err := pk.Hex()
	if err != nil {
		return err
	}
	emoji, err := pk.EmojiID()
	if err != nil {
		return err
	}
	cmd.Printf("public key: %s\n", h)
	cmd.Printf("emoji id:   %s\n", emoji)
	return nil
}
