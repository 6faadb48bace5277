package main

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/spf13/cobra"
)

var (
	keygenCount int
	keygenAdmin bool
)

var keygenCmd = &cobra.Command{
	Use:   "keygen",
	Short: "Generate API keys for INFERD_API_KEYS / INFERD_ADMIN_API_KEYS",
	Example: "  inferd keygen -n 3\n" +
		"  inferd keygen --admin",
	RunE: func(cmd *cobra.Command, args []string) error {
		for i := 0; i < keygenCount; i++ {
			k, err := generateKey(keygenAdmin)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), k)
		}
		return nil
	},
}

func init() {
	keygenCmd.Flags().IntVarP(&keygenCount, "count", "n", 1, "number of keys to generate")
	keygenCmd.Flags().BoolVar(&keygenAdmin, "admin", false, "generate admin keys (sk-admin- prefix)")
}

const (
	keyAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	keyLength   = 48
)

// generateKey returns a random API key with the tier prefix.
func generateKey(admin bool) (string, error) {
	b := make([]byte, keyLength)
	max := big.NewInt(int64(len(keyAlphabet)))
	for i := range b {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		b[i] = keyAlphabet[n.Int64()]
	}
	prefix := "sk-"
	if admin {
		prefix = "sk-admin-"
	}
	return prefix + string(b), nil
}
