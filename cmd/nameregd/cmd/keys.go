package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"namereg/crypto/pqc/dilithium"
)

func (o *rootOptions) keysDir() string {
	return filepath.Join(o.home(), "keys")
}

func (o *rootOptions) loadKey(name string) (dilithium.KeyFile, error) {
	if name == "" {
		return dilithium.KeyFile{}, fmt.Errorf("--%s is required", flagFrom)
	}
	return dilithium.LoadKeyFile(o.keysDir(), name, o.keyOptions()...)
}

func newKeysCmd(o *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keys",
		Short: "Manage Dilithium3 signing keys",
	}
	cmd.AddCommand(newKeysAddCmd(o), newKeysShowCmd(o), newKeysListCmd(o))
	return cmd
}

func newKeysAddCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "add [name]",
		Short: "Generate a new key and store it under the node home",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kf, err := dilithium.NewKeyFile(dilithium.Default(), args[0], nil)
			if err != nil {
				return err
			}
			if err := kf.Save(o.keysDir(), o.keyOptions()...); err != nil {
				return err
			}
			return printOutput(cmd.OutOrStdout(), o.output(), kf.Public())
		},
	}
}

func newKeysShowCmd(o *rootOptions) *cobra.Command {
	var addressOnly bool
	cmd := &cobra.Command{
		Use:   "show [name]",
		Short: "Show a stored key's address and public key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kf, err := dilithium.LoadPublicKeyFile(o.keysDir(), args[0])
			if err != nil {
				return err
			}
			if addressOnly {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), kf.Address)
				return err
			}
			return printOutput(cmd.OutOrStdout(), o.output(), kf.Public())
		},
	}
	cmd.Flags().BoolVarP(&addressOnly, "address", "a", false, "print the address only")
	return cmd
}

func newKeysListCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored keys",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			entries, err := os.ReadDir(o.keysDir())
			if err != nil && !os.IsNotExist(err) {
				return err
			}
			keys := make([]dilithium.KeyFile, 0, len(entries))
			for _, e := range entries {
				name, ok := strings.CutSuffix(e.Name(), ".json")
				if e.IsDir() || !ok {
					continue
				}
				kf, err := dilithium.LoadPublicKeyFile(o.keysDir(), name)
				if err != nil {
					return err
				}
				keys = append(keys, kf.Public())
			}
			sort.Slice(keys, func(i, j int) bool { return keys[i].Name < keys[j].Name })
			return printOutput(cmd.OutOrStdout(), o.output(), keys)
		},
	}
}
