package cmd

import (
	"fmt"
	"os"
	"time"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/spf13/cobra"

	"namereg/app"
	"namereg/crypto/pqc/dilithium"
	dnstypes "namereg/x/dns/types"
)

const (
	flagAdminKey   = "admin-key"
	flagAdminCoins = "admin-coins"
	flagOverwrite  = "overwrite"
)

func newInitCmd(o *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init [chain-id]",
		Short: "Write the default config, an admin key and a genesis file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := app.DefaultConfig(o.home())
			overwrite, _ := cmd.Flags().GetBool(flagOverwrite)
			if _, err := os.Stat(cfg.GenesisPath()); err == nil && !overwrite {
				return fmt.Errorf("genesis file already exists: %s", cfg.GenesisPath())
			}

			coinsStr, _ := cmd.Flags().GetString(flagAdminCoins)
			coins, err := sdk.ParseCoinsNormalized(coinsStr)
			if err != nil {
				return fmt.Errorf("--%s: %w", flagAdminCoins, err)
			}

			keyName, _ := cmd.Flags().GetString(flagAdminKey)
			admin, err := dilithium.LoadPublicKeyFile(cfg.KeysDir(), keyName)
			switch {
			case dilithium.IsNotExist(err):
				if admin, err = dilithium.NewKeyFile(dilithium.Default(), keyName, nil); err != nil {
					return err
				}
				if err := admin.Save(cfg.KeysDir(), o.keyOptions()...); err != nil {
					return err
				}
			case err != nil:
				return err
			}

			doc, err := app.DefaultGenesisDoc(args[0], dilithium.Address(admin.PublicKey), coins, time.Now())
			if err != nil {
				return err
			}
			if err := app.WriteConfig(cfg); err != nil {
				return err
			}
			if err := doc.Save(cfg.GenesisPath()); err != nil {
				return err
			}
			return printOutput(cmd.OutOrStdout(), o.output(), map[string]string{
				"chain_id": doc.ChainID,
				"home":     cfg.Home,
				"admin":    admin.Address,
				"genesis":  cfg.GenesisPath(),
			})
		},
	}
	cmd.Flags().String(flagAdminKey, "admin", "key that becomes the registry admin; generated when missing")
	cmd.Flags().String(flagAdminCoins, "1000000000000000"+dnstypes.DefaultFeeDenom, "initial admin balance")
	cmd.Flags().Bool(flagOverwrite, false, "overwrite an existing genesis file")
	return cmd
}
