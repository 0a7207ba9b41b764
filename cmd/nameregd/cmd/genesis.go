package cmd

import (
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/spf13/cobra"

	"namereg/app"
)

func newGenesisCmd(o *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "genesis",
		Short: "Inspect and edit the genesis file",
	}
	cmd.AddCommand(newGenesisValidateCmd(o), newGenesisAddAccountCmd(o))
	return cmd
}

func (o *rootOptions) genesisPath(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return app.DefaultConfig(o.home()).GenesisPath()
}

func newGenesisValidateCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [file]",
		Short: "Validate a genesis file, by default the one under the node home",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := o.genesisPath(args)
			doc, err := app.LoadGenesisDoc(path)
			if err != nil {
				return err
			}
			if err := doc.Validate(); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s is a valid genesis file for %s\n", path, doc.ChainID)
			return err
		},
	}
}

func newGenesisAddAccountCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "add-account [address] [coins]",
		Short: "Fund an account in the genesis file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			addr, err := sdk.AccAddressFromBech32(args[0])
			if err != nil {
				return err
			}
			coins, err := sdk.ParseCoinsNormalized(args[1])
			if err != nil {
				return err
			}

			path := o.genesisPath(nil)
			doc, err := app.LoadGenesisDoc(path)
			if err != nil {
				return err
			}
			for i, acc := range doc.Accounts {
				if acc.Address == addr.String() {
					doc.Accounts[i].Coins = acc.Coins.Add(coins...)
					return doc.Save(path)
				}
			}
			doc.Accounts = append(doc.Accounts, app.GenesisAccount{Address: addr.String(), Coins: coins})
			if err := doc.Validate(); err != nil {
				return err
			}
			return doc.Save(path)
		},
	}
}
