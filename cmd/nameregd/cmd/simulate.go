package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	dbm "github.com/cosmos/cosmos-db"
	simtypes "github.com/cosmos/cosmos-sdk/types/simulation"
	"github.com/spf13/cobra"

	"namereg/app"
	"namereg/x/dns/simulation"
)

func newSimulateCmd(o *rootOptions) *cobra.Command {
	def := simulation.DefaultConfig()
	var (
		cfg        = def
		paramsFile string
		logLevel   string
	)
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Drive an in-memory chain with random registry operations and check invariants",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if paramsFile != "" {
				bz, err := os.ReadFile(paramsFile)
				if err != nil {
					return err
				}
				params := simtypes.AppParams{}
				if err := json.Unmarshal(bz, &params); err != nil {
					return fmt.Errorf("%s: %w", paramsFile, err)
				}
				cfg.Params = params
			}

			logger, err := app.NewLogger(logLevel)
			if err != nil {
				return err
			}
			nodeCfg := app.DefaultConfig(o.home())
			nodeCfg.DBBackend = string(dbm.MemDBBackend)
			nodeCfg.Invariants.CheckEveryBlock = true

			host, err := app.New(logger, dbm.NewMemDB(), nodeCfg)
			if err != nil {
				return err
			}
			defer host.Close()

			report, err := simulation.Run(host, cfg)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.ErrOrStderr(), report.String())
			return printOutput(cmd.OutOrStdout(), o.output(), report)
		},
	}
	f := cmd.Flags()
	f.Int64Var(&cfg.Seed, "seed", def.Seed, "random seed")
	f.IntVar(&cfg.Accounts, "accounts", def.Accounts, "number of simulated accounts")
	f.IntVar(&cfg.Blocks, "blocks", def.Blocks, "number of blocks to simulate")
	f.IntVar(&cfg.OpsPerBlock, "ops-per-block", def.OpsPerBlock, "operations per block")
	f.DurationVar(&cfg.MaxBlockGap, "max-block-gap", def.MaxBlockGap, "largest jump in block time between blocks")
	f.StringVar(&paramsFile, "params", "", "JSON file of op_weight_* overrides")
	f.StringVar(&logLevel, "log-level", "error", "log level")
	return cmd
}
