package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"namereg/app"
	"namereg/crypto/pqc/dilithium"
)

const (
	flagHome    = "home"
	flagNode    = "node"
	flagOutput  = "output"
	flagFrom    = "from"
	flagChainID = "chain-id"
	flagPass    = "passphrase"
)

// rootOptions resolves persistent flags, NAMEREG_* environment variables and
// defaults, in that order.
type rootOptions struct {
	v *viper.Viper
}

func (o *rootOptions) home() string   { return o.v.GetString(flagHome) }
func (o *rootOptions) node() string   { return strings.TrimRight(o.v.GetString(flagNode), "/") }
func (o *rootOptions) output() string { return o.v.GetString(flagOutput) }

// keyOptions seals new keys and opens sealed ones with --passphrase
// (or NAMEREG_PASSPHRASE) when it is set.
func (o *rootOptions) keyOptions() []dilithium.KeyOption {
	return []dilithium.KeyOption{dilithium.WithPassphrase([]byte(o.v.GetString(flagPass)))}
}

func (o *rootOptions) config() (app.Config, error) {
	return app.LoadConfig(viper.New(), o.home())
}

func (o *rootOptions) client() *apiClient {
	return newAPIClient(o.node())
}

func NewRootCmd() *cobra.Command {
	o := &rootOptions{v: viper.New()}
	o.v.SetEnvPrefix(app.EnvPrefix)
	o.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	o.v.AutomaticEnv()

	rootCmd := &cobra.Command{
		Use:           app.Name + "d",
		Short:         "namereg node and client",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SetOut(cmd.OutOrStdout())
			cmd.SetErr(cmd.ErrOrStderr())

			if err := o.v.BindPFlags(cmd.Flags()); err != nil {
				return err
			}
			switch o.output() {
			case outputJSON, outputYAML:
				return nil
			default:
				return fmt.Errorf("unsupported --%s %q", flagOutput, o.output())
			}
		},
	}

	rootCmd.SetGlobalNormalizationFunc(underscoreToDash)

	pf := rootCmd.PersistentFlags()
	pf.String(flagHome, app.DefaultNodeHome, "node home directory")
	pf.String(flagNode, "http://127.0.0.1:1317", "API endpoint of the node")
	pf.StringP(flagOutput, "o", outputJSON, "output format (json|yaml)")
	pf.String(flagPass, "", "passphrase that encrypts key files on disk")

	rootCmd.AddCommand(
		newInitCmd(o),
		newKeysCmd(o),
		newStartCmd(o),
		newTxCmd(o),
		newQueryCmd(o),
		newGenesisCmd(o),
		newExportCmd(o),
		newSimulateCmd(o),
	)
	return rootCmd
}

// underscoreToDash accepts --chain_id style spellings of dashed flags.
func underscoreToDash(_ *pflag.FlagSet, name string) pflag.NormalizedName {
	return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
}
