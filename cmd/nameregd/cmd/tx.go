package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"namereg/app"
	"namereg/crypto/pqc/dilithium"
	dnstypes "namereg/x/dns/types"
)

const (
	flagSequence = "sequence"
	flagTTL      = "ttl"
)

func newTxCmd(o *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tx",
		Short: "Sign and broadcast registry transactions",
	}
	cmd.PersistentFlags().String(flagFrom, "", "name of the signing key")
	cmd.PersistentFlags().String(flagChainID, "", "chain id; fetched from the node when empty")
	cmd.PersistentFlags().Int64(flagSequence, -1, "account sequence; fetched from the node when negative")

	cmd.AddCommand(
		newTxRegisterCmd(o),
		newTxTransferCmd(o),
		newTxWithdrawCmd(o),
		newTxAddSubdomainCmd(o),
		newTxDeleteSubdomainCmd(o),
		newTxAddRecordCmd(o),
		newTxDeleteRecordCmd(o),
		newTxCheckLeaseCmd(o),
	)
	return cmd
}

// broadcastMsg signs the message built by build with the --from key and
// submits it to the node.
func (o *rootOptions) broadcastMsg(cmd *cobra.Command, build func(creator string) dnstypes.Msg) error {
	key, err := o.loadKey(o.v.GetString(flagFrom))
	if err != nil {
		return err
	}
	msg := build(key.Address)
	if err := msg.ValidateBasic(); err != nil {
		return err
	}

	ctx := cmd.Context()
	c := o.client()

	chainID := o.v.GetString(flagChainID)
	if chainID == "" {
		health, err := c.health(ctx)
		if err != nil {
			return fmt.Errorf("fetch chain id: %w", err)
		}
		chainID = health.ChainID
	}

	seq := o.v.GetInt64(flagSequence)
	if seq < 0 {
		acc, err := c.account(ctx, key.Address)
		if err != nil {
			return fmt.Errorf("fetch sequence: %w", err)
		}
		seq = int64(acc.Sequence)
	}

	tx, err := app.NewSignedTx(dilithium.Default(), key, chainID, uint64(seq), msg)
	if err != nil {
		return err
	}
	res, err := c.broadcast(ctx, tx)
	if err != nil {
		return err
	}
	return printOutput(cmd.OutOrStdout(), o.output(), res)
}

func newTxRegisterCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "register [name] [duration-ms]",
		Short: "Register a top-level name for a lease of duration milliseconds",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			duration, err := strconv.ParseUint(args[1], 10, 64)
			if err != nil {
				return fmt.Errorf("duration: %w", err)
			}
			return o.broadcastMsg(cmd, func(creator string) dnstypes.Msg {
				return &dnstypes.MsgRegister{Creator: creator, Name: args[0], Duration: duration}
			})
		},
	}
}

func newTxTransferCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "transfer [name] [new-owner]",
		Short: "Hand a domain to another account",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.broadcastMsg(cmd, func(creator string) dnstypes.Msg {
				return &dnstypes.MsgTransfer{Creator: creator, Name: args[0], NewOwner: args[1]}
			})
		},
	}
}

func newTxWithdrawCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "withdraw [name]",
		Short: "Release a domain with its subdomains and records",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.broadcastMsg(cmd, func(creator string) dnstypes.Msg {
				return &dnstypes.MsgWithdraw{Creator: creator, Name: args[0]}
			})
		},
	}
}

func newTxAddSubdomainCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "add-subdomain [name]",
		Short: "Attach a dotted name to one of your domains",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.broadcastMsg(cmd, func(creator string) dnstypes.Msg {
				return &dnstypes.MsgAddSubdomain{Creator: creator, Name: args[0]}
			})
		},
	}
}

func newTxDeleteSubdomainCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete-subdomain [name]",
		Short: "Remove a subdomain and its records",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.broadcastMsg(cmd, func(creator string) dnstypes.Msg {
				return &dnstypes.MsgDeleteSubdomain{Creator: creator, Name: args[0]}
			})
		},
	}
}

func newTxAddRecordCmd(o *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add-record [name] [type] [value]",
		Short: "Attach a record (A, AAAA, MX, CNAME, IPFS) to a subdomain",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := dnstypes.ParseRecordType(args[1])
			if err != nil {
				return err
			}
			ttl, err := cmd.Flags().GetUint32(flagTTL)
			if err != nil {
				return err
			}
			return o.broadcastMsg(cmd, func(creator string) dnstypes.Msg {
				return &dnstypes.MsgAddRecord{Creator: creator, Name: args[0], Type: rt, Value: []byte(args[2]), TTL: ttl}
			})
		},
	}
	cmd.Flags().Uint32(flagTTL, 3600, "advisory time to live in seconds")
	return cmd
}

func newTxDeleteRecordCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete-record [name] [type] [value]",
		Short: "Remove every record of a subdomain matching type and value",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := dnstypes.ParseRecordType(args[1])
			if err != nil {
				return err
			}
			return o.broadcastMsg(cmd, func(creator string) dnstypes.Msg {
				return &dnstypes.MsgDeleteRecord{Creator: creator, Name: args[0], Type: rt, Value: []byte(args[2])}
			})
		},
	}
}

func newTxCheckLeaseCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "check-lease [name]",
		Short: "Reclaim a domain whose lease has elapsed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.broadcastMsg(cmd, func(creator string) dnstypes.Msg {
				return &dnstypes.MsgCheckLease{Creator: creator, Name: args[0]}
			})
		},
	}
}
