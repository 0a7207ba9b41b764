package cmd

import (
	"net/url"
	"strconv"

	"github.com/spf13/cobra"

	"namereg/server/api"
	dnstypes "namereg/x/dns/types"
)

func newQueryCmd(o *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "query",
		Aliases: []string{"q"},
		Short:   "Query registry state from a running node",
	}
	cmd.AddCommand(
		newQueryPathCmd(o, "domain [name]", "Show the top domain owning name", func(args []string) (string, any) {
			return "/dns/v1/domains/" + url.PathEscape(args[0]), &dnstypes.QueryDomainResponse{}
		}),
		newQueryDomainsCmd(o),
		newQueryPathCmd(o, "owner [address]", "List the domains an account owns", func(args []string) (string, any) {
			return "/dns/v1/owners/" + url.PathEscape(args[0]) + "/domains", &dnstypes.QueryDomainsByOwnerResponse{}
		}),
		newQueryPathCmd(o, "subdomains [name]", "List the subdomains of a domain", func(args []string) (string, any) {
			return "/dns/v1/domains/" + url.PathEscape(args[0]) + "/subdomains", &dnstypes.QuerySubdomainsResponse{}
		}),
		newQueryPathCmd(o, "records [name]", "List the records of a subdomain", func(args []string) (string, any) {
			return "/dns/v1/records/" + url.PathEscape(args[0]), &dnstypes.QueryRecordsResponse{}
		}),
		newQueryPathCmd(o, "account [address]", "Show an account's sequence", func(args []string) (string, any) {
			return "/auth/v1/accounts/" + url.PathEscape(args[0]), &api.AccountResponse{}
		}),
		newQueryPathCmd(o, "params", "Show registry parameters", func([]string) (string, any) {
			return "/dns/v1/params", &dnstypes.QueryParamsResponse{}
		}),
		newQueryPathCmd(o, "admin", "Show the fee-collecting admin account", func([]string) (string, any) {
			return "/dns/v1/admin", &dnstypes.QueryAdminResponse{}
		}),
		newQueryPriceCmd(o),
	)
	return cmd
}

// newQueryPathCmd builds a query whose arguments only shape the URL path.
// The number of arguments is read from the bracketed words in use.
func newQueryPathCmd(o *rootOptions, use, short string, target func(args []string) (string, any)) *cobra.Command {
	nargs := 0
	for _, r := range use {
		if r == '[' {
			nargs++
		}
	}
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(nargs),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, out := target(args)
			if err := o.client().get(cmd.Context(), path, nil, out); err != nil {
				return err
			}
			return printOutput(cmd.OutOrStdout(), o.output(), out)
		},
	}
}

func newQueryDomainsCmd(o *rootOptions) *cobra.Command {
	var (
		limit  uint64
		offset uint64
		key    string
	)
	cmd := &cobra.Command{
		Use:   "domains",
		Short: "List registered top domains",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			q := url.Values{}
			if limit > 0 {
				q.Set("limit", strconv.FormatUint(limit, 10))
			}
			if offset > 0 {
				q.Set("offset", strconv.FormatUint(offset, 10))
			}
			if key != "" {
				q.Set("key", key)
			}
			var out dnstypes.QueryDomainsResponse
			if err := o.client().get(cmd.Context(), "/dns/v1/domains", q, &out); err != nil {
				return err
			}
			return printOutput(cmd.OutOrStdout(), o.output(), out)
		},
	}
	cmd.Flags().Uint64Var(&limit, "limit", 0, "page size")
	cmd.Flags().Uint64Var(&offset, "offset", 0, "page offset")
	cmd.Flags().StringVar(&key, "page-key", "", "base64 next_key from a previous page")
	return cmd
}

func newQueryPriceCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "price [name] [duration-ms]",
		Short: "Quote the cost of registering name for duration milliseconds",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			q := url.Values{}
			q.Set("name", args[0])
			q.Set("duration", args[1])
			var out dnstypes.QueryPriceResponse
			if err := o.client().get(cmd.Context(), "/dns/v1/price", q, &out); err != nil {
				return err
			}
			return printOutput(cmd.OutOrStdout(), o.output(), out)
		},
	}
}
