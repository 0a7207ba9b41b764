package types_test

import (
	"testing"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	"namereg/x/dns/types"
)

func validGenesis() *types.GenesisState {
	admin := sdk.AccAddress([]byte("admin_______________")).String()
	owner := sdk.AccAddress([]byte("owner_______________")).String()
	gs := types.DefaultGenesis()
	gs.Admin = admin
	gs.Domains = []types.TopDomain{
		{Name: "example", Owner: owner, LeaseStart: 1, LeaseDuration: types.MinDuration},
		{Name: "other", Owner: owner, LeaseStart: 1, LeaseDuration: types.MinDuration},
	}
	gs.Owners = []types.OwnerDomains{{Owner: owner, Names: []string{"example", "other"}}}
	gs.Subdomains = []types.SubdomainEntry{{Domain: "example", Names: []string{"mail.example", "www.example"}}}
	gs.Records = []types.RecordEntry{{
		Name:    "mail.example",
		Records: []types.Record{{Type: types.RecordTypeMX, Value: []byte("10 mx.example"), TTL: 300}},
	}}
	return gs
}

func TestGenesisState_Validate(t *testing.T) {
	tests := []struct {
		desc   string
		mutate func(gs *types.GenesisState)
		valid  bool
	}{
		{
			desc:   "valid genesis state",
			mutate: func(*types.GenesisState) {},
			valid:  true,
		},
		{
			desc:   "default lacks admin",
			mutate: func(gs *types.GenesisState) { *gs = *types.DefaultGenesis() },
		},
		{
			desc:   "duplicated domain",
			mutate: func(gs *types.GenesisState) { gs.Domains = append(gs.Domains, gs.Domains[0]) },
		},
		{
			desc:   "non canonical domain",
			mutate: func(gs *types.GenesisState) { gs.Domains[0].Name = "Example" },
		},
		{
			desc: "account index disagrees with owner",
			mutate: func(gs *types.GenesisState) {
				gs.Owners[0].Owner = gs.Admin
			},
		},
		{
			desc:   "domain missing from account index",
			mutate: func(gs *types.GenesisState) { gs.Owners[0].Names = []string{"example"} },
		},
		{
			desc: "subdomain under unregistered domain",
			mutate: func(gs *types.GenesisState) {
				gs.Subdomains = append(gs.Subdomains, types.SubdomainEntry{Domain: "nowhere", Names: []string{"a.nowhere"}})
			},
		},
		{
			desc: "subdomain with foreign suffix",
			mutate: func(gs *types.GenesisState) {
				gs.Subdomains[0].Names = append(gs.Subdomains[0].Names, "a.other")
			},
		},
		{
			desc: "records for unlisted subdomain",
			mutate: func(gs *types.GenesisState) {
				gs.Records[0].Name = "ftp.example"
			},
		},
		{
			desc: "empty record list",
			mutate: func(gs *types.GenesisState) {
				gs.Records[0].Records = nil
			},
		},
		{
			desc:   "invalid params",
			mutate: func(gs *types.GenesisState) { gs.Params.PriceBase = 0 },
		},
	}
	for _, tc := range tests {
		t.Run(tc.desc, func(t *testing.T) {
			gs := validGenesis()
			tc.mutate(gs)
			err := gs.Validate()
			if tc.valid {
				require.NoError(t, err)
			} else {
				require.Error(t, err)
			}
		})
	}
}
