package simulation

import (
	"errors"
	"fmt"
	"math/rand"

	"cosmossdk.io/collections"
	sdk "github.com/cosmos/cosmos-sdk/types"
	simtypes "github.com/cosmos/cosmos-sdk/types/simulation"

	"namereg/x/dns/keeper"
	"namereg/x/dns/types"
)

// pickRandomDomain returns a registered domain owned by one of accs.
func pickRandomDomain(r *rand.Rand, ctx sdk.Context, k keeper.Keeper, accs []simtypes.Account) (types.TopDomain, simtypes.Account, bool, error) {
	var (
		domains []types.TopDomain
		owners  []simtypes.Account
	)
	err := k.Registry.Walk(ctx, nil, func(_ string, dom types.TopDomain) (bool, error) {
		addr, err := sdk.AccAddressFromBech32(dom.Owner)
		if err != nil {
			return false, err
		}
		if acc, found := simtypes.FindAccount(accs, addr); found {
			domains = append(domains, dom)
			owners = append(owners, acc)
		}
		return false, nil
	})
	if err != nil || len(domains) == 0 {
		return types.TopDomain{}, simtypes.Account{}, false, err
	}
	i := r.Intn(len(domains))
	return domains[i], owners[i], true, nil
}

// pickRandomSubdomain returns a listed subdomain together with the account
// owning its top domain.
func pickRandomSubdomain(r *rand.Rand, ctx sdk.Context, k keeper.Keeper, accs []simtypes.Account) (string, simtypes.Account, bool, error) {
	dom, owner, found, err := pickRandomDomain(r, ctx, k, accs)
	if err != nil || !found {
		return "", simtypes.Account{}, false, err
	}
	subs, err := k.SubdomainIndex.Get(ctx, dom.Name)
	if errors.Is(err, collections.ErrNotFound) {
		return "", simtypes.Account{}, false, nil
	}
	if err != nil {
		return "", simtypes.Account{}, false, err
	}
	if subs.Empty() {
		return "", simtypes.Account{}, false, nil
	}
	return subs.Names[r.Intn(len(subs.Names))], owner, true, nil
}

// randomLabel draws a top-level name of 4 to 10 letters.
func randomLabel(r *rand.Rand) string {
	return simtypes.RandStringOfLength(r, simtypes.RandIntBetween(r, 4, 11))
}

func randomRecord(r *rand.Rand) (types.RecordType, []byte) {
	switch r.Intn(5) {
	case 0:
		return types.RecordTypeA, []byte(fmt.Sprintf("10.%d.%d.%d", r.Intn(256), r.Intn(256), r.Intn(256)))
	case 1:
		return types.RecordTypeAAAA, []byte("2001:db8::" + simtypes.RandStringOfLength(r, 4))
	case 2:
		return types.RecordTypeMX, []byte("10 mail." + simtypes.RandStringOfLength(r, 6))
	case 3:
		return types.RecordTypeCNAME, []byte(simtypes.RandStringOfLength(r, 8) + ".example")
	default:
		return types.RecordTypeIPFS, []byte("bafy" + simtypes.RandStringOfLength(r, 40))
	}
}
