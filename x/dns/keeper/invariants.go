package keeper

import (
	"fmt"

	"namereg/x/dns/types"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// RegisterInvariants registers the registry's cross-index invariants.
func RegisterInvariants(ir sdk.InvariantRegistry, k Keeper) {
	ir.RegisterRoute(types.ModuleName, "account-index", AccountIndexInvariant(k))
	ir.RegisterRoute(types.ModuleName, "subdomain-parent", SubdomainParentInvariant(k))
	ir.RegisterRoute(types.ModuleName, "record-parent", RecordParentInvariant(k))
}

// AllInvariants runs every registry invariant and stops at the first broken one.
func AllInvariants(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		for _, inv := range []sdk.Invariant{
			AccountIndexInvariant(k),
			SubdomainParentInvariant(k),
			RecordParentInvariant(k),
		} {
			if res, stop := inv(ctx); stop {
				return res, stop
			}
		}
		return "", false
	}
}

// AccountIndexInvariant checks that the account index and the registry
// describe the same ownership: every domain is listed exactly once, under its
// owner, and no account keeps an empty list.
func AccountIndexInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		var (
			msg    string
			broken int
		)
		seen := make(map[string]int)

		err := k.AccountIndex.Walk(ctx, nil, func(owner sdk.AccAddress, list types.DomainList) (bool, error) {
			addr, err := k.addressCodec.BytesToString(owner)
			if err != nil {
				return true, err
			}
			if list.Empty() {
				broken++
				msg += fmt.Sprintf("\t%s has an empty domain list\n", addr)
			}
			for _, name := range list.Names {
				seen[name]++
				dom, err := k.Registry.Get(ctx, name)
				if err != nil {
					broken++
					msg += fmt.Sprintf("\t%s lists unregistered domain %s\n", addr, name)
					continue
				}
				if dom.Owner != addr {
					broken++
					msg += fmt.Sprintf("\t%s lists %s owned by %s\n", addr, name, dom.Owner)
				}
			}
			return false, nil
		})
		if err != nil {
			return sdk.FormatInvariant(types.ModuleName, "account-index", err.Error()), true
		}

		err = k.Registry.Walk(ctx, nil, func(name string, _ types.TopDomain) (bool, error) {
			if n := seen[name]; n != 1 {
				broken++
				msg += fmt.Sprintf("\t%s appears %d times in the account index\n", name, n)
			}
			return false, nil
		})
		if err != nil {
			return sdk.FormatInvariant(types.ModuleName, "account-index", err.Error()), true
		}

		return sdk.FormatInvariant(types.ModuleName, "account-index",
			fmt.Sprintf("%d broken entries\n%s", broken, msg)), broken != 0
	}
}

// SubdomainParentInvariant checks that every subdomain list belongs to a
// registered top domain and only holds names under it.
func SubdomainParentInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		var (
			msg    string
			broken int
		)
		err := k.SubdomainIndex.Walk(ctx, nil, func(top string, list types.DomainList) (bool, error) {
			found, err := k.Registry.Has(ctx, top)
			if err != nil {
				return true, err
			}
			if !found {
				broken++
				msg += fmt.Sprintf("\tsubdomains listed for unregistered %s\n", top)
			}
			for _, name := range list.Names {
				if types.TopSuffix(types.Label(name)).String() != top {
					broken++
					msg += fmt.Sprintf("\t%s listed under %s\n", name, top)
				}
			}
			return false, nil
		})
		if err != nil {
			return sdk.FormatInvariant(types.ModuleName, "subdomain-parent", err.Error()), true
		}
		return sdk.FormatInvariant(types.ModuleName, "subdomain-parent",
			fmt.Sprintf("%d broken entries\n%s", broken, msg)), broken != 0
	}
}

// RecordParentInvariant checks that records only exist for listed subdomains.
func RecordParentInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		var (
			msg    string
			broken int
		)
		err := k.RecordStore.Walk(ctx, nil, func(name string, list types.RecordList) (bool, error) {
			top := types.TopSuffix(types.Label(name)).String()
			subs, err := k.SubdomainIndex.Get(ctx, top)
			if err != nil || !subs.Contains(name) {
				broken++
				msg += fmt.Sprintf("\trecords for unlisted subdomain %s\n", name)
			}
			if list.Empty() {
				broken++
				msg += fmt.Sprintf("\tempty record list for %s\n", name)
			}
			return false, nil
		})
		if err != nil {
			return sdk.FormatInvariant(types.ModuleName, "record-parent", err.Error()), true
		}
		return sdk.FormatInvariant(types.ModuleName, "record-parent",
			fmt.Sprintf("%d broken entries\n%s", broken, msg)), broken != 0
	}
}
