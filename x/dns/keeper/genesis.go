package keeper

import (
	"context"

	"namereg/x/dns/types"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// InitGenesis loads a validated genesis state. Admin is mandatory.
func (k Keeper) InitGenesis(ctx context.Context, genState types.GenesisState) error {
	if err := genState.Validate(); err != nil {
		return err
	}
	if err := k.Params.Set(ctx, genState.Params); err != nil {
		return err
	}
	admin, err := k.signer(genState.Admin)
	if err != nil {
		return err
	}
	if err := k.Admin.Set(ctx, admin); err != nil {
		return err
	}

	for _, elem := range genState.Domains {
		if err := k.Registry.Set(ctx, elem.Name, elem); err != nil {
			return err
		}
	}
	for _, elem := range genState.Owners {
		owner, err := k.signer(elem.Owner)
		if err != nil {
			return err
		}
		if err := k.AccountIndex.Set(ctx, owner, types.DomainList{Names: elem.Names}); err != nil {
			return err
		}
	}
	for _, elem := range genState.Subdomains {
		if err := k.SubdomainIndex.Set(ctx, elem.Domain, types.DomainList{Names: elem.Names}); err != nil {
			return err
		}
	}
	for _, elem := range genState.Records {
		if err := k.RecordStore.Set(ctx, elem.Name, types.RecordList{Records: elem.Records}); err != nil {
			return err
		}
	}

	return k.OpsThisBlock.Set(ctx, 0)
}

func (k Keeper) ExportGenesis(ctx context.Context) (*types.GenesisState, error) {
	genesis := types.DefaultGenesis()
	genesis.Params = k.GetParams(ctx)

	admin, err := k.GetAdmin(ctx)
	if err != nil {
		return nil, err
	}
	if genesis.Admin, err = k.addressCodec.BytesToString(admin); err != nil {
		return nil, err
	}

	if err := k.Registry.Walk(ctx, nil, func(_ string, val types.TopDomain) (stop bool, err error) {
		genesis.Domains = append(genesis.Domains, val)
		return false, nil
	}); err != nil {
		return nil, err
	}
	if err := k.AccountIndex.Walk(ctx, nil, func(owner sdk.AccAddress, val types.DomainList) (stop bool, err error) {
		addr, err := k.addressCodec.BytesToString(owner)
		if err != nil {
			return true, err
		}
		genesis.Owners = append(genesis.Owners, types.OwnerDomains{Owner: addr, Names: val.Names})
		return false, nil
	}); err != nil {
		return nil, err
	}
	if err := k.SubdomainIndex.Walk(ctx, nil, func(top string, val types.DomainList) (stop bool, err error) {
		genesis.Subdomains = append(genesis.Subdomains, types.SubdomainEntry{Domain: top, Names: val.Names})
		return false, nil
	}); err != nil {
		return nil, err
	}
	if err := k.RecordStore.Walk(ctx, nil, func(name string, val types.RecordList) (stop bool, err error) {
		genesis.Records = append(genesis.Records, types.RecordEntry{Name: name, Records: val.Records})
		return false, nil
	}); err != nil {
		return nil, err
	}

	return genesis, nil
}
