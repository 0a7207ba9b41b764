package keeper

import (
	"context"
	"errors"

	"namereg/x/dns/types"

	"cosmossdk.io/collections"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// withdraw removes the top domain governing name together with its account
// index entry, subdomains and their records. A name whose top domain is not
// registered is a no-op. The caller must run it inside an atomic branch.
func (k Keeper) withdraw(ctx context.Context, auth types.Authorization, name types.Label) (bool, error) {
	top := types.TopSuffix(name).String()

	dom, err := k.Registry.Get(ctx, top)
	if errors.Is(err, collections.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	owner, err := k.ownerAddress(dom)
	if err != nil {
		return false, err
	}
	reason, err := k.withdrawReason(ctx, auth, owner)
	if err != nil {
		return false, err
	}

	owned, err := k.AccountIndex.Get(ctx, owner)
	if err != nil && !errors.Is(err, collections.ErrNotFound) {
		return false, err
	}
	owned = owned.Without(top)

	subs, err := k.SubdomainIndex.Get(ctx, top)
	switch {
	case err == nil:
		for _, sub := range subs.Names {
			if err := k.RecordStore.Remove(ctx, sub); err != nil {
				return false, err
			}
		}
		if err := k.SubdomainIndex.Remove(ctx, top); err != nil {
			return false, err
		}
	case !errors.Is(err, collections.ErrNotFound):
		return false, err
	}

	if err := k.Registry.Remove(ctx, top); err != nil {
		return false, err
	}
	if owned.Empty() {
		err = k.AccountIndex.Remove(ctx, owner)
	} else {
		err = k.AccountIndex.Set(ctx, owner, owned)
	}
	if err != nil {
		return false, err
	}

	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeWithdraw,
		sdk.NewAttribute(types.AttributeKeyDomain, top),
		sdk.NewAttribute(types.AttributeKeyOwner, dom.Owner),
		sdk.NewAttribute(types.AttributeKeyReason, reason),
	))
	k.Logger(ctx).Info("domain withdrawn", "domain", top, "owner", dom.Owner, "reason", reason)
	return true, nil
}

func (k Keeper) withdrawReason(ctx context.Context, auth types.Authorization, owner sdk.AccAddress) (string, error) {
	if auth.IsSystem() {
		return types.WithdrawReasonExpired, nil
	}
	if auth.Is(owner) {
		return types.WithdrawReasonOwner, nil
	}
	admin, err := k.GetAdmin(ctx)
	if err != nil && !errors.Is(err, types.ErrAdminNotSet) {
		return "", err
	}
	if len(admin) > 0 && auth.Is(admin) {
		return types.WithdrawReasonAdmin, nil
	}
	return "", types.ErrNotOwner.Wrap("only the owner or the admin may withdraw")
}
