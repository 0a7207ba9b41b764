package keeper

import (
	"context"
	"errors"

	"namereg/x/dns/types"

	"cosmossdk.io/collections"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// CheckLease is the lazy expiry check: when the top domain governing name
// has an elapsed lease it is withdrawn under system authorization before the
// caller proceeds. It reports whether a reclaim happened. There is no
// background sweep; an expired domain stays in the store until something
// calls this.
func (k Keeper) CheckLease(ctx context.Context, name string) (bool, error) {
	l, err := types.ParseLabel(name, true)
	if err != nil {
		return false, err
	}
	return k.checkLease(ctx, l)
}

func (k Keeper) checkLease(ctx context.Context, name types.Label) (bool, error) {
	top := types.TopSuffix(name).String()
	em := sdk.UnwrapSDKContext(ctx).EventManager()

	dom, err := k.Registry.Get(ctx, top)
	if errors.Is(err, collections.ErrNotFound) {
		em.EmitEvent(sdk.NewEvent(
			types.EventTypeDomainAbsent,
			sdk.NewAttribute(types.AttributeKeyDomain, top),
			sdk.NewAttribute(types.AttributeKeyName, name.String()),
		))
		return false, nil
	}
	if err != nil {
		return false, err
	}

	now := k.nowMs(ctx)
	if !dom.Expired(now) {
		em.EmitEvent(sdk.NewEvent(
			types.EventTypeDomainActive,
			sdk.NewAttribute(types.AttributeKeyDomain, top),
			sdk.NewAttribute(types.AttributeKeyName, name.String()),
		))
		return false, nil
	}

	k.Logger(ctx).Info("reclaiming expired domain", "domain", top, "expired_at", dom.ExpiresAt(), "now", now)
	return k.withdraw(ctx, types.SystemAuthorization(), name)
}
