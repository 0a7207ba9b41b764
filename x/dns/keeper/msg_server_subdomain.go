package keeper

import (
	"context"
	"errors"

	"namereg/x/dns/types"

	"cosmossdk.io/collections"
	errorsmod "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
)

// AddSubdomain lists msg.Name under its top domain. Repeated adds are kept
// as duplicates.
func (k msgServer) AddSubdomain(ctx context.Context, msg *types.MsgAddSubdomain) (*types.MsgAddSubdomainResponse, error) {
	caller, err := k.signer(msg.Creator)
	if err != nil {
		return nil, errorsmod.Wrapf(sdkerrors.ErrInvalidAddress, "invalid creator address: %s", err)
	}
	name, err := types.ParseLabel(msg.Name, true)
	if err != nil {
		return nil, err
	}
	top := types.TopSuffix(name)

	err = k.atomically(ctx, func(ctx sdk.Context) error {
		if _, err := k.checkLease(ctx, top); err != nil {
			return err
		}
		if _, err := k.ownedDomain(ctx, caller, top.String()); err != nil {
			return err
		}

		subs, err := k.SubdomainIndex.Get(ctx, top.String())
		if err != nil && !errors.Is(err, collections.ErrNotFound) {
			return err
		}
		if err := k.SubdomainIndex.Set(ctx, top.String(), subs.Append(name.String())); err != nil {
			return err
		}

		if err := k.countOp(ctx); err != nil {
			return err
		}
		ctx.EventManager().EmitEvent(sdk.NewEvent(
			types.EventTypeSubdomainAdded,
			sdk.NewAttribute(types.AttributeKeyDomain, top.String()),
			sdk.NewAttribute(types.AttributeKeyName, name.String()),
		))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &types.MsgAddSubdomainResponse{}, nil
}

// DeleteSubdomain unlists every occurrence of msg.Name and drops its records.
// The top domain's list stays in place even when it becomes empty.
func (k msgServer) DeleteSubdomain(ctx context.Context, msg *types.MsgDeleteSubdomain) (*types.MsgDeleteSubdomainResponse, error) {
	caller, err := k.signer(msg.Creator)
	if err != nil {
		return nil, errorsmod.Wrapf(sdkerrors.ErrInvalidAddress, "invalid creator address: %s", err)
	}
	name, err := types.ParseLabel(msg.Name, true)
	if err != nil {
		return nil, err
	}
	top := types.TopSuffix(name).String()

	err = k.atomically(ctx, func(ctx sdk.Context) error {
		if _, err := k.ownedDomain(ctx, caller, top); err != nil {
			return err
		}
		subs, err := k.SubdomainIndex.Get(ctx, top)
		if errors.Is(err, collections.ErrNotFound) {
			return types.ErrDomainNotFound.Wrapf("%s has no subdomains", top)
		}
		if err != nil {
			return err
		}

		if err := k.SubdomainIndex.Set(ctx, top, subs.Without(name.String())); err != nil {
			return err
		}
		if err := k.RecordStore.Remove(ctx, name.String()); err != nil {
			return err
		}

		if err := k.countOp(ctx); err != nil {
			return err
		}
		ctx.EventManager().EmitEvent(sdk.NewEvent(
			types.EventTypeSubdomainDeleted,
			sdk.NewAttribute(types.AttributeKeyDomain, top),
			sdk.NewAttribute(types.AttributeKeyName, name.String()),
		))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &types.MsgDeleteSubdomainResponse{}, nil
}
