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

// Transfer hands a top domain to a new owner. The lease is carried over
// unchanged.
func (k msgServer) Transfer(ctx context.Context, msg *types.MsgTransfer) (*types.MsgTransferResponse, error) {
	from, err := k.signer(msg.Creator)
	if err != nil {
		return nil, errorsmod.Wrapf(sdkerrors.ErrInvalidAddress, "invalid creator address: %s", err)
	}
	to, err := k.signer(msg.NewOwner)
	if err != nil {
		return nil, errorsmod.Wrapf(sdkerrors.ErrInvalidAddress, "invalid new owner address: %s", err)
	}
	fromStr, err := k.addressCodec.BytesToString(from)
	if err != nil {
		return nil, err
	}
	toStr, err := k.addressCodec.BytesToString(to)
	if err != nil {
		return nil, err
	}
	name, err := types.ParseLabel(msg.Name, true)
	if err != nil {
		return nil, err
	}

	err = k.atomically(ctx, func(ctx sdk.Context) error {
		if _, err := k.checkLease(ctx, name); err != nil {
			return err
		}
		dom, err := k.ownedDomain(ctx, from, name.String())
		if err != nil {
			return err
		}

		src, err := k.AccountIndex.Get(ctx, from)
		if err != nil && !errors.Is(err, collections.ErrNotFound) {
			return err
		}
		src = src.Without(dom.Name)
		if src.Empty() {
			err = k.AccountIndex.Remove(ctx, from)
		} else {
			err = k.AccountIndex.Set(ctx, from, src)
		}
		if err != nil {
			return err
		}

		dst, err := k.AccountIndex.Get(ctx, to)
		if err != nil && !errors.Is(err, collections.ErrNotFound) {
			return err
		}
		if err := k.AccountIndex.Set(ctx, to, dst.Append(dom.Name)); err != nil {
			return err
		}

		dom.Owner = toStr
		if err := k.Registry.Set(ctx, dom.Name, dom); err != nil {
			return err
		}

		if err := k.countOp(ctx); err != nil {
			return err
		}
		ctx.EventManager().EmitEvent(sdk.NewEvent(
			types.EventTypeTransfer,
			sdk.NewAttribute(types.AttributeKeyDomain, dom.Name),
			sdk.NewAttribute(types.AttributeKeyFrom, fromStr),
			sdk.NewAttribute(types.AttributeKeyTo, toStr),
		))
		k.Logger(ctx).Info("domain transferred", "domain", dom.Name, "from", fromStr, "to", toStr)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &types.MsgTransferResponse{}, nil
}
