package keeper

import (
	"context"
	"errors"
	"strconv"

	"namereg/x/dns/types"

	"cosmossdk.io/collections"
	errorsmod "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
)

func (k msgServer) Register(ctx context.Context, msg *types.MsgRegister) (*types.MsgRegisterResponse, error) {
	payer, err := k.signer(msg.Creator)
	if err != nil {
		return nil, errorsmod.Wrapf(sdkerrors.ErrInvalidAddress, "invalid creator address: %s", err)
	}
	owner, err := k.addressCodec.BytesToString(payer)
	if err != nil {
		return nil, err
	}

	params := k.GetParams(ctx)
	if err := params.ValidateDuration(msg.Duration); err != nil {
		return nil, err
	}
	name, err := params.ParseTopLabel(msg.Name)
	if err != nil {
		return nil, err
	}

	resp := &types.MsgRegisterResponse{}
	err = k.atomically(ctx, func(ctx sdk.Context) error {
		if _, err := k.checkLease(ctx, name); err != nil {
			return err
		}
		found, err := k.Registry.Has(ctx, name.String())
		if err != nil {
			return err
		}
		if found {
			return types.ErrDomainExists.Wrapf("%s is registered", name)
		}

		cost := params.Cost(name.Len(), msg.Duration)
		if err := k.chargeRegistration(ctx, params, payer, cost); err != nil {
			return err
		}

		now := k.nowMs(ctx)
		dom := types.TopDomain{
			Name:          name.String(),
			Owner:         owner,
			LeaseStart:    now,
			LeaseDuration: msg.Duration,
		}
		if err := k.Registry.Set(ctx, dom.Name, dom); err != nil {
			return err
		}
		owned, err := k.AccountIndex.Get(ctx, payer)
		if err != nil && !errors.Is(err, collections.ErrNotFound) {
			return err
		}
		if err := k.AccountIndex.Set(ctx, payer, owned.Append(dom.Name)); err != nil {
			return err
		}

		if err := k.countOp(ctx); err != nil {
			return err
		}
		ctx.EventManager().EmitEvent(sdk.NewEvent(
			types.EventTypeRegister,
			sdk.NewAttribute(types.AttributeKeyDomain, dom.Name),
			sdk.NewAttribute(types.AttributeKeyOwner, dom.Owner),
			sdk.NewAttribute(types.AttributeKeyCost, cost.String()),
			sdk.NewAttribute(types.AttributeKeyLeaseStart, strconv.FormatUint(dom.LeaseStart, 10)),
			sdk.NewAttribute(types.AttributeKeyLeaseDuration, strconv.FormatUint(dom.LeaseDuration, 10)),
		))
		k.Logger(ctx).Info("domain registered", "domain", dom.Name, "owner", dom.Owner, "cost", cost.String())

		resp.Cost = cost.String()
		resp.LeaseStart = now
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}
