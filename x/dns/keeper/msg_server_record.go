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

func (k msgServer) AddRecord(ctx context.Context, msg *types.MsgAddRecord) (*types.MsgAddRecordResponse, error) {
	caller, err := k.signer(msg.Creator)
	if err != nil {
		return nil, errorsmod.Wrapf(sdkerrors.ErrInvalidAddress, "invalid creator address: %s", err)
	}
	if !msg.Type.Valid() {
		return nil, types.ErrInvalidRequest.Wrapf("invalid record type %d", int32(msg.Type))
	}
	if err := types.ValidateRecordValue(msg.Value); err != nil {
		return nil, err
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
		if err != nil && !errors.Is(err, collections.ErrNotFound) {
			return err
		}
		if !subs.Contains(name.String()) {
			return types.ErrDomainNotFound.Wrapf("%s is not a subdomain of %s", name, top)
		}

		reclaimed, err := k.checkLease(ctx, name)
		if err != nil {
			return err
		}
		if reclaimed {
			return types.ErrDomainNotFound.Wrapf("lease on %s has expired", top)
		}

		records, err := k.RecordStore.Get(ctx, name.String())
		if err != nil && !errors.Is(err, collections.ErrNotFound) {
			return err
		}
		rec := types.Record{Type: msg.Type, Value: msg.Value, TTL: msg.TTL}
		if err := k.RecordStore.Set(ctx, name.String(), records.Append(rec)); err != nil {
			return err
		}

		if err := k.countOp(ctx); err != nil {
			return err
		}
		ctx.EventManager().EmitEvent(sdk.NewEvent(
			types.EventTypeRecordAdded,
			sdk.NewAttribute(types.AttributeKeyName, name.String()),
			sdk.NewAttribute(types.AttributeKeyRecordType, msg.Type.String()),
		))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &types.MsgAddRecordResponse{}, nil
}

// DeleteRecord removes every record of msg.Type carrying msg.Value. An emptied
// list is deleted.
func (k msgServer) DeleteRecord(ctx context.Context, msg *types.MsgDeleteRecord) (*types.MsgDeleteRecordResponse, error) {
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
		records, err := k.RecordStore.Get(ctx, name.String())
		if errors.Is(err, collections.ErrNotFound) {
			return types.ErrDomainNotFound.Wrapf("no records for %s", name)
		}
		if err != nil {
			return err
		}

		kept := records.Without(msg.Type, msg.Value)
		if kept.Empty() {
			err = k.RecordStore.Remove(ctx, name.String())
		} else {
			err = k.RecordStore.Set(ctx, name.String(), kept)
		}
		if err != nil {
			return err
		}

		if err := k.countOp(ctx); err != nil {
			return err
		}
		ctx.EventManager().EmitEvent(sdk.NewEvent(
			types.EventTypeRecordDeleted,
			sdk.NewAttribute(types.AttributeKeyName, name.String()),
			sdk.NewAttribute(types.AttributeKeyRecordType, msg.Type.String()),
			sdk.NewAttribute(types.AttributeKeyRemoved, strconv.Itoa(len(records.Records)-len(kept.Records))),
		))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &types.MsgDeleteRecordResponse{}, nil
}
