package keeper

import (
	"context"

	"namereg/x/dns/types"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

func (k msgServer) CheckLease(ctx context.Context, msg *types.MsgCheckLease) (*types.MsgCheckLeaseResponse, error) {
	name, err := types.ParseLabel(msg.Name, true)
	if err != nil {
		return nil, err
	}

	var reclaimed bool
	err = k.atomically(ctx, func(ctx sdk.Context) error {
		reclaimed, err = k.checkLease(ctx, name)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &types.MsgCheckLeaseResponse{Reclaimed: reclaimed}, nil
}
