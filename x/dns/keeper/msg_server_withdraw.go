package keeper

import (
	"context"

	"namereg/x/dns/types"

	errorsmod "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
)

// Withdraw releases the top domain governing msg.Name. Withdrawing a name
// that is not registered succeeds without effect.
func (k msgServer) Withdraw(ctx context.Context, msg *types.MsgWithdraw) (*types.MsgWithdrawResponse, error) {
	caller, err := k.signer(msg.Creator)
	if err != nil {
		return nil, errorsmod.Wrapf(sdkerrors.ErrInvalidAddress, "invalid creator address: %s", err)
	}
	name, err := types.ParseLabel(msg.Name, true)
	if err != nil {
		return nil, err
	}

	err = k.atomically(ctx, func(ctx sdk.Context) error {
		removed, err := k.withdraw(ctx, types.UserAuthorization(caller), name)
		if err != nil {
			return err
		}
		if removed {
			if err := k.countOp(ctx); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &types.MsgWithdrawResponse{}, nil
}
