package keeper

import (
	"context"

	"namereg/x/dns/types"

	errorsmod "cosmossdk.io/errors"
	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
)

// chargeRegistration moves cost from payer to the admin account. Whether the
// payer may be drained to zero is a params policy.
func (k Keeper) chargeRegistration(ctx context.Context, params types.Params, payer sdk.AccAddress, cost sdkmath.Int) error {
	if !cost.IsPositive() {
		return nil
	}
	if k.bank == nil {
		return errorsmod.Wrap(sdkerrors.ErrLogic, "bank keeper unavailable")
	}
	admin, err := k.GetAdmin(ctx)
	if err != nil {
		return err
	}

	spendable := k.bank.SpendableCoins(ctx, payer).AmountOf(params.FeeDenom)
	if spendable.LT(cost) {
		return types.ErrInsufficientFunds.Wrapf("cost %s%s exceeds spendable %s%s", cost, params.FeeDenom, spendable, params.FeeDenom)
	}
	if !params.AllowAccountDeath && spendable.Equal(cost) {
		return types.ErrInsufficientFunds.Wrap("payment would leave the account empty")
	}

	return k.bank.SendCoins(ctx, payer, admin, sdk.NewCoins(sdk.NewCoin(params.FeeDenom, cost)))
}
