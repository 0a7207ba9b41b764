package keeper_test

import (
	"strconv"
	"testing"

	sdkmath "cosmossdk.io/math"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	"github.com/stretchr/testify/require"

	"namereg/x/dns/types"
)

func TestRegister(t *testing.T) {
	f := initFixture(t)
	duration := types.MinDuration
	cost := types.Cost(5, duration, types.DefaultPriceBase)
	f.bank.fund(f.alice, cost.Int64()+1000)

	resp, err := f.msgServer.Register(f.ctx, &types.MsgRegister{
		Creator:  f.addr(t, f.alice),
		Name:     "Alpha",
		Duration: duration,
	})
	require.NoError(t, err)
	require.Equal(t, cost.String(), resp.Cost)
	require.Equal(t, uint64(genesisTimeMs), resp.LeaseStart)

	dom, err := f.keeper.Registry.Get(f.ctx, "alpha")
	require.NoError(t, err)
	require.Equal(t, types.TopDomain{
		Name:          "alpha",
		Owner:         f.addr(t, f.alice),
		LeaseStart:    genesisTimeMs,
		LeaseDuration: duration,
	}, dom)

	owned, err := f.keeper.AccountIndex.Get(f.ctx, f.alice)
	require.NoError(t, err)
	require.Equal(t, []string{"alpha"}, owned.Names)

	require.Equal(t, sdkmath.NewInt(1000), f.bank.balance(f.alice))
	require.Equal(t, cost, f.bank.balance(f.admin))
	require.Len(t, f.bank.transfers, 1)

	require.True(t, hasEvent(f.ctx, types.EventTypeRegister, map[string]string{
		types.AttributeKeyDomain: "alpha",
		types.AttributeKeyCost:   cost.String(),
	}))
	f.requireInvariants(t)
}

func TestRegisterCostExample(t *testing.T) {
	require.Equal(t, sdkmath.NewInt(700_000_000*28*10), types.Cost(4, 700_000_000, 10))
}

func TestRegisterRejects(t *testing.T) {
	f := initFixture(t)
	f.register(t, f.alice, "taken", types.MinDuration)
	f.bank.fund(f.bob, 1_000_000_000_000_000)
	bob := f.addr(t, f.bob)

	tests := []struct {
		desc    string
		request *types.MsgRegister
		err     error
	}{
		{
			desc:    "invalid address",
			request: &types.MsgRegister{Creator: "invalid", Name: "valid", Duration: types.MinDuration},
			err:     sdkerrors.ErrInvalidAddress,
		},
		{
			desc:    "duration too short",
			request: &types.MsgRegister{Creator: bob, Name: "valid", Duration: types.MinDuration - 1},
			err:     types.ErrInvalidDuration,
		},
		{
			desc:    "duration too long",
			request: &types.MsgRegister{Creator: bob, Name: "valid", Duration: types.MaxDuration + 1},
			err:     types.ErrInvalidDuration,
		},
		{
			desc:    "name with dot",
			request: &types.MsgRegister{Creator: bob, Name: "a.bcd", Duration: types.MinDuration},
			err:     types.ErrInvalidName,
		},
		{
			desc:    "name too short",
			request: &types.MsgRegister{Creator: bob, Name: "abc", Duration: types.MinDuration},
			err:     types.ErrInvalidName,
		},
		{
			desc:    "bad charset",
			request: &types.MsgRegister{Creator: bob, Name: "ab-cd", Duration: types.MinDuration},
			err:     types.ErrInvalidName,
		},
		{
			desc:    "already registered",
			request: &types.MsgRegister{Creator: bob, Name: "TAKEN", Duration: types.MinDuration},
			err:     types.ErrDomainExists,
		},
	}
	for _, tc := range tests {
		t.Run(tc.desc, func(t *testing.T) {
			transfers := len(f.bank.transfers)
			_, err := f.msgServer.Register(f.ctx, tc.request)
			require.ErrorIs(t, err, tc.err)
			require.Len(t, f.bank.transfers, transfers)
		})
	}

	dom, err := f.keeper.Registry.Get(f.ctx, "taken")
	require.NoError(t, err)
	require.Equal(t, f.addr(t, f.alice), dom.Owner)
	f.requireInvariants(t)
}

func TestRegisterInsufficientFunds(t *testing.T) {
	f := initFixture(t)
	cost := types.Cost(5, types.MinDuration, types.DefaultPriceBase)
	f.bank.fund(f.alice, cost.Int64()-1)

	_, err := f.msgServer.Register(f.ctx, &types.MsgRegister{
		Creator:  f.addr(t, f.alice),
		Name:     "alpha",
		Duration: types.MinDuration,
	})
	require.ErrorIs(t, err, types.ErrInsufficientFunds)

	found, err := f.keeper.Registry.Has(f.ctx, "alpha")
	require.NoError(t, err)
	require.False(t, found)
	found, err = f.keeper.AccountIndex.Has(f.ctx, f.alice)
	require.NoError(t, err)
	require.False(t, found)
	require.Empty(t, f.bank.transfers)
}

func TestRegisterAccountDeathPolicy(t *testing.T) {
	for _, allow := range []bool{true, false} {
		t.Run("allow_account_death="+strconv.FormatBool(allow), func(t *testing.T) {
			f := initFixture(t)
			params := types.DefaultParams()
			params.AllowAccountDeath = allow
			require.NoError(t, f.keeper.SetParams(f.ctx, params))

			cost := types.Cost(5, types.MinDuration, types.DefaultPriceBase)
			f.bank.fund(f.alice, cost.Int64())

			_, err := f.msgServer.Register(f.ctx, &types.MsgRegister{
				Creator:  f.addr(t, f.alice),
				Name:     "alpha",
				Duration: types.MinDuration,
			})
			if allow {
				require.NoError(t, err)
				require.True(t, f.bank.balance(f.alice).IsZero())
				return
			}
			require.ErrorIs(t, err, types.ErrInsufficientFunds)
			require.Equal(t, cost, f.bank.balance(f.alice))
		})
	}
}

func TestRegisterFullLengthNameIsFree(t *testing.T) {
	f := initFixture(t)
	name := "abcdefghijklmnopqrstuvwxyz012345"
	require.Len(t, name, types.LabelSize)

	resp, err := f.msgServer.Register(f.ctx, &types.MsgRegister{
		Creator:  f.addr(t, f.alice),
		Name:     name,
		Duration: types.MinDuration,
	})
	require.NoError(t, err)
	require.Equal(t, "0", resp.Cost)
	require.Empty(t, f.bank.transfers)
}

func TestRegisterReclaimsExpiredDomain(t *testing.T) {
	f := initFixture(t)
	f.register(t, f.alice, "alpha", types.MinDuration)
	f.addSubdomain(t, f.alice, "www.alpha")
	f.addRecord(t, f.alice, "www.alpha", types.RecordTypeA, "10.0.0.1")

	// Exactly at expiry the lease is over.
	f.advance(types.MinDuration)
	resp := f.register(t, f.bob, "alpha", types.MinDuration)
	require.Equal(t, f.ctx.BlockTime().UnixMilli(), int64(resp.LeaseStart))

	require.True(t, hasEvent(f.ctx, types.EventTypeWithdraw, map[string]string{
		types.AttributeKeyDomain: "alpha",
		types.AttributeKeyReason: types.WithdrawReasonExpired,
	}))

	dom, err := f.keeper.Registry.Get(f.ctx, "alpha")
	require.NoError(t, err)
	require.Equal(t, f.addr(t, f.bob), dom.Owner)

	found, err := f.keeper.AccountIndex.Has(f.ctx, f.alice)
	require.NoError(t, err)
	require.False(t, found)
	found, err = f.keeper.SubdomainIndex.Has(f.ctx, "alpha")
	require.NoError(t, err)
	require.False(t, found)
	found, err = f.keeper.RecordStore.Has(f.ctx, "www.alpha")
	require.NoError(t, err)
	require.False(t, found)
	f.requireInvariants(t)
}

func TestRegisterReclaimRolledBackOnFailure(t *testing.T) {
	f := initFixture(t)
	f.register(t, f.alice, "alpha", types.MinDuration)
	f.advance(types.MinDuration + 1)

	// bob cannot pay, so the whole call fails including the lazy reclaim.
	_, err := f.msgServer.Register(f.ctx, &types.MsgRegister{
		Creator:  f.addr(t, f.bob),
		Name:     "alpha",
		Duration: types.MinDuration,
	})
	require.ErrorIs(t, err, types.ErrInsufficientFunds)

	dom, err := f.keeper.Registry.Get(f.ctx, "alpha")
	require.NoError(t, err)
	require.Equal(t, f.addr(t, f.alice), dom.Owner)
	f.requireInvariants(t)
}

func TestRegisterManyKeepsIndexConsistent(t *testing.T) {
	f := initFixture(t)
	names := []string{"alpha", "bravo", "charlie", "delta"}
	for _, n := range names {
		f.register(t, f.alice, n, types.MinDuration)
	}

	owned, err := f.keeper.AccountIndex.Get(f.ctx, f.alice)
	require.NoError(t, err)
	require.Equal(t, names, owned.Names)
	f.requireInvariants(t)
}
