package keeper_test

import (
	"strings"
	"testing"

	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	"github.com/stretchr/testify/require"

	"namereg/x/dns/types"
)

func TestTransfer(t *testing.T) {
	f := initFixture(t)
	reg := f.register(t, f.alice, "alpha", types.MinDuration)
	f.register(t, f.alice, "bravo", types.MinDuration)
	f.register(t, f.bob, "charlie", types.MinDuration)
	f.advance(1000)

	_, err := f.msgServer.Transfer(f.ctx, &types.MsgTransfer{
		Creator:  f.addr(t, f.alice),
		Name:     "ALPHA",
		NewOwner: f.addr(t, f.bob),
	})
	require.NoError(t, err)

	dom, err := f.keeper.Registry.Get(f.ctx, "alpha")
	require.NoError(t, err)
	require.Equal(t, f.addr(t, f.bob), dom.Owner)
	require.Equal(t, reg.LeaseStart, dom.LeaseStart)
	require.Equal(t, types.MinDuration, dom.LeaseDuration)

	owned, err := f.keeper.AccountIndex.Get(f.ctx, f.alice)
	require.NoError(t, err)
	require.Equal(t, []string{"bravo"}, owned.Names)
	owned, err = f.keeper.AccountIndex.Get(f.ctx, f.bob)
	require.NoError(t, err)
	require.Equal(t, []string{"charlie", "alpha"}, owned.Names)

	require.True(t, hasEvent(f.ctx, types.EventTypeTransfer, map[string]string{
		types.AttributeKeyDomain: "alpha",
		types.AttributeKeyFrom:   f.addr(t, f.alice),
		types.AttributeKeyTo:     f.addr(t, f.bob),
	}))
	f.requireInvariants(t)
}

func TestTransferDropsEmptiedSourceIndex(t *testing.T) {
	f := initFixture(t)
	f.register(t, f.alice, "alpha", types.MinDuration)

	_, err := f.msgServer.Transfer(f.ctx, &types.MsgTransfer{
		Creator:  f.addr(t, f.alice),
		Name:     "alpha",
		NewOwner: f.addr(t, f.bob),
	})
	require.NoError(t, err)

	found, err := f.keeper.AccountIndex.Has(f.ctx, f.alice)
	require.NoError(t, err)
	require.False(t, found)
	f.requireInvariants(t)
}

func TestTransferRejects(t *testing.T) {
	f := initFixture(t)
	f.register(t, f.alice, "alpha", types.MinDuration)
	alice, bob := f.addr(t, f.alice), f.addr(t, f.bob)

	tests := []struct {
		desc    string
		request *types.MsgTransfer
		err     error
	}{
		{
			desc:    "invalid creator",
			request: &types.MsgTransfer{Creator: "invalid", Name: "alpha", NewOwner: bob},
			err:     sdkerrors.ErrInvalidAddress,
		},
		{
			desc:    "invalid new owner",
			request: &types.MsgTransfer{Creator: alice, Name: "alpha", NewOwner: "invalid"},
			err:     sdkerrors.ErrInvalidAddress,
		},
		{
			desc:    "not registered",
			request: &types.MsgTransfer{Creator: alice, Name: "bravo", NewOwner: bob},
			err:     types.ErrDomainNotFound,
		},
		{
			desc:    "subdomain names are not transferable",
			request: &types.MsgTransfer{Creator: alice, Name: "www.alpha", NewOwner: bob},
			err:     types.ErrDomainNotFound,
		},
		{
			desc:    "not owner",
			request: &types.MsgTransfer{Creator: bob, Name: "alpha", NewOwner: bob},
			err:     types.ErrNotOwner,
		},
		{
			desc:    "invalid name",
			request: &types.MsgTransfer{Creator: alice, Name: "al_pha", NewOwner: bob},
			err:     types.ErrInvalidName,
		},
	}
	for _, tc := range tests {
		t.Run(tc.desc, func(t *testing.T) {
			_, err := f.msgServer.Transfer(f.ctx, tc.request)
			require.ErrorIs(t, err, tc.err)
		})
	}

	dom, err := f.keeper.Registry.Get(f.ctx, "alpha")
	require.NoError(t, err)
	require.Equal(t, alice, dom.Owner)
	f.requireInvariants(t)
}

func TestTransferExpiredDomainFails(t *testing.T) {
	f := initFixture(t)
	f.register(t, f.alice, "alpha", types.MinDuration)
	f.advance(types.MinDuration)

	_, err := f.msgServer.Transfer(f.ctx, &types.MsgTransfer{
		Creator:  f.addr(t, f.alice),
		Name:     "alpha",
		NewOwner: f.addr(t, f.bob),
	})
	require.ErrorIs(t, err, types.ErrDomainNotFound)

	// The failed call rolls back its own reclaim.
	found, err := f.keeper.Registry.Has(f.ctx, "alpha")
	require.NoError(t, err)
	require.True(t, found)
}

func TestUppercaseAddressesStoreCanonicalOwner(t *testing.T) {
	f := initFixture(t)
	f.bank.fund(f.alice, types.Cost(5, types.MinDuration, types.DefaultPriceBase).Int64()+1)

	_, err := f.msgServer.Register(f.ctx, &types.MsgRegister{
		Creator:  strings.ToUpper(f.addr(t, f.alice)),
		Name:     "alpha",
		Duration: types.MinDuration,
	})
	require.NoError(t, err)

	dom, err := f.keeper.Registry.Get(f.ctx, "alpha")
	require.NoError(t, err)
	require.Equal(t, f.addr(t, f.alice), dom.Owner)
	f.requireInvariants(t)

	_, err = f.msgServer.Transfer(f.ctx, &types.MsgTransfer{
		Creator:  f.addr(t, f.alice),
		Name:     "alpha",
		NewOwner: strings.ToUpper(f.addr(t, f.bob)),
	})
	require.NoError(t, err)

	dom, err = f.keeper.Registry.Get(f.ctx, "alpha")
	require.NoError(t, err)
	require.Equal(t, f.addr(t, f.bob), dom.Owner)
	require.True(t, hasEvent(f.ctx, types.EventTypeTransfer, map[string]string{
		types.AttributeKeyTo: f.addr(t, f.bob),
	}))
	f.requireInvariants(t)

	gs, err := f.keeper.ExportGenesis(f.ctx)
	require.NoError(t, err)
	require.NoError(t, gs.Validate())
}
