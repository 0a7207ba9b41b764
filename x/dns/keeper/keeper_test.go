package keeper_test

import (
	"context"
	"testing"
	"time"

	"cosmossdk.io/core/address"
	sdkmath "cosmossdk.io/math"
	storetypes "cosmossdk.io/store/types"
	addresscodec "github.com/cosmos/cosmos-sdk/codec/address"
	"github.com/cosmos/cosmos-sdk/runtime"
	"github.com/cosmos/cosmos-sdk/testutil"
	sdk "github.com/cosmos/cosmos-sdk/types"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"
	"github.com/stretchr/testify/require"

	"namereg/x/dns/keeper"
	"namereg/x/dns/types"
)

const genesisTimeMs = 1_700_000_000_000

type transfer struct {
	from string
	to   string
	amt  sdk.Coins
}

type bankMock struct {
	balances  map[string]sdk.Coins
	transfers []transfer
}

func newBankMock() *bankMock {
	return &bankMock{balances: make(map[string]sdk.Coins)}
}

func (m *bankMock) SpendableCoins(_ context.Context, addr sdk.AccAddress) sdk.Coins {
	return m.balances[addr.String()]
}

func (m *bankMock) SendCoins(_ context.Context, from, to sdk.AccAddress, amt sdk.Coins) error {
	bal := m.balances[from.String()]
	if !bal.IsAllGTE(amt) {
		panic("insufficient balance in mock bank")
	}
	m.balances[from.String()] = bal.Sub(amt...)
	m.balances[to.String()] = m.balances[to.String()].Add(amt...)
	m.transfers = append(m.transfers, transfer{from: from.String(), to: to.String(), amt: amt})
	return nil
}

func (m *bankMock) fund(addr sdk.AccAddress, amount int64) {
	m.balances[addr.String()] = m.balances[addr.String()].Add(sdk.NewInt64Coin(types.DefaultFeeDenom, amount))
}

func (m *bankMock) balance(addr sdk.AccAddress) sdkmath.Int {
	return m.balances[addr.String()].AmountOf(types.DefaultFeeDenom)
}

type fixture struct {
	ctx          sdk.Context
	keeper       keeper.Keeper
	msgServer    types.MsgServer
	queryServer  types.QueryServer
	addressCodec address.Codec
	bank         *bankMock

	admin sdk.AccAddress
	alice sdk.AccAddress
	bob   sdk.AccAddress
}

func initFixture(t *testing.T) *fixture {
	t.Helper()

	cfg := sdk.GetConfig()
	cfg.SetBech32PrefixForAccount("nrg", "nrgpub")

	addrCodec := addresscodec.NewBech32Codec(sdk.GetConfig().GetBech32AccountAddrPrefix())
	storeKey := storetypes.NewKVStoreKey(types.StoreKey)
	storeService := runtime.NewKVStoreService(storeKey)
	ctx := testutil.DefaultContextWithDB(t, storeKey, storetypes.NewTransientStoreKey("transient_test")).Ctx
	ctx = ctx.WithBlockTime(time.UnixMilli(genesisTimeMs))

	authority := authtypes.NewModuleAddress(types.GovModuleName)

	k := keeper.NewKeeper(storeService, addrCodec, authority)
	bank := newBankMock()
	k.SetBankKeeper(bank)

	f := &fixture{
		ctx:          ctx,
		keeper:       k,
		msgServer:    keeper.NewMsgServerImpl(k),
		queryServer:  keeper.NewQueryServerImpl(k),
		addressCodec: addrCodec,
		bank:         bank,
		admin:        sdk.AccAddress([]byte("admin_______________")),
		alice:        sdk.AccAddress([]byte("alice_______________")),
		bob:          sdk.AccAddress([]byte("bob_________________")),
	}

	gen := types.DefaultGenesis()
	gen.Admin = f.addr(t, f.admin)
	require.NoError(t, k.InitGenesis(ctx, *gen))

	return f
}

func (f *fixture) addr(t *testing.T, a sdk.AccAddress) string {
	t.Helper()
	s, err := f.addressCodec.BytesToString(a)
	require.NoError(t, err)
	return s
}

// advance moves the block clock forward by ms and starts a fresh event log.
func (f *fixture) advance(ms uint64) {
	next := f.ctx.BlockTime().Add(time.Duration(ms) * time.Millisecond)
	f.ctx = f.ctx.WithBlockTime(next).WithEventManager(sdk.NewEventManager())
}

func (f *fixture) register(t *testing.T, owner sdk.AccAddress, name string, duration uint64) *types.MsgRegisterResponse {
	t.Helper()
	f.bank.fund(owner, types.Cost(len(name), duration, types.DefaultPriceBase).Int64()+1)
	resp, err := f.msgServer.Register(f.ctx, &types.MsgRegister{
		Creator:  f.addr(t, owner),
		Name:     name,
		Duration: duration,
	})
	require.NoError(t, err)
	return resp
}

func (f *fixture) addSubdomain(t *testing.T, owner sdk.AccAddress, name string) {
	t.Helper()
	_, err := f.msgServer.AddSubdomain(f.ctx, &types.MsgAddSubdomain{Creator: f.addr(t, owner), Name: name})
	require.NoError(t, err)
}

func (f *fixture) addRecord(t *testing.T, owner sdk.AccAddress, name string, rt types.RecordType, value string) {
	t.Helper()
	_, err := f.msgServer.AddRecord(f.ctx, &types.MsgAddRecord{
		Creator: f.addr(t, owner),
		Name:    name,
		Type:    rt,
		Value:   []byte(value),
		TTL:     300,
	})
	require.NoError(t, err)
}

func (f *fixture) requireInvariants(t *testing.T) {
	t.Helper()
	msg, broken := keeper.AllInvariants(f.keeper)(f.ctx)
	require.False(t, broken, msg)
}

func hasEvent(ctx sdk.Context, eventType string, attrs map[string]string) bool {
	for _, ev := range ctx.EventManager().Events() {
		if ev.Type != eventType {
			continue
		}
		matched := 0
		for _, a := range ev.Attributes {
			if want, ok := attrs[a.Key]; ok && want == a.Value {
				matched++
			}
		}
		if matched == len(attrs) {
			return true
		}
	}
	return false
}

func TestParamsDefaultsAndUpdate(t *testing.T) {
	f := initFixture(t)

	require.Equal(t, types.DefaultParams(), f.keeper.GetParams(f.ctx))

	params := types.DefaultParams()
	params.PriceBase = 3
	require.NoError(t, f.keeper.SetParams(f.ctx, params))
	require.Equal(t, params, f.keeper.GetParams(f.ctx))

	params.MinDuration = params.MaxDuration + 1
	require.Error(t, f.keeper.SetParams(f.ctx, params))
}

func TestGetAdmin(t *testing.T) {
	f := initFixture(t)

	admin, err := f.keeper.GetAdmin(f.ctx)
	require.NoError(t, err)
	require.Equal(t, f.admin, admin)
}

func TestBeginBlockResetsOpCounter(t *testing.T) {
	f := initFixture(t)
	f.register(t, f.alice, "alpha", types.MinDuration)

	cnt, err := f.keeper.OpsThisBlock.Get(f.ctx)
	require.NoError(t, err)
	require.Equal(t, uint64(1), cnt)

	require.NoError(t, f.keeper.BeginBlock(f.ctx))
	cnt, err = f.keeper.OpsThisBlock.Get(f.ctx)
	require.NoError(t, err)
	require.Zero(t, cnt)
}

func TestMsgUpdateParams(t *testing.T) {
	f := initFixture(t)
	authority := f.addr(t, f.keeper.GetAuthority())

	params := types.DefaultParams()
	params.PriceBase = 7

	_, err := f.msgServer.UpdateParams(f.ctx, &types.MsgUpdateParams{Authority: f.addr(t, f.alice), Params: params})
	require.ErrorIs(t, err, types.ErrInvalidSigner)
	require.Equal(t, types.DefaultParams(), f.keeper.GetParams(f.ctx))

	bad := params
	bad.MinDuration = bad.MaxDuration + 1
	_, err = f.msgServer.UpdateParams(f.ctx, &types.MsgUpdateParams{Authority: authority, Params: bad})
	require.Error(t, err)

	_, err = f.msgServer.UpdateParams(f.ctx, &types.MsgUpdateParams{Authority: authority, Params: params})
	require.NoError(t, err)
	require.Equal(t, params, f.keeper.GetParams(f.ctx))
}
