package keeper

import (
	"context"
	"errors"
	"fmt"

	"namereg/x/dns/types"

	"cosmossdk.io/collections"
	collcodec "cosmossdk.io/collections/codec"
	"cosmossdk.io/core/address"
	corestore "cosmossdk.io/core/store"
	"cosmossdk.io/log"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// Keeper owns the registry state: Registry, AccountIndex, SubdomainIndex,
// RecordStore and the Admin scalar. Every message handler reads and writes
// them only through a context, so the same Keeper serves any store.
type Keeper struct {
	storeService corestore.KVStoreService
	addressCodec address.Codec
	authority    []byte

	Schema         collections.Schema
	Params         collections.Item[types.Params]
	Admin          collections.Item[sdk.AccAddress]
	Registry       collections.Map[string, types.TopDomain]
	AccountIndex   collections.Map[sdk.AccAddress, types.DomainList]
	SubdomainIndex collections.Map[string, types.DomainList]
	RecordStore    collections.Map[string, types.RecordList]
	OpsThisBlock   collections.Item[uint64]

	bank types.BankKeeper
}

func NewKeeper(
	storeService corestore.KVStoreService,
	addressCodec address.Codec,
	authority []byte,
) Keeper {
	if _, err := addressCodec.BytesToString(authority); err != nil {
		panic(fmt.Sprintf("invalid authority address %s: %s", authority, err))
	}

	sb := collections.NewSchemaBuilder(storeService)

	k := Keeper{
		storeService: storeService,
		addressCodec: addressCodec,
		authority:    authority,

		Params:         collections.NewItem(sb, types.ParamsKey, "params", types.ParamsValue),
		Admin:          collections.NewItem(sb, types.AdminKey, "admin", collcodec.KeyToValueCodec(sdk.AccAddressKey)),
		Registry:       collections.NewMap(sb, types.RegistryKey, "registry", collections.StringKey, types.TopDomainValue),
		AccountIndex:   collections.NewMap(sb, types.AccountIndexKey, "account_index", sdk.AccAddressKey, types.DomainListValue),
		SubdomainIndex: collections.NewMap(sb, types.SubdomainIndexKey, "subdomain_index", collections.StringKey, types.DomainListValue),
		RecordStore:    collections.NewMap(sb, types.RecordStoreKey, "record_store", collections.StringKey, types.RecordListValue),
		OpsThisBlock:   collections.NewItem(sb, types.OpsThisBlockKey, "ops_this_block", collections.Uint64Value),
	}

	schema, err := sb.Build()
	if err != nil {
		panic(err)
	}
	k.Schema = schema

	return k
}

func (k Keeper) GetAuthority() []byte { return k.authority }

func (k Keeper) AddressCodec() address.Codec { return k.addressCodec }

func (k *Keeper) SetBankKeeper(b types.BankKeeper) { k.bank = b }

func (k Keeper) Logger(ctx context.Context) log.Logger {
	return sdk.UnwrapSDKContext(ctx).Logger().With("module", "x/"+types.ModuleName)
}

// GetParams falls back to defaults when params were never stored.
func (k Keeper) GetParams(ctx context.Context) types.Params {
	params, err := k.Params.Get(ctx)
	if err != nil {
		return types.DefaultParams()
	}
	return params
}

func (k Keeper) SetParams(ctx context.Context, params types.Params) error {
	if err := params.Validate(); err != nil {
		return err
	}
	return k.Params.Set(ctx, params)
}

func (k Keeper) GetAdmin(ctx context.Context) (sdk.AccAddress, error) {
	admin, err := k.Admin.Get(ctx)
	if errors.Is(err, collections.ErrNotFound) {
		return nil, types.ErrAdminNotSet
	}
	return admin, err
}

// nowMs is the ledger clock in milliseconds, the unit lease fields use.
func (k Keeper) nowMs(ctx context.Context) uint64 {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	ms := sdkCtx.BlockTime().UnixMilli()
	if ms < 0 {
		return 0
	}
	return uint64(ms)
}

func (k Keeper) signer(creator string) (sdk.AccAddress, error) {
	bz, err := k.addressCodec.StringToBytes(creator)
	if err != nil {
		return nil, err
	}
	return sdk.AccAddress(bz), nil
}

func (k Keeper) ownerAddress(dom types.TopDomain) (sdk.AccAddress, error) {
	bz, err := k.addressCodec.StringToBytes(dom.Owner)
	if err != nil {
		return nil, fmt.Errorf("domain %s has malformed owner %q: %w", dom.Name, dom.Owner, err)
	}
	return sdk.AccAddress(bz), nil
}

// atomically runs fn against a cached branch of the store and writes it back
// only when fn succeeds, so a failed operation leaves no partial writes.
func (k Keeper) atomically(ctx context.Context, fn func(ctx sdk.Context) error) error {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	cacheCtx, write := sdkCtx.CacheContext()
	if err := fn(cacheCtx); err != nil {
		return err
	}
	write()
	return nil
}

func (k Keeper) countOp(ctx context.Context) error {
	cnt, err := k.OpsInBlock(ctx)
	if err != nil {
		return err
	}
	return k.OpsThisBlock.Set(ctx, cnt+1)
}

// OpsInBlock is the number of state-changing registry operations applied
// since the last BeginBlock.
func (k Keeper) OpsInBlock(ctx context.Context) (uint64, error) {
	cnt, err := k.OpsThisBlock.Get(ctx)
	if errors.Is(err, collections.ErrNotFound) {
		return 0, nil
	}
	return cnt, err
}

// BeginBlock resets the per-block operation counter.
func (k Keeper) BeginBlock(ctx context.Context) error {
	return k.OpsThisBlock.Set(ctx, 0)
}

// ownedDomain loads the top domain top and checks that caller owns it.
func (k Keeper) ownedDomain(ctx context.Context, caller sdk.AccAddress, top string) (types.TopDomain, error) {
	dom, err := k.Registry.Get(ctx, top)
	if errors.Is(err, collections.ErrNotFound) {
		return dom, types.ErrDomainNotFound.Wrap(top)
	}
	if err != nil {
		return dom, err
	}
	owner, err := k.ownerAddress(dom)
	if err != nil {
		return dom, err
	}
	if !owner.Equals(caller) {
		return dom, types.ErrNotOwner.Wrapf("%s is owned by %s", top, dom.Owner)
	}
	return dom, nil
}
