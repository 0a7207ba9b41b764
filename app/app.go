package app

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"cosmossdk.io/core/address"
	"cosmossdk.io/log"
	"cosmossdk.io/store"
	storemetrics "cosmossdk.io/store/metrics"
	storetypes "cosmossdk.io/store/types"
	"cosmossdk.io/x/tx/signing"
	cmtproto "github.com/cometbft/cometbft/proto/tendermint/types"
	dbm "github.com/cosmos/cosmos-db"
	"github.com/cosmos/cosmos-sdk/codec"
	addresscodec "github.com/cosmos/cosmos-sdk/codec/address"
	codectypes "github.com/cosmos/cosmos-sdk/codec/types"
	"github.com/cosmos/cosmos-sdk/runtime"
	"github.com/cosmos/cosmos-sdk/std"
	sdk "github.com/cosmos/cosmos-sdk/types"
	authkeeper "github.com/cosmos/cosmos-sdk/x/auth/keeper"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"
	bankkeeper "github.com/cosmos/cosmos-sdk/x/bank/keeper"
	banktypes "github.com/cosmos/cosmos-sdk/x/bank/types"
	"github.com/cosmos/gogoproto/proto"

	"namereg/crypto/pqc/dilithium"
	dnskeeper "namereg/x/dns/keeper"
	dnsmodule "namereg/x/dns/module"
	dnstypes "namereg/x/dns/types"
)

const (
	Name                 = "namereg"
	AccountAddressPrefix = "nrg"

	// MintModuleName funds genesis balances; nothing mints after genesis.
	MintModuleName = "mint"
)

var DefaultNodeHome string

var maccPerms = map[string][]string{
	MintModuleName: {authtypes.Minter},
}

func init() {
	sdk.DefaultBondDenom = dnstypes.DefaultFeeDenom
	SetAddressPrefixes()

	userHome, err := os.UserHomeDir()
	if err != nil {
		panic(err)
	}
	DefaultNodeHome = filepath.Join(userHome, "."+Name+"d")
}

// SetAddressPrefixes installs the nrg bech32 prefixes in the global SDK config.
func SetAddressPrefixes() {
	cfg := sdk.GetConfig()
	cfg.SetBech32PrefixForAccount(AccountAddressPrefix, AccountAddressPrefix+"pub")
	cfg.SetBech32PrefixForValidator(AccountAddressPrefix+"valoper", AccountAddressPrefix+"valoperpub")
	cfg.SetBech32PrefixForConsensusNode(AccountAddressPrefix+"valcons", AccountAddressPrefix+"valconspub")
}

type blockState struct {
	ms  storetypes.CacheMultiStore
	ctx sdk.Context
}

// App is a single-node ledger host: it owns the multistore, the keepers and
// the block lifecycle, and serializes every state transition.
type App struct {
	mu     sync.RWMutex
	logger log.Logger
	cfg    Config

	db   dbm.DB
	cms  storetypes.CommitMultiStore
	keys map[string]*storetypes.KVStoreKey

	appCodec          codec.Codec
	interfaceRegistry codectypes.InterfaceRegistry
	addressCodec      address.Codec

	AuthKeeper authkeeper.AccountKeeper
	BankKeeper bankkeeper.BaseKeeper
	DnsKeeper  dnskeeper.Keeper

	dns         dnsmodule.AppModule
	msgServer   dnstypes.MsgServer
	queryServer dnstypes.QueryServer

	limiter    *RateLimiter
	invariants *InvariantRegistry
	scheme     dilithium.Scheme
	nowFn      func() time.Time

	chainID      string
	block        *blockState
	lastBlockOps uint64
}

type Option func(*App)

// WithClock overrides the wall clock used to stamp new blocks.
func WithClock(now func() time.Time) Option {
	return func(a *App) { a.nowFn = now }
}

func WithScheme(s dilithium.Scheme) Option {
	return func(a *App) { a.scheme = s }
}

// New mounts the registry, auth and bank stores on db and loads the latest
// committed version.
func New(logger log.Logger, db dbm.DB, cfg Config, opts ...Option) (*App, error) {
	addrCodec := addresscodec.NewBech32Codec(AccountAddressPrefix)
	valCodec := addresscodec.NewBech32Codec(AccountAddressPrefix + "valoper")

	interfaceRegistry, err := codectypes.NewInterfaceRegistryWithOptions(codectypes.InterfaceRegistryOptions{
		ProtoFiles: proto.HybridResolver,
		SigningOptions: signing.Options{
			AddressCodec:          addrCodec,
			ValidatorAddressCodec: valCodec,
		},
	})
	if err != nil {
		return nil, err
	}
	std.RegisterInterfaces(interfaceRegistry)
	authtypes.RegisterInterfaces(interfaceRegistry)
	banktypes.RegisterInterfaces(interfaceRegistry)
	appCodec := codec.NewProtoCodec(interfaceRegistry)

	keys := storetypes.NewKVStoreKeys(authtypes.StoreKey, banktypes.StoreKey, dnstypes.StoreKey)
	cms := store.NewCommitMultiStore(db, logger, storemetrics.NewNoOpMetrics())
	for _, key := range keys {
		cms.MountStoreWithDB(key, storetypes.StoreTypeIAVL, nil)
	}
	if err := cms.LoadLatestVersion(); err != nil {
		return nil, fmt.Errorf("load store: %w", err)
	}

	authority := authtypes.NewModuleAddress(dnstypes.GovModuleName)
	authorityStr, err := addrCodec.BytesToString(authority)
	if err != nil {
		return nil, err
	}

	a := &App{
		logger:            logger,
		cfg:               cfg,
		db:                db,
		cms:               cms,
		keys:              keys,
		appCodec:          appCodec,
		interfaceRegistry: interfaceRegistry,
		addressCodec:      addrCodec,
		limiter:           NewRateLimiter(cfg.RateLimit),
		invariants:        NewInvariantRegistry(),
		scheme:            dilithium.Default(),
		nowFn:             time.Now,
	}

	a.AuthKeeper = authkeeper.NewAccountKeeper(
		appCodec,
		runtime.NewKVStoreService(keys[authtypes.StoreKey]),
		authtypes.ProtoBaseAccount,
		maccPerms,
		addrCodec,
		AccountAddressPrefix,
		authorityStr,
	)
	a.BankKeeper = bankkeeper.NewBaseKeeper(
		appCodec,
		runtime.NewKVStoreService(keys[banktypes.StoreKey]),
		a.AuthKeeper,
		blockedAddresses(),
		authorityStr,
		logger,
	)
	a.DnsKeeper = dnskeeper.NewKeeper(
		runtime.NewKVStoreService(keys[dnstypes.StoreKey]),
		addrCodec,
		authority,
	)
	a.DnsKeeper.SetBankKeeper(a.BankKeeper)

	a.dns = dnsmodule.NewAppModule(a.DnsKeeper)
	a.msgServer = a.dns.MsgServer()
	a.queryServer = a.dns.QueryServer()
	a.dns.RegisterInvariants(a.invariants)

	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// NewFromConfig opens the configured database under the node home.
func NewFromConfig(logger log.Logger, cfg Config, opts ...Option) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	db, err := dbm.NewDB("application", dbm.BackendType(cfg.DBBackend), cfg.DataDir())
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	a, err := New(logger, db, cfg, opts...)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return a, nil
}

// NewLogger builds the node logger from a level string such as "info" or
// "x/dns:debug,*:info".
func NewLogger(level string) (log.Logger, error) {
	filter, err := log.ParseLogLevel(level)
	if err != nil {
		return nil, err
	}
	return log.NewLogger(os.Stderr, log.FilterOption(filter)), nil
}

func blockedAddresses() map[string]bool {
	out := make(map[string]bool, len(maccPerms))
	for name := range maccPerms {
		out[authtypes.NewModuleAddress(name).String()] = true
	}
	return out
}

func (a *App) Logger() log.Logger                              { return a.logger }
func (a *App) AppCodec() codec.Codec                           { return a.appCodec }
func (a *App) InterfaceRegistry() codectypes.InterfaceRegistry { return a.interfaceRegistry }
func (a *App) AddressCodec() address.Codec                     { return a.addressCodec }
func (a *App) QueryServer() dnstypes.QueryServer               { return a.queryServer }
func (a *App) Invariants() *InvariantRegistry                  { return a.invariants }
func (a *App) Scheme() dilithium.Scheme                        { return a.scheme }

func (a *App) GetKey(storeKey string) *storetypes.KVStoreKey { return a.keys[storeKey] }

func (a *App) ChainID() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.chainID
}

// LastHeight is the height of the last committed block, 0 before genesis.
func (a *App) LastHeight() int64 {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.lastHeight()
}

func (a *App) lastHeight() int64 {
	return a.cms.LastCommitID().Version
}

// LastBlockOps is the number of registry operations in the last committed
// block.
func (a *App) LastBlockOps() uint64 {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.lastBlockOps
}

// BlockTime is the timestamp of the block currently being built.
func (a *App) BlockTime() time.Time {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.block == nil {
		return time.Time{}
	}
	return a.block.ctx.BlockTime()
}

// Query runs fn against a read-only branch of the last committed state,
// stamped with the pending block's time.
func (a *App) Query(fn func(ctx sdk.Context) error) error {
	a.mu.RLock()
	defer a.mu.RUnlock()

	header := cmtproto.Header{ChainID: a.chainID, Height: a.lastHeight()}
	if a.block != nil {
		header.Time = a.block.ctx.BlockTime()
	}
	ctx := sdk.NewContext(a.cms.CacheMultiStore(), header, false, a.logger)
	return fn(ctx)
}

// Account reads addr from the pending block, so a sequence bumped by a
// transaction delivered earlier in the same block is already visible.
func (a *App) Account(addr sdk.AccAddress) (sdk.AccountI, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	var ctx sdk.Context
	if a.block != nil {
		ctx = sdk.NewContext(a.block.ms.CacheMultiStore(), a.block.ctx.BlockHeader(), false, a.logger)
	} else {
		ctx = sdk.NewContext(a.cms.CacheMultiStore(), cmtproto.Header{ChainID: a.chainID}, false, a.logger)
	}
	acc := a.AuthKeeper.GetAccount(ctx, addr)
	return acc, acc != nil
}

func (a *App) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.db.Close()
}
