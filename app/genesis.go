package app

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	errorsmod "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"
	banktypes "github.com/cosmos/cosmos-sdk/x/bank/types"

	dnstypes "namereg/x/dns/types"
)

type GenesisAccount struct {
	Address string    `json:"address"`
	Coins   sdk.Coins `json:"coins"`
}

// GenesisDoc is the chain's genesis file: funded accounts plus the registry
// module state.
type GenesisDoc struct {
	ChainID     string           `json:"chain_id"`
	GenesisTime time.Time        `json:"genesis_time"`
	Accounts    []GenesisAccount `json:"accounts"`
	DNS         json.RawMessage  `json:"dns"`
}

// DefaultGenesisDoc funds admin with coins and makes it the registry admin.
func DefaultGenesisDoc(chainID string, admin sdk.AccAddress, coins sdk.Coins, genesisTime time.Time) (*GenesisDoc, error) {
	dns := dnstypes.DefaultGenesis()
	dns.Admin = admin.String()
	bz, err := json.Marshal(dns)
	if err != nil {
		return nil, err
	}
	return &GenesisDoc{
		ChainID:     chainID,
		GenesisTime: genesisTime.UTC(),
		Accounts:    []GenesisAccount{{Address: admin.String(), Coins: coins}},
		DNS:         bz,
	}, nil
}

// DNSState decodes the registry section of the document.
func (g GenesisDoc) DNSState() (dnstypes.GenesisState, error) {
	var gs dnstypes.GenesisState
	if err := json.Unmarshal(g.DNS, &gs); err != nil {
		return gs, errorsmod.Wrapf(ErrInvalidGenesis, "dns: %s", err)
	}
	return gs, nil
}

// SetDNSState replaces the registry section of the document.
func (g *GenesisDoc) SetDNSState(gs dnstypes.GenesisState) error {
	bz, err := json.Marshal(gs)
	if err != nil {
		return err
	}
	g.DNS = bz
	return nil
}

func (g GenesisDoc) Validate() error {
	if g.ChainID == "" {
		return errorsmod.Wrap(ErrInvalidGenesis, "chain_id required")
	}
	if g.GenesisTime.IsZero() {
		return errorsmod.Wrap(ErrInvalidGenesis, "genesis_time required")
	}
	seen := make(map[string]struct{}, len(g.Accounts))
	for i, acc := range g.Accounts {
		if _, err := sdk.AccAddressFromBech32(acc.Address); err != nil {
			return errorsmod.Wrapf(ErrInvalidGenesis, "accounts[%d]: %s", i, err)
		}
		if _, ok := seen[acc.Address]; ok {
			return errorsmod.Wrapf(ErrInvalidGenesis, "duplicated account %s", acc.Address)
		}
		seen[acc.Address] = struct{}{}
		if err := acc.Coins.Validate(); err != nil {
			return errorsmod.Wrapf(ErrInvalidGenesis, "accounts[%d]: %s", i, err)
		}
	}
	gs, err := g.DNSState()
	if err != nil {
		return err
	}
	if err := gs.Validate(); err != nil {
		return errorsmod.Wrapf(ErrInvalidGenesis, "dns: %s", err)
	}
	return nil
}

func (g GenesisDoc) balances() []banktypes.Balance {
	out := make([]banktypes.Balance, 0, len(g.Accounts))
	for _, acc := range g.Accounts {
		if acc.Coins.Empty() {
			continue
		}
		out = append(out, banktypes.Balance{Address: acc.Address, Coins: acc.Coins})
	}
	return banktypes.SanitizeGenesisBalances(out)
}

func LoadGenesisDoc(path string) (*GenesisDoc, error) {
	bz, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var doc GenesisDoc
	if err := json.Unmarshal(bz, &doc); err != nil {
		return nil, errorsmod.Wrapf(ErrInvalidGenesis, "%s: %s", path, err)
	}
	return &doc, nil
}

func (g GenesisDoc) Save(path string) error {
	bz, err := json.MarshalIndent(g, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, bz, 0o644)
}

// InitChain loads doc into an empty store and commits it as height 1.
func (a *App) InitChain(doc *GenesisDoc) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if h := a.lastHeight(); h != 0 {
		return fmt.Errorf("store already initialized at height %d", h)
	}
	if err := doc.Validate(); err != nil {
		return err
	}

	a.chainID = doc.ChainID
	a.beginBlock(doc.GenesisTime)
	ctx := a.block.ctx

	if err := a.initGenesis(ctx, doc); err != nil {
		a.block = nil
		return err
	}
	if err := a.invariants.AssertAll(ctx); err != nil {
		a.block = nil
		return err
	}

	_, err := a.commit(doc.GenesisTime)
	if err != nil {
		return err
	}
	a.logger.Info("initialized chain", "chain_id", doc.ChainID, "accounts", len(doc.Accounts))
	return nil
}

// Resume attaches to a store that already holds committed blocks.
func (a *App) Resume(doc *GenesisDoc) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.lastHeight() == 0 {
		return fmt.Errorf("store is empty; run InitChain first")
	}
	a.chainID = doc.ChainID
	a.beginBlock(a.nowFn())
	return nil
}

// Start initializes the chain on first boot and resumes it afterwards.
func (a *App) Start(doc *GenesisDoc) error {
	if a.LastHeight() == 0 {
		return a.InitChain(doc)
	}
	return a.Resume(doc)
}

func (a *App) initGenesis(ctx sdk.Context, doc *GenesisDoc) (err error) {
	// bank and module genesis panic on bad input.
	defer func() {
		if r := recover(); r != nil {
			err = errorsmod.Wrapf(ErrInvalidGenesis, "%v", r)
		}
	}()

	if err := a.AuthKeeper.Params.Set(ctx, authtypes.DefaultParams()); err != nil {
		return err
	}
	for _, acc := range doc.Accounts {
		addr, err := sdk.AccAddressFromBech32(acc.Address)
		if err != nil {
			return err
		}
		a.AuthKeeper.SetAccount(ctx, a.AuthKeeper.NewAccountWithAddress(ctx, addr))
	}
	bankGen := banktypes.DefaultGenesisState()
	bankGen.Balances = doc.balances()
	a.BankKeeper.InitGenesis(ctx, bankGen)

	a.dns.InitGenesis(ctx, a.appCodec, doc.DNS)
	return nil
}

// ExportGenesis snapshots the committed state as a genesis document.
func (a *App) ExportGenesis() (*GenesisDoc, error) {
	doc := &GenesisDoc{ChainID: a.ChainID(), GenesisTime: a.BlockTime().UTC()}
	err := a.Query(func(ctx sdk.Context) (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("export: %v", r)
			}
		}()
		for _, bal := range a.BankKeeper.GetAccountsBalances(ctx) {
			doc.Accounts = append(doc.Accounts, GenesisAccount{Address: bal.Address, Coins: bal.Coins})
		}
		doc.DNS = a.dns.ExportGenesis(ctx, a.appCodec)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

