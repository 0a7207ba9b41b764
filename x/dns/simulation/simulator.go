package simulation

import (
	"fmt"
	"math/rand"
	"sort"
	"time"

	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	simtypes "github.com/cosmos/cosmos-sdk/types/simulation"

	"namereg/app"
	"namereg/x/dns/types"
)

type Config struct {
	ChainID     string
	Seed        int64
	Accounts    int
	Blocks      int
	OpsPerBlock int
	// MaxBlockGap bounds how far block time jumps between blocks.
	MaxBlockGap time.Duration
	GenesisTime time.Time
	Params      simtypes.AppParams
}

func DefaultConfig() Config {
	return Config{
		ChainID:     "namereg-sim",
		Seed:        42,
		Accounts:    10,
		Blocks:      50,
		OpsPerBlock: 20,
		MaxBlockGap: 72 * time.Hour,
		GenesisTime: time.UnixMilli(1_700_000_000_000).UTC(),
		Params:      simtypes.AppParams{},
	}
}

// OpStats counts outcomes per message type.
type OpStats struct {
	OK     int `json:"ok"`
	Failed int `json:"failed"`
	NoOp   int `json:"noop"`
}

type Report struct {
	Seed   int64              `json:"seed"`
	Height int64              `json:"height"`
	Ops    map[string]OpStats `json:"ops"`
	Events map[string]int     `json:"events"`
}

func (r Report) String() string {
	names := make([]string, 0, len(r.Ops))
	for t := range r.Ops {
		names = append(names, t)
	}
	sort.Strings(names)
	out := fmt.Sprintf("seed=%d height=%d\n", r.Seed, r.Height)
	for _, t := range names {
		s := r.Ops[t]
		out += fmt.Sprintf("  %-17s ok=%d failed=%d noop=%d\n", t, s.OK, s.Failed, s.NoOp)
	}
	return out
}

// RandomGenesis funds every account generously and makes accs[0] the admin.
func RandomGenesis(cfg Config, accs []simtypes.Account) (*app.GenesisDoc, error) {
	if len(accs) == 0 {
		return nil, fmt.Errorf("simulation needs at least one account")
	}
	coins := sdk.NewCoins(sdk.NewCoin(types.DefaultFeeDenom, sdkmath.NewInt(1_000_000_000_000_000)))
	doc, err := app.DefaultGenesisDoc(cfg.ChainID, accs[0].Address, coins, cfg.GenesisTime)
	if err != nil {
		return nil, err
	}
	for _, acc := range accs[1:] {
		doc.Accounts = append(doc.Accounts, app.GenesisAccount{Address: acc.Address.String(), Coins: coins})
	}
	return doc, nil
}

// Run initializes host from a random genesis and drives it with weighted
// random operations, asserting every invariant after each block.
func Run(host *app.App, cfg Config) (Report, error) {
	r := rand.New(rand.NewSource(cfg.Seed))
	accs := simtypes.RandomAccounts(r, cfg.Accounts)
	report := Report{Seed: cfg.Seed, Ops: make(map[string]OpStats), Events: make(map[string]int)}

	doc, err := RandomGenesis(cfg, accs)
	if err != nil {
		return report, err
	}
	if err := host.InitChain(doc); err != nil {
		return report, err
	}

	ops := WeightedOperations(cfg.Params, host.DnsKeeper)
	totalWeight := 0
	for _, op := range ops {
		totalWeight += op.Weight
	}
	if totalWeight <= 0 {
		return report, fmt.Errorf("all operation weights are zero")
	}
	maxGap := int64(cfg.MaxBlockGap)
	if maxGap <= 0 {
		maxGap = int64(time.Second)
	}

	blockTime := cfg.GenesisTime
	for block := 0; block < cfg.Blocks; block++ {
		for i := 0; i < cfg.OpsPerBlock; i++ {
			op := pickOperation(r, ops, totalWeight)
			var (
				msg     types.Msg
				comment string
			)
			err := host.Query(func(ctx sdk.Context) error {
				var err error
				msg, comment, err = op.Op(r, ctx, accs)
				return err
			})
			if err != nil {
				return report, fmt.Errorf("block %d: %s: %w", block, op.MsgType, err)
			}

			stats := report.Ops[op.MsgType]
			switch {
			case msg == nil:
				stats.NoOp++
				host.Logger().Debug("sim no-op", "type", op.MsgType, "comment", comment)
			default:
				res := host.RunMsg(msg)
				if res.IsOK() {
					stats.OK++
					for _, ev := range res.Events {
						report.Events[ev.Type]++
					}
				} else {
					stats.Failed++
				}
			}
			report.Ops[op.MsgType] = stats
		}

		blockTime = blockTime.Add(time.Duration(r.Int63n(maxGap) + 1))
		if _, err := host.CommitAt(blockTime); err != nil {
			return report, fmt.Errorf("block %d: %w", block, err)
		}
		err := host.Query(func(ctx sdk.Context) error {
			return host.Invariants().AssertAll(ctx)
		})
		if err != nil {
			return report, fmt.Errorf("block %d: %w", block, err)
		}
	}

	report.Height = host.LastHeight()
	return report, nil
}

func pickOperation(r *rand.Rand, ops []WeightedOperation, totalWeight int) WeightedOperation {
	n := r.Intn(totalWeight)
	for _, op := range ops {
		if n < op.Weight {
			return op
		}
		n -= op.Weight
	}
	return ops[len(ops)-1]
}
