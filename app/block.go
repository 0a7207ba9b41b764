package app

import (
	"fmt"
	"time"

	storetypes "cosmossdk.io/store/types"
	cmtproto "github.com/cometbft/cometbft/proto/tendermint/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"namereg/app/metrics"
)

// beginBlock opens the next block on a branch of the committed state. Block
// time never moves backwards.
func (a *App) beginBlock(t time.Time) {
	if a.block != nil && t.Before(a.block.ctx.BlockTime()) {
		t = a.block.ctx.BlockTime()
	}
	header := cmtproto.Header{
		ChainID: a.chainID,
		Height:  a.lastHeight() + 1,
		Time:    t.UTC(),
	}
	ms := a.cms.CacheMultiStore()
	ctx := sdk.NewContext(ms, header, false, a.logger)

	if err := a.dns.BeginBlock(ctx); err != nil {
		a.logger.Error("begin block", "height", header.Height, "err", err)
	}
	a.block = &blockState{ms: ms, ctx: ctx}
}

// Commit closes the pending block and opens the next one at the current
// clock time.
func (a *App) Commit() (storetypes.CommitID, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.commit(a.nowFn())
}

// CommitAt is Commit with an explicit next block time.
func (a *App) CommitAt(next time.Time) (storetypes.CommitID, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.commit(next)
}

func (a *App) commit(next time.Time) (storetypes.CommitID, error) {
	if a.block == nil {
		return storetypes.CommitID{}, fmt.Errorf("no block in progress")
	}
	ctx := a.block.ctx

	if a.cfg.Invariants.CheckEveryBlock {
		if err := a.invariants.AssertAll(ctx); err != nil {
			a.logger.Error("invariant broken, block discarded", "height", ctx.BlockHeight(), "err", err)
			a.block = nil
			a.beginBlock(next)
			return storetypes.CommitID{}, err
		}
	}
	if err := a.dns.EndBlock(ctx); err != nil {
		return storetypes.CommitID{}, err
	}
	ops, err := a.DnsKeeper.OpsInBlock(ctx)
	if err != nil {
		return storetypes.CommitID{}, err
	}

	a.block.ms.Write()
	id := a.cms.Commit()
	metrics.SetHeight(id.Version)
	metrics.SetBlockOps(ops)
	a.lastBlockOps = ops
	a.logger.Info("committed block", "height", id.Version, "ops", ops, "hash", fmt.Sprintf("%X", id.Hash))

	a.beginBlock(next)
	return id, nil
}
