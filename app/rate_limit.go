package app

import (
	"sync"
	"time"

	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	"namereg/app/metrics"
)

// RateLimiter caps how many transactions a signer may submit per block and
// per sliding window, plus a global cap over the same window.
type RateLimiter struct {
	mu sync.Mutex

	lastHeight    int64
	perBlock      map[string]int
	perWindowHist map[string][]int64

	perBlockMax  int
	perWindowMax int
	windowSec    int64

	globalHist []int64
	globalMax  int

	nowFn func() time.Time
}

const rateLimitMaxAccounts = 50000

func NewRateLimiter(cfg RateLimitConfig) *RateLimiter {
	return &RateLimiter{
		perBlock:      make(map[string]int),
		perWindowHist: make(map[string][]int64),
		globalHist:    make([]int64, 0, 128),
		perBlockMax:   clampInt(cfg.PerBlock, 1, 1000),
		perWindowMax:  clampInt(cfg.PerWindow, 1, 1000),
		windowSec:     clampInt64(cfg.WindowSec, 1, 600),
		globalMax:     clampInt(cfg.GlobalMax, 10, 100000),
		nowFn:         time.Now,
	}
}

// Allow records one transaction from signer at height, or rejects it with
// ErrUnauthorized when a cap is reached.
func (d *RateLimiter) Allow(signer string, height int64) error {
	if signer == "" {
		return nil
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	d.resetBlockIfNeeded(height)

	now := d.nowFn().Unix()
	cutoff := now - d.windowSec

	d.pruneGlobal(cutoff)
	if len(d.globalHist) >= d.globalMax {
		metrics.IncRateLimited("global")
		return sdkerrors.ErrUnauthorized.Wrap("rate limit: global cap reached")
	}

	if err := d.applyPerBlockLimit(signer); err != nil {
		metrics.IncRateLimited("block")
		return err
	}
	if err := d.applyPerWindowLimit(signer, now, cutoff); err != nil {
		metrics.IncRateLimited("window")
		d.perBlock[signer]--
		return err
	}

	d.globalHist = append(d.globalHist, now)
	return nil
}

func (d *RateLimiter) applyPerBlockLimit(signer string) error {
	count := d.perBlock[signer]
	if count >= d.perBlockMax {
		return sdkerrors.ErrUnauthorized.Wrap("rate limit: per-block cap reached")
	}
	d.perBlock[signer] = count + 1
	return nil
}

func (d *RateLimiter) applyPerWindowLimit(signer string, now, cutoff int64) error {
	hist, existed := d.perWindowHist[signer]
	hist = pruneInt64(hist, cutoff)
	if len(hist) >= d.perWindowMax {
		return sdkerrors.ErrUnauthorized.Wrap("rate limit: account cap reached")
	}
	if len(hist) == 0 {
		if existed {
			delete(d.perWindowHist, signer)
			existed = false
		}
		if !existed && len(d.perWindowHist) >= rateLimitMaxAccounts {
			return sdkerrors.ErrUnauthorized.Wrap("rate limit: capacity reached")
		}
	}
	d.perWindowHist[signer] = append(hist, now)
	return nil
}

func (d *RateLimiter) pruneGlobal(cutoff int64) {
	d.globalHist = pruneInt64(d.globalHist, cutoff)
}

func pruneInt64(values []int64, cutoff int64) []int64 {
	if len(values) == 0 {
		return values
	}
	n := values[:0]
	for _, ts := range values {
		if ts >= cutoff {
			n = append(n, ts)
		}
	}
	return n
}

func (d *RateLimiter) resetBlockIfNeeded(height int64) {
	if d.lastHeight == height {
		return
	}
	d.perBlock = make(map[string]int)
	d.lastHeight = height
}

func clampInt(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

func clampInt64(val, min, max int64) int64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
