package app

import (
	"sort"

	errorsmod "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

type invariantRoute struct {
	module string
	route  string
	inv    sdk.Invariant
}

// InvariantRegistry collects module invariants so the host can assert them
// after a block.
type InvariantRegistry struct {
	routes []invariantRoute
}

var _ sdk.InvariantRegistry = (*InvariantRegistry)(nil)

func NewInvariantRegistry() *InvariantRegistry {
	return &InvariantRegistry{}
}

func (r *InvariantRegistry) RegisterRoute(moduleName, route string, invar sdk.Invariant) {
	r.routes = append(r.routes, invariantRoute{module: moduleName, route: route, inv: invar})
}

// Routes lists registered invariants as module/route, sorted.
func (r *InvariantRegistry) Routes() []string {
	out := make([]string, 0, len(r.routes))
	for _, rt := range r.routes {
		out = append(out, rt.module+"/"+rt.route)
	}
	sort.Strings(out)
	return out
}

// AssertAll runs every invariant against ctx and fails on the first broken one.
func (r *InvariantRegistry) AssertAll(ctx sdk.Context) error {
	for _, rt := range r.routes {
		if msg, broken := rt.inv(ctx); broken {
			return errorsmod.Wrapf(ErrInvariantBroken, "%s/%s: %s", rt.module, rt.route, msg)
		}
	}
	return nil
}
