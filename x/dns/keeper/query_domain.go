package keeper

import (
	"context"
	"errors"

	"namereg/x/dns/types"

	"cosmossdk.io/collections"
	"github.com/cosmos/cosmos-sdk/types/query"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Domain reports a top domain and whether its lease has elapsed. An expired
// domain is still returned; reclaiming happens only on a state transition.
func (q queryServer) Domain(ctx context.Context, req *types.QueryDomainRequest) (*types.QueryDomainResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "invalid request")
	}
	name, err := types.ParseLabel(req.Name, true)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	dom, err := q.k.Registry.Get(ctx, types.TopSuffix(name).String())
	if err != nil {
		if errors.Is(err, collections.ErrNotFound) {
			return nil, status.Error(codes.NotFound, "not found")
		}
		return nil, status.Error(codes.Internal, "internal error")
	}

	return &types.QueryDomainResponse{
		Domain:    dom,
		ExpiresAt: dom.ExpiresAt(),
		Expired:   dom.Expired(q.k.nowMs(ctx)),
	}, nil
}

func (q queryServer) Domains(ctx context.Context, req *types.QueryDomainsRequest) (*types.QueryDomainsResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "invalid request")
	}

	domains, pageRes, err := query.CollectionPaginate(
		ctx,
		q.k.Registry,
		req.Pagination,
		func(_ string, value types.TopDomain) (types.TopDomain, error) {
			return value, nil
		},
	)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}

	return &types.QueryDomainsResponse{Domains: domains, Pagination: pageRes}, nil
}
