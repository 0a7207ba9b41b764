package keeper

import (
	"context"
	"errors"

	"namereg/x/dns/types"

	"cosmossdk.io/collections"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func (q queryServer) DomainsByOwner(ctx context.Context, req *types.QueryDomainsByOwnerRequest) (*types.QueryDomainsByOwnerResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "invalid request")
	}
	owner, err := q.k.signer(req.Owner)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid owner address: %v", err)
	}

	owned, err := q.k.AccountIndex.Get(ctx, owner)
	if err != nil && !errors.Is(err, collections.ErrNotFound) {
		return nil, status.Error(codes.Internal, "internal error")
	}
	out := owned.Names
	if out == nil {
		out = []string{}
	}
	return &types.QueryDomainsByOwnerResponse{Domains: out}, nil
}
