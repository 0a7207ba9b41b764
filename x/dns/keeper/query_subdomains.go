package keeper

import (
	"context"
	"errors"

	"namereg/x/dns/types"

	"cosmossdk.io/collections"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func (q queryServer) Subdomains(ctx context.Context, req *types.QuerySubdomainsRequest) (*types.QuerySubdomainsResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "invalid request")
	}
	name, err := types.ParseLabel(req.Name, true)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	top := types.TopSuffix(name).String()

	subs, err := q.k.SubdomainIndex.Get(ctx, top)
	if err != nil {
		if errors.Is(err, collections.ErrNotFound) {
			return nil, status.Error(codes.NotFound, "not found")
		}
		return nil, status.Error(codes.Internal, "internal error")
	}
	out := subs.Names
	if out == nil {
		out = []string{}
	}
	return &types.QuerySubdomainsResponse{Domain: top, Subdomains: out}, nil
}

func (q queryServer) Records(ctx context.Context, req *types.QueryRecordsRequest) (*types.QueryRecordsResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "invalid request")
	}
	name, err := types.ParseLabel(req.Name, true)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	records, err := q.k.RecordStore.Get(ctx, name.String())
	if err != nil {
		if errors.Is(err, collections.ErrNotFound) {
			return nil, status.Error(codes.NotFound, "not found")
		}
		return nil, status.Error(codes.Internal, "internal error")
	}
	return &types.QueryRecordsResponse{Name: name.String(), Records: records.Records}, nil
}
