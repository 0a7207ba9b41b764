package keeper

import (
	"context"
	"errors"

	"namereg/x/dns/types"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func (q queryServer) Params(ctx context.Context, req *types.QueryParamsRequest) (*types.QueryParamsResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "invalid request")
	}
	return &types.QueryParamsResponse{Params: q.k.GetParams(ctx)}, nil
}

func (q queryServer) Admin(ctx context.Context, req *types.QueryAdminRequest) (*types.QueryAdminResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "invalid request")
	}
	admin, err := q.k.GetAdmin(ctx)
	if err != nil {
		if errors.Is(err, types.ErrAdminNotSet) {
			return nil, status.Error(codes.NotFound, "admin not set")
		}
		return nil, status.Error(codes.Internal, "internal error")
	}
	addr, err := q.k.addressCodec.BytesToString(admin)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return &types.QueryAdminResponse{Admin: addr}, nil
}
