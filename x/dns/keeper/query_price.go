package keeper

import (
	"context"

	"namereg/x/dns/types"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Price quotes what registering Name for Duration would cost right now.
func (q queryServer) Price(ctx context.Context, req *types.QueryPriceRequest) (*types.QueryPriceResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "invalid request")
	}
	params := q.k.GetParams(ctx)
	if err := params.ValidateDuration(req.Duration); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	name, err := params.ParseTopLabel(req.Name)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	return &types.QueryPriceResponse{
		Name:   name.String(),
		Amount: params.Cost(name.Len(), req.Duration).String(),
		Denom:  params.FeeDenom,
	}, nil
}
