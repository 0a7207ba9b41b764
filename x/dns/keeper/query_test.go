package keeper_test

import (
	"testing"

	"github.com/cosmos/cosmos-sdk/types/query"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"namereg/x/dns/types"
)

func TestQueryDomain(t *testing.T) {
	f := initFixture(t)
	f.register(t, f.alice, "alpha", types.MinDuration)

	resp, err := f.queryServer.Domain(f.ctx, &types.QueryDomainRequest{Name: "www.ALPHA"})
	require.NoError(t, err)
	require.Equal(t, "alpha", resp.Domain.Name)
	require.Equal(t, uint64(genesisTimeMs)+types.MinDuration, resp.ExpiresAt)
	require.False(t, resp.Expired)

	// Queries report expiry without reclaiming.
	f.advance(types.MinDuration)
	resp, err = f.queryServer.Domain(f.ctx, &types.QueryDomainRequest{Name: "alpha"})
	require.NoError(t, err)
	require.True(t, resp.Expired)

	_, err = f.queryServer.Domain(f.ctx, &types.QueryDomainRequest{Name: "bravo"})
	require.Equal(t, codes.NotFound, status.Code(err))
	_, err = f.queryServer.Domain(f.ctx, &types.QueryDomainRequest{Name: "b r"})
	require.Equal(t, codes.InvalidArgument, status.Code(err))
	_, err = f.queryServer.Domain(f.ctx, nil)
	require.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestQueryDomainsPaginated(t *testing.T) {
	f := initFixture(t)
	names := []string{"alpha", "bravo", "charlie", "delta", "echo"}
	for _, n := range names {
		f.register(t, f.alice, n, types.MinDuration)
	}

	var got []string
	var next []byte
	for {
		resp, err := f.queryServer.Domains(f.ctx, &types.QueryDomainsRequest{
			Pagination: &query.PageRequest{Key: next, Limit: 2},
		})
		require.NoError(t, err)
		require.LessOrEqual(t, len(resp.Domains), 2)
		for _, d := range resp.Domains {
			got = append(got, d.Name)
		}
		next = resp.Pagination.NextKey
		if next == nil {
			break
		}
	}
	require.Equal(t, names, got)
}

func TestQueryDomainsByOwner(t *testing.T) {
	f := initFixture(t)
	f.register(t, f.alice, "alpha", types.MinDuration)
	f.register(t, f.alice, "bravo", types.MinDuration)

	resp, err := f.queryServer.DomainsByOwner(f.ctx, &types.QueryDomainsByOwnerRequest{Owner: f.addr(t, f.alice)})
	require.NoError(t, err)
	require.Equal(t, []string{"alpha", "bravo"}, resp.Domains)

	resp, err = f.queryServer.DomainsByOwner(f.ctx, &types.QueryDomainsByOwnerRequest{Owner: f.addr(t, f.bob)})
	require.NoError(t, err)
	require.Empty(t, resp.Domains)

	_, err = f.queryServer.DomainsByOwner(f.ctx, &types.QueryDomainsByOwnerRequest{Owner: "nope"})
	require.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestQuerySubdomainsAndRecords(t *testing.T) {
	f := initFixture(t)
	f.register(t, f.alice, "alpha", types.MinDuration)
	f.addSubdomain(t, f.alice, "www.alpha")
	f.addRecord(t, f.alice, "www.alpha", types.RecordTypeIPFS, "QmHash")

	subs, err := f.queryServer.Subdomains(f.ctx, &types.QuerySubdomainsRequest{Name: "www.alpha"})
	require.NoError(t, err)
	require.Equal(t, "alpha", subs.Domain)
	require.Equal(t, []string{"www.alpha"}, subs.Subdomains)

	recs, err := f.queryServer.Records(f.ctx, &types.QueryRecordsRequest{Name: "WWW.alpha"})
	require.NoError(t, err)
	require.Equal(t, "www.alpha", recs.Name)
	require.Len(t, recs.Records, 1)
	require.Equal(t, []byte("QmHash"), recs.Records[0].Value)

	_, err = f.queryServer.Records(f.ctx, &types.QueryRecordsRequest{Name: "mail.alpha"})
	require.Equal(t, codes.NotFound, status.Code(err))
	_, err = f.queryServer.Subdomains(f.ctx, &types.QuerySubdomainsRequest{Name: "bravo"})
	require.Equal(t, codes.NotFound, status.Code(err))
}

func TestQueryPrice(t *testing.T) {
	f := initFixture(t)

	resp, err := f.queryServer.Price(f.ctx, &types.QueryPriceRequest{Name: "Alpha", Duration: types.MinDuration})
	require.NoError(t, err)
	require.Equal(t, "alpha", resp.Name)
	require.Equal(t, types.Cost(5, types.MinDuration, types.DefaultPriceBase).String(), resp.Amount)
	require.Equal(t, types.DefaultFeeDenom, resp.Denom)

	_, err = f.queryServer.Price(f.ctx, &types.QueryPriceRequest{Name: "alpha", Duration: 1})
	require.Equal(t, codes.InvalidArgument, status.Code(err))
	_, err = f.queryServer.Price(f.ctx, &types.QueryPriceRequest{Name: "a.b", Duration: types.MinDuration})
	require.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestQueryParamsAndAdmin(t *testing.T) {
	f := initFixture(t)

	params, err := f.queryServer.Params(f.ctx, &types.QueryParamsRequest{})
	require.NoError(t, err)
	require.Equal(t, types.DefaultParams(), params.Params)

	admin, err := f.queryServer.Admin(f.ctx, &types.QueryAdminRequest{})
	require.NoError(t, err)
	require.Equal(t, f.addr(t, f.admin), admin.Admin)
}
