package types

import (
	"context"

	"github.com/cosmos/cosmos-sdk/types/query"
)

type QueryDomainRequest struct {
	Name string `json:"name"`
}

type QueryDomainResponse struct {
	Domain    TopDomain `json:"domain"`
	ExpiresAt uint64    `json:"expires_at"`
	Expired   bool      `json:"expired"`
}

type QueryDomainsRequest struct {
	Pagination *query.PageRequest `json:"pagination,omitempty"`
}

type QueryDomainsResponse struct {
	Domains    []TopDomain         `json:"domains"`
	Pagination *query.PageResponse `json:"pagination,omitempty"`
}

type QueryDomainsByOwnerRequest struct {
	Owner string `json:"owner"`
}

type QueryDomainsByOwnerResponse struct {
	Domains []string `json:"domains"`
}

type QuerySubdomainsRequest struct {
	Name string `json:"name"`
}

type QuerySubdomainsResponse struct {
	Domain     string   `json:"domain"`
	Subdomains []string `json:"subdomains"`
}

type QueryRecordsRequest struct {
	Name string `json:"name"`
}

type QueryRecordsResponse struct {
	Name    string   `json:"name"`
	Records []Record `json:"records"`
}

type QueryPriceRequest struct {
	Name     string `json:"name"`
	Duration uint64 `json:"duration"`
}

type QueryPriceResponse struct {
	Name   string `json:"name"`
	Amount string `json:"amount"`
	Denom  string `json:"denom"`
}

type QueryParamsRequest struct{}

type QueryParamsResponse struct {
	Params Params `json:"params"`
}

type QueryAdminRequest struct{}

type QueryAdminResponse struct {
	Admin string `json:"admin"`
}

// QueryServer is the read-only view of the registry. Queries never reclaim
// expired leases; they report expiry instead.
type QueryServer interface {
	Domain(context.Context, *QueryDomainRequest) (*QueryDomainResponse, error)
	Domains(context.Context, *QueryDomainsRequest) (*QueryDomainsResponse, error)
	DomainsByOwner(context.Context, *QueryDomainsByOwnerRequest) (*QueryDomainsByOwnerResponse, error)
	Subdomains(context.Context, *QuerySubdomainsRequest) (*QuerySubdomainsResponse, error)
	Records(context.Context, *QueryRecordsRequest) (*QueryRecordsResponse, error)
	Price(context.Context, *QueryPriceRequest) (*QueryPriceResponse, error)
	Params(context.Context, *QueryParamsRequest) (*QueryParamsResponse, error)
	Admin(context.Context, *QueryAdminRequest) (*QueryAdminResponse, error)
}
