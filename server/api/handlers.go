package api

import (
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/query"
	"github.com/gorilla/mux"

	"namereg/app"
	dnstypes "namereg/x/dns/types"
)

const maxTxBytes = 1 << 20

type HealthResponse struct {
	Status  string `json:"status"`
	ChainID string `json:"chain_id"`
	Height  int64  `json:"height"`
}

type AccountResponse struct {
	Address  string `json:"address"`
	Exists   bool   `json:"exists"`
	Number   uint64 `json:"account_number"`
	Sequence uint64 `json:"sequence"`
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", ChainID: s.backend.ChainID(), Height: s.backend.LastHeight()})
}

func (s *Server) broadcastTx(w http.ResponseWriter, r *http.Request) {
	var tx app.SignedTx
	dec := json.NewDecoder(io.LimitReader(r.Body, maxTxBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&tx); err != nil {
		writeBadRequest(w, "decode tx: "+err.Error())
		return
	}

	res := s.backend.DeliverTx(tx)
	if !res.IsOK() {
		s.logger.Info("tx rejected", "type", tx.Type, "codespace", res.Codespace, "code", res.Code, "log", res.Log)
		writeTxError(w, res)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) account(w http.ResponseWriter, r *http.Request) {
	raw := mux.Vars(r)["address"]
	addr, err := sdk.AccAddressFromBech32(raw)
	if err != nil {
		writeBadRequest(w, "invalid address: "+err.Error())
		return
	}
	resp := AccountResponse{Address: addr.String()}
	if acc, ok := s.backend.Account(addr); ok {
		resp.Exists = true
		resp.Number = acc.GetAccountNumber()
		resp.Sequence = acc.GetSequence()
	}
	writeJSON(w, http.StatusOK, resp)
}

// serveQuery runs q against committed state and writes its result.
func serveQuery[T any](s *Server, w http.ResponseWriter, q func(ctx sdk.Context, qs dnstypes.QueryServer) (T, error)) {
	var out T
	err := s.backend.Query(func(ctx sdk.Context) error {
		var err error
		out, err = q(ctx, s.backend.QueryServer())
		return err
	})
	if err != nil {
		writeQueryError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) domain(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	serveQuery(s, w, func(ctx sdk.Context, qs dnstypes.QueryServer) (*dnstypes.QueryDomainResponse, error) {
		return qs.Domain(ctx, &dnstypes.QueryDomainRequest{Name: name})
	})
}

func (s *Server) domains(w http.ResponseWriter, r *http.Request) {
	page, err := pageRequest(r)
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	serveQuery(s, w, func(ctx sdk.Context, qs dnstypes.QueryServer) (*dnstypes.QueryDomainsResponse, error) {
		return qs.Domains(ctx, &dnstypes.QueryDomainsRequest{Pagination: page})
	})
}

func (s *Server) subdomains(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	serveQuery(s, w, func(ctx sdk.Context, qs dnstypes.QueryServer) (*dnstypes.QuerySubdomainsResponse, error) {
		return qs.Subdomains(ctx, &dnstypes.QuerySubdomainsRequest{Name: name})
	})
}

func (s *Server) records(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	serveQuery(s, w, func(ctx sdk.Context, qs dnstypes.QueryServer) (*dnstypes.QueryRecordsResponse, error) {
		return qs.Records(ctx, &dnstypes.QueryRecordsRequest{Name: name})
	})
}

func (s *Server) domainsByOwner(w http.ResponseWriter, r *http.Request) {
	owner := mux.Vars(r)["address"]
	serveQuery(s, w, func(ctx sdk.Context, qs dnstypes.QueryServer) (*dnstypes.QueryDomainsByOwnerResponse, error) {
		return qs.DomainsByOwner(ctx, &dnstypes.QueryDomainsByOwnerRequest{Owner: owner})
	})
}

func (s *Server) price(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	duration, err := strconv.ParseUint(q.Get("duration"), 10, 64)
	if err != nil {
		writeBadRequest(w, "duration must be an unsigned integer")
		return
	}
	name := q.Get("name")
	serveQuery(s, w, func(ctx sdk.Context, qs dnstypes.QueryServer) (*dnstypes.QueryPriceResponse, error) {
		return qs.Price(ctx, &dnstypes.QueryPriceRequest{Name: name, Duration: duration})
	})
}

func (s *Server) params(w http.ResponseWriter, _ *http.Request) {
	serveQuery(s, w, func(ctx sdk.Context, qs dnstypes.QueryServer) (*dnstypes.QueryParamsResponse, error) {
		return qs.Params(ctx, &dnstypes.QueryParamsRequest{})
	})
}

func (s *Server) admin(w http.ResponseWriter, _ *http.Request) {
	serveQuery(s, w, func(ctx sdk.Context, qs dnstypes.QueryServer) (*dnstypes.QueryAdminResponse, error) {
		return qs.Admin(ctx, &dnstypes.QueryAdminRequest{})
	})
}

// pageRequest reads limit, offset and the base64 key cursor from the query
// string.
func pageRequest(r *http.Request) (*query.PageRequest, error) {
	q := r.URL.Query()
	page := &query.PageRequest{}
	var err error
	if v := q.Get("limit"); v != "" {
		if page.Limit, err = strconv.ParseUint(v, 10, 64); err != nil {
			return nil, err
		}
	}
	if v := q.Get("offset"); v != "" {
		if page.Offset, err = strconv.ParseUint(v, 10, 64); err != nil {
			return nil, err
		}
	}
	if v := q.Get("key"); v != "" {
		if page.Key, err = base64.StdEncoding.DecodeString(v); err != nil {
			return nil, err
		}
	}
	page.CountTotal = q.Get("count_total") == "true"
	return page, nil
}
