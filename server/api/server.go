package api

import (
	"net/http"
	"time"

	"cosmossdk.io/log"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"namereg/app"
	dnstypes "namereg/x/dns/types"
)

const RequestIDHeader = "X-Request-ID"

// Backend is the slice of the node the API serves from.
type Backend interface {
	ChainID() string
	LastHeight() int64
	Query(fn func(ctx sdk.Context) error) error
	QueryServer() dnstypes.QueryServer
	Account(addr sdk.AccAddress) (sdk.AccountI, bool)
	DeliverTx(tx app.SignedTx) app.TxResult
}

var _ Backend = (*app.App)(nil)

type Server struct {
	backend Backend
	logger  log.Logger
}

func NewServer(backend Backend, logger log.Logger) *Server {
	return &Server{backend: backend, logger: logger.With("module", "api")}
}

// Router registers every endpoint on a fresh mux.Router.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.requestID)

	r.HandleFunc("/healthz", s.health).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	r.HandleFunc("/txs", s.broadcastTx).Methods(http.MethodPost)
	r.HandleFunc("/auth/v1/accounts/{address}", s.account).Methods(http.MethodGet)

	dns := r.PathPrefix("/dns/v1").Subrouter()
	dns.HandleFunc("/domains", s.domains).Methods(http.MethodGet)
	dns.HandleFunc("/domains/{name}", s.domain).Methods(http.MethodGet)
	dns.HandleFunc("/domains/{name}/subdomains", s.subdomains).Methods(http.MethodGet)
	dns.HandleFunc("/records/{name}", s.records).Methods(http.MethodGet)
	dns.HandleFunc("/owners/{address}/domains", s.domainsByOwner).Methods(http.MethodGet)
	dns.HandleFunc("/price", s.price).Methods(http.MethodGet)
	dns.HandleFunc("/params", s.params).Methods(http.MethodGet)
	dns.HandleFunc("/admin", s.admin).Methods(http.MethodGet)

	return r
}

// NewHTTPServer builds the listener-facing server for addr.
func (s *Server) NewHTTPServer(addr string) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}
}

func (s *Server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Debug("request", "id", id, "method", r.Method, "path", r.URL.Path, "took", time.Since(start))
	})
}
