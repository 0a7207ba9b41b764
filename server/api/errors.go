package api

import (
	"encoding/json"
	"errors"
	"net/http"

	errorsmod "cosmossdk.io/errors"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"namereg/app"
	dnstypes "namereg/x/dns/types"
)

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Code      uint32 `json:"code"`
	Codespace string `json:"codespace,omitempty"`
	Message   string `json:"message"`
	Height    int64  `json:"height,omitempty"`
}

var txErrorStatus = []struct {
	err    *errorsmod.Error
	status int
}{
	{app.ErrTxDecode, http.StatusBadRequest},
	{app.ErrWrongChainID, http.StatusBadRequest},
	{sdkerrors.ErrInvalidAddress, http.StatusBadRequest},
	{dnstypes.ErrInvalidName, http.StatusBadRequest},
	{dnstypes.ErrInvalidDuration, http.StatusBadRequest},
	{dnstypes.ErrInvalidRequest, http.StatusBadRequest},
	{app.ErrInvalidSignature, http.StatusUnauthorized},
	{app.ErrSignerMismatch, http.StatusUnauthorized},
	{dnstypes.ErrInsufficientFunds, http.StatusPaymentRequired},
	{dnstypes.ErrNotOwner, http.StatusForbidden},
	{dnstypes.ErrInvalidSigner, http.StatusForbidden},
	{dnstypes.ErrDomainNotFound, http.StatusNotFound},
	{dnstypes.ErrDomainExists, http.StatusConflict},
	{app.ErrWrongSequence, http.StatusConflict},
	{sdkerrors.ErrUnauthorized, http.StatusTooManyRequests},
}

func txStatus(err error) int {
	for _, m := range txErrorStatus {
		if errors.Is(err, m.err) {
			return m.status
		}
	}
	return http.StatusInternalServerError
}

func queryStatus(err error) int {
	switch status.Code(err) {
	case codes.InvalidArgument:
		return http.StatusBadRequest
	case codes.NotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeQueryError(w http.ResponseWriter, err error) {
	msg := err.Error()
	if st, ok := status.FromError(err); ok {
		msg = st.Message()
	}
	writeJSON(w, queryStatus(err), ErrorResponse{Code: uint32(status.Code(err)), Codespace: "grpc", Message: msg})
}

func writeTxError(w http.ResponseWriter, res app.TxResult) {
	writeJSON(w, txStatus(res.Err()), ErrorResponse{
		Code:      res.Code,
		Codespace: res.Codespace,
		Message:   res.Log,
		Height:    res.Height,
	})
}

func writeBadRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, ErrorResponse{Code: uint32(codes.InvalidArgument), Codespace: "grpc", Message: msg})
}
