package types

import (
	"context"
)

type MsgRegister struct {
	Creator  string `json:"creator"`
	Name     string `json:"name"`
	Duration uint64 `json:"duration"`
}

type MsgRegisterResponse struct {
	Cost       string `json:"cost"`
	LeaseStart uint64 `json:"lease_start"`
}

type MsgTransfer struct {
	Creator  string `json:"creator"`
	Name     string `json:"name"`
	NewOwner string `json:"new_owner"`
}

type MsgTransferResponse struct{}

type MsgWithdraw struct {
	Creator string `json:"creator"`
	Name    string `json:"name"`
}

type MsgWithdrawResponse struct{}

type MsgAddSubdomain struct {
	Creator string `json:"creator"`
	Name    string `json:"name"`
}

type MsgAddSubdomainResponse struct{}

type MsgDeleteSubdomain struct {
	Creator string `json:"creator"`
	Name    string `json:"name"`
}

type MsgDeleteSubdomainResponse struct{}

type MsgAddRecord struct {
	Creator string     `json:"creator"`
	Name    string     `json:"name"`
	Type    RecordType `json:"type"`
	Value   []byte     `json:"value"`
	TTL     uint32     `json:"ttl"`
}

type MsgAddRecordResponse struct{}

type MsgDeleteRecord struct {
	Creator string     `json:"creator"`
	Name    string     `json:"name"`
	Type    RecordType `json:"type"`
	Value   []byte     `json:"value"`
}

type MsgDeleteRecordResponse struct{}

// MsgCheckLease asks the registry to reclaim Name's top domain if its lease
// has elapsed. Anyone may send it.
type MsgCheckLease struct {
	Creator string `json:"creator"`
	Name    string `json:"name"`
}

type MsgCheckLeaseResponse struct {
	Reclaimed bool `json:"reclaimed"`
}

type MsgUpdateParams struct {
	Authority string `json:"authority"`
	Params    Params `json:"params"`
}

type MsgUpdateParamsResponse struct{}

// MsgServer is the set of state transitions the registry exposes.
type MsgServer interface {
	Register(context.Context, *MsgRegister) (*MsgRegisterResponse, error)
	Transfer(context.Context, *MsgTransfer) (*MsgTransferResponse, error)
	Withdraw(context.Context, *MsgWithdraw) (*MsgWithdrawResponse, error)
	AddSubdomain(context.Context, *MsgAddSubdomain) (*MsgAddSubdomainResponse, error)
	DeleteSubdomain(context.Context, *MsgDeleteSubdomain) (*MsgDeleteSubdomainResponse, error)
	AddRecord(context.Context, *MsgAddRecord) (*MsgAddRecordResponse, error)
	DeleteRecord(context.Context, *MsgDeleteRecord) (*MsgDeleteRecordResponse, error)
	CheckLease(context.Context, *MsgCheckLease) (*MsgCheckLeaseResponse, error)
	UpdateParams(context.Context, *MsgUpdateParams) (*MsgUpdateParamsResponse, error)
}
