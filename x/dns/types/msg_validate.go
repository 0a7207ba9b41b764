package types

import (
	"strings"

	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
)

// Msg is implemented by every registry message so the host can route,
// authenticate and pre-validate it without knowing its concrete type.
type Msg interface {
	ValidateBasic() error
	GetSigner() string
	MsgType() string
}

const (
	TypeMsgRegister        = "register"
	TypeMsgTransfer        = "transfer"
	TypeMsgWithdraw        = "withdraw"
	TypeMsgAddSubdomain    = "add_subdomain"
	TypeMsgDeleteSubdomain = "delete_subdomain"
	TypeMsgAddRecord       = "add_record"
	TypeMsgDeleteRecord    = "delete_record"
	TypeMsgCheckLease      = "check_lease"
	TypeMsgUpdateParams    = "update_params"
)

var (
	_ Msg = (*MsgRegister)(nil)
	_ Msg = (*MsgTransfer)(nil)
	_ Msg = (*MsgWithdraw)(nil)
	_ Msg = (*MsgAddSubdomain)(nil)
	_ Msg = (*MsgDeleteSubdomain)(nil)
	_ Msg = (*MsgAddRecord)(nil)
	_ Msg = (*MsgDeleteRecord)(nil)
	_ Msg = (*MsgCheckLease)(nil)
	_ Msg = (*MsgUpdateParams)(nil)
)

// NewMsg returns an empty message for a type URL, ready to be decoded into.
func NewMsg(msgType string) (Msg, error) {
	switch msgType {
	case TypeMsgRegister:
		return &MsgRegister{}, nil
	case TypeMsgTransfer:
		return &MsgTransfer{}, nil
	case TypeMsgWithdraw:
		return &MsgWithdraw{}, nil
	case TypeMsgAddSubdomain:
		return &MsgAddSubdomain{}, nil
	case TypeMsgDeleteSubdomain:
		return &MsgDeleteSubdomain{}, nil
	case TypeMsgAddRecord:
		return &MsgAddRecord{}, nil
	case TypeMsgDeleteRecord:
		return &MsgDeleteRecord{}, nil
	case TypeMsgCheckLease:
		return &MsgCheckLease{}, nil
	case TypeMsgUpdateParams:
		return &MsgUpdateParams{}, nil
	}
	return nil, ErrInvalidRequest.Wrapf("unknown message type %q", msgType)
}

func (msg *MsgRegister) MsgType() string        { return TypeMsgRegister }
func (msg *MsgTransfer) MsgType() string        { return TypeMsgTransfer }
func (msg *MsgWithdraw) MsgType() string        { return TypeMsgWithdraw }
func (msg *MsgAddSubdomain) MsgType() string    { return TypeMsgAddSubdomain }
func (msg *MsgDeleteSubdomain) MsgType() string { return TypeMsgDeleteSubdomain }
func (msg *MsgAddRecord) MsgType() string       { return TypeMsgAddRecord }
func (msg *MsgDeleteRecord) MsgType() string    { return TypeMsgDeleteRecord }
func (msg *MsgCheckLease) MsgType() string      { return TypeMsgCheckLease }
func (msg *MsgUpdateParams) MsgType() string    { return TypeMsgUpdateParams }

func (msg *MsgRegister) GetSigner() string        { return msg.Creator }
func (msg *MsgTransfer) GetSigner() string        { return msg.Creator }
func (msg *MsgWithdraw) GetSigner() string        { return msg.Creator }
func (msg *MsgAddSubdomain) GetSigner() string    { return msg.Creator }
func (msg *MsgDeleteSubdomain) GetSigner() string { return msg.Creator }
func (msg *MsgAddRecord) GetSigner() string       { return msg.Creator }
func (msg *MsgDeleteRecord) GetSigner() string    { return msg.Creator }
func (msg *MsgCheckLease) GetSigner() string      { return msg.Creator }
func (msg *MsgUpdateParams) GetSigner() string    { return msg.Authority }

func (msg *MsgRegister) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Creator); err != nil {
		return sdkerrors.ErrInvalidAddress.Wrapf("invalid creator address (%s)", err)
	}
	if msg.Duration == 0 {
		return ErrInvalidDuration.Wrap("duration required")
	}
	_, err := ParseLabel(msg.Name, false)
	return err
}

func (msg *MsgTransfer) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Creator); err != nil {
		return sdkerrors.ErrInvalidAddress.Wrapf("invalid creator address (%s)", err)
	}
	if _, err := sdk.AccAddressFromBech32(msg.NewOwner); err != nil {
		return sdkerrors.ErrInvalidAddress.Wrapf("invalid new owner address (%s)", err)
	}
	return validateName(msg.Name)
}

func (msg *MsgWithdraw) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Creator); err != nil {
		return sdkerrors.ErrInvalidAddress.Wrapf("invalid creator address (%s)", err)
	}
	return validateName(msg.Name)
}

func (msg *MsgAddSubdomain) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Creator); err != nil {
		return sdkerrors.ErrInvalidAddress.Wrapf("invalid creator address (%s)", err)
	}
	return validateName(msg.Name)
}

func (msg *MsgDeleteSubdomain) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Creator); err != nil {
		return sdkerrors.ErrInvalidAddress.Wrapf("invalid creator address (%s)", err)
	}
	return validateName(msg.Name)
}

func (msg *MsgAddRecord) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Creator); err != nil {
		return sdkerrors.ErrInvalidAddress.Wrapf("invalid creator address (%s)", err)
	}
	if err := validateName(msg.Name); err != nil {
		return err
	}
	if !msg.Type.Valid() {
		return ErrInvalidRequest.Wrapf("invalid record type %d", int32(msg.Type))
	}
	return ValidateRecordValue(msg.Value)
}

func (msg *MsgDeleteRecord) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Creator); err != nil {
		return sdkerrors.ErrInvalidAddress.Wrapf("invalid creator address (%s)", err)
	}
	if err := validateName(msg.Name); err != nil {
		return err
	}
	if !msg.Type.Valid() {
		return ErrInvalidRequest.Wrapf("invalid record type %d", int32(msg.Type))
	}
	return nil
}

func (msg *MsgCheckLease) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Creator); err != nil {
		return sdkerrors.ErrInvalidAddress.Wrapf("invalid creator address (%s)", err)
	}
	return validateName(msg.Name)
}

func (msg *MsgUpdateParams) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Authority); err != nil {
		return sdkerrors.ErrInvalidAddress.Wrapf("invalid authority address (%s)", err)
	}
	return msg.Params.Validate()
}

func validateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrInvalidName.Wrap("name required")
	}
	_, err := ParseLabel(name, true)
	return err
}
