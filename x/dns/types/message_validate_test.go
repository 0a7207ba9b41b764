package types_test

import (
	"testing"

	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	"github.com/stretchr/testify/require"

	"namereg/x/dns/types"
)

func TestMsgValidateBasic(t *testing.T) {
	addr := sdk.AccAddress([]byte("creator_____________")).String()

	require.NoError(t, (&types.MsgRegister{Creator: addr, Name: "example", Duration: types.MinDuration}).ValidateBasic())
	require.ErrorIs(t, (&types.MsgRegister{Creator: "bad", Name: "example", Duration: 1}).ValidateBasic(), sdkerrors.ErrInvalidAddress)
	require.ErrorIs(t, (&types.MsgRegister{Creator: addr, Name: "mail.example", Duration: 1}).ValidateBasic(), types.ErrInvalidName)
	require.ErrorIs(t, (&types.MsgRegister{Creator: addr, Name: "example"}).ValidateBasic(), types.ErrInvalidDuration)
	require.ErrorIs(t, (&types.MsgRegister{Creator: addr, Name: "mail.example"}).ValidateBasic(), types.ErrInvalidDuration, "duration is checked before the name")

	require.ErrorIs(t, (&types.MsgTransfer{Creator: addr, Name: "example", NewOwner: "bad"}).ValidateBasic(), sdkerrors.ErrInvalidAddress)
	require.NoError(t, (&types.MsgAddSubdomain{Creator: addr, Name: "mail.example"}).ValidateBasic())
	require.ErrorIs(t, (&types.MsgAddSubdomain{Creator: addr, Name: " "}).ValidateBasic(), types.ErrInvalidName)

	rec := &types.MsgAddRecord{Creator: addr, Name: "mail.example", Type: types.RecordTypeMX, Value: []byte("10 mx")}
	require.NoError(t, rec.ValidateBasic())
	rec.Type = types.RecordType(42)
	require.ErrorIs(t, rec.ValidateBasic(), types.ErrInvalidRequest)
	rec.Type = types.RecordTypeA
	rec.Value = make([]byte, types.RecordValueMaxLen+1)
	require.ErrorIs(t, rec.ValidateBasic(), types.ErrInvalidRequest)
}

func TestNewMsgRoundTripsType(t *testing.T) {
	for _, typ := range []string{
		types.TypeMsgRegister, types.TypeMsgTransfer, types.TypeMsgWithdraw,
		types.TypeMsgAddSubdomain, types.TypeMsgDeleteSubdomain, types.TypeMsgAddRecord,
		types.TypeMsgDeleteRecord, types.TypeMsgCheckLease, types.TypeMsgUpdateParams,
	} {
		msg, err := types.NewMsg(typ)
		require.NoError(t, err)
		require.Equal(t, typ, msg.MsgType())
	}
	_, err := types.NewMsg("renew")
	require.ErrorIs(t, err, types.ErrInvalidRequest)
}

func TestRecordTypeJSON(t *testing.T) {
	typ, err := types.ParseRecordType("cname")
	require.NoError(t, err)
	require.Equal(t, types.RecordTypeCNAME, typ)

	bz, err := typ.MarshalJSON()
	require.NoError(t, err)
	require.JSONEq(t, `"CNAME"`, string(bz))

	var back types.RecordType
	require.NoError(t, back.UnmarshalJSON([]byte(`"ipfs"`)))
	require.Equal(t, types.RecordTypeIPFS, back)
	require.Error(t, back.UnmarshalJSON([]byte(`"TXT"`)))
}
