package app

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	errorsmod "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	"namereg/app/metrics"
	"namereg/crypto/pqc/dilithium"
	dnstypes "namereg/x/dns/types"
)

// SignedTx carries one registry message authenticated by a Dilithium
// signature over its sign bytes.
type SignedTx struct {
	ChainID   string              `json:"chain_id"`
	Sequence  uint64              `json:"sequence"`
	Type      string              `json:"type"`
	Msg       json.RawMessage     `json:"msg"`
	PubKey    dilithium.PublicKey `json:"pub_key"`
	Signature dilithium.Signature `json:"signature"`
}

type signDoc struct {
	ChainID  string          `json:"chain_id"`
	Sequence string          `json:"sequence"`
	Type     string          `json:"type"`
	Msg      json.RawMessage `json:"msg"`
}

// SignBytes is the canonical, key-sorted JSON the signature covers.
func (tx SignedTx) SignBytes() ([]byte, error) {
	bz, err := json.Marshal(signDoc{
		ChainID:  tx.ChainID,
		Sequence: strconv.FormatUint(tx.Sequence, 10),
		Type:     tx.Type,
		Msg:      tx.Msg,
	})
	if err != nil {
		return nil, err
	}
	return sdk.SortJSON(bz)
}

// NewSignedTx encodes msg and signs it with key.
func NewSignedTx(scheme dilithium.Scheme, key dilithium.KeyFile, chainID string, sequence uint64, msg dnstypes.Msg) (SignedTx, error) {
	bz, err := json.Marshal(msg)
	if err != nil {
		return SignedTx{}, err
	}
	tx := SignedTx{
		ChainID:  chainID,
		Sequence: sequence,
		Type:     msg.MsgType(),
		Msg:      bz,
		PubKey:   key.PublicKey,
	}
	signBytes, err := tx.SignBytes()
	if err != nil {
		return SignedTx{}, err
	}
	tx.Signature, err = scheme.Sign(key.PrivateKey, signBytes)
	if err != nil {
		return SignedTx{}, err
	}
	return tx, nil
}

// DecodeMsg decodes the embedded message, rejecting unknown fields.
func (tx SignedTx) DecodeMsg() (dnstypes.Msg, error) {
	msg, err := dnstypes.NewMsg(tx.Type)
	if err != nil {
		return nil, errorsmod.Wrap(ErrTxDecode, err.Error())
	}
	dec := json.NewDecoder(bytes.NewReader(tx.Msg))
	dec.DisallowUnknownFields()
	if err := dec.Decode(msg); err != nil {
		return nil, errorsmod.Wrapf(ErrTxDecode, "%s: %s", tx.Type, err)
	}
	return msg, nil
}

// VerifySignature checks the signature and returns the address of the key
// that produced it.
func (tx SignedTx) VerifySignature(scheme dilithium.Scheme) (sdk.AccAddress, error) {
	if len(tx.PubKey) != scheme.PublicKeySize() {
		return nil, errorsmod.Wrapf(ErrInvalidSignature, "public key must be %d bytes, got %d", scheme.PublicKeySize(), len(tx.PubKey))
	}
	if len(tx.Signature) != scheme.SignatureSize() {
		return nil, errorsmod.Wrapf(ErrInvalidSignature, "signature must be %d bytes, got %d", scheme.SignatureSize(), len(tx.Signature))
	}
	signBytes, err := tx.SignBytes()
	if err != nil {
		return nil, errorsmod.Wrap(ErrTxDecode, err.Error())
	}
	if !scheme.Verify(tx.PubKey, signBytes, tx.Signature) {
		return nil, ErrInvalidSignature
	}
	return dilithium.Address(tx.PubKey), nil
}

// TxResult reports how a message was executed, ABCI style.
type TxResult struct {
	Height    int64            `json:"height"`
	Code      uint32           `json:"code"`
	Codespace string           `json:"codespace,omitempty"`
	Log       string           `json:"log,omitempty"`
	Events    sdk.StringEvents `json:"events,omitempty"`
	Data      json.RawMessage  `json:"data,omitempty"`
}

func (r TxResult) IsOK() bool { return r.Code == 0 }

// Err rebuilds a registered error from the result, or nil on success.
func (r TxResult) Err() error {
	if r.IsOK() {
		return nil
	}
	if reg := errorsmod.ABCIError(r.Codespace, r.Code, r.Log); reg != nil {
		return reg
	}
	return errors.New(r.Log)
}

func resultFromError(height int64, err error) TxResult {
	codespace, code, log := errorsmod.ABCIInfo(err, false)
	return TxResult{Height: height, Code: code, Codespace: codespace, Log: log}
}

// DeliverTx authenticates tx, bumps the signer's sequence and executes its
// message in the pending block. The sequence bump survives a failing message.
func (a *App) DeliverTx(tx SignedTx) TxResult {
	start := time.Now()

	a.mu.Lock()
	res := a.deliverTx(tx)
	a.mu.Unlock()

	metrics.ObserveTx(tx.Type, resultLabel(res), time.Since(start))
	return res
}

func (a *App) deliverTx(tx SignedTx) TxResult {
	if a.block == nil {
		return resultFromError(0, errorsmod.Wrap(sdkerrors.ErrLogic, "chain not started"))
	}
	height := a.block.ctx.BlockHeight()

	msg, err := tx.DecodeMsg()
	if err != nil {
		return resultFromError(height, err)
	}
	if err := msg.ValidateBasic(); err != nil {
		return resultFromError(height, err)
	}
	if tx.ChainID != a.chainID {
		return resultFromError(height, errorsmod.Wrapf(ErrWrongChainID, "expected %s, got %s", a.chainID, tx.ChainID))
	}
	signer, err := tx.VerifySignature(a.scheme)
	if err != nil {
		return resultFromError(height, err)
	}
	creator, err := a.addressCodec.StringToBytes(msg.GetSigner())
	if err != nil {
		return resultFromError(height, sdkerrors.ErrInvalidAddress.Wrap(err.Error()))
	}
	if !signer.Equals(sdk.AccAddress(creator)) {
		return resultFromError(height, errorsmod.Wrapf(ErrSignerMismatch, "key %s signed for %s", signer, msg.GetSigner()))
	}
	if err := a.limiter.Allow(signer.String(), height); err != nil {
		return resultFromError(height, err)
	}

	ctx := a.block.ctx.WithEventManager(sdk.NewEventManager())
	acc := a.AuthKeeper.GetAccount(ctx, signer)
	if acc == nil {
		acc = a.AuthKeeper.NewAccountWithAddress(ctx, signer)
	}
	if acc.GetSequence() != tx.Sequence {
		return resultFromError(height, errorsmod.Wrapf(ErrWrongSequence, "expected %d, got %d", acc.GetSequence(), tx.Sequence))
	}
	if err := acc.SetSequence(acc.GetSequence() + 1); err != nil {
		return resultFromError(height, err)
	}
	a.AuthKeeper.SetAccount(ctx, acc)

	return a.runMsg(ctx, msg)
}

// RunMsg executes msg in the pending block without signature or sequence
// checks. The simulator and tests drive the registry through it.
func (a *App) RunMsg(msg dnstypes.Msg) TxResult {
	start := time.Now()

	a.mu.Lock()
	var res TxResult
	switch {
	case a.block == nil:
		res = resultFromError(0, errorsmod.Wrap(sdkerrors.ErrLogic, "chain not started"))
	default:
		if err := msg.ValidateBasic(); err != nil {
			res = resultFromError(a.block.ctx.BlockHeight(), err)
			break
		}
		res = a.runMsg(a.block.ctx.WithEventManager(sdk.NewEventManager()), msg)
	}
	a.mu.Unlock()

	metrics.ObserveTx(msg.MsgType(), resultLabel(res), time.Since(start))
	return res
}

// runMsg executes msg on a branch of ctx and merges it, and its events, only
// on success.
func (a *App) runMsg(ctx sdk.Context, msg dnstypes.Msg) TxResult {
	height := ctx.BlockHeight()
	cacheCtx, write := ctx.CacheContext()

	resp, err := a.route(cacheCtx, msg)
	if err != nil {
		a.logger.Debug("message failed", "type", msg.MsgType(), "err", err)
		return resultFromError(height, err)
	}
	write()

	data, err := json.Marshal(resp)
	if err != nil {
		return resultFromError(height, err)
	}
	events := ctx.EventManager().Events()
	observeEvents(events)

	return TxResult{
		Height: height,
		Events: sdk.StringifyEvents(events.ToABCIEvents()),
		Data:   data,
	}
}

func (a *App) route(ctx context.Context, msg dnstypes.Msg) (any, error) {
	switch m := msg.(type) {
	case *dnstypes.MsgRegister:
		return a.msgServer.Register(ctx, m)
	case *dnstypes.MsgTransfer:
		return a.msgServer.Transfer(ctx, m)
	case *dnstypes.MsgWithdraw:
		return a.msgServer.Withdraw(ctx, m)
	case *dnstypes.MsgAddSubdomain:
		return a.msgServer.AddSubdomain(ctx, m)
	case *dnstypes.MsgDeleteSubdomain:
		return a.msgServer.DeleteSubdomain(ctx, m)
	case *dnstypes.MsgAddRecord:
		return a.msgServer.AddRecord(ctx, m)
	case *dnstypes.MsgDeleteRecord:
		return a.msgServer.DeleteRecord(ctx, m)
	case *dnstypes.MsgCheckLease:
		return a.msgServer.CheckLease(ctx, m)
	case *dnstypes.MsgUpdateParams:
		return a.msgServer.UpdateParams(ctx, m)
	}
	return nil, sdkerrors.ErrUnknownRequest.Wrapf("unrecognized message %T", msg)
}

func observeEvents(events sdk.Events) {
	for _, ev := range events {
		switch ev.Type {
		case dnstypes.EventTypeRegister:
			metrics.IncRegistrations()
			if attr, ok := ev.GetAttribute(dnstypes.AttributeKeyCost); ok {
				if cost, err := strconv.ParseFloat(attr.Value, 64); err == nil {
					metrics.AddFees(cost)
				}
			}
		case dnstypes.EventTypeWithdraw:
			reason := "unknown"
			if attr, ok := ev.GetAttribute(dnstypes.AttributeKeyReason); ok {
				reason = attr.Value
			}
			metrics.IncWithdrawals(reason)
		}
	}
}

func resultLabel(res TxResult) string {
	if res.IsOK() {
		return "ok"
	}
	return res.Codespace
}
