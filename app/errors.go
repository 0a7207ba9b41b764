package app

import (
	errorsmod "cosmossdk.io/errors"
)

const (
	errTxDecode uint32 = iota + 1
	errInvalidSignature
	errSignerMismatch
	errWrongSequence
	errWrongChainID
	errInvariantBroken
	errInvalidGenesis
)

var (
	ErrTxDecode         = errorsmod.Register(Name, errTxDecode, "tx decode error")
	ErrInvalidSignature = errorsmod.Register(Name, errInvalidSignature, "invalid signature")
	ErrSignerMismatch   = errorsmod.Register(Name, errSignerMismatch, "signer does not match message creator")
	ErrWrongSequence    = errorsmod.Register(Name, errWrongSequence, "incorrect account sequence")
	ErrWrongChainID     = errorsmod.Register(Name, errWrongChainID, "wrong chain id")
	ErrInvariantBroken  = errorsmod.Register(Name, errInvariantBroken, "invariant broken")
	ErrInvalidGenesis   = errorsmod.Register(Name, errInvalidGenesis, "invalid genesis")
)
