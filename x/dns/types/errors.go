package types

import (
	"cosmossdk.io/errors"
)

var (
	ErrInvalidSigner     = errors.Register(ModuleName, 1101, "expected gov account as only signer for proposal message")
	ErrInvalidName       = errors.Register(ModuleName, 1102, "invalid name")
	ErrDomainExists      = errors.Register(ModuleName, 1103, "domain already exists")
	ErrNotOwner          = errors.Register(ModuleName, 1104, "not domain owner")
	ErrDomainNotFound    = errors.Register(ModuleName, 1105, "domain not found")
	ErrInvalidDuration   = errors.Register(ModuleName, 1106, "invalid lease duration")
	ErrInsufficientFunds = errors.Register(ModuleName, 1107, "insufficient balance")
	ErrAdminNotSet       = errors.Register(ModuleName, 1108, "admin account not set")

	ErrInvalidRequest = errors.Register(ModuleName, 1109, "invalid request")
)
