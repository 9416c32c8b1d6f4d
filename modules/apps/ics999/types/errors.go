package types

import (
	errorsmod "cosmossdk.io/errors"
)

// ICS-999 sentinel errors
var (
	ErrIncorrectOrder             = errorsmod.Register(ModuleName, 2, "incorrect channel order")
	ErrIncorrectVersion           = errorsmod.Register(ModuleName, 3, "incorrect channel version")
	ErrChannelExists              = errorsmod.Register(ModuleName, 4, "an open channel already exists for this connection")
	ErrUnexpectedChannelClosure   = errorsmod.Register(ModuleName, 5, "channel closure is not allowed")
	ErrChannelNotFound            = errorsmod.Register(ModuleName, 6, "channel not found")
	ErrActiveChannelNotFound      = errorsmod.Register(ModuleName, 7, "no active channel found for connection")
	ErrEmptyActionQueue           = errorsmod.Register(ModuleName, 8, "action queue cannot be empty")
	ErrFundsMismatch              = errorsmod.Register(ModuleName, 9, "funds mismatch")
	ErrOverflow                   = errorsmod.Register(ModuleName, 10, "coin amount overflow")
	ErrAccountExists              = errorsmod.Register(ModuleName, 11, "interchain account already registered")
	ErrAccountNotFound            = errorsmod.Register(ModuleName, 12, "interchain account not found")
	ErrAccountAlreadyInstantiated = errorsmod.Register(ModuleName, 13, "existing account for newly derived address")
	ErrTraceNotFound              = errorsmod.Register(ModuleName, 14, "denom trace not found in packet")
	ErrInvalidAction              = errorsmod.Register(ModuleName, 15, "invalid action")
	ErrInvalidTrace               = errorsmod.Register(ModuleName, 16, "invalid denom trace")
	ErrInvalidPacketData          = errorsmod.Register(ModuleName, 17, "invalid packet data")
	ErrInvalidAcknowledgement     = errorsmod.Register(ModuleName, 18, "invalid acknowledgement")
	ErrHandlerNotFound            = errorsmod.Register(ModuleName, 19, "handler state not found")
	ErrFactoryNotFound            = errorsmod.Register(ModuleName, 20, "account factory not found")
	ErrFactoryResponseDataMissing = errorsmod.Register(ModuleName, 21, "factory response data missing")
	ErrInvalidFactoryResponse     = errorsmod.Register(ModuleName, 22, "invalid factory response")
	ErrQueryNotAllowed            = errorsmod.Register(ModuleName, 23, "query path not allowed")
	ErrSendDisabled               = errorsmod.Register(ModuleName, 24, "ics999 packets from this chain are disabled")
	ErrReceiveDisabled            = errorsmod.Register(ModuleName, 25, "ics999 packets to this chain are disabled")
	ErrInvalidTimeout             = errorsmod.Register(ModuleName, 26, "invalid packet timeout")
	ErrInvalidParams              = errorsmod.Register(ModuleName, 27, "invalid ics999 params")
)
