package types

import (
	"math"
	"time"

	errorsmod "cosmossdk.io/errors"
)

const (
	// DefaultSendEnabled enabled
	DefaultSendEnabled = true
	// DefaultReceiveEnabled enabled
	DefaultReceiveEnabled = true
	// DefaultTimeoutSecs is the relative packet timeout used when the sender
	// does not specify one
	DefaultTimeoutSecs uint64 = 600

	// MaxTimeoutSecs is the latest unix time, in seconds, a packet timeout
	// can be set to while still fitting a nanosecond timestamp.
	MaxTimeoutSecs uint64 = math.MaxInt64/uint64(time.Second) - 1
)

// Params defines the ics999 module parameters.
type Params struct {
	SendEnabled        bool   `json:"send_enabled"`
	ReceiveEnabled     bool   `json:"receive_enabled"`
	DefaultTimeoutSecs uint64 `json:"default_timeout_secs"`
}

// NewParams creates a new parameter configuration for the ics999 module
func NewParams(enableSend, enableReceive bool, defaultTimeoutSecs uint64) Params {
	return Params{
		SendEnabled:        enableSend,
		ReceiveEnabled:     enableReceive,
		DefaultTimeoutSecs: defaultTimeoutSecs,
	}
}

// DefaultParams is the default parameter configuration for the ics999 module
func DefaultParams() Params {
	return NewParams(DefaultSendEnabled, DefaultReceiveEnabled, DefaultTimeoutSecs)
}

// Validate validates all ics999 module parameters
func (p Params) Validate() error {
	if p.DefaultTimeoutSecs == 0 {
		return errorsmod.Wrap(ErrInvalidParams, "default timeout must be positive")
	}
	if p.DefaultTimeoutSecs > MaxTimeoutSecs {
		return errorsmod.Wrapf(ErrInvalidParams, "default timeout cannot exceed %d seconds", MaxTimeoutSecs)
	}
	return nil
}
