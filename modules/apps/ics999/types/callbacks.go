package types

import (
	"encoding/json"

	errorsmod "cosmossdk.io/errors"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// PacketOutcome is the final state of an outbound packet.
type PacketOutcome string

const (
	OutcomeSuccess PacketOutcome = "success"
	OutcomeFailed  PacketOutcome = "failed"
	OutcomeTimeout PacketOutcome = "timeout"
)

// CallbackMsg is delivered to the sender once its packet was acknowledged or
// timed out.
type CallbackMsg struct {
	Endpoint Endpoint      `json:"endpoint"`
	Sequence uint64        `json:"sequence"`
	Outcome  PacketOutcome `json:"outcome"`
	// Ack is set if the packet was acknowledged with an ICS-999 ack
	Ack *PacketAck `json:"ack,omitempty"`
}

// PacketCallbackHandler is notified when the lifecycle of a packet sent by
// sender completes. Errors are logged and otherwise ignored.
type PacketCallbackHandler interface {
	OnPacketLifecycleComplete(ctx sdk.Context, sender sdk.AccAddress, msg CallbackMsg) error
}

// FactoryMsg is passed to an account factory by the custom registration flow.
type FactoryMsg struct {
	Endpoint   Endpoint `json:"endpoint"`
	Controller string   `json:"controller"`
	Data       []byte   `json:"data,omitempty"`
}

// FactoryResponse is the JSON document an account factory must return.
type FactoryResponse struct {
	Address string `json:"address"`
}

// AccountFactory creates interchain accounts on behalf of the module. It
// returns the JSON encoding of a FactoryResponse.
type AccountFactory interface {
	CreateAccount(ctx sdk.Context, msg FactoryMsg) ([]byte, error)
}

// ParseFactoryResponse decodes the address reported by a factory.
func ParseFactoryResponse(bz []byte) (sdk.AccAddress, error) {
	if len(bz) == 0 {
		return nil, ErrFactoryResponseDataMissing
	}

	var res FactoryResponse
	if err := json.Unmarshal(bz, &res); err != nil {
		return nil, errorsmod.Wrap(ErrInvalidFactoryResponse, err.Error())
	}

	addr, err := sdk.AccAddressFromBech32(res.Address)
	if err != nil {
		return nil, errorsmod.Wrap(ErrInvalidFactoryResponse, err.Error())
	}

	return addr, nil
}
