package types

import (
	"fmt"

	errorsmod "cosmossdk.io/errors"

	sdk "github.com/cosmos/cosmos-sdk/types"

	host "github.com/cosmos/ibc-go/v10/modules/core/24-host"
	ibcerrors "github.com/cosmos/ibc-go/v10/modules/core/errors"
)

// GenesisState defines the ics999 genesis state
type GenesisState struct {
	Params         Params              `json:"params"`
	ActiveChannels []ActiveChannel     `json:"active_channels"`
	Accounts       []RegisteredAccount `json:"accounts"`
	DenomTraces    []Trace             `json:"denom_traces"`
	TotalEscrowed  sdk.Coins           `json:"total_escrowed"`
}

// ActiveChannel is the ics999 channel opened on a connection.
type ActiveChannel struct {
	ConnectionID string `json:"connection_id"`
	ChannelID    string `json:"channel_id"`
}

// RegisteredAccount is an entry of the interchain account registry.
type RegisteredAccount struct {
	Endpoint   Endpoint `json:"endpoint"`
	Controller string   `json:"controller"`
	Address    string   `json:"address"`
}

// NewGenesisState creates a new ics999 GenesisState instance.
func NewGenesisState(params Params, channels []ActiveChannel, accounts []RegisteredAccount, traces []Trace, totalEscrowed sdk.Coins) *GenesisState {
	return &GenesisState{
		Params:         params,
		ActiveChannels: channels,
		Accounts:       accounts,
		DenomTraces:    traces,
		TotalEscrowed:  totalEscrowed,
	}
}

// DefaultGenesisState returns the default ics999 genesis state.
func DefaultGenesisState() *GenesisState {
	return NewGenesisState(DefaultParams(), []ActiveChannel{}, []RegisteredAccount{}, []Trace{}, sdk.Coins{})
}

// Validate performs basic genesis state validation returning an error upon any
// failure.
func (gs GenesisState) Validate() error {
	if err := gs.Params.Validate(); err != nil {
		return err
	}

	connections := make(map[string]bool)
	for _, ch := range gs.ActiveChannels {
		if err := host.ConnectionIdentifierValidator(ch.ConnectionID); err != nil {
			return err
		}
		if err := host.ChannelIdentifierValidator(ch.ChannelID); err != nil {
			return err
		}
		if connections[ch.ConnectionID] {
			return errorsmod.Wrapf(ErrChannelExists, "duplicate active channel for connection %s", ch.ConnectionID)
		}
		connections[ch.ConnectionID] = true
	}

	accounts := make(map[string]bool)
	for _, acc := range gs.Accounts {
		if err := acc.Endpoint.Validate(); err != nil {
			return err
		}
		if acc.Controller == "" {
			return errorsmod.Wrap(ibcerrors.ErrInvalidAddress, "controller cannot be blank")
		}
		if _, err := sdk.AccAddressFromBech32(acc.Address); err != nil {
			return errorsmod.Wrapf(ibcerrors.ErrInvalidAddress, "string could not be parsed as address: %v", err)
		}
		key := fmt.Sprintf("%s/%s", acc.Endpoint, acc.Controller)
		if accounts[key] {
			return errorsmod.Wrapf(ErrAccountExists, "duplicate account for %s", key)
		}
		accounts[key] = true
	}

	for _, trace := range gs.DenomTraces {
		if err := trace.Validate(); err != nil {
			return err
		}
		if trace.Denom != trace.Item().IBCDenom() {
			return errorsmod.Wrapf(ErrInvalidTrace, "denom %s does not match trace %s", trace.Denom, trace.Item())
		}
	}

	return gs.TotalEscrowed.Validate()
}
