package keeper

import (
	"fmt"

	"cosmossdk.io/collections"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/cosmos/ics999/modules/apps/ics999/types"
)

// InitGenesis initializes the ics999 state from a genesis state.
func (k Keeper) InitGenesis(ctx sdk.Context, state types.GenesisState) error {
	if err := k.SetParams(ctx, state.Params); err != nil {
		return err
	}

	for _, ch := range state.ActiveChannels {
		if err := k.ActiveChannels.Set(ctx, ch.ConnectionID, ch.ChannelID); err != nil {
			return err
		}
	}

	for _, acc := range state.Accounts {
		if err := k.Accounts.Set(ctx, accountKey(acc.Endpoint, acc.Controller), acc.Address); err != nil {
			return err
		}
	}

	for _, trace := range state.DenomTraces {
		if _, err := k.registerVoucher(ctx, trace.Item()); err != nil {
			return err
		}
	}

	// Every denom will have only one total escrow amount, since any
	// duplicate entry will fail validation in Validate of GenesisState
	for _, escrow := range state.TotalEscrowed {
		if err := k.SetTotalEscrowForDenom(ctx, escrow); err != nil {
			return err
		}
	}

	return nil
}

// ExportGenesis exports the ics999 module state.
func (k Keeper) ExportGenesis(ctx sdk.Context) (*types.GenesisState, error) {
	channels := []types.ActiveChannel{}
	if err := k.ActiveChannels.Walk(ctx, nil, func(connectionID, channelID string) (bool, error) {
		channels = append(channels, types.ActiveChannel{ConnectionID: connectionID, ChannelID: channelID})
		return false, nil
	}); err != nil {
		return nil, err
	}

	accounts := []types.RegisteredAccount{}
	if err := k.Accounts.Walk(ctx, nil, func(key collections.Triple[string, string, string], address string) (bool, error) {
		accounts = append(accounts, types.RegisteredAccount{
			Endpoint:   types.NewEndpoint(key.K1(), key.K2()),
			Controller: key.K3(),
			Address:    address,
		})
		return false, nil
	}); err != nil {
		return nil, err
	}

	traces := []types.Trace{}
	if err := k.DenomTraces.Walk(ctx, nil, func(denom string, trace types.TraceItem) (bool, error) {
		traces = append(traces, types.NewTrace(denom, trace))
		return false, nil
	}); err != nil {
		return nil, err
	}

	escrowed, err := k.GetAllTotalEscrowed(ctx)
	if err != nil {
		return nil, err
	}

	if has, err := k.Handler.Has(ctx); err != nil {
		return nil, err
	} else if has {
		return nil, fmt.Errorf("cannot export genesis with an action queue in flight")
	}

	return types.NewGenesisState(k.GetParams(ctx), channels, accounts, traces, escrowed), nil
}
