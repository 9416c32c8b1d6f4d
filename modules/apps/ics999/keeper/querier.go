package keeper

import (
	"context"
	"encoding/hex"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"cosmossdk.io/collections"
	errorsmod "cosmossdk.io/errors"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/query"

	"github.com/cosmos/ics999/internal/validate"
	"github.com/cosmos/ics999/modules/apps/ics999/types"
)

// The Query methods are the read API for code embedding the keeper: other
// modules, contract bindings and app level query handlers. ics999 registers
// no gRPC query service, and the CLI reads the same collections directly
// from the store over ABCI. Errors carry gRPC status codes so the methods
// can back a query service unchanged.

// QueryConfig returns the module account address and the current parameters.
func (k Keeper) QueryConfig(ctx context.Context) types.ConfigResponse {
	return types.ConfigResponse{
		ModuleAddress: k.GetModuleAddress().String(),
		Params:        k.GetParams(ctx),
	}
}

// QueryDenomHash computes the hash and local denom of a trace. The trace does
// not need to be known by the chain.
func (Keeper) QueryDenomHash(trace types.TraceItem) (types.DenomHashResponse, error) {
	if err := trace.Validate(); err != nil {
		return types.DenomHashResponse{}, status.Error(codes.InvalidArgument, err.Error())
	}

	return types.DenomHashResponse{
		Hash:  hex.EncodeToString(trace.Hash()),
		Denom: trace.IBCDenom(),
	}, nil
}

// QueryDenomTrace returns the trace of a voucher denom.
func (k Keeper) QueryDenomTrace(ctx context.Context, denom string) (types.Trace, error) {
	if denom == "" {
		return types.Trace{}, status.Error(codes.InvalidArgument, "empty denom")
	}

	trace, err := k.DenomTraces.Get(ctx, denom)
	if err != nil {
		if errors.Is(err, collections.ErrNotFound) {
			return types.Trace{}, status.Error(
				codes.NotFound,
				errorsmod.Wrap(types.ErrTraceNotFound, denom).Error(),
			)
		}
		return types.Trace{}, status.Error(codes.Internal, err.Error())
	}

	return types.NewTrace(denom, trace), nil
}

// QueryDenomTraces returns a page of the stored voucher traces.
func (k Keeper) QueryDenomTraces(ctx context.Context, pageReq *query.PageRequest) (*types.DenomTracesResponse, error) {
	traces, pageRes, err := query.CollectionPaginate(
		ctx,
		k.DenomTraces,
		pageReq,
		func(denom string, trace types.TraceItem) (types.Trace, error) {
			return types.NewTrace(denom, trace), nil
		},
	)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}

	return &types.DenomTracesResponse{
		DenomTraces: traces,
		Pagination:  pageRes,
	}, nil
}

// QueryAccount returns the interchain account of a controller on a local
// endpoint.
func (k Keeper) QueryAccount(ctx context.Context, portID, channelID, controller string) (types.RegisteredAccount, error) {
	if err := validate.EndpointRequest(portID, channelID); err != nil {
		return types.RegisteredAccount{}, err
	}

	if controller == "" {
		return types.RegisteredAccount{}, status.Error(codes.InvalidArgument, "empty controller")
	}

	endpoint := types.NewEndpoint(portID, channelID)
	addr, found, err := k.GetInterchainAccount(ctx, endpoint, controller)
	if err != nil {
		return types.RegisteredAccount{}, status.Error(codes.Internal, err.Error())
	}
	if !found {
		return types.RegisteredAccount{}, status.Error(
			codes.NotFound,
			errorsmod.Wrapf(types.ErrAccountNotFound, "endpoint %s, controller %s", endpoint, controller).Error(),
		)
	}

	return types.RegisteredAccount{
		Endpoint:   endpoint,
		Controller: controller,
		Address:    addr.String(),
	}, nil
}

// QueryAccounts returns a page of the interchain account registry.
func (k Keeper) QueryAccounts(ctx context.Context, pageReq *query.PageRequest) (*types.AccountsResponse, error) {
	accounts, pageRes, err := query.CollectionPaginate(
		ctx,
		k.Accounts,
		pageReq,
		func(key collections.Triple[string, string, string], address string) (types.RegisteredAccount, error) {
			return types.RegisteredAccount{
				Endpoint:   types.NewEndpoint(key.K1(), key.K2()),
				Controller: key.K3(),
				Address:    address,
			}, nil
		},
	)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}

	return &types.AccountsResponse{
		Accounts:   accounts,
		Pagination: pageRes,
	}, nil
}

// QueryActiveChannel returns the ics999 channel opened on a connection.
func (k Keeper) QueryActiveChannel(ctx context.Context, connectionID string) (types.ActiveChannel, error) {
	if err := validate.ConnectionRequest(connectionID); err != nil {
		return types.ActiveChannel{}, err
	}

	channelID, found := k.GetActiveChannelID(ctx, connectionID)
	if !found {
		return types.ActiveChannel{}, status.Error(
			codes.NotFound,
			errorsmod.Wrap(types.ErrActiveChannelNotFound, connectionID).Error(),
		)
	}

	return types.ActiveChannel{
		ConnectionID: connectionID,
		ChannelID:    channelID,
	}, nil
}

// QueryActiveChannels returns a page of the active channels.
func (k Keeper) QueryActiveChannels(ctx context.Context, pageReq *query.PageRequest) (*types.ActiveChannelsResponse, error) {
	channels, pageRes, err := query.CollectionPaginate(
		ctx,
		k.ActiveChannels,
		pageReq,
		func(connectionID, channelID string) (types.ActiveChannel, error) {
			return types.ActiveChannel{
				ConnectionID: connectionID,
				ChannelID:    channelID,
			}, nil
		},
	)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}

	return &types.ActiveChannelsResponse{
		ActiveChannels: channels,
		Pagination:     pageRes,
	}, nil
}

// QueryTotalEscrow returns the amount of a native denom held in escrow.
func (k Keeper) QueryTotalEscrow(ctx context.Context, denom string) (sdk.Coin, error) {
	if err := sdk.ValidateDenom(denom); err != nil {
		return sdk.Coin{}, status.Error(codes.InvalidArgument, err.Error())
	}

	return k.GetTotalEscrowForDenom(ctx, denom), nil
}

