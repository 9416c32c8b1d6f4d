package keeper

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cosmossdk.io/collections"
	corestore "cosmossdk.io/core/store"
	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/log"
	sdkmath "cosmossdk.io/math"

	"github.com/cosmos/cosmos-sdk/codec"
	sdk "github.com/cosmos/cosmos-sdk/types"

	internalcollections "github.com/cosmos/ics999/internal/collections"
	"github.com/cosmos/ics999/modules/apps/ics999/types"

	porttypes "github.com/cosmos/ibc-go/v10/modules/core/05-port/types"
	ibcerrors "github.com/cosmos/ibc-go/v10/modules/core/errors"
	"github.com/cosmos/ibc-go/v10/modules/core/exported"
)

// Keeper defines the ICS-999 keeper
type Keeper struct {
	cdc codec.Codec

	ics4Wrapper   porttypes.ICS4Wrapper
	channelKeeper types.ChannelKeeper
	accountKeeper types.AccountKeeper
	bankKeeper    types.BankKeeper
	msgRouter     types.MessageRouter
	queryRouter   types.QueryRouter

	factories       map[string]types.AccountFactory
	callbackHandler types.PacketCallbackHandler

	// the address capable of updating the module parameters. Typically, this
	// should be the x/gov module account.
	authority string

	// state management
	Schema collections.Schema
	Params collections.Item[types.Params]
	// Handler is the single slot holding the action queue in flight
	Handler collections.Item[types.Handler]
	// Accounts is a map of (PortID, ChannelID, Controller) to interchain account address
	Accounts collections.Map[collections.Triple[string, string, string], string]
	// ActiveChannels is a map of ConnectionID to the ics999 ChannelID opened on it
	ActiveChannels collections.Map[string, string]
	// DenomTraces is a map of voucher denom to its trace
	DenomTraces collections.Map[string, types.TraceItem]
	// TotalEscrow is a map of native denom to the amount escrowed by the module
	TotalEscrow collections.Map[string, sdkmath.Int]
}

// NewKeeper creates a new ICS-999 Keeper instance
func NewKeeper(
	cdc codec.Codec,
	storeService corestore.KVStoreService,
	ics4Wrapper porttypes.ICS4Wrapper,
	channelKeeper types.ChannelKeeper,
	accountKeeper types.AccountKeeper,
	bankKeeper types.BankKeeper,
	msgRouter types.MessageRouter,
	queryRouter types.QueryRouter,
	authority string,
) Keeper {
	// ensure ics999 module account is set
	if addr := accountKeeper.GetModuleAddress(types.ModuleName); addr == nil {
		panic(errors.New("the ICS-999 module account has not been set"))
	}

	if strings.TrimSpace(authority) == "" {
		panic(errors.New("authority must be non-empty"))
	}

	sb := collections.NewSchemaBuilder(storeService)
	k := Keeper{
		cdc:            cdc,
		ics4Wrapper:    ics4Wrapper,
		channelKeeper:  channelKeeper,
		accountKeeper:  accountKeeper,
		bankKeeper:     bankKeeper,
		msgRouter:      msgRouter,
		queryRouter:    queryRouter,
		factories:      make(map[string]types.AccountFactory),
		authority:      authority,
		Params:         collections.NewItem(sb, types.ParamsKey, "params", internalcollections.JSONValue[types.Params]()),
		Handler:        collections.NewItem(sb, types.HandlerKey, "handler", internalcollections.JSONValue[types.Handler]()),
		Accounts:       collections.NewMap(sb, types.AccountsKey, "accounts", collections.TripleKeyCodec(collections.StringKey, collections.StringKey, collections.StringKey), collections.StringValue),
		ActiveChannels: collections.NewMap(sb, types.ActiveChannelsKey, "active_channels", collections.StringKey, collections.StringValue),
		DenomTraces:    collections.NewMap(sb, types.DenomTracesKey, "denom_traces", collections.StringKey, internalcollections.JSONValue[types.TraceItem]()),
		TotalEscrow:    collections.NewMap(sb, types.TotalEscrowKey, "total_escrow", collections.StringKey, sdk.IntValue),
	}

	schema, err := sb.Build()
	if err != nil {
		panic(err)
	}

	k.Schema = schema

	return k
}

// SetICS4Wrapper sets the ICS4Wrapper. This function may be used after
// the keeper's creation to set the middleware which is above this module
// in the IBC application stack.
func (k *Keeper) SetICS4Wrapper(wrapper porttypes.ICS4Wrapper) {
	k.ics4Wrapper = wrapper
}

// SetAccountFactory registers a factory usable by the custom account
// registration flow under the given name.
func (k *Keeper) SetAccountFactory(name string, factory types.AccountFactory) {
	if _, ok := k.factories[name]; ok {
		panic(fmt.Errorf("account factory %s already registered", name))
	}
	k.factories[name] = factory
}

// SetCallbackHandler sets the handler notified when an outbound packet
// completes its lifecycle.
func (k *Keeper) SetCallbackHandler(handler types.PacketCallbackHandler) {
	k.callbackHandler = handler
}

// GetAuthority returns the module's authority.
func (k Keeper) GetAuthority() string {
	return k.authority
}

// Logger returns a module-specific logger.
func (Keeper) Logger(ctx context.Context) log.Logger {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	return sdkCtx.Logger().With("module", "x/"+exported.ModuleName+"-"+types.ModuleName)
}

// GetModuleAddress returns the address of the ics999 module account. It owns
// escrowed funds and is the deployer of every interchain account.
func (k Keeper) GetModuleAddress() sdk.AccAddress {
	return k.accountKeeper.GetModuleAddress(types.ModuleName)
}

// GetParams returns the current ics999 module parameters.
func (k Keeper) GetParams(ctx context.Context) types.Params {
	params, err := k.Params.Get(ctx)
	if err != nil {
		if errors.Is(err, collections.ErrNotFound) {
			return types.DefaultParams()
		}
		panic(err)
	}
	return params
}

// SetParams sets the ics999 module parameters.
func (k Keeper) SetParams(ctx context.Context, params types.Params) error {
	if err := params.Validate(); err != nil {
		return err
	}
	return k.Params.Set(ctx, params)
}

// UpdateParams sets the module parameters on behalf of the authority.
func (k Keeper) UpdateParams(ctx context.Context, signer string, params types.Params) error {
	if k.GetAuthority() != signer {
		return errorsmod.Wrapf(ibcerrors.ErrUnauthorized, "expected %s, got %s", k.GetAuthority(), signer)
	}

	if err := k.SetParams(ctx, params); err != nil {
		return err
	}

	k.Logger(ctx).Info("ics999 params updated", "send_enabled", params.SendEnabled, "receive_enabled", params.ReceiveEnabled, "default_timeout_secs", params.DefaultTimeoutSecs)
	return nil
}
