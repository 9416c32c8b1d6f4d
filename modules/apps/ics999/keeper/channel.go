package keeper

import (
	"context"
	"errors"

	"cosmossdk.io/collections"
	errorsmod "cosmossdk.io/errors"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/cosmos/ics999/modules/apps/ics999/internal/events"
	"github.com/cosmos/ics999/modules/apps/ics999/types"
)

// GetConnectionID returns the connection the given channel is built on.
func (k Keeper) GetConnectionID(ctx sdk.Context, portID, channelID string) (string, error) {
	channel, found := k.channelKeeper.GetChannel(ctx, portID, channelID)
	if !found {
		return "", errorsmod.Wrapf(types.ErrChannelNotFound, "port ID (%s) channel ID (%s)", portID, channelID)
	}

	if len(channel.ConnectionHops) == 0 {
		return "", errorsmod.Wrapf(types.ErrChannelNotFound, "channel %s has no connection hops", channelID)
	}

	return channel.ConnectionHops[0], nil
}

// GetActiveChannelID returns the ics999 channel opened on the connection.
func (k Keeper) GetActiveChannelID(ctx context.Context, connectionID string) (string, bool) {
	channelID, err := k.ActiveChannels.Get(ctx, connectionID)
	if err != nil {
		if errors.Is(err, collections.ErrNotFound) {
			return "", false
		}
		panic(err)
	}

	return channelID, true
}

// ValidateNoActiveChannel fails if the connection of the channel already has
// an active ics999 channel.
func (k Keeper) ValidateNoActiveChannel(ctx context.Context, connectionID string) error {
	if channelID, found := k.GetActiveChannelID(ctx, connectionID); found {
		return errorsmod.Wrapf(types.ErrChannelExists, "connection %s already has channel %s", connectionID, channelID)
	}

	return nil
}

// SetActiveChannelID records the channel as the active channel of its
// connection once the handshake completes.
func (k Keeper) SetActiveChannelID(ctx sdk.Context, portID, channelID string) error {
	connectionID, err := k.GetConnectionID(ctx, portID, channelID)
	if err != nil {
		return err
	}

	if err := k.ValidateNoActiveChannel(ctx, connectionID); err != nil {
		return err
	}

	if err := k.ActiveChannels.Set(ctx, connectionID, channelID); err != nil {
		return err
	}

	k.Logger(ctx).Info("ics999 channel opened", "connection-id", connectionID, "port-id", portID, "channel-id", channelID)
	events.EmitChannelOpenEvent(ctx, connectionID, portID, channelID)

	return nil
}
