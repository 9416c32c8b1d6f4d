package ics999

import (
	"bytes"
	"fmt"
	"strings"

	errorsmod "cosmossdk.io/errors"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/cosmos/ics999/modules/apps/ics999/internal/events"
	"github.com/cosmos/ics999/modules/apps/ics999/keeper"
	"github.com/cosmos/ics999/modules/apps/ics999/types"

	channeltypes "github.com/cosmos/ibc-go/v10/modules/core/04-channel/types"
	porttypes "github.com/cosmos/ibc-go/v10/modules/core/05-port/types"
	ibcerrors "github.com/cosmos/ibc-go/v10/modules/core/errors"
	ibcexported "github.com/cosmos/ibc-go/v10/modules/core/exported"
)

var (
	_ porttypes.IBCModule             = (*IBCModule)(nil)
	_ porttypes.PacketDataUnmarshaler = (*IBCModule)(nil)
)

// IBCModule implements the ICS26 interface for ics999 given the ics999 keeper.
type IBCModule struct {
	keeper *keeper.Keeper
}

// NewIBCModule creates a new IBCModule given the keeper
func NewIBCModule(k *keeper.Keeper) IBCModule {
	return IBCModule{
		keeper: k,
	}
}

// validateChannelParams does validation of a newly created ics999 channel. An
// ics999 channel must be UNORDERED, use the ics999 port, and be the only
// ics999 channel on its connection.
func (im IBCModule) validateChannelParams(
	ctx sdk.Context,
	order channeltypes.Order,
	connectionHops []string,
	portID string,
) error {
	if order != channeltypes.UNORDERED {
		return errorsmod.Wrapf(types.ErrIncorrectOrder, "expected %s channel, got %s", channeltypes.UNORDERED, order)
	}

	if portID != types.PortID {
		return errorsmod.Wrapf(porttypes.ErrInvalidPort, "invalid port: %s, expected %s", portID, types.PortID)
	}

	if len(connectionHops) != 1 {
		return errorsmod.Wrapf(ibcerrors.ErrInvalidRequest, "expected a single connection hop, got %d", len(connectionHops))
	}

	return im.keeper.ValidateNoActiveChannel(ctx, connectionHops[0])
}

// OnChanOpenInit implements the IBCModule interface
func (im IBCModule) OnChanOpenInit(
	ctx sdk.Context,
	order channeltypes.Order,
	connectionHops []string,
	portID string,
	channelID string,
	counterparty channeltypes.Counterparty,
	version string,
) (string, error) {
	if err := im.validateChannelParams(ctx, order, connectionHops, portID); err != nil {
		return "", err
	}

	// default to the only supported version
	if strings.TrimSpace(version) == "" {
		version = types.Version
	}

	if version != types.Version {
		return "", errorsmod.Wrapf(types.ErrIncorrectVersion, "expected %s, got %s", types.Version, version)
	}

	return version, nil
}

// OnChanOpenTry implements the IBCModule interface.
func (im IBCModule) OnChanOpenTry(
	ctx sdk.Context,
	order channeltypes.Order,
	connectionHops []string,
	portID,
	channelID string,
	counterparty channeltypes.Counterparty,
	counterpartyVersion string,
) (string, error) {
	if err := im.validateChannelParams(ctx, order, connectionHops, portID); err != nil {
		return "", err
	}

	if counterpartyVersion != types.Version {
		return "", errorsmod.Wrapf(types.ErrIncorrectVersion, "invalid counterparty version: expected %s, got %s", types.Version, counterpartyVersion)
	}

	return types.Version, nil
}

// OnChanOpenAck implements the IBCModule interface
func (im IBCModule) OnChanOpenAck(
	ctx sdk.Context,
	portID,
	channelID string,
	_ string,
	counterpartyVersion string,
) error {
	if counterpartyVersion != types.Version {
		return errorsmod.Wrapf(types.ErrIncorrectVersion, "invalid counterparty version: expected %s, got %s", types.Version, counterpartyVersion)
	}

	return im.keeper.SetActiveChannelID(ctx, portID, channelID)
}

// OnChanOpenConfirm implements the IBCModule interface
func (im IBCModule) OnChanOpenConfirm(
	ctx sdk.Context,
	portID,
	channelID string,
) error {
	return im.keeper.SetActiveChannelID(ctx, portID, channelID)
}

// OnChanCloseInit implements the IBCModule interface
func (IBCModule) OnChanCloseInit(
	ctx sdk.Context,
	portID,
	channelID string,
) error {
	return errorsmod.Wrapf(types.ErrUnexpectedChannelClosure, "port ID (%s) channel ID (%s)", portID, channelID)
}

// OnChanCloseConfirm implements the IBCModule interface
func (IBCModule) OnChanCloseConfirm(
	ctx sdk.Context,
	portID,
	channelID string,
) error {
	return nil
}

// OnRecvPacket implements the IBCModule interface. Packets that cannot be
// decoded get an error acknowledgement. Otherwise a result acknowledgement is
// returned that carries either the results of the action queue or the error
// that aborted it.
func (im IBCModule) OnRecvPacket(
	ctx sdk.Context,
	channelVersion string,
	packet channeltypes.Packet,
	relayer sdk.AccAddress,
) ibcexported.Acknowledgement {
	var (
		ackErr  error
		data    types.PacketData
		results []types.ActionResult
	)

	// the packet data is evaluated after it has been assigned a value
	defer func() {
		events.EmitOnRecvPacketEvent(ctx, packet, data.Sender, ackErr)
	}()

	data, ackErr = types.UnmarshalPacketData(packet.GetData())
	if ackErr != nil {
		im.keeper.Logger(ctx).Error(fmt.Sprintf("%s sequence %d", ackErr.Error(), packet.Sequence))
		return channeltypes.NewErrorAcknowledgement(ackErr)
	}

	results, ackErr = im.keeper.OnRecvPacket(ctx, packet, data, relayer)
	if ackErr != nil {
		return channeltypes.NewResultAcknowledgement(types.NewErrorAck(ackErr).GetBytes())
	}

	im.keeper.Logger(ctx).Info("successfully handled ICS-999 packet", "sequence", packet.Sequence, "actions", len(data.Actions))

	return channeltypes.NewResultAcknowledgement(types.NewResultsAck(results).GetBytes())
}

// OnAcknowledgementPacket implements the IBCModule interface
func (im IBCModule) OnAcknowledgementPacket(
	ctx sdk.Context,
	channelVersion string,
	packet channeltypes.Packet,
	acknowledgement []byte,
	relayer sdk.AccAddress,
) error {
	var ack channeltypes.Acknowledgement
	if err := types.ModuleCdc.UnmarshalJSON(acknowledgement, &ack); err != nil {
		return errorsmod.Wrapf(ibcerrors.ErrUnknownRequest, "cannot unmarshal ICS-999 packet acknowledgement: %v", err)
	}

	bz := types.ModuleCdc.MustMarshalJSON(&ack)
	if !bytes.Equal(bz, acknowledgement) {
		return errorsmod.Wrapf(ibcerrors.ErrInvalidType, "acknowledgement did not marshal to expected bytes: %X != %X", bz, acknowledgement)
	}

	data, err := types.UnmarshalPacketData(packet.GetData())
	if err != nil {
		return err
	}

	return im.keeper.OnAcknowledgementPacket(ctx, packet, data, ack, relayer)
}

// OnTimeoutPacket implements the IBCModule interface
func (im IBCModule) OnTimeoutPacket(
	ctx sdk.Context,
	channelVersion string,
	packet channeltypes.Packet,
	relayer sdk.AccAddress,
) error {
	data, err := types.UnmarshalPacketData(packet.GetData())
	if err != nil {
		return err
	}

	return im.keeper.OnTimeoutPacket(ctx, packet, data, relayer)
}

// UnmarshalPacketData attempts to unmarshal the provided packet data bytes
// into a PacketData. This function implements the optional
// PacketDataUnmarshaler interface required for ADR 008 support.
func (IBCModule) UnmarshalPacketData(_ sdk.Context, _, _ string, bz []byte) (interface{}, string, error) {
	data, err := types.UnmarshalPacketData(bz)
	if err != nil {
		return nil, "", err
	}

	return data, types.Version, nil
}
