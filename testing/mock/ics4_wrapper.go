package mock

import (
	errorsmod "cosmossdk.io/errors"

	sdk "github.com/cosmos/cosmos-sdk/types"

	clienttypes "github.com/cosmos/ibc-go/v10/modules/core/02-client/types"
	channeltypes "github.com/cosmos/ibc-go/v10/modules/core/04-channel/types"
	porttypes "github.com/cosmos/ibc-go/v10/modules/core/05-port/types"
	"github.com/cosmos/ibc-go/v10/modules/core/exported"
)

var _ porttypes.ICS4Wrapper = (*ICS4Wrapper)(nil)

// ICS4Wrapper records the packets sent by the application instead of
// committing them to the IBC store.
type ICS4Wrapper struct {
	channelKeeper *ChannelKeeper
	sequences     map[string]uint64

	SentPackets []channeltypes.Packet
}

// NewICS4Wrapper returns an ICS4Wrapper sending over the channels of the
// given keeper.
func NewICS4Wrapper(channelKeeper *ChannelKeeper) *ICS4Wrapper {
	return &ICS4Wrapper{
		channelKeeper: channelKeeper,
		sequences:     make(map[string]uint64),
	}
}

// SendPacket assigns the next sequence of the channel to the packet and
// records it.
func (w *ICS4Wrapper) SendPacket(
	ctx sdk.Context,
	sourcePort string,
	sourceChannel string,
	timeoutHeight clienttypes.Height,
	timeoutTimestamp uint64,
	data []byte,
) (uint64, error) {
	channel, found := w.channelKeeper.GetChannel(ctx, sourcePort, sourceChannel)
	if !found {
		return 0, errorsmod.Wrapf(channeltypes.ErrChannelNotFound, "port ID (%s) channel ID (%s)", sourcePort, sourceChannel)
	}

	if channel.State != channeltypes.OPEN {
		return 0, errorsmod.Wrapf(channeltypes.ErrInvalidChannelState, "channel is not OPEN (got %s)", channel.State)
	}

	if timeoutHeight.IsZero() && timeoutTimestamp == 0 {
		return 0, errorsmod.Wrap(channeltypes.ErrInvalidPacket, "packet timeout height and packet timeout timestamp cannot both be 0")
	}

	key := channelKey(sourcePort, sourceChannel)
	w.sequences[key]++
	sequence := w.sequences[key]

	packet := channeltypes.NewPacket(
		data, sequence,
		sourcePort, sourceChannel,
		channel.Counterparty.PortId, channel.Counterparty.ChannelId,
		timeoutHeight, timeoutTimestamp,
	)
	w.SentPackets = append(w.SentPackets, packet)

	return sequence, nil
}

// WriteAcknowledgement is a no-op, acknowledgements are returned synchronously.
func (*ICS4Wrapper) WriteAcknowledgement(sdk.Context, exported.PacketI, exported.Acknowledgement) error {
	return nil
}

// GetAppVersion returns the version of the channel.
func (w *ICS4Wrapper) GetAppVersion(ctx sdk.Context, portID, channelID string) (string, bool) {
	channel, found := w.channelKeeper.GetChannel(ctx, portID, channelID)
	if !found {
		return "", false
	}
	return channel.Version, true
}

// LastPacket returns the most recently sent packet.
func (w *ICS4Wrapper) LastPacket() (channeltypes.Packet, bool) {
	if len(w.SentPackets) == 0 {
		return channeltypes.Packet{}, false
	}
	return w.SentPackets[len(w.SentPackets)-1], true
}
