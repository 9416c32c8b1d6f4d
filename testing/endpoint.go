package ibctesting

import (
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/cosmos/ics999/modules/apps/ics999/types"

	channeltypes "github.com/cosmos/ibc-go/v10/modules/core/04-channel/types"
	"github.com/cosmos/ibc-go/v10/modules/core/exported"
)

// ChannelConfig is the configuration of one end of an ics999 channel.
type ChannelConfig struct {
	PortID  string
	Version string
	Order   channeltypes.Order
}

// NewChannelConfig returns the default ics999 channel configuration.
func NewChannelConfig() *ChannelConfig {
	return &ChannelConfig{
		PortID:  types.PortID,
		Version: types.Version,
		Order:   channeltypes.UNORDERED,
	}
}

// Endpoint is one end of a path. It drives the ics999 IBC module of its chain
// the way the IBC core handlers would.
type Endpoint struct {
	Chain        *TestChain
	Counterparty *Endpoint
	ConnectionID string
	ChannelID    string

	ChannelConfig *ChannelConfig
}

// NewDefaultEndpoint constructs a new endpoint using the default ics999 channel
// configuration and a fresh connection identifier.
func NewDefaultEndpoint(chain *TestChain) *Endpoint {
	return &Endpoint{
		Chain:         chain,
		ConnectionID:  chain.NextConnectionID(),
		ChannelConfig: NewChannelConfig(),
	}
}

// Endpoint returns the endpoint as seen by the ics999 module.
func (endpoint *Endpoint) Endpoint() types.Endpoint {
	return types.NewEndpoint(endpoint.ChannelConfig.PortID, endpoint.ChannelID)
}

// GetChannel retrieves the channel end of the endpoint.
func (endpoint *Endpoint) GetChannel() channeltypes.Channel {
	channel, found := endpoint.Chain.ChannelKeeper.GetChannel(endpoint.Chain.GetContext(), endpoint.ChannelConfig.PortID, endpoint.ChannelID)
	if !found {
		endpoint.Chain.Fatalf("channel %s not found on %s", endpoint.ChannelID, endpoint.Chain.ChainID)
	}
	return channel
}

func (endpoint *Endpoint) setChannel(state channeltypes.State, counterpartyChannelID string) {
	counterparty := channeltypes.NewCounterparty(endpoint.Counterparty.ChannelConfig.PortID, counterpartyChannelID)
	channel := channeltypes.NewChannel(state, endpoint.ChannelConfig.Order, counterparty, []string{endpoint.ConnectionID}, endpoint.ChannelConfig.Version)
	endpoint.Chain.ChannelKeeper.SetChannel(endpoint.ChannelConfig.PortID, endpoint.ChannelID, channel)
}

// ChanOpenInit runs the OnChanOpenInit callback and stores the channel in INIT.
func (endpoint *Endpoint) ChanOpenInit() error {
	channelID := endpoint.Chain.NextChannelID()
	counterparty := channeltypes.NewCounterparty(endpoint.Counterparty.ChannelConfig.PortID, "")

	version, err := endpoint.Chain.IBCModule.OnChanOpenInit(
		endpoint.Chain.GetContext(),
		endpoint.ChannelConfig.Order,
		[]string{endpoint.ConnectionID},
		endpoint.ChannelConfig.PortID,
		channelID,
		counterparty,
		endpoint.ChannelConfig.Version,
	)
	if err != nil {
		return err
	}

	endpoint.ChannelID = channelID
	endpoint.ChannelConfig.Version = version
	endpoint.setChannel(channeltypes.INIT, "")

	return nil
}

// ChanOpenTry runs the OnChanOpenTry callback and stores the channel in TRYOPEN.
func (endpoint *Endpoint) ChanOpenTry() error {
	channelID := endpoint.Chain.NextChannelID()
	counterparty := channeltypes.NewCounterparty(endpoint.Counterparty.ChannelConfig.PortID, endpoint.Counterparty.ChannelID)

	version, err := endpoint.Chain.IBCModule.OnChanOpenTry(
		endpoint.Chain.GetContext(),
		endpoint.ChannelConfig.Order,
		[]string{endpoint.ConnectionID},
		endpoint.ChannelConfig.PortID,
		channelID,
		counterparty,
		endpoint.Counterparty.ChannelConfig.Version,
	)
	if err != nil {
		return err
	}

	endpoint.ChannelID = channelID
	endpoint.ChannelConfig.Version = version
	endpoint.setChannel(channeltypes.TRYOPEN, endpoint.Counterparty.ChannelID)

	return nil
}

// ChanOpenAck runs the OnChanOpenAck callback and opens the channel.
func (endpoint *Endpoint) ChanOpenAck() error {
	if err := endpoint.Chain.IBCModule.OnChanOpenAck(
		endpoint.Chain.GetContext(),
		endpoint.ChannelConfig.PortID,
		endpoint.ChannelID,
		endpoint.Counterparty.ChannelID,
		endpoint.Counterparty.ChannelConfig.Version,
	); err != nil {
		return err
	}

	endpoint.setChannel(channeltypes.OPEN, endpoint.Counterparty.ChannelID)
	return nil
}

// ChanOpenConfirm runs the OnChanOpenConfirm callback and opens the channel.
func (endpoint *Endpoint) ChanOpenConfirm() error {
	if err := endpoint.Chain.IBCModule.OnChanOpenConfirm(
		endpoint.Chain.GetContext(),
		endpoint.ChannelConfig.PortID,
		endpoint.ChannelID,
	); err != nil {
		return err
	}

	endpoint.setChannel(channeltypes.OPEN, endpoint.Counterparty.ChannelID)
	return nil
}

// ChanCloseInit runs the OnChanCloseInit callback.
func (endpoint *Endpoint) ChanCloseInit() error {
	return endpoint.Chain.IBCModule.OnChanCloseInit(
		endpoint.Chain.GetContext(),
		endpoint.ChannelConfig.PortID,
		endpoint.ChannelID,
	)
}

// RecvPacket delivers the packet to the endpoint's chain. As in the IBC core
// handler, state is only committed if the acknowledgement is successful.
func (endpoint *Endpoint) RecvPacket(packet channeltypes.Packet) exported.Acknowledgement {
	ctx := endpoint.Chain.GetContext()
	if packet.TimeoutTimestamp != 0 && uint64(ctx.BlockTime().UnixNano()) >= packet.TimeoutTimestamp {
		endpoint.Chain.Fatalf("packet %d has timed out on %s", packet.Sequence, endpoint.Chain.ChainID)
	}

	cacheCtx, writeFn := ctx.CacheContext()
	ack := endpoint.Chain.IBCModule.OnRecvPacket(cacheCtx, endpoint.ChannelConfig.Version, packet, endpoint.Chain.RelayerAccount)
	if ack.Success() {
		writeFn()
	}

	return ack
}

// AcknowledgePacket delivers the acknowledgement to the endpoint's chain.
func (endpoint *Endpoint) AcknowledgePacket(packet channeltypes.Packet, ack []byte) error {
	return endpoint.Chain.IBCModule.OnAcknowledgementPacket(
		endpoint.Chain.GetContext(),
		endpoint.ChannelConfig.Version,
		packet,
		ack,
		endpoint.Chain.RelayerAccount,
	)
}

// TimeoutPacket times the packet out on the endpoint's chain. The
// counterparty's clock must have passed the packet timeout.
func (endpoint *Endpoint) TimeoutPacket(packet channeltypes.Packet) error {
	counterpartyTime := uint64(endpoint.Counterparty.Chain.GetTime().UnixNano())
	if counterpartyTime < packet.TimeoutTimestamp {
		return fmt.Errorf("packet %d has not timed out: %d < %d", packet.Sequence, counterpartyTime, packet.TimeoutTimestamp)
	}

	return endpoint.Chain.IBCModule.OnTimeoutPacket(
		endpoint.Chain.GetContext(),
		endpoint.ChannelConfig.Version,
		packet,
		endpoint.Chain.RelayerAccount,
	)
}

// RelayerAddress returns the address that receives relayer fees on the
// endpoint's chain.
func (endpoint *Endpoint) RelayerAddress() sdk.AccAddress {
	return endpoint.Chain.RelayerAccount
}
