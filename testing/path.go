package ibctesting

import (
	"errors"

	channeltypes "github.com/cosmos/ibc-go/v10/modules/core/04-channel/types"
)

// Path contains two endpoints representing two chains connected over an
// ics999 channel.
type Path struct {
	EndpointA *Endpoint
	EndpointB *Endpoint
}

// NewPath constructs an endpoint for each chain using the default values
// for the endpoints. Each endpoint is updated to have a pointer to the
// counterparty endpoint.
func NewPath(chainA, chainB *TestChain) *Path {
	endpointA := NewDefaultEndpoint(chainA)
	endpointB := NewDefaultEndpoint(chainB)

	endpointA.Counterparty = endpointB
	endpointB.Counterparty = endpointA

	return &Path{
		EndpointA: endpointA,
		EndpointB: endpointB,
	}
}

// Reverse returns the path with A and B swapped.
func (path *Path) Reverse() *Path {
	return &Path{
		EndpointA: path.EndpointB,
		EndpointB: path.EndpointA,
	}
}

// CreateChannels runs the channel handshake from A to B.
func (path *Path) CreateChannels() error {
	if err := path.EndpointA.ChanOpenInit(); err != nil {
		return err
	}

	if err := path.EndpointB.ChanOpenTry(); err != nil {
		return err
	}

	if err := path.EndpointA.ChanOpenAck(); err != nil {
		return err
	}

	return path.EndpointB.ChanOpenConfirm()
}

// RelayPacket delivers the packet to the receiving end of the path and the
// resulting acknowledgement back to the sender. It returns the
// acknowledgement bytes.
func (path *Path) RelayPacket(packet channeltypes.Packet) ([]byte, error) {
	src, dest, err := path.endpoints(packet)
	if err != nil {
		return nil, err
	}

	ack := dest.RecvPacket(packet)
	bz := ack.Acknowledgement()

	if err := src.AcknowledgePacket(packet, bz); err != nil {
		return nil, err
	}

	return bz, nil
}

// TimeoutPacket advances the receiving chain's clock past the packet timeout
// and times the packet out on the sender.
func (path *Path) TimeoutPacket(packet channeltypes.Packet) error {
	src, dest, err := path.endpoints(packet)
	if err != nil {
		return err
	}

	dest.Chain.Coordinator.IncrementTimeBy(timeUntil(dest.Chain.GetTime(), packet.TimeoutTimestamp))
	return src.TimeoutPacket(packet)
}

func (path *Path) endpoints(packet channeltypes.Packet) (*Endpoint, *Endpoint, error) {
	switch {
	case packet.SourcePort == path.EndpointA.ChannelConfig.PortID && packet.SourceChannel == path.EndpointA.ChannelID:
		return path.EndpointA, path.EndpointB, nil
	case packet.SourcePort == path.EndpointB.ChannelConfig.PortID && packet.SourceChannel == path.EndpointB.ChannelID:
		return path.EndpointB, path.EndpointA, nil
	default:
		return nil, nil, errors.New("packet was not sent over this path")
	}
}
