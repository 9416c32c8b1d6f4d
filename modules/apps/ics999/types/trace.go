package types

import (
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/ripemd160" //nolint:staticcheck

	errorsmod "cosmossdk.io/errors"

	host "github.com/cosmos/ibc-go/v10/modules/core/24-host"
)

// Endpoint is one side of an IBC channel.
type Endpoint struct {
	PortID    string `json:"port_id"`
	ChannelID string `json:"channel_id"`
}

// NewEndpoint creates a new Endpoint instance
func NewEndpoint(portID, channelID string) Endpoint {
	return Endpoint{
		PortID:    portID,
		ChannelID: channelID,
	}
}

// Validate performs a basic validation of the endpoint identifiers.
func (e Endpoint) Validate() error {
	if err := host.PortIdentifierValidator(e.PortID); err != nil {
		return errorsmod.Wrapf(err, "invalid endpoint port ID %s", e.PortID)
	}
	if err := host.ChannelIdentifierValidator(e.ChannelID); err != nil {
		return errorsmod.Wrapf(err, "invalid endpoint channel ID %s", e.ChannelID)
	}
	return nil
}

// String returns the endpoint as port/channel.
func (e Endpoint) String() string {
	return fmt.Sprintf("%s/%s", e.PortID, e.ChannelID)
}

// TraceItem is the provenance of a denomination: the denom on its origin chain
// and the endpoints it was received on, oldest first.
type TraceItem struct {
	BaseDenom string     `json:"base_denom"`
	Path      []Endpoint `json:"path"`
}

// NewTraceItem returns the trace of a denom native to the local chain.
func NewTraceItem(baseDenom string) TraceItem {
	return TraceItem{
		BaseDenom: baseDenom,
		Path:      []Endpoint{},
	}
}

// Hash returns the ripemd160 digest of the base denom followed by the port
// and channel of every hop in order.
func (t TraceItem) Hash() []byte {
	hasher := ripemd160.New()
	hasher.Write([]byte(t.BaseDenom))
	for _, hop := range t.Path {
		hasher.Write([]byte(hop.PortID))
		hasher.Write([]byte(hop.ChannelID))
	}
	return hasher.Sum(nil)
}

// IBCDenom returns the local denomination of the token described by the trace.
// Native tokens keep their base denom, vouchers are named ics999/{hash}.
func (t TraceItem) IBCDenom() string {
	if len(t.Path) == 0 {
		return t.BaseDenom
	}
	return fmt.Sprintf("%s/%s", DenomPrefix, hex.EncodeToString(t.Hash()))
}

// ReceiverIsSource returns true if the token was last received through the
// given endpoint, in which case sending it back through that endpoint unwinds
// the last hop.
func (t TraceItem) ReceiverIsSource(src Endpoint) bool {
	if len(t.Path) == 0 {
		return false
	}
	return t.Path[len(t.Path)-1] == src
}

// SenderIsSource returns true if the chain sending the token through src is a
// source for it. The sender escrows and the receiver mints in that case,
// otherwise the sender burns and the receiver releases.
func (t TraceItem) SenderIsSource(src Endpoint) bool {
	return !t.ReceiverIsSource(src)
}

// AddHop returns a copy of the trace with the endpoint appended.
func (t TraceItem) AddHop(hop Endpoint) TraceItem {
	path := make([]Endpoint, len(t.Path), len(t.Path)+1)
	copy(path, t.Path)
	return TraceItem{
		BaseDenom: t.BaseDenom,
		Path:      append(path, hop),
	}
}

// PopHop returns a copy of the trace with the last endpoint removed. It
// returns the trace unchanged if the path is empty.
func (t TraceItem) PopHop() TraceItem {
	if len(t.Path) == 0 {
		return t
	}
	path := make([]Endpoint, len(t.Path)-1)
	copy(path, t.Path[:len(t.Path)-1])
	return TraceItem{
		BaseDenom: t.BaseDenom,
		Path:      path,
	}
}

// Validate performs a basic validation of the trace.
func (t TraceItem) Validate() error {
	if strings.TrimSpace(t.BaseDenom) == "" {
		return errorsmod.Wrap(ErrInvalidTrace, "base denomination cannot be blank")
	}
	for _, hop := range t.Path {
		if err := hop.Validate(); err != nil {
			return errorsmod.Wrap(ErrInvalidTrace, err.Error())
		}
	}
	return nil
}

// String returns the trace as base_denom followed by its hops.
func (t TraceItem) String() string {
	parts := make([]string, 0, len(t.Path)+1)
	for _, hop := range t.Path {
		parts = append(parts, hop.String())
	}
	return strings.Join(append(parts, t.BaseDenom), "/")
}

// Trace is the form in which a trace travels inside a packet: the denom as
// known on the sending chain together with its provenance.
type Trace struct {
	Denom     string     `json:"denom"`
	BaseDenom string     `json:"base_denom"`
	Path      []Endpoint `json:"path"`
}

// NewTrace attaches the local denom to a trace item.
func NewTrace(denom string, item TraceItem) Trace {
	return Trace{
		Denom:     denom,
		BaseDenom: item.BaseDenom,
		Path:      item.Path,
	}
}

// Item returns the provenance part of the trace.
func (t Trace) Item() TraceItem {
	path := t.Path
	if path == nil {
		path = []Endpoint{}
	}
	return TraceItem{
		BaseDenom: t.BaseDenom,
		Path:      path,
	}
}

// Validate performs a basic validation of the trace.
func (t Trace) Validate() error {
	if strings.TrimSpace(t.Denom) == "" {
		return errorsmod.Wrap(ErrInvalidTrace, "denomination cannot be blank")
	}
	return t.Item().Validate()
}

// FindTrace returns the provenance of denom among the traces of a packet.
func FindTrace(traces []Trace, denom string) (TraceItem, bool) {
	for _, trace := range traces {
		if trace.Denom == denom {
			return trace.Item(), true
		}
	}
	return TraceItem{}, false
}
