package events

import (
	"encoding/hex"
	"encoding/json"
	"strconv"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/cosmos/ics999/modules/apps/ics999/types"

	channeltypes "github.com/cosmos/ibc-go/v10/modules/core/04-channel/types"
)

// EmitSendPacketEvent emits an ics999 event when a packet is sent.
func EmitSendPacketEvent(ctx sdk.Context, data types.PacketData, connectionID, channelID string, sequence uint64) {
	ctx.EventManager().EmitEvents(sdk.Events{
		sdk.NewEvent(
			types.EventTypeSendPacket,
			sdk.NewAttribute(types.AttributeKeySender, data.Sender),
			sdk.NewAttribute(types.AttributeKeyConnectionID, connectionID),
			sdk.NewAttribute(types.AttributeKeyPortID, types.PortID),
			sdk.NewAttribute(types.AttributeKeyChannelID, channelID),
			sdk.NewAttribute(types.AttributeKeySequence, strconv.FormatUint(sequence, 10)),
			sdk.NewAttribute(types.AttributeKeyActions, mustMarshalJSON(data.Actions)),
		),
		sdk.NewEvent(
			sdk.EventTypeMessage,
			sdk.NewAttribute(sdk.AttributeKeyModule, types.ModuleName),
		),
	})
}

// EmitOnRecvPacketEvent emits an ics999 packet event in the OnRecvPacket callback
func EmitOnRecvPacketEvent(ctx sdk.Context, packet channeltypes.Packet, sender string, ackErr error) {
	eventAttributes := []sdk.Attribute{
		sdk.NewAttribute(types.AttributeKeySender, sender),
		sdk.NewAttribute(types.AttributeKeyPortID, packet.DestinationPort),
		sdk.NewAttribute(types.AttributeKeyChannelID, packet.DestinationChannel),
		sdk.NewAttribute(types.AttributeKeySequence, strconv.FormatUint(packet.Sequence, 10)),
		sdk.NewAttribute(types.AttributeKeyAckSuccess, strconv.FormatBool(ackErr == nil)),
	}

	if ackErr != nil {
		eventAttributes = append(eventAttributes, sdk.NewAttribute(types.AttributeKeyAckError, ackErr.Error()))
	}

	ctx.EventManager().EmitEvents(sdk.Events{
		sdk.NewEvent(
			types.EventTypeRecvPacket,
			eventAttributes...,
		),
		sdk.NewEvent(
			sdk.EventTypeMessage,
			sdk.NewAttribute(sdk.AttributeKeyModule, types.ModuleName),
		),
	})
}

// EmitOnPacketCompleteEvent emits an ics999 packet event once an outbound
// packet was acknowledged or timed out.
func EmitOnPacketCompleteEvent(ctx sdk.Context, packet channeltypes.Packet, sender string, outcome types.PacketOutcome) {
	eventType := types.EventTypeAckPacket
	if outcome == types.OutcomeTimeout {
		eventType = types.EventTypeTimeoutPacket
	}

	ctx.EventManager().EmitEvents(sdk.Events{
		sdk.NewEvent(
			eventType,
			sdk.NewAttribute(types.AttributeKeySender, sender),
			sdk.NewAttribute(types.AttributeKeyPortID, packet.SourcePort),
			sdk.NewAttribute(types.AttributeKeyChannelID, packet.SourceChannel),
			sdk.NewAttribute(types.AttributeKeySequence, strconv.FormatUint(packet.Sequence, 10)),
			sdk.NewAttribute(types.AttributeKeyOutcome, string(outcome)),
		),
		sdk.NewEvent(
			sdk.EventTypeMessage,
			sdk.NewAttribute(sdk.AttributeKeyModule, types.ModuleName),
		),
	})
}

// EmitChannelOpenEvent emits an event when a channel becomes the active
// channel of its connection.
func EmitChannelOpenEvent(ctx sdk.Context, connectionID, portID, channelID string) {
	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeChannelOpen,
			sdk.NewAttribute(types.AttributeKeyConnectionID, connectionID),
			sdk.NewAttribute(types.AttributeKeyPortID, portID),
			sdk.NewAttribute(types.AttributeKeyChannelID, channelID),
		),
	)
}

// EmitAccountingEvent emits an escrow, release, mint or burn event.
func EmitAccountingEvent(ctx sdk.Context, eventType string, coin sdk.Coin, account sdk.AccAddress) {
	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			eventType,
			sdk.NewAttribute(types.AttributeKeyDenom, coin.Denom),
			sdk.NewAttribute(types.AttributeKeyAmount, coin.Amount.String()),
			sdk.NewAttribute(types.AttributeKeyAccount, account.String()),
		),
	)
}

// EmitDenomTraceEvent emits an event when a new voucher is created.
func EmitDenomTraceEvent(ctx sdk.Context, denom string, trace types.TraceItem) {
	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeDenomTrace,
			sdk.NewAttribute(types.AttributeKeyTraceHash, hex.EncodeToString(trace.Hash())),
			sdk.NewAttribute(types.AttributeKeyDenom, denom),
			sdk.NewAttribute(types.AttributeKeyBaseDenom, trace.BaseDenom),
		),
	)
}

// EmitRegisterAccountEvent emits an event when an interchain account is
// registered.
func EmitRegisterAccountEvent(ctx sdk.Context, endpoint types.Endpoint, controller string, address sdk.AccAddress) {
	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeRegisterAccount,
			sdk.NewAttribute(types.AttributeKeyPortID, endpoint.PortID),
			sdk.NewAttribute(types.AttributeKeyChannelID, endpoint.ChannelID),
			sdk.NewAttribute(types.AttributeKeyController, controller),
			sdk.NewAttribute(types.AttributeKeyAddress, address.String()),
		),
	)
}

// EmitCallbackFailedEvent emits an event when the sender callback failed.
func EmitCallbackFailedEvent(ctx sdk.Context, sender string, sequence uint64, err error) {
	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeCallbackFailed,
			sdk.NewAttribute(types.AttributeKeySender, sender),
			sdk.NewAttribute(types.AttributeKeySequence, strconv.FormatUint(sequence, 10)),
			sdk.NewAttribute(types.AttributeKeyAckError, err.Error()),
		),
	)
}

// mustMarshalJSON json marshals the given type and panics on failure.
func mustMarshalJSON(v any) string {
	bz, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}

	return string(bz)
}
