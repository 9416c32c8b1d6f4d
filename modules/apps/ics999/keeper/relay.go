package keeper

import (
	"encoding/json"

	errorsmod "cosmossdk.io/errors"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/cosmos/ics999/modules/apps/ics999/internal/events"
	"github.com/cosmos/ics999/modules/apps/ics999/internal/telemetry"
	"github.com/cosmos/ics999/modules/apps/ics999/types"

	channeltypes "github.com/cosmos/ibc-go/v10/modules/core/04-channel/types"
	ibcerrors "github.com/cosmos/ibc-go/v10/modules/core/errors"
)

// OnRecvPacket executes the action queue of an inbound packet. The queue is
// run on a branched context, so either all of its actions take effect or
// none does. If the destination relayer fee is set, a transfer paying it to
// the relayer is appended to the queue, and the packet fails if the relayer
// address is empty.
//
// The returned results are in the order the actions were submitted. An error
// means the queue failed and nothing was written.
func (k Keeper) OnRecvPacket(ctx sdk.Context, packet channeltypes.Packet, data types.PacketData, relayer sdk.AccAddress) ([]types.ActionResult, error) {
	results, err := k.onRecvPacket(ctx, packet, data, relayer)
	telemetry.ReportOnRecvPacket(packet.DestinationPort, packet.DestinationChannel, err == nil)

	return results, err
}

func (k Keeper) onRecvPacket(ctx sdk.Context, packet channeltypes.Packet, data types.PacketData, relayer sdk.AccAddress) ([]types.ActionResult, error) {
	if !k.GetParams(ctx).ReceiveEnabled {
		return nil, types.ErrReceiveDisabled
	}

	connectionID, err := k.GetConnectionID(ctx, packet.DestinationPort, packet.DestinationChannel)
	if err != nil {
		return nil, err
	}

	if channelID, found := k.GetActiveChannelID(ctx, connectionID); !found || channelID != packet.DestinationChannel {
		return nil, errorsmod.Wrapf(types.ErrActiveChannelNotFound, "channel %s is not the active channel of connection %s", packet.DestinationChannel, connectionID)
	}

	actions := data.Actions
	if data.RelayerFee != nil && data.RelayerFee.Dest != nil {
		if relayer.Empty() {
			return nil, errorsmod.Wrap(ibcerrors.ErrInvalidAddress, "relayer address is required to pay the destination relayer fee")
		}
		actions = append(actions[:len(actions):len(actions)], types.NewTransferAction(data.RelayerFee.Dest.Denom, data.RelayerFee.Dest.Amount, relayer.String()))
	}

	src := types.NewEndpoint(packet.SourcePort, packet.SourceChannel)
	dest := types.NewEndpoint(packet.DestinationPort, packet.DestinationChannel)

	bz, err := k.dispatch(ctx, replyAlways, func(ctx sdk.Context) ([]byte, error) {
		handler, err := k.newHandler(ctx, src, dest, data.Sender, actions, data.Traces)
		if err != nil {
			return nil, err
		}

		results, err := k.executeHandler(ctx, handler)
		if err != nil {
			return nil, err
		}

		return json.Marshal(results)
	})
	if err != nil {
		k.Logger(ctx).Error("ics999 action queue failed", "port-id", packet.DestinationPort, "channel-id", packet.DestinationChannel, "sequence", packet.Sequence, "error", err.Error())
		return nil, err
	}

	var results []types.ActionResult
	if err := json.Unmarshal(bz, &results); err != nil {
		return nil, errorsmod.Wrapf(ibcerrors.ErrInvalidType, "cannot unmarshal handler results: %s", err)
	}

	return results, nil
}

// OnAcknowledgementPacket completes an outbound packet. The sender is refunded
// if the destination chain failed to execute the action queue.
func (k Keeper) OnAcknowledgementPacket(ctx sdk.Context, packet channeltypes.Packet, data types.PacketData, ack channeltypes.Acknowledgement, relayer sdk.AccAddress) error {
	outcome := types.OutcomeFailed
	var packetAck *types.PacketAck

	switch resp := ack.Response.(type) {
	case *channeltypes.Acknowledgement_Result:
		var pa types.PacketAck
		if err := json.Unmarshal(resp.Result, &pa); err != nil {
			return errorsmod.Wrapf(types.ErrInvalidAcknowledgement, "cannot unmarshal ICS-999 packet acknowledgement: %s", err)
		}
		if err := pa.ValidateBasic(); err != nil {
			return err
		}
		if pa.Success() {
			outcome = types.OutcomeSuccess
		}
		packetAck = &pa
	case *channeltypes.Acknowledgement_Error:
		k.Logger(ctx).Info("ics999 packet failed on counterparty", "sequence", packet.Sequence, "error", resp.Error)
	default:
		return errorsmod.Wrapf(ibcerrors.ErrInvalidType, "expected one of [%T, %T], got %T", channeltypes.Acknowledgement_Result{}, channeltypes.Acknowledgement_Error{}, ack.Response)
	}

	return k.onPacketComplete(ctx, packet, data, outcome, packetAck, relayer)
}

// OnTimeoutPacket refunds the sender of a packet that timed out.
func (k Keeper) OnTimeoutPacket(ctx sdk.Context, packet channeltypes.Packet, data types.PacketData, relayer sdk.AccAddress) error {
	return k.onPacketComplete(ctx, packet, data, types.OutcomeTimeout, nil, relayer)
}

func (k Keeper) onPacketComplete(ctx sdk.Context, packet channeltypes.Packet, data types.PacketData, outcome types.PacketOutcome, ack *types.PacketAck, relayer sdk.AccAddress) error {
	sender, err := sdk.AccAddressFromBech32(data.Sender)
	if err != nil {
		return errorsmod.Wrapf(ibcerrors.ErrInvalidAddress, "failed to decode sender address %s: %s", data.Sender, err)
	}

	if outcome != types.OutcomeSuccess {
		if err := k.refundPacket(ctx, packet, data, sender, outcome); err != nil {
			// refunds cannot fail if the escrow and trace bookkeeping is consistent
			k.Logger(ctx).Error("ics999 refund failed", "sequence", packet.Sequence, "sender", data.Sender, "error", err.Error())
			return err
		}
	}

	if data.RelayerFee != nil && data.RelayerFee.Src != nil && !relayer.Empty() {
		if err := k.sendFromModule(ctx, *data.RelayerFee.Src, relayer); err != nil {
			return errorsmod.Wrap(err, "failed to pay source relayer fee")
		}
	}

	events.EmitOnPacketCompleteEvent(ctx, packet, data.Sender, outcome)

	k.invokeCallback(ctx, sender, types.CallbackMsg{
		Endpoint: types.NewEndpoint(packet.SourcePort, packet.SourceChannel),
		Sequence: packet.Sequence,
		Outcome:  outcome,
		Ack:      ack,
	})

	return nil
}

// refundPacket reverts the effect of Act for every coin that left the chain
// with the packet: escrowed coins are released and burned vouchers are
// minted back.
func (k Keeper) refundPacket(ctx sdk.Context, packet channeltypes.Packet, data types.PacketData, sender sdk.AccAddress, outcome types.PacketOutcome) error {
	src := types.NewEndpoint(packet.SourcePort, packet.SourceChannel)

	var coins []sdk.Coin
	for _, action := range data.Actions {
		if action.Transfer != nil {
			coins = append(coins, action.Transfer.Coin())
		}
	}
	if data.RelayerFee != nil && data.RelayerFee.Dest != nil {
		coins = append(coins, *data.RelayerFee.Dest)
	}

	for _, coin := range coins {
		trace, found := types.FindTrace(data.Traces, coin.Denom)
		if !found {
			return errorsmod.Wrapf(types.ErrTraceNotFound, "denom %s", coin.Denom)
		}

		var err error
		if trace.SenderIsSource(src) {
			err = k.release(ctx, coin, sender)
		} else {
			err = k.mint(ctx, coin, sender)
		}
		if err != nil {
			return errorsmod.Wrapf(err, "unable to refund %s", coin)
		}

		telemetry.ReportRefund(src.PortID, src.ChannelID, coin, outcome)
	}

	return nil
}

// invokeCallback notifies the callback handler, if any, of the packet outcome.
// The callback runs on a branched context and its failure is only logged.
func (k Keeper) invokeCallback(ctx sdk.Context, sender sdk.AccAddress, msg types.CallbackMsg) {
	if k.callbackHandler == nil {
		return
	}

	if _, err := k.dispatch(ctx, replyAlways, func(ctx sdk.Context) ([]byte, error) {
		return nil, k.callbackHandler.OnPacketLifecycleComplete(ctx, sender, msg)
	}); err != nil {
		k.Logger(ctx).Error("ics999 packet callback failed", "sender", sender.String(), "sequence", msg.Sequence, "outcome", string(msg.Outcome), "error", err.Error())
		events.EmitCallbackFailedEvent(ctx, sender.String(), msg.Sequence, err)
	}
}
