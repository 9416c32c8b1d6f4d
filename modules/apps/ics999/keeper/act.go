package keeper

import (
	"time"

	errorsmod "cosmossdk.io/errors"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/cosmos/ics999/modules/apps/ics999/internal/events"
	"github.com/cosmos/ics999/modules/apps/ics999/internal/telemetry"
	"github.com/cosmos/ics999/modules/apps/ics999/types"

	clienttypes "github.com/cosmos/ibc-go/v10/modules/core/02-client/types"
	ibcerrors "github.com/cosmos/ibc-go/v10/modules/core/errors"
)

// Act sends a queue of actions to be executed atomically by the ics999
// module on the other end of the connection. The funds attached by the
// sender must exactly match the amounts of all transfer actions plus the
// relayer fees. Transferred coins are escrowed if this chain is a source for
// them and burned otherwise. A nil timeout uses the default relative timeout
// from the module parameters, otherwise it is an absolute unix timestamp in
// seconds.
//
// Act returns the sequence number of the sent packet.
func (k Keeper) Act(
	ctx sdk.Context,
	sender sdk.AccAddress,
	connectionID string,
	actions []types.Action,
	funds sdk.Coins,
	timeout *uint64,
	relayerFee *types.RelayerFee,
) (uint64, error) {
	params := k.GetParams(ctx)
	if !params.SendEnabled {
		return 0, types.ErrSendDisabled
	}

	if len(actions) == 0 {
		return 0, types.ErrEmptyActionQueue
	}

	for i, action := range actions {
		if err := action.ValidateBasic(); err != nil {
			return 0, errorsmod.Wrapf(err, "action %d", i)
		}
	}

	if relayerFee != nil {
		if err := relayerFee.Validate(); err != nil {
			return 0, err
		}
	}

	if err := funds.Validate(); err != nil {
		return 0, errorsmod.Wrap(ibcerrors.ErrInvalidCoins, err.Error())
	}

	channelID, found := k.GetActiveChannelID(ctx, connectionID)
	if !found {
		return 0, errorsmod.Wrapf(types.ErrActiveChannelNotFound, "connection %s", connectionID)
	}

	timeoutTimestamp, err := k.timeoutTimestamp(ctx, params, timeout)
	if err != nil {
		return 0, err
	}

	// coins leaving the chain with the packet
	outgoing := make([]sdk.Coin, 0, len(actions)+1)
	for _, action := range actions {
		if action.Transfer != nil {
			outgoing = append(outgoing, action.Transfer.Coin())
		}
	}
	if relayerFee != nil && relayerFee.Dest != nil {
		outgoing = append(outgoing, *relayerFee.Dest)
	}

	expected := types.NewCoins()
	for _, coin := range outgoing {
		if err := expected.Add(coin); err != nil {
			return 0, err
		}
	}
	if relayerFee != nil && relayerFee.Src != nil {
		if err := expected.Add(*relayerFee.Src); err != nil {
			return 0, err
		}
	}

	actual, err := types.CoinsFromSDK(funds)
	if err != nil {
		return 0, err
	}

	if !actual.Equal(expected) {
		return 0, errorsmod.Wrapf(types.ErrFundsMismatch, "actual: %s, expected: %s", actual, expected)
	}

	if !funds.IsZero() {
		if err := k.bankKeeper.SendCoinsFromAccountToModule(ctx, sender, types.ModuleName, funds); err != nil {
			return 0, err
		}
	}

	local := types.NewEndpoint(types.PortID, channelID)

	traces := make([]types.Trace, 0, len(outgoing))
	seen := make(map[string]bool)
	senderIsSource := make([]bool, 0, len(outgoing))
	for _, coin := range outgoing {
		trace, err := k.traceOf(ctx, coin.Denom)
		if err != nil {
			return 0, err
		}

		isSource := trace.SenderIsSource(local)
		if isSource {
			err = k.escrow(ctx, coin)
		} else {
			err = k.burn(ctx, coin)
		}
		if err != nil {
			return 0, err
		}
		senderIsSource = append(senderIsSource, isSource)

		if !seen[coin.Denom] {
			seen[coin.Denom] = true
			traces = append(traces, types.NewTrace(coin.Denom, trace))
		}
	}

	packetData := types.NewPacketData(sender.String(), actions, traces, relayerFee)

	sequence, err := k.ics4Wrapper.SendPacket(ctx, types.PortID, channelID, clienttypes.ZeroHeight(), timeoutTimestamp, packetData.GetBytes())
	if err != nil {
		return 0, err
	}

	events.EmitSendPacketEvent(ctx, packetData, connectionID, channelID, sequence)

	defer func() {
		telemetry.ReportSendPacket(types.PortID, channelID, len(actions), outgoing, senderIsSource)
	}()

	k.Logger(ctx).Debug("ics999 packet sent", "sender", sender.String(), "connection-id", connectionID, "channel-id", channelID, "sequence", sequence, "actions", len(actions))

	return sequence, nil
}

// timeoutTimestamp converts the requested timeout into the absolute packet
// timeout in nanoseconds.
func (Keeper) timeoutTimestamp(ctx sdk.Context, params types.Params, timeout *uint64) (uint64, error) {
	now := ctx.BlockTime()

	if timeout == nil {
		if params.DefaultTimeoutSecs > types.MaxTimeoutSecs-uint64(now.Unix()) {
			return 0, errorsmod.Wrapf(types.ErrInvalidTimeout, "default timeout of %d seconds overflows the packet timeout", params.DefaultTimeoutSecs)
		}
		return uint64(now.Add(time.Duration(params.DefaultTimeoutSecs) * time.Second).UnixNano()), nil
	}

	if *timeout > types.MaxTimeoutSecs {
		return 0, errorsmod.Wrapf(types.ErrInvalidTimeout, "timeout %d exceeds the maximum of %d seconds", *timeout, types.MaxTimeoutSecs)
	}

	deadline := time.Unix(int64(*timeout), 0)
	if !deadline.After(now) {
		return 0, errorsmod.Wrapf(types.ErrInvalidTimeout, "timeout %s is not after the current block time %s", deadline.UTC(), now.UTC())
	}

	return uint64(deadline.UnixNano()), nil
}
