package telemetry

import (
	"strconv"

	"github.com/hashicorp/go-metrics"

	"github.com/cosmos/cosmos-sdk/telemetry"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/cosmos/ics999/modules/apps/ics999/types"

	coremetrics "github.com/cosmos/ibc-go/v10/modules/core/metrics"
)

// ReportSendPacket records an outbound packet and every coin leaving the
// chain with it.
func ReportSendPacket(sourcePort, sourceChannel string, actions int, coins []sdk.Coin, senderIsSource []bool) {
	labels := []metrics.Label{
		telemetry.NewLabel(coremetrics.LabelSourcePort, sourcePort),
		telemetry.NewLabel(coremetrics.LabelSourceChannel, sourceChannel),
	}

	for i, coin := range coins {
		if coin.Amount.IsInt64() {
			telemetry.SetGaugeWithLabels(
				[]string{"tx", "msg", "ibc", types.ModuleName},
				float32(coin.Amount.Int64()),
				[]metrics.Label{
					telemetry.NewLabel(coremetrics.LabelDenom, coin.Denom),
					telemetry.NewLabel(coremetrics.LabelSource, strconv.FormatBool(senderIsSource[i])),
				},
			)
		}
	}

	telemetry.IncrCounterWithLabels(
		[]string{"ibc", types.ModuleName, "send"},
		1,
		labels,
	)
	telemetry.IncrCounterWithLabels(
		[]string{"ibc", types.ModuleName, "send", "actions"},
		float32(actions),
		labels,
	)
}

// ReportOnRecvPacket records an inbound packet and whether its action queue
// succeeded.
func ReportOnRecvPacket(destinationPort, destinationChannel string, success bool) {
	telemetry.IncrCounterWithLabels(
		[]string{"ibc", types.ModuleName, "receive"},
		1,
		[]metrics.Label{
			telemetry.NewLabel(coremetrics.LabelDestinationPort, destinationPort),
			telemetry.NewLabel(coremetrics.LabelDestinationChannel, destinationChannel),
			telemetry.NewLabel("success", strconv.FormatBool(success)),
		},
	)
}

// ReportRefund records a coin returned to the sender of a failed packet.
func ReportRefund(sourcePort, sourceChannel string, coin sdk.Coin, outcome types.PacketOutcome) {
	if coin.Amount.IsInt64() {
		telemetry.SetGaugeWithLabels(
			[]string{"ibc", types.ModuleName, "refund"},
			float32(coin.Amount.Int64()),
			[]metrics.Label{telemetry.NewLabel(coremetrics.LabelDenom, coin.Denom)},
		)
	}

	telemetry.IncrCounterWithLabels(
		[]string{"ibc", types.ModuleName, "refund"},
		1,
		[]metrics.Label{
			telemetry.NewLabel(coremetrics.LabelSourcePort, sourcePort),
			telemetry.NewLabel(coremetrics.LabelSourceChannel, sourceChannel),
			telemetry.NewLabel("outcome", string(outcome)),
		},
	)
}
