package main

import (
	"encoding/hex"

	"github.com/spf13/cobra"

	"github.com/cosmos/ics999/modules/apps/ics999/types"
)

func newVoucherCmd(cfg *Config) *cobra.Command {
	return &cobra.Command{
		Use:   "voucher [base-denom] [channel-id]...",
		Short: "Compute a voucher denom from channel ids on the configured port",
		Long: `Compute the voucher denom of a base denom sent through the given channels,
oldest first. Every hop uses the configured port.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			trace := types.NewTraceItem(args[0])
			for _, channelID := range args[1:] {
				trace = trace.AddHop(types.NewEndpoint(cfg.PortID, channelID))
			}

			if err := trace.Validate(); err != nil {
				return err
			}

			return writeOutput(cmd.OutOrStdout(), cfg, types.DenomHashResponse{
				Hash:  hex.EncodeToString(trace.Hash()),
				Denom: trace.IBCDenom(),
			})
		},
	}
}
