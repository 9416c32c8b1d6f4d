package main

import (
	"fmt"
	"time"

	"github.com/spf13/cast"
	"github.com/spf13/cobra"

	"github.com/cosmos/ics999/modules/apps/ics999/types"
)

const flagFrom = "from"

// timeoutResponse holds an absolute packet timeout in both units used by
// ics999: seconds for Act and nanoseconds on the packet.
type timeoutResponse struct {
	TimeoutSecs      uint64 `json:"timeout_secs"`
	TimeoutTimestamp uint64 `json:"timeout_timestamp"`
}

func newTimeoutCmd(cfg *Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "timeout [relative-seconds]",
		Short: "Compute an absolute packet timeout",
		Long: `Compute the absolute timeout, in unix seconds, to pass when sending a packet
that should time out after the given number of seconds. Without an argument
the configured default timeout is used.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			relative := cfg.DefaultTimeoutSecs
			if len(args) == 1 {
				var err error
				if relative, err = cast.ToUint64E(args[0]); err != nil {
					return fmt.Errorf("invalid relative timeout: %w", err)
				}
			}

			from, err := cmd.Flags().GetString(flagFrom)
			if err != nil {
				return err
			}

			now := uint64(time.Now().Unix())
			if from != "" {
				if now, err = cast.ToUint64E(from); err != nil {
					return fmt.Errorf("invalid start time: %w", err)
				}
			}

			res, err := absoluteTimeout(now, relative)
			if err != nil {
				return err
			}

			return writeOutput(cmd.OutOrStdout(), cfg, res)
		},
	}

	cmd.Flags().String(flagFrom, "", "unix time in seconds to count from, defaults to now")
	return cmd
}

func absoluteTimeout(now, relative uint64) (timeoutResponse, error) {
	if relative == 0 {
		return timeoutResponse{}, fmt.Errorf("%w: relative timeout must be positive", types.ErrInvalidTimeout)
	}
	if now > types.MaxTimeoutSecs || relative > types.MaxTimeoutSecs-now {
		return timeoutResponse{}, fmt.Errorf("%w: timeout exceeds the maximum of %d seconds", types.ErrInvalidTimeout, types.MaxTimeoutSecs)
	}

	deadline := now + relative
	return timeoutResponse{
		TimeoutSecs:      deadline,
		TimeoutTimestamp: deadline * uint64(time.Second),
	}, nil
}
