package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"cosmossdk.io/collections"
	collcodec "cosmossdk.io/collections/codec"
	sdkmath "cosmossdk.io/math"

	"github.com/cosmos/cosmos-sdk/client"
	"github.com/cosmos/cosmos-sdk/client/flags"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/version"

	internalcollections "github.com/cosmos/ics999/internal/collections"
	"github.com/cosmos/ics999/modules/apps/ics999/types"

	host "github.com/cosmos/ibc-go/v10/modules/core/24-host"
)

// queryStoreValue reads a single collections entry from the ics999 store.
func queryStoreValue[K, V any](clientCtx client.Context, prefix collections.Prefix, kc collcodec.KeyCodec[K], vc collcodec.ValueCodec[V], key K) (V, error) {
	var value V

	bz, err := collections.EncodeKeyWithPrefix(prefix, kc, key)
	if err != nil {
		return value, err
	}

	res, _, err := clientCtx.QueryStore(bz, types.StoreKey)
	if err != nil {
		return value, err
	}
	if len(res) == 0 {
		return value, collections.ErrNotFound
	}

	return vc.Decode(res)
}

// GetCmdDenomTrace defines the command to query the trace of a voucher denom.
func GetCmdDenomTrace() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "denom-trace [denom]",
		Short:   "Query the trace of an ICS-999 voucher",
		Long:    "Query the base denom and the path of endpoints an ICS-999 voucher was received through",
		Example: fmt.Sprintf("%s query ics999 denom-trace ics999/a0f5f8c2e4bb0e7b1b5a5f9f0d4bf5c1e8a3b7d2", version.AppName),
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientQueryContext(cmd)
			if err != nil {
				return err
			}

			trace, err := queryStoreValue(clientCtx, types.DenomTracesKey, collections.StringKey, internalcollections.JSONValue[types.TraceItem](), args[0])
			if err != nil {
				if errors.Is(err, collections.ErrNotFound) {
					return fmt.Errorf("%w: %s", types.ErrTraceNotFound, args[0])
				}
				return err
			}

			return printJSON(clientCtx, types.NewTrace(args[0], trace))
		},
	}

	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}

// GetCmdAccount defines the command to query the interchain account of a controller.
func GetCmdAccount() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "account [port-id] [channel-id] [controller]",
		Short:   "Query the interchain account registered for a controller",
		Long:    "Query the interchain account registered for a controller on the given local endpoint",
		Example: fmt.Sprintf("%s query ics999 account ics999 channel-0 cosmos1...", version.AppName),
		Args:    cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientQueryContext(cmd)
			if err != nil {
				return err
			}

			endpoint := types.NewEndpoint(args[0], args[1])
			if err := endpoint.Validate(); err != nil {
				return err
			}

			kc := collections.TripleKeyCodec(collections.StringKey, collections.StringKey, collections.StringKey)
			address, err := queryStoreValue(clientCtx, types.AccountsKey, kc, collections.StringValue, collections.Join3(args[0], args[1], args[2]))
			if err != nil {
				if errors.Is(err, collections.ErrNotFound) {
					return fmt.Errorf("%w: endpoint %s, controller %s", types.ErrAccountNotFound, endpoint, args[2])
				}
				return err
			}

			return printJSON(clientCtx, types.RegisteredAccount{
				Endpoint:   endpoint,
				Controller: args[2],
				Address:    address,
			})
		},
	}

	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}

// GetCmdActiveChannel defines the command to query the ics999 channel of a connection.
func GetCmdActiveChannel() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "active-channel [connection-id]",
		Short:   "Query the ICS-999 channel opened on a connection",
		Example: fmt.Sprintf("%s query ics999 active-channel connection-0", version.AppName),
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientQueryContext(cmd)
			if err != nil {
				return err
			}

			if err := host.ConnectionIdentifierValidator(args[0]); err != nil {
				return err
			}

			channelID, err := queryStoreValue(clientCtx, types.ActiveChannelsKey, collections.StringKey, collections.StringValue, args[0])
			if err != nil {
				if errors.Is(err, collections.ErrNotFound) {
					return fmt.Errorf("%w: %s", types.ErrActiveChannelNotFound, args[0])
				}
				return err
			}

			return printJSON(clientCtx, types.ActiveChannel{
				ConnectionID: args[0],
				ChannelID:    channelID,
			})
		},
	}

	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}

// GetCmdTotalEscrow defines the command to query the escrowed amount of a native denom.
func GetCmdTotalEscrow() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "total-escrow [denom]",
		Short:   "Query the total amount of a native token escrowed by ICS-999",
		Example: fmt.Sprintf("%s query ics999 total-escrow uatom", version.AppName),
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientQueryContext(cmd)
			if err != nil {
				return err
			}

			if err := sdk.ValidateDenom(args[0]); err != nil {
				return err
			}

			amount, err := queryStoreValue(clientCtx, types.TotalEscrowKey, collections.StringKey, sdk.IntValue, args[0])
			if err != nil && !errors.Is(err, collections.ErrNotFound) {
				return err
			}
			if amount.IsNil() {
				amount = sdkmath.ZeroInt()
			}

			return printJSON(clientCtx, sdk.NewCoin(args[0], amount))
		},
	}

	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}
