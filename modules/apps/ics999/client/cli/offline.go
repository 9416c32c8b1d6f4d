package cli

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cosmos/cosmos-sdk/client"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"
	"github.com/cosmos/cosmos-sdk/version"

	"github.com/cosmos/ics999/modules/apps/ics999/types"
)

const flagSalt = "salt"

// GetCmdDenomHash defines the command to compute the voucher denom of a trace.
func GetCmdDenomHash() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "denom-hash [base-denom] [port-id/channel-id]...",
		Short: "Compute the voucher denom of a trace",
		Long: `Compute the voucher denom of a trace without querying the chain.
The endpoints are given oldest first, each as port-id/channel-id.`,
		Example: fmt.Sprintf("%s query ics999 denom-hash ujuno ics999/channel-0", version.AppName),
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			trace, err := parseTrace(args[0], args[1:])
			if err != nil {
				return err
			}

			return printJSON(client.GetClientContextFromCmd(cmd), types.DenomHashResponse{
				Hash:  hex.EncodeToString(trace.Hash()),
				Denom: trace.IBCDenom(),
			})
		},
	}

	return cmd
}

// GetCmdDeriveAddress defines the command to compute the address of an
// interchain account created by the default registration flow.
func GetCmdDeriveAddress() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "derive-address [port-id] [channel-id] [controller]",
		Short: "Compute the address of an interchain account",
		Long: `Compute the address an interchain account gets on this chain when the
controller registers it through the given local endpoint. The salt is
hex encoded and defaults to the salt derived from the endpoint and controller.`,
		Example: fmt.Sprintf("%s query ics999 derive-address ics999 channel-0 cosmos1... --salt 0a0b", version.AppName),
		Args:    cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			endpoint := types.NewEndpoint(args[0], args[1])
			if err := endpoint.Validate(); err != nil {
				return err
			}

			saltHex, err := cmd.Flags().GetString(flagSalt)
			if err != nil {
				return err
			}

			salt := types.DefaultSalt(endpoint, args[2])
			if saltHex != "" {
				if salt, err = hex.DecodeString(saltHex); err != nil {
					return fmt.Errorf("invalid salt: %w", err)
				}
				if len(salt) > types.MaxSaltSize {
					return fmt.Errorf("salt is longer than %d bytes", types.MaxSaltSize)
				}
			}

			deployer := authtypes.NewModuleAddress(types.ModuleName)
			addr := types.DeriveAccountAddress(deployer, types.AccountTemplateChecksum, salt)

			return printJSON(client.GetClientContextFromCmd(cmd), types.RegisteredAccount{
				Endpoint:   endpoint,
				Controller: args[2],
				Address:    addr.String(),
			})
		},
	}

	cmd.Flags().String(flagSalt, "", "hex encoded registration salt")
	return cmd
}

// parseTrace builds a trace from a base denom and a list of port/channel hops.
func parseTrace(baseDenom string, hops []string) (types.TraceItem, error) {
	trace := types.NewTraceItem(baseDenom)
	for _, hop := range hops {
		portID, channelID, found := strings.Cut(hop, "/")
		if !found {
			return types.TraceItem{}, fmt.Errorf("invalid endpoint %s, expected port-id/channel-id", hop)
		}

		trace = trace.AddHop(types.NewEndpoint(portID, channelID))
	}

	if err := trace.Validate(); err != nil {
		return types.TraceItem{}, err
	}

	return trace, nil
}

func printJSON(clientCtx client.Context, v any) error {
	bz, err := json.Marshal(v)
	if err != nil {
		return err
	}

	return clientCtx.PrintRaw(bz)
}
