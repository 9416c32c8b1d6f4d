package cli

import (
	"github.com/spf13/cobra"
)

// GetQueryCmd returns the query commands for ics999
func GetQueryCmd() *cobra.Command {
	queryCmd := &cobra.Command{
		Use:                        "ics999",
		Short:                      "ICS-999 query subcommands",
		DisableFlagParsing:         true,
		SuggestionsMinimumDistance: 2,
	}

	queryCmd.AddCommand(
		GetCmdDenomTrace(),
		GetCmdAccount(),
		GetCmdActiveChannel(),
		GetCmdTotalEscrow(),
		GetCmdDenomHash(),
		GetCmdDeriveAddress(),
	)

	return queryCmd
}
