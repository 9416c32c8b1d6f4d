package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"cosmossdk.io/log"

	"github.com/cosmos/cosmos-sdk/client"
	"github.com/cosmos/cosmos-sdk/client/flags"

	"github.com/cosmos/ics999/modules/apps/ics999/client/cli"
)

const (
	flagConfig = "config"
	flagOutput = "output"
)

// NewRootCmd returns the root command of the offline ics999 tools. The
// commands never talk to a node: they decode wire data and compute the
// denoms and addresses the module derives on chain.
func NewRootCmd() *cobra.Command {
	var (
		configPath string
		cfg        = &Config{}
	)

	rootCmd := &cobra.Command{
		Use:          "ics999-tools",
		Short:        "Offline helpers for ICS-999 packets, denoms and accounts",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			v := viper.New()
			if err := v.BindPFlag("output", cmd.Flags().Lookup(flagOutput)); err != nil {
				return err
			}

			loaded, err := LoadConfig(v, configPath)
			if err != nil {
				return err
			}
			*cfg = *loaded

			var opts []log.Option
			if cfg.LogJSON {
				opts = append(opts, log.OutputJSONOption())
			}
			logger := log.NewLogger(cmd.ErrOrStderr(), opts...).With("module", "ics999-tools")
			logger.Debug("loaded config", "port_id", cfg.PortID, "file", configPath)

			// the client context prints yaml for the text output format
			outputFormat := flags.OutputFormatJSON
			if cfg.Output == outputYAML {
				outputFormat = flags.OutputFormatText
			}
			clientCtx := client.Context{}.WithOutput(cmd.OutOrStdout()).WithOutputFormat(outputFormat)
			return client.SetCmdClientContext(cmd, clientCtx)
		},
	}

	rootCmd.PersistentFlags().StringVar(&configPath, flagConfig, "", "path to the configuration file")
	rootCmd.PersistentFlags().String(flagOutput, outputJSON, "output format (json|yaml)")

	rootCmd.AddCommand(
		cli.GetCmdDenomHash(),
		cli.GetCmdDeriveAddress(),
		newVoucherCmd(cfg),
		newDecodePacketCmd(cfg),
		newDecodeAckCmd(cfg),
		newTimeoutCmd(cfg),
	)

	return rootCmd
}
