package main

import (
	"os"

	"cosmossdk.io/log"
)

func main() {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		log.NewLogger(rootCmd.ErrOrStderr()).Error("failure when running ics999-tools", "err", err)
		os.Exit(1)
	}
}
