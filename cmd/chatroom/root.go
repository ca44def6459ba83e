package main

import "github.com/spf13/cobra"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "chatroom",
		Short:         "Multi-room text chat over TCP and WebSocket",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.AddCommand(newServeCmd(), newRelayCmd())
	return root
}
