package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	opts := &Options{}
	root := &cobra.Command{
		Use:           "vaultctl",
		Short:         "Browse and share files on the vault ledger",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			opts.teardown()
		},
	}
	opts.AddFlags(root.PersistentFlags())

	root.AddCommand(
		newFilesCommand(opts),
		newSharedCommand(opts),
		newAccessCommand(opts),
		newUploadCommand(opts),
		newChatCommand(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
