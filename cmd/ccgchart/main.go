// Command ccgchart inspects chart snapshots held in a blob store.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	var g globalFlags

	rootCmd := &cobra.Command{
		Use:          "ccgchart",
		Short:        "Inspect and decode CCG chart snapshots",
		SilenceUsage: true,
	}
	g.register(rootCmd)

	rootCmd.AddCommand(newListCmd(&g))
	rootCmd.AddCommand(newInspectCmd(&g))
	rootCmd.AddCommand(newKBestCmd(&g))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
