package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/hupe1980/ccgchart/blobstore"
)

func newListCmd(g *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list [prefix]",
		Short: "List snapshots in the store",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := g.openStore(ctx)
			if err != nil {
				return err
			}
			var prefix string
			if len(args) == 1 {
				prefix = args[0]
			}
			return runList(ctx, store, prefix, cmd.OutOrStdout(), g.json)
		},
	}
	return cmd
}

func runList(ctx context.Context, store blobstore.BlobStore, prefix string, w io.Writer, asJSON bool) error {
	names, err := store.List(ctx, prefix)
	if err != nil {
		return err
	}
	if asJSON {
		if names == nil {
			names = []string{}
		}
		return writeJSON(w, names)
	}
	for _, name := range names {
		fmt.Fprintln(w, name)
	}
	return nil
}
