package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/hupe1980/ccgchart"
	"github.com/hupe1980/ccgchart/blobstore"
	"github.com/hupe1980/ccgchart/grammar"
	"github.com/hupe1980/ccgchart/snapshot"
)

func newInspectCmd(g *globalFlags) *cobra.Command {
	var headerOnly bool

	cmd := &cobra.Command{
		Use:   "inspect <name>",
		Short: "Summarize a chart snapshot",
		Long: `Print the sentence, policy and per-span entry counts of a snapshot.

Examples:
  ccgchart inspect wsj-0001.ccgc
  ccgchart inspect --header --json wsj-0001.ccgc
  ccgchart --store s3 --bucket charts inspect dev/wsj-0001.ccgc`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := g.openStore(ctx)
			if err != nil {
				return err
			}
			return runInspect(ctx, store, args[0], inspectOptions{
				headerOnly: headerOnly,
				json:       g.json,
				logger:     g.logger(),
			}, cmd.OutOrStdout())
		},
	}

	cmd.Flags().BoolVar(&headerOnly, "header", false, "only read the snapshot header")

	return cmd
}

type inspectOptions struct {
	headerOnly bool
	json       bool
	logger     *ccgchart.Logger
}

type spanSummary struct {
	Start   int     `json:"start"`
	End     int     `json:"end"`
	Entries int     `json:"entries"`
	Best    float64 `json:"best"`
}

type inspectReport struct {
	Header *snapshot.Header `json:"header"`
	Spans  []spanSummary    `json:"spans,omitempty"`
}

func runInspect(ctx context.Context, store blobstore.BlobStore, name string, opts inspectOptions, w io.Writer) error {
	hdr, err := snapshot.LoadHeader(ctx, store, name)
	if err != nil {
		return err
	}
	report := inspectReport{Header: hdr}

	if !opts.headerOnly {
		var loadOpts []snapshot.Option
		if opts.logger != nil {
			loadOpts = append(loadOpts, snapshot.WithLogger(opts.logger))
		}
		c, err := snapshot.Load(ctx, store, name, grammar.Placeholder{}, loadOpts...)
		if err != nil {
			return err
		}
		if report.Spans, err = summarize(c); err != nil {
			return err
		}
	}

	if opts.json {
		return writeJSON(w, report)
	}

	fmt.Fprintf(w, "sentence: %s\n", strings.Join(hdr.Words, " "))
	fmt.Fprintf(w, "policy:   %s\n", hdr.Policy)
	fmt.Fprintf(w, "spans:    %d\n", hdr.Spans)
	fmt.Fprintf(w, "entries:  %d\n", hdr.Entries)
	if len(report.Spans) == 0 {
		return nil
	}

	fmt.Fprintln(w)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "START\tEND\tENTRIES\tBEST")
	for _, s := range report.Spans {
		fmt.Fprintf(tw, "%d\t%d\t%d\t%.6g\n", s.Start, s.End, s.Entries, s.Best)
	}
	return tw.Flush()
}

// summarize lists the populated spans of c, shortest first.
func summarize(c *ccgchart.Chart) ([]spanSummary, error) {
	var out []spanSummary
	n := c.Size()
	for length := 1; length <= n; length++ {
		for start := 0; start+length <= n; start++ {
			end := start + length - 1
			probs, err := c.Probabilities(start, end)
			if err != nil {
				return nil, err
			}
			if len(probs) == 0 {
				continue
			}
			s := spanSummary{Start: start, End: end, Entries: len(probs)}
			for _, p := range probs {
				s.Best = max(s.Best, p)
			}
			out = append(out, s)
		}
	}
	return out, nil
}
