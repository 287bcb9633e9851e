package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hupe1980/ccgchart"
	"github.com/hupe1980/ccgchart/blobstore"
	"github.com/hupe1980/ccgchart/dict"
	"github.com/hupe1980/ccgchart/grammar"
	"github.com/hupe1980/ccgchart/snapshot"
)

func newKBestCmd(g *globalFlags) *cobra.Command {
	var (
		spanFlag string
		k        int
		subspans bool
	)

	cmd := &cobra.Command{
		Use:   "kbest <name>",
		Short: "Decode the best parses of a span",
		Long: `Decode up to k parses of a span, best first.

The span defaults to the whole sentence. With --subspans, the parses of
every span inside it are merged into one list.

Examples:
  ccgchart kbest wsj-0001.ccgc -k 5
  ccgchart kbest wsj-0001.ccgc --span 2,6 --subspans --categories cats.txt`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := g.openStore(ctx)
			if err != nil {
				return err
			}
			syntax, err := g.syntax()
			if err != nil {
				return err
			}
			return runKBest(ctx, store, args[0], kbestOptions{
				span:     spanFlag,
				k:        k,
				subspans: subspans,
				syntax:   syntax,
				json:     g.json,
				logger:   g.logger(),
			}, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&spanFlag, "span", "", "span as start,end (inclusive); default the whole sentence")
	cmd.Flags().IntVarP(&k, "count", "k", 1, "number of parses")
	cmd.Flags().BoolVar(&subspans, "subspans", false, "include parses of every sub-span")

	return cmd
}

type kbestOptions struct {
	span     string
	k        int
	subspans bool
	syntax   *dict.Dictionary[string]
	json     bool
	logger   *ccgchart.Logger
}

type parseResult struct {
	Start       int      `json:"start"`
	End         int      `json:"end"`
	Probability float64  `json:"probability"`
	Tree        string   `json:"tree"`
	Yield       []string `json:"yield"`
}

func parseSpan(s string, n int) (start, end int, err error) {
	if s == "" {
		return 0, n - 1, nil
	}
	a, b, ok := strings.Cut(s, ",")
	if !ok {
		return 0, 0, fmt.Errorf("invalid span %q: want start,end", s)
	}
	if start, err = strconv.Atoi(strings.TrimSpace(a)); err != nil {
		return 0, 0, fmt.Errorf("invalid span %q: %w", s, err)
	}
	if end, err = strconv.Atoi(strings.TrimSpace(b)); err != nil {
		return 0, 0, fmt.Errorf("invalid span %q: %w", s, err)
	}
	return start, end, nil
}

func runKBest(ctx context.Context, store blobstore.BlobStore, name string, opts kbestOptions, w io.Writer) error {
	var loadOpts []snapshot.Option
	if opts.logger != nil {
		loadOpts = append(loadOpts, snapshot.WithLogger(opts.logger))
	}
	c, err := snapshot.Load(ctx, store, name, grammar.Placeholder{}, loadOpts...)
	if err != nil {
		return err
	}

	start, end, err := parseSpan(opts.span, c.Size())
	if err != nil {
		return err
	}

	var parses []*ccgchart.Parse
	if opts.subspans {
		parses, err = c.DecodeKBestSubspans(start, end, opts.k)
	} else {
		parses, err = c.DecodeKBest(start, end, opts.k)
	}
	if err != nil {
		return err
	}

	results := make([]parseResult, len(parses))
	for i, p := range parses {
		results[i] = parseResult{
			Start:       p.Span.Start,
			End:         p.Span.End,
			Probability: p.SubtreeProbability(),
			Tree:        p.Format(opts.syntax),
			Yield:       p.Yield(),
		}
	}

	if opts.json {
		return writeJSON(w, results)
	}
	if len(results) == 0 {
		fmt.Fprintf(w, "no parses for span (%d,%d)\n", start, end)
		return nil
	}
	for i, r := range results {
		fmt.Fprintf(w, "%d\t(%d,%d)\t%.6g\t%s\n", i+1, r.Start, r.End, r.Probability, r.Tree)
	}
	return nil
}
