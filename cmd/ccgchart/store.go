package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hupe1980/ccgchart"
	"github.com/hupe1980/ccgchart/blobstore"
	"github.com/hupe1980/ccgchart/blobstore/minio"
	"github.com/hupe1980/ccgchart/blobstore/s3"
	"github.com/hupe1980/ccgchart/codec"
	"github.com/hupe1980/ccgchart/dict"
)

type globalFlags struct {
	store      string
	root       string
	bucket     string
	prefix     string
	endpoint   string
	region     string
	insecure   bool
	categories string
	json       bool
	verbose    bool
}

func (g *globalFlags) register(cmd *cobra.Command) {
	f := cmd.PersistentFlags()
	f.StringVar(&g.store, "store", "local", "blob store backend: local, s3 or minio")
	f.StringVar(&g.root, "root", ".", "root directory of the local store")
	f.StringVar(&g.bucket, "bucket", "", "bucket of the s3 or minio store")
	f.StringVar(&g.prefix, "prefix", "", "key prefix inside the bucket")
	f.StringVar(&g.endpoint, "endpoint", "", "custom s3 endpoint or minio host:port")
	f.StringVar(&g.region, "region", "", "s3 region")
	f.BoolVar(&g.insecure, "insecure", false, "connect to minio without TLS")
	f.StringVar(&g.categories, "categories", "", "file with one category name per line, in id order")
	f.BoolVar(&g.json, "json", false, "print JSON instead of text")
	f.BoolVarP(&g.verbose, "verbose", "v", false, "log snapshot access to stderr")
}

func (g *globalFlags) openStore(ctx context.Context) (blobstore.BlobStore, error) {
	switch g.store {
	case "local":
		return blobstore.NewLocalStore(g.root), nil
	case "s3":
		if g.bucket == "" {
			return nil, fmt.Errorf("--bucket is required for the s3 store")
		}
		opts := []s3.Option{s3.WithPrefix(g.prefix)}
		if g.region != "" {
			opts = append(opts, s3.WithRegion(g.region))
		}
		if g.endpoint != "" {
			opts = append(opts, s3.WithEndpoint(g.endpoint))
		}
		store, err := s3.New(ctx, g.bucket, opts...)
		if err != nil {
			return nil, err
		}
		return store, nil
	case "minio":
		if g.bucket == "" || g.endpoint == "" {
			return nil, fmt.Errorf("--bucket and --endpoint are required for the minio store")
		}
		store, err := minio.Dial(g.endpoint, os.Getenv("MINIO_ACCESS_KEY"), os.Getenv("MINIO_SECRET_KEY"), !g.insecure, g.bucket, g.prefix)
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown store %q", g.store)
	}
}

func (g *globalFlags) logger() *ccgchart.Logger {
	if !g.verbose {
		return ccgchart.NoopLogger()
	}
	return ccgchart.NewTextLogger(slog.LevelDebug)
}

func (g *globalFlags) syntax() (*dict.Dictionary[string], error) {
	if g.categories == "" {
		return nil, nil
	}
	f, err := os.Open(g.categories)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return readCategories(f)
}

func readCategories(r io.Reader) (*dict.Dictionary[string], error) {
	var names []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			names = append(names, line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return dict.New(names...), nil
}

func writeJSON(w io.Writer, v any) error {
	data, err := codec.Indent(codec.Default, v)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
