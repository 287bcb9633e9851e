package snapshot

import (
	"context"

	"github.com/hupe1980/ccgchart"
	"github.com/hupe1980/ccgchart/blobstore"
	"github.com/hupe1980/ccgchart/grammar"
)

// Save writes c to store under name.
func Save(ctx context.Context, store blobstore.BlobStore, name string, c *ccgchart.Chart, optFns ...Option) (err error) {
	opts := defaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}
	defer func() { opts.logger.LogSnapshot(ctx, name, c.TotalEntryCount(), err) }()

	data, err := Marshal(c, optFns...)
	if err != nil {
		return err
	}
	return store.Put(ctx, name, data)
}

// Load reads the chart stored under name.
func Load(ctx context.Context, store blobstore.BlobStore, name string, reg grammar.Registry, optFns ...Option) (c *ccgchart.Chart, err error) {
	opts := defaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}
	defer func() {
		var n int
		if c != nil {
			n = c.TotalEntryCount()
		}
		opts.logger.LogSnapshot(ctx, name, n, err)
	}()

	b, err := store.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	defer func() { _ = b.Close() }()

	data, err := blobstore.ReadAll(ctx, b)
	if err != nil {
		return nil, err
	}
	// Unmarshal copies everything it keeps, so mapped data may be unmapped
	// once it returns.
	return Unmarshal(data, reg, optFns...)
}

// LoadHeader reads only the header of the snapshot stored under name.
func LoadHeader(ctx context.Context, store blobstore.BlobStore, name string) (*Header, error) {
	data, err := blobstore.Get(ctx, store, name)
	if err != nil {
		return nil, err
	}
	return ReadHeader(data)
}
