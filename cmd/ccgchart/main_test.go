package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/ccgchart"
	"github.com/hupe1980/ccgchart/blobstore"
	"github.com/hupe1980/ccgchart/codec"
	"github.com/hupe1980/ccgchart/snapshot"
	"github.com/hupe1980/ccgchart/testutil"
)

// seed stores a two-word chart: (S (NP dogs) (S\NP bark)).
func seed(t *testing.T) blobstore.BlobStore {
	t.Helper()
	c, err := ccgchart.New(ccgchart.NewSentence([]string{"dogs", "bark"}, []string{"NNS", "VBP"}, nil, nil), ccgchart.Append())
	require.NoError(t, err)

	_, err = c.AddEntry(testutil.Terminal(t, 1, 0, 0, testutil.Assign(0, 10, 0)), 0.6, 0, 0, nil)
	require.NoError(t, err)
	_, err = c.AddEntry(testutil.Terminal(t, 2, 1, 1, testutil.Assign(0, 11, 1)), 0.7, 1, 1, nil)
	require.NoError(t, err)
	_, err = c.AddEntry(testutil.Binary(t, 3, testutil.Ref(0, 0, 0), testutil.Ref(1, 1, 0), testutil.Assign(0, 11, 1)), 0.42, 0, 1, nil)
	require.NoError(t, err)

	store := blobstore.NewMemoryStore()
	require.NoError(t, snapshot.Save(context.Background(), store, "dev/dogs.ccgc", c))
	return store
}

func TestRunList(t *testing.T) {
	store := seed(t)
	ctx := context.Background()

	var buf bytes.Buffer
	require.NoError(t, runList(ctx, store, "dev/", &buf, false))
	assert.Equal(t, "dev/dogs.ccgc\n", buf.String())

	buf.Reset()
	require.NoError(t, runList(ctx, store, "test/", &buf, true))
	assert.Equal(t, "[]", strings.TrimSpace(buf.String()))
}

func TestRunInspect(t *testing.T) {
	store := seed(t)
	ctx := context.Background()

	t.Run("Text", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, runInspect(ctx, store, "dev/dogs.ccgc", inspectOptions{}, &buf))
		out := buf.String()
		assert.Contains(t, out, "sentence: dogs bark")
		assert.Contains(t, out, "policy:   append")
		assert.Contains(t, out, "entries:  3")
		assert.Contains(t, out, "0.42")
	})

	t.Run("JSON", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, runInspect(ctx, store, "dev/dogs.ccgc", inspectOptions{json: true}, &buf))

		var report inspectReport
		require.NoError(t, codec.GoJSON{}.Unmarshal(buf.Bytes(), &report))
		assert.Equal(t, []string{"dogs", "bark"}, report.Header.Words)
		require.Len(t, report.Spans, 3)
		assert.Equal(t, spanSummary{Start: 0, End: 1, Entries: 1, Best: 0.42}, report.Spans[2])
	})

	t.Run("HeaderOnly", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, runInspect(ctx, store, "dev/dogs.ccgc", inspectOptions{headerOnly: true, json: true}, &buf))

		var report inspectReport
		require.NoError(t, codec.GoJSON{}.Unmarshal(buf.Bytes(), &report))
		assert.Equal(t, 3, report.Header.Entries)
		assert.Empty(t, report.Spans)
	})

	t.Run("NotFound", func(t *testing.T) {
		err := runInspect(ctx, store, "missing.ccgc", inspectOptions{}, &bytes.Buffer{})
		assert.ErrorIs(t, err, blobstore.ErrNotFound)
	})
}

func TestRunKBest(t *testing.T) {
	store := seed(t)
	ctx := context.Background()

	t.Run("WholeSentence", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, runKBest(ctx, store, "dev/dogs.ccgc", kbestOptions{k: 1}, &buf))
		assert.Contains(t, buf.String(), "(#3 (#1 dogs) (#2 bark))")
	})

	t.Run("Categories", func(t *testing.T) {
		syntax, err := readCategories(strings.NewReader("N\nNP\nS\\NP\nS\n"))
		require.NoError(t, err)

		var buf bytes.Buffer
		require.NoError(t, runKBest(ctx, store, "dev/dogs.ccgc", kbestOptions{k: 1, syntax: syntax}, &buf))
		assert.Contains(t, buf.String(), `(S (NP dogs) (S\NP bark))`)
	})

	t.Run("Subspans", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, runKBest(ctx, store, "dev/dogs.ccgc", kbestOptions{k: 10, subspans: true, json: true}, &buf))

		var results []parseResult
		require.NoError(t, codec.GoJSON{}.Unmarshal(buf.Bytes(), &results))
		require.Len(t, results, 3)
		assert.Equal(t, []string{"dogs"}, results[1].Yield)
		assert.InDelta(t, 0.7, results[0].Probability, 1e-12)
	})

	t.Run("Span", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, runKBest(ctx, store, "dev/dogs.ccgc", kbestOptions{span: "1,1", k: 2, json: true}, &buf))

		var results []parseResult
		require.NoError(t, codec.GoJSON{}.Unmarshal(buf.Bytes(), &results))
		require.Len(t, results, 1)
		assert.Equal(t, []string{"bark"}, results[0].Yield)
	})

	t.Run("InvalidK", func(t *testing.T) {
		err := runKBest(ctx, store, "dev/dogs.ccgc", kbestOptions{k: 0}, &bytes.Buffer{})
		assert.ErrorIs(t, err, ccgchart.ErrInvalidK)
	})
}

func TestParseSpan(t *testing.T) {
	start, end, err := parseSpan("", 5)
	require.NoError(t, err)
	assert.Equal(t, [2]int{0, 4}, [2]int{start, end})

	start, end, err = parseSpan(" 1, 3", 5)
	require.NoError(t, err)
	assert.Equal(t, [2]int{1, 3}, [2]int{start, end})

	for _, bad := range []string{"1", "a,2", "1,b"} {
		_, _, err := parseSpan(bad, 5)
		assert.Error(t, err, bad)
	}
}
