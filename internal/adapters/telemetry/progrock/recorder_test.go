package progrock_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/anneal-lab/embedcache/internal/adapters/telemetry/progrock"
	"github.com/anneal-lab/embedcache/internal/core/domain"
	"github.com/anneal-lab/embedcache/internal/core/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder_Summary(t *testing.T) {
	recorder := progrock.New()
	ctx := context.Background()

	_, load := recorder.Record(ctx, "load chip/L04")
	load.Log(domain.LogLevelInfo, "no cached embeddings")
	load.Complete(nil)

	searchCtx, search := recorder.Record(ctx, "search chip/L04")
	fromCtx, ok := ports.VertexFromContext(searchCtx)
	require.True(t, ok)
	assert.Same(t, search, fromCtx)
	_, err := search.Stdout().Write([]byte("found 4 embeddings\n"))
	require.NoError(t, err)
	search.Complete(errors.New("boom"))

	_, hit := recorder.Record(ctx, "load chip/L02")
	hit.Cached()
	hit.Complete(nil)

	var buf bytes.Buffer
	require.NoError(t, recorder.Report(&buf))
	out := buf.String()
	assert.Contains(t, out, "done     load chip/L04")
	assert.Contains(t, out, "failed   search chip/L04")
	assert.Contains(t, out, "boom")
	assert.Contains(t, out, "cached   load chip/L02")

	require.NoError(t, recorder.Close())
}

func TestRecorder_CustomWriter(t *testing.T) {
	summary := progrock.NewSummary()
	recorder := progrock.NewRecorder(summary)

	_, v := recorder.Record(context.Background(), "persist chip/L04")
	v.Complete(nil)

	states := summary.Vertices()
	require.Len(t, states, 1)
	assert.Equal(t, "persist chip/L04", states[0].Name)
	assert.Equal(t, "done", states[0].Status())

	var buf bytes.Buffer
	require.NoError(t, recorder.Report(&buf))
	assert.Empty(t, buf.String())
}

func TestVertexState_Status(t *testing.T) {
	assert.Equal(t, "running", progrock.VertexState{}.Status())
	assert.Equal(t, "done", progrock.VertexState{Done: true}.Status())
	assert.Equal(t, "cached", progrock.VertexState{Done: true, Cached: true}.Status())
	assert.Equal(t, "failed", progrock.VertexState{Done: true, Error: "x"}.Status())
}
