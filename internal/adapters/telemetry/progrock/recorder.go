// Package progrock provides the Progrock implementation of the telemetry adapter.
package progrock

import (
	"context"
	"io"

	"github.com/anneal-lab/embedcache/internal/core/ports"
	"github.com/opencontainers/go-digest"
	"github.com/vito/progrock"
)

var _ ports.Telemetry = (*Recorder)(nil)

// Recorder implements the ports.Telemetry interface using the progrock library.
type Recorder struct {
	w       progrock.Writer
	rec     *progrock.Recorder
	summary *Summary
}

// New creates a new Recorder that keeps a Summary of every vertex.
func New() *Recorder {
	summary := NewSummary()
	r := NewRecorder(summary)
	r.summary = summary
	return r
}

// NewRecorder creates a new Recorder with the given writer.
func NewRecorder(w progrock.Writer) *Recorder {
	return &Recorder{
		w:   w,
		rec: progrock.NewRecorder(w),
	}
}

// Record starts recording a new vertex. Vertices are identified by name, so
// recording the same name twice updates the same vertex.
func (r *Recorder) Record(ctx context.Context, name string) (context.Context, ports.Vertex) {
	v := r.rec.Vertex(digest.FromString(name), name)
	vertex := &Vertex{vertex: v}
	return ports.ContextWithVertex(ctx, vertex), vertex
}

// Report writes the vertex summary to w. It writes nothing for a Recorder
// built around a caller-supplied writer.
func (r *Recorder) Report(w io.Writer) error {
	if r.summary == nil {
		return nil
	}
	return r.summary.Render(w)
}

// Close flushes and closes the recording session.
func (r *Recorder) Close() error {
	return r.w.Close()
}
