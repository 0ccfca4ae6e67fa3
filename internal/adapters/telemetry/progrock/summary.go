package progrock

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/vito/progrock"
)

// VertexState is the last known state of a recorded vertex.
type VertexState struct {
	ID       string
	Name     string
	Cached   bool
	Done     bool
	Error    string
	Duration time.Duration
}

// Status returns a one-word description of the vertex state.
func (s VertexState) Status() string {
	switch {
	case s.Error != "":
		return "failed"
	case s.Cached:
		return "cached"
	case s.Done:
		return "done"
	default:
		return "running"
	}
}

// Summary is a progrock.Writer that folds status updates into the latest
// state of each vertex, in the order the vertices were first seen.
type Summary struct {
	mu       sync.Mutex
	order    []string
	vertices map[string]*VertexState
}

// NewSummary creates an empty Summary.
func NewSummary() *Summary {
	return &Summary{vertices: make(map[string]*VertexState)}
}

// WriteStatus implements progrock.Writer.
func (s *Summary) WriteStatus(update *progrock.StatusUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, v := range update.Vertexes {
		state, ok := s.vertices[v.Id]
		if !ok {
			state = &VertexState{ID: v.Id}
			s.vertices[v.Id] = state
			s.order = append(s.order, v.Id)
		}
		state.Name = v.Name
		state.Cached = v.Cached
		if v.Completed != nil {
			state.Done = true
			if v.Started != nil {
				state.Duration = v.Completed.AsTime().Sub(v.Started.AsTime())
			}
		}
		if v.Error != nil {
			state.Error = *v.Error
		}
	}
	return nil
}

// Close implements progrock.Writer.
func (s *Summary) Close() error {
	return nil
}

// Vertices returns a snapshot of every vertex seen so far.
func (s *Summary) Vertices() []VertexState {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]VertexState, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, *s.vertices[id])
	}
	return out
}

// Render writes one line per vertex.
func (s *Summary) Render(w io.Writer) error {
	for _, v := range s.Vertices() {
		line := fmt.Sprintf("%-8s %s", v.Status(), v.Name)
		if v.Done && !v.Cached {
			line += fmt.Sprintf(" (%s)", v.Duration.Round(time.Millisecond))
		}
		if v.Error != "" {
			line += ": " + v.Error
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
