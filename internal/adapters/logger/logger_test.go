package logger_test

import (
	"bytes"
	"os"
	"sync"
	"testing"

	"github.com/anneal-lab/embedcache/internal/adapters/logger"
	"github.com/anneal-lab/embedcache/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	lg := logger.NewWithWriter(&buf)

	lg.Info("no cached embeddings for chip/L04")
	lg.Warn("raster breadth below lower bound")
	lg.Error(os.ErrPermission)

	out := buf.String()
	assert.Contains(t, out, "level=INFO")
	assert.Contains(t, out, "no cached embeddings for chip/L04")
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, "raster breadth below lower bound")
	assert.Contains(t, out, "level=ERROR")
	assert.Contains(t, out, "permission denied")
}

func TestLogger_SetLevel(t *testing.T) {
	var buf bytes.Buffer
	lg := logger.NewWithWriter(&buf)
	lg.SetLevel(domain.LogLevelWarn)

	lg.Info("hidden")
	lg.Warn("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestLogger_SetOutput(t *testing.T) {
	var first, second bytes.Buffer
	lg := logger.NewWithWriter(&first)

	lg.Info("one")
	lg.SetOutput(&second)
	lg.Info("two")

	assert.Contains(t, first.String(), "one")
	assert.NotContains(t, first.String(), "two")
	assert.Contains(t, second.String(), "two")
}

func TestLogger_ConcurrentUse(t *testing.T) {
	lg := logger.NewWithWriter(&bytes.Buffer{})

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			lg.Info("message")
		}()
	}
	lg.SetOutput(&bytes.Buffer{})
	wg.Wait()
}

func TestNew(t *testing.T) {
	lg := logger.New()
	require.NotNil(t, lg)
	_, ok := lg.(*logger.Logger)
	assert.True(t, ok)
}
