// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "github.com/anneal-lab/embedcache/internal/adapters/config"
	_ "github.com/anneal-lab/embedcache/internal/adapters/logger"
	_ "github.com/anneal-lab/embedcache/internal/adapters/raster"
	_ "github.com/anneal-lab/embedcache/internal/adapters/store"
	_ "github.com/anneal-lab/embedcache/internal/adapters/telemetry/progrock"
	_ "github.com/anneal-lab/embedcache/internal/adapters/topology"
	// Register app and engine nodes.
	_ "github.com/anneal-lab/embedcache/internal/app"
	_ "github.com/anneal-lab/embedcache/internal/engine/embedcache"
)
