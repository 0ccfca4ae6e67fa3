package embedcache

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"
)

// flight is the context shared by every caller waiting on one resolve.
type flight struct {
	ctx     context.Context
	cancel  context.CancelFunc
	waiters int
}

type flights struct {
	mu     sync.Mutex
	active map[string]*flight
}

// join registers a caller on key. The flight context keeps ctx's values but not
// its cancellation.
func (fs *flights) join(ctx context.Context, key string) *flight {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	if fs.active == nil {
		fs.active = make(map[string]*flight)
	}
	f, ok := fs.active[key]
	if !ok {
		fctx, cancel := context.WithCancel(context.WithoutCancel(ctx))
		f = &flight{ctx: fctx, cancel: cancel}
		fs.active[key] = f
	}
	f.waiters++
	return f
}

// leave unregisters a caller. The last caller out cancels the flight and makes
// group start fresh work for the next caller on key.
func (fs *flights) leave(key string, f *flight, group *singleflight.Group) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	f.waiters--
	if f.waiters > 0 {
		return
	}
	f.cancel()
	if fs.active[key] == f {
		delete(fs.active, key)
		group.Forget(key)
	}
}
