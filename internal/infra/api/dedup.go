package api

import (
	"context"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/patrickmn/go-cache"
	"golang.org/x/sync/singleflight"
)

// readGroup coalesces identical GET requests. Callers that arrive while a
// request is in flight join it; callers that arrive within window after it
// settled receive the same body or failure without a new network call.
//
// Every write starts a new generation. Reads are keyed by generation, so a
// read issued after a write never joins one issued before it.
type readGroup struct {
	settled    *cache.Cache
	flight     singleflight.Group
	generation atomic.Uint64
	window     time.Duration
}

// settledRead is what lingers after a shared read completes.
type settledRead struct {
	err  error
	resp response
}

func newReadGroup(window time.Duration) *readGroup {
	g := &readGroup{window: window}
	if window > 0 {
		g.settled = cache.New(window, time.Minute)
	}
	return g
}

func (g *readGroup) key(url string) string {
	return strconv.FormatUint(g.generation.Load(), 10) + "|" + url
}

// do returns the response for url, fetching it at most once per generation
// and window. The shared fetch runs detached from ctx so one caller giving up
// does not fail the others; ctx only bounds how long this caller waits.
func (g *readGroup) do(ctx context.Context, url string, fetch func(context.Context) (response, error)) (response, bool, error) {
	key := g.key(url)
	if r, ok := g.lookup(key); ok {
		return r.resp, true, r.err
	}

	ch := g.flight.DoChan(key, func() (any, error) {
		if r, ok := g.lookup(key); ok {
			return r.resp, r.err
		}
		resp, err := fetch(context.WithoutCancel(ctx))
		if g.settled != nil {
			g.settled.Set(key, settledRead{resp: resp, err: err}, g.window)
		}
		return resp, err
	})

	select {
	case res := <-ch:
		resp, _ := res.Val.(response)
		return resp, res.Shared, res.Err
	case <-ctx.Done():
		return response{}, false, ctx.Err()
	}
}

func (g *readGroup) lookup(key string) (settledRead, bool) {
	if g.settled == nil {
		return settledRead{}, false
	}
	v, ok := g.settled.Get(key)
	if !ok {
		return settledRead{}, false
	}
	r, ok := v.(settledRead)
	return r, ok
}

// invalidate starts a new generation.
func (g *readGroup) invalidate() {
	g.generation.Add(1)
}
