package views

import (
	"context"
	"strconv"
	"sync"
	"time"

	cmap "github.com/orcaman/concurrent-map/v2"
	"golang.org/x/sync/singleflight"

	"github.com/rohits-web03/chainvault/internal/ledger"
	"github.com/rohits-web03/chainvault/internal/models"
)

const (
	DefaultCacheTTL = 15 * time.Second

	// fetchTimeout bounds a shared fetch, which outlives the caller that started it.
	fetchTimeout = 30 * time.Second
)

type entry struct {
	res     Result
	expires time.Time
}

// Cache is a read-through store of resolved views keyed by (kind, account).
// Entries expire after the TTL; failed resolutions are never stored.
// Concurrent misses on one key share a single ledger round trip.
//
// Every Invalidate advances an epoch. A fetch stores its result only if the
// epoch it started under is still current, so reads that were in flight
// during a write cannot put pre-write data back.
type Cache struct {
	entries cmap.ConcurrentMap[string, entry]
	flights singleflight.Group
	ttl     time.Duration
	now     func() time.Time

	mu    sync.Mutex
	epoch uint64
}

// NewCache returns a cache whose entries live for ttl, or DefaultCacheTTL when ttl <= 0.
func NewCache(ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &Cache{entries: cmap.New[entry](), ttl: ttl, now: time.Now}
}

func (c *Cache) get(key string) (Result, bool) {
	e, ok := c.entries.Get(key)
	if !ok || !c.now().Before(e.expires) {
		return Result{}, false
	}
	return e.res, true
}

func (c *Cache) currentEpoch() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.epoch
}

// put stores r unless it failed or the cache was invalidated after epoch.
func (c *Cache) put(r Result, epoch uint64) {
	if r.Failed() {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.epoch != epoch {
		return
	}
	c.entries.Set(r.View.Key(), entry{res: r, expires: c.now().Add(c.ttl)})
}

// load returns the cached view or joins a fetch for it. The fetch runs
// detached from ctx so one caller going away does not fail the others;
// each caller still stops waiting when its own ctx is done.
func (c *Cache) load(ctx context.Context, v models.View, fetch func(context.Context, models.View) Result) Result {
	key := v.Key()
	if r, ok := c.get(key); ok {
		return r
	}
	epoch := c.currentEpoch()
	ch := c.flights.DoChan(key+"#"+strconv.FormatUint(epoch, 10), func() (any, error) {
		fctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), fetchTimeout)
		defer cancel()
		r := fetch(fctx, v)
		c.put(r, epoch)
		return r, nil
	})
	select {
	case out := <-ch:
		return out.Val.(Result)
	case <-ctx.Done():
		return Result{View: v, Files: []models.FileRecord{}, Failure: ledger.KindRemoteFailure, Message: MsgLoadFailed}
	}
}

// refresh fetches v and replaces the cached copy.
func (c *Cache) refresh(ctx context.Context, v models.View, fetch func(context.Context, models.View) Result) Result {
	epoch := c.currentEpoch()
	r := fetch(ctx, v)
	c.put(r, epoch)
	return r
}

// Invalidate drops every view account's files appear in.
func (c *Cache) Invalidate(account string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.epoch++
	for _, v := range []models.View{
		models.Public(),
		models.Owned(account),
		models.SharedGeneral(account),
		models.SharedSelective(account),
	} {
		c.entries.Remove(v.Key())
	}
}

// Len reports how many views are cached, expired ones included.
func (c *Cache) Len() int {
	return c.entries.Count()
}
