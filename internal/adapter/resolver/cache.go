package resolver

import (
	"context"
	"time"

	"github.com/couchcryptid/neo-impact-service/internal/cache"
	"github.com/couchcryptid/neo-impact-service/internal/domain"
	"github.com/couchcryptid/neo-impact-service/internal/observability"
)

type key struct {
	elements  domain.OrbitalElements
	encounter int64
}

// CachedResolver memoizes verdicts per (elements, encounter time). Errors
// are never cached.
type CachedResolver struct {
	inner   domain.TrajectoryResolver
	cache   *cache.LRU[key, domain.TrajectoryResolution]
	metrics *observability.Metrics
}

// NewCachedResolver wraps inner with an LRU of maxEntries verdicts.
func NewCachedResolver(inner domain.TrajectoryResolver, maxEntries int, metrics *observability.Metrics) *CachedResolver {
	return &CachedResolver{
		inner:   inner,
		cache:   cache.New[key, domain.TrajectoryResolution](maxEntries),
		metrics: metrics,
	}
}

func (c *CachedResolver) Resolve(ctx context.Context, elements domain.OrbitalElements, encounter time.Time) (domain.TrajectoryResolution, error) {
	// time.Time is comparable but carries a location pointer; normalize both
	// instants so equal moments share a key.
	elements.Epoch = elements.Epoch.UTC()
	k := key{elements: elements, encounter: encounter.UnixNano()}

	if res, ok := c.cache.Get(k); ok {
		c.metrics.ResolverCache.WithLabelValues("hit").Inc()
		return res, nil
	}
	c.metrics.ResolverCache.WithLabelValues("miss").Inc()

	res, err := c.inner.Resolve(ctx, elements, encounter)
	if err != nil {
		return res, err
	}
	c.cache.Put(k, res)
	return res, nil
}
