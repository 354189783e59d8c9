package catalog

import (
	"log/slog"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
)

// InteractionCache is the precomputed, read-only companion the sampler
// consults during every single-site update. It is constructed once when a
// map is created and lives for the map's lifetime; it is never mutated
// after construction.
type InteractionCache struct {
	types     []ItemType
	n         uint32
	maxRadius int64
	id        uuid.UUID
}

// NewInteractionCache builds a cache from types for a map whose tiles are
// n×n. It precomputes the overall maximum interaction radius across every
// pair of types, clamped to n/2 — the bound the Gibbs sweep's quadrant
// partition relies on to stay conditionally independent of patches
// outside a quadrant's three-neighbor set.
func NewInteractionCache(types []ItemType, n uint32) *InteractionCache {
	c := &InteractionCache{
		types: types,
		n:     n,
		id:    uuid.New(),
	}

	for i := range types {
		for j := range types {
			if r := types[i].InteractionRadius(uint32(j)); r > c.maxRadius {
				c.maxRadius = r
			}
		}
	}
	if half := int64(n / 2); c.maxRadius > half {
		c.maxRadius = half
	}

	slog.Debug("interaction cache built",
		"cache_id", c.id,
		"item_types", humanize.Comma(int64(len(types))),
		"max_radius", c.maxRadius,
		"n", n,
	)
	return c
}

// ItemTypes returns the catalog this cache was built from.
func (c *InteractionCache) ItemTypes() []ItemType { return c.types }

// TypeCount returns the number of item types in the catalog.
func (c *InteractionCache) TypeCount() int { return len(c.types) }

// Intensity returns λ for item type t.
func (c *InteractionCache) Intensity(t uint32) float64 {
	return c.types[t].Intensity()
}

// Energy returns φ_{t,other}(dx, dy), delegating to the item type's own
// interaction function.
func (c *InteractionCache) Energy(t, other uint32, dx, dy int64) float64 {
	return c.types[t].InteractionEnergy(other, dx, dy)
}

// MaxRadius returns the overall interaction radius bound, clamped to n/2.
func (c *InteractionCache) MaxRadius() int64 { return c.maxRadius }

// ID returns the cache's build identifier, useful for correlating map
// instances with cache rebuilds across process restarts in logs. It has
// no bearing on the sampled distribution.
func (c *InteractionCache) ID() uuid.UUID { return c.id }
