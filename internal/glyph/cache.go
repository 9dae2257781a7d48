package glyph

import (
	"encoding/binary"
	"math"
	"sync"

	"github.com/cespare/xxhash/v2"
)

// DefaultCacheCapacity is the number of layouts kept by NewLayoutCache(0).
const DefaultCacheCapacity = 8

// LayoutCache memoizes sampled layouts by text, font, size, region and density,
// so toggling between window sizes does not re-rasterize the glyph.
type LayoutCache struct {
	mu       sync.Mutex
	capacity int
	entries  map[uint64][]SamplePoint
	order    []uint64

	hits, misses int
}

func NewLayoutCache(capacity int) *LayoutCache {
	if capacity <= 0 {
		capacity = DefaultCacheCapacity
	}
	return &LayoutCache{
		capacity: capacity,
		entries:  make(map[uint64][]SamplePoint, capacity),
	}
}

// Points returns the sample points for text rendered by r into a width x height
// region at the given density. The returned slice is owned by the caller.
func (c *LayoutCache) Points(r *Rasterizer, text string, width, height, density int) ([]SamplePoint, error) {
	key := layoutKey(r, text, width, height, density)

	c.mu.Lock()
	if points, ok := c.entries[key]; ok {
		c.hits++
		c.mu.Unlock()
		return clonePoints(points), nil
	}
	c.misses++
	c.mu.Unlock()

	mask, err := r.Render(text, width, height)
	if err != nil {
		return nil, err
	}
	points, err := Sample(mask, density, width, height)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.entries[key]; !ok {
		if len(c.order) >= c.capacity {
			oldest := c.order[0]
			c.order = c.order[1:]
			delete(c.entries, oldest)
		}
		c.order = append(c.order, key)
	}
	c.entries[key] = points

	return clonePoints(points), nil
}

// Stats returns the hit and miss counters.
func (c *LayoutCache) Stats() (hits, misses int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}

// Len returns the number of cached layouts.
func (c *LayoutCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func layoutKey(r *Rasterizer, text string, width, height, density int) uint64 {
	d := xxhash.New()
	var buf [8]byte

	binary.LittleEndian.PutUint64(buf[:], r.id)
	_, _ = d.Write(buf[:])
	binary.LittleEndian.PutUint64(buf[:], math.Float64bits(r.size))
	_, _ = d.Write(buf[:])
	for _, v := range [...]int{width, height, density} {
		binary.LittleEndian.PutUint64(buf[:], uint64(v))
		_, _ = d.Write(buf[:])
	}
	_, _ = d.WriteString(text)

	return d.Sum64()
}

func clonePoints(points []SamplePoint) []SamplePoint {
	if points == nil {
		return nil
	}
	out := make([]SamplePoint, len(points))
	copy(out, points)
	return out
}
