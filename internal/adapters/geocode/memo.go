package geocode

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/sync/singleflight"

	"github.com/mr-mukherjee03/multi-agentic-travel-planner/internal/domain"
	"github.com/mr-mukherjee03/multi-agentic-travel-planner/internal/ports"
)

const (
	memoTTL         = time.Hour
	cleanupInterval = 2 * time.Hour
)

// MemoGeocoder wraps another geocoder with an hour-scale memoization
// table so repeated place names across a trip cost one upstream lookup.
// Duplicate in-flight lookups for the same key are coalesced. Definitive
// misses are cached with the same TTL; transient errors are not cached.
//
// An optional shared GeocodeCache (e.g. Redis or Postgres backed) is
// consulted before the upstream provider and updated on success.
type MemoGeocoder struct {
	next   ports.Geocoder
	shared ports.GeocodeCache
	local  *gocache.Cache
	group  singleflight.Group
}

type memoEntry struct {
	coord domain.Coordinates
	found bool
}

// NewMemoGeocoder builds a memoizing wrapper. shared may be nil.
func NewMemoGeocoder(next ports.Geocoder, shared ports.GeocodeCache) *MemoGeocoder {
	return &MemoGeocoder{
		next:   next,
		shared: shared,
		local:  gocache.New(memoTTL, cleanupInterval),
	}
}

// normalize ensures consistent cache keys by collapsing whitespace.
func normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func (m *MemoGeocoder) Resolve(ctx context.Context, place string) (domain.Coordinates, error) {
	key := normalize(place)
	if key == "" {
		return domain.Coordinates{}, fmt.Errorf("resolve place: %w", ports.ErrNotFound)
	}

	if v, ok := m.local.Get(key); ok {
		return m.unpack(key, v.(memoEntry))
	}

	// Concurrent callers for the same key share one upstream call; late
	// joiners also share the first caller's context.
	v, err, _ := m.group.Do(key, func() (any, error) {
		if v, ok := m.local.Get(key); ok {
			return v.(memoEntry), nil
		}

		if m.shared != nil {
			c, ok, err := m.shared.Get(ctx, key)
			if err != nil {
				log.Printf("geocode cache read failed key=%q err=%v", key, err)
			} else if ok {
				e := memoEntry{coord: c, found: true}
				m.local.Set(key, e, gocache.DefaultExpiration)
				return e, nil
			}
		}

		c, err := m.next.Resolve(ctx, key)
		if err != nil {
			if errors.Is(err, ports.ErrNotFound) {
				e := memoEntry{found: false}
				m.local.Set(key, e, gocache.DefaultExpiration)
				return e, nil
			}
			return nil, err
		}

		e := memoEntry{coord: c, found: true}
		m.local.Set(key, e, gocache.DefaultExpiration)

		if m.shared != nil {
			if err := m.shared.Put(ctx, key, c); err != nil {
				log.Printf("geocode cache write failed key=%q err=%v", key, err)
			}
		}

		return e, nil
	})
	if err != nil {
		return domain.Coordinates{}, err
	}

	return m.unpack(key, v.(memoEntry))
}

func (m *MemoGeocoder) unpack(key string, e memoEntry) (domain.Coordinates, error) {
	if !e.found {
		return domain.Coordinates{}, fmt.Errorf("geocode %q: %w", key, ports.ErrNotFound)
	}
	return e.coord, nil
}
