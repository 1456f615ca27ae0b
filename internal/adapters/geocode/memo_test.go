package geocode

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/mr-mukherjee03/multi-agentic-travel-planner/internal/domain"
	"github.com/mr-mukherjee03/multi-agentic-travel-planner/internal/ports"
)

type countingGeocoder struct {
	calls int64
	delay time.Duration
	miss  bool
}

func (c *countingGeocoder) Resolve(ctx context.Context, place string) (domain.Coordinates, error) {
	atomic.AddInt64(&c.calls, 1)
	if c.delay > 0 {
		time.Sleep(c.delay)
	}
	if c.miss {
		return domain.Coordinates{}, fmt.Errorf("geocode %q: %w", place, ports.ErrNotFound)
	}
	return domain.Coordinates{Lat: 1, Lon: 2}, nil
}

func TestMemoGeocoderCachesHits(t *testing.T) {
	upstream := &countingGeocoder{}
	memo := NewMemoGeocoder(upstream, nil)

	for i := 0; i < 5; i++ {
		c, err := memo.Resolve(context.Background(), "Mumbai,  India")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if c.Lat != 1 {
			t.Fatalf("coordinates = %+v", c)
		}
	}

	if n := atomic.LoadInt64(&upstream.calls); n != 1 {
		t.Errorf("upstream calls = %d, want 1", n)
	}
}

func TestMemoGeocoderNormalizesKeys(t *testing.T) {
	upstream := &countingGeocoder{}
	memo := NewMemoGeocoder(upstream, nil)

	variants := []string{"Mumbai India", " Mumbai  India ", "Mumbai\tIndia"}
	for _, v := range variants {
		if _, err := memo.Resolve(context.Background(), v); err != nil {
			t.Fatalf("unexpected error for %q: %v", v, err)
		}
	}

	if n := atomic.LoadInt64(&upstream.calls); n != 1 {
		t.Errorf("upstream calls = %d, want 1 for equivalent keys", n)
	}
}

func TestMemoGeocoderCoalescesConcurrentLookups(t *testing.T) {
	upstream := &countingGeocoder{delay: 50 * time.Millisecond}
	memo := NewMemoGeocoder(upstream, nil)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := memo.Resolve(context.Background(), "Mumbai"); err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	if n := atomic.LoadInt64(&upstream.calls); n != 1 {
		t.Errorf("upstream calls = %d, want 1 (in-flight lookups must coalesce)", n)
	}
}

func TestMemoGeocoderCachesMisses(t *testing.T) {
	upstream := &countingGeocoder{miss: true}
	memo := NewMemoGeocoder(upstream, nil)

	for i := 0; i < 3; i++ {
		_, err := memo.Resolve(context.Background(), "Atlantis")
		if !errors.Is(err, ports.ErrNotFound) {
			t.Fatalf("error = %v, want ErrNotFound", err)
		}
	}

	if n := atomic.LoadInt64(&upstream.calls); n != 1 {
		t.Errorf("upstream calls = %d, want 1 (definitive misses are cached)", n)
	}
}

type flakyGeocoder struct {
	calls int64
}

func (f *flakyGeocoder) Resolve(ctx context.Context, place string) (domain.Coordinates, error) {
	if atomic.AddInt64(&f.calls, 1) == 1 {
		return domain.Coordinates{}, errors.New("connection reset")
	}
	return domain.Coordinates{Lat: 5, Lon: 6}, nil
}

func TestMemoGeocoderDoesNotCacheTransientErrors(t *testing.T) {
	upstream := &flakyGeocoder{}
	memo := NewMemoGeocoder(upstream, nil)

	if _, err := memo.Resolve(context.Background(), "Mumbai"); err == nil {
		t.Fatal("expected transient error on first call")
	}

	c, err := memo.Resolve(context.Background(), "Mumbai")
	if err != nil {
		t.Fatalf("second call should retry upstream: %v", err)
	}
	if c.Lat != 5 {
		t.Errorf("coordinates = %+v", c)
	}
}

type mapCache struct {
	mu sync.Mutex
	m  map[string]domain.Coordinates
}

func (c *mapCache) Get(ctx context.Context, place string) (domain.Coordinates, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.m[place]
	return v, ok, nil
}

func (c *mapCache) Put(ctx context.Context, place string, coord domain.Coordinates) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.m[place] = coord
	return nil
}

func TestMemoGeocoderPrefersSharedCache(t *testing.T) {
	upstream := &countingGeocoder{}
	shared := &mapCache{m: map[string]domain.Coordinates{
		"Mumbai": {Lat: 19, Lon: 72},
	}}
	memo := NewMemoGeocoder(upstream, shared)

	c, err := memo.Resolve(context.Background(), "Mumbai")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Lat != 19 {
		t.Errorf("coordinates = %+v, want shared cache entry", c)
	}
	if n := atomic.LoadInt64(&upstream.calls); n != 0 {
		t.Errorf("upstream calls = %d, want 0", n)
	}
}

func TestMemoGeocoderWritesThroughToSharedCache(t *testing.T) {
	upstream := &countingGeocoder{}
	shared := &mapCache{m: map[string]domain.Coordinates{}}
	memo := NewMemoGeocoder(upstream, shared)

	if _, err := memo.Resolve(context.Background(), "Mumbai"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, ok, _ := shared.Get(context.Background(), "Mumbai"); !ok {
		t.Error("resolved coordinate was not written to the shared cache")
	}
}
