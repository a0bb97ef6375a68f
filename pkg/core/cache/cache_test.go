package cache

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/msto63/etds/foundation/etds"
	"github.com/msto63/etds/foundation/etds/parser"
)

func TestGetSet(t *testing.T) {
	c := New[int](Config{MaxItems: 10})
	defer c.Close()

	if _, ok := c.Get("a"); ok {
		t.Fatal("Get() on empty cache should miss")
	}
	c.Set("a", 1)
	if v, ok := c.Get("a"); !ok || v != 1 {
		t.Errorf("Get(a) = %v, %v", v, ok)
	}
	c.Delete("a")
	if _, ok := c.Get("a"); ok {
		t.Error("Get() after Delete should miss")
	}

	hits, misses, rate := c.Stats()
	if hits != 1 || misses != 2 {
		t.Errorf("Stats() = %d hits, %d misses", hits, misses)
	}
	if rate < 33 || rate > 34 {
		t.Errorf("hitRate = %v", rate)
	}
}

func TestExpiry(t *testing.T) {
	c := New[string](Config{MaxItems: 10, TTL: time.Minute})
	defer c.Close()

	now := time.Now()
	c.now = func() time.Time { return now }
	c.Set("k", "v")

	now = now.Add(59 * time.Second)
	if _, ok := c.Get("k"); !ok {
		t.Error("entry expired early")
	}
	now = now.Add(2 * time.Second)
	if _, ok := c.Get("k"); ok {
		t.Error("entry should have expired")
	}
	if c.Size() != 0 {
		t.Errorf("Size() = %d after expiry", c.Size())
	}
}

func TestCleanupRemovesExpired(t *testing.T) {
	c := New[int](Config{MaxItems: 10, TTL: time.Second})
	defer c.Close()

	now := time.Now()
	c.now = func() time.Time { return now }
	c.Set("a", 1)
	c.Set("b", 2)
	now = now.Add(2 * time.Second)
	c.cleanup()
	if c.Size() != 0 {
		t.Errorf("Size() = %d after cleanup", c.Size())
	}
}

func TestEvictsOldest(t *testing.T) {
	c := New[int](Config{MaxItems: 2})
	defer c.Close()

	now := time.Now()
	c.now = func() time.Time { now = now.Add(time.Millisecond); return now }
	c.Set("first", 1)
	c.Set("second", 2)
	c.Set("second", 22) // overwrite does not evict
	if c.Size() != 2 {
		t.Fatalf("Size() = %d", c.Size())
	}
	c.Set("third", 3)

	if _, ok := c.Get("first"); ok {
		t.Error("oldest entry should have been evicted")
	}
	if v, ok := c.Get("second"); !ok || v != 22 {
		t.Errorf("Get(second) = %v, %v", v, ok)
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	c := New[int](Config{CleanupInterval: time.Millisecond})
	c.Close()
	c.Close()
}

func TestResultCache(t *testing.T) {
	rc := NewResultCache(etds.NewEngine(etds.Options{}), Config{MaxItems: 8})
	defer rc.Close()

	res1, cached, err := rc.Compile("a + b")
	if err != nil || cached {
		t.Fatalf("first Compile() = %v, cached %v", err, cached)
	}
	res2, cached, err := rc.Compile("a + b")
	if err != nil || !cached {
		t.Fatalf("second Compile() = %v, cached %v", err, cached)
	}
	if res1 != res2 {
		t.Error("cached compile should return the same result")
	}

	_, _, err1 := rc.Compile("a +")
	_, cached, err2 := rc.Compile("a +")
	var synErr *parser.SyntaxError
	if !cached || !errors.As(err2, &synErr) || err1 != err2 {
		t.Errorf("failure not memoized: %v / %v (cached %v)", err1, err2, cached)
	}
	if rc.Size() != 2 {
		t.Errorf("Size() = %d", rc.Size())
	}
}

func TestResultCacheConcurrent(t *testing.T) {
	rc := NewResultCache(etds.NewEngine(etds.Options{}), Config{MaxItems: 4})
	defer rc.Close()

	inputs := []string{"a", "b * 2", "(c)", "d - e", "x / y", "1.5"}
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(in string) {
			defer wg.Done()
			if _, _, err := rc.Compile(in); err != nil {
				t.Errorf("Compile(%q) error = %v", in, err)
			}
		}(inputs[i%len(inputs)])
	}
	wg.Wait()

	if rc.Size() > 4 {
		t.Errorf("Size() = %d exceeds capacity", rc.Size())
	}
}

func TestKey(t *testing.T) {
	if Key("a") == Key("b") || len(Key("a")) != 64 {
		t.Errorf("Key() = %q", Key("a"))
	}
}
