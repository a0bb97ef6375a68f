package cache

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/msto63/etds/foundation/etds"
)

// Outcome is a memoized translation: either a result or the error
type Outcome struct {
	Result *etds.Result
	Err    error
}

// ResultCache memoizes Engine.Compile. Translation is a pure function of
// the input, so failures are cached as well.
type ResultCache struct {
	cache  *Cache[Outcome]
	engine *etds.Engine
}

// NewResultCache wraps engine with a cache configured by cfg
func NewResultCache(engine *etds.Engine, cfg Config) *ResultCache {
	return &ResultCache{cache: New[Outcome](cfg), engine: engine}
}

// Compile returns the memoized outcome for input; cached reports a hit
func (rc *ResultCache) Compile(input string) (res *etds.Result, cached bool, err error) {
	o, hit := rc.cache.GetOrSet(Key(input), func() Outcome {
		res, err := rc.engine.Compile(input)
		return Outcome{Result: res, Err: err}
	})
	return o.Result, hit, o.Err
}

// Stats returns hit and miss counts
func (rc *ResultCache) Stats() (hits, misses int64, hitRate float64) {
	return rc.cache.Stats()
}

// Size returns the number of memoized inputs
func (rc *ResultCache) Size() int {
	return rc.cache.Size()
}

// Close stops background cleanup
func (rc *ResultCache) Close() {
	rc.cache.Close()
}

// Key hashes an input so that large expressions make compact keys
func Key(input string) string {
	sum := sha256.Sum256([]byte(input))
	return hex.EncodeToString(sum[:])
}
