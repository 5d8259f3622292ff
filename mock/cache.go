package mock

import (
	"sync"
	"unicode/utf16"

	"github.com/rs/zerolog"
)

// Seed folds the UTF-16 code units of path into a signed 32-bit hash
// (seed = 31*seed + unit). The empty path hashes to 0.
func Seed(path string) int32 {
	var h int32
	for _, u := range utf16.Encode([]rune(path)) {
		h = 31*h + int32(u)
	}
	return h
}

type entry struct {
	mu  sync.Mutex
	gen *Generator
}

var (
	_cacheMu sync.Mutex
	_cache   = map[string]*entry{}
	_logger  = zerolog.Nop()
)

// SetLogger installs the logger used to report cache misses.
func SetLogger(l zerolog.Logger) {
	_cacheMu.Lock()
	_logger = l
	_cacheMu.Unlock()
}

func lookup(path string) *entry {
	_cacheMu.Lock()
	defer _cacheMu.Unlock()
	e, ok := _cache[path]
	if !ok {
		seed := Seed(path)
		e = &entry{gen: New(seed)}
		_cache[path] = e
		_logger.Debug().Str("path", path).Int32("seed", seed).Msg("mock generator created")
	}
	return e
}

// At runs fn with the cached Generator for path, reseeded to Seed(path), so
// repeated calls at the same path replay the same values. The entry stays
// locked while fn runs: fn must not call At for the same path again.
func At(path string, fn func(g *Generator) any) any {
	e := lookup(path)
	e.mu.Lock()
	defer e.mu.Unlock()
	e.gen.Reseed(Seed(path))
	return fn(e.gen)
}

// CacheSize reports how many paths have a cached Generator.
func CacheSize() int {
	_cacheMu.Lock()
	defer _cacheMu.Unlock()
	return len(_cache)
}
