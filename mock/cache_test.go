package mock_test

import (
	"bytes"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saiichihashimoto/sanity-typed-schema-builder-sub000/mock"
)

func TestSeed_Hash(t *testing.T) {
	require.Equal(t, int32(0), mock.Seed(""))
	require.Equal(t, int32(97), mock.Seed("a"))
	require.Equal(t, int32(97*31+98), mock.Seed("ab"))
	// wraps around like a signed 32-bit integer
	long := "a very long path that overflows the thirty-two bit accumulator"
	var want int32
	for _, c := range long {
		want = 31*want + int32(c)
	}
	require.Equal(t, want, mock.Seed(long))
}

func TestSeed_UTF16Units(t *testing.T) {
	// U+1F600 is a surrogate pair in UTF-16 and contributes two units.
	hi, lo := int32(0xD83D), int32(0xDE00)
	require.Equal(t, 31*hi+lo, mock.Seed("\U0001F600"))
}

func sample(g *mock.Generator) any {
	return []any{g.Word(), g.Int(0, 1000), g.UUID(), g.Bool(), g.Number(0, 1)}
}

func TestAt_SamePathReplays(t *testing.T) {
	a := mock.At("post.title", sample)
	b := mock.At("post.title", sample)
	require.Equal(t, a, b)
}

func TestAt_DifferentPathsDiverge(t *testing.T) {
	seen := map[string]struct{}{}
	for _, p := range []string{"", ".a", ".b", ".a.b", "[0]", "[1]"} {
		v := mock.At(p, func(g *mock.Generator) any { return g.UUID() }).(string)
		_, dup := seen[v]
		require.False(t, dup, "path %q collided", p)
		seen[v] = struct{}{}
	}
}

func TestAt_EmptyPathIsDeterministic(t *testing.T) {
	a := mock.At("", func(g *mock.Generator) any { return g.UUID() })
	b := mock.At("", func(g *mock.Generator) any { return g.UUID() })
	require.Equal(t, a, b)
}

func TestAt_ConcurrentUse(t *testing.T) {
	want := mock.At("concurrent", sample)
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Equal(t, want, mock.At("concurrent", sample))
		}()
	}
	wg.Wait()
}

func TestSetLogger_ReportsMiss(t *testing.T) {
	var buf bytes.Buffer
	mock.SetLogger(zerolog.New(&buf).Level(zerolog.DebugLevel))
	defer mock.SetLogger(zerolog.Nop())

	before := mock.CacheSize()
	mock.At("logger-miss-path", sample)
	require.Equal(t, before+1, mock.CacheSize())
	require.Contains(t, buf.String(), "logger-miss-path")
}

func TestGenerator_Ranges(t *testing.T) {
	g := mock.New(42)
	for i := 0; i < 50; i++ {
		n := g.Int(3, 5)
		require.GreaterOrEqual(t, n, 3)
		require.LessOrEqual(t, n, 5)
		f := g.Number(-1, 1)
		require.GreaterOrEqual(t, f, -1.0)
		require.LessOrEqual(t, f, 1.0)
	}
	from := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	to := from.Add(48 * time.Hour)
	d := g.DateBetween(from, to)
	require.False(t, d.Before(from))
	require.False(t, d.After(to))

	// sub-millisecond bounds never push the sample outside the window
	from = time.Date(2020, 1, 1, 0, 0, 0, 500_000, time.UTC)
	to = from.Add(2 * time.Millisecond)
	for i := 0; i < 50; i++ {
		d = g.DateBetween(from, to)
		require.False(t, d.Before(from), d)
		require.False(t, d.After(to), d)
		require.Equal(t, d, d.Truncate(time.Millisecond))
	}
	narrow := time.Date(2020, 1, 1, 0, 0, 0, 100_000, time.UTC)
	require.Equal(t, narrow, g.DateBetween(narrow, narrow.Add(200*time.Microsecond)))
	require.Equal(t, 0, g.Pick(1))
	require.Len(t, g.Key(), 12)
	require.Equal(t, "", g.Words(0))
}
