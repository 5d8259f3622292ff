// Package mock produces deterministic synthetic values for schema types.
//
// A Generator is a thin wrapper over gofakeit driven by a PCG source that can be
// reseeded. The package-level cache hands out one Generator per path string,
// reseeded on every use, so identical paths replay identical values.
package mock

import (
	"math"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
)

// DefaultLocale is the only locale the word lists ship with.
const DefaultLocale = "en"

// Generator yields primitive random values from a seeded source.
type Generator struct {
	src    *rand.PCG
	faker  *gofakeit.Faker
	seed   int32
	locale string
}

// New returns a Generator seeded with seed.
func New(seed int32) *Generator {
	src := rand.NewPCG(0, 0)
	g := &Generator{src: src, faker: gofakeit.NewFaker(src, false), locale: DefaultLocale}
	g.Reseed(seed)
	return g
}

// Reseed resets the underlying source so the value stream restarts.
func (g *Generator) Reseed(seed int32) {
	s := uint64(uint32(seed))
	g.src.Seed(s, s)
	g.seed = seed
}

// Seed returns the seed the Generator was last reset to.
func (g *Generator) Seed() int32 { return g.seed }

// Locale returns the generator locale.
func (g *Generator) Locale() string { return g.locale }

// Read fills p with pseudo-random bytes; it lets the generator drive
// uuid.NewRandomFromReader.
func (g *Generator) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = g.faker.Uint8()
	}
	return len(p), nil
}

func (g *Generator) Bool() bool   { return g.faker.Bool() }
func (g *Generator) Word() string { return g.faker.Word() }

// Words joins n words with single spaces.
func (g *Generator) Words(n int) string {
	if n <= 0 {
		return ""
	}
	ws := make([]string, n)
	for i := range ws {
		ws[i] = g.faker.Word()
	}
	return strings.Join(ws, " ")
}

// Sentence returns a capitalized run of 4..10 words ending with a period.
func (g *Generator) Sentence() string {
	s := g.Words(g.Int(4, 10))
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:] + "."
}

// Paragraph returns 2..5 sentences.
func (g *Generator) Paragraph() string {
	n := g.Int(2, 5)
	ss := make([]string, n)
	for i := range ss {
		ss[i] = g.Sentence()
	}
	return strings.Join(ss, " ")
}

// Int returns an integer in [lo, hi].
func (g *Generator) Int(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return g.faker.IntRange(lo, hi)
}

// Number returns a float in [lo, hi].
func (g *Generator) Number(lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return g.faker.Float64Range(lo, hi)
}

// Pick returns an index in [0, n).
func (g *Generator) Pick(n int) int {
	if n <= 1 {
		return 0
	}
	return g.Int(0, n-1)
}

// DateBetween returns a time in [from, to] on a whole millisecond so it
// survives an RFC3339 round trip unchanged. When no millisecond falls inside
// the window, from itself is returned.
func (g *Generator) DateBetween(from, to time.Time) time.Time {
	start := from.Truncate(time.Millisecond)
	if start.Before(from) {
		start = start.Add(time.Millisecond)
	}
	if start.After(to) || !to.After(from) {
		return from.UTC()
	}
	span := to.Sub(start).Milliseconds()
	off := int64(math.Floor(g.Number(0, float64(span))))
	return start.Add(time.Duration(off) * time.Millisecond).UTC()
}

// UUID returns a version 4 UUID drawn from the seeded stream.
func (g *Generator) UUID() string {
	id, err := uuid.NewRandomFromReader(g)
	if err != nil {
		// Read never fails.
		panic(err)
	}
	return id.String()
}

// Key returns a short identifier suitable for array item _key values.
func (g *Generator) Key() string {
	return strings.ReplaceAll(g.UUID(), "-", "")[:12]
}

func (g *Generator) URL() string       { return g.faker.URL() }
func (g *Generator) Email() string     { return g.faker.Email() }
func (g *Generator) Latitude() float64 { return g.faker.Latitude() }
func (g *Generator) Longitude() float64 {
	return g.faker.Longitude()
}
