package dsl

import (
	"context"
	"strings"

	"github.com/saiichihashimoto/sanity-typed-schema-builder-sub000/descriptor"
	"github.com/saiichihashimoto/sanity-typed-schema-builder-sub000/mock"
)

// ---------------- Slug ----------------

// SlugType parses {_type: "slug", current}. Resolve unwraps current.
type SlugType struct {
	source    string
	maxLength int
	mockFn    MockFunc
}

// Slug returns the slug type.
func Slug() SlugType { return SlugType{} }

// Source names the field the editor generates the slug from (options.source).
func (s SlugType) Source(field string) SlugType { s.source = field; return s }

// MaxLength caps current (options.maxLength), enforced locally too.
func (s SlugType) MaxLength(n int) SlugType { s.maxLength = n; return s }

// WithMock replaces the generated value.
func (s SlugType) WithMock(fn MockFunc) SlugType { s.mockFn = fn; return s }

func (SlugType) Tag() string { return "slug" }

func (s SlugType) fields() Fields {
	current := String()
	if s.maxLength > 0 {
		current = current.Max(s.maxLength)
	}
	return NewFields().
		addSystem("_type", literal("slug")).
		addSystem("current", current)
}

func (s SlugType) Parse(ctx context.Context, raw any) (any, error) {
	return s.fields().run(ctx, raw, parsePipe)
}

func (s SlugType) Resolve(ctx context.Context, raw any) (any, error) {
	v, err := s.Parse(ctx, raw)
	if err != nil {
		return nil, err
	}
	return v.(map[string]any)["current"], nil
}

func (s SlugType) Mock(path string) any {
	return mockAt(path, s.mockFn, func(g *mock.Generator, _ string) any {
		current := strings.ToLower(strings.ReplaceAll(g.Words(g.Int(1, 4)), " ", "-"))
		if s.maxLength > 0 && len(current) > s.maxLength {
			current = strings.TrimRight(current[:s.maxLength], "-")
		}
		return map[string]any{"_type": "slug", "current": current}
	})
}

func (s SlugType) Schema() *descriptor.Schema {
	d := &descriptor.Schema{Type: "slug"}
	opts := map[string]any{}
	if s.source != "" {
		opts["source"] = s.source
	}
	if s.maxLength > 0 {
		opts["maxLength"] = s.maxLength
	}
	if len(opts) > 0 {
		d.Options = opts
	}
	return d
}

// ---------------- Geopoint ----------------

// GeopointType parses {_type: "geopoint", lat, lng, alt?}.
type GeopointType struct {
	mockFn MockFunc
}

// Geopoint returns the geopoint type.
func Geopoint() GeopointType { return GeopointType{} }

// WithMock replaces the generated value.
func (p GeopointType) WithMock(fn MockFunc) GeopointType { p.mockFn = fn; return p }

func (GeopointType) Tag() string { return "geopoint" }

var geopointFields = NewFields().
	addSystem("_type", literal("geopoint")).
	addSystem("lat", Number().Min(-90).Max(90)).
	addSystem("lng", Number().Min(-180).Max(180)).
	addSystem("alt", Number(), Optional())

func (GeopointType) Parse(ctx context.Context, raw any) (any, error) {
	return geopointFields.run(ctx, raw, parsePipe)
}

func (GeopointType) Resolve(ctx context.Context, raw any) (any, error) {
	return geopointFields.run(ctx, raw, resolvePipe)
}

func (p GeopointType) Mock(path string) any {
	return mockAt(path, p.mockFn, func(g *mock.Generator, _ string) any {
		return map[string]any{"_type": "geopoint", "lat": g.Latitude(), "lng": g.Longitude(), "alt": g.Number(0, 1000)}
	})
}

func (GeopointType) Schema() *descriptor.Schema { return &descriptor.Schema{Type: "geopoint"} }
