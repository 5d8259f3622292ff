package dsl

import (
	"context"
	"encoding/json"
	"math"
	"strconv"

	sanity "github.com/saiichihashimoto/sanity-typed-schema-builder-sub000"
	"github.com/saiichihashimoto/sanity-typed-schema-builder-sub000/descriptor"
	"github.com/saiichihashimoto/sanity-typed-schema-builder-sub000/mock"
)

// MockFunc produces a raw sample value from a seeded generator.
type MockFunc func(g *mock.Generator, path string) any

// Tagged is implemented by object-like types whose raw values carry a fixed
// _type (image, file, slug, geopoint, block, reference).
type Tagged interface {
	Tag() string
}

// primitive is implemented by builders whose raw values are JSON scalars.
type primitive interface {
	primitiveKind() string
}

// tagOf returns the discriminant a raw value of t carries: the name of a named
// type, a fixed tag, or the JSON kind of a primitive. "" means t has none.
func tagOf(t sanity.Type) string {
	switch tt := t.(type) {
	case sanity.Named:
		return tt.Name()
	case Tagged:
		return tt.Tag()
	case primitive:
		return tt.primitiveKind()
	}
	return ""
}

func isPrimitive(t sanity.Type) bool {
	_, ok := t.(primitive)
	return ok
}

// refSchema is how a type appears inside fields/of: named types by name only,
// everything else inline.
func refSchema(t sanity.Type) *descriptor.Schema {
	if n, ok := t.(sanity.Named); ok {
		return descriptor.Ref(n.Name())
	}
	return t.Schema()
}

// mockAt runs the custom mock when present, else def, through the path cache.
func mockAt(path string, custom, def MockFunc) any {
	return mock.At(path, func(g *mock.Generator) any {
		if custom != nil {
			return custom(g, path)
		}
		return def(g, path)
	})
}

func invalidType(expected string) sanity.Issues {
	return sanity.Fail(sanity.CodeInvalidType, "expected "+expected, "expected", expected)
}

// jsonKind classifies a raw scalar the way JSON does.
func jsonKind(v any) string {
	switch v.(type) {
	case string:
		return "string"
	case bool:
		return "boolean"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	case nil:
		return "null"
	}
	if _, ok := toFloat(v); ok {
		return "number"
	}
	return "unknown"
}

// toFloat accepts the numeric shapes raw values arrive in: json.Number from the
// JSON entry points, float64 from encoding/json, and Go integers from literals.
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, !math.IsNaN(n) && !math.IsInf(n, 0)
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		f, err := strconv.ParseFloat(string(n), 64)
		return f, err == nil
	}
	return 0, false
}

// pipeline selects Parse or Resolve on a child type.
type pipeline func(ctx context.Context, t sanity.Type, raw any) (any, error)

func parsePipe(ctx context.Context, t sanity.Type, raw any) (any, error)   { return t.Parse(ctx, raw) }
func resolvePipe(ctx context.Context, t sanity.Type, raw any) (any, error) { return t.Resolve(ctx, raw) }

func copyMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func itoa(i int) string { return strconv.Itoa(i) }
