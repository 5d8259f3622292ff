package dsl

import (
	"context"
	"reflect"

	sanity "github.com/saiichihashimoto/sanity-typed-schema-builder-sub000"
	"github.com/saiichihashimoto/sanity-typed-schema-builder-sub000/descriptor"
	"github.com/saiichihashimoto/sanity-typed-schema-builder-sub000/mock"
	"github.com/saiichihashimoto/sanity-typed-schema-builder-sub000/rule"
)

// ArrayBuilder configures an array of one or more item types.
type ArrayBuilder struct {
	of       []sanity.Type
	min      int
	max      int
	length   int
	unique   bool
	nonEmpty bool
	options  map[string]any
	mockFn   MockFunc
}

// Array starts an array. No item types means only [] is valid; one means a
// homogeneous array; two or more form a union dispatched by discriminant.
func Array(of ...sanity.Type) ArrayBuilder {
	return ArrayBuilder{of: append([]sanity.Type(nil), of...), min: -1, max: -1, length: -1}
}

// Of appends item types.
func (b ArrayBuilder) Of(ts ...sanity.Type) ArrayBuilder {
	b.of = append(append([]sanity.Type(nil), b.of...), ts...)
	return b
}

func (b ArrayBuilder) Min(n int) ArrayBuilder    { b.min = n; return b }
func (b ArrayBuilder) Max(n int) ArrayBuilder    { b.max = n; return b }
func (b ArrayBuilder) Length(n int) ArrayBuilder { b.length = n; return b }

// Unique rejects repeated items; _key is ignored when comparing.
func (b ArrayBuilder) Unique() ArrayBuilder { b.unique = true; return b }

// NonEmpty rejects [].
func (b ArrayBuilder) NonEmpty() ArrayBuilder { b.nonEmpty = true; return b }

// Option sets one editor option exported under "options".
func (b ArrayBuilder) Option(key string, v any) ArrayBuilder {
	opts := make(map[string]any, len(b.options)+1)
	for k, ov := range b.options {
		opts[k] = ov
	}
	opts[key] = v
	b.options = opts
	return b
}

// WithMock replaces the generated array.
func (b ArrayBuilder) WithMock(fn MockFunc) ArrayBuilder { b.mockFn = fn; return b }

// Build validates the item types.
func (b ArrayBuilder) Build() (*ArrayType, error) {
	for i, t := range b.of {
		if _, nested := t.(*ArrayType); nested {
			return nil, &sanity.ConfigError{Builder: "array", Field: itoa(i), Reason: "arrays cannot directly contain arrays"}
		}
	}
	vs, err := newVariantSet("array", b.of)
	if err != nil {
		return nil, err
	}
	if b.min >= 0 && b.max >= 0 && b.min > b.max {
		return nil, &sanity.ConfigError{Builder: "array", Reason: "min exceeds max"}
	}
	return &ArrayType{variants: vs, b: b}, nil
}

// MustBuild is Build that panics on configuration errors.
func (b ArrayBuilder) MustBuild() *ArrayType {
	t, err := b.Build()
	if err != nil {
		panic(err)
	}
	return t
}

// ArrayType is a built array. Parse returns []any.
type ArrayType struct {
	variants variantSet
	b        ArrayBuilder
}

// keyed reports whether items are object-like and carry _key.
func (a *ArrayType) keyed() bool { return a.variants.Len() > 0 && !a.variants.primitive }

func (a *ArrayType) Parse(ctx context.Context, raw any) (any, error) {
	return a.run(ctx, raw, parsePipe)
}

func (a *ArrayType) Resolve(ctx context.Context, raw any) (any, error) {
	return a.run(ctx, raw, resolvePipe)
}

func (a *ArrayType) run(ctx context.Context, raw any, pipe pipeline) (any, error) {
	items, ok := raw.([]any)
	if !ok {
		return nil, invalidType("array")
	}
	if a.variants.Len() == 0 && len(items) > 0 {
		return nil, sanity.Fail(sanity.CodeInvalidType, "expected empty array", "got", len(items))
	}
	failFast := sanity.IsFailFast(ctx)
	out := make([]any, 0, len(items))
	var iss sanity.Issues
	for i, item := range items {
		v, err := a.item(ctx, item, pipe)
		if err != nil {
			iss = sanity.AppendIssues(iss, sanity.Rebase(sanity.Root().Index(i).Pointer(), err)...)
			if failFast {
				return nil, iss
			}
			continue
		}
		out = append(out, v)
	}
	iss = sanity.AppendIssues(iss, a.check(items)...)
	if len(iss) > 0 {
		return nil, iss
	}
	return out, nil
}

// item parses one element. Object-like items must carry a string _key, which
// is stripped before the variant sees the value and put back on the output.
func (a *ArrayType) item(ctx context.Context, item any, pipe pipeline) (any, error) {
	if !a.keyed() {
		t, err := a.variants.pick(item)
		if err != nil {
			return nil, err
		}
		return pipe(ctx, t, item)
	}
	m, ok := item.(map[string]any)
	if !ok {
		return nil, invalidType("object")
	}
	key, present := m["_key"]
	if !present {
		return nil, sanity.Issues{sanity.Root().Field("_key").Issue(sanity.CodeRequired, "array items need _key")}
	}
	ks, ok := key.(string)
	if !ok || ks == "" {
		return nil, sanity.Rebase("/_key", invalidType("string"))
	}
	inner := copyMap(m)
	delete(inner, "_key")
	t, err := a.variants.pick(inner)
	if err != nil {
		return nil, err
	}
	v, err := pipe(ctx, t, inner)
	if err != nil {
		return nil, err
	}
	if vm, ok := v.(map[string]any); ok {
		vm = copyMap(vm)
		vm["_key"] = ks
		return vm, nil
	}
	return v, nil
}

// check applies min, max, length, then unique and non-empty to the raw items.
func (a *ArrayType) check(items []any) sanity.Issues {
	var iss sanity.Issues
	root := sanity.Root()
	n := len(items)
	b := a.b
	if b.min >= 0 && n < b.min {
		iss = sanity.AppendIssues(iss, root.Issue(sanity.CodeTooShort, "array has fewer items than min", "min", b.min, "got", n))
	}
	if b.max >= 0 && n > b.max {
		iss = sanity.AppendIssues(iss, root.Issue(sanity.CodeTooLong, "array has more items than max", "max", b.max, "got", n))
	}
	if b.length >= 0 && n != b.length {
		code := sanity.CodeTooShort
		if n > b.length {
			code = sanity.CodeTooLong
		}
		iss = sanity.AppendIssues(iss, root.Issue(code, "array length differs", "length", b.length, "got", n))
	}
	if b.unique {
		for i := 1; i < n; i++ {
			for j := 0; j < i; j++ {
				if reflect.DeepEqual(withoutKey(items[i]), withoutKey(items[j])) {
					iss = sanity.AppendIssues(iss, root.Index(i).Issue(sanity.CodeNotUnique, "duplicate item", "duplicateOf", j))
					break
				}
			}
		}
	}
	if b.nonEmpty && n == 0 {
		iss = sanity.AppendIssues(iss, root.Issue(sanity.CodeTooShort, "array must not be empty", "min", 1, "got", 0))
	}
	return iss
}

func withoutKey(v any) any {
	m, ok := v.(map[string]any)
	if !ok {
		return v
	}
	if _, has := m["_key"]; !has {
		return m
	}
	out := copyMap(m)
	delete(out, "_key")
	return out
}

func (a *ArrayType) rules() rule.Func {
	b := a.b
	if b.min < 0 && b.max < 0 && b.length < 0 && !b.unique && !b.nonEmpty {
		return nil
	}
	return func(r *rule.Rule) *rule.Rule {
		if b.min >= 0 {
			r = r.Min(b.min)
		}
		if b.max >= 0 {
			r = r.Max(b.max)
		}
		if b.length >= 0 {
			r = r.Length(b.length)
		}
		if b.unique {
			r = r.Unique()
		}
		if b.nonEmpty {
			r = r.Min(1)
		}
		return r
	}
}

func (a *ArrayType) Schema() *descriptor.Schema {
	of := make([]*descriptor.Schema, 0, a.variants.Len())
	for _, t := range a.variants.list {
		of = append(of, refSchema(t))
	}
	s := &descriptor.Schema{Type: "array", Of: of, Validation: a.rules()}
	if len(a.b.options) > 0 {
		s.Options = copyMap(a.b.options)
	}
	return s
}

// Mock picks a length within the bounds (1..3 by default) and samples element i
// at path[i]; object-like elements get a generated _key.
func (a *ArrayType) Mock(path string) any {
	return mock.At(path, func(g *mock.Generator) any {
		if a.b.mockFn != nil {
			return a.b.mockFn(g, path)
		}
		if a.variants.Len() == 0 {
			return []any{}
		}
		lo, hi := a.mockBounds()
		n := g.Int(lo, hi)
		out := make([]any, 0, n)
		for i := 0; i < n; i++ {
			t := a.variants.list[g.Pick(a.variants.Len())]
			v := t.Mock(path + "[" + itoa(i) + "]")
			if v == nil || (a.b.unique && containsEqual(out, v)) {
				continue
			}
			if a.keyed() {
				if m, ok := v.(map[string]any); ok {
					m = copyMap(m)
					m["_key"] = g.Key()
					v = m
				}
			}
			out = append(out, v)
		}
		return out
	})
}

func (a *ArrayType) mockBounds() (int, int) {
	b := a.b
	if b.length >= 0 {
		return b.length, b.length
	}
	lo := 1
	switch {
	case b.min >= 0:
		lo = b.min
	case b.max >= 0 && b.max < lo:
		lo = b.max
	}
	if b.nonEmpty && lo < 1 {
		lo = 1
	}
	hi := lo + 2
	if b.max >= 0 && b.max < hi {
		hi = b.max
	}
	if hi < lo {
		hi = lo
	}
	return lo, hi
}

func containsEqual(items []any, v any) bool {
	for _, it := range items {
		if reflect.DeepEqual(withoutKey(it), v) {
			return true
		}
	}
	return false
}
