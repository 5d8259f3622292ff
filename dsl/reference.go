package dsl

import (
	"context"

	sanity "github.com/saiichihashimoto/sanity-typed-schema-builder-sub000"
	"github.com/saiichihashimoto/sanity-typed-schema-builder-sub000/descriptor"
	"github.com/saiichihashimoto/sanity-typed-schema-builder-sub000/mock"
)

// ReferenceBuilder configures a pointer to one or more named document types.
type ReferenceBuilder struct {
	to     []sanity.Named
	weak   bool
	mockFn MockFunc
}

// Reference starts a reference to the given targets.
func Reference(to ...sanity.Named) ReferenceBuilder {
	return ReferenceBuilder{to: append([]sanity.Named(nil), to...)}
}

// To appends targets.
func (b ReferenceBuilder) To(ts ...sanity.Named) ReferenceBuilder {
	b.to = append(append([]sanity.Named(nil), b.to...), ts...)
	return b
}

// Weak marks the reference weak: raw values carry _weak: true and the target
// may be missing.
func (b ReferenceBuilder) Weak() ReferenceBuilder { b.weak = true; return b }

// WithMock replaces the generated pointer.
func (b ReferenceBuilder) WithMock(fn MockFunc) ReferenceBuilder { b.mockFn = fn; return b }

// Build requires at least one target and distinct target names.
func (b ReferenceBuilder) Build() (*ReferenceType, error) {
	if len(b.to) == 0 {
		return nil, &sanity.ConfigError{Builder: "reference", Reason: "no target types"}
	}
	targets := make(map[string]sanity.Named, len(b.to))
	for i, t := range b.to {
		if t == nil || t.Name() == "" {
			return nil, &sanity.ConfigError{Builder: "reference", Field: itoa(i), Reason: "target must be a named type"}
		}
		if _, dup := targets[t.Name()]; dup {
			return nil, &sanity.ConfigError{Builder: "reference", Field: t.Name(), Reason: "duplicate target"}
		}
		targets[t.Name()] = t
	}
	fs := NewFields().
		addSystem("_type", literal("reference")).
		addSystem("_ref", String().Min(1)).
		addSystem("_weak", Boolean(), Optional()).
		addSystem("_strengthenOnPublish", strengthenOnPublish, Optional())
	return &ReferenceType{b: b, targets: targets, fields: fs}, nil
}

// MustBuild is Build that panics on configuration errors.
func (b ReferenceBuilder) MustBuild() *ReferenceType {
	t, err := b.Build()
	if err != nil {
		panic(err)
	}
	return t
}

var strengthenOnPublish = Object().
	Field("type", String()).
	Field("weak", Boolean(), Optional()).
	Field("template", passthrough{}, Optional()).
	MustBuild()

// ReferenceType parses {_type: "reference", _ref, _weak?, _strengthenOnPublish?}.
type ReferenceType struct {
	b       ReferenceBuilder
	targets map[string]sanity.Named
	fields  Fields
}

func (*ReferenceType) Tag() string { return "reference" }

// Targets lists the target type names in declaration order.
func (r *ReferenceType) Targets() []string {
	out := make([]string, 0, len(r.b.to))
	for _, t := range r.b.to {
		out = append(out, t.Name())
	}
	return out
}

func (r *ReferenceType) Parse(ctx context.Context, raw any) (any, error) {
	out, err := r.fields.run(ctx, raw, parsePipe)
	if err != nil {
		return nil, err
	}
	if r.b.weak && out["_weak"] != true {
		return nil, sanity.Issues{sanity.Root().Field("_weak").Issue(sanity.CodeInvalidLiteral, "weak references carry _weak: true", "expected", true)}
	}
	return out, nil
}

// Resolve looks the target document up through the Lookup in ctx and resolves
// it with the target type matching its _type. A missing document resolves to
// nil. A reference back to a document already being resolved is returned as
// parsed.
func (r *ReferenceType) Resolve(ctx context.Context, raw any) (any, error) {
	v, err := r.Parse(ctx, raw)
	if err != nil {
		return nil, err
	}
	id := v.(map[string]any)["_ref"].(string)
	if sanity.IsResolving(ctx, id) {
		return v, nil
	}
	l, ok := sanity.LookupFrom(ctx)
	if !ok {
		return nil, sanity.Issues{sanity.Root().Field("_ref").Issue(sanity.CodeDependencyUnavailable, "no document lookup in context")}
	}
	doc, err := l.Lookup(ctx, id)
	if err != nil {
		is := sanity.Root().Field("_ref").Issue(sanity.CodeDependencyUnavailable, err.Error(), "id", id)
		is.Cause = err
		return nil, sanity.Issues{is}
	}
	if doc == nil {
		return nil, nil
	}
	tag, _ := doc["_type"].(string)
	target, ok := r.targets[tag]
	if !ok {
		return nil, sanity.Issues{sanity.Root().Field("_ref").Issue(sanity.CodeDiscriminatorUnknown, "referenced document has unexpected _type '"+tag+"'", "id", id, "got", tag)}
	}
	out, err := target.Resolve(sanity.WithResolving(ctx, id), doc)
	if err != nil {
		return nil, sanity.Rebase("/_ref", err)
	}
	return out, nil
}

func (r *ReferenceType) Mock(path string) any {
	return mock.At(path, func(g *mock.Generator) any {
		if r.b.mockFn != nil {
			return r.b.mockFn(g, path)
		}
		out := map[string]any{"_type": "reference", "_ref": g.UUID()}
		if r.b.weak {
			out["_weak"] = true
		}
		return out
	})
}

func (r *ReferenceType) Schema() *descriptor.Schema {
	to := make([]*descriptor.Schema, 0, len(r.b.to))
	for _, t := range r.b.to {
		to = append(to, descriptor.Ref(t.Name()))
	}
	return &descriptor.Schema{Type: "reference", To: to, Weak: r.b.weak}
}

// passthrough accepts any object unchanged.
type passthrough struct{}

func (passthrough) Parse(_ context.Context, raw any) (any, error) {
	m, ok := raw.(map[string]any)
	if !ok {
		return nil, invalidType("object")
	}
	return copyMap(m), nil
}

func (p passthrough) Resolve(ctx context.Context, raw any) (any, error) { return p.Parse(ctx, raw) }
func (passthrough) Mock(string) any                                    { return map[string]any{} }
func (passthrough) Schema() *descriptor.Schema                         { return &descriptor.Schema{Type: "object"} }
