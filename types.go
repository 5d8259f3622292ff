package sanity

import (
	"context"

	"github.com/saiichihashimoto/sanity-typed-schema-builder-sub000/descriptor"
	"github.com/saiichihashimoto/sanity-typed-schema-builder-sub000/mock"
)

// Type is the atomic unit every builder produces. It bundles four pipelines that
// stay in sync: Parse (raw -> typed output), Resolve (raw -> dereferenced form),
// Mock (path -> raw sample) and Schema (the platform descriptor).
type Type interface {
	// Parse validates raw and converts it to the output representation. It
	// returns Issues on mismatch.
	Parse(ctx context.Context, raw any) (any, error)
	// Resolve converts raw to its display form. Unless a type overrides it, it
	// behaves like Parse.
	Resolve(ctx context.Context, raw any) (any, error)
	// Mock returns a structurally valid raw value. It is a pure function of path.
	Mock(path string) any
	// Schema returns a fresh descriptor; repeated calls are structurally equal.
	Schema() *descriptor.Schema
}

// Named is a Type carrying an immutable name. The name is the _type literal its
// parser checks and the key references and arrays use to target it.
type Named interface {
	Type
	Name() string
}

// TypeDef is the raw material for NewType.
type TypeDef struct {
	Parse   func(ctx context.Context, raw any) (any, error)
	Resolve func(ctx context.Context, raw any) (any, error) // nil: same as Parse
	Mock    func(g *mock.Generator, path string) any
	Schema  func() *descriptor.Schema
}

type typeNode struct {
	def TypeDef
}

// NewType assembles a Type from its pipelines. Mock is routed through the
// per-path generator cache. NewType panics with a *ConfigError when Parse, Mock
// or Schema is missing.
func NewType(def TypeDef) Type {
	switch {
	case def.Parse == nil:
		panic(&ConfigError{Builder: "type", Reason: "parse pipeline missing"})
	case def.Mock == nil:
		panic(&ConfigError{Builder: "type", Reason: "mock function missing"})
	case def.Schema == nil:
		panic(&ConfigError{Builder: "type", Reason: "schema function missing"})
	}
	return &typeNode{def: def}
}

func (t *typeNode) Parse(ctx context.Context, raw any) (any, error) { return t.def.Parse(ctx, raw) }

func (t *typeNode) Resolve(ctx context.Context, raw any) (any, error) {
	if t.def.Resolve == nil {
		return t.def.Parse(ctx, raw)
	}
	return t.def.Resolve(ctx, raw)
}

func (t *typeNode) Mock(path string) any {
	return mock.At(path, func(g *mock.Generator) any { return t.def.Mock(g, path) })
}

func (t *typeNode) Schema() *descriptor.Schema { return t.def.Schema() }

type namedNode struct {
	Type
	name string
}

func (n namedNode) Name() string { return n.name }

// NewNamed binds name to t.
func NewNamed(name string, t Type) Named { return namedNode{Type: t, name: name} }
