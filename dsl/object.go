package dsl

import (
	"context"
	"errors"

	sanity "github.com/saiichihashimoto/sanity-typed-schema-builder-sub000"
	"github.com/saiichihashimoto/sanity-typed-schema-builder-sub000/descriptor"
	"github.com/saiichihashimoto/sanity-typed-schema-builder-sub000/mock"
)

type objectKind int

const (
	kindObject objectKind = iota
	kindNamedObject
	kindDocument
)

func (k objectKind) String() string {
	if k == kindDocument {
		return "document"
	}
	return "object"
}

// objectCore is the built form shared by object, named object and document.
type objectCore struct {
	kind        objectKind
	name        string
	fields      Fields
	title       string
	description string
	preview     *descriptor.Preview
	options     map[string]any
	mockFn      MockFunc
}

func (o objectCore) Parse(ctx context.Context, raw any) (any, error) {
	return o.fields.run(ctx, raw, parsePipe)
}

func (o objectCore) Resolve(ctx context.Context, raw any) (any, error) {
	return o.fields.run(ctx, raw, resolvePipe)
}

// Mock samples each field at its own child path; a custom mock replaces the
// whole record.
func (o objectCore) Mock(path string) any {
	if o.mockFn != nil {
		return mock.At(path, func(g *mock.Generator) any { return o.mockFn(g, path) })
	}
	return o.fields.mock(path)
}

func (o objectCore) Schema() *descriptor.Schema {
	s := &descriptor.Schema{
		Type:        o.kind.String(),
		Title:       o.title,
		Description: o.description,
		Fields:      o.fields.Schemas(),
		Preview:     o.previewSchema(),
	}
	if o.kind != kindObject {
		s.Name = o.name
	}
	if len(o.options) > 0 {
		s.Options = copyMap(o.options)
	}
	return s
}

// previewSchema defaults the selection to every declared field by its own name
// when only a prepare function was given.
func (o objectCore) previewSchema() *descriptor.Preview {
	if o.preview == nil {
		return nil
	}
	p := *o.preview
	if p.Prepare != nil && p.Select == nil {
		p.Select = make(map[string]string, o.fields.Len())
		for _, n := range o.fields.Names() {
			p.Select[n] = n
		}
		return &p
	}
	if p.Select != nil {
		sel := make(map[string]string, len(p.Select))
		for k, v := range p.Select {
			sel[k] = v
		}
		p.Select = sel
	}
	return &p
}

// Fields returns the declared fields, system fields excluded.
func (o objectCore) Fields() []Field { return o.fields.List() }

// ObjectType is an anonymous object.
type ObjectType struct{ objectCore }

// NamedObjectType is an object carrying a _type literal.
type NamedObjectType struct{ objectCore }

// Name returns the _type literal.
func (o *NamedObjectType) Name() string { return o.name }

// DocumentType is a top-level named type with system fields.
type DocumentType struct{ objectCore }

// Name returns the _type literal.
func (d *DocumentType) Name() string { return d.name }

// ObjectBuilder accumulates fields and metadata. It is a value: every method
// returns a modified copy and leaves the receiver usable.
type ObjectBuilder[T sanity.Type] struct {
	core   objectCore
	finish func(objectCore) T
}

// Object starts an anonymous object with the given fields.
func Object(fields ...Field) ObjectBuilder[*ObjectType] {
	return ObjectBuilder[*ObjectType]{
		core:   objectCore{kind: kindObject, fields: NewFields(fields...)},
		finish: func(c objectCore) *ObjectType { return &ObjectType{c} },
	}
}

// ObjectNamed starts an object whose raw values carry _type == name.
func ObjectNamed(name string) ObjectBuilder[*NamedObjectType] {
	fs := NewFields().addSystem("_type", literal(name))
	return ObjectBuilder[*NamedObjectType]{
		core:   objectCore{kind: kindNamedObject, name: name, fields: fs},
		finish: func(c objectCore) *NamedObjectType { return &NamedObjectType{c} },
	}
}

// Document starts a document type. Besides _type it carries _id, _rev,
// _createdAt and _updatedAt; the timestamps parse to time.Time.
func Document(name string) ObjectBuilder[*DocumentType] {
	fs := NewFields().
		addSystem("_id", String().WithMock(func(g *mock.Generator, _ string) any { return g.UUID() })).
		addSystem("_type", literal(name)).
		addSystem("_rev", String().WithMock(func(g *mock.Generator, _ string) any { return g.Key() })).
		addSystem("_createdAt", Datetime()).
		addSystem("_updatedAt", Datetime())
	return ObjectBuilder[*DocumentType]{
		core:   objectCore{kind: kindDocument, name: name, fields: fs},
		finish: func(c objectCore) *DocumentType { return &DocumentType{c} },
	}
}

// Field appends one field.
func (b ObjectBuilder[T]) Field(name string, t sanity.Type, opts ...FieldOption) ObjectBuilder[T] {
	b.core.fields = b.core.fields.Add(name, t, opts...)
	return b
}

// Fields appends every field of fs.
func (b ObjectBuilder[T]) Fields(fs Fields) ObjectBuilder[T] {
	b.core.fields = b.core.fields.Extend(fs)
	return b
}

func (b ObjectBuilder[T]) Title(s string) ObjectBuilder[T]       { b.core.title = s; return b }
func (b ObjectBuilder[T]) Description(s string) ObjectBuilder[T] { b.core.description = s; return b }

// Preview sets the list preview. With a Prepare and no Select, every declared
// field is selected under its own name.
func (b ObjectBuilder[T]) Preview(p descriptor.Preview) ObjectBuilder[T] {
	b.core.preview = &p
	return b
}

// Option sets one editor option exported under "options".
func (b ObjectBuilder[T]) Option(key string, v any) ObjectBuilder[T] {
	opts := make(map[string]any, len(b.core.options)+1)
	for k, ov := range b.core.options {
		opts[k] = ov
	}
	opts[key] = v
	b.core.options = opts
	return b
}

// WithMock replaces the generated record.
func (b ObjectBuilder[T]) WithMock(fn MockFunc) ObjectBuilder[T] { b.core.mockFn = fn; return b }

// Build returns the type or the first configuration error.
func (b ObjectBuilder[T]) Build() (T, error) {
	var zero T
	label := b.core.kind.String()
	if b.core.kind != kindObject {
		if b.core.name == "" {
			return zero, &sanity.ConfigError{Builder: label, Reason: "empty type name"}
		}
		label += ":" + b.core.name
	}
	if err := b.core.fields.Err(); err != nil {
		var ce *sanity.ConfigError
		if errors.As(err, &ce) {
			return zero, &sanity.ConfigError{Builder: label, Field: ce.Field, Reason: ce.Reason}
		}
		return zero, err
	}
	if p := b.core.preview; p != nil {
		for key, path := range p.Select {
			if path == "" {
				return zero, &sanity.ConfigError{Builder: label, Field: key, Reason: "empty preview selection"}
			}
		}
	}
	return b.finish(b.core), nil
}

// MustBuild is Build that panics on configuration errors.
func (b ObjectBuilder[T]) MustBuild() T {
	t, err := b.Build()
	if err != nil {
		panic(err)
	}
	return t
}

// literalType accepts exactly one string. It backs the _type system field.
type literalType struct{ value string }

func literal(v string) literalType { return literalType{value: v} }

func (l literalType) primitiveKind() string { return "string" }

func (l literalType) Parse(_ context.Context, raw any) (any, error) {
	s, ok := raw.(string)
	if !ok {
		return nil, invalidType("string")
	}
	if s != l.value {
		return nil, sanity.Fail(sanity.CodeInvalidLiteral, "expected "+l.value, "expected", l.value, "got", s)
	}
	return s, nil
}

func (l literalType) Resolve(ctx context.Context, raw any) (any, error) { return l.Parse(ctx, raw) }
func (l literalType) Mock(string) any                                   { return l.value }

func (l literalType) Schema() *descriptor.Schema {
	return &descriptor.Schema{Type: "string", Options: map[string]any{"list": []string{l.value}}}
}
