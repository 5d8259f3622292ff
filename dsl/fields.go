package dsl

import (
	"context"
	"slices"
	"sort"

	sanity "github.com/saiichihashimoto/sanity-typed-schema-builder-sub000"
	"github.com/saiichihashimoto/sanity-typed-schema-builder-sub000/descriptor"
	"github.com/saiichihashimoto/sanity-typed-schema-builder-sub000/i18n"
	"github.com/saiichihashimoto/sanity-typed-schema-builder-sub000/rule"
)

// Field is one named entry of an object-shaped type.
type Field struct {
	Name        string
	Type        sanity.Type
	Optional    bool
	Title       string
	Description string
	Group       []string
	Fieldset    string
	Hidden      bool
	// Validation customizes the platform rule after required-ness and the
	// type's own constraints were applied.
	Validation rule.Func

	// system fields (_type, _id, ...) are parsed and mocked but never described.
	system bool
}

// FieldOption configures a Field.
type FieldOption func(*Field)

// Optional lets the field be absent (or null).
func Optional() FieldOption { return func(f *Field) { f.Optional = true } }

func Title(s string) FieldOption       { return func(f *Field) { f.Title = s } }
func Description(s string) FieldOption { return func(f *Field) { f.Description = s } }
func Fieldset(s string) FieldOption    { return func(f *Field) { f.Fieldset = s } }
func Hidden() FieldOption              { return func(f *Field) { f.Hidden = true } }

// Group assigns the field to one or more editor groups.
func Group(names ...string) FieldOption {
	return func(f *Field) { f.Group = append([]string(nil), names...) }
}

// Validation attaches a per-field rule customizer.
func Validation(fn rule.Func) FieldOption { return func(f *Field) { f.Validation = fn } }

// Schema returns the field descriptor: the type's descriptor (or a by-name
// reference for named types) plus name, metadata and the composed rule
// required -> type constraints -> field customizer.
func (f Field) Schema() *descriptor.Schema {
	s := refSchema(f.Type)
	typeRules := s.Validation
	s.Name = f.Name
	s.Title = f.Title
	s.Description = f.Description
	s.Group = append([]string(nil), f.Group...)
	s.Fieldset = f.Fieldset
	s.Hidden = f.Hidden
	var head rule.Func
	if !f.Optional {
		head = rule.RequiredFunc
	}
	s.Validation = rule.Chain(head, typeRules, f.Validation)
	return s
}

// Fields is an ordered, persistent list of fields. Add returns a new Fields and
// never touches the receiver. Misuse (empty or duplicate names, nil types) is
// recorded and reported by Err.
type Fields struct {
	list []Field
	err  error
}

// NewFields starts an aggregator from fields.
func NewFields(fields ...Field) Fields {
	var out Fields
	for _, f := range fields {
		out = out.append(f)
	}
	return out
}

// Add appends a field built from name, t and opts.
func (fs Fields) Add(name string, t sanity.Type, opts ...FieldOption) Fields {
	f := Field{Name: name, Type: t}
	for _, o := range opts {
		if o != nil {
			o(&f)
		}
	}
	return fs.append(f)
}

// Extend appends every field of other, in order.
func (fs Fields) Extend(other Fields) Fields {
	out := fs
	for _, f := range other.list {
		out = out.append(f)
	}
	if out.err == nil {
		out.err = other.err
	}
	return out
}

func (fs Fields) addSystem(name string, t sanity.Type, opts ...FieldOption) Fields {
	f := Field{Name: name, Type: t, system: true}
	for _, o := range opts {
		o(&f)
	}
	return fs.append(f)
}

func (fs Fields) append(f Field) Fields {
	out := Fields{list: append(slices.Clip(fs.list), f), err: fs.err}
	if out.err != nil {
		return out
	}
	switch {
	case f.Name == "":
		out.err = &sanity.ConfigError{Builder: "fields", Reason: "empty field name"}
	case f.Type == nil:
		out.err = &sanity.ConfigError{Builder: "fields", Field: f.Name, Reason: "nil type"}
	case fs.Has(f.Name):
		out.err = &sanity.ConfigError{Builder: "fields", Field: f.Name, Reason: "duplicate field name"}
	}
	return out
}

// Err reports the first construction error.
func (fs Fields) Err() error { return fs.err }

// Len is the number of fields, system fields included.
func (fs Fields) Len() int { return len(fs.list) }

// Has reports whether a field named name exists.
func (fs Fields) Has(name string) bool {
	return slices.ContainsFunc(fs.list, func(f Field) bool { return f.Name == name })
}

// Names lists the declared (non-system) field names in order.
func (fs Fields) Names() []string {
	out := make([]string, 0, len(fs.list))
	for _, f := range fs.list {
		if !f.system {
			out = append(out, f.Name)
		}
	}
	return out
}

// List returns a copy of the declared fields.
func (fs Fields) List() []Field {
	out := make([]Field, 0, len(fs.list))
	for _, f := range fs.list {
		if !f.system {
			out = append(out, f)
		}
	}
	return out
}

// Schemas returns the declared field descriptors in order.
func (fs Fields) Schemas() []*descriptor.Schema {
	var out []*descriptor.Schema
	for _, f := range fs.list {
		if !f.system {
			out = append(out, f.Schema())
		}
	}
	return out
}

// run parses (or resolves) an exact-shape object. Issues come in field order,
// then unknown keys sorted by name.
func (fs Fields) run(ctx context.Context, raw any, pipe pipeline) (map[string]any, error) {
	src, ok := raw.(map[string]any)
	if !ok {
		return nil, invalidType("object")
	}
	out := make(map[string]any, len(fs.list))
	var iss sanity.Issues
	failFast := sanity.IsFailFast(ctx)
	for _, f := range fs.list {
		path := sanity.Root().Field(f.Name)
		val, present := src[f.Name]
		if !present || (val == nil && f.Optional) {
			if !f.Optional {
				iss = sanity.AppendIssues(iss, sanity.IssueAt(path, sanity.CodeRequired, "required property missing", nil))
				if failFast {
					return nil, iss
				}
			}
			continue
		}
		parsed, err := pipe(ctx, f.Type, val)
		if err != nil {
			iss = sanity.AppendIssues(iss, sanity.Rebase(path.Pointer(), err)...)
			if failFast {
				return nil, iss
			}
			continue
		}
		out[f.Name] = parsed
	}
	var unknown []string
	for k := range src {
		if !fs.Has(k) {
			unknown = append(unknown, k)
		}
	}
	sort.Strings(unknown)
	for _, k := range unknown {
		iss = sanity.AppendIssues(iss, sanity.Issue{Path: sanity.Root().Field(k).Pointer(), Code: sanity.CodeUnknownKey, Message: i18n.T(sanity.CodeUnknownKey, nil)})
	}
	if len(iss) > 0 {
		return nil, iss
	}
	return out, nil
}

// mock samples every field at path + "." + name. Optional fields whose mock
// yields nil (a recursion cut off by Lazy) are left out.
func (fs Fields) mock(path string) map[string]any {
	out := make(map[string]any, len(fs.list))
	for _, f := range fs.list {
		v := f.Type.Mock(path + "." + f.Name)
		if v == nil && f.Optional {
			continue
		}
		out[f.Name] = v
	}
	return out
}
