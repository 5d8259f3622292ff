// Package schemafile loads content types declared in YAML.
//
//	types:
//	  - name: post
//	    kind: document
//	    fields:
//	      - {name: title, type: string, min: 3}
//	      - {name: author, type: reference, to: [author]}
//	      - {name: body, type: array, of: [block, image]}
//	    preview:
//	      select: {title: title}
//
// Field types are the built-in names (boolean, string, text, url, email,
// number, date, datetime, slug, geopoint, block, image, file, array,
// reference, object) or the name of another declared type, which is embedded
// by name. Types may refer to each other in any order.
package schemafile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	sanity "github.com/saiichihashimoto/sanity-typed-schema-builder-sub000"
	"github.com/saiichihashimoto/sanity-typed-schema-builder-sub000/descriptor"
	"github.com/saiichihashimoto/sanity-typed-schema-builder-sub000/dsl"
)

// File is the root of a schema file.
type File struct {
	Types []TypeDef `yaml:"types"`
}

// TypeDef declares one named type.
type TypeDef struct {
	Name        string      `yaml:"name"`
	Kind        string      `yaml:"kind"` // "document" (default) or "object"
	Title       string      `yaml:"title,omitempty"`
	Description string      `yaml:"description,omitempty"`
	Fields      []FieldDef  `yaml:"fields"`
	Preview     *PreviewDef `yaml:"preview,omitempty"`
}

// FieldDef declares one field. Constraint keys apply to the types that know
// them; a key the field's type does not support is rejected, as is any key
// FieldDef does not declare.
type FieldDef struct {
	Name        string   `yaml:"name"`
	Type        string   `yaml:"type"`
	Optional    bool     `yaml:"optional,omitempty"`
	Title       string   `yaml:"title,omitempty"`
	Description string   `yaml:"description,omitempty"`
	Group       []string `yaml:"group,omitempty"`
	Fieldset    string   `yaml:"fieldset,omitempty"`
	Hidden      bool     `yaml:"hidden,omitempty"`

	Min       *float64 `yaml:"min,omitempty"`
	Max       *float64 `yaml:"max,omitempty"`
	Length    *int     `yaml:"length,omitempty"`
	Regex     string   `yaml:"regex,omitempty"`
	List      []string `yaml:"list,omitempty"`
	Rows      int      `yaml:"rows,omitempty"`
	Integer   bool     `yaml:"integer,omitempty"`
	Positive  bool     `yaml:"positive,omitempty"`
	Precision *int     `yaml:"precision,omitempty"`
	Unique    bool     `yaml:"unique,omitempty"`

	Of      []string   `yaml:"of,omitempty"`
	To      []string   `yaml:"to,omitempty"`
	Weak    bool       `yaml:"weak,omitempty"`
	Hotspot bool       `yaml:"hotspot,omitempty"`
	Source  string     `yaml:"source,omitempty"`
	Fields  []FieldDef `yaml:"fields,omitempty"` // inline object
}

// PreviewDef is the preview selection of a type.
type PreviewDef struct {
	Select map[string]string `yaml:"select"`
}

// Option configures Load and Parse.
type Option func(*loader)

// WithLogger reports progress through l.
func WithLogger(l zerolog.Logger) Option { return func(ld *loader) { ld.log = l } }

// Registry holds the loaded types in declaration order.
type Registry struct {
	order []string
	types map[string]sanity.Named
}

// Get returns the type declared as name.
func (r *Registry) Get(name string) (sanity.Named, bool) {
	t, ok := r.types[name]
	return t, ok
}

// Names lists the declared type names in order.
func (r *Registry) Names() []string { return append([]string(nil), r.order...) }

// Schemas returns every type descriptor in declaration order.
func (r *Registry) Schemas() []*descriptor.Schema {
	out := make([]*descriptor.Schema, 0, len(r.order))
	for _, n := range r.order {
		out = append(out, r.types[n].Schema())
	}
	return out
}

type loader struct {
	log   zerolog.Logger
	reg   *Registry
	decls map[string]TypeDef
}

// Load reads a schema file. Environment variables in the file are expanded.
func Load(path string, opts ...Option) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read schema: %w", err)
	}
	return Parse([]byte(os.ExpandEnv(string(data))), opts...)
}

// Parse builds the registry from YAML. Unknown keys are errors.
func Parse(data []byte, opts ...Option) (*Registry, error) {
	var f File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse schema: %w", err)
	}
	ld := &loader{
		log:   zerolog.Nop(),
		reg:   &Registry{types: map[string]sanity.Named{}},
		decls: map[string]TypeDef{},
	}
	for _, o := range opts {
		o(ld)
	}
	for _, td := range f.Types {
		if td.Name == "" {
			return nil, fmt.Errorf("validate schema: type without name")
		}
		if _, dup := ld.decls[td.Name]; dup {
			return nil, fmt.Errorf("validate schema: type %q declared twice", td.Name)
		}
		if builtin(td.Name) {
			return nil, fmt.Errorf("validate schema: type %q shadows a built-in type", td.Name)
		}
		ld.decls[td.Name] = td
		ld.reg.order = append(ld.reg.order, td.Name)
	}
	for _, name := range ld.reg.order {
		t, err := ld.buildType(ld.decls[name])
		if err != nil {
			return nil, fmt.Errorf("type %s: %w", name, err)
		}
		ld.reg.types[name] = t
		ld.log.Debug().Str("type", name).Int("fields", len(ld.decls[name].Fields)).Msg("schema type loaded")
	}
	ld.log.Info().Int("types", len(ld.reg.order)).Msg("schema loaded")
	return ld.reg, nil
}

func builtin(name string) bool {
	switch name {
	case "boolean", "string", "text", "url", "email", "number", "date", "datetime",
		"slug", "geopoint", "block", "image", "file", "array", "reference", "object", "document":
		return true
	}
	return false
}

func (ld *loader) buildType(td TypeDef) (sanity.Named, error) {
	fs, err := ld.fields(td.Fields)
	if err != nil {
		return nil, err
	}
	var preview *descriptor.Preview
	if td.Preview != nil {
		preview = &descriptor.Preview{Select: td.Preview.Select}
	}
	switch td.Kind {
	case "", "document":
		b := dsl.Document(td.Name).Fields(fs).Title(td.Title).Description(td.Description)
		if preview != nil {
			b = b.Preview(*preview)
		}
		t, err := b.Build()
		if err != nil {
			return nil, err
		}
		return t, nil
	case "object":
		b := dsl.ObjectNamed(td.Name).Fields(fs).Title(td.Title).Description(td.Description)
		if preview != nil {
			b = b.Preview(*preview)
		}
		t, err := b.Build()
		if err != nil {
			return nil, err
		}
		return t, nil
	}
	return nil, fmt.Errorf("unknown kind %q", td.Kind)
}

func (ld *loader) fields(defs []FieldDef) (dsl.Fields, error) {
	fs := dsl.NewFields()
	for _, fd := range defs {
		t, err := ld.fieldType(fd)
		if err != nil {
			return fs, fmt.Errorf("field %s: %w", fd.Name, err)
		}
		opts := []dsl.FieldOption{dsl.Title(fd.Title), dsl.Description(fd.Description), dsl.Fieldset(fd.Fieldset)}
		if fd.Optional {
			opts = append(opts, dsl.Optional())
		}
		if len(fd.Group) > 0 {
			opts = append(opts, dsl.Group(fd.Group...))
		}
		if fd.Hidden {
			opts = append(opts, dsl.Hidden())
		}
		fs = fs.Add(fd.Name, t, opts...)
	}
	return fs, fs.Err()
}

// named returns a by-name handle to a declared type.
func (ld *loader) named(name string) (sanity.Named, error) {
	if _, ok := ld.decls[name]; !ok {
		return nil, fmt.Errorf("unknown type %q", name)
	}
	return dsl.Lazy(name, func() sanity.Named { return ld.reg.types[name] }), nil
}

// constraintKeys lists the keys each built-in type accepts beyond the common
// name/type/optional/title/description/group/fieldset/hidden set. Declared
// type names accept none.
var constraintKeys = map[string][]string{
	"boolean":   nil,
	"string":    {"min", "max", "length", "regex", "list"},
	"text":      {"min", "max", "length", "regex", "list", "rows"},
	"url":       {"min", "max", "length", "regex", "list"},
	"email":     {"min", "max", "length", "regex", "list"},
	"number":    {"min", "max", "integer", "positive", "precision"},
	"date":      nil,
	"datetime":  nil,
	"slug":      {"source", "max"},
	"geopoint":  nil,
	"block":     nil,
	"image":     {"hotspot"},
	"file":      nil,
	"object":    {"fields"},
	"array":     {"of", "min", "max", "length", "unique"},
	"reference": {"to", "weak"},
}

// setKeys returns the constraint keys fd sets, in declaration order.
func (fd FieldDef) setKeys() []string {
	var keys []string
	add := func(set bool, key string) {
		if set {
			keys = append(keys, key)
		}
	}
	add(fd.Min != nil, "min")
	add(fd.Max != nil, "max")
	add(fd.Length != nil, "length")
	add(fd.Regex != "", "regex")
	add(len(fd.List) > 0, "list")
	add(fd.Rows != 0, "rows")
	add(fd.Integer, "integer")
	add(fd.Positive, "positive")
	add(fd.Precision != nil, "precision")
	add(fd.Unique, "unique")
	add(len(fd.Of) > 0, "of")
	add(len(fd.To) > 0, "to")
	add(fd.Weak, "weak")
	add(fd.Hotspot, "hotspot")
	add(fd.Source != "", "source")
	add(fd.Fields != nil, "fields")
	return keys
}

func checkKeys(fd FieldDef) error {
	allowed := constraintKeys[fd.Type]
	var bad []string
	for _, k := range fd.setKeys() {
		ok := false
		for _, a := range allowed {
			if a == k {
				ok = true
				break
			}
		}
		if !ok {
			bad = append(bad, k)
		}
	}
	if len(bad) > 0 {
		return fmt.Errorf("type %s does not support %s", fd.Type, strings.Join(bad, ", "))
	}
	return nil
}

func (ld *loader) fieldType(fd FieldDef) (sanity.Type, error) {
	if fd.Type != "" {
		if err := checkKeys(fd); err != nil {
			return nil, err
		}
	}
	switch fd.Type {
	case "boolean":
		return dsl.Boolean(), nil
	case "string", "text", "url", "email":
		return stringType(fd)
	case "number":
		return numberType(fd), nil
	case "date":
		return dsl.Date(), nil
	case "datetime":
		return dsl.Datetime(), nil
	case "slug":
		s := dsl.Slug().Source(fd.Source)
		if fd.Max != nil {
			s = s.MaxLength(int(*fd.Max))
		}
		return s, nil
	case "geopoint":
		return dsl.Geopoint(), nil
	case "block":
		return dsl.Block(), nil
	case "image":
		b := dsl.Image()
		if fd.Hotspot {
			b = b.Hotspot()
		}
		return built(b.Build())
	case "file":
		return built(dsl.File().Build())
	case "object":
		fs, err := ld.fields(fd.Fields)
		if err != nil {
			return nil, err
		}
		return built(dsl.Object().Fields(fs).Build())
	case "array":
		return ld.arrayType(fd)
	case "reference":
		if len(fd.To) == 0 {
			return nil, fmt.Errorf("reference needs at least one target in to")
		}
		b := dsl.Reference()
		for _, name := range fd.To {
			n, err := ld.named(name)
			if err != nil {
				return nil, err
			}
			b = b.To(n)
		}
		if fd.Weak {
			b = b.Weak()
		}
		return built(b.Build())
	case "":
		return nil, fmt.Errorf("missing type")
	}
	return ld.named(fd.Type)
}

func (ld *loader) arrayType(fd FieldDef) (sanity.Type, error) {
	b := dsl.Array()
	for _, name := range fd.Of {
		t, err := ld.fieldType(FieldDef{Name: fd.Name, Type: name})
		if err != nil {
			return nil, err
		}
		b = b.Of(t)
	}
	if fd.Min != nil {
		b = b.Min(int(*fd.Min))
	}
	if fd.Max != nil {
		b = b.Max(int(*fd.Max))
	}
	if fd.Length != nil {
		b = b.Length(*fd.Length)
	}
	if fd.Unique {
		b = b.Unique()
	}
	return built(b.Build())
}

// built drops typed nil results so callers never see a non-nil interface
// wrapping a nil pointer.
func built[T sanity.Type](t T, err error) (sanity.Type, error) {
	if err != nil {
		return nil, err
	}
	return t, nil
}

func stringType(fd FieldDef) (sanity.Type, error) {
	var s dsl.StringType
	switch fd.Type {
	case "text":
		s = dsl.Text().Rows(fd.Rows)
	case "url":
		s = dsl.URL()
	case "email":
		s = dsl.Email()
	default:
		s = dsl.String()
	}
	if fd.Min != nil {
		s = s.Min(int(*fd.Min))
	}
	if fd.Max != nil {
		s = s.Max(int(*fd.Max))
	}
	if fd.Length != nil {
		s = s.Length(*fd.Length)
	}
	if fd.Regex != "" {
		re, err := regexp.Compile(fd.Regex)
		if err != nil {
			return nil, fmt.Errorf("regex: %w", err)
		}
		s = s.Regex(re)
	}
	if len(fd.List) > 0 {
		s = s.List(fd.List...)
	}
	return s, nil
}

func numberType(fd FieldDef) dsl.NumberType {
	n := dsl.Number()
	if fd.Min != nil {
		n = n.Min(*fd.Min)
	}
	if fd.Max != nil {
		n = n.Max(*fd.Max)
	}
	if fd.Integer {
		n = n.Integer()
	}
	if fd.Positive {
		n = n.Positive()
	}
	if fd.Precision != nil {
		n = n.Precision(*fd.Precision)
	}
	return n
}
