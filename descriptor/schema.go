// Package descriptor holds the declarative schema tree handed to the external
// content platform. Keep this struct small and extend incrementally.
package descriptor

import (
	"github.com/saiichihashimoto/sanity-typed-schema-builder-sub000/rule"
)

// Schema is one node of the platform-facing descriptor tree.
type Schema struct {
	// Core
	Name        string   `json:"name,omitempty" yaml:"name,omitempty"`
	Type        string   `json:"type" yaml:"type"`
	Title       string   `json:"title,omitempty" yaml:"title,omitempty"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	Group       []string `json:"group,omitempty" yaml:"group,omitempty"`
	Fieldset    string   `json:"fieldset,omitempty" yaml:"fieldset,omitempty"`
	Hidden      bool     `json:"hidden,omitempty" yaml:"hidden,omitempty"`

	// Object / document
	Fields []*Schema `json:"fields,omitempty" yaml:"fields,omitempty"`

	// Array
	Of []*Schema `json:"of,omitempty" yaml:"of,omitempty"`

	// Reference
	To   []*Schema `json:"to,omitempty" yaml:"to,omitempty"`
	Weak bool      `json:"weak,omitempty" yaml:"weak,omitempty"`

	// Text
	Rows int `json:"rows,omitempty" yaml:"rows,omitempty"`

	// Block
	Styles []Choice `json:"styles,omitempty" yaml:"styles,omitempty"`
	Lists  []Choice `json:"lists,omitempty" yaml:"lists,omitempty"`

	Options map[string]any `json:"options,omitempty" yaml:"options,omitempty"`
	Preview *Preview       `json:"preview,omitempty" yaml:"preview,omitempty"`

	// Validation is an opaque rule builder; it is never serialized.
	Validation rule.Func `json:"-" yaml:"-"`
}

// Choice is one selectable entry of a block's styles or lists.
type Choice struct {
	Title string `json:"title" yaml:"title"`
	Value string `json:"value" yaml:"value"`
}

// Ref returns the short form used inside "of"/"to" for named types.
func Ref(name string) *Schema { return &Schema{Type: name} }

// Clone returns a deep copy of the node and its children. Options are copied
// one level deep.
func (s *Schema) Clone() *Schema {
	if s == nil {
		return nil
	}
	out := *s
	out.Group = append([]string(nil), s.Group...)
	out.Styles = append([]Choice(nil), s.Styles...)
	out.Lists = append([]Choice(nil), s.Lists...)
	out.Fields = cloneAll(s.Fields)
	out.Of = cloneAll(s.Of)
	out.To = cloneAll(s.To)
	if s.Options != nil {
		out.Options = make(map[string]any, len(s.Options))
		for k, v := range s.Options {
			out.Options[k] = v
		}
	}
	if s.Preview != nil {
		p := *s.Preview
		if s.Preview.Select != nil {
			p.Select = make(map[string]string, len(s.Preview.Select))
			for k, v := range s.Preview.Select {
				p.Select[k] = v
			}
		}
		out.Preview = &p
	}
	return &out
}

func cloneAll(in []*Schema) []*Schema {
	if in == nil {
		return nil
	}
	out := make([]*Schema, len(in))
	for i, s := range in {
		out[i] = s.Clone()
	}
	return out
}

// FieldNames lists the names of the direct fields in declaration order.
func (s *Schema) FieldNames() []string {
	if s == nil {
		return nil
	}
	out := make([]string, 0, len(s.Fields))
	for _, f := range s.Fields {
		out = append(out, f.Name)
	}
	return out
}

// Field returns the direct field with the given name, or nil.
func (s *Schema) Field(name string) *Schema {
	if s == nil {
		return nil
	}
	for _, f := range s.Fields {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// Rules evaluates the validation func on a fresh rule.
func (s *Schema) Rules() *rule.Rule { return rule.Run(s.Validation) }
