package dsl

import (
	"strings"

	sanity "github.com/saiichihashimoto/sanity-typed-schema-builder-sub000"
)

// variantSet is an ordered list of item types with a discriminant -> type map
// built once. Dispatch never trial-parses: the raw value's discriminant picks
// exactly one variant.
type variantSet struct {
	list      []sanity.Type
	byTag     map[string]sanity.Type
	primitive bool
}

// newVariantSet validates ts for use as union members. With two or more
// variants every member needs a distinct discriminant, and primitives cannot
// be mixed with object-like types.
func newVariantSet(builder string, ts []sanity.Type) (variantSet, error) {
	vs := variantSet{list: append([]sanity.Type(nil), ts...), byTag: make(map[string]sanity.Type, len(ts))}
	prims := 0
	for i, t := range ts {
		if t == nil {
			return variantSet{}, &sanity.ConfigError{Builder: builder, Field: itoa(i), Reason: "nil variant"}
		}
		if isPrimitive(t) {
			prims++
		}
		tag := tagOf(t)
		if len(ts) < 2 {
			vs.byTag[tag] = t
			continue
		}
		if tag == "" {
			return variantSet{}, &sanity.ConfigError{Builder: builder, Field: itoa(i), Reason: "union member has no discriminant; use a named type"}
		}
		if _, dup := vs.byTag[tag]; dup {
			return variantSet{}, &sanity.ConfigError{Builder: builder, Field: tag, Reason: "duplicate discriminant"}
		}
		vs.byTag[tag] = t
	}
	if prims > 0 && prims < len(ts) {
		return variantSet{}, &sanity.ConfigError{Builder: builder, Reason: "cannot mix primitive and object-like members"}
	}
	vs.primitive = len(ts) > 0 && prims == len(ts)
	return vs, nil
}

func (vs variantSet) Len() int { return len(vs.list) }

// tags lists the discriminants in declaration order.
func (vs variantSet) tags() []string {
	out := make([]string, 0, len(vs.list))
	for _, t := range vs.list {
		out = append(out, tagOf(t))
	}
	return out
}

// pick selects the variant for raw. The error is rooted at raw's own path.
func (vs variantSet) pick(raw any) (sanity.Type, error) {
	switch len(vs.list) {
	case 0:
		return nil, sanity.Fail(sanity.CodeInvalidType, "no item types declared")
	case 1:
		return vs.list[0], nil
	}
	if vs.primitive {
		kind := jsonKind(raw)
		t, ok := vs.byTag[kind]
		if !ok {
			return nil, invalidType(strings.Join(vs.tags(), "|"))
		}
		return t, nil
	}
	m, ok := raw.(map[string]any)
	if !ok {
		return nil, invalidType("object")
	}
	tag, _ := m["_type"].(string)
	if tag == "" {
		return nil, sanity.Issues{sanity.Root().Field("_type").Issue(sanity.CodeDiscriminatorMissing, "discriminator missing")}
	}
	t, ok := vs.byTag[tag]
	if !ok {
		return nil, sanity.Issues{sanity.Root().Field("_type").Issue(sanity.CodeDiscriminatorUnknown, "unknown variant: '"+tag+"'", "got", tag, "expected", vs.tags())}
	}
	return t, nil
}
