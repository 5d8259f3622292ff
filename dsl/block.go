package dsl

import (
	"context"
	"strings"

	"github.com/saiichihashimoto/sanity-typed-schema-builder-sub000/descriptor"
	"github.com/saiichihashimoto/sanity-typed-schema-builder-sub000/mock"
)

var (
	defaultBlockStyles = []string{"normal", "h1", "h2", "h3", "h4", "h5", "h6", "blockquote"}
	defaultBlockLists  = []string{"bullet", "number"}
)

// BlockType parses one portable-text block:
// {_type: "block", style?, listItem?, level?, markDefs?, children: [span...]}.
type BlockType struct {
	styles []string
	lists  []string
	obj    *NamedObjectType
	mockFn MockFunc
}

// Block returns a block with the platform's default styles and lists.
func Block() BlockType {
	b := BlockType{styles: defaultBlockStyles, lists: defaultBlockLists}
	b.obj = b.inner()
	return b
}

// Styles replaces the allowed styles.
func (b BlockType) Styles(values ...string) BlockType {
	b.styles = append([]string(nil), values...)
	b.obj = b.inner()
	return b
}

// Lists replaces the allowed list kinds.
func (b BlockType) Lists(values ...string) BlockType {
	b.lists = append([]string(nil), values...)
	b.obj = b.inner()
	return b
}

// WithMock replaces the generated block.
func (b BlockType) WithMock(fn MockFunc) BlockType { b.mockFn = fn; return b }

func (BlockType) Tag() string { return "block" }

func (b BlockType) inner() *NamedObjectType {
	span := ObjectNamed("span").
		Field("text", String().WithMock(func(g *mock.Generator, _ string) any { return g.Sentence() })).
		Field("marks", Array(String()).WithMock(emptyList).MustBuild(), Optional()).
		MustBuild()
	o := ObjectNamed("block").
		Field("children", Array(span).NonEmpty().MustBuild()).
		Field("markDefs", Array(passthrough{}).WithMock(emptyList).MustBuild(), Optional()).
		Field("style", String().List(b.styles...), Optional())
	if len(b.lists) > 0 {
		o = o.Field("listItem", String().List(b.lists...), Optional()).
			Field("level", Number().Integer().Min(1).Max(3), Optional())
	}
	return o.MustBuild()
}

func (b BlockType) Parse(ctx context.Context, raw any) (any, error) {
	return b.obj.Parse(ctx, raw)
}

func (b BlockType) Resolve(ctx context.Context, raw any) (any, error) {
	return b.obj.Resolve(ctx, raw)
}

func (b BlockType) Mock(path string) any {
	if b.mockFn != nil {
		return mockAt(path, b.mockFn, nil)
	}
	return b.obj.Mock(path)
}

func (b BlockType) Schema() *descriptor.Schema {
	return &descriptor.Schema{Type: "block", Styles: choices(b.styles), Lists: choices(b.lists)}
}

func emptyList(*mock.Generator, string) any { return []any{} }

func choices(values []string) []descriptor.Choice {
	out := make([]descriptor.Choice, 0, len(values))
	for _, v := range values {
		out = append(out, descriptor.Choice{Title: titleCase(v), Value: v})
	}
	return out
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
