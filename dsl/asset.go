package dsl

import (
	"context"
	"errors"
	"sort"

	sanity "github.com/saiichihashimoto/sanity-typed-schema-builder-sub000"
	"github.com/saiichihashimoto/sanity-typed-schema-builder-sub000/descriptor"
	"github.com/saiichihashimoto/sanity-typed-schema-builder-sub000/mock"
)

// Geometry objects attached to hotspot-enabled images.
var (
	imageCrop = ObjectNamed("sanity.imageCrop").
			Field("top", unit()).
			Field("bottom", unit()).
			Field("left", unit()).
			Field("right", unit()).
			MustBuild()
	imageHotspot = ObjectNamed("sanity.imageHotspot").
			Field("x", unit()).
			Field("y", unit()).
			Field("height", unit()).
			Field("width", unit()).
			MustBuild()
)

func unit() NumberType { return Number().Min(0).Max(1) }

// AssetBuilder configures an image or file field.
type AssetBuilder struct {
	tag     string
	hotspot bool
	fields  Fields
	options map[string]any
	mockFn  MockFunc
}

// Image starts an image: {_type: "image", asset, crop?, hotspot?, ...fields}.
func Image() AssetBuilder { return AssetBuilder{tag: "image"} }

// File starts a file: {_type: "file", asset, ...fields}.
func File() AssetBuilder { return AssetBuilder{tag: "file"} }

// Hotspot enables the optional crop and hotspot geometry (images only).
func (b AssetBuilder) Hotspot() AssetBuilder { b.hotspot = true; return b }

// Field adds an extra field stored next to the asset.
func (b AssetBuilder) Field(name string, t sanity.Type, opts ...FieldOption) AssetBuilder {
	b.fields = b.fields.Add(name, t, opts...)
	return b
}

// Accept restricts the accepted MIME types (options.accept).
func (b AssetBuilder) Accept(mime string) AssetBuilder { return b.Option("accept", mime) }

// Option sets one editor option exported under "options".
func (b AssetBuilder) Option(key string, v any) AssetBuilder {
	opts := make(map[string]any, len(b.options)+1)
	for k, ov := range b.options {
		opts[k] = ov
	}
	opts[key] = v
	b.options = opts
	return b
}

// WithMock replaces the generated value.
func (b AssetBuilder) WithMock(fn MockFunc) AssetBuilder { b.mockFn = fn; return b }

func (b AssetBuilder) Build() (*AssetType, error) {
	if b.hotspot && b.tag != "image" {
		return nil, &sanity.ConfigError{Builder: b.tag, Reason: "hotspot is only available on images"}
	}
	fs := NewFields().
		addSystem("_type", literal(b.tag)).
		addSystem("asset", assetRef{kind: b.tag})
	if b.hotspot {
		fs = fs.addSystem("crop", imageCrop, Optional()).addSystem("hotspot", imageHotspot, Optional())
	}
	fs = fs.Extend(b.fields)
	if err := fs.Err(); err != nil {
		var ce *sanity.ConfigError
		if errors.As(err, &ce) {
			return nil, &sanity.ConfigError{Builder: b.tag, Field: ce.Field, Reason: ce.Reason}
		}
		return nil, err
	}
	return &AssetType{b: b, fields: fs}, nil
}

// MustBuild is Build that panics on configuration errors.
func (b AssetBuilder) MustBuild() *AssetType {
	t, err := b.Build()
	if err != nil {
		panic(err)
	}
	return t
}

// AssetType is a built image or file.
type AssetType struct {
	b      AssetBuilder
	fields Fields
}

func (a *AssetType) Tag() string { return a.b.tag }

func (a *AssetType) Parse(ctx context.Context, raw any) (any, error) {
	return a.fields.run(ctx, raw, parsePipe)
}

func (a *AssetType) Resolve(ctx context.Context, raw any) (any, error) {
	return a.fields.run(ctx, raw, resolvePipe)
}

func (a *AssetType) Mock(path string) any {
	if a.b.mockFn != nil {
		return mock.At(path, func(g *mock.Generator) any { return a.b.mockFn(g, path) })
	}
	return a.fields.mock(path)
}

func (a *AssetType) Schema() *descriptor.Schema {
	s := &descriptor.Schema{Type: a.b.tag, Fields: a.fields.Schemas()}
	opts := copyMap(a.b.options)
	if a.b.hotspot {
		opts["hotspot"] = true
	}
	if len(opts) > 0 {
		s.Options = opts
	}
	return s
}

// assetRef is the pointer to the stored asset document,
// {_type: "reference", _ref: "image-<id>-<w>x<h>-<ext>"}.
type assetRef struct{ kind string }

func (r assetRef) Parse(_ context.Context, raw any) (any, error) {
	m, ok := raw.(map[string]any)
	if !ok {
		return nil, invalidType("object")
	}
	var iss sanity.Issues
	if t, _ := m["_type"].(string); t != "reference" {
		iss = sanity.AppendIssues(iss, sanity.Root().Field("_type").Issue(sanity.CodeInvalidLiteral, "expected reference", "expected", "reference"))
	}
	if ref, _ := m["_ref"].(string); ref == "" {
		iss = sanity.AppendIssues(iss, sanity.Root().Field("_ref").Issue(sanity.CodeRequired, "asset _ref missing"))
	}
	var extra []string
	for k := range m {
		if k != "_type" && k != "_ref" && k != "_weak" {
			extra = append(extra, k)
		}
	}
	sort.Strings(extra)
	for _, k := range extra {
		iss = sanity.AppendIssues(iss, sanity.Root().Field(k).Issue(sanity.CodeUnknownKey, ""))
	}
	if len(iss) > 0 {
		return nil, iss
	}
	return copyMap(m), nil
}

func (r assetRef) Resolve(ctx context.Context, raw any) (any, error) { return r.Parse(ctx, raw) }

func (r assetRef) Mock(path string) any {
	return mock.At(path, func(g *mock.Generator) any {
		id := g.Key() + g.Key()
		ref := r.kind + "-" + id
		if r.kind == "image" {
			ref += "-" + itoa(g.Int(1, 40)*100) + "x" + itoa(g.Int(1, 40)*100) + "-jpg"
		} else {
			ref += "-pdf"
		}
		return map[string]any{"_type": "reference", "_ref": ref}
	})
}

func (r assetRef) Schema() *descriptor.Schema {
	return &descriptor.Schema{Type: "reference", To: []*descriptor.Schema{descriptor.Ref("sanity." + r.kind + "Asset")}}
}
