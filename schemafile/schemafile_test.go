package schemafile_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	sanity "github.com/saiichihashimoto/sanity-typed-schema-builder-sub000"
	"github.com/saiichihashimoto/sanity-typed-schema-builder-sub000/schemafile"
)

func load(t *testing.T) *schemafile.Registry {
	t.Helper()
	reg, err := schemafile.Load("testdata/blog.yaml")
	require.NoError(t, err)
	return reg
}

func TestLoad_Blog(t *testing.T) {
	reg := load(t)
	require.Equal(t, []string{"post", "author", "callout"}, reg.Names())

	post, ok := reg.Get("post")
	require.True(t, ok)
	s := post.Schema()
	require.Equal(t, "document", s.Type)
	require.Equal(t, "Blog post", s.Title)
	require.Equal(t, []string{"title", "slug", "status", "rating", "author", "tags", "body", "cover", "seo"}, s.FieldNames())
	require.Equal(t, "author", s.Field("author").To[0].Type)
	require.Equal(t, "callout", s.Field("body").Of[2].Type)
	require.Equal(t, map[string]string{"title": "title", "subtitle": "status"}, s.Preview.Select)

	require.True(t, s.Field("title").Rules().Has("required"))
	require.False(t, s.Field("rating").Rules().Has("required"))

	callout, _ := reg.Get("callout")
	require.Equal(t, "object", callout.Schema().Type)
	require.Len(t, reg.Schemas(), 3)
}

func TestLoad_MockParses(t *testing.T) {
	ctx := context.Background()
	reg := load(t)
	for _, name := range reg.Names() {
		typ, _ := reg.Get(name)
		for _, p := range []string{"", name} {
			raw := typ.Mock(p)
			_, err := typ.Parse(ctx, raw)
			require.NoError(t, err, "%s mock at %q: %v", name, p, raw)
		}
	}
}

func TestLoad_ResolveReferences(t *testing.T) {
	reg := load(t)
	author, _ := reg.Get("author")

	ada := author.Mock("ada").(map[string]any)
	ada["_id"] = "ada"
	delete(ada, "mentor")
	ctx := sanity.WithLookup(context.Background(), sanity.DocumentMap{}.Add(ada))

	post, _ := reg.Get("post")
	raw := post.Mock("").(map[string]any)
	raw["author"] = map[string]any{"_type": "reference", "_ref": "ada"}
	out, err := post.Resolve(ctx, raw)
	require.NoError(t, err)
	require.Equal(t, ada["name"], out.(map[string]any)["author"].(map[string]any)["name"])
	// slugs resolve to their current value
	require.IsType(t, "", out.(map[string]any)["slug"])
}

func TestParse_Errors(t *testing.T) {
	cases := map[string]string{
		"bad yaml":        "types: [",
		"unnamed":         "types: [{kind: document}]",
		"duplicate":       "types: [{name: a}, {name: a}]",
		"builtin":         "types: [{name: string}]",
		"unknown kind":    "types: [{name: a, kind: page}]",
		"unknown ref":     "types: [{name: a, fields: [{name: r, type: reference, to: [nope]}]}]",
		"no targets":      "types: [{name: a, fields: [{name: r, type: reference}]}]",
		"unknown type":    "types: [{name: a, fields: [{name: r, type: nope}]}]",
		"missing type":    "types: [{name: a, fields: [{name: r}]}]",
		"duplicate field": "types: [{name: a, fields: [{name: r, type: string}, {name: r, type: number}]}]",
		"bad regex":       "types: [{name: a, fields: [{name: r, type: string, regex: '('}]}]",
		"mixed array":     "types: [{name: a, kind: object}, {name: b, fields: [{name: r, type: array, of: [string, a]}]}]",
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := schemafile.Parse([]byte(src))
			require.Error(t, err)
		})
	}
}

func TestParse_RejectsUnsupportedKeys(t *testing.T) {
	cases := map[string]struct {
		src  string
		want string
	}{
		"misspelled key": {
			src:  "types: [{name: a, fields: [{name: r, type: string, optinal: true}]}]",
			want: "optinal",
		},
		"unknown type key": {
			src:  "types: [{name: a, kind: document, titel: A}]",
			want: "titel",
		},
		"min on boolean": {
			src:  "types: [{name: a, fields: [{name: r, type: boolean, min: 3}]}]",
			want: "type boolean does not support min",
		},
		"regex on number": {
			src:  "types: [{name: a, fields: [{name: r, type: number, regex: '^a$'}]}]",
			want: "type number does not support regex",
		},
		"of on string": {
			src:  "types: [{name: a, fields: [{name: r, type: string, of: [string], unique: true}]}]",
			want: "type string does not support unique, of",
		},
		"constraint on declared type": {
			src:  "types: [{name: b, kind: object}, {name: a, fields: [{name: r, type: b, max: 2}]}]",
			want: "type b does not support max",
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := schemafile.Parse([]byte(tc.src))
			require.ErrorContains(t, err, tc.want)
		})
	}

	reg, err := schemafile.Parse([]byte("types: [{name: a, fields: [{name: r, type: text, rows: 4, max: 10, optional: true}]}]"))
	require.NoError(t, err)
	require.Equal(t, []string{"a"}, reg.Names())

	_, err = schemafile.Parse(nil)
	require.NoError(t, err)
}

func TestParse_Logger(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)
	_, err := schemafile.Parse([]byte("types: [{name: a, fields: [{name: t, type: string}]}]"), schemafile.WithLogger(logger))
	require.NoError(t, err)
	require.Contains(t, buf.String(), `"type":"a"`)
	require.Contains(t, buf.String(), "schema loaded")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := schemafile.Load("testdata/nope.yaml")
	require.Error(t, err)
}
