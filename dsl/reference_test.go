package dsl_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	sanity "github.com/saiichihashimoto/sanity-typed-schema-builder-sub000"
	"github.com/saiichihashimoto/sanity-typed-schema-builder-sub000/dsl"
)

func refFixtures(t *testing.T) (*dsl.DocumentType, *dsl.DocumentType, *dsl.ReferenceType) {
	t.Helper()
	author := dsl.Document("author").Field("name", dsl.String()).MustBuild()
	team := dsl.Document("team").Field("slug", dsl.Slug()).MustBuild()
	ref, err := dsl.Reference(author, team).Build()
	require.NoError(t, err)
	return author, team, ref
}

func TestReference_Parse(t *testing.T) {
	ctx := context.Background()
	_, _, ref := refFixtures(t)

	out, err := ref.Parse(ctx, map[string]any{"_type": "reference", "_ref": "a1"})
	require.NoError(t, err)
	require.Equal(t, map[string]any{"_type": "reference", "_ref": "a1"}, out)

	_, err = ref.Parse(ctx, map[string]any{"_type": "reference", "_ref": "a1", "_strengthenOnPublish": map[string]any{"type": "author"}})
	require.NoError(t, err)

	_, err = ref.Parse(ctx, map[string]any{"_type": "reference"})
	iss := firstIssue(t, err)
	require.Equal(t, "/_ref", iss.Path)
	require.Equal(t, sanity.CodeRequired, iss.Code)

	_, err = ref.Parse(ctx, map[string]any{"_type": "ref", "_ref": "a1"})
	require.Equal(t, sanity.CodeInvalidLiteral, firstIssue(t, err).Code)
}

func TestReference_Resolve(t *testing.T) {
	author, _, ref := refFixtures(t)
	docs := sanity.DocumentMap{}.Add(
		map[string]any{"_id": "a1", "_type": "author", "_rev": "r", "_createdAt": "2024-01-01T00:00:00Z", "_updatedAt": "2024-01-01T00:00:00Z", "name": "Ada"},
		map[string]any{"_id": "t1", "_type": "team", "_rev": "r", "_createdAt": "2024-01-01T00:00:00Z", "_updatedAt": "2024-01-01T00:00:00Z", "slug": map[string]any{"_type": "slug", "current": "core"}},
		map[string]any{"_id": "x1", "_type": "other"},
	)
	ctx := sanity.WithLookup(context.Background(), docs)

	out, err := ref.Resolve(ctx, map[string]any{"_type": "reference", "_ref": "a1"})
	require.NoError(t, err)
	require.Equal(t, "Ada", out.(map[string]any)["name"])

	// the target's own resolver runs: the slug unwraps
	out, err = ref.Resolve(ctx, map[string]any{"_type": "reference", "_ref": "t1"})
	require.NoError(t, err)
	require.Equal(t, "core", out.(map[string]any)["slug"])

	out, err = ref.Resolve(ctx, map[string]any{"_type": "reference", "_ref": "missing"})
	require.NoError(t, err)
	require.Nil(t, out)

	_, err = ref.Resolve(ctx, map[string]any{"_type": "reference", "_ref": "x1"})
	require.Equal(t, sanity.CodeDiscriminatorUnknown, firstIssue(t, err).Code)

	// a document field holding the reference resolves through it
	book := dsl.Document("book").Field("author", dsl.Reference(author).MustBuild()).MustBuild()
	raw := book.Mock("")
	raw.(map[string]any)["author"] = map[string]any{"_type": "reference", "_ref": "a1"}
	out, err = book.Resolve(ctx, raw)
	require.NoError(t, err)
	require.Equal(t, "Ada", out.(map[string]any)["author"].(map[string]any)["name"])
}

func TestReference_ResolveCycles(t *testing.T) {
	var author *dsl.DocumentType
	lazy := dsl.Lazy("author", func() sanity.Named { return author })
	author = dsl.Document("author").
		Field("name", dsl.String()).
		Field("mentor", dsl.Reference(lazy).Weak().MustBuild(), dsl.Optional()).
		MustBuild()

	doc := func(id, name, mentor string) map[string]any {
		return map[string]any{
			"_id": id, "_type": "author", "_rev": "r",
			"_createdAt": "2024-01-01T00:00:00Z", "_updatedAt": "2024-01-01T00:00:00Z",
			"name":   name,
			"mentor": map[string]any{"_type": "reference", "_ref": mentor, "_weak": true},
		}
	}

	// self reference
	self := doc("a", "Ada", "a")
	ctx := sanity.WithLookup(context.Background(), sanity.DocumentMap{}.Add(self))
	out, err := author.Resolve(ctx, self)
	require.NoError(t, err)
	mentor := out.(map[string]any)["mentor"].(map[string]any)
	require.Equal(t, "Ada", mentor["name"])
	require.Equal(t, map[string]any{"_type": "reference", "_ref": "a", "_weak": true}, mentor["mentor"])

	// mutual references
	ada, bob := doc("a", "Ada", "b"), doc("b", "Bob", "a")
	ctx = sanity.WithLookup(context.Background(), sanity.DocumentMap{}.Add(ada, bob))
	out, err = author.Resolve(ctx, ada)
	require.NoError(t, err)
	m1 := out.(map[string]any)["mentor"].(map[string]any)
	require.Equal(t, "Bob", m1["name"])
	m2 := m1["mentor"].(map[string]any)
	require.Equal(t, "Ada", m2["name"])
	require.Equal(t, "b", m2["mentor"].(map[string]any)["_ref"])
}

func TestReference_ResolveWithoutLookup(t *testing.T) {
	_, _, ref := refFixtures(t)
	_, err := ref.Resolve(context.Background(), map[string]any{"_type": "reference", "_ref": "a1"})
	require.Equal(t, []string{sanity.CodeDependencyUnavailable}, codes(t, err))

	boom := errors.New("store offline")
	ctx := sanity.WithLookup(context.Background(), sanity.LookupFunc(func(context.Context, string) (map[string]any, error) {
		return nil, boom
	}))
	_, err = ref.Resolve(ctx, map[string]any{"_type": "reference", "_ref": "a1"})
	iss := firstIssue(t, err)
	require.Equal(t, sanity.CodeDependencyUnavailable, iss.Code)
	require.ErrorIs(t, iss.Cause, boom)
}

func TestReference_Weak(t *testing.T) {
	ctx := context.Background()
	author, _, _ := refFixtures(t)
	weak := dsl.Reference(author).Weak().MustBuild()

	_, err := weak.Parse(ctx, map[string]any{"_type": "reference", "_ref": "a1", "_weak": true})
	require.NoError(t, err)
	_, err = weak.Parse(ctx, map[string]any{"_type": "reference", "_ref": "a1"})
	require.Equal(t, sanity.CodeInvalidLiteral, firstIssue(t, err).Code)

	require.Equal(t, true, weak.Mock("").(map[string]any)["_weak"])
	require.True(t, weak.Schema().Weak)
}

func TestReference_SchemaAndMock(t *testing.T) {
	ctx := context.Background()
	_, _, ref := refFixtures(t)
	s := ref.Schema()
	require.Equal(t, "reference", s.Type)
	require.Equal(t, []string{"author", "team"}, []string{s.To[0].Type, s.To[1].Type})
	require.Equal(t, []string{"author", "team"}, ref.Targets())

	raw := ref.Mock("r")
	_, err := ref.Parse(ctx, raw)
	require.NoError(t, err)
	require.Equal(t, raw, ref.Mock("r"))
}

func TestReference_ConfigErrors(t *testing.T) {
	var ce *sanity.ConfigError
	_, err := dsl.Reference().Build()
	require.ErrorAs(t, err, &ce)

	a := dsl.Document("a").MustBuild()
	_, err = dsl.Reference(a, a).Build()
	require.ErrorAs(t, err, &ce)
}

func TestReference_InArray(t *testing.T) {
	author, team, _ := refFixtures(t)
	a := dsl.Array(dsl.Reference(author, team).MustBuild()).MustBuild()
	raw := a.Mock("refs")
	for _, it := range raw.([]any) {
		require.Equal(t, "reference", it.(map[string]any)["_type"])
		require.NotEmpty(t, it.(map[string]any)["_key"])
	}
	_, err := a.Parse(context.Background(), raw)
	require.NoError(t, err)
}
