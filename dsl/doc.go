// Package dsl provides the content-type builders.
//
// Overview
//   - Primitives: Boolean(), String(), Text(), URL(), Email(), Number(), Date(), Datetime().
//     Each is immutable; chaining (Min/Max/Length/Regex/...) returns a new value.
//   - Composites: Object(), ObjectNamed(name), Document(name), Array(of...),
//     Reference(to...), Image(), File(). Finish them with Build()/MustBuild().
//   - Special objects: Slug(), Geopoint(), Block().
//   - Lazy(name, fn) declares a named type before it exists (cyclic references).
//
// Every result implements sanity.Type: Parse, Resolve, Mock and Schema stay in
// sync. A constraint such as String().Min(3) is enforced by Parse and mirrored
// into the descriptor's validation rule so the content platform enforces the same
// bound.
//
// Example
//
//	post := dsl.Document("post").
//	    Field("draft", dsl.Boolean()).
//	    Field("title", dsl.String().Min(3), dsl.Optional()).
//	    MustBuild()
//
//	v, err := post.Parse(ctx, raw)     // map[string]any with _createdAt as time.Time
//	sample := post.Mock("")            // deterministic for the path ""
//	desc := post.Schema()              // {name: post, type: document, fields: [...]}
//
// File layout (roles)
//   - common.go: shared issue/mock/number helpers.
//   - primitives.go, number.go, datetime.go: primitive builders.
//   - fields.go: Field Aggregator (parse/mock/schema over an ordered field list).
//   - object.go: Object/ObjectNamed/Document builders.
//   - union.go: discriminant-keyed variant sets used by arrays.
//   - array.go, reference.go, asset.go, special.go, block.go, lazy.go.
package dsl
