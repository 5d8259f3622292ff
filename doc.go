// Package sanity is the core of a typed content-schema builder.
//
// Every content type is a Type bundling four pipelines that stay in sync:
//
//   - Schema: the declarative descriptor handed to the content platform
//   - Parse: raw stored value -> typed output, failing with Issues
//   - Resolve: raw value -> display form (references dereferenced, slugs unwrapped)
//   - Mock: a deterministic sample for a path string
//
// Design policy:
//   - Keep the Type contract, the error model and the JSON entry points in the
//     root package; builders live in dsl/, descriptors in descriptor/, the rule
//     recorder in rule/ and the seeded generator in mock/.
//   - Builders are immutable values; chaining returns a copy.
//   - Document lookup is a collaborator injected with WithLookup.
//
// Typical usage:
//
//	post := dsl.Document("post").
//	    Field("title", dsl.String().Min(3)).
//	    MustBuild()
//
//	v, err := sanity.ParseJSON(ctx, post, data)
//	desc := post.Schema()
//	sample := post.Mock("")
package sanity
