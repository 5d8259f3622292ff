package sanity

import (
	"bytes"
	"context"

	json "github.com/goccy/go-json"
)

// Lookup fetches a stored document by id. A missing document is (nil, nil).
type Lookup interface {
	Lookup(ctx context.Context, id string) (map[string]any, error)
}

// LookupFunc adapts a function to Lookup.
type LookupFunc func(ctx context.Context, id string) (map[string]any, error)

func (f LookupFunc) Lookup(ctx context.Context, id string) (map[string]any, error) {
	return f(ctx, id)
}

// DocumentMap is an in-memory Lookup keyed by _id.
type DocumentMap map[string]map[string]any

func (m DocumentMap) Lookup(_ context.Context, id string) (map[string]any, error) {
	doc, ok := m[id]
	if !ok {
		return nil, nil
	}
	return doc, nil
}

// Add stores docs under their _id.
func (m DocumentMap) Add(docs ...map[string]any) DocumentMap {
	for _, d := range docs {
		if id, ok := d["_id"].(string); ok {
			m[id] = d
		}
	}
	return m
}

// ---- Parse-time context options ----

type contextKey int

const (
	_ctxKeyFailFast contextKey = iota
	_ctxKeyLookup
	_ctxKeyResolving
)

// WithFailFast returns a child context that stops object parsing at the first issue.
func WithFailFast(ctx context.Context, enabled bool) context.Context {
	return context.WithValue(ctx, _ctxKeyFailFast, enabled)
}

// IsFailFast reports whether the current parse should stop on the first issue.
func IsFailFast(ctx context.Context) bool {
	v := ctx.Value(_ctxKeyFailFast)
	b, _ := v.(bool)
	return b
}

// WithLookup injects the document lookup collaborator used by Resolve.
func WithLookup(ctx context.Context, l Lookup) context.Context {
	return context.WithValue(ctx, _ctxKeyLookup, l)
}

// LookupFrom returns the injected Lookup, if any.
func LookupFrom(ctx context.Context) (Lookup, bool) {
	l, ok := ctx.Value(_ctxKeyLookup).(Lookup)
	return l, ok && l != nil
}

// resolving is the chain of document ids whose references are being followed.
type resolving struct {
	id     string
	parent *resolving
}

// WithResolving marks id as being resolved for the rest of ctx's chain.
func WithResolving(ctx context.Context, id string) context.Context {
	parent, _ := ctx.Value(_ctxKeyResolving).(*resolving)
	return context.WithValue(ctx, _ctxKeyResolving, &resolving{id: id, parent: parent})
}

// IsResolving reports whether id is already being resolved further up ctx.
// References back to such an id form a cycle and are left unresolved.
func IsResolving(ctx context.Context, id string) bool {
	for r, _ := ctx.Value(_ctxKeyResolving).(*resolving); r != nil; r = r.parent {
		if r.id == id {
			return true
		}
	}
	return false
}

// ---- Convenience wrappers ----

// SafeParse parses v, returning (nil, false) on validation error.
func SafeParse(ctx context.Context, t Type, v any) (any, bool) {
	out, err := t.Parse(ctx, v)
	if err != nil {
		return nil, false
	}
	return out, true
}

// Is returns true if v parses under t.
func Is(ctx context.Context, t Type, v any) bool {
	_, err := t.Parse(ctx, v)
	return err == nil
}

// ParseAs parses v and asserts the output to T.
func ParseAs[T any](ctx context.Context, t Type, v any) (T, error) {
	var zero T
	out, err := t.Parse(ctx, v)
	if err != nil {
		return zero, err
	}
	typed, ok := out.(T)
	if !ok {
		return zero, Fail(CodeInvalidType, "output has unexpected Go type")
	}
	return typed, nil
}

// DecodeJSON decodes data into the generic raw form (map[string]any, []any,
// json.Number, string, bool, nil) the parsers consume. Duplicate object keys
// are rejected rather than silently collapsed.
func DecodeJSON(data []byte) (any, error) {
	if iss, err := DuplicateKeys(data, 0); err != nil {
		return nil, err
	} else if len(iss) > 0 {
		return nil, iss
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, Fail(CodeParseError, err.Error())
	}
	return v, nil
}

// ParseJSON decodes data and parses it with t.
func ParseJSON(ctx context.Context, t Type, data []byte) (any, error) {
	v, err := DecodeJSON(data)
	if err != nil {
		return nil, err
	}
	return t.Parse(ctx, v)
}

// ResolveJSON decodes data and resolves it with t.
func ResolveJSON(ctx context.Context, t Type, data []byte) (any, error) {
	v, err := DecodeJSON(data)
	if err != nil {
		return nil, err
	}
	return t.Resolve(ctx, v)
}
