package dsl

import (
	"context"
	"strings"
	"sync"

	sanity "github.com/saiichihashimoto/sanity-typed-schema-builder-sub000"
	"github.com/saiichihashimoto/sanity-typed-schema-builder-sub000/descriptor"
)

// maxLazyDepth bounds how deep mocks follow a lazily declared type. Past it the
// mock is nil, which optional fields and arrays drop.
const maxLazyDepth = 6

// LazyType stands in for a named type that is declared later, so types can
// refer to each other (or themselves) by name.
type LazyType struct {
	name string
	once sync.Once
	fn   func() sanity.Named
	t    sanity.Named
	err  *sanity.ConfigError
}

// Lazy declares name now and obtains the type from fn on first use.
func Lazy(name string, fn func() sanity.Named) *LazyType {
	return &LazyType{name: name, fn: fn}
}

// Name is available without calling fn.
func (l *LazyType) Name() string { return l.name }

func (l *LazyType) get() sanity.Named {
	l.once.Do(func() {
		t := l.fn()
		if t == nil || t.Name() != l.name {
			l.err = &sanity.ConfigError{Builder: "lazy", Field: l.name, Reason: "function must return the named type it declares"}
			return
		}
		l.t = t
	})
	if l.err != nil {
		panic(l.err)
	}
	return l.t
}

func (l *LazyType) Parse(ctx context.Context, raw any) (any, error) { return l.get().Parse(ctx, raw) }

func (l *LazyType) Resolve(ctx context.Context, raw any) (any, error) {
	return l.get().Resolve(ctx, raw)
}

func (l *LazyType) Mock(path string) any {
	if pathDepth(path) > maxLazyDepth {
		return nil
	}
	return l.get().Mock(path)
}

func (l *LazyType) Schema() *descriptor.Schema { return l.get().Schema() }

// pathDepth counts field and index steps in a mock path.
func pathDepth(path string) int {
	return strings.Count(path, ".") + strings.Count(path, "[")
}
