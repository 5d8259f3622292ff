package rule_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/saiichihashimoto/sanity-typed-schema-builder-sub000/rule"
)

func TestRule_Immutable(t *testing.T) {
	base := rule.New().Min(1)
	a := base.Max(3)
	b := base.Length(2)

	require.Equal(t, []string{"min"}, base.Names())
	require.Equal(t, []string{"min", "max"}, a.Names())
	require.Equal(t, []string{"min", "length"}, b.Names())
}

func TestChain_OrderAndNil(t *testing.T) {
	fn := rule.Chain(rule.RequiredFunc, nil, func(r *rule.Rule) *rule.Rule { return r.Regex("^a") })
	r := rule.Run(fn)
	require.Equal(t, []string{"required", "regex"}, r.Names())
	require.Equal(t, []any{"^a"}, r.Calls()[1].Args)

	require.Nil(t, rule.Chain(nil, nil))
	require.Empty(t, rule.Run(nil).Calls())
}

func TestRule_Has(t *testing.T) {
	r := rule.New().Custom("slugify", 1)
	require.True(t, r.Has("custom"))
	require.False(t, r.Has("required"))
	require.Equal(t, []any{"slugify", 1}, r.Calls()[0].Args)
}
