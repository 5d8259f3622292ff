package sanity_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	sanity "github.com/saiichihashimoto/sanity-typed-schema-builder-sub000"
)

func TestIssues_ErrorSummary(t *testing.T) {
	iss := sanity.Issues{
		{Path: "/a", Code: sanity.CodeRequired},
		{Path: "/b", Code: sanity.CodeInvalidType},
		{Path: "/c", Code: sanity.CodeTooLong},
		{Path: "/d", Code: sanity.CodeTooShort},
	}
	msg := iss.Error()
	require.True(t, strings.HasPrefix(msg, "required at /a; invalid_type at /b"), msg)
	require.Contains(t, msg, "(total 4)")
	require.Equal(t, "", sanity.Issues{}.Error())
}

func TestIssues_Classification(t *testing.T) {
	var shape error = sanity.Issues{{Code: sanity.CodeUnknownKey}}
	var constraint error = sanity.Issues{{Code: sanity.CodePattern}}

	require.ErrorIs(t, shape, sanity.ErrShapeMismatch)
	require.NotErrorIs(t, shape, sanity.ErrConstraintViolation)
	require.ErrorIs(t, constraint, sanity.ErrConstraintViolation)
	require.NotErrorIs(t, constraint, sanity.ErrShapeMismatch)

	for _, c := range []string{sanity.CodeRequired, sanity.CodeDiscriminatorUnknown, sanity.CodeDuplicateKey} {
		require.True(t, sanity.IsShapeCode(c), c)
	}
	for _, c := range []string{sanity.CodeTooSmall, sanity.CodePrecision, sanity.CodeNotUnique} {
		require.True(t, sanity.IsConstraintCode(c), c)
	}
	require.False(t, sanity.IsShapeCode(sanity.CodeDependencyUnavailable))
	require.False(t, sanity.IsConstraintCode(sanity.CodeDependencyUnavailable))
}

func TestRebase(t *testing.T) {
	child := sanity.Issues{
		{Path: "/", Code: sanity.CodeInvalidType},
		{Path: "/x/0", Code: sanity.CodeRequired},
	}
	got := sanity.Rebase("/items/2", child)
	require.Equal(t, "/items/2", got[0].Path)
	require.Equal(t, "/items/2/x/0", got[1].Path)
	// the input is untouched
	require.Equal(t, "/", child[0].Path)

	plain := sanity.Rebase("/f", errors.New("boom"))
	require.Equal(t, sanity.CodeParseError, plain[0].Code)
	require.Equal(t, "/f", plain[0].Path)

	require.Nil(t, sanity.Rebase("/f", nil))
}

func TestAsIssues(t *testing.T) {
	_, ok := sanity.AsIssues(nil)
	require.False(t, ok)
	_, ok = sanity.AsIssues(errors.New("plain"))
	require.False(t, ok)

	wrapped := errors.Join(errors.New("ctx"), sanity.Fail(sanity.CodeTooBig, "hint", "max", 3))
	iss, ok := sanity.AsIssues(wrapped)
	require.True(t, ok)
	require.Equal(t, 3, iss[0].Params["max"])
	require.Equal(t, "hint", iss[0].Hint)
	require.Equal(t, "/", iss[0].Path)
}

func TestConfigError(t *testing.T) {
	err := &sanity.ConfigError{Builder: "document:post", Field: "title", Reason: "duplicate field name"}
	require.Equal(t, "sanity: document:post: title: duplicate field name", err.Error())
	err = &sanity.ConfigError{Builder: "reference", Reason: "no target types"}
	require.Equal(t, "sanity: reference: no target types", err.Error())
}

func TestPathRef(t *testing.T) {
	p := sanity.Root().Field("a/b").Index(2).Field("c~d")
	require.Equal(t, "/a~1b/2/c~0d", p.Pointer())
	require.Equal(t, "/", sanity.Root().Pointer())
	require.Equal(t, "/x/y", sanity.At("/x/y").Pointer())

	is := p.Issue(sanity.CodeRequired, "h", "k", 1)
	require.Equal(t, "required property missing", is.Message)
	require.Equal(t, 1, is.Params["k"])
}
