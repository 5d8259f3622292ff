package dsl_test

import (
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/require"

	sanity "github.com/saiichihashimoto/sanity-typed-schema-builder-sub000"
	"github.com/saiichihashimoto/sanity-typed-schema-builder-sub000/descriptor"
)

// codes lists the issue codes carried by err.
func codes(t *testing.T, err error) []string {
	t.Helper()
	require.Error(t, err)
	iss, ok := sanity.AsIssues(err)
	require.True(t, ok, "expected Issues, got %T: %v", err, err)
	out := make([]string, 0, len(iss))
	for _, it := range iss {
		out = append(out, it.Code)
	}
	return out
}

// firstIssue returns the first issue of err.
func firstIssue(t *testing.T, err error) sanity.Issue {
	t.Helper()
	require.Error(t, err)
	iss, ok := sanity.AsIssues(err)
	require.True(t, ok)
	require.NotEmpty(t, iss)
	return iss[0]
}

func schemaJSON(t *testing.T, s *descriptor.Schema) string {
	t.Helper()
	b, err := json.Marshal(s)
	require.NoError(t, err)
	return string(b)
}
