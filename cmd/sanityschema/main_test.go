package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const blogSchema = "../../schemafile/testdata/blog.yaml"

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestDescribe_AllTypes(t *testing.T) {
	out, err := run(t, "", "describe", "--schema", blogSchema, "--format", "json")
	require.NoError(t, err)

	var got []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 3)
	require.Equal(t, "post", got[0]["name"])
	require.Equal(t, "document", got[0]["type"])
	require.Equal(t, "callout", got[2]["name"])
}

func TestDescribe_OneTypeYAML(t *testing.T) {
	out, err := run(t, "", "describe", "--schema", blogSchema, "--type", "author", "--format", "yaml")
	require.NoError(t, err)

	var got []map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(out), &got))
	require.Len(t, got, 1)
	require.Equal(t, "author", got[0]["name"])
}

func TestDescribe_UnknownType(t *testing.T) {
	_, err := run(t, "", "describe", "--schema", blogSchema, "--type", "nope")
	require.ErrorContains(t, err, `unknown type "nope"`)
}

func TestMock_Deterministic(t *testing.T) {
	a, err := run(t, "", "mock", "--schema", blogSchema, "--type", "post", "--path", "x")
	require.NoError(t, err)
	b, err := run(t, "", "mock", "--schema", blogSchema, "--type", "post", "--path", "x")
	require.NoError(t, err)
	require.Equal(t, a, b)

	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(a), &doc))
	require.Equal(t, "post", doc["_type"])
}

func TestMock_Count(t *testing.T) {
	out, err := run(t, "", "mock", "--schema", blogSchema, "--type", "author", "--path", "authors", "--count", "3")
	require.NoError(t, err)

	var docs []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &docs))
	require.Len(t, docs, 3)
	require.NotEqual(t, docs[0]["_id"], docs[1]["_id"])
}

func TestMock_RequiresType(t *testing.T) {
	_, err := run(t, "", "mock", "--schema", blogSchema)
	require.Error(t, err)
}

func TestValidate_RoundTripsMock(t *testing.T) {
	doc, err := run(t, "", "mock", "--schema", blogSchema, "--type", "author")
	require.NoError(t, err)

	out, err := run(t, doc, "validate", "--schema", blogSchema, "--type", "author")
	require.NoError(t, err)
	require.Contains(t, out, checkMark+" -")
}

func TestValidate_ReportsIssues(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"_type":"author","_id":"a","name":1}`), 0o644))

	out, err := run(t, "", "validate", "--schema", blogSchema, "--type", "author", bad)
	require.ErrorContains(t, err, "1 of 1 documents invalid")
	require.Contains(t, out, crossMark+" "+bad)
	require.Contains(t, out, "/name invalid_type")
}

func TestValidate_RejectsDuplicateKeys(t *testing.T) {
	out, err := run(t, `{"name":"a","name":"b"}`, "validate", "--schema", blogSchema, "--type", "author")
	require.Error(t, err)
	require.Contains(t, out, "duplicate_key")
}

func TestValidate_ResolveWithDocs(t *testing.T) {
	dir := t.TempDir()
	docs := filepath.Join(dir, "docs.json")
	require.NoError(t, os.WriteFile(docs, []byte(`[
		{"_id":"ada","_type":"author","_rev":"r1","_createdAt":"2024-01-01T00:00:00Z","_updatedAt":"2024-01-01T00:00:00Z","name":"Ada"}
	]`), 0o644))
	ref := `{"_id":"bob","_type":"author","_rev":"r1","_createdAt":"2024-01-01T00:00:00Z","_updatedAt":"2024-01-01T00:00:00Z",
		"name":"Bob","mentor":{"_type":"reference","_ref":"ada","_weak":true}}`

	out, err := run(t, ref, "validate", "--schema", blogSchema, "--type", "author", "--resolve", "--docs", docs)
	require.NoError(t, err)
	require.Contains(t, out, `"name": "Ada"`)
}

func TestRoot_InvalidLogLevel(t *testing.T) {
	_, err := run(t, "", "describe", "--schema", blogSchema, "--log-level", "loud")
	require.ErrorContains(t, err, "invalid --log-level")
}

func TestRoot_MissingSchema(t *testing.T) {
	_, err := run(t, "", "describe", "--schema", filepath.Join(t.TempDir(), "none.yaml"))
	require.ErrorContains(t, err, "read schema")
}
