package sanity

import "github.com/saiichihashimoto/sanity-typed-schema-builder-sub000/i18n"

// IssueAt creates an Issue at the given path with provided code, hint and params map.
// This is a convenience helper to improve readability at call sites with many parameters.
func IssueAt(p PathRef, code, hint string, params map[string]any) Issue {
	return Issue{Path: p.Pointer(), Code: code, Message: i18n.T(code, nil), Hint: hint, Params: params}
}

// Fail wraps a single root-level issue into Issues.
func Fail(code, hint string, kv ...any) Issues {
	return Issues{Root().Issue(code, hint, kv...)}
}
