package dsl

import (
	"context"
	"net/mail"
	"net/url"
	"regexp"
	"slices"
	"strings"
	"unicode/utf8"

	sanity "github.com/saiichihashimoto/sanity-typed-schema-builder-sub000"
	"github.com/saiichihashimoto/sanity-typed-schema-builder-sub000/descriptor"
	"github.com/saiichihashimoto/sanity-typed-schema-builder-sub000/mock"
	"github.com/saiichihashimoto/sanity-typed-schema-builder-sub000/rule"
)

// ---------------- Boolean ----------------

// BooleanType parses JSON booleans.
type BooleanType struct {
	mockFn MockFunc
}

// Boolean returns the boolean type.
func Boolean() BooleanType { return BooleanType{} }

// WithMock replaces the default mock.
func (b BooleanType) WithMock(fn MockFunc) BooleanType { b.mockFn = fn; return b }

func (BooleanType) primitiveKind() string { return "boolean" }

func (BooleanType) Parse(ctx context.Context, raw any) (any, error) {
	v, ok := raw.(bool)
	if !ok {
		return nil, invalidType("boolean")
	}
	return v, nil
}

func (b BooleanType) Resolve(ctx context.Context, raw any) (any, error) { return b.Parse(ctx, raw) }

func (b BooleanType) Mock(path string) any {
	return mockAt(path, b.mockFn, func(g *mock.Generator, _ string) any { return g.Bool() })
}

func (BooleanType) Schema() *descriptor.Schema { return &descriptor.Schema{Type: "boolean"} }

// ---------------- String family ----------------

// StringType parses strings. The same builder backs string, text, url and
// email, which differ in descriptor type, format check and default mock.
type StringType struct {
	typeName string
	min      int
	max      int
	length   int
	regex    *regexp.Regexp
	list     []string
	rows     int
	mockFn   MockFunc
}

func newString(typeName string) StringType {
	return StringType{typeName: typeName, min: -1, max: -1, length: -1}
}

// String returns the single-line string type.
func String() StringType { return newString("string") }

// Text returns the multi-line text type.
func Text() StringType { return newString("text") }

// URL returns a string type that only accepts absolute URLs.
func URL() StringType { return newString("url") }

// Email returns a string type that only accepts bare email addresses.
func Email() StringType { return newString("email") }

// Min sets the minimum length in characters.
func (s StringType) Min(n int) StringType { s.min = n; return s }

// Max sets the maximum length in characters.
func (s StringType) Max(n int) StringType { s.max = n; return s }

// Length requires an exact length in characters.
func (s StringType) Length(n int) StringType { s.length = n; return s }

// Regex requires a match of re.
func (s StringType) Regex(re *regexp.Regexp) StringType { s.regex = re; return s }

// List restricts values to the given set and exports it as options.list.
func (s StringType) List(values ...string) StringType {
	s.list = append([]string(nil), values...)
	return s
}

// Rows sets the editor height of text fields.
func (s StringType) Rows(n int) StringType { s.rows = n; return s }

// WithMock replaces the default mock.
func (s StringType) WithMock(fn MockFunc) StringType { s.mockFn = fn; return s }

func (StringType) primitiveKind() string { return "string" }

func (s StringType) Parse(ctx context.Context, raw any) (any, error) {
	str, ok := raw.(string)
	if !ok {
		return nil, invalidType("string")
	}
	if iss := s.check(str); len(iss) > 0 {
		return nil, iss
	}
	return str, nil
}

func (s StringType) Resolve(ctx context.Context, raw any) (any, error) { return s.Parse(ctx, raw) }

// check runs min, max, length, then the value-set constraints; every failing
// constraint is reported.
func (s StringType) check(str string) sanity.Issues {
	var iss sanity.Issues
	root := sanity.Root()
	n := utf8.RuneCountInString(str)
	if s.min >= 0 && n < s.min {
		iss = sanity.AppendIssues(iss, root.Issue(sanity.CodeTooShort, "string is shorter than min", "min", s.min, "got", n))
	}
	if s.max >= 0 && n > s.max {
		iss = sanity.AppendIssues(iss, root.Issue(sanity.CodeTooLong, "string is longer than max", "max", s.max, "got", n))
	}
	if s.length >= 0 && n != s.length {
		code := sanity.CodeTooShort
		if n > s.length {
			code = sanity.CodeTooLong
		}
		iss = sanity.AppendIssues(iss, root.Issue(code, "string length differs", "length", s.length, "got", n))
	}
	if s.regex != nil && !s.regex.MatchString(str) {
		iss = sanity.AppendIssues(iss, root.Issue(sanity.CodePattern, s.regex.String(), "pattern", s.regex.String()))
	}
	if len(s.list) > 0 && !slices.Contains(s.list, str) {
		iss = sanity.AppendIssues(iss, root.Issue(sanity.CodeInvalidEnum, strings.Join(s.list, "|")))
	}
	switch s.typeName {
	case "url":
		if u, err := url.Parse(str); err != nil || !u.IsAbs() || u.Host == "" {
			iss = sanity.AppendIssues(iss, root.Issue(sanity.CodeInvalidFormat, "uri"))
		}
	case "email":
		if a, err := mail.ParseAddress(str); err != nil || a.Address != str {
			iss = sanity.AppendIssues(iss, root.Issue(sanity.CodeInvalidFormat, "email"))
		}
	}
	return iss
}

func (s StringType) rules() rule.Func {
	if s.min < 0 && s.max < 0 && s.length < 0 && s.regex == nil && len(s.list) == 0 && s.typeName != "url" && s.typeName != "email" {
		return nil
	}
	return func(r *rule.Rule) *rule.Rule {
		if s.min >= 0 {
			r = r.Min(s.min)
		}
		if s.max >= 0 {
			r = r.Max(s.max)
		}
		if s.length >= 0 {
			r = r.Length(s.length)
		}
		if s.regex != nil {
			r = r.Regex(s.regex.String())
		}
		if len(s.list) > 0 {
			r = r.Custom("list", toAnySlice(s.list)...)
		}
		switch s.typeName {
		case "url":
			r = r.URI()
		case "email":
			r = r.Email()
		}
		return r
	}
}

func (s StringType) Schema() *descriptor.Schema {
	d := &descriptor.Schema{Type: s.typeName, Rows: s.rows, Validation: s.rules()}
	if len(s.list) > 0 {
		d.Options = map[string]any{"list": append([]string(nil), s.list...)}
	}
	return d
}

// Mock ignores Regex; pair Regex with WithMock when parse(mock) must hold.
func (s StringType) Mock(path string) any {
	return mockAt(path, s.mockFn, s.defaultMock)
}

func (s StringType) defaultMock(g *mock.Generator, _ string) any {
	if len(s.list) > 0 {
		return s.list[g.Pick(len(s.list))]
	}
	switch s.typeName {
	case "url":
		return g.URL()
	case "email":
		return g.Email()
	case "text":
		return fitLength(g, g.Paragraph(), s.min, s.max, s.length)
	}
	return fitLength(g, g.Word(), s.min, s.max, s.length)
}

// fitLength pads with words up to the lower bound and truncates to the upper.
func fitLength(g *mock.Generator, s string, min, max, length int) string {
	if length >= 0 {
		min, max = length, length
	}
	runes := []rune(s)
	for len(runes) < min {
		if len(runes) > 0 {
			runes = append(runes, ' ')
		}
		runes = append(runes, []rune(g.Word())...)
	}
	if max >= 0 && len(runes) > max {
		runes = runes[:max]
	}
	return string(runes)
}

func toAnySlice[T any](in []T) []any {
	out := make([]any, len(in))
	for i, v := range in {
		out[i] = v
	}
	return out
}
