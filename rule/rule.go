// Package rule records the validation rules handed to the external content
// platform. A Rule is an opaque, append-only description; nothing here executes
// the rules. Builders mirror every locally enforced constraint into a Func so
// that the platform and the local parser agree on the same bounds.
package rule

import "time"

// Call is one recorded rule invocation, e.g. {Name: "min", Args: [3]}.
type Call struct {
	Name string
	Args []any
}

// Rule is an immutable chain of calls. Every method returns a new Rule.
type Rule struct {
	calls []Call
}

// Func customizes a Rule. It is what descriptors carry under "validation".
type Func func(*Rule) *Rule

// New returns an empty Rule.
func New() *Rule { return &Rule{} }

func (r *Rule) with(name string, args ...any) *Rule {
	var calls []Call
	if r != nil {
		calls = make([]Call, len(r.calls), len(r.calls)+1)
		copy(calls, r.calls)
	}
	return &Rule{calls: append(calls, Call{Name: name, Args: args})}
}

func (r *Rule) Required() *Rule              { return r.with("required") }
func (r *Rule) Min(n any) *Rule              { return r.with("min", n) }
func (r *Rule) Max(n any) *Rule              { return r.with("max", n) }
func (r *Rule) Length(n int) *Rule           { return r.with("length", n) }
func (r *Rule) Regex(pattern string) *Rule   { return r.with("regex", pattern) }
func (r *Rule) Greater(n float64) *Rule      { return r.with("greaterThan", n) }
func (r *Rule) Less(n float64) *Rule         { return r.with("lessThan", n) }
func (r *Rule) Integer() *Rule               { return r.with("integer") }
func (r *Rule) Positive() *Rule              { return r.with("positive") }
func (r *Rule) Negative() *Rule              { return r.with("negative") }
func (r *Rule) Precision(n int) *Rule        { return r.with("precision", n) }
func (r *Rule) Unique() *Rule                { return r.with("unique") }
func (r *Rule) Email() *Rule                 { return r.with("email") }
func (r *Rule) URI() *Rule                   { return r.with("uri") }
func (r *Rule) MinDate(t time.Time) *Rule    { return r.with("min", t.UTC().Format(time.RFC3339Nano)) }
func (r *Rule) MaxDate(t time.Time) *Rule    { return r.with("max", t.UTC().Format(time.RFC3339Nano)) }
func (r *Rule) Custom(name string, args ...any) *Rule {
	return r.with("custom", append([]any{name}, args...)...)
}

// Calls returns a copy of the recorded invocations in order.
func (r *Rule) Calls() []Call {
	if r == nil {
		return nil
	}
	out := make([]Call, len(r.calls))
	copy(out, r.calls)
	return out
}

// Has reports whether a call with the given name was recorded.
func (r *Rule) Has(name string) bool {
	if r == nil {
		return false
	}
	for _, c := range r.calls {
		if c.Name == name {
			return true
		}
	}
	return false
}

// Names lists recorded call names in order.
func (r *Rule) Names() []string {
	if r == nil {
		return nil
	}
	out := make([]string, len(r.calls))
	for i, c := range r.calls {
		out[i] = c.Name
	}
	return out
}

// Chain composes fns left to right; nil entries are skipped.
func Chain(fns ...Func) Func {
	live := make([]Func, 0, len(fns))
	for _, fn := range fns {
		if fn != nil {
			live = append(live, fn)
		}
	}
	if len(live) == 0 {
		return nil
	}
	return func(r *Rule) *Rule {
		for _, fn := range live {
			r = fn(r)
		}
		return r
	}
}

// RequiredFunc marks a rule as required.
func RequiredFunc(r *Rule) *Rule { return r.Required() }

// Run evaluates fn on a fresh Rule. A nil fn yields an empty Rule.
func Run(fn Func) *Rule {
	if fn == nil {
		return New()
	}
	return fn(New())
}
