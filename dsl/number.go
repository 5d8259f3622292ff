package dsl

import (
	"context"
	"math"

	sanity "github.com/saiichihashimoto/sanity-typed-schema-builder-sub000"
	"github.com/saiichihashimoto/sanity-typed-schema-builder-sub000/descriptor"
	"github.com/saiichihashimoto/sanity-typed-schema-builder-sub000/mock"
	"github.com/saiichihashimoto/sanity-typed-schema-builder-sub000/rule"
)

// NumberType parses JSON numbers into float64.
type NumberType struct {
	min       *float64
	max       *float64
	greater   *float64
	less      *float64
	integer   bool
	positive  bool
	negative  bool
	precision int
	mockFn    MockFunc
}

// Number returns the number type.
func Number() NumberType { return NumberType{precision: -1} }

func ptr(f float64) *float64 { return &f }

// Min sets an inclusive lower bound.
func (n NumberType) Min(v float64) NumberType { n.min = ptr(v); return n }

// Max sets an inclusive upper bound.
func (n NumberType) Max(v float64) NumberType { n.max = ptr(v); return n }

// Greater sets an exclusive lower bound.
func (n NumberType) Greater(v float64) NumberType { n.greater = ptr(v); return n }

// Less sets an exclusive upper bound.
func (n NumberType) Less(v float64) NumberType { n.less = ptr(v); return n }

// Integer rejects fractional values.
func (n NumberType) Integer() NumberType { n.integer = true; return n }

// Positive requires v >= 0.
func (n NumberType) Positive() NumberType { n.positive = true; return n }

// Negative requires v < 0.
func (n NumberType) Negative() NumberType { n.negative = true; return n }

// Precision caps the number of decimal places.
func (n NumberType) Precision(digits int) NumberType { n.precision = digits; return n }

// WithMock replaces the default mock.
func (n NumberType) WithMock(fn MockFunc) NumberType { n.mockFn = fn; return n }

func (NumberType) primitiveKind() string { return "number" }

func (n NumberType) Parse(ctx context.Context, raw any) (any, error) {
	f, ok := toFloat(raw)
	if !ok {
		return nil, invalidType("number")
	}
	if iss := n.check(f); len(iss) > 0 {
		return nil, iss
	}
	return f, nil
}

func (n NumberType) Resolve(ctx context.Context, raw any) (any, error) { return n.Parse(ctx, raw) }

func (n NumberType) check(f float64) sanity.Issues {
	var iss sanity.Issues
	root := sanity.Root()
	if n.min != nil && f < *n.min {
		iss = sanity.AppendIssues(iss, root.Issue(sanity.CodeTooSmall, "number is below min", "min", *n.min, "got", f))
	}
	if n.max != nil && f > *n.max {
		iss = sanity.AppendIssues(iss, root.Issue(sanity.CodeTooBig, "number is above max", "max", *n.max, "got", f))
	}
	if n.greater != nil && f <= *n.greater {
		iss = sanity.AppendIssues(iss, root.Issue(sanity.CodeTooSmall, "number must be greater", "greaterThan", *n.greater, "got", f))
	}
	if n.less != nil && f >= *n.less {
		iss = sanity.AppendIssues(iss, root.Issue(sanity.CodeTooBig, "number must be less", "lessThan", *n.less, "got", f))
	}
	if n.integer && f != math.Trunc(f) {
		iss = sanity.AppendIssues(iss, root.Issue(sanity.CodeNotInteger, "", "got", f))
	}
	if n.positive && f < 0 {
		iss = sanity.AppendIssues(iss, root.Issue(sanity.CodeTooSmall, "number must be positive", "min", 0, "got", f))
	}
	if n.negative && f >= 0 {
		iss = sanity.AppendIssues(iss, root.Issue(sanity.CodeTooBig, "number must be negative", "lessThan", 0, "got", f))
	}
	if n.precision >= 0 && !hasPrecision(f, n.precision) {
		iss = sanity.AppendIssues(iss, root.Issue(sanity.CodePrecision, "", "precision", n.precision, "got", f))
	}
	return iss
}

func hasPrecision(f float64, digits int) bool {
	scale := math.Pow(10, float64(digits))
	scaled := f * scale
	return math.Abs(scaled-math.Round(scaled)) < 1e-9*math.Max(1, math.Abs(scaled))
}

func (n NumberType) rules() rule.Func {
	if n.min == nil && n.max == nil && n.greater == nil && n.less == nil && !n.integer && !n.positive && !n.negative && n.precision < 0 {
		return nil
	}
	return func(r *rule.Rule) *rule.Rule {
		if n.min != nil {
			r = r.Min(*n.min)
		}
		if n.max != nil {
			r = r.Max(*n.max)
		}
		if n.greater != nil {
			r = r.Greater(*n.greater)
		}
		if n.less != nil {
			r = r.Less(*n.less)
		}
		if n.integer {
			r = r.Integer()
		}
		if n.positive {
			r = r.Positive()
		}
		if n.negative {
			r = r.Negative()
		}
		if n.precision >= 0 {
			r = r.Precision(n.precision)
		}
		return r
	}
}

func (n NumberType) Schema() *descriptor.Schema {
	return &descriptor.Schema{Type: "number", Validation: n.rules()}
}

func (n NumberType) Mock(path string) any {
	return mockAt(path, n.mockFn, n.defaultMock)
}

// mockSpan is the width of the sampled range when one side is unbounded.
const mockSpan = 100

func (n NumberType) defaultMock(g *mock.Generator, _ string) any {
	step := 0.001
	switch {
	case n.integer:
		step = 1
	case n.precision >= 0:
		step = math.Pow(10, -float64(n.precision))
	}
	lo, hi := math.Inf(-1), math.Inf(1)
	if n.min != nil {
		lo = math.Max(lo, *n.min)
	}
	if n.max != nil {
		hi = math.Min(hi, *n.max)
	}
	if n.greater != nil {
		lo = math.Max(lo, *n.greater+step)
	}
	if n.less != nil {
		hi = math.Min(hi, *n.less-step)
	}
	if n.positive {
		lo = math.Max(lo, 0)
	}
	if n.negative {
		hi = math.Min(hi, -step)
	}
	switch {
	case math.IsInf(lo, -1) && math.IsInf(hi, 1):
		lo, hi = 0, mockSpan
	case math.IsInf(lo, -1):
		lo = hi - mockSpan
	case math.IsInf(hi, 1):
		hi = lo + mockSpan
	}
	if n.integer {
		return float64(g.Int(int(math.Ceil(lo)), int(math.Floor(hi))))
	}
	v := g.Number(lo, hi)
	if n.precision >= 0 {
		scale := math.Pow(10, float64(n.precision))
		v = math.Floor(v*scale) / scale
		if v < lo {
			v = math.Ceil(lo*scale) / scale
		}
	}
	return v
}
