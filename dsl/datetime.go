package dsl

import (
	"context"
	"time"

	sanity "github.com/saiichihashimoto/sanity-typed-schema-builder-sub000"
	"github.com/saiichihashimoto/sanity-typed-schema-builder-sub000/codec"
	"github.com/saiichihashimoto/sanity-typed-schema-builder-sub000/descriptor"
	"github.com/saiichihashimoto/sanity-typed-schema-builder-sub000/mock"
	"github.com/saiichihashimoto/sanity-typed-schema-builder-sub000/rule"
)

// Default window sampled by date mocks when no bounds are set.
var (
	mockEpochStart = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	mockEpochEnd   = time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
)

// dateBounds holds inclusive min/max shared by date and datetime.
type dateBounds struct {
	min *time.Time
	max *time.Time
}

func (b dateBounds) check(t time.Time) sanity.Issues {
	var iss sanity.Issues
	root := sanity.Root()
	if b.min != nil && t.Before(*b.min) {
		iss = sanity.AppendIssues(iss, root.Issue(sanity.CodeTooSmall, "date is before min", "min", b.min.UTC().Format(time.RFC3339Nano)))
	}
	if b.max != nil && t.After(*b.max) {
		iss = sanity.AppendIssues(iss, root.Issue(sanity.CodeTooBig, "date is after max", "max", b.max.UTC().Format(time.RFC3339Nano)))
	}
	return iss
}

func (b dateBounds) rules() rule.Func {
	if b.min == nil && b.max == nil {
		return nil
	}
	return func(r *rule.Rule) *rule.Rule {
		if b.min != nil {
			r = r.MinDate(*b.min)
		}
		if b.max != nil {
			r = r.MaxDate(*b.max)
		}
		return r
	}
}

func (b dateBounds) window() (time.Time, time.Time) {
	from, to := mockEpochStart, mockEpochEnd
	if b.min != nil {
		from = *b.min
		if b.max == nil {
			to = from.AddDate(30, 0, 0)
		}
	}
	if b.max != nil {
		to = *b.max
		if b.min == nil {
			from = to.AddDate(-30, 0, 0)
		}
	}
	return from, to
}

// ---------------- Datetime ----------------

// DatetimeType parses RFC3339 strings into time.Time.
type DatetimeType struct {
	bounds dateBounds
	mockFn MockFunc
}

// Datetime returns the datetime type.
func Datetime() DatetimeType { return DatetimeType{} }

// Min sets an inclusive lower bound.
func (d DatetimeType) Min(t time.Time) DatetimeType { d.bounds.min = &t; return d }

// Max sets an inclusive upper bound.
func (d DatetimeType) Max(t time.Time) DatetimeType { d.bounds.max = &t; return d }

// WithMock replaces the default mock.
func (d DatetimeType) WithMock(fn MockFunc) DatetimeType { d.mockFn = fn; return d }

func (DatetimeType) primitiveKind() string { return "string" }

func (d DatetimeType) Parse(ctx context.Context, raw any) (any, error) {
	s, ok := raw.(string)
	if !ok {
		return nil, invalidType("string")
	}
	t, err := codec.TimeRFC3339().Decode(ctx, s)
	if err != nil {
		return nil, err
	}
	if iss := d.bounds.check(t); len(iss) > 0 {
		return nil, iss
	}
	return t, nil
}

func (d DatetimeType) Resolve(ctx context.Context, raw any) (any, error) { return d.Parse(ctx, raw) }

func (d DatetimeType) Schema() *descriptor.Schema {
	return &descriptor.Schema{Type: "datetime", Validation: d.bounds.rules()}
}

func (d DatetimeType) Mock(path string) any {
	return mockAt(path, d.mockFn, func(g *mock.Generator, _ string) any {
		from, to := d.bounds.window()
		s, _ := codec.TimeRFC3339().Encode(context.Background(), g.DateBetween(from, to))
		return s
	})
}

// ---------------- Date ----------------

// DateType validates calendar dates ("2006-01-02"). Parse keeps the string.
type DateType struct {
	bounds dateBounds
	mockFn MockFunc
}

// Date returns the date type.
func Date() DateType { return DateType{} }

// Min sets an inclusive lower bound; the time of day is ignored.
func (d DateType) Min(t time.Time) DateType { m := truncateDay(t); d.bounds.min = &m; return d }

// Max sets an inclusive upper bound; the time of day is ignored.
func (d DateType) Max(t time.Time) DateType { m := truncateDay(t); d.bounds.max = &m; return d }

// WithMock replaces the default mock.
func (d DateType) WithMock(fn MockFunc) DateType { d.mockFn = fn; return d }

func truncateDay(t time.Time) time.Time {
	y, m, day := t.UTC().Date()
	return time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
}

func (DateType) primitiveKind() string { return "string" }

func (d DateType) Parse(ctx context.Context, raw any) (any, error) {
	s, ok := raw.(string)
	if !ok {
		return nil, invalidType("string")
	}
	t, err := codec.DateISO().Decode(ctx, s)
	if err != nil {
		return nil, err
	}
	if iss := d.bounds.check(t); len(iss) > 0 {
		return nil, iss
	}
	return s, nil
}

func (d DateType) Resolve(ctx context.Context, raw any) (any, error) { return d.Parse(ctx, raw) }

func (d DateType) Schema() *descriptor.Schema {
	return &descriptor.Schema{Type: "date", Validation: d.bounds.rules()}
}

func (d DateType) Mock(path string) any {
	return mockAt(path, d.mockFn, func(g *mock.Generator, _ string) any {
		from, to := d.bounds.window()
		s, _ := codec.DateISO().Encode(context.Background(), g.DateBetween(from, to))
		return s
	})
}
