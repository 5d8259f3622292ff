// Package codec converts between wire strings and domain values for the
// date-like content types.
package codec

import (
	"context"
	"time"

	sanity "github.com/saiichihashimoto/sanity-typed-schema-builder-sub000"
)

// Codec performs bidirectional transformation between the wire representation A
// and the domain representation B.
type Codec[A, B any] interface {
	Decode(ctx context.Context, a A) (B, error)
	Encode(ctx context.Context, b B) (A, error)
}

// TimeRFC3339 returns a Codec that converts between RFC3339 strings and time.Time.
func TimeRFC3339() Codec[string, time.Time] { return rfc3339Codec{} }

// DateISO returns a Codec for calendar dates ("2006-01-02") decoded to midnight UTC.
func DateISO() Codec[string, time.Time] { return dateCodec{} }

// DateLayout is the wire layout of the date type.
const DateLayout = "2006-01-02"

type rfc3339Codec struct{}

func (rfc3339Codec) Decode(ctx context.Context, a string) (time.Time, error) {
	t, err := parseRFC3339(a)
	if err != nil {
		return time.Time{}, sanity.Issues{{Path: "/", Code: sanity.CodeInvalidFormat, Message: "invalid RFC3339 time", Hint: "RFC3339", Cause: err}}
	}
	return t, nil
}

func (rfc3339Codec) Encode(ctx context.Context, b time.Time) (string, error) {
	return formatRFC3339Canonical(b), nil
}

type dateCodec struct{}

func (dateCodec) Decode(ctx context.Context, a string) (time.Time, error) {
	t, err := time.Parse(DateLayout, a)
	if err != nil {
		return time.Time{}, sanity.Issues{{Path: "/", Code: sanity.CodeInvalidFormat, Message: "invalid date", Hint: DateLayout, Cause: err}}
	}
	return t, nil
}

func (dateCodec) Encode(ctx context.Context, b time.Time) (string, error) {
	return b.UTC().Format(DateLayout), nil
}

func parseRFC3339(s string) (time.Time, error) {
	// Accept RFC3339Nano (trailing zeros optional)
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		if t2, err2 := time.Parse(time.RFC3339, s); err2 == nil {
			return t2, nil
		}
		return time.Time{}, err
	}
	return t, nil
}

func formatRFC3339Canonical(t time.Time) string {
	// Normalize to UTC and format using RFC3339Nano (Go trims trailing zeros)
	return t.UTC().Format(time.RFC3339Nano)
}
