package sanity

import (
	"errors"
	"fmt"
	"strings"
)

// Issue codes (exported consts for IDE completion and type safety by convention)
const (
	// Shape mismatches: the value's structure disagrees with the declared type.
	CodeInvalidType          = "invalid_type"
	CodeRequired             = "required"
	CodeUnknownKey           = "unknown_key"
	CodeInvalidLiteral       = "invalid_literal"
	CodeDiscriminatorMissing = "discriminator_missing"
	CodeDiscriminatorUnknown = "discriminator_unknown"
	CodeDuplicateKey         = "duplicate_key"
	// Constraint violations: structurally valid, but a declared rule fails.
	CodeTooSmall      = "too_small"
	CodeTooBig        = "too_big"
	CodeTooShort      = "too_short"
	CodeTooLong       = "too_long"
	CodePattern       = "pattern"
	CodeInvalidEnum   = "invalid_enum"
	CodeInvalidFormat = "invalid_format"
	CodeNotInteger    = "not_integer"
	CodePrecision     = "precision"
	CodeNotUnique     = "not_unique"
	// Collaborator errors (document lookup during Resolve).
	CodeDependencyUnavailable = "dependency_unavailable"
	CodeParseError            = "parse_error"
)

var (
	// ErrShapeMismatch matches Issues containing at least one shape-mismatch code.
	ErrShapeMismatch = errors.New("sanity: shape mismatch")
	// ErrConstraintViolation matches Issues containing at least one constraint code.
	ErrConstraintViolation = errors.New("sanity: constraint violation")
)

var _shapeCodes = map[string]struct{}{
	CodeInvalidType:          {},
	CodeRequired:             {},
	CodeUnknownKey:           {},
	CodeInvalidLiteral:       {},
	CodeDiscriminatorMissing: {},
	CodeDiscriminatorUnknown: {},
	CodeDuplicateKey:         {},
	CodeParseError:           {},
}

var _constraintCodes = map[string]struct{}{
	CodeTooSmall:      {},
	CodeTooBig:        {},
	CodeTooShort:      {},
	CodeTooLong:       {},
	CodePattern:       {},
	CodeInvalidEnum:   {},
	CodeInvalidFormat: {},
	CodeNotInteger:    {},
	CodePrecision:     {},
	CodeNotUnique:     {},
}

// IsShapeCode reports whether code belongs to the shape-mismatch family.
func IsShapeCode(code string) bool {
	_, ok := _shapeCodes[code]
	return ok
}

// IsConstraintCode reports whether code belongs to the constraint-violation family.
func IsConstraintCode(code string) bool {
	_, ok := _constraintCodes[code]
	return ok
}

// Issue represents a single validation entry.
type Issue struct {
	Path    string // JSON Pointer (for example: /items/2/title).
	Code    string // One of the codes listed above.
	Message string
	Hint    string // Optional: remediation hints, expected literal, etc.
	Cause   error  // Optional: underlying error.
	// Params carries structured parameters (e.g., {"min":1, "max":10, "got":42})
	// for i18n and observability.
	Params map[string]any
}

// Issues is a collection of validation errors that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		// e.g. invalid_type at /path
		fmt.Fprintf(b, "%s at %s", it.Code, it.Path)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// Is lets errors.Is classify Issues against ErrShapeMismatch and
// ErrConstraintViolation.
func (iss Issues) Is(target error) bool {
	switch target {
	case ErrShapeMismatch:
		for _, it := range iss {
			if IsShapeCode(it.Code) {
				return true
			}
		}
	case ErrConstraintViolation:
		for _, it := range iss {
			if IsConstraintCode(it.Code) {
				return true
			}
		}
	}
	return false
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	dst = append(dst, more...)
	return dst
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

// Rebase prefixes every issue path with base, which must be a JSON Pointer.
// Root-level child issues ("" or "/") collapse onto base itself.
func Rebase(base string, err error) Issues {
	if err == nil {
		return nil
	}
	child, ok := AsIssues(err)
	if !ok {
		return Issues{Issue{Path: base, Code: CodeParseError, Message: err.Error(), Cause: err}}
	}
	out := make(Issues, 0, len(child))
	for _, it := range child {
		p := it.Path
		switch {
		case p == "" || p == "/":
			p = base
		case p[0] == '/':
			p = base + p
		default:
			p = base + "/" + p
		}
		it.Path = p
		out = append(out, it)
	}
	return out
}

// ConfigError reports builder misuse detected at construction time, such as a
// duplicate field name or an ambiguous union.
type ConfigError struct {
	Builder string // e.g. "object", "array", "document:post"
	Field   string // offending field or variant, when applicable
	Reason  string
}

func (e *ConfigError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("sanity: %s: %s: %s", e.Builder, e.Field, e.Reason)
	}
	return fmt.Sprintf("sanity: %s: %s", e.Builder, e.Reason)
}
