package sanity

import (
	"bytes"
	"errors"
	"io"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/saiichihashimoto/sanity-typed-schema-builder-sub000/i18n"
)

type dupFrame struct {
	object       bool
	keys         map[string]struct{}
	expectingKey bool
	key          string
	index        int
}

// DuplicateKeys reports every object key that occurs twice within the same
// object of data. Decoding into map[string]any silently keeps the last value,
// so ParseJSON runs this first. maxIssues <= 0 means unlimited.
func DuplicateKeys(data []byte, maxIssues int) (Issues, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var (
		iss   Issues
		stack []dupFrame
	)
	// value marks the end of one value inside the enclosing container.
	value := func() {
		if len(stack) == 0 {
			return
		}
		top := &stack[len(stack)-1]
		if top.object {
			top.expectingKey = true
		} else {
			top.index++
		}
	}
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			if len(stack) > 0 {
				return nil, Fail(CodeParseError, "unexpected end of JSON input")
			}
			break
		}
		if err != nil {
			return nil, Fail(CodeParseError, err.Error())
		}
		switch v := tok.(type) {
		case json.Delim:
			switch v {
			case '{':
				stack = append(stack, dupFrame{object: true, keys: map[string]struct{}{}, expectingKey: true})
			case '[':
				stack = append(stack, dupFrame{})
			case '}', ']':
				stack = stack[:len(stack)-1]
				value()
			}
		case string:
			if n := len(stack); n > 0 && stack[n-1].object && stack[n-1].expectingKey {
				top := &stack[n-1]
				top.key = v
				top.expectingKey = false
				if _, seen := top.keys[v]; seen {
					iss = AppendIssues(iss, Issue{Path: dupPointer(stack), Code: CodeDuplicateKey, Message: i18n.T(CodeDuplicateKey, nil), Hint: "key '" + v + "' duplicated"})
					if maxIssues > 0 && len(iss) >= maxIssues {
						return iss, nil
					}
				}
				top.keys[v] = struct{}{}
				continue
			}
			value()
		default:
			value()
		}
	}
	return iss, nil
}

func dupPointer(stack []dupFrame) string {
	var b strings.Builder
	for _, f := range stack {
		b.WriteByte('/')
		if f.object {
			b.WriteString(strings.ReplaceAll(strings.ReplaceAll(f.key, "~", "~0"), "/", "~1"))
		} else {
			b.WriteString(strconv.Itoa(f.index))
		}
	}
	return b.String()
}
