package contract

import (
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"
)

// Unbounded disables the upper limit of an Array rule.
const Unbounded = -1

// Rule is one structural requirement on the field(s) at Path.
type Rule struct {
	Path  string
	Name  string
	check func(value any, present bool) (detail string, ok bool)
}

func missing(present bool) (string, bool) {
	if !present {
		return "field is missing", false
	}
	return "", true
}

func describe(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case float64:
		return "number"
	case bool:
		return "boolean"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}

// String requires a JSON string.
func String(path string) Rule {
	return Rule{
		Path: path,
		Name: "string",
		check: func(v any, present bool) (string, bool) {
			if d, ok := missing(present); !ok {
				return d, false
			}
			if _, ok := v.(string); !ok {
				return "expected string, got " + describe(v), false
			}
			return "", true
		},
	}
}

// MinLength requires a string of at least n characters.
func MinLength(path string, n int) Rule {
	return Rule{
		Path: path,
		Name: fmt.Sprintf("min_length(%d)", n),
		check: func(v any, present bool) (string, bool) {
			if d, ok := missing(present); !ok {
				return d, false
			}
			s, ok := v.(string)
			if !ok {
				return "expected string, got " + describe(v), false
			}
			if l := utf8.RuneCountInString(s); l < n {
				return fmt.Sprintf("length %d", l), false
			}
			return "", true
		},
	}
}

// Object requires a JSON object.
func Object(path string) Rule {
	return Rule{
		Path: path,
		Name: "object",
		check: func(v any, present bool) (string, bool) {
			if d, ok := missing(present); !ok {
				return d, false
			}
			if _, ok := v.(map[string]any); !ok {
				return "expected object, got " + describe(v), false
			}
			return "", true
		},
	}
}

// Array requires a JSON array whose length lies in [minLen, maxLen].
// Pass Unbounded as maxLen for no upper limit.
func Array(path string, minLen, maxLen int) Rule {
	name := fmt.Sprintf("array(%d..%d)", minLen, maxLen)
	switch {
	case maxLen == Unbounded:
		name = fmt.Sprintf("array(%d..)", minLen)
	case minLen == maxLen:
		name = fmt.Sprintf("array(%d)", minLen)
	}

	return Rule{
		Path: path,
		Name: name,
		check: func(v any, present bool) (string, bool) {
			if d, ok := missing(present); !ok {
				return d, false
			}
			arr, ok := v.([]any)
			if !ok {
				return "expected array, got " + describe(v), false
			}
			if len(arr) < minLen || (maxLen != Unbounded && len(arr) > maxLen) {
				return fmt.Sprintf("got %d items", len(arr)), false
			}
			return "", true
		},
	}
}

// OneOf requires a string equal to one of values.
func OneOf(path string, values ...string) Rule {
	return Rule{
		Path: path,
		Name: fmt.Sprintf("one_of(%s)", strings.Join(values, "|")),
		check: func(v any, present bool) (string, bool) {
			if d, ok := missing(present); !ok {
				return d, false
			}
			s, ok := v.(string)
			if !ok {
				return "expected string, got " + describe(v), false
			}
			for _, allowed := range values {
				if s == allowed {
					return "", true
				}
			}
			return fmt.Sprintf("got %q", s), false
		},
	}
}

// URL requires an absolute http(s) URL.
func URL(path string) Rule {
	return Rule{
		Path: path,
		Name: "url",
		check: func(v any, present bool) (string, bool) {
			if d, ok := missing(present); !ok {
				return d, false
			}
			s, ok := v.(string)
			if !ok {
				return "expected string, got " + describe(v), false
			}
			u, err := url.Parse(s)
			if err != nil {
				return err.Error(), false
			}
			if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
				return fmt.Sprintf("not an absolute http(s) url: %q", s), false
			}
			return "", true
		},
	}
}
