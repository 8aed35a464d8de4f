// Package contract checks generated JSON against a per-agent set of structural rules.
//
// A Contract is an ordered list of rules. Each rule addresses a field by path:
// dot-separated object keys, where a "[]" suffix fans out over every element of
// an array ("resources[].url"). Rules run in declaration order and validation
// stops at the first violation.
package contract

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/futig/career-agent/internal/entity"
)

type Contract struct {
	Name  string
	Rules []Rule
}

func New(name string, rules ...Rule) Contract {
	return Contract{Name: name, Rules: rules}
}

// Check applies the rules to an already parsed JSON value.
func (c Contract) Check(root any) error {
	for _, rule := range c.Rules {
		for _, n := range resolve(root, rule.Path) {
			if detail, ok := rule.check(n.value, n.present); !ok {
				return &entity.ValidationError{
					Contract: c.Name,
					Field:    n.path,
					Rule:     rule.Name,
					Detail:   detail,
				}
			}
		}
	}
	return nil
}

// Validate parses raw as JSON, checks it against c and decodes it into T.
// A value is returned only when every rule holds.
func Validate[T any](raw string, c Contract) (T, error) {
	var out T

	body := []byte(stripFence(raw))

	var parsed any
	if err := json.Unmarshal(body, &parsed); err != nil {
		return out, &entity.ParseError{Contract: c.Name, Err: err}
	}

	if err := c.Check(parsed); err != nil {
		return out, err
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	if err := dec.Decode(&out); err != nil {
		var zero T
		return zero, &entity.ParseError{Contract: c.Name, Err: fmt.Errorf("decode: %w", err)}
	}

	// Struct decoding matches keys case-insensitively, so a key such as
	// "Suggestions" can replace a field the rules saw as "suggestions".
	// The decoded value is checked again in its canonical form.
	if err := c.recheck(out); err != nil {
		var zero T
		return zero, err
	}

	return out, nil
}

func (c Contract) recheck(v any) error {
	canonical, err := json.Marshal(v)
	if err != nil {
		return &entity.ParseError{Contract: c.Name, Err: fmt.Errorf("re-encode: %w", err)}
	}
	var tree any
	if err := json.Unmarshal(canonical, &tree); err != nil {
		return &entity.ParseError{Contract: c.Name, Err: fmt.Errorf("re-encode: %w", err)}
	}
	return c.Check(tree)
}

// stripFence removes a surrounding markdown code fence some models add even in JSON mode.
func stripFence(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:]
	} else {
		return raw
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

type node struct {
	path    string
	value   any
	present bool
}

// resolve expands path against root into the concrete nodes it addresses.
// Missing object keys yield a node with present == false; fan-out over a
// value that is not an array yields nothing, since the rule on the array
// itself reports that.
func resolve(root any, path string) []node {
	nodes := []node{{value: root, present: true}}
	if path == "" {
		return nodes
	}

	for _, seg := range strings.Split(path, ".") {
		name, each := strings.CutSuffix(seg, "[]")

		next := make([]node, 0, len(nodes))
		for _, n := range nodes {
			if !n.present {
				continue
			}

			cur := n
			if name != "" {
				obj, _ := n.value.(map[string]any)
				v, ok := obj[name]
				cur = node{path: join(n.path, name), value: v, present: ok}
			}

			if !each {
				next = append(next, cur)
				continue
			}

			arr, ok := cur.value.([]any)
			if !ok {
				continue
			}
			for i, v := range arr {
				next = append(next, node{
					path:    fmt.Sprintf("%s[%d]", cur.path, i),
					value:   v,
					present: true,
				})
			}
		}
		nodes = next
	}

	return nodes
}

func join(parent, name string) string {
	if parent == "" {
		return name
	}
	return parent + "." + name
}
