package eval

import (
	"errors"
	"fmt"
	"math/big"
	"regexp"
	"strconv"

	"gopkg.in/yaml.v3"

	"hexshell/pkg/hextypes"
)

// Custom tags understood in literals.
const (
	tagTuple  = "!tuple"
	tagErrno  = "!errno"
	tagSignal = "!signal"
	tagSet    = "!!set"
)

var bigIntPattern = regexp.MustCompile(`^[-+]?[0-9]+$`)

// ParseLiteral converts a YAML flow literal into a value. Anchors and aliases may form
// cycles, e.g. "&a [1, *a]" is a list containing itself. Mappings keep insertion order,
// "!!set" mappings become sets and "!tuple" sequences become tuples.
func ParseLiteral(text string) (any, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(text), &doc); err != nil {
		return nil, fmt.Errorf("invalid literal: %w", err)
	}
	if doc.Kind == 0 {
		return nil, nil
	}
	c := converter{memo: make(map[*yaml.Node]any)}
	return c.convert(&doc)
}

type converter struct {
	memo map[*yaml.Node]any
}

func (c converter) convert(n *yaml.Node) (any, error) {
	if v, ok := c.memo[n]; ok {
		return v, nil
	}
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return c.convert(n.Content[0])
	case yaml.AliasNode:
		if n.Alias == nil {
			return nil, errors.New("alias without anchor")
		}
		return c.convert(n.Alias)
	case yaml.SequenceNode:
		return c.sequence(n)
	case yaml.MappingNode:
		if n.Tag == tagSet {
			return c.set(n)
		}
		return c.mapping(n)
	case yaml.ScalarNode:
		return scalar(n)
	}
	return nil, fmt.Errorf("unsupported literal at line %d", n.Line)
}

// The container is registered before its children are converted so aliases to an
// enclosing anchor resolve to the same value.
func (c converter) sequence(n *yaml.Node) (any, error) {
	items := make([]any, len(n.Content))
	if n.Tag == tagTuple {
		c.memo[n] = hextypes.Tuple(items)
	} else {
		c.memo[n] = items
	}
	for i, child := range n.Content {
		v, err := c.convert(child)
		if err != nil {
			return nil, err
		}
		items[i] = v
	}
	return c.memo[n], nil
}

func (c converter) mapping(n *yaml.Node) (any, error) {
	m := hextypes.NewOrderedMap()
	c.memo[n] = m
	for i := 0; i+1 < len(n.Content); i += 2 {
		k, err := c.convert(n.Content[i])
		if err != nil {
			return nil, err
		}
		v, err := c.convert(n.Content[i+1])
		if err != nil {
			return nil, err
		}
		m.Set(k, v)
	}
	return m, nil
}

func (c converter) set(n *yaml.Node) (any, error) {
	s, _ := hextypes.NewSet()
	c.memo[n] = s
	for i := 0; i < len(n.Content); i += 2 {
		k, err := c.convert(n.Content[i])
		if err != nil {
			return nil, err
		}
		if err := s.Add(k); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func scalar(n *yaml.Node) (any, error) {
	switch n.Tag {
	case tagErrno, tagSignal:
		code, err := strconv.Atoi(n.Value)
		if err != nil {
			return nil, fmt.Errorf("%s expects an integer, got %q", n.Tag, n.Value)
		}
		if n.Tag == tagErrno {
			return Errno(code), nil
		}
		return Signal(code), nil
	}

	if n.Style == 0 {
		switch {
		case n.Value == "nil":
			return nil, nil
		case n.ShortTag() == "!!float" && bigIntPattern.MatchString(n.Value):
			// Integers beyond 64 bits resolve as floats.
			b, ok := new(big.Int).SetString(n.Value, 10)
			if ok {
				return b, nil
			}
		}
	}

	var v any
	if err := n.Decode(&v); err != nil {
		return nil, fmt.Errorf("invalid scalar %q: %w", n.Value, err)
	}
	return v, nil
}
