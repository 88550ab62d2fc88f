// Package model defines the domain types of the resource block tree.
package model

import "fmt"

// NodeClass describes the depth tier of a node in the resource hierarchy.
type NodeClass string

var (
	// Root marks the single city root of a tree.
	Root NodeClass = "root"
	// Big marks building-scale resources.
	Big NodeClass = "big"
	// Child marks room-scale resources.
	Child NodeClass = "child"
	// Tiny marks prop-scale resources.
	Tiny NodeClass = "tiny"
)

// ParseNodeClass decodes a lowercase class token.
func ParseNodeClass(s string) (NodeClass, error) {
	c := NodeClass(s)
	if !c.Valid() {
		return "", fmt.Errorf("class %q: %w", s, ErrInvalidClass)
	}
	return c, nil
}

// Valid reports whether c is one of the known classes.
func (c NodeClass) Valid() bool {
	switch c {
	case Root, Big, Child, Tiny:
		return true
	default:
		return false
	}
}

func (c NodeClass) String() string {
	return string(c)
}

// MarshalText implements encoding.TextMarshaler.
func (c NodeClass) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("class %q: %w", string(c), ErrInvalidClass)
	}
	return []byte(c), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Unknown tokens fail.
func (c *NodeClass) UnmarshalText(text []byte) error {
	parsed, err := ParseNodeClass(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
