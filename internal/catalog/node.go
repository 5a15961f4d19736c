package catalog

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// mappingIndex returns the index of key's key node in m.Content, or -1.
func mappingIndex(m *yaml.Node, key string) int {
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			return i
		}
	}
	return -1
}

// lookupNode walks path through nested mappings. It returns nil when a
// segment is absent or an intermediate node is not a mapping.
func lookupNode(root *yaml.Node, path []string) *yaml.Node {
	n := root
	for _, seg := range path {
		if n == nil || n.Kind != yaml.MappingNode {
			return nil
		}
		idx := mappingIndex(n, seg)
		if idx < 0 {
			return nil
		}
		n = n.Content[idx+1]
	}
	return n
}

func newMapping() *yaml.Node {
	return &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
}

func newKey(key string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key}
}

func isNull(n *yaml.Node) bool {
	return n.Kind == yaml.ScalarNode && n.ShortTag() == "!!null"
}

// setNode stores value at path, creating intermediate mappings. Comments on
// a replaced node are carried over to the new one.
func setNode(root *yaml.Node, path []string, value *yaml.Node) error {
	if len(path) == 0 {
		return fmt.Errorf("empty document path")
	}

	n := root
	for i, seg := range path {
		if n.Kind != yaml.MappingNode {
			return fmt.Errorf("%s is not a mapping", strings.Join(path[:i], "."))
		}
		idx := mappingIndex(n, seg)

		if i == len(path)-1 {
			if idx >= 0 {
				old := n.Content[idx+1]
				value.HeadComment = old.HeadComment
				value.LineComment = old.LineComment
				value.FootComment = old.FootComment
				n.Content[idx+1] = value
			} else {
				n.Content = append(n.Content, newKey(seg), value)
			}
			return nil
		}

		if idx < 0 {
			child := newMapping()
			n.Content = append(n.Content, newKey(seg), child)
			n = child
			continue
		}

		child := n.Content[idx+1]
		if isNull(child) {
			// "annotations:" with no value parses as null
			*child = *newMapping()
		}
		n = child
	}
	return nil
}

// deleteNode removes the entry at path. It reports whether anything was removed.
func deleteNode(root *yaml.Node, path []string) bool {
	if len(path) == 0 {
		return false
	}
	parent := lookupNode(root, path[:len(path)-1])
	if parent == nil || parent.Kind != yaml.MappingNode {
		return false
	}
	idx := mappingIndex(parent, path[len(path)-1])
	if idx < 0 {
		return false
	}
	parent.Content = append(parent.Content[:idx], parent.Content[idx+2:]...)
	return true
}

// encodeValue converts a Go value to a node with the tag and quoting the
// yaml encoder would choose, so "true" the string stays a string.
func encodeValue(v any) (*yaml.Node, error) {
	var n yaml.Node
	if err := n.Encode(v); err != nil {
		return nil, err
	}
	return &n, nil
}

// decodeScalar returns the typed value of a scalar node.
func decodeScalar(n *yaml.Node) (any, error) {
	switch n.ShortTag() {
	case "!!null":
		return nil, nil
	case "!!bool":
		var b bool
		err := n.Decode(&b)
		return b, err
	case "!!int":
		var i int
		err := n.Decode(&i)
		return i, err
	case "!!float":
		var f float64
		err := n.Decode(&f)
		return f, err
	default:
		return n.Value, nil
	}
}

// decodeNode returns the value of any node. Scalars decode by tag, other
// nodes decode into generic Go values.
func decodeNode(n *yaml.Node) (any, error) {
	if n.Kind == yaml.ScalarNode {
		return decodeScalar(n)
	}
	if n.Kind == yaml.AliasNode && n.Alias != nil {
		return decodeNode(n.Alias)
	}
	var v any
	if err := n.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

// joinSequence joins the scalar items of a sequence node with commas.
func joinSequence(n *yaml.Node) string {
	items := make([]string, 0, len(n.Content))
	for _, c := range n.Content {
		if c.Kind == yaml.ScalarNode {
			items = append(items, c.Value)
		}
	}
	return strings.Join(items, ",")
}

// splitCSV splits a comma list, trimming items and dropping empty ones.
func splitCSV(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
