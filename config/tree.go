// Package config defines the generic configuration tree the microarchitecture
// parser and the ISA loader consume. Reading that tree from an actual YAML
// file is the job of an external collaborator; this package
// only fixes the shape both sides agree on, and offers a yaml.v3-backed
// decode for tests and fixtures.
package config

import "go.yaml.in/yaml/v3"

// Tree is a generic nested key/value structure, the result of decoding a
// YAML mapping with no fixed schema. Processor descriptions and ISA maps
// are both represented this way before they're interpreted by procdesc.Load
// and isa.Load respectively.
type Tree = map[string]any

// Parse decodes raw YAML bytes into a Tree. It exists primarily for tests
// and example fixtures — production callers normally receive an
// already-parsed Tree from their own configuration-reading layer.
func Parse(raw []byte) (Tree, error) {
	var tree Tree
	if err := yaml.Unmarshal(raw, &tree); err != nil {
		return nil, err
	}

	return tree, nil
}

// Seq returns value as a []any sequence, leaving its elements as decoded,
// and tolerating a nil/missing key (treated as an empty sequence). Any
// other value type also yields nil.
func Seq(value any) []any {
	if value == nil {
		return nil
	}

	seq, _ := value.([]any)
	return seq
}

// AsTree coerces a decoded YAML mapping value (map[string]any, or the
// map[any]any some decoders produce) into a Tree.
func AsTree(value any) Tree {
	switch m := value.(type) {
	case Tree:
		return m
	case map[any]any:
		out := make(Tree, len(m))
		for k, v := range m {
			if ks, ok := k.(string); ok {
				out[ks] = v
			}
		}

		return out
	default:
		return nil
	}
}

// StringSeq returns value as a slice of strings, tolerating []any (the
// common decode shape) and []string.
func StringSeq(value any) []string {
	switch v := value.(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))

		for _, elem := range v {
			if s, ok := elem.(string); ok {
				out = append(out, s)
			}
		}

		return out
	default:
		return nil
	}
}
