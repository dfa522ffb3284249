package workflow

import (
	"fmt"
	"sort"
)

// CheckConnections verifies that the connection map only refers to declared
// nodes. Nodes must be objects with a unique string name; connections follow
// the n8n layout source -> output type -> output index -> []{node}.
// Call after Validate.
func (d *Document) CheckConnections() error {
	names := make(map[string]bool)
	for i, raw := range d.Nodes() {
		node, ok := raw.(map[string]any)
		if !ok {
			return connectionErrorf("node %d must be an object", i)
		}
		name, ok := node["name"].(string)
		if !ok || name == "" {
			return connectionErrorf("node %d has no name", i)
		}
		if names[name] {
			return connectionErrorf("duplicate node name %q", name)
		}
		names[name] = true
	}

	conns, ok := d.Fields()["connections"].(map[string]any)
	if !ok {
		return connectionErrorf("connections must be an object")
	}

	for _, source := range sortedKeys(conns) {
		if !names[source] {
			return connectionErrorf("connection source %q is not a node", source)
		}

		outputs, ok := conns[source].(map[string]any)
		if !ok {
			return connectionErrorf("connections from %q must be an object", source)
		}

		for _, outputType := range sortedKeys(outputs) {
			groups, ok := outputs[outputType].([]any)
			if !ok {
				return connectionErrorf("connections from %q (%s) must be an array", source, outputType)
			}
			for _, group := range groups {
				// n8n writes null for unconnected output slots
				if group == nil {
					continue
				}
				targets, ok := group.([]any)
				if !ok {
					return connectionErrorf("connections from %q (%s) must be nested arrays", source, outputType)
				}
				for _, rawTarget := range targets {
					target, _ := rawTarget.(map[string]any)
					nodeName, ok := target["node"].(string)
					if !ok {
						return connectionErrorf("connection from %q has no target node", source)
					}
					if !names[nodeName] {
						return connectionErrorf("connection target %q from %q is not a node", nodeName, source)
					}
				}
			}
		}
	}

	return nil
}

func connectionErrorf(format string, args ...interface{}) error {
	return &ConnectionError{Message: fmt.Sprintf(format, args...)}
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
