// Package workflow parses workflow-definition documents and checks their
// structural contract
package workflow

import (
	"bytes"

	"github.com/gnzdotmx/workflowlint/internal/utils"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v6"
)

// RequiredKeys are the top-level keys every workflow document must carry, in check order
var RequiredKeys = []string{"name", "nodes", "connections"}

// Document is a parsed workflow file. Root holds the decoded JSON value with
// numbers kept as json.Number; only the required keys are interpreted.
type Document struct {
	Path string
	Root any
}

// Load reads and parses the workflow document at path. It returns a
// *ReadError or *ParseError on failure.
func Load(path string) (*Document, error) {
	data, err := utils.ReadRegularFile(path)
	if err != nil {
		return nil, &ReadError{Path: path, Err: err}
	}

	root, err := Parse(data)
	if err != nil {
		return nil, err
	}

	return &Document{Path: path, Root: root}, nil
}

// Parse decodes data as a single JSON value
func Parse(data []byte) (any, error) {
	root, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return nil, &ParseError{Err: err}
	}
	return root, nil
}

// Fields returns the top-level object, or nil when the document is not an object
func (d *Document) Fields() map[string]any {
	fields, _ := d.Root.(map[string]any)
	return fields
}

// Validate checks the structural contract: every required key is present,
// checked in order, and nodes is an array.
func (d *Document) Validate() error {
	fields := d.Fields()
	for _, key := range RequiredKeys {
		if _, ok := fields[key]; !ok {
			return &MissingFieldError{Field: key}
		}
	}

	if _, ok := fields["nodes"].([]any); !ok {
		return &ShapeError{Field: "nodes", Expected: "an array"}
	}

	return nil
}

// Nodes returns the nodes array. Call after Validate.
func (d *Document) Nodes() []any {
	nodes, _ := d.Fields()["nodes"].([]any)
	return nodes
}
