package validator

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gnzdotmx/workflowlint/internal/workflow"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// SchemaChecker validates documents against a compiled JSON Schema (draft 2020-12 by default)
type SchemaChecker struct {
	schema  *jsonschema.Schema
	printer *message.Printer
}

// LoadSchema compiles the JSON Schema at path. Relative $refs resolve against
// the schema file's directory.
func LoadSchema(path string) (*SchemaChecker, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve schema path: %w", err)
	}

	f, err := os.Open(abs)
	if err != nil {
		return nil, fmt.Errorf("failed to open schema: %w", err)
	}
	defer func() { _ = f.Close() }()

	doc, err := jsonschema.UnmarshalJSON(f)
	if err != nil {
		return nil, fmt.Errorf("unmarshal schema %s: %w", path, err)
	}

	c := jsonschema.NewCompiler()
	c.DefaultDraft(jsonschema.Draft2020)
	c.AssertFormat()
	if err := c.AddResource(abs, doc); err != nil {
		return nil, fmt.Errorf("add schema resource: %w", err)
	}

	compiled, err := c.Compile(abs)
	if err != nil {
		return nil, fmt.Errorf("compile schema %s: %w", path, err)
	}

	return &SchemaChecker{
		schema:  compiled,
		printer: message.NewPrinter(language.English),
	}, nil
}

// pointerEscaper escapes a JSON Pointer reference token (RFC 6901)
var pointerEscaper = strings.NewReplacer("~", "~0", "/", "~1")

// Check validates the document root, returning a *workflow.SchemaError on violation
func (s *SchemaChecker) Check(doc *workflow.Document) error {
	err := s.schema.Validate(doc.Root)
	if err == nil {
		return nil
	}

	var verr *jsonschema.ValidationError
	if !errors.As(err, &verr) {
		return &workflow.SchemaError{Violations: []string{err.Error()}}
	}
	return &workflow.SchemaError{Violations: s.collectViolations(verr)}
}

// collectViolations walks a ValidationError tree and returns its leaves as
// "<instance location>: <reason>"
func (s *SchemaChecker) collectViolations(verr *jsonschema.ValidationError) []string {
	if len(verr.Causes) == 0 {
		segments := make([]string, len(verr.InstanceLocation))
		for i, seg := range verr.InstanceLocation {
			segments[i] = pointerEscaper.Replace(seg)
		}
		loc := "/" + strings.Join(segments, "/")
		return []string{fmt.Sprintf("%s: %s", loc, verr.ErrorKind.LocalizedString(s.printer))}
	}

	var violations []string
	for _, cause := range verr.Causes {
		violations = append(violations, s.collectViolations(cause)...)
	}
	return violations
}
