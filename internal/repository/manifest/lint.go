package manifest

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const schemaName = "package.schema.json"

//go:embed schema/package.schema.json
var schemaBytes []byte

//nolint:gochecknoglobals // Compiled once per process.
var (
	compiledSchema *jsonschema.Schema
	compileOnce    sync.Once
	compileErr     error
	printer        = message.NewPrinter(language.English)
)

// Issue is one schema violation.
type Issue struct {
	// Path is the JSON pointer of the offending value, "" for the document itself.
	Path string
	// Message describes the violation.
	Message string
}

// String renders the issue for log output.
func (i Issue) String() string {
	if i.Path == "" {
		return i.Message
	}

	return i.Path + ": " + i.Message
}

func schema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaBytes))
		if err != nil {
			compileErr = fmt.Errorf("unmarshal schema: %w", err)
			return
		}

		compiler := jsonschema.NewCompiler()
		if err = compiler.AddResource(schemaName, doc); err != nil {
			compileErr = fmt.Errorf("add schema resource: %w", err)
			return
		}

		compiledSchema, compileErr = compiler.Compile(schemaName)
	})

	return compiledSchema, compileErr
}

// Lint checks doc against the NW.js manifest schema. Violations are returned
// as issues; the error is reserved for schema or encoding failures.
func Lint(doc *Document) ([]Issue, error) {
	sch, err := schema()
	if err != nil {
		return nil, err
	}

	data, err := doc.Marshal()
	if err != nil {
		return nil, err
	}

	instance, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("prepare manifest for lint: %w", err)
	}

	err = sch.Validate(instance)
	if err == nil {
		return nil, nil
	}

	validationErr, ok := err.(*jsonschema.ValidationError) //nolint:errorlint // Validate returns the concrete type.
	if !ok {
		return nil, fmt.Errorf("lint manifest: %w", err)
	}

	var issues []Issue

	collectIssues(validationErr, &issues)

	if len(issues) == 0 {
		issues = append(issues, Issue{Message: validationErr.Error()})
	}

	return issues, nil
}

// collectIssues keeps the leaves of the validation error tree.
func collectIssues(ve *jsonschema.ValidationError, issues *[]Issue) {
	if len(ve.Causes) > 0 {
		for _, cause := range ve.Causes {
			collectIssues(cause, issues)
		}

		return
	}

	if ve.ErrorKind == nil {
		return
	}

	path := ""
	if len(ve.InstanceLocation) > 0 {
		path = "/" + strings.Join(ve.InstanceLocation, "/")
	}

	*issues = append(*issues, Issue{
		Path:    path,
		Message: ve.ErrorKind.LocalizedString(printer),
	})
}
