// Package validation checks configuration documents against the JSON schemas
// embedded in the binary.
package validation

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"
)

// SchemaGame validates the YAML game configuration
const SchemaGame = "game.schema.json"

const schemaBaseURL = "https://petalgarden.invalid/schemas/"

//go:embed schemas/*.schema.json
var schemaFS embed.FS

// SchemaValidator validates documents against embedded schemas
type SchemaValidator interface {
	ValidateJSON(data []byte, schemaName string) error
	ValidateYAML(data []byte, schemaName string) error
}

type validator struct {
	mu       sync.Mutex
	compiler *jsonschema.Compiler
	schemas  map[string]*jsonschema.Schema
	printer  *message.Printer
}

// NewSchemaValidator creates a new schema validator
func NewSchemaValidator() SchemaValidator {
	return &validator{
		compiler: jsonschema.NewCompiler(),
		schemas:  make(map[string]*jsonschema.Schema),
		printer:  message.NewPrinter(language.English),
	}
}

// ValidateJSON validates JSON data bytes against the named schema
func (v *validator) ValidateJSON(data []byte, schemaName string) error {
	schema, err := v.loadSchema(schemaName)
	if err != nil {
		return fmt.Errorf(ErrFmtLoadSchema, schemaName, err)
	}

	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf(ErrFmtParseJSON, err)
	}

	if err := schema.Validate(doc); err != nil {
		return v.formatValidationError(err)
	}
	return nil
}

// ValidateYAML converts YAML to its JSON form and validates it. Mapping keys
// must be strings.
func (v *validator) ValidateYAML(data []byte, schemaName string) error {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf(ErrFmtParseYAML, err)
	}
	jsonData, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf(ErrFmtConvertYAML, err)
	}
	return v.ValidateJSON(jsonData, schemaName)
}

// loadSchema compiles a schema from the embedded files, caching the result
func (v *validator) loadSchema(schemaName string) (*jsonschema.Schema, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if schema, ok := v.schemas[schemaName]; ok {
		return schema, nil
	}

	raw, err := schemaFS.ReadFile("schemas/" + schemaName)
	if err != nil {
		return nil, fmt.Errorf(ErrFmtReadSchema, err)
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf(ErrFmtParseSchema, err)
	}

	url := schemaBaseURL + schemaName
	if err := v.compiler.AddResource(url, doc); err != nil {
		return nil, fmt.Errorf(ErrFmtAddSchema, err)
	}
	schema, err := v.compiler.Compile(url)
	if err != nil {
		return nil, fmt.Errorf(ErrFmtCompileSchema, err)
	}

	v.schemas[schemaName] = schema
	return schema, nil
}

// formatValidationError lists every failing leaf with its document location
func (v *validator) formatValidationError(err error) error {
	var validationErr *jsonschema.ValidationError
	if !errors.As(err, &validationErr) {
		return fmt.Errorf(ErrFmtValidation, err)
	}
	var msgs []string
	v.collectErrors(validationErr, &msgs)
	return fmt.Errorf(ErrFmtSchemaFailed, ErrSchemaValidation, strings.Join(msgs, "\n"))
}

// collectErrors recursively collects the leaf validation errors
func (v *validator) collectErrors(err *jsonschema.ValidationError, msgs *[]string) {
	if len(err.Causes) == 0 {
		*msgs = append(*msgs, v.formatError(err))
		return
	}
	for _, cause := range err.Causes {
		v.collectErrors(cause, msgs)
	}
}

// formatError formats a single validation error
func (v *validator) formatError(err *jsonschema.ValidationError) string {
	location := "/" + strings.Join(err.InstanceLocation, "/")
	if err.ErrorKind == nil {
		return fmt.Sprintf(MsgFmtLeafUnknown, location)
	}
	return fmt.Sprintf(MsgFmtLeaf, location, err.ErrorKind.LocalizedString(v.printer))
}
