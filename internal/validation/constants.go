package validation

import "errors"

// ErrSchemaValidation is wrapped by every document that fails its schema
var ErrSchemaValidation = errors.New("schema validation failed")

// Error formats
const (
	ErrFmtLoadSchema    = "failed to load schema %s: %w"
	ErrFmtReadSchema    = "failed to read schema: %w"
	ErrFmtParseSchema   = "failed to parse schema JSON: %w"
	ErrFmtAddSchema     = "failed to add schema resource: %w"
	ErrFmtCompileSchema = "failed to compile schema: %w"
	ErrFmtParseJSON     = "failed to parse JSON data: %w"
	ErrFmtParseYAML     = "failed to parse YAML data: %w"
	ErrFmtConvertYAML   = "failed to convert YAML to JSON: %w"
	ErrFmtValidation    = "validation error: %w"
	ErrFmtSchemaFailed  = "%w:\n%s"
)

// Leaf error formats
const (
	MsgFmtLeaf        = "  - at %s: %s"
	MsgFmtLeafUnknown = "  - at %s: validation failed"
)
