package content

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

//go:embed schema/content.schema.json
var schemaJSON []byte

const schemaURL = "https://binhi.museum/schemas/content.schema.json"

var compiledSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaJSON))
	if err != nil {
		return nil, fmt.Errorf("failed to parse schema JSON: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(schemaURL, doc); err != nil {
		return nil, fmt.Errorf("failed to add schema resource: %w", err)
	}
	return compiler.Compile(schemaURL)
})

// ValidateSchema checks the merged raw YAML documents against the content schema.
// Shape errors are reported with their location before any typed decoding happens.
func ValidateSchema(doc map[string]any) error {
	schema, err := compiledSchema()
	if err != nil {
		return fmt.Errorf("failed to load content schema: %w", err)
	}

	// Round-trip through JSON so numbers arrive the way the validator expects
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgParseContent, err)
	}
	value, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgParseContent, err)
	}

	if err := schema.Validate(value); err != nil {
		return formatValidationError(err)
	}
	return nil
}

func formatValidationError(err error) error {
	var verr *jsonschema.ValidationError
	if !errors.As(err, &verr) {
		return fmt.Errorf("%s: %w", ErrMsgInvalidContent, err)
	}
	var lines []string
	collectErrors(verr, &lines)
	return fmt.Errorf("%s: schema validation failed:\n%s", ErrMsgInvalidContent, strings.Join(lines, "\n"))
}

// collectErrors walks the cause tree, keeping only the leaves
func collectErrors(err *jsonschema.ValidationError, lines *[]string) {
	if len(err.Causes) == 0 {
		*lines = append(*lines, formatError(err))
		return
	}
	for _, cause := range err.Causes {
		collectErrors(cause, lines)
	}
}

func formatError(err *jsonschema.ValidationError) string {
	location := "/" + strings.Join(err.InstanceLocation, "/")
	if err.ErrorKind == nil {
		return fmt.Sprintf("  - at %s: validation failed", location)
	}
	keywords := strings.Join(err.ErrorKind.KeywordPath(), ".")
	if keywords == "" {
		return fmt.Sprintf("  - at %s: validation failed", location)
	}
	return fmt.Sprintf("  - at %s: %s validation failed", location, keywords)
}
