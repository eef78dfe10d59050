package plugin

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

const runParamsSchemaURL = "https://github.com/nibzard/todo-rename/schema/run_params.json"

//go:embed schema/run_params.json
var runParamsSchemaJSON []byte

var runParamsSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true
	if err := compiler.AddResource(runParamsSchemaURL, bytes.NewReader(runParamsSchemaJSON)); err != nil {
		return nil, fmt.Errorf("add schema resource: %w", err)
	}
	schema, err := compiler.Compile(runParamsSchemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return schema, nil
})

// ParamsError reports a params document that does not satisfy the schema.
type ParamsError struct {
	Path    string
	Message string
}

func (e *ParamsError) Error() string {
	if e.Path == "" {
		return e.Message
	}
	return e.Path + ": " + e.Message
}

// decodeRunParams validates raw against the run params schema and decodes
// it. Absent or null params mean defaults.
func decodeRunParams(raw json.RawMessage) (RunParams, error) {
	var params RunParams
	if len(bytes.TrimSpace(raw)) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return params, nil
	}

	schema, err := runParamsSchema()
	if err != nil {
		return params, err
	}

	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return params, &ParamsError{Message: err.Error()}
	}
	if err := schema.Validate(doc); err != nil {
		return params, mapSchemaError(err)
	}

	if err := json.Unmarshal(raw, &params); err != nil {
		return params, &ParamsError{Message: err.Error()}
	}
	return params, nil
}

// mapSchemaError converts a jsonschema ValidationError to the first leaf
// ParamsError.
func mapSchemaError(err error) error {
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return &ParamsError{Message: err.Error()}
	}
	var result *ParamsError
	collectSchemaErrors(ve, &result)
	if result != nil {
		return result
	}
	return &ParamsError{Message: ve.Message}
}

func collectSchemaErrors(err *jsonschema.ValidationError, result **ParamsError) {
	if err == nil || *result != nil {
		return
	}
	if len(err.Causes) == 0 {
		*result = &ParamsError{
			Path:    pointerToPath(err.InstanceLocation),
			Message: err.Message,
		}
		return
	}
	for _, cause := range err.Causes {
		collectSchemaErrors(cause, result)
	}
}

// pointerToPath turns a JSON Pointer such as "/a/0/b" into "a[0].b".
func pointerToPath(ptr string) string {
	ptr = strings.TrimPrefix(strings.TrimPrefix(ptr, "#"), "/")
	if ptr == "" {
		return ""
	}
	var b strings.Builder
	for _, part := range strings.Split(ptr, "/") {
		part = strings.ReplaceAll(part, "~1", "/")
		part = strings.ReplaceAll(part, "~0", "~")
		if part == "" {
			continue
		}
		if isIndex(part) {
			b.WriteString("[" + part + "]")
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(part)
	}
	return b.String()
}

func isIndex(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
