// Package validate checks request payloads against JSON Schemas and
// reports every violation as a human-readable field error. Handlers
// surface the error list verbatim in a 400 response.
package validate

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

// Schema wraps a compiled JSON Schema.
type Schema struct {
	inner *gojsonschema.Schema
}

// MustCompile compiles a schema document, panicking on error. Schemas
// are package-level constants, so a failure here is a programming bug.
func MustCompile(doc string) *Schema {
	s, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(doc))
	if err != nil {
		panic(fmt.Sprintf("validate: compile schema: %v", err))
	}
	return &Schema{inner: s}
}

// Check validates payload (any JSON-marshalable value, typically a
// map[string]any decoded from the request body) and returns one message
// per violation. A nil slice means the payload is valid. All violations
// are collected; validation never aborts at the first failure.
func (s *Schema) Check(payload any) []string {
	res, err := s.inner.Validate(gojsonschema.NewGoLoader(payload))
	if err != nil {
		return []string{err.Error()}
	}
	if res.Valid() {
		return nil
	}
	msgs := make([]string, 0, len(res.Errors()))
	for _, e := range res.Errors() {
		msgs = append(msgs, e.String())
	}
	return msgs
}
