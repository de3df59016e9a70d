// Package jsonschema adapts santhosh-tekuri/jsonschema to the schema.Schema
// contract so request slices can be checked against JSON Schema documents.
package jsonschema

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/samber/lo"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/shandysiswandi/reqguard/internal/pkg/schema"
)

const resourceName = "schema.json"

const missingPrefix = "missing properties: "

// Schema is a compiled JSON Schema document (draft 2020-12).
type Schema struct {
	compiled *jsonschema.Schema
}

// Compile compiles a JSON Schema document.
func Compile(raw []byte) (*Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	compiler.AssertFormat = true

	if err := compiler.AddResource(resourceName, bytes.NewReader(raw)); err != nil {
		return nil, fmt.Errorf("failed to add schema resource: %w", err)
	}

	compiled, err := compiler.Compile(resourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema: %w", err)
	}

	return &Schema{compiled: compiled}, nil
}

// MustCompile is like Compile but panics if the document cannot be compiled.
// It is meant for schemas declared at route registration.
func MustCompile(raw string) *Schema {
	s, err := Compile([]byte(raw))
	if err != nil {
		panic(err)
	}
	return s
}

// Validate implements schema.Schema. AllowUnknown has no effect here; unknown
// keys are governed by the document's additionalProperties.
func (s *Schema) Validate(_ context.Context, data any, opts schema.Options) error {
	if s == nil || s.compiled == nil {
		return schema.Unexpected(schema.ErrNilSchema)
	}

	err := s.compiled.Validate(data)
	if err == nil {
		return nil
	}

	var verr *jsonschema.ValidationError
	if !errors.As(err, &verr) {
		return schema.Unexpected(err)
	}

	msgs := leafMessages(verr)
	if len(msgs) == 0 {
		return schema.Invalid(verr.Message)
	}
	if !opts.AllErrors {
		return schema.Invalid(msgs[0])
	}

	return schema.Invalid(strings.Join(lo.Uniq(msgs), ". "))
}

func leafMessages(verr *jsonschema.ValidationError) []string {
	if len(verr.Causes) == 0 {
		return describe(verr)
	}

	var msgs []string
	for _, cause := range verr.Causes {
		msgs = append(msgs, leafMessages(cause)...)
	}
	return msgs
}

func describe(verr *jsonschema.ValidationError) []string {
	path := pointerToPath(verr.InstanceLocation)

	if props, ok := strings.CutPrefix(verr.Message, missingPrefix); ok {
		return lo.Map(strings.Split(props, ", "), func(prop string, _ int) string {
			prop = strings.Trim(prop, "'")
			if path != "" {
				prop = path + "." + prop
			}
			return fmt.Sprintf("%q is required", prop)
		})
	}

	if path == "" {
		return []string{verr.Message}
	}
	return []string{fmt.Sprintf("%q %s", path, verr.Message)}
}

// pointerToPath converts a JSON pointer to dot notation: "/address/city" -> "address.city".
func pointerToPath(ptr string) string {
	ptr = strings.TrimPrefix(ptr, "/")
	if ptr == "" {
		return ""
	}

	parts := strings.Split(ptr, "/")
	for i, p := range parts {
		p = strings.ReplaceAll(p, "~1", "/")
		parts[i] = strings.ReplaceAll(p, "~0", "~")
	}
	return strings.Join(parts, ".")
}
