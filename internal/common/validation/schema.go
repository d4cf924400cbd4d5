// Package validation checks payloads against JSON Schemas before they reach
// the analysis core.
package validation

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	apperrors "finanzbot/internal/common/errors"
	"finanzbot/internal/models"
)

// CompanyProfileSchema constrains a submitted company profile. Monetary
// amounts are COP and may be zero; a company has at least one employee.
const CompanyProfileSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["name", "sector", "annualEarnings", "employees", "receivables", "totalAssets", "totalLiabilities"],
  "properties": {
    "name":             {"type": "string", "minLength": 1},
    "sector":           {"type": "string"},
    "annualEarnings":   {"type": "number", "minimum": 0},
    "employees":        {"type": "integer", "minimum": 1},
    "receivables":      {"type": "number", "minimum": 0},
    "totalAssets":      {"type": "number", "minimum": 0},
    "totalLiabilities": {"type": "number", "minimum": 0}
  }
}`

type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// Details joins the errors into one line for error details and logs.
func (r *ValidationResult) Details() string {
	parts := make([]string, len(r.Errors))
	for i, e := range r.Errors {
		parts[i] = fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return strings.Join(parts, "; ")
}

// Schema is a compiled JSON Schema, safe for concurrent use.
type Schema struct {
	schema *gojsonschema.Schema
}

// Compile parses a JSON Schema document.
func Compile(raw string) (*Schema, error) {
	s, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(raw))
	if err != nil {
		return nil, fmt.Errorf("invalid schema: %w", err)
	}
	return &Schema{schema: s}, nil
}

// Validate checks a Go value, encoded as JSON first.
func (s *Schema) Validate(doc interface{}) (*ValidationResult, error) {
	return s.validate(gojsonschema.NewGoLoader(doc))
}

// ValidateJSON checks a raw JSON document.
func (s *Schema) ValidateJSON(raw []byte) (*ValidationResult, error) {
	return s.validate(gojsonschema.NewBytesLoader(raw))
}

func (s *Schema) validate(loader gojsonschema.JSONLoader) (*ValidationResult, error) {
	result, err := s.schema.Validate(loader)
	if err != nil {
		return nil, fmt.Errorf("validation error: %w", err)
	}

	out := &ValidationResult{Valid: result.Valid()}
	for _, re := range result.Errors() {
		field := re.Field()
		if re.Type() == "required" {
			if p, ok := re.Details()["property"].(string); ok {
				field = p
			}
		}
		out.Errors = append(out.Errors, ValidationError{
			Field:   field,
			Message: re.Description(),
			Code:    re.Type(),
		})
	}
	return out, nil
}

var profileSchema = mustCompile(CompanyProfileSchema)

func mustCompile(raw string) *Schema {
	s, err := Compile(raw)
	if err != nil {
		panic(err)
	}
	return s
}

// ValidateProfile checks a decoded profile. Non-finite amounts cannot be
// encoded and are rejected too.
func ValidateProfile(in models.ProfileInput) error {
	result, err := profileSchema.Validate(in)
	return profileError(result, err)
}

// ValidateProfileJSON checks a raw profile payload, which also catches
// missing fields that decoding would zero-fill.
func ValidateProfileJSON(raw []byte) error {
	result, err := profileSchema.ValidateJSON(raw)
	return profileError(result, err)
}

func profileError(result *ValidationResult, err error) error {
	if err != nil {
		return apperrors.NewProfileValidationError(err.Error())
	}
	if !result.Valid {
		return apperrors.NewProfileValidationError(result.Details())
	}
	return nil
}
