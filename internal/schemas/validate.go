// Package schemas validates request payloads against the JSON Schema contract and the
// struct-level rules that a schema cannot express.
package schemas

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/application-tracker/internal/types"
	contract "github.com/jonathan/application-tracker/schemas"
	"github.com/xeipuuv/gojsonschema"
)

// ValidationError represents a schema validation error with field paths
type ValidationError struct {
	Errors []FieldError
}

// FieldError represents a single validation error at a specific field
type FieldError struct {
	Field   string
	Message string
}

// SchemaLoadError represents errors loading or parsing the schema itself
type SchemaLoadError struct {
	Path    string
	Message string
	Cause   error
}

func (e *SchemaLoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to load schema %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to load schema %s: %s", e.Path, e.Message)
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("validation failed:\n")
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.Field, err.Message))
	}
	return sb.String()
}

// First returns the error reported to clients. Errors are kept sorted by field name.
func (ve *ValidationError) First() FieldError {
	if len(ve.Errors) == 0 {
		return FieldError{Message: "validation failed"}
	}
	return ve.Errors[0]
}

func newValidationError(errs []FieldError) *ValidationError {
	sort.SliceStable(errs, func(i, j int) bool { return errs[i].Field < errs[j].Field })
	return &ValidationError{Errors: errs}
}

// resultError converts a failed gojsonschema result into a *ValidationError, or nil when valid.
func resultError(result *gojsonschema.Result) error {
	if result.Valid() {
		return nil
	}

	errs := make([]FieldError, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		field := desc.Field()
		// Missing members are reported against their parent; name the member itself.
		if desc.Type() == "required" {
			if prop, ok := desc.Details()["property"].(string); ok {
				if field == gojsonschema.STRING_CONTEXT_ROOT {
					field = prop
				} else {
					field = field + "." + prop
				}
			}
		}
		if field == "" {
			field = gojsonschema.STRING_CONTEXT_ROOT
		}
		errs = append(errs, FieldError{
			Field:   field,
			Message: desc.Description(),
		})
	}

	return newValidationError(errs)
}

// Validator enforces the embedded request contract. It is safe for concurrent use.
type Validator struct {
	documents map[string]*gojsonschema.Schema
	structs   *validator.Validate
}

// NewValidator compiles every embedded schema document and registers the struct-level rules.
func NewValidator() (*Validator, error) {
	v := &Validator{
		documents: make(map[string]*gojsonschema.Schema),
		structs:   validator.New(),
	}

	for _, name := range contract.Names() {
		data, err := contract.Read(name)
		if err != nil {
			return nil, &SchemaLoadError{Path: name, Message: "reading embedded schema", Cause: err}
		}
		schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(data))
		if err != nil {
			return nil, &SchemaLoadError{Path: name, Message: "compiling schema", Cause: err}
		}
		v.documents[name] = schema
	}

	v.structs.RegisterTagNameFunc(jsonFieldName)
	v.structs.RegisterStructValidation(createSalaryRange, types.CreateApplicationRequest{})
	v.structs.RegisterStructValidation(updateSalaryRange, types.UpdateApplicationRequest{})

	return v, nil
}

// ValidateDocument checks a raw JSON body against the named contract document.
func (v *Validator) ValidateDocument(name string, body []byte) error {
	schema, ok := v.documents[name]
	if !ok {
		return &SchemaLoadError{Path: name, Message: "unknown schema"}
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		// The schema is precompiled, so a failure here means the body is not JSON.
		return newValidationError([]FieldError{{Field: "", Message: "Invalid request body"}})
	}
	return resultError(result)
}

// ValidateStruct runs the struct-level rules on a decoded request.
func (v *Validator) ValidateStruct(s any) error {
	err := v.structs.Struct(s)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return newValidationError([]FieldError{{Message: "validation error: invalid request"}})
	}

	errs := make([]FieldError, 0, len(validationErrors))
	for _, fe := range validationErrors {
		errs = append(errs, FieldError{
			Field:   fe.Field(),
			Message: tagMessage(fe),
		})
	}
	return newValidationError(errs)
}

// Decode validates body against the named document, decodes it into dst and
// then applies the struct-level rules. Any failure is a *ValidationError, except
// an unknown schema name which is a *SchemaLoadError.
func (v *Validator) Decode(name string, body []byte, dst any) error {
	if err := v.ValidateDocument(name, body); err != nil {
		return err
	}

	if err := json.Unmarshal(body, dst); err != nil {
		return newValidationError([]FieldError{decodeFieldError(body, dst, err)})
	}

	return v.ValidateStruct(dst)
}

// decodeFieldError finds the first top-level member that cannot be decoded into dst's type.
// Coercion errors from custom unmarshalers carry no field name, so each member is retried alone.
func decodeFieldError(body []byte, dst any, cause error) FieldError {
	if typeErr, ok := cause.(*json.UnmarshalTypeError); ok && typeErr.Field != "" {
		return FieldError{Field: typeErr.Field, Message: fmt.Sprintf("expected %s, got %s", typeErr.Type, typeErr.Value)}
	}

	var members map[string]json.RawMessage
	if err := json.Unmarshal(body, &members); err != nil {
		return FieldError{Message: "Invalid request body"}
	}

	keys := make([]string, 0, len(members))
	for k := range members {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	target := reflect.TypeOf(dst)
	if target.Kind() == reflect.Pointer {
		target = target.Elem()
	}
	for _, k := range keys {
		single, _ := json.Marshal(map[string]json.RawMessage{k: members[k]})
		probe := reflect.New(target).Interface()
		if err := json.Unmarshal(single, probe); err != nil {
			return FieldError{Field: k, Message: err.Error()}
		}
	}
	return FieldError{Message: cause.Error()}
}

// jsonFieldName reports validator errors under the JSON member name.
func jsonFieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return fld.Name
	}
	return name
}

func createSalaryRange(sl validator.StructLevel) {
	req := sl.Current().Interface().(types.CreateApplicationRequest)
	lo, hi := req.SalaryMin.Ptr(), req.SalaryMax.Ptr()
	if lo != nil && hi != nil && *lo > *hi {
		sl.ReportError(req.SalaryMax, "salaryMax", "SalaryMax", "salary_range", "")
	}
}

func updateSalaryRange(sl validator.StructLevel) {
	req := sl.Current().Interface().(types.UpdateApplicationRequest)
	if !req.SalaryMin.Set || !req.SalaryMax.Set {
		return
	}
	lo, hi := req.SalaryMin.Value, req.SalaryMax.Value
	if lo.Valid && hi.Valid && lo.Value > hi.Value {
		sl.ReportError(req.SalaryMax, "salaryMax", "SalaryMax", "salary_range", "")
	}
}

// tagMessage renders a human-readable message for a failed validator tag.
func tagMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "email":
		return fe.Field() + " must be a valid email address"
	case "url":
		return fe.Field() + " must be a valid URL"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
	case "salary_range":
		return "salaryMax must be greater than or equal to salaryMin"
	default:
		return fmt.Sprintf("validation error: %s - %s", fe.Field(), fe.Tag())
	}
}
