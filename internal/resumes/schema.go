package resumes

import (
	_ "embed"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/xeipuuv/gojsonschema"
)

//go:embed schema/patch.json
var patchSchemaJSON []byte

var (
	patchSchemaOnce sync.Once
	patchSchema     *gojsonschema.Schema
	patchSchemaErr  error

	validate = newValidator()
)

func loadPatchSchema() (*gojsonschema.Schema, error) {
	patchSchemaOnce.Do(func() {
		patchSchema, patchSchemaErr = gojsonschema.NewSchema(gojsonschema.NewBytesLoader(patchSchemaJSON))
	})
	return patchSchema, patchSchemaErr
}

// validatePatchDocument checks the decoded patch object against the embedded JSON Schema.
func validatePatchDocument(doc map[string]any) error {
	schema, err := loadPatchSchema()
	if err != nil {
		return fmt.Errorf("load patch schema: %w", err)
	}
	result, err := schema.Validate(gojsonschema.NewGoLoader(doc))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedPatch, err)
	}
	if result.Valid() {
		return nil
	}
	verr := &ValidationError{Fields: make([]FieldError, 0, len(result.Errors()))}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		verr.Fields = append(verr.Fields, FieldError{Field: field, Message: desc.Description()})
	}
	return verr
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validateStruct runs tag validation and converts failures to a ValidationError.
func validateStruct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		return fmt.Errorf("%w: %v", ErrValidationFailed, err)
	}
	verr := &ValidationError{Fields: make([]FieldError, 0, len(errs))}
	for _, fe := range errs {
		field := fe.Namespace()
		if i := strings.IndexByte(field, '.'); i >= 0 {
			field = field[i+1:]
		}
		verr.Fields = append(verr.Fields, FieldError{Field: field, Message: tagMessage(fe)})
	}
	return verr
}

func tagMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "url":
		return "must be a valid URL"
	case "http_url":
		return "must be an http(s) URL"
	case "hexcolor":
		return "must be a hex color"
	case "min":
		return "must be at least " + fe.Param() + " characters"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	default:
		return "failed " + fe.Tag() + " validation"
	}
}
