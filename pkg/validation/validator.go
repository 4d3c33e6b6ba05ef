package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

// FieldError is one violated constraint.
type FieldError struct {
	Field  string `json:"field"`
	Tag    string `json:"tag,omitempty"`
	Reason string `json:"reason"`
}

// ValidationError lists every violated constraint of one input.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+" "+f.Reason)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Reason returns the reason recorded for field, if any.
func (e *ValidationError) Reason(field string) (string, bool) {
	for _, f := range e.Fields {
		if f.Field == field {
			return f.Reason, true
		}
	}
	return "", false
}

// Validator decodes and validates request payloads. It owns its own
// validator.Validate; nothing is registered on package-level state.
type Validator struct {
	v *validator.Validate
}

// New builds a Validator that
//   - reports JSON field names,
//   - knows "notblank" (non-empty after trimming),
//   - knows "maxbytes=N" (string length in bytes, not runes).
func New() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("notblank", validators.NotBlank)
	_ = v.RegisterValidation("maxbytes", maxBytes)
	return &Validator{v: v}
}

// Decode unmarshals data into dst and validates it. Any failure is a *ValidationError.
//
// encoding/json keeps decoding past a mistyped value and reports only the
// first one, so a type error is merged with the constraint errors of the
// rest of the payload. Constraint errors on the mistyped field itself are
// dropped in favour of the type error.
func (v *Validator) Decode(data []byte, dst any) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return &ValidationError{Fields: []FieldError{{Field: "payload", Reason: "is required"}}}
	}
	err := json.Unmarshal(data, dst)
	var ute *json.UnmarshalTypeError
	if err != nil && !errors.As(err, &ute) {
		return toValidationError(err)
	}

	var out []FieldError
	if ute != nil {
		out = toValidationError(ute).Fields
	}
	if verr := v.Struct(dst); verr != nil {
		for _, fe := range verr.(*ValidationError).Fields {
			if ute != nil && covers(out[0].Field, fe.Field) {
				continue
			}
			out = append(out, fe)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return &ValidationError{Fields: out}
}

// covers reports whether path names field or something nested in it.
// Indexes are ignored since json type errors carry none.
func covers(field, path string) bool {
	if field == "payload" {
		return false
	}
	path = stripIndexes(path)
	return path == field || strings.HasPrefix(path, field+".")
}

func stripIndexes(path string) string {
	var b strings.Builder
	depth := 0
	for _, r := range path {
		switch {
		case r == '[':
			depth++
		case r == ']':
			depth--
		case depth == 0:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func maxBytes(fl validator.FieldLevel) bool {
	n, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	return len(fl.Field().String()) <= n
}

// Struct validates an already decoded value.
func (v *Validator) Struct(s any) error {
	if err := v.v.Struct(s); err != nil {
		return toValidationError(err)
	}
	return nil
}

func toValidationError(err error) *ValidationError {
	var ute *json.UnmarshalTypeError
	if errors.As(err, &ute) {
		field := ute.Field
		if field == "" {
			field = "payload"
		}
		return &ValidationError{Fields: []FieldError{{Field: field, Tag: "type", Reason: "must be " + describeKind(ute.Type)}}}
	}
	var se *json.SyntaxError
	if errors.As(err, &se) {
		return &ValidationError{Fields: []FieldError{{Field: "payload", Reason: "invalid json"}}}
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := make([]FieldError, 0, len(verrs))
		for _, fe := range verrs {
			out = append(out, FieldError{Field: fieldPath(fe), Tag: fe.Tag(), Reason: formatFieldError(fe)})
		}
		return &ValidationError{Fields: out}
	}

	// Fallback
	return &ValidationError{Fields: []FieldError{{Field: "payload", Reason: "invalid payload"}}}
}

// fieldPath drops the top-level struct name from the namespace,
// e.g. "createUserRequest.fullName.firstName" -> "fullName.firstName".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func describeKind(t reflect.Type) string {
	if t == nil {
		return "of a different type"
	}
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "an integer"
	case reflect.Float32, reflect.Float64:
		return "a number"
	case reflect.String:
		return "a string"
	case reflect.Bool:
		return "a boolean"
	case reflect.Slice, reflect.Array:
		return "an array"
	case reflect.Struct, reflect.Map:
		return "an object"
	case reflect.Ptr:
		return describeKind(t.Elem())
	default:
		return "of type " + t.String()
	}
}

func formatFieldError(fe validator.FieldError) string {
	tag := fe.Tag()
	param := fe.Param()
	kind := fe.Kind()

	switch tag {
	case "required":
		return "is required"
	case "notblank":
		return "must not be empty or contain only whitespace"
	case "email":
		return "must be a valid email"
	case "len":
		if param != "" {
			if kind == reflect.Slice {
				return fmt.Sprintf("must contain exactly %s items", param)
			}
			return fmt.Sprintf("must be exactly %s characters long", param)
		}
		return "invalid length"
	case "min":
		if param != "" {
			if isNumberKind(kind) {
				return "must be at least " + param
			}
			if kind == reflect.Slice {
				return "must contain at least " + param + " items"
			}
			return "must be at least " + param + " characters long"
		}
		return "too small"
	case "max":
		if param != "" {
			if isNumberKind(kind) {
				return "must be at most " + param
			}
			if kind == reflect.Slice {
				return "must contain at most " + param + " items"
			}
			return "must be at most " + param + " characters long"
		}
		return "too large"
	case "maxbytes":
		return "must be at most " + param + " bytes long"
	case "gt":
		if param != "" {
			return "must be greater than " + param
		}
		return "must be greater than"
	case "gte":
		if param != "" {
			return "must be greater than or equal to " + param
		}
		return "must be greater than or equal"
	case "lt":
		if param != "" {
			return "must be less than " + param
		}
		return "must be less than"
	case "oneof":
		return "must be one of: " + strings.Join(strings.Fields(param), ", ")
	case "unique":
		return "must contain unique items"
	default:
		if param != "" {
			return fmt.Sprintf("validation failed for '%s' with parameter '%s'", tag, param)
		}
		return fmt.Sprintf("validation failed for '%s'", tag)
	}
}

func isNumberKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}
