package schema

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
)

// Global validator instance for reuse
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report fields by their wire names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		switch name {
		case "-":
			return ""
		case "":
			return fld.Name
		}
		return name
	})
	if err := v.RegisterValidation("iso8601", isISO8601); err != nil {
		// ALLOW-PANIC: static registration
		panic(err)
	}
	return v
}

var isoLayouts = []string{
	"2006-01-02",
	"2006-01-02T15:04:05",
	time.RFC3339,
	time.RFC3339Nano,
}

func isISO8601(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	for _, layout := range isoLayouts {
		if _, err := time.Parse(layout, s); err == nil {
			return true
		}
	}
	return false
}

// StructSchema validates a facet by decoding it into T and applying T's
// `validate` struct tags. Keys are matched against `json` tag names.
type StructSchema[T any] struct {
	allowUnknown bool
}

// For returns a schema for struct type T. It panics when T is not a struct,
// which surfaces at route registration.
func For[T any]() *StructSchema[T] {
	var zero T
	if t := reflect.TypeOf(zero); t == nil || t.Kind() != reflect.Struct {
		// ALLOW-PANIC: schemas are declared at startup
		panic(fmt.Sprintf("schema: For requires a struct type, got %T", zero))
	}
	return &StructSchema[T]{}
}

// AllowUnknown returns a copy of the schema that accepts undeclared keys.
func (s *StructSchema[T]) AllowUnknown() *StructSchema[T] {
	return &StructSchema[T]{allowUnknown: true}
}

// Validate implements Schema.
func (s *StructSchema[T]) Validate(data any, opts Options) error {
	_, err := s.Decode(data, opts)
	return err
}

// Decode converts data into a validated T. The input is not modified.
func (s *StructSchema[T]) Decode(data any, opts Options) (*T, error) {
	if s.allowUnknown {
		opts.AllowUnknown = true
	}

	var out T
	if err := decodeStruct("", data, reflect.ValueOf(&out).Elem(), opts); err != nil {
		return nil, err
	}

	if err := validate.Struct(&out); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return nil, fieldError(verrs[0])
		}
		return nil, fmt.Errorf("validate %T: %w", out, err)
	}
	return &out, nil
}

type structField struct {
	name   string
	index  int
	typ    reflect.Type
	nested bool
}

var timeType = reflect.TypeOf(time.Time{})

func fieldsOf(t reflect.Type) []structField {
	fields := make([]structField, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			continue
		}
		if name == "" {
			name = f.Name
		}
		fields = append(fields, structField{
			name:   name,
			index:  i,
			typ:    f.Type,
			nested: isNested(f.Type),
		})
	}
	return fields
}

func isNested(t reflect.Type) bool {
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Kind() == reflect.Struct && t != timeType
}

func decodeStruct(path string, data any, dst reflect.Value, opts Options) error {
	var m map[string]any
	switch v := data.(type) {
	case nil:
		m = map[string]any{}
	case map[string]any:
		m = v
	default:
		return newValidationError(displayPath(path), "object.base", "%q must be of type object", displayPath(path))
	}

	fields := fieldsOf(dst.Type())

	if !opts.AllowUnknown {
		known := make(map[string]struct{}, len(fields))
		for _, f := range fields {
			known[f.name] = struct{}{}
		}
		keys := make([]string, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if _, ok := known[k]; !ok {
				p := joinPath(path, k)
				return newValidationError(p, "object.unknown", "%q is not allowed", p)
			}
		}
	}

	for _, f := range fields {
		raw, present := m[f.name]
		if !present {
			continue
		}
		p := joinPath(path, f.name)
		if raw == nil {
			return newValidationError(p, "type", "%q must be %s", p, typeWord(f.typ))
		}
		fv := dst.Field(f.index)

		if f.nested {
			if fv.Kind() == reflect.Pointer {
				fv.Set(reflect.New(fv.Type().Elem()))
				fv = fv.Elem()
			}
			if err := decodeStruct(p, raw, fv, opts); err != nil {
				return err
			}
			continue
		}

		if err := decodeValue(raw, fv.Addr().Interface(), opts.Convert); err != nil {
			return newValidationError(p, "type", "%q must be %s", p, typeWord(f.typ))
		}
	}
	return nil
}

func decodeValue(raw, out any, weak bool) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: weak,
		TagName:          "json",
	})
	if err != nil {
		return err
	}
	return dec.Decode(raw)
}

func typeWord(t reflect.Type) string {
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return "a number"
	case reflect.String:
		return "a string"
	case reflect.Bool:
		return "a boolean"
	case reflect.Slice, reflect.Array:
		return "an array"
	case reflect.Map, reflect.Struct:
		return "of type object"
	case reflect.Pointer:
		return typeWord(t.Elem())
	default:
		return "a valid value"
	}
}

func fieldError(fe validator.FieldError) *ValidationError {
	field := fe.Namespace()
	if i := strings.Index(field, "."); i >= 0 {
		field = field[i+1:]
	}

	param := fe.Param()
	switch fe.Tag() {
	case "required":
		return newValidationError(field, "required", "%q is required", field)
	case "email":
		return newValidationError(field, "email", "%q must be a valid email", field)
	case "iso8601":
		return newValidationError(field, "iso8601", "%q must be in ISO 8601 date format", field)
	case "min", "gte":
		switch fe.Kind() {
		case reflect.String:
			return newValidationError(field, fe.Tag(), "%q length must be at least %s characters long", field, param)
		case reflect.Slice, reflect.Array, reflect.Map:
			return newValidationError(field, fe.Tag(), "%q must contain at least %s items", field, param)
		}
		return newValidationError(field, fe.Tag(), "%q must be greater than or equal to %s", field, param)
	case "max", "lte":
		switch fe.Kind() {
		case reflect.String:
			return newValidationError(field, fe.Tag(), "%q length must be less than or equal to %s characters long", field, param)
		case reflect.Slice, reflect.Array, reflect.Map:
			return newValidationError(field, fe.Tag(), "%q must contain less than or equal to %s items", field, param)
		}
		return newValidationError(field, fe.Tag(), "%q must be less than or equal to %s", field, param)
	case "oneof":
		return newValidationError(field, "oneof", "%q must be one of [%s]", field, strings.ReplaceAll(param, " ", ", "))
	default:
		return newValidationError(field, fe.Tag(), "%q failed on the %q rule", field, fe.Tag())
	}
}

func joinPath(parent, name string) string {
	if parent == "" {
		return name
	}
	return parent + "." + name
}

func displayPath(path string) string {
	if path == "" {
		return "value"
	}
	return path
}
