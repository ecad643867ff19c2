// Package schema binds decoded request bodies and handler payloads to Go structs and validates them. Structs
// are bound by their json field names and validated with "validate" struct tags.
package schema

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/advdv/tadow"
	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
)

// Option configures a struct schema.
type Option func(*options)

type options struct {
	validate    *validator.Validate
	errorUnused bool
}

// WithValidator uses v instead of the shared validator, for example to register custom rules.
func WithValidator(v *validator.Validate) Option {
	return func(o *options) { o.validate = v }
}

// Strict rejects fields that T does not declare.
func Strict() Option {
	return func(o *options) { o.errorUnused = true }
}

// StructSchema binds data to T.
type StructSchema[T any] struct {
	opts options
}

// Struct returns the schema for T. Values that already are a T or *T are only validated, structured
// data is bound to a new T first.
func Struct[T any](opts ...Option) *StructSchema[T] {
	o := options{validate: defaultValidator()}
	for _, opt := range opts {
		opt(&o)
	}

	return &StructSchema[T]{opts: o}
}

// Bind implements [tadow.Schema]. The result is a T.
func (s *StructSchema[T]) Bind(data any) (any, error) {
	var out T

	switch v := data.(type) {
	case T:
		out = v
	case *T:
		if v == nil {
			return nil, tadow.ValidationFailed([]tadow.FieldError{{Code: "required", Message: "value is required"}}, nil)
		}
		out = *v
	default:
		if err := s.decode(data, &out); err != nil {
			return nil, err
		}
	}

	if err := s.validate(out); err != nil {
		return nil, err
	}

	return out, nil
}

func (s *StructSchema[T]) decode(data any, out *T) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		ErrorUnused:      s.opts.errorUnused,
		Result:           out,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToTimeHookFunc("2006-01-02T15:04:05Z07:00"),
		),
	})
	if err != nil {
		return errors.Wrap(err, "failed to create decoder")
	}

	if err := dec.Decode(data); err != nil {
		return tadow.ValidationFailed([]tadow.FieldError{{Code: "type", Message: err.Error()}}, err)
	}

	return nil
}

func (s *StructSchema[T]) validate(v T) error {
	if reflect.Indirect(reflect.ValueOf(v)).Kind() != reflect.Struct {
		return nil
	}

	err := s.opts.validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return errors.Wrap(err, "failed to validate")
	}

	fields := make([]tadow.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		path := fieldPath(fe.Namespace())
		fields = append(fields, tadow.FieldError{
			Path:    path,
			Code:    fe.Tag(),
			Message: fmt.Sprintf("%s %s", path, tagErrorMessage(fe)),
		})
	}

	return tadow.ValidationFailed(fields, err)
}

// fieldPath drops the struct name that validator puts in front of the namespace.
func fieldPath(ns string) string {
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}

	return ns
}

var defaultValidator = sync.OnceValue(func() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonFieldName)
	return v
})

// jsonFieldName reports fields by the name they have in the body.
func jsonFieldName(fld reflect.StructField) string {
	name := fld.Tag.Get("json")
	if name == "-" {
		return ""
	}
	if idx := strings.Index(name, ","); idx != -1 {
		name = name[:idx]
	}
	if name == "" {
		return fld.Name
	}
	return name
}

func tagErrorMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "url":
		return "must be a valid URL"
	case "min":
		if e.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", e.Param())
		}
		return fmt.Sprintf("must be at least %s", e.Param())
	case "max":
		if e.Kind() == reflect.String {
			return fmt.Sprintf("must be at most %s characters", e.Param())
		}
		return fmt.Sprintf("must be at most %s", e.Param())
	case "gt", "gte", "lt", "lte":
		return fmt.Sprintf("must be %s %s", comparisons[e.Tag()], e.Param())
	case "oneof":
		return fmt.Sprintf("must be one of [%s]", e.Param())
	default:
		return fmt.Sprintf("failed validation (%s)", e.Tag())
	}
}

var comparisons = map[string]string{
	"gt":  "greater than",
	"gte": "at least",
	"lt":  "less than",
	"lte": "at most",
}

var _ tadow.Schema = (*StructSchema[struct{}])(nil)
