package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Record is implemented by every registered record type.
type Record interface {
	SchemaName() string
}

// defaulter is implemented by records that normalise fields after decoding.
type defaulter interface {
	setDefaults()
}

// FieldError describes one violated constraint.
type FieldError struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

// ValidationError lists every offending field of one payload.
type ValidationError struct {
	Schema string
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Error)
	}
	return fmt.Sprintf("%s validation failed: %s", e.Schema, strings.Join(parts, "; "))
}

// IsValidationError reports whether err is (or wraps) a *ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// ErrUnknownSchema is returned when a name is not registered.
var ErrUnknownSchema = errors.New("unknown schema")

// Definition is one registered record shape.
type Definition struct {
	Name string
	new  func() Record
}

// Collection returns the store collection for records of this shape.
func (d Definition) Collection() string {
	return strings.ToLower(d.Name)
}

var (
	registry = map[string]Definition{}
	validate = newValidator()
)

func init() {
	register(func() Record { return &User{IsActive: true} })
	register(func() Record { return &Product{InStock: true} })
	register(func() Record { return &ContactMessage{} })
	register(func() Record { return &Project{Tags: []string{}} })
}

func register(ctor func() Record) {
	name := ctor().SchemaName()
	registry[name] = Definition{Name: name, new: ctor}
}

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return jsonName(f)
	})
	return v
}

// Lookup returns the definition registered under name.
func Lookup(name string) (Definition, bool) {
	d, ok := registry[name]
	return d, ok
}

// Names lists the registered schema names in sorted order.
func Names() []string {
	out := make([]string, 0, len(registry))
	for n := range registry {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// CollectionFor returns the collection name of the schema name.
func CollectionFor(name string) (string, error) {
	d, ok := Lookup(name)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownSchema, name)
	}
	return d.Collection(), nil
}

// Validate decodes raw into a typed record of the named schema.
func Validate(name string, raw map[string]any) (Record, error) {
	d, ok := Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSchema, name)
	}
	return d.Validate(raw)
}

// Decode is the typed form of Validate; T is a registered record pointer type.
func Decode[T Record](raw map[string]any) (T, error) {
	var zero T
	rec, err := Validate(zero.SchemaName(), raw)
	if err != nil {
		return zero, err
	}
	return rec.(T), nil
}

// Validate checks presence and type of every field of raw, applies defaults for
// absent optional fields and then runs the value constraints. Unknown keys in raw
// are ignored. All failures are reported together.
func (d Definition) Validate(raw map[string]any) (Record, error) {
	rec := d.new()
	rv := reflect.ValueOf(rec).Elem()
	rt := rv.Type()

	var fieldErrs []FieldError
	reported := map[string]bool{}
	fail := func(field, msg string) {
		fieldErrs = append(fieldErrs, FieldError{Field: field, Error: msg})
		reported[field] = true
	}

	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		name := jsonName(sf)
		if name == "" {
			continue
		}
		required := sf.Tag.Get("schema") == "required"
		val, present := raw[name]

		if !present || val == nil {
			switch {
			case required:
				fail(name, "field required")
			case present && !nullable(sf.Type):
				fail(name, "must not be null")
			case present:
				rv.Field(i).Set(reflect.Zero(sf.Type))
			}
			continue
		}

		if err := assign(rv.Field(i), val); err != nil {
			fail(name, "must be "+describe(sf.Type))
		}
	}

	if df, ok := rec.(defaulter); ok {
		df.setDefaults()
	}

	if err := validate.Struct(rec); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return nil, fmt.Errorf("validate %s: %w", d.Name, err)
		}
		for _, fe := range verrs {
			if reported[fe.Field()] {
				continue
			}
			fail(fe.Field(), constraintMessage(fe))
		}
	}

	if len(fieldErrs) > 0 {
		return nil, &ValidationError{Schema: d.Name, Fields: fieldErrs}
	}
	return rec, nil
}

func assign(dst reflect.Value, val any) error {
	b, err := json.Marshal(val)
	if err != nil {
		return err
	}
	ptr := reflect.New(dst.Type())
	if err := json.Unmarshal(b, ptr.Interface()); err != nil {
		return err
	}
	dst.Set(ptr.Elem())
	return nil
}

func jsonName(f reflect.StructField) string {
	name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	return name
}

func nullable(t reflect.Type) bool {
	return t.Kind() == reflect.Ptr || t.Kind() == reflect.Slice
}

func describe(t reflect.Type) string {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.String:
		return "a string"
	case reflect.Bool:
		return "a boolean"
	case reflect.Int, reflect.Int32, reflect.Int64:
		return "an integer"
	case reflect.Float32, reflect.Float64:
		return "a number"
	case reflect.Slice:
		return "a list of " + strings.TrimPrefix(strings.TrimPrefix(describe(t.Elem()), "a "), "an ") + "s"
	}
	return "a " + t.Kind().String()
}

func constraintMessage(fe validator.FieldError) string {
	isString := fe.Kind() == reflect.String
	switch fe.Tag() {
	case "min":
		if isString {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		if isString {
			return fmt.Sprintf("must not exceed %s characters", fe.Param())
		}
		return fmt.Sprintf("must not exceed %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be less than or equal to %s", fe.Param())
	case "email":
		return "must be a valid email address"
	}
	if fe.Param() != "" {
		return fmt.Sprintf("%s:%s", fe.Tag(), fe.Param())
	}
	return fe.Tag()
}
