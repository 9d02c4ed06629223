package req

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	v10 "github.com/go-playground/validator/v10"
	"github.com/xy-planning-network/relay"
)

// A Validator checks struct fields against their "validate" struct tags.
//
// Besides the rules go-playground/validator ships with, a Validator understands "enum",
// passing fields holding a valid relay.Enumerable, or a non-empty slice of them.
//
// Fields are reported by the name in their "env" tag, then their "json" tag,
// falling back to the Go field name.
type Validator struct {
	v *v10.Validate
}

// NewValidator constructs a *Validator.
func NewValidator() *Validator {
	v := v10.New()
	v.RegisterTagNameFunc(fieldName)

	// NOTE: only fails on an empty tag or a nil func
	_ = v.RegisterValidation("enum", isEnumerable)

	return &Validator{v: v}
}

// Struct validates structPtr, returning ValidationErrors listing every failing field.
// Errors other than ValidationErrors mean structPtr cannot be validated at all.
func (val *Validator) Struct(structPtr any) error {
	err := val.v.Struct(structPtr)
	if err == nil {
		return nil
	}

	var fieldErrs v10.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("relay/http/req: %w: %T cannot be validated: %s", relay.ErrBadAny, structPtr, err)
	}

	verrs := make(ValidationErrors, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		verrs = append(verrs, fromFieldError(fe))
	}

	return verrs
}

// fromFieldError describes fe without the name of the top-level struct.
func fromFieldError(fe v10.FieldError) ValidationError {
	field := fe.Namespace()
	if _, rest, ok := strings.Cut(field, "."); ok {
		field = rest
	}

	rule := fe.Tag()
	if fe.Param() != "" {
		rule += "=" + fe.Param()
	}

	return ValidationError{
		Field: field,
		Got:   fe.Value(),
		Rule:  rule + "; " + fe.Type().String(),
	}
}

func fieldName(f reflect.StructField) string {
	for _, key := range []string{"env", "json"} {
		name, _, _ := strings.Cut(f.Tag.Get(key), ",")
		if name != "" && name != "-" {
			return name
		}
	}

	return ""
}

func isEnumerable(fl v10.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() != reflect.Slice {
		return validEnum(field)
	}

	if field.Len() == 0 {
		return false
	}

	for i := 0; i < field.Len(); i++ {
		if !validEnum(field.Index(i)) {
			return false
		}
	}

	return true
}

func validEnum(rv reflect.Value) bool {
	e, ok := rv.Interface().(relay.Enumerable)
	return ok && e.Valid() == nil
}
