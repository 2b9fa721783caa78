package record

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Text stores the value verbatim.
func Text[T any](key string, field func(*T) *string) Rule[T] {
	return Rule[T]{Key: key, Set: func(rec *T, v string) error {
		*field(rec) = v
		return nil
	}}
}

// OptText stores the value verbatim in an optional field.
func OptText[T any](key string, field func(*T) **string) Rule[T] {
	return Rule[T]{Key: key, Set: func(rec *T, v string) error {
		*field(rec) = &v
		return nil
	}}
}

// Flag sets a boolean field when the value is "true". "false" leaves the
// field unset; any other value is rejected.
func Flag[T any](key string, field func(*T) *bool) Rule[T] {
	return Rule[T]{Key: key, Set: func(rec *T, v string) error {
		switch v {
		case "true":
			*field(rec) = true
		case "false":
		default:
			return errors.Errorf("want true or false, got %q", v)
		}
		return nil
	}}
}

// Int parses a decimal integer.
func Int[T any](key string, field func(*T) *int) Rule[T] {
	return Rule[T]{Key: key, Set: func(rec *T, v string) error {
		n, err := strconv.Atoi(v)
		if err != nil {
			return err
		}
		*field(rec) = n
		return nil
	}}
}

// OptInt parses a decimal integer into an optional field.
func OptInt[T any](key string, field func(*T) **int) Rule[T] {
	return Rule[T]{Key: key, Set: func(rec *T, v string) error {
		n, err := strconv.Atoi(v)
		if err != nil {
			return err
		}
		*field(rec) = &n
		return nil
	}}
}

// Enum maps the value through values; values not in the map are rejected.
func Enum[T any, V any](key string, values map[string]V, field func(*T) *V) Rule[T] {
	return Rule[T]{Key: key, Set: func(rec *T, v string) error {
		mapped, ok := values[v]
		if !ok {
			return errors.Errorf("unknown value %q", v)
		}
		*field(rec) = mapped
		return nil
	}}
}

// Fixed accepts the key without storing it, provided the value is one of
// allowed. It is used for discriminator attributes such as category.
func Fixed[T any](key string, allowed ...string) Rule[T] {
	return Rule[T]{Key: key, Set: func(_ *T, v string) error {
		for _, a := range allowed {
			if v == a {
				return nil
			}
		}
		return errors.Errorf("want one of %s, got %q", strings.Join(allowed, ","), v)
	}}
}

// Ignore accepts any value for key without storing it.
func Ignore[T any](key string) Rule[T] {
	return Rule[T]{Key: key, Set: func(*T, string) error { return nil }}
}

// Func wraps an arbitrary setter.
func Func[T any](key string, set Setter[T]) Rule[T] { return Rule[T]{Key: key, Set: set} }
