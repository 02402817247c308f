// Package envstruct populates configuration structs from environment
// variables declared with struct tags.
package envstruct

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	ErrEnvNotSet    = errors.New("environment variable not set")
	ErrInvalidValue = errors.New("v must be a pointer to a struct")
)

// Populate fills the string fields of the struct pointed to by v from the
// environment.
//
// lookupEnv has the same signature as [os.LookupEnv] so that tests can
// substitute their own environment. Fields are declared with `env:"ENV_VAR"`
// tags; when the variable is unset the `envDefault:"value"` tag is used, and
// without one ErrEnvNotSet is returned. Untagged fields are left alone.
func Populate(v any, lookupEnv func(string) (string, bool)) error {
	ptrRef := reflect.ValueOf(v)
	if ptrRef.Kind() != reflect.Ptr {
		return fmt.Errorf("%w: not pointer: %v", ErrInvalidValue, v)
	}
	ref := ptrRef.Elem()
	if ref.Kind() != reflect.Struct {
		return fmt.Errorf("%w: not struct: %v", ErrInvalidValue, v)
	}

	refType := ref.Type()
	var errorList []error

	for i := range refType.NumField() {
		field := ref.Field(i)
		typeField := refType.Field(i)

		envVarName, tagged := typeField.Tag.Lookup("env")
		if !tagged {
			continue
		}

		if !field.CanSet() {
			errorList = append(errorList, fmt.Errorf("%w: cannot set field: %s",
				ErrInvalidValue, typeField.Name))
			continue
		}
		if field.Kind() != reflect.String {
			errorList = append(errorList, fmt.Errorf("%w: only strings are supported - field: %s, type: %s, env: %s",
				ErrInvalidValue, typeField.Name, field.Kind().String(), envVarName))
			continue
		}

		val, err := lookup(envVarName, typeField.Tag, lookupEnv)
		if err != nil {
			errorList = append(errorList, err)
			continue
		}
		field.SetString(val)
	}

	return errors.Join(errorList...)
}

// lookup resolves an environment variable falling back to the envDefault tag.
func lookup(envVarName string, tag reflect.StructTag, lookupEnv func(string) (string, bool)) (string, error) {
	if val, ok := lookupEnv(envVarName); ok {
		return val, nil
	}
	if val, ok := tag.Lookup("envDefault"); ok {
		return val, nil
	}
	return "", fmt.Errorf("%w: environment variable not set: %s", ErrEnvNotSet, envVarName)
}
