package binding

import (
	"fmt"
	"reflect"
)

// Apply copies the allow-listed fields from src onto dst and returns the names of the
// fields it actually copied. Fields are matched by JSON name on both structs.
// A nil pointer field in src means "not supplied" and leaves dst untouched; every
// field not named in fields is never read or written.
func Apply(dst, src any, fields ...string) ([]string, error) {
	dv, err := structElem(dst, "destination")
	if err != nil {
		return nil, err
	}
	sv, err := structElem(src, "source")
	if err != nil {
		return nil, err
	}

	dstFields := fieldIndex(dv.Type())
	srcFields := fieldIndex(sv.Type())

	applied := make([]string, 0, len(fields))
	for _, name := range fields {
		si, ok := srcFields[name]
		if !ok {
			return applied, fmt.Errorf("field %q is not bindable from %s", name, sv.Type())
		}
		di, ok := dstFields[name]
		if !ok {
			return applied, fmt.Errorf("field %q does not exist on %s", name, dv.Type())
		}

		value := sv.Field(si)
		if value.Kind() == reflect.Ptr {
			if value.IsNil() {
				continue
			}
			value = value.Elem()
		}

		target := dv.Field(di)
		if err := assign(target, value); err != nil {
			return applied, fmt.Errorf("field %q: %w", name, err)
		}
		applied = append(applied, name)
	}

	return applied, nil
}

func structElem(obj any, role string) (reflect.Value, error) {
	v := reflect.ValueOf(obj)
	if v.Kind() != reflect.Ptr || v.IsNil() {
		return reflect.Value{}, fmt.Errorf("%s must be a non-nil pointer to a struct", role)
	}
	v = v.Elem()
	if v.Kind() != reflect.Struct {
		return reflect.Value{}, fmt.Errorf("%s must be a non-nil pointer to a struct", role)
	}
	return v, nil
}

func fieldIndex(t reflect.Type) map[string]int {
	idx := make(map[string]int, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		name := jsonFieldName(f)
		if name == "" {
			continue
		}
		idx[name] = i
	}
	return idx
}

func assign(target, value reflect.Value) error {
	if !target.CanSet() {
		return fmt.Errorf("cannot be set")
	}

	if target.Kind() == reflect.Ptr {
		if !value.Type().AssignableTo(target.Type().Elem()) {
			return fmt.Errorf("cannot assign %s to %s", value.Type(), target.Type())
		}
		p := reflect.New(target.Type().Elem())
		p.Elem().Set(value)
		target.Set(p)
		return nil
	}

	switch {
	case value.Type().AssignableTo(target.Type()):
		target.Set(value)
	case value.Type().ConvertibleTo(target.Type()) && value.Kind() == target.Kind():
		target.Set(value.Convert(target.Type()))
	default:
		return fmt.Errorf("cannot assign %s to %s", value.Type(), target.Type())
	}
	return nil
}
