package schema

import (
	"fmt"
	"regexp"
	"strings"
)

var nameRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Validate checks names, field uniqueness and types, recursively.
func (r Record) Validate() error {
	return validateRecord(r, map[string]bool{})
}

func validateRecord(r Record, seen map[string]bool) error {
	if err := validateFullName(r.Namespace, r.Name); err != nil {
		return err
	}
	if seen[r.FullName()] {
		return fmt.Errorf("record %s is defined more than once", r.FullName())
	}
	seen[r.FullName()] = true

	names := make(map[string]bool, len(r.Fields))
	for _, f := range r.Fields {
		if !nameRe.MatchString(f.Name) {
			return fmt.Errorf("record %s: invalid field name %q", r.FullName(), f.Name)
		}
		if names[f.Name] {
			return fmt.Errorf("record %s: duplicate field %q", r.FullName(), f.Name)
		}
		names[f.Name] = true

		if f.Type == nil {
			return fmt.Errorf("record %s: field %q has no type", r.FullName(), f.Name)
		}
		if err := validateType(f.Type, seen); err != nil {
			return fmt.Errorf("record %s: field %q: %w", r.FullName(), f.Name, err)
		}
	}
	return nil
}

func validateType(t Type, seen map[string]bool) error {
	switch v := t.(type) {
	case Primitive:
		switch v {
		case Null, Boolean, Int, Long, Float, Double, Bytes, String:
			return nil
		}
		return fmt.Errorf("unknown primitive type %q", string(v))
	case Union:
		if len(v) < 2 {
			return fmt.Errorf("union needs at least two branches")
		}
		for _, b := range v {
			if _, nested := b.(Union); nested {
				return fmt.Errorf("unions cannot contain unions")
			}
			if err := validateType(b, seen); err != nil {
				return err
			}
		}
		return nil
	case Array:
		if v.Items == nil {
			return fmt.Errorf("array has no item type")
		}
		return validateType(v.Items, seen)
	case Map:
		if v.Values == nil {
			return fmt.Errorf("map has no value type")
		}
		return validateType(v.Values, seen)
	case Enum:
		if err := validateFullName(v.Namespace, v.Name); err != nil {
			return err
		}
		if len(v.Symbols) == 0 {
			return fmt.Errorf("enum %s has no symbols", v.FullName())
		}
		return nil
	case Logical:
		if v.Base == nil || v.Name == "" {
			return fmt.Errorf("logical type needs a base type and a name")
		}
		return validateType(v.Base, seen)
	case Record:
		return validateRecord(v, seen)
	default:
		return fmt.Errorf("unsupported type %T", t)
	}
}

func validateFullName(namespace, name string) error {
	if !nameRe.MatchString(name) {
		return fmt.Errorf("invalid schema name %q", name)
	}
	if namespace == "" {
		return nil
	}
	for _, part := range strings.Split(namespace, ".") {
		if !nameRe.MatchString(part) {
			return fmt.Errorf("invalid namespace %q", namespace)
		}
	}
	return nil
}
