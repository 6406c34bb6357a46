// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"
)

// FlagBinder is implemented by types that register their own flags.
// When a struct field's type implements FlagBinder, [BindFlags] calls
// AddFlags instead of reflecting over struct tags.
type FlagBinder interface {
	AddFlags(flagSet *pflag.FlagSet)
}

// FlagsFromParams creates a [pflag.FlagSet] with flags bound to the tagged
// fields of params. params must be a pointer to a struct. Panics on
// invalid input (programming error, not runtime data).
//
//	var params inspectParams
//	command := &cli.Command{
//	    Flags: func() *pflag.FlagSet {
//	        return cli.FlagsFromParams("inspect", &params)
//	    },
//	    Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
//	        // params fields are populated after flag parsing
//	    },
//	}
func FlagsFromParams(name string, params any) *pflag.FlagSet {
	flagSet := pflag.NewFlagSet(name, pflag.ContinueOnError)
	if err := BindFlags(params, flagSet); err != nil {
		panic(fmt.Sprintf("cli.FlagsFromParams(%q): %v", name, err))
	}
	return flagSet
}

// BindFlags registers pflag entries for each tagged field in params.
// params must be a pointer to a struct.
//
// Three struct tags control binding:
//
//   - flag:"name" or flag:"name,n" names the long flag and an optional
//     single-character shorthand. Fields without a flag tag are skipped.
//   - desc:"help text" is the flag's help description.
//   - default:"value" is parsed according to the field's Go type. If
//     omitted, the type's zero value is used.
//
// Supported field types are string, bool, int, int64, float64,
// [time.Duration], and []string. A []string flag may be repeated and
// never splits its value on commas, so cron expressions like "0,30 * * * *"
// survive intact; its default is a single element.
//
// Struct fields whose pointer implements [FlagBinder] bind through
// AddFlags. Other embedded structs are bound recursively.
func BindFlags(params any, flagSet *pflag.FlagSet) error {
	value := reflect.ValueOf(params)
	if value.Kind() != reflect.Pointer || value.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("params must be a pointer to a struct, got %T", params)
	}
	return bindStruct(value.Elem(), flagSet)
}

func bindStruct(structValue reflect.Value, flagSet *pflag.FlagSet) error {
	structType := structValue.Type()

	for i := range structType.NumField() {
		field := structType.Field(i)
		fieldValue := structValue.Field(i)

		if field.Type.Kind() == reflect.Struct && field.IsExported() && fieldValue.CanAddr() {
			if binder, ok := fieldValue.Addr().Interface().(FlagBinder); ok {
				binder.AddFlags(flagSet)
				continue
			}
		}

		if field.Anonymous && field.Type.Kind() == reflect.Struct {
			if err := bindStruct(fieldValue, flagSet); err != nil {
				return fmt.Errorf("embedded %s: %w", field.Name, err)
			}
			continue
		}

		tag := field.Tag.Get("flag")
		if tag == "" {
			continue
		}
		if !fieldValue.CanAddr() {
			return fmt.Errorf("field %s: not addressable", field.Name)
		}

		name, shorthand, _ := strings.Cut(tag, ",")
		spec := flagSpec{
			name:      name,
			shorthand: shorthand,
			usage:     field.Tag.Get("desc"),
			fallback:  field.Tag.Get("default"),
		}
		if err := spec.bind(fieldValue.Addr().Interface(), flagSet); err != nil {
			return fmt.Errorf("field %s: %w", field.Name, err)
		}
	}

	return nil
}

// flagSpec is the parsed form of one field's struct tags.
type flagSpec struct {
	name      string
	shorthand string
	usage     string
	fallback  string
}

func (s flagSpec) bind(pointer any, flagSet *pflag.FlagSet) error {
	switch target := pointer.(type) {
	case *string:
		flagSet.StringVarP(target, s.name, s.shorthand, s.fallback, s.usage)
		return nil
	case *bool:
		return bindParsed(s, target, strconv.ParseBool, flagSet.BoolVarP)
	case *int:
		return bindParsed(s, target, strconv.Atoi, flagSet.IntVarP)
	case *int64:
		return bindParsed(s, target, func(text string) (int64, error) {
			return strconv.ParseInt(text, 10, 64)
		}, flagSet.Int64VarP)
	case *float64:
		return bindParsed(s, target, func(text string) (float64, error) {
			return strconv.ParseFloat(text, 64)
		}, flagSet.Float64VarP)
	case *time.Duration:
		return bindParsed(s, target, time.ParseDuration, flagSet.DurationVarP)
	case *[]string:
		var fallback []string
		if s.fallback != "" {
			fallback = []string{s.fallback}
		}
		flagSet.StringArrayVarP(target, s.name, s.shorthand, fallback, s.usage)
		return nil
	default:
		return fmt.Errorf("unsupported type %T for flag --%s", pointer, s.name)
	}
}

// bindParsed parses the spec's default with parse (the zero value when
// the default is empty) and registers the flag with register.
func bindParsed[T any](s flagSpec, target *T, parse func(string) (T, error), register func(*T, string, string, T, string)) error {
	var fallback T
	if s.fallback != "" {
		parsed, err := parse(s.fallback)
		if err != nil {
			return fmt.Errorf("default for --%s: %w", s.name, err)
		}
		fallback = parsed
	}
	register(target, s.name, s.shorthand, fallback, s.usage)
	return nil
}
