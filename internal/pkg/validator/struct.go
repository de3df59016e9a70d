package validator

import (
	"context"
	"errors"
	"fmt"
	"math"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/samber/lo"
	"github.com/shandysiswandi/reqguard/internal/pkg/schema"
)

// Struct returns a schema that checks request data against the `validate`
// tags of T. Field names are taken from the `json` tags of T and must match
// exactly.
//
// JSON types are kept strict: a number never satisfies a string field and a
// fraction never satisfies an integer field. Strings are still parsed into
// numeric and boolean fields because query and header values are always
// strings.
//
// T must be a struct type; anything else is reported as an unexpected failure
// on every request.
func Struct[T any](v *V10Validator) schema.Schema {
	return schema.Func(func(_ context.Context, data any, opts schema.Options) error {
		var out T

		dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			Result:      &out,
			TagName:     "json",
			DecodeHook:  mapstructure.DecodeHookFuncType(scalarHook),
			ErrorUnused: !opts.AllowUnknown,
			MatchName: func(mapKey, fieldName string) bool {
				return mapKey == fieldName
			},
		})
		if err != nil {
			return schema.Unexpected(err)
		}

		if err := dec.Decode(data); err != nil {
			return schema.Invalid(joinMessages(decodeMessages(err), opts.AllErrors))
		}

		msgs, err := v.check(&out)
		if err != nil {
			return schema.Unexpected(err)
		}
		if len(msgs) == 0 {
			return nil
		}

		return schema.Invalid(joinMessages(lo.Map(msgs, func(m fieldMessage, _ int) string {
			return m.message
		}), opts.AllErrors))
	})
}

var (
	errNotInteger = errors.New("must be an integer")
	errNotNumber  = errors.New("must be a number")
	errNotBoolean = errors.New("must be a boolean")
)

// scalarHook parses strings into numeric and boolean fields and rejects
// fractions headed for integer fields. Every other pair is left to
// mapstructure's strict conversion.
func scalarHook(from, to reflect.Type, data any) (any, error) {
	switch {
	case from.Kind() == reflect.String:
		s := strings.TrimSpace(reflect.ValueOf(data).String())
		switch to.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			n, err := strconv.ParseInt(s, 10, to.Bits())
			if err != nil {
				return nil, errNotInteger
			}
			return n, nil
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			n, err := strconv.ParseUint(s, 10, to.Bits())
			if err != nil {
				return nil, errNotInteger
			}
			return n, nil
		case reflect.Float32, reflect.Float64:
			n, err := strconv.ParseFloat(s, to.Bits())
			if err != nil {
				return nil, errNotNumber
			}
			return n, nil
		case reflect.Bool:
			b, err := strconv.ParseBool(s)
			if err != nil {
				return nil, errNotBoolean
			}
			return b, nil
		}

	case from.Kind() == reflect.Float32 || from.Kind() == reflect.Float64:
		switch to.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
			reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			f := reflect.ValueOf(data).Float()
			if f != math.Trunc(f) || math.IsInf(f, 0) {
				return nil, errNotInteger
			}
		}
	}

	return data, nil
}

var (
	unusedKeysRe  = regexp.MustCompile(`^'([^']*)' has invalid keys: (.+)$`)
	expectedRe    = regexp.MustCompile(`^'([^']*)' expected type '([^']+)'`)
	hookFailureRe = regexp.MustCompile(`^(?:error )?decoding '([^']*)': (.+)$`)
	namedRe       = regexp.MustCompile(`^'([^']*)' (.+)$`)
)

// decodeMessages splits a mapstructure error into one line per problem,
// dropping its "decoding failed" headers and list markers, and rewrites the
// known shapes as `"field" ...` messages.
func decodeMessages(err error) []string {
	lines := strings.Split(err.Error(), "\n")

	return lo.FlatMap(lines, func(line string, _ int) []string {
		line = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), "* "))
		if line == "" || strings.HasSuffix(line, ":") {
			return nil
		}
		return describeDecodeLine(line)
	})
}

func describeDecodeLine(line string) []string {
	if m := unusedKeysRe.FindStringSubmatch(line); m != nil {
		return lo.Map(strings.Split(m[2], ", "), func(key string, _ int) string {
			return fmt.Sprintf("%q is not allowed", joinPath(m[1], key))
		})
	}

	if m := expectedRe.FindStringSubmatch(line); m != nil {
		return []string{fmt.Sprintf("%q must be %s", m[1], typeNoun(m[2]))}
	}

	if m := hookFailureRe.FindStringSubmatch(line); m != nil {
		return []string{fmt.Sprintf("%q %s", m[1], m[2])}
	}

	if m := namedRe.FindStringSubmatch(line); m != nil {
		if m[1] == "" && strings.HasPrefix(m[2], "expected a map") {
			return []string{"value must be an object"}
		}
		return []string{fmt.Sprintf("%q %s", m[1], m[2])}
	}

	return []string{line}
}

func joinPath(parent, key string) string {
	if parent == "" {
		return key
	}
	return parent + "." + key
}

func typeNoun(kind string) string {
	switch {
	case kind == "string":
		return "a string"
	case kind == "bool":
		return "a boolean"
	case strings.HasPrefix(kind, "int"), strings.HasPrefix(kind, "uint"):
		return "an integer"
	case strings.HasPrefix(kind, "float"):
		return "a number"
	case strings.HasPrefix(kind, "[]"):
		return "an array"
	case strings.HasPrefix(kind, "map"), strings.Contains(kind, "struct"):
		return "an object"
	default:
		return "of type " + kind
	}
}

func joinMessages(msgs []string, all bool) string {
	if len(msgs) == 0 {
		return "validation error"
	}
	if !all {
		return msgs[0]
	}
	return strings.Join(msgs, ". ")
}
