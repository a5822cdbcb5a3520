// Package form serializes parameter structs into
// application/x-www-form-urlencoded request bodies.
//
// Nested structures flatten into bracketed key paths (a field "number" inside
// a "card" struct encodes as "card[number]"), matching what the payment API
// expects for form bodies. Struct fields encode in declaration order and map
// keys are sorted, so the same value always produces byte-identical output.
package form

import (
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"sort"
	"strconv"
	"strings"
)

// Static errors for err113 compliance.
var (
	ErrUnsupportedTopLevel = errors.New("top-level value must be a struct or map")
	ErrUnsupportedType     = errors.New("unsupported type")
	ErrNonStringMapKey     = errors.New("map keys must be strings")
)

// pair is one encoded key/value. Pairs are collected in encounter order;
// url.Values is not used because it would lose the declared field order.
type pair struct {
	key   string
	value string
}

// Marshal encodes v into form-urlencoded bytes. A nil value encodes to an
// empty body. Encoding is all-or-nothing: on error no partial output is
// returned.
func Marshal(v any) ([]byte, error) {
	s, err := Encode(v)
	if err != nil {
		return nil, err
	}

	return []byte(s), nil
}

// Encode encodes v into a form-urlencoded string.
//
// Struct fields use the `form` tag for their wire name, falling back to the
// Go field name. A tag of "-" skips the field, and the "omitempty" tag option
// skips zero values. Nil pointers are always omitted. Slices and arrays
// encode with indexed bracket keys ("items[0]", "items[1]").
func Encode(v any) (string, error) {
	if v == nil {
		return "", nil
	}

	root := reflect.ValueOf(v)
	for root.Kind() == reflect.Pointer || root.Kind() == reflect.Interface {
		if root.IsNil() {
			return "", nil
		}

		root = root.Elem()
	}

	if root.Kind() != reflect.Struct && root.Kind() != reflect.Map {
		return "", fmt.Errorf("%w, got %s", ErrUnsupportedTopLevel, root.Kind())
	}

	var pairs []pair

	err := encodeValue(&pairs, "", root)
	if err != nil {
		return "", err
	}

	var builder strings.Builder

	for i, p := range pairs {
		if i > 0 {
			builder.WriteByte('&')
		}

		builder.WriteString(url.QueryEscape(p.key))
		builder.WriteByte('=')
		builder.WriteString(url.QueryEscape(p.value))
	}

	return builder.String(), nil
}

// encodeValue appends the encoded form of value under key to pairs. An empty
// key means value is the root and must contribute child keys only.
func encodeValue(pairs *[]pair, key string, value reflect.Value) error {
	switch value.Kind() {
	case reflect.Pointer, reflect.Interface:
		if value.IsNil() {
			return nil
		}

		return encodeValue(pairs, key, value.Elem())

	case reflect.Struct:
		return encodeStruct(pairs, key, value)

	case reflect.Map:
		return encodeMap(pairs, key, value)

	case reflect.Slice, reflect.Array:
		return encodeSequence(pairs, key, value)

	case reflect.String:
		*pairs = append(*pairs, pair{key: key, value: value.String()})

	case reflect.Bool:
		*pairs = append(*pairs, pair{key: key, value: strconv.FormatBool(value.Bool())})

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		*pairs = append(*pairs, pair{key: key, value: strconv.FormatInt(value.Int(), 10)})

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		*pairs = append(*pairs, pair{key: key, value: strconv.FormatUint(value.Uint(), 10)})

	case reflect.Float32:
		*pairs = append(*pairs, pair{key: key, value: strconv.FormatFloat(value.Float(), 'f', -1, 32)})

	case reflect.Float64:
		*pairs = append(*pairs, pair{key: key, value: strconv.FormatFloat(value.Float(), 'f', -1, 64)})

	default:
		return fmt.Errorf("%w: %s at key %q", ErrUnsupportedType, value.Kind(), key)
	}

	return nil
}

// encodeStruct walks exported fields in declaration order.
func encodeStruct(pairs *[]pair, key string, value reflect.Value) error {
	structType := value.Type()

	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)
		if !field.IsExported() {
			continue
		}

		name, opts := parseTag(field)
		if name == "-" {
			continue
		}

		fieldValue := value.Field(i)

		// Embedded structs without an explicit tag inline into the parent.
		if field.Anonymous && field.Tag.Get("form") == "" && fieldValue.Kind() == reflect.Struct {
			err := encodeStruct(pairs, key, fieldValue)
			if err != nil {
				return err
			}

			continue
		}

		if opts.omitempty && fieldValue.IsZero() {
			continue
		}

		err := encodeValue(pairs, childKey(key, name), fieldValue)
		if err != nil {
			return err
		}
	}

	return nil
}

// encodeMap sorts keys so output does not depend on map iteration order.
func encodeMap(pairs *[]pair, key string, value reflect.Value) error {
	if value.Type().Key().Kind() != reflect.String {
		return fmt.Errorf("%w, got %s at key %q", ErrNonStringMapKey, value.Type().Key(), key)
	}

	keys := make([]string, 0, value.Len())
	for _, mapKey := range value.MapKeys() {
		keys = append(keys, mapKey.String())
	}

	sort.Strings(keys)

	for _, mapKey := range keys {
		err := encodeValue(pairs, childKey(key, mapKey), value.MapIndex(reflect.ValueOf(mapKey).Convert(value.Type().Key())))
		if err != nil {
			return err
		}
	}

	return nil
}

func encodeSequence(pairs *[]pair, key string, value reflect.Value) error {
	for i := 0; i < value.Len(); i++ {
		err := encodeValue(pairs, key+"["+strconv.Itoa(i)+"]", value.Index(i))
		if err != nil {
			return err
		}
	}

	return nil
}

// childKey builds the flattened bracket path for a nested key.
func childKey(parent, name string) string {
	if parent == "" {
		return name
	}

	return parent + "[" + name + "]"
}

type tagOptions struct {
	omitempty bool
}

func parseTag(field reflect.StructField) (string, tagOptions) {
	tag := field.Tag.Get("form")
	if tag == "" {
		return field.Name, tagOptions{}
	}

	parts := strings.Split(tag, ",")

	name := parts[0]
	if name == "" {
		name = field.Name
	}

	var opts tagOptions

	for _, opt := range parts[1:] {
		if opt == "omitempty" {
			opts.omitempty = true
		}
	}

	return name, opts
}
