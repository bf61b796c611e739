// Package keys provides derived-key computation for record storage.
package keys

import (
	"fmt"
	"strconv"
	"strings"
)

// Separator joins the entity type name and the primary-key value.
// String-typed key values must not contain it; no escaping is performed.
const Separator = ":"

// Derive computes the store key for a record: "<typeName>:<pk>".
func Derive(typeName, pk string) string {
	return typeName + Separator + pk
}

// Split is the inverse of Derive, splitting at the first separator.
// It returns ok=false when the key carries no separator or an empty
// type name.
func Split(key string) (typeName, pk string, ok bool) {
	typeName, pk, ok = strings.Cut(key, Separator)
	if !ok || typeName == "" {
		return "", "", false
	}
	return typeName, pk, true
}

// Stringify renders a primary-key value as stable text: integers as
// decimal, strings verbatim. Other types fall back to fmt formatting
// and should not be used as key values.
func Stringify(v any) string {
	switch n := v.(type) {
	case string:
		return n
	case int:
		return strconv.FormatInt(int64(n), 10)
	case int8:
		return strconv.FormatInt(int64(n), 10)
	case int16:
		return strconv.FormatInt(int64(n), 10)
	case int32:
		return strconv.FormatInt(int64(n), 10)
	case int64:
		return strconv.FormatInt(n, 10)
	case uint:
		return strconv.FormatUint(uint64(n), 10)
	case uint8:
		return strconv.FormatUint(uint64(n), 10)
	case uint16:
		return strconv.FormatUint(uint64(n), 10)
	case uint32:
		return strconv.FormatUint(uint64(n), 10)
	case uint64:
		return strconv.FormatUint(n, 10)
	default:
		return fmt.Sprint(v)
	}
}
