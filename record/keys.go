package record

import "github.com/jacentio/lattice/internal/keys"

// DeriveKey computes the store key for an entity type name and
// primary-key value: "<typeName>:<pk>". Pure and deterministic;
// integers render as decimal, strings verbatim.
//
// A ":" inside a string-typed key value is not escaped, so two
// different logical records can collide. Key values must not contain
// the separator; this is a caller responsibility.
func DeriveKey(typeName string, pk any) string {
	return keys.Derive(typeName, keys.Stringify(pk))
}

// SplitKey splits a derived key back into its entity type name and
// primary-key text, cutting at the first ":". ok is false for keys
// with no separator or an empty type name.
func SplitKey(key string) (typeName, pk string, ok bool) {
	return keys.Split(key)
}
