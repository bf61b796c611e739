package record

import (
	"bytes"
	"encoding/json"
	"math"
	"sort"
)

// construct validates raw field values against the schema and returns
// the normalized field set (string, int64, float64, bool values). All
// failures are collected into one ValidationError.
func (t *Type) construct(values map[string]any) (map[string]any, error) {
	var errs []FieldError

	var unknown []string
	for name := range values {
		if _, ok := t.index[name]; !ok {
			unknown = append(unknown, name)
		}
	}
	sort.Strings(unknown)
	for _, name := range unknown {
		errs = append(errs, FieldError{Name: name, Reason: "unknown field"})
	}

	out := make(map[string]any, len(t.fields))
	for _, f := range t.fields {
		v, ok := values[f.Name]
		if !ok {
			if !f.Optional {
				errs = append(errs, FieldError{Name: f.Name, Reason: "required"})
			}
			continue
		}
		nv, reason := coerce(f.Kind, v)
		if reason != "" {
			errs = append(errs, FieldError{Name: f.Name, Reason: reason})
			continue
		}
		out[f.Name] = nv
	}

	if len(errs) > 0 {
		return nil, &ValidationError{Type: t.name, Fields: errs}
	}
	return out, nil
}

// merge overlays partial changes on an already-validated field set and
// re-validates the whole result.
func (t *Type) merge(current, changes map[string]any) (map[string]any, error) {
	merged := make(map[string]any, len(current)+len(changes))
	for k, v := range current {
		merged[k] = v
	}
	for k, v := range changes {
		merged[k] = v
	}
	return t.construct(merged)
}

// coerce checks v against the declared kind and returns the normalized
// value, or a non-empty reason on mismatch.
func coerce(k Kind, v any) (any, string) {
	switch k {
	case String:
		if s, ok := v.(string); ok {
			return s, ""
		}
	case Bool:
		if b, ok := v.(bool); ok {
			return b, ""
		}
	case Int:
		switch n := v.(type) {
		case int:
			return int64(n), ""
		case int8:
			return int64(n), ""
		case int16:
			return int64(n), ""
		case int32:
			return int64(n), ""
		case int64:
			return n, ""
		case uint:
			if uint64(n) > math.MaxInt64 {
				return nil, "integer out of range"
			}
			return int64(n), ""
		case uint8:
			return int64(n), ""
		case uint16:
			return int64(n), ""
		case uint32:
			return int64(n), ""
		case uint64:
			if n > math.MaxInt64 {
				return nil, "integer out of range"
			}
			return int64(n), ""
		case json.Number:
			i, err := n.Int64()
			if err != nil {
				return nil, "expected int, got " + n.String()
			}
			return i, ""
		}
	case Float:
		switch n := v.(type) {
		case float64:
			return n, ""
		case float32:
			return float64(n), ""
		case int:
			return float64(n), ""
		case int32:
			return float64(n), ""
		case int64:
			return float64(n), ""
		case json.Number:
			f, err := n.Float64()
			if err != nil {
				return nil, "expected float, got " + n.String()
			}
			return f, ""
		}
	}
	return nil, "expected " + k.String()
}

// encode renders a validated field set as canonical JSON: one object,
// fields in declared order, absent optional fields omitted.
func (t *Type) encode(fields map[string]any) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	first := true
	for _, f := range t.fields {
		v, ok := fields[f.Name]
		if !ok {
			continue
		}
		if !first {
			buf.WriteByte(',')
		}
		first = false

		name, err := json.Marshal(f.Name)
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')

		val, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// decode parses a stored payload and validates it against the schema.
// Malformed or schema-mismatched payloads fail with ValidationError.
func (t *Type) decode(data []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return nil, &ValidationError{Type: t.name, Fields: []FieldError{
			{Reason: "malformed payload: " + err.Error()},
		}}
	}
	return t.construct(raw)
}
