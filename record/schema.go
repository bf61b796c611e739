package record

import "github.com/jacentio/lattice/kv"

// Kind is the declared type of a field.
type Kind int

const (
	// String fields hold text. Valid as a primary key; the value is used
	// verbatim in the derived key and must not contain ":".
	String Kind = iota + 1

	// Int fields hold 64-bit signed integers. Valid as a primary key,
	// rendered as decimal in the derived key.
	Int

	// Float fields hold 64-bit floats. Not valid as a primary key.
	Float

	// Bool fields hold booleans. Not valid as a primary key.
	Bool
)

func (k Kind) String() string {
	switch k {
	case String:
		return "string"
	case Int:
		return "int"
	case Float:
		return "float"
	case Bool:
		return "bool"
	default:
		return "invalid"
	}
}

// Field declares one typed field of an entity type.
type Field struct {
	// Name is the field name, unique within the entity type.
	Name string

	// Kind is the field's declared type.
	Kind Kind

	// PrimaryKey marks the field whose value determines the store key.
	// Exactly one field per entity type must set it.
	PrimaryKey bool

	// Optional fields may be absent from a record.
	Optional bool
}

// Type is a defined entity type: a named schema plus, when defined
// through a Binding, the store it persists to. Immutable once defined.
type Type struct {
	name   string
	fields []Field
	index  map[string]int
	pk     int // index into fields
	store  kv.Store
}

// Binding ties entity types to one store. All types defined from the
// same Binding share its store handle for their lifetime.
type Binding struct {
	store kv.Store
}

// Bind associates a store with a family of entity types to be defined
// from the returned Binding.
func Bind(store kv.Store) *Binding {
	return &Binding{store: store}
}

// Define declares a bound entity type. Schema checks are the same as
// the package-level Define.
func (b *Binding) Define(name string, fields ...Field) (*Type, error) {
	return define(b.store, name, fields)
}

// Define declares an UNBOUND entity type: the schema is checked and the
// type is usable for key derivation and validation, but every lifecycle
// operation fails with ErrNotBound. Use Binding.Define for a usable type.
func Define(name string, fields ...Field) (*Type, error) {
	return define(nil, name, fields)
}

func define(store kv.Store, name string, fields []Field) (*Type, error) {
	if name == "" {
		return nil, &SchemaError{Type: name, Reason: "entity type name must not be empty"}
	}
	if len(fields) == 0 {
		return nil, &SchemaError{Type: name, Reason: "entity type must declare at least one field"}
	}

	t := &Type{
		name:   name,
		fields: make([]Field, len(fields)),
		index:  make(map[string]int, len(fields)),
		pk:     -1,
		store:  store,
	}
	copy(t.fields, fields)

	for i, f := range t.fields {
		if f.Name == "" {
			return nil, &SchemaError{Type: name, Reason: "field names must not be empty"}
		}
		if f.Kind < String || f.Kind > Bool {
			return nil, &SchemaError{Type: name, Reason: "field " + f.Name + " has an invalid kind"}
		}
		if _, dup := t.index[f.Name]; dup {
			return nil, &SchemaError{Type: name, Reason: "duplicate field " + f.Name}
		}
		t.index[f.Name] = i

		if !f.PrimaryKey {
			continue
		}
		if t.pk >= 0 {
			return nil, &SchemaError{Type: name, Reason: "more than one primary-key field (" +
				t.fields[t.pk].Name + ", " + f.Name + ")"}
		}
		if f.Kind != String && f.Kind != Int {
			return nil, &SchemaError{Type: name, Reason: "primary-key field " + f.Name +
				" must be string or int, not " + f.Kind.String()}
		}
		if f.Optional {
			return nil, &SchemaError{Type: name, Reason: "primary-key field " + f.Name +
				" cannot be optional"}
		}
		t.pk = i
	}

	if t.pk < 0 {
		return nil, &SchemaError{Type: name, Reason: "no primary-key field declared"}
	}

	return t, nil
}

// Name returns the entity type name.
func (t *Type) Name() string {
	return t.name
}

// Fields returns a copy of the declared fields, in declaration order.
func (t *Type) Fields() []Field {
	out := make([]Field, len(t.fields))
	copy(out, t.fields)
	return out
}

// PrimaryKey returns the field declared as the primary key.
func (t *Type) PrimaryKey() Field {
	return t.fields[t.pk]
}

// Bound reports whether the type was defined through a bound Binding.
func (t *Type) Bound() bool {
	return t.store != nil
}
