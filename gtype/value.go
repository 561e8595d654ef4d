package gtype

// ValueKind discriminates the sum type that Value carries: one Kind field
// plus per-kind payload, dispatched with a switch rather than a class
// hierarchy.
type ValueKind uint8

const (
	VNull ValueKind = iota
	VBool
	VInt
	VFloat
	VString
	VIdent
	VInstance
	VArray
)

func (k ValueKind) String() string {
	switch k {
	case VNull:
		return "null"
	case VBool:
		return "bool"
	case VInt:
		return "int"
	case VFloat:
		return "float"
	case VString:
		return "string"
	case VIdent:
		return "ident"
	case VInstance:
		return "instance"
	case VArray:
		return "array"
	default:
		return "unknown"
	}
}

// Identifier is an opaque string-like handle for a variable identifier or a
// property name, produced by the external AST importer. Tag distinguishes
// which the handle denotes; binpack never inspects the text itself except to
// route it through the String Window and global dictionary.
type Identifier struct {
	Tag  IdentTag
	Name string
}

// Instance is an object value whose shape is one of the schema's declared
// interfaces. Fields are addressed by declaration field name; the Visitor
// (package tree) is responsible for presenting them in declaration order.
type Instance struct {
	IfaceName TypeName
	Fields    map[string]Value
}

// Field returns the named field's value and whether it was present.
func (in *Instance) Field(name string) (Value, bool) {
	if in == nil {
		return Value{}, false
	}
	v, ok := in.Fields[name]
	return v, ok
}

// Value is the sum type over every value binpack's tree walker can observe:
// null | bool | i64 | f64 | string | Identifier | Instance | []Value.
type Value struct {
	kind  ValueKind
	b     bool
	i     int64
	f     float64
	s     string
	ident Identifier
	inst  *Instance
	arr   []Value
}

func Null() Value                  { return Value{kind: VNull} }
func Bool(b bool) Value            { return Value{kind: VBool, b: b} }
func Int(i int64) Value            { return Value{kind: VInt, i: i} }
func Float(f float64) Value        { return Value{kind: VFloat, f: f} }
func Str(s string) Value           { return Value{kind: VString, s: s} }
func Ident(tag IdentTag, name string) Value {
	return Value{kind: VIdent, ident: Identifier{Tag: tag, Name: name}}
}
func Inst(ifaceName TypeName, fields map[string]Value) Value {
	return Value{kind: VInstance, inst: &Instance{IfaceName: ifaceName, Fields: fields}}
}
func Array(elems ...Value) Value { return Value{kind: VArray, arr: elems} }

func (v Value) Kind() ValueKind   { return v.kind }
func (v Value) AsBool() bool      { return v.b }
func (v Value) AsInt() int64      { return v.i }
func (v Value) AsFloat() float64  { return v.f }
func (v Value) AsString() string  { return v.s }
func (v Value) AsIdent() Identifier { return v.ident }
func (v Value) AsInstance() *Instance { return v.inst }
func (v Value) AsArray() []Value  { return v.arr }
func (v Value) Len() int          { return len(v.arr) }
