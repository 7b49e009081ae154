// Package object models a live scripting surface as a graph of namespaces,
// classes, routines, and plain values.
//
// # Architecture
//
// The package deliberately avoids any host-language reflection protocol.
// Providers expose capability interfaces (Namespace, Class, Routine, Value)
// and the classifier KindOf probes those capabilities in a fixed order:
// namespace wins over class, class over routine, and anything else is a
// value. Downstream consumers never type-switch on concrete provider types.
//
// Three providers ship in-tree:
//  1. The Dyn* builder types below, for hosts that assemble their surface
//     programmatically (the procedural catalog uses these).
//  2. FromStruct (fromstruct.go), which reflects a live Go struct.
//  3. goscope (object/goscope), which loads a Go package's exported API.
//
// Member enumeration order is the provider's responsibility: it must be
// deterministic and total, because declaration output preserves it.
package object

// ClassName is the reserved member name under which scripting surfaces
// commonly expose an object's own class. Members with this name are never
// walked into declarations.
const ClassName = "__class__"

// Kind classifies an object for declaration synthesis. The set is closed:
// every object maps to exactly one kind.
type Kind int

const (
	KindValue Kind = iota
	KindRoutine
	KindClass
	KindNamespace
)

func (k Kind) String() string {
	switch k {
	case KindNamespace:
		return "namespace"
	case KindClass:
		return "class"
	case KindRoutine:
		return "routine"
	default:
		return "value"
	}
}

// Object is the minimal capability every graph node carries.
type Object interface {
	// Doc returns the object's documentation text, empty when absent.
	Doc() string
}

// Member associates a name with an object inside a namespace or class.
// The name is the discovered attribute name, which may differ from the
// object's own notion of its name (aliased classes, re-exports).
type Member struct {
	Name   string
	Object Object
}

// Namespace is a named container of members: a module, a procedure
// database, a plugin registry.
type Namespace interface {
	Object
	// Name returns the namespace's dotted qualified name, e.g. "gi.repository".
	Name() string
	// Members enumerates the namespace's contents in a deterministic order.
	Members() []Member
}

// Class is a type with an inheritance hierarchy.
type Class interface {
	Object
	Name() string
	// NamespaceName returns the dotted name of the namespace the class was
	// defined in. Builtin classes return "" and always render bare.
	NamespaceName() string
	// Bases returns the direct base classes in declaration order.
	Bases() []Class
	Members() []Member
}

// Routine is a callable.
type Routine interface {
	Object
	Name() string
	// Signature reports the routine's declared parameters. ok is false when
	// the parameter list cannot be recovered, as for natively implemented
	// routines; callers degrade to an empty signature.
	Signature() (Signature, bool)
}

// Signature describes a routine's parameter list.
type Signature struct {
	Params   []string // positional parameter names, in order
	Defaults []string // default-value expressions, aligned to the tail of Params
	VarArg   string   // catch-all positional name, "" when none
	KwArg    string   // catch-all keyword name, "" when none
}

// Value is a plain datum: anything that is neither namespace, class, nor
// routine. Class reports the value's type and may be nil when unknown.
type Value interface {
	Object
	Class() Class
}

// KindOf probes obj's capabilities and returns its classification. A nil
// object classifies as a value (the absent value).
func KindOf(obj Object) Kind {
	switch obj.(type) {
	case Namespace:
		return KindNamespace
	case Class:
		return KindClass
	case Routine:
		return KindRoutine
	default:
		return KindValue
	}
}

// ClassOf returns the class of a value object, or nil when obj is nil, is
// not a value, or does not know its class.
func ClassOf(obj Object) Class {
	if v, ok := obj.(Value); ok {
		return v.Class()
	}
	return nil
}
