package object

// Dyn* types are mutable implementations of the capability interfaces for
// hosts that assemble their scripting surface programmatically. Members
// keep insertion order; that order is what ends up in declaration output.

// DynNamespace is a mutable Namespace.
type DynNamespace struct {
	name    string
	doc     string
	members []Member
}

var _ Namespace = (*DynNamespace)(nil)

func NewNamespace(name string) *DynNamespace {
	return &DynNamespace{name: name}
}

func (n *DynNamespace) Name() string      { return n.name }
func (n *DynNamespace) Doc() string       { return n.doc }
func (n *DynNamespace) Members() []Member { return n.members }

// SetDoc sets the namespace documentation and returns n for chaining.
func (n *DynNamespace) SetDoc(text string) *DynNamespace {
	n.doc = text
	return n
}

// Add appends a named member and returns n for chaining.
func (n *DynNamespace) Add(name string, obj Object) *DynNamespace {
	n.members = append(n.members, Member{Name: name, Object: obj})
	return n
}

// DynClass is a mutable Class.
type DynClass struct {
	name      string
	namespace string
	doc       string
	bases     []Class
	members   []Member
}

var _ Class = (*DynClass)(nil)

func NewClass(name, namespace string, bases ...Class) *DynClass {
	return &DynClass{name: name, namespace: namespace, bases: bases}
}

// Builtin returns a class in the builtin (empty) namespace. Builtin class
// names always serialize bare, with no import.
func Builtin(name string) *DynClass {
	return NewClass(name, "")
}

func (c *DynClass) Name() string          { return c.name }
func (c *DynClass) NamespaceName() string { return c.namespace }
func (c *DynClass) Doc() string           { return c.doc }
func (c *DynClass) Bases() []Class        { return c.bases }
func (c *DynClass) Members() []Member     { return c.members }

func (c *DynClass) SetDoc(text string) *DynClass {
	c.doc = text
	return c
}

// SetBases replaces the base list and returns c for chaining. Providers
// that cache classes before filling them use it to terminate on cyclic
// type references.
func (c *DynClass) SetBases(bases ...Class) *DynClass {
	c.bases = bases
	return c
}

func (c *DynClass) Add(name string, obj Object) *DynClass {
	c.members = append(c.members, Member{Name: name, Object: obj})
	return c
}

// DynRoutine is a Routine with a fixed signature. Opaque routines model
// natively implemented callables whose parameters cannot be recovered.
type DynRoutine struct {
	name   string
	doc    string
	sig    Signature
	opaque bool
}

var _ Routine = (*DynRoutine)(nil)

func NewRoutine(name string, sig Signature) *DynRoutine {
	return &DynRoutine{name: name, sig: sig}
}

// NewOpaqueRoutine returns a routine that reports no recoverable signature.
func NewOpaqueRoutine(name string) *DynRoutine {
	return &DynRoutine{name: name, opaque: true}
}

func (r *DynRoutine) Name() string { return r.name }
func (r *DynRoutine) Doc() string  { return r.doc }

func (r *DynRoutine) Signature() (Signature, bool) {
	if r.opaque {
		return Signature{}, false
	}
	return r.sig, true
}

func (r *DynRoutine) SetDoc(text string) *DynRoutine {
	r.doc = text
	return r
}

// DynValue is a plain datum of a known class.
type DynValue struct {
	class Class
	doc   string
}

var _ Value = (*DynValue)(nil)

func NewValue(class Class) *DynValue {
	return &DynValue{class: class}
}

func (v *DynValue) Class() Class { return v.class }
func (v *DynValue) Doc() string  { return v.doc }

func (v *DynValue) SetDoc(text string) *DynValue {
	v.doc = text
	return v
}
