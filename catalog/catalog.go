// Package catalog models procedural databases: ordered registries of
// wire-described procedures resolved against a type registry and exposed
// as a live namespace.
//
// Procedure metadata arrives the way databases report it: dash-separated
// names, numeric type identifiers, prose descriptions. The catalog
// pythonizes names, resolves types to classes, assembles docstrings with
// Parameters and Returns sections, and rewrites the prose so quoted
// procedure and parameter references become linkable identifiers.
package catalog

import (
	"strings"
	"sync"

	"github.com/teranos/predef/gen"
	"github.com/teranos/predef/object"
)

// temporaryProcedurePrefix marks procedures registered at runtime by
// plugins. They are transient and never generated.
const temporaryProcedurePrefix = "temp_procedure_"

// TypeID is a wire type identifier as reported by a procedural database.
type TypeID int

// ParamType binds a wire type to the class its values declare as, plus an
// optional element class for container types.
type ParamType struct {
	Class object.Class
	Elem  object.Class
}

// Name renders the type for documentation. includeElem adds the element
// class in parentheses for container types.
func (t ParamType) Name(includeElem bool) string {
	if t.Class == nil {
		return "None"
	}
	name := gen.QualifiedTypeName(t.Class, "")
	if includeElem && t.Elem != nil {
		name += "(" + gen.QualifiedTypeName(t.Elem, "") + ")"
	}
	return name
}

// TypeRegistry resolves wire type identifiers to parameter types.
type TypeRegistry struct {
	types map[TypeID]ParamType
}

func NewTypeRegistry() *TypeRegistry {
	return &TypeRegistry{types: make(map[TypeID]ParamType)}
}

// Register binds a scalar wire type to a class.
func (r *TypeRegistry) Register(id TypeID, class object.Class) {
	r.types[id] = ParamType{Class: class}
}

// RegisterContainer binds a container wire type to its container class and
// the class of its elements.
func (r *TypeRegistry) RegisterContainer(id TypeID, class, elem object.Class) {
	r.types[id] = ParamType{Class: class, Elem: elem}
}

// Lookup resolves a wire type identifier.
func (r *TypeRegistry) Lookup(id TypeID) (ParamType, bool) {
	t, ok := r.types[id]
	return t, ok
}

// Param is one procedure parameter or return value as registered on the
// wire.
type Param struct {
	Type        TypeID
	Name        string
	Description string
}

// Procedure is one callable database entry. Name is the dash-separated
// wire name; the generated member name is its pythonized form.
type Procedure struct {
	Name    string
	Blurb   string
	Help    string
	Params  []Param
	Returns []Param
}

// Pythonize turns a dash-separated wire name into an identifier.
func Pythonize(name string) string {
	return strings.ReplaceAll(name, "-", "_")
}

// Unpythonize recovers the wire form of a pythonized name.
func Unpythonize(name string) string {
	return strings.ReplaceAll(name, "_", "-")
}

type entry struct {
	name string
	obj  object.Object
	proc *Procedure
}

// Database is an ordered procedure registry exposed as a namespace. Plain
// members registered alongside procedures walk through the standard member
// branches; procedures render as functions with assembled docstrings and
// return skeletons.
//
// Registration must finish before the first generation, like pass
// registration on a Pipeline.
type Database struct {
	name  string
	host  string
	doc   string
	types *TypeRegistry
	enums object.Namespace

	entries []entry
	byName  map[string]*Procedure

	refsOnce sync.Once
	refs     *quotedNameRewriter
}

var _ object.Namespace = (*Database)(nil)

// NewDatabase returns a database generating under the dotted name, with
// plain member types qualified relative to the host namespace. The host is
// the namespace the database hangs off: a database named "gimp.pdb" is
// reached through host "gimp".
func NewDatabase(name, host string, types *TypeRegistry) *Database {
	return &Database{
		name:   name,
		host:   host,
		types:  types,
		byName: make(map[string]*Procedure),
	}
}

func (db *Database) Name() string { return db.name }

func (db *Database) Doc() string { return db.doc }

// SetDoc sets the module docstring and returns db for chaining.
func (db *Database) SetDoc(text string) *Database {
	db.doc = text
	return db
}

// SetEnums names the namespace whose constants substitute for enumeration
// values in docstrings and for the run-mode default. Returns db for
// chaining.
func (db *Database) SetEnums(ns object.Namespace) *Database {
	db.enums = ns
	return db
}

// Register appends procedures in call order.
func (db *Database) Register(procs ...*Procedure) {
	for _, proc := range procs {
		name := Pythonize(proc.Name)
		db.entries = append(db.entries, entry{name: name, proc: proc})
		db.byName[name] = proc
	}
}

// AddMember appends a plain member. Plain members generate through the
// standard member branches with their types qualified against the host
// namespace.
func (db *Database) AddMember(name string, obj object.Object) {
	db.entries = append(db.entries, entry{name: name, obj: obj})
}

// Lookup resolves a registered procedure by wire or pythonized name.
func (db *Database) Lookup(name string) (*Procedure, bool) {
	proc, ok := db.byName[Pythonize(name)]
	return proc, ok
}

// Members lists every entry in registration order. Procedures appear as
// routines carrying their fixed signature and assembled docstring; the
// richer rendering with return skeletons comes from Generate. Temporary
// procedures are omitted.
func (db *Database) Members() []object.Member {
	out := make([]object.Member, 0, len(db.entries))
	for _, e := range db.entries {
		if e.proc == nil {
			out = append(out, object.Member{Name: e.name, Object: e.obj})
			continue
		}
		if strings.HasPrefix(e.name, temporaryProcedurePrefix) {
			continue
		}
		out = append(out, object.Member{Name: e.name, Object: db.routineView(e.proc)})
	}
	return out
}

func (db *Database) routineView(proc *Procedure) object.Routine {
	names, hasRunMode := pythonizedParamNames(proc.Params)
	sig := object.Signature{Params: names}
	if hasRunMode {
		sig.Defaults = []string{db.runModeDefault()}
	}
	rt := object.NewRoutine(Pythonize(proc.Name), sig)
	if doc, err := db.assembleDoc(proc); err == nil {
		rt.SetDoc(doc)
	}
	return rt
}

// runModeDefault is the expression defaulting a trailing run_mode
// parameter to non-interactive execution.
func (db *Database) runModeDefault() string {
	if db.enums != nil {
		return db.enums.Name() + ".RUN_NONINTERACTIVE"
	}
	return "RUN_NONINTERACTIVE"
}

// pythonizedParamNames returns the identifier forms of the wire parameter
// names with any run_mode parameter moved to the end, and reports whether
// one was present.
func pythonizedParamNames(params []Param) ([]string, bool) {
	names := make([]string, 0, len(params))
	for _, p := range params {
		names = append(names, Pythonize(p.Name))
	}
	for i, name := range names {
		if name != "run_mode" {
			continue
		}
		copy(names[i:], names[i+1:])
		names[len(names)-1] = "run_mode"
		return names, true
	}
	return names, false
}
