package object

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/teranos/predef/errors"
)

// BuiltinMapping defines how Go kinds map to builtin scripting-surface
// class names.
var BuiltinMapping = map[reflect.Kind]string{
	reflect.Bool:       "bool",
	reflect.Int:        "int",
	reflect.Int8:       "int",
	reflect.Int16:      "int",
	reflect.Int32:      "int",
	reflect.Int64:      "int",
	reflect.Uint:       "int",
	reflect.Uint8:      "int",
	reflect.Uint16:     "int",
	reflect.Uint32:     "int",
	reflect.Uint64:     "int",
	reflect.Float32:    "float",
	reflect.Float64:    "float",
	reflect.Complex64:  "complex",
	reflect.Complex128: "complex",
	reflect.String:     "str",
	reflect.Slice:      "list",
	reflect.Array:      "list",
	reflect.Map:        "dict",
}

// FromStruct reflects a live Go struct into a namespace. Each exported
// field becomes a member, in field order:
//
//   - a field whose value already implements Object is used as-is
//   - a func field becomes a routine (parameters named arg1..argN,
//     variadic tail exposed as *args)
//   - a struct field tagged `predef:",class"` becomes a class declaration
//     derived from the field's type: embedded fields are bases, methods
//     are routines, exported fields are typed assignments
//   - a struct field tagged `predef:",module"` becomes a nested namespace
//   - any other field becomes a typed assignment; struct types resolve to
//     their class, scalar kinds to builtin class names per BuiltinMapping
//
// The tag's name part renames the member (`predef:"version"`), "-" skips
// the field, and a `doc:"..."` tag attaches documentation. Classes are
// cached per reflect.Type, so every mention of a type resolves to the
// same class object. Types first declared through a `,class` field belong
// to the enclosing namespace; types encountered indirectly belong to the
// namespace named after their Go package.
func FromStruct(name string, api any) (*DynNamespace, error) {
	v := reflect.ValueOf(api)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return nil, errors.Newf("namespace %s: nil api value", name)
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil, errors.Newf("namespace %s: api value must be a struct, got %s", name, v.Kind())
	}

	r := &reflector{classes: make(map[reflect.Type]*DynClass)}
	ns, err := r.namespace(name, v)
	if err != nil {
		return nil, err
	}
	if d, ok := api.(interface{ Doc() string }); ok {
		ns.SetDoc(d.Doc())
	}
	return ns, nil
}

type reflector struct {
	classes map[reflect.Type]*DynClass
}

func (r *reflector) namespace(name string, v reflect.Value) (*DynNamespace, error) {
	ns := NewNamespace(name)
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		memberName, opt := parseTag(f)
		if memberName == "-" {
			continue
		}
		obj, err := r.member(ns, memberName, opt, f, v.Field(i))
		if err != nil {
			return nil, errors.Wrapf(err, "namespace %s: field %s", name, f.Name)
		}
		ns.Add(memberName, obj)
	}
	return ns, nil
}

func (r *reflector) member(ns *DynNamespace, name, opt string, f reflect.StructField, fv reflect.Value) (Object, error) {
	if obj, ok := fv.Interface().(Object); ok {
		return obj, nil
	}

	ft := f.Type
	elem := ft
	for elem.Kind() == reflect.Pointer {
		elem = elem.Elem()
	}

	switch {
	case opt == "module":
		if elem.Kind() != reflect.Struct {
			return nil, errors.Newf("module member must be a struct, got %s", elem.Kind())
		}
		sub := fv
		for sub.Kind() == reflect.Pointer {
			if sub.IsNil() {
				return nil, errors.New("module member is nil")
			}
			sub = sub.Elem()
		}
		child, err := r.namespace(ns.Name()+"."+name, sub)
		if err != nil {
			return nil, err
		}
		child.SetDoc(f.Tag.Get("doc"))
		return child, nil

	case opt == "class":
		if elem.Kind() != reflect.Struct {
			return nil, errors.Newf("class member must be a struct type, got %s", elem.Kind())
		}
		cls := r.classFor(elem, ns.Name())
		if doc := f.Tag.Get("doc"); doc != "" {
			cls.SetDoc(doc)
		}
		return cls, nil

	case ft.Kind() == reflect.Func:
		rt := NewRoutine(name, funcSignature(ft, false))
		rt.SetDoc(f.Tag.Get("doc"))
		return rt, nil

	default:
		val := NewValue(r.valueClass(elem))
		val.SetDoc(f.Tag.Get("doc"))
		return val, nil
	}
}

// classFor resolves the class for a struct type, creating and caching it on
// first mention. The cache entry is installed before members are filled so
// self-referential types terminate.
func (r *reflector) classFor(t reflect.Type, owner string) *DynClass {
	if cls, ok := r.classes[t]; ok {
		return cls
	}
	if owner == "" {
		owner = packageNamespace(t)
	}
	cls := NewClass(t.Name(), owner)
	r.classes[t] = cls
	r.fillClass(cls, t)
	return cls
}

func (r *reflector) fillClass(cls *DynClass, t reflect.Type) {
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		elem := f.Type
		for elem.Kind() == reflect.Pointer {
			elem = elem.Elem()
		}
		if f.Anonymous && elem.Kind() == reflect.Struct {
			cls.bases = append(cls.bases, r.classFor(elem, ""))
			continue
		}
		name, opt := parseTag(f)
		if name == "-" || opt == "module" {
			continue
		}
		if f.Type.Kind() == reflect.Func {
			cls.Add(name, NewRoutine(name, funcSignature(f.Type, false)))
			continue
		}
		cls.Add(name, NewValue(r.valueClass(elem)))
	}

	// Pointer method set is a superset of the value method set.
	pt := reflect.PointerTo(t)
	for i := 0; i < pt.NumMethod(); i++ {
		m := pt.Method(i)
		cls.Add(m.Name, NewRoutine(m.Name, methodSignature(m.Type)))
	}
}

func (r *reflector) valueClass(t reflect.Type) Class {
	if t.Kind() == reflect.Struct {
		return r.classFor(t, "")
	}
	if name, ok := BuiltinMapping[t.Kind()]; ok {
		return Builtin(name)
	}
	return nil
}

// funcSignature synthesizes parameter names for a func type. Go reflection
// does not expose parameter names, so positions become arg1..argN and a
// variadic tail becomes *args.
func funcSignature(t reflect.Type, skipReceiver bool) Signature {
	var sig Signature
	start := 0
	if skipReceiver {
		start = 1
	}
	n := t.NumIn()
	for i := start; i < n; i++ {
		if t.IsVariadic() && i == n-1 {
			sig.VarArg = "args"
			break
		}
		sig.Params = append(sig.Params, fmt.Sprintf("arg%d", i-start+1))
	}
	return sig
}

// methodSignature is funcSignature with the receiver replaced by self.
// Zero-parameter methods stay empty; the walker synthesizes self for those.
func methodSignature(t reflect.Type) Signature {
	sig := funcSignature(t, true)
	if len(sig.Params) > 0 || sig.VarArg != "" {
		sig.Params = append([]string{"self"}, sig.Params...)
	}
	return sig
}

func parseTag(f reflect.StructField) (name, opt string) {
	tag := f.Tag.Get("predef")
	name = f.Name
	if tag == "" {
		return name, ""
	}
	parts := strings.SplitN(tag, ",", 2)
	if parts[0] != "" {
		name = parts[0]
	}
	if len(parts) == 2 {
		opt = parts[1]
	}
	return name, opt
}

// packageNamespace derives a namespace name for a type discovered outside
// any declared namespace: the last segment of its Go package path, skipping
// major-version suffixes. Unnamed and builtin types map to "".
func packageNamespace(t reflect.Type) string {
	p := t.PkgPath()
	if p == "" {
		return ""
	}
	segs := strings.Split(p, "/")
	for i := len(segs) - 1; i >= 0; i-- {
		s := segs[i]
		if len(s) > 1 && s[0] == 'v' && strings.Trim(s[1:], "0123456789") == "" {
			continue
		}
		return s
	}
	return p
}
