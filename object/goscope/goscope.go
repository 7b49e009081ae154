// Package goscope exposes a Go package's exported API as an object
// namespace, so declaration generation can document Go libraries the same
// way it documents embedded scripting surfaces.
//
// Namespace members follow the package scope in sorted name order. Named
// types become classes: embedded struct fields and embedded interfaces
// are bases, exported fields are typed assignments, and the full method
// set (promoted methods included) becomes routines with a leading self
// parameter. Doc comments of the loaded package carry over; types pulled
// in from other packages keep their identity but carry no documentation.
package goscope

import (
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"sort"
	"strings"

	"golang.org/x/tools/go/packages"

	"github.com/teranos/predef/errors"
	"github.com/teranos/predef/object"
)

// loadMode requests type information for the API surface and syntax for
// doc comments.
const loadMode = packages.NeedName |
	packages.NeedTypes |
	packages.NeedSyntax |
	packages.NeedTypesInfo

// Load loads the single Go package matching pattern (an import path or a
// ./relative pattern) and returns a namespace over its exported API.
func Load(pattern string) (*object.DynNamespace, error) {
	all, err := LoadAll(pattern)
	if err != nil {
		return nil, err
	}
	if len(all) > 1 {
		return nil, errors.Newf("pattern %q matches %d packages, want one", pattern, len(all))
	}
	return all[0], nil
}

// LoadAll loads every package matching the patterns, one namespace per
// package.
func LoadAll(patterns ...string) ([]*object.DynNamespace, error) {
	cfg := &packages.Config{Mode: loadMode}
	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, errors.Wrapf(err, "loading packages %v", patterns)
	}
	if len(pkgs) == 0 {
		return nil, errors.Newf("no packages match %v", patterns)
	}

	out := make([]*object.DynNamespace, 0, len(pkgs))
	for _, pkg := range pkgs {
		if len(pkg.Errors) > 0 {
			var loadErr error
			for _, pe := range pkg.Errors {
				loadErr = errors.CombineErrors(loadErr, pe)
			}
			return nil, errors.Wrapf(loadErr, "loading package %s", pkg.PkgPath)
		}
		ld := &loader{
			classes: make(map[*types.Named]*object.DynClass),
			docs:    make(map[token.Pos]string),
		}
		out = append(out, ld.namespace(pkg))
	}
	return out, nil
}

// loader builds one namespace. The class cache keeps type identity stable
// across the graph and terminates cyclic type references; the doc index
// maps declaration positions of the loaded package to comment text.
type loader struct {
	classes map[*types.Named]*object.DynClass
	docs    map[token.Pos]string
}

func (ld *loader) namespace(pkg *packages.Package) *object.DynNamespace {
	pkgDoc := ld.indexDocs(pkg)
	ns := object.NewNamespace(namespaceName(pkg.Types)).SetDoc(pkgDoc)

	scope := pkg.Types.Scope()
	for _, name := range scope.Names() {
		obj := scope.Lookup(name)
		if !obj.Exported() {
			continue
		}
		switch obj := obj.(type) {
		case *types.TypeName:
			ns.Add(name, ld.typeMember(obj))
		case *types.Func:
			sig := obj.Type().(*types.Signature)
			ns.Add(name, object.NewRoutine(name, signatureOf(sig, false)).SetDoc(ld.docFor(obj)))
		case *types.Const, *types.Var:
			ns.Add(name, object.NewValue(ld.classOf(obj.Type())).SetDoc(ld.docFor(obj)))
		}
	}
	return ns
}

// typeMember resolves a scope-level type name. Aliases of named types
// resolve to the aliased class, so re-exports keep class identity and the
// walk records the qualified name. Aliases of unnamed types read as plain
// values.
func (ld *loader) typeMember(tn *types.TypeName) object.Object {
	if named, ok := types.Unalias(tn.Type()).(*types.Named); ok {
		return ld.classFor(named)
	}
	return object.NewValue(ld.classOf(tn.Type())).SetDoc(ld.docFor(tn))
}

// classFor returns the class for a named type, creating and caching it on
// first mention. The cache entry is installed before the class is filled
// so mutually embedded types terminate.
func (ld *loader) classFor(named *types.Named) *object.DynClass {
	if cls, ok := ld.classes[named]; ok {
		return cls
	}
	obj := named.Obj()
	cls := object.NewClass(obj.Name(), namespaceName(obj.Pkg()))
	ld.classes[named] = cls
	cls.SetDoc(ld.docFor(obj))
	ld.fillClass(cls, named)
	return cls
}

func (ld *loader) fillClass(cls *object.DynClass, named *types.Named) {
	var bases []object.Class
	var members []object.Member

	switch under := named.Underlying().(type) {
	case *types.Struct:
		for i := 0; i < under.NumFields(); i++ {
			f := under.Field(i)
			if !f.Exported() {
				continue
			}
			if f.Embedded() {
				if base := ld.classOf(f.Type()); base != nil {
					bases = append(bases, base)
				}
				continue
			}
			members = append(members, object.Member{
				Name:   f.Name(),
				Object: object.NewValue(ld.classOf(f.Type())),
			})
		}
	case *types.Interface:
		for i := 0; i < under.NumEmbeddeds(); i++ {
			if base := ld.classOf(under.EmbeddedType(i)); base != nil {
				bases = append(bases, base)
			}
		}
	}
	cls.SetBases(bases...)

	ms := methodSet(named)
	for i := 0; i < ms.Len(); i++ {
		fn, ok := ms.At(i).Obj().(*types.Func)
		if !ok || !fn.Exported() {
			continue
		}
		sig, ok := ms.At(i).Type().(*types.Signature)
		if !ok {
			continue
		}
		members = append(members, object.Member{
			Name:   fn.Name(),
			Object: object.NewRoutine(fn.Name(), signatureOf(sig, true)).SetDoc(ld.docFor(fn)),
		})
	}

	// One sorted listing, fields and methods interleaved.
	sort.Slice(members, func(i, j int) bool { return members[i].Name < members[j].Name })
	for _, m := range members {
		cls.Add(m.Name, m.Object)
	}
}

// methodSet returns the widest method set: the pointer set for concrete
// types, the interface set for interfaces.
func methodSet(named *types.Named) *types.MethodSet {
	if _, ok := named.Underlying().(*types.Interface); ok {
		return types.NewMethodSet(named)
	}
	return types.NewMethodSet(types.NewPointer(named))
}

// classOf maps a Go type to the class its values declare as. Unnamed
// composites map to builtin container classes; types with no counterpart
// map to nil, which renders as the absent value.
func (ld *loader) classOf(t types.Type) object.Class {
	switch t := types.Unalias(t).(type) {
	case *types.Named:
		return ld.classFor(t)
	case *types.Pointer:
		return ld.classOf(t.Elem())
	case *types.Basic:
		return builtinFor(t)
	case *types.Slice:
		return object.Builtin("list")
	case *types.Array:
		return object.Builtin("list")
	case *types.Map:
		return object.Builtin("dict")
	default:
		return nil
	}
}

func builtinFor(b *types.Basic) object.Class {
	info := b.Info()
	switch {
	case info&types.IsBoolean != 0:
		return object.Builtin("bool")
	case info&types.IsInteger != 0:
		return object.Builtin("int")
	case info&types.IsFloat != 0:
		return object.Builtin("float")
	case info&types.IsComplex != 0:
		return object.Builtin("complex")
	case info&types.IsString != 0:
		return object.Builtin("str")
	default:
		return nil
	}
}

// signatureOf converts a Go signature. Methods gain a leading self;
// unnamed parameters become arg1..argN and a variadic tail degrades to
// *args when unnamed.
func signatureOf(sig *types.Signature, method bool) object.Signature {
	var out object.Signature
	if method {
		out.Params = append(out.Params, "self")
	}
	params := sig.Params()
	n := params.Len()
	if sig.Variadic() {
		n--
	}
	for i := 0; i < n; i++ {
		name := params.At(i).Name()
		if name == "" || name == "_" {
			name = fmt.Sprintf("arg%d", i+1)
		}
		out.Params = append(out.Params, name)
	}
	if sig.Variadic() {
		name := params.At(params.Len() - 1).Name()
		if name == "" || name == "_" {
			name = "args"
		}
		out.VarArg = name
	}
	return out
}

// namespaceName maps a package to its dotted namespace name. Packages
// under an internal path segment attribute to the deepest public ancestor
// segment: their types surface through re-exports, never imports.
func namespaceName(pkg *types.Package) string {
	if pkg == nil {
		return ""
	}
	segs := strings.Split(pkg.Path(), "/")
	for i := len(segs) - 2; i > 0; i-- {
		if segs[i] == "internal" {
			return segs[i-1]
		}
	}
	return pkg.Name()
}

// indexDocs records doc comments of the package's top-level declarations
// keyed by the position of the declared name, and returns the package doc.
func (ld *loader) indexDocs(pkg *packages.Package) string {
	var pkgDoc string
	for _, file := range pkg.Syntax {
		if pkgDoc == "" && file.Doc != nil {
			pkgDoc = strings.TrimSpace(file.Doc.Text())
		}
		for _, d := range file.Decls {
			switch d := d.(type) {
			case *ast.FuncDecl:
				if d.Doc != nil {
					ld.docs[d.Name.Pos()] = strings.TrimSpace(d.Doc.Text())
				}
			case *ast.GenDecl:
				for _, spec := range d.Specs {
					switch spec := spec.(type) {
					case *ast.TypeSpec:
						if text := specDoc(spec.Doc, d); text != "" {
							ld.docs[spec.Name.Pos()] = text
						}
					case *ast.ValueSpec:
						text := specDoc(spec.Doc, d)
						if text == "" {
							continue
						}
						for _, name := range spec.Names {
							ld.docs[name.Pos()] = text
						}
					}
				}
			}
		}
	}
	return pkgDoc
}

// specDoc prefers the spec's own comment and falls back to the
// declaration group's comment for single-spec declarations.
func specDoc(doc *ast.CommentGroup, decl *ast.GenDecl) string {
	if doc == nil && len(decl.Specs) == 1 {
		doc = decl.Doc
	}
	if doc == nil {
		return ""
	}
	return strings.TrimSpace(doc.Text())
}

func (ld *loader) docFor(obj types.Object) string {
	return ld.docs[obj.Pos()]
}
