package gen

import (
	"github.com/teranos/predef/decl"
)

// Pass mutates one namespace's declaration tree. Passes registered for a
// namespace run after the standard sequence, before empty-body fixup.
type Pass func(*decl.Module)

// moveAssignsToEnd moves namespace-level assignments after all other
// declarations, preserving their relative order. Constants read better
// after the classes and routines they describe.
func moveAssignsToEnd(module *decl.Module) {
	var assigns, rest []decl.Node
	for _, n := range module.Body {
		if _, ok := n.(*decl.Assign); ok {
			assigns = append(assigns, n)
		} else {
			rest = append(rest, n)
		}
	}
	module.Body = append(rest, assigns...)
}

// moveClassAssignsBeforeRoutines moves class-level assignments so they sit
// together just before the first method, after the documentation block.
func moveClassAssignsBeforeRoutines(module *decl.Module) {
	for _, n := range module.Body {
		cls, ok := n.(*decl.Class)
		if !ok {
			continue
		}
		var assigns, rest []decl.Node
		for _, child := range cls.Body {
			if _, ok := child.(*decl.Assign); ok {
				assigns = append(assigns, child)
			} else {
				rest = append(rest, child)
			}
		}
		if len(assigns) == 0 {
			continue
		}
		insertAt := len(rest)
		for i, child := range rest {
			if _, ok := child.(*decl.Function); ok {
				insertAt = i
				break
			}
		}
		body := make([]decl.Node, 0, len(cls.Body))
		body = append(body, rest[:insertAt]...)
		body = append(body, assigns...)
		body = append(body, rest[insertAt:]...)
		cls.Body = body
	}
}

// fixEmptyClassBodies gives every class with nothing left to declare a
// pass placeholder, at any nesting depth. Classes carrying a qualified
// name still render a statement, so they need none.
func fixEmptyClassBodies(root decl.Node) {
	decl.Inspect(root, func(n decl.Node) bool {
		if cls, ok := n.(*decl.Class); ok && len(cls.Body) == 0 && cls.QualifiedName == "" {
			cls.Body = append(cls.Body, &decl.Pass{})
		}
		return true
	})
}

// StripClassDocs removes documentation blocks from the module's top-level
// classes. Register it for namespaces whose class documentation repeats
// bulk-generated reference text.
func StripClassDocs(module *decl.Module) {
	for _, n := range module.Body {
		cls, ok := n.(*decl.Class)
		if !ok {
			continue
		}
		if len(cls.Body) > 0 {
			if _, ok := cls.Body[0].(*decl.Doc); ok {
				cls.Body = cls.Body[1:]
			}
		}
	}
}
