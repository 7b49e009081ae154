package gen

import (
	"github.com/teranos/predef/decl"
)

// dedupeImports removes every import of a namespace name already imported
// earlier in depth-first order, across the whole tree. One walk, one seen
// set: an import at the top level also shadows later imports nested in
// class bodies.
func dedupeImports(root decl.Node) {
	seen := make(map[string]bool)
	var walk func(n decl.Node)
	walk = func(n decl.Node) {
		body := decl.BodyOf(n)
		if body == nil {
			return
		}
		kept := body[:0]
		for _, child := range body {
			if imp, ok := child.(*decl.Import); ok {
				if seen[imp.Name] {
					continue
				}
				seen[imp.Name] = true
			}
			kept = append(kept, child)
			walk(child)
		}
		decl.SetBody(n, kept)
	}
	walk(root)
}
