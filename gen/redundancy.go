package gen

import (
	"github.com/teranos/predef/decl"
	"github.com/teranos/predef/object"
)

// eliminateRedundancy removes class members that restate a declaration
// already made by an ancestor. Classes are processed base-most first along
// each linearized inheritance order so that declarations removed from an
// intermediate class still shadow its descendants: member comparisons use
// a snapshot of each class's body taken before any removal.
func (r *Run) eliminateRedundancy(module *decl.Module) error {
	classes := r.moduleClassElements(module)

	snapshots := make(map[object.Class][]decl.Node)
	visited := make(map[object.Class]bool)

	for _, el := range classes.ordered {
		cls := el.Object.(object.Class)
		mro, err := object.Linearize(cls)
		if err != nil {
			r.log.Warnw("Skipping redundancy elimination for class",
				"class", el.Name,
				"error", err)
			continue
		}

		for i := len(mro) - 1; i >= 0; i-- {
			current := mro[i]
			currentEl, inModule := classes.byClass[current]
			if !inModule || visited[current] {
				continue
			}
			classNode := currentEl.node.(*decl.Class)
			memberNodes := snapshotMembers(current, classNode, snapshots)

			for _, parent := range current.Bases() {
				var parentNode *decl.Class
				if parentEl, ok := classes.byClass[parent]; ok {
					parentNode = parentEl.node.(*decl.Class)
				} else {
					parentNode, err = r.foreignClassNode(parent)
					if err != nil {
						return err
					}
				}
				parentMembers := snapshotMembers(parent, parentNode, snapshots)

				for _, member := range memberNodes {
					r.removeIfRedundant(member, classNode, parentMembers)
				}
			}
			visited[current] = true
		}
	}
	return nil
}

// snapshotMembers returns the class's member nodes as they were when the
// class was first considered, regardless of removals since.
func snapshotMembers(cls object.Class, node *decl.Class, snapshots map[object.Class][]decl.Node) []decl.Node {
	if nodes, ok := snapshots[cls]; ok {
		return nodes
	}
	nodes := append([]decl.Node(nil), node.Body...)
	snapshots[cls] = nodes
	return nodes
}

// removeIfRedundant drops member from classNode's body when an equal
// declaration exists among parentMembers. Only functions and assignments
// participate; documentation blocks and placeholders stay.
func (r *Run) removeIfRedundant(member decl.Node, classNode *decl.Class, parentMembers []decl.Node) {
	switch member := member.(type) {
	case *decl.Function:
		for _, pm := range parentMembers {
			if parentFn, ok := pm.(*decl.Function); ok && routinesEqual(member, parentFn) {
				removeNode(classNode, member)
				return
			}
		}
	case *decl.Assign:
		for _, pm := range parentMembers {
			if parentAssign, ok := pm.(*decl.Assign); ok && r.assignsEqual(member, parentAssign) {
				removeNode(classNode, member)
				return
			}
		}
	}
}

// routinesEqual reports whether two function declarations restate each
// other: same name, same parameter-name sequence, same catch-all markers,
// same default expressions, same documentation text.
func routinesEqual(a, b *decl.Function) bool {
	return a.Name == b.Name &&
		stringsEqual(a.Params, b.Params) &&
		a.VarArg == b.VarArg &&
		a.KwArg == b.KwArg &&
		stringsEqual(a.Defaults, b.Defaults) &&
		decl.DocText(a) == decl.DocText(b)
}

// assignsEqual reports whether two assignments bind the same name to
// values of the same type. Types are recomputed from the live objects
// relative to the first assignment's owning namespace, so equal types
// compare equal even when the two nodes rendered them from different
// vantage points. Nodes without a registered element never compare equal.
func (r *Run) assignsEqual(a, b *decl.Assign) bool {
	if a.Target != b.Target {
		return false
	}
	elA, okA := r.byNode[a]
	elB, okB := r.byNode[b]
	if !okA || !okB {
		return false
	}
	root := elA.Owner
	return ValueTypeName(elA.Object, root) == ValueTypeName(elB.Object, root)
}

// removeNode deletes target from parent's body. Removing a node that is
// already gone is a no-op; several base classes can independently declare
// the same member.
func removeNode(parent decl.Node, target decl.Node) {
	body := decl.BodyOf(parent)
	for i, n := range body {
		if n == target {
			decl.SetBody(parent, append(body[:i], body[i+1:]...))
			return
		}
	}
}

func stringsEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
