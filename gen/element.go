// Package gen synthesizes declaration trees from live object graphs and
// post-processes them for output.
//
// A Pipeline holds the only cross-run state: the table of extra passes
// registered per namespace. Each Generate call creates a fresh Run that
// owns the element registry and the foreign-class node cache; both die
// with the run.
//
// The processing sequence is fixed: walk, redundancy elimination,
// hierarchy sequencing, import deduplication, assignment moves, registered
// namespace passes, empty-body fixup.
package gen

import (
	"go.uber.org/zap"

	"github.com/teranos/predef/decl"
	"github.com/teranos/predef/errors"
	"github.com/teranos/predef/object"
)

// Element records the provenance of one declaration node: the live object
// it was synthesized from, the name it was discovered under, and the
// dotted name of the namespace the discovery happened in. Declaration
// nodes never reference live objects; the run's registry maps node
// identity back to its element instead.
type Element struct {
	Object object.Object
	Name   string
	Owner  string

	node decl.Node
}

// Node returns the declaration node the element is bound to, nil before
// binding.
func (e *Element) Node() decl.Node { return e.node }

// Run is the per-namespace generation state.
type Run struct {
	root    object.Namespace
	rootEl  *Element
	byNode  map[decl.Node]*Element
	foreign map[object.Class]*decl.Class
	log     *zap.SugaredLogger
}

// NewRun starts a generation run for one namespace. The root element is
// bound to a fresh module node; Walk fills it, Process reworks it.
// Custom generators (the procedure catalog) drive InsertMember and the
// module body directly instead of calling Walk.
func NewRun(root object.Namespace, log *zap.SugaredLogger) (*Run, error) {
	r := &Run{
		root:    root,
		byNode:  make(map[decl.Node]*Element),
		foreign: make(map[object.Class]*decl.Class),
		log:     log.With("namespace", root.Name()),
	}
	r.rootEl = &Element{Object: root, Name: root.Name(), Owner: root.Name()}
	if err := r.bind(r.rootEl, &decl.Module{}); err != nil {
		return nil, err
	}
	return r, nil
}

// Root returns the element of the namespace being generated.
func (r *Run) Root() *Element { return r.rootEl }

// Module returns the declaration tree under construction.
func (r *Run) Module() *decl.Module { return r.rootEl.node.(*decl.Module) }

// bind attaches a declaration node to its element and registers the pair.
// An element is bound exactly once.
func (r *Run) bind(el *Element, node decl.Node) error {
	if el.node != nil {
		return errors.AssertionFailedf("element %q already bound to a node", el.Name)
	}
	el.node = node
	r.byNode[node] = el
	return nil
}

// ElementFor returns the element a node was synthesized from. Nodes
// created outside the walk (base-class imports, placeholder bodies) have
// no element.
func (r *Run) ElementFor(node decl.Node) (*Element, bool) {
	el, ok := r.byNode[node]
	return el, ok
}

// classElements collects the module's top-level class declarations in body
// order, keyed both ways: ordered for iteration, by live class for
// hierarchy lookups.
type classElements struct {
	ordered []*Element
	byClass map[object.Class]*Element
}

func (r *Run) moduleClassElements(module *decl.Module) classElements {
	out := classElements{byClass: make(map[object.Class]*Element)}
	for _, node := range module.Body {
		cls, ok := node.(*decl.Class)
		if !ok {
			continue
		}
		el, ok := r.byNode[cls]
		if !ok {
			continue
		}
		liveClass, ok := el.Object.(object.Class)
		if !ok {
			continue
		}
		out.ordered = append(out.ordered, el)
		out.byClass[liveClass] = el
	}
	return out
}
