package gen

import (
	"github.com/teranos/predef/decl"
	"github.com/teranos/predef/object"
)

// sequenceHierarchy reorders the module's top-level class declarations so
// every class appears after the ancestors it inherits from, while classes
// keep occupying the original class slots between other declarations.
//
// The order folds each class's linearized inheritance chain, walking the
// chains in reverse registration order and moving a class to the end of
// the working order on every re-mention; reversing the folded order then
// yields ancestors-first. Classes whose hierarchy cannot be linearized
// keep their position at the end.
func (r *Run) sequenceHierarchy(module *decl.Module) {
	classes := r.moduleClassElements(module)
	if len(classes.ordered) < 2 {
		return
	}

	type slot struct {
		node  *decl.Class
		index int
	}
	var slots []slot
	for i, node := range module.Body {
		if cls, ok := node.(*decl.Class); ok {
			slots = append(slots, slot{node: cls, index: i})
		}
	}

	mros := make([][]object.Class, 0, len(classes.ordered))
	for _, el := range classes.ordered {
		cls := el.Object.(object.Class)
		mro, err := object.Linearize(cls)
		if err != nil {
			r.log.Warnw("Skipping hierarchy ordering for class",
				"class", el.Name,
				"error", err)
			continue
		}
		mros = append(mros, mro)
	}

	var order []*decl.Class
	position := make(map[*decl.Class]int)
	moveToEnd := func(node *decl.Class) {
		i := position[node]
		order = append(order[:i], order[i+1:]...)
		for _, n := range order[i:] {
			position[n]--
		}
		position[node] = len(order)
		order = append(order, node)
	}

	for i := len(mros) - 1; i >= 0; i-- {
		for _, cls := range mros[i] {
			el, ok := classes.byClass[cls]
			if !ok {
				continue
			}
			node := el.node.(*decl.Class)
			if _, seen := position[node]; seen {
				moveToEnd(node)
			} else {
				position[node] = len(order)
				order = append(order, node)
			}
		}
	}

	for i, j := 0, len(order)-1; i < j; i, j = i+1, j-1 {
		order[i], order[j] = order[j], order[i]
	}

	// Classes skipped above (failed linearizations never mentioned by
	// another chain) still need a slot.
	for _, s := range slots {
		if _, ok := position[s.node]; !ok {
			order = append(order, s.node)
			position[s.node] = len(order) - 1
		}
	}

	for _, s := range slots {
		removeNode(module, s.node)
	}
	for i, s := range slots {
		insertNode(module, s.index, order[i])
	}
}

func insertNode(parent decl.Node, index int, child decl.Node) {
	body := decl.BodyOf(parent)
	body = append(body, nil)
	copy(body[index+1:], body[index:])
	body[index] = child
	decl.SetBody(parent, body)
}
