package gen

import (
	"strings"

	"github.com/teranos/predef/decl"
	"github.com/teranos/predef/errors"
	"github.com/teranos/predef/object"
)

// Walk inserts declarations for every member of the run's namespace and
// attaches the namespace documentation.
func (r *Run) Walk() error {
	if err := r.insertChildren(r.rootEl); err != nil {
		return errors.Wrapf(err, "walking namespace %s", r.root.Name())
	}
	r.AttachDoc(r.rootEl)
	return nil
}

// insertChildren synthesizes declaration nodes for every member of the
// element's object and inserts them into the element's node body.
func (r *Run) insertChildren(parent *Element) error {
	for _, m := range memberList(parent.Object) {
		if err := r.InsertMember(parent, m.Name, m.Object); err != nil {
			return err
		}
	}
	return nil
}

func memberList(obj object.Object) []object.Member {
	switch obj := obj.(type) {
	case object.Namespace:
		return obj.Members()
	case object.Class:
		return obj.Members()
	default:
		return nil
	}
}

// InsertMember classifies one discovered member and inserts its
// declaration subtree into the parent element's node:
//
//   - namespaces prepend an import of their root-relative name
//   - classes append a class declaration and prepend imports for any
//     foreign base-class namespaces
//   - routines append a function declaration; under a class parent, an
//     empty parameter list gains a leading self
//   - everything else appends a typed assignment
//
// Members named __class__ never classify as classes; the value branch
// records them as plain type assignments.
func (r *Run) InsertMember(parent *Element, name string, obj object.Object) error {
	return r.InsertMemberIn(parent.Owner, parent, name, obj)
}

// InsertMemberIn is InsertMember with the owning namespace overridden.
// Procedure catalogs attribute their plain members to the host namespace
// rather than to the catalog itself, so type names qualify against the
// host.
func (r *Run) InsertMemberIn(namespace string, parent *Element, name string, obj object.Object) error {
	child := &Element{Object: obj, Name: name, Owner: namespace}

	switch kind := object.KindOf(obj); {
	case kind == object.KindNamespace:
		ns := obj.(object.Namespace)
		node := &decl.Import{Name: RelativeName(ns.Name(), child.Owner)}
		if err := r.bind(child, node); err != nil {
			return err
		}
		prependNode(parent.node, node)

	case kind == object.KindClass && name != object.ClassName:
		cls := obj.(object.Class)
		node, err := r.classNode(child, cls, parent.Owner)
		if err != nil {
			return err
		}
		appendNode(parent.node, node)
		r.AttachDoc(child)
		foreignNames := foreignBaseNamespaces(cls)
		for i := len(foreignNames) - 1; i >= 0; i-- {
			prependNode(parent.node, &decl.Import{Name: foreignNames[i]})
		}

	case kind == object.KindRoutine:
		rt := obj.(object.Routine)
		_, parentIsClass := parent.Object.(object.Class)
		node := routineNode(rt, name, parentIsClass)
		if err := r.bind(child, node); err != nil {
			return err
		}
		appendNode(parent.node, node)
		r.AttachDoc(child)

	default:
		node := &decl.Assign{Target: name, Value: ValueTypeName(obj, child.Owner)}
		if err := r.bind(child, node); err != nil {
			return err
		}
		appendNode(parent.node, node)
	}
	return nil
}

// classNode builds the declaration for a class discovered under the given
// name. Base names render relative to rootName. When the discovered name
// differs from the class's own name, the node carries the class's
// qualified name.
func (r *Run) classNode(el *Element, cls object.Class, rootName string) (*decl.Class, error) {
	node := &decl.Class{Name: el.Name}
	for _, base := range cls.Bases() {
		node.Bases = append(node.Bases, QualifiedTypeName(base, rootName))
	}
	if err := r.bind(el, node); err != nil {
		return nil, err
	}
	if el.Name != cls.Name() {
		node.QualifiedName = QualifiedTypeName(cls, rootName)
	}
	if err := r.insertChildren(el); err != nil {
		return nil, err
	}
	return node, nil
}

// foreignClassNode synthesizes (and caches) the declaration tree for a
// base class defined outside the walked namespace. The node never joins
// the output tree; redundancy elimination compares against its members.
// Base names are always fully qualified and the class's own namespace
// scopes its member types.
func (r *Run) foreignClassNode(cls object.Class) (*decl.Class, error) {
	if node, ok := r.foreign[cls]; ok {
		return node, nil
	}
	el := &Element{Object: cls, Name: cls.Name(), Owner: cls.NamespaceName()}
	node := &decl.Class{Name: cls.Name()}
	for _, base := range cls.Bases() {
		node.Bases = append(node.Bases, QualifiedTypeName(base, ""))
	}
	if err := r.bind(el, node); err != nil {
		return nil, err
	}
	if err := r.insertChildren(el); err != nil {
		return nil, errors.Wrapf(err, "synthesizing external class %q", cls.Name())
	}
	r.foreign[cls] = node
	return node, nil
}

func routineNode(rt object.Routine, name string, parentIsClass bool) *decl.Function {
	node := &decl.Function{Name: name, Body: []decl.Node{&decl.Pass{}}}
	if sig, ok := rt.Signature(); ok {
		node.Params = sig.Params
		node.Defaults = sig.Defaults
		node.VarArg = sig.VarArg
		node.KwArg = sig.KwArg
	}
	// Natively implemented routines reflect no parameters; under a class
	// the receiver is still known to exist.
	if parentIsClass && len(node.Params) == 0 {
		node.Params = []string{"self"}
	}
	return node
}

// AttachDoc inserts the element object's documentation as the first child
// of its node. Objects without documentation stay bare.
func (r *Run) AttachDoc(el *Element) {
	text := DocOf(el.Object)
	if text == "" {
		return
	}
	body := decl.BodyOf(el.node)
	decl.SetBody(el.node, append([]decl.Node{&decl.Doc{Text: text}}, body...))
}

// DocOf returns an object's documentation text normalized for embedding:
// leading whitespace on the first line is dropped and the common
// indentation of continuation lines is removed.
func DocOf(obj object.Object) string {
	if obj == nil {
		return ""
	}
	return cleanDoc(obj.Doc())
}

func cleanDoc(text string) string {
	if text == "" {
		return ""
	}
	lines := strings.Split(text, "\n")
	lines[0] = strings.TrimLeft(lines[0], " \t")

	margin := -1
	for _, line := range lines[1:] {
		trimmed := strings.TrimLeft(line, " \t")
		if trimmed == "" {
			continue
		}
		indent := len(line) - len(trimmed)
		if margin < 0 || indent < margin {
			margin = indent
		}
	}
	if margin > 0 {
		for i, line := range lines[1:] {
			if len(line) >= margin {
				lines[i+1] = line[margin:]
			} else {
				lines[i+1] = strings.TrimLeft(line, " \t")
			}
		}
	}

	start, end := 0, len(lines)
	for start < end && strings.TrimSpace(lines[start]) == "" {
		start++
	}
	for end > start && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}
	return strings.Join(lines[start:end], "\n")
}

func appendNode(parent decl.Node, child decl.Node) {
	decl.SetBody(parent, append(decl.BodyOf(parent), child))
}

func prependNode(parent decl.Node, child decl.Node) {
	decl.SetBody(parent, append([]decl.Node{child}, decl.BodyOf(parent)...))
}
