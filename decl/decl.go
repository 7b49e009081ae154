// Package decl defines the normalized declaration tree that generation
// produces and the serializer renders.
//
// The node set is closed: Module, Import, Class, Function, Assign, Doc,
// Pass and Return. Nodes are plain data and always handled as pointers;
// pointer identity is node identity, which the generation passes rely on
// for element lookups and structural removal. Nodes never hold references
// back into the live object graph.
package decl

// Node is a declaration tree node.
type Node interface {
	node()
}

// Module is the root node for one namespace.
type Module struct {
	Body []Node
}

// Import declares a dependency on a namespace. Each node carries exactly
// one dotted name.
type Import struct {
	Name string
}

// Class declares a class with its base-class name expressions.
// QualifiedName is set when the name the class was discovered under
// differs from the class's own name; it renders as a leading
// __name__ = '<qualified>' statement.
type Class struct {
	Name          string
	Bases         []string
	QualifiedName string
	Body          []Node
}

// Function declares a routine. Defaults align to the tail of Params.
type Function struct {
	Name     string
	Params   []string
	Defaults []string
	VarArg   string
	KwArg    string
	Body     []Node
}

// Assign binds a name to a type-name expression.
type Assign struct {
	Target string
	Value  string
}

// Doc is a documentation block, kept as the first child of its parent.
type Doc struct {
	Text string
}

// Pass is the placeholder body statement.
type Pass struct{}

// Return is a return-type skeleton line. Only procedure catalogs emit it;
// generation passes leave it untouched.
type Return struct {
	Exprs []string
}

func (*Module) node()   {}
func (*Import) node()   {}
func (*Class) node()    {}
func (*Function) node() {}
func (*Assign) node()   {}
func (*Doc) node()      {}
func (*Pass) node()     {}
func (*Return) node()   {}

// BodyOf returns the statement body of container nodes (Module, Class,
// Function) and nil for leaves.
func BodyOf(n Node) []Node {
	switch n := n.(type) {
	case *Module:
		return n.Body
	case *Class:
		return n.Body
	case *Function:
		return n.Body
	default:
		return nil
	}
}

// SetBody replaces the statement body of a container node. Calling it on a
// leaf node is a no-op.
func SetBody(n Node, body []Node) {
	switch n := n.(type) {
	case *Module:
		n.Body = body
	case *Class:
		n.Body = body
	case *Function:
		n.Body = body
	}
}

// Inspect traverses the tree rooted at n in depth-first preorder, calling
// fn for each node. If fn returns false for a node, its children are not
// visited.
func Inspect(n Node, fn func(Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, child := range BodyOf(n) {
		Inspect(child, fn)
	}
}

// DocText returns the text of n's leading documentation block, or "" when
// the first child is not a Doc node.
func DocText(n Node) string {
	body := BodyOf(n)
	if len(body) == 0 {
		return ""
	}
	if doc, ok := body[0].(*Doc); ok {
		return doc.Text
	}
	return ""
}
