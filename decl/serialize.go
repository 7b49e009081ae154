package decl

import (
	"fmt"
	"strings"
)

const indentUnit = "    "

// Serialize renders the declaration tree as skeleton source text: one
// declaration per line, 4-space indentation, every statement terminated
// by a newline. Bodies render in node order; a class's qualified-name
// statement renders between its documentation block and its members.
func Serialize(root Node) string {
	var p printer
	p.node(root)
	return p.sb.String()
}

type printer struct {
	sb    strings.Builder
	depth int
}

func (p *printer) line(s string) {
	for i := 0; i < p.depth; i++ {
		p.sb.WriteString(indentUnit)
	}
	p.sb.WriteString(s)
	p.sb.WriteByte('\n')
}

func (p *printer) linef(format string, args ...any) {
	p.line(fmt.Sprintf(format, args...))
}

func (p *printer) node(n Node) {
	switch n := n.(type) {
	case *Module:
		for _, child := range n.Body {
			p.node(child)
		}
	case *Import:
		p.linef("import %s", n.Name)
	case *Class:
		p.class(n)
	case *Function:
		p.function(n)
	case *Assign:
		p.linef("%s = %s", n.Target, n.Value)
	case *Doc:
		p.doc(n)
	case *Pass:
		p.line("pass")
	case *Return:
		p.returnLine(n)
	}
}

func (p *printer) class(c *Class) {
	if len(c.Bases) > 0 {
		p.linef("class %s(%s):", c.Name, strings.Join(c.Bases, ", "))
	} else {
		p.linef("class %s:", c.Name)
	}

	p.depth++
	defer func() { p.depth-- }()

	body := c.Body
	printed := 0
	if len(body) > 0 {
		if doc, ok := body[0].(*Doc); ok {
			p.doc(doc)
			body = body[1:]
			printed++
		}
	}
	if c.QualifiedName != "" {
		p.linef("__name__ = '%s'", c.QualifiedName)
		printed++
	}
	for _, child := range body {
		p.node(child)
		printed++
	}
	if printed == 0 {
		p.line("pass")
	}
}

func (p *printer) function(f *Function) {
	p.linef("def %s(%s):", f.Name, paramList(f))

	p.depth++
	defer func() { p.depth-- }()

	if len(f.Body) == 0 {
		p.line("pass")
		return
	}
	for _, child := range f.Body {
		p.node(child)
	}
}

func paramList(f *Function) string {
	var parts []string
	firstDefault := len(f.Params) - len(f.Defaults)
	for i, param := range f.Params {
		if i >= firstDefault && firstDefault >= 0 {
			parts = append(parts, param+"="+f.Defaults[i-firstDefault])
		} else {
			parts = append(parts, param)
		}
	}
	if f.VarArg != "" {
		parts = append(parts, "*"+f.VarArg)
	}
	if f.KwArg != "" {
		parts = append(parts, "**"+f.KwArg)
	}
	return strings.Join(parts, ", ")
}

func (p *printer) doc(d *Doc) {
	text := strings.ReplaceAll(d.Text, `"""`, `\"\"\"`)
	if strings.HasSuffix(text, `"`) {
		text += " "
	}
	lines := strings.Split(text, "\n")
	if len(lines) == 1 {
		p.linef(`"""%s"""`, lines[0])
		return
	}
	// Continuation lines are part of the string literal and keep their
	// original column.
	p.linef(`"""%s`, lines[0])
	for _, line := range lines[1 : len(lines)-1] {
		p.sb.WriteString(line)
		p.sb.WriteByte('\n')
	}
	p.sb.WriteString(lines[len(lines)-1])
	p.sb.WriteString(`"""`)
	p.sb.WriteByte('\n')
}

func (p *printer) returnLine(r *Return) {
	if len(r.Exprs) == 0 {
		p.line("return None")
		return
	}
	p.linef("return %s", strings.Join(r.Exprs, ", "))
}
