package catalog

import (
	"strings"

	"go.uber.org/zap"

	"github.com/teranos/predef/decl"
	"github.com/teranos/predef/errors"
	"github.com/teranos/predef/gen"
)

// boundParam is one parameter with its wire type resolved and its names in
// both forms. Docstring rewriters mutate bound params freely; every
// consumer resolves a fresh set.
type boundParam struct {
	name     string
	origName string
	ptype    ParamType
	desc     string
}

func (db *Database) resolve(params []Param) ([]*boundParam, error) {
	out := make([]*boundParam, 0, len(params))
	for _, p := range params {
		t, ok := db.types.Lookup(p.Type)
		if !ok {
			return nil, errors.Newf("unknown wire type %d for %q", p.Type, p.Name)
		}
		out = append(out, &boundParam{
			name:     Pythonize(p.Name),
			origName: p.Name,
			ptype:    t,
			desc:     p.Description,
		})
	}
	return out, nil
}

// moveRunModeLast reorders a resolved parameter list so run_mode trails,
// matching the pythonized calling convention, and reports whether it was
// present.
func moveRunModeLast(params []*boundParam) bool {
	for i, p := range params {
		if p.name != "run_mode" {
			continue
		}
		moved := params[i]
		copy(params[i:], params[i+1:])
		params[len(params)-1] = moved
		return true
	}
	return false
}

// assembleDoc builds a procedure's docstring: blurb, help when it adds
// anything, then Parameters and Returns sections, then whole-docstring
// rewrites. The result is newline-framed so every content line serializes
// at column zero.
func (db *Database) assembleDoc(proc *Procedure) (string, error) {
	params, err := db.resolve(proc.Params)
	if err != nil {
		return "", err
	}
	returns, err := db.resolve(proc.Returns)
	if err != nil {
		return "", err
	}
	moveRunModeLast(params)

	enums := newEnumRewriter(db.enums)
	paramNames := newParamNameRewriter(proc.Params)

	var sb strings.Builder
	sb.WriteString(proc.Blurb)
	if proc.Help != "" && proc.Help != proc.Blurb {
		sb.WriteString("\n\n")
		sb.WriteString(proc.Help)
	}
	sb.WriteString(paramsSection("Parameters:", params,
		convertIntToBool, enums.rewriteParam, paramNames.rewriteParam))
	sb.WriteString(paramsSection("Returns:", returns, enums.rewriteParam))

	doc := pythonizeTrueFalse(sb.String())
	doc = db.procedureRefs().rewrite(doc)
	doc = paramNames.rewriteDoc(doc)
	return "\n" + strings.TrimSpace(doc) + "\n", nil
}

// paramsSection renders one docstring section, applying the rewriters to
// each parameter first.
func paramsSection(heading string, params []*boundParam, rewriters ...func(*boundParam)) string {
	if len(params) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString("\n\n")
	sb.WriteString(heading)
	for _, p := range params {
		for _, rewrite := range rewriters {
			rewrite(p)
		}
		sb.WriteString("\n")
		sb.WriteString(p.name + " (" + p.ptype.Name(true) + "): " + p.desc)
	}
	return sb.String()
}

// procedureRefs maps every permanent procedure's wire name to its
// database-qualified identifier, for linking quoted cross-references.
func (db *Database) procedureRefs() *quotedNameRewriter {
	db.refsOnce.Do(func() {
		prefix := gen.RelativeName(db.name, db.host) + "."
		refs := make(map[string]string)
		for _, e := range db.entries {
			if e.proc == nil || strings.HasPrefix(e.name, temporaryProcedurePrefix) {
				continue
			}
			refs[Unpythonize(e.name)] = prefix + e.name
		}
		db.refs = newQuotedNameRewriter(refs)
	})
	return db.refs
}

// procNode renders one procedure as a function declaration: pythonized
// name, run_mode trailing with a non-interactive default, assembled
// docstring, and a return skeleton naming the return types.
func (db *Database) procNode(proc *Procedure) (*decl.Function, error) {
	doc, err := db.assembleDoc(proc)
	if err != nil {
		return nil, errors.Wrapf(err, "procedure %s", proc.Name)
	}
	names, hasRunMode := pythonizedParamNames(proc.Params)

	node := &decl.Function{Name: Pythonize(proc.Name), Params: names}
	if hasRunMode {
		node.Defaults = []string{db.runModeDefault()}
	}

	returns, err := db.resolve(proc.Returns)
	if err != nil {
		return nil, errors.Wrapf(err, "procedure %s", proc.Name)
	}
	ret := &decl.Return{}
	for _, r := range returns {
		ret.Exprs = append(ret.Exprs, r.ptype.Name(false))
	}
	node.Body = []decl.Node{&decl.Doc{Text: doc}, ret}
	return node, nil
}

// Generate renders the database as a declaration module. Procedures
// become function declarations in registration order; plain members go
// through the standard member branches with types qualified against the
// host namespace. Temporary procedures are skipped. The tree needs no
// processing passes: procedures carry no inherited members to eliminate
// and no hierarchy to sequence.
func (db *Database) Generate(log *zap.SugaredLogger) (*decl.Module, error) {
	run, err := gen.NewRun(db, log)
	if err != nil {
		return nil, err
	}
	module := run.Module()
	for _, e := range db.entries {
		if e.proc != nil {
			if strings.HasPrefix(e.name, temporaryProcedurePrefix) {
				continue
			}
			node, err := db.procNode(e.proc)
			if err != nil {
				return nil, err
			}
			module.Body = append(module.Body, node)
			continue
		}
		if err := run.InsertMemberIn(db.host, run.Root(), e.name, e.obj); err != nil {
			return nil, err
		}
	}
	run.AttachDoc(run.Root())
	return module, nil
}

var _ gen.Generator = (*Database)(nil)
