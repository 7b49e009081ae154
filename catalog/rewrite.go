package catalog

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/teranos/predef/object"
)

// Parameter descriptions arrive as wire prose. The rewriters below fix
// them up for generated docstrings: integer parameters documented as
// true/false choices retype to bool, enumeration listings link to their
// constants, and quoted wire names turn into identifier references.

// boolChoiceFormat matches one true/false choice suffix: "(true or
// false)", "true/false", "{ TRUE (1), FALSE (0) }" and spacing variants.
// The verbs substitute in both orders.
const boolChoiceFormat = `[.:]? *\(?%s(  *or  *| *[/,] *)%s\)?` +
	`|[.:]? *\{ *%s( *\(%s\))?, *%s( *\(%s\))? *\}`

var boolChoiceAlternatives = fmt.Sprintf(boolChoiceFormat, "true", "false", "true", "1", "false", "0") +
	"|" + fmt.Sprintf(boolChoiceFormat, "false", "true", "false", "0", "true", "1")

var (
	// boolDescriptionPattern detects descriptions of boolean-like integer
	// parameters: a true/false choice anywhere, a "true: ... false: ..."
	// legend, or a trailing question mark.
	boolDescriptionPattern = regexp.MustCompile(
		`(?i)(` + boolChoiceAlternatives + `|true: .*false: |false: .*true: |\?$)`)
	// boolSuffixPattern strips a trailing true/false choice from the
	// description once the parameter is retyped.
	boolSuffixPattern = regexp.MustCompile(`(?i)(` + boolChoiceAlternatives + `)$`)
)

// convertIntToBool retypes an int parameter documented as a true/false
// choice and drops the now-redundant choice suffix from its description.
func convertIntToBool(p *boundParam) {
	if p.ptype.Class == nil || p.ptype.Class.Name() != "int" || p.ptype.Class.NamespaceName() != "" {
		return
	}
	if !boolDescriptionPattern.MatchString(p.desc) {
		return
	}
	p.ptype = ParamType{Class: object.Builtin("bool")}
	p.desc = boolSuffixPattern.ReplaceAllString(p.desc, "")
}

var (
	// enumListPattern splits a description ending in "{ NAME (0), ... }"
	// into prefix, listing, and closing brace.
	enumListPattern = regexp.MustCompile(`(.*\{ *)(.*?)( *\})$`)
	// enumEntryPattern matches one "NAME (0)" listing entry.
	enumEntryPattern     = regexp.MustCompile(`^([A-Z][A-Z0-9-]+) *(\([0-9]+\))$`)
	enumSeparatorPattern = regexp.MustCompile(`, *`)
	// enumConstantPattern matches the constant naming convention in an
	// enumeration namespace.
	enumConstantPattern = regexp.MustCompile(`^[A-Z][A-Z0-9_]*$`)
)

// enumRewriter qualifies enumeration value names in "{ NAME (0), ... }"
// description listings against the constants of an enumeration namespace.
type enumRewriter struct {
	names map[string]string
}

// newEnumRewriter indexes the namespace's constants by their wire form.
// TRUE and FALSE are excluded: they pythonize as literals, not constants.
func newEnumRewriter(ns object.Namespace) *enumRewriter {
	names := make(map[string]string)
	if ns != nil {
		for _, m := range ns.Members() {
			if !enumConstantPattern.MatchString(m.Name) || m.Name == "TRUE" || m.Name == "FALSE" {
				continue
			}
			names[Unpythonize(m.Name)] = ns.Name() + "." + m.Name
		}
	}
	return &enumRewriter{names: names}
}

func (e *enumRewriter) rewriteParam(p *boundParam) {
	m := enumListPattern.FindStringSubmatch(p.desc)
	if m == nil {
		return
	}
	p.desc = m[1] + e.rewriteListing(m[2]) + m[3]
}

func (e *enumRewriter) rewriteListing(listing string) string {
	entries := enumSeparatorPattern.Split(listing, -1)
	for i, entry := range entries {
		m := enumEntryPattern.FindStringSubmatch(entry)
		if m == nil {
			continue
		}
		name, number := m[1], m[2]
		if qualified, ok := e.names[name]; ok {
			name = qualified
		}
		entries[i] = name + " " + number
	}
	return strings.Join(entries, ", ")
}

// quotedNameRewriter links 'wire-name' references in prose to their
// generated identifiers as `backtick` references. The alternation pattern
// over all known names compiles lazily on first use.
type quotedNameRewriter struct {
	replacements map[string]string

	once    sync.Once
	pattern *regexp.Regexp
}

func newQuotedNameRewriter(replacements map[string]string) *quotedNameRewriter {
	return &quotedNameRewriter{replacements: replacements}
}

func (r *quotedNameRewriter) rewrite(s string) string {
	if len(r.replacements) == 0 {
		return s
	}
	r.once.Do(func() {
		keys := make([]string, 0, len(r.replacements))
		for key := range r.replacements {
			keys = append(keys, regexp.QuoteMeta(key))
		}
		sort.Strings(keys)
		r.pattern = regexp.MustCompile(`'\b(` + strings.Join(keys, "|") + `)\b'`)
	})
	return r.pattern.ReplaceAllStringFunc(s, func(match string) string {
		inner := strings.Trim(match, "'")
		if repl, ok := r.replacements[inner]; ok {
			return "`" + repl + "`"
		}
		return match
	})
}

var (
	// paramSuffixPattern captures a trailing parenthesized constraint such
	// as "(1 <= new-width)" at the end of a description.
	paramSuffixPattern = regexp.MustCompile(`^(.*)\((.*?)\)$`)
	// constraintSeparatorPattern splits a constraint on comparison
	// operators, keeping the operators.
	constraintSeparatorPattern = regexp.MustCompile(` +[<>]=? +`)
)

// paramNameRewriter pythonizes references to a procedure's own parameters:
// inside trailing parenthesized constraints of parameter descriptions, and
// as quoted references anywhere in the docstring.
type paramNameRewriter struct {
	names map[string]string
	refs  *quotedNameRewriter
}

func newParamNameRewriter(params []Param) *paramNameRewriter {
	names := make(map[string]string, len(params))
	for _, p := range params {
		names[p.Name] = Pythonize(p.Name)
	}
	return &paramNameRewriter{names: names, refs: newQuotedNameRewriter(names)}
}

func (r *paramNameRewriter) rewriteParam(p *boundParam) {
	m := paramSuffixPattern.FindStringSubmatch(p.desc)
	if m == nil {
		return
	}
	p.desc = m[1] + "(" + r.rewriteConstraint(m[2]) + ")"
}

func (r *paramNameRewriter) rewriteConstraint(constraint string) string {
	parts := splitKeepingSeparators(constraintSeparatorPattern, constraint)
	for i, part := range parts {
		if pythonized, ok := r.names[part]; ok {
			parts[i] = pythonized
		}
	}
	return strings.Join(parts, "")
}

func (r *paramNameRewriter) rewriteDoc(doc string) string {
	return r.refs.rewrite(doc)
}

// pythonizeTrueFalse rewrites wire boolean spellings to literals.
func pythonizeTrueFalse(s string) string {
	s = strings.ReplaceAll(s, "FALSE", "False")
	return strings.ReplaceAll(s, "TRUE", "True")
}

// splitKeepingSeparators splits s around re's matches, keeping the matched
// separators in the result.
func splitKeepingSeparators(re *regexp.Regexp, s string) []string {
	var parts []string
	last := 0
	for _, loc := range re.FindAllStringIndex(s, -1) {
		parts = append(parts, s[last:loc[0]], s[loc[0]:loc[1]])
		last = loc[1]
	}
	return append(parts, s[last:])
}
