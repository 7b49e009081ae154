package gen

import (
	"strings"

	"github.com/teranos/predef/object"
)

// RelativeName strips rootName's leading path components from a dotted
// namespace name, never consuming the final component. Walking "gi" and
// importing "gi.repository" yields "repository"; importing "gi" itself
// yields "gi".
func RelativeName(name, rootName string) string {
	parts := strings.Split(name, ".")
	for _, rootPart := range strings.Split(rootName, ".") {
		if len(parts) > 1 && rootPart == parts[0] {
			parts = parts[1:]
		} else {
			break
		}
	}
	return strings.Join(parts, ".")
}

// QualifiedTypeName renders a class name relative to the namespace named
// rootName: bare for builtin classes and classes defined in the root
// namespace, otherwise prefixed with the class's normalized namespace
// name. An empty rootName always qualifies.
func QualifiedTypeName(cls object.Class, rootName string) string {
	nsName := cls.NamespaceName()
	if nsName == "" {
		return cls.Name()
	}
	if rootName != "" && namespaceNamesEqual(nsName, rootName) {
		return cls.Name()
	}
	return normalizeNamespaceName(nsName) + "." + cls.Name()
}

// ValueTypeName renders the type of an assignment's right-hand side. The
// absent value and values of unknown class render as None; classes and
// namespaces appearing in value position report their own kind of type.
func ValueTypeName(obj object.Object, rootName string) string {
	switch object.KindOf(obj) {
	case object.KindNamespace:
		return "module"
	case object.KindClass:
		return "type"
	}
	if obj == nil {
		return "None"
	}
	cls := object.ClassOf(obj)
	if cls == nil {
		return "None"
	}
	return QualifiedTypeName(cls, rootName)
}

// namespaceNamesEqual reports whether two dotted namespace names refer to
// the same namespace. Exact equality is primary; the remaining clauses are
// best-effort heuristics for internal-implementation aliases such as
// "gtk" vs "gtk._gtk" or "_gimpui" vs "gimpui".
func namespaceNamesEqual(a, b string) bool {
	return a == b ||
		(strings.HasPrefix(a, "_") && a[1:] == b) ||
		normalizeNamespaceName(a) == b ||
		(strings.HasPrefix(b, "_") && a == b[1:]) ||
		a == normalizeNamespaceName(b)
}

// normalizeNamespaceName folds a second path component that is an
// underscore-prefixed repetition of the first: "gtk._gtk" becomes "gtk",
// "gtk._gtk.unix" becomes "gtk.unix". Other names pass through.
func normalizeNamespaceName(name string) string {
	parts := strings.Split(name, ".")
	if len(parts) >= 2 && parts[0] == strings.TrimLeft(parts[1], "_") {
		return strings.Join(append(parts[:1:1], parts[2:]...), ".")
	}
	return name
}

// foreignBaseNamespaces lists the normalized namespace names of cls's
// bases that live outside cls's own namespace, deduplicated, in base
// order. Builtin bases contribute nothing.
func foreignBaseNamespaces(cls object.Class) []string {
	var out []string
	for _, base := range cls.Bases() {
		baseNS := base.NamespaceName()
		if baseNS == "" || namespaceNamesEqual(baseNS, cls.NamespaceName()) {
			continue
		}
		name := normalizeNamespaceName(baseNS)
		if !containsString(out, name) {
			out = append(out, name)
		}
	}
	return out
}

func containsString(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
