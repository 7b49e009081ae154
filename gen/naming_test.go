package gen

import (
	"testing"

	"github.com/teranos/predef/object"
)

func TestRelativeName(t *testing.T) {
	tests := []struct {
		name     string
		rootName string
		want     string
	}{
		{"gimp.pdb", "gimp", "pdb"},
		{"gimp", "gimp", "gimp"},
		{"gi.repository", "gi.repository", "repository"},
		{"gi.repository.Gtk", "gi.repository", "Gtk"},
		{"gobject", "gimp", "gobject"},
		{"a.b.c", "a.b", "c"},
		{"a.b.c", "x", "a.b.c"},
	}

	for _, tt := range tests {
		if got := RelativeName(tt.name, tt.rootName); got != tt.want {
			t.Errorf("RelativeName(%q, %q) = %q, want %q", tt.name, tt.rootName, got, tt.want)
		}
	}
}

func TestQualifiedTypeName(t *testing.T) {
	tests := []struct {
		desc     string
		cls      object.Class
		rootName string
		want     string
	}{
		{"builtin renders bare", object.Builtin("str"), "gimp", "str"},
		{"same namespace renders bare", object.NewClass("Image", "gimp"), "gimp", "Image"},
		{"foreign namespace qualifies", object.NewClass("Color", "gimpcolor"), "gimp", "gimpcolor.Color"},
		{"internal alias folds into root", object.NewClass("Widget", "gtk._gtk"), "gtk", "Widget"},
		{"internal component dropped when qualifying", object.NewClass("Widget", "gtk._gtk"), "gimp", "gtk.Widget"},
		{"underscore prefix matches root", object.NewClass("Dialog", "_gimpui"), "gimpui", "Dialog"},
		{"empty root always qualifies", object.NewClass("Image", "gimp"), "", "gimp.Image"},
		{"builtin stays bare with empty root", object.Builtin("int"), "", "int"},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			if got := QualifiedTypeName(tt.cls, tt.rootName); got != tt.want {
				t.Errorf("QualifiedTypeName(%s, %q) = %q, want %q",
					tt.cls.Name(), tt.rootName, got, tt.want)
			}
		})
	}
}

func TestValueTypeName(t *testing.T) {
	image := object.NewClass("Image", "gimp")

	tests := []struct {
		desc     string
		obj      object.Object
		rootName string
		want     string
	}{
		{"absent value", nil, "gimp", "None"},
		{"namespace in value position", object.NewNamespace("gimp.pdb"), "gimp", "module"},
		{"class in value position", image, "gimp", "type"},
		{"routine in value position", object.NewOpaqueRoutine("f"), "gimp", "None"},
		{"value of builtin class", object.NewValue(object.Builtin("int")), "gimp", "int"},
		{"value of same-namespace class", object.NewValue(image), "gimp", "Image"},
		{"value of foreign class", object.NewValue(object.NewClass("RGB", "gimpcolor")), "gimp", "gimpcolor.RGB"},
		{"value of unknown class", object.NewValue(nil), "gimp", "None"},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			if got := ValueTypeName(tt.obj, tt.rootName); got != tt.want {
				t.Errorf("ValueTypeName(%v, %q) = %q, want %q", tt.obj, tt.rootName, got, tt.want)
			}
		})
	}
}

func TestNormalizeNamespaceName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"gtk._gtk", "gtk"},
		{"gtk._gtk.unix", "gtk.unix"},
		{"gtk.gtk", "gtk"},
		{"gimp", "gimp"},
		{"gimp.pdb", "gimp.pdb"},
	}

	for _, tt := range tests {
		if got := normalizeNamespaceName(tt.in); got != tt.want {
			t.Errorf("normalizeNamespaceName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNamespaceNamesEqual(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"gimp", "gimp", true},
		{"_gimpui", "gimpui", true},
		{"gimpui", "_gimpui", true},
		{"gtk._gtk", "gtk", true},
		{"gtk", "gtk._gtk", true},
		{"gimp", "gobject", false},
		{"gimp.pdb", "gimp", false},
	}

	for _, tt := range tests {
		if got := namespaceNamesEqual(tt.a, tt.b); got != tt.want {
			t.Errorf("namespaceNamesEqual(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestForeignBaseNamespaces(t *testing.T) {
	item := object.NewClass("Item", "gimp")
	layout := object.NewClass("Layout", "pango")
	serializable := object.NewClass("Serializable", "gobject")
	boxed := object.NewClass("Boxed", "gobject")
	hidden := object.NewClass("Hidden", "gimp._gimp")
	builtin := object.Builtin("object")

	cls := object.NewClass("Drawable", "gimp",
		item, layout, serializable, builtin, boxed, hidden)

	got := foreignBaseNamespaces(cls)
	want := []string{"pango", "gobject"}
	if len(got) != len(want) {
		t.Fatalf("foreignBaseNamespaces = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("foreignBaseNamespaces = %v, want %v", got, want)
		}
	}
}
