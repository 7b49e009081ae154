package gen

import (
	"reflect"
	"testing"

	"github.com/teranos/predef/decl"
	"github.com/teranos/predef/object"
)

// memberNames lists the function and assignment names of a class body in
// order, skipping docs and placeholders.
func memberNames(body []decl.Node) []string {
	var names []string
	for _, n := range body {
		switch n := n.(type) {
		case *decl.Function:
			names = append(names, n.Name)
		case *decl.Assign:
			names = append(names, n.Target)
		}
	}
	return names
}

func eliminated(t *testing.T, ns object.Namespace) (*Run, *decl.Module) {
	t.Helper()
	run, module := walkedModule(t, ns)
	if err := run.eliminateRedundancy(module); err != nil {
		t.Fatalf("eliminateRedundancy: %v", err)
	}
	return run, module
}

func TestRedundancyRemovesInheritedRestatements(t *testing.T) {
	// Surfaces enumerate inherited members on every class, so a derived
	// class restates its base's declarations verbatim. Restatements go,
	// genuinely new members stay.
	getName := object.NewRoutine("get_name",
		object.Signature{Params: []string{"self"}}).SetDoc("Returns the item name.")

	base := object.NewClass("Item", "gimp")
	base.Add("get_name", getName)
	base.Add("precision", object.NewValue(object.Builtin("int")))

	derived := object.NewClass("Drawable", "gimp", base)
	derived.Add("get_name", getName)
	derived.Add("precision", object.NewValue(object.Builtin("int")))
	derived.Add("flush", object.NewRoutine("flush", object.Signature{Params: []string{"self"}}))

	ns := object.NewNamespace("gimp")
	ns.Add("Item", base)
	ns.Add("Drawable", derived)

	_, module := eliminated(t, ns)

	itemNames := memberNames(findClass(t, module.Body, "Item").Body)
	if !reflect.DeepEqual(itemNames, []string{"get_name", "precision"}) {
		t.Errorf("Item members = %v, want untouched base", itemNames)
	}
	drawableNames := memberNames(findClass(t, module.Body, "Drawable").Body)
	if !reflect.DeepEqual(drawableNames, []string{"flush"}) {
		t.Errorf("Drawable members = %v, want only flush", drawableNames)
	}
}

func TestRedundancyKeepsChangedDocumentation(t *testing.T) {
	base := object.NewClass("Item", "gimp")
	base.Add("get_name", object.NewRoutine("get_name",
		object.Signature{Params: []string{"self"}}).SetDoc("Returns the item name."))

	derived := object.NewClass("Drawable", "gimp", base)
	derived.Add("get_name", object.NewRoutine("get_name",
		object.Signature{Params: []string{"self"}}).SetDoc("Returns the drawable name."))

	ns := object.NewNamespace("gimp")
	ns.Add("Item", base)
	ns.Add("Drawable", derived)

	_, module := eliminated(t, ns)

	drawableNames := memberNames(findClass(t, module.Body, "Drawable").Body)
	if !reflect.DeepEqual(drawableNames, []string{"get_name"}) {
		t.Errorf("Drawable members = %v, want redocumented get_name kept", drawableNames)
	}
}

func TestRedundancyKeepsChangedDefaults(t *testing.T) {
	// A redeclaration that drops a default value is a different signature
	// even though the parameter names line up.
	base := object.NewClass("Item", "gimp")
	base.Add("resize", object.NewRoutine("resize", object.Signature{
		Params:   []string{"self", "width", "height"},
		Defaults: []string{"None"},
	}))

	derived := object.NewClass("Drawable", "gimp", base)
	derived.Add("resize", object.NewRoutine("resize", object.Signature{
		Params: []string{"self", "width", "height"},
	}))

	ns := object.NewNamespace("gimp")
	ns.Add("Item", base)
	ns.Add("Drawable", derived)

	_, module := eliminated(t, ns)

	drawableNames := memberNames(findClass(t, module.Body, "Drawable").Body)
	if !reflect.DeepEqual(drawableNames, []string{"resize"}) {
		t.Errorf("Drawable members = %v, want resize kept", drawableNames)
	}
}

func TestRedundancyRemovedMembersStillShadow(t *testing.T) {
	// A declaration removed from an intermediate class must still count
	// against that class's descendants: comparisons run on pre-removal
	// snapshots.
	f := object.NewRoutine("f", object.Signature{Params: []string{"self"}})

	a := object.NewClass("A", "gimp")
	a.Add("f", f)
	b := object.NewClass("B", "gimp", a)
	b.Add("f", f)
	c := object.NewClass("C", "gimp", b)
	c.Add("f", f)

	ns := object.NewNamespace("gimp")
	ns.Add("A", a)
	ns.Add("B", b)
	ns.Add("C", c)

	_, module := eliminated(t, ns)

	if names := memberNames(findClass(t, module.Body, "A").Body); !reflect.DeepEqual(names, []string{"f"}) {
		t.Errorf("A members = %v, want f", names)
	}
	if names := memberNames(findClass(t, module.Body, "B").Body); len(names) != 0 {
		t.Errorf("B members = %v, want none", names)
	}
	if names := memberNames(findClass(t, module.Body, "C").Body); len(names) != 0 {
		t.Errorf("C members = %v, want none", names)
	}
}

func TestRedundancyComparesAgainstExternalBases(t *testing.T) {
	// Bases outside the walked namespace never join the output, but their
	// synthesized members still shadow restatements. Assignment types
	// compare from the derived class's vantage point.
	flags := object.NewClass("Flags", "gobject")
	connect := object.NewRoutine("connect",
		object.Signature{Params: []string{"self", "signal"}})

	foreign := object.NewClass("Object", "gobject")
	foreign.Add("connect", connect)
	foreign.Add("flags", object.NewValue(flags))

	derived := object.NewClass("Layer", "gimp", foreign)
	derived.Add("connect", connect)
	derived.Add("flags", object.NewValue(flags))
	derived.Add("get_name", object.NewRoutine("get_name",
		object.Signature{Params: []string{"self"}}))

	ns := object.NewNamespace("gimp")
	ns.Add("Layer", derived)

	_, module := eliminated(t, ns)

	layerNames := memberNames(findClass(t, module.Body, "Layer").Body)
	if !reflect.DeepEqual(layerNames, []string{"get_name"}) {
		t.Errorf("Layer members = %v, want only get_name", layerNames)
	}
	// The external base itself stays out of the module.
	for _, n := range module.Body {
		if cls, ok := n.(*decl.Class); ok && cls.Name == "Object" {
			t.Error("external base class leaked into the module body")
		}
	}
}

func TestRedundancySkipsUnlinearizableClass(t *testing.T) {
	// Conflicting base orders make the inheritance order undecidable for
	// one class; that class is skipped intact instead of failing the run.
	f := object.NewRoutine("f", object.Signature{Params: []string{"self"}})

	a := object.NewClass("A", "gimp")
	a.Add("f", f)
	b := object.NewClass("B", "gimp")
	x := object.NewClass("X", "gimp", a, b)
	y := object.NewClass("Y", "gimp", b, a)
	z := object.NewClass("Z", "gimp", x, y)
	z.Add("f", f)

	ns := object.NewNamespace("gimp")
	ns.Add("A", a)
	ns.Add("B", b)
	ns.Add("X", x)
	ns.Add("Y", y)
	ns.Add("Z", z)

	_, module := eliminated(t, ns)

	if names := memberNames(findClass(t, module.Body, "Z").Body); !reflect.DeepEqual(names, []string{"f"}) {
		t.Errorf("Z members = %v, want f kept on the skipped class", names)
	}
	if names := memberNames(findClass(t, module.Body, "A").Body); !reflect.DeepEqual(names, []string{"f"}) {
		t.Errorf("A members = %v, want f", names)
	}
}

func TestAssignsEqualRequiresElements(t *testing.T) {
	run := newTestRun(t, object.NewNamespace("gimp"))

	a := &decl.Assign{Target: "x", Value: "int"}
	b := &decl.Assign{Target: "x", Value: "int"}
	if run.assignsEqual(a, b) {
		t.Error("assignments without elements compared equal")
	}
}

func TestRemoveNodeIdempotent(t *testing.T) {
	first := &decl.Assign{Target: "a"}
	second := &decl.Assign{Target: "b"}
	cls := &decl.Class{Name: "C", Body: []decl.Node{first, second}}

	removeNode(cls, first)
	removeNode(cls, first)

	if len(cls.Body) != 1 || cls.Body[0] != decl.Node(second) {
		t.Errorf("class body = %#v, want only the second assignment", cls.Body)
	}
}
