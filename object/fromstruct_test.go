package object_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teranos/predef/object"
)

type drawable struct {
	Width  int
	Height int
}

func (d *drawable) Flush() {}

type image struct {
	drawable
	Filename string
}

func (i *image) Resize(w, h int)   {}
func (i *image) Duplicate() *image { return nil }

type paletteAPI struct {
	Reload func() `doc:"Reloads the palette from disk."`
}

type testAPI struct {
	Drawable drawable `predef:",class"`
	Image    image    `predef:",class" doc:"A loaded image."`
	Version  string   `predef:"version"`
	Active   image
	Open     func(filename string, flags ...int) `doc:"Opens a file."`
	Palette  paletteAPI                          `predef:"palette,module"`
	Debug    bool                                `predef:"-"`
}

func (testAPI) Doc() string { return "Test scripting surface." }

func buildTestNamespace(t *testing.T) *object.DynNamespace {
	t.Helper()
	ns, err := object.FromStruct("app", testAPI{})
	require.NoError(t, err)
	return ns
}

func memberMap(t *testing.T, ns object.Namespace) map[string]object.Object {
	t.Helper()
	out := make(map[string]object.Object)
	for _, m := range ns.Members() {
		out[m.Name] = m.Object
	}
	return out
}

func TestFromStructMembers(t *testing.T) {
	ns := buildTestNamespace(t)
	assert.Equal(t, "app", ns.Name())
	assert.Equal(t, "Test scripting surface.", ns.Doc())

	var order []string
	for _, m := range ns.Members() {
		order = append(order, m.Name)
	}
	assert.Equal(t, []string{"Drawable", "Image", "version", "Active", "Open", "palette"}, order,
		"field order preserved, tag renames applied, predef:\"-\" skipped")
}

func TestFromStructClasses(t *testing.T) {
	members := memberMap(t, buildTestNamespace(t))

	img, ok := members["Image"].(object.Class)
	require.True(t, ok, "class-tagged field should be a class")
	assert.Equal(t, "image", img.Name())
	assert.Equal(t, "app", img.NamespaceName(), "declared classes belong to the enclosing namespace")
	assert.Equal(t, "A loaded image.", img.Doc())

	require.Len(t, img.Bases(), 1, "embedded struct becomes a base")
	assert.Equal(t, "drawable", img.Bases()[0].Name())

	// The embedded drawable resolves to the same class object as the
	// class-tagged Drawable field.
	drw := members["Drawable"].(object.Class)
	assert.Same(t, drw, img.Bases()[0])
}

func TestFromStructMethods(t *testing.T) {
	members := memberMap(t, buildTestNamespace(t))
	img := members["Image"].(object.Class)

	routines := make(map[string]object.Routine)
	for _, m := range img.Members() {
		if r, ok := m.Object.(object.Routine); ok {
			routines[m.Name] = r
		}
	}
	require.Contains(t, routines, "Resize")
	require.Contains(t, routines, "Duplicate")

	sig, ok := routines["Resize"].Signature()
	require.True(t, ok)
	assert.Equal(t, []string{"self", "arg1", "arg2"}, sig.Params)

	// Zero-parameter methods stay empty so the walker can synthesize self.
	sig, ok = routines["Duplicate"].Signature()
	require.True(t, ok)
	assert.Empty(t, sig.Params)
}

func TestFromStructValuesAndBuiltins(t *testing.T) {
	members := memberMap(t, buildTestNamespace(t))

	version, ok := members["version"].(object.Value)
	require.True(t, ok)
	require.NotNil(t, version.Class())
	assert.Equal(t, "str", version.Class().Name())
	assert.Equal(t, "", version.Class().NamespaceName())

	// A struct-typed plain field is an instance of its class.
	active, ok := members["Active"].(object.Value)
	require.True(t, ok)
	require.NotNil(t, active.Class())
	assert.Equal(t, "image", active.Class().Name())
	assert.Same(t, members["Image"], active.Class(), "instance resolves to the declared class")
}

func TestFromStructRoutines(t *testing.T) {
	members := memberMap(t, buildTestNamespace(t))

	open, ok := members["Open"].(object.Routine)
	require.True(t, ok)
	assert.Equal(t, "Opens a file.", open.Doc())
	sig, ok := open.Signature()
	require.True(t, ok)
	assert.Equal(t, []string{"arg1"}, sig.Params, "namespace routines get no self")
	assert.Equal(t, "args", sig.VarArg, "variadic tail becomes *args")
}

func TestFromStructSubNamespace(t *testing.T) {
	members := memberMap(t, buildTestNamespace(t))

	pal, ok := members["palette"].(object.Namespace)
	require.True(t, ok)
	assert.Equal(t, "app.palette", pal.Name(), "nested namespaces get dotted names")

	sub := memberMap(t, pal)
	reload, ok := sub["Reload"].(object.Routine)
	require.True(t, ok)
	assert.Equal(t, "Reloads the palette from disk.", reload.Doc())
}

func TestFromStructRejectsNonStruct(t *testing.T) {
	_, err := object.FromStruct("app", 42)
	require.Error(t, err)

	var nilAPI *testAPI
	_, err = object.FromStruct("app", nilAPI)
	require.Error(t, err)
}
