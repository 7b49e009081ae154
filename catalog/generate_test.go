package catalog_test

import (
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/teranos/predef/catalog"
	"github.com/teranos/predef/decl"
	"github.com/teranos/predef/object"
)

const (
	typeInt32 catalog.TypeID = iota
	typeImage
	typeFloatArray
)

// TestDatabaseGenerate renders a small procedural database end to end:
// run_mode trails with a default, prose rewrites land in the docstrings,
// temporary procedures disappear, and plain members go through the
// standard member branches.
func TestDatabaseGenerate(t *testing.T) {
	types := catalog.NewTypeRegistry()
	types.Register(typeInt32, object.Builtin("int"))
	types.Register(typeImage, object.NewClass("Image", "gimp"))
	types.RegisterContainer(typeFloatArray, object.Builtin("tuple"), object.Builtin("float"))

	enums := object.NewNamespace("gimpenums").
		Add("RUN_INTERACTIVE", object.NewValue(object.Builtin("int"))).
		Add("RUN_NONINTERACTIVE", object.NewValue(object.Builtin("int")))

	db := catalog.NewDatabase("gimp.pdb", "gimp", types).
		SetDoc("GIMP procedural database.").
		SetEnums(enums)
	db.Register(
		&catalog.Procedure{
			Name:  "gimp-image-resize",
			Blurb: "Resize the image to the specified extents.",
			Help:  "This procedure resizes the image. Use 'gimp-image-resize-to-layers' to fit all layers.",
			Params: []catalog.Param{
				{Type: typeInt32, Name: "run-mode", Description: "The run mode { RUN-INTERACTIVE (0), RUN-NONINTERACTIVE (1) }"},
				{Type: typeImage, Name: "image", Description: "The image"},
				{Type: typeInt32, Name: "new-width", Description: "New image width (1 <= new-width)"},
				{Type: typeInt32, Name: "auto-center", Description: "Center the image { TRUE (1), FALSE (0) }"},
			},
			Returns: []catalog.Param{
				{Type: typeFloatArray, Name: "offsets", Description: "The offsets"},
			},
		},
		&catalog.Procedure{
			Name:  "gimp-image-resize-to-layers",
			Blurb: "Resize the image to fit all layers.",
		},
		&catalog.Procedure{
			Name:  "temp-procedure-number-1",
			Blurb: "Transient plugin helper.",
		},
	)
	db.AddMember("version", object.NewValue(object.Builtin("str")))
	db.AddMember("config", object.NewNamespace("gimp.pdb.config"))

	module, err := db.Generate(zap.NewNop().Sugar())
	require.NoError(t, err)

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "pdb", []byte(decl.Serialize(module)))
}

func TestDatabaseGenerateUnknownType(t *testing.T) {
	db := catalog.NewDatabase("gimp.pdb", "gimp", catalog.NewTypeRegistry())
	db.Register(&catalog.Procedure{
		Name:   "gimp-broken",
		Params: []catalog.Param{{Type: catalog.TypeID(7), Name: "x"}},
	})

	_, err := db.Generate(zap.NewNop().Sugar())
	require.Error(t, err)
	require.Contains(t, err.Error(), "gimp-broken")
}
