package gen

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"deriv-generator/internal/layout"
	"deriv-generator/internal/table"
)

func loadFixture(t *testing.T) []byte {
	t.Helper()

	src, err := os.ReadFile(filepath.Join("testdata", "tables.cxx"))
	require.NoError(t, err)

	return src
}

func parseFixture(t *testing.T) *table.Model {
	t.Helper()

	m, err := table.Parse(loadFixture(t))
	require.NoError(t, err)

	return m
}

func generateFixture(t *testing.T) *Output {
	t.Helper()

	g := NewGenerator(DefaultGeneratorConfig())
	out, err := g.Generate(parseFixture(t))
	require.NoError(t, err)

	return out
}

func TestGenerate_Stencils(t *testing.T) {
	out := generateFixture(t)

	// methods x branches x (3 Field3D + 2 Field2D directions), per table:
	// First 4, FirstStag 2x2, Second 2, SecondStag 1x2, Upwind 5,
	// UpwindStag 4x2, Flux 3, FluxStag 1x2.
	require.Len(t, out.Stencils, 150)

	assert.Equal(t, GeneratedFunctionSpec{
		Name:      "indexDDX_norm_DIFF_C2",
		Field:     "Field3D",
		Direction: "x",
		Branch:    BranchNorm,
		Stencil:   "DDX_C2",
	}, out.Stencils[0])

	last := out.Stencils[len(out.Stencils)-1]
	assert.Equal(t, "indexFDDY_off_DIFF_U1", last.Name)
	assert.Equal(t, "Field2D", last.Field)
	assert.Equal(t, "FDDX_U1_stag", last.Stencil)
	assert.True(t, last.Flux)

	seen := make(map[specKey]bool)
	for _, s := range out.Stencils {
		key := specKey{s.Name, s.Field}
		assert.False(t, seen[key], "repeated %s for %s", s.Name, s.Field)
		seen[key] = true
	}
}

func TestGenerate_DispatchersBeforeWrappers(t *testing.T) {
	out := generateFixture(t)

	assert.True(t, strings.HasPrefix(out.Source, "// Code generated by deriv-generator. DO NOT EDIT."))
	assert.Contains(t, out.Source, "const Field3D indexDDZ_non_stag(const Field3D &f, CELL_LOC outloc, DIFF_METHOD method) {")
	assert.Contains(t, out.Source, "const Field3D indexDDZ_stag(const Field3D &f, CELL_LOC outloc, DIFF_METHOD method) {")

	lastDispatcher := strings.LastIndex(out.Source, "_stag(const")
	firstWrapper := strings.Index(out.Source, "AiolosMesh::indexDDX(")

	require.Positive(t, firstWrapper)
	assert.Less(t, lastDispatcher, firstWrapper)
	assert.Equal(t, 40, strings.Count(out.Source, "  switch (method) {"))
	assert.Equal(t, 20, strings.Count(out.Source, "const Field3D AiolosMesh::")+
		strings.Count(out.Source, "const Field2D AiolosMesh::"))
}

func TestGenerate_Header(t *testing.T) {
	out := generateFixture(t)

	assert.Contains(t, out.Header,
		"  virtual const Field3D indexDDZ(const Field3D &f, CELL_LOC outloc, DIFF_METHOD method, bool ignored) override;\n")
	assert.Contains(t, out.Header,
		"  virtual const Field2D indexDDX(const Field2D &f) override;\n")
	assert.Contains(t, out.Header,
		"  virtual const Field2D indexFDDX(const Field2D &v, const Field2D &f, CELL_LOC outloc, DIFF_METHOD method, REGION ignored) override;\n")

	assert.Equal(t, 19, strings.Count(out.Header, ") override;\n"))
	assert.Equal(t, 1, strings.Count(out.Header, "dynamic_cast<const Field3D &>(v)"))

	body := strings.TrimPrefix(out.Header, "// Code generated by deriv-generator. DO NOT EDIT.\n\n")
	for _, line := range strings.Split(strings.TrimSuffix(body, "\n"), "\n") {
		assert.True(t, strings.HasPrefix(line, "  "), "unindented header line %q", line)
	}
}

func TestGenerate_Init(t *testing.T) {
	out := generateFixture(t)

	assert.Contains(t, out.Init, "DIFF_METHOD default_x_FirstDeriv;\n")
	assert.Contains(t, out.Init, "DIFF_METHOD default_z_FluxStagDeriv;\n")
	assert.NotContains(t, out.Init, "Field2D")
	assert.Contains(t, out.Init, "void AiolosMesh::derivs_init(Options * option) {\n")
	assert.Equal(t, 3, strings.Count(out.Init, "dirOption = option->getSection("))
	assert.Equal(t, 3, strings.Count(out.Init, "\n  name = \"C2\";"))
	assert.Len(t, out.Selections, 24)
	assert.True(t, strings.HasSuffix(out.Init, "}\n"))
}

func TestGenerate_Files(t *testing.T) {
	out := generateFixture(t)

	files := out.Files(DefaultOutputNames())
	require.Len(t, files, 3)
	assert.Equal(t, "generated_header.hxx", files[0].Filename)
	assert.Equal(t, out.Source, string(files[1].Content))
	assert.Equal(t, "generated_init.cxx", files[2].Filename)
}

func TestGenerate_SourceInBanner(t *testing.T) {
	cfg := DefaultGeneratorConfig()
	cfg.Source = "tables.cxx"

	out, err := NewGenerator(cfg).Generate(parseFixture(t))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out.Init, "// Code generated by deriv-generator from tables.cxx. DO NOT EDIT.\n\n"))
}

func TestGenerate_Errors(t *testing.T) {
	fixture := string(loadFixture(t))

	tests := []struct {
		name    string
		src     string
		wantErr error
	}{
		{
			name: "renamed table",
			src: strings.Replace(fixture,
				"static DiffLookup FluxStagTable[] = {", "static DiffLookup Unused[] = {", 1),
			wantErr: ErrUnknownTable,
		},
		{
			name: "table without layout entry",
			src: fixture + "\nstatic DiffLookup ExtraTable[] = {\n" +
				"    {DIFF_C2, DDX_C2, NULL, NULL}};\n",
			wantErr: ErrUnknownTable,
		},
		{
			name: "flux-like first derivative",
			src: strings.Replace(fixture,
				"{DIFF_C2, DDX_C2, NULL, NULL}", "{DIFF_C2, NULL, VDDX_C2, NULL}", 1),
			wantErr: ErrFamilyMismatch,
		},
		{
			name: "method without description",
			src: strings.Replace(fixture,
				`{DIFF_S2, "S2", "MUSCL"},`, "", 1),
			wantErr: ErrMissingDescription,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := table.Parse([]byte(tt.src))
			require.NoError(t, err)

			out, err := NewGenerator(DefaultGeneratorConfig()).Generate(m)
			require.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, out)
		})
	}
}

func TestGenerate_MalformedSource(t *testing.T) {
	src := strings.Replace(string(loadFixture(t)), "{DIFF_C4, DDX_C4, NULL, NULL}", "{DIFF_C4, DDX_C4}", 1)

	m, err := table.Parse([]byte(src))
	require.NoError(t, err)
	require.True(t, m.Diagnostics.HasErrors())

	out, err := NewGenerator(DefaultGeneratorConfig()).Generate(m)
	require.ErrorIs(t, err, table.ErrMalformedEntry)
	assert.Nil(t, out)
}

func TestGenerate_MissingTable(t *testing.T) {
	fixture := string(loadFixture(t))
	cut := strings.Index(fixture, "static DiffLookup FluxStagTable")
	require.Positive(t, cut)

	src := fixture[:cut]

	m, err := table.Parse([]byte(src))
	require.NoError(t, err)

	_, err = NewGenerator(DefaultGeneratorConfig()).Generate(m)
	require.ErrorIs(t, err, ErrMissingTable)
	assert.Contains(t, err.Error(), "FluxStagTable")
}

func TestGenerate_DispatcherCollision(t *testing.T) {
	src := `static DiffLookup ATable[] = {
    {DIFF_C2, DDX_C2, NULL, NULL}};
static DiffLookup BTable[] = {
    {DIFF_C4, DDX_C4, NULL, NULL}};
`
	cfg := GeneratorConfig{Layout: layout.Layout{
		MeshClass: "Mesh",
		Fields:    []layout.FieldKind{{Name: "Field3D", Directions: []string{"x"}}},
		Families: []layout.Family{
			{Kind: "A", Template: "indexDD%s", Fallback: "C2", Variants: []layout.Variant{{Table: "ATable"}}},
			{Kind: "B", Template: "indexDD%s", Fallback: "C2", Variants: []layout.Variant{{Table: "BTable"}}},
		},
	}}

	m, err := table.Parse([]byte(src))
	require.NoError(t, err)

	_, err = NewGenerator(cfg).Generate(m)
	require.ErrorIs(t, err, ErrDuplicateFunction)
	assert.Contains(t, err.Error(), "indexDDX_non_stag")
}

func TestGenerate_InvalidLayout(t *testing.T) {
	_, err := NewGenerator(GeneratorConfig{}).Generate(parseFixture(t))
	require.ErrorIs(t, err, layout.ErrInvalidLayout)
}
