package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"deriv-generator/internal/layout"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "tables.cxx", cfg.Tables)
	assert.Equal(t, ".", cfg.OutputDir)
	assert.Equal(t, layout.DefaultMeshClass, cfg.MeshClass)
	assert.Equal(t, "generated_header.hxx", cfg.Outputs.Header)
	assert.Equal(t, "stencils.yaml", cfg.Outputs.Manifest)
	assert.Equal(t, layout.DefaultFields(), cfg.Fields)
	assert.Equal(t, "generated_derivs.cxx", cfg.OutputNames().Source)
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "derivgen.yaml")

	content := `
tables: src/mesh/index_derivs.cxx
output_dir: build/generated
mesh_class: BoutMesh
outputs:
  init: init.cxx
fields:
  - name: Field3D
    directions: [x, y, z]
    supertype: Field
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "src/mesh/index_derivs.cxx", cfg.Tables)
	assert.Equal(t, "build/generated", cfg.OutputDir)
	assert.Equal(t, "init.cxx", cfg.Outputs.Init)
	assert.Equal(t, "generated_header.hxx", cfg.Outputs.Header)
	require.Len(t, cfg.Fields, 1)
	assert.Equal(t, "Field", cfg.Fields[0].Supertype)

	l := cfg.Layout()
	assert.Equal(t, "BoutMesh", l.MeshClass)
	assert.Len(t, l.Operators(), 8)
}

func TestLoad_Env(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("DERIVGEN_MESH_CLASS", "BoutMesh")
	t.Setenv("DERIVGEN_OUTPUTS_HEADER", "mesh.hxx")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "BoutMesh", cfg.MeshClass)
	assert.Equal(t, "mesh.hxx", cfg.Outputs.Header)
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing explicit file", func(t *testing.T) {
		_, err := Load(filepath.Join(dir, "absent.yaml"))
		require.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("repeated direction", func(t *testing.T) {
		path := filepath.Join(dir, "bad.yaml")
		content := "fields:\n  - name: Field3D\n    directions: [x, x]\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		_, err := Load(path)
		require.ErrorIs(t, err, layout.ErrInvalidLayout)
	})
}
