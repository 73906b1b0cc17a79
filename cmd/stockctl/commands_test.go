package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIngest_DryRun(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "valuacion.csv")
	body := "\"Valuación de Inventarios\",\"0001-AGV\"\n\"Artículo\",\"Descripción\",\"Existencia\"\n\"A-1\",\"Tornillo\",\"2.5\",\n"
	require.NoError(t, os.WriteFile(file, []byte(body), 0o600))
	t.Chdir(dir)

	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"ingest", "--file", file, "--dry-run"})
	require.NoError(t, root.Execute())

	assert.Contains(t, out.String(), "formato: valuacion")
	assert.Contains(t, out.String(), "almacén: 0001-AGV")
	assert.Contains(t, out.String(), "A-1\t3\tTornillo")
	assert.Contains(t, out.String(), "1 registros")
	assert.Contains(t, out.String(), `"updatedProducts": 1`)
}

func TestSwagger_EscribeJSONValido(t *testing.T) {
	out := filepath.Join(t.TempDir(), "swagger.json")
	root := newRootCmd()
	root.SetArgs([]string{"swagger", "--out", out})
	require.NoError(t, root.Execute())

	raw, err := os.ReadFile(out)
	require.NoError(t, err)
	var doc map[string]any
	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.Contains(t, doc["paths"], "/api/stock/upload")
}

func TestIngest_AlmacenYCodigoExcluyentes(t *testing.T) {
	root := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"ingest", "--file", "x.csv", "--almacen", "1", "--codigo", "0001-AGV"})
	assert.Error(t, root.Execute())
}
