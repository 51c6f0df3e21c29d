package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistoryCmd_ListShowDelete(t *testing.T) {
	client := &cannedVisionClient{text: cannedPlanJSON(t, "Coffee Table")}
	app := testApp(t, client)
	img := writeTestImage(t)

	_, err := executeCmd(t, app, "plan", img)
	require.NoError(t, err)
	_, err = executeCmd(t, app, "plan", img, "--offline")
	require.NoError(t, err)

	out, err := executeCmd(t, app, "history", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "PLANS (2)")
	assert.Contains(t, out, "WG0001")
	assert.Contains(t, out, "WG0002")
	assert.Contains(t, out, "Coffee Table")
	assert.Contains(t, out, "● SAMPLE")

	out, err = executeCmd(t, app, "history", "list", "--limit", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "PLANS (1)")

	out, err = executeCmd(t, app, "history", "show", "wg0001")
	require.NoError(t, err)
	assert.Contains(t, out, "Coffee Table")

	out, err = executeCmd(t, app, "history", "delete", "WG0001")
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted plan WG0001")

	_, err = executeCmd(t, app, "history", "show", "WG0001")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestHistoryCmd_ListByImage(t *testing.T) {
	app := testApp(t, &cannedVisionClient{text: cannedPlanJSON(t, "Dresser")})
	dresser := writeTestImage(t)
	bench := filepath.Join(t.TempDir(), "bench.png")
	require.NoError(t, os.WriteFile(bench, append(append([]byte{}, pngHeader...), 0x42), 0o600))

	for _, img := range []string{dresser, bench, dresser} {
		_, err := executeCmd(t, app, "plan", img)
		require.NoError(t, err)
	}

	out, err := executeCmd(t, app, "history", "list", "--image", dresser)
	require.NoError(t, err)
	assert.Contains(t, out, "PLANS (2)")
	assert.Contains(t, out, "WG0001")
	assert.Contains(t, out, "WG0003")
	assert.NotContains(t, out, "WG0002")

	out, err = executeCmd(t, app, "history", "list", "--image", bench)
	require.NoError(t, err)
	assert.Contains(t, out, "PLANS (1)")
	assert.Contains(t, out, "WG0002")

	_, err = executeCmd(t, app, "history", "list", "--image", filepath.Join(t.TempDir(), "nope.png"))
	require.Error(t, err)
}

func TestHistoryCmd_Export(t *testing.T) {
	app := testApp(t, &cannedVisionClient{text: cannedPlanJSON(t, "Bookcase")})
	_, err := executeCmd(t, app, "plan", writeTestImage(t))
	require.NoError(t, err)

	out, err := executeCmd(t, app, "history", "export", "latest")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "# Bookcase"))

	dest := filepath.Join(t.TempDir(), "bookcase.json")
	out, err = executeCmd(t, app, "history", "export", "WG0001", "--format", "json", "-o", dest)
	require.NoError(t, err)
	assert.Contains(t, out, "Exported WG0001")

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"title": "Bookcase"`)
}

func TestHistoryCmd_ResetRequiresYes(t *testing.T) {
	app := testApp(t, &cannedVisionClient{text: cannedPlanJSON(t, "Stool")})
	img := writeTestImage(t)
	for range 2 {
		_, err := executeCmd(t, app, "plan", img)
		require.NoError(t, err)
	}

	_, err := executeCmd(t, app, "history", "reset")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--yes")

	out, err := executeCmd(t, app, "history", "reset", "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "Removed 2 plan(s)")

	out, err = executeCmd(t, app, "history", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No plans yet")
}

func TestHistoryCmd_WorksWithoutAIClient(t *testing.T) {
	app := testApp(t, nil)
	_, err := executeCmd(t, app, "plan", writeTestImage(t), "--offline")
	require.NoError(t, err)

	out, err := executeCmd(t, app, "history", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "WG0001")
}

func TestOptionsCmd(t *testing.T) {
	out, err := executeCmd(t, testApp(t, nil), "options")
	require.NoError(t, err)
	assert.Contains(t, out, "Plywood/MDF")
	assert.Contains(t, out, "--difficulty")
}

func TestHistoryCmd_ExportYAML(t *testing.T) {
	app := testApp(t, &cannedVisionClient{text: cannedPlanJSON(t, "Plant Stand")})
	_, err := executeCmd(t, app, "plan", writeTestImage(t))
	require.NoError(t, err)

	out, err := executeCmd(t, app, "history", "export", "WG0001", "--format", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "title: Plant Stand")
	assert.Contains(t, out, "shoppingList:")
}
