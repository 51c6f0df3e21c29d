package cli

import (
	"encoding/json"
	"testing"

	"github.com/alexanderramin/woodgenie/internal/domain"
	"github.com/alexanderramin/woodgenie/internal/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanCmd_AIPlanText(t *testing.T) {
	client := &cannedVisionClient{}
	client.text = cannedPlanJSON(t, "Walnut Dresser")
	app := testApp(t, client)

	out, err := executeCmd(t, app, "plan", writeTestImage(t), "--units", "metric", "--difficulty", "advanced", "--wood", "oak")
	require.NoError(t, err)

	assert.Contains(t, out, "Walnut Dresser")
	assert.Contains(t, out, "● AI")
	assert.Contains(t, out, "WG0001")
	assert.NotContains(t, out, "sample plan")

	require.Len(t, client.requests, 1)
	assert.Contains(t, client.requests[0].UserPrompt, "METRIC")
	assert.Equal(t, "image/png", client.requests[0].Image.MimeType)

	latest, err := app.Plans.Latest(t.Context())
	require.NoError(t, err)
	assert.Equal(t, domain.PlanOptions{Units: domain.UnitsMetric, Difficulty: domain.DifficultyAdvanced, WoodType: domain.WoodOak}, latest.Options)
}

func TestPlanCmd_FallbackOnTransportError(t *testing.T) {
	app := testApp(t, &cannedVisionClient{err: errBoom})

	out, err := executeCmd(t, app, "plan", writeTestImage(t))
	require.NoError(t, err, "a failed AI call still produces a plan")
	assert.Contains(t, out, "Modern Wooden Shelf Unit")
	assert.Contains(t, out, "● SAMPLE")
	assert.Contains(t, out, "AI analysis unavailable (UNKNOWN)")
}

func TestPlanCmd_FallbackOnGarbageOutput(t *testing.T) {
	app := testApp(t, &cannedVisionClient{text: "I cannot help with that."})

	out, err := executeCmd(t, app, "plan", writeTestImage(t), "--format", "json")
	require.NoError(t, err)

	var plan domain.WoodworkingPlan
	require.NoError(t, json.Unmarshal([]byte(out), &plan))
	assert.Equal(t, "Modern Wooden Shelf Unit", plan.Title)
	assert.NoError(t, plan.Validate())
}

func TestPlanCmd_MarkdownFormat(t *testing.T) {
	app := testApp(t, &cannedVisionClient{text: cannedPlanJSON(t, "Hall Tree")})

	out, err := executeCmd(t, app, "plan", writeTestImage(t), "--format", "markdown")
	require.NoError(t, err)
	assert.Contains(t, out, "# Hall Tree")
	assert.Contains(t, out, "## Cut List")
}

func TestPlanCmd_MissingKeyIsConfigError(t *testing.T) {
	app := testApp(t, nil)

	_, err := executeCmd(t, app, "plan", writeTestImage(t))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotConfigured)
	assert.Contains(t, err.Error(), llm.ErrMissingAPIKey.Error())
}

func TestPlanCmd_OfflineWithoutKey(t *testing.T) {
	app := testApp(t, nil)

	out, err := executeCmd(t, app, "plan", writeTestImage(t), "--offline", "--wood", "reclaimed")
	require.NoError(t, err)
	assert.Contains(t, out, "Offline mode")
	assert.Contains(t, out, "Reclaimed Wood")
}

func TestPlanCmd_InvalidFlags(t *testing.T) {
	app := testApp(t, &cannedVisionClient{})

	_, err := executeCmd(t, app, "plan", writeTestImage(t), "--units", "cubits")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unit system")

	_, err = executeCmd(t, app, "plan", writeTestImage(t), "--format", "pdf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")

	_, err = executeCmd(t, app, "plan")
	require.Error(t, err)
}

func TestPlanCmd_UnreadableImage(t *testing.T) {
	client := &cannedVisionClient{}
	app := testApp(t, client)

	_, err := executeCmd(t, app, "plan", "/nonexistent/photo.jpg")
	require.Error(t, err)
	assert.Empty(t, client.requests)
}
