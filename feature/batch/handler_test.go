package batch

import (
	"encoding/json"
	"image"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"imgdiff/core/report"
	"imgdiff/core/server"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupTestApp(t *testing.T, root string, allow func(string) bool) *fiber.App {
	app := fiber.New()
	svc := NewService(nil, defaults, root, zap.NewNop())
	NewHandler(svc, allow).RegisterRoutes(app)
	return app
}

func postBatch(t *testing.T, app *fiber.App, query, body string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest("POST", "/batch"+query, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, 5000)
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

func TestHandleHealth(t *testing.T) {
	app := setupTestApp(t, t.TempDir(), nil)
	resp, err := app.Test(httptest.NewRequest("GET", "/health", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
}

func TestHandleBatch(t *testing.T) {
	root := t.TempDir()
	scenario(t, root, pngBytes(t, 4, 4))
	app := setupTestApp(t, root, nil)

	status, body := postBatch(t, app, "", `{"a":"a","b":"b"}`)
	assert.Equal(t, 200, status)
	assert.Equal(t, false, body["clean"])

	raw, err := json.Marshal(body["report"])
	require.NoError(t, err)
	var rep report.Report
	require.NoError(t, json.Unmarshal(raw, &rep))
	assert.Equal(t, []string{"login"}, report.Keynames(rep.New))
	assert.Equal(t, []string{"settings"}, report.Keynames(rep.Removed))

	summary := body["summary"].(map[string]any)
	assert.Equal(t, 1.0, summary["match"])
}

func TestHandleBatchExitCode(t *testing.T) {
	root := t.TempDir()
	scenario(t, root, pngBytes(t, 4, 4, image.Pt(0, 0)))
	app := setupTestApp(t, root, nil)

	status, body := postBatch(t, app, "?exit_code=true", `{"a":"a","b":"b","threshold":0.2}`)
	assert.Equal(t, fiber.StatusConflict, status)
	assert.Equal(t, false, body["clean"])
}

func TestHandleBatchErrors(t *testing.T) {
	root := t.TempDir()
	scenario(t, root, pngBytes(t, 4, 4))

	tests := []struct {
		name   string
		body   string
		status int
	}{
		{"MalformedBody", `{"a":`, fiber.StatusBadRequest},
		{"MissingB", `{"a":"a"}`, fiber.StatusBadRequest},
		{"BadThreshold", `{"a":"a","b":"b","threshold":3}`, fiber.StatusBadRequest},
		{"UnderscoreBucket", `{"a":"s3://my_bucket","b":"b"}`, fiber.StatusBadRequest},
		{"MissingRoot", `{"a":"nowhere","b":"b"}`, fiber.StatusInternalServerError},
	}

	app := setupTestApp(t, root, nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := postBatch(t, app, "", tt.body)
			assert.Equal(t, tt.status, status)
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestHandleBatchForbiddenRoot(t *testing.T) {
	root := t.TempDir()
	for _, dir := range []string{"shots", "private", "shots-evil"} {
		scenario(t, filepath.Join(root, dir), pngBytes(t, 4, 4))
	}
	shots := "file://" + filepath.Join(root, "shots")
	cfg := server.Config{AllowedRoots: shots}
	app := setupTestApp(t, root, cfg.Allows)

	tests := []struct {
		name   string
		body   string
		status int
		out    string
	}{
		{
			name:   "OutsideRoot",
			body:   `{"a":"shots/a","b":"private/b"}`,
			status: fiber.StatusForbidden,
		},
		{
			name:   "Traversal",
			body:   `{"a":"` + shots + `/../private/a","b":"` + shots + `/../private/b","write":"` + shots + `/../private/out"}`,
			status: fiber.StatusForbidden,
			out:    filepath.Join(root, "private", "out"),
		},
		{
			name:   "SiblingPrefix",
			body:   `{"a":"` + shots + `-evil/a","b":"` + shots + `-evil/b","write":"` + shots + `-evil/out"}`,
			status: fiber.StatusForbidden,
			out:    filepath.Join(root, "shots-evil", "out"),
		},
		{
			name:   "WriteOutsideRoot",
			body:   `{"a":"shots/a","b":"shots/b","write":"out"}`,
			status: fiber.StatusForbidden,
			out:    filepath.Join(root, "out"),
		},
		{
			name:   "ReportOutsideRoot",
			body:   `{"a":"shots/a","b":"shots/b","json_report":"shots/r.json,report.json"}`,
			status: fiber.StatusForbidden,
			out:    filepath.Join(root, "report.json"),
		},
		{
			name:   "Inside",
			body:   `{"a":"shots/a","b":"shots/../shots/b","write":"shots/out"}`,
			status: fiber.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := postBatch(t, app, "", tt.body)
			assert.Equal(t, tt.status, status)
			if tt.status == fiber.StatusForbidden {
				assert.Contains(t, body["error"], "locator not allowed")
			}
			if tt.out != "" {
				_, err := os.Stat(tt.out)
				assert.True(t, os.IsNotExist(err), "%s should not exist", tt.out)
			}
		})
	}

	_, err := os.Stat(filepath.Join(root, "shots", "out"))
	assert.NoError(t, err)
}

func TestLoader(t *testing.T) {
	svc := NewService(nil, defaults, t.TempDir(), zap.NewNop())
	feature := NewFeature(svc, nil)

	assert.Equal(t, "batch", feature.Name())
	assert.True(t, feature.IsEnabled())
	assert.NoError(t, feature.Load(fiber.New()))
}
