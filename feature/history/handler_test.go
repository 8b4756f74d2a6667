package history

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupTestApp(t *testing.T) (*fiber.App, sqlmock.Sqlmock) {
	db, mock := setupMockDB(t)
	feature := NewFeature(db, zap.NewNop())
	app := fiber.New()
	require.NoError(t, feature.Load(app))
	return app, mock
}

func TestHandleList(t *testing.T) {
	app, mock := setupTestApp(t)
	mock.ExpectQuery("SELECT \\* FROM `runs`").WillReturnRows(runRows())

	resp, err := app.Test(httptest.NewRequest("GET", "/history?limit=5", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var body struct {
		Runs []Run `json:"runs"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Len(t, body.Runs, 2)
}

func TestHandleListError(t *testing.T) {
	app, mock := setupTestApp(t)
	mock.ExpectQuery("SELECT \\* FROM `runs`").WillReturnError(assert.AnError)

	resp, err := app.Test(httptest.NewRequest("GET", "/history", nil))
	require.NoError(t, err)
	assert.Equal(t, 500, resp.StatusCode)
}

func TestHandleGet(t *testing.T) {
	t.Run("InvalidID", func(t *testing.T) {
		app, _ := setupTestApp(t)
		resp, err := app.Test(httptest.NewRequest("GET", "/history/abc", nil))
		require.NoError(t, err)
		assert.Equal(t, 400, resp.StatusCode)
	})

	t.Run("NotFound", func(t *testing.T) {
		app, mock := setupTestApp(t)
		mock.ExpectQuery("SELECT \\* FROM `runs`").WillReturnRows(sqlmock.NewRows([]string{"id"}))

		resp, err := app.Test(httptest.NewRequest("GET", "/history/42", nil))
		require.NoError(t, err)
		assert.Equal(t, 404, resp.StatusCode)
	})

	t.Run("Found", func(t *testing.T) {
		app, mock := setupTestApp(t)
		mock.ExpectQuery("SELECT \\* FROM `runs`").
			WillReturnRows(sqlmock.NewRows([]string{"id", "status"}).AddRow(3, "clean"))
		mock.ExpectQuery("SELECT \\* FROM `run_entries`").
			WillReturnRows(sqlmock.NewRows([]string{"id", "run_id", "category", "keyname"}).AddRow(1, 3, "match", "home"))

		resp, err := app.Test(httptest.NewRequest("GET", "/history/3", nil))
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)

		var run Run
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&run))
		assert.Equal(t, uint(3), run.ID)
		require.Len(t, run.Entries, 1)
		assert.Equal(t, "home", run.Entries[0].Keyname)
	})
}

func TestLoader(t *testing.T) {
	disabled := NewFeature(nil, zap.NewNop())
	assert.Equal(t, "history", disabled.Name())
	assert.False(t, disabled.IsEnabled())
	assert.Nil(t, disabled.Store())

	db, _ := setupMockDB(t)
	enabled := NewFeature(db, zap.NewNop())
	assert.True(t, enabled.IsEnabled())
	assert.NotNil(t, enabled.Store())
}
