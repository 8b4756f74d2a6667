package auth_test

import (
	"net/http/httptest"
	"testing"

	"imgdiff/core/middleware/auth"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupApp(cfg auth.Config) *fiber.App {
	app := fiber.New()
	app.Use(auth.New(cfg))
	app.Get("/health", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })
	app.Get("/history", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })
	return app
}

func TestAuth(t *testing.T) {
	app := setupApp(auth.Config{ApiKey: "secret", Skip: []string{"/health"}})

	tests := []struct {
		name string
		path string
		key  string
		want int
	}{
		{"MissingKey", "/history", "", fiber.StatusUnauthorized},
		{"WrongKey", "/history", "nope", fiber.StatusUnauthorized},
		{"ValidKey", "/history", "secret", fiber.StatusOK},
		{"SkippedPath", "/health", "", fiber.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", tt.path, nil)
			if tt.key != "" {
				req.Header.Set(auth.Header, tt.key)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}
}

func TestAuthDisabled(t *testing.T) {
	resp, err := setupApp(auth.Config{}).Test(httptest.NewRequest("GET", "/history", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
