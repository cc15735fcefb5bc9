package middleware_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	config "github.com/anjiri1684/course_market/configs"
	"github.com/anjiri1684/course_market/database/dbtest"
	"github.com/anjiri1684/course_market/middleware"
	"github.com/anjiri1684/course_market/models"
	"github.com/anjiri1684/course_market/stores"
	"github.com/anjiri1684/course_market/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (*fiber.App, *config.Config, *stores.UserStore, *stores.TokenStore) {
	t.Helper()
	db := dbtest.New(t)
	cfg := &config.Config{JWTSecret: "test-secret", SessionTTL: time.Hour}
	users := stores.NewUserStore(db)
	tokens := stores.NewTokenStore(db)

	app := fiber.New()
	protected := middleware.Protected(cfg, tokens)
	app.Get("/whoami", protected, func(c *fiber.Ctx) error {
		return c.SendString(middleware.CallerID(c).String())
	})
	app.Get("/teach", protected, middleware.InstructorRequired(users), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	return app, cfg, users, tokens
}

func get(t *testing.T, app *fiber.App, path, token string) (int, string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: token})
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestProtected(t *testing.T) {
	app, cfg, users, tokens := setup(t)
	user := &models.User{Name: "Ada", Email: "ada@example.com", Password: "x"}
	require.NoError(t, users.Create(context.Background(), user))

	status, body := get(t, app, "/whoami", "")
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "Unauthorized", body)

	status, _ = get(t, app, "/whoami", "not-a-jwt")
	assert.Equal(t, fiber.StatusBadRequest, status)

	forged, _, err := utils.GenerateSessionToken(user.ID, "other-secret", time.Hour)
	require.NoError(t, err)
	status, _ = get(t, app, "/whoami", forged)
	assert.Equal(t, fiber.StatusBadRequest, status)

	expired, _, err := utils.GenerateSessionToken(user.ID, cfg.JWTSecret, -time.Minute)
	require.NoError(t, err)
	status, _ = get(t, app, "/whoami", expired)
	assert.Equal(t, fiber.StatusBadRequest, status)

	token, expiresAt, err := utils.GenerateSessionToken(user.ID, cfg.JWTSecret, time.Hour)
	require.NoError(t, err)
	status, body = get(t, app, "/whoami", token)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, user.ID.String(), body)

	require.NoError(t, tokens.Revoke(context.Background(), utils.TokenHash(token), expiresAt))
	status, body = get(t, app, "/whoami", token)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "Unauthorized", body)
}

func TestInstructorRequired(t *testing.T) {
	app, cfg, users, _ := setup(t)
	student := &models.User{Name: "Bob", Email: "bob@example.com", Password: "x"}
	author := &models.User{Name: "Ada", Email: "ada@example.com", Password: "x", Role: models.RoleInstructor}
	require.NoError(t, users.Create(context.Background(), student))
	require.NoError(t, users.Create(context.Background(), author))

	studentToken, _, err := utils.GenerateSessionToken(student.ID, cfg.JWTSecret, time.Hour)
	require.NoError(t, err)
	status, _ := get(t, app, "/teach", studentToken)
	assert.Equal(t, fiber.StatusBadRequest, status)

	authorToken, _, err := utils.GenerateSessionToken(author.ID, cfg.JWTSecret, time.Hour)
	require.NoError(t, err)
	status, body := get(t, app, "/teach", authorToken)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "ok", body)
}
