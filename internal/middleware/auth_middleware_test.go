package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
	"travel-request-backend/config"
	"travel-request-backend/internal/usecase"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubResolver struct {
	identity usecase.Identity
	err      error
}

func (s stubResolver) Resolve(userID uint) (usecase.Identity, error) {
	if s.err != nil {
		return usecase.Identity{}, s.err
	}
	ident := s.identity
	ident.UserID = userID
	return ident, nil
}

func signedToken(t *testing.T, userID uint) string {
	t.Helper()
	claims := jwt.MapClaims{
		"user_id":  userID,
		"username": "jdoe",
		"exp":      time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(config.JWTSecret())
	require.NoError(t, err)
	return token
}

func testApp(resolver IdentityResolver, roles ...string) *fiber.App {
	app := fiber.New()
	handlers := []fiber.Handler{Auth(resolver)}
	if len(roles) > 0 {
		handlers = append(handlers, Role(roles...))
	}
	handlers = append(handlers, func(c *fiber.Ctx) error {
		ident := IdentityFrom(c)
		return c.JSON(fiber.Map{"role": ident.Role, "user_id": ident.UserID})
	})
	app.Get("/probe", handlers...)
	return app
}

func TestAuth(t *testing.T) {
	resolver := stubResolver{identity: usecase.Identity{Role: usecase.RoleManager, EmployeeID: 7}}

	t.Run("missing token", func(t *testing.T) {
		app := testApp(resolver)
		req := httptest.NewRequest(http.MethodGet, "/probe", nil)

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("garbage token", func(t *testing.T) {
		app := testApp(resolver)
		req := httptest.NewRequest(http.MethodGet, "/probe", nil)
		req.Header.Set("Authorization", "Bearer not-a-token")

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("valid token resolves the identity", func(t *testing.T) {
		app := testApp(resolver)
		req := httptest.NewRequest(http.MethodGet, "/probe", nil)
		req.Header.Set("Authorization", "Bearer "+signedToken(t, 12))

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("resolver failure is unauthorized", func(t *testing.T) {
		app := testApp(stubResolver{err: errors.New("db down")})
		req := httptest.NewRequest(http.MethodGet, "/probe", nil)
		req.Header.Set("Authorization", "Bearer "+signedToken(t, 12))

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})
}

func TestRole(t *testing.T) {
	t.Run("allowed role passes", func(t *testing.T) {
		app := testApp(stubResolver{identity: usecase.Identity{Role: usecase.RoleManager}}, usecase.RoleManager)
		req := httptest.NewRequest(http.MethodGet, "/probe", nil)
		req.Header.Set("Authorization", "Bearer "+signedToken(t, 12))

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("wrong role is forbidden", func(t *testing.T) {
		app := testApp(stubResolver{identity: usecase.Identity{Role: usecase.RoleEmployee}}, usecase.RoleAdmin)
		req := httptest.NewRequest(http.MethodGet, "/probe", nil)
		req.Header.Set("Authorization", "Bearer "+signedToken(t, 12))

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	})

	t.Run("no profile is forbidden", func(t *testing.T) {
		app := testApp(stubResolver{identity: usecase.Identity{Role: usecase.RoleNone}}, usecase.RoleEmployee)
		req := httptest.NewRequest(http.MethodGet, "/probe", nil)
		req.Header.Set("Authorization", "Bearer "+signedToken(t, 12))

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	})
}
