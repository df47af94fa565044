package http

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nayxus/nayxus-stock/internal/domain/entity"
	"github.com/nayxus/nayxus-stock/pkg/jwt"
)

const testSecret = "secreto-de-prueba"

// buildTestApp monta una ruta protegida y una solo-ADMIN para probar la cadena
// AuthMiddleware -> RequireRole.
func buildTestApp() *fiber.App {
	app := fiber.New()
	protected := app.Group("/", AuthMiddleware(testSecret))
	protected.Get("/me", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"user_id": GetUserID(c), "role": GetRole(c)})
	})
	protected.Get("/admin", RequireRole(entity.RoleAdmin), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	return app
}

func tokenForRole(t *testing.T, role string) string {
	t.Helper()
	token, err := jwt.Generate(testSecret, "u1", role, "nayxus-stock", 15)
	require.NoError(t, err)
	return token
}

func doRequest(t *testing.T, app *fiber.App, path, authHeader string) int {
	t.Helper()
	req := httptest.NewRequest("GET", path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	return resp.StatusCode
}

func TestAuthMiddleware_SinToken(t *testing.T) {
	app := buildTestApp()
	assert.Equal(t, fiber.StatusUnauthorized, doRequest(t, app, "/me", ""))
}

func TestAuthMiddleware_FormatoInvalido(t *testing.T) {
	app := buildTestApp()
	assert.Equal(t, fiber.StatusUnauthorized, doRequest(t, app, "/me", "Basic abc123"))
}

func TestAuthMiddleware_TokenInvalido(t *testing.T) {
	app := buildTestApp()
	assert.Equal(t, fiber.StatusUnauthorized, doRequest(t, app, "/me", "Bearer no-es-un-jwt"))
}

func TestAuthMiddleware_FirmaIncorrecta(t *testing.T) {
	app := buildTestApp()
	token, err := jwt.Generate("otro-secreto", "u1", entity.RoleSeller, "nayxus-stock", 15)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, doRequest(t, app, "/me", "Bearer "+token))
}

func TestAuthMiddleware_TokenExpirado(t *testing.T) {
	app := buildTestApp()
	token, err := jwt.Generate(testSecret, "u1", entity.RoleSeller, "nayxus-stock", -5)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, doRequest(t, app, "/me", "Bearer "+token))
}

func TestAuthMiddleware_TokenValidoPasa(t *testing.T) {
	app := buildTestApp()
	token := tokenForRole(t, entity.RoleSeller)
	assert.Equal(t, fiber.StatusOK, doRequest(t, app, "/me", "Bearer "+token))
}

func TestRequireRole_AdminAccedeRutaAdmin(t *testing.T) {
	app := buildTestApp()
	token := tokenForRole(t, entity.RoleAdmin)
	assert.Equal(t, fiber.StatusOK, doRequest(t, app, "/admin", "Bearer "+token))
}

func TestRequireRole_SellerRechazadoEnRutaAdmin(t *testing.T) {
	app := buildTestApp()
	token := tokenForRole(t, entity.RoleSeller)
	assert.Equal(t, fiber.StatusForbidden, doRequest(t, app, "/admin", "Bearer "+token))
}

func TestJWT_GenerateParseRoundTrip(t *testing.T) {
	token, err := jwt.Generate(testSecret, "u-42", entity.RoleAdmin, "nayxus-stock", 15)
	require.NoError(t, err)

	userID, role, err := jwt.Parse(testSecret, token)
	require.NoError(t, err)
	assert.Equal(t, "u-42", userID)
	assert.Equal(t, entity.RoleAdmin, role)
}
