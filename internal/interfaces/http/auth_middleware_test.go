package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eva-blog/blog-api/internal/infrastructure/authz"
	apphttp "github.com/eva-blog/blog-api/internal/interfaces/http"
	pkgjwt "github.com/eva-blog/blog-api/pkg/jwt"
	"github.com/eva-blog/blog-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = int64(7)
	testIssuer    = "blog-api-test"
	testExpMin    = 60
)

// buildAuthzApp construye una aplicación Fiber mínima con Authorize y dos rutas dummy:
//   - DELETE /api/comercio/:id figura en la tabla de permisos (solo admin)
//   - GET /api/comercios es pública
func buildAuthzApp(t *testing.T) *fiber.App {
	t.Helper()
	enforcer, err := authz.NewEnforcer(nil)
	require.NoError(t, err)

	app := fiber.New()
	api := app.Group("/api", apphttp.Authorize(enforcer, testJWTSecret, logger.Nop()))
	api.Delete("/comercio/:id", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"ok":      true,
			"user_id": apphttp.GetUserID(c),
			"role":    apphttp.GetRole(c),
		})
	})
	api.Get("/comercios", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"ok": true, "role": apphttp.GetRole(c)})
	})
	return app
}

// tokenForRole genera un JWT con el rol indicado.
func tokenForRole(t *testing.T, role string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, role, testIssuer, testExpMin)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return "Bearer " + tok
}

func doRequest(t *testing.T, app *fiber.App, method, target, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Authorize
// ──────────────────────────────────────────────────────────────────────────────

// Caso 1: admin en ruta de administración → HTTP 200 con claims en locals.
func TestAuthorize_AdminAccedeRutaAdmin(t *testing.T) {
	app := buildAuthzApp(t)
	resp := doRequest(t, app, http.MethodDelete, "/api/comercio/3", tokenForRole(t, "admin"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode,
		"admin debe poder acceder a ruta restringida a admin")

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, "admin", body["role"])
	assert.Equal(t, float64(testUserID), body["user_id"])
}

// Caso 2: rol usuario en ruta de administración → HTTP 403 Forbidden.
func TestAuthorize_UsuarioBloqueadoEnRutaAdmin(t *testing.T) {
	app := buildAuthzApp(t)
	resp := doRequest(t, app, http.MethodDelete, "/api/comercio/3", tokenForRole(t, "usuario"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "FORBIDDEN",
		"la respuesta de error debe incluir el código FORBIDDEN")
}

// Caso 3: sin header Authorization → HTTP 401 MISSING_TOKEN.
func TestAuthorize_SinAuthHeader_Retorna401(t *testing.T) {
	app := buildAuthzApp(t)
	resp := doRequest(t, app, http.MethodDelete, "/api/comercio/3", "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "MISSING_TOKEN")
}

// Caso 4: token inválido o esquema distinto de Bearer → HTTP 401 INVALID_TOKEN.
func TestAuthorize_TokenInvalido_Retorna401(t *testing.T) {
	app := buildAuthzApp(t)
	for _, header := range []string{"Bearer token.invalido.aqui", "Basic dXNlcjpwYXNz"} {
		resp := doRequest(t, app, http.MethodDelete, "/api/comercio/3", header)
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, header)
		assert.Contains(t, string(body), "INVALID_TOKEN", header)
	}
}

// Caso 5: token expirado → HTTP 401.
func TestAuthorize_TokenExpirado_Retorna401(t *testing.T) {
	app := buildAuthzApp(t)
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, "admin", testIssuer, -1)
	require.NoError(t, err)

	resp := doRequest(t, app, http.MethodDelete, "/api/comercio/3", "Bearer "+tok)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// Caso 6: ruta pública → pasa sin token y sin rol en locals.
func TestAuthorize_RutaPublicaSinToken(t *testing.T) {
	app := buildAuthzApp(t)
	resp := doRequest(t, app, http.MethodGet, "/api/comercios", "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "", body["role"])
}

// Caso 7: variantes con barra final o mayúsculas que fiber enruta igual → siguen protegidas.
func TestAuthorize_VariantesDeRutaSiguenProtegidas(t *testing.T) {
	app := buildAuthzApp(t)
	for _, target := range []string{"/api/comercio/3/", "/API/comercio/3", "/api/Comercio/3//"} {
		resp := doRequest(t, app, http.MethodDelete, target, "")
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, target)
		assert.Contains(t, string(body), "MISSING_TOKEN", target)

		resp = doRequest(t, app, http.MethodDelete, target, tokenForRole(t, "usuario"))
		resp.Body.Close()
		assert.Equal(t, http.StatusForbidden, resp.StatusCode, target)
	}
}
