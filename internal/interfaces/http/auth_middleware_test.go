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

	apphttp "github.com/jhoicas/registro-empresas/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/registro-empresas/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testSubject   = "operador@registro.co"
	testIssuer    = "registro-empresas-test"
	testExpMin    = 60
)

// buildAuthApp construye una aplicación Fiber mínima con AuthMiddleware + RequireRole
// y un handler que devuelve 200 si pasa los middlewares.
func buildAuthApp(allowedRoles ...string) *fiber.App {
	app := fiber.New()
	app.Get("/protected",
		apphttp.AuthMiddleware(testJWTSecret, testIssuer),
		apphttp.RequireRole(allowedRoles...),
		func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{
				"ok":      true,
				"role":    apphttp.GetRole(c),
				"subject": apphttp.GetSubject(c),
			})
		},
	)
	return app
}

// tokenForRole genera un JWT con el rol indicado.
func tokenForRole(t *testing.T, role string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testSubject, role, testIssuer, testExpMin)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return "Bearer " + tok
}

func doProtected(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RequireRole
// ──────────────────────────────────────────────────────────────────────────────

func TestRequireRole_OperadorAccede(t *testing.T) {
	app := buildAuthApp(pkgjwt.RoleOperator, pkgjwt.RoleAdmin)
	resp := doProtected(t, app, tokenForRole(t, pkgjwt.RoleOperator))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "operator", body["role"])
	assert.Equal(t, testSubject, body["subject"])
}

func TestRequireRole_RolNoPermitido_Retorna403(t *testing.T) {
	app := buildAuthApp(pkgjwt.RoleAdmin)
	resp := doProtected(t, app, tokenForRole(t, pkgjwt.RoleOperator))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "FORBIDDEN")
}

func TestRequireRole_TokenSinRol_Retorna401(t *testing.T) {
	app := buildAuthApp(pkgjwt.RoleAdmin)
	resp := doProtected(t, app, tokenForRole(t, ""))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "MISSING_ROLE")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests AuthMiddleware
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_Rechazos(t *testing.T) {
	app := buildAuthApp(pkgjwt.RoleAdmin)
	expired, err := pkgjwt.Generate(testJWTSecret, testSubject, pkgjwt.RoleAdmin, testIssuer, -1)
	require.NoError(t, err)
	otherIssuer, err := pkgjwt.Generate(testJWTSecret, testSubject, pkgjwt.RoleAdmin, "otro", testExpMin)
	require.NoError(t, err)

	cases := map[string]struct {
		header string
		code   string
	}{
		"sin header":       {"", "MISSING_TOKEN"},
		"sin Bearer":       {"Token abc", "INVALID_TOKEN"},
		"token malformado": {"Bearer token.invalido.aqui", "INVALID_TOKEN"},
		"token expirado":   {"Bearer " + expired, "INVALID_TOKEN"},
		"otro emisor":      {"Bearer " + otherIssuer, "INVALID_TOKEN"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			resp := doProtected(t, app, tc.header)
			defer resp.Body.Close()
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
			body, _ := io.ReadAll(resp.Body)
			assert.Contains(t, string(body), tc.code)
		})
	}
}
