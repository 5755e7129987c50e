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

	"github.com/ibdiallo/transit-secure-api/internal/domain/entity"
	apphttp "github.com/ibdiallo/transit-secure-api/internal/interfaces/http"
	pkgjwt "github.com/ibdiallo/transit-secure-api/pkg/jwt"
)

const (
	testJWTSecret = "secret-de-test-pour-tests-unitaires"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testIssuer    = "transit-secure-test"
	testExpMin    = 60
)

// buildTestApp application Fiber minimale : AuthMiddleware + RequireRole +
// handler factice qui renvoie 200 si les middlewares passent.
func buildTestApp(allowedRoles ...string) *fiber.App {
	app := fiber.New()
	app.Get("/protected",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.RequireRole(allowedRoles...),
		func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusOK).JSON(fiber.Map{
				"ok":   true,
				"role": apphttp.GetRole(c),
			})
		},
	)
	return app
}

func tokenForRole(t *testing.T, role string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, role, testIssuer, testExpMin)
	require.NoError(t, err)
	return "Bearer " + tok
}

func doRequest(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestRequireRoleDirectorAllowed(t *testing.T) {
	app := buildTestApp(entity.RoleDirector)
	resp := doRequest(t, app, tokenForRole(t, entity.RoleDirector))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, entity.RoleDirector, body["role"])
}

func TestRequireRoleMultiRole(t *testing.T) {
	app := buildTestApp(entity.RoleDirector, entity.RoleAccountant)
	resp := doRequest(t, app, tokenForRole(t, entity.RoleAccountant))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequireRoleClientBlocked(t *testing.T) {
	app := buildTestApp(entity.RoleDirector, entity.RoleAccountant)
	resp := doRequest(t, app, tokenForRole(t, entity.RoleClient))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "FORBIDDEN")
}

func TestRequireRoleTokenWithoutRole(t *testing.T) {
	app := buildTestApp(entity.RoleDirector)
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, "", testIssuer, testExpMin)
	require.NoError(t, err)

	resp := doRequest(t, app, "Bearer "+tok)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "MISSING_ROLE")
}

func TestAuthMiddlewareMissingHeader(t *testing.T) {
	app := buildTestApp(entity.RoleDirector)
	resp := doRequest(t, app, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddlewareMalformedToken(t *testing.T) {
	app := buildTestApp(entity.RoleDirector)
	resp := doRequest(t, app, "Bearer token.invalide.ici")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddlewareExtractsActor(t *testing.T) {
	app := fiber.New()
	app.Get("/me", apphttp.AuthMiddleware(testJWTSecret), func(c *fiber.Ctx) error {
		actor := apphttp.GetActor(c)
		return c.JSON(fiber.Map{"user_id": actor.UserID, "role": actor.Role})
	})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", tokenForRole(t, entity.RoleFieldAgent))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testUserID, body["user_id"])
	assert.Equal(t, entity.RoleFieldAgent, body["role"])
}

func TestJWTExpiredToken(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, entity.RoleDirector, testIssuer, -1)
	require.NoError(t, err)

	_, _, err = pkgjwt.Parse(testJWTSecret, tok)
	assert.Error(t, err)
}

func TestJWTWrongSecret(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, entity.RoleDirector, testIssuer, testExpMin)
	require.NoError(t, err)

	_, _, err = pkgjwt.Parse("un-autre-secret", tok)
	assert.Error(t, err)
}
