package api_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Spok95/warehouse-bot/internal/api"
)

const (
	testSecret   = "test-secret"
	testLogin    = "admin"
	testPassword = "s3cret"
)

func buildTestApp(t *testing.T) *fiber.App {
	t.Helper()
	srv := api.NewServer(api.ServerConfig{
		Addr:          ":0",
		JWTSecret:     testSecret,
		AdminLogin:    testLogin,
		AdminPassword: testPassword,
	}, slog.New(slog.DiscardHandler), nil)
	return srv.App()
}

func doLogin(t *testing.T, app *fiber.App, login, password string) *http.Response {
	t.Helper()
	body, _ := json.Marshal(api.LoginRequest{Login: login, Password: password})
	req := httptest.NewRequest(http.MethodPost, "/api/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func validToken(t *testing.T, app *fiber.App) string {
	t.Helper()
	resp := doLogin(t, app, testLogin, testPassword)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out api.LoginResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.NotEmpty(t, out.Token)
	return out.Token
}

func TestLoginWrongCredentials(t *testing.T) {
	app := buildTestApp(t)
	resp := doLogin(t, app, testLogin, "wrong")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	var out api.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "INVALID_CREDENTIALS", out.Code)
}

func TestProtectedWithoutToken(t *testing.T) {
	app := buildTestApp(t)
	req := httptest.NewRequest(http.MethodGet, "/api/warehouses/", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	var out api.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "MISSING_TOKEN", out.Code)
}

func TestProtectedMalformedHeader(t *testing.T) {
	app := buildTestApp(t)
	req := httptest.NewRequest(http.MethodGet, "/api/warehouses/", nil)
	req.Header.Set("Authorization", "Token abc")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestProtectedGarbageToken(t *testing.T) {
	app := buildTestApp(t)
	req := httptest.NewRequest(http.MethodGet, "/api/warehouses/", nil)
	req.Header.Set("Authorization", "Bearer not.a.jwt")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	var out api.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "INVALID_TOKEN", out.Code)
}

func TestMeReturnsTokenLogin(t *testing.T) {
	app := buildTestApp(t)
	token := validToken(t, app)

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, testLogin, out["login"])
}

// валидация движений срабатывает до обращения к БД
func TestCreateMovementValidation(t *testing.T) {
	app := buildTestApp(t)
	token := validToken(t, app)

	tests := []struct {
		name string
		body string
	}{
		{name: "нет stock_id", body: `{"type":"in","quantity":"5"}`},
		{name: "неизвестный тип", body: `{"stock_id":1,"type":"transfer","quantity":"5"}`},
		{name: "нулевое количество", body: `{"stock_id":1,"type":"out","quantity":"0"}`},
		{name: "отрицательное количество", body: `{"stock_id":1,"type":"out","quantity":"-2"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/movements", bytes.NewReader([]byte(tt.body)))
			req.Header.Set("Content-Type", "application/json")
			req.Header.Set("Authorization", "Bearer "+token)
			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			defer resp.Body.Close()
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

			var out api.ErrorResponse
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
			assert.Equal(t, "VALIDATION", out.Code)
		})
	}
}

func TestHealthIsPublic(t *testing.T) {
	app := buildTestApp(t)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
