package app_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"farmconnect/internal/app"

	"github.com/stretchr/testify/require"
)

func jsonRequest(t *testing.T, method, path string, body any) *http.Request {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(method, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func registerAndLogin(t *testing.T, a *app.App) string {
	t.Helper()
	resp, err := a.Fiber.Test(jsonRequest(t, http.MethodPost, "/api/v1/auth/register", map[string]string{
		"username": "meena", "email": "meena@example.com", "password": "password123",
	}), -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, err = a.Fiber.Test(jsonRequest(t, http.MethodPost, "/api/v1/auth/login", map[string]string{
		"username": "meena", "password": "password123",
	}), -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out.Token
}
