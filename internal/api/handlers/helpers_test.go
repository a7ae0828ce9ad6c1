package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ast-fleet-console-api-server/config"
	"ast-fleet-console-api-server/internal/api/routes"
	"ast-fleet-console-api-server/internal/auth"
	"ast-fleet-console-api-server/internal/models"
	"ast-fleet-console-api-server/internal/socket"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func testConfig() config.Config {
	return config.Config{
		JWT: config.JWTConfig{Secret: "test-secret", Expiration: "1h"},
		Tables: config.TablesConfig{
			Users:    "ast-users",
			Trucks:   "ast-trucks",
			Alerts:   "ast-alerts",
			Routes:   "ast-routes",
			Sessions: "ast-sessions",
		},
	}
}

func newTestServer(t *testing.T) (*gin.Engine, *memStore, config.Config) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := testConfig()
	mem := newMemStore(map[string]string{
		cfg.Tables.Users:    "username",
		cfg.Tables.Trucks:   "truck_id",
		cfg.Tables.Alerts:   "alert_id",
		cfg.Tables.Routes:   "route_id",
		cfg.Tables.Sessions: "token_id",
	})
	router := routes.SetupRouter(cfg, mem, socket.NewHub())
	return router, mem, cfg
}

// seedUser writes a user straight into the store, bypassing the API.
func seedUser(t *testing.T, mem *memStore, cfg config.Config, username, password, role string) {
	t.Helper()
	hashed, err := auth.HashPassword(password)
	require.NoError(t, err)
	user := models.User{
		Username:  username,
		Password:  hashed,
		Role:      role,
		CreatedAt: time.Now().Unix(),
	}
	require.NoError(t, mem.Put(context.Background(), cfg.Tables.Users, user))
}

func loginToken(t *testing.T, router *gin.Engine, username, password string) string {
	t.Helper()
	resp := doJSON(router, http.MethodPost, "/api/auth/login", gin.H{
		"username": username,
		"password": password,
	}, "")
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var body struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	require.NotEmpty(t, body.Token)
	return body.Token
}

// adminToken seeds an admin and logs it in.
func adminToken(t *testing.T, router *gin.Engine, mem *memStore, cfg config.Config) string {
	t.Helper()
	seedUser(t, mem, cfg, "admin", "admin-password", "admin")
	return loginToken(t, router, "admin", "admin-password")
}

func doJSON(router *gin.Engine, method, path string, body any, token string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func newRecorder(router *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func decodeBody(t *testing.T, resp *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	return body
}
