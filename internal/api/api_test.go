package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/pageza/cookbook/backend/config"
	"github.com/pageza/cookbook/backend/internal/logging"
	"github.com/pageza/cookbook/backend/internal/model"
	"github.com/pageza/cookbook/backend/internal/repository"
	"github.com/pageza/cookbook/backend/internal/server"
	"github.com/pageza/cookbook/backend/internal/service"
	"github.com/pageza/cookbook/backend/internal/testhelpers"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testAPI struct {
	t       *testing.T
	db      *gorm.DB
	handler http.Handler
	auth    *service.AuthService
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	t.Setenv("ENV", "test")
	t.Setenv("CI", "")

	db := testhelpers.NewSQLiteDB(t)
	cfg := &config.Config{
		ServerHost:     "localhost",
		ServerPort:     "0",
		AllowedOrigins: []string{"http://localhost:5173"},
		JWTSecret:      "test-secret",
		AccessTokenTTL: time.Minute,
		Limits:         config.DefaultLimits(),
	}
	srv, err := server.New(cfg, db, nil, logging.Discard())
	require.NoError(t, err)

	users := service.NewUserService(repository.NewUserRepository(db), logging.Discard())
	return &testAPI{
		t:       t,
		db:      db,
		handler: srv.Handler(),
		auth:    service.NewAuthService(users, cfg.JWTSecret, cfg.AccessTokenTTL),
	}
}

func (a *testAPI) token(u *model.User) string {
	a.t.Helper()
	token, err := a.auth.GenerateToken(u.ID)
	require.NoError(a.t, err)
	return token
}

// do sends a request as user (anonymous when nil) and decodes the JSON body.
func (a *testAPI) do(method, path string, user *model.User, body any) (int, map[string]any) {
	a.t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(a.t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if user != nil {
		req.Header.Set("Authorization", "Bearer "+a.token(user))
	}

	w := httptest.NewRecorder()
	a.handler.ServeHTTP(w, req)

	var out map[string]any
	if w.Body.Len() > 0 {
		require.NoError(a.t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	}
	return w.Code, out
}

func items(body map[string]any, key string) []map[string]any {
	raw, _ := body[key].([]any)
	out := make([]map[string]any, 0, len(raw))
	for _, r := range raw {
		out = append(out, r.(map[string]any))
	}
	return out
}
