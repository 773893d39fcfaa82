package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/adsrikanth11/crud-testing/internal/config"
	"github.com/adsrikanth11/crud-testing/internal/dbx"
	"github.com/adsrikanth11/crud-testing/internal/product"
	"github.com/adsrikanth11/crud-testing/internal/token"
	"github.com/adsrikanth11/crud-testing/internal/user"
)

func newTestServer(t *testing.T, mutate ...func(*config.Config)) *Server {
	t.Helper()

	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.DBPath = filepath.Join(t.TempDir(), "test.db")
	cfg.JWTSecret = "test-secret"
	cfg.TokenTTL = time.Hour
	cfg.BcryptCost = 4 // fast for tests
	for _, fn := range mutate {
		fn(cfg)
	}

	db, err := dbx.Open(cfg.DBPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	ctx := context.Background()
	users := user.NewStore(db, cfg.BcryptCost)
	require.NoError(t, users.Migrate(ctx))
	products := product.NewStore(db)
	require.NoError(t, products.Migrate(ctx))

	log := logrus.New()
	log.SetOutput(io.Discard)

	return New(cfg, log, users, products, token.NewCodec(cfg.JWTSecret, cfg.TokenTTL))
}

// do runs a request through the full router and returns the recorder.
func do(t *testing.T, s *Server, method, path string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	}
	r := httptest.NewRequest(method, path, rd)
	if body != nil {
		r.Header.Set("Content-Type", "application/json")
	}
	for _, c := range cookies {
		if c != nil {
			r.AddCookie(c)
		}
	}
	w := httptest.NewRecorder()
	s.ServeHTTP(w, r)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &m), "body: %s", w.Body.String())
	return m
}

// sessionCookie extracts the "token" cookie set by the response.
func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == tokenCookie {
			return c
		}
	}
	t.Fatalf("no %q cookie in response", tokenCookie)
	return nil
}

// register creates a user through the API and returns its session cookie.
func register(t *testing.T, s *Server, username, email, password string) *http.Cookie {
	t.Helper()
	w := do(t, s, http.MethodPost, "/api/auth/register", map[string]any{
		"username":        username,
		"email":           email,
		"password":        password,
		"confirmPassword": password,
	})
	require.Equal(t, http.StatusCreated, w.Code, "body: %s", w.Body.String())
	return sessionCookie(t, w)
}

// loginAs logs an existing user in and returns the fresh session cookie.
func loginAs(t *testing.T, s *Server, username, password string) *http.Cookie {
	t.Helper()
	w := do(t, s, http.MethodPost, "/api/auth/login", map[string]any{
		"username": username,
		"password": password,
	})
	require.Equal(t, http.StatusOK, w.Code, "body: %s", w.Body.String())
	return sessionCookie(t, w)
}

// adminCookie provisions an admin directly in the store and logs in.
func adminCookie(t *testing.T, s *Server) *http.Cookie {
	t.Helper()
	_, err := s.users.Create(context.Background(), "root", "root@example.com", "secret12", user.RoleAdmin)
	require.NoError(t, err)
	return loginAs(t, s, "root", "secret12")
}
