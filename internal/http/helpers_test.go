package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	html "github.com/gofiber/template/html/v2"
	"golang.org/x/crypto/bcrypt"

	"trapbite/internal/config"
	"trapbite/internal/http/handlers"
	"trapbite/internal/repos"
	"trapbite/internal/services"
	"trapbite/internal/session"
	"trapbite/internal/store"
)

const (
	adminEmail    = "admin@trapbite.test"
	adminPassword = "trapbite100%"
)

func testConfig() config.Config {
	return config.Config{
		StoreDriver:       config.DriverSQLite,
		DBDSN:             ":memory:",
		LowStockThreshold: 10,
		LoginRateLimit:    20,
	}
}

// newTestApp wires the full app on an in-memory store.
func newTestApp(t *testing.T, cfg config.Config) (*fiber.App, store.Store) {
	t.Helper()
	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	st := repos.NewStore(db)
	t.Cleanup(func() { _ = st.Close() })

	creds, err := services.NewAdminCredentials(adminEmail, adminPassword, "", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("creds: %v", err)
	}
	auth := services.NewAuthService(creds, session.NewJWTIssuer("test-secret-0123456789abcdef", time.Hour))
	engine := html.New("../../web/templates", ".html")
	return handlers.NewApp(st, auth, cfg, engine), st
}

func jsonReq(method, path string, body any) *http.Request {
	var r io.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req
}

func do(t *testing.T, app *fiber.App, req *http.Request, cookie string) *http.Response {
	t.Helper()
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: handlers.SessionCookie, Value: cookie})
	}
	resp, err := app.Test(req, 5000)
	if err != nil {
		t.Fatalf("%s %s: %v", req.Method, req.URL.Path, err)
	}
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var v T
	if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return v
}

func sessionCookie(resp *http.Response) *http.Cookie {
	for _, c := range resp.Cookies() {
		if c.Name == handlers.SessionCookie {
			return c
		}
	}
	return nil
}

// login signs in as the admin and returns the session token.
func login(t *testing.T, app *fiber.App) string {
	t.Helper()
	resp := do(t, app, jsonReq("POST", "/api/auth/login", map[string]string{
		"email": adminEmail, "password": adminPassword,
	}), "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login: status %d", resp.StatusCode)
	}
	c := sessionCookie(resp)
	if c == nil || c.Value == "" {
		t.Fatal("login: no session cookie")
	}
	return c.Value
}
