package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	mw "github.com/sdevrieze/urenloop/middleware"
	"github.com/sdevrieze/urenloop/models"
)

func TestSigninAndProtectedRoute(t *testing.T) {
	e, db := testServer(t)

	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	user := &models.User{Username: "desk", Password: string(hash)}
	if _, err := db.NewInsert().Model(user).Exec(context.Background()); err != nil {
		t.Fatalf("insert user: %v", err)
	}

	// protected probe route
	e.GET("/api/protected", func(c echo.Context) error {
		return c.String(http.StatusOK, c.Get("username").(string))
	}, mw.JWT([]byte("test-key")))

	rec := do(e, http.MethodPost, "/api/signin", `{"username":"desk","password":"secret"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("signin status = %d, body %s", rec.Code, rec.Body)
	}
	var resp struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Token == "" {
		t.Fatal("empty token")
	}

	req := httptest.NewRequest(http.MethodGet, "/api/protected", nil)
	req.Header.Set("Authorization", resp.Token)
	out := httptest.NewRecorder()
	e.ServeHTTP(out, req)
	if out.Code != http.StatusOK || out.Body.String() != "desk" {
		t.Fatalf("protected status = %d, body %q", out.Code, out.Body)
	}

	// missing and malformed tokens never reach the handler
	out = httptest.NewRecorder()
	e.ServeHTTP(out, httptest.NewRequest(http.MethodGet, "/api/protected", nil))
	if out.Code != http.StatusBadRequest {
		t.Fatalf("missing header status = %d", out.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/protected", nil)
	req.Header.Set("Authorization", "not-a-token")
	out = httptest.NewRecorder()
	e.ServeHTTP(out, req)
	if out.Code != http.StatusBadRequest && out.Code != http.StatusUnauthorized {
		t.Fatalf("garbage token status = %d", out.Code)
	}
}

func TestSigninRejectsBadCredentials(t *testing.T) {
	e, db := testServer(t)

	hash, _ := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	user := &models.User{Username: "desk", Password: string(hash)}
	if _, err := db.NewInsert().Model(user).Exec(context.Background()); err != nil {
		t.Fatalf("insert user: %v", err)
	}

	if rec := do(e, http.MethodPost, "/api/signin", `{"username":"desk","password":"wrong"}`); rec.Code != http.StatusUnauthorized {
		t.Fatalf("wrong password status = %d", rec.Code)
	}
	rec := do(e, http.MethodPost, "/api/signin", `{"username":"ghost","password":"x"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unknown user status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "incorrect") {
		t.Fatalf("body = %s", rec.Body)
	}
}
