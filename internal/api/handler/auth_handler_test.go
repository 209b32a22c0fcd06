package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/Yasmeen645/Bug-Tracking-System/internal/api/middleware"
	"github.com/Yasmeen645/Bug-Tracking-System/internal/core/domain"
)

type stubAuthService struct {
	loginFn func(ctx context.Context, username, password string) (string, *domain.Account, error)
}

func (s *stubAuthService) Login(ctx context.Context, username, password string) (string, *domain.Account, error) {
	return s.loginFn(ctx, username, password)
}

type stubAccounts map[string]*domain.Account

func (s stubAccounts) Get(_ context.Context, username string) (*domain.Account, error) {
	if acc, ok := s[username]; ok {
		return acc, nil
	}
	return nil, domain.ErrAccountNotFound
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func postJSON(e *echo.Echo, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Login_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, username, password string) (string, *domain.Account, error) {
			if username != "alice" || password != "secret" {
				t.Fatalf("unexpected args: %s %s", username, password)
			}
			return "token-123", &domain.Account{Username: "alice", Role: domain.RoleDeveloper, PasswordHash: "$2a$hash"}, nil
		},
	}
	handler := NewAuthHandler(stub, stubAccounts{})

	c, rec := postJSON(e, "/auth/login", `{"username":"alice","password":"secret"}`)
	if err := handler.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "$2a$hash") {
		t.Fatalf("password hash leaked: %s", rec.Body.String())
	}

	var resp loginResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Token != "token-123" || resp.Account.Username != "alice" || resp.Account.Role != "developer" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, username, password string) (string, *domain.Account, error) {
			return "", nil, domain.ErrInvalidCredentials
		},
	}
	handler := NewAuthHandler(stub, stubAccounts{})

	c, _ := postJSON(e, "/auth/login", `{"username":"alice","password":"wrong"}`)
	err := handler.Login(c)
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthHandler_Login_BadPayload(t *testing.T) {
	e := newTestEcho()
	handler := NewAuthHandler(&stubAuthService{
		loginFn: func(ctx context.Context, username, password string) (string, *domain.Account, error) {
			t.Fatal("service must not be called")
			return "", nil, nil
		},
	}, stubAccounts{})

	for _, body := range []string{`{"username":`, `{"username":"alice"}`, `{}`} {
		c, _ := postJSON(e, "/auth/login", body)
		err := handler.Login(c)
		var he *echo.HTTPError
		if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
			t.Fatalf("body %s: expected 400, got %v", body, err)
		}
	}
}

func TestAuthHandler_Me(t *testing.T) {
	e := newTestEcho()
	accounts := stubAccounts{"pam": {Username: "pam", Role: domain.RoleProjectManager}}
	handler := NewAuthHandler(&stubAuthService{}, accounts)

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/v1/me", nil), rec)
	c.Set(middleware.UsernameKey, "pam")
	// A stale role claim is ignored; the stored role wins.
	c.Set(middleware.RoleKey, domain.RoleAdministrator)

	if err := handler.Me(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var resp accountResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Username != "pam" || resp.Role != "project_manager" {
		t.Fatalf("unexpected account: %+v", resp)
	}
}

func TestAuthHandler_Me_DeletedAccount(t *testing.T) {
	e := newTestEcho()
	handler := NewAuthHandler(&stubAuthService{}, stubAccounts{})

	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/v1/me", nil), httptest.NewRecorder())
	c.Set(middleware.UsernameKey, "ghost")

	err := handler.Me(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}
