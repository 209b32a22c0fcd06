package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/prometheus/client_golang/prometheus"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/Yasmeen645/Bug-Tracking-System/internal/core/ports"
	"github.com/Yasmeen645/Bug-Tracking-System/internal/core/service"
	redisstore "github.com/Yasmeen645/Bug-Tracking-System/internal/infrastructure/db/redis"
	"github.com/Yasmeen645/Bug-Tracking-System/internal/infrastructure/db/snapshot"
)

type sentMail struct {
	to, subject, body string
}

type recordingNotifier struct {
	mu   sync.Mutex
	sent []sentMail
}

func (n *recordingNotifier) Notify(_ context.Context, to, subject, body string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, sentMail{to, subject, body})
	return nil
}

func (n *recordingNotifier) all() []sentMail {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]sentMail(nil), n.sent...)
}

type testServer struct {
	t        *testing.T
	srv      *httptest.Server
	notifier *recordingNotifier
}

type serverOptions struct {
	secret        string
	adminPassword string
	notifier      ports.Notifier
	inbox         ports.Inbox
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	notifier := &recordingNotifier{}
	s := startServer(t, serverOptions{secret: "test-secret", adminPassword: "admin123", notifier: notifier})
	s.notifier = notifier
	return s
}

func startServer(t *testing.T, opts serverOptions) *testServer {
	t.Helper()
	ctx := context.Background()
	dir := t.TempDir()
	log := zerolog.Nop()

	directory := service.NewDirectory(ctx, snapshot.NewAccountRepository(dir), log)
	directory.SetHashCost(bcrypt.MinCost)
	if err := directory.Bootstrap(ctx, opts.adminPassword); err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	tracker := service.NewTracker(ctx, snapshot.NewBugRepository(dir), directory, opts.notifier, log)

	e := NewRouter(Deps{
		Directory: directory,
		Tracker:   tracker,
		Auth:      service.NewAuthService(directory, opts.secret, time.Hour),
		Inbox:     opts.inbox,
		JWTSecret: opts.secret,
		Logger:    log,
		Registry:  prometheus.NewRegistry(),
	})
	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)
	return &testServer{t: t, srv: srv}
}

func (s *testServer) do(method, path, token, body string) (int, map[string]any) {
	s.t.Helper()
	req, err := http.NewRequest(method, s.srv.URL+path, strings.NewReader(body))
	if err != nil {
		s.t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := s.srv.Client().Do(req)
	if err != nil {
		s.t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	var out map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&out)
	return resp.StatusCode, out
}

func (s *testServer) login(username, password string) string {
	s.t.Helper()
	code, body := s.do(http.MethodPost, "/auth/login", "", `{"username":"`+username+`","password":"`+password+`"}`)
	if code != http.StatusOK {
		s.t.Fatalf("login %s: expected 200, got %d %v", username, code, body)
	}
	token, _ := body["token"].(string)
	return token
}

func (s *testServer) createAccount(adminToken, username, role string) {
	s.t.Helper()
	code, body := s.do(http.MethodPost, "/v1/accounts", adminToken,
		`{"username":"`+username+`","password":"pw-`+username+`","role":"`+role+`"}`)
	if code != http.StatusCreated {
		s.t.Fatalf("create %s: expected 201, got %d %v", username, code, body)
	}
}

func rows(t *testing.T, body map[string]any) []map[string]any {
	t.Helper()
	data, ok := body["data"].([]any)
	if !ok {
		t.Fatalf("expected data array, got %v", body)
	}
	out := make([]map[string]any, len(data))
	for i, d := range data {
		out[i] = d.(map[string]any)
	}
	return out
}

func TestRouter_BugLifecycle(t *testing.T) {
	s := newTestServer(t)
	admin := s.login("admin", "admin123")
	s.createAccount(admin, "alice", "developer")
	s.createAccount(admin, "bob", "tester")
	s.createAccount(admin, "pam", "project_manager")

	bob := s.login("bob", "pw-bob")
	alice := s.login("alice", "pw-alice")
	pam := s.login("pam", "pw-pam")

	code, bug := s.do(http.MethodPost, "/v1/bugs", bob,
		`{"title":"Crash on save","category":"UI","priority":"high","severity":"major","project":"Payroll","assigned_developer":"alice"}`)
	if code != http.StatusCreated {
		t.Fatalf("report: expected 201, got %d %v", code, bug)
	}
	if bug["id"] != float64(1) || bug["status"] != "open" || bug["reported_by"] != "bob" {
		t.Fatalf("unexpected bug: %v", bug)
	}
	if sent := s.notifier.all(); len(sent) != 1 || sent[0].to != "alice" || sent[0].body != "You were assigned: Crash on save" {
		t.Fatalf("unexpected notifications: %+v", sent)
	}

	// Tester listing hides the reporter column.
	_, list := s.do(http.MethodGet, "/v1/bugs", bob, "")
	bobRows := rows(t, list)
	if len(bobRows) != 1 {
		t.Fatalf("tester rows: %v", bobRows)
	}
	if _, ok := bobRows[0]["reported_by"]; ok {
		t.Fatalf("tester must not see reported_by: %v", bobRows[0])
	}
	if bobRows[0]["assigned_developer"] != "alice" {
		t.Fatalf("tester must see the assignee: %v", bobRows[0])
	}

	// Developer listing hides the assignee column.
	_, list = s.do(http.MethodGet, "/v1/bugs", alice, "")
	aliceRows := rows(t, list)
	if len(aliceRows) != 1 {
		t.Fatalf("developer rows: %v", aliceRows)
	}
	if _, ok := aliceRows[0]["assigned_developer"]; ok {
		t.Fatalf("developer must not see assigned_developer: %v", aliceRows[0])
	}

	// Testers cannot change status.
	if code, _ := s.do(http.MethodPut, "/v1/bugs/1/status", bob, `{"status":"closed"}`); code != http.StatusForbidden {
		t.Fatalf("tester status change: expected 403, got %d", code)
	}

	code, bug = s.do(http.MethodPut, "/v1/bugs/1/status", alice, `{"status":"in_progress"}`)
	if code != http.StatusOK || bug["status"] != "in_progress" {
		t.Fatalf("developer status change: %d %v", code, bug)
	}

	// Assigning to a non-developer is rejected.
	if code, body := s.do(http.MethodPut, "/v1/bugs/1/assignee", pam, `{"developer":"bob"}`); code != http.StatusUnprocessableEntity {
		t.Fatalf("assign to tester: expected 422, got %d %v", code, body)
	}

	s.createAccount(admin, "carol", "developer")
	code, bug = s.do(http.MethodPut, "/v1/bugs/1/assignee", pam, `{"developer":"carol"}`)
	if code != http.StatusOK || bug["assigned_developer"] != "carol" {
		t.Fatalf("reassign: %d %v", code, bug)
	}

	// The previous assignee no longer sees the bug.
	if code, _ := s.do(http.MethodGet, "/v1/bugs/1", alice, ""); code != http.StatusNotFound {
		t.Fatalf("old assignee get: expected 404, got %d", code)
	}
	if code, _ := s.do(http.MethodPut, "/v1/bugs/1/status", alice, `{"status":"closed"}`); code != http.StatusForbidden {
		t.Fatalf("old assignee status change: expected 403, got %d", code)
	}

	_, list = s.do(http.MethodGet, "/v1/bugs", pam, "")
	pamRows := rows(t, list)
	if len(pamRows) != 1 || pamRows[0]["reported_by"] != "bob" || pamRows[0]["assigned_developer"] != "carol" {
		t.Fatalf("manager rows: %v", pamRows)
	}
}

func TestRouter_ReportValidation(t *testing.T) {
	s := newTestServer(t)
	admin := s.login("admin", "admin123")
	s.createAccount(admin, "bob", "tester")
	s.createAccount(admin, "alice", "developer")
	bob := s.login("bob", "pw-bob")
	alice := s.login("alice", "pw-alice")

	tests := []struct {
		name  string
		token string
		body  string
		code  int
	}{
		{"blank title", bob, `{"title":"   ","priority":"low","severity":"minor"}`, http.StatusBadRequest},
		{"unknown priority", bob, `{"title":"x","priority":"urgent","severity":"minor"}`, http.StatusBadRequest},
		{"unknown developer", bob, `{"title":"x","priority":"low","severity":"minor","assigned_developer":"nobody"}`, http.StatusUnprocessableEntity},
		{"developer cannot report", alice, `{"title":"x","priority":"low","severity":"minor"}`, http.StatusForbidden},
		{"unassigned", bob, `{"title":"x","priority":"low","severity":"minor"}`, http.StatusCreated},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, body := s.do(http.MethodPost, "/v1/bugs", tt.token, tt.body)
			if code != tt.code {
				t.Fatalf("expected %d, got %d %v", tt.code, code, body)
			}
			if code == http.StatusCreated && body["assigned_developer"] != "Unassigned" {
				t.Fatalf("expected Unassigned sentinel, got %v", body["assigned_developer"])
			}
		})
	}
}

func TestRouter_AccountAdministration(t *testing.T) {
	s := newTestServer(t)
	admin := s.login("admin", "admin123")
	s.createAccount(admin, "alice", "developer")
	s.createAccount(admin, "bob", "tester")
	bob := s.login("bob", "pw-bob")

	if code, _ := s.do(http.MethodGet, "/v1/accounts", bob, ""); code != http.StatusForbidden {
		t.Fatalf("tester listing accounts: expected 403, got %d", code)
	}
	if code, _ := s.do(http.MethodPost, "/v1/accounts", admin, `{"username":"alice","password":"x","role":"tester"}`); code != http.StatusConflict {
		t.Fatalf("duplicate username: expected 409, got %d", code)
	}
	if code, _ := s.do(http.MethodPost, "/v1/accounts", admin, `{"username":"zed","password":"x","role":"boss"}`); code != http.StatusBadRequest {
		t.Fatalf("bad role: expected 400, got %d", code)
	}

	_, list := s.do(http.MethodGet, "/v1/accounts", admin, "")
	if got := len(rows(t, list)); got != 3 {
		t.Fatalf("expected 3 accounts, got %d", got)
	}
	_, devs := s.do(http.MethodGet, "/v1/developers", bob, "")
	if d := rows(t, devs); len(d) != 1 || d[0]["username"] != "alice" {
		t.Fatalf("unexpected developers: %v", d)
	}

	// Promote bob; his old token still works and now carries the new role.
	code, acc := s.do(http.MethodPut, "/v1/accounts/bob", admin, `{"role":"project_manager"}`)
	if code != http.StatusOK || acc["role"] != "project_manager" {
		t.Fatalf("update: %d %v", code, acc)
	}
	_, me := s.do(http.MethodGet, "/v1/me", bob, "")
	if me["role"] != "project_manager" {
		t.Fatalf("expected stored role, got %v", me)
	}
	// Empty password keeps the old one.
	s.login("bob", "pw-bob")

	if code, _ := s.do(http.MethodDelete, "/v1/accounts/admin", admin, ""); code != http.StatusConflict {
		t.Fatalf("self delete: expected 409, got %d", code)
	}
	if code, _ := s.do(http.MethodDelete, "/v1/accounts/bob", admin, ""); code != http.StatusNoContent {
		t.Fatalf("delete: expected 204, got %d", code)
	}
	if code, _ := s.do(http.MethodGet, "/v1/me", bob, ""); code != http.StatusUnauthorized {
		t.Fatalf("deleted account token: expected 401, got %d", code)
	}
	if code, _ := s.do(http.MethodDelete, "/v1/accounts/bob", admin, ""); code != http.StatusNotFound {
		t.Fatalf("delete missing: expected 404, got %d", code)
	}
}

func TestRouter_PublicEndpoints(t *testing.T) {
	s := newTestServer(t)

	if code, _ := s.do(http.MethodGet, "/v1/bugs", "", ""); code != http.StatusUnauthorized {
		t.Fatalf("anonymous listing: expected 401, got %d", code)
	}
	if code, _ := s.do(http.MethodPost, "/auth/login", "", `{"username":"admin","password":"nope"}`); code != http.StatusUnauthorized {
		t.Fatalf("bad login: expected 401, got %d", code)
	}
	if code, _ := s.do(http.MethodPost, "/auth/login", "", `{"username":"ghost","password":"nope"}`); code != http.StatusUnauthorized {
		t.Fatalf("unknown user login: expected 401, got %d", code)
	}
	if code, body := s.do(http.MethodGet, "/health", "", ""); code != http.StatusOK || body["status"] != "ok" {
		t.Fatalf("health: %d %v", code, body)
	}
	if code, _ := s.do(http.MethodGet, "/health/ready", "", ""); code != http.StatusOK {
		t.Fatalf("ready: expected 200, got %d", code)
	}

	resp, err := s.srv.Client().Get(s.srv.URL + "/metrics")
	if err != nil {
		t.Fatalf("metrics: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("metrics: expected 200, got %d", resp.StatusCode)
	}
}

func TestRouter_EmptySecretRejectsForgedTokens(t *testing.T) {
	s := startServer(t, serverOptions{adminPassword: "unknown-to-caller"})

	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"username": "admin",
		"role":     "administrator",
		"exp":      time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(""))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	code, _ := s.do(http.MethodPost, "/v1/accounts", forged,
		`{"username":"mallory","password":"pw","role":"administrator"}`)
	if code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for a token signed with an empty key, got %d", code)
	}
	if code, _ := s.do(http.MethodGet, "/v1/me", forged, ""); code != http.StatusUnauthorized {
		t.Fatalf("expected 401 on /v1/me, got %d", code)
	}
}

func TestRouter_NotificationsInbox(t *testing.T) {
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	redisNotifier := redisstore.NewNotifier(client)

	s := startServer(t, serverOptions{
		secret:        "test-secret",
		adminPassword: "admin123",
		notifier:      redisNotifier,
		inbox:         redisNotifier,
	})
	admin := s.login("admin", "admin123")
	s.createAccount(admin, "alice", "developer")
	s.createAccount(admin, "bob", "tester")

	bob := s.login("bob", "pw-bob")
	alice := s.login("alice", "pw-alice")

	code, _ := s.do(http.MethodPost, "/v1/bugs", bob,
		`{"title":"Crash on save","priority":"high","severity":"major","assigned_developer":"alice"}`)
	if code != http.StatusCreated {
		t.Fatalf("report: expected 201, got %d", code)
	}

	code, body := s.do(http.MethodGet, "/v1/notifications", alice, "")
	if code != http.StatusOK {
		t.Fatalf("notifications: expected 200, got %d %v", code, body)
	}
	items := rows(t, body)
	if len(items) != 1 || items[0]["subject"] != "New Bug Assigned" || items[0]["body"] != "You were assigned: Crash on save" {
		t.Fatalf("unexpected inbox: %v", items)
	}

	code, body = s.do(http.MethodGet, "/v1/notifications", bob, "")
	if code != http.StatusOK || len(rows(t, body)) != 0 {
		t.Fatalf("expected bob's inbox empty, got %d %v", code, body)
	}

	if code, _ := s.do(http.MethodGet, "/v1/notifications", "", ""); code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without a token, got %d", code)
	}
}
