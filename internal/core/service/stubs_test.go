package service

import (
	"context"
	"errors"
	"slices"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/Yasmeen645/Bug-Tracking-System/internal/core/domain"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

var errDiskFull = errors.New("disk full")

type stubAccountRepo struct {
	stored  []domain.Account
	loadErr error
	saveErr error // if set, ReplaceAll returns this error
	saves   int
}

func (r *stubAccountRepo) LoadAll(_ context.Context) ([]domain.Account, error) {
	if r.loadErr != nil {
		return nil, r.loadErr
	}
	return slices.Clone(r.stored), nil
}

func (r *stubAccountRepo) ReplaceAll(_ context.Context, accounts []domain.Account) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.saves++
	r.stored = slices.Clone(accounts)
	return nil
}

type stubBugRepo struct {
	stored  []domain.BugRecord
	loadErr error
	saveErr error
	saves   int
}

func (r *stubBugRepo) LoadAll(_ context.Context) ([]domain.BugRecord, error) {
	if r.loadErr != nil {
		return nil, r.loadErr
	}
	return slices.Clone(r.stored), nil
}

func (r *stubBugRepo) ReplaceAll(_ context.Context, bugs []domain.BugRecord) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.saves++
	r.stored = slices.Clone(bugs)
	return nil
}

type notification struct {
	recipient, subject, body string
}

type stubNotifier struct {
	sent []notification
	err  error
}

func (n *stubNotifier) Notify(_ context.Context, recipient, subject, body string) error {
	n.sent = append(n.sent, notification{recipient, subject, body})
	return n.err
}

// stubLookup resolves usernames from a fixed map.
type stubLookup map[string]domain.Role

func (l stubLookup) Get(_ context.Context, username string) (*domain.Account, error) {
	role, ok := l[username]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	return &domain.Account{Username: username, Role: role}, nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

var discardLogger = zerolog.Nop()

var fixedNow = time.Date(2024, 1, 15, 10, 30, 0, 123456789, time.UTC)

func actor(username string, role domain.Role) *domain.Account {
	return &domain.Account{Username: username, Role: role}
}

var (
	adminActor  = actor("admin", domain.RoleAdministrator)
	testerActor = actor("bob", domain.RoleTester)
	pmActor     = actor("pam", domain.RoleProjectManager)
	aliceActor  = actor("alice", domain.RoleDeveloper)
	carolActor  = actor("carol", domain.RoleDeveloper)
)

func newTestDirectory(t *testing.T, repo *stubAccountRepo) *Directory {
	t.Helper()
	d := NewDirectory(context.Background(), repo, discardLogger)
	d.hashCost = bcrypt.MinCost
	d.now = func() time.Time { return fixedNow }
	return d
}

func newTestTracker(t *testing.T, repo *stubBugRepo, notifier *stubNotifier) *Tracker {
	t.Helper()
	lookup := stubLookup{
		"alice": domain.RoleDeveloper,
		"carol": domain.RoleDeveloper,
		"bob":   domain.RoleTester,
	}
	tr := NewTracker(context.Background(), repo, lookup, notifier, discardLogger)
	tr.now = func() time.Time { return fixedNow }
	return tr
}
