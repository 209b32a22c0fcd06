package service

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/Yasmeen645/Bug-Tracking-System/internal/core/domain"
	"github.com/Yasmeen645/Bug-Tracking-System/internal/core/ports"
)

// Directory owns the account collection. Every mutation rewrites the whole
// snapshot; if that write fails the in-memory collection is left untouched.
type Directory struct {
	mu       sync.Mutex
	repo     ports.AccountRepository
	accounts []domain.Account
	logger   zerolog.Logger
	now      func() time.Time
	hashCost int
}

// NewDirectory loads the account snapshot. A load failure is logged and the
// directory starts empty.
func NewDirectory(ctx context.Context, repo ports.AccountRepository, logger zerolog.Logger) *Directory {
	d := &Directory{
		repo:     repo,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
		hashCost: bcrypt.DefaultCost,
	}

	accounts, err := repo.LoadAll(ctx)
	if err != nil {
		logger.Warn().Err(err).Msg("failed to load accounts, starting with an empty directory")
		accounts = nil
	}
	d.accounts = accounts
	logger.Debug().Int("accounts", len(accounts)).Msg("directory loaded")
	return d
}

// SetHashCost changes the bcrypt cost used for new password hashes.
func (d *Directory) SetHashCost(cost int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.hashCost = cost
}

// Bootstrap creates the built-in administrator when no account named "admin"
// with the administrator role exists.
func (d *Directory) Bootstrap(ctx context.Context, defaultPassword string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	for _, a := range d.accounts {
		if a.Username == domain.BootstrapUsername && a.Role == domain.RoleAdministrator {
			return nil
		}
	}

	// An "admin" account that lost its administrator role is promoted back
	// rather than duplicated, keeping usernames unique.
	next := slices.Clone(d.accounts)
	now := d.now()
	if i := indexOfAccount(next, domain.BootstrapUsername); i >= 0 {
		next[i].Role = domain.RoleAdministrator
		next[i].UpdatedAt = now
	} else {
		hash, err := d.hash(defaultPassword)
		if err != nil {
			return err
		}
		next = append(next, domain.Account{
			Username:     domain.BootstrapUsername,
			PasswordHash: hash,
			Role:         domain.RoleAdministrator,
			CreatedAt:    now,
			UpdatedAt:    now,
		})
	}

	if err := d.commit(ctx, next); err != nil {
		return fmt.Errorf("bootstrap admin: %w", err)
	}
	d.logger.Info().Str("username", domain.BootstrapUsername).Msg("bootstrap administrator created")
	return nil
}

// Authenticate returns the account whose trimmed username matches exactly and
// whose password verifies against the stored hash.
func (d *Directory) Authenticate(_ context.Context, username, password string) (*domain.Account, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	d.mu.Lock()
	i := indexOfAccount(d.accounts, username)
	var acc domain.Account
	if i >= 0 {
		acc = d.accounts[i]
	}
	d.mu.Unlock()

	if i < 0 {
		return nil, domain.ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(acc.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}
	return &acc, nil
}

// Register appends a new account. Only administrators may register accounts.
func (d *Directory) Register(ctx context.Context, actor *domain.Account, in ports.RegisterInput) (*domain.Account, error) {
	if err := authorize(actor, domain.RoleAdministrator); err != nil {
		return nil, err
	}
	in.Username = strings.TrimSpace(in.Username)
	if in.Username == "" || in.Password == "" {
		return nil, domain.ErrEmptyField
	}
	if !in.Role.Valid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidRole, in.Role)
	}

	hash, err := d.hash(in.Password)
	if err != nil {
		return nil, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if indexOfAccount(d.accounts, in.Username) >= 0 {
		return nil, domain.ErrUsernameTaken
	}

	now := d.now()
	acc := domain.Account{
		Username:     in.Username,
		PasswordHash: hash,
		Role:         in.Role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	next := append(slices.Clone(d.accounts), acc)
	if err := d.commit(ctx, next); err != nil {
		d.logger.Error().Err(err).Str("username", in.Username).Msg("failed to register account")
		return nil, fmt.Errorf("register %s: %w", in.Username, err)
	}

	d.logger.Info().Str("username", acc.Username).Str("role", string(acc.Role)).Str("by", actor.Username).Msg("account registered")
	return &acc, nil
}

// Get looks up a single account by username.
func (d *Directory) Get(_ context.Context, username string) (*domain.Account, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	i := indexOfAccount(d.accounts, username)
	if i < 0 {
		return nil, domain.ErrAccountNotFound
	}
	acc := d.accounts[i]
	return &acc, nil
}

// List returns every account in insertion order. Administrators only.
func (d *Directory) List(_ context.Context, actor *domain.Account) ([]domain.Account, error) {
	if err := authorize(actor, domain.RoleAdministrator); err != nil {
		return nil, err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return slices.Clone(d.accounts), nil
}

// ListByRole returns the accounts holding role, in insertion order.
func (d *Directory) ListByRole(_ context.Context, role domain.Role) ([]domain.Account, error) {
	if !role.Valid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidRole, role)
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	out := make([]domain.Account, 0, len(d.accounts))
	for _, a := range d.accounts {
		if a.Role == role {
			out = append(out, a)
		}
	}
	return out, nil
}

// UpdateAccount overwrites password and role in place.
func (d *Directory) UpdateAccount(ctx context.Context, actor *domain.Account, in ports.UpdateAccountInput) (*domain.Account, error) {
	if err := authorize(actor, domain.RoleAdministrator); err != nil {
		return nil, err
	}
	if !in.Role.Valid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidRole, in.Role)
	}

	var hash string
	if in.Password != "" {
		h, err := d.hash(in.Password)
		if err != nil {
			return nil, err
		}
		hash = h
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	i := indexOfAccount(d.accounts, in.Username)
	if i < 0 {
		return nil, domain.ErrAccountNotFound
	}

	next := slices.Clone(d.accounts)
	if hash != "" {
		next[i].PasswordHash = hash
	}
	next[i].Role = in.Role
	next[i].UpdatedAt = d.now()

	if err := d.commit(ctx, next); err != nil {
		d.logger.Error().Err(err).Str("username", in.Username).Msg("failed to update account")
		return nil, fmt.Errorf("update %s: %w", in.Username, err)
	}

	d.logger.Info().Str("username", in.Username).Str("role", string(in.Role)).Bool("password_changed", hash != "").Msg("account updated")
	acc := next[i]
	return &acc, nil
}

// DeleteAccount removes username. An account may never delete itself.
func (d *Directory) DeleteAccount(ctx context.Context, actor *domain.Account, username string) error {
	if err := authorize(actor, domain.RoleAdministrator); err != nil {
		return err
	}
	if username == actor.Username {
		return domain.ErrSelfDelete
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	i := indexOfAccount(d.accounts, username)
	if i < 0 {
		return domain.ErrAccountNotFound
	}

	next := slices.Delete(slices.Clone(d.accounts), i, i+1)
	if err := d.commit(ctx, next); err != nil {
		d.logger.Error().Err(err).Str("username", username).Msg("failed to delete account")
		return fmt.Errorf("delete %s: %w", username, err)
	}

	d.logger.Info().Str("username", username).Str("by", actor.Username).Msg("account deleted")
	return nil
}

// commit persists next and only then makes it the live collection.
// Callers must hold d.mu.
func (d *Directory) commit(ctx context.Context, next []domain.Account) error {
	if err := d.repo.ReplaceAll(ctx, next); err != nil {
		return fmt.Errorf("save accounts: %w", err)
	}
	d.accounts = next
	return nil
}

func (d *Directory) hash(password string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(password), d.hashCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(h), nil
}

func indexOfAccount(accounts []domain.Account, username string) int {
	return slices.IndexFunc(accounts, func(a domain.Account) bool {
		return a.Username == username
	})
}
