package snapshot

import (
	"context"
	"path/filepath"
	"time"

	"github.com/Yasmeen645/Bug-Tracking-System/internal/core/domain"
	"github.com/Yasmeen645/Bug-Tracking-System/internal/core/ports"
)

const (
	accountsFile = "users.cbor"
	bugsFile     = "bugs.cbor"
)

type accountRecord struct {
	Username     string    `cbor:"username"`
	PasswordHash string    `cbor:"password_hash"`
	Role         string    `cbor:"role"`
	CreatedAt    time.Time `cbor:"created_at"`
	UpdatedAt    time.Time `cbor:"updated_at"`
}

type bugRecord struct {
	ID                int       `cbor:"id"`
	Title             string    `cbor:"title"`
	Category          string    `cbor:"category"`
	Priority          string    `cbor:"priority"`
	Severity          string    `cbor:"severity"`
	Project           string    `cbor:"project"`
	CreatedAt         time.Time `cbor:"created_at"`
	Status            string    `cbor:"status"`
	AssignedDeveloper string    `cbor:"assigned_developer"`
	AttachmentPath    string    `cbor:"attachment_path"`
	ReportedBy        string    `cbor:"reported_by"`
}

// AccountRepository implements ports.AccountRepository on a CBOR file.
type AccountRepository struct {
	f file
}

// NewAccountRepository stores accounts in dataDir/users.cbor.
func NewAccountRepository(dataDir string) *AccountRepository {
	return &AccountRepository{f: file{path: filepath.Join(dataDir, accountsFile)}}
}

var _ ports.AccountRepository = (*AccountRepository)(nil)

func (r *AccountRepository) LoadAll(_ context.Context) ([]domain.Account, error) {
	recs, err := read[accountRecord](r.f)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Account, len(recs))
	for i, rec := range recs {
		out[i] = domain.Account{
			Username:     rec.Username,
			PasswordHash: rec.PasswordHash,
			Role:         domain.Role(rec.Role),
			CreatedAt:    rec.CreatedAt.UTC(),
			UpdatedAt:    rec.UpdatedAt.UTC(),
		}
	}
	return out, nil
}

func (r *AccountRepository) ReplaceAll(_ context.Context, accounts []domain.Account) error {
	recs := make([]accountRecord, len(accounts))
	for i, a := range accounts {
		recs[i] = accountRecord{
			Username:     a.Username,
			PasswordHash: a.PasswordHash,
			Role:         string(a.Role),
			CreatedAt:    a.CreatedAt,
			UpdatedAt:    a.UpdatedAt,
		}
	}
	return write(r.f, recs)
}

// BugRepository implements ports.BugRepository on a CBOR file.
type BugRepository struct {
	f file
}

// NewBugRepository stores bugs in dataDir/bugs.cbor.
func NewBugRepository(dataDir string) *BugRepository {
	return &BugRepository{f: file{path: filepath.Join(dataDir, bugsFile)}}
}

var _ ports.BugRepository = (*BugRepository)(nil)

func (r *BugRepository) LoadAll(_ context.Context) ([]domain.BugRecord, error) {
	recs, err := read[bugRecord](r.f)
	if err != nil {
		return nil, err
	}
	out := make([]domain.BugRecord, len(recs))
	for i, rec := range recs {
		out[i] = domain.BugRecord{
			ID:                rec.ID,
			Title:             rec.Title,
			Category:          rec.Category,
			Priority:          domain.Priority(rec.Priority),
			Severity:          domain.Severity(rec.Severity),
			Project:           rec.Project,
			CreatedAt:         rec.CreatedAt.UTC(),
			Status:            domain.BugStatus(rec.Status),
			AssignedDeveloper: rec.AssignedDeveloper,
			AttachmentPath:    rec.AttachmentPath,
			ReportedBy:        rec.ReportedBy,
		}
	}
	return out, nil
}

func (r *BugRepository) ReplaceAll(_ context.Context, bugs []domain.BugRecord) error {
	recs := make([]bugRecord, len(bugs))
	for i, b := range bugs {
		recs[i] = bugRecord{
			ID:                b.ID,
			Title:             b.Title,
			Category:          b.Category,
			Priority:          string(b.Priority),
			Severity:          string(b.Severity),
			Project:           b.Project,
			CreatedAt:         b.CreatedAt,
			Status:            string(b.Status),
			AssignedDeveloper: b.AssignedDeveloper,
			AttachmentPath:    b.AttachmentPath,
			ReportedBy:        b.ReportedBy,
		}
	}
	return write(r.f, recs)
}
