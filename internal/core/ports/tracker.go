package ports

import (
	"context"
	"time"

	"github.com/Yasmeen645/Bug-Tracking-System/internal/core/domain"
)

// ReportInput is the DTO passed from the transport layer to the Tracker.
// An empty AssignedDeveloper means the bug starts unassigned.
type ReportInput struct {
	Title             string
	Category          string
	Priority          domain.Priority
	Severity          domain.Severity
	Project           string
	AttachmentPath    string
	AssignedDeveloper string
}

// BugView is the role-scoped projection of a bug record. Columns a role may
// not see are left nil.
type BugView struct {
	ID                int
	Title             string
	Category          string
	Priority          domain.Priority
	Severity          domain.Severity
	Status            domain.BugStatus
	Project           string
	CreatedAt         time.Time
	AttachmentPath    string
	AssignedDeveloper *string
	ReportedBy        *string
}

// Tracker owns the bug collection.
type Tracker interface {
	Report(ctx context.Context, actor *domain.Account, input ReportInput) (*domain.BugRecord, error)
	Assign(ctx context.Context, actor *domain.Account, bugID int, developer string) (*domain.BugRecord, error)
	UpdateStatus(ctx context.Context, actor *domain.Account, bugID int, status domain.BugStatus) (*domain.BugRecord, error)
	Get(ctx context.Context, bugID int) (*domain.BugRecord, error)
	ListForReporter(ctx context.Context, username string) ([]domain.BugRecord, error)
	ListForDeveloper(ctx context.Context, username string) ([]domain.BugRecord, error)
	ListAll(ctx context.Context) ([]domain.BugRecord, error)
	ListForRole(ctx context.Context, actor *domain.Account) ([]BugView, error)
}
