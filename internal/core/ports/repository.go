package ports

import (
	"context"

	"github.com/Yasmeen645/Bug-Tracking-System/internal/core/domain"
)

// AccountRepository persists the whole account collection as one snapshot.
// LoadAll returns an empty slice when no snapshot exists yet.
type AccountRepository interface {
	LoadAll(ctx context.Context) ([]domain.Account, error)
	// ReplaceAll overwrites the stored snapshot with accounts, in order.
	ReplaceAll(ctx context.Context, accounts []domain.Account) error
}

// BugRepository persists the whole bug collection as one snapshot.
// LoadAll returns an empty slice when no snapshot exists yet.
type BugRepository interface {
	LoadAll(ctx context.Context) ([]domain.BugRecord, error)
	// ReplaceAll overwrites the stored snapshot with bugs, in order.
	ReplaceAll(ctx context.Context, bugs []domain.BugRecord) error
}
