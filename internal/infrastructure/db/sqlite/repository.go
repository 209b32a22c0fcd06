package sqlite

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/Yasmeen645/Bug-Tracking-System/internal/core/domain"
	"github.com/Yasmeen645/Bug-Tracking-System/internal/core/ports"
)

// accountRow keeps insertion order in Position, starting at 1.
type accountRow struct {
	Position     int       `gorm:"primaryKey;autoIncrement:false"`
	Username     string    `gorm:"uniqueIndex;not null"`
	PasswordHash string    `gorm:"not null"`
	Role         string    `gorm:"not null"`
	CreatedAt    time.Time `gorm:"autoCreateTime:false"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime:false"`
}

func (accountRow) TableName() string { return "accounts" }

type bugRow struct {
	ID                int       `gorm:"primaryKey;autoIncrement:false"`
	Title             string    `gorm:"not null"`
	Category          string    `gorm:"not null"`
	Priority          string    `gorm:"not null"`
	Severity          string    `gorm:"not null"`
	Project           string    `gorm:"not null"`
	CreatedAt         time.Time `gorm:"autoCreateTime:false"`
	Status            string    `gorm:"index;not null"`
	AssignedDeveloper string    `gorm:"index;not null"`
	AttachmentPath    string    `gorm:"not null"`
	ReportedBy        string    `gorm:"index;not null"`
}

func (bugRow) TableName() string { return "bugs" }

// AccountRepository implements ports.AccountRepository using gorm.
type AccountRepository struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

var _ ports.AccountRepository = (*AccountRepository)(nil)

func (r *AccountRepository) LoadAll(ctx context.Context) ([]domain.Account, error) {
	var rows []accountRow
	if err := r.db.WithContext(ctx).Order("position").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("load accounts: %w", err)
	}
	out := make([]domain.Account, len(rows))
	for i, row := range rows {
		out[i] = domain.Account{
			Username:     row.Username,
			PasswordHash: row.PasswordHash,
			Role:         domain.Role(row.Role),
			CreatedAt:    row.CreatedAt.UTC(),
			UpdatedAt:    row.UpdatedAt.UTC(),
		}
	}
	return out, nil
}

func (r *AccountRepository) ReplaceAll(ctx context.Context, accounts []domain.Account) error {
	rows := make([]accountRow, len(accounts))
	for i, a := range accounts {
		rows[i] = accountRow{
			Position:     i + 1,
			Username:     a.Username,
			PasswordHash: a.PasswordHash,
			Role:         string(a.Role),
			CreatedAt:    a.CreatedAt,
			UpdatedAt:    a.UpdatedAt,
		}
	}
	return replaceAll(ctx, r.db, &accountRow{}, rows)
}

// BugRepository implements ports.BugRepository using gorm.
type BugRepository struct {
	db *gorm.DB
}

func NewBugRepository(db *gorm.DB) *BugRepository {
	return &BugRepository{db: db}
}

var _ ports.BugRepository = (*BugRepository)(nil)

func (r *BugRepository) LoadAll(ctx context.Context) ([]domain.BugRecord, error) {
	var rows []bugRow
	if err := r.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("load bugs: %w", err)
	}
	out := make([]domain.BugRecord, len(rows))
	for i, row := range rows {
		out[i] = domain.BugRecord{
			ID:                row.ID,
			Title:             row.Title,
			Category:          row.Category,
			Priority:          domain.Priority(row.Priority),
			Severity:          domain.Severity(row.Severity),
			Project:           row.Project,
			CreatedAt:         row.CreatedAt.UTC(),
			Status:            domain.BugStatus(row.Status),
			AssignedDeveloper: row.AssignedDeveloper,
			AttachmentPath:    row.AttachmentPath,
			ReportedBy:        row.ReportedBy,
		}
	}
	return out, nil
}

func (r *BugRepository) ReplaceAll(ctx context.Context, bugs []domain.BugRecord) error {
	rows := make([]bugRow, len(bugs))
	for i, b := range bugs {
		rows[i] = bugRow{
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
	return replaceAll(ctx, r.db, &bugRow{}, rows)
}

// replaceAll empties model's table and inserts rows in a single transaction.
func replaceAll[T any](ctx context.Context, db *gorm.DB, model any, rows []T) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
			return fmt.Errorf("clear %T: %w", model, err)
		}
		if len(rows) == 0 {
			return nil
		}
		if err := tx.CreateInBatches(&rows, 100).Error; err != nil {
			return fmt.Errorf("insert %T: %w", model, err)
		}
		return nil
	})
}
