package snapshot

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/Yasmeen645/Bug-Tracking-System/internal/core/domain"
)

func sampleAccounts() []domain.Account {
	created := time.Date(2024, 1, 15, 10, 30, 0, 123456789, time.UTC)
	return []domain.Account{
		{Username: "admin", PasswordHash: "$2a$10$abc", Role: domain.RoleAdministrator, CreatedAt: created, UpdatedAt: created},
		{Username: "alice", PasswordHash: "$2a$10$def", Role: domain.RoleDeveloper, CreatedAt: created.Add(time.Second), UpdatedAt: created.Add(time.Minute)},
		{Username: "Bob", PasswordHash: "$2a$10$ghi", Role: domain.RoleTester, CreatedAt: created, UpdatedAt: created},
	}
}

func sampleBugs() []domain.BugRecord {
	created := time.Date(2024, 3, 1, 8, 0, 0, 987654321, time.UTC)
	return []domain.BugRecord{
		{
			ID: 1, Title: "Crash on save", Category: "UI", Priority: domain.PriorityHigh,
			Severity: domain.SeverityMajor, Project: "Payroll", CreatedAt: created,
			Status: domain.StatusOpen, AssignedDeveloper: "alice", ReportedBy: "bob",
		},
		{
			ID: 2, Title: "Typo", Category: "Docs", Priority: domain.PriorityLow,
			Severity: domain.SeverityMinor, Project: "Site", CreatedAt: created.Add(time.Nanosecond),
			Status: domain.StatusClosed, AssignedDeveloper: domain.Unassigned,
			AttachmentPath: "/tmp/screen.png", ReportedBy: "pam",
		},
	}
}

func TestAccountRepository_MissingFileIsEmpty(t *testing.T) {
	repo := NewAccountRepository(t.TempDir())

	accounts, err := repo.LoadAll(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if accounts == nil || len(accounts) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", accounts)
	}
}

func TestAccountRepository_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	repo := NewAccountRepository(dir)
	ctx := context.Background()
	want := sampleAccounts()

	if err := repo.ReplaceAll(ctx, want); err != nil {
		t.Fatalf("save: %v", err)
	}
	first, err := repo.LoadAll(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !reflect.DeepEqual(first, want) {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", first, want)
	}

	// save(load()) then load again reproduces the same set.
	if err := repo.ReplaceAll(ctx, first); err != nil {
		t.Fatalf("resave: %v", err)
	}
	second, err := NewAccountRepository(dir).LoadAll(ctx)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if !reflect.DeepEqual(second, want) {
		t.Fatalf("second round trip mismatch:\n got %+v\nwant %+v", second, want)
	}
}

func TestBugRepository_RoundTripKeepsNanoseconds(t *testing.T) {
	dir := t.TempDir()
	repo := NewBugRepository(dir)
	ctx := context.Background()
	want := sampleBugs()

	if err := repo.ReplaceAll(ctx, want); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := repo.LoadAll(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", got, want)
	}
	if got[0].CreatedAt.Nanosecond() != 987654321 {
		t.Fatalf("sub-second precision lost: %v", got[0].CreatedAt)
	}
}

func TestBugRepository_ReplaceAllOverwrites(t *testing.T) {
	repo := NewBugRepository(t.TempDir())
	ctx := context.Background()

	if err := repo.ReplaceAll(ctx, sampleBugs()); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := repo.ReplaceAll(ctx, sampleBugs()[:1]); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, _ := repo.LoadAll(ctx)
	if len(got) != 1 || got[0].ID != 1 {
		t.Fatalf("expected snapshot replaced, got %+v", got)
	}

	if err := repo.ReplaceAll(ctx, nil); err != nil {
		t.Fatalf("save empty: %v", err)
	}
	got, _ = repo.LoadAll(ctx)
	if len(got) != 0 {
		t.Fatalf("expected empty snapshot, got %+v", got)
	}
}

func TestBugRepository_CorruptFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, bugsFile), []byte("not cbor"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	if _, err := NewBugRepository(dir).LoadAll(context.Background()); err == nil {
		t.Fatalf("expected decode error for a corrupt snapshot")
	}
}

func TestBugRepository_NoTempFilesLeft(t *testing.T) {
	dir := t.TempDir()
	repo := NewBugRepository(dir)
	for i := 0; i < 3; i++ {
		if err := repo.ReplaceAll(context.Background(), sampleBugs()); err != nil {
			t.Fatalf("save: %v", err)
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("readdir: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != bugsFile {
		names := make([]string, len(entries))
		for i, e := range entries {
			names[i] = e.Name()
		}
		t.Fatalf("expected only %s, got %v", bugsFile, names)
	}
}

func TestPing(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	if err := Ping(dir); err != nil {
		t.Fatalf("ping: %v", err)
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		t.Fatalf("expected directory to be created: %v", err)
	}

	file := filepath.Join(t.TempDir(), "plain")
	if err := os.WriteFile(file, nil, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := Ping(file); err == nil {
		t.Fatal("expected error for a regular file")
	}
}
