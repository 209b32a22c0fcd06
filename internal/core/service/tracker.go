package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/Yasmeen645/Bug-Tracking-System/internal/core/domain"
	"github.com/Yasmeen645/Bug-Tracking-System/internal/core/ports"
)

const subjectAssigned = "New Bug Assigned"

// Tracker owns the bug collection, its id sequence and the assignment and
// status lifecycle. Records are kept in id-ascending order.
type Tracker struct {
	mu         sync.Mutex
	repo       ports.BugRepository
	developers ports.DeveloperLookup
	notifier   ports.Notifier
	bugs       []domain.BugRecord
	logger     zerolog.Logger
	now        func() time.Time
}

// NewTracker loads the bug snapshot. A load failure is logged and the tracker
// starts empty.
func NewTracker(
	ctx context.Context,
	repo ports.BugRepository,
	developers ports.DeveloperLookup,
	notifier ports.Notifier,
	logger zerolog.Logger,
) *Tracker {
	t := &Tracker{
		repo:       repo,
		developers: developers,
		notifier:   notifier,
		logger:     logger,
		now:        func() time.Time { return time.Now().UTC() },
	}

	bugs, err := repo.LoadAll(ctx)
	if err != nil {
		logger.Warn().Err(err).Msg("failed to load bugs, starting with an empty tracker")
		bugs = nil
	}
	slices.SortStableFunc(bugs, func(a, b domain.BugRecord) int { return a.ID - b.ID })
	t.bugs = bugs
	logger.Debug().Int("bugs", len(bugs)).Msg("tracker loaded")
	return t
}

// Report creates a new open bug. When a developer is named the bug starts
// assigned to them and they are notified.
func (t *Tracker) Report(ctx context.Context, actor *domain.Account, in ports.ReportInput) (*domain.BugRecord, error) {
	if err := authorize(actor, domain.RoleTester, domain.RoleProjectManager, domain.RoleAdministrator); err != nil {
		return nil, err
	}

	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, domain.ErrEmptyTitle
	}
	if !in.Priority.Valid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidPriority, in.Priority)
	}
	if !in.Severity.Valid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidSeverity, in.Severity)
	}

	assignee := strings.TrimSpace(in.AssignedDeveloper)
	if assignee == "" {
		assignee = domain.Unassigned
	}
	if assignee != domain.Unassigned {
		if err := t.checkDeveloper(ctx, assignee); err != nil {
			return nil, err
		}
	}

	t.mu.Lock()
	bug := domain.BugRecord{
		ID:                t.nextID(),
		Title:             title,
		Category:          strings.TrimSpace(in.Category),
		Priority:          in.Priority,
		Severity:          in.Severity,
		Project:           strings.TrimSpace(in.Project),
		CreatedAt:         t.now(),
		Status:            domain.StatusOpen,
		AssignedDeveloper: assignee,
		AttachmentPath:    strings.TrimSpace(in.AttachmentPath),
		ReportedBy:        actor.Username,
	}
	next := append(slices.Clone(t.bugs), bug)
	err := t.commit(ctx, next)
	t.mu.Unlock()

	if err != nil {
		t.logger.Error().Err(err).Str("title", title).Msg("failed to report bug")
		return nil, fmt.Errorf("report bug: %w", err)
	}

	t.logger.Info().Int("bug_id", bug.ID).Str("reported_by", bug.ReportedBy).Str("assignee", bug.AssignedDeveloper).Msg("bug reported")

	if bug.IsAssigned() {
		t.notify(ctx, bug.AssignedDeveloper, "You were assigned: "+bug.Title)
	}
	return &bug, nil
}

// Assign hands a bug to a developer and notifies them, whoever held it before.
func (t *Tracker) Assign(ctx context.Context, actor *domain.Account, bugID int, developer string) (*domain.BugRecord, error) {
	if err := authorize(actor, domain.RoleProjectManager, domain.RoleAdministrator); err != nil {
		return nil, err
	}
	if err := t.checkDeveloper(ctx, developer); err != nil {
		return nil, err
	}

	t.mu.Lock()
	i := t.indexOf(bugID)
	if i < 0 {
		t.mu.Unlock()
		return nil, fmt.Errorf("assign bug %d: %w", bugID, domain.ErrBugNotFound)
	}
	next := slices.Clone(t.bugs)
	previous := next[i].AssignedDeveloper
	next[i].AssignedDeveloper = developer
	bug := next[i]
	err := t.commit(ctx, next)
	t.mu.Unlock()

	if err != nil {
		t.logger.Error().Err(err).Int("bug_id", bugID).Msg("failed to assign bug")
		return nil, fmt.Errorf("assign bug %d: %w", bugID, err)
	}

	t.logger.Info().Int("bug_id", bugID).Str("from", previous).Str("to", developer).Str("by", actor.Username).Msg("bug assigned")
	t.notify(ctx, developer, "You were assigned bug: "+bug.Title)
	return &bug, nil
}

// UpdateStatus moves a bug to status. Only the assigned developer (or an
// administrator) may do so; any status is reachable from any other.
func (t *Tracker) UpdateStatus(ctx context.Context, actor *domain.Account, bugID int, status domain.BugStatus) (*domain.BugRecord, error) {
	if err := authorize(actor, domain.RoleDeveloper, domain.RoleAdministrator); err != nil {
		return nil, err
	}
	if !status.Valid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidStatus, status)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	i := t.indexOf(bugID)
	if i < 0 {
		return nil, fmt.Errorf("update bug %d: %w", bugID, domain.ErrBugNotFound)
	}
	current := t.bugs[i]
	if actor.Role == domain.RoleDeveloper && current.AssignedDeveloper != actor.Username {
		return nil, fmt.Errorf("update bug %d: %w", bugID, domain.ErrNotAssignee)
	}
	if !current.Status.CanTransitionTo(status) {
		return nil, fmt.Errorf("update bug %d: %w (from %s to %s)", bugID, domain.ErrInvalidStatus, current.Status, status)
	}

	next := slices.Clone(t.bugs)
	next[i].Status = status
	if err := t.commit(ctx, next); err != nil {
		t.logger.Error().Err(err).Int("bug_id", bugID).Msg("failed to update bug status")
		return nil, fmt.Errorf("update bug %d: %w", bugID, err)
	}

	t.logger.Info().Int("bug_id", bugID).Str("from", string(current.Status)).Str("to", string(status)).Msg("bug status updated")
	bug := next[i]
	return &bug, nil
}

// Get returns a single bug by id.
func (t *Tracker) Get(_ context.Context, bugID int) (*domain.BugRecord, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	i := t.indexOf(bugID)
	if i < 0 {
		return nil, domain.ErrBugNotFound
	}
	bug := t.bugs[i]
	return &bug, nil
}

// ListForReporter returns the bugs reported by username.
func (t *Tracker) ListForReporter(_ context.Context, username string) ([]domain.BugRecord, error) {
	return t.filter(func(b *domain.BugRecord) bool { return b.ReportedBy == username }), nil
}

// ListForDeveloper returns the bugs assigned to username.
func (t *Tracker) ListForDeveloper(_ context.Context, username string) ([]domain.BugRecord, error) {
	return t.filter(func(b *domain.BugRecord) bool { return b.AssignedDeveloper == username }), nil
}

// ListAll returns every bug.
func (t *Tracker) ListAll(_ context.Context) ([]domain.BugRecord, error) {
	return t.filter(func(*domain.BugRecord) bool { return true }), nil
}

// ListForRole returns the rows and columns the actor's role may see:
// administrators and project managers see everything, testers see their own
// reports without the reporter column, developers see their assignments
// without the assignee column.
func (t *Tracker) ListForRole(_ context.Context, actor *domain.Account) ([]ports.BugView, error) {
	if actor == nil {
		return nil, domain.ErrInsufficientRole
	}

	var (
		bugs         []domain.BugRecord
		showAssignee = true
		showReporter = true
	)
	switch actor.Role {
	case domain.RoleAdministrator, domain.RoleProjectManager:
		bugs = t.filter(func(*domain.BugRecord) bool { return true })
	case domain.RoleTester:
		bugs = t.filter(func(b *domain.BugRecord) bool { return b.ReportedBy == actor.Username })
		showReporter = false
	case domain.RoleDeveloper:
		bugs = t.filter(func(b *domain.BugRecord) bool { return b.AssignedDeveloper == actor.Username })
		showAssignee = false
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidRole, actor.Role)
	}

	views := make([]ports.BugView, len(bugs))
	for i, b := range bugs {
		views[i] = project(b, showAssignee, showReporter)
	}
	return views, nil
}

func project(b domain.BugRecord, showAssignee, showReporter bool) ports.BugView {
	v := ports.BugView{
		ID:             b.ID,
		Title:          b.Title,
		Category:       b.Category,
		Priority:       b.Priority,
		Severity:       b.Severity,
		Status:         b.Status,
		Project:        b.Project,
		CreatedAt:      b.CreatedAt,
		AttachmentPath: b.AttachmentPath,
	}
	if showAssignee {
		assignee := b.AssignedDeveloper
		v.AssignedDeveloper = &assignee
	}
	if showReporter {
		reporter := b.ReportedBy
		v.ReportedBy = &reporter
	}
	return v
}

// checkDeveloper verifies username names an existing developer account.
func (t *Tracker) checkDeveloper(ctx context.Context, username string) error {
	acc, err := t.developers.Get(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return fmt.Errorf("%w: %q", domain.ErrNotADeveloper, username)
		}
		return err
	}
	if acc.Role != domain.RoleDeveloper {
		return fmt.Errorf("%w: %q is %s", domain.ErrNotADeveloper, username, acc.Role)
	}
	return nil
}

// notify is fire-and-forget; failures are only logged.
func (t *Tracker) notify(ctx context.Context, recipient, body string) {
	if t.notifier == nil {
		return
	}
	if err := t.notifier.Notify(ctx, recipient, subjectAssigned, body); err != nil {
		t.logger.Warn().Err(err).Str("recipient", recipient).Msg("failed to send notification")
	}
}

func (t *Tracker) filter(keep func(*domain.BugRecord) bool) []domain.BugRecord {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]domain.BugRecord, 0, len(t.bugs))
	for i := range t.bugs {
		if keep(&t.bugs[i]) {
			out = append(out, t.bugs[i])
		}
	}
	return out
}

// nextID is max(existing id)+1, or 1 when empty. Callers must hold t.mu.
func (t *Tracker) nextID() int {
	if len(t.bugs) == 0 {
		return 1
	}
	return t.bugs[len(t.bugs)-1].ID + 1
}

func (t *Tracker) indexOf(bugID int) int {
	i, found := slices.BinarySearchFunc(t.bugs, bugID, func(b domain.BugRecord, id int) int {
		return b.ID - id
	})
	if !found {
		return -1
	}
	return i
}

// commit persists next and only then makes it the live collection.
// Callers must hold t.mu.
func (t *Tracker) commit(ctx context.Context, next []domain.BugRecord) error {
	if err := t.repo.ReplaceAll(ctx, next); err != nil {
		return fmt.Errorf("save bugs: %w", err)
	}
	t.bugs = next
	return nil
}
