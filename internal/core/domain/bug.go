package domain

import (
	"errors"
	"time"
)

// BugStatus represents the lifecycle state of a bug record.
type BugStatus string

const (
	StatusOpen       BugStatus = "open"
	StatusInProgress BugStatus = "in_progress"
	StatusClosed     BugStatus = "closed"
)

// Priority ranks how soon a bug should be handled.
type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

// Severity ("level") describes the impact of a bug.
type Severity string

const (
	SeverityMinor   Severity = "minor"
	SeverityMajor   Severity = "major"
	SeverityBlocker Severity = "blocker"
)

// Unassigned is stored in AssignedDeveloper when nobody owns the bug.
const Unassigned = "Unassigned"

var (
	ErrBugNotFound     = errors.New("bug not found")
	ErrEmptyTitle      = errors.New("title is required")
	ErrInvalidStatus   = errors.New("invalid status")
	ErrInvalidPriority = errors.New("invalid priority")
	ErrInvalidSeverity = errors.New("invalid severity")
	ErrNotADeveloper   = errors.New("assignee is not a developer")
	ErrNotAssignee     = errors.New("bug is not assigned to this account")
)

// Valid reports whether s is a known status.
func (s BugStatus) Valid() bool {
	switch s {
	case StatusOpen, StatusInProgress, StatusClosed:
		return true
	}
	return false
}

// CanTransitionTo reports whether a bug in status s may move to next.
// The lifecycle is flat: every known status is reachable from every other.
func (s BugStatus) CanTransitionTo(next BugStatus) bool {
	return s.Valid() && next.Valid()
}

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	}
	return false
}

func (s Severity) Valid() bool {
	switch s {
	case SeverityMinor, SeverityMajor, SeverityBlocker:
		return true
	}
	return false
}

// BugRecord is the core aggregate tracked by the system.
// AssignedDeveloper and ReportedBy hold usernames only.
type BugRecord struct {
	ID                int       `json:"id"`
	Title             string    `json:"title"`
	Category          string    `json:"category"`
	Priority          Priority  `json:"priority"`
	Severity          Severity  `json:"severity"`
	Project           string    `json:"project"`
	CreatedAt         time.Time `json:"created_at"`
	Status            BugStatus `json:"status"`
	AssignedDeveloper string    `json:"assigned_developer"`
	AttachmentPath    string    `json:"attachment_path,omitempty"`
	ReportedBy        string    `json:"reported_by"`
}

// IsAssigned reports whether a developer currently owns the bug.
func (b *BugRecord) IsAssigned() bool {
	return b.AssignedDeveloper != "" && b.AssignedDeveloper != Unassigned
}
