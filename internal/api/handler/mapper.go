package handler

import (
	"strconv"

	"github.com/Yasmeen645/Bug-Tracking-System/internal/core/domain"
	"github.com/Yasmeen645/Bug-Tracking-System/internal/core/ports"
)

// --- Request → Service input ---

func toReportInput(req reportBugRequest) ports.ReportInput {
	return ports.ReportInput{
		Title:             req.Title,
		Category:          req.Category,
		Priority:          domain.Priority(req.Priority),
		Severity:          domain.Severity(req.Severity),
		Project:           req.Project,
		AttachmentPath:    req.AttachmentPath,
		AssignedDeveloper: req.AssignedDeveloper,
	}
}

// --- Domain → Response ---

func bugLinksFor(id int) bugLinks {
	return bugLinks{Self: "/v1/bugs/" + strconv.Itoa(id)}
}

func toBugResponse(b *domain.BugRecord) bugResponse {
	return bugResponse{
		ID:                b.ID,
		Title:             b.Title,
		Category:          b.Category,
		Priority:          string(b.Priority),
		Severity:          string(b.Severity),
		Status:            string(b.Status),
		Project:           b.Project,
		CreatedAt:         b.CreatedAt,
		AttachmentPath:    b.AttachmentPath,
		AssignedDeveloper: b.AssignedDeveloper,
		ReportedBy:        b.ReportedBy,
		Links:             bugLinksFor(b.ID),
	}
}

func toBugViewResponse(v ports.BugView) bugViewResponse {
	return bugViewResponse{
		ID:                v.ID,
		Title:             v.Title,
		Category:          v.Category,
		Priority:          string(v.Priority),
		Severity:          string(v.Severity),
		Status:            string(v.Status),
		Project:           v.Project,
		CreatedAt:         v.CreatedAt,
		AttachmentPath:    v.AttachmentPath,
		AssignedDeveloper: v.AssignedDeveloper,
		ReportedBy:        v.ReportedBy,
		Links:             bugLinksFor(v.ID),
	}
}

func toAccountResponse(a *domain.Account) accountResponse {
	return accountResponse{
		Username:  a.Username,
		Role:      string(a.Role),
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

func toAccountList(accounts []domain.Account) listAccountsResponse {
	out := listAccountsResponse{Data: make([]accountResponse, len(accounts))}
	for i := range accounts {
		out.Data[i] = toAccountResponse(&accounts[i])
	}
	return out
}

func toNotificationList(items []ports.Notification) listNotificationsResponse {
	out := listNotificationsResponse{Data: make([]notificationResponse, len(items))}
	for i, n := range items {
		out.Data[i] = notificationResponse{Subject: n.Subject, Body: n.Body, SentAt: n.SentAt.UTC()}
	}
	return out
}
