package handler

import "time"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Accounts ---

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type createAccountRequest struct {
	Username string `json:"username" validate:"required,max=64"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role"     validate:"required,oneof=administrator tester developer project_manager"`
}

// updateAccountRequest leaves the password unchanged when it is omitted.
type updateAccountRequest struct {
	Password string `json:"password"`
	Role     string `json:"role" validate:"required,oneof=administrator tester developer project_manager"`
}

type accountResponse struct {
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type loginResponse struct {
	Token   string          `json:"token"`
	Account accountResponse `json:"account"`
}

type listAccountsResponse struct {
	Data []accountResponse `json:"data"`
}

// --- Bugs ---

type reportBugRequest struct {
	Title             string `json:"title"              validate:"required,max=200"`
	Category          string `json:"category"`
	Priority          string `json:"priority"           validate:"required,oneof=low medium high critical"`
	Severity          string `json:"severity"           validate:"required,oneof=minor major blocker"`
	Project           string `json:"project"`
	AttachmentPath    string `json:"attachment_path"`
	AssignedDeveloper string `json:"assigned_developer"`
}

type assignBugRequest struct {
	Developer string `json:"developer" validate:"required"`
}

type updateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=open in_progress closed"`
}

type bugLinks struct {
	Self string `json:"self"`
}

// bugResponse carries the full record returned by mutations.
type bugResponse struct {
	ID                int       `json:"id"`
	Title             string    `json:"title"`
	Category          string    `json:"category"`
	Priority          string    `json:"priority"`
	Severity          string    `json:"severity"`
	Status            string    `json:"status"`
	Project           string    `json:"project"`
	CreatedAt         time.Time `json:"created_at"`
	AttachmentPath    string    `json:"attachment_path,omitempty"`
	AssignedDeveloper string    `json:"assigned_developer"`
	ReportedBy        string    `json:"reported_by"`
	Links             bugLinks  `json:"_links"`
}

// bugViewResponse is a row of a role-scoped listing. Columns hidden from the
// caller's role are omitted.
type bugViewResponse struct {
	ID                int       `json:"id"`
	Title             string    `json:"title"`
	Category          string    `json:"category"`
	Priority          string    `json:"priority"`
	Severity          string    `json:"severity"`
	Status            string    `json:"status"`
	Project           string    `json:"project"`
	CreatedAt         time.Time `json:"created_at"`
	AttachmentPath    string    `json:"attachment_path,omitempty"`
	AssignedDeveloper *string   `json:"assigned_developer,omitempty"`
	ReportedBy        *string   `json:"reported_by,omitempty"`
	Links             bugLinks  `json:"_links"`
}

type listBugsResponse struct {
	Data []bugViewResponse `json:"data"`
}

// --- Notifications ---

type notificationResponse struct {
	Subject string    `json:"subject"`
	Body    string    `json:"body"`
	SentAt  time.Time `json:"sent_at"`
}

type listNotificationsResponse struct {
	Data []notificationResponse `json:"data"`
}
