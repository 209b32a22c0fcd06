// Package docs registers the OpenAPI description served under /swagger/.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "paths": {
        "/auth/login": {
            "post": {
                "tags": ["auth"], "summary": "Login",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/loginRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/loginResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/v1/me": {
            "get": {
                "security": [{"BearerAuth": []}], "tags": ["auth"], "summary": "Current account",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/accountResponse"}}}
            }
        },
        "/v1/notifications": {
            "get": {
                "security": [{"BearerAuth": []}], "tags": ["notifications"], "summary": "My notifications",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/listNotificationsResponse"}}}
            }
        },
        "/v1/accounts": {
            "get": {
                "security": [{"BearerAuth": []}], "tags": ["accounts"], "summary": "List all accounts",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/listAccountsResponse"}}}
            },
            "post": {
                "security": [{"BearerAuth": []}], "tags": ["accounts"], "summary": "Register an account",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/createAccountRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/accountResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/v1/accounts/{username}": {
            "put": {
                "security": [{"BearerAuth": []}], "tags": ["accounts"], "summary": "Change an account's role or password",
                "parameters": [
                    {"in": "path", "name": "username", "required": true, "type": "string"},
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/updateAccountRequest"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/accountResponse"}}}
            },
            "delete": {
                "security": [{"BearerAuth": []}], "tags": ["accounts"], "summary": "Delete an account",
                "parameters": [{"in": "path", "name": "username", "required": true, "type": "string"}],
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/v1/developers": {
            "get": {
                "security": [{"BearerAuth": []}], "tags": ["accounts"], "summary": "List developer accounts",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/listAccountsResponse"}}}
            }
        },
        "/v1/bugs": {
            "get": {
                "security": [{"BearerAuth": []}], "tags": ["bugs"], "summary": "List the bugs visible to the caller",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/listBugsResponse"}}}
            },
            "post": {
                "security": [{"BearerAuth": []}], "tags": ["bugs"], "summary": "Report a bug",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/reportBugRequest"}}],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/bugResponse"}}}
            }
        },
        "/v1/bugs/{id}": {
            "get": {
                "security": [{"BearerAuth": []}], "tags": ["bugs"], "summary": "Get a bug by id",
                "parameters": [{"in": "path", "name": "id", "required": true, "type": "integer"}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/bugViewResponse"}}}
            }
        },
        "/v1/bugs/{id}/assignee": {
            "put": {
                "security": [{"BearerAuth": []}], "tags": ["bugs"], "summary": "Assign a bug to a developer",
                "parameters": [
                    {"in": "path", "name": "id", "required": true, "type": "integer"},
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/assignBugRequest"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/bugResponse"}}}
            }
        },
        "/v1/bugs/{id}/status": {
            "put": {
                "security": [{"BearerAuth": []}], "tags": ["bugs"], "summary": "Change a bug's status",
                "parameters": [
                    {"in": "path", "name": "id", "required": true, "type": "integer"},
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/updateStatusRequest"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/bugResponse"}}}
            }
        },
        "/health": {"get": {"tags": ["health"], "summary": "Liveness probe", "responses": {"200": {"description": "OK"}}}},
        "/health/ready": {"get": {"tags": ["health"], "summary": "Readiness probe", "responses": {"200": {"description": "OK"}, "503": {"description": "Service Unavailable"}}}}
    },
    "definitions": {
        "errorResponse": {"type": "object", "properties": {"error": {"type": "string"}}},
        "loginRequest": {
            "type": "object", "required": ["username", "password"],
            "properties": {"username": {"type": "string"}, "password": {"type": "string"}}
        },
        "loginResponse": {
            "type": "object",
            "properties": {"token": {"type": "string"}, "account": {"$ref": "#/definitions/accountResponse"}}
        },
        "accountResponse": {
            "type": "object",
            "properties": {
                "username": {"type": "string"},
                "role": {"type": "string", "enum": ["administrator", "tester", "developer", "project_manager"]},
                "created_at": {"type": "string", "format": "date-time"},
                "updated_at": {"type": "string", "format": "date-time"}
            }
        },
        "listAccountsResponse": {
            "type": "object",
            "properties": {"data": {"type": "array", "items": {"$ref": "#/definitions/accountResponse"}}}
        },
        "createAccountRequest": {
            "type": "object", "required": ["username", "password", "role"],
            "properties": {
                "username": {"type": "string"},
                "password": {"type": "string"},
                "role": {"type": "string", "enum": ["administrator", "tester", "developer", "project_manager"]}
            }
        },
        "updateAccountRequest": {
            "type": "object", "required": ["role"],
            "properties": {
                "password": {"type": "string"},
                "role": {"type": "string", "enum": ["administrator", "tester", "developer", "project_manager"]}
            }
        },
        "reportBugRequest": {
            "type": "object", "required": ["title", "priority", "severity"],
            "properties": {
                "title": {"type": "string"},
                "category": {"type": "string"},
                "priority": {"type": "string", "enum": ["low", "medium", "high", "critical"]},
                "severity": {"type": "string", "enum": ["minor", "major", "blocker"]},
                "project": {"type": "string"},
                "attachment_path": {"type": "string"},
                "assigned_developer": {"type": "string"}
            }
        },
        "assignBugRequest": {
            "type": "object", "required": ["developer"],
            "properties": {"developer": {"type": "string"}}
        },
        "updateStatusRequest": {
            "type": "object", "required": ["status"],
            "properties": {"status": {"type": "string", "enum": ["open", "in_progress", "closed"]}}
        },
        "bugResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "title": {"type": "string"},
                "category": {"type": "string"},
                "priority": {"type": "string"},
                "severity": {"type": "string"},
                "status": {"type": "string"},
                "project": {"type": "string"},
                "created_at": {"type": "string", "format": "date-time"},
                "attachment_path": {"type": "string"},
                "assigned_developer": {"type": "string"},
                "reported_by": {"type": "string"}
            }
        },
        "bugViewResponse": {"$ref": "#/definitions/bugResponse"},
        "notificationResponse": {
            "type": "object",
            "properties": {
                "subject": {"type": "string"},
                "body": {"type": "string"},
                "sent_at": {"type": "string", "format": "date-time"}
            }
        },
        "listNotificationsResponse": {
            "type": "object",
            "properties": {"data": {"type": "array", "items": {"$ref": "#/definitions/notificationResponse"}}}
        },
        "listBugsResponse": {
            "type": "object",
            "properties": {"data": {"type": "array", "items": {"$ref": "#/definitions/bugViewResponse"}}}
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Bug Tracker API",
	Description:      "Accounts, bug reports, assignment and status tracking.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
