package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Student Management System API",
        "description": "School management backend: users, grades, attendance, notifications, analytics",
        "version": "1.0.0"
    },
    "basePath": "/api",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Auth", "description": "Authentication"},
        {"name": "Users", "description": "Accounts and parent links"},
        {"name": "Grades", "description": "Grade records and GPA"},
        {"name": "Attendance", "description": "Daily attendance tracking"},
        {"name": "Notifications", "description": "Notification feed and delivery"},
        {"name": "Classes", "description": "Classes, subjects and enrollment"},
        {"name": "Analytics", "description": "School and class analytics"},
        {"name": "Parents", "description": "Parent portal"},
        {"name": "Reports", "description": "PDF and CSV exports"}
    ],
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "paths": {
        "/auth/login": {
            "post": {
                "tags": ["Auth"],
                "summary": "Authenticate and receive a token",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "Token and user", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Invalid credentials"}
                }
            }
        },
        "/auth/me": {
            "get": {
                "tags": ["Auth"],
                "summary": "Return the authenticated account",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "User", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/users": {
            "post": {
                "tags": ["Users"],
                "summary": "Create an account for any role",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateUserRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Email already registered"}
                }
            },
            "get": {
                "tags": ["Users"],
                "summary": "List accounts",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "role", "in": "query", "type": "string"},
                    {"name": "search", "in": "query", "type": "string"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "pageSize", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "Users", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/users/{id}": {
            "get": {
                "tags": ["Users"],
                "summary": "Fetch one account",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "User", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found"}
                }
            }
        },
        "/users/link-parent": {
            "post": {
                "tags": ["Users"],
                "summary": "Link a parent to a student",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LinkParentRequest"}}
                ],
                "responses": {
                    "200": {"description": "Linked"}
                }
            }
        },
        "/grades": {
            "post": {
                "tags": ["Grades"],
                "summary": "Record a grade for a student",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateGradeRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/grades/student/{id}": {
            "get": {
                "tags": ["Grades"],
                "summary": "List a student's grades with letters and points",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Grades", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/grades/student/{id}/gpa": {
            "get": {
                "tags": ["Grades"],
                "summary": "Unweighted GPA",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "GPA", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/grades/student/{id}/gpa/weighted": {
            "get": {
                "tags": ["Grades"],
                "summary": "Per-subject weighted GPA",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Weighted GPA", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/grades/student/{id}/summary": {
            "get": {
                "tags": ["Grades"],
                "summary": "Full academic summary",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Summary", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/attendance": {
            "post": {
                "tags": ["Attendance"],
                "summary": "Mark attendance for one student",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/MarkAttendanceRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/attendance/bulk": {
            "post": {
                "tags": ["Attendance"],
                "summary": "Mark attendance for a whole class",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "Per-student result", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/attendance/notify-absences": {
            "post": {
                "tags": ["Attendance"],
                "summary": "Notify parents of absences on a date",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "Delivery summary", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/attendance/date/{date}": {
            "get": {
                "tags": ["Attendance"],
                "summary": "Attendance records for a date",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "date", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Records", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/attendance/student/{id}/stats": {
            "get": {
                "tags": ["Attendance"],
                "summary": "Attendance counts and percentage for a student",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Stats", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/attendance/trends": {
            "get": {
                "tags": ["Attendance"],
                "summary": "Daily attendance rates over the trend window",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "Trends", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/notifications": {
            "post": {
                "tags": ["Notifications"],
                "summary": "Send a notification to one user",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "get": {
                "tags": ["Notifications"],
                "summary": "Recent notifications for the authenticated user",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "Feed", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Notifications"],
                "summary": "Clear the authenticated user's feed",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "Cleared count"}
                }
            }
        },
        "/notifications/announce": {
            "post": {
                "tags": ["Notifications"],
                "summary": "Broadcast an announcement",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "Delivery summary", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/notifications/unread": {
            "get": {
                "tags": ["Notifications"],
                "summary": "Unread notifications",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "Unread", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/notifications/{id}/read": {
            "patch": {
                "tags": ["Notifications"],
                "summary": "Mark one notification read",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Marked"}
                }
            }
        },
        "/classes": {
            "post": {
                "tags": ["Classes"],
                "summary": "Create a class",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "get": {
                "tags": ["Classes"],
                "summary": "List classes",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "Classes", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/classes/{id}/students": {
            "post": {
                "tags": ["Classes"],
                "summary": "Enroll a student",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Enrolled"}
                }
            },
            "get": {
                "tags": ["Classes"],
                "summary": "Class roster",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Roster", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/analytics/dashboard": {
            "get": {
                "tags": ["Analytics"],
                "summary": "School-wide dashboard snapshot",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "Dashboard", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/analytics/top-students": {
            "get": {
                "tags": ["Analytics"],
                "summary": "Ranked students by average score",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "Top students", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/analytics/at-risk": {
            "get": {
                "tags": ["Analytics"],
                "summary": "Students flagged for low grades or frequent absences",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "At-risk students", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/parent/children": {
            "get": {
                "tags": ["Parents"],
                "summary": "List students linked to the authenticated parent",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "Children", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/parent/children/{id}/overview": {
            "get": {
                "tags": ["Parents"],
                "summary": "Combined GPA, attendance and recent grades for a linked child",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Overview", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Not linked to this student"}
                }
            }
        },
        "/reports/student/{id}/report-card": {
            "get": {
                "tags": ["Reports"],
                "summary": "Download a student's report card as PDF",
                "security": [{"BearerAuth": []}],
                "produces": ["application/pdf"],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "PDF file"}
                }
            }
        },
        "/reports/attendance/{date}": {
            "get": {
                "tags": ["Reports"],
                "summary": "Download attendance for a date as CSV",
                "security": [{"BearerAuth": []}],
                "produces": ["text/csv"],
                "parameters": [
                    {"name": "date", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "CSV file"}
                }
            }
        }
    },
    "definitions": {
        "LoginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "CreateUserRequest": {
            "type": "object",
            "required": ["name", "email", "password", "role"],
            "properties": {
                "name": {"type": "string"},
                "email": {"type": "string"},
                "password": {"type": "string"},
                "role": {"type": "string", "enum": ["ADMIN", "TEACHER", "STUDENT", "PARENT"]},
                "parentId": {"type": "string"}
            }
        },
        "LinkParentRequest": {
            "type": "object",
            "required": ["studentId", "parentId"],
            "properties": {
                "studentId": {"type": "string"},
                "parentId": {"type": "string"}
            }
        },
        "CreateGradeRequest": {
            "type": "object",
            "required": ["studentId", "subject", "score"],
            "properties": {
                "studentId": {"type": "string"},
                "subject": {"type": "string"},
                "score": {"type": "number", "minimum": 0, "maximum": 100},
                "weight": {"type": "number"},
                "assessmentType": {"type": "string", "enum": ["EXAM", "QUIZ", "HOMEWORK", "PROJECT"]}
            }
        },
        "MarkAttendanceRequest": {
            "type": "object",
            "required": ["studentId", "date", "status"],
            "properties": {
                "studentId": {"type": "string"},
                "date": {"type": "string", "format": "date"},
                "status": {"type": "string", "enum": ["PRESENT", "ABSENT", "LATE"]}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "pageSize": {"type": "integer"},
                "total": {"type": "integer"},
                "totalPages": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "pagination": {"$ref": "#/definitions/Pagination"},
                "meta": {"type": "object"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
