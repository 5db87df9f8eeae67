package domain

import "time"

// AuthAction identifies the auth operation an audit event records.
type AuthAction string

const (
	AuditRegister AuthAction = "register"
	AuditLogin    AuthAction = "login"
	AuditRefresh  AuthAction = "refresh"
	AuditLogout   AuthAction = "logout"
)

// AuthEvent is an audit-trail record of an auth operation outcome.
// Username is set whenever the caller presented one; UserID is set once
// the subject is resolved, so failure paths that only know the stored
// user id (expired or raced refresh tokens) still attribute correctly.
type AuthEvent struct {
	Username  string     `json:"username,omitempty"`
	UserID    string     `json:"user_id,omitempty"`
	Action    AuthAction `json:"action"`
	Success   bool       `json:"success"`
	Detail    string     `json:"detail,omitempty"`
	Timestamp time.Time  `json:"timestamp"`
}
