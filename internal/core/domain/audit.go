package domain

import "time"

// AuditAction identifies what a session did.
type AuditAction string

const (
	AuditLogin           AuditAction = "login"
	AuditRegister        AuditAction = "register"
	AuditLogout          AuditAction = "logout"
	AuditResumeFailed    AuditAction = "resume_failed"
	AuditGateDenied      AuditAction = "gate_denied"
	AuditWorkspaceSwitch AuditAction = "workspace_switch"
)

// AuditEvent records a single session-level action for the audit trail.
type AuditEvent struct {
	SessionID   string      `json:"session_id"`
	IdentityID  string      `json:"identity_id,omitempty"`
	Role        Role        `json:"role,omitempty"`
	Action      AuditAction `json:"action"`
	WorkspaceID string      `json:"workspace_id,omitempty"`
	Path        string      `json:"path,omitempty"`
	Timestamp   time.Time   `json:"timestamp"`
}
