package server

import "time"

// AuditLogEntry captures one authenticated HTTP request for the audit
// trail. Entries are batched by the AuditManager and shipped to the
// broker by its workers.
type AuditLogEntry struct {
	Timestamp  time.Time `json:"timestamp"`
	UserID     string    `json:"user_id,omitempty"`
	EntityID   string    `json:"entity_id,omitempty"`
	Method     string    `json:"method"`
	Path       string    `json:"path"`
	Handler    string    `json:"handler"`
	StatusCode int       `json:"status_code"`
	Request    string    `json:"request,omitempty"`
	Response   string    `json:"response,omitempty"`
}
