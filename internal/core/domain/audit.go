package domain

import "time"

// AuditEntry records a single privileged mutation applied to an account.
type AuditEntry struct {
	AccountID string    `bson:"account_id"`
	AdminID   string    `bson:"admin_id"`
	Action    string    `bson:"action"`
	Detail    string    `bson:"detail,omitempty"`
	Timestamp time.Time `bson:"timestamp"`
}
