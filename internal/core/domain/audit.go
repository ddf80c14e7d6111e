package domain

import "time"

// Audit decisions. A permitted mutation is recorded when the Guard admits it,
// before the service validates input or writes, so AuditAuthorized says the
// caller was allowed to attempt the change, not that the change happened.
const (
	AuditAuthorized = "authorized"
	AuditDenied     = "denied"
)

// AuditEvent records one authorization decision worth keeping: every denial
// and every permitted mutation.
type AuditEvent struct {
	ID         string    `json:"id"                   bson:"_id"`
	ActorID    string    `json:"actorId"              bson:"actor_id"`
	ActorRole  Role      `json:"actorRole"            bson:"actor_role"`
	Action     string    `json:"action"               bson:"action"`
	TargetID   string    `json:"targetId,omitempty"   bson:"target_id,omitempty"`
	Decision   string    `json:"decision"             bson:"decision"`
	Reason     string    `json:"reason,omitempty"     bson:"reason,omitempty"`
	OccurredAt time.Time `json:"occurredAt"           bson:"occurred_at"`
}
