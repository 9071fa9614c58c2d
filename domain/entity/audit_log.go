package entity

import (
	"time"
)

// AuditLog is append-only; rows are never updated or deleted by the
// application.
type AuditLog struct {
	ID          string    `json:"id"`
	ActorUserID *string   `json:"actorUserId"`
	Action      string    `json:"action"`
	EntityType  string    `json:"entityType"`
	EntityID    *string   `json:"entityId"`
	IPAddress   *string   `json:"ipAddress"`
	UserAgent   *string   `json:"userAgent"`
	CreatedAt   time.Time `json:"createdAt"`
}
