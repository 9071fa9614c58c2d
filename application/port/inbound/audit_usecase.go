package inbound

import (
	"context"

	"github.com/verdemed/verdemed/domain/entity"
)

type RecordAuditRequest struct {
	ActorUserID string
	Action      string
	EntityType  string
	EntityID    string
	IPAddress   string
	UserAgent   string
}

type AuditUseCase interface {
	Record(ctx context.Context, req RecordAuditRequest) (*entity.AuditLog, error)
	List(ctx context.Context, offset, limit int) ([]*entity.AuditLog, int, error)
}
