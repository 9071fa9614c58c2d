package outbound

import (
	"context"

	"github.com/verdemed/verdemed/domain/entity"
)

type AuditLogRepository interface {
	Create(ctx context.Context, log *entity.AuditLog) error
	FindAll(ctx context.Context, offset, limit int) ([]*entity.AuditLog, int, error)
}
