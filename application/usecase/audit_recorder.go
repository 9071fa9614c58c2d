package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/verdemed/verdemed/application/port/inbound"
	"github.com/verdemed/verdemed/application/port/outbound"
	"github.com/verdemed/verdemed/domain/entity"
	"github.com/verdemed/verdemed/infrastructure/service/logger"
)

// AuditRecorder appends compliance records for security-relevant actions.
// Failures are real errors to every caller except the registration saga,
// which treats the audit step as best-effort.
type AuditRecorder struct {
	auditRepo outbound.AuditLogRepository
	logger    logger.Logger
}

func NewAuditRecorder(auditRepo outbound.AuditLogRepository, log logger.Logger) inbound.AuditUseCase {
	return &AuditRecorder{auditRepo: auditRepo, logger: log}
}

func (r *AuditRecorder) Record(ctx context.Context, req inbound.RecordAuditRequest) (*entity.AuditLog, error) {
	log := &entity.AuditLog{
		ID:          uuid.NewString(),
		ActorUserID: optional(req.ActorUserID),
		Action:      req.Action,
		EntityType:  req.EntityType,
		EntityID:    optional(req.EntityID),
		IPAddress:   optional(req.IPAddress),
		UserAgent:   optional(req.UserAgent),
		CreatedAt:   time.Now().UTC(),
	}

	if err := r.auditRepo.Create(ctx, log); err != nil {
		r.logger.Error(ctx, "Failed to create audit log", err, map[string]interface{}{
			"action":      req.Action,
			"entity_type": req.EntityType,
		})
		return nil, fmt.Errorf("failed to create audit log: %w", err)
	}

	return log, nil
}

func (r *AuditRecorder) List(ctx context.Context, offset, limit int) ([]*entity.AuditLog, int, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return r.auditRepo.FindAll(ctx, offset, limit)
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
