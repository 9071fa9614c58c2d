package handler

import (
	"net/http"
	"strconv"

	"github.com/verdemed/verdemed/application/port/inbound"
	"github.com/verdemed/verdemed/domain/entity"
	"github.com/verdemed/verdemed/infrastructure/http/response"
)

type AdminHandler struct {
	auditUseCase inbound.AuditUseCase
}

func NewAdminHandler(auditUseCase inbound.AuditUseCase) *AdminHandler {
	return &AdminHandler{
		auditUseCase: auditUseCase,
	}
}

type auditLogListResponse struct {
	AuditLogs []*entity.AuditLog `json:"auditLogs"`
	Total     int                `json:"total"`
	Offset    int                `json:"offset"`
	Limit     int                `json:"limit"`
}

// ListAuditLogs pages through the audit trail, newest first.
func (h *AdminHandler) ListAuditLogs(w http.ResponseWriter, r *http.Request) {
	offset := queryInt(r, "offset", 0)
	limit := queryInt(r, "limit", 50)

	logs, total, err := h.auditUseCase.List(r.Context(), offset, limit)
	if err != nil {
		response.WriteError(w, err)
		return
	}

	if logs == nil {
		logs = []*entity.AuditLog{}
	}

	response.WriteJSON(w, http.StatusOK, auditLogListResponse{
		AuditLogs: logs,
		Total:     total,
		Offset:    offset,
		Limit:     limit,
	})
}

func queryInt(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}

	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return fallback
	}

	return value
}
