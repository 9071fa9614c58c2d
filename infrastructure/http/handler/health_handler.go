package handler

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/verdemed/verdemed/infrastructure/http/response"
)

type HealthHandler struct {
	db *sql.DB
}

func NewHealthHandler(db *sql.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

type healthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

func (h *HealthHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	res := healthResponse{Status: "ok", Database: "up"}
	statusCode := http.StatusOK

	if h.db != nil {
		if err := h.db.PingContext(ctx); err != nil {
			res.Status = "degraded"
			res.Database = "down"
			statusCode = http.StatusServiceUnavailable
		}
	}

	response.WriteJSON(w, statusCode, res)
}
