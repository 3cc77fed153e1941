package handler

import (
	"github.com/amoylab/leavehub/internal/apiserver/database"
	"github.com/amoylab/leavehub/internal/auth/jwt"
	"github.com/amoylab/leavehub/internal/common/config"
	"github.com/amoylab/leavehub/pkg/metrics"
	"go.uber.org/zap"
)

// Handler bundles the dependencies shared by the HTTP handlers
type Handler struct {
	db         database.Database
	jwtService *jwt.Service
	cfg        *config.APIServerConfig
	logger     *zap.Logger
	metrics    *metrics.Metrics
}

// NewHandler creates a new handler
func NewHandler(db database.Database, jwtService *jwt.Service, cfg *config.APIServerConfig, logger *zap.Logger) *Handler {
	return &Handler{
		db:         db,
		jwtService: jwtService,
		cfg:        cfg,
		logger:     logger,
	}
}

// WithMetrics attaches a metrics registry to the handler
func (h *Handler) WithMetrics(m *metrics.Metrics) *Handler {
	h.metrics = m
	return h
}
