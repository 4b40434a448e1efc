// Package http provides the platform administration endpoints for feature flags.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"

	"github.com/attractionops/platform/internal/featureflag/http/dto"
	featureFlagUseCase "github.com/attractionops/platform/internal/featureflag/usecase"
	"github.com/attractionops/platform/internal/httputil"
	customValidation "github.com/attractionops/platform/internal/validation"
)

// FeatureFlagHandler handles feature flag administration. Routes are mounted
// behind the super admin gate.
type FeatureFlagHandler struct {
	flagUseCase featureFlagUseCase.FeatureFlagUseCase
	evaluator   featureFlagUseCase.Evaluator
	logger      *slog.Logger
}

// NewFeatureFlagHandler creates a new feature flag handler with required dependencies.
func NewFeatureFlagHandler(
	flagUseCase featureFlagUseCase.FeatureFlagUseCase,
	evaluator featureFlagUseCase.Evaluator,
	logger *slog.Logger,
) *FeatureFlagHandler {
	return &FeatureFlagHandler{
		flagUseCase: flagUseCase,
		evaluator:   evaluator,
		logger:      logger,
	}
}

// UpsertHandler creates or replaces a feature flag and drops cached definitions.
// PUT /v1/admin/feature-flags/:key
func (h *FeatureFlagHandler) UpsertHandler(c *gin.Context) {
	var req dto.UpsertFeatureFlagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}
	req.Key = c.Param("key")

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	flag, err := h.flagUseCase.Upsert(c.Request.Context(), req.ToInput())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	h.evaluator.ClearCache()
	h.logger.Info("feature flag updated",
		slog.String("key", flag.Key),
		slog.Bool("enabled", flag.Enabled),
		slog.Int("rollout_percentage", flag.RolloutPercentage))

	c.JSON(http.StatusOK, dto.MapFeatureFlagToResponse(flag))
}

// GetHandler retrieves a feature flag by key.
// GET /v1/admin/feature-flags/:key
func (h *FeatureFlagHandler) GetHandler(c *gin.Context) {
	flag, err := h.flagUseCase.Get(c.Request.Context(), c.Param("key"))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapFeatureFlagToResponse(flag))
}

// ListHandler lists feature flags ordered by key with offset/limit pagination.
// GET /v1/admin/feature-flags?offset=0&limit=50
func (h *FeatureFlagHandler) ListHandler(c *gin.Context) {
	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	flags, err := h.flagUseCase.List(c.Request.Context())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	page := lo.Subset(flags, offset, uint(limit)) //nolint:gosec // limit validated by ParsePagination
	c.JSON(http.StatusOK, dto.MapFeatureFlagsToListResponse(page, len(flags)))
}

// ClearCacheHandler drops every cached flag definition.
// POST /v1/admin/feature-flags/cache/clear
func (h *FeatureFlagHandler) ClearCacheHandler(c *gin.Context) {
	h.evaluator.ClearCache()
	h.logger.Info("feature flag cache cleared")
	c.Status(http.StatusNoContent)
}
