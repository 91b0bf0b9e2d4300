package rest

import (
	"context"
	"myFashionHub/domain"
	"myFashionHub/pkg/logger"
	"myFashionHub/pkg/metrics"
	"net/http"
	"strconv"
	"time"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type RecommendationService interface {
	Recommend(ctx context.Context, productID, userID uint64, limit int) ([]domain.Product, error)
	TrackView(ctx context.Context, userID, productID uint64, viewDuration int) error
}

type RecommendationHandler struct {
	recommendationService RecommendationService
	validator             *validator.Validate
	timeout               time.Duration
}

func NewRecommendationHandler(recommendationService RecommendationService) *RecommendationHandler {
	return &RecommendationHandler{
		recommendationService: recommendationService,
		validator:             validator.New(),
		timeout:               10 * time.Second,
	}
}

type TrackViewRequest struct {
	ViewDuration int `json:"view_duration" validate:"gte=0"`
}

// GetRecommendations serves related products for a reference product.
// Anonymous callers get catalog-only scoring.
func (h *RecommendationHandler) GetRecommendations(c echo.Context) error {
	productID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid product id"})
	}

	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 0 {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid limit"})
		}
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	metrics.RecommendationRequests.Inc()
	start := time.Now()

	recommendations, err := h.recommendationService.Recommend(ctx, productID, userIDFromContext(c), limit)
	if err != nil {
		logger.Error("failed to compute recommendations", "product_id", productID, "error", err)
		return c.JSON(statusForError(err), ResponseError{Message: err.Error()})
	}

	metrics.RecommendationLatency.Observe(time.Since(start).Seconds())

	return c.JSON(http.StatusOK, fres.Response.StatusOK(recommendations))
}

// TrackView records a product view for the caller's browsing history.
func (h *RecommendationHandler) TrackView(c echo.Context) error {
	productID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid product id"})
	}

	var req TrackViewRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validator.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	// Fire and forget: a history write failure should never surface
	// to the product page.
	if err := h.recommendationService.TrackView(ctx, userIDFromContext(c), productID, req.ViewDuration); err != nil {
		logger.Error("failed to track view", "product_id", productID, "error", err)
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated("view recorded"))
}
