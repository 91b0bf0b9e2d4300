package rest

import (
	"context"
	"myFashionHub/domain"
	"myFashionHub/pkg/logger"
	"net/http"
	"strconv"
	"time"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type BagService interface {
	AddToBag(ctx context.Context, userID, productID uint64, size string, quantity int) (domain.BagItem, string, error)
	UpdateQuantity(ctx context.Context, userID, itemID uint64, quantity int) (domain.BagItem, string, error)
	RemoveItem(ctx context.Context, userID, itemID uint64) error
	GetBag(ctx context.Context, userID uint64) ([]domain.BagItem, error)
}

type BagHandler struct {
	bagService BagService
	validator  *validator.Validate
	timeout    time.Duration
}

func NewBagHandler(bagService BagService) *BagHandler {
	return &BagHandler{
		bagService: bagService,
		validator:  validator.New(),
		timeout:    10 * time.Second,
	}
}

type AddToBagRequest struct {
	ProductID uint64 `json:"product_id" validate:"required"`
	Size      string `json:"size"`
	Quantity  int    `json:"quantity" validate:"gte=0"`
}

type UpdateBagItemRequest struct {
	Quantity int `json:"quantity"`
}

type bagMutationResponse struct {
	Outcome string          `json:"outcome"`
	Item    *domain.BagItem `json:"item,omitempty"`
}

func (h *BagHandler) AddToBag(c echo.Context) error {
	var req AddToBagRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validator.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	item, outcome, err := h.bagService.AddToBag(ctx, userIDFromContext(c), req.ProductID, req.Size, req.Quantity)
	if err != nil {
		logger.Error("failed to add to bag", "product_id", req.ProductID, "error", err)
		return c.JSON(statusForError(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(bagMutationResponse{Outcome: outcome, Item: &item}))
}

func (h *BagHandler) GetBag(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	items, err := h.bagService.GetBag(ctx, userIDFromContext(c))
	if err != nil {
		logger.Error("failed to get bag", "error", err)
		return c.JSON(statusForError(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(items))
}

func (h *BagHandler) UpdateItem(c echo.Context) error {
	itemID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid bag item id"})
	}

	var req UpdateBagItemRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	item, outcome, err := h.bagService.UpdateQuantity(ctx, userIDFromContext(c), itemID, req.Quantity)
	if err != nil {
		logger.Error("failed to update bag item", "item_id", itemID, "error", err)
		return c.JSON(statusForError(err), ResponseError{Message: err.Error()})
	}

	resp := bagMutationResponse{Outcome: outcome}
	if outcome != "removed" {
		resp.Item = &item
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(resp))
}

func (h *BagHandler) RemoveItem(c echo.Context) error {
	itemID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid bag item id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.bagService.RemoveItem(ctx, userIDFromContext(c), itemID); err != nil {
		logger.Error("failed to remove bag item", "item_id", itemID, "error", err)
		return c.JSON(statusForError(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK("item removed"))
}
