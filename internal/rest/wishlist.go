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

type WishlistService interface {
	Toggle(ctx context.Context, userID, productID uint64) (string, uint64, error)
	GetWishlist(ctx context.Context, userID uint64) ([]domain.WishlistItem, error)
	Check(ctx context.Context, userID, productID uint64) (bool, uint64, error)
	RemoveItem(ctx context.Context, userID, productID uint64) error
}

type WishlistHandler struct {
	wishlistService WishlistService
	validator       *validator.Validate
	timeout         time.Duration
}

func NewWishlistHandler(wishlistService WishlistService) *WishlistHandler {
	return &WishlistHandler{
		wishlistService: wishlistService,
		validator:       validator.New(),
		timeout:         10 * time.Second,
	}
}

type ToggleWishlistRequest struct {
	ProductID uint64 `json:"product_id" validate:"required"`
}

func (h *WishlistHandler) Toggle(c echo.Context) error {
	var req ToggleWishlistRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validator.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	outcome, itemID, err := h.wishlistService.Toggle(ctx, userIDFromContext(c), req.ProductID)
	if err != nil {
		logger.Error("failed to toggle wishlist", "product_id", req.ProductID, "error", err)
		return c.JSON(statusForError(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(map[string]any{
		"outcome": outcome,
		"item_id": itemID,
	}))
}

func (h *WishlistHandler) GetWishlist(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	items, err := h.wishlistService.GetWishlist(ctx, userIDFromContext(c))
	if err != nil {
		logger.Error("failed to get wishlist", "error", err)
		return c.JSON(statusForError(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(items))
}

func (h *WishlistHandler) Check(c echo.Context) error {
	productID, err := strconv.ParseUint(c.Param("productId"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid product id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	wishlisted, itemID, err := h.wishlistService.Check(ctx, userIDFromContext(c), productID)
	if err != nil {
		logger.Error("failed to check wishlist", "product_id", productID, "error", err)
		return c.JSON(statusForError(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(map[string]any{
		"wishlisted": wishlisted,
		"item_id":    itemID,
	}))
}

func (h *WishlistHandler) RemoveItem(c echo.Context) error {
	productID, err := strconv.ParseUint(c.Param("productId"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid product id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.wishlistService.RemoveItem(ctx, userIDFromContext(c), productID); err != nil {
		logger.Error("failed to remove wishlist item", "product_id", productID, "error", err)
		return c.JSON(statusForError(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK("item removed"))
}
