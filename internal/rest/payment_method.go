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

type PaymentsService interface {
	AddPaymentMethod(ctx context.Context, userID uint64, pm domain.PaymentMethod) (domain.PaymentMethod, error)
	ListPaymentMethods(ctx context.Context, userID uint64) ([]domain.PaymentMethod, error)
	SetDefault(ctx context.Context, userID, id uint64) error
	RemovePaymentMethod(ctx context.Context, userID, id uint64) error
}

type PaymentMethodHandler struct {
	paymentsService PaymentsService
	validator       *validator.Validate
	timeout         time.Duration
}

func NewPaymentMethodHandler(paymentsService PaymentsService) *PaymentMethodHandler {
	return &PaymentMethodHandler{
		paymentsService: paymentsService,
		validator:       validator.New(),
		timeout:         10 * time.Second,
	}
}

type AddPaymentMethodRequest struct {
	Type      string `json:"type" validate:"required,oneof=card upi netbanking wallet"`
	Nickname  string `json:"nickname" validate:"max=50"`
	IsDefault bool   `json:"is_default"`

	Card       *domain.CardDetails       `json:"card_details"`
	UPI        *domain.UPIDetails        `json:"upi_details"`
	NetBanking *domain.NetBankingDetails `json:"netbanking_details"`
	Wallet     *domain.WalletDetails     `json:"wallet_details"`
}

func (h *PaymentMethodHandler) AddPaymentMethod(c echo.Context) error {
	var req AddPaymentMethodRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validator.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	pm, err := h.paymentsService.AddPaymentMethod(ctx, userIDFromContext(c), domain.PaymentMethod{
		Type:       req.Type,
		Nickname:   req.Nickname,
		IsDefault:  req.IsDefault,
		Card:       req.Card,
		UPI:        req.UPI,
		NetBanking: req.NetBanking,
		Wallet:     req.Wallet,
	})
	if err != nil {
		logger.Error("failed to add payment method", "error", err)
		// Variant validation failures are caller errors.
		if statusForError(err) == http.StatusInternalServerError {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		}
		return c.JSON(statusForError(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated(pm))
}

func (h *PaymentMethodHandler) ListPaymentMethods(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	methods, err := h.paymentsService.ListPaymentMethods(ctx, userIDFromContext(c))
	if err != nil {
		logger.Error("failed to list payment methods", "error", err)
		return c.JSON(statusForError(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(methods))
}

func (h *PaymentMethodHandler) SetDefault(c echo.Context) error {
	pmID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid payment method id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.paymentsService.SetDefault(ctx, userIDFromContext(c), pmID); err != nil {
		logger.Error("failed to set default payment method", "payment_method_id", pmID, "error", err)
		return c.JSON(statusForError(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK("default payment method updated"))
}

func (h *PaymentMethodHandler) RemovePaymentMethod(c echo.Context) error {
	pmID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid payment method id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.paymentsService.RemovePaymentMethod(ctx, userIDFromContext(c), pmID); err != nil {
		logger.Error("failed to remove payment method", "payment_method_id", pmID, "error", err)
		return c.JSON(statusForError(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK("payment method removed"))
}
