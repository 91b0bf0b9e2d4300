package rest

import (
	"context"
	"myFashionHub/business/transactions"
	"myFashionHub/domain"
	"myFashionHub/pkg/logger"
	"net/http"
	"strconv"
	"time"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type TransactionsService interface {
	ListTransactions(ctx context.Context, userID uint64, filter domain.TransactionFilter) (transactions.TransactionPage, error)
	GetTransaction(ctx context.Context, userID, id uint64) (domain.Transaction, error)
	CreateTransaction(ctx context.Context, trx domain.Transaction) (domain.Transaction, error)
	UpdateStatus(ctx context.Context, userID, id uint64, status string) (domain.Transaction, error)
}

type TransactionHandler struct {
	transactionsService TransactionsService
	validator           *validator.Validate
	timeout             time.Duration
}

func NewTransactionHandler(transactionsService TransactionsService) *TransactionHandler {
	return &TransactionHandler{
		transactionsService: transactionsService,
		validator:           validator.New(),
		timeout:             10 * time.Second,
	}
}

type CreateTransactionRequest struct {
	Type          string  `json:"type" validate:"required,oneof=Online COD Refund"`
	Amount        float64 `json:"amount" validate:"required,gt=0"`
	PaymentMethod string  `json:"payment_method" validate:"required"`
	Description   string  `json:"description"`
	OrderID       *uint64 `json:"order_id"`
}

type UpdateTransactionStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=Completed Pending Failed Refunded"`
}

func (h *TransactionHandler) ListTransactions(c echo.Context) error {
	filter := domain.TransactionFilter{
		Type:      c.QueryParam("type"),
		Status:    c.QueryParam("status"),
		SortBy:    c.QueryParam("sort_by"),
		SortOrder: c.QueryParam("sort_order"),
	}

	if raw := c.QueryParam("page"); raw != "" {
		if page, err := strconv.Atoi(raw); err == nil {
			filter.Page = page
		}
	}
	if raw := c.QueryParam("limit"); raw != "" {
		if limit, err := strconv.Atoi(raw); err == nil {
			filter.Limit = limit
		}
	}
	if raw := c.QueryParam("start_date"); raw != "" {
		if t, err := time.Parse("2006-01-02", raw); err == nil {
			filter.StartDate = &t
		}
	}
	if raw := c.QueryParam("end_date"); raw != "" {
		if t, err := time.Parse("2006-01-02", raw); err == nil {
			filter.EndDate = &t
		}
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	page, err := h.transactionsService.ListTransactions(ctx, userIDFromContext(c), filter)
	if err != nil {
		logger.Error("failed to list transactions", "error", err)
		return c.JSON(statusForError(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(page))
}

func (h *TransactionHandler) GetTransaction(c echo.Context) error {
	trxID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid transaction id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	trx, err := h.transactionsService.GetTransaction(ctx, userIDFromContext(c), trxID)
	if err != nil {
		logger.Error("failed to get transaction", "transaction_id", trxID, "error", err)
		return c.JSON(statusForError(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(trx))
}

func (h *TransactionHandler) CreateTransaction(c echo.Context) error {
	var req CreateTransactionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validator.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	trx, err := h.transactionsService.CreateTransaction(ctx, domain.Transaction{
		UserID:        userIDFromContext(c),
		OrderID:       req.OrderID,
		Type:          req.Type,
		Amount:        req.Amount,
		PaymentMethod: req.PaymentMethod,
		Description:   req.Description,
	})
	if err != nil {
		logger.Error("failed to create transaction", "error", err)
		return c.JSON(statusForError(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated(trx))
}

func (h *TransactionHandler) UpdateStatus(c echo.Context) error {
	trxID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid transaction id"})
	}

	var req UpdateTransactionStatusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validator.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	trx, err := h.transactionsService.UpdateStatus(ctx, userIDFromContext(c), trxID, req.Status)
	if err != nil {
		logger.Error("failed to update transaction status", "transaction_id", trxID, "error", err)
		return c.JSON(statusForError(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(trx))
}
