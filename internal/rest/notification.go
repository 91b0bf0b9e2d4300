package rest

import (
	"context"
	"myFashionHub/business/notification"
	"myFashionHub/domain"
	"myFashionHub/pkg/logger"
	"net/http"
	"time"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type NotificationService interface {
	Register(ctx context.Context, userID uint64, token, platform, deviceID, deviceName string) (domain.DeviceToken, error)
	Unregister(ctx context.Context, userID uint64, token string) error
	UpdatePreferences(ctx context.Context, userID uint64, offers, orderUpdates, cartReminders bool) error
	GetUserTokens(ctx context.Context, userID uint64) ([]domain.DeviceToken, error)
	DispatchOffer(ctx context.Context, userID uint64, title, body string) (notification.DispatchSummary, error)
	DispatchCartReminder(ctx context.Context, userID uint64, bagRepo notification.UserBagRepository) (notification.DispatchSummary, error)
	CheckAbandonment(ctx context.Context, bagRepo notification.StaleBagRepository) (notification.AbandonmentSummary, error)
}

// NotificationBagRepository is the slice of the bag store the reminder
// paths need.
type NotificationBagRepository interface {
	notification.StaleBagRepository
	notification.UserBagRepository
}

type NotificationHandler struct {
	notificationService NotificationService
	bagRepo             NotificationBagRepository
	validator           *validator.Validate
	timeout             time.Duration
}

func NewNotificationHandler(notificationService NotificationService, bagRepo NotificationBagRepository) *NotificationHandler {
	return &NotificationHandler{
		notificationService: notificationService,
		bagRepo:             bagRepo,
		validator:           validator.New(),
		timeout:             30 * time.Second,
	}
}

type RegisterTokenRequest struct {
	Token      string `json:"token" validate:"required"`
	Platform   string `json:"platform" validate:"required,oneof=ios android web"`
	DeviceID   string `json:"device_id"`
	DeviceName string `json:"device_name"`
}

type UnregisterTokenRequest struct {
	Token string `json:"token" validate:"required"`
}

type UpdatePreferencesRequest struct {
	Offers        *bool `json:"offers" validate:"required"`
	OrderUpdates  *bool `json:"order_updates" validate:"required"`
	CartReminders *bool `json:"cart_reminders" validate:"required"`
}

type SendOfferRequest struct {
	UserID uint64 `json:"user_id" validate:"required"`
	Title  string `json:"title" validate:"required"`
	Body   string `json:"body" validate:"required"`
}

func (h *NotificationHandler) RegisterToken(c echo.Context) error {
	var req RegisterTokenRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validator.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	dt, err := h.notificationService.Register(ctx, userIDFromContext(c), req.Token, req.Platform, req.DeviceID, req.DeviceName)
	if err != nil {
		logger.Error("failed to register device token", "error", err)
		return c.JSON(statusForError(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated(dt))
}

func (h *NotificationHandler) UnregisterToken(c echo.Context) error {
	var req UnregisterTokenRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validator.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.notificationService.Unregister(ctx, userIDFromContext(c), req.Token); err != nil {
		logger.Error("failed to unregister device token", "error", err)
		return c.JSON(statusForError(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK("token unregistered"))
}

func (h *NotificationHandler) UpdatePreferences(c echo.Context) error {
	var req UpdatePreferencesRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validator.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	err := h.notificationService.UpdatePreferences(ctx, userIDFromContext(c), *req.Offers, *req.OrderUpdates, *req.CartReminders)
	if err != nil {
		logger.Error("failed to update notification preferences", "error", err)
		return c.JSON(statusForError(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK("preferences updated"))
}

func (h *NotificationHandler) GetUserTokens(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	tokens, err := h.notificationService.GetUserTokens(ctx, userIDFromContext(c))
	if err != nil {
		logger.Error("failed to list device tokens", "error", err)
		return c.JSON(statusForError(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(tokens))
}

// SendOffer pushes a promotional notification to one user. Admin only.
func (h *NotificationHandler) SendOffer(c echo.Context) error {
	var req SendOfferRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validator.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	summary, err := h.notificationService.DispatchOffer(ctx, req.UserID, req.Title, req.Body)
	if err != nil {
		logger.Error("failed to send offer", "user_id", req.UserID, "error", err)
		return c.JSON(statusForError(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(summary))
}

// RemindCart sends the caller a reminder about their current bag.
func (h *NotificationHandler) RemindCart(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	summary, err := h.notificationService.DispatchCartReminder(ctx, userIDFromContext(c), h.bagRepo)
	if err != nil {
		logger.Error("failed to send cart reminder", "error", err)
		return c.JSON(statusForError(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(summary))
}

// RunCartReminders triggers one abandonment sweep. Admin only; in
// production a scheduler calls this.
func (h *NotificationHandler) RunCartReminders(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	summary, err := h.notificationService.CheckAbandonment(ctx, h.bagRepo)
	if err != nil {
		logger.Error("cart reminder sweep failed", "error", err)
		return c.JSON(statusForError(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(summary))
}
