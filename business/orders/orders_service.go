package orders

import (
	"context"
	"encoding/json"
	"fmt"
	"myFashionHub/business/notification"
	"myFashionHub/domain"
	"myFashionHub/pkg/logger"
	"time"
)

type OrdersRepository interface {
	PlaceOrder(ctx context.Context, order *domain.Order, trx *domain.Transaction) error
	FindByID(ctx context.Context, id uint64) (domain.Order, error)
	FindByUser(ctx context.Context, userID uint64) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, id uint64, status string) error
}

type BagRepository interface {
	FindByUser(ctx context.Context, userID uint64) ([]domain.BagItem, error)
}

type ProductRepository interface {
	FindByIDs(ctx context.Context, ids []uint64) (map[uint64]domain.Product, error)
}

type Notifier interface {
	DispatchOrderUpdate(ctx context.Context, userID, orderID uint64, status string) (notification.DispatchSummary, error)
}

type Mailer interface {
	SendEmail(toName, toEmail, subject, message string) error
}

type PlaceOrderInput struct {
	ShippingAddress string
	PaymentMethod   string
	PaymentType     string // domain.TransactionTypeOnline or TransactionTypeCOD
	ContactName     string
	ContactEmail    string
}

type OrdersService struct {
	ordersRepo  OrdersRepository
	bagRepo     BagRepository
	productRepo ProductRepository
	notifier    Notifier
	mailer      Mailer
	now         func() time.Time
}

func NewOrdersService(
	ordersRepo OrdersRepository,
	bagRepo BagRepository,
	productRepo ProductRepository,
	notifier Notifier,
	mailer Mailer,
) *OrdersService {
	return &OrdersService{
		ordersRepo:  ordersRepo,
		bagRepo:     bagRepo,
		productRepo: productRepo,
		notifier:    notifier,
		mailer:      mailer,
		now:         time.Now,
	}
}

// PlaceOrder turns the user's bag into an order. The order, its payment
// transaction, and the bag clear commit in one storage transaction, so
// a failure anywhere leaves the bag untouched. Line prices snapshot the
// catalog at placement time. Push and email confirmations run after the
// commit and are best effort.
func (s *OrdersService) PlaceOrder(ctx context.Context, userID uint64, input PlaceOrderInput) (domain.Order, error) {
	if err := ctx.Err(); err != nil {
		return domain.Order{}, fmt.Errorf("context error: %w", err)
	}

	bagItems, err := s.bagRepo.FindByUser(ctx, userID)
	if err != nil {
		return domain.Order{}, err
	}
	if len(bagItems) == 0 {
		return domain.Order{}, domain.ErrEmptyBag
	}

	productIDs := make([]uint64, 0, len(bagItems))
	for _, item := range bagItems {
		productIDs = append(productIDs, item.ProductID)
	}
	products, err := s.productRepo.FindByIDs(ctx, productIDs)
	if err != nil {
		return domain.Order{}, fmt.Errorf("load bag products: %w", err)
	}

	var total float64
	orderItems := make([]domain.OrderItem, 0, len(bagItems))
	for _, item := range bagItems {
		product, ok := products[item.ProductID]
		if !ok {
			return domain.Order{}, fmt.Errorf("bag references missing product %d: %w", item.ProductID, domain.ErrNotFound)
		}
		total += product.Price * float64(item.Quantity)
		orderItems = append(orderItems, domain.OrderItem{
			ProductID: item.ProductID,
			Size:      item.Size,
			Price:     product.Price,
			Quantity:  item.Quantity,
		})
	}

	tracking, err := json.Marshal(s.generateTracking())
	if err != nil {
		return domain.Order{}, fmt.Errorf("marshal tracking: %w", err)
	}

	order := domain.Order{
		UserID:          userID,
		Status:          domain.OrderStatusProcessing,
		Total:           total,
		ShippingAddress: input.ShippingAddress,
		PaymentMethod:   input.PaymentMethod,
		Tracking:        tracking,
		Items:           orderItems,
	}

	trx := s.buildTransaction(userID, total, input)

	if err := s.ordersRepo.PlaceOrder(ctx, &order, &trx); err != nil {
		return domain.Order{}, err
	}

	s.confirmOrder(ctx, order, input)

	return order, nil
}

// buildTransaction records the payment leg. Online payments settle
// immediately and get a receipt; cash on delivery stays pending until
// delivery.
func (s *OrdersService) buildTransaction(userID uint64, total float64, input PlaceOrderInput) domain.Transaction {
	trx := domain.Transaction{
		UserID:        userID,
		TransactionID: domain.NewTransactionRef(),
		Type:          input.PaymentType,
		Amount:        total,
		PaymentMethod: input.PaymentMethod,
		Description:   "Order payment",
	}

	if input.PaymentType == domain.TransactionTypeCOD {
		trx.Status = domain.TransactionStatusPending
	} else {
		trx.Status = domain.TransactionStatusCompleted
		trx.ReceiptNumber = domain.NewReceiptNumber()
	}

	return trx
}

func (s *OrdersService) confirmOrder(ctx context.Context, order domain.Order, input PlaceOrderInput) {
	if s.notifier != nil {
		if _, err := s.notifier.DispatchOrderUpdate(ctx, order.UserID, order.ID, order.Status); err != nil {
			logger.Warn("order confirmation push failed", "order_id", order.ID, "error", err)
		}
	}

	if s.mailer != nil && input.ContactEmail != "" {
		subject := fmt.Sprintf("Order #%d confirmed", order.ID)
		message := fmt.Sprintf(
			"Hi %s,\n\nYour order #%d for ₹%.2f has been placed and is now %s.\n\nThank you for shopping with us!",
			input.ContactName, order.ID, order.Total, order.Status,
		)
		if err := s.mailer.SendEmail(input.ContactName, input.ContactEmail, subject, message); err != nil {
			logger.Warn("order receipt email failed", "order_id", order.ID, "error", err)
		}
	}
}

func (s *OrdersService) GetOrder(ctx context.Context, userID, orderID uint64) (domain.Order, error) {
	if err := ctx.Err(); err != nil {
		return domain.Order{}, fmt.Errorf("context error: %w", err)
	}

	order, err := s.ordersRepo.FindByID(ctx, orderID)
	if err != nil {
		return domain.Order{}, err
	}
	if order.UserID != userID {
		return domain.Order{}, domain.ErrNotFound
	}

	return order, nil
}

func (s *OrdersService) GetUserOrders(ctx context.Context, userID uint64) ([]domain.Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	return s.ordersRepo.FindByUser(ctx, userID)
}

// UpdateStatus moves an order along the fulfillment pipeline and pushes
// the change to the owner's devices.
func (s *OrdersService) UpdateStatus(ctx context.Context, orderID uint64, status string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if !validOrderStatus(status) {
		return fmt.Errorf("unknown order status %q", status)
	}

	order, err := s.ordersRepo.FindByID(ctx, orderID)
	if err != nil {
		return err
	}

	if err := s.ordersRepo.UpdateStatus(ctx, orderID, status); err != nil {
		return err
	}

	if s.notifier != nil {
		if _, err := s.notifier.DispatchOrderUpdate(ctx, order.UserID, orderID, status); err != nil {
			logger.Warn("order status push failed", "order_id", orderID, "error", err)
		}
	}

	return nil
}

func validOrderStatus(status string) bool {
	switch status {
	case domain.OrderStatusProcessing,
		domain.OrderStatusShipped,
		domain.OrderStatusOutForDelivery,
		domain.OrderStatusDelivered:
		return true
	}
	return false
}
