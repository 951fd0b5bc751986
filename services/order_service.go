package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	awspkg "github.com/rashmithaRKL/cake/pkg/aws"

	"github.com/rashmithaRKL/cake/kafka"
	"github.com/rashmithaRKL/cake/models"
	"github.com/rashmithaRKL/cake/notifier"
	"github.com/rashmithaRKL/cake/repository"
)

// CreateOrderResult is the outcome of a successful checkout: the persisted
// order plus the client-side payment continuation token.
type CreateOrderResult struct {
	Order        *models.Order `json:"order"`
	ClientSecret string        `json:"client_secret,omitempty"`
}

// OrderService owns the order lifecycle: creation with stock reservation,
// status transitions, cancellation with stock restoration and refund, and
// application of asynchronous payment outcomes.
type OrderService interface {
	CreateOrder(ctx context.Context, userID string, req *models.CreateOrderRequest) (*CreateOrderResult, *ServiceError)
	GetOrderByID(ctx context.Context, principal models.Principal, orderID uuid.UUID) (*models.Order, *ServiceError)
	GetUserOrders(ctx context.Context, userID string, page, limit int) (*models.OrderListResponse, *ServiceError)
	GetAllOrders(ctx context.Context, filters models.OrderFilters, page, limit int) (*models.OrderListResponse, *ServiceError)
	UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, req *models.UpdateStatusRequest, actorID string) (*models.Order, *ServiceError)
	CancelOrder(ctx context.Context, principal models.Principal, orderID uuid.UUID, reason string) (*models.Order, *ServiceError)
	RetryRefund(ctx context.Context, orderID uuid.UUID, actorID string) (*models.Order, *ServiceError)
	ApplyPaymentSucceeded(ctx context.Context, transactionID string) *ServiceError
	ApplyPaymentFailed(ctx context.Context, transactionID string) *ServiceError
}

type orderServiceImpl struct {
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	gateway     PaymentGateway
	notifier    notifier.Notifier
	events      kafka.ProducerAPI
	eventsTopic string
	snsClient   awspkg.SNSPublisher
	snsTopicArn string
	deliveryFee float64
	logger      *zap.Logger
}

// NewOrderService wires the order service. events, snsClient may be nil when
// the corresponding mirror is not configured.
func NewOrderService(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	gateway PaymentGateway,
	hub notifier.Notifier,
	events kafka.ProducerAPI,
	eventsTopic string,
	snsClient awspkg.SNSPublisher,
	snsTopicArn string,
	deliveryFee float64,
	logger *zap.Logger,
) OrderService {
	return &orderServiceImpl{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		gateway:     gateway,
		notifier:    hub,
		events:      events,
		eventsTopic: eventsTopic,
		snsClient:   snsClient,
		snsTopicArn: snsTopicArn,
		deliveryFee: deliveryFee,
		logger:      logger,
	}
}

// reservedStock tracks decrements already applied so a failed checkout can
// compensate. No partial decrement survives a failed CreateOrder.
type reservedStock struct {
	productID uuid.UUID
	quantity  int
}

func (s *orderServiceImpl) releaseReserved(ctx context.Context, reserved []reservedStock) {
	for _, r := range reserved {
		if err := s.productRepo.RestoreStock(ctx, r.productID, r.quantity); err != nil {
			s.logger.Error("Failed to restore stock during checkout rollback",
				zap.String("product_id", r.productID.String()),
				zap.Int("quantity", r.quantity),
				zap.Error(err),
			)
		}
	}
}

func (s *orderServiceImpl) CreateOrder(ctx context.Context, userID string, req *models.CreateOrderRequest) (*CreateOrderResult, *ServiceError) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, &ServiceError{StatusCode: 400, Code: CodeValidation, Message: "Invalid user ID format"}
	}
	if len(req.Items) == 0 {
		return nil, &ServiceError{StatusCode: 400, Code: CodeValidation, Message: "At least one item is required"}
	}

	var reserved []reservedStock
	items := make([]models.OrderItem, 0, len(req.Items))

	for _, line := range req.Items {
		product, err := s.productRepo.FindByID(ctx, line.ProductID)
		if err != nil {
			s.releaseReserved(ctx, reserved)
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, &ServiceError{
					StatusCode: 404,
					Code:       CodeNotFound,
					Message:    fmt.Sprintf("Product not found with ID: %s", line.ProductID),
				}
			}
			s.logger.Error("Failed to load product during checkout", zap.String("product_id", line.ProductID.String()), zap.Error(err))
			return nil, &ServiceError{StatusCode: 500, Code: CodeInternal, Message: "Error creating order"}
		}

		if err := s.productRepo.DecrementStock(ctx, line.ProductID, line.Quantity); err != nil {
			s.releaseReserved(ctx, reserved)
			if errors.Is(err, repository.ErrInsufficientStock) {
				return nil, &ServiceError{
					StatusCode: 409,
					Code:       CodeInsufficientStock,
					Message: fmt.Sprintf("Insufficient stock for product %s: available=%d requested=%d",
						product.Name, product.Stock, line.Quantity),
				}
			}
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, &ServiceError{
					StatusCode: 404,
					Code:       CodeNotFound,
					Message:    fmt.Sprintf("Product not found with ID: %s", line.ProductID),
				}
			}
			s.logger.Error("Failed to reserve stock", zap.String("product_id", line.ProductID.String()), zap.Error(err))
			return nil, &ServiceError{StatusCode: 500, Code: CodeInternal, Message: "Error creating order"}
		}
		reserved = append(reserved, reservedStock{productID: line.ProductID, quantity: line.Quantity})

		items = append(items, models.OrderItem{
			ID:             uuid.New(),
			ProductID:      product.ID,
			ProductName:    product.Name,
			Quantity:       line.Quantity,
			Price:          product.Price,
			Customizations: line.Customizations,
		})
	}

	deliveryFee := 0.0
	if req.Delivery.Type == models.DeliveryTypeDelivery {
		deliveryFee = s.deliveryFee
	}
	pricing := models.CalculatePricing(items, deliveryFee, 0)

	now := time.Now()
	orderNumber, err := s.orderRepo.NextOrderNumber(ctx, now)
	if err != nil {
		s.releaseReserved(ctx, reserved)
		s.logger.Error("Failed to generate order number", zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Code: CodeInternal, Message: "Error creating order"}
	}

	order := &models.Order{
		ID:              uuid.New(),
		OrderNumber:     orderNumber,
		UserID:          userUUID,
		Items:           items,
		ShippingAddress: req.ShippingAddress,
		BillingAddress:  req.BillingAddress,
		PaymentInfo: models.PaymentInfo{
			Method:   req.PaymentMethod,
			Status:   models.PaymentStatusPending,
			Amount:   pricing.Total,
			Currency: "usd",
		},
		OrderStatus: models.OrderStatusPending,
		StatusHistory: []models.StatusHistoryEntry{{
			Status:    models.OrderStatusPending,
			Timestamp: now,
			Note:      "Order placed",
			UpdatedBy: userID,
		}},
		Delivery: models.Delivery{
			Type:              req.Delivery.Type,
			PreferredDate:     req.Delivery.PreferredDate,
			PreferredTimeSlot: req.Delivery.PreferredTimeSlot,
			DeliveryFee:       deliveryFee,
		},
		Pricing:             pricing,
		SpecialInstructions: req.SpecialInstructions,
		GiftOptions:         req.GiftOptions,
		Version:             1,
	}

	clientSecret := ""
	if req.PaymentMethod == "stripe" {
		intent, err := s.gateway.CreatePaymentIntent(ctx, models.AmountCents(pricing.Total), "usd", map[string]string{
			"order_number": orderNumber,
			"user_id":      userID,
		})
		if err != nil {
			s.releaseReserved(ctx, reserved)
			s.logger.Error("Payment intent creation failed",
				zap.String("order_number", orderNumber),
				zap.Error(err),
			)
			return nil, &ServiceError{StatusCode: 502, Code: CodePaymentGateway, Message: "Payment provider unavailable"}
		}
		order.PaymentInfo.TransactionID = intent.ID
		clientSecret = intent.ClientSecret
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		s.releaseReserved(ctx, reserved)
		s.logger.Error("Failed to persist order",
			zap.String("order_number", orderNumber),
			zap.Error(err),
		)
		return nil, &ServiceError{StatusCode: 500, Code: CodeInternal, Message: "Error creating order"}
	}

	s.logger.Info("Order created",
		zap.String("order_id", order.ID.String()),
		zap.String("order_number", order.OrderNumber),
		zap.String("user_id", userID),
		zap.Float64("total", pricing.Total),
	)

	s.publish(ctx, models.OrderEvent{
		Type:        models.EventOrderCreated,
		OrderID:     order.ID.String(),
		OrderNumber: order.OrderNumber,
		UserID:      userID,
		Status:      order.OrderStatus,
		Timestamp:   now,
	}, notifier.BroadcastTopic)

	return &CreateOrderResult{Order: order, ClientSecret: clientSecret}, nil
}

func (s *orderServiceImpl) GetOrderByID(ctx context.Context, principal models.Principal, orderID uuid.UUID) (*models.Order, *ServiceError) {
	order, svcErr := s.loadOrder(ctx, orderID)
	if svcErr != nil {
		return nil, svcErr
	}
	if order.UserID.String() != principal.ID && !principal.IsAdmin() {
		return nil, &ServiceError{StatusCode: 401, Code: CodeNotAuthorized, Message: "Not authorized to view this order"}
	}
	return order, nil
}

func (s *orderServiceImpl) GetUserOrders(ctx context.Context, userID string, page, limit int) (*models.OrderListResponse, *ServiceError) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, &ServiceError{StatusCode: 400, Code: CodeValidation, Message: "Invalid user ID format"}
	}

	orders, total, err := s.orderRepo.FindByUserID(ctx, userUUID, page, limit)
	if err != nil {
		s.logger.Error("Failed to fetch user orders", zap.String("user_id", userID), zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Code: CodeInternal, Message: "Failed to fetch orders"}
	}

	return listResponse(orders, total, page, limit), nil
}

func (s *orderServiceImpl) GetAllOrders(ctx context.Context, filters models.OrderFilters, page, limit int) (*models.OrderListResponse, *ServiceError) {
	orders, total, err := s.orderRepo.FindAll(ctx, filters, page, limit)
	if err != nil {
		s.logger.Error("Failed to fetch orders", zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Code: CodeInternal, Message: "Failed to fetch orders"}
	}
	return listResponse(orders, total, page, limit), nil
}

func (s *orderServiceImpl) UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, req *models.UpdateStatusRequest, actorID string) (*models.Order, *ServiceError) {
	order, svcErr := s.loadOrder(ctx, orderID)
	if svcErr != nil {
		return nil, svcErr
	}

	if !req.Status.IsValid() {
		return nil, &ServiceError{StatusCode: 400, Code: CodeValidation, Message: fmt.Sprintf("Unknown order status: %s", req.Status)}
	}
	if !order.OrderStatus.CanTransitionTo(req.Status) {
		return nil, &ServiceError{
			StatusCode: 409,
			Code:       CodeIllegalState,
			Message:    fmt.Sprintf("Cannot transition order from %s to %s", order.OrderStatus, req.Status),
		}
	}

	now := time.Now()
	order.AppendStatus(req.Status, req.Note, actorID, now)
	if req.Status == models.OrderStatusDelivered {
		order.Delivery.ActualDeliveryDate = &now
	}

	if svcErr := s.saveOrder(ctx, order, "update status"); svcErr != nil {
		return nil, svcErr
	}

	s.logger.Info("Order status updated",
		zap.String("order_id", order.ID.String()),
		zap.String("status", string(req.Status)),
		zap.String("updated_by", actorID),
	)

	s.publish(ctx, models.OrderEvent{
		Type:        models.EventOrderStatus,
		OrderID:     order.ID.String(),
		OrderNumber: order.OrderNumber,
		UserID:      order.UserID.String(),
		Status:      order.OrderStatus,
		Timestamp:   now,
	}, notifier.OrderTopic(order.ID.String()))

	return order, nil
}

func (s *orderServiceImpl) CancelOrder(ctx context.Context, principal models.Principal, orderID uuid.UUID, reason string) (*models.Order, *ServiceError) {
	order, svcErr := s.loadOrder(ctx, orderID)
	if svcErr != nil {
		return nil, svcErr
	}

	if order.UserID.String() != principal.ID && !principal.IsAdmin() {
		return nil, &ServiceError{StatusCode: 401, Code: CodeNotAuthorized, Message: "Not authorized to cancel this order"}
	}

	// Cancelling an already-cancelled order is a no-op; stock was restored
	// and the refund handled the first time around.
	if order.Cancellation.IsCancelled {
		return order, nil
	}

	if !order.IsCancellable() {
		return nil, &ServiceError{StatusCode: 409, Code: CodeIllegalState, Message: "Order cannot be cancelled at this stage"}
	}

	now := time.Now()
	order.AppendStatus(models.OrderStatusCancelled, reason, principal.ID, now)
	order.Cancellation = models.Cancellation{
		IsCancelled: true,
		Reason:      reason,
		CancelledAt: &now,
		CancelledBy: principal.ID,
	}
	needsRefund := order.PaymentInfo.Status == models.PaymentStatusCompleted
	if needsRefund {
		order.Cancellation.RefundStatus = models.RefundStatusPending
	}

	// The compare-and-swap save elects a single winner. Stock restoration
	// and the refund both wait for it: a racing double-cancel or webhook
	// must not restore stock twice or move money twice. The refund is
	// committed as pending first so a loser of the race never reaches the
	// gateway.
	if svcErr := s.saveOrder(ctx, order, "cancel"); svcErr != nil {
		return nil, svcErr
	}

	for _, item := range order.Items {
		if err := s.productRepo.RestoreStock(ctx, item.ProductID, item.Quantity); err != nil {
			s.logger.Error("Failed to restore stock for cancelled order",
				zap.String("order_id", order.ID.String()),
				zap.String("product_id", item.ProductID.String()),
				zap.Error(err),
			)
		}
	}

	// Refund is the reversible, retryable half of cancellation: a gateway
	// failure is recorded for follow-up but never blocks the cancellation
	// itself, which has already committed.
	if needsRefund {
		if err := s.gateway.Refund(ctx, order.PaymentInfo.TransactionID); err != nil {
			s.logger.Error("Refund failed during cancellation",
				zap.String("order_id", order.ID.String()),
				zap.String("transaction_id", order.PaymentInfo.TransactionID),
				zap.Error(err),
			)
			order.Cancellation.RefundStatus = models.RefundStatusFailed
		} else {
			order.Cancellation.RefundStatus = models.RefundStatusProcessed
			order.PaymentInfo.Status = models.PaymentStatusRefunded
		}
		s.recordRefundOutcome(ctx, order)
	}

	s.logger.Info("Order cancelled",
		zap.String("order_id", order.ID.String()),
		zap.String("order_number", order.OrderNumber),
		zap.String("cancelled_by", principal.ID),
		zap.String("refund_status", string(order.Cancellation.RefundStatus)),
	)

	s.publish(ctx, models.OrderEvent{
		Type:        models.EventOrderCancelled,
		OrderID:     order.ID.String(),
		OrderNumber: order.OrderNumber,
		UserID:      order.UserID.String(),
		Status:      order.OrderStatus,
		Timestamp:   now,
	}, notifier.OrderTopic(order.ID.String()))

	return order, nil
}

func (s *orderServiceImpl) RetryRefund(ctx context.Context, orderID uuid.UUID, actorID string) (*models.Order, *ServiceError) {
	order, svcErr := s.loadOrder(ctx, orderID)
	if svcErr != nil {
		return nil, svcErr
	}

	// Pending covers a cancellation that committed but never reached the
	// gateway (crash or lost outcome write); failed covers a gateway error.
	if !order.Cancellation.IsCancelled ||
		(order.Cancellation.RefundStatus != models.RefundStatusFailed &&
			order.Cancellation.RefundStatus != models.RefundStatusPending) {
		return nil, &ServiceError{StatusCode: 409, Code: CodeIllegalState, Message: "Order has no outstanding refund to retry"}
	}

	if err := s.gateway.Refund(ctx, order.PaymentInfo.TransactionID); err != nil {
		s.logger.Error("Refund retry failed",
			zap.String("order_id", order.ID.String()),
			zap.String("retried_by", actorID),
			zap.Error(err),
		)
		return nil, &ServiceError{StatusCode: 502, Code: CodePaymentGateway, Message: "Refund failed"}
	}

	order.Cancellation.RefundStatus = models.RefundStatusProcessed
	order.PaymentInfo.Status = models.PaymentStatusRefunded
	if svcErr := s.saveOrder(ctx, order, "retry refund"); svcErr != nil {
		return nil, svcErr
	}

	s.logger.Info("Refund processed on retry",
		zap.String("order_id", order.ID.String()),
		zap.String("retried_by", actorID),
	)

	s.publish(ctx, models.OrderEvent{
		Type:        models.EventRefundProcessed,
		OrderID:     order.ID.String(),
		OrderNumber: order.OrderNumber,
		UserID:      order.UserID.String(),
		Status:      order.OrderStatus,
		Timestamp:   time.Now(),
	}, notifier.OrderTopic(order.ID.String()))

	return order, nil
}

func (s *orderServiceImpl) ApplyPaymentSucceeded(ctx context.Context, transactionID string) *ServiceError {
	order, err := s.orderRepo.FindByTransactionID(ctx, transactionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Unknown transaction: acknowledge so the gateway stops
			// redelivering an event we can never apply.
			s.logger.Warn("Payment succeeded for unknown transaction", zap.String("transaction_id", transactionID))
			return nil
		}
		s.logger.Error("Failed to look up order for payment event", zap.String("transaction_id", transactionID), zap.Error(err))
		return &ServiceError{StatusCode: 500, Code: CodeInternal, Message: "Error applying payment event"}
	}

	// Webhooks are redelivered; apply-if-not-already-applied.
	if order.PaymentInfo.Status == models.PaymentStatusCompleted {
		s.logger.Info("Skipping duplicate payment webhook",
			zap.String("order_id", order.ID.String()),
			zap.String("transaction_id", transactionID),
		)
		return nil
	}

	now := time.Now()
	order.PaymentInfo.Status = models.PaymentStatusCompleted
	order.PaymentInfo.PaidAt = &now
	if order.OrderStatus == models.OrderStatusPending {
		order.AppendStatus(models.OrderStatusConfirmed, "Payment received", "stripe", now)
	}

	if svcErr := s.saveOrder(ctx, order, "apply payment succeeded"); svcErr != nil {
		// Non-2xx response makes the gateway redeliver; the retry re-reads
		// the order and lands on the idempotent skip above if we had won.
		return svcErr
	}

	s.logger.Info("Payment completed",
		zap.String("order_id", order.ID.String()),
		zap.String("order_number", order.OrderNumber),
	)

	s.publish(ctx, models.OrderEvent{
		Type:        models.EventOrderStatus,
		OrderID:     order.ID.String(),
		OrderNumber: order.OrderNumber,
		UserID:      order.UserID.String(),
		Status:      order.OrderStatus,
		Timestamp:   now,
	}, notifier.OrderTopic(order.ID.String()))

	return nil
}

func (s *orderServiceImpl) ApplyPaymentFailed(ctx context.Context, transactionID string) *ServiceError {
	order, err := s.orderRepo.FindByTransactionID(ctx, transactionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Warn("Payment failed for unknown transaction", zap.String("transaction_id", transactionID))
			return nil
		}
		s.logger.Error("Failed to look up order for payment event", zap.String("transaction_id", transactionID), zap.Error(err))
		return &ServiceError{StatusCode: 500, Code: CodeInternal, Message: "Error applying payment event"}
	}

	if order.PaymentInfo.Status == models.PaymentStatusFailed {
		return nil
	}

	now := time.Now()
	order.PaymentInfo.Status = models.PaymentStatusFailed
	// The order stays pending; the customer may retry payment. Only the
	// audit trail records the failed attempt.
	order.StatusHistory = append(order.StatusHistory, models.StatusHistoryEntry{
		Status:    order.OrderStatus,
		Timestamp: now,
		Note:      "Payment failed",
		UpdatedBy: "stripe",
	})

	if svcErr := s.saveOrder(ctx, order, "apply payment failed"); svcErr != nil {
		return svcErr
	}

	s.logger.Info("Payment failed",
		zap.String("order_id", order.ID.String()),
		zap.String("order_number", order.OrderNumber),
	)

	s.publish(ctx, models.OrderEvent{
		Type:        models.EventPaymentFailed,
		OrderID:     order.ID.String(),
		OrderNumber: order.OrderNumber,
		UserID:      order.UserID.String(),
		Status:      order.OrderStatus,
		Timestamp:   now,
	}, notifier.OrderTopic(order.ID.String()))

	return nil
}

// recordRefundOutcome persists the refund result of a committed
// cancellation. A version conflict here means a concurrent writer touched
// the order after the cancellation won its save; the outcome is reapplied
// on a fresh read so it is not lost.
func (s *orderServiceImpl) recordRefundOutcome(ctx context.Context, order *models.Order) {
	if svcErr := s.saveOrder(ctx, order, "record refund outcome"); svcErr == nil {
		return
	}

	fresh, err := s.orderRepo.FindByID(ctx, order.ID)
	if err != nil {
		s.logger.Error("Failed to reload order for refund outcome",
			zap.String("order_id", order.ID.String()),
			zap.Error(err),
		)
		return
	}
	fresh.Cancellation.RefundStatus = order.Cancellation.RefundStatus
	fresh.PaymentInfo.Status = order.PaymentInfo.Status
	if svcErr := s.saveOrder(ctx, fresh, "record refund outcome"); svcErr == nil {
		*order = *fresh
	}
}

func (s *orderServiceImpl) loadOrder(ctx context.Context, orderID uuid.UUID) (*models.Order, *ServiceError) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &ServiceError{StatusCode: 404, Code: CodeNotFound, Message: "Order not found"}
		}
		s.logger.Error("Failed to fetch order", zap.String("order_id", orderID.String()), zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Code: CodeInternal, Message: "Failed to fetch order"}
	}
	return order, nil
}

func (s *orderServiceImpl) saveOrder(ctx context.Context, order *models.Order, op string) *ServiceError {
	if err := s.orderRepo.Update(ctx, order); err != nil {
		if errors.Is(err, repository.ErrVersionConflict) {
			s.logger.Warn("Concurrent order modification detected",
				zap.String("order_id", order.ID.String()),
				zap.String("operation", op),
			)
			return &ServiceError{StatusCode: 409, Code: CodeConflict, Message: "Order was modified concurrently, please retry"}
		}
		s.logger.Error("Failed to save order",
			zap.String("order_id", order.ID.String()),
			zap.String("operation", op),
			zap.Error(err),
		)
		return &ServiceError{StatusCode: 500, Code: CodeInternal, Message: "Failed to save order"}
	}
	return nil
}

// publish fans the event out to the in-process hub and mirrors it
// best-effort to Kafka and SNS. Mirror failures are logged, never returned.
func (s *orderServiceImpl) publish(ctx context.Context, event models.OrderEvent, topic string) {
	s.notifier.Publish(topic, event)

	payload, err := json.Marshal(event)
	if err != nil {
		s.logger.Error("Failed to marshal order event", zap.String("type", event.Type), zap.Error(err))
		return
	}

	if s.events != nil && s.eventsTopic != "" {
		if err := s.events.Publish(s.eventsTopic, payload); err != nil {
			s.logger.Warn("Kafka publish failed",
				zap.String("topic", s.eventsTopic),
				zap.String("type", event.Type),
				zap.Error(err),
			)
		}
	}

	if s.snsClient != nil && s.snsTopicArn != "" {
		if err := s.snsClient.Publish(ctx, s.snsTopicArn, payload); err != nil {
			s.logger.Warn("SNS publish failed",
				zap.String("topic_arn", s.snsTopicArn),
				zap.String("type", event.Type),
				zap.Error(err),
			)
		}
	}
}

func listResponse(orders []models.Order, total int64, page, limit int) *models.OrderListResponse {
	return &models.OrderListResponse{
		Orders: orders,
		Meta: models.MetaData{
			Page:        page,
			Limit:       limit,
			TotalOrders: total,
			TotalPages:  totalPages(total, limit),
			HasMore:     total > int64(page*limit),
		},
	}
}

func totalPages(total int64, limit int) int64 {
	if limit == 0 {
		return 0
	}
	return (total + int64(limit) - 1) / int64(limit)
}
