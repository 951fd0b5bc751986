package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stripe/stripe-go/v80"
	"go.uber.org/zap"

	"github.com/rashmithaRKL/cake/controllers"
	"github.com/rashmithaRKL/cake/middleware"
	"github.com/rashmithaRKL/cake/models"
	"github.com/rashmithaRKL/cake/services"
)

// ---- fake order service ----

type fakeOrderService struct {
	createResult *services.CreateOrderResult
	createErr    *services.ServiceError

	cancelCalled int
	cancelOrder  *models.Order
	cancelErr    *services.ServiceError

	succeededTxns []string
	failedTxns    []string

	lastFilters models.OrderFilters
	lastPage    int
	lastLimit   int
}

func (f *fakeOrderService) CreateOrder(_ context.Context, _ string, _ *models.CreateOrderRequest) (*services.CreateOrderResult, *services.ServiceError) {
	return f.createResult, f.createErr
}

func (f *fakeOrderService) GetOrderByID(_ context.Context, _ models.Principal, _ uuid.UUID) (*models.Order, *services.ServiceError) {
	return &models.Order{}, nil
}

func (f *fakeOrderService) GetUserOrders(_ context.Context, _ string, page, limit int) (*models.OrderListResponse, *services.ServiceError) {
	f.lastPage, f.lastLimit = page, limit
	return &models.OrderListResponse{Orders: []models.Order{}}, nil
}

func (f *fakeOrderService) GetAllOrders(_ context.Context, filters models.OrderFilters, page, limit int) (*models.OrderListResponse, *services.ServiceError) {
	f.lastFilters = filters
	f.lastPage, f.lastLimit = page, limit
	return &models.OrderListResponse{Orders: []models.Order{}}, nil
}

func (f *fakeOrderService) UpdateOrderStatus(_ context.Context, _ uuid.UUID, _ *models.UpdateStatusRequest, _ string) (*models.Order, *services.ServiceError) {
	return &models.Order{}, nil
}

func (f *fakeOrderService) CancelOrder(_ context.Context, _ models.Principal, _ uuid.UUID, _ string) (*models.Order, *services.ServiceError) {
	f.cancelCalled++
	return f.cancelOrder, f.cancelErr
}

func (f *fakeOrderService) RetryRefund(_ context.Context, _ uuid.UUID, _ string) (*models.Order, *services.ServiceError) {
	return &models.Order{}, nil
}

func (f *fakeOrderService) ApplyPaymentSucceeded(_ context.Context, txn string) *services.ServiceError {
	f.succeededTxns = append(f.succeededTxns, txn)
	return nil
}

func (f *fakeOrderService) ApplyPaymentFailed(_ context.Context, txn string) *services.ServiceError {
	f.failedTxns = append(f.failedTxns, txn)
	return nil
}

// ---- fake gateway (webhook parsing only) ----

type fakeGateway struct {
	event    stripe.Event
	parseErr error
}

func (f *fakeGateway) CreatePaymentIntent(_ context.Context, _ int64, _ string, _ map[string]string) (*services.PaymentIntentResult, error) {
	return nil, nil
}

func (f *fakeGateway) Refund(_ context.Context, _ string) error { return nil }

func (f *fakeGateway) ParseWebhook(_ *http.Request) (stripe.Event, error) {
	return f.event, f.parseErr
}

func setupRouter(svc services.OrderService, gw services.PaymentGateway) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	oc := controllers.NewOrderController(svc)
	wc := controllers.NewWebhookController(svc, gw, zap.NewNop())

	r.POST("/orders/webhook", wc.HandleStripeWebhook)

	auth := r.Group("/orders")
	auth.Use(middleware.AuthMiddleware())
	auth.POST("/", oc.CreateOrder)
	auth.GET("/my-orders", oc.GetMyOrders)
	auth.PUT("/:id/cancel", oc.CancelOrder)

	admin := r.Group("/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.AdminOnly())
	admin.GET("/orders", oc.GetAllOrders)

	return r
}

func TestCreateOrder_RequiresIdentityHeader(t *testing.T) {
	r := setupRouter(&fakeOrderService{}, &fakeGateway{})

	req := httptest.NewRequest(http.MethodPost, "/orders/", bytes.NewBufferString(`{}`))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreateOrder_RejectsInvalidBody(t *testing.T) {
	r := setupRouter(&fakeOrderService{}, &fakeGateway{})

	req := httptest.NewRequest(http.MethodPost, "/orders/", bytes.NewBufferString(`{"items":[]}`))
	req.Header.Set("X-User-ID", uuid.New().String())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateOrder_MapsServiceError(t *testing.T) {
	svc := &fakeOrderService{
		createErr: &services.ServiceError{
			StatusCode: 409,
			Code:       services.CodeInsufficientStock,
			Message:    "Insufficient stock for product Chocolate Cake: available=1 requested=2",
		},
	}
	r := setupRouter(svc, &fakeGateway{})

	body := validCreateBody(t)
	req := httptest.NewRequest(http.MethodPost, "/orders/", bytes.NewBuffer(body))
	req.Header.Set("X-User-ID", uuid.New().String())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	var resp map[string]string
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, services.CodeInsufficientStock, resp["code"])
}

func TestGetMyOrders_ClampsPagination(t *testing.T) {
	svc := &fakeOrderService{}
	r := setupRouter(svc, &fakeGateway{})

	req := httptest.NewRequest(http.MethodGet, "/orders/my-orders?page=3&limit=500", nil)
	req.Header.Set("X-User-ID", uuid.New().String())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 3, svc.lastPage)
	assert.Equal(t, 100, svc.lastLimit)
}

func TestGetAllOrders_AdminOnly(t *testing.T) {
	svc := &fakeOrderService{}
	r := setupRouter(svc, &fakeGateway{})

	req := httptest.NewRequest(http.MethodGet, "/admin/orders?status=pending", nil)
	req.Header.Set("X-User-ID", uuid.New().String())
	req.Header.Set("X-User-Role", "customer")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/admin/orders?status=pending", nil)
	req.Header.Set("X-User-ID", uuid.New().String())
	req.Header.Set("X-User-Role", "admin")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.OrderStatusPending, svc.lastFilters.Status)
}

func TestCancelOrder_EmptyBodyAllowed(t *testing.T) {
	svc := &fakeOrderService{cancelOrder: &models.Order{OrderStatus: models.OrderStatusCancelled}}
	r := setupRouter(svc, &fakeGateway{})

	req := httptest.NewRequest(http.MethodPut, fmt.Sprintf("/orders/%s/cancel", uuid.New()), nil)
	req.Header.Set("X-User-ID", uuid.New().String())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, svc.cancelCalled)
}

// ---- webhook ----

func paymentIntentEvent(t *testing.T, eventType, intentID string) stripe.Event {
	t.Helper()
	raw, err := json.Marshal(map[string]string{"id": intentID})
	assert.NoError(t, err)
	return stripe.Event{
		Type: stripe.EventType(eventType),
		Data: &stripe.EventData{Raw: raw},
	}
}

func TestWebhook_RejectsBadSignature(t *testing.T) {
	svc := &fakeOrderService{}
	gw := &fakeGateway{parseErr: fmt.Errorf("signature mismatch")}
	r := setupRouter(svc, gw)

	req := httptest.NewRequest(http.MethodPost, "/orders/webhook", bytes.NewBufferString(`{}`))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, svc.succeededTxns)
	assert.Empty(t, svc.failedTxns)
}

func TestWebhook_AppliesPaymentSucceeded(t *testing.T) {
	svc := &fakeOrderService{}
	gw := &fakeGateway{event: paymentIntentEvent(t, "payment_intent.succeeded", "pi_123")}
	r := setupRouter(svc, gw)

	req := httptest.NewRequest(http.MethodPost, "/orders/webhook", bytes.NewBufferString(`{}`))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"pi_123"}, svc.succeededTxns)
}

func TestWebhook_AppliesPaymentFailed(t *testing.T) {
	svc := &fakeOrderService{}
	gw := &fakeGateway{event: paymentIntentEvent(t, "payment_intent.payment_failed", "pi_456")}
	r := setupRouter(svc, gw)

	req := httptest.NewRequest(http.MethodPost, "/orders/webhook", bytes.NewBufferString(`{}`))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"pi_456"}, svc.failedTxns)
}

func TestWebhook_AcknowledgesUnhandledEventTypes(t *testing.T) {
	svc := &fakeOrderService{}
	gw := &fakeGateway{event: paymentIntentEvent(t, "charge.updated", "ch_789")}
	r := setupRouter(svc, gw)

	req := httptest.NewRequest(http.MethodPost, "/orders/webhook", bytes.NewBufferString(`{}`))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, svc.succeededTxns)
	assert.Empty(t, svc.failedTxns)
}

func validCreateBody(t *testing.T) []byte {
	t.Helper()
	body, err := json.Marshal(map[string]interface{}{
		"items": []map[string]interface{}{
			{"product_id": uuid.New().String(), "quantity": 2},
		},
		"shipping_address": map[string]string{
			"street": "1 Baker St", "city": "Springfield", "state": "IL",
			"zip_code": "62704", "country": "US",
		},
		"billing_address": map[string]string{
			"street": "1 Baker St", "city": "Springfield", "state": "IL",
			"zip_code": "62704", "country": "US",
		},
		"payment_method": "stripe",
		"delivery": map[string]interface{}{
			"type":                "delivery",
			"preferred_date":      "2026-09-02T10:00:00Z",
			"preferred_time_slot": "10:00-12:00",
		},
	})
	assert.NoError(t, err)
	return body
}
