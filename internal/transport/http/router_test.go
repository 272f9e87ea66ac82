package rest_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Gunvolt24/orders_api/internal/domain"
	"github.com/Gunvolt24/orders_api/internal/ports/mocks"
	rest "github.com/Gunvolt24/orders_api/internal/transport/http"
	"github.com/golang/mock/gomock"
)

type noopLogger struct{}

func (noopLogger) Infof(context.Context, string, ...any)  {}
func (noopLogger) Warnf(context.Context, string, ...any)  {}
func (noopLogger) Errorf(context.Context, string, ...any) {}

func storedOrder() *domain.Order {
	return &domain.Order{
		OrderID:    "O1",
		Items:      []domain.Item{{ProductID: "P1", Quantity: 2, UnitValue: 50}},
		TotalValue: 100,
		CreatedAt:  time.Date(2025, 11, 26, 12, 0, 0, 0, time.UTC),
	}
}

func newRouter(t *testing.T) (*mocks.MockOrderService, http.Handler) {
	t.Helper()
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockOrderService(ctrl)
	h := rest.NewHandler(svc, noopLogger{})
	return svc, rest.NewRouter(h, "")
}

func TestServiceInfo_200(t *testing.T) {
	_, r := newRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/", http.NoBody)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("want 200, got %d, body=%s", w.Code, w.Body.String())
	}
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if body["message"] == "" || body["endpoints"] == nil {
		t.Fatalf("service metadata incomplete: %v", body)
	}
}

func TestCreateOrder_Created(t *testing.T) {
	svc, r := newRouter(t)

	svc.EXPECT().
		CreateOrder(gomock.Any(), gomock.AssignableToTypeOf(&domain.Order{})).
		DoAndReturn(func(_ context.Context, o *domain.Order) (*domain.Order, error) {
			// маппинг входных имён выполняется до сервиса
			if o.OrderID != "O1" || len(o.Items) != 1 || o.Items[0].ProductID != "P1" {
				t.Fatalf("bad mapped order: %+v", o)
			}
			if o.Items[0].Quantity != 2 || o.Items[0].UnitValue != 50 {
				t.Fatalf("bad mapped item: %+v", o.Items[0])
			}
			o.CreatedAt = time.Date(2025, 11, 26, 12, 0, 0, 0, time.UTC)
			return o, nil
		})

	body := `{"orderId":"O1","totalValue":100,"items":[{"itemId":"P1","itemQuantity":2,"itemValue":50}]}`
	req := httptest.NewRequest(http.MethodPost, "/order", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("want 201, got %d, body=%s", w.Code, w.Body.String())
	}
	// ответ — канонический формат с productId/quantity/unitValue
	out := w.Body.String()
	if !strings.Contains(out, `"productId":"P1"`) || !strings.Contains(out, `"unitValue":50`) {
		t.Fatalf("response not in canonical shape: %s", out)
	}
	if strings.Contains(out, "itemId") || strings.Contains(out, "updatedAt") {
		t.Fatalf("internal/input fields must not leak: %s", out)
	}
}

func TestCreateOrder_MissingFields_400(t *testing.T) {
	svc, r := newRouter(t)
	svc.EXPECT().CreateOrder(gomock.Any(), gomock.Any()).Times(0)

	body := `{"orderId":"O1","items":[{"itemId":"P1","itemQuantity":1,"itemValue":5}]}` // нет totalValue
	req := httptest.NewRequest(http.MethodPost, "/order", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("want 400, got %d, body=%s", w.Code, w.Body.String())
	}
}

func TestCreateOrder_ZeroTotalValue_IsPresent(t *testing.T) {
	svc, r := newRouter(t)

	svc.EXPECT().
		CreateOrder(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, o *domain.Order) (*domain.Order, error) {
			if o.TotalValue != 0 {
				t.Fatalf("explicit zero totalValue must survive: %+v", o)
			}
			return o, nil
		})

	// явный ноль — присутствующее значение, а не отсутствие поля
	body := `{"orderId":"O1","totalValue":0,"items":[{"itemId":"P1","itemQuantity":1,"itemValue":0}]}`
	req := httptest.NewRequest(http.MethodPost, "/order", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("want 201, got %d, body=%s", w.Code, w.Body.String())
	}
}

func TestCreateOrder_EmptyItems_400(t *testing.T) {
	svc, r := newRouter(t)
	svc.EXPECT().CreateOrder(gomock.Any(), gomock.Any()).Times(0)

	body := `{"orderId":"O1","totalValue":100,"items":[]}`
	req := httptest.NewRequest(http.MethodPost, "/order", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("want 400, got %d, body=%s", w.Code, w.Body.String())
	}
}

func TestCreateOrder_Duplicate_400(t *testing.T) {
	svc, r := newRouter(t)

	svc.EXPECT().CreateOrder(gomock.Any(), gomock.Any()).Return(nil, domain.ErrDuplicateOrder)

	body := `{"orderId":"O1","totalValue":100,"items":[{"itemId":"P1","itemQuantity":2,"itemValue":50}]}`
	req := httptest.NewRequest(http.MethodPost, "/order", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("want 400, got %d, body=%s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "already exists") {
		t.Fatalf("want duplicate message, body=%s", w.Body.String())
	}
}

func TestCreateOrder_InternalError_500(t *testing.T) {
	svc, r := newRouter(t)

	svc.EXPECT().CreateOrder(gomock.Any(), gomock.Any()).Return(nil, errors.New("db down"))

	body := `{"orderId":"O1","totalValue":100,"items":[{"itemId":"P1","itemQuantity":2,"itemValue":50}]}`
	req := httptest.NewRequest(http.MethodPost, "/order", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("want 500, got %d, body=%s", w.Code, w.Body.String())
	}
	// message в теле 500 содержит исходную ошибку
	if !strings.Contains(w.Body.String(), "db down") {
		t.Fatalf("want echoed message, body=%s", w.Body.String())
	}
}

func TestGetOrder_Found(t *testing.T) {
	svc, r := newRouter(t)

	svc.EXPECT().GetOrder(gomock.Any(), "O1").Return(storedOrder(), nil)

	req := httptest.NewRequest(http.MethodGet, "/order/O1", http.NoBody)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("want 200, got %d, body=%s", w.Code, w.Body.String())
	}
	var got domain.Order
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if got.OrderID != "O1" {
		t.Fatalf("wrong order id: %v", got)
	}
}

func TestGetOrder_NotFound(t *testing.T) {
	svc, r := newRouter(t)

	svc.EXPECT().GetOrder(gomock.Any(), "missing").Return(nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/order/missing", http.NoBody)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("want 404, got %d, body=%s", w.Code, w.Body.String())
	}
}

func TestGetOrder_InternalError(t *testing.T) {
	svc, r := newRouter(t)

	svc.EXPECT().GetOrder(gomock.Any(), "intErr").Return(nil, errors.New("db error"))

	req := httptest.NewRequest(http.MethodGet, "/order/intErr", http.NoBody)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("want 500, got %d, body=%s", w.Code, w.Body.String())
	}
}

func TestListOrders_OK(t *testing.T) {
	svc, r := newRouter(t)

	ret := []*domain.Order{{OrderID: "b"}, {OrderID: "a"}}
	svc.EXPECT().ListOrders(gomock.Any()).Return(ret, nil)

	req := httptest.NewRequest(http.MethodGet, "/order/list", http.NoBody)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("want 200, got %d, body=%s", w.Code, w.Body.String())
	}
	var got []*domain.Order
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(got) != 2 || got[0].OrderID != "b" || got[1].OrderID != "a" {
		t.Fatalf("unexpected result: %+v", got)
	}
}

// Литеральный маршрут /order/list не должен попадать в GET /order/:orderId.
func TestListOrders_RouteNotShadowedByParam(t *testing.T) {
	svc, r := newRouter(t)

	svc.EXPECT().ListOrders(gomock.Any()).Return([]*domain.Order{}, nil)
	svc.EXPECT().GetOrder(gomock.Any(), gomock.Any()).Times(0)

	req := httptest.NewRequest(http.MethodGet, "/order/list", http.NoBody)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("want 200, got %d, body=%s", w.Code, w.Body.String())
	}
	if strings.TrimSpace(w.Body.String()) != "[]" {
		t.Fatalf("empty collection must serialize as [], got %s", w.Body.String())
	}
}

func TestUpdateOrder_TotalOnly(t *testing.T) {
	svc, r := newRouter(t)

	svc.EXPECT().
		UpdateOrder(gomock.Any(), "O1", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, patch domain.OrderPatch) (*domain.Order, error) {
			if patch.TotalValue == nil || *patch.TotalValue != 200 {
				t.Fatalf("want totalValue=200 in patch, got %+v", patch)
			}
			if patch.Items != nil {
				t.Fatalf("items must stay untouched, got %+v", patch.Items)
			}
			o := storedOrder()
			o.TotalValue = 200
			return o, nil
		})

	req := httptest.NewRequest(http.MethodPut, "/order/O1", strings.NewReader(`{"totalValue":200}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("want 200, got %d, body=%s", w.Code, w.Body.String())
	}
}

func TestUpdateOrder_ItemsReplace(t *testing.T) {
	svc, r := newRouter(t)

	svc.EXPECT().
		UpdateOrder(gomock.Any(), "O1", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, patch domain.OrderPatch) (*domain.Order, error) {
			if patch.Items == nil || len(*patch.Items) != 1 {
				t.Fatalf("want one item in patch, got %+v", patch)
			}
			if (*patch.Items)[0].ProductID != "P9" {
				t.Fatalf("bad mapped item: %+v", (*patch.Items)[0])
			}
			o := storedOrder()
			o.Items = *patch.Items
			return o, nil
		})

	body := `{"items":[{"itemId":"P9","itemQuantity":1,"itemValue":10}]}`
	req := httptest.NewRequest(http.MethodPut, "/order/O1", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("want 200, got %d, body=%s", w.Code, w.Body.String())
	}
}

func TestUpdateOrder_EmptyItemsAllowed(t *testing.T) {
	svc, r := newRouter(t)

	svc.EXPECT().
		UpdateOrder(gomock.Any(), "O1", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, patch domain.OrderPatch) (*domain.Order, error) {
			if patch.Items == nil || len(*patch.Items) != 0 {
				t.Fatalf("want empty items replacement, got %+v", patch)
			}
			o := storedOrder()
			o.Items = []domain.Item{}
			return o, nil
		})

	req := httptest.NewRequest(http.MethodPut, "/order/O1", strings.NewReader(`{"items":[]}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("want 200, got %d, body=%s", w.Code, w.Body.String())
	}
}

func TestUpdateOrder_ItemsNotArray_400(t *testing.T) {
	svc, r := newRouter(t)
	svc.EXPECT().UpdateOrder(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	for _, body := range []string{`{"items":"oops"}`, `{"items":null}`, `{"items":42}`} {
		req := httptest.NewRequest(http.MethodPut, "/order/O1", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("body=%s: want 400, got %d, resp=%s", body, w.Code, w.Body.String())
		}
	}
}

// Пустое тело PUT — валидный запрос: оба поля патча опциональны,
// заказ возвращается без изменений.
func TestUpdateOrder_EmptyPatch_ReturnsUnchanged(t *testing.T) {
	svc, r := newRouter(t)

	stored := storedOrder()
	svc.EXPECT().
		UpdateOrder(gomock.Any(), "O1", domain.OrderPatch{}).
		Return(stored, nil)

	req := httptest.NewRequest(http.MethodPut, "/order/O1", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("want 200, got %d, body=%s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"orderId":"`+stored.OrderID+`"`) {
		t.Fatalf("response should contain the unchanged order, body=%s", w.Body.String())
	}
}

func TestUpdateOrder_NotFound(t *testing.T) {
	svc, r := newRouter(t)

	svc.EXPECT().UpdateOrder(gomock.Any(), "missing", gomock.Any()).Return(nil, nil)

	req := httptest.NewRequest(http.MethodPut, "/order/missing", strings.NewReader(`{"totalValue":1}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("want 404, got %d, body=%s", w.Code, w.Body.String())
	}
}

func TestDeleteOrder_OK(t *testing.T) {
	svc, r := newRouter(t)

	svc.EXPECT().DeleteOrder(gomock.Any(), "O1").Return(storedOrder(), nil)

	req := httptest.NewRequest(http.MethodDelete, "/order/O1", http.NoBody)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("want 200, got %d, body=%s", w.Code, w.Body.String())
	}

	var body struct {
		Message      string        `json:"message"`
		DeletedOrder *domain.Order `json:"deletedOrder"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if body.Message == "" || body.DeletedOrder == nil || body.DeletedOrder.OrderID != "O1" {
		t.Fatalf("confirmation must contain deleted order: %s", w.Body.String())
	}
}

func TestDeleteOrder_NotFound(t *testing.T) {
	svc, r := newRouter(t)

	svc.EXPECT().DeleteOrder(gomock.Any(), "missing").Return(nil, nil)

	req := httptest.NewRequest(http.MethodDelete, "/order/missing", http.NoBody)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("want 404, got %d, body=%s", w.Code, w.Body.String())
	}
}

func TestNoRoute_404JSON(t *testing.T) {
	_, r := newRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/no-such-route", http.NoBody)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("want 404, got %d, body=%s", w.Code, w.Body.String())
	}
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("404 body must be json: %v", err)
	}
	if body["error"] == "" {
		t.Fatalf("404 body must carry error field: %v", body)
	}
}

func TestPing_200(t *testing.T) {
	_, r := newRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/ping", http.NoBody)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("want 200, got %d", w.Code)
	}
}

func TestMetrics_200(t *testing.T) {
	_, r := newRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/metrics", http.NoBody)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("want 200, got %d", w.Code)
	}
	// содержимое меняется — достаточно непустого тела
	if w.Body.Len() == 0 {
		t.Fatal("metrics body is empty")
	}
}
