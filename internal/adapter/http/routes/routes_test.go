package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"settlement_service/internal/infrastructure/config"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func TestGetRoutes_MemoryStorageMockGateways(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := config.Config{
		Port:          8080,
		StorageDriver: config.StorageMemory,
		OrderService:  config.OrderServiceConfig{BaseURL: "http://127.0.0.1:1", Notifier: config.NotifierHTTP},
		GatewayMock:   true,
	}

	router := gin.New()
	closers, err := getRoutes(context.Background(), router, cfg, zap.NewNop())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(closers) != 0 {
		t.Fatalf("expected no closers for memory storage, got %d", len(closers))
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/ping", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 from ping, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/payments/orders/ord-unknown", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown order payment, got %d", w.Code)
	}
}

func TestNewProviderAdapters(t *testing.T) {
	log := zap.NewNop()

	all := newProviderAdapters(config.Config{GatewayMock: true}, nil, nil, log)
	if len(all) != 3 {
		t.Fatalf("expected 3 adapters in mock mode, got %d", len(all))
	}

	none := newProviderAdapters(config.Config{}, nil, nil, log)
	if len(none) != 0 {
		t.Fatalf("expected no adapters without credentials, got %d", len(none))
	}

	onlyRazorpay := newProviderAdapters(config.Config{Razorpay: config.RazorpayConfig{KeyID: "rzp_test", KeySecret: "s"}}, nil, nil, log)
	if len(onlyRazorpay) != 1 || onlyRazorpay[0].Provider() != "RAZORPAY" {
		t.Fatalf("expected only razorpay adapter, got %d", len(onlyRazorpay))
	}
}
