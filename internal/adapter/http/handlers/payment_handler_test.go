package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"settlement_service/internal/adapter/http/handlers/mocks"
	"settlement_service/internal/domain/entities"
	"settlement_service/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

func newPaymentRouter(uc usecase.IReconciliationUseCase) *gin.Engine {
	h := NewPaymentHandler(uc, zap.NewNop())
	r := gin.New()
	r.POST("/v1/payments/:provider/intents", h.OpenIntent)
	r.POST("/v1/payments/:provider/verify", h.Verify)
	r.GET("/v1/payments/orders/:order_id", h.GetByOrder)
	r.POST("/v1/payments/orders/:order_id/notify", h.Notify)
	return r
}

func doJSON(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestPaymentHandler_OpenIntent(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("unsupported provider", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIReconciliationUseCase(ctrl)

		w := doJSON(newPaymentRouter(uc), http.MethodPost, "/v1/payments/paypal/intents", `{"order_id":"ord-1"}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("invalid payload", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIReconciliationUseCase(ctrl)

		w := doJSON(newPaymentRouter(uc), http.MethodPost, "/v1/payments/razorpay/intents", `{`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("usecase mapped errors", func(t *testing.T) {
		cases := []struct {
			err  error
			code int
		}{
			{usecase.ErrOrderNotFound, http.StatusNotFound},
			{usecase.ErrPaymentAlreadySettled, http.StatusConflict},
			{usecase.ErrProviderMismatch, http.StatusConflict},
			{fmt.Errorf("%w: timeout", usecase.ErrProviderUnavailable), http.StatusBadGateway},
			{usecase.ErrOrderServiceUnavailable, http.StatusBadGateway},
			{usecase.ErrInvalidOrderAmount, http.StatusUnprocessableEntity},
		}
		for _, tc := range cases {
			ctrl := gomock.NewController(t)
			uc := mocks.NewMockIReconciliationUseCase(ctrl)
			uc.EXPECT().OpenPayment(gomock.Any(), entities.ProviderRazorpay, "ord-1").Return(entities.PaymentIntent{}, tc.err)

			w := doJSON(newPaymentRouter(uc), http.MethodPost, "/v1/payments/razorpay/intents", `{"order_id":"ord-1"}`)
			if w.Code != tc.code {
				t.Fatalf("%v: expected %d, got %d", tc.err, tc.code, w.Code)
			}
		}
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIReconciliationUseCase(ctrl)
		uc.EXPECT().OpenPayment(gomock.Any(), entities.ProviderRazorpay, "ord-1").Return(entities.PaymentIntent{
			PaymentID:         "pay-1",
			Provider:          entities.ProviderRazorpay,
			ProviderSessionID: "order_abc",
			PublicKey:         "rzp_test_key",
			AmountMinor:       4599,
			Currency:          "INR",
		}, nil)

		w := doJSON(newPaymentRouter(uc), http.MethodPost, "/v1/payments/razorpay/intents", `{"order_id":" ord-1 "}`)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var body map[string]any
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if body["provider_session_id"] != "order_abc" || body["public_key"] != "rzp_test_key" || body["amount"] != float64(4599) {
			t.Fatalf("unexpected body: %v", body)
		}
	})
}

func TestPaymentHandler_Verify(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("unauthenticated", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIReconciliationUseCase(ctrl)
		uc.EXPECT().VerifyClientPayment(gomock.Any(), entities.ProviderRazorpay, gomock.Any()).Return(entities.Payment{}, usecase.ErrUnauthenticated)

		w := doJSON(newPaymentRouter(uc), http.MethodPost, "/v1/payments/razorpay/verify",
			`{"order_id":"ord-1","provider_order_id":"order_abc","provider_payment_id":"pay_1","signature":"bad"}`)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
	})

	t.Run("verified", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIReconciliationUseCase(ctrl)
		want := entities.ClientVerification{OrderID: "ord-1", ProviderOrderID: "order_abc", ProviderPaymentID: "pay_1", Signature: "sig"}
		uc.EXPECT().VerifyClientPayment(gomock.Any(), entities.ProviderRazorpay, want).
			Return(entities.Payment{ID: "p-1", Status: entities.PaymentStatusPaid}, nil)

		w := doJSON(newPaymentRouter(uc), http.MethodPost, "/v1/payments/razorpay/verify",
			`{"order_id":"ord-1","provider_order_id":"order_abc","provider_payment_id":"pay_1","signature":"sig"}`)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var body map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		if body["status"] != "verified" {
			t.Fatalf("unexpected body: %v", body)
		}
	})
}

func TestPaymentHandler_GetByOrderAndNotify(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIReconciliationUseCase(ctrl)
		uc.EXPECT().GetPaymentByOrder(gomock.Any(), "ord-404").Return(entities.Payment{}, usecase.ErrPaymentNotFound)

		w := doJSON(newPaymentRouter(uc), http.MethodGet, "/v1/payments/orders/ord-404", "")
		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})

	t.Run("found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIReconciliationUseCase(ctrl)
		uc.EXPECT().GetPaymentByOrder(gomock.Any(), "ord-1").Return(entities.Payment{ID: "p-1", OrderID: "ord-1", Status: entities.PaymentStatusPending}, nil)

		w := doJSON(newPaymentRouter(uc), http.MethodGet, "/v1/payments/orders/ord-1", "")
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})

	t.Run("notify not settled", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIReconciliationUseCase(ctrl)
		uc.EXPECT().RenotifyOrder(gomock.Any(), "ord-1").Return(entities.Payment{}, usecase.ErrPaymentNotSettled)

		w := doJSON(newPaymentRouter(uc), http.MethodPost, "/v1/payments/orders/ord-1/notify", "")
		if w.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", w.Code)
		}
	})

	t.Run("notify failed", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIReconciliationUseCase(ctrl)
		uc.EXPECT().RenotifyOrder(gomock.Any(), "ord-1").Return(entities.Payment{}, fmt.Errorf("%w: 503", usecase.ErrOrderNotifyFailed))

		w := doJSON(newPaymentRouter(uc), http.MethodPost, "/v1/payments/orders/ord-1/notify", "")
		if w.Code != http.StatusBadGateway {
			t.Fatalf("expected 502, got %d", w.Code)
		}
	})
}
