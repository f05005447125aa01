package pkg

import (
	"errors"
	"net/http"
	"testing"
)

func TestAppError(t *testing.T) {
	cause := errors.New("boom")
	e := NewDomainError("INTERNAL_ERROR", "An internal error occurred", cause, 0)
	if e.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("expected default 500, got %d", e.HTTPStatus)
	}
	if !errors.Is(e, cause) {
		t.Fatalf("expected wrapped cause")
	}
	if e.Error() != "INTERNAL_ERROR: An internal error occurred: boom" {
		t.Fatalf("unexpected message: %s", e.Error())
	}

	simple := NewDomainErrorSimple("PAYMENT_NOT_FOUND", "Payment not found", http.StatusNotFound)
	body := simple.ToHTTPError()
	if body.Code != "PAYMENT_NOT_FOUND" || body.Message != "Payment not found" {
		t.Fatalf("unexpected body: %+v", body)
	}
	if simple.Error() != "PAYMENT_NOT_FOUND: Payment not found" {
		t.Fatalf("unexpected message: %s", simple.Error())
	}
}
