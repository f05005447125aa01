package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"

	"settlement_service/internal/adapter/persistence/repository"
	"settlement_service/internal/domain/entities"
	"settlement_service/internal/usecase/interfaces"
	mock_interfaces "settlement_service/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

func TestPaymentRecordManager_OpenOrReuse(t *testing.T) {
	ctx := context.Background()

	t.Run("creates then reuses", func(t *testing.T) {
		m := NewPaymentRecordManager(repository.NewPaymentMemoryRepository(), nil)

		p1, err := m.OpenOrReuse(ctx, "ord-1", entities.ProviderRazorpay)
		if err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
		if p1.Status != entities.PaymentStatusCreated || p1.ID == "" {
			t.Fatalf("unexpected payment: %+v", p1)
		}
		p2, err := m.OpenOrReuse(ctx, "ord-1", entities.ProviderRazorpay)
		if err != nil || p2.ID != p1.ID {
			t.Fatalf("expected reuse of %s, got %+v err=%v", p1.ID, p2, err)
		}
	})

	t.Run("provider mismatch", func(t *testing.T) {
		m := NewPaymentRecordManager(repository.NewPaymentMemoryRepository(), nil)
		if _, err := m.OpenOrReuse(ctx, "ord-1", entities.ProviderRazorpay); err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
		if _, err := m.OpenOrReuse(ctx, "ord-1", entities.ProviderStripe); !errors.Is(err, ErrProviderMismatch) {
			t.Fatalf("expected ErrProviderMismatch, got %v", err)
		}
	})

	t.Run("paid order refuses", func(t *testing.T) {
		m := NewPaymentRecordManager(repository.NewPaymentMemoryRepository(), nil)
		p, _ := m.OpenOrReuse(ctx, "ord-1", entities.ProviderRazorpay)
		if _, err := m.AttachProviderSession(ctx, p.ID, "order_1", ""); err != nil {
			t.Fatalf("attach: %v", err)
		}
		if _, _, err := m.Settle(ctx, entities.ByOrderID("ord-1"), "pay_1"); err != nil {
			t.Fatalf("settle: %v", err)
		}
		if _, err := m.OpenOrReuse(ctx, "ord-1", entities.ProviderRazorpay); !errors.Is(err, ErrPaymentAlreadySettled) {
			t.Fatalf("expected ErrPaymentAlreadySettled, got %v", err)
		}
	})

	t.Run("failed payment is superseded", func(t *testing.T) {
		m := NewPaymentRecordManager(repository.NewPaymentMemoryRepository(), nil)
		p, _ := m.OpenOrReuse(ctx, "ord-1", entities.ProviderRazorpay)
		if _, applied, err := m.Fail(ctx, entities.ByOrderID("ord-1")); err != nil || !applied {
			t.Fatalf("fail: applied=%v err=%v", applied, err)
		}
		next, err := m.OpenOrReuse(ctx, "ord-1", entities.ProviderStripe)
		if err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
		if next.ID == p.ID || next.Status != entities.PaymentStatusCreated || next.Provider != entities.ProviderStripe {
			t.Fatalf("expected a fresh attempt, got %+v", next)
		}
	})

	t.Run("empty order id", func(t *testing.T) {
		m := NewPaymentRecordManager(repository.NewPaymentMemoryRepository(), nil)
		if _, err := m.OpenOrReuse(ctx, "  ", entities.ProviderRazorpay); !errors.Is(err, ErrInvalidOrderID) {
			t.Fatalf("expected ErrInvalidOrderID, got %v", err)
		}
	})

	t.Run("concurrent opens share one payment", func(t *testing.T) {
		m := NewPaymentRecordManager(repository.NewPaymentMemoryRepository(), nil)
		const n = 16
		ids := make([]string, n)
		var wg sync.WaitGroup
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				p, err := m.OpenOrReuse(ctx, "ord-race", entities.ProviderRazorpay)
				if err != nil {
					t.Errorf("open %d: %v", i, err)
					return
				}
				ids[i] = p.ID
			}(i)
		}
		wg.Wait()
		for i := 1; i < n; i++ {
			if ids[i] != ids[0] {
				t.Fatalf("expected one payment, got %s and %s", ids[0], ids[i])
			}
		}
	})

	t.Run("persistent contention", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_interfaces.NewMockIPaymentRepository(ctrl)
		repo.EXPECT().GetByOrderID(gomock.Any(), "ord-1").Return(entities.Payment{}, nil).Times(maxOpenAttempts)
		repo.EXPECT().Create(gomock.Any(), gomock.Any(), "").Return(entities.Payment{}, interfaces.ErrActivePaymentExists).Times(maxOpenAttempts)

		m := NewPaymentRecordManager(repo, nil)
		if _, err := m.OpenOrReuse(ctx, "ord-1", entities.ProviderRazorpay); !errors.Is(err, ErrOpenContention) {
			t.Fatalf("expected ErrOpenContention, got %v", err)
		}
	})

	t.Run("storage error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_interfaces.NewMockIPaymentRepository(ctrl)
		boom := errors.New("dynamo down")
		repo.EXPECT().GetByOrderID(gomock.Any(), "ord-1").Return(entities.Payment{}, boom)

		m := NewPaymentRecordManager(repo, nil)
		if _, err := m.OpenOrReuse(ctx, "ord-1", entities.ProviderRazorpay); !errors.Is(err, boom) {
			t.Fatalf("expected wrapped storage error, got %v", err)
		}
	})
}

func TestPaymentRecordManager_Transitions(t *testing.T) {
	ctx := context.Background()

	open := func(t *testing.T) (*PaymentRecordManager, entities.Payment) {
		t.Helper()
		m := NewPaymentRecordManager(repository.NewPaymentMemoryRepository(), nil)
		p, err := m.OpenOrReuse(ctx, "ord-1", entities.ProviderRazorpay)
		if err != nil {
			t.Fatalf("open: %v", err)
		}
		p, err = m.AttachProviderSession(ctx, p.ID, "order_1", "https://pay.example/1")
		if err != nil {
			t.Fatalf("attach: %v", err)
		}
		return m, p
	}

	t.Run("attach moves to pending once", func(t *testing.T) {
		m, p := open(t)
		if p.Status != entities.PaymentStatusPending || p.ProviderSessionID != "order_1" {
			t.Fatalf("unexpected payment: %+v", p)
		}
		again, err := m.AttachProviderSession(ctx, p.ID, "order_2", "")
		if err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
		if again.ProviderSessionID != "order_1" {
			t.Fatalf("expected first session to win, got %s", again.ProviderSessionID)
		}
	})

	t.Run("settle is applied once and sticky", func(t *testing.T) {
		m, _ := open(t)
		p, applied, err := m.Settle(ctx, entities.BySessionID(entities.ProviderRazorpay, "order_1"), "pay_1")
		if err != nil || !applied || p.Status != entities.PaymentStatusPaid || p.ProviderPaymentID != "pay_1" {
			t.Fatalf("unexpected settle: %+v applied=%v err=%v", p, applied, err)
		}
		if _, applied, err := m.Settle(ctx, entities.ByOrderID("ord-1"), "pay_1"); err != nil || applied {
			t.Fatalf("expected repeated settle to be a no-op, applied=%v err=%v", applied, err)
		}
		p, applied, err = m.Fail(ctx, entities.ByConfirmationID(entities.ProviderRazorpay, "pay_1"))
		if err != nil || applied || p.Status != entities.PaymentStatusPaid {
			t.Fatalf("expected PAID to stay PAID, got %+v applied=%v err=%v", p, applied, err)
		}
	})

	t.Run("settle after fail", func(t *testing.T) {
		m, _ := open(t)
		if _, applied, _ := m.Fail(ctx, entities.ByOrderID("ord-1")); !applied {
			t.Fatalf("expected fail to apply")
		}
		if _, applied, _ := m.Fail(ctx, entities.ByOrderID("ord-1")); applied {
			t.Fatalf("expected second fail to be a no-op")
		}
		p, applied, err := m.Settle(ctx, entities.BySessionID(entities.ProviderRazorpay, "order_1"), "pay_late")
		if err != nil || !applied || p.Status != entities.PaymentStatusPaid {
			t.Fatalf("expected late capture to settle, got %+v applied=%v err=%v", p, applied, err)
		}
	})

	t.Run("concurrent settles apply once", func(t *testing.T) {
		m, _ := open(t)
		const n = 12
		var (
			wg      sync.WaitGroup
			mu      sync.Mutex
			applied int
		)
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, ok, err := m.Settle(ctx, entities.BySessionID(entities.ProviderRazorpay, "order_1"), "pay_1")
				if err != nil {
					t.Errorf("settle: %v", err)
					return
				}
				if ok {
					mu.Lock()
					applied++
					mu.Unlock()
				}
			}()
		}
		wg.Wait()
		if applied != 1 {
			t.Fatalf("expected exactly one applied settle, got %d", applied)
		}
	})

	t.Run("confirmation conflict", func(t *testing.T) {
		repo := repository.NewPaymentMemoryRepository()
		m := NewPaymentRecordManager(repo, nil)
		a, _ := m.OpenOrReuse(ctx, "ord-a", entities.ProviderRazorpay)
		b, _ := m.OpenOrReuse(ctx, "ord-b", entities.ProviderRazorpay)
		_, _ = m.AttachProviderSession(ctx, a.ID, "order_a", "")
		_, _ = m.AttachProviderSession(ctx, b.ID, "order_b", "")
		if _, _, err := m.Settle(ctx, entities.ByOrderID("ord-a"), "pay_shared"); err != nil {
			t.Fatalf("settle a: %v", err)
		}
		if _, _, err := m.Settle(ctx, entities.ByOrderID("ord-b"), "pay_shared"); !errors.Is(err, ErrConfirmationConflict) {
			t.Fatalf("expected ErrConfirmationConflict, got %v", err)
		}
	})

	t.Run("session conflict", func(t *testing.T) {
		m := NewPaymentRecordManager(repository.NewPaymentMemoryRepository(), nil)
		a, _ := m.OpenOrReuse(ctx, "ord-a", entities.ProviderRazorpay)
		b, _ := m.OpenOrReuse(ctx, "ord-b", entities.ProviderRazorpay)
		_, _ = m.AttachProviderSession(ctx, a.ID, "order_x", "")
		if _, err := m.AttachProviderSession(ctx, b.ID, "order_x", ""); !errors.Is(err, ErrSessionConflict) {
			t.Fatalf("expected ErrSessionConflict, got %v", err)
		}
	})
}

func TestPaymentRecordManager_Find(t *testing.T) {
	ctx := context.Background()
	m := NewPaymentRecordManager(repository.NewPaymentMemoryRepository(), nil)

	if _, err := m.Find(ctx, entities.ByOrderID("")); !errors.Is(err, ErrInvalidLookupKey) {
		t.Fatalf("expected ErrInvalidLookupKey, got %v", err)
	}
	if _, err := m.Find(ctx, entities.LookupKey{Value: "x"}); !errors.Is(err, ErrInvalidLookupKey) {
		t.Fatalf("expected ErrInvalidLookupKey for unknown key kind, got %v", err)
	}
	if _, err := m.Find(ctx, entities.BySessionID(entities.ProviderStripe, "cs_404")); !errors.Is(err, ErrPaymentNotFound) {
		t.Fatalf("expected ErrPaymentNotFound, got %v", err)
	}

	p, _ := m.OpenOrReuse(ctx, "ord-1", entities.ProviderStripe)
	_, _ = m.AttachProviderSession(ctx, p.ID, "cs_1", "")
	if _, err := m.Find(ctx, entities.BySessionID(entities.ProviderRazorpay, "cs_1")); !errors.Is(err, ErrPaymentNotFound) {
		t.Fatalf("expected session ids to be scoped by provider, got %v", err)
	}
	got, err := m.Find(ctx, entities.BySessionID(entities.ProviderStripe, "cs_1"))
	if err != nil || got.ID != p.ID {
		t.Fatalf("unexpected find: %+v err=%v", got, err)
	}
}
