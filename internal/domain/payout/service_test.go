package payout_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/coinquest/coinquest-api/internal/domain/payout"
	"github.com/coinquest/coinquest-api/internal/domain/wallet"
	"github.com/coinquest/coinquest-api/internal/pkg/userlock"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func (c *fakeClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

const validMTN = "256770000001"

func newTestEngine(minWithdraw int64) (*payout.Service, *wallet.Service, *fakeClock) {
	clock := &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	walletSvc := wallet.NewServiceWithClock(wallet.NewMemoryStore(), clock.Now)
	engine := payout.NewServiceWithClock(walletSvc, userlock.New(), minWithdraw, clock.Now)
	return engine, walletSvc, clock
}

func credit(t *testing.T, walletSvc *wallet.Service, userID uuid.UUID, coins int64) {
	t.Helper()
	for i := int64(0); i < coins; i++ {
		if _, err := walletSvc.CreditCoins(context.Background(), userID, 1, ""); err != nil {
			t.Fatalf("credit failed: %v", err)
		}
	}
}

func TestRequestPayoutBelowMinimum(t *testing.T) {
	engine, walletSvc, _ := newTestEngine(30)
	userID := uuid.New()
	credit(t, walletSvc, userID, 29)

	_, err := engine.RequestPayout(context.Background(), userID, 29, validMTN)
	if !errors.Is(err, payout.ErrBelowMinimum) {
		t.Fatalf("expected ErrBelowMinimum, got %v", err)
	}
}

func TestRequestPayoutInsufficientBalance(t *testing.T) {
	engine, walletSvc, _ := newTestEngine(30)
	userID := uuid.New()
	credit(t, walletSvc, userID, 29)

	_, err := engine.RequestPayout(context.Background(), userID, 30, validMTN)
	if !errors.Is(err, payout.ErrInsufficientBalance) {
		t.Fatalf("expected ErrInsufficientBalance, got %v", err)
	}
}

func TestRequestPayoutMissingPaymentInfo(t *testing.T) {
	engine, walletSvc, _ := newTestEngine(30)
	userID := uuid.New()
	credit(t, walletSvc, userID, 30)

	cases := []string{"", "not-a-number", "12345", "+256 77 000"}
	for _, mtn := range cases {
		if _, err := engine.RequestPayout(context.Background(), userID, 30, mtn); !errors.Is(err, payout.ErrMissingPaymentInfo) {
			t.Fatalf("mtn %q: expected ErrMissingPaymentInfo, got %v", mtn, err)
		}
	}
}

func TestRequestPayoutAtExactMinimum(t *testing.T) {
	engine, walletSvc, _ := newTestEngine(30)
	userID := uuid.New()
	credit(t, walletSvc, userID, 30)

	pr, err := engine.RequestPayout(context.Background(), userID, 30, validMTN)
	if err != nil {
		t.Fatalf("request payout failed: %v", err)
	}
	if pr.Status != wallet.TxStatusPending {
		t.Fatalf("expected pending payout, got %s", pr.Status)
	}

	bal, _ := walletSvc.GetBalance(context.Background(), userID)
	if bal.Available != 0 {
		t.Fatalf("expected available to drop by 30, got %d", bal.Available)
	}
	if bal.Pending != 30 {
		t.Fatalf("expected 30 pending, got %d", bal.Pending)
	}
}

func TestRequestPayoutDailyLimit(t *testing.T) {
	engine, walletSvc, clock := newTestEngine(10)
	userID := uuid.New()
	credit(t, walletSvc, userID, 100)

	if _, err := engine.RequestPayout(context.Background(), userID, 10, validMTN); err != nil {
		t.Fatalf("first payout failed: %v", err)
	}

	// same calendar day, plenty of balance left
	clock.Advance(2 * time.Hour)
	if _, err := engine.RequestPayout(context.Background(), userID, 10, validMTN); !errors.Is(err, payout.ErrDailyLimitReached) {
		t.Fatalf("expected ErrDailyLimitReached, got %v", err)
	}

	// next UTC day is allowed again
	clock.Advance(24 * time.Hour)
	if _, err := engine.RequestPayout(context.Background(), userID, 10, validMTN); err != nil {
		t.Fatalf("payout on next day failed: %v", err)
	}
}

func TestRequestPayoutDailyLimitUTCBoundary(t *testing.T) {
	engine, walletSvc, clock := newTestEngine(10)
	userID := uuid.New()
	credit(t, walletSvc, userID, 100)

	// 23:50 UTC
	clock.Set(time.Date(2025, 6, 1, 23, 50, 0, 0, time.UTC))

	if _, err := engine.RequestPayout(context.Background(), userID, 10, validMTN); err != nil {
		t.Fatalf("first payout failed: %v", err)
	}

	// 20 minutes later it is a new UTC date
	clock.Advance(20 * time.Minute)
	if _, err := engine.RequestPayout(context.Background(), userID, 10, validMTN); err != nil {
		t.Fatalf("payout after UTC midnight failed: %v", err)
	}
}

func TestRequestPayoutValidationOrder(t *testing.T) {
	engine, walletSvc, _ := newTestEngine(30)
	userID := uuid.New()
	credit(t, walletSvc, userID, 5)

	// below minimum AND missing mtn: minimum check wins
	if _, err := engine.RequestPayout(context.Background(), userID, 5, ""); !errors.Is(err, payout.ErrBelowMinimum) {
		t.Fatalf("expected ErrBelowMinimum to win, got %v", err)
	}

	// above minimum, insufficient balance AND missing mtn: balance wins
	if _, err := engine.RequestPayout(context.Background(), userID, 40, ""); !errors.Is(err, payout.ErrInsufficientBalance) {
		t.Fatalf("expected ErrInsufficientBalance to win, got %v", err)
	}
}

func TestRequestPayoutConcurrentDoubleWithdrawal(t *testing.T) {
	engine, walletSvc, _ := newTestEngine(10)
	userID := uuid.New()
	credit(t, walletSvc, userID, 10)

	const workers = 8
	var wg sync.WaitGroup
	var mu sync.Mutex
	success := 0

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := engine.RequestPayout(context.Background(), userID, 10, validMTN)
			if err == nil {
				mu.Lock()
				success++
				mu.Unlock()
				return
			}
			if !errors.Is(err, payout.ErrInsufficientBalance) && !errors.Is(err, payout.ErrDailyLimitReached) {
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	if success != 1 {
		t.Fatalf("expected exactly 1 successful payout, got %d", success)
	}

	bal, _ := walletSvc.GetBalance(context.Background(), userID)
	if bal.Available != 0 || bal.Pending != 10 {
		t.Fatalf("ledger inconsistent after concurrent withdrawals: available=%d pending=%d", bal.Available, bal.Pending)
	}
}

func TestCompletePayout(t *testing.T) {
	engine, walletSvc, _ := newTestEngine(10)
	userID := uuid.New()
	credit(t, walletSvc, userID, 10)

	pr, err := engine.RequestPayout(context.Background(), userID, 10, validMTN)
	if err != nil {
		t.Fatalf("request payout failed: %v", err)
	}

	if err := engine.CompletePayout(context.Background(), userID, pr.ID); err != nil {
		t.Fatalf("complete payout failed: %v", err)
	}

	got, err := walletSvc.GetPayout(context.Background(), userID, pr.ID)
	if err != nil {
		t.Fatalf("get payout failed: %v", err)
	}
	if got.Status != wallet.TxStatusCompleted {
		t.Fatalf("expected completed, got %s", got.Status)
	}

	if err := engine.CompletePayout(context.Background(), userID, uuid.New()); !errors.Is(err, wallet.ErrPayoutNotFound) {
		t.Fatalf("expected ErrPayoutNotFound, got %v", err)
	}
}
