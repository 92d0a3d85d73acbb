package wallet_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/coinquest/coinquest-api/internal/domain/wallet"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestService() (*wallet.Service, *fakeClock) {
	clock := &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	svc := wallet.NewServiceWithClock(wallet.NewMemoryStore(), clock.Now)
	return svc, clock
}

func TestCreditCoinsIncreasesAvailable(t *testing.T) {
	svc, _ := newTestService()
	userID := uuid.New()

	tx, err := svc.CreditCoins(context.Background(), userID, 1, "answer:q1")
	if err != nil {
		t.Fatalf("credit failed: %v", err)
	}
	if tx.Type != wallet.TxTypeCredit || tx.Status != wallet.TxStatusCompleted {
		t.Fatalf("unexpected transaction shape: %+v", tx)
	}
	if tx.Reference == nil || *tx.Reference != "answer:q1" {
		t.Fatalf("expected reference answer:q1, got %v", tx.Reference)
	}

	bal, err := svc.GetBalance(context.Background(), userID)
	if err != nil {
		t.Fatalf("get balance failed: %v", err)
	}
	if bal.Available != 1 || bal.Pending != 0 {
		t.Fatalf("expected available=1 pending=0, got %d/%d", bal.Available, bal.Pending)
	}
}

func TestCreditCoinsInvalidAmount(t *testing.T) {
	svc, _ := newTestService()

	if _, err := svc.CreditCoins(context.Background(), uuid.New(), 0, ""); !errors.Is(err, wallet.ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
	if _, err := svc.CreditCoins(context.Background(), uuid.New(), -5, ""); !errors.Is(err, wallet.ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
}

func TestCreatePayoutMovesAvailableToPending(t *testing.T) {
	svc, _ := newTestService()
	userID := uuid.New()

	for i := 0; i < 30; i++ {
		if _, err := svc.CreditCoins(context.Background(), userID, 1, ""); err != nil {
			t.Fatalf("credit failed: %v", err)
		}
	}

	pr, err := svc.CreatePayout(context.Background(), userID, 30, "256770000001")
	if err != nil {
		t.Fatalf("create payout failed: %v", err)
	}
	if pr.Status != wallet.TxStatusPending {
		t.Fatalf("expected pending payout, got %s", pr.Status)
	}

	bal, err := svc.GetBalance(context.Background(), userID)
	if err != nil {
		t.Fatalf("get balance failed: %v", err)
	}
	if bal.Available != 0 {
		t.Fatalf("expected available=0 after payout, got %d", bal.Available)
	}
	if bal.Pending != 30 {
		t.Fatalf("expected pending=30, got %d", bal.Pending)
	}
}

func TestCreatePayoutLinksTransaction(t *testing.T) {
	svc, _ := newTestService()
	userID := uuid.New()

	if _, err := svc.CreditCoins(context.Background(), userID, 50, ""); err != nil {
		t.Fatalf("credit failed: %v", err)
	}
	pr, err := svc.CreatePayout(context.Background(), userID, 50, "256770000001")
	if err != nil {
		t.Fatalf("create payout failed: %v", err)
	}

	bal, _ := svc.GetBalance(context.Background(), userID)
	var linked int
	for _, tx := range bal.Transactions {
		if tx.Type == wallet.TxTypePayoutRequest {
			if tx.Reference == nil || *tx.Reference != pr.ID.String() {
				t.Fatalf("payout_request transaction not linked to payout id: %+v", tx)
			}
			linked++
		}
	}
	if linked != 1 {
		t.Fatalf("expected exactly 1 payout_request transaction, got %d", linked)
	}
}

func TestMarkPayoutCompletedFlipsBoth(t *testing.T) {
	svc, _ := newTestService()
	userID := uuid.New()

	if _, err := svc.CreditCoins(context.Background(), userID, 40, ""); err != nil {
		t.Fatalf("credit failed: %v", err)
	}
	pr, err := svc.CreatePayout(context.Background(), userID, 40, "256770000001")
	if err != nil {
		t.Fatalf("create payout failed: %v", err)
	}

	if err := svc.MarkPayoutCompleted(context.Background(), userID, pr.ID); err != nil {
		t.Fatalf("mark completed failed: %v", err)
	}

	got, err := svc.GetPayout(context.Background(), userID, pr.ID)
	if err != nil {
		t.Fatalf("get payout failed: %v", err)
	}
	if got.Status != wallet.TxStatusCompleted {
		t.Fatalf("expected completed payout, got %s", got.Status)
	}

	bal, _ := svc.GetBalance(context.Background(), userID)
	if bal.Pending != 0 {
		t.Fatalf("expected pending=0 after completion, got %d", bal.Pending)
	}
	// completed payout_request still deducts from available
	if bal.Available != 0 {
		t.Fatalf("expected available=0 after completion, got %d", bal.Available)
	}
	for _, tx := range bal.Transactions {
		if tx.Type == wallet.TxTypePayoutRequest && tx.Status != wallet.TxStatusCompleted {
			t.Fatalf("linked transaction not completed: %+v", tx)
		}
	}
}

func TestMarkPayoutCompletedNotFound(t *testing.T) {
	svc, _ := newTestService()

	err := svc.MarkPayoutCompleted(context.Background(), uuid.New(), uuid.New())
	if !errors.Is(err, wallet.ErrPayoutNotFound) {
		t.Fatalf("expected ErrPayoutNotFound, got %v", err)
	}
}

func TestGetBalanceFoldMatchesLog(t *testing.T) {
	svc, clock := newTestService()
	userID := uuid.New()

	// a mixed history: 10 credits, one pending payout of 4
	for i := 0; i < 10; i++ {
		if _, err := svc.CreditCoins(context.Background(), userID, 1, ""); err != nil {
			t.Fatalf("credit failed: %v", err)
		}
		clock.Advance(time.Second)
	}
	if _, err := svc.CreatePayout(context.Background(), userID, 4, "256770000001"); err != nil {
		t.Fatalf("create payout failed: %v", err)
	}

	bal, err := svc.GetBalance(context.Background(), userID)
	if err != nil {
		t.Fatalf("get balance failed: %v", err)
	}

	// recompute the fold independently from the returned log
	var available, pending int64
	for _, tx := range bal.Transactions {
		if tx.Type == wallet.TxTypeCredit && tx.Status == wallet.TxStatusCompleted {
			available += tx.AmountCoins
		}
		if (tx.Type == wallet.TxTypeDebit || tx.Type == wallet.TxTypePayoutRequest) && tx.Status != wallet.TxStatusFailed {
			available -= tx.AmountCoins
		}
		if tx.Status == wallet.TxStatusPending && (tx.Type == wallet.TxTypeDebit || tx.Type == wallet.TxTypePayoutRequest) {
			pending += tx.AmountCoins
		}
	}
	if bal.Available != available || bal.Pending != pending {
		t.Fatalf("fold mismatch: got %d/%d want %d/%d", bal.Available, bal.Pending, available, pending)
	}
	if bal.Available != 6 || bal.Pending != 4 {
		t.Fatalf("expected 6 available / 4 pending, got %d/%d", bal.Available, bal.Pending)
	}
}

func TestGetBalanceTransactionsNewestFirst(t *testing.T) {
	svc, clock := newTestService()
	userID := uuid.New()

	for i := 0; i < 5; i++ {
		if _, err := svc.CreditCoins(context.Background(), userID, 1, ""); err != nil {
			t.Fatalf("credit failed: %v", err)
		}
		clock.Advance(time.Minute)
	}

	bal, _ := svc.GetBalance(context.Background(), userID)
	for i := 1; i < len(bal.Transactions); i++ {
		if bal.Transactions[i].CreatedAt.After(bal.Transactions[i-1].CreatedAt) {
			t.Fatalf("transactions not sorted newest-first at index %d", i)
		}
	}
}

func TestLastPayoutRequestAt(t *testing.T) {
	svc, clock := newTestService()
	userID := uuid.New()

	last, err := svc.LastPayoutRequestAt(context.Background(), userID)
	if err != nil {
		t.Fatalf("last payout at failed: %v", err)
	}
	if last != nil {
		t.Fatalf("expected nil for user with no payouts, got %v", last)
	}

	if _, err := svc.CreditCoins(context.Background(), userID, 100, ""); err != nil {
		t.Fatalf("credit failed: %v", err)
	}
	first := clock.Now()
	if _, err := svc.CreatePayout(context.Background(), userID, 10, "256770000001"); err != nil {
		t.Fatalf("create payout failed: %v", err)
	}
	clock.Advance(48 * time.Hour)
	second := clock.Now()
	if _, err := svc.CreatePayout(context.Background(), userID, 10, "256770000001"); err != nil {
		t.Fatalf("create payout failed: %v", err)
	}

	last, err = svc.LastPayoutRequestAt(context.Background(), userID)
	if err != nil {
		t.Fatalf("last payout at failed: %v", err)
	}
	if last == nil || !last.Equal(second) {
		t.Fatalf("expected last payout at %v, got %v (first was %v)", second, last, first)
	}
}
