package question_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/coinquest/coinquest-api/internal/domain/question"
	"github.com/coinquest/coinquest-api/internal/domain/session"
	"github.com/coinquest/coinquest-api/internal/pkg/userlock"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func seedN(t *testing.T, store question.Store, n int) []question.Question {
	t.Helper()
	out := make([]question.Question, 0, n)
	base := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		q := question.Question{
			ID:          uuid.New(),
			Text:        "question",
			Explanation: "explanation",
			Status:      question.StatusActive,
			CreatedAt:   base.Add(time.Duration(i) * time.Second),
		}
		if err := store.Insert(context.Background(), &q); err != nil {
			t.Fatalf("insert failed: %v", err)
		}
		out = append(out, q)
	}
	return out
}

func TestNextQuestionEmptyPool(t *testing.T) {
	svc := question.NewService(question.NewMemoryStore(), session.NewMemoryStore(), userlock.New())

	q, err := svc.NextQuestion(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("next question failed: %v", err)
	}
	if q != nil {
		t.Fatalf("expected nil question for empty pool, got %+v", q)
	}
}

func TestNextQuestionAvoidsLastServed(t *testing.T) {
	store := question.NewMemoryStore()
	cursors := session.NewMemoryStore()
	clock := &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	svc := question.NewServiceWithClock(store, cursors, userlock.New(), clock.Now)

	pool := seedN(t, store, 3)
	userID := uuid.New()

	first, err := svc.NextQuestion(context.Background(), userID)
	if err != nil {
		t.Fatalf("next question failed: %v", err)
	}
	if first.ID != pool[0].ID {
		t.Fatalf("expected first active question, got %s", first.ID)
	}

	second, err := svc.NextQuestion(context.Background(), userID)
	if err != nil {
		t.Fatalf("next question failed: %v", err)
	}
	if second.ID == first.ID {
		t.Fatalf("immediate repeat served: %s", second.ID)
	}
	if second.ID != pool[1].ID {
		t.Fatalf("expected second active question, got %s", second.ID)
	}
}

func TestNextQuestionSingletonPoolRepeats(t *testing.T) {
	store := question.NewMemoryStore()
	svc := question.NewService(store, session.NewMemoryStore(), userlock.New())

	pool := seedN(t, store, 1)
	userID := uuid.New()

	for i := 0; i < 2; i++ {
		q, err := svc.NextQuestion(context.Background(), userID)
		if err != nil {
			t.Fatalf("next question failed: %v", err)
		}
		if q.ID != pool[0].ID {
			t.Fatalf("expected the only question, got %s", q.ID)
		}
	}
}

func TestNextQuestionSkipsInactive(t *testing.T) {
	store := question.NewMemoryStore()
	svc := question.NewService(store, session.NewMemoryStore(), userlock.New())

	paused := question.Question{ID: uuid.New(), Text: "paused", Status: question.StatusPaused, CreatedAt: time.Now()}
	if err := store.Insert(context.Background(), &paused); err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	active := seedN(t, store, 1)

	q, err := svc.NextQuestion(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("next question failed: %v", err)
	}
	if q.ID != active[0].ID {
		t.Fatalf("served a non-active question: %s", q.ID)
	}
}

func TestNextQuestionStampsCursor(t *testing.T) {
	store := question.NewMemoryStore()
	cursors := session.NewMemoryStore()
	clock := &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	svc := question.NewServiceWithClock(store, cursors, userlock.New(), clock.Now)

	pool := seedN(t, store, 2)
	userID := uuid.New()

	if _, err := svc.NextQuestion(context.Background(), userID); err != nil {
		t.Fatalf("next question failed: %v", err)
	}

	cur, err := cursors.Get(context.Background(), userID)
	if err != nil {
		t.Fatalf("cursor get failed: %v", err)
	}
	if cur.LastServedQuestionID != pool[0].ID {
		t.Fatalf("cursor not stamped with served question")
	}
	if !cur.LastServedAt.Equal(clock.Now()) {
		t.Fatalf("cursor served-at not stamped: %v", cur.LastServedAt)
	}
}

func TestNextQuestionAnonymousLeavesNoCursor(t *testing.T) {
	store := question.NewMemoryStore()
	cursors := session.NewMemoryStore()
	svc := question.NewService(store, cursors, userlock.New())

	pool := seedN(t, store, 2)

	q, err := svc.NextQuestion(context.Background(), uuid.Nil)
	if err != nil {
		t.Fatalf("next question failed: %v", err)
	}
	if q.ID != pool[0].ID {
		t.Fatalf("expected first active question for anonymous caller, got %s", q.ID)
	}

	cur, err := cursors.Get(context.Background(), uuid.Nil)
	if err != nil {
		t.Fatalf("cursor get failed: %v", err)
	}
	if cur.LastServedQuestionID != uuid.Nil {
		t.Fatalf("anonymous serve must not stamp a cursor")
	}
}

func TestSeedIsIdempotent(t *testing.T) {
	store := question.NewMemoryStore()

	if err := question.Seed(context.Background(), store); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	first, _ := store.Count(context.Background())
	if first == 0 {
		t.Fatal("seed inserted nothing")
	}

	if err := question.Seed(context.Background(), store); err != nil {
		t.Fatalf("second seed failed: %v", err)
	}
	second, _ := store.Count(context.Background())
	if second != first {
		t.Fatalf("seed is not idempotent: %d then %d", first, second)
	}
}
