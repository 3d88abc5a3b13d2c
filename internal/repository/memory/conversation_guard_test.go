package memory

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
)

func TestConversationGuardRejectsOverlap(t *testing.T) {
	g := NewConversationGuard()
	ctx := context.Background()
	session := uuid.New()

	ok, err := g.TryAcquire(ctx, session)
	if err != nil || !ok {
		t.Fatalf("first acquire = (%v, %v), want (true, nil)", ok, err)
	}

	ok, err = g.TryAcquire(ctx, session)
	if err != nil || ok {
		t.Fatalf("overlapping acquire = (%v, %v), want (false, nil)", ok, err)
	}

	if err := g.Release(ctx, session); err != nil {
		t.Fatalf("release error: %v", err)
	}

	ok, _ = g.TryAcquire(ctx, session)
	if !ok {
		t.Error("acquire after release should succeed")
	}
}

func TestConversationGuardIsPerSession(t *testing.T) {
	g := NewConversationGuard()
	ctx := context.Background()

	a, b := uuid.New(), uuid.New()
	if ok, _ := g.TryAcquire(ctx, a); !ok {
		t.Fatal("acquire a failed")
	}
	if ok, _ := g.TryAcquire(ctx, b); !ok {
		t.Error("session b should not be blocked by session a")
	}
}

func TestConversationGuardConcurrentAcquire(t *testing.T) {
	g := NewConversationGuard()
	ctx := context.Background()
	session := uuid.New()

	const racers = 32
	wins := make(chan bool, racers)

	var wg sync.WaitGroup
	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, _ := g.TryAcquire(ctx, session)
			wins <- ok
		}()
	}
	wg.Wait()
	close(wins)

	won := 0
	for ok := range wins {
		if ok {
			won++
		}
	}
	if won != 1 {
		t.Errorf("winners = %d, want exactly 1", won)
	}
}
