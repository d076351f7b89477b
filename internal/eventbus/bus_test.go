package eventbus

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/blueprintkit/blueprint/internal/event"
)

func TestBus_DeliversToAllSubscribers(t *testing.T) {
	bus := New(8)

	var mu sync.Mutex
	var got []string
	record := func(name string) Handler {
		return HandlerFunc(func(_ context.Context, evt event.Event) error {
			mu.Lock()
			defer mu.Unlock()
			got = append(got, name+":"+evt.Type)
			return nil
		})
	}
	bus.Subscribe("a", record("a"))
	bus.Subscribe("b", record("b"))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	bus.Start(ctx)

	bus.Publish(ctx, event.NewBuildStarted("app.yaml"))
	bus.Publish(ctx, event.NewBuildSucceeded("app.yaml", 3, time.Millisecond))

	want := []string{"a:build_started", "b:build_started", "a:build_succeeded", "b:build_succeeded"}
	deadline := time.After(2 * time.Second)
	for {
		mu.Lock()
		n := len(got)
		mu.Unlock()
		if n >= len(want) {
			break
		}
		select {
		case <-deadline:
			t.Fatalf("timed out with deliveries %v, want %v", got, want)
		case <-time.After(5 * time.Millisecond):
		}
	}

	mu.Lock()
	defer mu.Unlock()
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("delivery %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestBus_DropsWhenBufferFull(t *testing.T) {
	bus := New(1)
	ctx := context.Background()

	// Not started, so the buffer never drains. The second publish must not
	// block.
	done := make(chan struct{})
	go func() {
		bus.Publish(ctx, event.NewBuildStarted("a.yaml"))
		bus.Publish(ctx, event.NewBuildStarted("b.yaml"))
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Publish blocked on a full buffer")
	}
}
