package worker

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

func TestNotifyWorkerSignalsDoneAfterDrain(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	w := NewNotifyWorker(nil, rdb, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	go w.Start(ctx)

	// Let the loop reach its blocking pop before cancelling.
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case <-w.Done():
	case <-time.After(3 * time.Second):
		t.Fatal("worker did not signal completion after cancel")
	}
}
