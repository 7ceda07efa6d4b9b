package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/stash/internal/logger"
)

type flakyPinger struct {
	failures int
	calls    int
}

func (p *flakyPinger) Ping(ctx context.Context) *redis.StatusCmd {
	p.calls++
	cmd := redis.NewStatusCmd(ctx, "ping")
	if p.calls <= p.failures {
		cmd.SetErr(errors.New("connection refused"))
		return cmd
	}
	cmd.SetVal("PONG")
	return cmd
}

func testOptions() ConnectOptions {
	return ConnectOptions{
		Addr:           "localhost:6379",
		ConnectTimeout: time.Second,
		RetryInterval:  time.Millisecond,
		MaxWait:        4 * time.Millisecond,
		PingTimeout:    10 * time.Millisecond,
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*ConnectOptions)
		wantErr bool
	}{
		{name: "valid", mutate: func(*ConnectOptions) {}},
		{name: "empty addr", mutate: func(o *ConnectOptions) { o.Addr = "" }, wantErr: true},
		{name: "no connect timeout", mutate: func(o *ConnectOptions) { o.ConnectTimeout = 0 }, wantErr: true},
		{name: "no retry interval", mutate: func(o *ConnectOptions) { o.RetryInterval = 0 }, wantErr: true},
		{name: "max wait below interval", mutate: func(o *ConnectOptions) { o.MaxWait = 0 }, wantErr: true},
		{name: "no ping timeout", mutate: func(o *ConnectOptions) { o.PingTimeout = -1 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := testOptions()
			tt.mutate(&opts)
			err := opts.validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestNextWait(t *testing.T) {
	if got := nextWait(time.Second, 10*time.Second); got != 2*time.Second {
		t.Errorf("nextWait = %v, want 2s", got)
	}
	if got := nextWait(8*time.Second, 10*time.Second); got != 10*time.Second {
		t.Errorf("nextWait = %v, want 10s (capped)", got)
	}
}

func TestWaitReadyRetriesUntilPong(t *testing.T) {
	p := &flakyPinger{failures: 3}

	err := waitReady(context.Background(), p, testOptions(), logger.New("error", false))
	if err != nil {
		t.Fatalf("waitReady failed: %v", err)
	}
	if p.calls != 4 {
		t.Errorf("expected 4 pings, got %d", p.calls)
	}
}

func TestWaitReadyGivesUp(t *testing.T) {
	p := &flakyPinger{failures: 1 << 30}
	opts := testOptions()
	opts.ConnectTimeout = 20 * time.Millisecond

	err := waitReady(context.Background(), p, opts, logger.New("error", false))
	if err == nil {
		t.Fatal("expected error when redis never answers")
	}
	if p.calls < 2 {
		t.Errorf("expected several attempts, got %d", p.calls)
	}
}
