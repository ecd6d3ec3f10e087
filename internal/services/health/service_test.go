package health

import (
	"context"
	"errors"
	"testing"
)

type stubPinger struct {
	err error
}

func (s stubPinger) PingContext(context.Context) error {
	return s.err
}

func TestStatusWithoutDatabase(t *testing.T) {
	status, ok := NewService(nil).Status(context.Background())
	if !ok || status["db"] != "memory" {
		t.Fatalf("unexpected status %v ok=%v", status, ok)
	}
}

func TestStatusPingsDatabase(t *testing.T) {
	status, ok := NewService(stubPinger{}).Status(context.Background())
	if !ok || status["db"] != "up" {
		t.Fatalf("unexpected status %v ok=%v", status, ok)
	}

	status, ok = NewService(stubPinger{err: errors.New("down")}).Status(context.Background())
	if ok || status["ok"] != false {
		t.Fatalf("expected unhealthy, got %v", status)
	}
}
