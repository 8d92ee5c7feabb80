package cli

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestSpinnerDrawsFrames(t *testing.T) {
	var buf syncBuffer
	s := newSpinner(context.Background(), &buf, "Opening redis store")
	s.start()
	time.Sleep(200 * time.Millisecond)
	s.stop()

	if !bytes.Contains([]byte(buf.String()), []byte("Opening redis store")) {
		t.Errorf("spinner output %q does not contain message", buf.String())
	}
}

func TestSpinnerStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := newSpinner(ctx, &syncBuffer{}, "Rendering")
	s.start()
	cancel()

	select {
	case <-s.stopped:
	case <-time.After(time.Second):
		t.Fatal("spinner did not stop after context cancellation")
	}
}

func TestSpinnerStopIsIdempotent(t *testing.T) {
	s := newSpinner(context.Background(), &syncBuffer{}, "Rendering")
	s.start()
	s.stop()
	s.stop()
}

func TestWithSpinner(t *testing.T) {
	got, err := withSpinner(context.Background(), "Counting", func(context.Context) (int, error) {
		return 42, nil
	})
	if err != nil || got != 42 {
		t.Errorf("withSpinner() = %d, %v, want 42, nil", got, err)
	}

	boom := errors.New("boom")
	if _, err := withSpinner(context.Background(), "Failing", func(context.Context) (int, error) {
		return 0, boom
	}); !errors.Is(err, boom) {
		t.Errorf("withSpinner() error = %v, want %v", err, boom)
	}
}
