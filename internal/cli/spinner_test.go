package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"
)

func quietSpinner(ctx context.Context, msg string) (*Spinner, *bytes.Buffer) {
	var buf bytes.Buffer
	s := newSpinnerWithContext(ctx, msg)
	s.out = &buf
	return s, &buf
}

func TestSpinnerDraws(t *testing.T) {
	s, buf := quietSpinner(context.Background(), "Computing layout...")
	s.Start()
	time.Sleep(150 * time.Millisecond)
	s.Stop()

	out := buf.String()
	if !strings.Contains(out, "Computing layout...") {
		t.Errorf("output %q missing message", out)
	}
	if !strings.HasSuffix(out, "\r") {
		t.Errorf("output %q should end with a cleared line", out)
	}
}

func TestSpinnerUpdate(t *testing.T) {
	s, buf := quietSpinner(context.Background(), "Reading...")
	s.Start()
	s.Update("Rendering svg, png...")
	time.Sleep(150 * time.Millisecond)
	s.Stop()

	if !strings.Contains(buf.String(), "Rendering svg, png...") {
		t.Errorf("output %q missing updated message", buf.String())
	}
	if s.width != len("Rendering svg, png...") {
		t.Errorf("width = %d, want widest message", s.width)
	}
}

func TestSpinnerContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s, _ := quietSpinner(ctx, "Testing...")
	s.Start()
	cancel()
	time.Sleep(50 * time.Millisecond)

	if !s.Cancelled() {
		t.Error("spinner should be cancelled after context cancellation")
	}
	s.Stop()
}

func TestSpinnerTimeout(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	s, _ := quietSpinner(ctx, "Testing...")
	s.Start()
	time.Sleep(60 * time.Millisecond)

	if !s.Cancelled() {
		t.Error("spinner should be cancelled after context timeout")
	}
}

func TestSpinnerStopIsIdempotent(t *testing.T) {
	s, _ := quietSpinner(context.Background(), "Testing...")
	s.Start()
	s.Stop()
	s.Stop()
	s.Stop()
}

func TestSpinnerStopWithoutStart(t *testing.T) {
	s, buf := quietSpinner(context.Background(), "Testing...")
	done := make(chan struct{})
	go func() {
		s.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop blocked on a spinner that never started")
	}
	if strings.Contains(buf.String(), "⠋") {
		t.Error("unstarted spinner drew a frame")
	}
}
