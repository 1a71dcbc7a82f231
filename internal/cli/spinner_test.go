package cli

import (
	"context"
	"os"
	"testing"
	"time"
)

func TestSpinnerStop(t *testing.T) {
	s := newSpinnerWithContext(context.Background(), "Tracing...")
	s.Start()
	time.Sleep(100 * time.Millisecond)
	s.Stop()
	s.Stop()

	if !s.Cancelled() {
		t.Error("Stop should cancel the spinner context")
	}
}

func TestSpinnerFollowsContext(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	s := newSpinnerWithContext(ctx, "Tracing...")
	s.Start()
	time.Sleep(100 * time.Millisecond)

	if !s.Cancelled() {
		t.Error("spinner should be cancelled after context timeout")
	}
	s.Stop()
}

func TestSpinnerStopWithStatus(t *testing.T) {
	s := newSpinnerWithContext(context.Background(), "Tracing...")
	s.Start()
	s.StopWithSuccess("Done")

	s = newSpinnerWithContext(context.Background(), "Tracing...")
	s.Start()
	s.StopWithError("Failed")
}

func TestSpinnerQuietWithoutTerminal(t *testing.T) {
	s := newSpinnerWithContext(context.Background(), "Tracing...")
	if s.quiet == isTerminal(os.Stderr) {
		t.Errorf("quiet = %v with terminal = %v", s.quiet, isTerminal(os.Stderr))
	}
	if isTerminal(nil) {
		t.Error("a nil file is not a terminal")
	}
}
