package lifecycle

import (
	"context"
	"testing"
	"time"

	"github.com/quipu-research/quipu/pkg/core"
)

func TestSource_BridgesEvents(t *testing.T) {
	in := make(chan core.Event, 1)
	src := NewSource(in)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := src.Start(ctx); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	in <- core.Event{Type: core.EventModify, Key: "Tier1_Descriptive.ipynb", Timestamp: 42}

	select {
	case e := <-src.Events():
		if e.String() != "MODIFY Tier1_Descriptive.ipynb" {
			t.Errorf("Bridged event = %q", e.String())
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Timed out waiting for bridged event")
	}
}

func TestSource_ClosesWithUpstream(t *testing.T) {
	in := make(chan core.Event)
	src := NewSource(in)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := src.Start(ctx); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	close(in)

	select {
	case _, ok := <-src.Events():
		if ok {
			t.Error("Expected closed output channel")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Output channel not closed after upstream close")
	}
}
