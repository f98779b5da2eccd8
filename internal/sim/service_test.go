package sim

import (
	"testing"

	"github.com/s3lm4n/flight-planner/internal/config"
	"github.com/s3lm4n/flight-planner/pkg/logger"
)

type recordingBroadcaster struct {
	frames []Output
}

func (b *recordingBroadcaster) BroadcastSimulation(id string, out Output) {
	b.frames = append(b.frames, out)
}

func newTestService(t *testing.T, b Broadcaster) *Service {
	t.Helper()
	return NewService(config.DefaultSimulationConfig(), logger.Nop(), b)
}

func TestServiceCreateAndGet(t *testing.T) {
	svc := newTestService(t, nil)

	id, err := svc.Create(buildTestSnapshot(t))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if id == "" {
		t.Fatal("empty simulation id")
	}

	out, err := svc.Get(id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if out.Phase != "LINEUP" {
		t.Errorf("new simulation phase: expected LINEUP, got %s", out.Phase)
	}
	if out.IsPlaying {
		t.Error("new simulation should start paused")
	}

	if _, err := svc.Get("nope"); err == nil {
		t.Error("unknown id should fail")
	}
}

func TestServiceList(t *testing.T) {
	svc := newTestService(t, nil)

	if n := len(svc.List()); n != 0 {
		t.Errorf("fresh service lists %d simulations", n)
	}

	snapshot := buildTestSnapshot(t)
	a, _ := svc.Create(snapshot)
	b, _ := svc.Create(snapshot)

	ids := svc.List()
	if len(ids) != 2 {
		t.Fatalf("expected 2 simulations, got %d", len(ids))
	}
	found := map[string]bool{}
	for _, id := range ids {
		found[id] = true
	}
	if !found[a] || !found[b] {
		t.Errorf("missing created ids in %v", ids)
	}
}

func TestServiceControl(t *testing.T) {
	broadcaster := &recordingBroadcaster{}
	svc := newTestService(t, broadcaster)
	id, err := svc.Create(buildTestSnapshot(t))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	out, err := svc.Control(id, ActionPlay, 0)
	if err != nil {
		t.Fatalf("play: %v", err)
	}
	if !out.IsPlaying {
		t.Error("play did not start playback")
	}
	if len(broadcaster.frames) != 1 {
		t.Errorf("control should broadcast the resulting frame, got %d", len(broadcaster.frames))
	}

	out, err = svc.Control(id, ActionSeek, 0.5)
	if err != nil {
		t.Fatalf("seek: %v", err)
	}
	if out.Progress != 0.5 {
		t.Errorf("seek progress: expected 0.5, got %f", out.Progress)
	}

	// Actions are case-insensitive.
	if _, err := svc.Control(id, "PAUSE", 0); err != nil {
		t.Errorf("uppercase action: %v", err)
	}

	if _, err := svc.Control(id, "launch", 0); err == nil {
		t.Error("unknown action should fail")
	}
	if _, err := svc.Control("nope", ActionPlay, 0); err == nil {
		t.Error("unknown id should fail")
	}
}

func TestServiceRemove(t *testing.T) {
	svc := newTestService(t, nil)
	id, err := svc.Create(buildTestSnapshot(t))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := svc.Remove(id); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, err := svc.Get(id); err == nil {
		t.Error("removed simulation still retrievable")
	}
	if err := svc.Remove(id); err == nil {
		t.Error("double remove should fail")
	}
}
