package render

import (
	"testing"

	"github.com/ashenengine/ashen/ecs"
	"github.com/ashenengine/ashen/enginelog"
)

func TestSelectCameraPicksTheFirstEnabled(t *testing.T) {
	w := ecs.NewWorld(8)

	disabled := w.CreateEntity()
	tr := DefaultTransform()
	if err := ecs.AddComponent(w, disabled, Camera{Enabled: false}); err != nil {
		t.Fatalf("AddComponent Camera: %v", err)
	}
	if err := ecs.AddComponent(w, disabled, tr); err != nil {
		t.Fatalf("AddComponent Transform: %v", err)
	}

	enabled := w.CreateEntity()
	enabledTr := DefaultTransform()
	if err := ecs.AddComponent(w, enabled, NewCamera(1, 1, 0.1, 100)); err != nil {
		t.Fatalf("AddComponent Camera: %v", err)
	}
	if err := ecs.AddComponent(w, enabled, enabledTr); err != nil {
		t.Fatalf("AddComponent Transform: %v", err)
	}

	got, gotTr, ok := selectCamera(w, enginelog.NewNopLogger())
	if !ok {
		t.Fatal("expected a camera to be selected")
	}
	if !got.Enabled {
		t.Fatal("expected the selected camera to be enabled")
	}
	if gotTr == nil {
		t.Fatal("expected a non-nil transform for the selected camera")
	}
}

func TestSelectCameraReturnsFalseWithNoEnabledCamera(t *testing.T) {
	w := ecs.NewWorld(8)
	e := w.CreateEntity()
	tr := DefaultTransform()
	if err := ecs.AddComponent(w, e, Camera{Enabled: false}); err != nil {
		t.Fatalf("AddComponent Camera: %v", err)
	}
	if err := ecs.AddComponent(w, e, tr); err != nil {
		t.Fatalf("AddComponent Transform: %v", err)
	}

	_, _, ok := selectCamera(w, enginelog.NewNopLogger())
	if ok {
		t.Fatal("expected no camera to be selected when none are enabled")
	}
}

func TestSelectCameraStillSelectsWithMultipleEnabledCameras(t *testing.T) {
	cameraWarnOnce.Reset()
	w := ecs.NewWorld(8)

	for i := 0; i < 2; i++ {
		e := w.CreateEntity()
		tr := DefaultTransform()
		if err := ecs.AddComponent(w, e, NewCamera(1, 1, 0.1, 100)); err != nil {
			t.Fatalf("AddComponent Camera: %v", err)
		}
		if err := ecs.AddComponent(w, e, tr); err != nil {
			t.Fatalf("AddComponent Transform: %v", err)
		}
	}

	_, _, ok := selectCamera(w, enginelog.NewNopLogger())
	if !ok {
		t.Fatal("expected a camera to still be selected despite the multiple-enabled warning")
	}
}
