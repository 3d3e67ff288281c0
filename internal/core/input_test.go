package core

import "testing"

func TestInputFrame(t *testing.T) {
	var f InputFrame
	if !f.Empty() || f.Has(ActionJump) {
		t.Fatal("zero frame should be empty")
	}

	f.Set(ActionJump)
	f.Set(ActionPause)
	f.Set(ActionNone)
	if !f.Has(ActionJump) || !f.Has(ActionPause) || f.Has(ActionRelease) {
		t.Errorf("frame = %s", f)
	}
	if got := f.String(); got != "Jump+Pause" {
		t.Errorf("String() = %q, want Jump+Pause", got)
	}

	f.Clear()
	if !f.Empty() || f.String() != "None" {
		t.Errorf("after Clear frame = %s", f)
	}
}

func TestActionString(t *testing.T) {
	tests := []struct {
		a    Action
		want string
	}{
		{ActionJump, "Jump"},
		{ActionRelease, "Release"},
		{ActionQuit, "Quit"},
		{Action(200), "Unknown"},
	}
	for _, tc := range tests {
		if got := tc.a.String(); got != tc.want {
			t.Errorf("Action(%d).String() = %q, want %q", tc.a, got, tc.want)
		}
	}
}

func TestFrameTime(t *testing.T) {
	if got := (RuntimeConfig{TickRate: 50}).FrameTime(); got != 0.02 {
		t.Errorf("FrameTime(50) = %v, want 0.02", got)
	}
	if got := (RuntimeConfig{}).FrameTime(); got != 1.0/60 {
		t.Errorf("FrameTime(0) = %v, want 1/60", got)
	}
}
