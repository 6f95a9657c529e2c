package core

import "testing"

func TestInputFrame(t *testing.T) {
	f := NewInputFrame()
	if !f.Empty() {
		t.Fatal("new frame should be empty")
	}

	f.Set(ActionActivate)
	f.Set(ActionNone) // ignored

	if !f.Has(ActionActivate) {
		t.Error("frame should have Activate")
	}
	if f.Has(ActionBack) {
		t.Error("frame should not have Back")
	}
	if f.Has(ActionNone) {
		t.Error("ActionNone is never set")
	}

	other := NewInputFrame()
	other.Set(ActionSound)
	f.Merge(other)
	if !f.Has(ActionSound) || !f.Has(ActionActivate) {
		t.Error("Merge should keep both actions")
	}

	f.Clear()
	if !f.Empty() {
		t.Error("Clear should empty the frame")
	}
}

func TestActionString(t *testing.T) {
	if ActionActivate.String() != "Activate" {
		t.Errorf("ActionActivate.String() = %q", ActionActivate.String())
	}
	if Action(99).String() != "Unknown" {
		t.Errorf("unknown action String() = %q", Action(99).String())
	}
}
