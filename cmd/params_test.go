package cmd

import "testing"

func TestStringParam(t *testing.T) {
	params := map[string]interface{}{"image": "/tmp/a.png", "size": 200.0}
	if got := StringParam(params, "image", ""); got != "/tmp/a.png" {
		t.Errorf("got %q", got)
	}
	if got := StringParam(params, "missing", "fallback"); got != "fallback" {
		t.Errorf("got %q", got)
	}
	if got := StringParam(params, "size", "fallback"); got != "fallback" {
		t.Errorf("wrong type must fall back, got %q", got)
	}
}

func TestIntParam(t *testing.T) {
	params := map[string]interface{}{"x": 120.0, "y": 40, "layer": "bottom"}
	if got := IntParam(params, "x", 0); got != 120 {
		t.Errorf("got %d", got)
	}
	if got := IntParam(params, "y", 0); got != 40 {
		t.Errorf("got %d", got)
	}
	if got := IntParam(params, "missing", 7); got != 7 {
		t.Errorf("got %d", got)
	}
	if got := IntParam(params, "layer", 7); got != 7 {
		t.Errorf("wrong type must fall back, got %d", got)
	}
}

func TestBoolParam(t *testing.T) {
	params := map[string]interface{}{"drag": true, "x": 1.0}
	if got := BoolParam(params, "drag", false); !got {
		t.Error("got false")
	}
	if got := BoolParam(params, "missing", true); !got {
		t.Error("got false")
	}
	if got := BoolParam(params, "x", false); got {
		t.Error("wrong type must fall back")
	}
}
