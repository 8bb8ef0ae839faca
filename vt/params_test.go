package vt

import "testing"

func TestParamsGetDefault(t *testing.T) {
	p := NewParams()
	if got := p.Get(0, 7); got != 7 {
		t.Errorf("Get on empty Params should return default, got %d", got)
	}
}

func TestParamsZeroValueIsDefault(t *testing.T) {
	p := NewParams()
	p.AddParam(0)
	if got := p.Get(0, 42); got != 42 {
		t.Errorf("a literal 0 parameter should report the default, got %d", got)
	}
}

func TestParamsSubParamRoundTrip(t *testing.T) {
	p := NewParams()
	p.AddSubParams([]uint16{38, 2, 255, 128, 0})
	if got := p.SubParamCount(0); got != 5 {
		t.Fatalf("expected 5 sub-params, got %d", got)
	}
	if got := p.SubParam(0, 2, 0); got != 255 {
		t.Errorf("SubParam(0,2) = %d, want 255", got)
	}
	if got := p.String(); got != "38:2:255:128:0" {
		t.Errorf("String() = %q, want %q", got, "38:2:255:128:0")
	}
}

func TestParamsSemicolonSeparated(t *testing.T) {
	p := NewParams()
	p.AddParam(1)
	p.AddParam(2)
	p.AddParam(3)
	if got := p.String(); got != "1;2;3" {
		t.Errorf("String() = %q, want %q", got, "1;2;3")
	}
}
