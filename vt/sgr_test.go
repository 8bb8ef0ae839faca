package vt

import "testing"

// parseSGR runs params through a fresh GraphicsRendition.Apply, matching
// how Terminal.dispatchCSI's "m" case mutates the running SGR state.
func parseSGR(params *Params) GraphicsRendition {
	var g GraphicsRendition
	g.Apply(params)
	return g
}

func TestGraphicsRenditionRoundTrip(t *testing.T) {
	cases := []GraphicsRendition{
		{},
		{Weight: WeightBold, Italic: true},
		{Underline: UnderlineCurly, Fg: TrueColor(10, 20, 30)},
		{Bg: PaletteColor(3), Strike: true, Overline: true},
		{UnderlineColor: PaletteColor(12)},
		{Fg: PaletteColor(9), Bg: TrueColor(1, 2, 3), UnderlineColor: TrueColor(4, 5, 6)},
	}
	for _, want := range cases {
		got := parseSGR(want.AsCSIParams())
		if got != want {
			t.Errorf("round trip mismatch: want %+v, got %+v", want, got)
		}
	}
}

func TestGraphicsRenditionBareResetIsImplicitZero(t *testing.T) {
	g := GraphicsRendition{Weight: WeightBold, Italic: true}
	g.Apply(NewParams())
	if g != (GraphicsRendition{}) {
		t.Errorf("bare CSI m should reset, got %+v", g)
	}
}

func TestExtendedColorShortFormIgnored(t *testing.T) {
	g := GraphicsRendition{Fg: PaletteColor(5)}
	p := NewParams()
	p.AddParam(38) // "38" with nothing following: too short, ignored
	g.Apply(p)
	if g.Fg.Kind != ColorPalette || g.Fg.Index != 5 {
		t.Errorf("short 38 sequence should leave Fg untouched, got %+v", g.Fg)
	}
}

func TestUnderlineColonSubParam(t *testing.T) {
	p := NewParams()
	p.AddSubParams([]uint16{4, 3})
	var g GraphicsRendition
	g.Apply(p)
	if g.Underline != UnderlineCurly {
		t.Errorf("4:3 should select curly underline, got %v", g.Underline)
	}
}

func TestOverlineSetAndClearAreIndependent(t *testing.T) {
	var g GraphicsRendition
	p := NewParams()
	p.AddParam(53)
	g.Apply(p)
	if !g.Overline {
		t.Fatal("53 should set overline")
	}
	p2 := NewParams()
	p2.AddParam(55)
	g.Apply(p2)
	if g.Overline {
		t.Fatal("55 should clear overline independently of any other code")
	}
}
