package vt

// FontWeight is the SGR bold/dim axis; the two are mutually exclusive.
type FontWeight int

const (
	WeightNone FontWeight = iota
	WeightBold
	WeightDim
)

// UnderlineStyle is the SGR underline axis, including the kitty/wezterm
// colon sub-parameter extensions (4:3, 4:4, 4:5).
type UnderlineStyle int

const (
	UnderlineNone UnderlineStyle = iota
	UnderlineNormal
	UnderlineDouble
	UnderlineCurly
	UnderlineDotted
	UnderlineDashed
)

// BlinkStyle is the SGR blink axis.
type BlinkStyle int

const (
	BlinkNone BlinkStyle = iota
	BlinkNormal
	BlinkRapid
)

// ColorKind tags a ColorValue.
type ColorKind int

const (
	ColorNone ColorKind = iota
	ColorPalette
	ColorTrueColor
)

// ColorValue is a tagged union over None | PaletteIndex(0..15) | TrueColor(r,g,b).
type ColorValue struct {
	Kind  ColorKind
	Index uint8 // valid when Kind == ColorPalette, 0..15
	R, G, B uint8 // valid when Kind == ColorTrueColor
}

// PaletteColor constructs a ColorValue selecting one of the 16 palette slots.
func PaletteColor(index uint8) ColorValue {
	return ColorValue{Kind: ColorPalette, Index: index}
}

// TrueColor constructs a 24-bit ColorValue.
func TrueColor(r, g, b uint8) ColorValue {
	return ColorValue{Kind: ColorTrueColor, R: r, G: g, B: b}
}

// GraphicsRendition is the complete set of SGR text attributes for a cell.
// It is a plain comparable struct so that structural equality is just `==`.
type GraphicsRendition struct {
	Weight      FontWeight
	Italic      bool
	Underline   UnderlineStyle
	Blink       BlinkStyle
	Inverted    bool
	Invisible   bool
	Strike      bool
	Overline    bool
	Fg          ColorValue
	Bg          ColorValue
	UnderlineColor ColorValue
}

// Apply mutates g according to the SGR codes found in params, following the
// standard table in spec.md §4.B. An empty Params (size 0) is treated as a
// single implicit "0" (reset), matching the bare "CSI m" convention.
func (g *GraphicsRendition) Apply(params *Params) {
	n := params.Size()
	if n == 0 {
		*g = GraphicsRendition{}
		return
	}

	for i := 0; i < n; i++ {
		code := params.Get(i, 0)
		switch code {
		case 0:
			*g = GraphicsRendition{}
		case 1:
			g.Weight = WeightBold
		case 2:
			g.Weight = WeightDim
		case 3:
			g.Italic = true
		case 4:
			g.Underline = underlineFromSubParam(params.SubParam(i, 1, 0))
		case 5:
			g.Blink = BlinkNormal
		case 6:
			g.Blink = BlinkRapid
		case 7:
			g.Inverted = true
		case 8:
			g.Invisible = true
		case 9:
			g.Strike = true
		case 21:
			g.Underline = UnderlineDouble
		case 22:
			g.Weight = WeightNone
		case 23:
			g.Italic = false
		case 24:
			g.Underline = UnderlineNone
		case 25:
			g.Blink = BlinkNone
		case 27:
			g.Inverted = false
		case 28:
			g.Invisible = false
		case 29:
			g.Strike = false
		case 30, 31, 32, 33, 34, 35, 36, 37:
			g.Fg = PaletteColor(uint8(code - 30))
		case 38:
			if c, matched, consumed := parseExtendedColor(params, i); matched {
				g.Fg = c
				i += consumed
			}
		case 39:
			g.Fg = ColorValue{}
		case 40, 41, 42, 43, 44, 45, 46, 47:
			g.Bg = PaletteColor(uint8(code - 40))
		case 48:
			if c, matched, consumed := parseExtendedColor(params, i); matched {
				g.Bg = c
				i += consumed
			}
		case 49:
			g.Bg = ColorValue{}
		case 53:
			g.Overline = true
		case 55:
			g.Overline = false
		case 58:
			// The underline color additionally supports the indexed
			// "58:8:n" / "58;8;n" form, since unlike
			// fg/bg it has no short palette codes of its own.
			if c, matched, consumed := parseUnderlineIndexedColor(params, i); matched {
				g.UnderlineColor = c
				i += consumed
			} else if c, matched, consumed := parseExtendedColor(params, i); matched {
				g.UnderlineColor = c
				i += consumed
			}
		case 59:
			g.UnderlineColor = ColorValue{}
		case 90, 91, 92, 93, 94, 95, 96, 97:
			g.Fg = PaletteColor(uint8(code-90) + 8)
		case 100, 101, 102, 103, 104, 105, 106, 107:
			g.Bg = PaletteColor(uint8(code-100) + 8)
		}
	}
}

func underlineFromSubParam(sub uint32) UnderlineStyle {
	switch sub {
	case 3:
		return UnderlineCurly
	case 4:
		return UnderlineDotted
	case 5:
		return UnderlineDashed
	default:
		return UnderlineNormal
	}
}

// parseExtendedColor handles the 38/48/58 "2;r;g;b" truecolor form, in both
// the colon sub-parameter spelling ("38:2:r:g:b", one group) and the
// semicolon spelling ("38;2;r;g;b", five groups). It returns the decoded
// color, whether the form was recognized as a color sequence at all
// (matched), and the number of EXTRA top-level groups consumed (0 for the
// colon form, 4 for the semicolon form), so the caller can advance its loop
// index. Per spec.md §4.B, 38/48/58 require at least four subsequent
// params; on short input they are ignored and parsing continues at the
// next group (matched=false, nothing consumed).
func parseExtendedColor(params *Params, i int) (ColorValue, bool, int) {
	if params.SubParamCount(i) >= 5 {
		if params.SubParam(i, 1, 0) == 2 {
			return TrueColor(
				uint8(clamp255(params.SubParam(i, 2, 0))),
				uint8(clamp255(params.SubParam(i, 3, 0))),
				uint8(clamp255(params.SubParam(i, 4, 0))),
			), true, 0
		}
		return ColorValue{}, true, 0
	}

	if params.Size()-i < 5 {
		return ColorValue{}, false, 0
	}
	if params.Get(i+1, 0) != 2 {
		return ColorValue{}, true, 4
	}
	return TrueColor(
		uint8(clamp255(params.Get(i+2, 0))),
		uint8(clamp255(params.Get(i+3, 0))),
		uint8(clamp255(params.Get(i+4, 0))),
	), true, 4
}

// parseUnderlineIndexedColor handles the "58:8:n" / "58;8;n" palette-index
// spelling used by GraphicsRendition.AsCSIParams for underline color.
// n is clamped into the 16-entry palette.
func parseUnderlineIndexedColor(params *Params, i int) (ColorValue, bool, int) {
	if params.SubParamCount(i) >= 3 {
		if params.SubParam(i, 1, 0) == 8 {
			return PaletteColor(uint8(clamp15(params.SubParam(i, 2, 0)))), true, 0
		}
		return ColorValue{}, false, 0
	}
	if params.Size()-i < 3 {
		return ColorValue{}, false, 0
	}
	if params.Get(i+1, 0) != 8 {
		return ColorValue{}, false, 0
	}
	return PaletteColor(uint8(clamp15(params.Get(i+2, 0)))), true, 2
}

func clamp15(v uint32) uint32 {
	if v > 15 {
		return 15
	}
	return v
}

func clamp255(v uint32) uint32 {
	if v > 255 {
		return 255
	}
	return v
}

// AsCSIParams serializes g to a canonical Params beginning with "0" (reset),
// followed by one group per non-default attribute. Colors are emitted as a
// single colon sub-parameter group, matching the original ttx
// implementation (see SPEC_FULL.md), so that parse(render(g)) == g.
func (g *GraphicsRendition) AsCSIParams() *Params {
	p := NewParams()
	p.AddParam(0)

	switch g.Weight {
	case WeightBold:
		p.AddParam(1)
	case WeightDim:
		p.AddParam(2)
	}
	if g.Italic {
		p.AddParam(3)
	}
	switch g.Underline {
	case UnderlineNormal:
		p.AddParam(4)
	case UnderlineDouble:
		p.AddParam(21)
	case UnderlineCurly:
		p.AddSubParams([]uint16{4, 3})
	case UnderlineDotted:
		p.AddSubParams([]uint16{4, 4})
	case UnderlineDashed:
		p.AddSubParams([]uint16{4, 5})
	}
	switch g.Blink {
	case BlinkNormal:
		p.AddParam(5)
	case BlinkRapid:
		p.AddParam(6)
	}
	if g.Inverted {
		p.AddParam(7)
	}
	if g.Invisible {
		p.AddParam(8)
	}
	if g.Strike {
		p.AddParam(9)
	}
	if g.Overline {
		p.AddParam(53)
	}
	if g.Fg.Kind != ColorNone {
		addColorSubParams(p, g.Fg, 38, 30, 90)
	}
	if g.Bg.Kind != ColorNone {
		addColorSubParams(p, g.Bg, 48, 40, 100)
	}
	if g.UnderlineColor.Kind != ColorNone {
		addColorSubParams(p, g.UnderlineColor, 58, 0, 0)
	}
	return p
}

// addColorSubParams appends the group encoding c. extCode is the 38/48/58
// true-color introducer; base0/base8 are the short palette codes for
// indices 0-7 and 8-15 (unused, 0, for underline color which has no short
// palette form and always uses the extended "58:8:n" spelling per the
// original implementation).
func addColorSubParams(p *Params, c ColorValue, extCode, base0, base8 uint16) {
	if c.Kind == ColorTrueColor {
		p.AddSubParams([]uint16{extCode, 2, uint16(c.R), uint16(c.G), uint16(c.B)})
		return
	}
	// ColorPalette
	if extCode == 58 {
		p.AddSubParams([]uint16{58, 8, uint16(c.Index)})
		return
	}
	if c.Index < 8 {
		p.AddSubParams([]uint16{base0 + uint16(c.Index)})
	} else {
		p.AddSubParams([]uint16{base8 + uint16(c.Index-8)})
	}
}
