package vt

import "unicode/utf8"

// ParserMode selects between the two use sites of the escape-sequence
// state machine: decoding a child's output stream, or decoding host input.
// The two modes share every transition and Flush; the mode is recorded
// but no code path reads it.
type ParserMode int

const (
	ModeApplication ParserMode = iota
	ModeInput
)

type parserState int

const (
	stateGround parserState = iota
	stateEscape
	stateEscapeIntermediate
	stateCsiEntry
	stateCsiParam
	stateCsiIntermediate
	stateCsiIgnore
	stateDcsEntry
	stateDcsParam
	stateDcsIntermediate
	stateDcsPassthrough
	stateDcsPassthroughEscape
	stateDcsIgnore
	stateOscString
	stateOscStringEscape
	stateSosPmApcString
	stateSosPmApcStringEscape
)

// apcKind distinguishes the three string types that share SosPmApcString;
// only APC produces an Event (spec.md's event set has no SOS/PM variant).
type apcKind int

const (
	apcNone apcKind = iota
	apcAPC
)

// Parser is a classic VT state machine (Williams/wezterm layout) that
// converts a stream of already UTF-8-decoded code points into a sequence
// of Events. It never emits incomplete events.
type Parser struct {
	Mode ParserMode

	state parserState

	params        *Params
	groupOpen     bool
	sawParamChar  bool
	curParam      uint32
	intermediate  byte
	markerAllowed bool

	dcsTerminator byte

	data []byte

	pendingAPC apcKind

	out []Event
}

// NewParser returns a Parser in the given mode.
func NewParser(mode ParserMode) *Parser {
	return &Parser{Mode: mode, state: stateGround}
}

func isC0(r rune) bool {
	return (r >= 0x00 && r <= 0x1F) || r == 0x7F
}

func isC1(r rune) bool {
	return r >= 0x80 && r <= 0x9F
}

// Feed advances the state machine by one code point and returns any events
// produced (almost always zero or one).
func (p *Parser) Feed(r rune) []Event {
	p.out = p.out[:0]
	p.step(r)
	if len(p.out) == 0 {
		return nil
	}
	return append([]Event(nil), p.out...)
}

// Flush is called after the final code point of a read buffer in
// ModeInput, so a solitary ESC keypress is reported immediately instead of
// being held waiting for a continuation byte that a host read would not
// deliver until the next keystroke.
func (p *Parser) Flush() []Event {
	p.out = p.out[:0]
	if p.state == stateEscape {
		p.emit(Event{Kind: EventControl, CodePoint: 0x1B})
		p.state = stateGround
	}
	if len(p.out) == 0 {
		return nil
	}
	return append([]Event(nil), p.out...)
}

func (p *Parser) emit(e Event) {
	p.out = append(p.out, e)
}

func (p *Parser) resetParams() {
	p.params = NewParams()
	p.groupOpen = false
	p.sawParamChar = false
	p.curParam = 0
	p.intermediate = 0
	p.markerAllowed = true
}

func (p *Parser) resetData() {
	p.data = p.data[:0]
}

func (p *Parser) ensureGroup() {
	if !p.groupOpen {
		p.params.groups = append(p.params.groups, []uint16{})
		p.groupOpen = true
	}
}

// commitSubParam closes the sub-parameter accumulated in curParam onto the
// currently open group (opening one first if needed).
func (p *Parser) commitSubParam() {
	p.ensureGroup()
	last := len(p.params.groups) - 1
	p.params.groups[last] = append(p.params.groups[last], uint16(p.curParam))
	p.curParam = 0
}

// finalizeParams commits any pending digits before the final CSI/DCS byte.
func (p *Parser) finalizeParams() {
	if p.sawParamChar {
		p.commitSubParam()
	}
}

func (p *Parser) step(r rune) {
	switch p.state {
	case stateGround:
		p.stepGround(r)
	case stateEscape:
		p.stepEscape(r)
	case stateEscapeIntermediate:
		p.stepEscapeIntermediate(r)
	case stateCsiEntry, stateCsiParam:
		p.stepCsiParam(r)
	case stateCsiIntermediate:
		p.stepCsiIntermediate(r)
	case stateCsiIgnore:
		p.stepCsiIgnore(r)
	case stateDcsEntry, stateDcsParam:
		p.stepDcsParam(r)
	case stateDcsIntermediate:
		p.stepDcsIntermediate(r)
	case stateDcsPassthrough:
		p.stepDcsPassthrough(r)
	case stateDcsPassthroughEscape:
		p.stepDcsPassthroughEscape(r)
	case stateDcsIgnore:
		p.stepDcsIgnore(r)
	case stateOscString:
		p.stepOscString(r)
	case stateOscStringEscape:
		p.stepOscStringEscape(r)
	case stateSosPmApcString:
		p.stepSosPmApcString(r)
	case stateSosPmApcStringEscape:
		p.stepSosPmApcStringEscape(r)
	}
}

func (p *Parser) stepGround(r rune) {
	switch {
	case r == 0x1B:
		p.state = stateEscape
	case isC0(r):
		p.emit(Event{Kind: EventControl, CodePoint: r})
	case isC1(r):
		// Reported so the terminal can decide, per spec.md §4.F: it acts
		// on IND/NEL/HTS/RI and ignores the rest.
		p.emit(Event{Kind: EventControl, CodePoint: r})
	default:
		p.emit(Event{Kind: EventPrintable, CodePoint: r})
	}
}

func (p *Parser) stepEscape(r rune) {
	switch {
	case r == '[':
		p.resetParams()
		p.state = stateCsiEntry
	case r == ']':
		p.resetData()
		p.state = stateOscString
	case r == 'P':
		p.resetParams()
		p.resetData()
		p.state = stateDcsEntry
	case r == '^':
		p.pendingAPC = apcNone
		p.resetData()
		p.state = stateSosPmApcString
	case r == '_':
		p.pendingAPC = apcAPC
		p.resetData()
		p.state = stateSosPmApcString
	case r == 'X':
		p.pendingAPC = apcNone
		p.resetData()
		p.state = stateSosPmApcString
	case r >= 0x20 && r <= 0x2F:
		p.intermediate = byte(r)
		p.state = stateEscapeIntermediate
	case isC0(r):
		// Meta/Alt convention: a control right after ESC.
		p.emit(Event{Kind: EventControl, CodePoint: r, WasInEscape: true})
		p.state = stateGround
	case r >= 0x30 && r <= 0x7E:
		p.emit(Event{Kind: EventEscape, Intermediate: p.intermediate, Terminator: byte(r)})
		p.state = stateGround
	default:
		p.state = stateGround
	}
}

func (p *Parser) stepEscapeIntermediate(r rune) {
	switch {
	case r >= 0x20 && r <= 0x2F:
		p.intermediate = byte(r)
	case r >= 0x30 && r <= 0x7E:
		p.emit(Event{Kind: EventEscape, Intermediate: p.intermediate, Terminator: byte(r)})
		p.state = stateGround
	default:
		p.state = stateGround
	}
}

func (p *Parser) stepCsiParam(r rune) {
	switch {
	case r >= '0' && r <= '9':
		p.curParam = p.curParam*10 + uint32(r-'0')
		p.sawParamChar = true
		p.markerAllowed = false
		p.state = stateCsiParam
	case r == ':':
		p.commitSubParam()
		p.sawParamChar = true
		p.markerAllowed = false
		p.state = stateCsiParam
	case r == ';':
		p.commitSubParam()
		p.groupOpen = false
		p.sawParamChar = true
		p.markerAllowed = false
		p.state = stateCsiParam
	case r >= 0x3C && r <= 0x3F:
		if p.markerAllowed {
			p.intermediate = byte(r)
			p.markerAllowed = false
			p.state = stateCsiParam
		} else {
			p.state = stateCsiIgnore
		}
	case r >= 0x20 && r <= 0x2F:
		p.finalizeParams()
		p.intermediate = byte(r)
		p.state = stateCsiIntermediate
	case r >= 0x40 && r <= 0x7E:
		p.finalizeParams()
		p.emit(Event{Kind: EventCSI, Intermediate: p.intermediate, Params: p.params, Terminator: byte(r)})
		p.state = stateGround
	default:
		p.state = stateCsiIgnore
	}
}

func (p *Parser) stepCsiIntermediate(r rune) {
	switch {
	case r >= 0x20 && r <= 0x2F:
		p.intermediate = byte(r)
	case r >= 0x40 && r <= 0x7E:
		p.emit(Event{Kind: EventCSI, Intermediate: p.intermediate, Params: p.params, Terminator: byte(r)})
		p.state = stateGround
	default:
		p.state = stateCsiIgnore
	}
}

func (p *Parser) stepCsiIgnore(r rune) {
	if r >= 0x40 && r <= 0x7E {
		p.state = stateGround
	}
}

func (p *Parser) stepDcsParam(r rune) {
	switch {
	case r >= '0' && r <= '9':
		p.curParam = p.curParam*10 + uint32(r-'0')
		p.sawParamChar = true
		p.markerAllowed = false
		p.state = stateDcsParam
	case r == ':':
		p.commitSubParam()
		p.sawParamChar = true
		p.markerAllowed = false
		p.state = stateDcsParam
	case r == ';':
		p.commitSubParam()
		p.groupOpen = false
		p.sawParamChar = true
		p.markerAllowed = false
		p.state = stateDcsParam
	case r >= 0x3C && r <= 0x3F:
		if p.markerAllowed {
			p.intermediate = byte(r)
			p.markerAllowed = false
			p.state = stateDcsParam
		} else {
			p.state = stateDcsIgnore
		}
	case r >= 0x20 && r <= 0x2F:
		p.finalizeParams()
		p.intermediate = byte(r)
		p.state = stateDcsIntermediate
	case r >= 0x40 && r <= 0x7E:
		p.finalizeParams()
		p.dcsTerminator = byte(r)
		p.resetData()
		p.state = stateDcsPassthrough
	default:
		p.state = stateDcsIgnore
	}
}

func (p *Parser) stepDcsIntermediate(r rune) {
	switch {
	case r >= 0x20 && r <= 0x2F:
		p.intermediate = byte(r)
	case r >= 0x40 && r <= 0x7E:
		p.dcsTerminator = byte(r)
		p.resetData()
		p.state = stateDcsPassthrough
	default:
		p.state = stateDcsIgnore
	}
}

func (p *Parser) stepDcsPassthrough(r rune) {
	switch {
	case r == 0x1B:
		p.state = stateDcsPassthroughEscape
	case isC0(r):
		p.state = stateGround // malformed: aborted string
	default:
		p.appendData(r)
	}
}

func (p *Parser) stepDcsPassthroughEscape(r rune) {
	if r == '\\' {
		p.emit(Event{Kind: EventDCS, Intermediate: p.intermediate, Params: p.params, Terminator: p.dcsTerminator, Data: append([]byte(nil), p.data...)})
		p.state = stateGround
		return
	}
	// Not a valid ST; treat the ESC as aborting the string (malformed).
	p.state = stateGround
}

func (p *Parser) stepDcsIgnore(r rune) {
	switch {
	case r == 0x1B:
		p.state = stateGround
	case isC0(r):
		p.state = stateGround
	}
}

func (p *Parser) stepOscString(r rune) {
	switch {
	case r == 0x07:
		p.emit(Event{Kind: EventOSC, Data: append([]byte(nil), p.data...)})
		p.state = stateGround
	case r == 0x1B:
		p.state = stateOscStringEscape
	case isC0(r):
		p.state = stateGround // malformed
	default:
		p.appendData(r)
	}
}

func (p *Parser) stepOscStringEscape(r rune) {
	if r == '\\' {
		p.emit(Event{Kind: EventOSC, Data: append([]byte(nil), p.data...)})
		p.state = stateGround
		return
	}
	p.state = stateGround
}

func (p *Parser) stepSosPmApcString(r rune) {
	switch {
	case r == 0x1B:
		p.state = stateSosPmApcStringEscape
	case isC0(r):
		p.state = stateGround
	default:
		p.appendData(r)
	}
}

func (p *Parser) stepSosPmApcStringEscape(r rune) {
	if r == '\\' {
		if p.pendingAPC == apcAPC {
			p.emit(Event{Kind: EventAPC, Data: append([]byte(nil), p.data...)})
		}
		p.state = stateGround
		return
	}
	p.state = stateGround
}

func (p *Parser) appendData(r rune) {
	var buf [utf8.UTFMax]byte
	n := utf8.EncodeRune(buf[:], r)
	p.data = append(p.data, buf[:n]...)
}
