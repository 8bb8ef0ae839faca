// Package input turns raw bytes read from the host terminal into the
// Parser events the supervisor's key-binding state machine and the
// focused pane both need, splicing bracketed-paste payloads out of the
// escape-sequence stream so a pasted "CSI letter" never misfires as a
// keypress.
package input

import (
	"unicode/utf8"

	"github.com/ColeTrammer/ttx/vt"
)

const pasteEndMarker = "\x1b[201~"

// TerminalInputParser decodes a byte stream from the host terminal into
// vt.Events, transparently extracting bracketed-paste payloads. Paste
// text is held until the trailing marker completes, except that more
// than 4096 pending bytes at the end of a Feed are handed on early as a
// partial paste, so a large paste does not grow the buffer without bound.
type TerminalInputParser struct {
	parser *vt.Parser

	inPaste   bool
	pasteBuf  []byte
	markerBuf []byte
}

// NewTerminalInputParser returns a parser ready to decode host input.
func NewTerminalInputParser() *TerminalInputParser {
	return &TerminalInputParser{parser: vt.NewParser(vt.ModeInput)}
}

// Feed decodes buf (a single host read) into events. It always calls
// Flush on the underlying escape-sequence parser at the end, per
// spec.md §4.E, so a lone ESC keypress is reported immediately instead
// of waiting indefinitely for a continuation byte.
//
// Paste-start is detected from the decoded CSI 200~ event, not a raw
// byte prefix: every byte outside an in-progress paste is routed
// through p.parser regardless, so a marker split across two host reads
// is still recognized correctly, since the parser's escape-sequence
// state carries across Feed calls the same way it does for any other
// multi-byte sequence, per original_source's char-at-a-time TerminalInputParser::parse.
func (p *TerminalInputParser) Feed(buf []byte) []vt.Event {
	var out []vt.Event
	i := 0
	for i < len(buf) {
		if p.inPaste {
			consumed, done, text := p.scanPaste(buf[i:])
			i += consumed
			if len(text) > 0 {
				out = append(out, vt.Event{Kind: vt.EventAPC, Data: text})
			}
			if done {
				p.inPaste = false
			}
			continue
		}

		r, size := utf8.DecodeRune(buf[i:])
		if r == utf8.RuneError && size <= 1 {
			if size == 0 {
				break
			}
			i++
			continue
		}
		i += size

		for _, ev := range p.parser.Feed(r) {
			if vt.IsBracketedPasteBegin(ev) {
				p.inPaste = true
				continue
			}
			out = append(out, ev)
		}
	}
	out = append(out, p.parser.Flush()...)
	return out
}

// scanPaste consumes bytes of buf that belong to the in-progress paste,
// stopping at the end marker. It returns how many bytes of buf were
// consumed, whether the end marker was found, and any paste text ready
// to be reported as a PasteEvent's data (flushed incrementally so a
// paste larger than one read is never held entirely in memory).
func (p *TerminalInputParser) scanPaste(buf []byte) (consumed int, done bool, text []byte) {
	for i := 0; i < len(buf); i++ {
		if buf[i] == pasteEndMarker[len(p.markerBuf)] {
			p.markerBuf = append(p.markerBuf, buf[i])
			if len(p.markerBuf) == len(pasteEndMarker) {
				flushed := p.pasteBuf
				p.pasteBuf = nil
				p.markerBuf = nil
				return i + 1, true, flushed
			}
			continue
		}
		if len(p.markerBuf) > 0 {
			p.pasteBuf = append(p.pasteBuf, p.markerBuf...)
			p.markerBuf = p.markerBuf[:0]
		}
		p.pasteBuf = append(p.pasteBuf, buf[i])
	}
	if len(p.pasteBuf) > 4096 {
		flushed := p.pasteBuf
		p.pasteBuf = nil
		return len(buf), false, flushed
	}
	return len(buf), false, nil
}
