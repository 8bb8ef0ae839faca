package vt

// dispatchDCS handles the one DCS sequence this terminal answers:
// DECRQSS ("DCS $ q Pt ST"), replying with the current value of the
// requested setting or a negative acknowledgement for anything else,
// per spec.md §4.F.
func (t *Terminal) dispatchDCS(ev Event) {
	if ev.Intermediate != '$' || ev.Terminator != 'q' {
		return
	}
	setting := string(ev.Data)
	value, ok := t.decrqssValue(setting)
	var reply string
	if ok {
		reply = "\x1bP1$r" + value + setting + "\x1b\\"
	} else {
		reply = "\x1bP0$r\x1b\\"
	}
	t.pushOutgoing(OutgoingEvent{Kind: OutgoingDeviceReply, Data: []byte(reply)})
}

func (t *Terminal) decrqssValue(setting string) (string, bool) {
	switch setting {
	case "m", " m":
		return t.sgr.AsCSIParams().String(), true
	case "r":
		return itoa(t.scrollStart+1) + ";" + itoa(t.scrollEnd+1), true
	case " q":
		return itoa(int(t.CursorStyle())), true
	default:
		return "", false
	}
}
