// Package termproto is the little bit of VT100 that stage 2 speaks on the
// serial line, plus a decoder for the host end of the cable.
package termproto

import "fmt"

const ESC = 0x1B

//sequence bodies, each sent after an ESC
const ClearScreen = "[2J"
const CursorHome = "[H"

const maxEscape = 16 //longest escape body we will buffer before giving up

// ClearAndHome is the exact byte sequence a board sends to reset the
// terminal: ESC [ 2 J ESC [ H.
func ClearAndHome() []byte {
	out := make([]byte, 0, 2+len(ClearScreen)+len(CursorHome))
	out = append(out, ESC)
	out = append(out, ClearScreen...)
	out = append(out, ESC)
	out = append(out, CursorHome...)
	return out
}

type EventType int

const (
	EventClear EventType = iota
	EventHome
	EventLine
	EventUnknownEscape
)

func (e EventType) String() string {
	switch e {
	case EventClear:
		return "clear"
	case EventHome:
		return "home"
	case EventLine:
		return "line"
	case EventUnknownEscape:
		return "unknown escape"
	}
	return fmt.Sprintf("EventType(%d)", int(e))
}

type Event struct {
	Type EventType
	Text string //line text, or the escape body for EventUnknownEscape
}

///////////////////////////////////////////////////////////////////////
// Decoder turns the byte stream from a board into events. Lines end with
// CR LF; a bare LF also ends a line and a bare CR is dropped.
///////////////////////////////////////////////////////////////////////
type Decoder struct {
	line  []byte
	esc   []byte
	inEsc bool
}

// Feed takes one byte and returns an event when that byte completes one.
func (d *Decoder) Feed(b byte) (Event, bool) {
	if d.inEsc {
		return d.feedEscape(b)
	}
	switch b {
	case ESC:
		d.inEsc = true
		d.esc = d.esc[:0]
		return Event{}, false
	case '\r':
		return Event{}, false
	case '\n':
		text := string(d.line)
		d.line = d.line[:0]
		return Event{Type: EventLine, Text: text}, true
	}
	d.line = append(d.line, b)
	return Event{}, false
}

// escape bodies end at the first byte in 0x40-0x7E after the '['
func (d *Decoder) feedEscape(b byte) (Event, bool) {
	d.esc = append(d.esc, b)
	if len(d.esc) == 1 {
		if b != '[' {
			return d.endEscape()
		}
		return Event{}, false
	}
	if (b >= 0x40 && b <= 0x7E) || len(d.esc) >= maxEscape {
		return d.endEscape()
	}
	return Event{}, false
}

func (d *Decoder) endEscape() (Event, bool) {
	d.inEsc = false
	body := string(d.esc)
	switch body {
	case ClearScreen:
		return Event{Type: EventClear}, true
	case CursorHome:
		return Event{Type: EventHome}, true
	}
	return Event{Type: EventUnknownEscape, Text: body}, true
}

// Pending is the text of the line being assembled.
func (d *Decoder) Pending() string { return string(d.line) }

// Decode runs a whole buffer through a fresh decoder.
func Decode(data []byte) []Event {
	var d Decoder
	var out []Event
	for _, b := range data {
		if e, ok := d.Feed(b); ok {
			out = append(out, e)
		}
	}
	return out
}
