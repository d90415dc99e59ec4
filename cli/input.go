package cli

import (
	"bytes"

	vtterm "github.com/phroun/vtterm"
)

// keyMapper rewrites the arrow-key escape sequences a raw-mode stdin
// delivers (always the ANSI/VT220 form, ESC [ A..D) into the
// application-cursor form (ESC O A..D) while the terminal's
// ModeAppCursor bit is set, mirroring how a real terminal emulator
// re-encodes cursor keys for curses-style applications. Everything else
// passes through untouched.
type keyMapper struct {
	term *vtterm.Term
}

var arrowCSI = [4][]byte{
	[]byte("\x1b[A"), []byte("\x1b[B"), []byte("\x1b[C"), []byte("\x1b[D"),
}

var arrowSS3 = [4][]byte{
	[]byte("\x1bOA"), []byte("\x1bOB"), []byte("\x1bOC"), []byte("\x1bOD"),
}

// Translate rewrites arrow-key sequences in p in place (well, into a
// freshly allocated slice) according to the terminal's current cursor
// key mode.
func (m *keyMapper) Translate(p []byte) []byte {
	if m.term.Mode()&vtterm.ModeAppCursor == 0 {
		return p
	}
	var out bytes.Buffer
	for i := 0; i < len(p); {
		matched := false
		for d, seq := range arrowCSI {
			if bytes.HasPrefix(p[i:], seq) {
				out.Write(arrowSS3[d])
				i += len(seq)
				matched = true
				break
			}
		}
		if matched {
			continue
		}
		out.WriteByte(p[i])
		i++
	}
	return out.Bytes()
}
