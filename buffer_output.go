package vtterm

// --- Character Writing ---

// Print writes one already-character-set-translated code point at the
// cursor: while wrap mode is set, a pending WRAPNEXT latch first wraps
// to column 0 of the next row; insert mode
// shifts the remainder of the row right (discarding its rightmost
// glyph) before writing; writing past the last column latches WRAPNEXT
// instead of advancing off the edge.
func (s *Screen) Print(r rune) {
	if s.mode&ModeWrap != 0 && s.cursor.WrapNext() {
		s.Newline(true)
	}
	if s.mode&ModeInsert != 0 && s.cursor.X < s.cols {
		s.InsertBlanks(1)
	}
	line := s.lines[s.base+s.cursor.Y]
	line[s.cursor.X] = Glyph{Ch: r, Attr: s.cursor.Attr}
	s.markDirty(s.base + s.cursor.Y)
	if s.cursor.X+1 < s.cols {
		s.cursor.X++
	} else {
		s.setWrapNext(true)
	}
}

// RingBell implements BEL outside of an OSC/DCS string context. vtterm
// has no audio or visible-bell concept of its own; hosts that care
// subscribe via OnBell.
func (s *Screen) RingBell() {
	if s.OnBell != nil {
		s.OnBell()
	}
}

// FormFeed implements FF as an ordinary line feed, the way
// xterm-compatible terminals treat it rather than the historical VT100
// page break. VT (0x0B) is dispatched together with LF, not through here.
func (s *Screen) FormFeed() {
	s.Newline(false)
}
