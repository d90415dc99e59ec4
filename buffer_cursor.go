package vtterm

// Cursor state bits: WRAPNEXT latches that the next printable character
// must wrap before it is emitted; ORIGIN makes y-addressing relative to
// the scroll region.
const (
	cursorWrapNext uint8 = 1 << iota
	cursorOrigin
)

// Cursor is the terminal's insertion point and pending graphic
// rendition, plus the two latched state bits above.
type Cursor struct {
	X, Y  int
	Attr  uint32
	state uint8
}

// WrapNext reports whether the cursor is latched to wrap on next print.
func (c Cursor) WrapNext() bool { return c.state&cursorWrapNext != 0 }

// Origin reports whether origin mode (DECOM) is active.
func (c Cursor) Origin() bool { return c.state&cursorOrigin != 0 }

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// --- Cursor Movement ---

func (s *Screen) setWrapNext(on bool) {
	if on {
		s.cursor.state |= cursorWrapNext
	} else {
		s.cursor.state &^= cursorWrapNext
	}
}

// SetOrigin enables or disables DECOM (origin mode) and homes the
// cursor.
func (s *Screen) SetOrigin(on bool) {
	if on {
		s.cursor.state |= cursorOrigin
	} else {
		s.cursor.state &^= cursorOrigin
	}
	s.MoveAbsTo(0, 0)
}

// MoveTo moves the cursor to (x, y). Under origin mode y is interpreted
// relative to the scroll region's top and clamped to the region;
// otherwise it is clamped to the full screen. x is always clamped to
// [0, cols]. Clears WRAPNEXT. Marks old and new rows dirty.
func (s *Screen) MoveTo(x, y int) {
	miny, maxy := 0, s.rows-1
	if s.cursor.Origin() {
		miny, maxy = s.scroll.Top, s.scroll.Bottom
		y += s.scroll.Top
	}
	s.moveCursor(x, y, miny, maxy)
}

// MoveAbsTo moves the cursor using absolute (non-origin-relative) y even
// while origin mode is active, but still clamps y to the origin-mode
// bounds when origin mode is set.
func (s *Screen) MoveAbsTo(x, y int) {
	miny, maxy := 0, s.rows-1
	if s.cursor.Origin() {
		miny, maxy = s.scroll.Top, s.scroll.Bottom
	}
	s.moveCursor(x, y, miny, maxy)
}

func (s *Screen) moveCursor(x, y, miny, maxy int) {
	oldY := s.cursor.Y
	s.cursor.X = clamp(x, 0, s.cols)
	s.cursor.Y = clamp(y, miny, maxy)
	s.setWrapNext(false)
	s.markDirty(s.base + oldY)
	s.markDirty(s.base + s.cursor.Y)
}

// SaveCursor snapshots {x, y, attr, state} and the active character-set
// table for a later RestoreCursor (DECSC, or the save half of DECSET
// 1048/1049).
func (s *Screen) SaveCursor() {
	s.saved = s.charsets.clone()
	s.savedCursor = s.cursor
}

// RestoreCursor replaces the cursor with the DECSC snapshot, re-clamping
// it through MoveAbsTo since the saved X/Y are already absolute, and
// restores the saved character-set table. A
// restore with no prior save is a no-op, matching the source's guard.
func (s *Screen) RestoreCursor() {
	if s.saved == nil {
		return
	}
	c := s.savedCursor
	s.cursor.Attr = c.Attr
	s.cursor.state = c.state
	if s.saved != nil {
		s.charsets = s.saved.clone()
	}
	s.MoveAbsTo(c.X, c.Y)
}
