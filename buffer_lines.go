package vtterm

func resizeLine(line Line, cols int) Line {
	if len(line) == cols {
		return line
	}
	if len(line) > cols {
		out := make(Line, cols)
		copy(out, line[:cols])
		return out
	}
	out := make(Line, cols)
	copy(out, line)
	blank := blankGlyph(DefaultAttr())
	for i := len(line); i < cols; i++ {
		out[i] = blank
	}
	return out
}

// Resize pads or truncates every line to the new column count, extends
// or truncates the row vector, resets tabs and the scroll region, clamps
// the cursor, fires OnResize, and then flushes any pending dirty range
// through OnRefresh, clamped to the rows that remain in the buffer (rows
// dropped by a shrink are not reported). Resizing to the current
// geometry leaves buffer contents untouched.
func (s *Screen) Resize(cols, rows int) { s.resize(cols, rows, false) }

func (s *Screen) resize(cols, rows int, silent bool) {
	// A non-positive dimension is clamped to 1 rather than rejected.
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	oldCols, oldRows := s.cols, s.rows
	if cols == oldCols && rows == oldRows {
		return
	}

	if cols != oldCols {
		for i := range s.lines {
			s.lines[i] = resizeLine(s.lines[i], cols)
		}
	}
	s.cols = cols

	wantLen := s.base + rows
	switch {
	case wantLen > len(s.lines):
		for len(s.lines) < wantLen {
			s.lines = append(s.lines, s.newLine())
		}
	case wantLen < len(s.lines):
		if rows < oldRows {
			s.markDirtyRange(s.base+rows, s.base+oldRows-1)
		}
		s.lines = s.lines[:wantLen]
	}
	s.rows = rows

	s.resetTabs()
	s.scroll = ScrollRegion{Top: 0, Bottom: rows - 1}
	s.cursor.X = clamp(s.cursor.X, 0, cols)
	s.cursor.Y = clamp(s.cursor.Y, 0, rows-1)

	if !silent && s.OnResize != nil {
		s.OnResize(cols, rows)
	}
	s.flushRefresh()
}

// --- Alternate Screen ---

// SetAlternateScreen implements DECSET/DECRST 47/1047/1049's alt-screen
// half (save+clear+swap on set, restore+swap on reset). Enabling while
// already enabled, or disabling with nothing saved, is a no-op.
func (s *Screen) SetAlternateScreen(on bool) {
	if on {
		if s.altSaved != nil {
			return
		}
		snap := &altScreenSlot{
			lines:    s.lines,
			base:     s.base,
			cursor:   s.cursor,
			scroll:   s.scroll,
			tabs:     s.tabs,
			mode:     s.mode,
			charsets: s.charsets,
		}
		s.HardReset()
		s.altSaved = snap
		if s.OnAlternate != nil {
			s.OnAlternate(true)
		}
		s.mode |= ModeAltScreen
		return
	}

	if s.altSaved == nil {
		return
	}
	snap := s.altSaved
	s.altSaved = nil
	s.lines = snap.lines
	s.base = snap.base
	s.cursor = snap.cursor
	s.scroll = snap.scroll
	s.tabs = snap.tabs
	s.mode = snap.mode &^ ModeAltScreen
	s.charsets = snap.charsets
	s.clearDirty()
	if s.OnAlternate != nil {
		s.OnAlternate(false)
	}
}
