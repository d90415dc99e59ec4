package vtterm

// shiftLinesUp moves the lines in the inclusive absolute range
// [top, bottom] up by n, discarding the n lines that fall off top and
// filling n blank lines at bottom. Used by DL; never touches scrollback.
func (s *Screen) shiftLinesUp(top, bottom, n int) {
	if n <= 0 || top > bottom {
		return
	}
	if n > bottom-top+1 {
		n = bottom - top + 1
	}
	copy(s.lines[top:bottom+1-n], s.lines[top+n:bottom+1])
	for i := bottom + 1 - n; i <= bottom; i++ {
		s.lines[i] = s.newLine()
	}
	s.markDirtyRange(top, bottom)
}

// shiftLinesDown is shiftLinesUp's mirror, used by IL.
func (s *Screen) shiftLinesDown(top, bottom, n int) {
	if n <= 0 || top > bottom {
		return
	}
	if n > bottom-top+1 {
		n = bottom - top + 1
	}
	copy(s.lines[top+n:bottom+1], s.lines[top:bottom+1-n])
	for i := top; i < top+n; i++ {
		s.lines[i] = s.newLine()
	}
	s.markDirtyRange(top, bottom)
}

// InsertLines implements IL (CSI L): inserts n blank lines at the
// cursor's row, pushing the rest of the scroll region down and
// discarding whatever falls off its bottom. A no-op if the cursor sits
// outside the scroll region.
func (s *Screen) InsertLines(n int) {
	if s.cursor.Y < s.scroll.Top || s.cursor.Y > s.scroll.Bottom {
		return
	}
	s.shiftLinesDown(s.base+s.cursor.Y, s.base+s.scroll.Bottom, n)
}

// DeleteLines implements DL (CSI M): deletes n lines at the cursor's
// row, pulling the rest of the scroll region up and filling blanks at
// its bottom. A no-op if the cursor sits outside the scroll region.
func (s *Screen) DeleteLines(n int) {
	if s.cursor.Y < s.scroll.Top || s.cursor.Y > s.scroll.Bottom {
		return
	}
	s.shiftLinesUp(s.base+s.cursor.Y, s.base+s.scroll.Bottom, n)
}

// InsertBlanks implements ICH (CSI @): shifts the remainder of the
// current row right by n starting at the cursor, discarding glyphs that
// fall off the right edge, and fills n blanks at the cursor.
func (s *Screen) InsertBlanks(n int) {
	line := s.lines[s.base+s.cursor.Y]
	x := s.cursor.X
	if x >= s.cols {
		return
	}
	if n > s.cols-x {
		n = s.cols - x
	}
	copy(line[x+n:s.cols], line[x:s.cols-n])
	blank := blankGlyph(s.cursor.Attr)
	for i := x; i < x+n; i++ {
		line[i] = blank
	}
	s.markDirty(s.base + s.cursor.Y)
}

// DeleteChars implements DCH (CSI P): shifts the remainder of the
// current row left by n starting at the cursor, filling n blanks at the
// row's right edge.
func (s *Screen) DeleteChars(n int) {
	line := s.lines[s.base+s.cursor.Y]
	x := s.cursor.X
	if x >= s.cols {
		return
	}
	if n > s.cols-x {
		n = s.cols - x
	}
	copy(line[x:s.cols-n], line[x+n:s.cols])
	blank := blankGlyph(s.cursor.Attr)
	for i := s.cols - n; i < s.cols; i++ {
		line[i] = blank
	}
	s.markDirty(s.base + s.cursor.Y)
}

// EraseChars implements ECH (CSI X): blanks n cells starting at the
// cursor without shifting anything.
func (s *Screen) EraseChars(n int) {
	line := s.lines[s.base+s.cursor.Y]
	x := s.cursor.X
	end := x + n
	if end > s.cols {
		end = s.cols
	}
	blank := blankGlyph(s.cursor.Attr)
	for i := x; i < end; i++ {
		line[i] = blank
	}
	s.markDirty(s.base + s.cursor.Y)
}

// ClearRegion fills the screen-coordinate rectangle [x0,y0]-[x1,y1]
// (inclusive) with blanks carrying attr. Coordinates are clamped to the
// screen; an inverted rectangle is a no-op.
func (s *Screen) ClearRegion(x0, y0, x1, y1 int, attr uint32) {
	x0 = clamp(x0, 0, s.cols-1)
	x1 = clamp(x1, 0, s.cols-1)
	y0 = clamp(y0, 0, s.rows-1)
	y1 = clamp(y1, 0, s.rows-1)
	if x0 > x1 || y0 > y1 {
		return
	}
	blank := blankGlyph(attr)
	for y := y0; y <= y1; y++ {
		line := s.lines[s.base+y]
		for x := x0; x <= x1; x++ {
			line[x] = blank
		}
		s.markDirty(s.base + y)
	}
}

// --- Erase variants (ED/EL) ---

// EraseBelow clears from the cursor to the end of its line, then clears
// every line below it. ED(0).
func (s *Screen) EraseBelow() {
	s.ClearRegion(s.cursor.X, s.cursor.Y, s.cols-1, s.cursor.Y, s.cursor.Attr)
	if s.cursor.Y+1 <= s.rows-1 {
		s.ClearRegion(0, s.cursor.Y+1, s.cols-1, s.rows-1, s.cursor.Attr)
	}
}

// EraseAbove clears from the start of the cursor's line to the cursor,
// then clears every line above it. ED(1).
func (s *Screen) EraseAbove() {
	s.ClearRegion(0, s.cursor.Y, s.cursor.X, s.cursor.Y, s.cursor.Attr)
	if s.cursor.Y-1 >= 0 {
		s.ClearRegion(0, 0, s.cols-1, s.cursor.Y-1, s.cursor.Attr)
	}
}

// EraseAll clears the entire visible screen. Both ED(2) and ED(3) map
// here: ED(3) additionally claims to erase scrollback in some emulators,
// but that fallback path is never reachable through normal dispatch, so
// ED(3) is treated as an ordinary full clear.
func (s *Screen) EraseAll() {
	s.ClearRegion(0, 0, s.cols-1, s.rows-1, s.cursor.Attr)
}

// EraseRight clears from the cursor to the end of its line. EL(0).
func (s *Screen) EraseRight() {
	s.ClearRegion(s.cursor.X, s.cursor.Y, s.cols-1, s.cursor.Y, s.cursor.Attr)
}

// EraseLeft clears from the start of the line to the cursor, inclusive.
// EL(1).
func (s *Screen) EraseLeft() {
	s.ClearRegion(0, s.cursor.Y, s.cursor.X, s.cursor.Y, s.cursor.Attr)
}

// EraseLine clears the cursor's entire line. EL(2).
func (s *Screen) EraseLine() {
	s.ClearRegion(0, s.cursor.Y, s.cols-1, s.cursor.Y, s.cursor.Attr)
}

// --- Tab stops ---

// SetTabStop implements HTS: marks the cursor's column as a stop.
func (s *Screen) SetTabStop() {
	if s.cursor.X < len(s.tabs) {
		s.tabs[s.cursor.X] = true
	}
}

// ClearTabStop implements TBC(0): clears the stop at the cursor's
// column.
func (s *Screen) ClearTabStop() {
	if s.cursor.X < len(s.tabs) {
		s.tabs[s.cursor.X] = false
	}
}

// ClearAllTabs implements TBC(3): clears every stop.
func (s *Screen) ClearAllTabs() {
	for i := range s.tabs {
		s.tabs[i] = false
	}
}

// ForwardTab implements HT/CHT: advances the cursor to the n-th next tab
// stop, or to the last column if none remain.
func (s *Screen) ForwardTab(n int) {
	x := s.cursor.X
	for ; n > 0; n-- {
		next := x + 1
		for next < s.cols && !s.tabs[next] {
			next++
		}
		if next >= s.cols {
			x = s.cols - 1
			break
		}
		x = next
	}
	s.MoveAbsTo(x, s.cursor.Y)
}

// BackwardTab implements CBT: retreats the cursor to the n-th previous
// tab stop, or to column 0 if none remain.
func (s *Screen) BackwardTab(n int) {
	x := s.cursor.X
	for ; n > 0; n-- {
		prev := x - 1
		for prev > 0 && !s.tabs[prev] {
			prev--
		}
		if prev <= 0 {
			x = 0
			break
		}
		x = prev
	}
	s.MoveAbsTo(x, s.cursor.Y)
}
