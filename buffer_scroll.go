package vtterm

// --- Scroll Region ---

// ScrollRegionBounds returns the current DECSTBM top/bottom margin.
func (s *Screen) ScrollRegionBounds() ScrollRegion { return s.scroll }

// SetScrollRegion implements DECSTBM: clamps top/bottom into [0, rows-1]
// (swapping if given in the wrong order), then homes the cursor.
func (s *Screen) SetScrollRegion(top, bottom int) {
	top = clamp(top, 0, s.rows-1)
	bottom = clamp(bottom, 0, s.rows-1)
	if top > bottom {
		top, bottom = bottom, top
	}
	s.scroll = ScrollRegion{Top: top, Bottom: bottom}
	s.MoveAbsTo(0, 0)
}

// --- Vertical Scroll ---

// Scroll scrolls the active scroll region. n > 0 scrolls the region up
// by n lines; n < 0 scrolls it down by |n| lines. Both directions
// operate relative to the region, not the whole screen.
//
// The n > 0 direction always appends the line leaving the top of the
// region to the end of permanent scrollback (absolute row base-1 once
// base has grown), growing base by one per line, even when the region
// does not start at row 0 — a
// deliberate simplification rather than the stricter VT behavior of
// discarding that line when scroll.Top != 0. This keeps
// buffer.length == base+rows holding unconditionally.
func (s *Screen) Scroll(n int) {
	if n > 0 {
		for i := 0; i < n; i++ {
			s.scrollUpOnce()
		}
	} else if n < 0 {
		for i := 0; i < -n; i++ {
			s.scrollDownOnce()
		}
	}
}

func (s *Screen) scrollUpOnce() {
	top := s.base + s.scroll.Top
	bottom := s.base + s.scroll.Bottom
	leaving := s.lines[top]
	copy(s.lines[top:bottom], s.lines[top+1:bottom+1])
	s.lines[bottom] = s.newLine()

	grown := make([]Line, 0, len(s.lines)+1)
	grown = append(grown, s.lines[:s.base]...)
	grown = append(grown, leaving)
	grown = append(grown, s.lines[s.base:]...)
	s.lines = grown
	s.base++

	s.markDirtyRange(top+1, s.base+s.scroll.Bottom)
}

func (s *Screen) scrollDownOnce() {
	top := s.base + s.scroll.Top
	bottom := s.base + s.scroll.Bottom
	copy(s.lines[top+1:bottom+1], s.lines[top:bottom])
	s.lines[top] = s.newLine()
	s.markDirtyRange(top, bottom)
}

// --- Line Feed ---

// Newline scrolls up by one if the cursor sits on the scroll region's
// bottom margin,
// otherwise move it down one row. If firstCol is set, the cursor column
// is also reset to 0 (CR+LF, used by LF when ModeCRLF is set, and
// unconditionally by NEL).
func (s *Screen) Newline(firstCol bool) {
	if s.cursor.Y == s.scroll.Bottom {
		s.Scroll(1)
	} else {
		s.markDirty(s.base + s.cursor.Y)
		s.cursor.Y++
		s.markDirty(s.base + s.cursor.Y)
	}
	if firstCol {
		s.cursor.X = 0
	}
	s.setWrapNext(false)
}
