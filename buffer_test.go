package vtterm

import "testing"

func lineString(l Line) string {
	s := make([]rune, len(l))
	for i, g := range l {
		s[i] = g.Ch
	}
	return string(s)
}

func TestScreenPrintPlain(t *testing.T) {
	s := NewScreen(40, 24)
	for _, r := range "test" {
		s.Print(r)
	}
	got := lineString(s.Lines()[0])
	if got[:4] != "test" {
		t.Fatalf("row 0 = %q, want to start with \"test\"", got[:4])
	}
	for i := 4; i < 40; i++ {
		if got[i] != ' ' {
			t.Fatalf("row 0 col %d = %q, want blank", i, got[i])
		}
	}
	if s.cursor.X != 4 || s.cursor.Y != 0 {
		t.Fatalf("cursor = (%d, %d), want (4, 0)", s.cursor.X, s.cursor.Y)
	}
}

func TestScreenPrintWrap(t *testing.T) {
	s := NewScreen(40, 24)
	for i := 0; i < 50; i++ {
		s.Print('E')
	}
	row0 := lineString(s.Lines()[0])
	for i, r := range row0 {
		if r != 'E' {
			t.Fatalf("row 0 col %d = %q, want 'E'", i, r)
		}
	}
	row1 := lineString(s.Lines()[1])
	for i := 0; i < 10; i++ {
		if row1[i] != 'E' {
			t.Fatalf("row 1 col %d = %q, want 'E'", i, row1[i])
		}
	}
	for i := 10; i < 40; i++ {
		if row1[i] != ' ' {
			t.Fatalf("row 1 col %d = %q, want blank", i, row1[i])
		}
	}
	if s.cursor.X != 10 || s.cursor.Y != 1 {
		t.Fatalf("cursor = (%d, %d), want (10, 1)", s.cursor.X, s.cursor.Y)
	}
	if s.cursor.WrapNext() {
		t.Fatal("WRAPNEXT should be cleared after the wrap that placed the 41st E")
	}
}

// TestScreenScrollRegion exercises the interaction between Newline and
// Scroll across a scroll region spanning the full screen: content printed
// on line i, followed by a newline, ends up at absolute buffer row i —
// the scrollback keeps growing by one row per scroll rather than
// discarding anything, per the resolution recorded for Scroll's open
// question.
func TestScreenScrollRegion(t *testing.T) {
	s := NewScreen(40, 24)
	for i := 0; i <= 30; i++ {
		for _, r := range itoa(i) {
			s.Print(r)
		}
		s.Newline(true)
	}

	lines := s.Lines()
	check := func(row int, want string) {
		got := lineString(lines[row])
		if len(got) < len(want) || got[:len(want)] != want {
			t.Errorf("buffer row %d starts with %q, want %q", row, got[:len(want)], want)
		}
	}
	check(23, "23")
	check(24, "24")
	check(29, "29")
	check(30, "30")

	if got := s.Base(); got != 8 {
		t.Errorf("Base() = %d, want 8 (31 lines printed into a 24-row screen)", got)
	}
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var buf [8]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	return string(buf[i:])
}

func TestScreenAlternateScreenRoundTrip(t *testing.T) {
	s := NewScreen(10, 5)
	s.Print('A')
	savedCursor := s.cursor

	s.SetAlternateScreen(true)
	s.Print('B')
	s.SetAlternateScreen(false)

	got := lineString(s.Lines()[0])
	if got[0] != 'A' {
		t.Fatalf("row 0 col 0 = %q, want 'A' restored from before alt-screen", got[0])
	}
	if s.cursor != savedCursor {
		t.Fatalf("cursor = %+v, want restored %+v", s.cursor, savedCursor)
	}
	if s.mode&ModeAltScreen != 0 {
		t.Fatal("ModeAltScreen should be cleared after disabling")
	}
}

func TestScreenAlternateScreenNotifications(t *testing.T) {
	s := NewScreen(10, 5)
	var events []bool
	s.OnAlternate = func(on bool) { events = append(events, on) }

	s.SetAlternateScreen(true)
	s.SetAlternateScreen(false)

	if len(events) != 2 || events[0] != true || events[1] != false {
		t.Fatalf("OnAlternate events = %v, want [true false]", events)
	}
}

func TestScreenResizeIdempotent(t *testing.T) {
	s := NewScreen(40, 24)
	s.Print('Z')
	before := make([]Line, len(s.Lines()))
	copy(before, s.Lines())

	s.Resize(40, 24)

	for y, line := range s.Lines() {
		if lineString(line) != lineString(before[y]) {
			t.Fatalf("row %d changed after no-op resize: got %q, want %q", y, lineString(line), lineString(before[y]))
		}
	}
}

func TestScreenResizePadsAndTruncates(t *testing.T) {
	s := NewScreen(10, 5)
	s.Resize(20, 5)
	if s.Cols() != 20 {
		t.Fatalf("Cols() = %d, want 20", s.Cols())
	}
	if len(s.Lines()[0]) != 20 {
		t.Fatalf("row 0 length = %d, want 20", len(s.Lines()[0]))
	}

	s.Resize(5, 5)
	if len(s.Lines()[0]) != 5 {
		t.Fatalf("row 0 length after truncate = %d, want 5", len(s.Lines()[0]))
	}
}

func TestScreenRefreshFiresAtMostOnce(t *testing.T) {
	s := NewScreen(10, 5)
	count := 0
	var got [2]int
	s.OnRefresh = func(dirty [2]int, slice []Line, cursor Cursor) {
		count++
		got = dirty
	}

	s.Print('A')
	s.Print('B')
	s.flushRefresh()

	if count != 1 {
		t.Fatalf("OnRefresh fired %d times, want 1", count)
	}
	// spec.md §8 scenario 1: both prints land on row 0, so the dirty
	// range must collapse to [0, 0], not just fire once.
	if got != [2]int{0, 0} {
		t.Fatalf("dirty = %v, want [0, 0]", got)
	}
}

func TestScreenRefreshSkippedWhenClean(t *testing.T) {
	s := NewScreen(10, 5)
	count := 0
	s.OnRefresh = func(dirty [2]int, slice []Line, cursor Cursor) { count++ }
	s.flushRefresh()
	if count != 0 {
		t.Fatalf("OnRefresh fired %d times on a clean screen, want 0", count)
	}
}

func TestScreenGeometryUnderflowClamped(t *testing.T) {
	s := NewScreen(10, 5)
	s.Resize(0, -3)
	if s.Cols() != 1 || s.Rows() != 1 {
		t.Fatalf("Resize(0, -3) => Cols=%d Rows=%d, want 1,1", s.Cols(), s.Rows())
	}
}

func TestScreenBufferLengthInvariant(t *testing.T) {
	s := NewScreen(40, 24)
	for i := 0; i < 40; i++ {
		s.Newline(false)
	}
	if got := len(s.Lines()); got != s.Base()+s.Rows() {
		t.Fatalf("len(Lines()) = %d, want Base()+Rows() = %d", got, s.Base()+s.Rows())
	}
}

func TestScreenInsertAndDeleteLines(t *testing.T) {
	s := NewScreen(5, 5)
	for i, r := range []rune{'0', '1', '2', '3', '4'} {
		s.MoveAbsTo(0, i)
		s.Print(r)
	}
	s.MoveAbsTo(0, 1)
	s.InsertLines(1)
	if got := lineString(s.Lines()[1])[0]; got != ' ' {
		t.Fatalf("row 1 col 0 after InsertLines = %q, want blank", got)
	}
	if got := lineString(s.Lines()[2])[0]; got != '1' {
		t.Fatalf("row 2 col 0 after InsertLines = %q, want '1'", got)
	}

	s.MoveAbsTo(0, 1)
	s.DeleteLines(1)
	if got := lineString(s.Lines()[1])[0]; got != '1' {
		t.Fatalf("row 1 col 0 after DeleteLines = %q, want '1'", got)
	}
}

func TestScreenEraseAllCoversED2AndED3(t *testing.T) {
	s := NewScreen(5, 5)
	s.Print('X')
	s.EraseAll()
	for _, line := range s.Lines() {
		for _, g := range line {
			if g.Ch != ' ' {
				t.Fatalf("EraseAll left non-blank glyph %q", g.Ch)
			}
		}
	}
}
