package vtterm

// Config is the construction-time configuration: the pty to read from
// and write replies to, and the initial geometry. Parser is optional;
// its zero value is replaced with DefaultParserOptions().
type Config struct {
	PTY    PTY
	Cols   int
	Rows   int
	Parser ParserOptions
}

// Term is the public facade: construction, geometry, accessors, resize,
// and notification subscription. It is the only type most hosts need to
// touch; Screen and Parser are exported for callers that want finer
// control, but Term wires them together the way a default host would.
type Term struct {
	screen *Screen
	parser *Parser
	pty    PTY
}

var zeroParserOptions ParserOptions

// New constructs a Term: a Screen of the given geometry plus a Parser
// bound to it, with the parser's writeback wired to cfg.PTY (if any).
func New(cfg Config) *Term {
	screen := NewScreen(cfg.Cols, cfg.Rows)
	popts := cfg.Parser
	if popts == zeroParserOptions {
		popts = DefaultParserOptions()
	}
	parser := NewParser(screen, popts)

	t := &Term{screen: screen, parser: parser, pty: cfg.PTY}
	parser.WriteBack = func(b []byte) {
		if t.pty != nil {
			t.pty.Write(b)
		}
	}
	return t
}

// Write feeds p through the parser, mutating the screen and firing any
// notifications the chunk triggers. It reports len(p) consumed; the
// parser never blocks and only fails on the ParserStuck liveness
// violation, in which case this method returns 0 and that error.
func (t *Term) Write(p []byte) (int, error) {
	if err := t.parser.Parse(p); err != nil {
		return 0, err
	}
	return len(p), nil
}

// Resize changes the screen geometry and, if a PTY is attached, informs
// it of the new size too.
func (t *Term) Resize(cols, rows int) {
	t.screen.Resize(cols, rows)
	if t.pty != nil {
		t.pty.Resize(cols, rows)
	}
}

// Cursor returns the current cursor position and pending attribute.
func (t *Term) Cursor() Cursor { return t.screen.Cursor() }

// Buffer returns the full line buffer, scrollback followed by the
// visible screen.
func (t *Term) Buffer() []Line { return t.screen.Lines() }

// Title returns the current window title.
func (t *Term) Title() string { return t.screen.Title() }

// Mode returns the current mode bitmask.
func (t *Term) Mode() Mode { return t.screen.Mode() }

// Pty returns the attached PTY, or nil if none was configured.
func (t *Term) Pty() PTY { return t.pty }

// Screen exposes the underlying screen model for callers that need
// lower-level access (direct line indexing, scroll-region bounds, tab
// stops) than the facade's accessors provide.
func (t *Term) Screen() *Screen { return t.screen }

// Parser exposes the underlying parser, mainly so a host can call
// SetLogger or inspect ParserOptions after construction.
func (t *Term) Parser() *Parser { return t.parser }

// OnRefresh subscribes cb to fire after any input chunk that changed the
// visible grid, with the dirty range (absolute buffer rows, inclusive),
// the corresponding line slice, and the resulting cursor.
func (t *Term) OnRefresh(cb func(dirty [2]int, slice []Line, cursor Cursor)) {
	t.screen.OnRefresh = cb
}

// OnAlternate subscribes cb to fire on alternate-screen enable/disable.
func (t *Term) OnAlternate(cb func(on bool)) { t.screen.OnAlternate = cb }

// OnTitle subscribes cb to fire when the window title changes (OSC 0/2).
func (t *Term) OnTitle(cb func(title string)) { t.screen.OnTitle = cb }

// OnResize subscribes cb to fire when Resize changes the geometry.
func (t *Term) OnResize(cb func(cols, rows int)) { t.screen.OnResize = cb }

// OnBell subscribes cb to fire on BEL (0x07) outside of an OSC/DCS
// string context.
func (t *Term) OnBell(cb func()) { t.screen.OnBell = cb }
