package vtterm

import (
	"fmt"
	"log"
	"reflect"
	"runtime"
	"strconv"
	"time"
	"unicode/utf8"
)

// ParserOptions configures the parser's optional behaviors.
type ParserOptions struct {
	// AllowWidthChange permits DECSET/DECRST 3 (132/80-column switch) to
	// resize the screen. Defaults to true.
	AllowWidthChange bool
	// OSCTimeLimit bounds how long an unterminated OSC/DCS/PM/APC string
	// sequence may stay open before it is silently aborted. Zero disables
	// the limit. Defaults to 2s.
	OSCTimeLimit time.Duration
	// MaxStringSequence bounds the accumulated byte length of an
	// OSC/DCS/PM/APC payload before it is silently aborted. Defaults to
	// 1024.
	MaxStringSequence int
	// Warn gates logging of UnknownSequence and InvalidStringSequence
	// diagnostics. Defaults to true.
	Warn bool
}

// DefaultParserOptions returns the recommended defaults for normal use.
func DefaultParserOptions() ParserOptions {
	return ParserOptions{
		AllowWidthChange:  true,
		OSCTimeLimit:      2000 * time.Millisecond,
		MaxStringSequence: 1024,
		Warn:              true,
	}
}

// Parser is a byte-level VT state machine that scans for controls,
// dispatches CC1/ESC/CSI/OSC handlers against a Screen, and writes reply
// bytes back toward the pty for sequences that require one.
type Parser struct {
	screen *Screen
	opts   ParserOptions
	logger *log.Logger

	st parserState

	// pending holds the tail of a UTF-8 sequence split across a chunk
	// boundary, to be prepended to the next Parse call's input.
	pending []byte

	// oscKind distinguishes which ST-terminated introducer parseString is
	// currently inside: "osc", "dcs", "pm", or "apc". Only "osc" carries
	// a semantic handler; the others are recognized syntactically and
	// discarded: only OSC's 0/2/52 carry any meaning here.
	oscKind string

	// WriteBack delivers reply bytes — primary/secondary DA, DECID, CPR,
	// DSR — toward the pty. A host wires this to its pty's Write.
	WriteBack func([]byte)
}

// NewParser constructs a parser bound to screen, using opts (zero value
// is usable but disables warnings and time/length limits; most callers
// want DefaultParserOptions()).
func NewParser(screen *Screen, opts ParserOptions) *Parser {
	p := &Parser{screen: screen, opts: opts, logger: log.Default()}
	p.st.resetFun(parseGround)
	return p
}

// SetLogger overrides the *log.Logger used for Warn diagnostics.
func (p *Parser) SetLogger(l *log.Logger) { p.logger = l }

func funcPtr(f parseFunc) uintptr {
	if f == nil {
		return 0
	}
	return reflect.ValueOf(f).Pointer()
}

// Parse feeds data through the state machine to completion, dispatching
// every control sequence it recognizes against the bound Screen and
// firing at most one refresh notification at the end: each chunk is
// processed to completion in one call, synchronously.
//
// It returns a non-nil *ParserStuck only if a parse routine fails to
// advance buf, pos, or fun. Every other malformed-input condition is
// handled silently in place.
func (p *Parser) Parse(data []byte) error {
	if len(p.pending) > 0 {
		combined := make([]byte, 0, len(p.pending)+len(data))
		combined = append(combined, p.pending...)
		combined = append(combined, data...)
		p.pending = p.pending[:0]
		data = combined
	}
	p.st.reset(data)
	if p.st.fun == nil {
		p.st.resetFun(parseGround)
	}

	for !p.st.isComplete() {
		startPos := p.st.pos
		startPtr := funcPtr(p.st.fun)

		next := p.st.fun(p)
		if next == nil {
			next = parseGround
		}

		if p.st.pos == startPos && funcPtr(next) == startPtr {
			name := runtime.FuncForPC(startPtr).Name()
			p.st.resetFun(parseGround)
			return &ParserStuck{State: name}
		}
		p.st.resetFun(next)
	}

	p.screen.flushRefresh()
	return nil
}

// ParseString is a convenience wrapper around Parse for callers holding a
// Go string rather than a byte slice.
func (p *Parser) ParseString(s string) error { return p.Parse([]byte(s)) }

func (p *Parser) writeback(b []byte) {
	if p.WriteBack != nil {
		p.WriteBack(b)
	}
}

func (p *Parser) warnUnknown(kind, desc string) {
	if p.opts.Warn && p.logger != nil {
		p.logger.Print("vtterm: ", unknownSequenceKind{Kind: kind, Desc: desc})
	}
}

func (p *Parser) warnInvalidString(reason string) {
	if p.opts.Warn && p.logger != nil {
		p.logger.Print("vtterm: ", invalidStringSequenceKind{Reason: reason})
	}
}

// --- parse_unknown (ground state) ---

func parseGround(p *Parser) parseFunc {
	s := &p.st
	for s.pos < len(s.buf) {
		b := s.buf[s.pos]
		if b < 0x20 || b == 0x7F {
			if b == 0x1B {
				s.advance(1)
				s.resetArgs("")
				return parseEsc
			}
			p.dispatchCC1(b)
			s.advance(1)
			continue
		}

		r, size, ok := decodeRune(s.peekBuf())
		if !ok {
			p.pending = append(p.pending[:0], s.peekBuf()...)
			s.advance(len(s.peekBuf()))
			return parseGround
		}
		s.advance(size)
		p.screen.Print(p.translate(r))
	}
	return parseGround
}

// decodeRune reads one code point from the head of b. If b ends in a
// genuinely truncated multi-byte sequence (more bytes needed than b
// holds), it reports ok=false so the caller can wait for more input
// instead of misreading a split UTF-8 sequence as invalid. The '?'
// substitution applies only to sequences that are actually malformed,
// not merely incomplete at a chunk boundary.
func decodeRune(b []byte) (r rune, size int, ok bool) {
	if len(b) == 0 {
		return 0, 0, false
	}
	if !utf8.FullRune(b) && len(b) < utf8.UTFMax {
		return 0, 0, false
	}
	r, size = utf8.DecodeRune(b)
	if r == utf8.RuneError && size <= 1 {
		return '?', 1, true
	}
	return r, size, true
}

func (p *Parser) translate(r rune) rune {
	cs := p.screen.charsets
	return cs.TranslateGR(cs.TranslateGL(r))
}

func (p *Parser) dispatchCC1(b byte) {
	scr := p.screen
	switch b {
	case 0x00, 0x05, 0x11, 0x13, 0x18, 0x1A, 0x7F: // NUL ENQ XON XOFF CAN SUB DEL
	case 0x07: // BEL
		scr.RingBell()
	case 0x08: // BS
		scr.MoveAbsTo(scr.cursor.X-1, scr.cursor.Y)
	case 0x09: // HT
		scr.ForwardTab(1)
	case 0x0A, 0x0B: // LF, VT
		scr.Newline(scr.mode&ModeCRLF != 0)
	case 0x0C: // FF
		scr.FormFeed()
	case 0x0D: // CR
		scr.MoveAbsTo(0, scr.cursor.Y)
	case 0x0E: // SO
		scr.charsets.GL = 1
	case 0x0F: // SI
		scr.charsets.GL = 0
	default:
		p.warnUnknown("CC1", fmt.Sprintf("0x%02X", b))
	}
}

// --- parse_esc ---

func parseEsc(p *Parser) parseFunc {
	s := &p.st
	b, ok := s.consume()
	if !ok {
		return parseEsc
	}
	scr := p.screen
	switch b {
	case 0x1B: // ESC ESC resets without dispatch
		return parseEsc
	case '[':
		s.resetArgs("")
		return parseCSI
	case ']':
		s.resetArgs("")
		s.stringStart = now()
		p.oscKind = "osc"
		return parseString
	case 'P':
		s.resetArgs("")
		s.stringStart = now()
		p.oscKind = "dcs"
		return parseString
	case '^':
		s.resetArgs("")
		s.stringStart = now()
		p.oscKind = "pm"
		return parseString
	case '_':
		s.resetArgs("")
		s.stringStart = now()
		p.oscKind = "apc"
		return parseString
	case 'D': // IND
		scr.Newline(false)
	case 'E': // NEL
		scr.Newline(true)
	case 'H': // HTS
		scr.SetTabStop()
	case 'M': // RI
		p.reverseIndex()
	case 'Z': // DECID
		p.writeback([]byte("\x1b[?1;2c"))
	case '7': // DECSC
		scr.SaveCursor()
	case '8': // DECRC
		scr.RestoreCursor()
	case '=': // application keypad
		scr.mode |= ModeAppKeypad
	case '>': // normal keypad
		scr.mode &^= ModeAppKeypad
	case 'c': // RIS
		scr.HardReset()
	case 'n': // LS2
		scr.charsets.GL = 2
	case 'o': // LS3
		scr.charsets.GL = 3
	case '|': // LS3R
		scr.charsets.GR = 3
	case '}': // LS2R
		scr.charsets.GR = 2
	case '~': // LS1R
		scr.charsets.GR = 1
	case '(', ')', '*', '+', '-', '.', '/':
		s.leadingMod = b
		return parseCharsetDesignate
	case '#':
		return parseEscHash
	default:
		p.warnUnknown("ESC", string(b))
	}
	return parseGround
}

func parseCharsetDesignate(p *Parser) parseFunc {
	s := &p.st
	b, ok := s.consume()
	if !ok {
		return parseCharsetDesignate
	}
	slot := 0
	switch s.leadingMod {
	case '(':
		slot = 0
	case ')', '-':
		slot = 1
	case '*', '.':
		slot = 2
	case '+', '/':
		slot = 3
	}
	p.screen.charsets.Designate(slot, b)
	s.leadingMod = 0
	return parseGround
}

func parseEscHash(p *Parser) parseFunc {
	s := &p.st
	b, ok := s.consume()
	if !ok {
		return parseEscHash
	}
	if b == '8' {
		p.decaln()
	} else {
		p.warnUnknown("ESC", "#"+string(b))
	}
	return parseGround
}

func (p *Parser) decaln() {
	scr := p.screen
	for y := 0; y < scr.rows; y++ {
		line := scr.lines[scr.base+y]
		for x := range line {
			line[x] = Glyph{Ch: 'E', Attr: DefaultAttr()}
		}
		scr.markDirty(scr.base + y)
	}
}

func (p *Parser) reverseIndex() {
	scr := p.screen
	if scr.cursor.Y == scr.scroll.Top {
		scr.Scroll(-1)
		return
	}
	scr.markDirty(scr.base + scr.cursor.Y)
	scr.cursor.Y--
	scr.markDirty(scr.base + scr.cursor.Y)
	scr.setWrapNext(false)
}

// --- parse_until_string_terminator ---

func (p *Parser) stringExpired() bool {
	if p.opts.OSCTimeLimit <= 0 {
		return false
	}
	return now().Sub(p.st.stringStart) > p.opts.OSCTimeLimit
}

func parseString(p *Parser) parseFunc {
	s := &p.st
	for s.pos < len(s.buf) {
		if p.stringExpired() {
			return p.abortString("timeout")
		}
		b, _ := s.consume()

		if s.stringPendingESC {
			s.stringPendingESC = false
			if b == '\\' {
				p.finishString()
				return parseGround
			}
			s.pos--
			return p.abortString("embedded-esc")
		}

		switch {
		case b == 0x07:
			p.finishString()
			return parseGround
		case b == 0x1B:
			s.stringPendingESC = true
		default:
			if len(s.argv) == 0 {
				s.argv = append(s.argv, "")
			}
			s.argv[0] += string(b)
			if p.opts.MaxStringSequence > 0 && len(s.argv[0]) > p.opts.MaxStringSequence {
				return p.abortString("overlong")
			}
		}
	}
	return parseString
}

func (p *Parser) abortString(reason string) parseFunc {
	p.st.resetArgs("")
	p.st.stringPendingESC = false
	p.warnInvalidString(reason)
	return parseGround
}

func (p *Parser) finishString() {
	if p.oscKind == "osc" {
		p.executeOSC()
	}
	p.st.stringPendingESC = false
}

func (p *Parser) executeOSC() {
	raw := ""
	if len(p.st.argv) > 0 {
		raw = p.st.argv[0]
	}
	cmd := raw
	payload := ""
	for i := 0; i < len(raw); i++ {
		if raw[i] == ';' {
			cmd = raw[:i]
			payload = raw[i+1:]
			break
		}
	}
	switch cmd {
	case "0", "2":
		p.screen.setTitle(payload)
	case "52":
		// Clipboard set/read: recognized so it doesn't log as unknown,
		// but vtterm has no clipboard surface to mutate — that's a host
		// concern outside this library's data model.
	default:
		p.warnUnknown("OSC", cmd)
	}
}

// --- parse_csi ---

func parseCSI(p *Parser) parseFunc {
	s := &p.st
	for s.pos < len(s.buf) {
		b, _ := s.consume()
		switch {
		case b == 0x1B:
			s.resetArgs("")
			return parseEsc
		case b < 0x20:
			p.dispatchCC1(b)
		case b >= '0' && b <= '9':
			p.appendDigit(b)
		case b == ';':
			if len(s.argv) == 0 {
				s.argv = append(s.argv, "")
			}
			s.argv = append(s.argv, "")
		case (b == '?' || b == '<' || b == '=' || b == '>') && len(s.argv) == 0 && s.leadingMod == 0:
			s.leadingMod = b
		case b >= 0x20 && b <= 0x2F:
			s.trailingMod = b
		case b >= 0x40 && b <= 0x7E:
			p.executeCSI(b)
			return parseGround
		default:
			s.resetArgs("")
			return parseGround
		}
	}
	return parseCSI
}

func (p *Parser) appendDigit(b byte) {
	s := &p.st
	if len(s.argv) == 0 {
		s.argv = append(s.argv, "")
	}
	s.argv[len(s.argv)-1] += string(b)
}

func (p *Parser) executeCSI(final byte) {
	s := &p.st
	scr := p.screen
	switch final {
	case '@':
		scr.InsertBlanks(s.intArg(0, 1))
	case 'A':
		scr.MoveAbsTo(scr.cursor.X, scr.cursor.Y-s.intArg(0, 1))
	case 'B':
		scr.MoveAbsTo(scr.cursor.X, scr.cursor.Y+s.intArg(0, 1))
	case 'C':
		scr.MoveAbsTo(scr.cursor.X+s.intArg(0, 1), scr.cursor.Y)
	case 'D':
		scr.MoveAbsTo(scr.cursor.X-s.intArg(0, 1), scr.cursor.Y)
	case 'E':
		scr.MoveAbsTo(0, scr.cursor.Y+s.intArg(0, 1))
	case 'F':
		scr.MoveAbsTo(0, scr.cursor.Y-s.intArg(0, 1))
	case 'G':
		scr.MoveAbsTo(s.intArg(0, 1)-1, scr.cursor.Y)
	case 'H', 'f':
		row := s.intArg(0, 1)
		col := s.intArg(1, 1)
		scr.MoveTo(col-1, row-1)
	case 'I':
		scr.ForwardTab(s.intArg(0, 1))
	case 'Z':
		scr.BackwardTab(s.intArg(0, 1))
	case 'J':
		switch s.intArg(0, 0) {
		case 0:
			scr.EraseBelow()
		case 1:
			scr.EraseAbove()
		case 2, 3:
			scr.EraseAll()
		}
	case 'K':
		switch s.intArg(0, 0) {
		case 0:
			scr.EraseRight()
		case 1:
			scr.EraseLeft()
		case 2:
			scr.EraseLine()
		}
	case 'L':
		scr.InsertLines(s.intArg(0, 1))
	case 'M':
		scr.DeleteLines(s.intArg(0, 1))
	case 'P':
		scr.DeleteChars(s.intArg(0, 1))
	case 'S':
		scr.Scroll(s.intArg(0, 1))
	case 'T':
		scr.Scroll(-s.intArg(0, 1))
	case 'X':
		scr.EraseChars(s.intArg(0, 1))
	case 'c':
		if s.leadingMod == '>' {
			p.writeback([]byte("\x1b[>0;256;0c"))
		} else {
			p.writeback([]byte("\x1b[?1;2c"))
		}
	case 'd':
		scr.MoveTo(scr.cursor.X, s.intArg(0, 1)-1)
	case 'g':
		switch s.rawArg(0, 0) {
		case 0:
			scr.ClearTabStop()
		case 3:
			scr.ClearAllTabs()
		}
	case 'h':
		if s.leadingMod == '?' {
			p.executePrivateMode(true)
		} else {
			p.executeMode(true)
		}
	case 'l':
		if s.leadingMod == '?' {
			p.executePrivateMode(false)
		} else {
			p.executeMode(false)
		}
	case 'm':
		p.executeSGR()
	case 'n':
		p.executeDSR()
	case 'r':
		top := s.intArg(0, 1)
		bottom := s.intArg(1, scr.rows)
		scr.SetScrollRegion(top-1, bottom-1)
	case 's':
		scr.SaveCursor()
	case 'u':
		scr.RestoreCursor()
	case 'p':
		if s.trailingMod == '!' {
			scr.SoftReset()
		} else {
			p.warnUnknown("CSI", "p")
		}
	default:
		p.warnUnknown("CSI", string(final))
	}
	s.leadingMod = 0
	s.trailingMod = 0
}

func setMode(m *Mode, bit Mode, on bool) {
	if on {
		*m |= bit
	} else {
		*m &^= bit
	}
}

// executePrivateMode implements DECSET/DECRST's DEC private mode table.
func (p *Parser) executePrivateMode(set bool) {
	scr := p.screen
	for _, arg := range p.st.args() {
		n, err := strconv.Atoi(arg)
		if err != nil {
			continue
		}
		switch n {
		case 1:
			setMode(&scr.mode, ModeAppCursor, set)
		case 3:
			if p.opts.AllowWidthChange {
				cols := 80
				if set {
					cols = 132
				}
				scr.Resize(cols, scr.rows)
			}
		case 5:
			setMode(&scr.mode, ModeReverse, set)
		case 6:
			scr.SetOrigin(set)
		case 7:
			setMode(&scr.mode, ModeWrap, set)
		case 12:
			// cursor-blink cosmetic toggle: no corresponding Mode bit.
		case 25:
			setMode(&scr.mode, ModeHide, !set)
		case 40:
			p.opts.AllowWidthChange = set
		case 45:
			// reverse wraparound: no corresponding Mode bit.
		case 47, 1047:
			scr.SetAlternateScreen(set)
		case 67:
			// backspace-sends-BS: a keyboard-encoding concern that
			// belongs to the host, not the screen model.
		case 1000:
			setMode(&scr.mode, ModeMouseBtn, set)
		case 1002:
			setMode(&scr.mode, ModeMouseMotion, set)
		case 1010, 1011:
			// scroll-on-output / scroll-on-keystroke: a rendering concern.
		case 1036, 1039:
			// meta/alt-sends-ESC: a keyboard-encoding concern.
		case 1048:
			if set {
				scr.SaveCursor()
			} else {
				scr.RestoreCursor()
			}
		case 1049:
			if set {
				scr.SaveCursor()
				scr.SetAlternateScreen(true)
			} else {
				scr.SetAlternateScreen(false)
				scr.RestoreCursor()
			}
		default:
			p.warnUnknown("CSI", fmt.Sprintf("?%d%s", n, onOff(set)))
		}
	}
}

// executeMode implements plain SM/RM.
func (p *Parser) executeMode(set bool) {
	scr := p.screen
	for _, arg := range p.st.args() {
		n, err := strconv.Atoi(arg)
		if err != nil {
			continue
		}
		switch n {
		case 4:
			setMode(&scr.mode, ModeInsert, set)
		case 20:
			setMode(&scr.mode, ModeCRLF, set)
		default:
			p.warnUnknown("CSI", fmt.Sprintf("%d%s", n, onOff(set)))
		}
	}
}

func onOff(set bool) string {
	if set {
		return "h"
	}
	return "l"
}

func parseSGRNum(s string) int {
	if s == "" {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

// executeSGR implements Select Graphic Rendition.
func (p *Parser) executeSGR() {
	args := p.st.args()
	if len(args) == 0 {
		args = []string{""}
	}
	attr := p.screen.cursor.Attr
	for i := 0; i < len(args); i++ {
		n := parseSGRNum(args[i])
		switch {
		case n == 0:
			attr = DefaultAttr()
		case n == 1:
			attr = attrWithFlag(attr, AttrBold, true)
		case n == 22:
			attr = attrWithFlag(attr, AttrBold, false)
		case n == 3:
			attr = attrWithFlag(attr, AttrItalic, true)
		case n == 23:
			attr = attrWithFlag(attr, AttrItalic, false)
		case n == 4:
			attr = attrWithFlag(attr, AttrUnderline, true)
		case n == 24:
			attr = attrWithFlag(attr, AttrUnderline, false)
		case n == 5 || n == 6:
			attr = attrWithFlag(attr, AttrBlink, true)
		case n == 25 || n == 26:
			attr = attrWithFlag(attr, AttrBlink, false)
		case n == 7:
			attr = attrWithFlag(attr, AttrReverse, true)
		case n == 27:
			attr = attrWithFlag(attr, AttrReverse, false)
		case n == 8 || n == 28:
			// invisible: recognized, but section 3's packed attribute
			// word has no bit for it, so it has no on-wire effect.
		case n >= 30 && n <= 37:
			attr = attrWithForeground(attr, n-30)
		case n == 38:
			if i+2 < len(args) && args[i+1] == "5" {
				attr = attrWithForeground(attr, parseSGRNum(args[i+2]))
				i += 2
			}
		case n == 39:
			attr = attrWithForeground(attr, DefaultFG)
		case n >= 40 && n <= 47:
			attr = attrWithBackground(attr, n-40)
		case n == 48:
			if i+2 < len(args) && args[i+1] == "5" {
				attr = attrWithBackground(attr, parseSGRNum(args[i+2]))
				i += 2
			}
		case n == 49:
			attr = attrWithBackground(attr, DefaultBG)
		case n >= 90 && n <= 97:
			attr = attrWithForeground(attr, n-90+8)
		case n >= 100 && n <= 107:
			attr = attrWithBackground(attr, n-100+8)
		default:
			p.warnUnknown("CSI", fmt.Sprintf("SGR %d", n))
		}
	}
	p.screen.cursor.Attr = attr
}

// executeDSR implements Device Status Report, reading the parser's own
// accumulated parameters via state.args() (s.rawArg here).
func (p *Parser) executeDSR() {
	s := &p.st
	if s.leadingMod == '?' {
		p.warnUnknown("CSI", fmt.Sprintf("?%dn", s.rawArg(0, 0)))
		return
	}
	switch s.rawArg(0, 0) {
	case 5:
		p.writeback([]byte("\x1b[0n"))
	case 6:
		row := p.screen.cursor.Y + 1
		col := p.screen.cursor.X + 1
		p.writeback([]byte(fmt.Sprintf("\x1b[%d;%dR", row, col)))
	case 15:
		p.writeback([]byte("\x1b[?13n"))
	case 25:
		p.writeback([]byte("\x1b[?20n"))
	case 26:
		p.writeback([]byte("\x1b[?27;0n"))
	case 53:
		p.writeback([]byte("\x1b[?50n"))
	default:
		p.warnUnknown("CSI", fmt.Sprintf("%dn", s.rawArg(0, 0)))
	}
}

// now is the wall-clock source for OSC string timeouts.
func now() time.Time { return time.Now() }
