package vtterm

// CharMap is an immutable GL/GR substitution table for one national or
// graphic character set, keyed by its VT designator byte. Maps are
// constructed once at package init and shared; character-set designation
// is a pointer swap, never a copy.
type CharMap struct {
	name string
	gl   map[byte]rune
}

func newCharMap(name string, gl map[byte]rune) *CharMap {
	return &CharMap{name: name, gl: gl}
}

// Name returns the map's display name, e.g. "us", "dec graphic".
func (m *CharMap) Name() string {
	if m == nil {
		return ""
	}
	return m.name
}

// TranslateGL substitutes r if it falls in the GL range (0x20-0x7E) and
// the map has an entry for it; otherwise r passes through unchanged.
func (m *CharMap) TranslateGL(r rune) rune {
	if m == nil || r < 0x20 || r > 0x7E {
		return r
	}
	if sub, ok := m.gl[byte(r)]; ok {
		return sub
	}
	return r
}

// TranslateGR substitutes r if it falls in the mirrored GR range
// (0xA0-0xFE), derived by setting the high bit of the GL key.
func (m *CharMap) TranslateGR(r rune) rune {
	if m == nil || r < 0xA0 || r > 0xFE {
		return r
	}
	if sub, ok := m.gl[byte(r)&0x7F]; ok {
		return sub
	}
	return r
}

// The supported national replacement-character sets: US ASCII (no
// substitutions), UK national, DEC Special Graphics (line drawing),
// Dutch, and French Canadian. Table values follow the classic VT220
// national replacement-character sets.
var (
	usASCII = newCharMap("us", nil)

	ukNational = newCharMap("uk", map[byte]rune{
		'#': '£',
	})

	decGraphic = newCharMap("dec graphic", map[byte]rune{
		'`': '◆', 'a': '▒', 'b': '␉', 'c': '␌', 'd': '␍', 'e': '␊',
		'f': '°', 'g': '±', 'h': '␤', 'i': '␋', 'j': '┘', 'k': '┐',
		'l': '┌', 'm': '└', 'n': '┼', 'o': '⎺', 'p': '⎻', 'q': '─',
		'r': '⎼', 's': '⎽', 't': '├', 'u': '┤', 'v': '┴', 'w': '┬',
		'x': '│', 'y': '≤', 'z': '≥', '{': 'π', '|': '≠', '}': '£', '~': '·',
	})

	dutch = newCharMap("dutch", map[byte]rune{
		'#': '£', '@': '¾', '[': 'ĳ', '\\': '½', ']': '|',
		'{': '¨', '|': 'ƒ', '}': '¼', '~': '´',
	})

	// "french canadian" is spelled out in full and correctly here, unlike
	// some VT220 emulator tables that truncate or misspell the key.
	frenchCanadian = newCharMap("french canadian", map[byte]rune{
		'@': 'à', '[': 'â', '\\': 'ç', ']': 'ê', '^': 'î',
		'`': 'ô', '{': 'é', '|': 'ù', '}': 'è', '~': 'û',
	})
)

// charMapFor resolves a designator byte from an ESC ( ) * + - . / sequence
// to its character map. Unrecognized designators fall back to US ASCII.
func charMapFor(designator byte) *CharMap {
	switch designator {
	case 'B':
		return usASCII
	case 'A':
		return ukNational
	case '0', '1', '2':
		return decGraphic
	case '4':
		return dutch
	case 'Q':
		return frenchCanadian
	default:
		return usASCII
	}
}

// CharsetTable holds the four designation slots G0-G3 and the GL/GR
// selectors naming which slot services the low and high code ranges.
type CharsetTable struct {
	G  [4]*CharMap
	GL int
	GR int
}

func newCharsetTable() *CharsetTable {
	return &CharsetTable{
		G:  [4]*CharMap{usASCII, usASCII, usASCII, usASCII},
		GL: 0,
		GR: 2,
	}
}

// Designate points slot (0-3, i.e. G0-G3) at the map named by designator.
func (t *CharsetTable) Designate(slot int, designator byte) {
	if slot < 0 || slot > 3 {
		return
	}
	t.G[slot] = charMapFor(designator)
}

// TranslateGL runs r through whichever map GL currently selects.
func (t *CharsetTable) TranslateGL(r rune) rune { return t.G[t.GL].TranslateGL(r) }

// TranslateGR runs r through whichever map GR currently selects.
func (t *CharsetTable) TranslateGR(r rune) rune { return t.G[t.GR].TranslateGR(r) }

// clone returns an independent copy, used by DECSC/DECRC and by the
// alternate-screen save slot so restoring one table never aliases another.
func (t *CharsetTable) clone() *CharsetTable {
	c := *t
	return &c
}
