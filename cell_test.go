package vtterm

import "testing"

func TestPackAttrRoundTrip(t *testing.T) {
	attr := PackAttr(12, 200, AttrBold|AttrUnderline)
	g := Glyph{Ch: 'x', Attr: attr}

	if got := g.Background(); got != 12 {
		t.Errorf("Background() = %d, want 12", got)
	}
	if got := g.Foreground(); got != 200 {
		t.Errorf("Foreground() = %d, want 200", got)
	}
	if !g.Has(AttrBold) {
		t.Error("expected AttrBold set")
	}
	if !g.Has(AttrUnderline) {
		t.Error("expected AttrUnderline set")
	}
	if g.Has(AttrItalic) {
		t.Error("did not expect AttrItalic set")
	}
}

func TestDefaultAttr(t *testing.T) {
	attr := DefaultAttr()
	g := Glyph{Attr: attr}
	if g.Background() != DefaultBG {
		t.Errorf("Background() = %d, want DefaultBG (%d)", g.Background(), DefaultBG)
	}
	if g.Foreground() != DefaultFG {
		t.Errorf("Foreground() = %d, want DefaultFG (%d)", g.Foreground(), DefaultFG)
	}
	if g.Flags() != AttrNone {
		t.Errorf("Flags() = %d, want AttrNone", g.Flags())
	}
}

func TestAttrWithBackgroundForeground(t *testing.T) {
	attr := DefaultAttr()
	attr = attrWithBackground(attr, 5)
	attr = attrWithForeground(attr, 9)
	g := Glyph{Attr: attr}
	if g.Background() != 5 {
		t.Errorf("Background() = %d, want 5", g.Background())
	}
	if g.Foreground() != 9 {
		t.Errorf("Foreground() = %d, want 9", g.Foreground())
	}
}

func TestAttrWithFlagToggle(t *testing.T) {
	attr := DefaultAttr()
	attr = attrWithFlag(attr, AttrReverse, true)
	if attrFlags(attr)&AttrReverse == 0 {
		t.Fatal("expected AttrReverse set after enabling")
	}
	attr = attrWithFlag(attr, AttrReverse, false)
	if attrFlags(attr)&AttrReverse != 0 {
		t.Fatal("expected AttrReverse cleared after disabling")
	}
}

func TestBlankGlyph(t *testing.T) {
	attr := PackAttr(1, 2, AttrBold)
	g := blankGlyph(attr)
	if g.Ch != ' ' {
		t.Errorf("blankGlyph Ch = %q, want space", g.Ch)
	}
	if g.Attr != attr {
		t.Errorf("blankGlyph Attr = %d, want %d", g.Attr, attr)
	}
}
