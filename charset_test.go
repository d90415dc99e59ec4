package vtterm

import "testing"

func TestCharMapTranslateGL(t *testing.T) {
	if got := decGraphic.TranslateGL('q'); got != '─' {
		t.Errorf("decGraphic.TranslateGL('q') = %q, want '─'", got)
	}
	if got := decGraphic.TranslateGL('Q'); got != 'Q' {
		t.Errorf("decGraphic.TranslateGL('Q') = %q, want unchanged 'Q'", got)
	}
	if got := usASCII.TranslateGL('A'); got != 'A' {
		t.Errorf("usASCII.TranslateGL('A') = %q, want unchanged 'A'", got)
	}
}

func TestCharMapTranslateGR(t *testing.T) {
	// 'q' (0x71) mirrored into GR is 0x71|0x80 = 0xF1.
	if got := decGraphic.TranslateGR(0xF1); got != '─' {
		t.Errorf("decGraphic.TranslateGR(0xF1) = %q, want '─'", got)
	}
	if got := decGraphic.TranslateGR(0x20); got != 0x20 {
		t.Errorf("TranslateGR outside GR range should pass through, got %q", got)
	}
}

func TestCharMapNilIsIdentity(t *testing.T) {
	var m *CharMap
	if got := m.TranslateGL('A'); got != 'A' {
		t.Errorf("nil CharMap.TranslateGL should be identity, got %q", got)
	}
	if got := m.TranslateGR(0xC1); got != 0xC1 {
		t.Errorf("nil CharMap.TranslateGR should be identity, got %q", got)
	}
	if got := m.Name(); got != "" {
		t.Errorf("nil CharMap.Name() = %q, want empty", got)
	}
}

func TestCharMapForDesignators(t *testing.T) {
	cases := []struct {
		designator byte
		want       *CharMap
	}{
		{'B', usASCII},
		{'A', ukNational},
		{'0', decGraphic},
		{'1', decGraphic},
		{'2', decGraphic},
		{'4', dutch},
		{'Q', frenchCanadian},
		{'z', usASCII}, // unrecognized falls back to US ASCII
	}
	for _, c := range cases {
		if got := charMapFor(c.designator); got != c.want {
			t.Errorf("charMapFor(%q) = %q, want %q", c.designator, got.Name(), c.want.Name())
		}
	}
}

func TestFrenchCanadianSpelling(t *testing.T) {
	if frenchCanadian.Name() != "french canadian" {
		t.Errorf("frenchCanadian.Name() = %q, want %q", frenchCanadian.Name(), "french canadian")
	}
}

func TestCharsetTableDefaults(t *testing.T) {
	table := newCharsetTable()
	if table.GL != 0 {
		t.Errorf("default GL = %d, want 0 (G0)", table.GL)
	}
	if table.GR != 2 {
		t.Errorf("default GR = %d, want 2 (G2)", table.GR)
	}
	for i, m := range table.G {
		if m != usASCII {
			t.Errorf("G%d = %q, want us ASCII by default", i, m.Name())
		}
	}
}

func TestCharsetTableDesignateAndTranslate(t *testing.T) {
	table := newCharsetTable()
	table.Designate(0, '0') // G0 := DEC graphic
	if got := table.TranslateGL('q'); got != '─' {
		t.Errorf("after designating G0 to DEC graphic, TranslateGL('q') = %q, want '─'", got)
	}

	table.Designate(9, 'A') // out-of-range slot is ignored
	if table.G[0].Name() != "dec graphic" {
		t.Error("designating an invalid slot must not disturb G0")
	}
}

func TestCharsetTableClone(t *testing.T) {
	table := newCharsetTable()
	table.Designate(1, 'A')
	clone := table.clone()

	clone.Designate(1, '4')
	if table.G[1] != ukNational {
		t.Error("mutating the clone must not affect the original table")
	}
	if clone.G[1] != dutch {
		t.Error("clone should reflect its own mutation")
	}
}
