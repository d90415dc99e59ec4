// Package vtterm implements a reusable VT100/VT220/xterm-compatible
// terminal emulator: a byte-stream parser paired with a screen model.
//
// This file documents the color index space glyphs carry. vtterm itself
// never resolves an index to RGB — that is a rendering concern, explicitly
// left to the host — but it fixes the numbering every SGR handler in
// parser.go writes into Glyph.Attr:
//
//   - 0-7:     standard ANSI colors (black, red, green, yellow, blue,
//     magenta, cyan, white)
//   - 8-15:    bright ANSI colors (SGR 90-97 fg, 100-107 bg)
//   - 16-255:  the xterm 256-color cube and grayscale ramp (SGR
//     "38;5;N" / "48;5;N")
//   - 256/257: DefaultBG/DefaultFG sentinels, meaning "the renderer's
//     configured default color", set by SGR 39/49 and by any reset.
//
// True-color (24-bit, SGR "38;2;r;g;b") is an explicit non-goal: the
// index space only has room for 0-511, and the parser's SGR handler
// does not recognize the ";2;" subparameter form.
package vtterm
