// Package cli is a minimal demo host for the vtterm library: it spawns a
// shell behind a real pseudo-terminal via github.com/creack/pty, feeds
// the pty's output through a vtterm.Term, and paints the resulting grid
// to the actual terminal vtterm is running inside, using
// golang.org/x/term to put that outer terminal into raw mode for the
// duration of the session.
//
// This package is deliberately thin: vtterm's core (Screen, Parser,
// Term) has no idea a real process or a real terminal exists on either
// side of it. Host implements the pty-spawning and rendering that sit
// outside the library's core, the way a terminal multiplexer or GUI
// front end would in production.
package cli
