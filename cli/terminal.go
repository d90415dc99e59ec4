package cli

import (
	"os"
	"os/exec"

	"github.com/creack/pty"
	"golang.org/x/term"

	vtterm "github.com/phroun/vtterm"
)

// Options configures a Host session: which shell to spawn, the initial
// geometry, and (optionally) a Renderer other than the stdout default.
type Options struct {
	Shell    string
	Cols     int
	Rows     int
	Renderer *Renderer
}

// ptyAdapter satisfies vtterm.PTY over the *os.File github.com/creack/pty
// hands back for a spawned process.
type ptyAdapter struct {
	f *os.File
}

func (a *ptyAdapter) Read(p []byte) (int, error)  { return a.f.Read(p) }
func (a *ptyAdapter) Write(p []byte) (int, error) { return a.f.Write(p) }
func (a *ptyAdapter) Close() error                { return a.f.Close() }

func (a *ptyAdapter) Resize(cols, rows int) error {
	return pty.Setsize(a.f, &pty.Winsize{Cols: uint16(cols), Rows: uint16(rows)})
}

// Host runs a shell behind a real pseudo-terminal and drives a
// vtterm.Term from its output, rendering to the real terminal Host
// itself is running inside — the "terminal within a terminal" role, but
// built on vtterm.Term instead of a GUI-toolkit buffer.
type Host struct {
	term     *vtterm.Term
	cmd      *exec.Cmd
	ptmx     *os.File
	renderer *Renderer
}

// New spawns opts.Shell (defaulting to $SHELL, or /bin/sh) behind a pty
// sized opts.Cols x opts.Rows and wires its output into a fresh
// vtterm.Term.
func New(opts Options) (*Host, error) {
	shell := opts.Shell
	if shell == "" {
		shell = os.Getenv("SHELL")
	}
	if shell == "" {
		shell = "/bin/sh"
	}
	cols, rows := opts.Cols, opts.Rows
	if cols <= 0 {
		cols = 80
	}
	if rows <= 0 {
		rows = 24
	}

	cmd := exec.Command(shell)
	ptmx, err := pty.StartWithSize(cmd, &pty.Winsize{Cols: uint16(cols), Rows: uint16(rows)})
	if err != nil {
		return nil, err
	}

	adapter := &ptyAdapter{f: ptmx}
	t := vtterm.New(vtterm.Config{PTY: adapter, Cols: cols, Rows: rows})

	renderer := opts.Renderer
	if renderer == nil {
		renderer = NewRenderer(os.Stdout)
	}
	t.OnRefresh(func(dirty [2]int, slice []vtterm.Line, cursor vtterm.Cursor) {
		renderer.Draw(t.Screen(), dirty, slice, cursor)
	})
	t.OnTitle(renderer.SetTitle)

	return &Host{term: t, cmd: cmd, ptmx: ptmx, renderer: renderer}, nil
}

// Term returns the underlying vtterm.Term.
func (h *Host) Term() *vtterm.Term { return h.term }

// Run puts the controlling terminal into raw mode, pumps the pty's
// output into the Term, pumps stdin into the pty (translated for
// application-cursor mode by a keyMapper), and blocks until the shell's
// output stream ends.
func (h *Host) Run() error {
	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return err
	}
	defer term.Restore(fd, oldState)

	done := make(chan struct{})
	go h.pumpInput(done)
	defer close(done)

	buf := make([]byte, 4096)
	for {
		n, err := h.ptmx.Read(buf)
		if n > 0 {
			h.term.Write(buf[:n])
		}
		if err != nil {
			return nil
		}
	}
}

func (h *Host) pumpInput(done <-chan struct{}) {
	mapper := &keyMapper{term: h.term}
	buf := make([]byte, 1024)
	for {
		select {
		case <-done:
			return
		default:
		}
		n, err := os.Stdin.Read(buf)
		if n > 0 {
			h.ptmx.Write(mapper.Translate(buf[:n]))
		}
		if err != nil {
			return
		}
	}
}

// Close releases the pty and terminates the spawned shell.
func (h *Host) Close() error {
	h.ptmx.Close()
	if h.cmd.Process != nil {
		h.cmd.Process.Kill()
	}
	return h.cmd.Wait()
}
