package vtterm

// PTY is the bidirectional byte channel a Term reads from and writes
// replies to. Spawning the process and the pty itself are left to the
// caller; this interface is the seam a host implements, typically by
// wrapping github.com/creack/pty (see the cli package) or any other
// pty/process abstraction.
type PTY interface {
	Read(p []byte) (int, error)
	Write(p []byte) (int, error)
	Resize(cols, rows int) error
	Close() error
}
